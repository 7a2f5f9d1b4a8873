package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/tessera-live/tessera/internal/domain"
	"github.com/tessera-live/tessera/internal/repository"
	postgresrepo "github.com/tessera-live/tessera/internal/repository/postgres"
	redisrepo "github.com/tessera-live/tessera/internal/repository/redis"
	"github.com/tessera-live/tessera/internal/uow"
)

type Service struct {
	store  *postgresrepo.Store
	cache  *redisrepo.Cache
	pubsub *redisrepo.EventsPubSub
	uow    *uow.UoW
}

func New(store *postgresrepo.Store, cache *redisrepo.Cache, pubsub *redisrepo.EventsPubSub) *Service {
	return &Service{
		store:  store,
		cache:  cache,
		pubsub: pubsub,
		uow:    uow.NewUoW(store),
	}
}

// CreateEvent creates an event together with its ticket tiers in one
// transactional Unit of Work.
//
// Parameters:
//   - ctx: request-scoped context.
//   - e: event to create.
//   - tiers: ticket tiers to create for the event; may be empty.
//
// Returns:
//   - int64: the created event ID.
//   - error: catalog.ErrInvalidTicketType if a tier has a non-positive
//     capacity or a negative price.
//   - error: catalog.ErrEventConflict on a uniqueness violation.
func (s *Service) CreateEvent(ctx context.Context, e *domain.Event, tiers []domain.TicketType) (int64, error) {
	const op = "service.catalog.CreateEvent"

	for _, tt := range tiers {
		if tt.QuantityTotal <= 0 || tt.Price.IsNegative() {
			return 0, fmt.Errorf("%s:%w", op, ErrInvalidTicketType)
		}
	}

	var eventID int64

	err := s.uow.Do(ctx, func(
		ctx context.Context,
		tx postgresrepo.DB,
		after func(uow.AfterCommit),
	) error {
		var err error
		eventID, err = s.store.Catalog().With(tx).CreateEvent(ctx, e)
		if err != nil {
			if errors.Is(err, repository.ErrConflict) {
				return fmt.Errorf("%s:%w", op, ErrEventConflict)
			}
			return fmt.Errorf("%s:%w", op, err)
		}

		if len(tiers) > 0 {
			if err := s.store.Catalog().
				With(tx).
				BatchCreateTicketTypes(ctx, eventID, tiers); err != nil {
				return fmt.Errorf("%s:%w", op, err)
			}
		}

		after(func(ctx context.Context) {
			s.invalidate(ctx, eventID)
		})

		return nil
	})

	return eventID, err
}

// UpdateEvent overwrites the mutable fields of an event.
//
// Returns:
//   - error: catalog.ErrEventNotFound if the event does not exist.
func (s *Service) UpdateEvent(ctx context.Context, e *domain.Event) error {
	const op = "service.catalog.UpdateEvent"

	return s.uow.Do(ctx, func(
		ctx context.Context,
		tx postgresrepo.DB,
		after func(uow.AfterCommit),
	) error {
		if err := s.store.Catalog().With(tx).UpdateEvent(ctx, e); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return fmt.Errorf("%s:%w", op, ErrEventNotFound)
			}
			return fmt.Errorf("%s:%w", op, err)
		}

		after(func(ctx context.Context) {
			s.invalidate(ctx, e.ID)
		})

		return nil
	})
}

// DeleteEvent removes an event and, through cascading constraints, its
// ticket types, tickets and wishlist entries.
//
// Returns:
//   - error: catalog.ErrEventNotFound if the event does not exist.
func (s *Service) DeleteEvent(ctx context.Context, id int64) error {
	const op = "service.catalog.DeleteEvent"

	return s.uow.Do(ctx, func(
		ctx context.Context,
		tx postgresrepo.DB,
		after func(uow.AfterCommit),
	) error {
		if err := s.store.Catalog().With(tx).DeleteEvent(ctx, id); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return fmt.Errorf("%s:%w", op, ErrEventNotFound)
			}
			return fmt.Errorf("%s:%w", op, err)
		}

		after(func(ctx context.Context) {
			s.invalidate(ctx, id)
		})

		return nil
	})
}

// CreateTicketType adds a new tier to an existing event. quantity_total is
// fixed at creation and quantity_sold starts at zero.
//
// Returns:
//   - int64: the created ticket type ID.
//   - error: catalog.ErrInvalidTicketType on a non-positive capacity or
//     negative price.
//   - error: catalog.ErrEventNotFound if the event does not exist.
func (s *Service) CreateTicketType(ctx context.Context, tt *domain.TicketType) (int64, error) {
	const op = "service.catalog.CreateTicketType"

	if tt.QuantityTotal <= 0 || tt.Price.IsNegative() {
		return 0, fmt.Errorf("%s:%w", op, ErrInvalidTicketType)
	}

	var id int64

	err := s.uow.Do(ctx, func(
		ctx context.Context,
		tx postgresrepo.DB,
		after func(uow.AfterCommit),
	) error {
		var err error
		id, err = s.store.Catalog().With(tx).CreateTicketType(ctx, tt)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return fmt.Errorf("%s:%w", op, ErrEventNotFound)
			}
			return fmt.Errorf("%s:%w", op, err)
		}

		after(func(ctx context.Context) {
			s.invalidate(ctx, tt.EventID)
		})

		return nil
	})

	return id, err
}

// UpdateTicketStatus moves a ticket through its status machine. The
// transition table is enforced: Unused may become Used or Cancelled,
// Used and Cancelled are terminal. Inventory counters are not touched.
//
// Returns:
//   - error: catalog.ErrTicketNotFound if the ticket does not exist.
//   - error: catalog.ErrInvalidTransition if the move is not allowed.
func (s *Service) UpdateTicketStatus(ctx context.Context, ticketID int64, next domain.TicketStatus) error {
	const op = "service.catalog.UpdateTicketStatus"

	if !next.Valid() {
		return fmt.Errorf("%s:%w", op, ErrInvalidTransition)
	}

	return s.uow.Do(ctx, func(
		ctx context.Context,
		tx postgresrepo.DB,
		after func(uow.AfterCommit),
	) error {
		current, err := s.store.Catalog().With(tx).TicketStatusForUpdate(ctx, ticketID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return fmt.Errorf("%s:%w", op, ErrTicketNotFound)
			}
			return fmt.Errorf("%s:%w", op, err)
		}

		if !current.CanTransitionTo(next) {
			return fmt.Errorf("%s:%w", op, ErrInvalidTransition)
		}

		if err := s.store.Catalog().With(tx).UpdateTicketStatus(ctx, ticketID, next); err != nil {
			return fmt.Errorf("%s:%w", op, err)
		}

		return nil
	})
}

func (s *Service) invalidate(ctx context.Context, eventID int64) {
	if s.cache != nil {
		_ = s.cache.InvalidateEvent(ctx, eventID)
	}
	if s.pubsub != nil {
		_ = s.pubsub.PublishEventChanged(ctx, eventID)
	}
}
