package query

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/tessera-live/tessera/internal/domain"
	"github.com/tessera-live/tessera/internal/repository"
	postgresrepo "github.com/tessera-live/tessera/internal/repository/postgres"
	redisrepo "github.com/tessera-live/tessera/internal/repository/redis"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// Config controls cache TTLs for the read side. Availability changes on
// every reservation, so it gets a much shorter TTL than the summary.
type Config struct {
	SummaryTTL      time.Duration
	AvailabilityTTL time.Duration
}

type Service struct {
	store *postgresrepo.Store
	cache *redisrepo.Cache
	cfg   Config
}

func New(store *postgresrepo.Store, cache *redisrepo.Cache, cfg Config) *Service {
	if cfg.SummaryTTL <= 0 {
		cfg.SummaryTTL = 5 * time.Minute
	}
	if cfg.AvailabilityTTL <= 0 {
		cfg.AvailabilityTTL = 5 * time.Second
	}

	return &Service{
		store: store,
		cache: cache,
		cfg:   cfg,
	}
}

// GetEvent returns an event summary, served from cache when possible.
//
// Returns:
//   - *domain.Event: the event when found.
//   - error: query.ErrEventNotFound if the event does not exist.
func (s *Service) GetEvent(ctx context.Context, id int64) (*domain.Event, error) {
	const op = "service.query.GetEvent"

	load := func(ctx context.Context) (*domain.Event, error) {
		return s.store.Query().GetEvent(ctx, id)
	}

	var e *domain.Event
	var err error

	if s.cache != nil {
		e, err = redisrepo.GetOrSetJSON(ctx, s.cache, redisrepo.KeyEventSummary(id), s.cfg.SummaryTTL, load)
	} else {
		e, err = load(ctx)
	}
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%s:%w", op, ErrEventNotFound)
		}
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	return e, nil
}

// ListEvents lists events ordered by start time. Page is 1-based; out of
// range values fall back to the defaults.
func (s *Service) ListEvents(ctx context.Context, page, pageSize int) ([]domain.Event, error) {
	const op = "service.query.ListEvents"

	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > maxPageSize {
		pageSize = defaultPageSize
	}

	out, err := s.store.Query().ListEvents(ctx, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	return out, nil
}

// ListTicketTypesByEvent lists the tiers of an event, cached per event.
//
// Returns:
//   - error: query.ErrEventNotFound if the event does not exist.
func (s *Service) ListTicketTypesByEvent(ctx context.Context, eventID int64) ([]domain.TicketType, error) {
	const op = "service.query.ListTicketTypesByEvent"

	load := func(ctx context.Context) ([]domain.TicketType, error) {
		if _, err := s.store.Query().GetEvent(ctx, eventID); err != nil {
			return nil, err
		}
		return s.store.Query().ListTicketTypesByEvent(ctx, eventID)
	}

	var out []domain.TicketType
	var err error

	if s.cache != nil {
		out, err = redisrepo.GetOrSetJSON(ctx, s.cache, redisrepo.KeyEventTicketTypes(eventID), s.cfg.SummaryTTL, load)
	} else {
		out, err = load(ctx)
	}
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%s:%w", op, ErrEventNotFound)
		}
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	return out, nil
}

// EventAvailability returns the aggregated capacity, sold and remaining
// counters for an event. Served from a short-TTL cache; reservations
// invalidate the key, so staleness is bounded either way.
//
// Returns:
//   - error: query.ErrEventNotFound if the event does not exist.
func (s *Service) EventAvailability(ctx context.Context, eventID int64) (*domain.EventAvailability, error) {
	const op = "service.query.EventAvailability"

	load := func(ctx context.Context) (*domain.EventAvailability, error) {
		return s.store.Query().EventAvailability(ctx, eventID)
	}

	var ea *domain.EventAvailability
	var err error

	if s.cache != nil {
		ea, err = redisrepo.GetOrSetJSON(ctx, s.cache, redisrepo.KeyEventAvailability(eventID), s.cfg.AvailabilityTTL, load)
	} else {
		ea, err = load(ctx)
	}
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%s:%w", op, ErrEventNotFound)
		}
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	return ea, nil
}

// GetTicketType retrieves a single ticket tier.
//
// Returns:
//   - error: query.ErrTicketTypeNotFound if the tier does not exist.
func (s *Service) GetTicketType(ctx context.Context, id int64) (*domain.TicketType, error) {
	const op = "service.query.GetTicketType"

	tt, err := s.store.Query().GetTicketType(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%s:%w", op, ErrTicketTypeNotFound)
		}
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	return tt, nil
}

// GetTicket retrieves a ticket together with its tier snapshot.
//
// Returns:
//   - error: query.ErrTicketNotFound if the ticket does not exist.
func (s *Service) GetTicket(ctx context.Context, id int64) (*domain.TicketWithType, error) {
	const op = "service.query.GetTicket"

	t, err := s.store.Query().GetTicketWithType(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%s:%w", op, ErrTicketNotFound)
		}
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	return t, nil
}

// ListBuyerTickets lists all tickets held by a buyer, newest first. Not
// cached: a buyer usually looks at their own tickets right after buying.
func (s *Service) ListBuyerTickets(ctx context.Context, buyerID int64) ([]domain.TicketWithType, error) {
	const op = "service.query.ListBuyerTickets"

	out, err := s.store.Query().ListBuyerTickets(ctx, buyerID)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	return out, nil
}
