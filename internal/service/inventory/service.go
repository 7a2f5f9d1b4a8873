package inventory

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/tessera-live/tessera/internal/domain"
	"github.com/tessera-live/tessera/internal/metrics"
	"github.com/tessera-live/tessera/internal/repository"
	redisrepo "github.com/tessera-live/tessera/internal/repository/redis"
)

type Config struct {
	// PurchaseCap is the maximum number of tickets one buyer may hold
	// for one event.
	PurchaseCap int
	// NotifyTimeout bounds the post-commit confirmation webhook call.
	NotifyTimeout time.Duration
}

// Service owns the ticket inventory invariants: quantity_sold never
// exceeds quantity_total, and no buyer exceeds the per-event purchase cap.
// All counter mutations go through ReserveAndIssueTicket and ReleaseTicket.
type Service struct {
	store    Store
	qr       QRGenerator
	notifier Notifier
	cache    *redisrepo.Cache
	pubsub   *redisrepo.EventsPubSub
	limiter  *redisrepo.SlidingWindowLimiter
	logger   *slog.Logger
	cfg      Config
}

func New(
	store Store,
	qr QRGenerator,
	notifier Notifier,
	cache *redisrepo.Cache,
	pubsub *redisrepo.EventsPubSub,
	limiter *redisrepo.SlidingWindowLimiter,
	logger *slog.Logger,
	cfg Config,
) *Service {
	if cfg.PurchaseCap <= 0 {
		cfg.PurchaseCap = 2
	}

	if cfg.NotifyTimeout <= 0 {
		cfg.NotifyTimeout = 5 * time.Second
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &Service{
		store:    store,
		qr:       qr,
		notifier: notifier,
		cache:    cache,
		pubsub:   pubsub,
		limiter:  limiter,
		logger:   logger,
		cfg:      cfg,
	}
}

// ReserveAndIssueTicket issues one ticket of the given type, deducting one
// unit of remaining inventory. The whole critical section runs in one
// transaction holding a row lock on the ticket type and, for identified
// purchases, on the buyer row, so the operation is all-or-nothing: on any
// error no ticket exists and no counter moved.
//
// Parameters:
//   - ctx: request-scoped context.
//   - ticketTypeID: the tier being purchased.
//   - eventID: the event the ticket is for; must own the ticket type.
//   - buyerID: purchasing user, nil for an anonymous ticket.
//   - status: initial status, defaults to domain.TicketUnused.
//   - rlKey: rate-limit key, empty to skip limiting.
//
// Returns:
//   - *domain.TicketWithType: the issued ticket with a ticket type snapshot.
//   - error: inventory.ErrTicketTypeNotFound, inventory.ErrEventNotFound,
//     inventory.ErrTicketTypeEventMismatch, inventory.ErrSoldOut,
//     inventory.ErrPurchaseLimitExceeded, inventory.ErrRetryable.
func (s *Service) ReserveAndIssueTicket(
	ctx context.Context,
	ticketTypeID, eventID int64,
	buyerID *int64,
	status domain.TicketStatus,
	rlKey string,
) (*domain.TicketWithType, error) {
	const op = "service.inventory.ReserveAndIssueTicket"

	if status == "" {
		status = domain.TicketUnused
	}

	if !status.Valid() {
		return nil, fmt.Errorf("%s:%w", op, ErrInvalidStatus)
	}

	if s.limiter != nil && rlKey != "" {
		ok, _, retry, err := s.limiter.Allow(ctx, rlKey)
		if err != nil {
			return nil, fmt.Errorf("%s:%w", op, err)
		}
		if !ok {
			return nil, fmt.Errorf("%s: rate limited, retry in %s", op, retry)
		}
	}

	var out *domain.TicketWithType

	err := s.store.InTx(ctx, func(ctx context.Context, tx TxStore) error {
		tt, err := tx.TicketTypeForUpdate(ctx, ticketTypeID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return fmt.Errorf("%s:%w", op, ErrTicketTypeNotFound)
			}

			return fmt.Errorf("%s:%w", op, err)
		}

		exists, err := tx.EventExists(ctx, eventID)
		if err != nil {
			return fmt.Errorf("%s:%w", op, err)
		}
		if !exists {
			return fmt.Errorf("%s:%w", op, ErrEventNotFound)
		}

		if tt.EventID != eventID {
			return fmt.Errorf("%s:%w", op, ErrTicketTypeEventMismatch)
		}

		if tt.Remaining() <= 0 {
			return fmt.Errorf("%s:%w", op, ErrSoldOut)
		}

		if buyerID != nil {
			// the buyer row lock taken here serializes same-buyer
			// reservations across ticket types, so the count below cannot
			// miss a concurrent purchase
			if err := tx.EnsureBuyer(ctx, *buyerID); err != nil {
				return fmt.Errorf("%s:%w", op, err)
			}

			count, err := tx.CountBuyerTickets(ctx, *buyerID, eventID)
			if err != nil {
				return fmt.Errorf("%s:%w", op, err)
			}
			if count >= int64(s.cfg.PurchaseCap) {
				return fmt.Errorf("%s:%w", op, ErrPurchaseLimitExceeded)
			}
		}

		t := &domain.Ticket{
			TicketTypeID: ticketTypeID,
			EventID:      eventID,
			BuyerID:      buyerID,
			Status:       status,
		}

		id, err := tx.InsertTicket(ctx, t)
		if err != nil {
			return fmt.Errorf("%s:%w", op, err)
		}
		t.ID = id

		t.QRCode = s.qr.GenerateURL(id, tt.Name)
		if err := tx.SetTicketQR(ctx, id, t.QRCode); err != nil {
			return fmt.Errorf("%s:%w", op, err)
		}

		if err := tx.IncrementSold(ctx, ticketTypeID); err != nil {
			return fmt.Errorf("%s:%w", op, err)
		}
		tt.QuantitySold++

		out = &domain.TicketWithType{Ticket: *t, TicketType: *tt}

		return nil
	})
	if err != nil {
		s.countRejection(err)

		if errors.Is(err, repository.ErrRetryable) {
			return nil, fmt.Errorf("%s:%w", op, ErrRetryable)
		}

		return nil, err
	}

	metrics.TicketIssued()
	s.afterIssue(ctx, out)

	return out, nil
}

// ReleaseTicket deletes a ticket and returns its unit to inventory.
// Both mutations run in one transaction; the counter decrement floors at
// zero and is skipped entirely when the owning ticket type no longer exists.
//
// Returns:
//   - error: inventory.ErrTicketNotFound if the ticket does not exist.
func (s *Service) ReleaseTicket(ctx context.Context, ticketID int64) error {
	const op = "service.inventory.ReleaseTicket"

	var eventID int64

	err := s.store.InTx(ctx, func(ctx context.Context, tx TxStore) error {
		t, err := tx.TicketByID(ctx, ticketID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return fmt.Errorf("%s:%w", op, ErrTicketNotFound)
			}

			return fmt.Errorf("%s:%w", op, err)
		}

		eventID = t.EventID

		_, err = tx.TicketTypeForUpdate(ctx, t.TicketTypeID)
		switch {
		case err == nil:
			if err := tx.DecrementSoldFloor(ctx, t.TicketTypeID); err != nil {
				return fmt.Errorf("%s:%w", op, err)
			}
		case errors.Is(err, repository.ErrNotFound):
			// ticket type already gone, nothing to return inventory to
		default:
			return fmt.Errorf("%s:%w", op, err)
		}

		if err := tx.DeleteTicket(ctx, ticketID); err != nil {
			// a concurrent release may have deleted the row after TicketByID
			if errors.Is(err, repository.ErrNotFound) {
				return fmt.Errorf("%s:%w", op, ErrTicketNotFound)
			}

			return fmt.Errorf("%s:%w", op, err)
		}

		return nil
	})
	if err != nil {
		if errors.Is(err, repository.ErrRetryable) {
			return fmt.Errorf("%s:%w", op, ErrRetryable)
		}

		return err
	}

	metrics.TicketReleased()
	s.invalidate(ctx, eventID)

	return nil
}

// CountBuyerTicketsForEvent reports how many tickets the buyer holds for
// the event and how many more the purchase cap allows. Pure read.
func (s *Service) CountBuyerTicketsForEvent(ctx context.Context, buyerID, eventID int64) (*domain.TicketAllowance, error) {
	const op = "service.inventory.CountBuyerTicketsForEvent"

	count, err := s.store.CountBuyerTickets(ctx, buyerID, eventID)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	limit := int64(s.cfg.PurchaseCap)
	remaining := limit - count
	if remaining < 0 {
		remaining = 0
	}

	return &domain.TicketAllowance{
		Count:            count,
		RemainingAllowed: remaining,
		Cap:              limit,
	}, nil
}

// afterIssue runs the post-commit side effects of a successful reservation.
// None of them can fail the reservation: the webhook gets its own timeout
// and its error is logged and dropped.
func (s *Service) afterIssue(ctx context.Context, t *domain.TicketWithType) {
	s.invalidate(ctx, t.EventID)

	if s.notifier == nil {
		return
	}

	notifyCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.cfg.NotifyTimeout)
	defer cancel()

	if err := s.notifier.Send(notifyCtx, t); err != nil {
		s.logger.Warn("ticket confirmation notification failed",
			"ticket_id", t.ID,
			"event_id", t.EventID,
			"error", err,
		)
	}
}

func (s *Service) invalidate(ctx context.Context, eventID int64) {
	if s.cache != nil {
		_ = s.cache.InvalidateEvent(ctx, eventID)
	}

	if s.pubsub != nil {
		_ = s.pubsub.PublishEventChanged(ctx, eventID)
	}
}

func (s *Service) countRejection(err error) {
	switch {
	case errors.Is(err, ErrSoldOut):
		metrics.ReservationRejected("sold_out")
	case errors.Is(err, ErrPurchaseLimitExceeded):
		metrics.ReservationRejected("purchase_limit")
	case errors.Is(err, ErrTicketTypeNotFound), errors.Is(err, ErrEventNotFound):
		metrics.ReservationRejected("not_found")
	case errors.Is(err, ErrTicketTypeEventMismatch):
		metrics.ReservationRejected("event_mismatch")
	case errors.Is(err, repository.ErrRetryable):
		metrics.ReservationRejected("transient")
	default:
		metrics.ReservationRejected("other")
	}
}
