package wishlist

import (
	"context"
	"errors"
	"fmt"

	"github.com/tessera-live/tessera/internal/domain"
	"github.com/tessera-live/tessera/internal/repository"
	postgresrepo "github.com/tessera-live/tessera/internal/repository/postgres"
)

type Service struct {
	store *postgresrepo.Store
}

func New(store *postgresrepo.Store) *Service {
	return &Service{store: store}
}

// List returns the buyer's wishlist, newest first, with event summaries.
func (s *Service) List(ctx context.Context, userID int64) ([]domain.WishlistItem, error) {
	const op = "service.wishlist.List"

	if userID <= 0 {
		return nil, fmt.Errorf("%s:%w", op, ErrInvalidBuyer)
	}

	out, err := s.store.Wishlist().ListByBuyer(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	return out, nil
}

// Contains reports whether the event is on the buyer's wishlist.
func (s *Service) Contains(ctx context.Context, userID, eventID int64) (bool, error) {
	const op = "service.wishlist.Contains"

	ok, err := s.store.Wishlist().Contains(ctx, userID, eventID)
	if err != nil {
		return false, fmt.Errorf("%s:%w", op, err)
	}

	return ok, nil
}

// Add puts an event on the buyer's wishlist. Adding is idempotent from
// the caller's point of view only in that a duplicate is reported, never
// stored twice.
//
// Returns:
//   - int64: the created entry ID.
//   - error: wishlist.ErrEventNotFound if the event does not exist.
//   - error: wishlist.ErrAlreadyInList on a duplicate add.
func (s *Service) Add(ctx context.Context, userID, eventID int64) (int64, error) {
	const op = "service.wishlist.Add"

	if userID <= 0 {
		return 0, fmt.Errorf("%s:%w", op, ErrInvalidBuyer)
	}

	if _, err := s.store.Query().GetEvent(ctx, eventID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return 0, fmt.Errorf("%s:%w", op, ErrEventNotFound)
		}
		return 0, fmt.Errorf("%s:%w", op, err)
	}

	if err := s.store.Inventory().EnsureBuyer(ctx, userID); err != nil {
		return 0, fmt.Errorf("%s:%w", op, err)
	}

	id, err := s.store.Wishlist().Add(ctx, userID, eventID)
	if err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return 0, fmt.Errorf("%s:%w", op, ErrAlreadyInList)
		}
		return 0, fmt.Errorf("%s:%w", op, err)
	}

	return id, nil
}

// Remove takes an event off the buyer's wishlist.
//
// Returns:
//   - error: wishlist.ErrEntryNotFound if the entry does not exist.
func (s *Service) Remove(ctx context.Context, userID, eventID int64) error {
	const op = "service.wishlist.Remove"

	if err := s.store.Wishlist().Remove(ctx, userID, eventID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("%s:%w", op, ErrEntryNotFound)
		}
		return fmt.Errorf("%s:%w", op, err)
	}

	return nil
}
