package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tessera-live/tessera/internal/domain"
	"github.com/tessera-live/tessera/internal/repository"
)

type WishlistRepo struct {
	pool *pgxpool.Pool
	db   DB
}

func (r *WishlistRepo) With(db DB) *WishlistRepo {
	cp := *r
	cp.db = db
	return &cp
}

func (r *WishlistRepo) handle() DB {
	if r.db != nil {
		return r.db
	}
	return r.pool
}

// ListByBuyer lists wishlist entries for a buyer with event summaries.
func (r *WishlistRepo) ListByBuyer(ctx context.Context, userID int64) ([]domain.WishlistItem, error) {
	const op = "postgres.WishlistRepo.ListByBuyer"

	db := r.handle()

	rows, err := db.Query(ctx,
		`SELECT w.id, w.user_id, w.event_id, w.added_at,
	        e.id, e.organizer_id, e.name, e.category, e.starts_at, e.ends_at,
	        COALESCE(e.city, ''), COALESCE(e.location, ''), e.capacity,
	        COALESCE(e.description, ''), COALESCE(e.image_url, '')
       	 FROM wishlists w
       	 JOIN events e ON e.id = w.event_id
      	 WHERE w.user_id = $1
      	 ORDER BY w.added_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	defer rows.Close()

	var out []domain.WishlistItem
	for rows.Next() {
		var w domain.WishlistItem
		var e domain.Event

		if err := rows.Scan(
			&w.ID, &w.UserID, &w.EventID, &w.AddedAt,
			&e.ID, &e.OrganizerID, &e.Name, &e.Category, &e.StartsAt, &e.EndsAt,
			&e.City, &e.Location, &e.Capacity, &e.Description, &e.ImageURL,
		); err != nil {
			return nil, fmt.Errorf("%s:%w", op, translateDBErr(err))
		}

		w.Event = &e
		out = append(out, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	return out, nil
}

func (r *WishlistRepo) Contains(ctx context.Context, userID, eventID int64) (bool, error) {
	const op = "postgres.WishlistRepo.Contains"

	db := r.handle()

	var exists bool
	err := db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM wishlists WHERE user_id = $1 AND event_id = $2)`,
		userID, eventID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	return exists, nil
}

// Add inserts a wishlist entry. The unique (user_id, event_id) constraint
// turns a duplicate add into repository.ErrConflict.
func (r *WishlistRepo) Add(ctx context.Context, userID, eventID int64) (int64, error) {
	const op = "postgres.WishlistRepo.Add"

	db := r.handle()

	var id int64
	if err := db.QueryRow(ctx,
		`INSERT INTO wishlists(user_id, event_id)
       	 VALUES ($1, $2)
     	 RETURNING id`,
		userID, eventID,
	).Scan(&id); err != nil {
		return 0, fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	return id, nil
}

func (r *WishlistRepo) Remove(ctx context.Context, userID, eventID int64) error {
	const op = "postgres.WishlistRepo.Remove"

	db := r.handle()

	tag, err := db.Exec(ctx,
		`DELETE FROM wishlists WHERE user_id = $1 AND event_id = $2`,
		userID, eventID,
	)
	if err != nil {
		return fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s:%w", op, repository.ErrNotFound)
	}

	return nil
}
