package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tessera-live/tessera/internal/domain"
	"github.com/tessera-live/tessera/internal/repository"
)

type CatalogRepo struct {
	pool *pgxpool.Pool
	db   DB
}

func (r *CatalogRepo) With(db DB) *CatalogRepo {
	cp := *r
	cp.db = db
	return &cp
}

func (r *CatalogRepo) handle() DB {
	if r.db != nil {
		return r.db
	}
	return r.pool
}

func (r *CatalogRepo) CreateEvent(ctx context.Context, e *domain.Event) (int64, error) {
	const op = "postgres.CatalogRepo.CreateEvent"

	db := r.handle()

	var id int64
	if err := db.QueryRow(ctx,
		`INSERT INTO events(organizer_id, name, category, starts_at, ends_at,
	                    city, location, capacity, description, image_url)
       	 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
     	 RETURNING id`,
		e.OrganizerID, e.Name, e.Category, e.StartsAt, e.EndsAt,
		e.City, e.Location, e.Capacity, e.Description, e.ImageURL,
	).Scan(&id); err != nil {
		return 0, fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	return id, nil
}

func (r *CatalogRepo) UpdateEvent(ctx context.Context, e *domain.Event) error {
	const op = "postgres.CatalogRepo.UpdateEvent"

	db := r.handle()

	tag, err := db.Exec(ctx,
		`UPDATE events
        	SET name = $2, category = $3, starts_at = $4, ends_at = $5,
	        city = $6, location = $7, capacity = $8, description = $9,
	        image_url = $10
      	 WHERE id = $1`,
		e.ID, e.Name, e.Category, e.StartsAt, e.EndsAt,
		e.City, e.Location, e.Capacity, e.Description, e.ImageURL,
	)
	if err != nil {
		return fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s:%w", op, repository.ErrNotFound)
	}

	return nil
}

func (r *CatalogRepo) DeleteEvent(ctx context.Context, id int64) error {
	const op = "postgres.CatalogRepo.DeleteEvent"

	db := r.handle()

	tag, err := db.Exec(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s:%w", op, repository.ErrNotFound)
	}

	return nil
}

func (r *CatalogRepo) CreateTicketType(ctx context.Context, tt *domain.TicketType) (int64, error) {
	const op = "postgres.CatalogRepo.CreateTicketType"

	db := r.handle()

	var id int64
	if err := db.QueryRow(ctx,
		`INSERT INTO ticket_types(event_id, name, price, quantity_total, quantity_sold)
       	 VALUES ($1, $2, $3, $4, 0)
     	 RETURNING id`,
		tt.EventID, tt.Name, tt.Price, tt.QuantityTotal,
	).Scan(&id); err != nil {
		return 0, fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	return id, nil
}

// BatchCreateTicketTypes inserts all tiers of a new event in one batch.
func (r *CatalogRepo) BatchCreateTicketTypes(ctx context.Context, eventID int64, tts []domain.TicketType) error {
	const op = "postgres.CatalogRepo.BatchCreateTicketTypes"

	db := r.handle()

	batch := &pgx.Batch{}
	for _, tt := range tts {
		batch.Queue(
			`INSERT INTO ticket_types(event_id, name, price, quantity_total, quantity_sold)
         	 VALUES ($1, $2, $3, $4, 0)`,
			eventID, tt.Name, tt.Price, tt.QuantityTotal,
		)
	}
	if err := db.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	return nil
}

// TicketStatusForUpdate reads a ticket's status under a row lock so a
// status transition cannot race another writer.
//
// Returns:
//   - domain.TicketStatus: the current status.
//   - error: repository.ErrNotFound if the ticket is not found.
func (r *CatalogRepo) TicketStatusForUpdate(ctx context.Context, ticketID int64) (domain.TicketStatus, error) {
	const op = "postgres.CatalogRepo.TicketStatusForUpdate"

	db := r.handle()

	var status string
	err := db.QueryRow(ctx,
		`SELECT status FROM tickets WHERE id = $1 FOR UPDATE`,
		ticketID,
	).Scan(&status)
	if err != nil {
		return "", fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	return domain.TicketStatus(status), nil
}

func (r *CatalogRepo) UpdateTicketStatus(ctx context.Context, ticketID int64, status domain.TicketStatus) error {
	const op = "postgres.CatalogRepo.UpdateTicketStatus"

	db := r.handle()

	tag, err := db.Exec(ctx,
		`UPDATE tickets SET status = $2 WHERE id = $1`,
		ticketID, string(status),
	)
	if err != nil {
		return fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s:%w", op, repository.ErrNotFound)
	}

	return nil
}
