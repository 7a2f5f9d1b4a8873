package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tessera-live/tessera/internal/domain"
	"github.com/tessera-live/tessera/internal/repository"
)

type QueryRepo struct {
	pool *pgxpool.Pool
	db   DB
}

func (r *QueryRepo) With(db DB) *QueryRepo {
	cp := *r
	cp.db = db
	return &cp
}

func (r *QueryRepo) handle() DB {
	if r.db != nil {
		return r.db
	}
	return r.pool
}

// GetEvent retrieves an event by its ID.
//
// Returns:
//   - *domain.Event: the event when found.
//   - error: repository.ErrNotFound if the event is not found.
func (r *QueryRepo) GetEvent(ctx context.Context, id int64) (*domain.Event, error) {
	const op = "postgres.QueryRepo.GetEvent"

	db := r.handle()

	var e domain.Event
	err := db.QueryRow(ctx,
		`SELECT id, organizer_id, name, category, starts_at, ends_at,
	        COALESCE(city, ''), COALESCE(location, ''), capacity,
	        COALESCE(description, ''), COALESCE(image_url, '')
       	 FROM events WHERE id = $1`,
		id,
	).Scan(
		&e.ID, &e.OrganizerID, &e.Name, &e.Category, &e.StartsAt, &e.EndsAt,
		&e.City, &e.Location, &e.Capacity, &e.Description, &e.ImageURL,
	)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	return &e, nil
}

// ListEvents lists events ordered by start time.
func (r *QueryRepo) ListEvents(ctx context.Context, limit, offset int) ([]domain.Event, error) {
	const op = "postgres.QueryRepo.ListEvents"

	db := r.handle()

	rows, err := db.Query(ctx,
		`SELECT id, organizer_id, name, category, starts_at, ends_at,
	        COALESCE(city, ''), COALESCE(location, ''), capacity,
	        COALESCE(description, ''), COALESCE(image_url, '')
		 FROM events
		 ORDER BY starts_at
		 LIMIT $1 OFFSET $2`,
		limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	defer rows.Close()

	var out []domain.Event
	for rows.Next() {
		var e domain.Event
		if err := rows.Scan(
			&e.ID, &e.OrganizerID, &e.Name, &e.Category, &e.StartsAt, &e.EndsAt,
			&e.City, &e.Location, &e.Capacity, &e.Description, &e.ImageURL,
		); err != nil {
			return nil, fmt.Errorf("%s:%w", op, translateDBErr(err))
		}

		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	return out, nil
}

// GetTicketType retrieves a ticket type by its ID.
//
// Returns:
//   - *domain.TicketType: the ticket type when found.
//   - error: repository.ErrNotFound if the ticket type is not found.
func (r *QueryRepo) GetTicketType(ctx context.Context, id int64) (*domain.TicketType, error) {
	const op = "postgres.QueryRepo.GetTicketType"

	db := r.handle()

	var tt domain.TicketType
	err := db.QueryRow(ctx,
		`SELECT id, event_id, name, price, quantity_total, quantity_sold
       	 FROM ticket_types WHERE id = $1`,
		id,
	).Scan(&tt.ID, &tt.EventID, &tt.Name, &tt.Price, &tt.QuantityTotal, &tt.QuantitySold)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	return &tt, nil
}

// ListTicketTypesByEvent lists all ticket tiers of an event.
func (r *QueryRepo) ListTicketTypesByEvent(ctx context.Context, eventID int64) ([]domain.TicketType, error) {
	const op = "postgres.QueryRepo.ListTicketTypesByEvent"

	db := r.handle()

	rows, err := db.Query(ctx,
		`SELECT id, event_id, name, price, quantity_total, quantity_sold
       	 FROM ticket_types
      	 WHERE event_id = $1
      	 ORDER BY price`,
		eventID,
	)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	defer rows.Close()

	var out []domain.TicketType
	for rows.Next() {
		var tt domain.TicketType
		if err := rows.Scan(
			&tt.ID, &tt.EventID, &tt.Name, &tt.Price, &tt.QuantityTotal, &tt.QuantitySold,
		); err != nil {
			return nil, fmt.Errorf("%s:%w", op, translateDBErr(err))
		}

		out = append(out, tt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	return out, nil
}

// GetTicketWithType retrieves a ticket together with its ticket type snapshot.
//
// Returns:
//   - *domain.TicketWithType: the ticket when found.
//   - error: repository.ErrNotFound if the ticket is not found.
func (r *QueryRepo) GetTicketWithType(ctx context.Context, id int64) (*domain.TicketWithType, error) {
	const op = "postgres.QueryRepo.GetTicketWithType"

	db := r.handle()

	var out domain.TicketWithType
	var status string
	err := db.QueryRow(ctx,
		`SELECT t.id, t.ticket_type_id, t.event_id, t.buyer_id, t.status,
	        COALESCE(t.qr_code, ''), t.created_at,
	        tt.id, tt.event_id, tt.name, tt.price, tt.quantity_total, tt.quantity_sold
       	 FROM tickets t
       	 JOIN ticket_types tt ON tt.id = t.ticket_type_id
      	 WHERE t.id = $1`,
		id,
	).Scan(
		&out.Ticket.ID, &out.Ticket.TicketTypeID, &out.Ticket.EventID,
		&out.Ticket.BuyerID, &status, &out.Ticket.QRCode, &out.Ticket.CreatedAt,
		&out.TicketType.ID, &out.TicketType.EventID, &out.TicketType.Name,
		&out.TicketType.Price, &out.TicketType.QuantityTotal, &out.TicketType.QuantitySold,
	)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	out.Ticket.Status = domain.TicketStatus(status)

	return &out, nil
}

// ListBuyerTickets lists all tickets held by a buyer, newest first.
func (r *QueryRepo) ListBuyerTickets(ctx context.Context, buyerID int64) ([]domain.TicketWithType, error) {
	const op = "postgres.QueryRepo.ListBuyerTickets"

	db := r.handle()

	rows, err := db.Query(ctx,
		`SELECT t.id, t.ticket_type_id, t.event_id, t.buyer_id, t.status,
	        COALESCE(t.qr_code, ''), t.created_at,
	        tt.id, tt.event_id, tt.name, tt.price, tt.quantity_total, tt.quantity_sold
       	 FROM tickets t
       	 JOIN ticket_types tt ON tt.id = t.ticket_type_id
      	 WHERE t.buyer_id = $1
      	 ORDER BY t.created_at DESC`,
		buyerID,
	)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	defer rows.Close()

	var out []domain.TicketWithType
	for rows.Next() {
		var twt domain.TicketWithType
		var status string

		if err := rows.Scan(
			&twt.Ticket.ID, &twt.Ticket.TicketTypeID, &twt.Ticket.EventID,
			&twt.Ticket.BuyerID, &status, &twt.Ticket.QRCode, &twt.Ticket.CreatedAt,
			&twt.TicketType.ID, &twt.TicketType.EventID, &twt.TicketType.Name,
			&twt.TicketType.Price, &twt.TicketType.QuantityTotal, &twt.TicketType.QuantitySold,
		); err != nil {
			return nil, fmt.Errorf("%s:%w", op, translateDBErr(err))
		}

		twt.Ticket.Status = domain.TicketStatus(status)
		out = append(out, twt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	return out, nil
}

// EventAvailability aggregates capacity and sold counters across all
// ticket types of an event.
//
// Returns:
//   - *domain.EventAvailability: the aggregated counters.
//   - error: repository.ErrNotFound if the event is not found.
func (r *QueryRepo) EventAvailability(ctx context.Context, eventID int64) (*domain.EventAvailability, error) {
	const op = "postgres.QueryRepo.EventAvailability"

	db := r.handle()

	var exists bool
	if err := db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM events WHERE id = $1)`,
		eventID,
	).Scan(&exists); err != nil {
		return nil, fmt.Errorf("%s:%w", op, translateDBErr(err))
	}
	if !exists {
		return nil, fmt.Errorf("%s:%w", op, repository.ErrNotFound)
	}

	var ea domain.EventAvailability
	err := db.QueryRow(ctx,
		`SELECT COALESCE(SUM(quantity_total), 0), COALESCE(SUM(quantity_sold), 0)
       	 FROM ticket_types
      	 WHERE event_id = $1`,
		eventID,
	).Scan(&ea.Capacity, &ea.Sold)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	ea.Remaining = ea.Capacity - ea.Sold

	return &ea, nil
}
