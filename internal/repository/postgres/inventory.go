package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tessera-live/tessera/internal/domain"
	"github.com/tessera-live/tessera/internal/repository"
)

// InventoryRepo owns the rows the reservation protocol mutates:
// ticket_types counters, tickets, buyers. All methods run on the bound
// handle; inside a reservation that handle is the transaction holding
// the row lock taken by TicketTypeForUpdate.
type InventoryRepo struct {
	pool *pgxpool.Pool
	db   DB
}

func (r *InventoryRepo) With(db DB) *InventoryRepo {
	cp := *r
	cp.db = db
	return &cp
}

func (r *InventoryRepo) handle() DB {
	if r.db != nil {
		return r.db
	}
	return r.pool
}

// TicketTypeForUpdate reads a ticket type and takes an exclusive row lock
// on it. The lock is held until the surrounding transaction commits, which
// serializes concurrent reservations against the same type.
//
// Returns:
//   - *domain.TicketType: the locked row when found.
//   - error: repository.ErrNotFound if the ticket type does not exist.
func (r *InventoryRepo) TicketTypeForUpdate(ctx context.Context, id int64) (*domain.TicketType, error) {
	const op = "postgres.InventoryRepo.TicketTypeForUpdate"

	db := r.handle()

	var tt domain.TicketType
	err := db.QueryRow(ctx,
		`SELECT id, event_id, name, price, quantity_total, quantity_sold
       	 FROM ticket_types
      	 WHERE id = $1
     	 FOR UPDATE`,
		id,
	).Scan(&tt.ID, &tt.EventID, &tt.Name, &tt.Price, &tt.QuantityTotal, &tt.QuantitySold)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	return &tt, nil
}

func (r *InventoryRepo) EventExists(ctx context.Context, id int64) (bool, error) {
	const op = "postgres.InventoryRepo.EventExists"

	db := r.handle()

	var exists bool
	err := db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM events WHERE id = $1)`,
		id,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	return exists, nil
}

// EnsureBuyer creates a buyer record for the user if one does not exist
// and locks the row until the transaction ends. The DO UPDATE arm is a
// no-op write whose only purpose is that lock: concurrent reservations by
// the same buyer serialize here, so the cap count that follows always
// sees the previous reservation's tickets.
func (r *InventoryRepo) EnsureBuyer(ctx context.Context, userID int64) error {
	const op = "postgres.InventoryRepo.EnsureBuyer"

	db := r.handle()

	var id int64
	if err := db.QueryRow(ctx,
		`INSERT INTO buyers(user_id)
       	 VALUES ($1)
     	 ON CONFLICT (user_id) DO UPDATE SET user_id = EXCLUDED.user_id
     	 RETURNING user_id`,
		userID,
	).Scan(&id); err != nil {
		return fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	return nil
}

func (r *InventoryRepo) CountBuyerTickets(ctx context.Context, buyerID, eventID int64) (int64, error) {
	const op = "postgres.InventoryRepo.CountBuyerTickets"

	db := r.handle()

	var count int64
	err := db.QueryRow(ctx,
		`SELECT COUNT(*) FROM tickets WHERE buyer_id = $1 AND event_id = $2`,
		buyerID, eventID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	return count, nil
}

func (r *InventoryRepo) InsertTicket(ctx context.Context, t *domain.Ticket) (int64, error) {
	const op = "postgres.InventoryRepo.InsertTicket"

	db := r.handle()

	var id int64
	err := db.QueryRow(ctx,
		`INSERT INTO tickets(ticket_type_id, event_id, buyer_id, status)
       	 VALUES ($1, $2, $3, $4)
     	 RETURNING id`,
		t.TicketTypeID, t.EventID, t.BuyerID, string(t.Status),
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	return id, nil
}

func (r *InventoryRepo) SetTicketQR(ctx context.Context, ticketID int64, url string) error {
	const op = "postgres.InventoryRepo.SetTicketQR"

	db := r.handle()

	tag, err := db.Exec(ctx,
		`UPDATE tickets SET qr_code = $2 WHERE id = $1`,
		ticketID, url,
	)
	if err != nil {
		return fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s:%w", op, repository.ErrNotFound)
	}

	return nil
}

// IncrementSold bumps quantity_sold by one. The WHERE clause is a backstop:
// the caller must already hold the row lock and have checked capacity, so
// zero affected rows means the invariant would have been violated.
func (r *InventoryRepo) IncrementSold(ctx context.Context, ticketTypeID int64) error {
	const op = "postgres.InventoryRepo.IncrementSold"

	db := r.handle()

	tag, err := db.Exec(ctx,
		`UPDATE ticket_types
        	SET quantity_sold = quantity_sold + 1
      	 WHERE id = $1 AND quantity_sold < quantity_total`,
		ticketTypeID,
	)
	if err != nil {
		return fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s:%w", op, repository.ErrSoldOut)
	}

	return nil
}

// DecrementSoldFloor lowers quantity_sold by one, never below zero.
// A counter already at zero is left untouched and is not an error.
func (r *InventoryRepo) DecrementSoldFloor(ctx context.Context, ticketTypeID int64) error {
	const op = "postgres.InventoryRepo.DecrementSoldFloor"

	db := r.handle()

	if _, err := db.Exec(ctx,
		`UPDATE ticket_types
        	SET quantity_sold = quantity_sold - 1
      	 WHERE id = $1 AND quantity_sold > 0`,
		ticketTypeID,
	); err != nil {
		return fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	return nil
}

func (r *InventoryRepo) TicketByID(ctx context.Context, id int64) (*domain.Ticket, error) {
	const op = "postgres.InventoryRepo.TicketByID"

	db := r.handle()

	var t domain.Ticket
	var status string
	err := db.QueryRow(ctx,
		`SELECT id, ticket_type_id, event_id, buyer_id, status, COALESCE(qr_code, ''), created_at
       	 FROM tickets WHERE id = $1`,
		id,
	).Scan(&t.ID, &t.TicketTypeID, &t.EventID, &t.BuyerID, &status, &t.QRCode, &t.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	t.Status = domain.TicketStatus(status)

	return &t, nil
}

func (r *InventoryRepo) DeleteTicket(ctx context.Context, id int64) error {
	const op = "postgres.InventoryRepo.DeleteTicket"

	db := r.handle()

	tag, err := db.Exec(ctx, `DELETE FROM tickets WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s:%w", op, repository.ErrNotFound)
	}

	return nil
}
