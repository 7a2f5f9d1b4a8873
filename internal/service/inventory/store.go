package inventory

import (
	"context"

	"github.com/tessera-live/tessera/internal/domain"
)

// TxStore is the slice of the persistent store the reservation protocol
// mutates, bound to one open transaction. TicketTypeForUpdate must take an
// exclusive lock on the ticket type row that is held until the transaction
// ends. EnsureBuyer must take the same kind of lock on the buyer row, even
// when it already exists: same-buyer reservations through different ticket
// types serialize on it, which is what keeps the cap count exact.
type TxStore interface {
	TicketTypeForUpdate(ctx context.Context, id int64) (*domain.TicketType, error)
	EventExists(ctx context.Context, id int64) (bool, error)
	EnsureBuyer(ctx context.Context, userID int64) error
	CountBuyerTickets(ctx context.Context, buyerID, eventID int64) (int64, error)
	InsertTicket(ctx context.Context, t *domain.Ticket) (int64, error)
	SetTicketQR(ctx context.Context, ticketID int64, url string) error
	IncrementSold(ctx context.Context, ticketTypeID int64) error
	DecrementSoldFloor(ctx context.Context, ticketTypeID int64) error
	TicketByID(ctx context.Context, id int64) (*domain.Ticket, error)
	DeleteTicket(ctx context.Context, id int64) error
}

// Store runs the critical section. InTx commits when fn returns nil and
// rolls back every write when it returns an error, so a failed reservation
// leaves no half-applied state visible to other transactions.
type Store interface {
	InTx(ctx context.Context, fn func(ctx context.Context, tx TxStore) error) error
	CountBuyerTickets(ctx context.Context, buyerID, eventID int64) (int64, error)
}

// QRGenerator produces the QR code URL embedded in an issued ticket.
type QRGenerator interface {
	GenerateURL(ticketID int64, ticketTypeName string) string
}

// Notifier delivers the post-purchase confirmation. Failures are the
// caller's to log and swallow; they never affect the reservation.
type Notifier interface {
	Send(ctx context.Context, t *domain.TicketWithType) error
}
