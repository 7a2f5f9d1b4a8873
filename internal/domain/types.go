package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type TicketStatus string

const (
	TicketUnused    TicketStatus = "Unused"
	TicketUsed      TicketStatus = "Used"
	TicketCancelled TicketStatus = "Cancelled"
)

func (s TicketStatus) Valid() bool {
	switch s {
	case TicketUnused, TicketUsed, TicketCancelled:
		return true
	}
	return false
}

// CanTransitionTo reports whether a ticket may move from s to next.
// Used and Cancelled are terminal.
func (s TicketStatus) CanTransitionTo(next TicketStatus) bool {
	if !s.Valid() || !next.Valid() {
		return false
	}
	if s == next {
		return false
	}
	return s == TicketUnused
}

type Event struct {
	ID          int64
	OrganizerID int64
	Name        string
	Category    string
	StartsAt    time.Time
	EndsAt      time.Time
	City        string
	Location    string
	Capacity    *int
	Description string
	ImageURL    string
}

type TicketType struct {
	ID            int64
	EventID       int64
	Name          string
	Price         decimal.Decimal
	QuantityTotal int
	QuantitySold  int
}

func (t TicketType) Remaining() int {
	return t.QuantityTotal - t.QuantitySold
}

type Ticket struct {
	ID           int64
	TicketTypeID int64
	EventID      int64
	BuyerID      *int64 // nil for anonymous tickets
	Status       TicketStatus
	QRCode       string
	CreatedAt    time.Time
}

type TicketWithType struct {
	Ticket
	TicketType TicketType
}

type Buyer struct {
	UserID      int64
	Nationality string
	Location    string
}

type Organizer struct {
	UserID     int64
	IsVerified bool
}

type WishlistItem struct {
	ID      int64
	UserID  int64
	EventID int64
	AddedAt time.Time
	Event   *Event
}

// TicketAllowance reports how many more tickets a buyer may purchase
// for one event.
type TicketAllowance struct {
	Count            int64
	RemainingAllowed int64
	Cap              int64
}

type EventAvailability struct {
	Capacity  int64
	Sold      int64
	Remaining int64
}
