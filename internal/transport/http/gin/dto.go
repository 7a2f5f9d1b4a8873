package httpgin

import (
	"time"
)

type PurchaseTicketRequest struct {
	TicketTypeID int64  `json:"ticket_type_id" binding:"required"`
	EventID      int64  `json:"event_id" binding:"required"`
	BuyerID      *int64 `json:"buyer_id"`
	Status       string `json:"status"`
}

type PurchaseTicketResponse struct {
	TicketID     int64  `json:"ticket_id"`
	EventID      int64  `json:"event_id"`
	TicketTypeID int64  `json:"ticket_type_id"`
	BuyerID      *int64 `json:"buyer_id,omitempty"`
	Status       string `json:"status"`
	Price        string `json:"price"`
	QRCodeURL    string `json:"qr_code_url"`
}

type UpdateTicketStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type TicketTypeInput struct {
	Name          string `json:"name" binding:"required"`
	Price         string `json:"price" binding:"required"`
	QuantityTotal int    `json:"quantity_total" binding:"required,gt=0"`
}

type CreateEventRequest struct {
	OrganizerID int64             `json:"organizer_id" binding:"required"`
	Name        string            `json:"name" binding:"required"`
	Category    string            `json:"category"`
	StartsAt    string            `json:"starts_at" binding:"required"`
	EndsAt      string            `json:"ends_at" binding:"required"`
	City        string            `json:"city"`
	Location    string            `json:"location"`
	Capacity    *int              `json:"capacity"`
	Description string            `json:"description"`
	ImageURL    string            `json:"image_url"`
	TicketTypes []TicketTypeInput `json:"ticket_types"`
}

type UpdateEventRequest struct {
	Name        string `json:"name" binding:"required"`
	Category    string `json:"category"`
	StartsAt    string `json:"starts_at" binding:"required"`
	EndsAt      string `json:"ends_at" binding:"required"`
	City        string `json:"city"`
	Location    string `json:"location"`
	Capacity    *int   `json:"capacity"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url"`
}

type CreateEventResponse struct {
	EventID int64 `json:"event_id"`
}

type CreateTicketTypeResponse struct {
	TicketTypeID int64 `json:"ticket_type_id"`
}

type AddWishlistRequest struct {
	EventID int64 `json:"event_id" binding:"required"`
}

type AddWishlistResponse struct {
	EntryID int64 `json:"entry_id"`
}

type AllowanceResponse struct {
	Count            int64 `json:"count"`
	RemainingAllowed int64 `json:"remaining_allowed"`
	Cap              int64 `json:"cap"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

func parseRFC3339(s string) (time.Time, error) {
	return time.Parse(time.RFC3339, s)
}
