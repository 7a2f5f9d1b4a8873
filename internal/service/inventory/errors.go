package inventory

import "errors"

var (
	ErrTicketTypeNotFound      = errors.New("ticket type not found")
	ErrEventNotFound           = errors.New("event not found")
	ErrTicketNotFound          = errors.New("ticket not found")
	ErrTicketTypeEventMismatch = errors.New("ticket type does not belong to event")
	ErrSoldOut                 = errors.New("no more tickets available for this type")
	ErrPurchaseLimitExceeded   = errors.New("purchase limit for this event reached")
	ErrInvalidStatus           = errors.New("invalid ticket status")
	ErrRetryable               = errors.New("transient conflict, retry the purchase")
)
