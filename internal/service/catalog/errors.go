package catalog

import (
	"errors"
)

var (
	ErrEventNotFound     = errors.New("event not found")
	ErrTicketNotFound    = errors.New("ticket not found")
	ErrEventConflict     = errors.New("event already exists")
	ErrInvalidTicketType = errors.New("invalid ticket type")
	ErrInvalidTransition = errors.New("status transition not allowed")
)
