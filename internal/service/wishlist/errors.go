package wishlist

import (
	"errors"
)

var (
	ErrEventNotFound = errors.New("event not found")
	ErrEntryNotFound = errors.New("wishlist entry not found")
	ErrAlreadyInList = errors.New("event already in wishlist")
	ErrInvalidBuyer  = errors.New("invalid buyer")
)
