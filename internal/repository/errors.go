package repository

import "errors"

var (
	ErrNotFound  = errors.New("not found")
	ErrConflict  = errors.New("conflict")
	ErrSoldOut   = errors.New("no tickets remaining for this type")
	ErrRetryable = errors.New("transient conflict, retry")
)
