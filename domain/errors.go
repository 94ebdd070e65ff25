package domain

import "errors"

var (
	// ErrInternalServerError is returned when an unexpected condition occurs.
	ErrInternalServerError = errors.New("internal server error")
	// ErrNotFound is returned when the requested item does not exist.
	ErrNotFound = errors.New("your requested item is not found")
	// ErrConflict is returned when the item already exists.
	ErrConflict = errors.New("your item already exists")
	// ErrBadParamInput is returned when the given request parameters are invalid.
	ErrBadParamInput = errors.New("given param is not valid")
)
