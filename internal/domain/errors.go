package domain

import "errors"

var (
	ErrNotFound           = errors.New("not found")
	ErrInvalidRequest     = errors.New("invalid request")
	ErrUnknownDestination = errors.New("unknown destination")
	ErrUnavailable        = errors.New("service unavailable")
)
