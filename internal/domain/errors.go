package domain

import "errors"

var (
	ErrNotFound        = errors.New("not found")
	ErrConflict        = errors.New("already exists")
	ErrInvalidInput    = errors.New("invalid input")
	ErrUnknownScenario = errors.New("unknown weather scenario")
	ErrUnavailable     = errors.New("data unavailable")
)
