package api

import "errors"

// Sentinel kinds for API errors. ErrMissingFields carries the exact message
// the write endpoint promises for absent required keys.
var (
	ErrMissingFields = errors.New("Missing required fields") //nolint:staticcheck // wire-visible message
	ErrBadRequest    = errors.New("bad request")
)
