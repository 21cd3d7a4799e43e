package model

import "errors"

// Sentinel kinds for model errors.
var (
	ErrNonNumericSteps = errors.New("step_count is not an integer")
)
