package repository

import "errors"

// Sentinel kinds for store errors.
var (
	ErrConnect = errors.New("store connect failed")
	ErrWrite   = errors.New("store write failed")
	ErrQuery   = errors.New("store query failed")
)
