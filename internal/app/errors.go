package app

import "errors"

// ErrNotFound and related errors describe operations that were ignored.
var (
	ErrNotFound     = errors.New("not found")
	ErrIDExhausted  = errors.New("id generator produced no unique id")
	ErrUnknownEvent = errors.New("unknown event")
)
