package domain

import "errors"

var (
	ErrInvalidID       = errors.New("invalid id")
	ErrInvalidTitle    = errors.New("invalid title")
	ErrInvalidCategory = errors.New("invalid category")
	ErrInvalidFilter   = errors.New("invalid filter")
)
