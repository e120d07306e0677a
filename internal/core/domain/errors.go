package domain

import "errors"

var (
	ErrInvalidCoordinate = errors.New("invalid coordinate")
	ErrDuplicateID       = errors.New("duplicate attraction id")
	ErrUnknownSelection  = errors.New("unknown selection")
	ErrNotFound          = errors.New("attraction not found")
)
