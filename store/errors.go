package store

import "errors"

var (
	// ErrNotFound is returned when an item doesn't exist.
	ErrNotFound = errors.New("familyforest: item not found")

	// ErrMissingKey is returned when an item lacks its PK or SK attribute.
	ErrMissingKey = errors.New("familyforest: item is missing PK or SK")
)
