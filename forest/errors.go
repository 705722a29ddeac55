package forest

import "errors"

var (
	// ErrTreeNotFound is returned when the named tree has no metadata record.
	ErrTreeNotFound = errors.New("familyforest: tree not found")

	// ErrMemberNotFound is returned when a member doesn't exist in the tree.
	ErrMemberNotFound = errors.New("familyforest: member not found")

	// ErrNotOwner is returned when a non-owner attempts an owner-only
	// operation such as sharing a tree.
	ErrNotOwner = errors.New("familyforest: only the tree owner may do this")
)
