package domain

import "errors"

// Sentinel errors for the collection domain. Use errors.Is() to check these.
var (
	// ErrItemNotFound indicates no item carries the requested id.
	ErrItemNotFound = errors.New("item not found")

	// ErrGroupAlreadyExists indicates a group with the exact same name is registered.
	ErrGroupAlreadyExists = errors.New("group already exists")

	// ErrEmptyGroupName indicates a blank or whitespace-only group name.
	ErrEmptyGroupName = errors.New("group name is empty")

	// ErrGroupNotFound is returned only by the validating assignment variant.
	ErrGroupNotFound = errors.New("group not found")

	// ErrEmptyInput indicates there was nothing to import.
	ErrEmptyInput = errors.New("no data to import")

	// ErrInvalidSnapshot indicates a persisted snapshot violates the collection invariants.
	ErrInvalidSnapshot = errors.New("invalid snapshot")
)
