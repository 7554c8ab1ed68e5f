package domain

import "errors"

// Sentinel errors for the selection domain. Use errors.Is() to check these.
var (
	// ErrEmptyPool indicates there is nothing to draw from after filtering.
	ErrEmptyPool = errors.New("no items available for selection")

	// ErrUnknownMode indicates a selection request named an unsupported mode.
	ErrUnknownMode = errors.New("unknown selection mode")
)
