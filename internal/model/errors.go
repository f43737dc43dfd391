package model

import "errors"

// Core error taxonomy. The dispatch engine performs no I/O; these are the
// only failures it can surface, all fatal and checked with errors.Is.
var (
	// ErrMisalignedSeries means generation and price do not share an
	// identical timestamp index.
	ErrMisalignedSeries = errors.New("series misaligned")

	// ErrInvalidConfig means the battery configuration is out of range.
	ErrInvalidConfig = errors.New("invalid battery config")

	// ErrInvalidSeries means a series contains negative or non-finite values.
	ErrInvalidSeries = errors.New("invalid series values")
)
