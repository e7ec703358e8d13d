// SPDX-License-Identifier: MIT
// Package discover: sentinel errors and the positioned shape error.
//
// ERROR PRIORITY (matches the orchestrator's call order):
// type discovery -> depth discovery -> shape discovery.

package discover

import (
	"errors"
	"fmt"
)

var (
	// ErrDepthExceeded is returned when nesting exceeds the allowed number of dimensions.
	ErrDepthExceeded = errors.New("discover: maximum nesting depth exceeded")

	// ErrInconsistentShape is returned (inside *ShapeError) when sibling
	// sub-sequences disagree in size under strict shape discovery.
	ErrInconsistentShape = errors.New("discover: inconsistent shape in sequence")

	// ErrDefaultTypeUnavailable is returned when a leaf cannot be typed and no
	// default-type resolver was configured.
	ErrDefaultTypeUnavailable = errors.New("discover: default type unavailable")

	// ErrShortShape is returned when the shape buffer cannot hold the requested dimensions.
	ErrShortShape = errors.New("discover: shape buffer too short")
)

// ShapeError locates a ragged element.
// Dim is the dimension whose size disagreed; Path is the index path from the
// root sequence to the offending sibling.
type ShapeError struct {
	Dim  int
	Path []int
}

// Error implements error.
func (e *ShapeError) Error() string {
	return fmt.Sprintf("%s at dimension %d (element %v)", ErrInconsistentShape.Error(), e.Dim, e.Path)
}

// Unwrap exposes ErrInconsistentShape to errors.Is.
func (e *ShapeError) Unwrap() error { return ErrInconsistentShape }
