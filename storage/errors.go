// SPDX-License-Identifier: MIT
// Package storage: sentinel error set.
// Every public operation returns one of these (possibly wrapped with the
// operation name via fmt.Errorf("Op: %w", ErrX)); callers match with errors.Is.

package storage

import "errors"

var (
	// ErrBadShape is returned when a dimension size is negative.
	ErrBadShape = errors.New("storage: invalid shape")

	// ErrTooManyDims is returned when a shape has more than dtype.MaxDims entries.
	ErrTooManyDims = errors.New("storage: too many dimensions")

	// ErrInvalidType is returned for element types that cannot be stored
	// (unset kind, zero item size, object fields inside records).
	ErrInvalidType = errors.New("storage: invalid element type")

	// ErrAllocationTooLarge is returned when the element count or byte size
	// overflows, or exceeds the engine's configured limit.
	ErrAllocationTooLarge = errors.New("storage: allocation too large")

	// ErrOutOfRange indicates an index outside the array bounds or a wrong index count.
	ErrOutOfRange = errors.New("storage: index out of range")

	// ErrValueType indicates a value that cannot be stored in the array's element type.
	ErrValueType = errors.New("storage: value does not fit element type")

	// ErrUnsafeCast is returned by ConvertArray when the requested cast may lose
	// information and ForceCast was not given.
	ErrUnsafeCast = errors.New("storage: unsafe cast")

	// ErrReadOnly is returned on writes to an array that is not writeable,
	// including the base of a pending write-back copy.
	ErrReadOnly = errors.New("storage: array is read-only")

	// ErrNoSuchField is returned by Field for unknown record field names.
	ErrNoSuchField = errors.New("storage: no such field")
)
