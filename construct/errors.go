// SPDX-License-Identifier: MIT
// Package construct: sentinel error set.
// Construction failures are local and never retried: the first failing rule
// is returned (wrapped with context) and no partially populated array escapes.
// Errors from discover, source and storage pass through unchanged in meaning,
// so callers match them with errors.Is as well.

package construct

import "errors"

var (
	// ErrInvalidDimensionCount is returned when the discovered depth violates
	// the requested minimum or maximum depth.
	ErrInvalidDimensionCount = errors.New("construct: invalid number of dimensions")

	// ErrInvalidFlagCombination is returned when write-back is requested for a
	// source that is not already an array.
	ErrInvalidFlagCombination = errors.New("construct: invalid flag combination")

	// ErrScalarConversionUnsupported is returned for scalar and top-level text
	// sources unless WithScalarConversion is given.
	ErrScalarConversionUnsupported = errors.New("construct: scalar conversion not enabled")

	// ErrUnclassifiableSource is returned for values outside the host value model.
	ErrUnclassifiableSource = errors.New("construct: unclassifiable source")
)
