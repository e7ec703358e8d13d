// SPDX-License-Identifier: MIT
// Package source: sentinel errors.

package source

import "errors"

var (
	// ErrUnsupportedScalarKind is returned by ClassifyScalar for a value outside
	// the supported scalar set (complex and arbitrary-precision numbers included).
	ErrUnsupportedScalarKind = errors.New("source: unsupported scalar kind")
)
