// SPDX-License-Identifier: MIT
// Package dtype: sentinel errors.
// Callers match with errors.Is; call sites wrap with fmt.Errorf("Op: %w", ErrX).

package dtype

import "errors"

var (
	// ErrUnknownType is returned by Parse for an unrecognised type string.
	ErrUnknownType = errors.New("dtype: unknown type")
)
