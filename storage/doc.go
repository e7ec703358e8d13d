// SPDX-License-Identifier: MIT

// Package storage is the reference storage engine behind the construct package.
//
// An Array is a typed, strided view over a flat byte buffer (object arrays use
// a side []any). Engine allocates arrays, converts existing arrays to a
// requested type and layout (ConvertArray), and makes dense copies (CopyInto).
//
// Write-back: ConvertArray with UpdateIfCopy returns a copy linked to its
// source. The source is read-only until Array.Resolve copies the contents
// back. Engines are safe for concurrent use; Arrays are not.
package storage
