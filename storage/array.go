// SPDX-License-Identifier: MIT
// Package storage - strided N-d array & safe accessors.
//
// Layout:
//   - data is a flat byte buffer; element idx lives at
//     offset + Σ idx[d]*strides[d] (strides in bytes, C or Fortran order).
//   - Object arrays keep their values in a side []any indexed by byte
//     position / item size; the byte buffer stays nil.
//   - Views (Transpose, Field) share the buffer with their parent.
//
// Complexity quicksheet:
//   - Allocate: O(size) zero-init; At/Set: O(ndim); Transpose/Field: O(ndim);
//     Values/Copy: O(size).

package storage

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/katalvlaran/ndarray/dtype"
)

// ---------- error context tags ----------

const (
	ctxAt      = "At"
	ctxSet     = "Set"
	ctxAtFlat  = "AtFlat"
	ctxSetFlat = "SetFlat"
	ctxField   = "Field"
	ctxResolve = "Resolve"
)

// ---------- Formatting literals ----------

const (
	_fmtOpen  = "["
	_fmtClose = "]"
	_fmtSep   = ", "
)

// arrayErrorf wraps err with the method and index for diagnostics.
func arrayErrorf(method string, idx []int, err error) error {
	return fmt.Errorf("Array.%s(%v): %w", method, idx, err)
}

// Array is a typed N-d view over a strided buffer.
// It is not safe for concurrent mutation.
type Array struct {
	// ID identifies the array in logs and write-back links.
	ID uuid.UUID

	dt      dtype.DType
	shape   []int
	strides []int // bytes per step along each dimension
	offset  int   // byte offset of element [0,...,0]
	data    []byte
	objs    []any // Object arrays only
	flags   ArrayFlags
	base    *Array // pending write-back target (UpdateIfCopy)
}

// DType returns the element type.
func (a *Array) DType() dtype.DType { return a.dt }

// Shape returns a copy of the per-dimension sizes.
func (a *Array) Shape() []int { return append([]int(nil), a.shape...) }

// NDim returns the number of dimensions.
func (a *Array) NDim() int { return len(a.shape) }

// Strides returns a copy of the byte strides.
func (a *Array) Strides() []int { return append([]int(nil), a.strides...) }

// Size returns the number of elements (1 for a 0-d array).
func (a *Array) Size() int { return product(a.shape) }

// Flags returns the layout and access flags.
func (a *Array) Flags() ArrayFlags { return a.flags }

// Base returns the pending write-back target, or nil.
func (a *Array) Base() *Array { return a.base }

// HasElementStrides reports whether every stride is a multiple of the item size.
func (a *Array) HasElementStrides() bool {
	size := a.dt.ItemSize()
	for _, s := range a.strides {
		if s%size != 0 {
			return false
		}
	}
	return true
}

// At returns the element at idx (one index per dimension).
//
// Errors:
//   - ErrOutOfRange on a wrong index count or an index outside the shape.
func (a *Array) At(idx ...int) (any, error) {
	off, err := a.byteOffset(idx)
	if err != nil {
		return nil, arrayErrorf(ctxAt, idx, err)
	}
	return a.load(off), nil
}

// Set stores v at idx, converting it to the element type.
//
// Errors:
//   - ErrReadOnly when the array is not writeable.
//   - ErrOutOfRange on a bad index.
//   - ErrValueType when v cannot be represented.
func (a *Array) Set(v any, idx ...int) error {
	if !a.flags.Has(Writeable) {
		return arrayErrorf(ctxSet, idx, ErrReadOnly)
	}
	off, err := a.byteOffset(idx)
	if err != nil {
		return arrayErrorf(ctxSet, idx, err)
	}
	if err = a.store(off, v); err != nil {
		return arrayErrorf(ctxSet, idx, err)
	}
	return nil
}

// AtFlat returns the i-th element in row-major logical order,
// independent of the memory layout.
func (a *Array) AtFlat(i int) (any, error) {
	idx, err := a.unravel(i)
	if err != nil {
		return nil, fmt.Errorf("Array.%s(%d): %w", ctxAtFlat, i, err)
	}
	return a.At(idx...)
}

// SetFlat stores v at the i-th element in row-major logical order.
func (a *Array) SetFlat(i int, v any) error {
	idx, err := a.unravel(i)
	if err != nil {
		return fmt.Errorf("Array.%s(%d): %w", ctxSetFlat, i, err)
	}
	return a.Set(v, idx...)
}

// Transpose returns a view with the dimension order reversed.
// Writes through the view reach a.
func (a *Array) Transpose() *Array {
	n := len(a.shape)
	v := a.view(a.dt, a.offset)
	for i := 0; i < n; i++ {
		v.shape[i] = a.shape[n-1-i]
		v.strides[i] = a.strides[n-1-i]
	}
	v.updateFlags()

	return v
}

// Field returns a view of the named field of a record array.
// The view keeps the record strides, so it generally lacks element strides.
//
// Errors:
//   - ErrNoSuchField when a has no field called name.
func (a *Array) Field(name string) (*Array, error) {
	f, ok := a.dt.Field(name)
	if !ok {
		return nil, fmt.Errorf("Array.%s(%q): %w", ctxField, name, ErrNoSuchField)
	}
	v := a.view(f.Type, a.offset+f.Offset)
	v.updateFlags()

	return v, nil
}

// Values renders the array as nested []any (the bare element for 0-d arrays).
func (a *Array) Values() any {
	idx := make([]int, len(a.shape))
	return a.values(idx, 0)
}

func (a *Array) values(idx []int, dim int) any {
	if dim == len(a.shape) {
		off, _ := a.byteOffset(idx)
		return a.load(off)
	}
	out := make([]any, a.shape[dim])
	for i := range out {
		idx[dim] = i
		out[i] = a.values(idx, dim+1)
	}
	return out
}

// String formats the values as nested brackets.
func (a *Array) String() string {
	var sb strings.Builder
	writeValues(&sb, a.Values())
	return sb.String()
}

func writeValues(sb *strings.Builder, v any) {
	row, ok := v.([]any)
	if !ok {
		if s, isText := v.(string); isText {
			fmt.Fprintf(sb, "%q", s)
			return
		}
		fmt.Fprint(sb, v)
		return
	}
	sb.WriteString(_fmtOpen)
	for i, x := range row {
		if i > 0 {
			sb.WriteString(_fmtSep)
		}
		writeValues(sb, x)
	}
	sb.WriteString(_fmtClose)
}

// Resolve completes a write-back: the contents of a are copied into the
// source it was converted from, the source becomes writeable again and the
// link is cleared. Without a pending link Resolve does nothing.
//
// Every element is checked against the source type before the first write;
// on error the source is untouched, still read-only, and the link is kept.
func (a *Array) Resolve() error {
	base := a.base
	if base == nil {
		return nil
	}

	vals := make([]any, a.Size())
	idx := make([]int, len(a.shape))
	var cell []byte
	if base.dt.Kind() != dtype.Object {
		cell = make([]byte, base.dt.ItemSize())
	}
	for i := range vals {
		unravelInto(a.shape, i, idx)
		v, err := a.At(idx...)
		if err == nil && cell != nil {
			err = encode(base.dt, cell, v)
		}
		if err != nil {
			return fmt.Errorf("Array.%s(%s): %w", ctxResolve, base.ID, err)
		}
		vals[i] = v
	}

	base.flags |= Writeable
	for i, v := range vals {
		unravelInto(a.shape, i, idx)
		if err := base.Set(v, idx...); err != nil {
			return fmt.Errorf("Array.%s(%s): %w", ctxResolve, base.ID, err)
		}
	}
	a.base = nil

	return nil
}

// ---------- internals ----------

// byteOffset validates idx and returns the element's byte position.
func (a *Array) byteOffset(idx []int) (int, error) {
	if len(idx) != len(a.shape) {
		return 0, ErrOutOfRange
	}
	off := a.offset
	for d, i := range idx {
		if i < 0 || i >= a.shape[d] {
			return 0, ErrOutOfRange
		}
		off += i * a.strides[d]
	}
	return off, nil
}

func (a *Array) load(off int) any {
	if a.dt.Kind() == dtype.Object {
		return a.objs[off/a.dt.ItemSize()]
	}
	return decode(a.dt, a.data[off:off+a.dt.ItemSize()])
}

func (a *Array) store(off int, v any) error {
	if a.dt.Kind() == dtype.Object {
		a.objs[off/a.dt.ItemSize()] = v
		return nil
	}
	return encode(a.dt, a.data[off:off+a.dt.ItemSize()], v)
}

// unravel converts a row-major flat index into a multi-index.
func (a *Array) unravel(i int) ([]int, error) {
	if i < 0 || i >= a.Size() {
		return nil, ErrOutOfRange
	}
	idx := make([]int, len(a.shape))
	unravelInto(a.shape, i, idx)
	return idx, nil
}

func unravelInto(shape []int, i int, idx []int) {
	for d := len(shape) - 1; d >= 0; d-- {
		idx[d] = i % shape[d]
		i /= shape[d]
	}
}

// view returns a shallow copy of a sharing its buffers, typed as dt at offset.
func (a *Array) view(dt dtype.DType, offset int) *Array {
	return &Array{
		ID:      uuid.New(),
		dt:      dt,
		shape:   a.Shape(),
		strides: a.Strides(),
		offset:  offset,
		data:    a.data,
		objs:    a.objs,
		flags:   a.flags & Writeable,
	}
}

// updateFlags recomputes the contiguity and alignment bits.
func (a *Array) updateFlags() {
	a.flags &^= CContiguous | FContiguous | Aligned
	size := a.dt.ItemSize()
	if contiguous(a.shape, a.strides, size, false) {
		a.flags |= CContiguous
	}
	if contiguous(a.shape, a.strides, size, true) {
		a.flags |= FContiguous
	}
	if aligned(a.dt, a.offset, a.strides) {
		a.flags |= Aligned
	}
}

// contiguous reports whether strides describe a dense C (or Fortran) layout.
// Dimensions of size 1 are ignored; empty arrays are contiguous.
func contiguous(shape, strides []int, itemSize int, fortran bool) bool {
	if product(shape) == 0 {
		return true
	}
	want := itemSize
	for k := range shape {
		d := len(shape) - 1 - k
		if fortran {
			d = k
		}
		if shape[d] == 1 {
			continue
		}
		if strides[d] != want {
			return false
		}
		want *= shape[d]
	}
	return true
}

// aligned reports whether every element address is a multiple of the kind's alignment.
func aligned(dt dtype.DType, offset int, strides []int) bool {
	align := 1
	switch k := dt.Kind(); {
	case k.IsNumeric(), k == dtype.Object:
		align = dt.ItemSize()
	case k == dtype.Unicode:
		align = 4
	}
	if offset%align != 0 {
		return false
	}
	for _, s := range strides {
		if s%align != 0 {
			return false
		}
	}
	return true
}

// layoutStrides returns dense byte strides for shape.
func layoutStrides(shape []int, itemSize int, fortran bool) []int {
	strides := make([]int, len(shape))
	acc := itemSize
	for k := range shape {
		d := len(shape) - 1 - k
		if fortran {
			d = k
		}
		strides[d] = acc
		acc *= max(1, shape[d])
	}
	return strides
}

func product(shape []int) int {
	n := 1
	for _, s := range shape {
		n *= s
	}
	return n
}
