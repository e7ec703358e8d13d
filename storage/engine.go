// SPDX-License-Identifier: MIT

package storage

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/google/uuid"

	"github.com/katalvlaran/ndarray/dtype"
	"github.com/katalvlaran/ndarray/source"
)

// Engine allocates and converts arrays.
// It is immutable after NewEngine and safe for concurrent use.
type Engine struct {
	opts Options
}

// NewEngine returns an Engine configured by opts.
func NewEngine(opts ...Option) *Engine {
	return &Engine{opts: gatherOptions(opts...)}
}

// Allocate returns a zero-initialised, writeable array of type dt and the given shape.
//
// Implementation:
//   - Stage 1: validate the element type and every dimension.
//   - Stage 2: compute the element count and byte size with overflow checks.
//   - Stage 3: allocate the byte buffer (or the object side buffer) and dense strides.
//
// Errors:
//   - ErrInvalidType, ErrTooManyDims, ErrBadShape, ErrAllocationTooLarge.
//
// Complexity: Time O(size), Space O(size).
func (e *Engine) Allocate(dt dtype.DType, shape []int, fortran bool) (*Array, error) {
	if err := storable(dt); err != nil {
		return nil, fmt.Errorf("Allocate(%s): %w", dt, err)
	}
	if len(shape) > dtype.MaxDims {
		return nil, fmt.Errorf("Allocate(%d dims): %w", len(shape), ErrTooManyDims)
	}

	count := 1
	for _, s := range shape {
		if s < 0 {
			return nil, fmt.Errorf("Allocate(%v): %w", shape, ErrBadShape)
		}
		if s != 0 && count > math.MaxInt/s {
			return nil, fmt.Errorf("Allocate(%v): element count overflows: %w", shape, ErrAllocationTooLarge)
		}
		count *= s
	}
	size := dt.ItemSize()
	if count > 0 && size > math.MaxInt/count {
		return nil, fmt.Errorf("Allocate(%v): byte size overflows: %w", shape, ErrAllocationTooLarge)
	}
	nbytes := int64(count) * int64(size)
	if nbytes > e.opts.maxBytes {
		return nil, fmt.Errorf("Allocate(%v): %d bytes over limit %d: %w", shape, nbytes, e.opts.maxBytes, ErrAllocationTooLarge)
	}

	a := &Array{
		ID:      uuid.New(),
		dt:      dt,
		shape:   append([]int(nil), shape...),
		strides: layoutStrides(shape, size, fortran),
		flags:   Writeable | OwnsData,
	}
	if dt.Kind() == dtype.Object {
		a.objs = make([]any, count)
	} else {
		a.data = make([]byte, nbytes)
	}
	a.updateFlags()

	e.opts.metrics.allocated(nbytes)
	e.opts.logger.Debug("storage: allocate",
		slog.String("id", a.ID.String()),
		slog.String("dtype", dt.String()),
		slog.Any("shape", a.shape),
		slog.Bool("fortran", fortran),
		slog.Int64("bytes", nbytes))

	return a, nil
}

// ConvertArray returns an array satisfying dt and flags with the contents of src.
//
// Implementation:
//   - Stage 1: resolve the target type (src's type when dt is unset; native
//     byte order under NotSwapped).
//   - Stage 2: refuse unsafe casts unless ForceCast is set.
//   - Stage 3: a *Array that already matches type and layout is returned as is.
//   - Stage 4: otherwise copy element-wise into a fresh array (Fortran layout
//     when requested); under UpdateIfCopy the copy is linked to src, which
//     stays read-only until Resolve.
//
// Behavior highlights:
//   - Foreign source.Array implementations are always copied.
//   - Layout requirements: Fortran needs F-contiguous data, ElementStrides needs
//     strides that are multiples of the item size; C contiguity is not required.
//
// Errors:
//   - ErrUnsafeCast, ErrReadOnly (UpdateIfCopy on a foreign or read-only
//     source), allocation and element conversion errors.
//
// Complexity: O(1) when compliant, O(size) otherwise.
func (e *Engine) ConvertArray(src source.Array, dt dtype.DType, flags Flags) (*Array, error) {
	from := src.DType()
	target := dt
	if target.IsUnset() {
		target = from
	}
	if flags.Has(NotSwapped) && !target.IsNativeByteOrder() {
		target = target.NativeOrder()
	}
	if !flags.Has(ForceCast) && !castable(from, target) {
		return nil, fmt.Errorf("ConvertArray(%s to %s): %w", from, target, ErrUnsafeCast)
	}

	a, native := src.(*Array)
	if native && compliant(a, target, flags) {
		e.opts.metrics.converted(ConversionNoop)
		e.opts.logger.Debug("storage: convert", slog.String("id", a.ID.String()), slog.String("result", ConversionNoop))
		return a, nil
	}
	if flags.Has(UpdateIfCopy) && (!native || !a.flags.Has(Writeable)) {
		return nil, fmt.Errorf("ConvertArray: write-back source: %w", ErrReadOnly)
	}

	out, err := e.copyFrom(src, target, flags.Has(Fortran))
	if err != nil {
		return nil, fmt.Errorf("ConvertArray(%s to %s): %w", from, target, err)
	}
	if flags.Has(UpdateIfCopy) {
		out.base = a
		a.flags &^= Writeable
	}

	e.opts.metrics.converted(ConversionCopy)
	e.opts.logger.Debug("storage: convert",
		slog.String("id", out.ID.String()),
		slog.String("result", ConversionCopy),
		slog.String("from", from.String()),
		slog.String("to", target.String()),
		slog.String("flags", flags.String()))

	return out, nil
}

// CopyInto returns a fresh dense copy of a with the same type.
func (e *Engine) CopyInto(a *Array, fortran bool) (*Array, error) {
	out, err := e.copyFrom(a, a.dt, fortran)
	if err != nil {
		return nil, fmt.Errorf("CopyInto(%s): %w", a.ID, err)
	}
	return out, nil
}

// copyFrom allocates an array of type dt and copies src into it element-wise.
func (e *Engine) copyFrom(src source.Array, dt dtype.DType, fortran bool) (*Array, error) {
	shape := src.Shape()
	out, err := e.Allocate(dt, shape, fortran)
	if err != nil {
		return nil, err
	}

	idx := make([]int, len(shape))
	for i := 0; i < out.Size(); i++ {
		unravelInto(shape, i, idx)
		v, err := src.At(idx...)
		if err != nil {
			return nil, err
		}
		if err = out.Set(v, idx...); err != nil {
			return nil, err
		}
	}

	return out, nil
}

// compliant reports whether a can be returned by ConvertArray unchanged.
func compliant(a *Array, target dtype.DType, flags Flags) bool {
	if !dtype.Equivalent(a.dt, target) {
		return false
	}
	if flags.Has(Fortran) && !a.flags.Has(FContiguous) {
		return false
	}
	if flags.Has(ElementStrides) && !a.HasElementStrides() {
		return false
	}
	return true
}

// castable reports whether every value of from fits in to without loss.
func castable(from, to dtype.DType) bool {
	if dtype.Equivalent(from.NativeOrder(), to.NativeOrder()) {
		return true
	}
	fk, tk := from.Kind(), to.Kind()
	switch {
	case tk == dtype.Object:
		return true
	case fk == dtype.Void || tk == dtype.Void:
		return false
	case fk.IsText() || tk.IsText():
		if !fk.IsText() || !tk.IsText() || !dtype.CanCastSafely(fk, tk) {
			return false
		}
		return to.Chars() >= from.Chars()
	}
	return dtype.CanCastSafely(fk, tk)
}

// storable validates that dt can back an allocation.
func storable(dt dtype.DType) error {
	if dt.IsUnset() || dt.ItemSize() <= 0 {
		return ErrInvalidType
	}
	for _, f := range dt.Fields() {
		if f.Type.Kind() == dtype.Object {
			return ErrInvalidType
		}
		if err := storable(f.Type); err != nil {
			return err
		}
	}
	if dt.HasSubarray() {
		if dt.Base().Kind() == dtype.Object {
			return ErrInvalidType
		}
		return storable(dt.Base())
	}
	return nil
}
