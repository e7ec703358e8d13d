package storage_test

import (
	"testing"

	"github.com/katalvlaran/ndarray/dtype"
	"github.com/katalvlaran/ndarray/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mustAllocate allocates with a default engine and fails the test on error.
func mustAllocate(t *testing.T, dt dtype.DType, shape []int, fortran bool) *storage.Array {
	t.Helper()
	a, err := storage.NewEngine().Allocate(dt, shape, fortran)
	require.NoError(t, err)
	return a
}

// TestArray_SetAt_RoundTrip stores and reads one value per kind.
func TestArray_SetAt_RoundTrip(t *testing.T) {
	cases := []struct {
		dt   dtype.DType
		in   any
		want any
	}{
		{dtype.New(dtype.Bool), true, true},
		{dtype.New(dtype.Byte), -3, int8(-3)},
		{dtype.New(dtype.Short), int16(-300), int16(-300)},
		{dtype.New(dtype.Int).WithOrder(dtype.Big), 70000, int32(70000)},
		{dtype.New(dtype.Long), 1 << 40, int64(1 << 40)},
		{dtype.New(dtype.LongLong).WithOrder(dtype.Little), -5, int64(-5)},
		{dtype.New(dtype.Float), 1.5, float32(1.5)},
		{dtype.New(dtype.Double).WithOrder(dtype.Big), 2.25, 2.25},
		{dtype.New(dtype.Long), 7.9, int64(7)},
		{dtype.NewString(3), "abcdef", "abc"},
		{dtype.NewString(4), []byte("hi"), "hi"},
		{dtype.NewUnicode(2), "héllo", "hé"},
		{dtype.NewUnicode(4), 12, "12"},
		{dtype.New(dtype.Object), map[string]int{"a": 1}, map[string]int{"a": 1}},
	}
	for _, tc := range cases {
		a := mustAllocate(t, tc.dt, []int{2}, false)
		require.NoError(t, a.Set(tc.in, 1), tc.dt.String())
		got, err := a.At(1)
		require.NoError(t, err)
		assert.Equal(t, tc.want, got, tc.dt.String())
	}
}

// TestArray_Records stores record and sub-array elements.
func TestArray_Records(t *testing.T) {
	rec := dtype.NewRecord(
		dtype.Field{Name: "flag", Type: dtype.New(dtype.Bool)},
		dtype.Field{Name: "x", Type: dtype.New(dtype.Double)},
		dtype.Field{Name: "n", Type: dtype.New(dtype.Short)},
	)
	a := mustAllocate(t, rec, []int{2}, false)
	require.NoError(t, a.Set([]any{true, 2.5, 9}, 0))
	got, err := a.At(0)
	require.NoError(t, err)
	assert.Equal(t, []any{true, 2.5, int16(9)}, got)

	err = a.Set([]any{true}, 1)
	assert.ErrorIs(t, err, storage.ErrValueType, "wrong field count")

	// field views share the buffer and keep the record stride
	x, err := a.Field("x")
	require.NoError(t, err)
	assert.Equal(t, []any{2.5, 0.0}, x.Values())
	assert.False(t, x.HasElementStrides())
	assert.False(t, x.Flags().Has(storage.Aligned))
	require.NoError(t, x.Set(4.0, 1))
	got, _ = a.At(1)
	assert.Equal(t, []any{false, 4.0, int16(0)}, got)

	_, err = a.Field("missing")
	assert.ErrorIs(t, err, storage.ErrNoSuchField)

	sub := mustAllocate(t, dtype.NewSubarray(dtype.New(dtype.Int), 2, 2), []int{1}, false)
	require.NoError(t, sub.Set([]int{1, 2, 3, 4}, 0))
	got, _ = sub.At(0)
	assert.Equal(t, []any{int32(1), int32(2), int32(3), int32(4)}, got)
}

// TestArray_Errors covers index and type errors.
func TestArray_Errors(t *testing.T) {
	a := mustAllocate(t, dtype.New(dtype.Double), []int{2, 3}, false)

	_, err := a.At(2, 0)
	assert.ErrorIs(t, err, storage.ErrOutOfRange)
	_, err = a.At(0)
	assert.ErrorIs(t, err, storage.ErrOutOfRange, "index count must match ndim")
	assert.ErrorIs(t, a.Set(1.0, 0, -1), storage.ErrOutOfRange)
	assert.ErrorIs(t, a.Set("x", 0, 0), storage.ErrValueType)
	_, err = a.AtFlat(6)
	assert.ErrorIs(t, err, storage.ErrOutOfRange)
}

// TestArray_Flat verifies flat access follows row-major logical order in both layouts.
func TestArray_Flat(t *testing.T) {
	for _, fortran := range []bool{false, true} {
		a := mustAllocate(t, dtype.New(dtype.Long), []int{2, 3}, fortran)
		for i := 0; i < a.Size(); i++ {
			require.NoError(t, a.SetFlat(i, i))
		}
		v, err := a.At(1, 0)
		require.NoError(t, err)
		assert.Equal(t, int64(3), v)
		assert.Equal(t, []any{[]any{int64(0), int64(1), int64(2)}, []any{int64(3), int64(4), int64(5)}}, a.Values())
	}
}

// TestArray_Transpose verifies the view swaps axes and shares data.
func TestArray_Transpose(t *testing.T) {
	a := mustAllocate(t, dtype.New(dtype.Int), []int{2, 3}, false)
	require.NoError(t, a.Set(5, 0, 2))

	tr := a.Transpose()
	assert.Equal(t, []int{3, 2}, tr.Shape())
	assert.True(t, tr.Flags().Has(storage.FContiguous))
	assert.False(t, tr.Flags().Has(storage.CContiguous))
	assert.False(t, tr.Flags().Has(storage.OwnsData))

	v, err := tr.At(2, 0)
	require.NoError(t, err)
	assert.Equal(t, int32(5), v)

	require.NoError(t, tr.Set(8, 1, 1))
	v, _ = a.At(1, 1)
	assert.Equal(t, int32(8), v, "writes reach the parent")
}

// TestArray_String renders nested values.
func TestArray_String(t *testing.T) {
	a := mustAllocate(t, dtype.New(dtype.Long), []int{2, 2}, false)
	require.NoError(t, a.Set(4, 1, 1))
	assert.Equal(t, "[[0, 0], [0, 4]]", a.String())

	s := mustAllocate(t, dtype.NewUnicode(2), []int{1}, false)
	require.NoError(t, s.Set("ab", 0))
	assert.Equal(t, `["ab"]`, s.String())

	zero := mustAllocate(t, dtype.New(dtype.Double), nil, false)
	assert.Equal(t, "0", zero.String())
}

// TestFlags_String covers both flag sets.
func TestFlags_String(t *testing.T) {
	assert.Equal(t, "0", storage.Flags(0).String())
	assert.Equal(t, "Fortran|ForceCast", (storage.Fortran | storage.ForceCast).String())
	assert.True(t, (storage.NotSwapped | storage.UpdateIfCopy).Has(storage.UpdateIfCopy))
	assert.Equal(t, "C_CONTIGUOUS|WRITEABLE", (storage.CContiguous | storage.Writeable).String())
}
