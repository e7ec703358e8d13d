package discover_test

import (
	"errors"
	"testing"

	"github.com/katalvlaran/ndarray/discover"
	"github.com/katalvlaran/ndarray/dtype"
	"github.com/katalvlaran/ndarray/source"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// discoverKind runs DiscoverType with the default configuration at the top level.
func discoverKind(t *testing.T, v any) dtype.DType {
	t.Helper()
	d, err := discover.DiscoverType(node(v), dtype.DType{}, dtype.MaxDims, discover.DefaultConfig())
	require.NoError(t, err, "%#v", v)
	return d
}

// TestDiscoverType_Numeric covers folding over nested numeric sequences.
func TestDiscoverType_Numeric(t *testing.T) {
	cases := []struct {
		name string
		in   any
		want dtype.Kind
	}{
		{"ints", []any{[]any{1, 2}, []any{3, 4}}, dtype.Long},
		{"bools", []any{true, false}, dtype.Bool},
		{"int and float", []any{1, 2.5}, dtype.Double},
		{"int8 and int16", []any{int8(1), int16(2)}, dtype.Long},
		{"float32 only", []float32{1, 2}, dtype.Float},
		{"float32 and int", []any{float32(1), 1}, dtype.Double},
		{"int64", []any{int64(1), 2}, dtype.LongLong},
		{"bytes as int8", []any{int8(1), int8(2)}, dtype.Byte},
		{"tuples fold as sequences", []any{source.Tuple{1, 2.0}}, dtype.Double},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, discoverKind(t, tc.in).Kind(), tc.name)
	}
}

// TestDiscoverType_EmptyUsesDefault verifies empty sequences do not become Bool.
func TestDiscoverType_EmptyUsesDefault(t *testing.T) {
	assert.Equal(t, dtype.Double, discoverKind(t, []any{}).Kind())
	assert.Equal(t, dtype.Double, discoverKind(t, []any{[]any{}, []any{}}).Kind())
	assert.Equal(t, dtype.Double, discoverKind(t, []any{[]any{}, []any{1}}).Kind())

	cfg := discover.Config{DefaultType: dtype.New(dtype.Int)}
	d, err := discover.DiscoverType(node([]any{}), dtype.DType{}, dtype.MaxDims, cfg)
	require.NoError(t, err)
	assert.Equal(t, dtype.Int, d.Kind())

	// an explicit non-Bool floor wins over the default
	d, err = discover.DiscoverType(node([]any{}), dtype.New(dtype.Short), dtype.MaxDims, discover.DefaultConfig())
	require.NoError(t, err)
	assert.Equal(t, dtype.Short, d.Kind())
}

// TestDiscoverType_Text verifies text leaves get fixed-width text types.
func TestDiscoverType_Text(t *testing.T) {
	d := discoverKind(t, []any{"a", "héllo"})
	assert.Equal(t, dtype.Unicode, d.Kind())
	assert.Equal(t, 5, d.Chars())

	d = discoverKind(t, []any{[]byte("ab"), []byte("abcd")})
	assert.Equal(t, dtype.String, d.Kind())
	assert.Equal(t, 4, d.ItemSize())

	assert.Equal(t, dtype.Object, discoverKind(t, []any{"a", 1}).Kind())
}

// TestDiscoverType_Arrays covers typed-array sources and records.
func TestDiscoverType_Arrays(t *testing.T) {
	arr := typedArray{dt: dtype.New(dtype.Float).WithOrder(dtype.Big), shape: []int{2}}
	d := discoverKind(t, arr)
	assert.True(t, dtype.Equivalent(arr.dt, d), "array dtype is authoritative")

	d = discoverKind(t, []any{arr, arr})
	assert.Equal(t, dtype.Float, d.Kind())

	d = discoverKind(t, []any{arr, 1})
	assert.Equal(t, dtype.Double, d.Kind())

	rec := dtype.NewRecord(dtype.Field{Name: "x", Type: dtype.New(dtype.Double)})
	recArr := typedArray{dt: rec, shape: []int{3}}
	assert.Equal(t, dtype.Object, discoverKind(t, []any{recArr}).Kind(), "records are not invented from a Bool floor")

	d, err := discover.DiscoverType(node(recArr), rec, dtype.MaxDims, discover.DefaultConfig())
	require.NoError(t, err)
	assert.True(t, d.IsStructured(), "a record floor keeps the record type")
}

// TestDiscoverType_Errors covers scalar and default-type failures.
func TestDiscoverType_Errors(t *testing.T) {
	_, err := discover.DiscoverType(node([]any{1, complex(1, 2)}), dtype.DType{}, dtype.MaxDims, discover.DefaultConfig())
	assert.ErrorIs(t, err, source.ErrUnsupportedScalarKind)

	_, err = discover.DiscoverType(node([]any{struct{}{}}), dtype.DType{}, dtype.MaxDims, discover.DefaultConfig())
	assert.ErrorIs(t, err, discover.ErrDefaultTypeUnavailable)

	// leaves below the depth limit go to the resolver
	_, err = discover.DiscoverType(node([]any{[]any{1}}), dtype.DType{}, 0, discover.DefaultConfig())
	assert.ErrorIs(t, err, discover.ErrDefaultTypeUnavailable)
}

// TestDiscoverType_Resolver verifies a configured resolver types unclassifiable leaves.
func TestDiscoverType_Resolver(t *testing.T) {
	cfg := discover.DefaultConfig()
	cfg.DefaultResolver = func(v any) (dtype.DType, error) {
		if _, ok := v.(struct{}); ok {
			return dtype.New(dtype.Object), nil
		}
		return dtype.DType{}, errors.New("unexpected")
	}

	d, err := discover.DiscoverType(node([]any{struct{}{}, 1}), dtype.DType{}, dtype.MaxDims, cfg)
	require.NoError(t, err)
	assert.Equal(t, dtype.Object, d.Kind())
}
