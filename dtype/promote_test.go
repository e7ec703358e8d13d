package dtype_test

import (
	"testing"

	"github.com/katalvlaran/ndarray/dtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ladder lists every kind on the numeric promotion ladder.
var ladder = []dtype.Kind{
	dtype.Bool, dtype.Byte, dtype.Short, dtype.Int,
	dtype.Long, dtype.LongLong, dtype.Float, dtype.Double,
}

// TestPromote_Idempotent verifies Promote(t,t) == t over the numeric ladder.
func TestPromote_Idempotent(t *testing.T) {
	for _, k := range ladder {
		d := dtype.New(k)
		got := dtype.Promote(d, d)
		assert.True(t, dtype.Equivalent(d, got), "Promote(%s,%s) = %s", d, d, got)
	}
}

// TestPromote_Commutative verifies Promote(a,b) == Promote(b,a) for all ladder pairs.
func TestPromote_Commutative(t *testing.T) {
	for _, a := range ladder {
		for _, b := range ladder {
			ab := dtype.Promote(dtype.New(a), dtype.New(b))
			ba := dtype.Promote(dtype.New(b), dtype.New(a))
			assert.Equal(t, ab.Kind(), ba.Kind(), "%s vs %s", a, b)
		}
	}
}

// TestPromote_Associative checks the ladder forms a join-semilattice.
func TestPromote_Associative(t *testing.T) {
	for _, a := range ladder {
		for _, b := range ladder {
			for _, c := range ladder {
				left := dtype.PromoteKind(dtype.PromoteKind(a, b), c)
				right := dtype.PromoteKind(a, dtype.PromoteKind(b, c))
				assert.Equal(t, left, right, "(%s,%s,%s)", a, b, c)
			}
		}
	}
}

// TestPromote_UpperBound ensures the result is reachable by a safe cast from both inputs.
func TestPromote_UpperBound(t *testing.T) {
	for _, a := range ladder {
		for _, b := range ladder {
			k := dtype.PromoteKind(a, b)
			assert.True(t, dtype.CanCastSafely(a, k), "%s -> %s", a, k)
			assert.True(t, dtype.CanCastSafely(b, k), "%s -> %s", b, k)
		}
	}
}

// TestPromote_KnownPairs pins down the interesting corners of the ladder.
func TestPromote_KnownPairs(t *testing.T) {
	cases := []struct {
		a, b, want dtype.Kind
	}{
		{dtype.Bool, dtype.Byte, dtype.Byte},
		{dtype.Byte, dtype.Short, dtype.Short},
		{dtype.Short, dtype.Float, dtype.Float},
		{dtype.Int, dtype.Float, dtype.Double},
		{dtype.Long, dtype.Float, dtype.Double},
		{dtype.Long, dtype.LongLong, dtype.LongLong},
		{dtype.Long, dtype.Double, dtype.Double},
		{dtype.Bool, dtype.Double, dtype.Double},
		{dtype.Double, dtype.Object, dtype.Object},
	}
	for _, tc := range cases {
		got := dtype.Promote(dtype.New(tc.a), dtype.New(tc.b))
		assert.Equal(t, tc.want, got.Kind(), "Promote(%s,%s)", tc.a, tc.b)
	}
}

// TestPromote_NoTypeIdentity verifies the unset sentinel is neutral.
func TestPromote_NoTypeIdentity(t *testing.T) {
	d := dtype.New(dtype.Int)
	assert.Equal(t, dtype.Int, dtype.Promote(dtype.DType{}, d).Kind())
	assert.Equal(t, dtype.Int, dtype.Promote(d, dtype.DType{}).Kind())
}

// TestPromote_StructuredRules covers record promotion.
func TestPromote_StructuredRules(t *testing.T) {
	rec := dtype.NewRecord(
		dtype.Field{Name: "x", Type: dtype.New(dtype.Double)},
		dtype.Field{Name: "y", Type: dtype.New(dtype.Int)},
	)
	same := dtype.NewRecord(
		dtype.Field{Name: "x", Type: dtype.New(dtype.Double)},
		dtype.Field{Name: "y", Type: dtype.New(dtype.Int)},
	)
	other := dtype.NewRecord(dtype.Field{Name: "z", Type: dtype.New(dtype.Bool)})

	got := dtype.Promote(rec, same)
	require.True(t, got.IsStructured())
	assert.True(t, dtype.Equivalent(rec, got))

	assert.Equal(t, dtype.Object, dtype.Promote(rec, other).Kind())
	assert.Equal(t, dtype.Object, dtype.Promote(rec, dtype.New(dtype.Double)).Kind())
	assert.Equal(t, dtype.Object, dtype.Promote(dtype.New(dtype.Bool), rec).Kind())
}

// TestPromote_Text covers text/text and text/numeric mixes.
func TestPromote_Text(t *testing.T) {
	got := dtype.Promote(dtype.NewString(3), dtype.NewString(7))
	assert.Equal(t, dtype.String, got.Kind())
	assert.Equal(t, 7, got.ItemSize())

	got = dtype.Promote(dtype.NewString(5), dtype.NewUnicode(2))
	assert.Equal(t, dtype.Unicode, got.Kind())
	assert.Equal(t, 5, got.Chars())
	assert.Equal(t, 20, got.ItemSize())

	assert.Equal(t, dtype.Object, dtype.Promote(dtype.NewUnicode(1), dtype.New(dtype.Long)).Kind())

	// Bool is the discovery seed and yields to text.
	got = dtype.Promote(dtype.New(dtype.Bool), dtype.NewUnicode(4))
	assert.Equal(t, dtype.Unicode, got.Kind())
	assert.Equal(t, 4, got.Chars())
}
