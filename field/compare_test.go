package field

import (
	"math"
	"testing"

	"github.com/RoaringBitmap/roaring/v2/roaring64"
	"github.com/stretchr/testify/require"
)

func mustLess(t *testing.T, a, b Field) bool {
	t.Helper()
	less, err := a.Less(&b)
	require.NoError(t, err)
	return less
}

func mustEqual(t *testing.T, a, b Field) bool {
	t.Helper()
	eq, err := a.Equal(&b)
	require.NoError(t, err)
	return eq
}

func TestOrderingIsTagOrdinalFirst(t *testing.T) {
	// A huge UInt64 sorts below a tiny UInt128 because the UInt64
	// ordinal is lower. Magnitude never crosses kind boundaries.
	big64 := NewUInt64(math.MaxUint64)
	small128 := NewUInt128(UInt128{Lo: 1})

	require.True(t, mustLess(t, big64, small128))
	require.False(t, mustLess(t, small128, big64))

	// Null (ordinal 0) sorts below everything except itself.
	require.True(t, mustLess(t, NewNull(), NewUInt64(0)))
	require.True(t, mustLess(t, NewNull(), NewString("")))
}

func TestSentinelsAreUniversalEndpoints(t *testing.T) {
	values := []Field{
		NewNull(),
		NewUInt64(math.MaxUint64),
		NewInt64(math.MinInt64),
		NewFloat64(math.Inf(1)),
		NewString("zzz"),
		NewUInt256(UInt256{Hi: UInt128{Hi: math.MaxUint64}}),
	}

	neg := NewNegativeInfinity()
	pos := NewPositiveInfinity()

	for _, v := range values {
		// The sentinels take the top two ordinals, so every concrete
		// value sorts below both.
		require.True(t, mustLess(t, v, neg), "%s should sort below -Inf", v.TypeName())
		require.True(t, mustLess(t, v, pos), "%s should sort below +Inf", v.TypeName())
	}
	require.True(t, mustLess(t, neg, pos))
	require.False(t, mustLess(t, pos, neg))
}

func TestSentinelSelfComparison(t *testing.T) {
	neg := NewNegativeInfinity()

	require.False(t, mustLess(t, neg, neg))
	le, err := neg.LessOrEqual(&neg)
	require.NoError(t, err)
	require.True(t, le)
	require.True(t, mustEqual(t, neg, neg))

	pos := NewPositiveInfinity()
	require.False(t, mustEqual(t, neg, pos))
}

func TestSameKindOrdering(t *testing.T) {
	cases := []struct {
		name string
		lo   Field
		hi   Field
	}{
		{"UInt64", NewUInt64(1), NewUInt64(2)},
		{"Int64", NewInt64(-5), NewInt64(3)},
		{"Float64", NewFloat64(-0.5), NewFloat64(0.5)},
		{"UInt128", NewUInt128(UInt128{Lo: 9}), NewUInt128(UInt128{Hi: 1})},
		{"Int128 sign", NewInt128(Int128{Hi: -1, Lo: 0}), NewInt128(Int128{Hi: 0, Lo: 5})},
		{"String", NewString("abc"), NewString("abd")},
		{"Array prefix", NewArray(Array{NewUInt64(1)}), NewArray(Array{NewUInt64(1), NewUInt64(2)})},
		{"Array element", NewArray(Array{NewUInt64(1)}), NewArray(Array{NewUInt64(2)})},
		{"Tuple", NewTuple(Tuple{NewInt64(1)}), NewTuple(Tuple{NewInt64(2)})},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			require.True(t, mustLess(t, c.lo, c.hi))
			require.False(t, mustLess(t, c.hi, c.lo))
			require.False(t, mustLess(t, c.lo, c.lo))

			gt, err := c.hi.Greater(&c.lo)
			require.NoError(t, err)
			require.True(t, gt)

			le, err := c.lo.LessOrEqual(&c.hi)
			require.NoError(t, err)
			require.True(t, le)
			ge, err := c.hi.GreaterOrEqual(&c.lo)
			require.NoError(t, err)
			require.True(t, ge)
		})
	}
}

func TestNaNEquality(t *testing.T) {
	nan := NewFloat64(math.NaN())
	other := NewFloat64(math.NaN())

	// Same bit pattern: equal despite NaN != NaN as floats.
	require.True(t, mustEqual(t, nan, other))

	// But never less than itself.
	require.False(t, mustLess(t, nan, nan))
}

func TestFloatEqualityIsBitwise(t *testing.T) {
	zero := NewFloat64(0.0)
	negZero := NewFloat64(math.Copysign(0, -1))

	// 0.0 and -0.0 have distinct bit patterns.
	require.False(t, mustEqual(t, zero, negZero))

	// Ordering still uses numeric comparison, where they tie.
	require.False(t, mustLess(t, zero, negZero))
	require.False(t, mustLess(t, negZero, zero))
}

func TestCrossKindNeverEqual(t *testing.T) {
	// Same bit pattern, different tags.
	require.False(t, mustEqual(t, NewUInt64(7), NewInt64(7)))
	require.False(t, mustEqual(t, NewNull(), NewUInt64(0)))
	require.False(t, mustEqual(t, NewString("x"), NewSketchBinary([]byte("x"))))
}

func TestInt64UInt64SameTagEquality(t *testing.T) {
	require.True(t, mustEqual(t, NewUInt64(7), NewUInt64(7)))
	require.True(t, mustEqual(t, NewInt64(-7), NewInt64(-7)))
}

func TestDecimalComparisonAcrossScales(t *testing.T) {
	d100s2 := NewDecimal32(NewDecimalField(int32(100), 2))   // 1.00
	d1000s3 := NewDecimal32(NewDecimalField(int32(1000), 3)) // 1.000
	d101s2 := NewDecimal32(NewDecimalField(int32(101), 2))   // 1.01

	require.True(t, mustEqual(t, d100s2, d1000s3))
	require.True(t, mustLess(t, d100s2, d101s2))
	require.True(t, mustLess(t, d1000s3, d101s2))
}

func TestDecimalComparisonNoOverflow(t *testing.T) {
	// Normalizing the larger scale must not overflow the mantissa.
	big := NewDecimal64(NewDecimalField(int64(math.MaxInt64), 0))
	small := NewDecimal64(NewDecimalField(int64(1), 18))

	require.True(t, mustLess(t, small, big))
	require.False(t, mustLess(t, big, small))
}

func TestAggregateStateComparison(t *testing.T) {
	sum := NewAggregateState(AggregateState{Name: "sum(x)", Data: []byte{1, 2}})
	sum2 := NewAggregateState(AggregateState{Name: "sum(x)", Data: []byte{1, 2}})
	avg := NewAggregateState(AggregateState{Name: "avg(x)", Data: []byte{1, 2}})

	eq, err := sum.Equal(&sum2)
	require.NoError(t, err)
	require.True(t, eq)

	_, err = sum.Equal(&avg)
	require.ErrorIs(t, err, ErrTypeMismatch)

	_, err = sum.Less(&sum2)
	require.ErrorIs(t, err, ErrNotImplemented)
	_, err = sum.LessOrEqual(&sum2)
	require.ErrorIs(t, err, ErrNotImplemented)
}

func TestBitmapComparison(t *testing.T) {
	a := roaring64.New()
	a.Add(1)
	a.Add(99)
	b := roaring64.New()
	b.Add(1)
	b.Add(99)

	fa := NewBitmap64(a)
	fb := NewBitmap64(b)

	eq, err := fa.Equal(&fb)
	require.NoError(t, err)
	require.True(t, eq)

	b.Add(100)
	eq, err = fa.Equal(&fb)
	require.NoError(t, err)
	require.False(t, eq)

	_, err = fa.Less(&fb)
	require.ErrorIs(t, err, ErrNotImplemented)
	_, err = fa.LessOrEqual(&fb)
	require.ErrorIs(t, err, ErrNotImplemented)
}

func TestCompositeComparisonPropagatesErrors(t *testing.T) {
	a := NewArray(Array{NewAggregateState(AggregateState{Name: "sum(x)"})})
	b := NewArray(Array{NewAggregateState(AggregateState{Name: "sum(x)"})})

	_, err := a.Less(&b)
	require.ErrorIs(t, err, ErrNotImplemented)
}

func TestNotEqual(t *testing.T) {
	a := NewUInt64(1)
	b := NewUInt64(2)

	ne, err := a.NotEqual(&b)
	require.NoError(t, err)
	require.True(t, ne)

	ne, err = a.NotEqual(&a)
	require.NoError(t, err)
	require.False(t, ne)
}

func TestTotalOrderSpotCheck(t *testing.T) {
	// Strictly ascending under the field ordering.
	ordered := []Field{
		NewNull(),
		NewUInt64(0),
		NewUInt64(10),
		NewInt64(math.MinInt64),
		NewInt64(5),
		NewFloat64(math.Inf(-1)),
		NewFloat64(2.5),
		NewUInt128(UInt128{}),
		NewInt128(Int128{Hi: -1, Lo: 0}),
		NewString(""),
		NewString("a"),
		NewArray(nil),
		NewTuple(Tuple{NewNull()}),
		NewDecimal32(NewDecimalField(int32(-5), 0)),
		NewDecimal64(NewDecimalField(int64(0), 4)),
		NewDecimal128(NewDecimalField(Int128{Lo: 1}, 0)),
		NewDecimal256(NewDecimalField(Int256{}, 0)),
		NewUInt256(UInt256{}),
		NewInt256(Int256{Hi: Int128{Hi: -1}, Lo: UInt128{}}),
		NewMap(nil),
		NewUUID([16]byte{1}),
		NewByteMap(nil),
		NewSketchBinary([]byte("s")),
		NewNegativeInfinity(),
		NewPositiveInfinity(),
	}

	for i := range ordered {
		for j := range ordered {
			less, err := ordered[i].Less(&ordered[j])
			require.NoError(t, err, "%s vs %s", ordered[i].TypeName(), ordered[j].TypeName())
			require.Equal(t, i < j, less,
				"Less(%s[%d], %s[%d])", ordered[i].TypeName(), i, ordered[j].TypeName(), j)
		}
	}
}
