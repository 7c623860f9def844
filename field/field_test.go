package field

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestZeroFieldIsNull(t *testing.T) {
	var f Field
	require.Equal(t, TypeNull, f.Type())
	require.True(t, f.IsNull())
}

func TestSentinelsAreNull(t *testing.T) {
	neg := NewNegativeInfinity()
	pos := NewPositiveInfinity()

	require.True(t, neg.IsNull())
	require.True(t, pos.IsNull())
	require.True(t, neg.IsNegativeInfinity())
	require.True(t, pos.IsPositiveInfinity())
	require.False(t, neg.IsPositiveInfinity())
	require.Equal(t, TypeNegativeInfinity, neg.Type())
	require.Equal(t, TypePositiveInfinity, pos.Type())
}

func TestBoolPromotesToUInt64(t *testing.T) {
	f := NewBool(true)
	require.Equal(t, TypeUInt64, f.Type())
	require.Equal(t, uint64(1), f.GetUInt64())

	f = NewBool(false)
	require.Equal(t, uint64(0), f.GetUInt64())
}

func TestAccessorTriple(t *testing.T) {
	f := NewInt64(-42)

	// Unchecked.
	require.Equal(t, int64(-42), f.GetInt64())

	// Try form.
	v, ok := f.TryGetInt64()
	require.True(t, ok)
	require.Equal(t, int64(-42), v)
	_, ok = f.TryGetString()
	require.False(t, ok)

	// Safe form.
	sv, err := f.SafeGetInt64()
	require.NoError(t, err)
	require.Equal(t, int64(-42), sv)

	_, err = f.SafeGetUUID()
	require.ErrorIs(t, err, ErrBadGet)
	require.Contains(t, err.Error(), "has Int64")
	require.Contains(t, err.Error(), "requested UUID")
}

func TestCrossSignednessAccess(t *testing.T) {
	// Int64 and UInt64 share a slot; reading across signedness
	// reinterprets the bit pattern.
	f := NewInt64(-1)
	require.Equal(t, uint64(0xFFFFFFFFFFFFFFFF), f.GetUInt64())

	g := NewUInt64(1 << 63)
	require.Equal(t, int64(-1)<<63, g.GetInt64())
}

func TestStringOwnsItsBytes(t *testing.T) {
	src := []byte("mutable")
	f := NewBytes(src)
	src[0] = 'X'
	require.Equal(t, "mutable", f.GetString())
}

func TestSketchBinaryDistinctFromString(t *testing.T) {
	s := NewString("blob")
	sk := NewSketchBinary([]byte("blob"))

	require.Equal(t, TypeString, s.Type())
	require.Equal(t, TypeSketchBinary, sk.Type())

	// Unchecked string access serves both kinds.
	require.Equal(t, "blob", sk.GetString())

	// Checked access distinguishes them.
	_, ok := sk.TryGetString()
	require.False(t, ok)
	_, err := s.SafeGetSketchBinary()
	require.ErrorIs(t, err, ErrBadGet)
}

func TestNewRaw(t *testing.T) {
	require.Equal(t, TypeString, NewRaw([]byte("x"), false).Type())
	require.Equal(t, TypeSketchBinary, NewRaw([]byte("x"), true).Type())
}

func TestCloneIsDeep(t *testing.T) {
	inner := NewArray(Array{NewString("a"), NewString("b")})
	f := NewTuple(Tuple{inner, NewUInt64(7)})

	c := f.Clone()
	eq, err := f.Equal(&c)
	require.NoError(t, err)
	require.True(t, eq)

	// Mutating the clone must not show through.
	c.seq[1].SetString("mutated")
	tup := f.GetTuple()
	require.Equal(t, TypeUInt64, tup[1].Type())
}

func TestSetReusesBufferOnSameTag(t *testing.T) {
	f := NewString("a long enough backing buffer")
	buf := f.GetBytes()

	rhs := NewString("short")
	f.Set(&rhs)

	require.Equal(t, "short", f.GetString())
	require.Same(t, &buf[0], &f.GetBytes()[0], "backing array should be reused")
}

func TestSetAcrossTags(t *testing.T) {
	f := NewString("was a string")
	rhs := NewUInt64(99)
	f.Set(&rhs)

	require.Equal(t, TypeUInt64, f.Type())
	require.Equal(t, uint64(99), f.GetUInt64())
}

func TestSetSelf(t *testing.T) {
	f := NewString("self")
	f.Set(&f)
	require.Equal(t, "self", f.GetString())
}

func TestMoveFromLeavesSourceNull(t *testing.T) {
	src := NewString("payload")
	var dst Field
	dst.MoveFrom(&src)

	require.Equal(t, "payload", dst.GetString())
	require.True(t, src.IsNull())
	require.Equal(t, TypeNull, src.Type())
}

func TestReset(t *testing.T) {
	f := NewArray(Array{NewUInt64(1)})
	f.Reset()
	require.True(t, f.IsNull())
	require.Nil(t, f.seq)
}

func TestSetString(t *testing.T) {
	var f Field
	f.SetString("hello")
	require.Equal(t, TypeString, f.Type())
	require.Equal(t, "hello", f.GetString())

	buf := f.GetBytes()
	f.SetString("hi")
	require.Equal(t, "hi", f.GetString())
	require.Same(t, &buf[0], &f.GetBytes()[0], "backing array should be reused")
}

func TestSetValue(t *testing.T) {
	var f Field
	require.NoError(t, f.SetValue(uint16(7)))
	require.Equal(t, TypeUInt64, f.Type())
	require.Equal(t, uint64(7), f.GetUInt64())

	require.NoError(t, f.SetValue("text"))
	require.Equal(t, TypeString, f.Type())

	err := f.SetValue(struct{ X int }{1})
	require.Error(t, err)
	// A failed promotion must leave the field untouched.
	require.Equal(t, "text", f.GetString())
}

func TestPromotionRules(t *testing.T) {
	cases := []struct {
		in   any
		want Type
	}{
		{nil, TypeNull},
		{Null{}, TypeNull},
		{NegativeInfinity{}, TypeNegativeInfinity},
		{PositiveInfinity{}, TypePositiveInfinity},
		{true, TypeUInt64},
		{uint8(1), TypeUInt64},
		{uint(1), TypeUInt64},
		{int8(-1), TypeInt64},
		{int(-1), TypeInt64},
		{float32(1.5), TypeFloat64},
		{1.5, TypeFloat64},
		{"s", TypeString},
		{[]byte("b"), TypeString},
		{UInt128{Hi: 1}, TypeUInt128},
		{Int128{Hi: -1}, TypeInt128},
		{UInt256{}, TypeUInt256},
		{Int256{}, TypeInt256},
		{uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8"), TypeUUID},
		{NewDecimalField(int32(100), 2), TypeDecimal32},
		{NewDecimalField(int64(100), 2), TypeDecimal64},
		{Array{NewUInt64(1)}, TypeArray},
		{Tuple{NewUInt64(1)}, TypeTuple},
		{Map{}, TypeMap},
		{ByteMap{}, TypeByteMap},
		{AggregateState{Name: "sum(x)"}, TypeAggregateState},
	}

	for _, c := range cases {
		f, err := New(c.in)
		require.NoError(t, err, "New(%#v)", c.in)
		require.Equal(t, c.want, f.Type(), "New(%#v)", c.in)

		got, ok := NearestType(c.in)
		require.True(t, ok, "NearestType(%#v)", c.in)
		require.Equal(t, c.want, got, "NearestType(%#v)", c.in)
	}
}

func TestPromotionNamedTypes(t *testing.T) {
	type myInt int16
	type myString string

	f, err := New(myInt(-3))
	require.NoError(t, err)
	require.Equal(t, TypeInt64, f.Type())
	require.Equal(t, int64(-3), f.GetInt64())

	f, err = New(myString("named"))
	require.NoError(t, err)
	require.Equal(t, TypeString, f.Type())
	require.Equal(t, "named", f.GetString())
}

func TestPromotionRejectsUnknown(t *testing.T) {
	_, err := New(make(chan int))
	require.Error(t, err)

	_, ok := NearestType(make(chan int))
	require.False(t, ok)

	require.Panics(t, func() { MustNew(make(chan int)) })
}

func TestNewFromFieldClones(t *testing.T) {
	orig := NewString("original")
	f, err := New(orig)
	require.NoError(t, err)

	f.SetString("changed")
	require.Equal(t, "original", orig.GetString())
}

func TestAggregateStateEqualNameMismatch(t *testing.T) {
	a := AggregateState{Name: "sum(x)", Data: []byte{1}}
	b := AggregateState{Name: "avg(x)", Data: []byte{1}}

	_, err := a.Equal(b)
	require.ErrorIs(t, err, ErrTypeMismatch)

	eq, err := a.Equal(AggregateState{Name: "sum(x)", Data: []byte{1}})
	require.NoError(t, err)
	require.True(t, eq)
}

func TestNewBitmap64Nil(t *testing.T) {
	f := NewBitmap64(nil)
	require.Equal(t, TypeBitmap64, f.Type())
	require.NotNil(t, f.GetBitmap64())
	require.True(t, f.GetBitmap64().IsEmpty())
}

func TestErrorsAreSentinels(t *testing.T) {
	f := NewUInt64(1)
	_, err := f.SafeGetInt64()
	require.True(t, errors.Is(err, ErrBadGet))
}
