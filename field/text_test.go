package field

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCompositeWriteText(t *testing.T) {
	arr := Array{NewInt64(1), NewInt64(2)}
	tup := Tuple{NewUInt64(1), NewString("x")}
	m := Map{NewTuple(Tuple{NewString("k"), NewString("v")})}

	var b strings.Builder
	require.NoError(t, arr.WriteText(&b))
	require.Equal(t, "[Int64_1, Int64_2]", b.String())

	b.Reset()
	require.NoError(t, tup.WriteText(&b))
	require.Equal(t, `(UInt64_1, String_"x")`, b.String())

	b.Reset()
	require.NoError(t, m.WriteText(&b))
	require.Equal(t, `{Tuple_[String_"k", String_"v"]}`, b.String())

	b.Reset()
	require.NoError(t, ByteMap(m).WriteText(&b))
	require.Equal(t, `{Tuple_[String_"k", String_"v"]}`, b.String())
}

func TestAggregateStateWriteTextRejected(t *testing.T) {
	a := AggregateState{Name: "sum(x)"}
	var b strings.Builder
	require.ErrorIs(t, a.WriteText(&b), ErrNotImplemented)
}

func TestTextReadsRejected(t *testing.T) {
	r := strings.NewReader("[1, 2]")

	_, err := ReadArrayText(r)
	require.ErrorIs(t, err, ErrNotImplemented)
	_, err = ReadArrayQuoted(r)
	require.ErrorIs(t, err, ErrNotImplemented)
	_, err = ReadTupleText(r)
	require.ErrorIs(t, err, ErrNotImplemented)
	_, err = ReadTupleQuoted(r)
	require.ErrorIs(t, err, ErrNotImplemented)
	_, err = ReadMapText(r)
	require.ErrorIs(t, err, ErrNotImplemented)
	_, err = ReadMapQuoted(r)
	require.ErrorIs(t, err, ErrNotImplemented)
	_, err = ReadByteMapText(r)
	require.ErrorIs(t, err, ErrNotImplemented)
	_, err = ReadByteMapQuoted(r)
	require.ErrorIs(t, err, ErrNotImplemented)
	_, err = ReadBitmap64Text(r)
	require.ErrorIs(t, err, ErrNotImplemented)
	_, err = ReadBitmap64Quoted(r)
	require.ErrorIs(t, err, ErrNotImplemented)
}

func TestRowHoldsMixedKinds(t *testing.T) {
	row := Row{NewUInt64(1), NewString("name"), NewFloat64(2.5)}
	require.Len(t, row, 3)
	require.Equal(t, TypeString, row[1].Type())
}
