package field

import (
	"math"

	"github.com/RoaringBitmap/roaring/v2/roaring64"
	"github.com/google/uuid"
)

// Composite sequence kinds. Array, Tuple and the two map kinds share
// one underlying sequence of fields; the distinct named types let a
// caller state composition intent when constructing a Field.
type (
	// Array is an ordered sequence of fields of one declared type.
	Array []Field
	// Tuple is an ordered sequence of fields of possibly mixed types.
	Tuple []Field
	// Map holds (key, value) pairs, each pair a two-element Tuple
	// field. The pairing is a convention between producers and
	// consumers; the container does not enforce it.
	Map []Field
	// ByteMap is a legacy alias kind for Map. It keeps its own
	// ordinal but displays as "Map".
	ByteMap []Field
)

// Marker payloads for the three kinds that carry no concrete value.
type (
	Null             struct{}
	NegativeInfinity struct{}
	PositiveInfinity struct{}
)

// Row is an ordered collection of fields, one per column.
type Row []Field

// Field is a discriminated union over every storage kind the engine
// supports. The zero Field is Null.
//
// Scalar kinds live inline in the struct. String, sequence, aggregate
// and bitmap kinds own their backing storage outright: copies are
// always deep and nothing is ever shared between two Fields, so a
// Field needs no synchronization as long as each instance stays with
// one goroutine.
type Field struct {
	which Type

	// num holds UInt64 payloads, the bit pattern of Int64 ones, and
	// the mantissa of Decimal32/Decimal64. Sharing one slot is what
	// makes cross-signedness access through the unchecked 64-bit
	// getters well defined.
	num   uint64
	f64   float64
	u128  UInt128
	i128  Int128 // Int128 payload and Decimal128 mantissa
	u256  UInt256
	i256  Int256 // Int256 payload and Decimal256 mantissa
	id    uuid.UUID
	scale uint32 // decimal scale for the four decimal kinds

	str    []byte  // String and SketchBinary
	seq    []Field // Array, Tuple, Map, ByteMap
	agg    AggregateState
	bitmap *roaring64.Bitmap
}

// NewNull returns a Field in the Null state.
func NewNull() Field { return Field{} }

// NewNegativeInfinity returns the lower boundary sentinel.
func NewNegativeInfinity() Field { return Field{which: TypeNegativeInfinity} }

// NewPositiveInfinity returns the upper boundary sentinel.
func NewPositiveInfinity() Field { return Field{which: TypePositiveInfinity} }

// NewUInt64 returns a UInt64 field.
func NewUInt64(v uint64) Field { return Field{which: TypeUInt64, num: v} }

// NewInt64 returns an Int64 field.
func NewInt64(v int64) Field { return Field{which: TypeInt64, num: uint64(v)} }

// NewBool returns a UInt64 field holding 0 or 1; booleans promote to
// the unsigned 64-bit kind.
func NewBool(v bool) Field {
	if v {
		return NewUInt64(1)
	}
	return NewUInt64(0)
}

// NewFloat64 returns a Float64 field.
func NewFloat64(v float64) Field { return Field{which: TypeFloat64, f64: v} }

// NewUInt128 returns a UInt128 field.
func NewUInt128(v UInt128) Field { return Field{which: TypeUInt128, u128: v} }

// NewInt128 returns an Int128 field.
func NewInt128(v Int128) Field { return Field{which: TypeInt128, i128: v} }

// NewUInt256 returns a UInt256 field.
func NewUInt256(v UInt256) Field { return Field{which: TypeUInt256, u256: v} }

// NewInt256 returns an Int256 field.
func NewInt256(v Int256) Field { return Field{which: TypeInt256, i256: v} }

// NewUUID returns a UUID field.
func NewUUID(v uuid.UUID) Field { return Field{which: TypeUUID, id: v} }

// NewString returns a String field owning a copy of s.
func NewString(s string) Field {
	return Field{which: TypeString, str: append([]byte(nil), s...)}
}

// NewBytes returns a String field owning a copy of the raw bytes,
// bypassing promotion.
func NewBytes(data []byte) Field {
	return Field{which: TypeString, str: append([]byte(nil), data...)}
}

// NewSketchBinary returns a field of the SketchBinary kind: a
// string-like payload for non-textual sketch blobs that keeps its own
// tag so consumers can tell it apart from ordinary strings.
func NewSketchBinary(data []byte) Field {
	return Field{which: TypeSketchBinary, str: append([]byte(nil), data...)}
}

// NewRaw returns a string-like field from raw bytes, selecting the
// SketchBinary kind when sketchBinary is set and the String kind
// otherwise.
func NewRaw(data []byte, sketchBinary bool) Field {
	if sketchBinary {
		return NewSketchBinary(data)
	}
	return NewBytes(data)
}

// NewArray returns an Array field taking ownership of the slice.
func NewArray(v Array) Field { return Field{which: TypeArray, seq: v} }

// NewTuple returns a Tuple field taking ownership of the slice.
func NewTuple(v Tuple) Field { return Field{which: TypeTuple, seq: v} }

// NewMap returns a Map field taking ownership of the slice.
func NewMap(v Map) Field { return Field{which: TypeMap, seq: v} }

// NewByteMap returns a ByteMap field taking ownership of the slice.
func NewByteMap(v ByteMap) Field { return Field{which: TypeByteMap, seq: v} }

// NewDecimal32 returns a Decimal32 field.
func NewDecimal32(d Decimal32) Field {
	return Field{which: TypeDecimal32, num: uint64(int64(d.Value())), scale: d.Scale()}
}

// NewDecimal64 returns a Decimal64 field.
func NewDecimal64(d Decimal64) Field {
	return Field{which: TypeDecimal64, num: uint64(d.Value()), scale: d.Scale()}
}

// NewDecimal128 returns a Decimal128 field.
func NewDecimal128(d Decimal128) Field {
	return Field{which: TypeDecimal128, i128: d.Value(), scale: d.Scale()}
}

// NewDecimal256 returns a Decimal256 field.
func NewDecimal256(d Decimal256) Field {
	return Field{which: TypeDecimal256, i256: d.Value(), scale: d.Scale()}
}

// NewAggregateState returns an AggregateState field taking ownership
// of the payload.
func NewAggregateState(v AggregateState) Field {
	return Field{which: TypeAggregateState, agg: v}
}

// NewBitmap64 returns a Bitmap64 field taking ownership of the
// bitmap. A nil bitmap yields an empty one.
func NewBitmap64(v *roaring64.Bitmap) Field {
	if v == nil {
		v = roaring64.New()
	}
	return Field{which: TypeBitmap64, bitmap: v}
}

// Type returns the active tag.
func (f *Field) Type() Type { return f.which }

// TypeName returns the active tag's display name.
func (f *Field) TypeName() string { return f.which.String() }

// IsNull reports whether the field holds no concrete value. The two
// boundary sentinels count as null here even though they are distinct
// tags for ordering purposes.
func (f *Field) IsNull() bool {
	return f.which == TypeNull ||
		f.which == TypeNegativeInfinity ||
		f.which == TypePositiveInfinity
}

// IsNegativeInfinity reports whether the field is the lower boundary
// sentinel.
func (f *Field) IsNegativeInfinity() bool { return f.which == TypeNegativeInfinity }

// IsPositiveInfinity reports whether the field is the upper boundary
// sentinel.
func (f *Field) IsPositiveInfinity() bool { return f.which == TypePositiveInfinity }

// Reset releases any owned backing storage and returns the field to
// the Null state. Safe to call in any state, including on a partially
// assigned field.
func (f *Field) Reset() { *f = Field{} }

// Clone returns a deep copy. Backing storage of owning kinds is
// duplicated; the copy shares nothing with f.
func (f *Field) Clone() Field {
	out := *f
	if f.str != nil {
		out.str = append([]byte(nil), f.str...)
	}
	if f.seq != nil {
		out.seq = cloneSeq(f.seq)
	}
	out.agg = f.agg.clone()
	if f.bitmap != nil {
		out.bitmap = f.bitmap.Clone()
	}
	return out
}

func cloneSeq(in []Field) []Field {
	out := make([]Field, len(in))
	for i := range in {
		out[i] = in[i].Clone()
	}
	return out
}

// Set deep-copies rhs into f. When the active tags match, existing
// backing storage is reused instead of reallocated, so repeatedly
// overwriting e.g. a string field in a tight loop stays
// allocation-free once the buffer is large enough. On a tag change
// the old payload is released first.
func (f *Field) Set(rhs *Field) {
	if f == rhs {
		return
	}
	if f.which != rhs.which {
		f.Reset()
		*f = rhs.Clone()
		return
	}
	switch f.which {
	case TypeString, TypeSketchBinary:
		f.str = append(f.str[:0], rhs.str...)
	case TypeArray, TypeTuple, TypeMap, TypeByteMap:
		f.assignSeq(rhs.seq)
	case TypeAggregateState:
		f.agg.Name = rhs.agg.Name
		f.agg.Data = append(f.agg.Data[:0], rhs.agg.Data...)
	case TypeBitmap64:
		f.bitmap = rhs.bitmap.Clone()
	default:
		// Scalar payloads are inline; a struct copy is the whole
		// assignment.
		*f = *rhs
	}
}

func (f *Field) assignSeq(src []Field) {
	if cap(f.seq) >= len(src) {
		f.seq = f.seq[:len(src)]
	} else {
		f.seq = make([]Field, len(src))
	}
	for i := range src {
		f.seq[i].Set(&src[i])
	}
}

// MoveFrom transfers rhs's payload into f without copying backing
// storage. rhs ends up Null immediately; there is no intermediate
// moved-from state.
func (f *Field) MoveFrom(rhs *Field) {
	if f == rhs {
		return
	}
	*f = *rhs
	*rhs = Field{}
}

// SetString assigns a string payload, reusing the existing buffer
// when the field already holds the String kind.
func (f *Field) SetString(s string) {
	if f.which == TypeString {
		f.str = append(f.str[:0], s...)
		return
	}
	f.Reset()
	f.which = TypeString
	f.str = append([]byte(nil), s...)
}

// SetBytes assigns raw bytes as a String payload with the same reuse
// behavior as SetString.
func (f *Field) SetBytes(data []byte) {
	if f.which == TypeString {
		f.str = append(f.str[:0], data...)
		return
	}
	f.Reset()
	f.which = TypeString
	f.str = append([]byte(nil), data...)
}

// SetValue promotes v and assigns it, reusing backing storage when
// the promoted kind matches the current tag. Returns an error for a
// value no promotion rule covers.
func (f *Field) SetValue(v any) error {
	nv, err := New(v)
	if err != nil {
		return err
	}
	if f.which == nv.which {
		f.Set(&nv)
	} else {
		f.Reset()
		f.MoveFrom(&nv)
	}
	return nil
}

// float64Bits exposes the stored float's bit pattern; equality of
// Float64 fields is defined over these bits so NaNs with identical
// payloads compare equal.
func (f *Field) float64Bits() uint64 { return math.Float64bits(f.f64) }
