package field

import (
	"bytes"
	"fmt"
	"math"
)

// Ordering compares tag ordinals before payloads: a field of a lower
// ordinal kind always sorts below a field of a higher ordinal kind,
// regardless of represented magnitude. A UInt64 field never compares
// by value against a UInt128 field, and the sentinels' 254/255
// ordinals make them universal endpoints. Range and index analysis
// depend on this exact rule; anything sorting mixed-kind fields and
// expecting numeric magnitude ordering will be surprised.
//
// Equality is representation equality, not mathematical equality:
// Null equals Null, each sentinel equals only itself, Float64 fields
// compare by bit pattern so identical NaNs are equal, and fields of
// different tags are never equal.

// Less reports whether f sorts strictly before rhs. Fails with
// ErrNotImplemented when equal tags have no ordering (aggregate
// state, bitmap).
func (f *Field) Less(rhs *Field) (bool, error) {
	if f.which < rhs.which {
		return true, nil
	}
	if f.which > rhs.which {
		return false, nil
	}

	switch f.which {
	case TypeNull, TypeNegativeInfinity, TypePositiveInfinity:
		return false, nil
	case TypeUInt64:
		return f.num < rhs.num, nil
	case TypeInt64:
		return int64(f.num) < int64(rhs.num), nil
	case TypeFloat64:
		return f.f64 < rhs.f64, nil
	case TypeUInt128:
		return f.u128.Cmp(rhs.u128) < 0, nil
	case TypeInt128:
		return f.i128.Cmp(rhs.i128) < 0, nil
	case TypeUInt256:
		return f.u256.Cmp(rhs.u256) < 0, nil
	case TypeInt256:
		return f.i256.Cmp(rhs.i256) < 0, nil
	case TypeUUID:
		return bytes.Compare(f.id[:], rhs.id[:]) < 0, nil
	case TypeString, TypeSketchBinary:
		return bytes.Compare(f.str, rhs.str) < 0, nil
	case TypeArray, TypeTuple, TypeMap, TypeByteMap:
		return seqLess(f.seq, rhs.seq)
	case TypeDecimal32:
		return DecimalLess(f.GetDecimal32(), rhs.GetDecimal32()), nil
	case TypeDecimal64:
		return DecimalLess(f.GetDecimal64(), rhs.GetDecimal64()), nil
	case TypeDecimal128:
		return DecimalLess(f.GetDecimal128(), rhs.GetDecimal128()), nil
	case TypeDecimal256:
		return DecimalLess(f.GetDecimal256(), rhs.GetDecimal256()), nil
	case TypeAggregateState:
		return f.agg.Less(rhs.agg)
	case TypeBitmap64:
		return false, fmt.Errorf("%w: ordering bitmap fields", ErrNotImplemented)
	}
	panic(fmt.Sprintf("bad type of field: %d", uint8(f.which)))
}

// LessOrEqual reports whether f sorts before or alongside rhs, with
// the same tag-ordinal-first rule and failure cases as Less.
func (f *Field) LessOrEqual(rhs *Field) (bool, error) {
	if f.which < rhs.which {
		return true, nil
	}
	if f.which > rhs.which {
		return false, nil
	}

	switch f.which {
	case TypeNull, TypeNegativeInfinity, TypePositiveInfinity:
		return true, nil
	case TypeUInt64:
		return f.num <= rhs.num, nil
	case TypeInt64:
		return int64(f.num) <= int64(rhs.num), nil
	case TypeFloat64:
		return f.f64 <= rhs.f64, nil
	case TypeUInt128:
		return f.u128.Cmp(rhs.u128) <= 0, nil
	case TypeInt128:
		return f.i128.Cmp(rhs.i128) <= 0, nil
	case TypeUInt256:
		return f.u256.Cmp(rhs.u256) <= 0, nil
	case TypeInt256:
		return f.i256.Cmp(rhs.i256) <= 0, nil
	case TypeUUID:
		return bytes.Compare(f.id[:], rhs.id[:]) <= 0, nil
	case TypeString, TypeSketchBinary:
		return bytes.Compare(f.str, rhs.str) <= 0, nil
	case TypeArray, TypeTuple, TypeMap, TypeByteMap:
		return seqLessOrEqual(f.seq, rhs.seq)
	case TypeDecimal32:
		return DecimalLessOrEqual(f.GetDecimal32(), rhs.GetDecimal32()), nil
	case TypeDecimal64:
		return DecimalLessOrEqual(f.GetDecimal64(), rhs.GetDecimal64()), nil
	case TypeDecimal128:
		return DecimalLessOrEqual(f.GetDecimal128(), rhs.GetDecimal128()), nil
	case TypeDecimal256:
		return DecimalLessOrEqual(f.GetDecimal256(), rhs.GetDecimal256()), nil
	case TypeAggregateState:
		return f.agg.LessOrEqual(rhs.agg)
	case TypeBitmap64:
		return false, fmt.Errorf("%w: ordering bitmap fields", ErrNotImplemented)
	}
	panic(fmt.Sprintf("bad type of field: %d", uint8(f.which)))
}

// Greater is Less with the operands swapped; there is no independent
// implementation, which keeps the order consistent.
func (f *Field) Greater(rhs *Field) (bool, error) { return rhs.Less(f) }

// GreaterOrEqual is LessOrEqual with the operands swapped.
func (f *Field) GreaterOrEqual(rhs *Field) (bool, error) { return rhs.LessOrEqual(f) }

// Equal reports representation equality. Fields of different tags are
// never equal; comparing aggregate states with different names fails
// with ErrTypeMismatch.
func (f *Field) Equal(rhs *Field) (bool, error) {
	if f.which != rhs.which {
		return false, nil
	}

	switch f.which {
	case TypeNull, TypeNegativeInfinity, TypePositiveInfinity:
		return true, nil
	case TypeUInt64, TypeInt64:
		return f.num == rhs.num, nil
	case TypeFloat64:
		// Bit pattern comparison so NaNs with identical payloads
		// compare equal.
		return math.Float64bits(f.f64) == math.Float64bits(rhs.f64), nil
	case TypeUInt128:
		return f.u128 == rhs.u128, nil
	case TypeInt128:
		return f.i128 == rhs.i128, nil
	case TypeUInt256:
		return f.u256 == rhs.u256, nil
	case TypeInt256:
		return f.i256 == rhs.i256, nil
	case TypeUUID:
		return f.id == rhs.id, nil
	case TypeString, TypeSketchBinary:
		return bytes.Equal(f.str, rhs.str), nil
	case TypeArray, TypeTuple, TypeMap, TypeByteMap:
		return seqEqual(f.seq, rhs.seq)
	case TypeDecimal32:
		return DecimalEqual(f.GetDecimal32(), rhs.GetDecimal32()), nil
	case TypeDecimal64:
		return DecimalEqual(f.GetDecimal64(), rhs.GetDecimal64()), nil
	case TypeDecimal128:
		return DecimalEqual(f.GetDecimal128(), rhs.GetDecimal128()), nil
	case TypeDecimal256:
		return DecimalEqual(f.GetDecimal256(), rhs.GetDecimal256()), nil
	case TypeAggregateState:
		return f.agg.Equal(rhs.agg)
	case TypeBitmap64:
		return f.bitmap.Equals(rhs.bitmap), nil
	}
	panic(fmt.Sprintf("bad type of field: %d", uint8(f.which)))
}

// NotEqual is the negation of Equal, with the same failure cases.
func (f *Field) NotEqual(rhs *Field) (bool, error) {
	eq, err := f.Equal(rhs)
	return !eq, err
}

// Composite kinds compare lexicographically in element order,
// recursively applying the field ordering.

func seqLess(a, b []Field) (bool, error) {
	n := min(len(a), len(b))
	for i := 0; i < n; i++ {
		less, err := a[i].Less(&b[i])
		if err != nil {
			return false, err
		}
		if less {
			return true, nil
		}
		greater, err := b[i].Less(&a[i])
		if err != nil {
			return false, err
		}
		if greater {
			return false, nil
		}
	}
	return len(a) < len(b), nil
}

func seqLessOrEqual(a, b []Field) (bool, error) {
	n := min(len(a), len(b))
	for i := 0; i < n; i++ {
		less, err := a[i].Less(&b[i])
		if err != nil {
			return false, err
		}
		if less {
			return true, nil
		}
		greater, err := b[i].Less(&a[i])
		if err != nil {
			return false, err
		}
		if greater {
			return false, nil
		}
	}
	return len(a) <= len(b), nil
}

func seqEqual(a, b []Field) (bool, error) {
	if len(a) != len(b) {
		return false, nil
	}
	for i := range a {
		eq, err := a[i].Equal(&b[i])
		if err != nil {
			return false, err
		}
		if !eq {
			return false, nil
		}
	}
	return true, nil
}
