package field

import (
	"fmt"

	"github.com/RoaringBitmap/roaring/v2/roaring64"
	"github.com/google/uuid"
)

// Each storage kind has three access forms:
//
//   - GetX: unchecked, for hot paths where the caller has already
//     verified the tag. Reading the wrong kind returns whatever the
//     shared slot holds; the one sanctioned case is the Int64/UInt64
//     pair, which share a slot so cross-signedness reinterpretation
//     is well defined (see IsInt64OrUInt64).
//   - TryGetX: returns (value, true) when the tag matches, the zero
//     value and false otherwise. Never fails.
//   - SafeGetX: checked unconditionally; a mismatch yields ErrBadGet
//     carrying both the actual and the requested type names.

func (f *Field) badGet(requested Type) error {
	return fmt.Errorf("%w: has %s, requested %s", ErrBadGet, f.which, requested)
}

// GetUInt64 returns the unsigned 64-bit payload without checking the
// tag.
func (f *Field) GetUInt64() uint64 { return f.num }

// TryGetUInt64 returns the payload if the field holds a UInt64.
func (f *Field) TryGetUInt64() (uint64, bool) {
	if f.which != TypeUInt64 {
		return 0, false
	}
	return f.num, true
}

// SafeGetUInt64 returns the payload or ErrBadGet.
func (f *Field) SafeGetUInt64() (uint64, error) {
	if f.which != TypeUInt64 {
		return 0, f.badGet(TypeUInt64)
	}
	return f.num, nil
}

// GetInt64 returns the signed 64-bit payload without checking the
// tag.
func (f *Field) GetInt64() int64 { return int64(f.num) }

// TryGetInt64 returns the payload if the field holds an Int64.
func (f *Field) TryGetInt64() (int64, bool) {
	if f.which != TypeInt64 {
		return 0, false
	}
	return int64(f.num), true
}

// SafeGetInt64 returns the payload or ErrBadGet.
func (f *Field) SafeGetInt64() (int64, error) {
	if f.which != TypeInt64 {
		return 0, f.badGet(TypeInt64)
	}
	return int64(f.num), nil
}

// GetFloat64 returns the float payload without checking the tag.
func (f *Field) GetFloat64() float64 { return f.f64 }

// TryGetFloat64 returns the payload if the field holds a Float64.
func (f *Field) TryGetFloat64() (float64, bool) {
	if f.which != TypeFloat64 {
		return 0, false
	}
	return f.f64, true
}

// SafeGetFloat64 returns the payload or ErrBadGet.
func (f *Field) SafeGetFloat64() (float64, error) {
	if f.which != TypeFloat64 {
		return 0, f.badGet(TypeFloat64)
	}
	return f.f64, nil
}

// GetUInt128 returns the 128-bit unsigned payload without checking
// the tag.
func (f *Field) GetUInt128() UInt128 { return f.u128 }

// TryGetUInt128 returns the payload if the field holds a UInt128.
func (f *Field) TryGetUInt128() (UInt128, bool) {
	if f.which != TypeUInt128 {
		return UInt128{}, false
	}
	return f.u128, true
}

// SafeGetUInt128 returns the payload or ErrBadGet.
func (f *Field) SafeGetUInt128() (UInt128, error) {
	if f.which != TypeUInt128 {
		return UInt128{}, f.badGet(TypeUInt128)
	}
	return f.u128, nil
}

// GetInt128 returns the 128-bit signed payload without checking the
// tag.
func (f *Field) GetInt128() Int128 { return f.i128 }

// TryGetInt128 returns the payload if the field holds an Int128.
func (f *Field) TryGetInt128() (Int128, bool) {
	if f.which != TypeInt128 {
		return Int128{}, false
	}
	return f.i128, true
}

// SafeGetInt128 returns the payload or ErrBadGet.
func (f *Field) SafeGetInt128() (Int128, error) {
	if f.which != TypeInt128 {
		return Int128{}, f.badGet(TypeInt128)
	}
	return f.i128, nil
}

// GetUInt256 returns the 256-bit unsigned payload without checking
// the tag.
func (f *Field) GetUInt256() UInt256 { return f.u256 }

// TryGetUInt256 returns the payload if the field holds a UInt256.
func (f *Field) TryGetUInt256() (UInt256, bool) {
	if f.which != TypeUInt256 {
		return UInt256{}, false
	}
	return f.u256, true
}

// SafeGetUInt256 returns the payload or ErrBadGet.
func (f *Field) SafeGetUInt256() (UInt256, error) {
	if f.which != TypeUInt256 {
		return UInt256{}, f.badGet(TypeUInt256)
	}
	return f.u256, nil
}

// GetInt256 returns the 256-bit signed payload without checking the
// tag.
func (f *Field) GetInt256() Int256 { return f.i256 }

// TryGetInt256 returns the payload if the field holds an Int256.
func (f *Field) TryGetInt256() (Int256, bool) {
	if f.which != TypeInt256 {
		return Int256{}, false
	}
	return f.i256, true
}

// SafeGetInt256 returns the payload or ErrBadGet.
func (f *Field) SafeGetInt256() (Int256, error) {
	if f.which != TypeInt256 {
		return Int256{}, f.badGet(TypeInt256)
	}
	return f.i256, nil
}

// GetUUID returns the UUID payload without checking the tag.
func (f *Field) GetUUID() uuid.UUID { return f.id }

// TryGetUUID returns the payload if the field holds a UUID.
func (f *Field) TryGetUUID() (uuid.UUID, bool) {
	if f.which != TypeUUID {
		return uuid.UUID{}, false
	}
	return f.id, true
}

// SafeGetUUID returns the payload or ErrBadGet.
func (f *Field) SafeGetUUID() (uuid.UUID, error) {
	if f.which != TypeUUID {
		return uuid.UUID{}, f.badGet(TypeUUID)
	}
	return f.id, nil
}

// GetString returns the string payload as a copied Go string without
// checking the tag. Serves both the String and SketchBinary kinds.
func (f *Field) GetString() string { return string(f.str) }

// GetBytes returns the string payload's backing bytes without
// copying. The slice stays owned by the field; callers must not keep
// it past the field's next mutation.
func (f *Field) GetBytes() []byte { return f.str }

// TryGetString returns the payload if the field holds the String
// kind. SketchBinary does not match: the tags are distinct.
func (f *Field) TryGetString() (string, bool) {
	if f.which != TypeString {
		return "", false
	}
	return string(f.str), true
}

// SafeGetString returns the payload or ErrBadGet.
func (f *Field) SafeGetString() (string, error) {
	if f.which != TypeString {
		return "", f.badGet(TypeString)
	}
	return string(f.str), nil
}

// TryGetSketchBinary returns the payload if the field holds the
// SketchBinary kind.
func (f *Field) TryGetSketchBinary() ([]byte, bool) {
	if f.which != TypeSketchBinary {
		return nil, false
	}
	return f.str, true
}

// SafeGetSketchBinary returns the payload or ErrBadGet.
func (f *Field) SafeGetSketchBinary() ([]byte, error) {
	if f.which != TypeSketchBinary {
		return nil, f.badGet(TypeSketchBinary)
	}
	return f.str, nil
}

// GetArray returns the sequence payload as an Array without checking
// the tag.
func (f *Field) GetArray() Array { return Array(f.seq) }

// TryGetArray returns the payload if the field holds an Array.
func (f *Field) TryGetArray() (Array, bool) {
	if f.which != TypeArray {
		return nil, false
	}
	return Array(f.seq), true
}

// SafeGetArray returns the payload or ErrBadGet.
func (f *Field) SafeGetArray() (Array, error) {
	if f.which != TypeArray {
		return nil, f.badGet(TypeArray)
	}
	return Array(f.seq), nil
}

// GetTuple returns the sequence payload as a Tuple without checking
// the tag.
func (f *Field) GetTuple() Tuple { return Tuple(f.seq) }

// TryGetTuple returns the payload if the field holds a Tuple.
func (f *Field) TryGetTuple() (Tuple, bool) {
	if f.which != TypeTuple {
		return nil, false
	}
	return Tuple(f.seq), true
}

// SafeGetTuple returns the payload or ErrBadGet.
func (f *Field) SafeGetTuple() (Tuple, error) {
	if f.which != TypeTuple {
		return nil, f.badGet(TypeTuple)
	}
	return Tuple(f.seq), nil
}

// GetMap returns the sequence payload as a Map without checking the
// tag.
func (f *Field) GetMap() Map { return Map(f.seq) }

// TryGetMap returns the payload if the field holds a Map.
func (f *Field) TryGetMap() (Map, bool) {
	if f.which != TypeMap {
		return nil, false
	}
	return Map(f.seq), true
}

// SafeGetMap returns the payload or ErrBadGet.
func (f *Field) SafeGetMap() (Map, error) {
	if f.which != TypeMap {
		return nil, f.badGet(TypeMap)
	}
	return Map(f.seq), nil
}

// GetByteMap returns the sequence payload as a ByteMap without
// checking the tag.
func (f *Field) GetByteMap() ByteMap { return ByteMap(f.seq) }

// TryGetByteMap returns the payload if the field holds a ByteMap.
func (f *Field) TryGetByteMap() (ByteMap, bool) {
	if f.which != TypeByteMap {
		return nil, false
	}
	return ByteMap(f.seq), true
}

// SafeGetByteMap returns the payload or ErrBadGet.
func (f *Field) SafeGetByteMap() (ByteMap, error) {
	if f.which != TypeByteMap {
		return nil, f.badGet(TypeByteMap)
	}
	return ByteMap(f.seq), nil
}

// GetDecimal32 reconstructs the Decimal32 payload without checking
// the tag.
func (f *Field) GetDecimal32() Decimal32 {
	return NewDecimalField(int32(f.num), f.scale)
}

// TryGetDecimal32 returns the payload if the field holds a Decimal32.
func (f *Field) TryGetDecimal32() (Decimal32, bool) {
	if f.which != TypeDecimal32 {
		return Decimal32{}, false
	}
	return f.GetDecimal32(), true
}

// SafeGetDecimal32 returns the payload or ErrBadGet.
func (f *Field) SafeGetDecimal32() (Decimal32, error) {
	if f.which != TypeDecimal32 {
		return Decimal32{}, f.badGet(TypeDecimal32)
	}
	return f.GetDecimal32(), nil
}

// GetDecimal64 reconstructs the Decimal64 payload without checking
// the tag.
func (f *Field) GetDecimal64() Decimal64 {
	return NewDecimalField(int64(f.num), f.scale)
}

// TryGetDecimal64 returns the payload if the field holds a Decimal64.
func (f *Field) TryGetDecimal64() (Decimal64, bool) {
	if f.which != TypeDecimal64 {
		return Decimal64{}, false
	}
	return f.GetDecimal64(), true
}

// SafeGetDecimal64 returns the payload or ErrBadGet.
func (f *Field) SafeGetDecimal64() (Decimal64, error) {
	if f.which != TypeDecimal64 {
		return Decimal64{}, f.badGet(TypeDecimal64)
	}
	return f.GetDecimal64(), nil
}

// GetDecimal128 reconstructs the Decimal128 payload without checking
// the tag.
func (f *Field) GetDecimal128() Decimal128 {
	return NewDecimalField(f.i128, f.scale)
}

// TryGetDecimal128 returns the payload if the field holds a
// Decimal128.
func (f *Field) TryGetDecimal128() (Decimal128, bool) {
	if f.which != TypeDecimal128 {
		return Decimal128{}, false
	}
	return f.GetDecimal128(), true
}

// SafeGetDecimal128 returns the payload or ErrBadGet.
func (f *Field) SafeGetDecimal128() (Decimal128, error) {
	if f.which != TypeDecimal128 {
		return Decimal128{}, f.badGet(TypeDecimal128)
	}
	return f.GetDecimal128(), nil
}

// GetDecimal256 reconstructs the Decimal256 payload without checking
// the tag.
func (f *Field) GetDecimal256() Decimal256 {
	return NewDecimalField(f.i256, f.scale)
}

// TryGetDecimal256 returns the payload if the field holds a
// Decimal256.
func (f *Field) TryGetDecimal256() (Decimal256, bool) {
	if f.which != TypeDecimal256 {
		return Decimal256{}, false
	}
	return f.GetDecimal256(), true
}

// SafeGetDecimal256 returns the payload or ErrBadGet.
func (f *Field) SafeGetDecimal256() (Decimal256, error) {
	if f.which != TypeDecimal256 {
		return Decimal256{}, f.badGet(TypeDecimal256)
	}
	return f.GetDecimal256(), nil
}

// GetAggregateState returns the aggregate payload without checking
// the tag or copying the data.
func (f *Field) GetAggregateState() AggregateState { return f.agg }

// TryGetAggregateState returns the payload if the field holds an
// AggregateState.
func (f *Field) TryGetAggregateState() (AggregateState, bool) {
	if f.which != TypeAggregateState {
		return AggregateState{}, false
	}
	return f.agg, true
}

// SafeGetAggregateState returns the payload or ErrBadGet.
func (f *Field) SafeGetAggregateState() (AggregateState, error) {
	if f.which != TypeAggregateState {
		return AggregateState{}, f.badGet(TypeAggregateState)
	}
	return f.agg, nil
}

// GetBitmap64 returns the bitmap payload without checking the tag.
// The bitmap stays owned by the field.
func (f *Field) GetBitmap64() *roaring64.Bitmap { return f.bitmap }

// TryGetBitmap64 returns the payload if the field holds a Bitmap64.
func (f *Field) TryGetBitmap64() (*roaring64.Bitmap, bool) {
	if f.which != TypeBitmap64 {
		return nil, false
	}
	return f.bitmap, true
}

// SafeGetBitmap64 returns the payload or ErrBadGet.
func (f *Field) SafeGetBitmap64() (*roaring64.Bitmap, error) {
	if f.which != TypeBitmap64 {
		return nil, f.badGet(TypeBitmap64)
	}
	return f.bitmap, nil
}
