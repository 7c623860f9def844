package field

import (
	"fmt"
	"reflect"

	"github.com/RoaringBitmap/roaring/v2/roaring64"
	"github.com/google/uuid"
)

// Promotion collapses every accepted input type into the fixed set of
// storage kinds: narrower signed integers widen to Int64, narrower
// unsigned integers and bool to UInt64, float32 to Float64, and
// string-like inputs to an owned byte-string. Wide integers, UUIDs,
// decimals, composites and opaque payloads keep their own kinds, and
// the sentinels map to themselves. Named types with an integer, float
// or string underlying kind promote per the underlying kind's rule.

// New builds a Field from any promotable native value. Composite,
// aggregate and bitmap inputs are taken over, not copied; a Field or
// *Field input is deep-copied. A value no rule covers returns an
// error; use MustNew where the input type is statically known.
func New(v any) (Field, error) {
	switch x := v.(type) {
	case nil:
		return Field{}, nil
	case Null:
		return Field{}, nil
	case NegativeInfinity:
		return NewNegativeInfinity(), nil
	case PositiveInfinity:
		return NewPositiveInfinity(), nil
	case Field:
		return x.Clone(), nil
	case *Field:
		return x.Clone(), nil
	case bool:
		return NewBool(x), nil
	case uint8:
		return NewUInt64(uint64(x)), nil
	case uint16:
		return NewUInt64(uint64(x)), nil
	case uint32:
		return NewUInt64(uint64(x)), nil
	case uint64:
		return NewUInt64(x), nil
	case uint:
		return NewUInt64(uint64(x)), nil
	case uintptr:
		return NewUInt64(uint64(x)), nil
	case int8:
		return NewInt64(int64(x)), nil
	case int16:
		return NewInt64(int64(x)), nil
	case int32:
		return NewInt64(int64(x)), nil
	case int64:
		return NewInt64(x), nil
	case int:
		return NewInt64(int64(x)), nil
	case float32:
		return NewFloat64(float64(x)), nil
	case float64:
		return NewFloat64(x), nil
	case string:
		return NewString(x), nil
	case []byte:
		return NewBytes(x), nil
	case UInt128:
		return NewUInt128(x), nil
	case Int128:
		return NewInt128(x), nil
	case UInt256:
		return NewUInt256(x), nil
	case Int256:
		return NewInt256(x), nil
	case uuid.UUID:
		return NewUUID(x), nil
	case Decimal32:
		return NewDecimal32(x), nil
	case Decimal64:
		return NewDecimal64(x), nil
	case Decimal128:
		return NewDecimal128(x), nil
	case Decimal256:
		return NewDecimal256(x), nil
	case Array:
		return NewArray(x), nil
	case Tuple:
		return NewTuple(x), nil
	case Map:
		return NewMap(x), nil
	case ByteMap:
		return NewByteMap(x), nil
	case AggregateState:
		return NewAggregateState(x), nil
	case *roaring64.Bitmap:
		return NewBitmap64(x), nil
	}

	// Named types fall through the exact-type switch; promote them
	// per their underlying kind.
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Bool:
		return NewBool(rv.Bool()), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return NewInt64(rv.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return NewUInt64(rv.Uint()), nil
	case reflect.Float32, reflect.Float64:
		return NewFloat64(rv.Float()), nil
	case reflect.String:
		return NewString(rv.String()), nil
	}

	return Field{}, fmt.Errorf("cannot promote value of type %T to a field", v)
}

// MustNew is New for inputs known to be promotable. An unmapped type
// is a programming error, not a runtime condition, and panics.
func MustNew(v any) Field {
	f, err := New(v)
	if err != nil {
		panic(err.Error())
	}
	return f
}

// NearestType reports the storage kind New would select for v,
// without constructing a Field. The second result is false when no
// promotion rule covers v.
func NearestType(v any) (Type, bool) {
	switch v.(type) {
	case nil, Null:
		return TypeNull, true
	case NegativeInfinity:
		return TypeNegativeInfinity, true
	case PositiveInfinity:
		return TypePositiveInfinity, true
	case bool, uint8, uint16, uint32, uint64, uint, uintptr:
		return TypeUInt64, true
	case int8, int16, int32, int64, int:
		return TypeInt64, true
	case float32, float64:
		return TypeFloat64, true
	case string, []byte:
		return TypeString, true
	case UInt128:
		return TypeUInt128, true
	case Int128:
		return TypeInt128, true
	case UInt256:
		return TypeUInt256, true
	case Int256:
		return TypeInt256, true
	case uuid.UUID:
		return TypeUUID, true
	case Decimal32:
		return TypeDecimal32, true
	case Decimal64:
		return TypeDecimal64, true
	case Decimal128:
		return TypeDecimal128, true
	case Decimal256:
		return TypeDecimal256, true
	case Array:
		return TypeArray, true
	case Tuple:
		return TypeTuple, true
	case Map:
		return TypeMap, true
	case ByteMap:
		return TypeByteMap, true
	case AggregateState:
		return TypeAggregateState, true
	case *roaring64.Bitmap:
		return TypeBitmap64, true
	}

	switch reflect.ValueOf(v).Kind() {
	case reflect.Bool, reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return TypeUInt64, true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return TypeInt64, true
	case reflect.Float32, reflect.Float64:
		return TypeFloat64, true
	case reflect.String:
		return TypeString, true
	}
	return TypeNull, false
}
