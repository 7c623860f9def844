package field

import "fmt"

// Type is the closed set of storage kinds a Field can hold.
//
// Ordinals are persisted in the binary format and compared directly by
// the ordering protocol, so they must never be renumbered. Numeric
// kinds occupy a low contiguous range, composite and opaque kinds a
// mid range, and the two range-analysis sentinels take the highest
// ordinals so they sort as universal endpoints.
type Type uint8

const (
	TypeNull    Type = 0
	TypeUInt64  Type = 1
	TypeInt64   Type = 2
	TypeFloat64 Type = 3
	TypeUInt128 Type = 4
	TypeInt128  Type = 5

	TypeString         Type = 16
	TypeArray          Type = 17
	TypeTuple          Type = 18
	TypeDecimal32      Type = 19
	TypeDecimal64      Type = 20
	TypeDecimal128     Type = 21
	TypeAggregateState Type = 22
	TypeDecimal256     Type = 23
	TypeUInt256        Type = 24
	TypeInt256         Type = 25
	TypeMap            Type = 26
	TypeUUID           Type = 27
	TypeByteMap        Type = 28
	TypeBitmap64       Type = 29
	TypeSketchBinary   Type = 30

	// Boundary kinds for index range analysis. They carry no payload
	// and denote unbounded range endpoints, not real values.
	TypeNegativeInfinity Type = 254
	TypePositiveInfinity Type = 255
)

// String returns the stable display name for the tag, used in error
// messages and dumps. ByteMap intentionally shares the "Map" name
// with Map while keeping its own ordinal; downstream display logic
// relies on the two rendering identically.
//
// Panics on an unregistered ordinal: that indicates memory corruption
// or a missing case in a generic operation, not a recoverable
// condition.
func (t Type) String() string {
	switch t {
	case TypeNull:
		return "Null"
	case TypeNegativeInfinity:
		return "-Inf"
	case TypePositiveInfinity:
		return "+Inf"
	case TypeUInt64:
		return "UInt64"
	case TypeUInt128:
		return "UInt128"
	case TypeUInt256:
		return "UInt256"
	case TypeInt64:
		return "Int64"
	case TypeInt128:
		return "Int128"
	case TypeInt256:
		return "Int256"
	case TypeUUID:
		return "UUID"
	case TypeFloat64:
		return "Float64"
	case TypeString:
		return "String"
	case TypeArray:
		return "Array"
	case TypeTuple:
		return "Tuple"
	case TypeMap:
		return "Map"
	case TypeByteMap:
		return "Map"
	case TypeDecimal32:
		return "Decimal32"
	case TypeDecimal64:
		return "Decimal64"
	case TypeDecimal128:
		return "Decimal128"
	case TypeDecimal256:
		return "Decimal256"
	case TypeAggregateState:
		return "AggregateState"
	case TypeBitmap64:
		return "Bitmap64"
	case TypeSketchBinary:
		return "SketchBinary"
	}
	panic(fmt.Sprintf("bad type of field: %d", uint8(t)))
}

// Registered reports whether t is one of the defined storage kinds.
func (t Type) Registered() bool {
	switch {
	case t <= TypeInt128:
		return true
	case t >= TypeString && t <= TypeSketchBinary:
		return true
	case t == TypeNegativeInfinity || t == TypePositiveInfinity:
		return true
	}
	return false
}

// IsDecimal reports whether t is one of the decimal kinds.
func IsDecimal(t Type) bool {
	return t == TypeDecimal32 ||
		t == TypeDecimal64 ||
		t == TypeDecimal128 ||
		t == TypeDecimal256
}

// IsInt64OrUInt64 reports whether t is one of the two 64-bit integer
// kinds. The unchecked accessors treat these as mutually accessible:
// both store their bit pattern in the same slot, so reading an Int64
// field as UInt64 (or vice versa) reinterprets rather than misreads.
func IsInt64OrUInt64(t Type) bool {
	return t == TypeInt64 || t == TypeUInt64
}
