package field

import (
	"fmt"

	"github.com/RoaringBitmap/roaring/v2/roaring64"
	"github.com/google/uuid"
)

// Visitor is a generic operation over whichever payload a Field
// currently holds. Serialization and hashing consumers implement it
// once instead of re-deriving an exhaustive type switch per
// operation; adding a storage kind forces every visitor to grow a
// method, so no operation can silently miss a case.
type Visitor interface {
	VisitNull() error
	VisitNegativeInfinity() error
	VisitPositiveInfinity() error
	VisitUInt64(v uint64) error
	VisitInt64(v int64) error
	VisitFloat64(v float64) error
	VisitUInt128(v UInt128) error
	VisitInt128(v Int128) error
	VisitUInt256(v UInt256) error
	VisitInt256(v Int256) error
	VisitUUID(v uuid.UUID) error
	VisitString(v []byte) error
	VisitSketchBinary(v []byte) error
	VisitArray(v Array) error
	VisitTuple(v Tuple) error
	VisitMap(v Map) error
	VisitByteMap(v ByteMap) error
	VisitDecimal32(v Decimal32) error
	VisitDecimal64(v Decimal64) error
	VisitDecimal128(v Decimal128) error
	VisitDecimal256(v Decimal256) error
	VisitAggregateState(v AggregateState) error
	VisitBitmap64(v *roaring64.Bitmap) error
}

// Dispatch applies v to the active payload. A tag outside the
// registry is unreachable short of memory corruption and panics.
func (f *Field) Dispatch(v Visitor) error {
	switch f.which {
	case TypeNull:
		return v.VisitNull()
	case TypeNegativeInfinity:
		return v.VisitNegativeInfinity()
	case TypePositiveInfinity:
		return v.VisitPositiveInfinity()
	case TypeUInt64:
		return v.VisitUInt64(f.num)
	case TypeInt64:
		return v.VisitInt64(int64(f.num))
	case TypeFloat64:
		return v.VisitFloat64(f.f64)
	case TypeUInt128:
		return v.VisitUInt128(f.u128)
	case TypeInt128:
		return v.VisitInt128(f.i128)
	case TypeUInt256:
		return v.VisitUInt256(f.u256)
	case TypeInt256:
		return v.VisitInt256(f.i256)
	case TypeUUID:
		return v.VisitUUID(f.id)
	case TypeString:
		return v.VisitString(f.str)
	case TypeSketchBinary:
		return v.VisitSketchBinary(f.str)
	case TypeArray:
		return v.VisitArray(Array(f.seq))
	case TypeTuple:
		return v.VisitTuple(Tuple(f.seq))
	case TypeMap:
		return v.VisitMap(Map(f.seq))
	case TypeByteMap:
		return v.VisitByteMap(ByteMap(f.seq))
	case TypeDecimal32:
		return v.VisitDecimal32(f.GetDecimal32())
	case TypeDecimal64:
		return v.VisitDecimal64(f.GetDecimal64())
	case TypeDecimal128:
		return v.VisitDecimal128(f.GetDecimal128())
	case TypeDecimal256:
		return v.VisitDecimal256(f.GetDecimal256())
	case TypeAggregateState:
		return v.VisitAggregateState(f.agg)
	case TypeBitmap64:
		return v.VisitBitmap64(f.bitmap)
	}
	panic(fmt.Sprintf("bad type of field: %d", uint8(f.which)))
}
