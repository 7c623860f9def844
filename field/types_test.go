package field

import "testing"

func TestTypeNames(t *testing.T) {
	cases := []struct {
		typ  Type
		name string
	}{
		{TypeNull, "Null"},
		{TypeUInt64, "UInt64"},
		{TypeInt64, "Int64"},
		{TypeFloat64, "Float64"},
		{TypeUInt128, "UInt128"},
		{TypeInt128, "Int128"},
		{TypeString, "String"},
		{TypeArray, "Array"},
		{TypeTuple, "Tuple"},
		{TypeDecimal32, "Decimal32"},
		{TypeDecimal64, "Decimal64"},
		{TypeDecimal128, "Decimal128"},
		{TypeAggregateState, "AggregateState"},
		{TypeDecimal256, "Decimal256"},
		{TypeUInt256, "UInt256"},
		{TypeInt256, "Int256"},
		{TypeMap, "Map"},
		{TypeUUID, "UUID"},
		{TypeByteMap, "Map"},
		{TypeBitmap64, "Bitmap64"},
		{TypeSketchBinary, "SketchBinary"},
		{TypeNegativeInfinity, "-Inf"},
		{TypePositiveInfinity, "+Inf"},
	}
	for _, c := range cases {
		if got := c.typ.String(); got != c.name {
			t.Errorf("Type(%d).String() = %q, want %q", uint8(c.typ), got, c.name)
		}
	}
}

func TestTypeOrdinalsStable(t *testing.T) {
	// These values are persisted; renumbering breaks stored data.
	ordinals := map[Type]uint8{
		TypeNull:             0,
		TypeUInt64:           1,
		TypeInt64:            2,
		TypeFloat64:          3,
		TypeUInt128:          4,
		TypeInt128:           5,
		TypeString:           16,
		TypeArray:            17,
		TypeTuple:            18,
		TypeDecimal32:        19,
		TypeDecimal64:        20,
		TypeDecimal128:       21,
		TypeAggregateState:   22,
		TypeDecimal256:       23,
		TypeUInt256:          24,
		TypeInt256:           25,
		TypeMap:              26,
		TypeUUID:             27,
		TypeByteMap:          28,
		TypeBitmap64:         29,
		TypeSketchBinary:     30,
		TypeNegativeInfinity: 254,
		TypePositiveInfinity: 255,
	}
	for typ, want := range ordinals {
		if uint8(typ) != want {
			t.Errorf("%s has ordinal %d, want %d", typ, uint8(typ), want)
		}
	}
}

func TestTypeStringPanicsOnUnregistered(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for unregistered ordinal")
		}
	}()
	_ = Type(100).String()
}

func TestRegistered(t *testing.T) {
	for _, typ := range []Type{
		TypeNull, TypeInt128, TypeString, TypeSketchBinary,
		TypeNegativeInfinity, TypePositiveInfinity,
	} {
		if !typ.Registered() {
			t.Errorf("%d should be registered", uint8(typ))
		}
	}
	for _, ord := range []uint8{6, 15, 31, 100, 253} {
		if Type(ord).Registered() {
			t.Errorf("%d should not be registered", ord)
		}
	}
}

func TestIsDecimal(t *testing.T) {
	for _, typ := range []Type{TypeDecimal32, TypeDecimal64, TypeDecimal128, TypeDecimal256} {
		if !IsDecimal(typ) {
			t.Errorf("IsDecimal(%s) = false", typ)
		}
	}
	if IsDecimal(TypeFloat64) {
		t.Error("IsDecimal(Float64) = true")
	}
}

func TestIsInt64OrUInt64(t *testing.T) {
	if !IsInt64OrUInt64(TypeInt64) || !IsInt64OrUInt64(TypeUInt64) {
		t.Error("64-bit integer kinds not recognized")
	}
	if IsInt64OrUInt64(TypeUInt128) {
		t.Error("UInt128 wrongly recognized as 64-bit integer kind")
	}
}
