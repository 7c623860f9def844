package field

import (
	"fmt"
	"math/big"

	"github.com/shopspring/decimal"
)

// DecimalMantissa constrains the integer widths a decimal mantissa
// can carry. Decimal32 uses int32, Decimal64 int64 (which also backs
// sub-second time kinds), Decimal128 and Decimal256 the fixed-width
// wide integers.
type DecimalMantissa interface {
	int32 | int64 | Int128 | Int256
}

// DecimalField pairs an integer mantissa with an unsigned base-10
// scale; the represented value is mantissa / 10^scale.
type DecimalField[T DecimalMantissa] struct {
	value T
	scale uint32
}

// Instantiated names for the four supported widths, matching the
// Field tag for each.
type (
	Decimal32  = DecimalField[int32]
	Decimal64  = DecimalField[int64]
	Decimal128 = DecimalField[Int128]
	Decimal256 = DecimalField[Int256]
)

// NewDecimalField builds a decimal from a raw mantissa and scale.
func NewDecimalField[T DecimalMantissa](value T, scale uint32) DecimalField[T] {
	return DecimalField[T]{value: value, scale: scale}
}

// Value returns the raw mantissa.
func (d DecimalField[T]) Value() T { return d.value }

// Scale returns the base-10 scale.
func (d DecimalField[T]) Scale() uint32 { return d.scale }

// ScaleMultiplier returns 10^scale.
func (d DecimalField[T]) ScaleMultiplier() decimal.Decimal {
	return decimal.New(1, int32(d.scale))
}

// Decimal returns the scale-normalized arbitrary-precision form. All
// widening happens here, so comparing decimals of different widths
// and scales can never overflow.
func (d DecimalField[T]) Decimal() decimal.Decimal {
	return decimal.NewFromBigInt(mantissaBig(d.value), -int32(d.scale))
}

// String renders the decimal preserving its scale, e.g. mantissa 100
// at scale 2 is "1.00".
func (d DecimalField[T]) String() string {
	return d.Decimal().StringFixed(int32(d.scale))
}

// DecimalLess reports a < b after normalizing both operands to a
// common scale.
func DecimalLess[T, U DecimalMantissa](a DecimalField[T], b DecimalField[U]) bool {
	return a.Decimal().LessThan(b.Decimal())
}

// DecimalLessOrEqual reports a <= b under scale normalization.
func DecimalLessOrEqual[T, U DecimalMantissa](a DecimalField[T], b DecimalField[U]) bool {
	return a.Decimal().LessThanOrEqual(b.Decimal())
}

// DecimalEqual reports whether a and b represent the same number,
// regardless of scale: mantissa 100 at scale 2 equals mantissa 1000
// at scale 3.
func DecimalEqual[T, U DecimalMantissa](a DecimalField[T], b DecimalField[U]) bool {
	return a.Decimal().Equal(b.Decimal())
}

// Add adds another decimal of the same width in place. The scales
// must match; mismatched scales are a logic error, never an implicit
// rescale.
func (d *DecimalField[T]) Add(r DecimalField[T]) error {
	if d.scale != r.scale {
		return fmt.Errorf("%w: add decimals with scales %d and %d", ErrInconsistentScale, d.scale, r.scale)
	}
	d.value = addMantissa(d.value, r.value)
	return nil
}

// Sub subtracts another decimal of the same width in place, with the
// same scale requirement as Add.
func (d *DecimalField[T]) Sub(r DecimalField[T]) error {
	if d.scale != r.scale {
		return fmt.Errorf("%w: sub decimals with scales %d and %d", ErrInconsistentScale, d.scale, r.scale)
	}
	d.value = subMantissa(d.value, r.value)
	return nil
}

func mantissaBig[T DecimalMantissa](v T) *big.Int {
	switch m := any(v).(type) {
	case int32:
		return big.NewInt(int64(m))
	case int64:
		return big.NewInt(m)
	case Int128:
		return m.Big()
	case Int256:
		return m.Big()
	}
	panic(fmt.Sprintf("bad decimal mantissa type %T", v))
}

func addMantissa[T DecimalMantissa](a, b T) T {
	switch x := any(a).(type) {
	case int32:
		return any(x + any(b).(int32)).(T)
	case int64:
		return any(x + any(b).(int64)).(T)
	case Int128:
		sum := new(big.Int).Add(x.Big(), any(b).(Int128).Big())
		return any(Int128FromBig(sum)).(T)
	case Int256:
		sum := new(big.Int).Add(x.Big(), any(b).(Int256).Big())
		return any(Int256FromBig(sum)).(T)
	}
	panic(fmt.Sprintf("bad decimal mantissa type %T", a))
}

func subMantissa[T DecimalMantissa](a, b T) T {
	switch x := any(a).(type) {
	case int32:
		return any(x - any(b).(int32)).(T)
	case int64:
		return any(x - any(b).(int64)).(T)
	case Int128:
		diff := new(big.Int).Sub(x.Big(), any(b).(Int128).Big())
		return any(Int128FromBig(diff)).(T)
	case Int256:
		diff := new(big.Int).Sub(x.Big(), any(b).(Int256).Big())
		return any(Int256FromBig(diff)).(T)
	}
	panic(fmt.Sprintf("bad decimal mantissa type %T", a))
}
