package field

import "math/big"

// Fixed-width 128 and 256 bit integers, stored as 64-bit limbs so the
// payload stays inline in a Field. Arithmetic beyond comparison goes
// through math/big; the FromBig constructors truncate two's-complement
// style, matching native integer overflow.

var (
	mask64  = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 64), big.NewInt(1))
	mask128 = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 128), big.NewInt(1))
	mask256 = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 256), big.NewInt(1))
)

// UInt128 is an unsigned 128-bit integer.
type UInt128 struct {
	Hi uint64
	Lo uint64
}

// Cmp returns -1, 0 or 1 ordering u against o.
func (u UInt128) Cmp(o UInt128) int {
	switch {
	case u.Hi != o.Hi:
		if u.Hi < o.Hi {
			return -1
		}
		return 1
	case u.Lo != o.Lo:
		if u.Lo < o.Lo {
			return -1
		}
		return 1
	}
	return 0
}

// Big returns the value as an arbitrary-precision integer.
func (u UInt128) Big() *big.Int {
	b := new(big.Int).SetUint64(u.Hi)
	b.Lsh(b, 64)
	return b.Or(b, new(big.Int).SetUint64(u.Lo))
}

// UInt128FromBig truncates b to its low 128 bits.
func UInt128FromBig(b *big.Int) UInt128 {
	t := new(big.Int).And(b, mask128)
	return UInt128{
		Hi: new(big.Int).Rsh(t, 64).Uint64(),
		Lo: new(big.Int).And(t, mask64).Uint64(),
	}
}

func (u UInt128) String() string { return u.Big().String() }

// Int128 is a signed two's-complement 128-bit integer.
type Int128 struct {
	Hi int64
	Lo uint64
}

// Cmp returns -1, 0 or 1 ordering i against o.
func (i Int128) Cmp(o Int128) int {
	switch {
	case i.Hi != o.Hi:
		if i.Hi < o.Hi {
			return -1
		}
		return 1
	case i.Lo != o.Lo:
		if i.Lo < o.Lo {
			return -1
		}
		return 1
	}
	return 0
}

// Big returns the value as an arbitrary-precision integer.
func (i Int128) Big() *big.Int {
	b := big.NewInt(i.Hi)
	b.Lsh(b, 64)
	return b.Add(b, new(big.Int).SetUint64(i.Lo))
}

// Int128FromBig truncates b to its low 128 bits, reinterpreting the
// top limb as signed.
func Int128FromBig(b *big.Int) Int128 {
	u := UInt128FromBig(b)
	return Int128{Hi: int64(u.Hi), Lo: u.Lo}
}

func (i Int128) String() string { return i.Big().String() }

// UInt256 is an unsigned 256-bit integer.
type UInt256 struct {
	Hi UInt128
	Lo UInt128
}

// Cmp returns -1, 0 or 1 ordering u against o.
func (u UInt256) Cmp(o UInt256) int {
	if c := u.Hi.Cmp(o.Hi); c != 0 {
		return c
	}
	return u.Lo.Cmp(o.Lo)
}

// Big returns the value as an arbitrary-precision integer.
func (u UInt256) Big() *big.Int {
	b := u.Hi.Big()
	b.Lsh(b, 128)
	return b.Or(b, u.Lo.Big())
}

// UInt256FromBig truncates b to its low 256 bits.
func UInt256FromBig(b *big.Int) UInt256 {
	t := new(big.Int).And(b, mask256)
	return UInt256{
		Hi: UInt128FromBig(new(big.Int).Rsh(t, 128)),
		Lo: UInt128FromBig(t),
	}
}

func (u UInt256) String() string { return u.Big().String() }

// Int256 is a signed two's-complement 256-bit integer.
type Int256 struct {
	Hi Int128
	Lo UInt128
}

// Cmp returns -1, 0 or 1 ordering i against o.
func (i Int256) Cmp(o Int256) int {
	if c := i.Hi.Cmp(o.Hi); c != 0 {
		return c
	}
	return i.Lo.Cmp(o.Lo)
}

// Big returns the value as an arbitrary-precision integer.
func (i Int256) Big() *big.Int {
	b := i.Hi.Big()
	b.Lsh(b, 128)
	return b.Add(b, i.Lo.Big())
}

// Int256FromBig truncates b to its low 256 bits, reinterpreting the
// top limb as signed.
func Int256FromBig(b *big.Int) Int256 {
	t := new(big.Int).And(b, mask256)
	return Int256{
		Hi: Int128FromBig(new(big.Int).Rsh(t, 128)),
		Lo: UInt128FromBig(t),
	}
}

func (i Int256) String() string { return i.Big().String() }
