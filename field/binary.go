package field

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"github.com/RoaringBitmap/roaring/v2/roaring64"
	"github.com/google/uuid"
)

// Binary format. Composite kinds write the element count as an
// unsigned varint, one byte naming the shared element type, then each
// element's payload back to back; all elements are assumed to share
// one type (an empty sequence records Null). UInt64 and Int64
// payloads use varint form, fixed-width kinds write big-endian limbs.
// The whole-field codec prefixes the payload with the tag byte.

type byteReader struct {
	r io.Reader
}

func (b byteReader) ReadByte() (byte, error) {
	var buf [1]byte
	if _, err := io.ReadFull(b.r, buf[:]); err != nil {
		return 0, err
	}
	return buf[0], nil
}

func writeUvarint(w io.Writer, x uint64) error {
	var buf [binary.MaxVarintLen64]byte
	n := binary.PutUvarint(buf[:], x)
	_, err := w.Write(buf[:n])
	return err
}

func writeVarint(w io.Writer, x int64) error {
	var buf [binary.MaxVarintLen64]byte
	n := binary.PutVarint(buf[:], x)
	_, err := w.Write(buf[:n])
	return err
}

func readUvarint(r io.Reader) (uint64, error) {
	return binary.ReadUvarint(byteReader{r})
}

func readVarint(r io.Reader) (int64, error) {
	return binary.ReadVarint(byteReader{r})
}

func writeUint64BE(w io.Writer, x uint64) error {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], x)
	_, err := w.Write(buf[:])
	return err
}

func readUint64BE(r io.Reader) (uint64, error) {
	var buf [8]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint64(buf[:]), nil
}

func writeByteString(w io.Writer, b []byte) error {
	if err := writeUvarint(w, uint64(len(b))); err != nil {
		return err
	}
	_, err := w.Write(b)
	return err
}

func readByteString(r io.Reader) ([]byte, error) {
	n, err := readUvarint(r)
	if err != nil {
		return nil, err
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, err
	}
	return buf, nil
}

// WriteBinary writes the array in the composite binary form.
func (a Array) WriteBinary(w io.Writer) error { return writeSeqBinary(w, a) }

// ReadArrayBinary is the inverse of Array.WriteBinary.
func ReadArrayBinary(r io.Reader) (Array, error) {
	s, err := readSeqBinary(r)
	return Array(s), err
}

// WriteBinary writes the tuple in the composite binary form.
func (t Tuple) WriteBinary(w io.Writer) error { return writeSeqBinary(w, t) }

// ReadTupleBinary is the inverse of Tuple.WriteBinary.
func ReadTupleBinary(r io.Reader) (Tuple, error) {
	s, err := readSeqBinary(r)
	return Tuple(s), err
}

// WriteBinary writes the map in the composite binary form.
func (m Map) WriteBinary(w io.Writer) error { return writeSeqBinary(w, m) }

// ReadMapBinary is the inverse of Map.WriteBinary.
func ReadMapBinary(r io.Reader) (Map, error) {
	s, err := readSeqBinary(r)
	return Map(s), err
}

// WriteBinary writes the byte-map in the composite binary form.
func (m ByteMap) WriteBinary(w io.Writer) error { return writeSeqBinary(w, m) }

// ReadByteMapBinary is the inverse of ByteMap.WriteBinary.
func ReadByteMapBinary(r io.Reader) (ByteMap, error) {
	s, err := readSeqBinary(r)
	return ByteMap(s), err
}

// WriteBitmap64Binary writes the bitmap as a length-prefixed portable
// serialization.
func WriteBitmap64Binary(b *roaring64.Bitmap, w io.Writer) error {
	data, err := b.MarshalBinary()
	if err != nil {
		return fmt.Errorf("marshal bitmap: %w", err)
	}
	return writeByteString(w, data)
}

// ReadBitmap64Binary is the inverse of WriteBitmap64Binary.
func ReadBitmap64Binary(r io.Reader) (*roaring64.Bitmap, error) {
	data, err := readByteString(r)
	if err != nil {
		return nil, err
	}
	b := roaring64.New()
	if err := b.UnmarshalBinary(data); err != nil {
		return nil, fmt.Errorf("unmarshal bitmap: %w", err)
	}
	return b, nil
}

func writeSeqBinary(w io.Writer, seq []Field) error {
	if err := writeUvarint(w, uint64(len(seq))); err != nil {
		return err
	}
	elem := TypeNull
	if len(seq) > 0 {
		elem = seq[0].which
	}
	if _, err := w.Write([]byte{byte(elem)}); err != nil {
		return err
	}
	for i := range seq {
		if seq[i].which != elem {
			return fmt.Errorf("composite elements must share one type: has %s and %s", elem, seq[i].which)
		}
		if err := writeElemBinary(w, &seq[i]); err != nil {
			return err
		}
	}
	return nil
}

func readSeqBinary(r io.Reader) ([]Field, error) {
	count, err := readUvarint(r)
	if err != nil {
		return nil, err
	}
	tb := make([]byte, 1)
	if _, err := io.ReadFull(r, tb); err != nil {
		return nil, err
	}
	elem := Type(tb[0])
	if !elem.Registered() {
		return nil, fmt.Errorf("bad element type of field: %d", tb[0])
	}
	seq := make([]Field, 0, count)
	for i := uint64(0); i < count; i++ {
		f, err := readElemBinary(r, elem)
		if err != nil {
			return nil, err
		}
		seq = append(seq, f)
	}
	return seq, nil
}

func writeElemBinary(w io.Writer, f *Field) error {
	switch f.which {
	case TypeNull, TypeNegativeInfinity, TypePositiveInfinity:
		return nil
	case TypeUInt64:
		return writeUvarint(w, f.num)
	case TypeInt64:
		return writeVarint(w, int64(f.num))
	case TypeFloat64:
		return writeUint64BE(w, f.float64Bits())
	case TypeUInt128:
		if err := writeUint64BE(w, f.u128.Hi); err != nil {
			return err
		}
		return writeUint64BE(w, f.u128.Lo)
	case TypeInt128:
		if err := writeUint64BE(w, uint64(f.i128.Hi)); err != nil {
			return err
		}
		return writeUint64BE(w, f.i128.Lo)
	case TypeUInt256:
		for _, limb := range []uint64{f.u256.Hi.Hi, f.u256.Hi.Lo, f.u256.Lo.Hi, f.u256.Lo.Lo} {
			if err := writeUint64BE(w, limb); err != nil {
				return err
			}
		}
		return nil
	case TypeInt256:
		for _, limb := range []uint64{uint64(f.i256.Hi.Hi), f.i256.Hi.Lo, f.i256.Lo.Hi, f.i256.Lo.Lo} {
			if err := writeUint64BE(w, limb); err != nil {
				return err
			}
		}
		return nil
	case TypeUUID:
		_, err := w.Write(f.id[:])
		return err
	case TypeString, TypeSketchBinary:
		return writeByteString(w, f.str)
	case TypeArray, TypeTuple, TypeMap, TypeByteMap:
		return writeSeqBinary(w, f.seq)
	case TypeDecimal32, TypeDecimal64:
		if err := writeVarint(w, int64(f.num)); err != nil {
			return err
		}
		return writeUvarint(w, uint64(f.scale))
	case TypeDecimal128:
		if err := writeUint64BE(w, uint64(f.i128.Hi)); err != nil {
			return err
		}
		if err := writeUint64BE(w, f.i128.Lo); err != nil {
			return err
		}
		return writeUvarint(w, uint64(f.scale))
	case TypeDecimal256:
		for _, limb := range []uint64{uint64(f.i256.Hi.Hi), f.i256.Hi.Lo, f.i256.Lo.Hi, f.i256.Lo.Lo} {
			if err := writeUint64BE(w, limb); err != nil {
				return err
			}
		}
		return writeUvarint(w, uint64(f.scale))
	case TypeAggregateState:
		if err := writeByteString(w, []byte(f.agg.Name)); err != nil {
			return err
		}
		return writeByteString(w, f.agg.Data)
	case TypeBitmap64:
		return WriteBitmap64Binary(f.bitmap, w)
	}
	panic(fmt.Sprintf("bad type of field: %d", uint8(f.which)))
}

func readElemBinary(r io.Reader, t Type) (Field, error) {
	switch t {
	case TypeNull:
		return Field{}, nil
	case TypeNegativeInfinity:
		return NewNegativeInfinity(), nil
	case TypePositiveInfinity:
		return NewPositiveInfinity(), nil
	case TypeUInt64:
		v, err := readUvarint(r)
		if err != nil {
			return Field{}, err
		}
		return NewUInt64(v), nil
	case TypeInt64:
		v, err := readVarint(r)
		if err != nil {
			return Field{}, err
		}
		return NewInt64(v), nil
	case TypeFloat64:
		bits, err := readUint64BE(r)
		if err != nil {
			return Field{}, err
		}
		return Field{which: TypeFloat64, f64: math.Float64frombits(bits)}, nil
	case TypeUInt128:
		hi, err := readUint64BE(r)
		if err != nil {
			return Field{}, err
		}
		lo, err := readUint64BE(r)
		if err != nil {
			return Field{}, err
		}
		return NewUInt128(UInt128{Hi: hi, Lo: lo}), nil
	case TypeInt128:
		hi, err := readUint64BE(r)
		if err != nil {
			return Field{}, err
		}
		lo, err := readUint64BE(r)
		if err != nil {
			return Field{}, err
		}
		return NewInt128(Int128{Hi: int64(hi), Lo: lo}), nil
	case TypeUInt256:
		limbs, err := readLimbs(r, 4)
		if err != nil {
			return Field{}, err
		}
		return NewUInt256(UInt256{
			Hi: UInt128{Hi: limbs[0], Lo: limbs[1]},
			Lo: UInt128{Hi: limbs[2], Lo: limbs[3]},
		}), nil
	case TypeInt256:
		limbs, err := readLimbs(r, 4)
		if err != nil {
			return Field{}, err
		}
		return NewInt256(Int256{
			Hi: Int128{Hi: int64(limbs[0]), Lo: limbs[1]},
			Lo: UInt128{Hi: limbs[2], Lo: limbs[3]},
		}), nil
	case TypeUUID:
		var id uuid.UUID
		if _, err := io.ReadFull(r, id[:]); err != nil {
			return Field{}, err
		}
		return NewUUID(id), nil
	case TypeString, TypeSketchBinary:
		b, err := readByteString(r)
		if err != nil {
			return Field{}, err
		}
		return Field{which: t, str: b}, nil
	case TypeArray, TypeTuple, TypeMap, TypeByteMap:
		seq, err := readSeqBinary(r)
		if err != nil {
			return Field{}, err
		}
		return Field{which: t, seq: seq}, nil
	case TypeDecimal32, TypeDecimal64:
		mant, err := readVarint(r)
		if err != nil {
			return Field{}, err
		}
		scale, err := readUvarint(r)
		if err != nil {
			return Field{}, err
		}
		return Field{which: t, num: uint64(mant), scale: uint32(scale)}, nil
	case TypeDecimal128:
		hi, err := readUint64BE(r)
		if err != nil {
			return Field{}, err
		}
		lo, err := readUint64BE(r)
		if err != nil {
			return Field{}, err
		}
		scale, err := readUvarint(r)
		if err != nil {
			return Field{}, err
		}
		return Field{which: t, i128: Int128{Hi: int64(hi), Lo: lo}, scale: uint32(scale)}, nil
	case TypeDecimal256:
		limbs, err := readLimbs(r, 4)
		if err != nil {
			return Field{}, err
		}
		scale, err := readUvarint(r)
		if err != nil {
			return Field{}, err
		}
		return Field{
			which: t,
			i256: Int256{
				Hi: Int128{Hi: int64(limbs[0]), Lo: limbs[1]},
				Lo: UInt128{Hi: limbs[2], Lo: limbs[3]},
			},
			scale: uint32(scale),
		}, nil
	case TypeAggregateState:
		name, err := readByteString(r)
		if err != nil {
			return Field{}, err
		}
		data, err := readByteString(r)
		if err != nil {
			return Field{}, err
		}
		return NewAggregateState(AggregateState{Name: string(name), Data: data}), nil
	case TypeBitmap64:
		b, err := ReadBitmap64Binary(r)
		if err != nil {
			return Field{}, err
		}
		return NewBitmap64(b), nil
	}
	return Field{}, fmt.Errorf("bad type of field: %d", uint8(t))
}

func readLimbs(r io.Reader, n int) ([]uint64, error) {
	limbs := make([]uint64, n)
	for i := range limbs {
		v, err := readUint64BE(r)
		if err != nil {
			return nil, err
		}
		limbs[i] = v
	}
	return limbs, nil
}

// WriteFieldBinary writes f's tag byte followed by its payload.
func WriteFieldBinary(f *Field, w io.Writer) error {
	if _, err := w.Write([]byte{byte(f.which)}); err != nil {
		return err
	}
	return writeElemBinary(w, f)
}

// ReadFieldBinary is the inverse of WriteFieldBinary. An unregistered
// tag byte is treated as corrupted input and returns an error.
func ReadFieldBinary(r io.Reader) (Field, error) {
	tb := make([]byte, 1)
	if _, err := io.ReadFull(r, tb); err != nil {
		return Field{}, err
	}
	t := Type(tb[0])
	if !t.Registered() {
		return Field{}, fmt.Errorf("bad type of field: %d", tb[0])
	}
	return readElemBinary(r, t)
}
