package field

import (
	"encoding/base64"
	"fmt"
	"math/big"
	"strconv"
	"strings"

	"github.com/RoaringBitmap/roaring/v2/roaring64"
	"github.com/google/uuid"
)

// The dump form is the diagnostic text representation of a whole
// field: the kind name, an underscore, then the payload. Examples:
//
//	Null
//	-Inf
//	UInt64_42
//	Float64_1.5
//	String_"hello\nworld"
//	Array_[Int64_1, Int64_2]
//	Decimal32_(100, 2)
//	AggregateState_("sum(x)", "\x01\x02")
//	Bitmap64_"OjAAAAEAAAAAAAEAEAAAAAEAAgA="
//
// The form is lossless for every tag and RestoreFromDump is its exact
// inverse. One deliberate divergence from the display names: ByteMap
// dumps with its own "ByteMap" keyword even though its display name
// is "Map", otherwise the two ordinals could not round-trip.

// Dump renders f in the diagnostic text form.
func (f Field) Dump() string {
	var b strings.Builder
	if err := f.Dispatch(&dumpWriter{b: &b}); err != nil {
		panic(fmt.Sprintf("dump field: %v", err))
	}
	return b.String()
}

// String makes the dump form the default rendering when a field is
// embedded in log or error output.
func (f Field) String() string { return f.Dump() }

type dumpWriter struct {
	b *strings.Builder
}

func (d *dumpWriter) VisitNull() error {
	d.b.WriteString("Null")
	return nil
}

func (d *dumpWriter) VisitNegativeInfinity() error {
	d.b.WriteString("-Inf")
	return nil
}

func (d *dumpWriter) VisitPositiveInfinity() error {
	d.b.WriteString("+Inf")
	return nil
}

func (d *dumpWriter) VisitUInt64(v uint64) error {
	d.b.WriteString("UInt64_")
	d.b.WriteString(strconv.FormatUint(v, 10))
	return nil
}

func (d *dumpWriter) VisitInt64(v int64) error {
	d.b.WriteString("Int64_")
	d.b.WriteString(strconv.FormatInt(v, 10))
	return nil
}

func (d *dumpWriter) VisitFloat64(v float64) error {
	d.b.WriteString("Float64_")
	d.b.WriteString(strconv.FormatFloat(v, 'g', -1, 64))
	return nil
}

func (d *dumpWriter) VisitUInt128(v UInt128) error {
	d.b.WriteString("UInt128_")
	d.b.WriteString(v.String())
	return nil
}

func (d *dumpWriter) VisitInt128(v Int128) error {
	d.b.WriteString("Int128_")
	d.b.WriteString(v.String())
	return nil
}

func (d *dumpWriter) VisitUInt256(v UInt256) error {
	d.b.WriteString("UInt256_")
	d.b.WriteString(v.String())
	return nil
}

func (d *dumpWriter) VisitInt256(v Int256) error {
	d.b.WriteString("Int256_")
	d.b.WriteString(v.String())
	return nil
}

func (d *dumpWriter) VisitUUID(v uuid.UUID) error {
	d.b.WriteString("UUID_")
	d.b.WriteString(v.String())
	return nil
}

func (d *dumpWriter) VisitString(v []byte) error {
	d.b.WriteString("String_")
	d.b.WriteString(strconv.Quote(string(v)))
	return nil
}

func (d *dumpWriter) VisitSketchBinary(v []byte) error {
	d.b.WriteString("SketchBinary_")
	d.b.WriteString(strconv.Quote(string(v)))
	return nil
}

func (d *dumpWriter) VisitArray(v Array) error { return d.writeSeq("Array", v) }
func (d *dumpWriter) VisitTuple(v Tuple) error { return d.writeSeq("Tuple", v) }
func (d *dumpWriter) VisitMap(v Map) error     { return d.writeSeq("Map", v) }

func (d *dumpWriter) VisitByteMap(v ByteMap) error { return d.writeSeq("ByteMap", v) }

func (d *dumpWriter) writeSeq(name string, seq []Field) error {
	d.b.WriteString(name)
	d.b.WriteString("_[")
	for i := range seq {
		if i > 0 {
			d.b.WriteString(", ")
		}
		if err := seq[i].Dispatch(d); err != nil {
			return err
		}
	}
	d.b.WriteString("]")
	return nil
}

func (d *dumpWriter) VisitDecimal32(v Decimal32) error {
	d.writeDecimal("Decimal32", strconv.FormatInt(int64(v.Value()), 10), v.Scale())
	return nil
}

func (d *dumpWriter) VisitDecimal64(v Decimal64) error {
	d.writeDecimal("Decimal64", strconv.FormatInt(v.Value(), 10), v.Scale())
	return nil
}

func (d *dumpWriter) VisitDecimal128(v Decimal128) error {
	d.writeDecimal("Decimal128", v.Value().String(), v.Scale())
	return nil
}

func (d *dumpWriter) VisitDecimal256(v Decimal256) error {
	d.writeDecimal("Decimal256", v.Value().String(), v.Scale())
	return nil
}

func (d *dumpWriter) writeDecimal(name, mantissa string, scale uint32) {
	d.b.WriteString(name)
	d.b.WriteString("_(")
	d.b.WriteString(mantissa)
	d.b.WriteString(", ")
	d.b.WriteString(strconv.FormatUint(uint64(scale), 10))
	d.b.WriteString(")")
}

func (d *dumpWriter) VisitAggregateState(v AggregateState) error {
	d.b.WriteString("AggregateState_(")
	d.b.WriteString(strconv.Quote(v.Name))
	d.b.WriteString(", ")
	d.b.WriteString(strconv.Quote(string(v.Data)))
	d.b.WriteString(")")
	return nil
}

func (d *dumpWriter) VisitBitmap64(v *roaring64.Bitmap) error {
	data, err := v.MarshalBinary()
	if err != nil {
		return fmt.Errorf("marshal bitmap: %w", err)
	}
	d.b.WriteString("Bitmap64_")
	d.b.WriteString(strconv.Quote(base64.StdEncoding.EncodeToString(data)))
	return nil
}

// RestoreFromDump parses the dump form back into a Field. It is the
// exact inverse of Dump for every tag, including the sentinels.
func RestoreFromDump(s string) (Field, error) {
	p := &dumpParser{s: s}
	f, err := p.parseField()
	if err != nil {
		return Field{}, err
	}
	p.skipSpaces()
	if p.pos != len(p.s) {
		return Field{}, p.errorf("trailing data")
	}
	return f, nil
}

type dumpParser struct {
	s   string
	pos int
}

func (p *dumpParser) errorf(format string, args ...any) error {
	msg := fmt.Sprintf(format, args...)
	return fmt.Errorf("invalid field dump at offset %d: %s", p.pos, msg)
}

func (p *dumpParser) skipSpaces() {
	for p.pos < len(p.s) && (p.s[p.pos] == ' ' || p.s[p.pos] == '\t') {
		p.pos++
	}
}

func (p *dumpParser) expect(c byte) error {
	if p.pos >= len(p.s) || p.s[p.pos] != c {
		return p.errorf("expected %q", string(c))
	}
	p.pos++
	return nil
}

func isWordChar(c byte) bool {
	return c >= 'a' && c <= 'z' ||
		c >= 'A' && c <= 'Z' ||
		c >= '0' && c <= '9' ||
		c == '+' || c == '-'
}

func (p *dumpParser) word() string {
	start := p.pos
	for p.pos < len(p.s) && isWordChar(p.s[p.pos]) {
		p.pos++
	}
	return p.s[start:p.pos]
}

func isTokenDelim(c byte) bool {
	return c == ',' || c == ']' || c == ')' || c == '}' || c == ' ' || c == '\t'
}

func (p *dumpParser) token() string {
	start := p.pos
	for p.pos < len(p.s) && !isTokenDelim(p.s[p.pos]) {
		p.pos++
	}
	return p.s[start:p.pos]
}

func (p *dumpParser) quoted() (string, error) {
	rest := p.s[p.pos:]
	prefix, err := strconv.QuotedPrefix(rest)
	if err != nil {
		return "", p.errorf("expected quoted string")
	}
	val, err := strconv.Unquote(prefix)
	if err != nil {
		return "", p.errorf("bad quoted string: %v", err)
	}
	p.pos += len(prefix)
	return val, nil
}

func (p *dumpParser) parseField() (Field, error) {
	p.skipSpaces()
	kind := p.word()
	switch kind {
	case "Null":
		return Field{}, nil
	case "-Inf":
		return NewNegativeInfinity(), nil
	case "+Inf":
		return NewPositiveInfinity(), nil
	case "":
		return Field{}, p.errorf("expected field kind")
	}

	// Every remaining kind dumps as name, underscore, payload. The
	// word scan stops at the underscore.
	if err := p.expect('_'); err != nil {
		return Field{}, err
	}

	switch kind {
	case "UInt64":
		v, err := strconv.ParseUint(p.token(), 10, 64)
		if err != nil {
			return Field{}, p.errorf("bad UInt64: %v", err)
		}
		return NewUInt64(v), nil
	case "Int64":
		v, err := strconv.ParseInt(p.token(), 10, 64)
		if err != nil {
			return Field{}, p.errorf("bad Int64: %v", err)
		}
		return NewInt64(v), nil
	case "Float64":
		v, err := strconv.ParseFloat(p.token(), 64)
		if err != nil {
			return Field{}, p.errorf("bad Float64: %v", err)
		}
		return NewFloat64(v), nil
	case "UInt128":
		b, err := p.bigToken()
		if err != nil {
			return Field{}, err
		}
		return NewUInt128(UInt128FromBig(b)), nil
	case "Int128":
		b, err := p.bigToken()
		if err != nil {
			return Field{}, err
		}
		return NewInt128(Int128FromBig(b)), nil
	case "UInt256":
		b, err := p.bigToken()
		if err != nil {
			return Field{}, err
		}
		return NewUInt256(UInt256FromBig(b)), nil
	case "Int256":
		b, err := p.bigToken()
		if err != nil {
			return Field{}, err
		}
		return NewInt256(Int256FromBig(b)), nil
	case "UUID":
		id, err := uuid.Parse(p.token())
		if err != nil {
			return Field{}, p.errorf("bad UUID: %v", err)
		}
		return NewUUID(id), nil
	case "String":
		s, err := p.quoted()
		if err != nil {
			return Field{}, err
		}
		return NewString(s), nil
	case "SketchBinary":
		s, err := p.quoted()
		if err != nil {
			return Field{}, err
		}
		return NewSketchBinary([]byte(s)), nil
	case "Array":
		seq, err := p.parseSeq()
		if err != nil {
			return Field{}, err
		}
		return NewArray(seq), nil
	case "Tuple":
		seq, err := p.parseSeq()
		if err != nil {
			return Field{}, err
		}
		return NewTuple(seq), nil
	case "Map":
		seq, err := p.parseSeq()
		if err != nil {
			return Field{}, err
		}
		return NewMap(seq), nil
	case "ByteMap":
		seq, err := p.parseSeq()
		if err != nil {
			return Field{}, err
		}
		return NewByteMap(seq), nil
	case "Decimal32":
		mant, scale, err := p.parseDecimal(32)
		if err != nil {
			return Field{}, err
		}
		return NewDecimal32(NewDecimalField(int32(mant.Int64()), scale)), nil
	case "Decimal64":
		mant, scale, err := p.parseDecimal(64)
		if err != nil {
			return Field{}, err
		}
		return NewDecimal64(NewDecimalField(mant.Int64(), scale)), nil
	case "Decimal128":
		mant, scale, err := p.parseDecimal(128)
		if err != nil {
			return Field{}, err
		}
		return NewDecimal128(NewDecimalField(Int128FromBig(mant), scale)), nil
	case "Decimal256":
		mant, scale, err := p.parseDecimal(256)
		if err != nil {
			return Field{}, err
		}
		return NewDecimal256(NewDecimalField(Int256FromBig(mant), scale)), nil
	case "AggregateState":
		if err := p.expect('('); err != nil {
			return Field{}, err
		}
		name, err := p.quoted()
		if err != nil {
			return Field{}, err
		}
		if err := p.expectSep(); err != nil {
			return Field{}, err
		}
		data, err := p.quoted()
		if err != nil {
			return Field{}, err
		}
		if err := p.expect(')'); err != nil {
			return Field{}, err
		}
		return NewAggregateState(AggregateState{Name: name, Data: []byte(data)}), nil
	case "Bitmap64":
		enc, err := p.quoted()
		if err != nil {
			return Field{}, err
		}
		data, err := base64.StdEncoding.DecodeString(enc)
		if err != nil {
			return Field{}, p.errorf("bad bitmap payload: %v", err)
		}
		b := roaring64.New()
		if err := b.UnmarshalBinary(data); err != nil {
			return Field{}, p.errorf("bad bitmap payload: %v", err)
		}
		return NewBitmap64(b), nil
	}
	return Field{}, p.errorf("unknown field kind %q", kind)
}

func (p *dumpParser) bigToken() (*big.Int, error) {
	tok := p.token()
	b, ok := new(big.Int).SetString(tok, 10)
	if !ok {
		return nil, p.errorf("bad integer %q", tok)
	}
	return b, nil
}

func (p *dumpParser) expectSep() error {
	if err := p.expect(','); err != nil {
		return err
	}
	p.skipSpaces()
	return nil
}

func (p *dumpParser) parseSeq() ([]Field, error) {
	if err := p.expect('['); err != nil {
		return nil, err
	}
	var seq []Field
	p.skipSpaces()
	if p.pos < len(p.s) && p.s[p.pos] == ']' {
		p.pos++
		return seq, nil
	}
	for {
		f, err := p.parseField()
		if err != nil {
			return nil, err
		}
		seq = append(seq, f)
		p.skipSpaces()
		if p.pos >= len(p.s) {
			return nil, p.errorf("unterminated sequence")
		}
		switch p.s[p.pos] {
		case ',':
			p.pos++
			p.skipSpaces()
		case ']':
			p.pos++
			return seq, nil
		default:
			return nil, p.errorf("expected %q or %q", ",", "]")
		}
	}
}

func (p *dumpParser) parseDecimal(bits int) (*big.Int, uint32, error) {
	if err := p.expect('('); err != nil {
		return nil, 0, err
	}
	mant, err := p.bigToken()
	if err != nil {
		return nil, 0, err
	}
	if mant.BitLen() > bits {
		return nil, 0, p.errorf("decimal mantissa exceeds %d bits", bits)
	}
	if err := p.expectSep(); err != nil {
		return nil, 0, err
	}
	scale64, err := strconv.ParseUint(p.token(), 10, 32)
	if err != nil {
		return nil, 0, p.errorf("bad decimal scale: %v", err)
	}
	if err := p.expect(')'); err != nil {
		return nil, 0, err
	}
	return mant, uint32(scale64), nil
}
