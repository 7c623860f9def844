package field

import (
	"fmt"
	"io"

	"github.com/RoaringBitmap/roaring/v2/roaring64"
)

// Textual forms for the composite kinds, used when embedding values
// in human-readable output. The composite kinds are binary-only on
// the read side; textual and quoted reads are rejected, as is a
// textual write of an aggregate state, which has no meaningful
// human-readable form.

// WriteText renders the array as "[elem, elem, ...]" using each
// element's dump form.
func (a Array) WriteText(w io.Writer) error {
	return writeSeqText(w, a, "[", "]")
}

// WriteText renders the tuple as "(elem, elem, ...)".
func (t Tuple) WriteText(w io.Writer) error {
	return writeSeqText(w, t, "(", ")")
}

// WriteText renders the map as "{elem, elem, ...}".
func (m Map) WriteText(w io.Writer) error {
	return writeSeqText(w, m, "{", "}")
}

// WriteText renders the byte-map in the same braced form as Map.
func (m ByteMap) WriteText(w io.Writer) error {
	return writeSeqText(w, m, "{", "}")
}

// WriteText always fails: there is no meaningful human-readable form
// for an aggregate function's serialized state.
func (a AggregateState) WriteText(io.Writer) error {
	return fmt.Errorf("%w: cannot convert aggregate state %q to text", ErrNotImplemented, a.Name)
}

func writeSeqText(w io.Writer, seq []Field, opening, closing string) error {
	if _, err := io.WriteString(w, opening); err != nil {
		return err
	}
	for i := range seq {
		if i > 0 {
			if _, err := io.WriteString(w, ", "); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, seq[i].Dump()); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, closing)
	return err
}

// Textual and quoted reads of composite and bitmap kinds are not
// supported; these kinds round-trip through the binary codec or the
// full-field dump only.

// ReadArrayText always fails; arrays are binary-only on the read
// side.
func ReadArrayText(io.Reader) (Array, error) {
	return nil, fmt.Errorf("%w: cannot read array as text", ErrNotImplemented)
}

// ReadArrayQuoted always fails.
func ReadArrayQuoted(io.Reader) (Array, error) {
	return nil, fmt.Errorf("%w: cannot read array as quoted text", ErrNotImplemented)
}

// ReadTupleText always fails; tuples are binary-only on the read
// side.
func ReadTupleText(io.Reader) (Tuple, error) {
	return nil, fmt.Errorf("%w: cannot read tuple as text", ErrNotImplemented)
}

// ReadTupleQuoted always fails.
func ReadTupleQuoted(io.Reader) (Tuple, error) {
	return nil, fmt.Errorf("%w: cannot read tuple as quoted text", ErrNotImplemented)
}

// ReadMapText always fails; maps are binary-only on the read side.
func ReadMapText(io.Reader) (Map, error) {
	return nil, fmt.Errorf("%w: cannot read map as text", ErrNotImplemented)
}

// ReadMapQuoted always fails.
func ReadMapQuoted(io.Reader) (Map, error) {
	return nil, fmt.Errorf("%w: cannot read map as quoted text", ErrNotImplemented)
}

// ReadByteMapText always fails; byte-maps are binary-only on the read
// side.
func ReadByteMapText(io.Reader) (ByteMap, error) {
	return nil, fmt.Errorf("%w: cannot read map as text", ErrNotImplemented)
}

// ReadByteMapQuoted always fails.
func ReadByteMapQuoted(io.Reader) (ByteMap, error) {
	return nil, fmt.Errorf("%w: cannot read map as quoted text", ErrNotImplemented)
}

// ReadBitmap64Text always fails; bitmaps are binary-only on the read
// side.
func ReadBitmap64Text(io.Reader) (*roaring64.Bitmap, error) {
	return nil, fmt.Errorf("%w: cannot read bitmap as text", ErrNotImplemented)
}

// ReadBitmap64Quoted always fails.
func ReadBitmap64Quoted(io.Reader) (*roaring64.Bitmap, error) {
	return nil, fmt.Errorf("%w: cannot read bitmap as quoted text", ErrNotImplemented)
}
