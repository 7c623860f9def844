package field

import (
	"bytes"
	"fmt"
)

// AggregateState is the opaque serialized intermediate state of an
// aggregate function, tagged with the function name (including its
// arguments). The payload is only meaningful to the function that
// produced it, so this kind never participates in relational
// ordering.
type AggregateState struct {
	Name string
	Data []byte
}

// Equal compares two aggregate states. States with different names
// are incompatible instances; comparing them is invalid input and
// yields ErrTypeMismatch rather than "not equal".
func (a AggregateState) Equal(b AggregateState) (bool, error) {
	if a.Name != b.Name {
		return false, fmt.Errorf("%w: comparing aggregate states %q and %q", ErrTypeMismatch, a.Name, b.Name)
	}
	return bytes.Equal(a.Data, b.Data), nil
}

// Less always fails: aggregate states carry no ordering.
func (a AggregateState) Less(AggregateState) (bool, error) {
	return false, fmt.Errorf("%w: ordering aggregate states", ErrNotImplemented)
}

// LessOrEqual always fails, for the same reason as Less.
func (a AggregateState) LessOrEqual(AggregateState) (bool, error) {
	return false, fmt.Errorf("%w: ordering aggregate states", ErrNotImplemented)
}

func (a AggregateState) clone() AggregateState {
	out := AggregateState{Name: a.Name}
	if a.Data != nil {
		out.Data = append([]byte(nil), a.Data...)
	}
	return out
}
