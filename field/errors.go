package field

import "errors"

// Error kinds surfaced by the comparison protocol, checked accessors
// and serialization hooks. All are local precondition failures raised
// at the point of misuse; none are retried or recovered here.
var (
	// ErrBadGet is returned by checked accessors when the requested
	// storage kind does not match the active tag.
	ErrBadGet = errors.New("bad get")

	// ErrNotImplemented is returned when an operation has no meaning
	// for the active kind: relational ordering on aggregate states or
	// bitmaps, and textual reads of binary-only kinds.
	ErrNotImplemented = errors.New("not implemented")

	// ErrTypeMismatch is returned when two aggregate states with
	// different names are compared for equality. Such operands are
	// incompatible instances, not merely unequal.
	ErrTypeMismatch = errors.New("type mismatch")

	// ErrInconsistentScale is returned by decimal add/sub when the
	// operands carry different scales. The operation never rescales
	// implicitly.
	ErrInconsistentScale = errors.New("inconsistent decimal scale")
)
