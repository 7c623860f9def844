package storage

import (
	"errors"

	"github.com/wbrown/janus-columnar/field"
)

// ErrNotFound is returned by Get for a name with no stored field.
var ErrNotFound = errors.New("field not found")

// Store persists named fields in their binary form.
type Store interface {
	// Put writes the field under name, replacing any previous value.
	Put(name string, f *field.Field) error

	// Get reads the field stored under name.
	Get(name string) (field.Field, error)

	// Delete removes the field stored under name. Deleting a missing
	// name is not an error.
	Delete(name string) error

	// Scan returns an iterator over fields whose names start with
	// prefix, in name order.
	Scan(prefix string) (Iterator, error)

	// Close releases the store.
	Close() error
}

// Iterator provides sequential access to stored fields.
type Iterator interface {
	Next() bool
	Name() string
	Field() (field.Field, error)
	Close() error
}
