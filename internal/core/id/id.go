// Package id generates the identifiers used across the property model.
// Every reservation, stay and ledger row gets a UUIDv7, whose embedded
// timestamp keeps rows naturally ordered by creation.
package id

import (
	"github.com/google/uuid"
)

// ID aliases uuid.UUID so call sites stay free of the library import.
type ID = uuid.UUID

// New returns a UUIDv7. Time-ordered IDs give the append-only charge and
// payment ledgers a stable listing order and good B-tree locality without
// a separate sequence.
func New() ID {
	v7, err := uuid.NewV7()
	if err != nil {
		// NewV7 only fails if the entropy source does; fall back to V4
		return uuid.New()
	}
	return v7
}

// Parse validates and converts an identifier received over the API.
func Parse(s string) (ID, error) {
	return uuid.Parse(s)
}

// MustParse panics on a malformed identifier. Fixtures and tests only.
func MustParse(s string) ID {
	return uuid.MustParse(s)
}

// Nil returns the zero ID.
func Nil() ID {
	return uuid.Nil
}

// IsNil reports whether id is the zero ID.
func IsNil(id ID) bool {
	return id == uuid.Nil
}
