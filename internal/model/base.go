package model

import (
	"github.com/google/uuid"
)

// NewID returns a time-sortable UUIDv7 string. Every aggregate id is
// generated in-process, never by the database.
func NewID() string {
	id, err := uuid.NewV7()
	if err != nil {
		// NewV7 only fails when the entropy source does; fall back to v4.
		return uuid.NewString()
	}
	return id.String()
}
