package service

import (
	"fmt"

	"github.com/google/uuid"
)

// NewID returns a time-ordered UUIDv7 for a new record
func NewID() string {
	id, err := uuid.NewV7()
	if err != nil {
		// NewV7 only fails if the system random source does
		return uuid.NewString()
	}
	return id.String()
}

// ValidateID checks that a path id is a UUID. Any version is accepted so
// hand-edited rows stay addressable.
func ValidateID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	return nil
}
