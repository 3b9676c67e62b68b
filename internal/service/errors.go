package service

import (
	"errors"
	"fmt"

	"github.com/JonnyWalker81/lifedash/internal/repository"
)

var (
	// ErrNotFound indicates the record does not exist
	ErrNotFound = repository.ErrNotFound
	// ErrInvalidID indicates a malformed record id
	ErrInvalidID = errors.New("invalid id")
	// ErrInvalidDate indicates a date that is not YYYY-MM-DD
	ErrInvalidDate = errors.New("invalid date")
	// ErrInvalidRoute indicates an unknown inbox route target
	ErrInvalidRoute = errors.New("invalid route")
	// ErrAlreadyRouted indicates the inbox item is no longer pending
	ErrAlreadyRouted = errors.New("inbox item already handled")
)

// DateError reports a field that is not a YYYY-MM-DD date. It matches
// ErrInvalidDate with errors.Is.
type DateError struct {
	Field string
	Value string
}

func (e *DateError) Error() string {
	return fmt.Sprintf("%s %q is not a YYYY-MM-DD date", e.Field, e.Value)
}

func (e *DateError) Unwrap() error {
	return ErrInvalidDate
}
