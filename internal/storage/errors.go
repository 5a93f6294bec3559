package storage

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound    = errors.New("not found")
	ErrUnavailable = errors.New("storage unavailable")
)

// NotFoundError names the collection and id a lookup missed. It matches
// ErrNotFound through errors.Is so callers can treat it as "nothing to do".
type NotFoundError struct {
	Collection string
	ID         string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s: not found", e.Collection, e.ID)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// NotFoundf builds the standard not-found failure for a collection and id.
func NotFoundf(collection, id string) error {
	return &NotFoundError{Collection: collection, ID: id}
}

// UnavailableError means the backing store failed to open or initialize.
// Fatal for the session: the selector performs no retry and no fallback.
type UnavailableError struct {
	Reason string
	Err    error
}

func (e *UnavailableError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("storage unavailable: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("storage unavailable: %s", e.Reason)
}

func (e *UnavailableError) Unwrap() error { return e.Err }

func (e *UnavailableError) Is(target error) bool { return target == ErrUnavailable }

// Unavailable wraps err as a fatal backend failure.
func Unavailable(reason string, err error) error {
	return &UnavailableError{Reason: reason, Err: err}
}
