package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when no account matches the given email.
	ErrNotFound = errors.New("user not found")

	// ErrEmailTaken is returned when an insert hits the unique index on
	// users.email. It is always wrapped in a PersistenceError.
	ErrEmailTaken = errors.New("email already in use")
)

// HashingError reports a password that could not be hashed, e.g. one that
// exceeds the bcrypt input limit.
type HashingError struct {
	Err error
}

func (e *HashingError) Error() string {
	return fmt.Sprintf("hashing password: %v", e.Err)
}

func (e *HashingError) Unwrap() error {
	return e.Err
}

// PersistenceError reports a failure from the underlying store, carrying
// the operation name and the cause.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}
