package domain

import "errors"

// Task validation errors
var (
	ErrInvalidTitle    = errors.New("title must be between 1 and 200 characters")
	ErrInvalidPriority = errors.New("priority must be low, medium, or high")
	ErrInvalidDueDate  = errors.New("due date must be in YYYY-MM-DD format")
)

// ErrNotFound covers both a record that does not exist and a record owned
// by a different user; the two are indistinguishable on purpose.
var ErrNotFound = errors.New("record not found")

// ErrDuplicateIdentity is returned when a username or email collides with
// an existing user.
var ErrDuplicateIdentity = errors.New("username or email already exists")
