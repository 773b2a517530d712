package repository

import "errors"

var (
	// ErrNotFound indicates the requested row does not exist.
	ErrNotFound = errors.New("not found")

	// ErrDuplicateAccount indicates the account id is already taken.
	ErrDuplicateAccount = errors.New("account id already exists")

	// ErrConflict indicates a conditional update lost a race and may be
	// retried against fresh state.
	ErrConflict = errors.New("conditional update conflict")
)
