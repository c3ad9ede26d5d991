package repository

import "errors"

// Sentinel errors the services branch on. Everything else coming out of a
// repository is an opaque storage failure.
var (
	// ErrNotFound means the requested record does not exist
	ErrNotFound = errors.New("repository: record not found")
	// ErrDuplicate means the write would violate a uniqueness rule
	ErrDuplicate = errors.New("repository: duplicate record")
	// ErrLastAdmin means the delete would leave the system without an admin
	ErrLastAdmin = errors.New("repository: delete would remove the last admin")
)
