package service

import "errors"

// Errors the presentation layer branches on. The UI of the original system
// collapsed all of these into a single boolean failure; they are kept
// distinct here so callers that want to explain a failure can.
var (
	ErrNotAuthorized       = errors.New("caller is not an admin")
	ErrInvalidCredentials  = errors.New("invalid username or password")
	ErrDuplicateUsername   = errors.New("username already exists")
	ErrInvalidDeleteTarget = errors.New("user cannot be deleted")
	ErrNoActiveSession     = errors.New("no user is logged in")
	ErrUserNotFound        = errors.New("user not found")
	ErrPersistence         = errors.New("persistence failure")
)
