package user

import "errors"

var (
	// ErrNotFound signals the user does not exist.
	ErrNotFound = errors.New("user not found")

	// ErrInvalidCredentials keeps username and password failures
	// indistinguishable to callers.
	ErrInvalidCredentials = errors.New("invalid username or password")

	// ErrAlreadyRegistered signals a username or email collision.
	ErrAlreadyRegistered = errors.New("username or email already registered")
)
