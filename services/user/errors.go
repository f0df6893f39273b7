package user

import "errors"

var (
	// ErrInvalidCredentials is shown to the user as "Invalid username/password.".
	ErrInvalidCredentials = errors.New("Invalid username/password.")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("a user with this email or username already exists")
	ErrWeakPassword       = errors.New("password is too weak")
	ErrMissingIdentity    = errors.New("username and email are required")
)
