package domain

import (
	"errors"
	"fmt"
)

// Authentication errors
var (
	// ErrInvalidCredentials covers both an unknown identity and a wrong
	// password, so callers cannot enumerate accounts.
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAccountLocked      = errors.New("account is locked")
	ErrAccountInactive    = errors.New("account is not verified")
	ErrAccountExists      = errors.New("account already exists")
	ErrAccountNotFound    = errors.New("account not found")
)

// Token errors
var (
	ErrTokenNotFound = errors.New("token not found")
	ErrTokenExpired  = errors.New("token has expired")
)

// Session errors
var (
	ErrSessionNotFound = errors.New("session not found")
	ErrSessionExpired  = errors.New("session has expired")
)

// Infrastructure errors
var (
	// ErrStoreUnavailable wraps any underlying persistence failure; it is
	// surfaced to end users as a generic "try again" message.
	ErrStoreUnavailable = errors.New("store unavailable")
	// ErrMailFailed is returned when the mail collaborator reports a
	// delivery failure; it must reach the user, never be swallowed.
	ErrMailFailed = errors.New("email failed to send, try again")
	// ErrStreamFatal marks an unrecoverable error inside a push stream.
	// It is sent as a terminal stream event before the stream closes.
	ErrStreamFatal = errors.New("stream terminated")
)

// Password strength rejection reasons, first failing check wins.
const (
	WeakPasswordEmpty   = "password must not be empty"
	WeakPasswordLength  = "password must be at least 8 characters long"
	WeakPasswordCase    = "password must contain both uppercase and lowercase letters"
	WeakPasswordSymbols = "password must contain at least one digit and one special character"
)

// WeakPasswordError reports which strength check a candidate password
// failed. The Reason is one of the WeakPassword* messages above.
type WeakPasswordError struct {
	Reason string
}

func (e *WeakPasswordError) Error() string {
	return fmt.Sprintf("weak password: %s", e.Reason)
}

// IsWeakPassword reports whether err is a password strength rejection.
func IsWeakPassword(err error) bool {
	var wpe *WeakPasswordError
	return errors.As(err, &wpe)
}
