package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestSentinelErrors(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		expectedMsg string
	}{
		{
			name:        "ErrInvalidCredentials",
			err:         ErrInvalidCredentials,
			expectedMsg: "invalid email or password",
		},
		{
			name:        "ErrAccountLocked",
			err:         ErrAccountLocked,
			expectedMsg: "account is locked",
		},
		{
			name:        "ErrAccountInactive",
			err:         ErrAccountInactive,
			expectedMsg: "account is not verified",
		},
		{
			name:        "ErrTokenNotFound",
			err:         ErrTokenNotFound,
			expectedMsg: "token not found",
		},
		{
			name:        "ErrTokenExpired",
			err:         ErrTokenExpired,
			expectedMsg: "token has expired",
		},
		{
			name:        "ErrSessionNotFound",
			err:         ErrSessionNotFound,
			expectedMsg: "session not found",
		},
		{
			name:        "ErrMailFailed",
			err:         ErrMailFailed,
			expectedMsg: "email failed to send, try again",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err == nil {
				t.Fatal("error should not be nil")
			}
			if tt.err.Error() != tt.expectedMsg {
				t.Errorf("expected message %q, got %q", tt.expectedMsg, tt.err.Error())
			}
		})
	}
}

func TestSentinelErrors_WrappedComparison(t *testing.T) {
	wrapped := fmt.Errorf("login failed: %w", ErrAccountLocked)
	if !errors.Is(wrapped, ErrAccountLocked) {
		t.Error("wrapped ErrAccountLocked should match with errors.Is")
	}
	if errors.Is(wrapped, ErrInvalidCredentials) {
		t.Error("wrapped ErrAccountLocked should not match ErrInvalidCredentials")
	}
}

func TestWeakPasswordError(t *testing.T) {
	err := &WeakPasswordError{Reason: WeakPasswordLength}

	if err.Error() != "weak password: password must be at least 8 characters long" {
		t.Errorf("unexpected message: %q", err.Error())
	}

	if !IsWeakPassword(err) {
		t.Error("IsWeakPassword should recognize a WeakPasswordError")
	}
	if !IsWeakPassword(fmt.Errorf("rejected: %w", err)) {
		t.Error("IsWeakPassword should see through wrapping")
	}
	if IsWeakPassword(ErrInvalidCredentials) {
		t.Error("IsWeakPassword should reject unrelated errors")
	}
}
