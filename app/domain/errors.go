package domain

import "errors"

// Pairing and session errors
var (
	// ErrNotFound signals an absent record: an expired or abandoned pairing
	// request, or a session that was already cleaned up.
	ErrNotFound = errors.New("record not found")

	// ErrAlreadyConsumed signals a replay or a lost race on a pairing token:
	// the request left the pending state before this caller got to it.
	ErrAlreadyConsumed = errors.New("pairing request already consumed")

	// ErrAlreadyExists signals a key collision on record creation.
	ErrAlreadyExists = errors.New("record already exists")
)

// StoreError wraps a transient I/O failure from the document store.
type StoreError struct {
	Op    string
	Cause error
}

func (e *StoreError) Error() string {
	if e.Cause != nil {
		return "store: " + e.Op + ": " + e.Cause.Error()
	}
	return "store: " + e.Op + " failed"
}

func (e *StoreError) Unwrap() error {
	return e.Cause
}

// NewStoreError creates a new store error for the given operation.
func NewStoreError(op string, cause error) *StoreError {
	return &StoreError{Op: op, Cause: cause}
}

// IsStoreError checks if an error is a StoreError.
func IsStoreError(err error) bool {
	var storeErr *StoreError
	return errors.As(err, &storeErr)
}

// AuthError represents a credential rejection from the identity provider,
// carrying a sub-code for user messaging.
type AuthError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AuthError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *AuthError) Unwrap() error {
	return e.Cause
}

// NewAuthError creates a new authentication error.
func NewAuthError(code, message string, cause error) *AuthError {
	return &AuthError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// AsAuthError converts an error to AuthError if possible.
func AsAuthError(err error) (*AuthError, bool) {
	var authErr *AuthError
	if errors.As(err, &authErr) {
		return authErr, true
	}
	return nil, false
}

// Auth error sub-codes surfaced to the user
const (
	ErrCodeInvalidCredentials = "INVALID_CREDENTIALS"
	ErrCodeAccountDisabled    = "ACCOUNT_DISABLED"
	ErrCodeMalformedEmail     = "MALFORMED_EMAIL"
	ErrCodeRateLimited        = "RATE_LIMITED"
	ErrCodeInternal           = "INTERNAL_ERROR"
)
