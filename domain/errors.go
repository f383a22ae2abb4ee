package domain

import "errors"

// Authentication errors. Handlers must report these uniformly: the caller
// never learns whether an email exists, a token expired, or a code was
// already consumed.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthenticated    = errors.New("unauthenticated")
	ErrCodeInvalid        = errors.New("invalid or expired code")
)

// Authorization errors, reported distinctly from authentication failures.
var (
	ErrAccountSuspended = errors.New("account suspended")
	ErrAccountRejected  = errors.New("account was not approved")
)

// State conflicts.
var (
	ErrEmailTaken      = errors.New("email already registered")
	ErrAlreadyReviewed = errors.New("verification request already reviewed")
)

// Not-found errors for records without security-sensitive existence
// semantics.
var (
	ErrUserNotFound         = errors.New("user not found")
	ErrVerificationNotFound = errors.New("verification request not found")
	ErrSessionNotFound      = errors.New("session not found")
)

// Validation errors.
var (
	ErrInvalidAction        = errors.New("invalid challenge action")
	ErrInvalidTwoFactorType = errors.New("invalid two-factor type")
)
