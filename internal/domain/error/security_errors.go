// Package error defines domain-specific errors for the trust validation service.
package error

import "errors"

// Security domain errors.
var (
	// ErrRateLimited is returned when an action is denied by the rate limiter.
	ErrRateLimited = errors.New("rate limit exceeded")

	// ErrAuthorityUnavailable is returned when a remote authority cannot be
	// reached; callers must resolve it to the conservative outcome.
	ErrAuthorityUnavailable = errors.New("remote authority unavailable")

	// ErrWeakPassword is returned when a password fails the strength gate.
	ErrWeakPassword = errors.New("password does not meet minimum requirements")

	// ErrSessionInvalid is returned when a session fails remote validation.
	ErrSessionInvalid = errors.New("session is invalid")

	// ErrSessionTampered is returned when the local validation record fails
	// its checksum comparison.
	ErrSessionTampered = errors.New("validation data tampered")

	// ErrRecordNotFound is returned when no local validation record exists
	// for a session.
	ErrRecordNotFound = errors.New("validation record not found")

	// ErrInvalidCredentials is returned when a supplied password does not
	// match the stored hash.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// SecurityErrorCode defines error codes for trust validation errors.
// Format: SEC-XXYYYY where XX is category and YYYY is specific error.
type SecurityErrorCode string

const (
	// Password evaluation errors (01XXXX)
	ErrCodeWeakPassword    SecurityErrorCode = "SEC-010001"
	ErrCodeInvalidPolicy   SecurityErrorCode = "SEC-010002"
	ErrCodeGenerateFailure SecurityErrorCode = "SEC-010003"

	// Rate limit errors (02XXXX)
	ErrCodeRateLimited        SecurityErrorCode = "SEC-020001"
	ErrCodeLimitAuthorityDown SecurityErrorCode = "SEC-020002"
	ErrCodeUnknownAction      SecurityErrorCode = "SEC-020003"
	ErrCodeSuspiciousActivity SecurityErrorCode = "SEC-020004"

	// Session errors (03XXXX)
	ErrCodeSessionInvalid       SecurityErrorCode = "SEC-030001"
	ErrCodeSessionExpired       SecurityErrorCode = "SEC-030002"
	ErrCodeSessionTampered      SecurityErrorCode = "SEC-030003"
	ErrCodeSessionAuthorityDown SecurityErrorCode = "SEC-030004"
	ErrCodeFingerprintMismatch  SecurityErrorCode = "SEC-030005"

	// Request errors (04XXXX)
	ErrCodeMissingFields      SecurityErrorCode = "SEC-040001"
	ErrCodeInvalidInput       SecurityErrorCode = "SEC-040002"
	ErrCodeInvalidCredentials SecurityErrorCode = "SEC-040003"
)

// SecurityError represents a trust validation error with code and message.
type SecurityError struct {
	Code    SecurityErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *SecurityError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *SecurityError) Unwrap() error {
	return e.Err
}

// NewSecurityError creates a new SecurityError with the given code and message.
func NewSecurityError(code SecurityErrorCode, message string, err error) *SecurityError {
	return &SecurityError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
