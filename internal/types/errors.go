package types

import (
	"errors"
	"fmt"
)

// Numeric error codes surfaced at the tool/HTTP boundary. The JSON-RPC
// reserved codes are reused where they fit; the -3200x block carries the
// domain-specific classes.
const (
	CodeValidation    = -32602
	CodeInternal      = -32603
	CodeAuth          = -32001
	CodeUpstream      = -32002
	CodeConfiguration = -32003
)

// ValidationError reports a parameter problem detected before any network
// call is attempted.
type ValidationError struct {
	Message string
}

func NewValidationError(msg string) *ValidationError {
	return &ValidationError{Message: msg}
}

func (e *ValidationError) Error() string { return e.Message }

func (e *ValidationError) Code() int { return CodeValidation }

// ConfigurationError is fatal at startup: the process must not begin
// serving without credentials.
type ConfigurationError struct {
	Message string
}

func (e *ConfigurationError) Error() string { return e.Message }

func (e *ConfigurationError) Code() int { return CodeConfiguration }

// AuthErrorKind classifies a failure of the digest handshake or the
// authenticated request that follows it.
type AuthErrorKind string

const (
	ChallengeMissing   AuthErrorKind = "challenge_missing"
	ChallengeMalformed AuthErrorKind = "challenge_malformed"
	RequestFailed      AuthErrorKind = "request_failed"
	ResponseNotJSON    AuthErrorKind = "response_not_json"
)

// AuthError is returned by the digest client. Status is set only for
// RequestFailed.
type AuthError struct {
	Kind    AuthErrorKind
	Status  int
	Message string
}

func (e *AuthError) Error() string {
	if e.Kind == RequestFailed {
		return fmt.Sprintf("%s (status %d): %s", e.Kind, e.Status, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *AuthError) Code() int {
	if e.Kind == RequestFailed {
		return CodeUpstream
	}
	return CodeAuth
}

// Coded is satisfied by every error in the taxonomy.
type Coded interface {
	error
	Code() int
}

// ErrorCode extracts the boundary code for err, defaulting to the internal
// code for anything outside the taxonomy.
func ErrorCode(err error) int {
	var coded Coded
	if errors.As(err, &coded) {
		return coded.Code()
	}
	return CodeInternal
}
