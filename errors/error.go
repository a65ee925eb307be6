package errors

import (
	"errors"
	"fmt"
)

// New returns an error that formats as the given text.
var New = errors.New

// Is reports whether any error in err's chain matches target.
var Is = errors.Is

// As finds the first error in err's chain that matches target.
var As = errors.As

// OAuth2 error codes returned by the token endpoint.
var (
	ErrInvalidRequest       = errors.New("invalid_request")
	ErrInvalidClient        = errors.New("invalid_client")
	ErrInvalidGrant         = errors.New("invalid_grant")
	ErrUnsupportedGrantType = errors.New("unsupported_grant_type")
	ErrInvalidScope         = errors.New("invalid_scope")
	ErrAccessDenied         = errors.New("access_denied")
	ErrServerError          = errors.New("server_error")
)

// Authentication and authorization failures.
var (
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrInvalidToken        = errors.New("invalid access token")
	ErrExpiredToken        = errors.New("access token expired")
	ErrPrincipalResolution = errors.New("principal could not be resolved")
	ErrUnauthenticated     = errors.New("full authentication is required to access this resource")
	ErrForbidden           = errors.New("access is denied")
)

// Resource (CRUD) failures.
var (
	ErrResourceNotFound   = errors.New("resource not found")
	ErrIntegrityViolation = errors.New("integrity violation")
	ErrValidation         = errors.New("validation failed")
)

// Error pairs a sentinel kind with a message that is safe to show to clients.
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return e.Kind.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Kind }

// Wrapf builds an *Error of the given kind with a formatted message.
func Wrapf(kind error, format string, args ...interface{}) error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// NotFound is shorthand for an ErrResourceNotFound with a message.
func NotFound(format string, args ...interface{}) error {
	return Wrapf(ErrResourceNotFound, format, args...)
}

// Message returns the client-safe message for err. Errors that are not an
// *Error and are not a known sentinel collapse to a generic description.
func Message(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Error()
	}
	if d, ok := Descriptions[Kind(err)]; ok {
		return d
	}
	return Descriptions[ErrServerError]
}

// Kind returns the sentinel that err wraps, or ErrServerError.
func Kind(err error) error {
	for _, k := range kinds {
		if errors.Is(err, k) {
			return k
		}
	}
	return ErrServerError
}

var kinds = []error{
	ErrInvalidRequest,
	ErrInvalidClient,
	ErrInvalidGrant,
	ErrUnsupportedGrantType,
	ErrInvalidScope,
	ErrAccessDenied,
	ErrInvalidCredentials,
	ErrInvalidToken,
	ErrExpiredToken,
	ErrPrincipalResolution,
	ErrUnauthenticated,
	ErrForbidden,
	ErrResourceNotFound,
	ErrIntegrityViolation,
	ErrValidation,
	ErrServerError,
}
