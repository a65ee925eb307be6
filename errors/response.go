package errors

import "net/http"

// Response error response
type Response struct {
	Error       error
	ErrorCode   int
	Description string
	URI         string
	StatusCode  int
	Header      http.Header
}

// NewResponse create the response pointer
func NewResponse(err error, statusCode int) *Response {
	return &Response{
		Error:      err,
		StatusCode: statusCode,
	}
}

// SetHeader sets the header entries associated with key to
// the single element value.
func (r *Response) SetHeader(key, value string) {
	if r.Header == nil {
		r.Header = make(http.Header)
	}
	r.Header.Set(key, value)
}

// Descriptions error description
var Descriptions = map[error]string{
	ErrInvalidRequest:       "The request is missing a required parameter, includes an invalid parameter value, includes a parameter more than once, or is otherwise malformed",
	ErrInvalidClient:        "Client authentication failed",
	ErrInvalidGrant:         "Bad credentials",
	ErrUnsupportedGrantType: "The authorization grant type is not supported by the authorization server",
	ErrInvalidScope:         "The requested scope is invalid, unknown, or malformed",
	ErrAccessDenied:         "Access is denied",
	ErrServerError:          "The authorization server encountered an unexpected condition that prevented it from fulfilling the request",
	ErrInvalidCredentials:   "Bad credentials",
	ErrInvalidToken:         "Invalid access token",
	ErrExpiredToken:         "Access token expired",
	ErrPrincipalResolution:  "The authorization server encountered an unexpected condition that prevented it from fulfilling the request",
	ErrUnauthenticated:      "Full authentication is required to access this resource",
	ErrForbidden:            "Access is denied",
	ErrResourceNotFound:     "Resource not found",
	ErrIntegrityViolation:   "Integrity violation",
	ErrValidation:           "Validation failed",
}

// StatusCodes response error HTTP status code
var StatusCodes = map[error]int{
	ErrInvalidRequest:       http.StatusBadRequest,
	ErrInvalidClient:        http.StatusUnauthorized,
	ErrInvalidGrant:         http.StatusBadRequest,
	ErrUnsupportedGrantType: http.StatusBadRequest,
	ErrInvalidScope:         http.StatusBadRequest,
	ErrAccessDenied:         http.StatusForbidden,
	ErrServerError:          http.StatusInternalServerError,
	ErrInvalidCredentials:   http.StatusBadRequest,
	ErrInvalidToken:         http.StatusUnauthorized,
	ErrExpiredToken:         http.StatusUnauthorized,
	ErrPrincipalResolution:  http.StatusInternalServerError,
	ErrUnauthenticated:      http.StatusUnauthorized,
	ErrForbidden:            http.StatusForbidden,
	ErrResourceNotFound:     http.StatusNotFound,
	ErrIntegrityViolation:   http.StatusBadRequest,
	ErrValidation:           http.StatusUnprocessableEntity,
}

// StatusCode returns the HTTP status registered for err's kind.
func StatusCode(err error) int {
	if code, ok := StatusCodes[Kind(err)]; ok {
		return code
	}
	return http.StatusInternalServerError
}
