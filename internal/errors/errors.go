package errors

import (
	"errors"
	"net/http"
)

// Error kinds. Every failure that reaches a handler is classified by one of
// these; MapErrorToHTTP decides the status code from the kind alone.
var (
	// ErrValidation is returned for missing or malformed input.
	ErrValidation = errors.New("validation failed")
	// ErrInvalidQuery is returned for malformed search, filter or paging parameters.
	ErrInvalidQuery = errors.New("invalid query")
	// ErrInvalidIDFormat is returned when an id is not a well-formed identifier.
	ErrInvalidIDFormat = errors.New("invalid id format")
	// ErrInvalidCredentials is returned for an unknown email or a wrong password alike.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrDuplicateEmail is returned when registering an email that already exists.
	ErrDuplicateEmail = errors.New("email already registered")
	// ErrInvalidOperation is returned for requests that are well-formed but not allowed as such.
	ErrInvalidOperation = errors.New("invalid operation")
	// ErrUnauthorized is returned when the bearer token is missing, invalid or expired.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrForbidden is returned when the caller is authenticated but not permitted.
	ErrForbidden = errors.New("forbidden")
	// ErrNotFound is returned when a well-formed id matches no record.
	ErrNotFound = errors.New("not found")
	// ErrUpstream is returned when the media host fails.
	ErrUpstream = errors.New("upstream failure")
)

// Error carries a client-facing message for one of the kinds above plus the
// underlying cause, which is only shown outside production.
type Error struct {
	Kind    error
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap exposes both the kind and the cause to errors.Is / errors.As.
func (e *Error) Unwrap() []error {
	if e.Err != nil {
		return []error{e.Kind, e.Err}
	}
	return []error{e.Kind}
}

// New creates an error of the given kind.
func New(kind error, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap creates an error of the given kind with an underlying cause.
func Wrap(kind error, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// Validation is shorthand for New(ErrValidation, message).
func Validation(message string) *Error {
	return New(ErrValidation, message)
}

// InvalidQuery is shorthand for New(ErrInvalidQuery, message).
func InvalidQuery(message string) *Error {
	return New(ErrInvalidQuery, message)
}

// NotFound is shorthand for New(ErrNotFound, what+" not found").
func NotFound(what string) *Error {
	return New(ErrNotFound, what+" not found")
}

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Message string `json:"message"`
	Code    string `json:"code"`
	Error   string `json:"error,omitempty"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
	Detail     string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse. The detail is
// dropped when withDetail is false.
func (e *HTTPError) ToErrorResponse(withDetail bool) ErrorResponse {
	resp := ErrorResponse{
		Message: e.Message,
		Code:    e.Code,
	}
	if withDetail {
		resp.Error = e.Detail
	}
	return resp
}

var kindTable = []struct {
	kind   error
	status int
	code   string
}{
	{ErrValidation, http.StatusBadRequest, "VALIDATION_ERROR"},
	{ErrInvalidQuery, http.StatusBadRequest, "INVALID_QUERY"},
	{ErrInvalidIDFormat, http.StatusBadRequest, "INVALID_ID_FORMAT"},
	{ErrInvalidCredentials, http.StatusBadRequest, "INVALID_CREDENTIALS"},
	// Duplicate email stays 400 for compatibility with existing clients.
	{ErrDuplicateEmail, http.StatusBadRequest, "DUPLICATE_EMAIL"},
	{ErrInvalidOperation, http.StatusBadRequest, "INVALID_OPERATION"},
	{ErrUnauthorized, http.StatusUnauthorized, "UNAUTHORIZED"},
	{ErrForbidden, http.StatusForbidden, "FORBIDDEN"},
	{ErrNotFound, http.StatusNotFound, "NOT_FOUND"},
	{ErrUpstream, http.StatusInternalServerError, "UPSTREAM_FAILURE"},
}

// MapErrorToHTTP maps domain errors to HTTP errors.
func MapErrorToHTTP(err error) *HTTPError {
	for _, k := range kindTable {
		if !errors.Is(err, k.kind) {
			continue
		}
		httpErr := NewHTTPError(k.status, k.kind.Error(), k.code)
		var appErr *Error
		if errors.As(err, &appErr) {
			httpErr.Message = appErr.Message
			if appErr.Err != nil {
				httpErr.Detail = appErr.Err.Error()
			}
		}
		return httpErr
	}

	httpErr := NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	if err != nil {
		httpErr.Detail = err.Error()
	}
	return httpErr
}
