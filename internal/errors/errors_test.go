package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMapErrorToHTTP(t *testing.T) {
	cause := errors.New("dial tcp: timeout")

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
		wantMsg    string
		wantDetail string
	}{
		{"validation", Validation("phone is invalid"), http.StatusBadRequest, "VALIDATION_ERROR", "phone is invalid", ""},
		{"invalid query", InvalidQuery("bad priceRange"), http.StatusBadRequest, "INVALID_QUERY", "bad priceRange", ""},
		{"invalid id", New(ErrInvalidIDFormat, "invalid property id"), http.StatusBadRequest, "INVALID_ID_FORMAT", "invalid property id", ""},
		{"credentials sentinel", ErrInvalidCredentials, http.StatusBadRequest, "INVALID_CREDENTIALS", "invalid email or password", ""},
		{"duplicate email", ErrDuplicateEmail, http.StatusBadRequest, "DUPLICATE_EMAIL", "email already registered", ""},
		{"unauthorized", ErrUnauthorized, http.StatusUnauthorized, "UNAUTHORIZED", "unauthorized", ""},
		{"forbidden", New(ErrForbidden, "not your listing"), http.StatusForbidden, "FORBIDDEN", "not your listing", ""},
		{"not found wrapped by fmt", fmt.Errorf("load: %w", NotFound("property")), http.StatusNotFound, "NOT_FOUND", "property not found", ""},
		{"upstream with cause", Wrap(ErrUpstream, "image upload failed", cause), http.StatusInternalServerError, "UPSTREAM_FAILURE", "image upload failed", cause.Error()},
		{"unknown", cause, http.StatusInternalServerError, "INTERNAL_ERROR", "internal server error", cause.Error()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			httpErr := MapErrorToHTTP(tt.err)
			assert.Equal(t, tt.wantStatus, httpErr.StatusCode)
			assert.Equal(t, tt.wantCode, httpErr.Code)
			assert.Equal(t, tt.wantMsg, httpErr.Message)
			assert.Equal(t, tt.wantDetail, httpErr.Detail)
		})
	}
}

func TestError_IsBothKindAndCause(t *testing.T) {
	cause := errors.New("boom")
	err := Wrap(ErrUpstream, "upload failed", cause)

	assert.True(t, errors.Is(err, ErrUpstream))
	assert.True(t, errors.Is(err, cause))
	assert.False(t, errors.Is(err, ErrNotFound))
	assert.Equal(t, "upload failed: boom", err.Error())
}

func TestToErrorResponse_HidesDetail(t *testing.T) {
	httpErr := MapErrorToHTTP(errors.New("sql: connection refused"))

	assert.Empty(t, httpErr.ToErrorResponse(false).Error)
	assert.Equal(t, "sql: connection refused", httpErr.ToErrorResponse(true).Error)
}
