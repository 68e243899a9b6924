package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppError_StatusCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  *AppError
		want int
	}{
		{name: "validation", err: NewValidationError("bad input"), want: http.StatusBadRequest},
		{name: "not found", err: NewNotFoundError("missing"), want: http.StatusNotFound},
		{name: "auth", err: NewAuthError("no token"), want: http.StatusUnauthorized},
		{name: "forbidden", err: NewForbiddenError("nope"), want: http.StatusForbidden},
		{name: "conflict", err: NewConflictError("duplicate"), want: http.StatusConflict},
		{name: "database", err: NewDatabaseError("query failed", errors.New("boom")), want: http.StatusInternalServerError},
		{name: "internal", err: NewInternalError("oops", nil), want: http.StatusInternalServerError},
		{name: "unknown", err: &AppError{Type: UnknownError, Message: "??"}, want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.err.StatusCode())
		})
	}
}

func TestAppError_ErrorAndUnwrap(t *testing.T) {
	t.Parallel()

	underlying := errors.New("connection refused")
	err := NewDatabaseError("failed to save cart", underlying)

	assert.Equal(t, "failed to save cart: connection refused", err.Error())
	assert.ErrorIs(t, err, underlying)

	bare := NewNotFoundError("Cart not found")
	assert.Equal(t, "Cart not found", bare.Error())
	assert.Nil(t, bare.Unwrap())
}

func TestFromError_PassesThroughAppError(t *testing.T) {
	t.Parallel()

	original := NewConflictError("Email already in use")
	got := FromError(original)

	assert.Same(t, original, got)
}

func TestFromError_UnwrapsWrappedAppError(t *testing.T) {
	t.Parallel()

	original := NewValidationError("quantity must be positive")
	wrapped := fmt.Errorf("adding item: %w", original)

	got := FromError(wrapped)
	require.NotNil(t, got)
	assert.Equal(t, ValidationError, got.Type)
	assert.Equal(t, http.StatusBadRequest, got.StatusCode())
}

func TestFromError_CoercesUnknownErrors(t *testing.T) {
	t.Parallel()

	got := FromError(errors.New("something exploded"))
	require.NotNil(t, got)
	assert.Equal(t, InternalError, got.Type)
	assert.Equal(t, "Internal server error", got.Message)
	assert.Equal(t, http.StatusInternalServerError, got.StatusCode())
}
