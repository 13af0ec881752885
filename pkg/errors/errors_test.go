package errors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
)

func TestAppError_HTTPStatus(t *testing.T) {
	tests := []struct {
		name    string
		err     *AppError
		status  int
		code    codes.Code
		message string
	}{
		{"not found", NotFound(), http.StatusNotFound, codes.NotFound, "Resource not found"},
		{"validation", Validation("Name cannot be empty"), http.StatusBadRequest, codes.InvalidArgument, "Name cannot be empty"},
		{"internal", Internal("boom", nil), http.StatusInternalServerError, codes.Internal, "boom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.status, tt.err.HTTPStatus())
			assert.Equal(t, tt.code, tt.err.GRPCStatus().Code())
			assert.Equal(t, tt.message, tt.err.Message)
		})
	}
}

func TestAppError_Wrapping(t *testing.T) {
	cause := fmt.Errorf("connection refused")
	err := fmt.Errorf("get user: %w", Internal("lookup failed", cause))

	appErr, ok := As(err)
	require.True(t, ok)
	assert.Equal(t, KindInternal, appErr.Kind)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "lookup failed: connection refused", appErr.Error())
}

func TestIsNotFound(t *testing.T) {
	assert.True(t, IsNotFound(fmt.Errorf("wrapped: %w", NotFound())))
	assert.False(t, IsNotFound(Validation("Invalid email format")))
	assert.False(t, IsNotFound(fmt.Errorf("plain")))
}

func TestIsValidation(t *testing.T) {
	assert.True(t, IsValidation(Validation("Invalid email format")))
	assert.False(t, IsValidation(NotFound()))
	assert.False(t, IsValidation(nil))
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "not_found", KindNotFound.String())
	assert.Equal(t, "validation_error", KindValidation.String())
	assert.Equal(t, "internal_error", KindInternal.String())
	assert.Equal(t, "unknown", Kind(0).String())
}
