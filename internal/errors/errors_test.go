package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMapErrorToHTTP(t *testing.T) {
	tests := []struct {
		err            error
		expectedStatus int
		expectedCode   string
	}{
		{ErrInvalidCredentials, http.StatusUnauthorized, "INVALID_CREDENTIALS"},
		{ErrUserExists, http.StatusBadRequest, "USER_EXISTS"},
		{ErrPasswordTooShort, http.StatusBadRequest, "PASSWORD_TOO_SHORT"},
		{ErrClientNeedsStages, http.StatusBadRequest, "CLIENT_NEEDS_STAGES"},
		{ErrSelfDelete, http.StatusBadRequest, "SELF_DELETE"},
		{ErrUserNotFound, http.StatusNotFound, "USER_NOT_FOUND"},
		{ErrWorkmanNotFound, http.StatusNotFound, "WORKMAN_NOT_FOUND"},
		{ErrStageNotFound, http.StatusNotFound, "STAGE_NOT_FOUND"},
		{ErrStageHasOrders, http.StatusBadRequest, "STAGE_HAS_ORDERS"},
		{ErrOrderNotFound, http.StatusNotFound, "ORDER_NOT_FOUND"},
		{ErrNoteNotFound, http.StatusNotFound, "NOTE_NOT_FOUND"},
		{ErrNotNoteOwner, http.StatusForbidden, "NOT_AUTHORIZED"},
		{ErrInvalidStatus, http.StatusBadRequest, "INVALID_STATUS"},
		{ErrColumnMismatch, http.StatusBadRequest, "COLUMN_MISMATCH"},
	}

	for _, tt := range tests {
		t.Run(tt.expectedCode, func(t *testing.T) {
			httpErr := MapErrorToHTTP(tt.err)
			assert.Equal(t, tt.expectedStatus, httpErr.StatusCode)
			assert.Equal(t, tt.expectedCode, httpErr.Code)
			assert.Equal(t, tt.err.Error(), httpErr.Message)
		})
	}
}

func TestMapErrorToHTTP_WrappedError(t *testing.T) {
	wrapped := fmt.Errorf("delete stage 3: %w", ErrStageHasOrders)

	httpErr := MapErrorToHTTP(wrapped)

	assert.Equal(t, http.StatusBadRequest, httpErr.StatusCode)
	assert.Equal(t, "STAGE_HAS_ORDERS", httpErr.Code)
}

func TestMapErrorToHTTP_UnknownErrorStaysOpaque(t *testing.T) {
	httpErr := MapErrorToHTTP(errors.New("dial tcp 10.0.0.5:3306: connection refused"))

	assert.Equal(t, http.StatusInternalServerError, httpErr.StatusCode)
	assert.Equal(t, "internal server error", httpErr.Message)
	assert.Equal(t, "INTERNAL_ERROR", httpErr.Code)
}
