package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrInvalidCredentials is returned when username or password is incorrect.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrUserExists is returned when username or email is already taken.
	ErrUserExists = errors.New("username or email already exists")
	// ErrInvalidRole is returned when a role outside the known set is given.
	ErrInvalidRole = errors.New("invalid role")
	// ErrPasswordTooShort is returned when a password is under six characters.
	ErrPasswordTooShort = errors.New("password must be at least 6 characters")
	// ErrClientNeedsStages is returned when a client account would end up
	// without any visible stage.
	ErrClientNeedsStages = errors.New("client users must have at least one visible stage")
	// ErrSelfDelete is returned when an admin tries to delete their own account.
	ErrSelfDelete = errors.New("cannot delete your own account")
	// ErrUserNotFound is returned when a user id does not exist.
	ErrUserNotFound = errors.New("user not found")
	// ErrWorkmanNotFound is returned when a workman id does not exist.
	ErrWorkmanNotFound = errors.New("workman not found")
	// ErrStageNotFound is returned when a stage id does not exist.
	ErrStageNotFound = errors.New("stage not found")
	// ErrStageHasOrders is returned when deleting a stage that orders still reference.
	ErrStageHasOrders = errors.New("cannot delete stage with existing orders")
	// ErrOrderNotFound is returned when an order id does not exist.
	ErrOrderNotFound = errors.New("order not found")
	// ErrNoteNotFound is returned when a note id does not exist.
	ErrNoteNotFound = errors.New("note not found")
	// ErrNotNoteOwner is returned when a non-author, non-admin deletes a note.
	ErrNotNoteOwner = errors.New("not authorized")
	// ErrInvalidStatus is returned when an order status outside the known set is given.
	ErrInvalidStatus = errors.New("invalid order status")
	// ErrColumnMismatch is returned when a reprioritization sequence is not a
	// permutation of the stage's current column.
	ErrColumnMismatch = errors.New("order ids do not match the stage column")
)

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
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

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors. Store failures fall
// through to a generic 500 so internal details never reach the caller.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrInvalidCredentials):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "INVALID_CREDENTIALS")
	case errors.Is(err, ErrUserExists):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "USER_EXISTS")
	case errors.Is(err, ErrInvalidRole):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_ROLE")
	case errors.Is(err, ErrPasswordTooShort):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "PASSWORD_TOO_SHORT")
	case errors.Is(err, ErrClientNeedsStages):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "CLIENT_NEEDS_STAGES")
	case errors.Is(err, ErrSelfDelete):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "SELF_DELETE")
	case errors.Is(err, ErrUserNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "USER_NOT_FOUND")
	case errors.Is(err, ErrWorkmanNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "WORKMAN_NOT_FOUND")
	case errors.Is(err, ErrStageNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "STAGE_NOT_FOUND")
	case errors.Is(err, ErrStageHasOrders):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "STAGE_HAS_ORDERS")
	case errors.Is(err, ErrOrderNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "ORDER_NOT_FOUND")
	case errors.Is(err, ErrNoteNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "NOTE_NOT_FOUND")
	case errors.Is(err, ErrNotNoteOwner):
		return NewHTTPError(http.StatusForbidden, err.Error(), "NOT_AUTHORIZED")
	case errors.Is(err, ErrInvalidStatus):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_STATUS")
	case errors.Is(err, ErrColumnMismatch):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "COLUMN_MISMATCH")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
