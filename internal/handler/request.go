package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"workboard/internal/errors"
)

// httpError builds an echo error whose body serializes to the shared
// {error, code} envelope, the same shape MapErrorToHTTP produces.
func httpError(status int, message, code string) *echo.HTTPError {
	return echo.NewHTTPError(status, errors.ErrorResponse{Error: message, Code: code})
}

func bindError() *echo.HTTPError {
	return httpError(http.StatusBadRequest, "invalid request body", "INVALID_BODY")
}

func validationError(err error) *echo.HTTPError {
	return httpError(http.StatusBadRequest, err.Error(), "VALIDATION_FAILED")
}

func unauthorized() *echo.HTTPError {
	return httpError(http.StatusUnauthorized, "invalid token", "INVALID_TOKEN")
}

// pathID parses the :id path parameter shared by most routes.
func pathID(c echo.Context) (uint, error) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id < 1 {
		return 0, httpError(http.StatusBadRequest, "invalid id", "INVALID_ID")
	}
	return uint(id), nil
}
