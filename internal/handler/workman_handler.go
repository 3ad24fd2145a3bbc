package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"workboard/internal/errors"
	"workboard/internal/model"
	"workboard/internal/service"
)

// WorkmanHandler handles workman endpoints.
type WorkmanHandler struct {
	svc service.WorkmanService
}

// NewWorkmanHandler creates a new workman handler.
func NewWorkmanHandler(svc service.WorkmanService) *WorkmanHandler {
	return &WorkmanHandler{svc: svc}
}

// WorkmanRequest represents workman create and update payloads.
type WorkmanRequest struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"omitempty,email"`
	Phone string `json:"phone"`
}

// ListWorkmen godoc
// @Summary List workmen
// @Tags workmen
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Workman
// @Router /workmen [get]
func (h *WorkmanHandler) ListWorkmen(c echo.Context) error {
	workmen, err := h.svc.ListWorkmen(c.Request().Context())
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, workmen)
}

// CreateWorkman godoc
// @Summary Create a workman
// @Tags workmen
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body WorkmanRequest true "Workman data"
// @Success 201 {object} model.Workman
// @Failure 400 {object} errors.ErrorResponse
// @Router /workmen [post]
func (h *WorkmanHandler) CreateWorkman(c echo.Context) error {
	var req WorkmanRequest
	if err := c.Bind(&req); err != nil {
		return bindError()
	}
	if err := c.Validate(&req); err != nil {
		return validationError(err)
	}

	workman, err := h.svc.CreateWorkman(c.Request().Context(), &model.Workman{
		Name:  req.Name,
		Email: req.Email,
		Phone: req.Phone,
	})
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusCreated, workman)
}

// UpdateWorkman godoc
// @Summary Update a workman
// @Tags workmen
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Workman ID"
// @Param request body WorkmanRequest true "Workman data"
// @Success 200 {object} model.Workman
// @Failure 404 {object} errors.ErrorResponse
// @Router /workmen/{id} [put]
func (h *WorkmanHandler) UpdateWorkman(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req WorkmanRequest
	if err := c.Bind(&req); err != nil {
		return bindError()
	}
	if err := c.Validate(&req); err != nil {
		return validationError(err)
	}

	workman, err := h.svc.UpdateWorkman(c.Request().Context(), id, req.Name, req.Email, req.Phone)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, workman)
}

// DeleteWorkman godoc
// @Summary Delete a workman; their orders become unassigned
// @Tags workmen
// @Produce json
// @Security BearerAuth
// @Param id path int true "Workman ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} errors.ErrorResponse
// @Router /workmen/{id} [delete]
func (h *WorkmanHandler) DeleteWorkman(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := h.svc.DeleteWorkman(c.Request().Context(), id); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "workman deleted"})
}
