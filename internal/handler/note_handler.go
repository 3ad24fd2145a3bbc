package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"workboard/internal/auth"
	"workboard/internal/errors"
	"workboard/internal/service"
)

// NoteHandler handles order note endpoints.
type NoteHandler struct {
	svc service.NoteService
}

// NewNoteHandler creates a new note handler.
func NewNoteHandler(svc service.NoteService) *NoteHandler {
	return &NoteHandler{svc: svc}
}

// CreateNoteRequest represents a note creation payload.
type CreateNoteRequest struct {
	Content string `json:"content" validate:"required"`
}

// ListNotes godoc
// @Summary List an order's notes newest-first
// @Tags notes
// @Produce json
// @Security BearerAuth
// @Param id path int true "Order ID"
// @Success 200 {array} model.NoteDetail
// @Failure 404 {object} errors.ErrorResponse
// @Router /orders/{id}/notes [get]
func (h *NoteHandler) ListNotes(c echo.Context) error {
	orderID, err := pathID(c)
	if err != nil {
		return err
	}
	notes, err := h.svc.ListNotes(c.Request().Context(), orderID)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, notes)
}

// CreateNote godoc
// @Summary Add a note to an order, attributed to the caller
// @Tags notes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Order ID"
// @Param request body CreateNoteRequest true "Note content"
// @Success 201 {object} model.Note
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /orders/{id}/notes [post]
func (h *NoteHandler) CreateNote(c echo.Context) error {
	orderID, err := pathID(c)
	if err != nil {
		return err
	}
	var req CreateNoteRequest
	if err := c.Bind(&req); err != nil {
		return bindError()
	}
	if err := c.Validate(&req); err != nil {
		return validationError(err)
	}

	claims := auth.ClaimsFrom(c)
	if claims == nil {
		return unauthorized()
	}

	note, err := h.svc.CreateNote(c.Request().Context(), orderID, req.Content, claims.UserID)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusCreated, note)
}

// DeleteNote godoc
// @Summary Delete a note (author or admin only)
// @Tags notes
// @Produce json
// @Security BearerAuth
// @Param id path int true "Note ID"
// @Success 200 {object} map[string]string
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /notes/{id} [delete]
func (h *NoteHandler) DeleteNote(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	claims := auth.ClaimsFrom(c)
	if claims == nil {
		return unauthorized()
	}
	if err := h.svc.DeleteNote(c.Request().Context(), id, claims.UserID, claims.Role); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "note deleted"})
}
