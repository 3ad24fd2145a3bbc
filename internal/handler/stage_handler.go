package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"workboard/internal/auth"
	"workboard/internal/errors"
	"workboard/internal/service"
)

// StageHandler handles pipeline stage endpoints.
type StageHandler struct {
	svc      service.StageService
	orderSvc service.OrderService
}

// NewStageHandler creates a new stage handler.
func NewStageHandler(svc service.StageService, orderSvc service.OrderService) *StageHandler {
	return &StageHandler{svc: svc, orderSvc: orderSvc}
}

// CreateStageRequest represents a stage creation payload. Position is
// assigned by the server, after the current last stage.
type CreateStageRequest struct {
	Title string `json:"title" validate:"required"`
}

// UpdateStageRequest represents a stage edit payload.
type UpdateStageRequest struct {
	Title    string `json:"title" validate:"required"`
	Position int    `json:"position" validate:"min=0"`
}

// ReorderStagesRequest carries the full stage sequence in display order.
type ReorderStagesRequest struct {
	StageIDs []uint `json:"stage_ids" validate:"required,min=1"`
}

// ReprioritizeRequest carries one column's orders in desired top-to-bottom order.
type ReprioritizeRequest struct {
	OrderIDs []uint `json:"order_ids" validate:"required"`
}

// ListStages godoc
// @Summary List the caller's visible stages in display order
// @Tags stages
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Stage
// @Router /stages [get]
func (h *StageHandler) ListStages(c echo.Context) error {
	claims := auth.ClaimsFrom(c)
	if claims == nil {
		return unauthorized()
	}
	stages, err := h.svc.ListVisibleStages(c.Request().Context(), claims.Role, claims.VisibleStages)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, stages)
}

// CreateStage godoc
// @Summary Create a stage at the end of the pipeline
// @Tags stages
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateStageRequest true "Stage data"
// @Success 201 {object} model.Stage
// @Failure 400 {object} errors.ErrorResponse
// @Router /stages [post]
func (h *StageHandler) CreateStage(c echo.Context) error {
	var req CreateStageRequest
	if err := c.Bind(&req); err != nil {
		return bindError()
	}
	if err := c.Validate(&req); err != nil {
		return validationError(err)
	}

	stage, err := h.svc.CreateStage(c.Request().Context(), req.Title)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusCreated, stage)
}

// UpdateStage godoc
// @Summary Update a stage's title and position
// @Tags stages
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Stage ID"
// @Param request body UpdateStageRequest true "Stage data"
// @Success 200 {object} model.Stage
// @Failure 404 {object} errors.ErrorResponse
// @Router /stages/{id} [put]
func (h *StageHandler) UpdateStage(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req UpdateStageRequest
	if err := c.Bind(&req); err != nil {
		return bindError()
	}
	if err := c.Validate(&req); err != nil {
		return validationError(err)
	}

	stage, err := h.svc.UpdateStage(c.Request().Context(), id, req.Title, req.Position)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, stage)
}

// ReorderStages godoc
// @Summary Overwrite stage positions from the given sequence
// @Description Positions are rewritten to 0..n-1 in sequence order. Writes are independent; on partial failure re-fetch the authoritative stage list.
// @Tags stages
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body ReorderStagesRequest true "Stage ids in display order"
// @Success 200 {array} service.ReorderResult
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /stages/reorder [put]
func (h *StageHandler) ReorderStages(c echo.Context) error {
	var req ReorderStagesRequest
	if err := c.Bind(&req); err != nil {
		return bindError()
	}
	if err := c.Validate(&req); err != nil {
		return validationError(err)
	}

	results, err := h.svc.ReorderStages(c.Request().Context(), req.StageIDs)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, results)
}

// Reprioritize godoc
// @Summary Reapply intra-column ordering after a same-stage drag
// @Description The given top-to-bottom sequence receives priorities N-1..0; only changed orders are written.
// @Tags stages
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Stage ID"
// @Param request body ReprioritizeRequest true "Order ids top to bottom"
// @Success 200 {object} map[string]int
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /stages/{id}/reprioritize [put]
func (h *StageHandler) Reprioritize(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req ReprioritizeRequest
	if err := c.Bind(&req); err != nil {
		return bindError()
	}
	if err := c.Validate(&req); err != nil {
		return validationError(err)
	}

	moved, err := h.orderSvc.ReprioritizeColumn(c.Request().Context(), id, req.OrderIDs)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, map[string]int{"moved": moved})
}

// DeleteStage godoc
// @Summary Delete a stage with no referencing orders
// @Tags stages
// @Produce json
// @Security BearerAuth
// @Param id path int true "Stage ID"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /stages/{id} [delete]
func (h *StageHandler) DeleteStage(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := h.svc.DeleteStage(c.Request().Context(), id); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "stage deleted"})
}
