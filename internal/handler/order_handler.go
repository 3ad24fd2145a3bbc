package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"workboard/internal/auth"
	"workboard/internal/errors"
	"workboard/internal/model"
	"workboard/internal/service"
)

// OrderHandler handles order endpoints.
type OrderHandler struct {
	svc service.OrderService
}

// NewOrderHandler creates a new order handler.
func NewOrderHandler(svc service.OrderService) *OrderHandler {
	return &OrderHandler{svc: svc}
}

// OrderRequest represents order create and update payloads. Updates are a
// full replace; unchanged fields must be passed through.
type OrderRequest struct {
	ClientName   string `json:"client_name" validate:"required"`
	Description  string `json:"description" validate:"required"`
	ReceivedDate string `json:"received_date" validate:"required,datetime=2006-01-02"`
	DueDate      string `json:"due_date" validate:"required,datetime=2006-01-02"`
	StageID      uint   `json:"stage_id"`
	WorkmanID    *uint  `json:"workman_id"`
	Priority     int    `json:"priority" validate:"min=0,max=3"`
	Status       string `json:"status"`
}

// MoveRequest represents a drag-and-drop move. All three fields are applied
// as given, so callers pass unchanged values through explicitly.
type MoveRequest struct {
	StageID   uint  `json:"stage_id" validate:"required"`
	WorkmanID *uint `json:"workman_id"`
	Priority  int   `json:"priority" validate:"min=0"`
}

// ListOrders godoc
// @Summary List the caller's visible orders with alerts and note counts
// @Tags orders
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.OrderDetail
// @Router /orders [get]
func (h *OrderHandler) ListOrders(c echo.Context) error {
	claims := auth.ClaimsFrom(c)
	if claims == nil {
		return unauthorized()
	}
	orders, err := h.svc.ListOrders(c.Request().Context(), claims.Role, claims.Name, claims.VisibleStages)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, orders)
}

// GetOrder godoc
// @Summary Get an order by id
// @Tags orders
// @Produce json
// @Security BearerAuth
// @Param id path int true "Order ID"
// @Success 200 {object} model.OrderDetail
// @Failure 404 {object} errors.ErrorResponse
// @Router /orders/{id} [get]
func (h *OrderHandler) GetOrder(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	order, err := h.svc.GetOrder(c.Request().Context(), id)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, order)
}

// CreateOrder godoc
// @Summary Create an order
// @Tags orders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body OrderRequest true "Order data"
// @Success 201 {object} model.Order
// @Failure 400 {object} errors.ErrorResponse
// @Router /orders [post]
func (h *OrderHandler) CreateOrder(c echo.Context) error {
	var req OrderRequest
	if err := c.Bind(&req); err != nil {
		return bindError()
	}
	if err := c.Validate(&req); err != nil {
		return validationError(err)
	}

	order, err := h.svc.CreateOrder(c.Request().Context(), orderInput(req))
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusCreated, order)
}

// UpdateOrder godoc
// @Summary Replace an order's mutable fields
// @Tags orders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Order ID"
// @Param request body OrderRequest true "Order data"
// @Success 200 {object} model.Order
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /orders/{id} [put]
func (h *OrderHandler) UpdateOrder(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req OrderRequest
	if err := c.Bind(&req); err != nil {
		return bindError()
	}
	if err := c.Validate(&req); err != nil {
		return validationError(err)
	}

	order, err := h.svc.UpdateOrder(c.Request().Context(), id, orderInput(req))
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, order)
}

// MoveOrder godoc
// @Summary Move an order between stages or reassign it
// @Tags orders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Order ID"
// @Param request body MoveRequest true "Target stage, workman, priority"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /orders/{id}/move [put]
func (h *OrderHandler) MoveOrder(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req MoveRequest
	if err := c.Bind(&req); err != nil {
		return bindError()
	}
	if err := c.Validate(&req); err != nil {
		return validationError(err)
	}

	if err := h.svc.MoveOrder(c.Request().Context(), id, req.StageID, req.WorkmanID, req.Priority); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "order moved"})
}

// DeleteOrder godoc
// @Summary Delete an order and its notes
// @Tags orders
// @Produce json
// @Security BearerAuth
// @Param id path int true "Order ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} errors.ErrorResponse
// @Router /orders/{id} [delete]
func (h *OrderHandler) DeleteOrder(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := h.svc.DeleteOrder(c.Request().Context(), id); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "order deleted"})
}

func orderInput(req OrderRequest) service.OrderInput {
	return service.OrderInput{
		ClientName:   req.ClientName,
		Description:  req.Description,
		ReceivedDate: req.ReceivedDate,
		DueDate:      req.DueDate,
		StageID:      req.StageID,
		WorkmanID:    req.WorkmanID,
		Priority:     req.Priority,
		Status:       model.OrderStatus(req.Status),
	}
}
