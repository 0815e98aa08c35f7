package handler

import (
	"log/slog"
	"net/http"

	deliverycontext "github.com/Benmwania/ecomart/internal/delivery/context"
	"github.com/Benmwania/ecomart/internal/delivery/http/response"
	"github.com/Benmwania/ecomart/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// OrderHandler serves the customer's order history.
type OrderHandler struct {
	orders usecase.OrderUsecase
	logger *slog.Logger
}

// NewOrderHandler is the constructor for OrderHandler, injected by Fx.
func NewOrderHandler(orders usecase.OrderUsecase, logger *slog.Logger) *OrderHandler {
	return &OrderHandler{
		orders: orders,
		logger: logger,
	}
}

// Orders lists the current user's orders.
func (h *OrderHandler) Orders(c echo.Context) error {
	orders, err := h.orders.Orders(c.Request().Context(), deliverycontext.GetSession(c))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, orders, "")
}

// Order returns one order's detail.
func (h *OrderHandler) Order(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid order id")
	}

	order, err := h.orders.Order(c.Request().Context(), deliverycontext.GetSession(c), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, order, "")
}

// Cancel cancels an order that has not started processing yet.
func (h *OrderHandler) Cancel(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid order id")
	}

	order, err := h.orders.Cancel(c.Request().Context(), deliverycontext.GetSession(c), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, order, "Order cancelled")
}
