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

// CartHandler serves the shopper's cart.
type CartHandler struct {
	carts  usecase.CartUsecase
	logger *slog.Logger
}

// NewCartHandler is the constructor for CartHandler, injected by Fx.
func NewCartHandler(carts usecase.CartUsecase, logger *slog.Logger) *CartHandler {
	return &CartHandler{
		carts:  carts,
		logger: logger,
	}
}

type cartItemInput struct {
	ProductID int64 `json:"product_id" validate:"required,gt=0"`
	Quantity  int   `json:"quantity" validate:"required,gt=0"`
}

type cartQuantityInput struct {
	Quantity int `json:"quantity" validate:"required,gt=0"`
}

// View returns the cart with its computed totals.
func (h *CartHandler) View(c echo.Context) error {
	view, err := h.carts.View(c.Request().Context(), deliverycontext.GetSession(c))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, view, "")
}

// AddItem adds a product to the cart and returns the refreshed view.
func (h *CartHandler) AddItem(c echo.Context) error {
	var input cartItemInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid cart item input")
	}
	if err := c.Validate(&input); err != nil {
		return response.BadRequest(c, "VALIDATION_FAILED", "Product id and a positive quantity are required")
	}

	view, err := h.carts.AddItem(c.Request().Context(), deliverycontext.GetSession(c), input.ProductID, input.Quantity)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, view, "Item added to cart")
}

// UpdateItem changes a cart line's quantity.
func (h *CartHandler) UpdateItem(c echo.Context) error {
	productID, err := pathID(c, "productId")
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid product id")
	}

	var input cartQuantityInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid quantity input")
	}
	if err := c.Validate(&input); err != nil {
		return response.BadRequest(c, "VALIDATION_FAILED", "Quantity must be positive")
	}

	view, err := h.carts.UpdateItem(c.Request().Context(), deliverycontext.GetSession(c), productID, input.Quantity)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, view, "Cart updated")
}

// RemoveItem drops a product from the cart.
func (h *CartHandler) RemoveItem(c echo.Context) error {
	productID, err := pathID(c, "productId")
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid product id")
	}

	view, err := h.carts.RemoveItem(c.Request().Context(), deliverycontext.GetSession(c), productID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, view, "Item removed")
}

// Clear empties the cart.
func (h *CartHandler) Clear(c echo.Context) error {
	if err := h.carts.Clear(c.Request().Context(), deliverycontext.GetSession(c)); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Cart cleared")
}
