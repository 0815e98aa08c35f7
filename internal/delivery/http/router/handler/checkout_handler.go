package handler

import (
	"log/slog"
	"net/http"

	deliverycontext "github.com/Benmwania/ecomart/internal/delivery/context"
	"github.com/Benmwania/ecomart/internal/delivery/http/response"
	domainerrors "github.com/Benmwania/ecomart/internal/domain/errors"
	"github.com/Benmwania/ecomart/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// CheckoutHandler drives the three-step checkout wizard over HTTP.
type CheckoutHandler struct {
	checkout usecase.CheckoutUsecase
	logger   *slog.Logger
}

// NewCheckoutHandler is the constructor for CheckoutHandler, injected by Fx.
func NewCheckoutHandler(checkout usecase.CheckoutUsecase, logger *slog.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		checkout: checkout,
		logger:   logger,
	}
}

// Begin enters the checkout. Anonymous shoppers are sent to login and
// shoppers with an empty cart back to the cart page, mirroring how the
// storefront UI gates the wizard.
func (h *CheckoutHandler) Begin(c echo.Context) error {
	view, err := h.checkout.Begin(c.Request().Context(), deliverycontext.GetSession(c))
	if err != nil {
		if redirected, redirectErr := h.redirectGuard(c, err); redirected {
			return redirectErr
		}

		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, view, "")
}

// SubmitShipping records the shipping address and advances the wizard.
func (h *CheckoutHandler) SubmitShipping(c echo.Context) error {
	var input usecase.ShippingInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid shipping input")
	}
	if err := c.Validate(&input); err != nil {
		return response.BadRequest(c, "VALIDATION_FAILED", "All shipping fields are required")
	}

	view, err := h.checkout.SubmitShipping(c.Request().Context(), deliverycontext.GetSession(c), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, view, "Shipping address saved")
}

// SubmitPayment runs the selected payment method for this checkout.
func (h *CheckoutHandler) SubmitPayment(c echo.Context) error {
	var input usecase.PaymentInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid payment input")
	}
	if err := c.Validate(&input); err != nil {
		return response.BadRequest(c, "VALIDATION_FAILED", "A payment method is required")
	}

	view, err := h.checkout.SubmitPayment(c.Request().Context(), deliverycontext.GetSession(c), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, view, "")
}

// PaypalReturn completes a PayPal payment when the shopper comes back
// from the approval page.
func (h *CheckoutHandler) PaypalReturn(c echo.Context) error {
	token := c.QueryParam("token")

	view, err := h.checkout.HandlePaypalReturn(c.Request().Context(), deliverycontext.GetSession(c), token)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, view, "")
}

// PlaceOrder finishes the review step and resets the wizard.
func (h *CheckoutHandler) PlaceOrder(c echo.Context) error {
	view, err := h.checkout.PlaceOrder(c.Request().Context(), deliverycontext.GetSession(c))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, view, "Order placed")
}

func (h *CheckoutHandler) redirectGuard(c echo.Context, err error) (bool, error) {
	if errors.Is(err, domainerrors.ErrLoginRequired) {
		return true, response.SeeOther(c, "/login?from=/checkout")
	}
	if errors.Is(err, domainerrors.ErrCartEmpty) {
		return true, response.SeeOther(c, "/cart")
	}

	return false, nil
}
