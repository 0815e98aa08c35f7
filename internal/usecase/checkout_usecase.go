package usecase

import (
	"context"

	"github.com/Benmwania/ecomart/internal/domain/entity"
)

// ShippingInput is the checkout shipping form.
type ShippingInput struct {
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name" validate:"required"`
	Address   string `json:"address" validate:"required"`
	City      string `json:"city" validate:"required"`
	State     string `json:"state" validate:"required"`
	ZipCode   string `json:"zip_code" validate:"required"`
	Country   string `json:"country" validate:"required"`
}

// PaymentInput selects the method and its method-specific detail for
// the checkout payment step.
type PaymentInput struct {
	Method             entity.PaymentMethod `json:"method" validate:"required"`
	PhoneNumber        string               `json:"phone_number,omitempty"`
	PaymentMethodToken string               `json:"payment_method_token,omitempty"`
}

// CheckoutView is the wizard state returned after every checkout
// operation.
type CheckoutView struct {
	Step        entity.CheckoutStep     `json:"step"`
	Shipping    *entity.ShippingAddress `json:"shipping,omitempty"`
	Cart        *entity.Cart            `json:"cart,omitempty"`
	Pricing     entity.PriceBreakdown   `json:"pricing"`
	Payment     *Attempt                `json:"payment,omitempty"`
	OrderID     int64                   `json:"order_id,omitempty"`
	OrderNumber string                  `json:"order_number,omitempty"`
	// Completed is set once the order has been placed and the checkout
	// state cleared.
	Completed bool `json:"completed,omitempty"`
}

// CheckoutUsecase drives the three-step checkout wizard. Every method
// guards on a live session (ErrLoginRequired) and a non-empty cart
// (ErrCartEmpty); the guards run on every call, not just entry.
type CheckoutUsecase interface {
	Begin(ctx context.Context, session *entity.Session) (*CheckoutView, error)
	SubmitShipping(ctx context.Context, session *entity.Session, input ShippingInput) (*CheckoutView, error)
	// SubmitPayment creates the backend order for this checkout if none
	// exists yet, then runs the payment attempt.
	SubmitPayment(ctx context.Context, session *entity.Session, input PaymentInput) (*CheckoutView, error)
	// HandlePaypalReturn completes a redirect-based payment when the
	// shopper returns with the provider token.
	HandlePaypalReturn(ctx context.Context, session *entity.Session, token string) (*CheckoutView, error)
	// PlaceOrder finishes the review step: clears the cart and resets
	// the wizard. Without a completed payment it still creates the
	// order and reports the payment as pending.
	PlaceOrder(ctx context.Context, session *entity.Session) (*CheckoutView, error)
}
