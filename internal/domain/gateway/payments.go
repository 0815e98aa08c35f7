package gateway

import (
	"context"

	"github.com/Benmwania/ecomart/internal/domain/entity"
)

// PaymentGateway fronts the backend's /payments resource. Every method
// requires a token in ctx.
type PaymentGateway interface {
	InitiateMpesa(ctx context.Context, orderID int64, phoneNumber string) (*entity.InitiateResult, error)
	InitiatePaypal(ctx context.Context, orderID int64) (*entity.InitiateResult, error)
	CreateStripeIntent(ctx context.Context, orderID int64) (*entity.InitiateResult, error)
	ConfirmStripePayment(ctx context.Context, paymentIntentID string) error
	OrderPaymentStatus(ctx context.Context, orderID int64) (string, error)
	MpesaStatus(ctx context.Context, checkoutRequestID string) (*entity.MpesaStatus, error)
}

// CardConfirmation is the provider's answer to a card confirm call.
type CardConfirmation struct {
	TransactionID string
	Status        string
	Last4         string
}

// CardConfirmer confirms a card payment against the hosted provider
// using a client secret and an opaque payment-method token. Raw card
// data never enters this process.
type CardConfirmer interface {
	Confirm(ctx context.Context, clientSecret, paymentMethodToken string) (*CardConfirmation, error)
}
