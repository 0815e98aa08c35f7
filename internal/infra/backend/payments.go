package backend

import (
	"context"
	"fmt"
	"net/http"

	"github.com/Benmwania/ecomart/internal/domain/entity"
	"github.com/Benmwania/ecomart/internal/domain/gateway"
	"github.com/Benmwania/ecomart/internal/errors"
)

// PaymentGateway implements gateway.PaymentGateway over the /payments
// resource.
type PaymentGateway struct {
	client *Client
}

// NewPaymentGateway creates the payment gateway.
func NewPaymentGateway(client *Client) gateway.PaymentGateway {
	return &PaymentGateway{client: client}
}

func (g *PaymentGateway) InitiateMpesa(ctx context.Context, orderID int64, phoneNumber string) (*entity.InitiateResult, error) {
	body := map[string]any{
		"order_id":     orderID,
		"phone_number": phoneNumber,
	}

	var result entity.InitiateResult
	if err := g.client.do(ctx, http.MethodPost, "/payments/initiate_mpesa/", nil, body, &result); err != nil {
		return nil, errors.Wrap(err, "initiate mpesa payment")
	}

	return &result, nil
}

func (g *PaymentGateway) InitiatePaypal(ctx context.Context, orderID int64) (*entity.InitiateResult, error) {
	body := map[string]any{"order_id": orderID}

	var result entity.InitiateResult
	if err := g.client.do(ctx, http.MethodPost, "/payments/initiate_paypal/", nil, body, &result); err != nil {
		return nil, errors.Wrap(err, "initiate paypal payment")
	}

	return &result, nil
}

func (g *PaymentGateway) CreateStripeIntent(ctx context.Context, orderID int64) (*entity.InitiateResult, error) {
	body := map[string]any{"order_id": orderID}

	var result entity.InitiateResult
	if err := g.client.do(ctx, http.MethodPost, "/payments/create_stripe_intent/", nil, body, &result); err != nil {
		return nil, errors.Wrap(err, "create stripe intent")
	}

	return &result, nil
}

func (g *PaymentGateway) ConfirmStripePayment(ctx context.Context, paymentIntentID string) error {
	body := map[string]any{"payment_intent_id": paymentIntentID}
	if err := g.client.do(ctx, http.MethodPost, "/payments/confirm_stripe_payment/", nil, body, nil); err != nil {
		return errors.Wrap(err, "confirm stripe payment")
	}

	return nil
}

func (g *PaymentGateway) OrderPaymentStatus(ctx context.Context, orderID int64) (string, error) {
	var result struct {
		Status string `json:"status"`
	}
	path := fmt.Sprintf("/payments/order/%d/status/", orderID)
	if err := g.client.do(ctx, http.MethodGet, path, nil, nil, &result); err != nil {
		return "", errors.Wrapf(err, "fetch payment status for order %d", orderID)
	}

	return result.Status, nil
}

func (g *PaymentGateway) MpesaStatus(ctx context.Context, checkoutRequestID string) (*entity.MpesaStatus, error) {
	var status entity.MpesaStatus
	path := fmt.Sprintf("/payments/mpesa/status/%s/", checkoutRequestID)
	if err := g.client.do(ctx, http.MethodGet, path, nil, nil, &status); err != nil {
		return nil, errors.Wrap(err, "fetch mpesa status")
	}

	return &status, nil
}
