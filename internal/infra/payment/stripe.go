// Package payment holds the hosted payment provider adapters.
package payment

import (
	"context"
	"log/slog"
	"strings"

	"github.com/Benmwania/ecomart/config"
	"github.com/Benmwania/ecomart/internal/domain/gateway"
	"github.com/Benmwania/ecomart/internal/errors"

	"github.com/stripe/stripe-go/v78"
	"github.com/stripe/stripe-go/v78/client"
)

// StripeConfirmer confirms card payments against Stripe. Only the
// client secret and an opaque payment-method token cross this adapter;
// raw card data never enters the process.
type StripeConfirmer struct {
	api    *client.API
	logger *slog.Logger
}

// NewStripeConfirmer creates the Stripe adapter.
func NewStripeConfirmer(cfg *config.Config, logger *slog.Logger) (gateway.CardConfirmer, error) {
	if cfg.Stripe == nil || cfg.Stripe.SecretKey == "" {
		return nil, errors.New("stripe.secretKey is required")
	}

	api := &client.API{}
	api.Init(cfg.Stripe.SecretKey, nil)

	return &StripeConfirmer{api: api, logger: logger}, nil
}

func (s *StripeConfirmer) Confirm(ctx context.Context, clientSecret, paymentMethodToken string) (*gateway.CardConfirmation, error) {
	intentID, err := intentIDFromSecret(clientSecret)
	if err != nil {
		return nil, err
	}

	params := &stripe.PaymentIntentConfirmParams{
		PaymentMethod: stripe.String(paymentMethodToken),
	}
	params.Context = ctx

	intent, err := s.api.PaymentIntents.Confirm(intentID, params)
	if err != nil {
		return nil, errors.Wrap(err, "confirm payment intent")
	}

	s.logger.Info("stripe payment intent confirmed",
		slog.String("intent_id", intent.ID),
		slog.String("status", string(intent.Status)),
	)

	return &gateway.CardConfirmation{
		TransactionID: intent.ID,
		Status:        string(intent.Status),
		Last4:         cardLast4(intent),
	}, nil
}

// intentIDFromSecret extracts the payment intent id from a client
// secret of the form "pi_xxx_secret_yyy".
func intentIDFromSecret(clientSecret string) (string, error) {
	id, _, found := strings.Cut(clientSecret, "_secret_")
	if !found || !strings.HasPrefix(id, "pi_") {
		return "", errors.Errorf("malformed client secret")
	}

	return id, nil
}

func cardLast4(intent *stripe.PaymentIntent) string {
	if intent.LatestCharge == nil {
		return ""
	}
	details := intent.LatestCharge.PaymentMethodDetails
	if details == nil || details.Card == nil {
		return ""
	}

	return details.Card.Last4
}
