package impl

import (
	"context"
	"log/slog"

	"github.com/Benmwania/ecomart/internal/domain/entity"
	domainerrors "github.com/Benmwania/ecomart/internal/domain/errors"
	"github.com/Benmwania/ecomart/internal/domain/gateway"
	"github.com/Benmwania/ecomart/internal/usecase"

	"github.com/pkg/errors"
)

// cardFlow runs one card attempt: request a payment intent from the
// backend, confirm it against the provider with the opaque method
// token, then tell the backend the intent is confirmed. Every attempt
// requests a fresh intent, so a retry never reuses a stale client
// secret.
type cardFlow struct {
	payments gateway.PaymentGateway
	cards    gateway.CardConfirmer
	logger   *slog.Logger
}

func (f *cardFlow) run(ctx context.Context, req usecase.PaymentRequest, rep *reporter) (*usecase.Attempt, error) {
	attempt := &usecase.Attempt{
		Method: entity.PaymentCard,
		Status: entity.AttemptProcessing,
	}

	intent, err := f.payments.CreateStripeIntent(ctx, req.OrderID)
	if err != nil {
		rep.failure(err)

		return failAttempt(attempt, paymentFailureMessage(err)), nil
	}
	if !intent.Success || intent.ClientSecret == "" {
		message := intent.Error
		if message == "" {
			message = domainerrors.ErrPaymentFailed.Message()
		}
		rep.failure(errors.Wrap(domainerrors.ErrPaymentFailed, message))

		return failAttempt(attempt, message), nil
	}

	confirmation, err := f.cards.Confirm(ctx, intent.ClientSecret, req.PaymentMethodToken)
	if err != nil {
		f.logger.Warn("card confirmation failed", slog.Any("error", err), slog.Int64("order_id", req.OrderID))
		rep.failure(errors.Wrap(domainerrors.ErrPaymentFailed, err.Error()))

		return failAttempt(attempt, domainerrors.ErrPaymentFailed.Message()), nil
	}
	if confirmation.Status != "succeeded" {
		rep.failure(errors.Wrapf(domainerrors.ErrPaymentFailed, "intent status %s", confirmation.Status))

		return failAttempt(attempt, domainerrors.ErrPaymentFailed.Message()), nil
	}

	if err := f.payments.ConfirmStripePayment(ctx, confirmation.TransactionID); err != nil {
		rep.failure(err)

		return failAttempt(attempt, paymentFailureMessage(err)), nil
	}

	result := entity.PaymentResult{
		Method:        entity.PaymentCard,
		TransactionID: confirmation.TransactionID,
		Amount:        req.Amount,
		Last4:         confirmation.Last4,
	}
	rep.success(result)
	attempt.Status = entity.AttemptSuccess
	attempt.Result = &result

	return attempt, nil
}
