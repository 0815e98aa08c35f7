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

// paypalFlow runs a redirect-based attempt. start leaves the attempt in
// the redirecting state; the outcome is only known once the shopper
// comes back through handleReturn with the provider token.
type paypalFlow struct {
	payments gateway.PaymentGateway
	logger   *slog.Logger
}

func (f *paypalFlow) start(ctx context.Context, req usecase.PaymentRequest, rep *reporter) (*usecase.Attempt, error) {
	attempt := &usecase.Attempt{
		Method: entity.PaymentPaypal,
		Status: entity.AttemptPending,
	}

	result, err := f.payments.InitiatePaypal(ctx, req.OrderID)
	if err != nil {
		rep.failure(err)

		return failAttempt(attempt, paymentFailureMessage(err)), nil
	}
	if !result.Success || result.ApprovalURL == "" {
		message := result.Error
		if message == "" {
			message = domainerrors.ErrPaymentFailed.Message()
		}
		rep.failure(errors.Wrap(domainerrors.ErrPaymentFailed, message))

		return failAttempt(attempt, message), nil
	}

	attempt.Status = entity.AttemptRedirecting
	attempt.ApprovalURL = result.ApprovalURL
	f.logger.Info("paypal approval started", slog.Int64("order_id", req.OrderID))

	return attempt, nil
}

// handleReturn completes the attempt when the shopper returns from the
// approval page. A present token is taken as an approved payment; an
// absent one means the shopper cancelled.
func (f *paypalFlow) handleReturn(_ context.Context, orderID int64, token string, amount float64, rep *reporter) (*usecase.Attempt, error) {
	attempt := &usecase.Attempt{
		Method: entity.PaymentPaypal,
		Status: entity.AttemptProcessing,
	}

	if token == "" {
		rep.failure(errors.Wrap(domainerrors.ErrPaymentFailed, "approval cancelled"))

		return failAttempt(attempt, domainerrors.ErrPaymentFailed.Message()), nil
	}

	result := entity.PaymentResult{
		Method:        entity.PaymentPaypal,
		TransactionID: token,
		Amount:        amount,
	}
	rep.success(result)
	attempt.Status = entity.AttemptSuccess
	attempt.Result = &result
	f.logger.Info("paypal approval completed", slog.Int64("order_id", orderID))

	return attempt, nil
}
