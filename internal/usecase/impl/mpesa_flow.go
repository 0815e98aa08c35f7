package impl

import (
	"context"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/Benmwania/ecomart/internal/domain/entity"
	domainerrors "github.com/Benmwania/ecomart/internal/domain/errors"
	"github.com/Benmwania/ecomart/internal/domain/gateway"
	"github.com/Benmwania/ecomart/internal/usecase"

	"github.com/pkg/errors"
)

// kenyanPhone accepts Safaricom-style numbers with or without the
// country code: 0712345678, 712345678, 254712345678, +254712345678.
var kenyanPhone = regexp.MustCompile(`^(?:254|\+254|0)?[17]\d{8}$`)

// mpesaFlow runs one M-Pesa attempt: validate the phone locally, push
// the STK prompt, then poll the transaction status a bounded number of
// times. The poll is cancellable through ctx.
type mpesaFlow struct {
	payments gateway.PaymentGateway
	attempts int
	interval time.Duration
	sleep    sleeper
	logger   *slog.Logger
}

func (f *mpesaFlow) run(ctx context.Context, req usecase.PaymentRequest, rep *reporter) (*usecase.Attempt, error) {
	attempt := &usecase.Attempt{
		Method: entity.PaymentMpesa,
		Status: entity.AttemptPending,
	}

	if !kenyanPhone.MatchString(req.PhoneNumber) {
		err := errors.WithStack(domainerrors.ErrInvalidPhoneNumber)
		rep.failure(err)

		return failAttempt(attempt, domainerrors.ErrInvalidPhoneNumber.Message()), nil
	}

	phone := normalizePhone(req.PhoneNumber)
	result, err := f.payments.InitiateMpesa(ctx, req.OrderID, phone)
	if err != nil {
		rep.failure(err)

		return failAttempt(attempt, paymentFailureMessage(err)), nil
	}
	if !result.Success {
		message := result.Error
		if message == "" {
			message = domainerrors.ErrPaymentFailed.Message()
		}
		rep.failure(errors.Wrap(domainerrors.ErrPaymentFailed, message))

		return failAttempt(attempt, message), nil
	}

	attempt.Status = entity.AttemptProcessing
	attempt.CheckoutRequestID = result.CheckoutRequestID
	f.logger.Info("mpesa push sent, polling for confirmation",
		slog.Int64("order_id", req.OrderID),
		slog.String("checkout_request_id", result.CheckoutRequestID),
	)

	return f.poll(ctx, req, phone, attempt, rep)
}

// poll watches the transaction until it completes, fails, or the
// attempt budget runs out. A cancelled ctx abandons the attempt without
// reporting; the replacing attempt owns the outcome from then on.
func (f *mpesaFlow) poll(ctx context.Context, req usecase.PaymentRequest, phone string, attempt *usecase.Attempt, rep *reporter) (*usecase.Attempt, error) {
	for i := 0; i < f.attempts; i++ {
		if err := ctx.Err(); err != nil {
			return nil, errors.Wrap(err, "mpesa poll cancelled")
		}

		status, err := f.payments.MpesaStatus(ctx, attempt.CheckoutRequestID)
		if err == nil {
			switch strings.ToLower(status.Status) {
			case "completed", "success", "successful":
				result := entity.PaymentResult{
					Method:        entity.PaymentMpesa,
					TransactionID: status.TransactionID,
					Amount:        req.Amount,
					PhoneNumber:   phone,
				}
				rep.success(result)
				attempt.Status = entity.AttemptSuccess
				attempt.Result = &result

				return attempt, nil
			case "failed", "cancelled":
				rep.failure(errors.WithStack(domainerrors.ErrPaymentFailed))

				return failAttempt(attempt, domainerrors.ErrPaymentFailed.Message()), nil
			}
		} else {
			// Transient poll errors do not consume the outcome; keep
			// polling until the budget runs out.
			f.logger.Warn("mpesa status poll failed", slog.Any("error", err), slog.Int("attempt", i+1))
		}

		if err := f.sleep(ctx, f.interval); err != nil {
			return nil, errors.Wrap(err, "mpesa poll cancelled")
		}
	}

	rep.failure(errors.WithStack(domainerrors.ErrPaymentTimeout))

	return failAttempt(attempt, domainerrors.ErrPaymentTimeout.Message()), nil
}

// normalizePhone rewrites an accepted phone number to the canonical
// 254XXXXXXXXX form.
func normalizePhone(phone string) string {
	phone = strings.TrimPrefix(phone, "+")
	if strings.HasPrefix(phone, "254") {
		return phone
	}
	if strings.HasPrefix(phone, "0") {
		return "254" + phone[1:]
	}

	return "254" + phone
}

func failAttempt(attempt *usecase.Attempt, message string) *usecase.Attempt {
	attempt.Status = entity.AttemptFailed
	attempt.Error = message

	return attempt
}

// paymentFailureMessage surfaces the backend's own message when it has
// one, otherwise the generic payment failure text.
func paymentFailureMessage(err error) string {
	var backendErr *domainerrors.BackendError
	if errors.As(err, &backendErr) && backendErr.Message() != "" {
		return backendErr.Message()
	}

	return domainerrors.ErrPaymentFailed.Message()
}
