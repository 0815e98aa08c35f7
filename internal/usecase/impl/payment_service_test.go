package impl

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Benmwania/ecomart/internal/domain/entity"
	domainerrors "github.com/Benmwania/ecomart/internal/domain/errors"
	"github.com/Benmwania/ecomart/internal/domain/gateway"
	"github.com/Benmwania/ecomart/internal/errors"
	"github.com/Benmwania/ecomart/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// outcomeRecorder counts callback invocations so tests can assert the
// single-report invariant.
type outcomeRecorder struct {
	successes atomic.Int32
	failures  atomic.Int32
	lastErr   error
	result    entity.PaymentResult
}

func (r *outcomeRecorder) callbacks() usecase.Callbacks {
	return usecase.Callbacks{
		OnSuccess: func(result entity.PaymentResult) {
			r.result = result
			r.successes.Add(1)
		},
		OnError: func(err error) {
			r.lastErr = err
			r.failures.Add(1)
		},
	}
}

func (r *outcomeRecorder) reports() int32 {
	return r.successes.Load() + r.failures.Load()
}

func newPaymentServiceForTest(payments *fakePaymentGateway, cards *fakeCardConfirmer) *paymentService {
	svc := NewPaymentService(payments, cards, newTestConfig(), newDiscardLogger()).(*paymentService)
	svc.sleep = instantSleeper

	return svc
}

func TestPaymentServiceRejectsUnsupportedMethodWithoutNetwork(t *testing.T) {
	t.Parallel()

	payments := &fakePaymentGateway{}
	svc := newPaymentServiceForTest(payments, &fakeCardConfirmer{})
	rec := &outcomeRecorder{}

	_, err := svc.Initiate(context.Background(), newTestSession(), usecase.PaymentRequest{
		Method:  entity.PaymentMethod("bitcoin"),
		OrderID: 1,
		Amount:  54.98,
	}, rec.callbacks())

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrUnsupportedPaymentMethod))
	assert.Zero(t, payments.networkCalls())
	assert.Zero(t, rec.reports())
}

func TestPaymentServiceRejectsInvalidPhoneWithoutNetwork(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		phone string
	}{
		{name: "too short", phone: "0712"},
		{name: "wrong prefix", phone: "0812345678"},
		{name: "letters", phone: "07abc45678"},
		{name: "empty", phone: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			payments := &fakePaymentGateway{}
			svc := newPaymentServiceForTest(payments, &fakeCardConfirmer{})
			rec := &outcomeRecorder{}

			attempt, err := svc.Initiate(context.Background(), newTestSession(), usecase.PaymentRequest{
				Method:      entity.PaymentMpesa,
				OrderID:     1,
				Amount:      54.98,
				PhoneNumber: tt.phone,
			}, rec.callbacks())

			require.NoError(t, err)
			assert.Equal(t, entity.AttemptFailed, attempt.Status)
			assert.Zero(t, payments.networkCalls())
			assert.Equal(t, int32(1), rec.failures.Load())
			assert.True(t, errors.Is(rec.lastErr, domainerrors.ErrInvalidPhoneNumber))
		})
	}
}

func TestPaymentServiceAcceptsKenyanPhoneFormats(t *testing.T) {
	t.Parallel()

	tests := []struct {
		phone      string
		normalized string
	}{
		{phone: "0712345678", normalized: "254712345678"},
		{phone: "712345678", normalized: "254712345678"},
		{phone: "254712345678", normalized: "254712345678"},
		{phone: "+254712345678", normalized: "254712345678"},
		{phone: "0112345678", normalized: "254112345678"},
	}

	for _, tt := range tests {
		t.Run(tt.phone, func(t *testing.T) {
			t.Parallel()

			payments := &fakePaymentGateway{
				mpesaStatusFn: func(string) (*entity.MpesaStatus, error) {
					return &entity.MpesaStatus{Status: "completed", TransactionID: "MPESA123"}, nil
				},
			}
			svc := newPaymentServiceForTest(payments, &fakeCardConfirmer{})
			rec := &outcomeRecorder{}

			attempt, err := svc.Initiate(context.Background(), newTestSession(), usecase.PaymentRequest{
				Method:      entity.PaymentMpesa,
				OrderID:     1,
				Amount:      54.98,
				PhoneNumber: tt.phone,
			}, rec.callbacks())

			require.NoError(t, err)
			assert.Equal(t, entity.AttemptSuccess, attempt.Status)
			assert.Equal(t, tt.normalized, payments.lastMpesaPhone)
			assert.Equal(t, tt.normalized, rec.result.PhoneNumber)
		})
	}
}

func TestMpesaPollSucceedsMidway(t *testing.T) {
	t.Parallel()

	var polls atomic.Int32
	payments := &fakePaymentGateway{
		mpesaStatusFn: func(string) (*entity.MpesaStatus, error) {
			if polls.Add(1) < 5 {
				return &entity.MpesaStatus{Status: "pending"}, nil
			}

			return &entity.MpesaStatus{Status: "completed", TransactionID: "MPESA123"}, nil
		},
	}
	svc := newPaymentServiceForTest(payments, &fakeCardConfirmer{})
	rec := &outcomeRecorder{}

	attempt, err := svc.Initiate(context.Background(), newTestSession(), usecase.PaymentRequest{
		Method:      entity.PaymentMpesa,
		OrderID:     1,
		Amount:      54.98,
		PhoneNumber: "0712345678",
	}, rec.callbacks())

	require.NoError(t, err)
	assert.Equal(t, entity.AttemptSuccess, attempt.Status)
	assert.Equal(t, int32(5), polls.Load())
	assert.Equal(t, int32(1), rec.successes.Load())
	assert.Equal(t, int32(0), rec.failures.Load())
	assert.Equal(t, "MPESA123", rec.result.TransactionID)
	assert.Equal(t, float64(6323), attempt.AmountKES)
}

func TestMpesaPollTimesOutAfterBudget(t *testing.T) {
	t.Parallel()

	payments := &fakePaymentGateway{
		mpesaStatusFn: func(string) (*entity.MpesaStatus, error) {
			return &entity.MpesaStatus{Status: "pending"}, nil
		},
	}
	svc := newPaymentServiceForTest(payments, &fakeCardConfirmer{})
	rec := &outcomeRecorder{}

	attempt, err := svc.Initiate(context.Background(), newTestSession(), usecase.PaymentRequest{
		Method:      entity.PaymentMpesa,
		OrderID:     1,
		Amount:      54.98,
		PhoneNumber: "0712345678",
	}, rec.callbacks())

	require.NoError(t, err)
	assert.Equal(t, entity.AttemptFailed, attempt.Status)
	assert.Equal(t, domainerrors.ErrPaymentTimeout.Message(), attempt.Error)
	assert.Equal(t, 30, payments.mpesaStatusCalls)
	assert.Equal(t, int32(1), rec.failures.Load())
	assert.True(t, errors.Is(rec.lastErr, domainerrors.ErrPaymentTimeout))
	assert.Equal(t, int32(1), rec.reports())
}

func TestMpesaPollToleratesTransientErrors(t *testing.T) {
	t.Parallel()

	var polls atomic.Int32
	payments := &fakePaymentGateway{
		mpesaStatusFn: func(string) (*entity.MpesaStatus, error) {
			if polls.Add(1) < 3 {
				return nil, errors.New("connection reset")
			}

			return &entity.MpesaStatus{Status: "completed", TransactionID: "MPESA456"}, nil
		},
	}
	svc := newPaymentServiceForTest(payments, &fakeCardConfirmer{})
	rec := &outcomeRecorder{}

	attempt, err := svc.Initiate(context.Background(), newTestSession(), usecase.PaymentRequest{
		Method:      entity.PaymentMpesa,
		OrderID:     1,
		Amount:      10,
		PhoneNumber: "0712345678",
	}, rec.callbacks())

	require.NoError(t, err)
	assert.Equal(t, entity.AttemptSuccess, attempt.Status)
	assert.Equal(t, int32(1), rec.successes.Load())
}

func TestMpesaPushFailureSurfacesBackendMessage(t *testing.T) {
	t.Parallel()

	payments := &fakePaymentGateway{
		initiateMpesaFn: func(int64, string) (*entity.InitiateResult, error) {
			return &entity.InitiateResult{Success: false, Error: "Insufficient funds"}, nil
		},
	}
	svc := newPaymentServiceForTest(payments, &fakeCardConfirmer{})
	rec := &outcomeRecorder{}

	attempt, err := svc.Initiate(context.Background(), newTestSession(), usecase.PaymentRequest{
		Method:      entity.PaymentMpesa,
		OrderID:     1,
		Amount:      10,
		PhoneNumber: "0712345678",
	}, rec.callbacks())

	require.NoError(t, err)
	assert.Equal(t, entity.AttemptFailed, attempt.Status)
	assert.Equal(t, "Insufficient funds", attempt.Error)
	assert.Zero(t, payments.mpesaStatusCalls)
	assert.Equal(t, int32(1), rec.failures.Load())
}

func TestCardRetryRequestsFreshIntent(t *testing.T) {
	t.Parallel()

	var intents atomic.Int32
	payments := &fakePaymentGateway{
		createIntentFn: func(int64) (*entity.InitiateResult, error) {
			n := intents.Add(1)
			if n == 1 {
				return &entity.InitiateResult{Success: true, ClientSecret: "pi_1_secret_a"}, nil
			}

			return &entity.InitiateResult{Success: true, ClientSecret: "pi_2_secret_b"}, nil
		},
	}
	cards := &fakeCardConfirmer{}
	cards.confirmFn = func(clientSecret, _ string) (*gateway.CardConfirmation, error) {
		if clientSecret == "pi_1_secret_a" {
			return nil, errors.New("card declined")
		}

		return &gateway.CardConfirmation{TransactionID: "pi_2", Status: "succeeded", Last4: "4242"}, nil
	}
	svc := newPaymentServiceForTest(payments, cards)
	session := newTestSession()

	first := &outcomeRecorder{}
	attempt, err := svc.Initiate(context.Background(), session, usecase.PaymentRequest{
		Method:             entity.PaymentCard,
		OrderID:            1,
		Amount:             54.98,
		PaymentMethodToken: "pm_tok",
	}, first.callbacks())
	require.NoError(t, err)
	assert.Equal(t, entity.AttemptFailed, attempt.Status)
	assert.Equal(t, int32(1), first.failures.Load())

	second := &outcomeRecorder{}
	attempt, err = svc.Initiate(context.Background(), session, usecase.PaymentRequest{
		Method:             entity.PaymentCard,
		OrderID:            1,
		Amount:             54.98,
		PaymentMethodToken: "pm_tok",
	}, second.callbacks())
	require.NoError(t, err)
	assert.Equal(t, entity.AttemptSuccess, attempt.Status)
	assert.Equal(t, "4242", attempt.Result.Last4)
	assert.Equal(t, int32(1), second.successes.Load())

	require.Len(t, cards.secrets, 2)
	assert.NotEqual(t, cards.secrets[0], cards.secrets[1])
	assert.Equal(t, 2, payments.createIntentCalls)
}

func TestPaymentSwitchCancelsInFlightPoll(t *testing.T) {
	t.Parallel()

	payments := &fakePaymentGateway{
		mpesaStatusFn: func(string) (*entity.MpesaStatus, error) {
			return &entity.MpesaStatus{Status: "pending"}, nil
		},
	}
	svc := newPaymentServiceForTest(payments, &fakeCardConfirmer{})
	// Block in the poll wait until cancellation.
	svc.sleep = func(ctx context.Context, _ time.Duration) error {
		<-ctx.Done()

		return ctx.Err()
	}
	session := newTestSession()
	mpesaRec := &outcomeRecorder{}

	done := make(chan error, 1)
	go func() {
		_, err := svc.Initiate(context.Background(), session, usecase.PaymentRequest{
			Method:      entity.PaymentMpesa,
			OrderID:     1,
			Amount:      54.98,
			PhoneNumber: "0712345678",
		}, mpesaRec.callbacks())
		done <- err
	}()

	require.Eventually(t, func() bool {
		payments.mu.Lock()
		defer payments.mu.Unlock()

		return payments.mpesaStatusCalls >= 1
	}, time.Second, time.Millisecond, "poll never started")

	cardRec := &outcomeRecorder{}
	attempt, err := svc.Initiate(context.Background(), session, usecase.PaymentRequest{
		Method:             entity.PaymentCard,
		OrderID:            1,
		Amount:             54.98,
		PaymentMethodToken: "pm_tok",
	}, cardRec.callbacks())
	require.NoError(t, err)
	assert.Equal(t, entity.AttemptSuccess, attempt.Status)

	select {
	case pollErr := <-done:
		require.Error(t, pollErr)
		assert.True(t, errors.Is(pollErr, context.Canceled))
	case <-time.After(time.Second):
		t.Fatal("abandoned poll did not stop")
	}

	// The abandoned attempt must not report; the card attempt reports once.
	assert.Zero(t, mpesaRec.reports())
	assert.Equal(t, int32(1), cardRec.successes.Load())
}

func TestPaypalStartAndReturn(t *testing.T) {
	t.Parallel()

	payments := &fakePaymentGateway{}
	svc := newPaymentServiceForTest(payments, &fakeCardConfirmer{})
	session := newTestSession()
	rec := &outcomeRecorder{}

	attempt, err := svc.Initiate(context.Background(), session, usecase.PaymentRequest{
		Method:  entity.PaymentPaypal,
		OrderID: 1,
		Amount:  54.98,
	}, rec.callbacks())
	require.NoError(t, err)
	assert.Equal(t, entity.AttemptRedirecting, attempt.Status)
	assert.Equal(t, "https://paypal.test/approve", attempt.ApprovalURL)
	assert.Zero(t, rec.reports(), "redirecting attempt must not report yet")

	attempt, err = svc.HandlePaypalReturn(context.Background(), session, 1, "EC-TOKEN-1", 54.98, rec.callbacks())
	require.NoError(t, err)
	assert.Equal(t, entity.AttemptSuccess, attempt.Status)
	assert.Equal(t, "EC-TOKEN-1", attempt.Result.TransactionID)
}

func TestPaypalReturnWithoutTokenFails(t *testing.T) {
	t.Parallel()

	svc := newPaymentServiceForTest(&fakePaymentGateway{}, &fakeCardConfirmer{})
	rec := &outcomeRecorder{}

	attempt, err := svc.HandlePaypalReturn(context.Background(), newTestSession(), 1, "", 54.98, rec.callbacks())
	require.NoError(t, err)
	assert.Equal(t, entity.AttemptFailed, attempt.Status)
	assert.Equal(t, int32(1), rec.failures.Load())
}

func TestPaymentServiceRequiresSession(t *testing.T) {
	t.Parallel()

	payments := &fakePaymentGateway{}
	svc := newPaymentServiceForTest(payments, &fakeCardConfirmer{})

	_, err := svc.Initiate(context.Background(), nil, usecase.PaymentRequest{
		Method:  entity.PaymentMpesa,
		OrderID: 1,
	}, usecase.Callbacks{})

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrLoginRequired))
	assert.Zero(t, payments.networkCalls())
}
