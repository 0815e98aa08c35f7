package usecase

import (
	"context"

	"github.com/Benmwania/ecomart/internal/domain/entity"
)

// PaymentRequest describes one payment attempt against an existing
// backend order.
type PaymentRequest struct {
	Method  entity.PaymentMethod
	OrderID int64
	Amount  float64
	// PhoneNumber is required for M-Pesa.
	PhoneNumber string
	// PaymentMethodToken is the opaque provider token required for card
	// payments. Raw card data never reaches this service.
	PaymentMethodToken string
}

// Callbacks receive the outcome of a payment attempt. For every attempt
// that reaches a terminal state, exactly one of the two is invoked,
// exactly once.
type Callbacks struct {
	OnSuccess func(result entity.PaymentResult)
	OnError   func(err error)
}

// Attempt is the observable state of one payment attempt.
type Attempt struct {
	Method entity.PaymentMethod `json:"method"`
	Status entity.AttemptStatus `json:"status"`
	Error  string               `json:"error,omitempty"`

	// Result is set once the attempt succeeds.
	Result *entity.PaymentResult `json:"result,omitempty"`

	// ApprovalURL is set for a PayPal attempt awaiting redirect.
	ApprovalURL string `json:"approval_url,omitempty"`
	// CheckoutRequestID identifies an in-flight M-Pesa push.
	CheckoutRequestID string `json:"checkout_request_id,omitempty"`

	// AmountKES is the display-only M-Pesa amount converted at the
	// configured fixed rate.
	AmountKES float64 `json:"amount_kes,omitempty"`
}

// PaymentUsecase orchestrates payment attempts across the supported
// methods. Initiating a new attempt for a session cancels any attempt
// still in flight for it, so switching methods mid-payment can never
// produce a late report from the abandoned flow.
type PaymentUsecase interface {
	// Initiate validates the request locally, then runs the requested
	// flow. M-Pesa and card attempts run to a terminal state before
	// returning; a PayPal attempt returns in the redirecting state with
	// its approval URL.
	Initiate(ctx context.Context, session *entity.Session, req PaymentRequest, cb Callbacks) (*Attempt, error)
	// HandlePaypalReturn completes a PayPal attempt when the shopper
	// comes back from the approval page.
	HandlePaypalReturn(ctx context.Context, session *entity.Session, orderID int64, token string, amount float64, cb Callbacks) (*Attempt, error)
	// CancelPending cancels any in-flight attempt for the session.
	CancelPending(sessionID string)
}
