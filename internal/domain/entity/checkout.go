package entity

// CheckoutStep is the wizard position: shipping, then payment, then review.
type CheckoutStep string

const (
	StepShipping CheckoutStep = "shipping"
	StepPayment  CheckoutStep = "payment"
	StepReview   CheckoutStep = "review"
)

// CheckoutState is the per-session checkout wizard. PaymentCompleted is
// an orthogonal latch: once set, the payment step renders as a
// confirmation regardless of the wizard step.
type CheckoutState struct {
	Step             CheckoutStep     `json:"step"`
	Shipping         *ShippingAddress `json:"shipping,omitempty"`
	PaymentCompleted bool             `json:"payment_completed"`
	Payment          *PaymentResult   `json:"payment,omitempty"`

	// OrderID and OrderNumber are set once the backend order has been
	// created for this checkout.
	OrderID     int64  `json:"order_id,omitempty"`
	OrderNumber string `json:"order_number,omitempty"`

	// CheckoutRequestID tracks an in-flight M-Pesa push so a retry can
	// clear it.
	CheckoutRequestID string `json:"checkout_request_id,omitempty"`
}

// NewCheckoutState starts a fresh wizard at the shipping step.
func NewCheckoutState() *CheckoutState {
	return &CheckoutState{Step: StepShipping}
}
