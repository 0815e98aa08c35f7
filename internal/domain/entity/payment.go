package entity

// PaymentMethod identifies one of the supported payment providers.
type PaymentMethod string

const (
	PaymentMpesa  PaymentMethod = "mpesa"
	PaymentPaypal PaymentMethod = "paypal"
	PaymentCard   PaymentMethod = "card"
)

// Valid reports whether m is a supported method.
func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentMpesa, PaymentPaypal, PaymentCard:
		return true
	}

	return false
}

// AttemptStatus is the client-side state of one payment attempt. This is
// the only state machine the storefront owns end to end.
type AttemptStatus string

const (
	AttemptIdle        AttemptStatus = "idle"
	AttemptPending     AttemptStatus = "pending"
	AttemptProcessing  AttemptStatus = "processing"
	AttemptRedirecting AttemptStatus = "redirecting"
	AttemptSuccess     AttemptStatus = "success"
	AttemptFailed      AttemptStatus = "failed"
)

// Terminal reports whether the attempt has finished.
func (s AttemptStatus) Terminal() bool {
	return s == AttemptSuccess || s == AttemptFailed
}

// InitiateResult is the provider-specific handle returned by the
// backend when a payment is initiated. Exactly one of the handle fields
// is populated depending on the method.
type InitiateResult struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
	Message string `json:"message,omitempty"`

	// ClientSecret is set for card payments.
	ClientSecret string `json:"client_secret,omitempty"`
	// CheckoutRequestID is set for M-Pesa payments.
	CheckoutRequestID string `json:"checkout_request_id,omitempty"`
	// ApprovalURL is set for PayPal payments.
	ApprovalURL string `json:"approval_url,omitempty"`
}

// PaymentResult is the normalized outcome reported exactly once per
// successful attempt.
type PaymentResult struct {
	Method        PaymentMethod `json:"method"`
	TransactionID string        `json:"transaction_id"`
	Amount        float64       `json:"amount"`
	PhoneNumber   string        `json:"phone_number,omitempty"`
	Last4         string        `json:"last4,omitempty"`
}

// MpesaStatus is one observation of an in-flight M-Pesa transaction.
type MpesaStatus struct {
	Status        string `json:"status"`
	TransactionID string `json:"transaction_id,omitempty"`
}
