package entity

import "time"

// Session is a storefront browser session. It binds a bearer token
// issued by the backend to a cached user profile and the in-progress
// checkout, and is the unit of persistence in the session store.
type Session struct {
	ID        string    `json:"id"`
	Token     string    `json:"token"`
	User      *User     `json:"user"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`

	// Checkout holds the wizard state for this session, nil until the
	// user enters checkout.
	Checkout *CheckoutState `json:"checkout,omitempty"`
}

// Expired reports whether the session has outlived its token.
func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && now.After(s.ExpiresAt)
}
