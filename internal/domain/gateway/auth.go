package gateway

import (
	"context"

	"github.com/Benmwania/ecomart/internal/domain/entity"
)

// Credentials is the login payload sent to the backend.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Registration is the sign-up payload sent to the backend.
type Registration struct {
	Username     string `json:"username"`
	Email        string `json:"email"`
	Password     string `json:"password"`
	UserType     string `json:"user_type"`
	PhoneNumber  string `json:"phone_number,omitempty"`
	FirstName    string `json:"first_name,omitempty"`
	LastName     string `json:"last_name,omitempty"`
	BusinessName string `json:"business_name,omitempty"`
}

// ProfileUpdate carries the editable profile fields. Nil pointers are
// left untouched by the backend.
type ProfileUpdate struct {
	Username    *string `json:"username,omitempty"`
	PhoneNumber *string `json:"phone_number,omitempty"`
	FirstName   *string `json:"first_name,omitempty"`
	LastName    *string `json:"last_name,omitempty"`
	Avatar      *string `json:"avatar,omitempty"`
}

// TokenPair is the backend's token grant.
type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh,omitempty"`
}

// AuthGateway fronts the backend's /auth resource.
type AuthGateway interface {
	Login(ctx context.Context, creds Credentials) (*TokenPair, error)
	Register(ctx context.Context, reg Registration) (*TokenPair, error)
	// Profile and UpdateProfile require a token in ctx (see WithToken).
	Profile(ctx context.Context) (*entity.User, error)
	UpdateProfile(ctx context.Context, update ProfileUpdate) (*entity.User, error)
}
