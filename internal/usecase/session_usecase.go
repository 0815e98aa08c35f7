// Package usecase defines the storefront's application services as
// interfaces plus their request/response types. Implementations live in
// usecase/impl.
package usecase

import (
	"context"

	"github.com/Benmwania/ecomart/internal/domain/entity"
)

// LoginInput is the login form.
type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RegisterInput is the sign-up form. UserType defaults to customer.
type RegisterInput struct {
	Username     string `json:"username" validate:"required"`
	Email        string `json:"email" validate:"required,email"`
	Password     string `json:"password" validate:"required,min=8"`
	UserType     string `json:"user_type" validate:"omitempty,oneof=customer seller"`
	PhoneNumber  string `json:"phone_number" validate:"omitempty,mpesa_phone"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	BusinessName string `json:"business_name"`
}

// ProfileUpdateInput carries the editable profile fields. Nil pointers
// are left untouched.
type ProfileUpdateInput struct {
	Username    *string `json:"username,omitempty"`
	PhoneNumber *string `json:"phone_number,omitempty" validate:"omitempty,mpesa_phone"`
	FirstName   *string `json:"first_name,omitempty"`
	LastName    *string `json:"last_name,omitempty"`
	Avatar      *string `json:"avatar,omitempty"`
}

// SessionUsecase owns the storefront session lifecycle: exchanging
// credentials for backend tokens, caching the profile, and persisting
// the session across requests.
type SessionUsecase interface {
	Login(ctx context.Context, input LoginInput) (*entity.Session, error)
	Register(ctx context.Context, input RegisterInput) (*entity.Session, error)
	// Current resolves a session id to a live session, or
	// ErrSessionExpired / ErrLoginRequired.
	Current(ctx context.Context, sessionID string) (*entity.Session, error)
	Logout(ctx context.Context, sessionID string) error
	UpdateProfile(ctx context.Context, session *entity.Session, input ProfileUpdateInput) (*entity.Session, error)
	// Save persists session mutations made by other services (checkout
	// state, cached profile).
	Save(ctx context.Context, session *entity.Session) error
}
