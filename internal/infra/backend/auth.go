package backend

import (
	"context"
	"net/http"

	"github.com/Benmwania/ecomart/internal/domain/entity"
	"github.com/Benmwania/ecomart/internal/domain/gateway"
	"github.com/Benmwania/ecomart/internal/errors"
)

// AuthGateway implements gateway.AuthGateway over the /auth resource.
type AuthGateway struct {
	client *Client
}

// NewAuthGateway creates the auth gateway.
func NewAuthGateway(client *Client) gateway.AuthGateway {
	return &AuthGateway{client: client}
}

func (g *AuthGateway) Login(ctx context.Context, creds gateway.Credentials) (*gateway.TokenPair, error) {
	var tokens gateway.TokenPair
	if err := g.client.do(ctx, http.MethodPost, "/auth/login/", nil, creds, &tokens); err != nil {
		return nil, errors.Wrap(err, "login")
	}

	return &tokens, nil
}

func (g *AuthGateway) Register(ctx context.Context, reg gateway.Registration) (*gateway.TokenPair, error) {
	var tokens gateway.TokenPair
	if err := g.client.do(ctx, http.MethodPost, "/auth/register/", nil, reg, &tokens); err != nil {
		return nil, errors.Wrap(err, "register")
	}

	return &tokens, nil
}

func (g *AuthGateway) Profile(ctx context.Context) (*entity.User, error) {
	var user entity.User
	if err := g.client.do(ctx, http.MethodGet, "/auth/profile/", nil, nil, &user); err != nil {
		return nil, errors.Wrap(err, "fetch profile")
	}

	return &user, nil
}

func (g *AuthGateway) UpdateProfile(ctx context.Context, update gateway.ProfileUpdate) (*entity.User, error) {
	var user entity.User
	if err := g.client.do(ctx, http.MethodPut, "/auth/profile/update/", nil, update, &user); err != nil {
		return nil, errors.Wrap(err, "update profile")
	}

	return &user, nil
}
