// Package gateway defines the interfaces over the remote EcoMart
// backend and the storefront's own infrastructure. The usecase layer
// depends on these contracts, never on concrete HTTP or Redis clients.
package gateway

import "context"

type tokenKey struct{}

// WithToken returns a context carrying the session's bearer token so
// backend gateways can attach it to outgoing requests.
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey{}, token)
}

// TokenFromContext extracts the bearer token, if any.
func TokenFromContext(ctx context.Context) string {
	token, _ := ctx.Value(tokenKey{}).(string)

	return token
}
