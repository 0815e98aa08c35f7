// Package delivery defines the contract every transport (HTTP, worker)
// must satisfy so the application can start them uniformly.
package delivery

import "context"

// Delivery is a long-running transport serving the storefront.
type Delivery interface {
	Serve(ctx context.Context) error
}
