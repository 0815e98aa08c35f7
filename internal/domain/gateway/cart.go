package gateway

import (
	"context"

	"github.com/Benmwania/ecomart/internal/domain/entity"
)

// CartGateway fronts the backend's /orders/cart resource. Every method
// requires a token in ctx.
type CartGateway interface {
	Cart(ctx context.Context) (*entity.Cart, error)
	AddItem(ctx context.Context, productID int64, quantity int) error
	UpdateItem(ctx context.Context, productID int64, quantity int) error
	RemoveItem(ctx context.Context, productID int64) error
	Clear(ctx context.Context) error
}
