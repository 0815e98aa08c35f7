package gateway

import (
	"context"

	"github.com/Benmwania/ecomart/internal/domain/entity"
)

// CreateOrderInput asks the backend to turn the session's cart into an
// order shipped to the given address.
type CreateOrderInput struct {
	ShippingAddress entity.ShippingAddress `json:"shipping_address"`
}

// OrderGateway fronts the backend's /orders/orders resource. Every
// method requires a token in ctx.
type OrderGateway interface {
	Orders(ctx context.Context) ([]entity.Order, error)
	Order(ctx context.Context, id int64) (*entity.Order, error)
	Create(ctx context.Context, input CreateOrderInput) (*entity.Order, error)
	Cancel(ctx context.Context, id int64) (*entity.Order, error)
}
