package backend

import (
	"context"
	"fmt"
	"net/http"

	"github.com/Benmwania/ecomart/internal/domain/entity"
	"github.com/Benmwania/ecomart/internal/domain/gateway"
	"github.com/Benmwania/ecomart/internal/errors"
)

// OrderGateway implements gateway.OrderGateway over the /orders/orders
// resource.
type OrderGateway struct {
	client *Client
}

// NewOrderGateway creates the order gateway.
func NewOrderGateway(client *Client) gateway.OrderGateway {
	return &OrderGateway{client: client}
}

func (g *OrderGateway) Orders(ctx context.Context) ([]entity.Order, error) {
	orders, _, err := getList[entity.Order](ctx, g.client, "/orders/orders/", nil)
	if err != nil {
		return nil, errors.Wrap(err, "list orders")
	}

	return orders, nil
}

func (g *OrderGateway) Order(ctx context.Context, id int64) (*entity.Order, error) {
	var order entity.Order
	path := fmt.Sprintf("/orders/orders/%d/", id)
	if err := g.client.do(ctx, http.MethodGet, path, nil, nil, &order); err != nil {
		return nil, errors.Wrapf(err, "fetch order %d", id)
	}

	return &order, nil
}

func (g *OrderGateway) Create(ctx context.Context, input gateway.CreateOrderInput) (*entity.Order, error) {
	var order entity.Order
	if err := g.client.do(ctx, http.MethodPost, "/orders/orders/", nil, input, &order); err != nil {
		return nil, errors.Wrap(err, "create order")
	}

	return &order, nil
}

func (g *OrderGateway) Cancel(ctx context.Context, id int64) (*entity.Order, error) {
	var order entity.Order
	path := fmt.Sprintf("/orders/orders/%d/cancel/", id)
	if err := g.client.do(ctx, http.MethodPost, path, nil, nil, &order); err != nil {
		return nil, errors.Wrapf(err, "cancel order %d", id)
	}

	return &order, nil
}
