package backend

import (
	"context"
	"fmt"
	"net/http"

	"github.com/Benmwania/ecomart/internal/domain/entity"
	"github.com/Benmwania/ecomart/internal/domain/gateway"
	"github.com/Benmwania/ecomart/internal/errors"
)

// CartGateway implements gateway.CartGateway over the /orders/cart
// resource.
type CartGateway struct {
	client *Client
}

// NewCartGateway creates the cart gateway.
func NewCartGateway(client *Client) gateway.CartGateway {
	return &CartGateway{client: client}
}

func (g *CartGateway) Cart(ctx context.Context) (*entity.Cart, error) {
	var cart entity.Cart
	if err := g.client.do(ctx, http.MethodGet, "/orders/cart/", nil, nil, &cart); err != nil {
		return nil, errors.Wrap(err, "fetch cart")
	}

	return &cart, nil
}

func (g *CartGateway) AddItem(ctx context.Context, productID int64, quantity int) error {
	body := map[string]any{
		"product_id": productID,
		"quantity":   quantity,
	}
	if err := g.client.do(ctx, http.MethodPost, "/orders/cart/items/", nil, body, nil); err != nil {
		return errors.Wrapf(err, "add product %d to cart", productID)
	}

	return nil
}

func (g *CartGateway) UpdateItem(ctx context.Context, productID int64, quantity int) error {
	body := map[string]any{"quantity": quantity}
	path := fmt.Sprintf("/orders/cart/items/%d/", productID)
	if err := g.client.do(ctx, http.MethodPut, path, nil, body, nil); err != nil {
		return errors.Wrapf(err, "update cart item %d", productID)
	}

	return nil
}

func (g *CartGateway) RemoveItem(ctx context.Context, productID int64) error {
	path := fmt.Sprintf("/orders/cart/items/%d/", productID)
	if err := g.client.do(ctx, http.MethodDelete, path, nil, nil, nil); err != nil {
		return errors.Wrapf(err, "remove cart item %d", productID)
	}

	return nil
}

func (g *CartGateway) Clear(ctx context.Context) error {
	if err := g.client.do(ctx, http.MethodDelete, "/orders/cart/clear/", nil, nil, nil); err != nil {
		return errors.Wrap(err, "clear cart")
	}

	return nil
}
