package entity

// Cart is the authenticated user's shopping cart. The backend is the
// single source of truth; the storefront re-fetches it after every
// mutation and never mutates it locally.
type Cart struct {
	ID         int64      `json:"id"`
	Items      []CartItem `json:"items"`
	TotalItems int        `json:"total_items"`
	Subtotal   float64    `json:"subtotal"`
}

// CartItem is one product line in the cart.
type CartItem struct {
	ID         int64   `json:"id"`
	Product    Product `json:"product"`
	Quantity   int     `json:"quantity"`
	TotalPrice float64 `json:"total_price"`
}

// Empty reports whether the cart has no items.
func (c *Cart) Empty() bool {
	return c == nil || len(c.Items) == 0
}
