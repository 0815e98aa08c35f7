package entity

import "math"

// PriceBreakdown is the storefront's order pricing. Both the cart view
// and the checkout compute their totals through NewPriceBreakdown so the
// two surfaces can never disagree.
type PriceBreakdown struct {
	Subtotal float64 `json:"subtotal"`
	Shipping float64 `json:"shipping"`
	Tax      float64 `json:"tax"`
	Total    float64 `json:"total"`
}

// NewPriceBreakdown computes total = subtotal + shippingFee + subtotal*taxRate,
// rounded to cents.
func NewPriceBreakdown(subtotal, shippingFee, taxRate float64) PriceBreakdown {
	tax := roundCents(subtotal * taxRate)

	return PriceBreakdown{
		Subtotal: roundCents(subtotal),
		Shipping: roundCents(shippingFee),
		Tax:      tax,
		Total:    roundCents(subtotal + shippingFee + tax),
	}
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
