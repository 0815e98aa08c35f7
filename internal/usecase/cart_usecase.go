package usecase

import (
	"context"

	"github.com/Benmwania/ecomart/internal/domain/entity"
)

// CartView is the cart plus the storefront's computed totals. The same
// breakdown feeds the checkout so the two surfaces always agree.
type CartView struct {
	Cart    *entity.Cart          `json:"cart"`
	Pricing entity.PriceBreakdown `json:"pricing"`
}

// CartUsecase fronts the backend cart for an authenticated session.
// Every method requires a non-nil session and fails with
// ErrLoginRequired before touching the network otherwise. Mutations on
// the same session are serialized.
type CartUsecase interface {
	View(ctx context.Context, session *entity.Session) (*CartView, error)
	AddItem(ctx context.Context, session *entity.Session, productID int64, quantity int) (*CartView, error)
	UpdateItem(ctx context.Context, session *entity.Session, productID int64, quantity int) (*CartView, error)
	RemoveItem(ctx context.Context, session *entity.Session, productID int64) (*CartView, error)
	Clear(ctx context.Context, session *entity.Session) error
}
