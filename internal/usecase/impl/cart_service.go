package impl

import (
	"context"
	"log/slog"
	"sync"

	"github.com/Benmwania/ecomart/config"
	deliverycontext "github.com/Benmwania/ecomart/internal/delivery/context"
	"github.com/Benmwania/ecomart/internal/domain/entity"
	domainerrors "github.com/Benmwania/ecomart/internal/domain/errors"
	"github.com/Benmwania/ecomart/internal/domain/gateway"
	"github.com/Benmwania/ecomart/internal/usecase"

	"github.com/pkg/errors"
)

// cartService implements the CartUsecase interface. A single mutex
// serializes cart mutations so two concurrent adds cannot interleave
// their mutate-then-refetch cycles.
type cartService struct {
	carts  gateway.CartGateway
	cfg    *config.Config
	logger *slog.Logger

	mu sync.Mutex
}

// NewCartService is the constructor for cartService.
func NewCartService(
	carts gateway.CartGateway,
	cfg *config.Config,
	logger *slog.Logger,
) usecase.CartUsecase {
	return &cartService{
		carts:  carts,
		cfg:    cfg,
		logger: logger,
	}
}

func (srv *cartService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// View fetches the cart and computes the storefront totals.
func (srv *cartService) View(ctx context.Context, session *entity.Session) (*usecase.CartView, error) {
	if session == nil {
		return nil, errors.WithStack(domainerrors.ErrLoginRequired)
	}

	return srv.fetch(ctx, session)
}

// AddItem adds a product to the cart and returns the refreshed view.
func (srv *cartService) AddItem(ctx context.Context, session *entity.Session, productID int64, quantity int) (*usecase.CartView, error) {
	if session == nil {
		return nil, errors.WithStack(domainerrors.ErrLoginRequired)
	}

	srv.mu.Lock()
	defer srv.mu.Unlock()

	authCtx := gateway.WithToken(ctx, session.Token)
	if err := srv.carts.AddItem(authCtx, productID, quantity); err != nil {
		return nil, errors.Wrap(err, "add cart item")
	}
	srv.log(ctx).Debug("cart item added", slog.Int64("product_id", productID), slog.Int("quantity", quantity))

	return srv.fetch(ctx, session)
}

// UpdateItem changes an item's quantity and returns the refreshed view.
func (srv *cartService) UpdateItem(ctx context.Context, session *entity.Session, productID int64, quantity int) (*usecase.CartView, error) {
	if session == nil {
		return nil, errors.WithStack(domainerrors.ErrLoginRequired)
	}

	srv.mu.Lock()
	defer srv.mu.Unlock()

	authCtx := gateway.WithToken(ctx, session.Token)
	if err := srv.carts.UpdateItem(authCtx, productID, quantity); err != nil {
		return nil, errors.Wrap(err, "update cart item")
	}

	return srv.fetch(ctx, session)
}

// RemoveItem removes a product from the cart and returns the refreshed view.
func (srv *cartService) RemoveItem(ctx context.Context, session *entity.Session, productID int64) (*usecase.CartView, error) {
	if session == nil {
		return nil, errors.WithStack(domainerrors.ErrLoginRequired)
	}

	srv.mu.Lock()
	defer srv.mu.Unlock()

	authCtx := gateway.WithToken(ctx, session.Token)
	if err := srv.carts.RemoveItem(authCtx, productID); err != nil {
		return nil, errors.Wrap(err, "remove cart item")
	}

	return srv.fetch(ctx, session)
}

// Clear empties the cart.
func (srv *cartService) Clear(ctx context.Context, session *entity.Session) error {
	if session == nil {
		return errors.WithStack(domainerrors.ErrLoginRequired)
	}

	srv.mu.Lock()
	defer srv.mu.Unlock()

	authCtx := gateway.WithToken(ctx, session.Token)
	if err := srv.carts.Clear(authCtx); err != nil {
		return errors.Wrap(err, "clear cart")
	}

	return nil
}

// fetch loads the backend cart, the single source of truth, and
// computes the price breakdown shared with the checkout.
func (srv *cartService) fetch(ctx context.Context, session *entity.Session) (*usecase.CartView, error) {
	authCtx := gateway.WithToken(ctx, session.Token)
	cart, err := srv.carts.Cart(authCtx)
	if err != nil {
		srv.log(ctx).Error("failed to load cart", slog.Any("error", err))

		return nil, errors.Wrap(domainerrors.ErrCartUnavailable, err.Error())
	}

	return &usecase.CartView{
		Cart:    cart,
		Pricing: entity.NewPriceBreakdown(cart.Subtotal, srv.cfg.Pricing.ShippingFee, srv.cfg.Pricing.TaxRate),
	}, nil
}
