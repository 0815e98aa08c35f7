package impl

import (
	"context"
	"log/slog"

	deliverycontext "github.com/Benmwania/ecomart/internal/delivery/context"
	"github.com/Benmwania/ecomart/internal/domain/entity"
	domainerrors "github.com/Benmwania/ecomart/internal/domain/errors"
	"github.com/Benmwania/ecomart/internal/domain/gateway"
	"github.com/Benmwania/ecomart/internal/usecase"

	"github.com/pkg/errors"
)

const maxProductImages = 5

// sellerService implements the SellerUsecase interface.
type sellerService struct {
	seller gateway.SellerGateway
	logger *slog.Logger
}

// NewSellerService is the constructor for sellerService.
func NewSellerService(
	seller gateway.SellerGateway,
	logger *slog.Logger,
) usecase.SellerUsecase {
	return &sellerService{
		seller: seller,
		logger: logger,
	}
}

func (srv *sellerService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// guard rejects anonymous and non-seller sessions before any network
// call.
func (srv *sellerService) guard(ctx context.Context, session *entity.Session) (context.Context, error) {
	if session == nil {
		return ctx, errors.WithStack(domainerrors.ErrLoginRequired)
	}
	if !session.User.IsSeller() {
		return ctx, errors.WithStack(domainerrors.ErrSellerOnly)
	}

	return gateway.WithToken(ctx, session.Token), nil
}

func (srv *sellerService) Dashboard(ctx context.Context, session *entity.Session) (*gateway.DashboardSummary, error) {
	authCtx, err := srv.guard(ctx, session)
	if err != nil {
		return nil, err
	}

	summary, err := srv.seller.Dashboard(authCtx)
	if err != nil {
		return nil, errors.Wrap(err, "fetch dashboard")
	}

	return summary, nil
}

func (srv *sellerService) Products(ctx context.Context, session *entity.Session, status string) ([]entity.Product, error) {
	authCtx, err := srv.guard(ctx, session)
	if err != nil {
		return nil, err
	}

	products, err := srv.seller.Products(authCtx, status)
	if err != nil {
		return nil, errors.Wrap(err, "list seller products")
	}

	return products, nil
}

func (srv *sellerService) Product(ctx context.Context, session *entity.Session, id int64) (*entity.Product, error) {
	authCtx, err := srv.guard(ctx, session)
	if err != nil {
		return nil, err
	}

	product, err := srv.seller.Product(authCtx, id)
	if err != nil {
		if isBackendNotFound(err) {
			return nil, errors.Wrapf(domainerrors.ErrProductNotFound, "product %d", id)
		}

		return nil, errors.Wrap(err, "fetch seller product")
	}

	return product, nil
}

func (srv *sellerService) CreateProduct(ctx context.Context, session *entity.Session, form gateway.ProductForm) (*entity.Product, error) {
	authCtx, err := srv.guard(ctx, session)
	if err != nil {
		return nil, err
	}
	if len(form.Images) > maxProductImages {
		return nil, errors.Wrapf(domainerrors.ErrTooManyImages, "%d images", len(form.Images))
	}

	product, err := srv.seller.CreateProduct(authCtx, form)
	if err != nil {
		return nil, errors.Wrap(err, "create product")
	}
	srv.log(ctx).Info("product created", slog.Int64("product_id", product.ID), slog.String("name", product.Name))

	return product, nil
}

func (srv *sellerService) UpdateProduct(ctx context.Context, session *entity.Session, id int64, form gateway.ProductForm) (*entity.Product, error) {
	authCtx, err := srv.guard(ctx, session)
	if err != nil {
		return nil, err
	}
	if len(form.Images) > maxProductImages {
		return nil, errors.Wrapf(domainerrors.ErrTooManyImages, "%d images", len(form.Images))
	}

	product, err := srv.seller.UpdateProduct(authCtx, id, form)
	if err != nil {
		if isBackendNotFound(err) {
			return nil, errors.Wrapf(domainerrors.ErrProductNotFound, "product %d", id)
		}

		return nil, errors.Wrap(err, "update product")
	}

	return product, nil
}

func (srv *sellerService) DeleteProduct(ctx context.Context, session *entity.Session, id int64) error {
	authCtx, err := srv.guard(ctx, session)
	if err != nil {
		return err
	}

	if err := srv.seller.DeleteProduct(authCtx, id); err != nil {
		return errors.Wrap(err, "delete product")
	}
	srv.log(ctx).Info("product deleted", slog.Int64("product_id", id))

	return nil
}

func (srv *sellerService) Orders(ctx context.Context, session *entity.Session, status string) ([]entity.Order, error) {
	authCtx, err := srv.guard(ctx, session)
	if err != nil {
		return nil, err
	}

	orders, err := srv.seller.Orders(authCtx, status)
	if err != nil {
		return nil, errors.Wrap(err, "list seller orders")
	}

	return orders, nil
}

// UpdateOrderStatus rejects transitions the order progression does not
// allow before calling the backend.
func (srv *sellerService) UpdateOrderStatus(ctx context.Context, session *entity.Session, id int64, status entity.OrderStatus) (*entity.Order, error) {
	authCtx, err := srv.guard(ctx, session)
	if err != nil {
		return nil, err
	}

	orders, err := srv.seller.Orders(authCtx, "")
	if err != nil {
		return nil, errors.Wrap(err, "list seller orders")
	}

	var current *entity.Order
	for i := range orders {
		if orders[i].ID == id {
			current = &orders[i]

			break
		}
	}
	if current == nil {
		return nil, errors.Wrapf(domainerrors.ErrOrderNotFound, "order %d", id)
	}
	if !current.Status.CanAdvanceTo(status) {
		return nil, errors.Wrapf(domainerrors.ErrInvalidStatusChange, "%s to %s", current.Status, status)
	}

	updated, err := srv.seller.UpdateOrderStatus(authCtx, id, status)
	if err != nil {
		return nil, errors.Wrap(err, "update order status")
	}
	srv.log(ctx).Info("order status updated", slog.Int64("order_id", id), slog.String("status", string(status)))

	return updated, nil
}

func (srv *sellerService) Analytics(ctx context.Context, session *entity.Session, period string) (*gateway.Analytics, error) {
	authCtx, err := srv.guard(ctx, session)
	if err != nil {
		return nil, err
	}

	analytics, err := srv.seller.Analytics(authCtx, period)
	if err != nil {
		return nil, errors.Wrap(err, "fetch analytics")
	}

	return analytics, nil
}
