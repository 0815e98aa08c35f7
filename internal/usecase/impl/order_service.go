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

// orderService implements the OrderUsecase interface.
type orderService struct {
	orders gateway.OrderGateway
	logger *slog.Logger
}

// NewOrderService is the constructor for orderService.
func NewOrderService(
	orders gateway.OrderGateway,
	logger *slog.Logger,
) usecase.OrderUsecase {
	return &orderService{
		orders: orders,
		logger: logger,
	}
}

func (srv *orderService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Orders lists the session user's order history.
func (srv *orderService) Orders(ctx context.Context, session *entity.Session) ([]entity.Order, error) {
	if session == nil {
		return nil, errors.WithStack(domainerrors.ErrLoginRequired)
	}

	authCtx := gateway.WithToken(ctx, session.Token)
	orders, err := srv.orders.Orders(authCtx)
	if err != nil {
		return nil, errors.Wrap(err, "list orders")
	}

	return orders, nil
}

// Order fetches one of the session user's orders.
func (srv *orderService) Order(ctx context.Context, session *entity.Session, id int64) (*entity.Order, error) {
	if session == nil {
		return nil, errors.WithStack(domainerrors.ErrLoginRequired)
	}

	authCtx := gateway.WithToken(ctx, session.Token)
	order, err := srv.orders.Order(authCtx, id)
	if err != nil {
		if isBackendNotFound(err) {
			return nil, errors.Wrapf(domainerrors.ErrOrderNotFound, "order %d", id)
		}

		return nil, errors.Wrap(err, "fetch order")
	}

	return order, nil
}

// Cancel cancels an order while it is still pending or confirmed.
func (srv *orderService) Cancel(ctx context.Context, session *entity.Session, id int64) (*entity.Order, error) {
	order, err := srv.Order(ctx, session, id)
	if err != nil {
		return nil, err
	}

	if order.Status != entity.OrderPending && order.Status != entity.OrderConfirmed {
		return nil, errors.Wrapf(domainerrors.ErrOrderNotCancellable, "order %d is %s", id, order.Status)
	}

	authCtx := gateway.WithToken(ctx, session.Token)
	cancelled, err := srv.orders.Cancel(authCtx, id)
	if err != nil {
		return nil, errors.Wrap(err, "cancel order")
	}
	srv.log(ctx).Info("order cancelled", slog.Int64("order_id", id))

	return cancelled, nil
}
