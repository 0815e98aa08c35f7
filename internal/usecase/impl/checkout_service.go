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

// checkoutService implements the CheckoutUsecase interface. The guards
// on session and cart run on every call, so a cart emptied in another
// tab is caught mid-wizard, not just on entry.
type checkoutService struct {
	carts    usecase.CartUsecase
	orders   gateway.OrderGateway
	payments usecase.PaymentUsecase
	sessions usecase.SessionUsecase
	logger   *slog.Logger
}

// NewCheckoutService is the constructor for checkoutService.
func NewCheckoutService(
	carts usecase.CartUsecase,
	orders gateway.OrderGateway,
	payments usecase.PaymentUsecase,
	sessions usecase.SessionUsecase,
	logger *slog.Logger,
) usecase.CheckoutUsecase {
	return &checkoutService{
		carts:    carts,
		orders:   orders,
		payments: payments,
		sessions: sessions,
		logger:   logger,
	}
}

func (srv *checkoutService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Begin enters the wizard, creating fresh checkout state if none exists.
func (srv *checkoutService) Begin(ctx context.Context, session *entity.Session) (*usecase.CheckoutView, error) {
	view, err := srv.guard(ctx, session)
	if err != nil {
		return nil, err
	}

	if session.Checkout == nil {
		session.Checkout = entity.NewCheckoutState()
		if err := srv.sessions.Save(ctx, session); err != nil {
			return nil, err
		}
	}

	return srv.view(session, view, nil), nil
}

// SubmitShipping stores the address and advances to the payment step.
func (srv *checkoutService) SubmitShipping(ctx context.Context, session *entity.Session, input usecase.ShippingInput) (*usecase.CheckoutView, error) {
	view, err := srv.guard(ctx, session)
	if err != nil {
		return nil, err
	}

	state := srv.state(session)
	state.Shipping = &entity.ShippingAddress{
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Address:   input.Address,
		City:      input.City,
		State:     input.State,
		ZipCode:   input.ZipCode,
		Country:   input.Country,
	}
	state.Step = entity.StepPayment

	if err := srv.sessions.Save(ctx, session); err != nil {
		return nil, err
	}

	return srv.view(session, view, nil), nil
}

// SubmitPayment creates the backend order for this checkout if needed,
// then runs the payment attempt. On success the wizard advances to
// review.
func (srv *checkoutService) SubmitPayment(ctx context.Context, session *entity.Session, input usecase.PaymentInput) (*usecase.CheckoutView, error) {
	view, err := srv.guard(ctx, session)
	if err != nil {
		return nil, err
	}

	state := srv.state(session)
	if state.Shipping == nil {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed, "shipping step not completed")
	}

	if err := srv.ensureOrder(ctx, session, state); err != nil {
		return nil, err
	}

	attempt, err := srv.payments.Initiate(ctx, session, usecase.PaymentRequest{
		Method:             input.Method,
		OrderID:            state.OrderID,
		Amount:             view.Pricing.Total,
		PhoneNumber:        input.PhoneNumber,
		PaymentMethodToken: input.PaymentMethodToken,
	}, srv.callbacks(ctx, session, state))
	if err != nil {
		return nil, err
	}

	state.CheckoutRequestID = attempt.CheckoutRequestID
	if err := srv.sessions.Save(ctx, session); err != nil {
		return nil, err
	}

	return srv.view(session, view, attempt), nil
}

// HandlePaypalReturn completes a redirect-based payment when the
// shopper returns with the provider token.
func (srv *checkoutService) HandlePaypalReturn(ctx context.Context, session *entity.Session, token string) (*usecase.CheckoutView, error) {
	view, err := srv.guard(ctx, session)
	if err != nil {
		return nil, err
	}

	state := srv.state(session)
	if state.OrderID == 0 {
		return nil, errors.Wrap(domainerrors.ErrPaymentNotReady, "no order for this checkout")
	}

	attempt, err := srv.payments.HandlePaypalReturn(ctx, session, state.OrderID, token, view.Pricing.Total, srv.callbacks(ctx, session, state))
	if err != nil {
		return nil, err
	}

	if err := srv.sessions.Save(ctx, session); err != nil {
		return nil, err
	}

	return srv.view(session, view, attempt), nil
}

// PlaceOrder finishes the review step: clears the cart and resets the
// wizard for the next purchase. Without a completed payment it still
// places the order, leaving payment pending for the shopper to settle
// later.
func (srv *checkoutService) PlaceOrder(ctx context.Context, session *entity.Session) (*usecase.CheckoutView, error) {
	view, err := srv.guard(ctx, session)
	if err != nil {
		return nil, err
	}

	state := srv.state(session)
	if !state.PaymentCompleted {
		if state.Shipping == nil {
			return nil, errors.Wrap(domainerrors.ErrValidationFailed, "shipping step not completed")
		}
		if err := srv.ensureOrder(ctx, session, state); err != nil {
			return nil, err
		}
	}

	if err := srv.carts.Clear(ctx, session); err != nil {
		return nil, err
	}

	completed := &usecase.CheckoutView{
		Step:        entity.StepReview,
		Pricing:     view.Pricing,
		OrderID:     state.OrderID,
		OrderNumber: state.OrderNumber,
		Completed:   true,
	}
	if state.Payment != nil {
		completed.Payment = &usecase.Attempt{
			Method: state.Payment.Method,
			Status: entity.AttemptSuccess,
			Result: state.Payment,
		}
	} else {
		completed.Payment = &usecase.Attempt{Status: entity.AttemptPending}
	}

	session.Checkout = nil
	if err := srv.sessions.Save(ctx, session); err != nil {
		return nil, err
	}
	srv.log(ctx).Info("order placed", slog.Int64("order_id", completed.OrderID), slog.String("order_number", completed.OrderNumber))

	return completed, nil
}

// guard enforces the wizard preconditions: a live session and a
// non-empty cart.
func (srv *checkoutService) guard(ctx context.Context, session *entity.Session) (*usecase.CartView, error) {
	if session == nil {
		return nil, errors.WithStack(domainerrors.ErrLoginRequired)
	}

	view, err := srv.carts.View(ctx, session)
	if err != nil {
		return nil, err
	}
	if view.Cart.Empty() {
		return nil, errors.WithStack(domainerrors.ErrCartEmpty)
	}

	return view, nil
}

func (srv *checkoutService) state(session *entity.Session) *entity.CheckoutState {
	if session.Checkout == nil {
		session.Checkout = entity.NewCheckoutState()
	}

	return session.Checkout
}

// ensureOrder creates the backend order for this checkout exactly once;
// retried payments reuse it.
func (srv *checkoutService) ensureOrder(ctx context.Context, session *entity.Session, state *entity.CheckoutState) error {
	if state.OrderID != 0 {
		return nil
	}

	authCtx := gateway.WithToken(ctx, session.Token)
	order, err := srv.orders.Create(authCtx, gateway.CreateOrderInput{ShippingAddress: *state.Shipping})
	if err != nil {
		return errors.Wrap(err, "create order")
	}

	state.OrderID = order.ID
	state.OrderNumber = order.OrderNumber
	srv.log(ctx).Info("checkout order created", slog.Int64("order_id", order.ID), slog.String("order_number", order.OrderNumber))

	return srv.sessions.Save(ctx, session)
}

// callbacks wires a payment attempt's single outcome report into the
// checkout state.
func (srv *checkoutService) callbacks(ctx context.Context, session *entity.Session, state *entity.CheckoutState) usecase.Callbacks {
	return usecase.Callbacks{
		OnSuccess: func(result entity.PaymentResult) {
			state.PaymentCompleted = true
			state.Payment = &result
			state.Step = entity.StepReview
			srv.log(ctx).Info("payment completed",
				slog.String("method", string(result.Method)),
				slog.String("transaction_id", result.TransactionID),
			)
		},
		OnError: func(err error) {
			srv.log(ctx).Warn("payment attempt failed", slog.Any("error", err))
		},
	}
}

// view assembles the wizard view from the session state and cart.
func (srv *checkoutService) view(session *entity.Session, cart *usecase.CartView, attempt *usecase.Attempt) *usecase.CheckoutView {
	state := srv.state(session)

	view := &usecase.CheckoutView{
		Step:        state.Step,
		Shipping:    state.Shipping,
		Cart:        cart.Cart,
		Pricing:     cart.Pricing,
		Payment:     attempt,
		OrderID:     state.OrderID,
		OrderNumber: state.OrderNumber,
	}
	if attempt == nil && state.Payment != nil {
		view.Payment = &usecase.Attempt{
			Method: state.Payment.Method,
			Status: entity.AttemptSuccess,
			Result: state.Payment,
		}
	}

	return view
}
