package handler

import (
	"context"
	"log/slog"
	"net/http/httptest"
	"strings"
	"time"

	"github.com/Benmwania/ecomart/config"
	deliverycontext "github.com/Benmwania/ecomart/internal/delivery/context"
	"github.com/Benmwania/ecomart/internal/delivery/http/middleware"
	"github.com/Benmwania/ecomart/internal/delivery/http/validator"
	"github.com/Benmwania/ecomart/internal/domain/entity"
	"github.com/Benmwania/ecomart/internal/usecase"

	"github.com/labstack/echo/v4"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func newTestConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Session = &config.SessionConfig{
		CookieName: "ecomart_session",
		TTL:        24 * time.Hour,
	}

	return cfg
}

func newTestSession() *entity.Session {
	now := time.Now()

	return &entity.Session{
		ID:        "sess-test",
		Token:     "backend-token",
		User:      &entity.User{ID: 42, Email: "shopper@example.com", UserType: "customer"},
		CreatedAt: now,
		ExpiresAt: now.Add(24 * time.Hour),
	}
}

// newTestEcho builds an echo instance wired the same way the real
// server is: validator plus the error handler, so handler tests observe
// the envelope clients actually receive.
func newTestEcho() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = validator.New()
	e.HTTPErrorHandler = middleware.NewErrorMiddleware(newDiscardLogger()).HandleHTTPError

	return e
}

func newJSONContext(e *echo.Echo, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()

	return e.NewContext(req, rec), rec
}

func withSession(c echo.Context, session *entity.Session) {
	deliverycontext.SetSession(c, session)
}

// serve runs a handler through the echo error pipeline so AppError
// values render as JSON envelopes instead of raw errors.
func serve(e *echo.Echo, c echo.Context, rec *httptest.ResponseRecorder, h echo.HandlerFunc) *httptest.ResponseRecorder {
	if err := h(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}

	return rec
}

// fakeCheckoutUsecase is a function-field stub for the checkout wizard.
type fakeCheckoutUsecase struct {
	beginFn        func(ctx context.Context, session *entity.Session) (*usecase.CheckoutView, error)
	submitShipping func(ctx context.Context, session *entity.Session, input usecase.ShippingInput) (*usecase.CheckoutView, error)
	submitPayment  func(ctx context.Context, session *entity.Session, input usecase.PaymentInput) (*usecase.CheckoutView, error)
	paypalReturnFn func(ctx context.Context, session *entity.Session, token string) (*usecase.CheckoutView, error)
	placeOrderFn   func(ctx context.Context, session *entity.Session) (*usecase.CheckoutView, error)
}

func (f *fakeCheckoutUsecase) Begin(ctx context.Context, session *entity.Session) (*usecase.CheckoutView, error) {
	return f.beginFn(ctx, session)
}

func (f *fakeCheckoutUsecase) SubmitShipping(ctx context.Context, session *entity.Session, input usecase.ShippingInput) (*usecase.CheckoutView, error) {
	return f.submitShipping(ctx, session, input)
}

func (f *fakeCheckoutUsecase) SubmitPayment(ctx context.Context, session *entity.Session, input usecase.PaymentInput) (*usecase.CheckoutView, error) {
	return f.submitPayment(ctx, session, input)
}

func (f *fakeCheckoutUsecase) HandlePaypalReturn(ctx context.Context, session *entity.Session, token string) (*usecase.CheckoutView, error) {
	return f.paypalReturnFn(ctx, session, token)
}

func (f *fakeCheckoutUsecase) PlaceOrder(ctx context.Context, session *entity.Session) (*usecase.CheckoutView, error) {
	return f.placeOrderFn(ctx, session)
}

// fakeSessionUsecase is a function-field stub for the session service.
type fakeSessionUsecase struct {
	loginFn         func(ctx context.Context, input usecase.LoginInput) (*entity.Session, error)
	registerFn      func(ctx context.Context, input usecase.RegisterInput) (*entity.Session, error)
	currentFn       func(ctx context.Context, sessionID string) (*entity.Session, error)
	logoutFn        func(ctx context.Context, sessionID string) error
	updateProfileFn func(ctx context.Context, session *entity.Session, input usecase.ProfileUpdateInput) (*entity.Session, error)
	saveFn          func(ctx context.Context, session *entity.Session) error
}

func (f *fakeSessionUsecase) Login(ctx context.Context, input usecase.LoginInput) (*entity.Session, error) {
	return f.loginFn(ctx, input)
}

func (f *fakeSessionUsecase) Register(ctx context.Context, input usecase.RegisterInput) (*entity.Session, error) {
	return f.registerFn(ctx, input)
}

func (f *fakeSessionUsecase) Current(ctx context.Context, sessionID string) (*entity.Session, error) {
	return f.currentFn(ctx, sessionID)
}

func (f *fakeSessionUsecase) Logout(ctx context.Context, sessionID string) error {
	return f.logoutFn(ctx, sessionID)
}

func (f *fakeSessionUsecase) UpdateProfile(ctx context.Context, session *entity.Session, input usecase.ProfileUpdateInput) (*entity.Session, error) {
	return f.updateProfileFn(ctx, session, input)
}

func (f *fakeSessionUsecase) Save(ctx context.Context, session *entity.Session) error {
	return f.saveFn(ctx, session)
}

// fakePaymentUsecase stubs the payment orchestrator; logout only needs
// CancelPending.
type fakePaymentUsecase struct {
	cancelled []string
}

func (f *fakePaymentUsecase) Initiate(ctx context.Context, session *entity.Session, req usecase.PaymentRequest, cb usecase.Callbacks) (*usecase.Attempt, error) {
	return &usecase.Attempt{}, nil
}

func (f *fakePaymentUsecase) HandlePaypalReturn(ctx context.Context, session *entity.Session, orderID int64, token string, amount float64, cb usecase.Callbacks) (*usecase.Attempt, error) {
	return &usecase.Attempt{}, nil
}

func (f *fakePaymentUsecase) CancelPending(sessionID string) {
	f.cancelled = append(f.cancelled, sessionID)
}

// fakeCartUsecase is a function-field stub for the cart service.
type fakeCartUsecase struct {
	viewFn       func(ctx context.Context, session *entity.Session) (*usecase.CartView, error)
	addItemFn    func(ctx context.Context, session *entity.Session, productID int64, quantity int) (*usecase.CartView, error)
	updateItemFn func(ctx context.Context, session *entity.Session, productID int64, quantity int) (*usecase.CartView, error)
	removeItemFn func(ctx context.Context, session *entity.Session, productID int64) (*usecase.CartView, error)
	clearFn      func(ctx context.Context, session *entity.Session) error
}

func (f *fakeCartUsecase) View(ctx context.Context, session *entity.Session) (*usecase.CartView, error) {
	return f.viewFn(ctx, session)
}

func (f *fakeCartUsecase) AddItem(ctx context.Context, session *entity.Session, productID int64, quantity int) (*usecase.CartView, error) {
	return f.addItemFn(ctx, session, productID, quantity)
}

func (f *fakeCartUsecase) UpdateItem(ctx context.Context, session *entity.Session, productID int64, quantity int) (*usecase.CartView, error) {
	return f.updateItemFn(ctx, session, productID, quantity)
}

func (f *fakeCartUsecase) RemoveItem(ctx context.Context, session *entity.Session, productID int64) (*usecase.CartView, error) {
	return f.removeItemFn(ctx, session, productID)
}

func (f *fakeCartUsecase) Clear(ctx context.Context, session *entity.Session) error {
	return f.clearFn(ctx, session)
}
