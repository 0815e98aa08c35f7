package impl

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/Benmwania/ecomart/config"
	"github.com/Benmwania/ecomart/internal/domain/entity"
	"github.com/Benmwania/ecomart/internal/domain/gateway"
	"github.com/Benmwania/ecomart/internal/errors"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func newTestConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Backend = &config.BackendConfig{BaseURL: "http://backend.test"}
	cfg.Session = &config.SessionConfig{CookieName: "ecomart_session", TTL: 24 * time.Hour}
	cfg.Payments = &config.PaymentsConfig{
		MpesaPollAttempts: 30,
		MpesaPollInterval: 2 * time.Second,
		KESPerUSD:         115,
	}
	cfg.Pricing = &config.PricingConfig{ShippingFee: 5.00, TaxRate: 0.10}

	return cfg
}

func newTestSession() *entity.Session {
	return &entity.Session{
		ID:        "sess-test",
		Token:     "token-test",
		User:      &entity.User{ID: 42, Email: "jane@example.com", UserType: entity.UserTypeCustomer},
		CreatedAt: time.Now(),
		ExpiresAt: time.Now().Add(time.Hour),
	}
}

func newSellerSession() *entity.Session {
	session := newTestSession()
	session.User.UserType = entity.UserTypeSeller

	return session
}

// instantSleeper skips poll waits while still honoring cancellation.
func instantSleeper(ctx context.Context, _ time.Duration) error {
	return ctx.Err()
}

// fakePaymentGateway implements gateway.PaymentGateway with function
// fields, counting calls so tests can assert what went over the wire.
type fakePaymentGateway struct {
	mu sync.Mutex

	initiateMpesaFn      func(orderID int64, phone string) (*entity.InitiateResult, error)
	initiatePaypalFn     func(orderID int64) (*entity.InitiateResult, error)
	createIntentFn       func(orderID int64) (*entity.InitiateResult, error)
	confirmStripeFn      func(paymentIntentID string) error
	mpesaStatusFn        func(checkoutRequestID string) (*entity.MpesaStatus, error)
	orderStatusFn        func(orderID int64) (string, error)
	initiateMpesaCalls   int
	createIntentCalls    int
	mpesaStatusCalls     int
	initiatePaypalCalls  int
	confirmStripeCalls   int
	lastMpesaPhone       string
	lastPaymentMethodRef string
}

func (f *fakePaymentGateway) InitiateMpesa(_ context.Context, orderID int64, phone string) (*entity.InitiateResult, error) {
	f.mu.Lock()
	f.initiateMpesaCalls++
	f.lastMpesaPhone = phone
	f.mu.Unlock()

	if f.initiateMpesaFn == nil {
		return &entity.InitiateResult{Success: true, CheckoutRequestID: "ws_CO_1"}, nil
	}

	return f.initiateMpesaFn(orderID, phone)
}

func (f *fakePaymentGateway) InitiatePaypal(_ context.Context, orderID int64) (*entity.InitiateResult, error) {
	f.mu.Lock()
	f.initiatePaypalCalls++
	f.mu.Unlock()

	if f.initiatePaypalFn == nil {
		return &entity.InitiateResult{Success: true, ApprovalURL: "https://paypal.test/approve"}, nil
	}

	return f.initiatePaypalFn(orderID)
}

func (f *fakePaymentGateway) CreateStripeIntent(_ context.Context, orderID int64) (*entity.InitiateResult, error) {
	f.mu.Lock()
	f.createIntentCalls++
	f.mu.Unlock()

	if f.createIntentFn == nil {
		return &entity.InitiateResult{Success: true, ClientSecret: "pi_1_secret_a"}, nil
	}

	return f.createIntentFn(orderID)
}

func (f *fakePaymentGateway) ConfirmStripePayment(_ context.Context, paymentIntentID string) error {
	f.mu.Lock()
	f.confirmStripeCalls++
	f.mu.Unlock()

	if f.confirmStripeFn == nil {
		return nil
	}

	return f.confirmStripeFn(paymentIntentID)
}

func (f *fakePaymentGateway) OrderPaymentStatus(_ context.Context, orderID int64) (string, error) {
	if f.orderStatusFn == nil {
		return "pending", nil
	}

	return f.orderStatusFn(orderID)
}

func (f *fakePaymentGateway) MpesaStatus(_ context.Context, checkoutRequestID string) (*entity.MpesaStatus, error) {
	f.mu.Lock()
	f.mpesaStatusCalls++
	f.mu.Unlock()

	if f.mpesaStatusFn == nil {
		return &entity.MpesaStatus{Status: "pending"}, nil
	}

	return f.mpesaStatusFn(checkoutRequestID)
}

func (f *fakePaymentGateway) networkCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.initiateMpesaCalls + f.initiatePaypalCalls + f.createIntentCalls + f.confirmStripeCalls + f.mpesaStatusCalls
}

// fakeCardConfirmer implements gateway.CardConfirmer.
type fakeCardConfirmer struct {
	mu           sync.Mutex
	confirmFn    func(clientSecret, token string) (*gateway.CardConfirmation, error)
	confirmCalls int
	secrets      []string
}

func (f *fakeCardConfirmer) Confirm(_ context.Context, clientSecret, token string) (*gateway.CardConfirmation, error) {
	f.mu.Lock()
	f.confirmCalls++
	f.secrets = append(f.secrets, clientSecret)
	f.mu.Unlock()

	if f.confirmFn == nil {
		return &gateway.CardConfirmation{TransactionID: "pi_1", Status: "succeeded", Last4: "4242"}, nil
	}

	return f.confirmFn(clientSecret, token)
}

// fakeCartGateway implements gateway.CartGateway.
type fakeCartGateway struct {
	mu         sync.Mutex
	cartFn     func() (*entity.Cart, error)
	cartCalls  int
	addCalls   int
	clearCalls int
	failAdd    error
}

func (f *fakeCartGateway) Cart(context.Context) (*entity.Cart, error) {
	f.mu.Lock()
	f.cartCalls++
	f.mu.Unlock()

	if f.cartFn == nil {
		return &entity.Cart{
			ID:         1,
			Items:      []entity.CartItem{{ID: 1, Quantity: 2, TotalPrice: 49.98}},
			TotalItems: 2,
			Subtotal:   49.98,
		}, nil
	}

	return f.cartFn()
}

func (f *fakeCartGateway) AddItem(context.Context, int64, int) error {
	f.mu.Lock()
	f.addCalls++
	f.mu.Unlock()

	return f.failAdd
}

func (f *fakeCartGateway) UpdateItem(context.Context, int64, int) error { return nil }
func (f *fakeCartGateway) RemoveItem(context.Context, int64) error     { return nil }

func (f *fakeCartGateway) Clear(context.Context) error {
	f.mu.Lock()
	f.clearCalls++
	f.mu.Unlock()

	return nil
}

func (f *fakeCartGateway) networkCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.cartCalls + f.addCalls + f.clearCalls
}

// fakeOrderGateway implements gateway.OrderGateway.
type fakeOrderGateway struct {
	mu          sync.Mutex
	orderFn     func(id int64) (*entity.Order, error)
	createFn    func(input gateway.CreateOrderInput) (*entity.Order, error)
	cancelFn    func(id int64) (*entity.Order, error)
	createCalls int
}

func (f *fakeOrderGateway) Orders(context.Context) ([]entity.Order, error) {
	return []entity.Order{}, nil
}

func (f *fakeOrderGateway) Order(_ context.Context, id int64) (*entity.Order, error) {
	if f.orderFn == nil {
		return &entity.Order{ID: id, Status: entity.OrderPending}, nil
	}

	return f.orderFn(id)
}

func (f *fakeOrderGateway) Create(_ context.Context, input gateway.CreateOrderInput) (*entity.Order, error) {
	f.mu.Lock()
	f.createCalls++
	f.mu.Unlock()

	if f.createFn == nil {
		return &entity.Order{ID: 1001, OrderNumber: "ECO-1001", Status: entity.OrderPending}, nil
	}

	return f.createFn(input)
}

func (f *fakeOrderGateway) Cancel(_ context.Context, id int64) (*entity.Order, error) {
	if f.cancelFn == nil {
		return &entity.Order{ID: id, Status: entity.OrderCancelled}, nil
	}

	return f.cancelFn(id)
}

// fakeAuthGateway implements gateway.AuthGateway.
type fakeAuthGateway struct {
	loginFn    func(creds gateway.Credentials) (*gateway.TokenPair, error)
	registerFn func(reg gateway.Registration) (*gateway.TokenPair, error)
	profileFn  func(ctx context.Context) (*entity.User, error)
	updateFn   func(update gateway.ProfileUpdate) (*entity.User, error)
}

func (f *fakeAuthGateway) Login(_ context.Context, creds gateway.Credentials) (*gateway.TokenPair, error) {
	if f.loginFn == nil {
		return &gateway.TokenPair{Access: "access-token"}, nil
	}

	return f.loginFn(creds)
}

func (f *fakeAuthGateway) Register(_ context.Context, reg gateway.Registration) (*gateway.TokenPair, error) {
	if f.registerFn == nil {
		return &gateway.TokenPair{Access: "access-token"}, nil
	}

	return f.registerFn(reg)
}

func (f *fakeAuthGateway) Profile(ctx context.Context) (*entity.User, error) {
	if f.profileFn == nil {
		return &entity.User{ID: 42, Email: "jane@example.com", UserType: entity.UserTypeCustomer}, nil
	}

	return f.profileFn(ctx)
}

func (f *fakeAuthGateway) UpdateProfile(_ context.Context, update gateway.ProfileUpdate) (*entity.User, error) {
	if f.updateFn == nil {
		return &entity.User{ID: 42}, nil
	}

	return f.updateFn(update)
}

// fakeCatalogGateway implements gateway.CatalogGateway.
type fakeCatalogGateway struct {
	productsFn   func(query gateway.ProductQuery) (*gateway.ProductPage, error)
	productFn    func(id int64) (*entity.Product, error)
	featuredFn   func() ([]entity.Product, error)
	categoriesFn func() ([]entity.Category, error)
	lastQuery    gateway.ProductQuery
}

func (f *fakeCatalogGateway) Products(_ context.Context, query gateway.ProductQuery) (*gateway.ProductPage, error) {
	f.lastQuery = query
	if f.productsFn == nil {
		return &gateway.ProductPage{Count: 0, Products: []entity.Product{}}, nil
	}

	return f.productsFn(query)
}

func (f *fakeCatalogGateway) Product(_ context.Context, id int64) (*entity.Product, error) {
	if f.productFn == nil {
		return &entity.Product{ID: id, Name: "Bamboo Toothbrush"}, nil
	}

	return f.productFn(id)
}

func (f *fakeCatalogGateway) Categories(context.Context) ([]entity.Category, error) {
	if f.categoriesFn == nil {
		return []entity.Category{}, nil
	}

	return f.categoriesFn()
}

func (f *fakeCatalogGateway) Featured(context.Context) ([]entity.Product, error) {
	if f.featuredFn == nil {
		return []entity.Product{}, nil
	}

	return f.featuredFn()
}

func (f *fakeCatalogGateway) AddReview(_ context.Context, _ int64, _ gateway.ReviewInput) (*entity.Review, error) {
	return &entity.Review{ID: 1}, nil
}

// fakeAIGateway implements gateway.AIGateway. The zero value fails
// every call, exercising the local fallbacks.
type fakeAIGateway struct {
	recommendationsFn func(userID int64, limit int) ([]entity.Product, error)
	similarFn         func(productID int64, limit int) ([]entity.Product, error)
	trendingFn        func(category string, limit int) ([]entity.Product, error)
	ecoScoreFn        func(input gateway.EcoScoreInput) (*gateway.EcoScoreResult, error)
	insightsFn        func() (*gateway.SustainabilityInsights, error)
}

var errEngineDown = errors.New("engine unavailable")

func (f *fakeAIGateway) Recommendations(_ context.Context, userID int64, limit int) ([]entity.Product, error) {
	if f.recommendationsFn == nil {
		return nil, errEngineDown
	}

	return f.recommendationsFn(userID, limit)
}

func (f *fakeAIGateway) SimilarProducts(_ context.Context, productID int64, limit int) ([]entity.Product, error) {
	if f.similarFn == nil {
		return nil, errEngineDown
	}

	return f.similarFn(productID, limit)
}

func (f *fakeAIGateway) TrendingProducts(_ context.Context, category string, limit int) ([]entity.Product, error) {
	if f.trendingFn == nil {
		return nil, errEngineDown
	}

	return f.trendingFn(category, limit)
}

func (f *fakeAIGateway) CalculateEcoScore(_ context.Context, input gateway.EcoScoreInput) (*gateway.EcoScoreResult, error) {
	if f.ecoScoreFn == nil {
		return nil, errEngineDown
	}

	return f.ecoScoreFn(input)
}

func (f *fakeAIGateway) SustainabilityInsights(context.Context) (*gateway.SustainabilityInsights, error) {
	if f.insightsFn == nil {
		return nil, errEngineDown
	}

	return f.insightsFn()
}

// fakeSellerGateway implements gateway.SellerGateway.
type fakeSellerGateway struct {
	mu            sync.Mutex
	ordersFn      func(status string) ([]entity.Order, error)
	updateOrderFn func(id int64, status entity.OrderStatus) (*entity.Order, error)
	createFn      func(form gateway.ProductForm) (*entity.Product, error)
	networkCount  int
}

func (f *fakeSellerGateway) touch() {
	f.mu.Lock()
	f.networkCount++
	f.mu.Unlock()
}

func (f *fakeSellerGateway) networkCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.networkCount
}

func (f *fakeSellerGateway) Dashboard(context.Context) (*gateway.DashboardSummary, error) {
	f.touch()

	return &gateway.DashboardSummary{TotalProducts: 3}, nil
}

func (f *fakeSellerGateway) Products(_ context.Context, _ string) ([]entity.Product, error) {
	f.touch()

	return []entity.Product{}, nil
}

func (f *fakeSellerGateway) Product(_ context.Context, id int64) (*entity.Product, error) {
	f.touch()

	return &entity.Product{ID: id}, nil
}

func (f *fakeSellerGateway) CreateProduct(_ context.Context, form gateway.ProductForm) (*entity.Product, error) {
	f.touch()
	if f.createFn == nil {
		return &entity.Product{ID: 99, Name: form.Name}, nil
	}

	return f.createFn(form)
}

func (f *fakeSellerGateway) UpdateProduct(_ context.Context, id int64, form gateway.ProductForm) (*entity.Product, error) {
	f.touch()

	return &entity.Product{ID: id, Name: form.Name}, nil
}

func (f *fakeSellerGateway) DeleteProduct(_ context.Context, _ int64) error {
	f.touch()

	return nil
}

func (f *fakeSellerGateway) Orders(_ context.Context, status string) ([]entity.Order, error) {
	f.touch()
	if f.ordersFn == nil {
		return []entity.Order{}, nil
	}

	return f.ordersFn(status)
}

func (f *fakeSellerGateway) UpdateOrderStatus(_ context.Context, id int64, status entity.OrderStatus) (*entity.Order, error) {
	f.touch()
	if f.updateOrderFn == nil {
		return &entity.Order{ID: id, Status: status}, nil
	}

	return f.updateOrderFn(id, status)
}

func (f *fakeSellerGateway) Analytics(_ context.Context, period string) (*gateway.Analytics, error) {
	f.touch()

	return &gateway.Analytics{Period: period}, nil
}

// fakeSessionStore implements gateway.SessionStore in memory.
type fakeSessionStore struct {
	mu       sync.Mutex
	sessions map[string]*entity.Session
	saves    int
}

func newFakeSessionStore() *fakeSessionStore {
	return &fakeSessionStore{sessions: make(map[string]*entity.Session)}
}

func (f *fakeSessionStore) Save(_ context.Context, session *entity.Session) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.saves++
	f.sessions[session.ID] = session

	return nil
}

func (f *fakeSessionStore) Find(_ context.Context, id string) (*entity.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	session, ok := f.sessions[id]
	if !ok {
		return nil, gateway.ErrSessionNotFound
	}

	return session, nil
}

func (f *fakeSessionStore) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	delete(f.sessions, id)

	return nil
}
