package impl

import (
	"context"
	"log/slog"
	"math"
	"sync"

	"github.com/Benmwania/ecomart/config"
	"github.com/Benmwania/ecomart/internal/domain/entity"
	domainerrors "github.com/Benmwania/ecomart/internal/domain/errors"
	"github.com/Benmwania/ecomart/internal/domain/gateway"
	"github.com/Benmwania/ecomart/internal/usecase"

	"github.com/pkg/errors"
)

// paymentService implements the PaymentUsecase interface. It validates
// requests locally before any network call and guarantees at most one
// in-flight attempt per session: initiating a new attempt cancels the
// previous one, so an abandoned M-Pesa poll can never report late.
type paymentService struct {
	payments gateway.PaymentGateway
	cards    gateway.CardConfirmer
	cfg      *config.Config
	logger   *slog.Logger
	sleep    sleeper

	mu     sync.Mutex
	active map[string]*attemptHandle
}

// attemptHandle identifies one in-flight attempt so a finished attempt
// only unregisters itself, never the attempt that superseded it.
type attemptHandle struct {
	cancel context.CancelFunc
}

// NewPaymentService is the constructor for paymentService.
func NewPaymentService(
	payments gateway.PaymentGateway,
	cards gateway.CardConfirmer,
	cfg *config.Config,
	logger *slog.Logger,
) usecase.PaymentUsecase {
	return &paymentService{
		payments: payments,
		cards:    cards,
		cfg:      cfg,
		logger:   logger,
		sleep:    waitSleeper,
		active:   make(map[string]*attemptHandle),
	}
}

// Initiate runs one payment attempt for the session.
func (srv *paymentService) Initiate(ctx context.Context, session *entity.Session, req usecase.PaymentRequest, cb usecase.Callbacks) (*usecase.Attempt, error) {
	if session == nil {
		return nil, errors.WithStack(domainerrors.ErrLoginRequired)
	}
	if !req.Method.Valid() {
		return nil, errors.Wrapf(domainerrors.ErrUnsupportedPaymentMethod, "method %q", req.Method)
	}

	runCtx, handle := srv.begin(ctx, session.ID)
	defer srv.finish(session.ID, handle)

	authCtx := gateway.WithToken(runCtx, session.Token)
	rep := newReporter(cb)

	switch req.Method {
	case entity.PaymentMpesa:
		flow := &mpesaFlow{
			payments: srv.payments,
			attempts: srv.cfg.Payments.MpesaPollAttempts,
			interval: srv.cfg.Payments.MpesaPollInterval,
			sleep:    srv.sleep,
			logger:   srv.logger,
		}
		attempt, err := flow.run(authCtx, req, rep)
		if attempt != nil {
			attempt.AmountKES = srv.toKES(req.Amount)
		}

		return attempt, err
	case entity.PaymentCard:
		flow := &cardFlow{payments: srv.payments, cards: srv.cards, logger: srv.logger}

		return flow.run(authCtx, req, rep)
	case entity.PaymentPaypal:
		flow := &paypalFlow{payments: srv.payments, logger: srv.logger}

		return flow.start(authCtx, req, rep)
	default:
		return nil, errors.Wrapf(domainerrors.ErrUnsupportedPaymentMethod, "method %q", req.Method)
	}
}

// HandlePaypalReturn completes a redirect-based attempt.
func (srv *paymentService) HandlePaypalReturn(ctx context.Context, session *entity.Session, orderID int64, token string, amount float64, cb usecase.Callbacks) (*usecase.Attempt, error) {
	if session == nil {
		return nil, errors.WithStack(domainerrors.ErrLoginRequired)
	}

	flow := &paypalFlow{payments: srv.payments, logger: srv.logger}

	return flow.handleReturn(gateway.WithToken(ctx, session.Token), orderID, token, amount, newReporter(cb))
}

// CancelPending cancels any in-flight attempt for the session.
func (srv *paymentService) CancelPending(sessionID string) {
	srv.mu.Lock()
	defer srv.mu.Unlock()

	if handle, ok := srv.active[sessionID]; ok {
		handle.cancel()
		delete(srv.active, sessionID)
	}
}

// begin cancels the session's previous attempt and registers the new
// one.
func (srv *paymentService) begin(ctx context.Context, sessionID string) (context.Context, *attemptHandle) {
	srv.mu.Lock()
	defer srv.mu.Unlock()

	if prev, ok := srv.active[sessionID]; ok {
		srv.logger.Info("cancelling superseded payment attempt", slog.String("session_id", sessionID))
		prev.cancel()
	}

	runCtx, cancel := context.WithCancel(ctx)
	handle := &attemptHandle{cancel: cancel}
	srv.active[sessionID] = handle

	return runCtx, handle
}

func (srv *paymentService) finish(sessionID string, handle *attemptHandle) {
	srv.mu.Lock()
	defer srv.mu.Unlock()

	handle.cancel()
	if srv.active[sessionID] == handle {
		delete(srv.active, sessionID)
	}
}

// toKES converts a USD amount at the configured fixed display rate.
func (srv *paymentService) toKES(usd float64) float64 {
	return math.Round(usd * srv.cfg.Payments.KESPerUSD)
}
