// Package impl contains the application-specific business rules implementations.
package impl

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/Benmwania/ecomart/config"
	deliverycontext "github.com/Benmwania/ecomart/internal/delivery/context"
	"github.com/Benmwania/ecomart/internal/domain/entity"
	domainerrors "github.com/Benmwania/ecomart/internal/domain/errors"
	"github.com/Benmwania/ecomart/internal/domain/gateway"
	"github.com/Benmwania/ecomart/internal/usecase"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// sessionService implements the SessionUsecase interface.
type sessionService struct {
	auth   gateway.AuthGateway
	store  gateway.SessionStore
	cfg    *config.Config
	logger *slog.Logger
	now    func() time.Time
}

// NewSessionService is the constructor for sessionService.
func NewSessionService(
	auth gateway.AuthGateway,
	store gateway.SessionStore,
	cfg *config.Config,
	logger *slog.Logger,
) usecase.SessionUsecase {
	return &sessionService{
		auth:   auth,
		store:  store,
		cfg:    cfg,
		logger: logger,
		now:    time.Now,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *sessionService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Login exchanges credentials for a backend token and opens a session.
func (srv *sessionService) Login(ctx context.Context, input usecase.LoginInput) (*entity.Session, error) {
	tokens, err := srv.auth.Login(ctx, gateway.Credentials{
		Email:    input.Email,
		Password: input.Password,
	})
	if err != nil {
		if isAuthRejection(err) {
			return nil, errors.Wrap(domainerrors.ErrInvalidCredentials, "login rejected")
		}

		return nil, errors.Wrap(err, "login")
	}

	session, err := srv.openSession(ctx, tokens)
	if err != nil {
		return nil, err
	}
	srv.log(ctx).Info("user logged in", slog.Int64("user_id", session.User.ID))

	return session, nil
}

// Register creates an account and opens a session for it.
func (srv *sessionService) Register(ctx context.Context, input usecase.RegisterInput) (*entity.Session, error) {
	userType := input.UserType
	if userType == "" {
		userType = string(entity.UserTypeCustomer)
	}

	tokens, err := srv.auth.Register(ctx, gateway.Registration{
		Username:     input.Username,
		Email:        input.Email,
		Password:     input.Password,
		UserType:     userType,
		PhoneNumber:  input.PhoneNumber,
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		BusinessName: input.BusinessName,
	})
	if err != nil {
		return nil, errors.Wrap(err, "register")
	}

	session, err := srv.openSession(ctx, tokens)
	if err != nil {
		return nil, err
	}
	srv.log(ctx).Info("user registered", slog.Int64("user_id", session.User.ID), slog.String("user_type", userType))

	return session, nil
}

// Current resolves a session id to a live session.
func (srv *sessionService) Current(ctx context.Context, sessionID string) (*entity.Session, error) {
	session, err := srv.store.Find(ctx, sessionID)
	if err != nil {
		if errors.Is(err, gateway.ErrSessionNotFound) {
			return nil, errors.Wrap(domainerrors.ErrSessionExpired, "session lookup")
		}

		return nil, errors.Wrap(err, "find session")
	}
	if session.Expired(srv.now()) {
		return nil, errors.Wrap(domainerrors.ErrSessionExpired, "session lookup")
	}

	return session, nil
}

// Logout discards the session.
func (srv *sessionService) Logout(ctx context.Context, sessionID string) error {
	if err := srv.store.Delete(ctx, sessionID); err != nil {
		return errors.Wrap(err, "delete session")
	}

	return nil
}

// UpdateProfile pushes the edit to the backend and refreshes the
// session's cached profile.
func (srv *sessionService) UpdateProfile(ctx context.Context, session *entity.Session, input usecase.ProfileUpdateInput) (*entity.Session, error) {
	if session == nil {
		return nil, errors.WithStack(domainerrors.ErrLoginRequired)
	}

	authCtx := gateway.WithToken(ctx, session.Token)
	user, err := srv.auth.UpdateProfile(authCtx, gateway.ProfileUpdate{
		Username:    input.Username,
		PhoneNumber: input.PhoneNumber,
		FirstName:   input.FirstName,
		LastName:    input.LastName,
		Avatar:      input.Avatar,
	})
	if err != nil {
		return nil, errors.Wrap(err, "update profile")
	}

	session.User = user
	if err := srv.store.Save(ctx, session); err != nil {
		return nil, errors.Wrap(err, "save session")
	}

	return session, nil
}

// Save persists session mutations made by other services.
func (srv *sessionService) Save(ctx context.Context, session *entity.Session) error {
	if session == nil {
		return errors.WithStack(domainerrors.ErrLoginRequired)
	}

	return errors.Wrap(srv.store.Save(ctx, session), "save session")
}

// openSession fetches the profile behind the freshly issued token and
// persists a new session for it. The session lives as long as the
// token's exp claim, falling back to the configured TTL.
func (srv *sessionService) openSession(ctx context.Context, tokens *gateway.TokenPair) (*entity.Session, error) {
	authCtx := gateway.WithToken(ctx, tokens.Access)
	user, err := srv.auth.Profile(authCtx)
	if err != nil {
		return nil, errors.Wrap(err, "fetch profile")
	}

	now := srv.now()
	session := &entity.Session{
		ID:        uuid.NewString(),
		Token:     tokens.Access,
		User:      user,
		CreatedAt: now,
		ExpiresAt: srv.sessionExpiry(tokens.Access, now),
	}

	if err := srv.store.Save(ctx, session); err != nil {
		return nil, errors.Wrap(err, "save session")
	}

	return session, nil
}

// sessionExpiry reads the token's exp claim without verifying the
// signature; the backend is the verifier, the storefront only needs the
// lifetime.
func (srv *sessionService) sessionExpiry(token string, now time.Time) time.Time {
	fallback := now.Add(srv.cfg.Session.TTL)

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return fallback
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil || !exp.After(now) {
		return fallback
	}

	return exp.Time
}

// isAuthRejection reports whether the backend refused the credentials
// rather than failing.
func isAuthRejection(err error) bool {
	var backendErr *domainerrors.BackendError
	if !errors.As(err, &backendErr) {
		return false
	}

	return backendErr.HTTPCode() == http.StatusUnauthorized || backendErr.HTTPCode() == http.StatusBadRequest
}
