// Package handler contains the HTTP handlers for the storefront.
package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/Benmwania/ecomart/config"
	deliverycontext "github.com/Benmwania/ecomart/internal/delivery/context"
	"github.com/Benmwania/ecomart/internal/delivery/http/response"
	domainerrors "github.com/Benmwania/ecomart/internal/domain/errors"
	"github.com/Benmwania/ecomart/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// AuthHandler holds dependencies for authentication handlers.
type AuthHandler struct {
	sessions usecase.SessionUsecase
	payments usecase.PaymentUsecase
	cfg      *config.Config
	logger   *slog.Logger
}

// NewAuthHandler is the constructor for AuthHandler, injected by Fx.
func NewAuthHandler(sessions usecase.SessionUsecase, payments usecase.PaymentUsecase, cfg *config.Config, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		sessions: sessions,
		payments: payments,
		cfg:      cfg,
		logger:   logger,
	}
}

// Login exchanges credentials for a session and sets the session cookie.
func (h *AuthHandler) Login(c echo.Context) error {
	var input usecase.LoginInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid login input")
	}
	if err := c.Validate(&input); err != nil {
		return response.BadRequest(c, "VALIDATION_FAILED", "Email and password are required")
	}

	session, err := h.sessions.Login(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	h.setSessionCookie(c, session.ID, session.ExpiresAt)

	return response.Success(c, http.StatusOK, session.User, "Login successful")
}

// Register creates a backend account, then logs the new user in.
func (h *AuthHandler) Register(c echo.Context) error {
	var input usecase.RegisterInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid registration input")
	}
	if err := c.Validate(&input); err != nil {
		return response.BadRequest(c, "VALIDATION_FAILED", "Registration form is incomplete or invalid")
	}

	session, err := h.sessions.Register(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	h.setSessionCookie(c, session.ID, session.ExpiresAt)

	return response.Success(c, http.StatusCreated, session.User, "Account created")
}

// Logout cancels any in-flight payment attempt, drops the server-side
// session and clears the cookie.
func (h *AuthHandler) Logout(c echo.Context) error {
	if session := deliverycontext.GetSession(c); session != nil {
		h.payments.CancelPending(session.ID)
		if err := h.sessions.Logout(c.Request().Context(), session.ID); err != nil {
			return errors.WithStack(err)
		}
	}

	h.clearSessionCookie(c)

	return response.Success(c, http.StatusOK, nil, "Logged out")
}

// Profile returns the cached profile of the current session.
func (h *AuthHandler) Profile(c echo.Context) error {
	session := deliverycontext.GetSession(c)
	if session == nil {
		return errors.WithStack(domainerrors.ErrLoginRequired)
	}

	return response.Success(c, http.StatusOK, session.User, "")
}

// UpdateProfile applies partial profile edits and returns the fresh
// profile.
func (h *AuthHandler) UpdateProfile(c echo.Context) error {
	session := deliverycontext.GetSession(c)
	if session == nil {
		return errors.WithStack(domainerrors.ErrLoginRequired)
	}

	var input usecase.ProfileUpdateInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid profile input")
	}
	if err := c.Validate(&input); err != nil {
		return response.BadRequest(c, "VALIDATION_FAILED", "Profile fields are invalid")
	}

	updated, err := h.sessions.UpdateProfile(c.Request().Context(), session, input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, updated.User, "Profile updated")
}

func (h *AuthHandler) setSessionCookie(c echo.Context, sessionID string, expiresAt time.Time) {
	c.SetCookie(&http.Cookie{
		Name:     h.cfg.Session.CookieName,
		Value:    sessionID,
		Path:     "/",
		Expires:  expiresAt,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *AuthHandler) clearSessionCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     h.cfg.Session.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
