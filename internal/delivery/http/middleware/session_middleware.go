// Package middleware contains the echo middleware for the storefront.
package middleware

import (
	"log/slog"
	"strings"

	"github.com/Benmwania/ecomart/config"
	deliverycontext "github.com/Benmwania/ecomart/internal/delivery/context"
	"github.com/Benmwania/ecomart/internal/usecase"

	"github.com/labstack/echo/v4"
)

// SessionMiddleware resolves the storefront session from the session
// cookie, or from a bearer session id for non-browser clients, and
// stores it on the request context. Anonymous and expired sessions pass
// through as nil; the usecases own the access guards.
type SessionMiddleware struct {
	sessions usecase.SessionUsecase
	cfg      *config.Config
	logger   *slog.Logger
}

// NewSessionMiddleware is the constructor for SessionMiddleware.
func NewSessionMiddleware(sessions usecase.SessionUsecase, cfg *config.Config, logger *slog.Logger) *SessionMiddleware {
	return &SessionMiddleware{
		sessions: sessions,
		cfg:      cfg,
		logger:   logger,
	}
}

// Resolve attaches the session, when one exists, to the echo context.
func (m *SessionMiddleware) Resolve(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		sessionID := m.sessionID(c)
		if sessionID == "" {
			return next(c)
		}

		session, err := m.sessions.Current(c.Request().Context(), sessionID)
		if err != nil {
			m.logger.Debug("session did not resolve", slog.String("session_id", sessionID), slog.Any("error", err))

			return next(c)
		}

		deliverycontext.SetSession(c, session)

		return next(c)
	}
}

func (m *SessionMiddleware) sessionID(c echo.Context) string {
	if cookie, err := c.Cookie(m.cfg.Session.CookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	authHeader := c.Request().Header.Get("Authorization")
	if token := strings.TrimPrefix(authHeader, "Bearer "); token != authHeader {
		return token
	}

	return ""
}
