package context

import (
	"github.com/labstack/echo/v4"

	"github.com/Benmwania/ecomart/internal/domain/entity"
)

// GetSession extracts the resolved session from echo.Context.
// Returns nil when the request is anonymous.
func GetSession(c echo.Context) *entity.Session {
	val := c.Get(string(KeySession))
	if session, ok := val.(*entity.Session); ok {
		return session
	}

	return nil
}

// SetSession stores the resolved session in echo.Context.
func SetSession(c echo.Context, session *entity.Session) {
	c.Set(string(KeySession), session)
}
