package gateway

import (
	"context"

	"github.com/Benmwania/ecomart/internal/domain/entity"
	"github.com/Benmwania/ecomart/internal/errors"
)

// ErrSessionNotFound is returned when no session exists for an id, or
// the stored session has expired.
var ErrSessionNotFound = errors.New("session not found")

// SessionStore persists storefront sessions (the browser local-storage
// analog). Implementations must honor the session's ExpiresAt.
type SessionStore interface {
	Save(ctx context.Context, session *entity.Session) error
	Find(ctx context.Context, id string) (*entity.Session, error)
	Delete(ctx context.Context, id string) error
}
