package sessionstore

import (
	"context"
	"sync"
	"time"

	"github.com/Benmwania/ecomart/internal/domain/entity"
	"github.com/Benmwania/ecomart/internal/domain/gateway"
	"github.com/Benmwania/ecomart/internal/errors"
)

// MemoryStore keeps sessions in process memory. Sessions are copied on
// the way in and out so callers cannot race on shared state.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]entity.Session
}

// NewMemoryStore creates an empty in-memory session store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]entity.Session)}
}

func (s *MemoryStore) Save(_ context.Context, session *entity.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions[session.ID] = *session

	return nil
}

func (s *MemoryStore) Find(_ context.Context, id string) (*entity.Session, error) {
	s.mu.RLock()
	session, ok := s.sessions[id]
	s.mu.RUnlock()

	if !ok || session.Expired(time.Now()) {
		return nil, errors.WithStack(gateway.ErrSessionNotFound)
	}

	return &session, nil
}

func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, id)

	return nil
}
