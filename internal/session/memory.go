package session

import (
	"context"
	"sync"
	"time"
)

type entry struct {
	userID    int64
	expiresAt time.Time
}

// MemoryStore keeps sessions in a map guarded by a mutex. Get checks
// expiry lazily; the periodic sweep in scheduler.SessionPruner keeps the
// map from growing unbounded with abandoned sessions.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]entry

	// now is swappable for tests.
	now func() time.Time
}

// NewMemoryStore creates an empty in-memory session store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]entry),
		now:      time.Now,
	}
}

func (s *MemoryStore) Put(_ context.Context, token string, userID int64, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions[token] = entry{
		userID:    userID,
		expiresAt: s.now().Add(ttl),
	}
	return nil
}

func (s *MemoryStore) Get(_ context.Context, token string) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.sessions[token]
	if !ok || s.now().After(e.expiresAt) {
		return 0, ErrNotFound
	}
	return e.userID, nil
}

func (s *MemoryStore) Delete(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, token)
	return nil
}

func (s *MemoryStore) DeleteExpired(_ context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	removed := 0
	for token, e := range s.sessions {
		if now.After(e.expiresAt) {
			delete(s.sessions, token)
			removed++
		}
	}
	return removed, nil
}

// Len returns the number of entries, expired ones included.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.sessions)
}
