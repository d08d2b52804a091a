package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/linkstash/linkstash/internal/domain"
	"github.com/linkstash/linkstash/internal/store"
)

// UserStore keeps users in maps guarded by a mutex. Emails are indexed
// lowercased so uniqueness and lookups are case-insensitive.
type UserStore struct {
	mu      sync.RWMutex
	users   map[int64]*domain.User
	byEmail map[string]int64
	nextID  int64
}

// NewUserStore creates an empty user store.
func NewUserStore() *UserStore {
	return &UserStore{
		users:   make(map[int64]*domain.User),
		byEmail: make(map[string]int64),
		nextID:  1,
	}
}

// Create stores a new user with the next ID. Returns store.ErrEmailTaken
// when the email is already registered under any casing.
func (s *UserStore) Create(_ context.Context, email, passwordHash string) (*domain.User, error) {
	key := strings.ToLower(email)

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byEmail[key]; ok {
		return nil, store.ErrEmailTaken
	}

	u := &domain.User{
		ID:           s.nextID,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now(),
	}
	s.nextID++

	s.users[u.ID] = u
	s.byEmail[key] = u.ID

	out := *u
	return &out, nil
}

// GetByID returns the user or store.ErrNotFound.
func (s *UserStore) GetByID(_ context.Context, id int64) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	out := *u
	return &out, nil
}

// GetByEmail looks a user up by email, case-insensitively.
func (s *UserStore) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byEmail[strings.ToLower(email)]
	if !ok {
		return nil, store.ErrNotFound
	}
	out := *s.users[id]
	return &out, nil
}
