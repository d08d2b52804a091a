// Package memory provides in-memory store implementations backed by maps.
// State is volatile: everything is lost at process exit.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/linkstash/linkstash/internal/domain"
	"github.com/linkstash/linkstash/internal/store"
)

// BookmarkStore keeps bookmarks in a map guarded by a mutex.
// The ID counter is incremented under the same lock, so two concurrent
// inserts can never receive the same ID.
type BookmarkStore struct {
	mu        sync.RWMutex
	bookmarks map[int64]*domain.Bookmark
	nextID    int64
}

// NewBookmarkStore creates an empty bookmark store.
func NewBookmarkStore() *BookmarkStore {
	return &BookmarkStore{
		bookmarks: make(map[int64]*domain.Bookmark),
		nextID:    1,
	}
}

// Insert assigns the next ID and creation time, stores the record and
// returns a copy of it.
func (s *BookmarkStore) Insert(_ context.Context, b domain.Bookmark) (*domain.Bookmark, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b.ID = s.nextID
	b.CreatedAt = time.Now()
	s.nextID++

	stored := b
	s.bookmarks[stored.ID] = &stored

	out := stored
	return &out, nil
}

// GetByID returns the bookmark or store.ErrNotFound.
func (s *BookmarkStore) GetByID(_ context.Context, id int64) (*domain.Bookmark, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	b, ok := s.bookmarks[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	out := *b
	return &out, nil
}

// ListByOwner returns all bookmarks owned by ownerID, in no particular order.
func (s *BookmarkStore) ListByOwner(_ context.Context, ownerID int64) ([]*domain.Bookmark, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*domain.Bookmark, 0)
	for _, b := range s.bookmarks {
		if b.UserID != ownerID {
			continue
		}
		cp := *b
		out = append(out, &cp)
	}
	return out, nil
}

// Delete removes the bookmark. Deleting an absent ID returns
// store.ErrNotFound; the freed ID is never reassigned.
func (s *BookmarkStore) Delete(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.bookmarks[id]; !ok {
		return store.ErrNotFound
	}
	delete(s.bookmarks, id)
	return nil
}

// Count returns the number of stored bookmarks.
func (s *BookmarkStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.bookmarks)
}
