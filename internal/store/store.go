// Package store defines the persistence interfaces for bookmarks and users.
// The in-memory implementations in store/memory are the only ones shipped;
// a real deployment would back these with a database.
package store

import (
	"context"
	"errors"

	"github.com/linkstash/linkstash/internal/domain"
)

var (
	// ErrNotFound is returned when a record does not exist.
	ErrNotFound = errors.New("not found")

	// ErrEmailTaken is returned when a user email is already registered
	// (case-insensitive comparison).
	ErrEmailTaken = errors.New("email already registered")
)

// BookmarkStore is a dumb keyed collection of bookmarks. It performs no
// ownership checks; authorization is enforced by callers.
type BookmarkStore interface {
	// Insert assigns the next ID and the current time to b, stores it
	// and returns the complete record. IDs are monotonic and never
	// reused, even after deletions or under concurrent inserts.
	Insert(ctx context.Context, b domain.Bookmark) (*domain.Bookmark, error)

	// GetByID returns the bookmark or ErrNotFound.
	GetByID(ctx context.Context, id int64) (*domain.Bookmark, error)

	// ListByOwner returns all bookmarks owned by ownerID.
	// Order is not significant across calls.
	ListByOwner(ctx context.Context, ownerID int64) ([]*domain.Bookmark, error)

	// Delete removes the bookmark or returns ErrNotFound.
	Delete(ctx context.Context, id int64) error
}

// UserStore manages registered accounts.
type UserStore interface {
	// Create stores a new user. Returns ErrEmailTaken when the email is
	// already registered under case-insensitive comparison.
	Create(ctx context.Context, email, passwordHash string) (*domain.User, error)

	// GetByID returns the user or ErrNotFound.
	GetByID(ctx context.Context, id int64) (*domain.User, error)

	// GetByEmail looks a user up by email, normalized to lowercase.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}
