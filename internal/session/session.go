// Package session provides session token storage with time-based expiry.
// Two backends ship: an in-memory map (default) and Redis (used when a
// Redis address is configured).
package session

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"time"
)

// ErrNotFound is returned by Get for tokens that are absent or expired.
// An expired-but-not-yet-pruned entry is indistinguishable from an
// absent one; correctness never depends on the pruning sweep.
var ErrNotFound = errors.New("session not found")

// Store holds session tokens with a TTL.
type Store interface {
	// Put stores a token for userID, expiring after ttl.
	Put(ctx context.Context, token string, userID int64, ttl time.Duration) error

	// Get returns the user ID for token, or ErrNotFound when the token
	// is absent or expired.
	Get(ctx context.Context, token string) (int64, error)

	// Delete removes a token. Deleting an absent token is not an error.
	Delete(ctx context.Context, token string) error

	// DeleteExpired removes expired entries and returns how many were
	// removed. Advisory for memory hygiene only.
	DeleteExpired(ctx context.Context) (int, error)
}

// NewToken returns a cryptographically secure session token
// (32 random bytes, base64url).
func NewToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate session token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
