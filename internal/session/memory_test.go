package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStorePutGet(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, "tok", 7, time.Hour))

	userID, err := s.Get(ctx, "tok")
	require.NoError(t, err)
	assert.Equal(t, int64(7), userID)
}

func TestMemoryStoreGetUnknownToken(t *testing.T) {
	s := NewMemoryStore()

	_, err := s.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStoreLazyExpiry(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	now := time.Now()
	s.now = func() time.Time { return now }
	require.NoError(t, s.Put(ctx, "tok", 7, time.Minute))

	// Advance past expiry without running any sweep: Get must already
	// treat the entry as absent.
	s.now = func() time.Time { return now.Add(2 * time.Minute) }

	_, err := s.Get(ctx, "tok")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, 1, s.Len(), "entry should still occupy memory until pruned")
}

func TestMemoryStoreDeleteExpired(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	now := time.Now()
	s.now = func() time.Time { return now }
	require.NoError(t, s.Put(ctx, "stale", 1, time.Minute))
	require.NoError(t, s.Put(ctx, "fresh", 2, time.Hour))

	s.now = func() time.Time { return now.Add(10 * time.Minute) }

	removed, err := s.DeleteExpired(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, removed)
	assert.Equal(t, 1, s.Len())

	_, err = s.Get(ctx, "fresh")
	assert.NoError(t, err)
}

func TestMemoryStoreDelete(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, "tok", 7, time.Hour))
	require.NoError(t, s.Delete(ctx, "tok"))

	_, err := s.Get(ctx, "tok")
	assert.ErrorIs(t, err, ErrNotFound)

	// Deleting a token that is already gone is not an error.
	assert.NoError(t, s.Delete(ctx, "tok"))
}

func TestNewTokenUnique(t *testing.T) {
	a, err := NewToken()
	require.NoError(t, err)
	b, err := NewToken()
	require.NoError(t, err)

	assert.NotEmpty(t, a)
	assert.NotEqual(t, a, b)
}
