package ingest

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/linkstash/linkstash/internal/fetch"
	"github.com/linkstash/linkstash/internal/logger"
	"github.com/linkstash/linkstash/internal/store/memory"
)

type stubMeta struct {
	mu    sync.Mutex
	meta  fetch.Meta
	urls  []string
	delay time.Duration
}

func (s *stubMeta) Fetch(_ context.Context, url string) fetch.Meta {
	if s.delay > 0 {
		time.Sleep(s.delay)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.urls = append(s.urls, url)
	return s.meta
}

type stubSummary struct {
	mu      sync.Mutex
	summary string
	urls    []string
	delay   time.Duration
}

func (s *stubSummary) Fetch(_ context.Context, url string) string {
	if s.delay > 0 {
		time.Sleep(s.delay)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.urls = append(s.urls, url)
	return s.summary
}

func newService(meta *stubMeta, summary *stubSummary) (*Service, *memory.BookmarkStore) {
	bookmarks := memory.NewBookmarkStore()
	svc := NewService(meta, summary, bookmarks, logger.New("error", false))
	return svc, bookmarks
}

func TestCreateNormalizesAndStores(t *testing.T) {
	meta := &stubMeta{meta: fetch.Meta{Title: "Example", Favicon: "https://example.com/favicon.ico"}}
	summary := &stubSummary{summary: "A summary."}
	svc, bookmarks := newService(meta, summary)

	b, err := svc.Create(context.Background(), 7, "example.com")
	require.NoError(t, err)

	assert.Equal(t, int64(7), b.UserID)
	assert.Equal(t, "https://example.com", b.URL)
	assert.Equal(t, "Example", b.Title)
	assert.Equal(t, "A summary.", b.Summary)
	assert.NotZero(t, b.ID)
	assert.False(t, b.CreatedAt.IsZero())

	// Both fetchers saw the same normalized URL.
	assert.Equal(t, []string{"https://example.com"}, meta.urls)
	assert.Equal(t, []string{"https://example.com"}, summary.urls)

	assert.Equal(t, 1, bookmarks.Count())
}

func TestCreateRejectsMalformedURL(t *testing.T) {
	meta := &stubMeta{}
	summary := &stubSummary{}
	svc, bookmarks := newService(meta, summary)

	for _, raw := range []string{"", "   ", "not a url", "justaword", "https://"} {
		_, err := svc.Create(context.Background(), 1, raw)
		assert.ErrorIs(t, err, ErrInvalidURL, "raw=%q", raw)
	}

	// Validation failures never reach fetchers or store.
	assert.Empty(t, meta.urls)
	assert.Empty(t, summary.urls)
	assert.Equal(t, 0, bookmarks.Count())
}

func TestCreateDegradedSummaryStillStores(t *testing.T) {
	meta := &stubMeta{meta: fetch.Meta{Title: "example.com"}}
	summary := &stubSummary{summary: fetch.SummaryFailed}
	svc, bookmarks := newService(meta, summary)

	b, err := svc.Create(context.Background(), 3, "https://example.com")
	require.NoError(t, err)

	assert.Equal(t, fetch.SummaryFailed, b.Summary)
	assert.Equal(t, 1, bookmarks.Count())
}

func TestCreateFetchersRunConcurrently(t *testing.T) {
	const delay = 60 * time.Millisecond
	meta := &stubMeta{delay: delay}
	summary := &stubSummary{delay: delay}
	svc, _ := newService(meta, summary)

	start := time.Now()
	_, err := svc.Create(context.Background(), 1, "https://example.com")
	require.NoError(t, err)

	// Sequential execution would take at least 2*delay.
	assert.Less(t, time.Since(start), 2*delay)
}

func TestCreateCanceledContextWritesNothing(t *testing.T) {
	meta := &stubMeta{delay: 30 * time.Millisecond}
	summary := &stubSummary{}
	svc, bookmarks := newService(meta, summary)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.Create(ctx, 1, "https://example.com")
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, bookmarks.Count())
}

func TestCreateConcurrentOwnersGetDistinctBookmarks(t *testing.T) {
	meta := &stubMeta{meta: fetch.Meta{Title: "Example"}}
	summary := &stubSummary{summary: "s"}
	svc, bookmarks := newService(meta, summary)

	var wg sync.WaitGroup
	ids := make(chan int64, 2)
	for _, owner := range []int64{1, 2} {
		wg.Add(1)
		go func(owner int64) {
			defer wg.Done()
			b, err := svc.Create(context.Background(), owner, "https://example.com")
			if err != nil {
				t.Errorf("Create() failed: %v", err)
				return
			}
			ids <- b.ID
		}(owner)
	}
	wg.Wait()
	close(ids)

	seen := make(map[int64]bool)
	for id := range ids {
		assert.False(t, seen[id], "bookmark ID %d assigned twice", id)
		seen[id] = true
	}

	for _, owner := range []int64{1, 2} {
		list, err := bookmarks.ListByOwner(context.Background(), owner)
		require.NoError(t, err)
		assert.Len(t, list, 1)
		assert.Equal(t, owner, list[0].UserID)
	}
}
