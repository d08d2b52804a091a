// Package ingest turns a raw URL into a fully enriched, stored bookmark.
package ingest

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/linkstash/linkstash/internal/domain"
	"github.com/linkstash/linkstash/internal/fetch"
	"github.com/linkstash/linkstash/internal/logger"
	"github.com/linkstash/linkstash/internal/store"
)

// ErrInvalidURL is returned when the raw URL is malformed. Validation
// happens before any fetch or store call, so a rejected URL has zero
// side effects.
var ErrInvalidURL = errors.New("invalid URL")

// MetadataFetcher yields page metadata, degraded on failure.
type MetadataFetcher interface {
	Fetch(ctx context.Context, url string) fetch.Meta
}

// SummaryFetcher yields a page summary, degraded on failure.
type SummaryFetcher interface {
	Fetch(ctx context.Context, url string) string
}

// Service orchestrates bookmark creation: it validates and normalizes
// the URL, runs both fetchers concurrently and inserts the merged record.
type Service struct {
	meta      MetadataFetcher
	summary   SummaryFetcher
	bookmarks store.BookmarkStore
	logger    logger.Logger
}

// NewService wires the orchestrator.
func NewService(meta MetadataFetcher, summary SummaryFetcher, bookmarks store.BookmarkStore, log logger.Logger) *Service {
	return &Service{
		meta:      meta,
		summary:   summary,
		bookmarks: bookmarks,
		logger:    log,
	}
}

// Create saves rawURL as a bookmark owned by ownerID and returns the
// stored record with its assigned ID and timestamp.
//
// The two fetchers run concurrently against the same normalized URL and
// neither blocks the other; both resolve with a usable (possibly
// degraded) value, so no partial-failure branching exists here. Exactly
// one store insertion happens per successful call. If ctx is canceled
// while fetching, nothing is inserted.
func (s *Service) Create(ctx context.Context, ownerID int64, rawURL string) (*domain.Bookmark, error) {
	normalized := domain.NormalizeURL(strings.TrimSpace(rawURL))

	parsed, err := url.Parse(normalized)
	if err != nil || !plausibleHost(parsed.Hostname()) {
		return nil, ErrInvalidURL
	}

	start := time.Now()

	var (
		wg      sync.WaitGroup
		meta    fetch.Meta
		summary string
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		meta = s.meta.Fetch(ctx, normalized)
	}()
	go func() {
		defer wg.Done()
		summary = s.summary.Fetch(ctx, normalized)
	}()
	wg.Wait()

	// Caller gone: the fetch results are discarded and no bookmark is
	// written.
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	bookmark, err := s.bookmarks.Insert(ctx, domain.Bookmark{
		UserID:  ownerID,
		URL:     normalized,
		Title:   meta.Title,
		Favicon: meta.Favicon,
		Summary: summary,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to store bookmark: %w", err)
	}

	s.logger.Info("bookmark created",
		logger.Int64("bookmark_id", bookmark.ID),
		logger.Int64("user_id", ownerID),
		logger.String("url", normalized),
		logger.Duration("enrichment", time.Since(start)))

	return bookmark, nil
}

// plausibleHost rejects hostnames that cannot name a reachable site.
// A bare label like "justaword" is treated as malformed input, not as a
// site to fetch; "localhost" stays valid for local testing.
func plausibleHost(host string) bool {
	if host == "" {
		return false
	}
	return strings.Contains(host, ".") || host == "localhost"
}
