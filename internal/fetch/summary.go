package fetch

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"time"

	"github.com/linkstash/linkstash/internal/domain"
	"github.com/linkstash/linkstash/internal/logger"
	"github.com/linkstash/linkstash/internal/utils"
)

const (
	// SummaryEmpty is returned when the endpoint answered but produced
	// no summary text.
	SummaryEmpty = "No summary available."

	// SummaryFailed is returned on any fetch failure. Summarization is a
	// convenience, never a blocker to saving a bookmark.
	SummaryFailed = "Summary could not be generated. This might be due to API limits or the content format."
)

// SummaryFetcher calls an external summarization endpoint. The endpoint
// receives the percent-encoded target URL as its "url" query parameter
// and answers with a JSON body carrying a "summary" field.
type SummaryFetcher struct {
	client   *http.Client
	endpoint string
	logger   logger.Logger
}

// NewSummaryFetcher creates a fetcher against the given endpoint with a
// bounded per-request timeout.
func NewSummaryFetcher(endpoint string, timeout time.Duration, log logger.Logger) *SummaryFetcher {
	return &SummaryFetcher{
		client:   &http.Client{Timeout: timeout},
		endpoint: endpoint,
		logger:   log,
	}
}

type summaryResponse struct {
	Summary string `json:"summary"`
}

// Fetch returns a summary for target. It never fails outward: network
// errors, non-success statuses and malformed responses all degrade to
// SummaryFailed; a well-formed but empty answer degrades to SummaryEmpty.
func (f *SummaryFetcher) Fetch(ctx context.Context, target string) string {
	target = domain.NormalizeURL(target)
	apiURL := f.endpoint + "?url=" + url.QueryEscape(target)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return SummaryFailed
	}
	req.Header.Set("Accept", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		f.logger.Debug("summary fetch failed",
			logger.String("url", target),
			logger.Error(err))
		return SummaryFailed
	}
	defer utils.Close(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		f.logger.Debug("summary endpoint returned non-success status",
			logger.String("url", target),
			logger.Int("status", resp.StatusCode))
		return SummaryFailed
	}

	var parsed summaryResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		f.logger.Debug("summary response malformed",
			logger.String("url", target),
			logger.Error(err))
		return SummaryFailed
	}

	if parsed.Summary == "" {
		return SummaryEmpty
	}
	return parsed.Summary
}
