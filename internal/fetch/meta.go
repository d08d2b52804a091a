// Package fetch retrieves page metadata and summaries from external
// endpoints. Both fetchers are best-effort: they degrade to fallback
// values instead of returning errors, so a dependency outage never
// blocks saving a bookmark.
package fetch

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/net/html"

	"github.com/linkstash/linkstash/internal/domain"
	"github.com/linkstash/linkstash/internal/logger"
	"github.com/linkstash/linkstash/internal/utils"
)

const (
	// fallbackTitle is used when the page has no (or an empty) <title>.
	fallbackTitle = "Unknown Title"

	maxBodySize = 2 << 20 // 2MB is plenty for <head>
	userAgent   = "linkstash/1.0 (+https://github.com/linkstash/linkstash)"
)

// Meta holds the metadata extracted from a page. The zero-ish degraded
// form is {Title: hostname, Favicon: ""}.
type Meta struct {
	Title   string
	Favicon string
}

// MetaFetcher retrieves a page and extracts its title and favicon URL.
type MetaFetcher struct {
	client *http.Client
	logger logger.Logger
}

// NewMetaFetcher creates a fetcher with a bounded per-request timeout.
func NewMetaFetcher(timeout time.Duration, log logger.Logger) *MetaFetcher {
	return &MetaFetcher{
		client: &http.Client{Timeout: timeout},
		logger: log,
	}
}

// Fetch returns the page title and favicon for pageURL. It never fails
// outward: any network or parse error yields the degraded result with
// the URL's hostname as title and an empty favicon.
func (f *MetaFetcher) Fetch(ctx context.Context, pageURL string) Meta {
	parsed, err := url.Parse(pageURL)
	if err != nil || parsed.Hostname() == "" {
		f.logger.Warn("metadata fetch got unparseable URL",
			logger.String("url", pageURL),
			logger.Error(err))
		return Meta{Title: fallbackTitle}
	}

	degraded := Meta{Title: parsed.Hostname(), Favicon: ""}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return degraded
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml;q=0.9,*/*;q=0.8")

	resp, err := f.client.Do(req)
	if err != nil {
		f.logger.Debug("metadata fetch failed",
			logger.String("url", pageURL),
			logger.Error(err))
		return degraded
	}
	defer utils.Close(resp.Body)

	doc, err := html.Parse(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		f.logger.Debug("metadata parse failed",
			logger.String("url", pageURL),
			logger.Error(err))
		return degraded
	}

	title, iconHref := extractHead(doc)
	if title == "" {
		title = fallbackTitle
	}

	return Meta{
		Title:   title,
		Favicon: domain.ResolveFavicon(parsed, iconHref),
	}
}

// extractHead walks the document once, picking up the first <title> text
// and the href of the first <link rel="icon"> or <link rel="shortcut icon">.
func extractHead(doc *html.Node) (title, iconHref string) {
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if title != "" && iconHref != "" {
			return
		}
		if n.Type == html.ElementNode {
			switch n.Data {
			case "title":
				if title == "" && n.FirstChild != nil {
					title = strings.TrimSpace(n.FirstChild.Data)
				}
			case "link":
				if iconHref == "" && isIconLink(n) {
					iconHref = attr(n, "href")
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return title, iconHref
}

func isIconLink(n *html.Node) bool {
	rel := strings.ToLower(strings.TrimSpace(attr(n, "rel")))
	return rel == "icon" || rel == "shortcut icon"
}

func attr(n *html.Node, name string) string {
	for _, a := range n.Attr {
		if a.Key == name {
			return strings.TrimSpace(a.Val)
		}
	}
	return ""
}
