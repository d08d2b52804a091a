package deps

import (
	"time"

	"github.com/linkstash/linkstash/internal/ingest"
	"github.com/linkstash/linkstash/internal/logger"
	"github.com/linkstash/linkstash/internal/session"
	"github.com/linkstash/linkstash/internal/store"
)

// Deps carries the shared dependencies handed to route registrars.
// Everything is injected here once at startup; handlers hold no ambient
// or global state.
type Deps struct {
	Logger    logger.Logger
	StartTime time.Time
	Version   string
	Commit    string
	BuildDate string
	GoVersion string

	Bookmarks store.BookmarkStore
	Users     store.UserStore
	Sessions  session.Store
	Ingest    *ingest.Service

	SessionTTL    time.Duration
	SessionCookie string
	SecureCookie  bool

	TrustProxy     bool
	AuthRateBurst  int
	AuthRatePerMin int
}
