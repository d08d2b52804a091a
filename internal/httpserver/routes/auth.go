package routes

import (
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/linkstash/linkstash/internal/httpserver/deps"
	"github.com/linkstash/linkstash/internal/httpserver/handlers"
	"github.com/linkstash/linkstash/internal/httpserver/mw"
)

func init() { Register(registerAuth) }

func registerAuth(r chi.Router, d deps.Deps) {
	// Credential endpoints are rate limited per client IP.
	limited := r.With(mw.RateLimit(mw.RateLimitConfig{
		Burst:             d.AuthRateBurst,
		RefillPerIPPerMin: d.AuthRatePerMin,
		MaxEntries:        10_000,
		SweepInterval:     time.Minute,
		IdleTTL:           15 * time.Minute,
		TrustProxy:        d.TrustProxy,
	}))
	limited.Post("/api/register", handlers.Register(d))
	limited.Post("/api/login", handlers.Login(d))

	r.Post("/api/logout", handlers.Logout(d))
	r.With(mw.Auth(d.Sessions, d.SessionCookie, d.Logger)).Get("/api/user", handlers.CurrentUser(d))
}
