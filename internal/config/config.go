package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	ListenPort      string        // ex: ":8080"
	ShutdownTimeout time.Duration // ex: 5s

	LogLevel  string // "debug" | "info" | "warn" | "error"
	PrettyLog bool   // true => zap dev (color), false => zap prod (JSON)

	FetchTimeout    time.Duration // bound on each external enrichment call
	SummaryEndpoint string        // summarization API base URL

	SessionTTL           time.Duration // session lifetime
	SessionPruneInterval time.Duration // expired-session sweep cadence (default: 24h)
	SessionCookie        string        // session cookie name
	SecureCookie         bool          // set Secure on the session cookie

	UsersFile string // optional users.yaml seed file (empty = no seeding)

	// Redis (optional: empty addr = in-memory sessions)
	RedisAddr           string
	RedisUser           string
	RedisPassword       string
	RedisDB             int
	RedisDialTimeout    time.Duration
	RedisReadTimeout    time.Duration
	RedisWriteTimeout   time.Duration
	RedisPoolSize       int
	RedisConnectTimeout time.Duration // total time to retry connecting
	RedisRetryInterval  time.Duration // initial wait between retries, grows exponentially
	RedisMaxWait        time.Duration // max wait between retries
	RedisPingTimeout    time.Duration // timeout for each ping attempt
	RedisWarnThreshold  int           // warn after this many attempts

	TrustProxy bool // true => trust X-Forwarded-For headers

	AuthRateBurst  int // token bucket burst for /api/register and /api/login
	AuthRatePerMin int // token bucket refill per client IP per minute
}

func Load() *Config {
	return &Config{
		// Server settings
		ListenPort:      getenv("LINKSTASH_LISTEN_PORT", ":8080"),
		ShutdownTimeout: mustDuration("LINKSTASH_SHUTDOWN_TIMEOUT", 5*time.Second),

		// Logging
		LogLevel:  getenv("LINKSTASH_LOG_LEVEL", "info"),
		PrettyLog: mustBool("LINKSTASH_PRETTY_LOG", true),

		// Enrichment
		FetchTimeout:    mustDuration("LINKSTASH_FETCH_TIMEOUT", 15*time.Second),
		SummaryEndpoint: getenv("LINKSTASH_SUMMARY_ENDPOINT", "https://api.jina.ai/v1/summarize"),

		// Sessions
		SessionTTL:           mustDuration("LINKSTASH_SESSION_TTL", 7*24*time.Hour),
		SessionPruneInterval: mustDuration("LINKSTASH_SESSION_PRUNE_INTERVAL", 24*time.Hour),
		SessionCookie:        getenv("LINKSTASH_SESSION_COOKIE", "linkstash_session"),
		SecureCookie:         mustBool("LINKSTASH_SECURE_COOKIE", false),

		// Seed accounts
		UsersFile: getenv("LINKSTASH_USERS_FILE", ""),

		// Redis settings (all ignored when addr is empty)
		RedisAddr:           getenv("LINKSTASH_REDIS_ADDR", ""),
		RedisUser:           getenv("LINKSTASH_REDIS_USERNAME", "default"),
		RedisPassword:       getenv("LINKSTASH_REDIS_PASSWORD", ""),
		RedisDB:             getenvInt("LINKSTASH_REDIS_DB", 0),
		RedisDialTimeout:    mustDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
		RedisReadTimeout:    mustDuration("REDIS_READ_TIMEOUT", 3*time.Second),
		RedisWriteTimeout:   mustDuration("REDIS_WRITE_TIMEOUT", 3*time.Second),
		RedisPoolSize:       getenvInt("REDIS_POOL_SIZE", 10),
		RedisConnectTimeout: mustDuration("REDIS_CONNECT_TIMEOUT", 30*time.Second),
		RedisRetryInterval:  mustDuration("REDIS_RETRY_INTERVAL", 2*time.Second),
		RedisMaxWait:        mustDuration("REDIS_MAX_WAIT", 10*time.Second),
		RedisPingTimeout:    mustDuration("REDIS_PING_TIMEOUT", 5*time.Second),
		RedisWarnThreshold:  getenvInt("REDIS_WARN_THRESHOLD", 3),

		// Access
		TrustProxy: mustBool("LINKSTASH_TRUST_PROXY", false),

		// Auth rate limiting
		AuthRateBurst:  getenvInt("LINKSTASH_AUTH_RATE_BURST", 5),
		AuthRatePerMin: getenvInt("LINKSTASH_AUTH_RATE_PER_MIN", 10),
	}
}

// Validate rejects configurations that cannot work.
func (c *Config) Validate() error {
	if c.SummaryEndpoint == "" {
		return fmt.Errorf("LINKSTASH_SUMMARY_ENDPOINT must not be empty")
	}
	if c.SessionTTL <= 0 {
		return fmt.Errorf("LINKSTASH_SESSION_TTL must be > 0, got %v", c.SessionTTL)
	}
	if c.FetchTimeout <= 0 {
		return fmt.Errorf("LINKSTASH_FETCH_TIMEOUT must be > 0, got %v", c.FetchTimeout)
	}
	return nil
}

// helpers
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func mustBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func mustDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
