package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.ListenPort != ":8080" {
		t.Errorf("ListenPort = %q, want :8080", cfg.ListenPort)
	}
	if cfg.SessionTTL != 7*24*time.Hour {
		t.Errorf("SessionTTL = %v, want 168h", cfg.SessionTTL)
	}
	if cfg.SessionPruneInterval != 24*time.Hour {
		t.Errorf("SessionPruneInterval = %v, want 24h", cfg.SessionPruneInterval)
	}
	if cfg.SummaryEndpoint == "" {
		t.Error("SummaryEndpoint should have a default")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("LINKSTASH_LISTEN_PORT", ":9000")
	t.Setenv("LINKSTASH_SESSION_TTL", "1h")
	t.Setenv("LINKSTASH_PRETTY_LOG", "false")
	t.Setenv("LINKSTASH_AUTH_RATE_BURST", "3")

	cfg := Load()

	if cfg.ListenPort != ":9000" {
		t.Errorf("ListenPort = %q, want :9000", cfg.ListenPort)
	}
	if cfg.SessionTTL != time.Hour {
		t.Errorf("SessionTTL = %v, want 1h", cfg.SessionTTL)
	}
	if cfg.PrettyLog {
		t.Error("PrettyLog = true, want false")
	}
	if cfg.AuthRateBurst != 3 {
		t.Errorf("AuthRateBurst = %d, want 3", cfg.AuthRateBurst)
	}
}

func TestLoadIgnoresInvalidValues(t *testing.T) {
	t.Setenv("LINKSTASH_SESSION_TTL", "not-a-duration")
	t.Setenv("LINKSTASH_AUTH_RATE_BURST", "many")

	cfg := Load()

	if cfg.SessionTTL != 7*24*time.Hour {
		t.Errorf("SessionTTL = %v, want default on invalid value", cfg.SessionTTL)
	}
	if cfg.AuthRateBurst != 5 {
		t.Errorf("AuthRateBurst = %d, want default on invalid value", cfg.AuthRateBurst)
	}
}

func TestValidate(t *testing.T) {
	cfg := Load()
	cfg.SummaryEndpoint = ""
	if err := cfg.Validate(); err == nil {
		t.Error("Validate() accepted empty summary endpoint")
	}

	cfg = Load()
	cfg.SessionTTL = 0
	if err := cfg.Validate(); err == nil {
		t.Error("Validate() accepted zero session TTL")
	}
}
