package seed

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/linkstash/linkstash/internal/logger"
	"github.com/linkstash/linkstash/internal/store/memory"
)

func writeSeedFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "users.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write seed file: %v", err)
	}
	return path
}

func TestLoaderLoad(t *testing.T) {
	path := writeSeedFile(t, `users:
  - email: alice@example.com
    password: correct-horse
  - email: bob@example.com
    password: battery-staple
`)

	users := memory.NewUserStore()
	l := NewLoader(path, users, logger.New("error", false))

	created, err := l.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if created != 2 {
		t.Errorf("Load() created %d users, want 2", created)
	}

	u, err := users.GetByEmail(context.Background(), "alice@example.com")
	if err != nil {
		t.Fatalf("seeded user not found: %v", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("correct-horse")); err != nil {
		t.Errorf("seeded password hash does not match: %v", err)
	}
}

func TestLoaderSkipsIncompleteEntries(t *testing.T) {
	path := writeSeedFile(t, `users:
  - email: ""
    password: something
  - email: carol@example.com
    password: ""
  - email: dave@example.com
    password: ok-password
`)

	users := memory.NewUserStore()
	l := NewLoader(path, users, logger.New("error", false))

	created, err := l.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if created != 1 {
		t.Errorf("Load() created %d users, want 1", created)
	}
}

func TestLoaderReloadIsIdempotent(t *testing.T) {
	path := writeSeedFile(t, `users:
  - email: erin@example.com
    password: some-password
`)

	users := memory.NewUserStore()
	l := NewLoader(path, users, logger.New("error", false))

	if _, err := l.Load(context.Background()); err != nil {
		t.Fatalf("first Load() failed: %v", err)
	}
	created, err := l.Load(context.Background())
	if err != nil {
		t.Fatalf("second Load() failed: %v", err)
	}
	if created != 0 {
		t.Errorf("second Load() created %d users, want 0", created)
	}
}

func TestLoaderMissingFile(t *testing.T) {
	users := memory.NewUserStore()
	l := NewLoader("/nonexistent/users.yaml", users, logger.New("error", false))

	if _, err := l.Load(context.Background()); err == nil {
		t.Error("Load() succeeded for missing file, want error")
	}
}

func TestLoaderMalformedYAML(t *testing.T) {
	path := writeSeedFile(t, "users: [not: valid: yaml")

	users := memory.NewUserStore()
	l := NewLoader(path, users, logger.New("error", false))

	if _, err := l.Load(context.Background()); err == nil {
		t.Error("Load() succeeded for malformed yaml, want error")
	}
}
