// Package seed loads bootstrap user accounts from a YAML file at startup.
package seed

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v3"

	"github.com/linkstash/linkstash/internal/logger"
	"github.com/linkstash/linkstash/internal/store"
)

// Account is a single entry in users.yaml.
type Account struct {
	Email    string `yaml:"email"`
	Password string `yaml:"password"`
}

// File is the root structure of users.yaml.
type File struct {
	Users []Account `yaml:"users"`
}

// Loader reads seed accounts and inserts them into the user store.
type Loader struct {
	filePath string
	users    store.UserStore
	logger   logger.Logger
}

// NewLoader creates a seed loader for the given file path.
func NewLoader(filePath string, users store.UserStore, log logger.Logger) *Loader {
	return &Loader{
		filePath: filePath,
		users:    users,
		logger:   log,
	}
}

// Load parses the file and creates each account. Entries with a missing
// email or password are skipped with a warning; already-registered
// emails are skipped silently so reloading the same file is harmless.
func (l *Loader) Load(ctx context.Context) (int, error) {
	data, err := os.ReadFile(l.filePath)
	if err != nil {
		return 0, fmt.Errorf("failed to read seed file: %w", err)
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return 0, fmt.Errorf("failed to parse seed yaml: %w", err)
	}

	created := 0
	for _, acc := range f.Users {
		email := strings.TrimSpace(acc.Email)
		if email == "" || acc.Password == "" {
			l.logger.Warn("skipping seed account with missing email or password",
				logger.String("email", email))
			continue
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(acc.Password), bcrypt.DefaultCost)
		if err != nil {
			return created, fmt.Errorf("failed to hash seed password for %s: %w", email, err)
		}

		if _, err := l.users.Create(ctx, email, string(hash)); err != nil {
			if errors.Is(err, store.ErrEmailTaken) {
				continue
			}
			return created, fmt.Errorf("failed to create seed user %s: %w", email, err)
		}
		created++
	}

	l.logger.Info("seed accounts loaded",
		logger.String("file", l.filePath),
		logger.Int("created", created))

	return created, nil
}
