package scheduler

import (
	"context"
	"time"

	"github.com/linkstash/linkstash/internal/logger"
	"github.com/linkstash/linkstash/internal/session"
)

const (
	// DefaultPruneInterval is how often expired sessions are swept.
	DefaultPruneInterval = 24 * time.Hour
)

// SessionPruner periodically removes expired sessions from the store.
// The sweep is advisory: session.Store.Get already ignores expired
// entries, pruning only keeps the store's size bounded.
type SessionPruner struct {
	sessions session.Store
	logger   logger.Logger
	interval time.Duration
	stopCh   chan struct{}
}

// NewSessionPruner creates a pruner sweeping on the given interval.
func NewSessionPruner(sessions session.Store, log logger.Logger, interval time.Duration) *SessionPruner {
	if interval <= 0 {
		interval = DefaultPruneInterval
	}

	return &SessionPruner{
		sessions: sessions,
		logger:   log,
		interval: interval,
		stopCh:   make(chan struct{}),
	}
}

// Start begins the periodic pruning loop.
func (p *SessionPruner) Start(ctx context.Context) error {
	// Run immediately on start
	if err := p.Prune(ctx); err != nil {
		p.logger.Warn("initial session pruning failed",
			logger.Error(err))
	}

	ticker := time.NewTicker(p.interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if err := p.Prune(ctx); err != nil {
					p.logger.Error("session pruning failed",
						logger.Error(err))
				}
			case <-p.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	return nil
}

// Stop stops the pruning loop.
func (p *SessionPruner) Stop() {
	close(p.stopCh)
}

// Prune removes all expired sessions once.
func (p *SessionPruner) Prune(ctx context.Context) error {
	removed, err := p.sessions.DeleteExpired(ctx)
	if err != nil {
		return err
	}

	if removed > 0 {
		p.logger.Info("pruned expired sessions",
			logger.Int("removed", removed))
	} else {
		p.logger.Debug("no expired sessions to prune")
	}

	return nil
}
