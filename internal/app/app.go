package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/linkstash/linkstash/internal/config"
	"github.com/linkstash/linkstash/internal/fetch"
	"github.com/linkstash/linkstash/internal/httpserver"
	"github.com/linkstash/linkstash/internal/httpserver/deps"
	"github.com/linkstash/linkstash/internal/ingest"
	"github.com/linkstash/linkstash/internal/logger"
	"github.com/linkstash/linkstash/internal/redis"
	"github.com/linkstash/linkstash/internal/scheduler"
	"github.com/linkstash/linkstash/internal/seed"
	"github.com/linkstash/linkstash/internal/session"
	"github.com/linkstash/linkstash/internal/store/memory"
	"github.com/linkstash/linkstash/internal/version"
)

type App struct {
	cfg         *config.Config
	logger      logger.Logger
	server      *httpserver.Server
	redisClient *goredis.Client
	pruner      *scheduler.SessionPruner
}

func New() (*App, error) {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	loggerClient := logger.New(cfg.LogLevel, cfg.PrettyLog)

	// Stores are created once here and injected everywhere; there is no
	// ambient/global state.
	bookmarks := memory.NewBookmarkStore()
	users := memory.NewUserStore()

	// Sessions live in Redis when an address is configured, otherwise
	// in memory.
	var sessions session.Store
	var redisClient *goredis.Client
	if cfg.RedisAddr != "" {
		client, err := redis.New(redis.ConnectOptions{
			Addr:           cfg.RedisAddr,
			User:           cfg.RedisUser,
			Password:       cfg.RedisPassword,
			DB:             cfg.RedisDB,
			DialTimeout:    cfg.RedisDialTimeout,
			ReadTimeout:    cfg.RedisReadTimeout,
			WriteTimeout:   cfg.RedisWriteTimeout,
			PoolSize:       cfg.RedisPoolSize,
			ConnectTimeout: cfg.RedisConnectTimeout,
			RetryInterval:  cfg.RedisRetryInterval,
			MaxWait:        cfg.RedisMaxWait,
			PingTimeout:    cfg.RedisPingTimeout,
			WarnThreshold:  cfg.RedisWarnThreshold,
		}, loggerClient)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		redisClient = client
		sessions = session.NewRedisStore(client)
		loggerClient.Info("sessions backed by redis",
			logger.String("addr", cfg.RedisAddr))
	} else {
		sessions = session.NewMemoryStore()
		loggerClient.Info("sessions backed by memory")
	}

	// Seed bootstrap accounts if a users file is configured.
	if cfg.UsersFile != "" {
		loader := seed.NewLoader(cfg.UsersFile, users, loggerClient)
		if _, err := loader.Load(context.Background()); err != nil {
			loggerClient.Warn("failed to load seed accounts",
				logger.String("file", cfg.UsersFile),
				logger.Error(err))
		}
	}

	metaFetcher := fetch.NewMetaFetcher(cfg.FetchTimeout, loggerClient)
	summaryFetcher := fetch.NewSummaryFetcher(cfg.SummaryEndpoint, cfg.FetchTimeout, loggerClient)
	ingestService := ingest.NewService(metaFetcher, summaryFetcher, bookmarks, loggerClient)

	pruner := scheduler.NewSessionPruner(sessions, loggerClient, cfg.SessionPruneInterval)

	d := deps.Deps{
		Logger:         loggerClient,
		StartTime:      time.Now(),
		Version:        version.Version,
		Commit:         version.Commit,
		BuildDate:      version.BuildDate,
		GoVersion:      version.GoVersion,
		Bookmarks:      bookmarks,
		Users:          users,
		Sessions:       sessions,
		Ingest:         ingestService,
		SessionTTL:     cfg.SessionTTL,
		SessionCookie:  cfg.SessionCookie,
		SecureCookie:   cfg.SecureCookie,
		TrustProxy:     cfg.TrustProxy,
		AuthRateBurst:  cfg.AuthRateBurst,
		AuthRatePerMin: cfg.AuthRatePerMin,
	}

	server := httpserver.New(cfg, loggerClient, d)

	return &App{
		cfg:         cfg,
		logger:      loggerClient,
		server:      server,
		redisClient: redisClient,
		pruner:      pruner,
	}, nil
}

func (a *App) Run() error {
	a.logger.Infof("🚀 Starting linkstash v%s on %s", version.Version, a.cfg.ListenPort)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Start session pruner
	if err := a.pruner.Start(ctx); err != nil {
		return fmt.Errorf("failed to start session pruner: %w", err)
	}
	a.logger.Info("session pruner started",
		logger.Duration("interval", a.cfg.SessionPruneInterval))

	errCh := make(chan error, 1)
	go func() {
		if err := a.server.Start(); err != nil {
			errCh <- fmt.Errorf("http server error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("⏳ Shutting down gracefully...")
	case err := <-errCh:
		return err
	}

	a.pruner.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()
	if err := a.server.Stop(shutdownCtx); err != nil {
		return fmt.Errorf("failed to stop server: %w", err)
	}

	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.logger.Warnf("failed to close redis: %v", err)
		}
	}

	a.logger.Info("✅ linkstash stopped cleanly")
	return nil
}
