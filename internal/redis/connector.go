// Package redis establishes the Redis connection used by the session
// store, retrying with exponential backoff until a connect timeout.
package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/linkstash/linkstash/internal/logger"
)

// ConnectOptions defines Redis connection and retry behavior.
type ConnectOptions struct {
	Addr           string        // Redis address (ex: "localhost:6379")
	User           string        // optional username
	Password       string        // optional password
	DB             int           // Redis DB number
	DialTimeout    time.Duration
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	PoolSize       int
	ConnectTimeout time.Duration // total time allowed for connection attempts
	RetryInterval  time.Duration // initial wait between retries, grows exponentially
	MaxWait        time.Duration // max wait between retries
	PingTimeout    time.Duration // timeout for each ping attempt
	WarnThreshold  int           // escalate log level after this many attempts
}

func (o ConnectOptions) validate() error {
	if o.ConnectTimeout <= 0 {
		return fmt.Errorf("ConnectTimeout must be > 0, got %v", o.ConnectTimeout)
	}
	if o.RetryInterval <= 0 {
		return fmt.Errorf("RetryInterval must be > 0, got %v", o.RetryInterval)
	}
	if o.MaxWait <= 0 {
		return fmt.Errorf("MaxWait must be > 0, got %v", o.MaxWait)
	}
	if o.PingTimeout <= 0 {
		return fmt.Errorf("PingTimeout must be > 0, got %v", o.PingTimeout)
	}
	return nil
}

// New creates a Redis client and pings it until it answers or
// ConnectTimeout is exhausted, backing off exponentially between
// attempts.
func New(opts ConnectOptions, log logger.Logger) (*redis.Client, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}

	client := redis.NewClient(&redis.Options{
		Addr:         opts.Addr,
		Username:     opts.User,
		Password:     opts.Password,
		DB:           opts.DB,
		DialTimeout:  opts.DialTimeout,
		ReadTimeout:  opts.ReadTimeout,
		WriteTimeout: opts.WriteTimeout,
		PoolSize:     opts.PoolSize,
	})

	log.Info("connecting to redis",
		logger.String("addr", opts.Addr),
		logger.Duration("timeout", opts.ConnectTimeout))

	deadline := time.Now().Add(opts.ConnectTimeout)
	wait := opts.RetryInterval

	for attempt := 1; ; attempt++ {
		ctx, cancel := context.WithTimeout(context.Background(), opts.PingTimeout)
		err := client.Ping(ctx).Err()
		cancel()

		if err == nil {
			if attempt > 1 {
				log.Warn("connected to redis after retry",
					logger.String("addr", opts.Addr),
					logger.Int("attempts", attempt))
			} else {
				log.Info("connected to redis",
					logger.String("addr", opts.Addr))
			}
			return client, nil
		}

		remaining := time.Until(deadline)
		if remaining <= wait {
			log.Error("redis unavailable - failed to connect before timeout",
				logger.String("addr", opts.Addr),
				logger.Int("attempts", attempt),
				logger.Error(err))
			_ = client.Close()
			return nil, fmt.Errorf("failed to connect to redis at %s after %d attempts: %w", opts.Addr, attempt, err)
		}

		if attempt <= opts.WarnThreshold {
			log.Warn("redis connection failed, retrying",
				logger.String("addr", opts.Addr),
				logger.Int("attempt", attempt),
				logger.Duration("next_retry_in", wait),
				logger.Error(err))
		} else {
			log.Error("redis still unavailable - connection attempts failing",
				logger.String("addr", opts.Addr),
				logger.Int("attempt", attempt),
				logger.Duration("next_retry_in", wait),
				logger.Error(err))
		}

		time.Sleep(wait)
		wait *= 2
		if wait > opts.MaxWait {
			wait = opts.MaxWait
		}
	}
}
