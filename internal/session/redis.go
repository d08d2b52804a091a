package session

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const sessionKeyPrefix = "linkstash:session:"

// RedisStore backs sessions with Redis. Expiry rides on Redis key TTLs,
// so DeleteExpired has nothing left to do.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore creates a session store on top of an established client.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func sessionKey(token string) string {
	return sessionKeyPrefix + token
}

func (s *RedisStore) Put(ctx context.Context, token string, userID int64, ttl time.Duration) error {
	if err := s.client.Set(ctx, sessionKey(token), strconv.FormatInt(userID, 10), ttl).Err(); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

func (s *RedisStore) Get(ctx context.Context, token string) (int64, error) {
	val, err := s.client.Get(ctx, sessionKey(token)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, ErrNotFound
		}
		return 0, fmt.Errorf("failed to get session: %w", err)
	}

	userID, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("corrupt session value: %w", err)
	}
	return userID, nil
}

func (s *RedisStore) Delete(ctx context.Context, token string) error {
	if err := s.client.Del(ctx, sessionKey(token)).Err(); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// DeleteExpired is a no-op: Redis evicts expired keys on its own.
func (s *RedisStore) DeleteExpired(context.Context) (int, error) {
	return 0, nil
}
