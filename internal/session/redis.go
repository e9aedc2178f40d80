package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

var _ Store = (*RedisStore)(nil)

// RedisStore keeps sessions as `<prefix><hash>` keys whose TTL matches the
// session lifetime, so Redis expires them on its own.
type RedisStore struct {
	rdb    redis.UniversalClient
	prefix string
}

// NewRedisStore returns a Store on rdb.  An empty prefix defaults to
// "session:".
func NewRedisStore(rdb redis.UniversalClient, prefix string) *RedisStore {
	if prefix == "" {
		prefix = "session:"
	}
	return &RedisStore{rdb: rdb, prefix: prefix}
}

func (s *RedisStore) key(token string) string { return s.prefix + hashToken(token) }

func (s *RedisStore) Create(ctx context.Context, userID string, ttl time.Duration) (string, time.Time, error) {
	tok, err := NewToken()
	if err != nil {
		return "", time.Time{}, err
	}
	if err := s.rdb.Set(ctx, s.key(tok), userID, ttl).Err(); err != nil {
		return "", time.Time{}, fmt.Errorf("redis set session: %w", err)
	}
	return tok, time.Now().Add(ttl), nil
}

func (s *RedisStore) Lookup(ctx context.Context, token string) (string, error) {
	uid, err := s.rdb.Get(ctx, s.key(token)).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrNoSession
	}
	if err != nil {
		return "", fmt.Errorf("redis get session: %w", err)
	}
	return uid, nil
}

func (s *RedisStore) Destroy(ctx context.Context, token string) error {
	if err := s.rdb.Del(ctx, s.key(token)).Err(); err != nil {
		return fmt.Errorf("redis del session: %w", err)
	}
	return nil
}
