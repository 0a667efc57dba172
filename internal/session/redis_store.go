package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrRedisUnavailable wraps failures talking to the session redis.
var ErrRedisUnavailable = errors.New("session redis unavailable")

const (
	fieldAccess  = "access_token"
	fieldRefresh = "refresh_token"

	defaultRedisTimeout = 2 * time.Second
)

// RedisStore keeps the token pair in a redis hash so several machines can
// share one login.
type RedisStore struct {
	rdb     redis.UniversalClient
	key     string
	timeout time.Duration
}

var _ Store = (*RedisStore)(nil)

// NewRedisStore stores the pair under "<prefix>:session:<name>".
func NewRedisStore(rdb redis.UniversalClient, prefix, name string) *RedisStore {
	if prefix == "" {
		prefix = "coursekit"
	}
	if name == "" {
		name = "default"
	}
	return &RedisStore{
		rdb:     rdb,
		key:     prefix + ":session:" + name,
		timeout: defaultRedisTimeout,
	}
}

// NewRedisStoreFromURL connects using a redis:// URL.
func NewRedisStoreFromURL(rawURL, name string) (*RedisStore, error) {
	opts, err := redis.ParseURL(rawURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis url: %w", err)
	}
	return NewRedisStore(redis.NewClient(opts), "", name), nil
}

// Key returns the redis key holding the pair.
func (s *RedisStore) Key() string {
	return s.key
}

func (s *RedisStore) Load() (Tokens, error) {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	values, err := s.rdb.HGetAll(ctx, s.key).Result()
	if err != nil {
		return Tokens{}, fmt.Errorf("%w: %w", ErrRedisUnavailable, err)
	}

	return Tokens{Access: values[fieldAccess], Refresh: values[fieldRefresh]}, nil
}

// Save replaces the stored pair. Absent tokens are removed from the hash.
func (s *RedisStore) Save(tokens Tokens) error {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	fields := map[string]any{}
	if tokens.Access != "" {
		fields[fieldAccess] = tokens.Access
	}
	if tokens.Refresh != "" {
		fields[fieldRefresh] = tokens.Refresh
	}

	_, err := s.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, s.key)
		if len(fields) > 0 {
			pipe.HSet(ctx, s.key, fields)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrRedisUnavailable, err)
	}

	return nil
}

func (s *RedisStore) Clear() error {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	if err := s.rdb.Del(ctx, s.key).Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrRedisUnavailable, err)
	}
	return nil
}

// Close releases the redis connection.
func (s *RedisStore) Close() error {
	return s.rdb.Close()
}
