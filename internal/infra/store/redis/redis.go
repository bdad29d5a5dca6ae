// Package redis implements a metadata store on Redis so cached state
// (notably the upstream access token) survives across build invocations.
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mittagsplan/loader/internal/infra/store"
)

// Keys self-expire after a day; values carry their own finer-grained
// expiry where it matters.
const keyTTL = 24 * time.Hour

// Config holds Redis connection configuration.
type Config struct {
	URL       string `yaml:"url"`
	Password  string `yaml:"password"`
	KeyPrefix string `yaml:"key_prefix"`
}

// MetaStore implements store.MetaStore on a Redis connection.
type MetaStore struct {
	rdb    *redis.Client
	prefix string
}

// NewMetaStore connects to Redis and verifies the connection.
func NewMetaStore(cfg Config) (*MetaStore, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}
	if cfg.Password != "" {
		opts.Password = cfg.Password
	}

	rdb := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	prefix := cfg.KeyPrefix
	if prefix == "" {
		prefix = "menuloader"
	}
	return &MetaStore{rdb: rdb, prefix: prefix}, nil
}

// Close closes the Redis connection.
func (s *MetaStore) Close() error {
	return s.rdb.Close()
}

func (s *MetaStore) key(key string) string {
	return fmt.Sprintf("%s:%s", s.prefix, key)
}

func (s *MetaStore) Get(ctx context.Context, key string) (string, error) {
	val, err := s.rdb.Get(ctx, s.key(key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", store.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("redis get %s: %w", key, err)
	}
	return val, nil
}

func (s *MetaStore) Set(ctx context.Context, key, value string) error {
	if err := s.rdb.Set(ctx, s.key(key), value, keyTTL).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

func (s *MetaStore) Delete(ctx context.Context, key string) error {
	if err := s.rdb.Del(ctx, s.key(key)).Err(); err != nil {
		return fmt.Errorf("redis del %s: %w", key, err)
	}
	return nil
}
