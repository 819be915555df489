package store

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// RedisStore backs the registry with a Redis instance. SET/GET/DEL map
// directly; Scan uses SCAN MATCH and sorts client-side, since Redis makes
// no promise about iteration order.
type RedisStore struct {
	logger zerolog.Logger
	client *redis.Client
}

func NewRedis(ctx context.Context, addr, password string, db int) (*RedisStore, error) {
	if strings.TrimSpace(addr) == "" {
		return nil, errors.New("redis addr is required")
	}

	client := redis.NewClient(&redis.Options{
		Addr:       addr,
		Password:   password,
		DB:         db,
		MaxRetries: 2,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &RedisStore{
		logger: log.With().Str("module", "store").Str("backend", "redis").Logger(),
		client: client,
	}, nil
}

func (s *RedisStore) Put(ctx context.Context, key, value string) error {
	return s.client.Set(ctx, key, value, 0).Err()
}

func (s *RedisStore) Get(ctx context.Context, key string) (string, bool, error) {
	value, err := s.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

func (s *RedisStore) Delete(ctx context.Context, key string) error {
	return s.client.Del(ctx, key).Err()
}

func (s *RedisStore) Scan(ctx context.Context, prefix string) ([]Entry, error) {
	var keys []string

	iter := s.client.Scan(ctx, 0, escapeMatch(prefix)+"*", 0).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return nil, err
	}
	if len(keys) == 0 {
		return nil, nil
	}

	sort.Strings(keys)

	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	entries := make([]Entry, 0, len(keys))
	for i, key := range keys {
		// skip keys deleted between SCAN and MGET
		value, ok := values[i].(string)
		if !ok {
			continue
		}
		entries = append(entries, Entry{Key: key, Value: value})
	}

	return entries, nil
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}

// escapeMatch quotes glob metacharacters so a literal prefix cannot be
// widened by user input.
func escapeMatch(s string) string {
	replacer := strings.NewReplacer(
		`*`, `\*`,
		`?`, `\?`,
		`[`, `\[`,
		`]`, `\]`,
		`\`, `\\`,
	)
	return replacer.Replace(s)
}
