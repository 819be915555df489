// Package store abstracts the durable key-value store the registry
// persists into. A backend must provide atomic single-key put/get/delete
// and a prefix scan that yields entries in lexicographic key order.
package store

import (
	"context"
	"fmt"
)

type Entry struct {
	Key   string
	Value string
}

type Store interface {
	Put(ctx context.Context, key, value string) error
	Get(ctx context.Context, key string) (string, bool, error)
	Delete(ctx context.Context, key string) error
	// Scan returns all entries whose key starts with prefix, ordered by key.
	Scan(ctx context.Context, prefix string) ([]Entry, error)
	Close() error
}

// Config selects and parameterizes a backend.
type Config struct {
	Backend string // memory, redis or postgres

	// memory backend
	File string // optional JSON persistence path

	// redis backend
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// postgres backend
	PostgresDSN string
}

func Open(ctx context.Context, cfg Config) (Store, error) {
	switch cfg.Backend {
	case "", "memory":
		return NewMemory(cfg.File)
	case "redis":
		return NewRedis(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	case "postgres":
		return NewPostgres(ctx, cfg.PostgresDSN)
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Backend)
	}
}
