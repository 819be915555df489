package store

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// MemoryStore keeps all entries in a map. When a file path is given the
// map is loaded from it at open and rewritten after every mutation, so
// entries survive restarts without an external service.
type MemoryStore struct {
	logger zerolog.Logger
	file   string

	mu      sync.RWMutex
	entries map[string]string
}

func NewMemory(file string) (*MemoryStore, error) {
	s := &MemoryStore{
		logger:  log.With().Str("module", "store").Str("backend", "memory").Logger(),
		file:    file,
		entries: map[string]string{},
	}

	if file == "" {
		return s, nil
	}

	data, err := os.ReadFile(file)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, err
	}

	if err := json.Unmarshal(data, &s.entries); err != nil {
		return nil, err
	}

	s.logger.Info().Int("entries", len(s.entries)).Str("file", file).Msg("store loaded")
	return s, nil
}

func (s *MemoryStore) Put(ctx context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[key] = value
	return s.persist()
}

func (s *MemoryStore) Get(ctx context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	value, ok := s.entries[key]
	return value, ok, nil
}

func (s *MemoryStore) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.entries, key)
	return s.persist()
}

func (s *MemoryStore) Scan(ctx context.Context, prefix string) ([]Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var entries []Entry
	for key, value := range s.entries {
		if strings.HasPrefix(key, prefix) {
			entries = append(entries, Entry{Key: key, Value: value})
		}
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Key < entries[j].Key
	})

	return entries, nil
}

func (s *MemoryStore) Close() error {
	return nil
}

// persist writes the snapshot via a temp file rename. Caller holds the lock.
func (s *MemoryStore) persist() error {
	if s.file == "" {
		return nil
	}

	data, err := json.MarshalIndent(s.entries, "", "  ")
	if err != nil {
		return err
	}

	tmp := s.file + ".tmp"
	if err := os.MkdirAll(filepath.Dir(s.file), 0755); err != nil {
		return err
	}
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return err
	}
	return os.Rename(tmp, s.file)
}
