package store

import (
	"context"
	"path/filepath"
	"testing"
)

func TestMemoryStoreBasics(t *testing.T) {
	ctx := context.Background()

	s, err := NewMemory("")
	if err != nil {
		t.Fatalf("NewMemory() error = %v", err)
	}

	if _, ok, _ := s.Get(ctx, "missing"); ok {
		t.Error("Get() of missing key reported ok")
	}

	if err := s.Put(ctx, "videos/a", "1"); err != nil {
		t.Fatalf("Put() error = %v", err)
	}

	value, ok, err := s.Get(ctx, "videos/a")
	if err != nil || !ok || value != "1" {
		t.Fatalf("Get() = (%q, %v, %v), want (1, true, nil)", value, ok, err)
	}

	// overwrite
	if err := s.Put(ctx, "videos/a", "2"); err != nil {
		t.Fatalf("Put() error = %v", err)
	}
	if value, _, _ := s.Get(ctx, "videos/a"); value != "2" {
		t.Errorf("Get() after overwrite = %q, want 2", value)
	}

	if err := s.Delete(ctx, "videos/a"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, ok, _ := s.Get(ctx, "videos/a"); ok {
		t.Error("Get() after delete reported ok")
	}

	// deleting again is not an error
	if err := s.Delete(ctx, "videos/a"); err != nil {
		t.Errorf("Delete() of missing key error = %v", err)
	}
}

func TestMemoryStoreScan(t *testing.T) {
	ctx := context.Background()

	s, err := NewMemory("")
	if err != nil {
		t.Fatalf("NewMemory() error = %v", err)
	}

	pairs := map[string]string{
		"videos/zeta":  "z",
		"videos/alpha": "a",
		"videos/mid":   "m",
		"other/key":    "x",
	}
	for key, value := range pairs {
		if err := s.Put(ctx, key, value); err != nil {
			t.Fatalf("Put(%q) error = %v", key, err)
		}
	}

	entries, err := s.Scan(ctx, "videos/")
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}

	want := []Entry{
		{Key: "videos/alpha", Value: "a"},
		{Key: "videos/mid", Value: "m"},
		{Key: "videos/zeta", Value: "z"},
	}
	if len(entries) != len(want) {
		t.Fatalf("Scan() len = %d, want %d", len(entries), len(want))
	}
	for i := range want {
		if entries[i] != want[i] {
			t.Errorf("Scan()[%d] = %+v, want %+v", i, entries[i], want[i])
		}
	}
}

func TestMemoryStorePersistence(t *testing.T) {
	ctx := context.Background()
	file := filepath.Join(t.TempDir(), "links.json")

	s, err := NewMemory(file)
	if err != nil {
		t.Fatalf("NewMemory() error = %v", err)
	}
	if err := s.Put(ctx, "videos/a", "1"); err != nil {
		t.Fatalf("Put() error = %v", err)
	}
	if err := s.Put(ctx, "videos/b", "2"); err != nil {
		t.Fatalf("Put() error = %v", err)
	}
	if err := s.Delete(ctx, "videos/b"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	// a fresh store picks up the persisted snapshot
	reloaded, err := NewMemory(file)
	if err != nil {
		t.Fatalf("NewMemory() reload error = %v", err)
	}

	value, ok, err := reloaded.Get(ctx, "videos/a")
	if err != nil || !ok || value != "1" {
		t.Errorf("Get() after reload = (%q, %v, %v), want (1, true, nil)", value, ok, err)
	}
	if _, ok, _ := reloaded.Get(ctx, "videos/b"); ok {
		t.Error("deleted key survived reload")
	}
}

func TestOpenUnknownBackend(t *testing.T) {
	if _, err := Open(context.Background(), Config{Backend: "bogus"}); err == nil {
		t.Error("Open() with unknown backend did not fail")
	}
}
