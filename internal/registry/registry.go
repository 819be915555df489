// Package registry owns the slug -> link mapping. It is the only writer
// to the underlying store; every operation is a single store round trip,
// so registry state always matches the store's last acknowledged write.
package registry

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"linkgate/internal/errx"
	"linkgate/internal/store"
)

// LinkEntry is the sole persisted entity.
type LinkEntry struct {
	Slug        string `json:"-"`
	SourceURL   string `json:"url"`
	DisplayName string `json:"name,omitempty"`
}

// Filename returns the name used for Content-Disposition, falling back
// to the slug when no display name was stored.
func (e LinkEntry) Filename() string {
	if e.DisplayName != "" {
		return e.DisplayName
	}
	return e.Slug
}

type RegistryCtx struct {
	logger zerolog.Logger
	store  store.Store
	prefix string
}

func New(s store.Store, prefix string) *RegistryCtx {
	return &RegistryCtx{
		logger: log.With().Str("module", "registry").Logger(),
		store:  s,
		prefix: prefix,
	}
}

// Create normalizes name into a slug and persists the entry under it,
// overwriting any previous entry for the same slug (last-write-wins).
// Concurrent creates for the same slug race under the same rule; the
// store's per-key atomicity means one of them wins whole.
func (r *RegistryCtx) Create(ctx context.Context, name, sourceURL string) (string, error) {
	const op = "registry.Create"

	if strings.TrimSpace(sourceURL) == "" {
		return "", errx.E(op, errx.Invalid, errors.New("source url is required"))
	}

	slug := Slugify(name)
	if slug == "" {
		return "", errx.E(op, errx.Invalid, errors.New("name normalizes to an empty slug"))
	}

	value, err := json.Marshal(LinkEntry{SourceURL: sourceURL, DisplayName: name})
	if err != nil {
		return "", errx.E(op, errx.Internal, err)
	}

	if err := r.store.Put(ctx, r.prefix+slug, string(value)); err != nil {
		return "", errx.E(op, errx.Internal, err)
	}

	r.logger.Info().Str("slug", slug).Msg("link created")
	return slug, nil
}

// Resolve is an exact-match lookup; slugs are normalized at creation
// time, so no case folding happens here.
func (r *RegistryCtx) Resolve(ctx context.Context, slug string) (LinkEntry, error) {
	const op = "registry.Resolve"

	value, ok, err := r.store.Get(ctx, r.prefix+slug)
	if err != nil {
		return LinkEntry{}, errx.E(op, errx.Internal, err)
	}
	if !ok {
		return LinkEntry{}, errx.E(op, errx.NotFound, errors.New("unknown slug"))
	}

	return decodeEntry(slug, value), nil
}

// Delete is idempotent; removing an unknown slug is not an error.
func (r *RegistryCtx) Delete(ctx context.Context, slug string) error {
	const op = "registry.Delete"

	if err := r.store.Delete(ctx, r.prefix+slug); err != nil {
		return errx.E(op, errx.Internal, err)
	}

	r.logger.Info().Str("slug", slug).Msg("link deleted")
	return nil
}

// List scans the registry's key namespace in the store's natural key
// order. Length is unbounded; only the admin surface consumes it.
func (r *RegistryCtx) List(ctx context.Context) ([]LinkEntry, error) {
	const op = "registry.List"

	kvs, err := r.store.Scan(ctx, r.prefix)
	if err != nil {
		return nil, errx.E(op, errx.Internal, err)
	}

	entries := make([]LinkEntry, 0, len(kvs))
	for _, kv := range kvs {
		slug := strings.TrimPrefix(kv.Key, r.prefix)
		entries = append(entries, decodeEntry(slug, kv.Value))
	}

	return entries, nil
}

// decodeEntry reads the stored value. Older deployments stored the bare
// source URL instead of a record; those decode with the slug as display
// name.
func decodeEntry(slug, value string) LinkEntry {
	var entry LinkEntry
	if strings.HasPrefix(value, "{") && json.Unmarshal([]byte(value), &entry) == nil && entry.SourceURL != "" {
		entry.Slug = slug
		return entry
	}

	return LinkEntry{Slug: slug, SourceURL: value}
}
