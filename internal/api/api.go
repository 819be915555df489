// Package api mounts the HTTP surface: the admin link generator, the
// access-gated relay endpoints and the session issuance flow. Handlers
// only extract request metadata and delegate to the registry and relay.
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"linkgate/internal/config"
	"linkgate/internal/errx"
	"linkgate/internal/registry"
	"linkgate/internal/relay"
)

type ApiManagerCtx struct {
	logger   zerolog.Logger
	config   *config.Server
	registry *registry.RegistryCtx
	relay    *relay.RelayCtx
}

func New(config *config.Server, registry *registry.RegistryCtx, relay *relay.RelayCtx) *ApiManagerCtx {
	return &ApiManagerCtx{
		logger:   log.With().Str("module", "api").Logger(),
		config:   config,
		registry: registry,
		relay:    relay,
	}
}

func (a *ApiManagerCtx) Mount(r *chi.Mux) {
	r.Get("/", a.LoginPage)
	r.Get("/admin", a.AdminPage)
	r.Post("/generate", a.Generate)
	r.Post("/delete-video", a.DeleteVideo)

	r.Get("/download/*", a.Download)
	r.Get("/play/*", a.Play)
	r.Get("/stream/*", a.Stream)
	r.Get("/auth/*", a.AuthSession)

	r.Get("/fetch-title", a.FetchTitle)
	r.Post("/fetch-title", a.FetchTitle)
}

// slugParam returns the trailing wildcard capture. Slugs may contain
// embedded path separators, so the routes use /* instead of /{slug}.
func slugParam(r *http.Request) string {
	return chi.URLParam(r, "*")
}

// httpError writes the status an error maps to, with a generic body
// that leaks nothing about registry contents or upstream internals.
func (a *ApiManagerCtx) httpError(w http.ResponseWriter, r *http.Request, err error) {
	status := errx.StatusOf(err)

	var body string
	switch errx.KindOf(err) {
	case errx.Invalid:
		body = "Bad Request"
	case errx.NotFound:
		body = "File link not found."
	case errx.Unauthorized:
		body = "Unauthorized"
	case errx.Forbidden:
		body = "Forbidden"
	case errx.Upstream:
		body = "Failed to fetch the file from the source."
	default:
		body = http.StatusText(status)
	}

	a.logger.Warn().Err(err).Int("status", status).Str("path", r.URL.Path).Msg("request failed")
	http.Error(w, body, status)
}

const maxBodySize = 1 << 20

// decodeJSON reads a small JSON request body into v, rejecting unknown
// fields and trailing garbage.
func decodeJSON(r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(nil, r.Body, maxBodySize)
	defer r.Body.Close()

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return errors.New("request body is empty")
		}
		return fmt.Errorf("malformed request body: %w", err)
	}
	if decoder.More() {
		return errors.New("request body contains trailing data")
	}

	return nil
}

func isJSONRequest(r *http.Request) bool {
	contentType := r.Header.Get("Content-Type")
	return strings.HasPrefix(contentType, "application/json")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Err(err).Msg("unable to encode json response")
	}
}
