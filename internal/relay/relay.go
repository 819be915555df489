// Package relay performs the upstream fetch and the downstream byte
// relay. The body is piped, never buffered whole, so throughput follows
// the slower of the two connections and a dropped client cancels the
// upstream request through the request context.
package relay

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"linkgate/internal/errx"
	"linkgate/internal/metrics"
	"linkgate/internal/registry"
)

// Mode selects the header policy for a relayed response.
type Mode int

const (
	// Download forces a save dialog: octet-stream plus attachment.
	Download Mode = iota
	// Inline keeps the upstream content type when it is video-prefixed,
	// otherwise falls back to video/mp4.
	Inline
	// Video always reports video/mp4, regardless of upstream.
	Video
)

const fallbackVideoType = "video/mp4"

type RelayCtx struct {
	logger zerolog.Logger
	client *http.Client
}

func New() *RelayCtx {
	return &RelayCtx{
		logger: log.With().Str("module", "relay").Logger(),
		client: &http.Client{
			// no overall timeout: bodies may be hours long; connection
			// setup and headers are still bounded
			Transport: &http.Transport{
				ResponseHeaderTimeout: 30 * time.Second,
				IdleConnTimeout:       90 * time.Second,
			},
		},
	}
}

// Serve issues a single GET to the entry's source URL and pipes the
// response through. The inbound Range header is forwarded verbatim when
// present; the upstream's status (200 or 206) and range headers come
// back unchanged so seeking works end to end. On failure it returns an
// upstream error for the caller to surface; no retry is attempted.
func (m *RelayCtx) Serve(w http.ResponseWriter, r *http.Request, entry registry.LinkEntry, mode Mode) error {
	const op = "relay.Serve"

	logger := m.logger.With().Str("slug", entry.Slug).Logger()

	req, err := http.NewRequestWithContext(r.Context(), http.MethodGet, entry.SourceURL, nil)
	if err != nil {
		return errx.EStatus(op, http.StatusInternalServerError, err)
	}

	if rng := r.Header.Get("Range"); rng != "" {
		req.Header.Set("Range", rng)
	}

	resp, err := m.client.Do(req)
	if err != nil {
		return errx.EStatus(op, http.StatusInternalServerError, err)
	}
	if resp.Body == nil {
		return errx.EStatus(op, http.StatusInternalServerError, errors.New("upstream returned no body"))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusPartialContent {
		return errx.EStatus(op, resp.StatusCode, fmt.Errorf("upstream returned %s", resp.Status))
	}

	header := w.Header()
	for _, name := range []string{"Content-Length", "Content-Range", "Accept-Ranges"} {
		if value := resp.Header.Get(name); value != "" {
			header.Set(name, value)
		}
	}

	switch mode {
	case Download:
		header.Set("Content-Type", "application/octet-stream")
		header.Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", entry.Filename()))
	case Inline:
		contentType := resp.Header.Get("Content-Type")
		if !strings.HasPrefix(contentType, "video/") {
			contentType = fallbackVideoType
		}
		header.Set("Content-Type", contentType)
		header.Set("Content-Disposition", "inline")
		header.Set("Access-Control-Allow-Origin", "*")
	case Video:
		header.Set("Content-Type", fallbackVideoType)
		header.Set("Content-Disposition", "inline")
		header.Set("Access-Control-Allow-Origin", "*")
	}

	w.WriteHeader(resp.StatusCode)

	written, err := io.Copy(w, resp.Body)
	metrics.RelayedBytes.Add(float64(written))

	if err != nil {
		// downstream gone or upstream died mid-stream; headers are out,
		// nothing left to do but log
		logger.Debug().Err(err).Int64("written", written).Msg("relay interrupted")
		return nil
	}

	logger.Debug().Int64("written", written).Int("status", resp.StatusCode).Msg("relay complete")
	return nil
}
