package relay

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"linkgate/internal/errx"
	"linkgate/internal/registry"
)

func TestRelayFullContent(t *testing.T) {
	body := strings.Repeat("x", 500)
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Range") != "" {
			t.Error("Range header forwarded although the client sent none")
		}
		w.Header().Set("Content-Length", "500")
		w.Header().Set("Accept-Ranges", "bytes")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(body))
	}))
	defer upstream.Close()

	entry := registry.LinkEntry{Slug: "movie", SourceURL: upstream.URL}

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/download/movie", nil)

	if err := New().Serve(w, r, entry, Download); err != nil {
		t.Fatalf("Serve() error = %v", err)
	}

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}
	if got := w.Header().Get("Content-Length"); got != "500" {
		t.Errorf("Content-Length = %q, want 500", got)
	}
	if got := w.Header().Get("Accept-Ranges"); got != "bytes" {
		t.Errorf("Accept-Ranges = %q, want bytes", got)
	}
	if w.Body.String() != body {
		t.Errorf("body length = %d, want %d", w.Body.Len(), len(body))
	}
}

func TestRelayRangePassthrough(t *testing.T) {
	partial := strings.Repeat("y", 100)
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Range"); got != "bytes=0-99" {
			t.Errorf("upstream Range = %q, want bytes=0-99", got)
		}
		w.Header().Set("Content-Range", "bytes 0-99/500")
		w.Header().Set("Content-Length", "100")
		w.Header().Set("Accept-Ranges", "bytes")
		w.WriteHeader(http.StatusPartialContent)
		_, _ = w.Write([]byte(partial))
	}))
	defer upstream.Close()

	entry := registry.LinkEntry{Slug: "movie", SourceURL: upstream.URL}

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/play/movie", nil)
	r.Header.Set("Range", "bytes=0-99")

	if err := New().Serve(w, r, entry, Inline); err != nil {
		t.Fatalf("Serve() error = %v", err)
	}

	if w.Code != http.StatusPartialContent {
		t.Errorf("status = %d, want 206", w.Code)
	}
	if got := w.Header().Get("Content-Range"); got != "bytes 0-99/500" {
		t.Errorf("Content-Range = %q, want bytes 0-99/500", got)
	}
	if got := w.Header().Get("Content-Length"); got != "100" {
		t.Errorf("Content-Length = %q, want 100", got)
	}
	if w.Body.String() != partial {
		t.Errorf("body = %d bytes, want the upstream's 100 bytes exactly", w.Body.Len())
	}
}

func TestRelayHeaderPolicy(t *testing.T) {
	tests := []struct {
		name            string
		mode            Mode
		upstreamType    string
		wantType        string
		wantDisposition string
		wantCORS        bool
	}{
		{
			name:            "download forces octet-stream",
			mode:            Download,
			upstreamType:    "video/webm",
			wantType:        "application/octet-stream",
			wantDisposition: `attachment; filename="display.mp4"`,
			wantCORS:        false,
		},
		{
			name:            "inline keeps upstream video type",
			mode:            Inline,
			upstreamType:    "video/webm",
			wantType:        "video/webm",
			wantDisposition: "inline",
			wantCORS:        true,
		},
		{
			name:            "inline replaces non-video type",
			mode:            Inline,
			upstreamType:    "application/json",
			wantType:        "video/mp4",
			wantDisposition: "inline",
			wantCORS:        true,
		},
		{
			name:            "video mode overrides upstream",
			mode:            Video,
			upstreamType:    "video/webm",
			wantType:        "video/mp4",
			wantDisposition: "inline",
			wantCORS:        true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", tt.upstreamType)
				_, _ = w.Write([]byte("data"))
			}))
			defer upstream.Close()

			entry := registry.LinkEntry{Slug: "movie", SourceURL: upstream.URL, DisplayName: "display.mp4"}

			w := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodGet, "/x/movie", nil)

			if err := New().Serve(w, r, entry, tt.mode); err != nil {
				t.Fatalf("Serve() error = %v", err)
			}

			if got := w.Header().Get("Content-Type"); got != tt.wantType {
				t.Errorf("Content-Type = %q, want %q", got, tt.wantType)
			}
			if got := w.Header().Get("Content-Disposition"); got != tt.wantDisposition {
				t.Errorf("Content-Disposition = %q, want %q", got, tt.wantDisposition)
			}
			cors := w.Header().Get("Access-Control-Allow-Origin") == "*"
			if cors != tt.wantCORS {
				t.Errorf("CORS header present = %v, want %v", cors, tt.wantCORS)
			}
		})
	}
}

func TestRelayFilenameFallsBackToSlug(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("data"))
	}))
	defer upstream.Close()

	entry := registry.LinkEntry{Slug: "movie.mp4", SourceURL: upstream.URL}

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/download/movie.mp4", nil)

	if err := New().Serve(w, r, entry, Download); err != nil {
		t.Fatalf("Serve() error = %v", err)
	}

	want := `attachment; filename="movie.mp4"`
	if got := w.Header().Get("Content-Disposition"); got != want {
		t.Errorf("Content-Disposition = %q, want %q", got, want)
	}
}

func TestRelayUpstreamFailure(t *testing.T) {
	t.Run("upstream status is mirrored", func(t *testing.T) {
		upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "gone", http.StatusNotFound)
		}))
		defer upstream.Close()

		entry := registry.LinkEntry{Slug: "movie", SourceURL: upstream.URL}

		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/download/movie", nil)

		err := New().Serve(w, r, entry, Download)
		if errx.KindOf(err) != errx.Upstream {
			t.Fatalf("Serve() kind = %v, want Upstream", errx.KindOf(err))
		}
		if got := errx.StatusOf(err); got != http.StatusNotFound {
			t.Errorf("StatusOf() = %d, want 404", got)
		}
	})

	t.Run("network failure surfaces 500", func(t *testing.T) {
		// closed server: connection refused
		upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		upstream.Close()

		entry := registry.LinkEntry{Slug: "movie", SourceURL: upstream.URL}

		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/download/movie", nil)

		err := New().Serve(w, r, entry, Download)
		if errx.KindOf(err) != errx.Upstream {
			t.Fatalf("Serve() kind = %v, want Upstream", errx.KindOf(err))
		}
		if got := errx.StatusOf(err); got != http.StatusInternalServerError {
			t.Errorf("StatusOf() = %d, want 500", got)
		}
	})

	t.Run("no response is written on failure", func(t *testing.T) {
		upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "nope", http.StatusForbidden)
		}))
		defer upstream.Close()

		entry := registry.LinkEntry{Slug: "movie", SourceURL: upstream.URL}

		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/download/movie", nil)

		_ = New().Serve(w, r, entry, Download)
		if w.Body.Len() != 0 {
			t.Errorf("body written on failure: %q", w.Body.String())
		}
	})
}
