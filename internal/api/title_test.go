package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
)

func TestTitleFromURL(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "plain filename",
			in:   "https://cdn.example/path/the-matrix-1999.mp4",
			want: "The Matrix 1999",
		},
		{
			name: "underscores and dots",
			in:   "https://x/some_movie.name.2020.mkv",
			want: "Some Movie Name 2020",
		},
		{
			name: "escaped spaces",
			in:   "https://x/My%20Movie.mp4",
			want: "My Movie",
		},
		{
			name: "no path",
			in:   "https://example.com/",
			want: "",
		},
		{
			name: "unparseable",
			in:   "://not a url",
			want: "",
		},
		{
			name: "empty",
			in:   "",
			want: "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := titleFromURL(tt.in); got != tt.want {
				t.Errorf("titleFromURL(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestFetchTitleEndpoint(t *testing.T) {
	router, _ := newTestAPI(t)

	w := httptest.NewRecorder()
	target := "/fetch-title?url=" + url.QueryEscape("https://cdn.example/big-buck-bunny.mp4")
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var resp fetchTitleResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad response: %v", err)
	}
	if resp.Title != "Big Buck Bunny" {
		t.Errorf("title = %q, want %q", resp.Title, "Big Buck Bunny")
	}
}
