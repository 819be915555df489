package api

import (
	"net/http"
	"net/url"
	"path"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"linkgate/internal/errx"
)

var titleCaser = cases.Title(language.English)

type fetchTitleRequest struct {
	URL string `json:"url"`
}

type fetchTitleResponse struct {
	Title string `json:"title"`
}

// FetchTitle suggests a display title from a URL's filename. Best
// effort string cleanup with no correctness contract; an empty
// suggestion is a valid answer.
func (a *ApiManagerCtx) FetchTitle(w http.ResponseWriter, r *http.Request) {
	const op = "api.FetchTitle"

	rawURL := r.URL.Query().Get("url")
	if rawURL == "" && isJSONRequest(r) {
		var req fetchTitleRequest
		if err := decodeJSON(r, &req); err != nil {
			a.httpError(w, r, errx.E(op, errx.Invalid, err))
			return
		}
		rawURL = req.URL
	}

	writeJSON(w, http.StatusOK, fetchTitleResponse{Title: titleFromURL(rawURL)})
}

func titleFromURL(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}

	name := path.Base(parsed.Path)
	if name == "." || name == "/" {
		return ""
	}
	if unescaped, err := url.PathUnescape(name); err == nil {
		name = unescaped
	}

	// drop a file extension, keep dotted names like "S01.E02" readable
	if idx := strings.LastIndex(name, "."); idx > 0 && len(name)-idx <= 5 {
		name = name[:idx]
	}

	name = strings.Map(func(r rune) rune {
		switch r {
		case '-', '_', '.', '+':
			return ' '
		}
		return r
	}, name)

	return titleCaser.String(strings.Join(strings.Fields(name), " "))
}
