package api

import (
	"errors"
	"net/http"
	"net/url"

	"linkgate/internal/errx"
)

// LoginPage serves the token entry form. Unauthenticated by design;
// the form only forwards the token to /admin.
func (a *ApiManagerCtx) LoginPage(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := loginPage.Execute(w, nil); err != nil {
		a.logger.Err(err).Msg("unable to render login page")
	}
}

type adminVideo struct {
	Slug        string
	SourceURL   string
	DisplayName string
}

type adminPageData struct {
	Token         string
	Error         string
	GeneratedLink string
	Videos        []adminVideo
}

// AdminPage lists all registered links. Admin token gated.
func (a *ApiManagerCtx) AdminPage(w http.ResponseWriter, r *http.Request) {
	if !a.adminAuthorized(r) {
		a.httpError(w, r, errx.E("api.AdminPage", errx.Forbidden, errors.New("invalid admin token")))
		return
	}

	entries, err := a.registry.List(r.Context())
	if err != nil {
		a.httpError(w, r, err)
		return
	}

	data := adminPageData{
		Token:         a.config.AdminToken,
		Error:         r.URL.Query().Get("error"),
		GeneratedLink: r.URL.Query().Get("generatedLink"),
	}
	for _, entry := range entries {
		data.Videos = append(data.Videos, adminVideo{
			Slug:        entry.Slug,
			SourceURL:   entry.SourceURL,
			DisplayName: entry.Filename(),
		})
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := adminPage.Execute(w, data); err != nil {
		a.logger.Err(err).Msg("unable to render admin page")
	}
}

type generateRequest struct {
	Token string `json:"token"`
	Name  string `json:"name"`
	URL   string `json:"url"`
}

type generateResponse struct {
	Slug         string `json:"slug"`
	PlayLink     string `json:"play_link"`
	DownloadLink string `json:"download_link"`
}

// Generate creates (or overwrites) an entry and hands back the gated
// links. Accepts either the admin form or a JSON body.
func (a *ApiManagerCtx) Generate(w http.ResponseWriter, r *http.Request) {
	const op = "api.Generate"

	if isJSONRequest(r) {
		var req generateRequest
		if err := decodeJSON(r, &req); err != nil {
			a.httpError(w, r, errx.E(op, errx.Invalid, err))
			return
		}
		if !tokenEqual(req.Token, a.config.AdminToken) {
			a.httpError(w, r, errx.E(op, errx.Forbidden, errors.New("invalid admin token")))
			return
		}

		slug, err := a.registry.Create(r.Context(), req.Name, req.URL)
		if err != nil {
			a.httpError(w, r, err)
			return
		}

		writeJSON(w, http.StatusCreated, generateResponse{
			Slug:         slug,
			PlayLink:     a.playLink(slug),
			DownloadLink: a.downloadLink(slug),
		})
		return
	}

	if !a.adminAuthorized(r) {
		a.httpError(w, r, errx.E(op, errx.Forbidden, errors.New("invalid admin token")))
		return
	}

	name := r.PostFormValue("movieName")
	sourceURL := r.PostFormValue("originalUrl")

	slug, err := a.registry.Create(r.Context(), name, sourceURL)
	if err != nil {
		if errx.KindOf(err) == errx.Invalid {
			a.redirectAdmin(w, r, url.Values{"error": {"missing_fields"}})
			return
		}
		a.httpError(w, r, err)
		return
	}

	a.redirectAdmin(w, r, url.Values{"generatedLink": {a.playLink(slug)}})
}

type deleteRequest struct {
	Token string `json:"token"`
	Slug  string `json:"slug"`
}

// DeleteVideo removes an entry by exact slug. Deleting an unknown slug
// is a no-op, matching the registry contract.
func (a *ApiManagerCtx) DeleteVideo(w http.ResponseWriter, r *http.Request) {
	const op = "api.DeleteVideo"

	if isJSONRequest(r) {
		var req deleteRequest
		if err := decodeJSON(r, &req); err != nil {
			a.httpError(w, r, errx.E(op, errx.Invalid, err))
			return
		}
		if !tokenEqual(req.Token, a.config.AdminToken) {
			a.httpError(w, r, errx.E(op, errx.Forbidden, errors.New("invalid admin token")))
			return
		}

		if err := a.registry.Delete(r.Context(), req.Slug); err != nil {
			a.httpError(w, r, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
		return
	}

	if !a.adminAuthorized(r) {
		a.httpError(w, r, errx.E(op, errx.Forbidden, errors.New("invalid admin token")))
		return
	}

	if slug := r.PostFormValue("slug"); slug != "" {
		if err := a.registry.Delete(r.Context(), slug); err != nil {
			a.httpError(w, r, err)
			return
		}
	}

	a.redirectAdmin(w, r, nil)
}

func (a *ApiManagerCtx) redirectAdmin(w http.ResponseWriter, r *http.Request, extra url.Values) {
	query := url.Values{"token": {a.config.AdminToken}}
	for key, values := range extra {
		query[key] = values
	}
	http.Redirect(w, r, "/admin?"+query.Encode(), http.StatusFound)
}

func (a *ApiManagerCtx) playLink(slug string) string {
	return a.config.BaseURL + "/auth/" + slug + "?token=" + url.QueryEscape(a.config.StreamToken)
}

func (a *ApiManagerCtx) downloadLink(slug string) string {
	return a.config.BaseURL + "/download/" + slug + "?token=" + url.QueryEscape(a.config.StreamToken)
}
