package api

import (
	"errors"
	"net/http"

	"linkgate/internal/errx"
	"linkgate/internal/relay"
)

// Download relays the resource as a forced attachment. Gated by the
// stream secret in the query string; the token is checked before the
// slug is resolved, so a bad token never reveals whether a slug exists.
func (a *ApiManagerCtx) Download(w http.ResponseWriter, r *http.Request) {
	if !a.streamTokenValid(r) {
		a.httpError(w, r, errx.E("api.Download", errx.Forbidden, errors.New("invalid or missing token")))
		return
	}

	a.serveRelay(w, r, relay.Download)
}

// Play relays the resource inline, keeping the upstream content type
// when it already reports a video type. Gated by the session cookie.
func (a *ApiManagerCtx) Play(w http.ResponseWriter, r *http.Request) {
	if !a.sessionValid(r) {
		http.Redirect(w, r, a.authRedirectURL(slugParam(r)), http.StatusFound)
		return
	}

	a.serveRelay(w, r, relay.Inline)
}

// Stream relays the resource inline with a fixed video content type,
// regardless of what upstream reports. Gated by the session cookie.
func (a *ApiManagerCtx) Stream(w http.ResponseWriter, r *http.Request) {
	if !a.sessionValid(r) {
		http.Redirect(w, r, a.authRedirectURL(slugParam(r)), http.StatusFound)
		return
	}

	a.serveRelay(w, r, relay.Video)
}

// AuthSession validates the one-shot query token, issues the session
// cookie and bounces the client to the streaming path. A bad token is a
// terminal 401, never a redirect loop.
func (a *ApiManagerCtx) AuthSession(w http.ResponseWriter, r *http.Request) {
	if !a.streamTokenValid(r) {
		a.httpError(w, r, errx.E("api.AuthSession", errx.Unauthorized, errors.New("invalid or missing token")))
		return
	}

	a.issueSession(w)
	http.Redirect(w, r, "/stream/"+slugParam(r), http.StatusFound)
}

func (a *ApiManagerCtx) serveRelay(w http.ResponseWriter, r *http.Request, mode relay.Mode) {
	slug := slugParam(r)

	entry, err := a.registry.Resolve(r.Context(), slug)
	if err != nil {
		a.httpError(w, r, err)
		return
	}

	if err := a.relay.Serve(w, r, entry, mode); err != nil {
		a.httpError(w, r, err)
	}
}
