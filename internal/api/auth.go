package api

import (
	"crypto/subtle"
	"net/http"
	"net/url"
)

// Three independent policies gate the endpoints; an endpoint uses
// exactly one of them. Every check is a plain equality against a
// configured secret, compared in constant time. There is no server-side
// session state: a session is just a cookie holding the stream secret,
// so rotating the secret invalidates everything at once.

func tokenEqual(got, want string) bool {
	return subtle.ConstantTimeCompare([]byte(got), []byte(want)) == 1
}

// adminAuthorized accepts the admin secret from the query string or a
// form field.
func (a *ApiManagerCtx) adminAuthorized(r *http.Request) bool {
	token := r.URL.Query().Get("token")
	if token == "" {
		token = r.PostFormValue("token")
	}
	return tokenEqual(token, a.config.AdminToken)
}

// streamTokenValid implements the direct/download policy: the stream
// secret carried as a query parameter.
func (a *ApiManagerCtx) streamTokenValid(r *http.Request) bool {
	return tokenEqual(r.URL.Query().Get("token"), a.config.StreamToken)
}

// sessionValid implements the cookie policy, re-validated on every
// request.
func (a *ApiManagerCtx) sessionValid(r *http.Request) bool {
	cookie, err := r.Cookie(a.config.Session.CookieName)
	if err != nil {
		return false
	}
	return tokenEqual(cookie.Value, a.config.StreamToken)
}

// issueSession sets the long-lived session cookie, scoped to the whole
// path space.
func (a *ApiManagerCtx) issueSession(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     a.config.Session.CookieName,
		Value:    a.config.StreamToken,
		Path:     "/",
		MaxAge:   int(a.config.Session.MaxAge.Seconds()),
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
	})
}

// authRedirectURL builds the auth-issuance URL an unauthenticated
// playback request is bounced to.
func (a *ApiManagerCtx) authRedirectURL(slug string) string {
	return "/auth/" + slug + "?token=" + url.QueryEscape(a.config.StreamToken)
}
