package session

import (
	"net/http"

	"github.com/google/uuid"
)

// CookieName identifies the cart session. The cookie lives for the browser
// session; the cart itself is never persisted across logins.
const CookieName = "cartSession"

// ID returns the request's cart session id, issuing a fresh one (and the
// cookie carrying it) on first contact.
func ID(w http.ResponseWriter, r *http.Request) string {
	if cookie, err := r.Cookie(CookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	id := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})
	return id
}
