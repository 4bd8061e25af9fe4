package http

import (
	"net/http"
	"time"
)

const (
	// AuthCookieName carries the raw access token between browser and web
	// tier. The cookie outlives the token's own exp so a stale cookie still
	// fails closed at the gate rather than silently vanishing.
	AuthCookieName = "AuthToken"
	AuthCookieTTL  = 24 * time.Hour

	VisitorCookieName = "VisitorId"
	VisitorCookieTTL  = 7 * 24 * time.Hour
)

func setAuthCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     AuthCookieName,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(AuthCookieTTL),
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteStrictMode,
	})
}

func clearAuthCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     AuthCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteStrictMode,
	})
}

func tokenFromRequest(r *http.Request) (string, bool) {
	c, err := r.Cookie(AuthCookieName)
	if err != nil || c.Value == "" {
		return "", false
	}
	return c.Value, true
}
