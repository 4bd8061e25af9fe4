package http

import (
	"net/http"
	"time"

	"github.com/custdesk/custdesk/pkg/idx"
)

// VisitorMiddleware assigns a stable VisitorId cookie to browsers that do
// not carry one yet. The id feeds log correlation only.
func VisitorMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, err := r.Cookie(VisitorCookieName); err != nil {
			http.SetCookie(w, &http.Cookie{
				Name:     VisitorCookieName,
				Value:    idx.New().String(),
				Path:     "/",
				Expires:  time.Now().Add(VisitorCookieTTL),
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
		}
		next.ServeHTTP(w, r)
	})
}
