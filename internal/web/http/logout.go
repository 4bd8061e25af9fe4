package http

import (
	"net/http"
)

// LogoutHandler clears the auth cookie and evicts the session's cache
// entries. The token itself stays valid until its exp; only the carrier
// and the caches forget it.
func (rt *Router) LogoutHandler(w http.ResponseWriter, r *http.Request) {
	if token, ok := tokenFromRequest(r); ok {
		rt.SessionService.Logout(r.Context(), token)
	}
	clearAuthCookie(w)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
