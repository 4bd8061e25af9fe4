package http

import (
	"net/http"
)

// HomeHandler renders the landing page. The route is public; the session
// lookup only personalises the nav when a live cookie is present.
func (rt *Router) HomeHandler(w http.ResponseWriter, r *http.Request) {
	var data pageData
	if token, ok := tokenFromRequest(r); ok {
		if d := rt.SessionService.Check(r.Context(), token); d.Authenticated {
			data.Email = d.Email
		}
	}
	renderPage(w, r, http.StatusOK, "home.html", data)
}

// UnauthorizedHandler renders the page the filter redirects rejected
// browsers to.
func (rt *Router) UnauthorizedHandler(w http.ResponseWriter, r *http.Request) {
	renderPage(w, r, http.StatusOK, "unauthorized.html", pageData{})
}
