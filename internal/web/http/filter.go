package http

import (
	"net/http"
	"strings"

	"github.com/custdesk/custdesk/pkg/authsdk"
	"github.com/custdesk/custdesk/pkg/httpx"
	"github.com/custdesk/custdesk/pkg/slogx"
)

// RoleAny marks a route that needs a live session but no particular role.
const RoleAny = "*"

// requireRole gates a route on the authorization service. Missing cookie,
// dead token, unreachable API and missing role all land in the same
// rejection: the handler behind the filter never runs.
func (rt *Router) requireRole(role string) httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := tokenFromRequest(r)
			if !ok {
				rt.reject(w, r, "no auth cookie")
				return
			}

			d := rt.SessionService.Check(r.Context(), token)
			if !d.Authenticated {
				rt.reject(w, r, "gate denied")
				return
			}
			if role != RoleAny && !d.HasRole(role) {
				rt.reject(w, r, "missing role "+role)
				return
			}

			next.ServeHTTP(w, r.WithContext(withSession(r.Context(), d, token)))
		})
	}
}

func (rt *Router) reject(w http.ResponseWriter, r *http.Request, reason string) {
	slogx.FromContext(r.Context()).Info("request rejected", "path", r.URL.Path, "reason", reason)

	if wantsJSON(r) {
		authsdk.NewAPIError(http.StatusUnauthorized, authsdk.ErrorCodeInvalidToken, "not authenticated").
			WriteError(w)
		return
	}
	http.Redirect(w, r, "/unauthorized", http.StatusSeeOther)
}

// wantsJSON treats a request as an API caller when it asks for JSON and
// never mentions HTML. Browsers always send text/html in Accept.
func wantsJSON(r *http.Request) bool {
	accept := r.Header.Get("Accept")
	return strings.Contains(accept, "application/json") &&
		!strings.Contains(accept, "text/html")
}
