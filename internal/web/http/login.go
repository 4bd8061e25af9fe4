package http

import (
	"errors"
	"net/http"

	"github.com/custdesk/custdesk/pkg/authsdk"
	"github.com/custdesk/custdesk/pkg/slogx"
)

// LoginFormHandler renders the login form.
func (rt *Router) LoginFormHandler(w http.ResponseWriter, r *http.Request) {
	if token, ok := tokenFromRequest(r); ok {
		if d := rt.SessionService.Check(r.Context(), token); d.Authenticated {
			http.Redirect(w, r, "/customers", http.StatusSeeOther)
			return
		}
	}
	renderPage(w, r, http.StatusOK, "login.html", pageData{})
}

// LoginSubmitHandler exchanges the posted credentials for a token and
// plants the auth cookie. Failed logins re-render the form with the same
// message whatever the cause on the API side.
func (rt *Router) LoginSubmitHandler(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		renderLoginError(w, r, "", "invalid form submission", http.StatusBadRequest)
		return
	}

	email := r.PostFormValue("email")
	password := r.PostFormValue("password")

	token, err := rt.SessionService.Login(r.Context(), email, password)
	if err != nil {
		if errors.Is(err, authsdk.ErrInvalidCredentials) {
			renderLoginError(w, r, email, "invalid email or password", http.StatusUnauthorized)
			return
		}
		slogx.FromContext(r.Context()).Error("login call failed", "err", err)
		renderLoginError(w, r, email, "login is unavailable right now, try again shortly", http.StatusBadGateway)
		return
	}

	setAuthCookie(w, token)
	http.Redirect(w, r, "/customers", http.StatusSeeOther)
}

func renderLoginError(w http.ResponseWriter, r *http.Request, email, msg string, status int) {
	data := pageData{Error: msg}
	data.Form.Email = email
	renderPage(w, r, status, "login.html", data)
}
