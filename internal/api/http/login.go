package http

import (
	"errors"
	"net/http"

	"github.com/custdesk/custdesk/internal/api/service"
	"github.com/custdesk/custdesk/pkg/authsdk"
	"github.com/custdesk/custdesk/pkg/httpx"
	"github.com/custdesk/custdesk/pkg/slogx"
)

type LoginHandler struct {
	AuthService *service.AuthService
}

// ServeHTTP handles the login endpoint.
//
//	@Summary		Log in with email and password
//	@Description	Exchanges credentials for a signed access token. The failure
//	@Description	body is identical for an unknown email and a wrong password.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		authsdk.LoginRequest	true	"credentials"
//	@Success		200		{object}	authsdk.LoginResponse	"token"
//	@Failure		401		{object}	map[string]string		"message"
//	@Router			/auth/login [post].
func (h *LoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req authsdk.LoginRequest
	if err := httpx.ReadJSON(r, &req); err != nil {
		writeAuthError(w, http.StatusUnauthorized, "invalid email or password", "")
		return
	}

	token, err := h.AuthService.Login(ctx, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			writeAuthError(w, http.StatusUnauthorized, "invalid email or password", "")
			return
		}
		log.Error("login failed", "err", err)
		authsdk.ErrServerError.WriteError(w)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, authsdk.LoginResponse{Token: token})
}

// writeAuthError writes the bare message envelope used by the auth
// endpoints. kind is optional and names the rejection for diagnostics.
func writeAuthError(w http.ResponseWriter, code int, message, kind string) {
	body := map[string]string{"message": message}
	if kind != "" {
		body["error"] = kind
	}
	httpx.WriteJSON(w, code, body)
}
