package http

import (
	"errors"
	"net/http"

	"github.com/custdesk/custdesk/internal/api/service"
	"github.com/custdesk/custdesk/pkg/authsdk"
	"github.com/custdesk/custdesk/pkg/httpx"
	"github.com/custdesk/custdesk/pkg/jwtx"
	"github.com/custdesk/custdesk/pkg/slogx"
)

type SessionHandler struct {
	AuthService *service.AuthService
}

// ServeHTTP handles the session gate endpoint.
//
//	@Summary		Check whether a token belongs to a live session
//	@Description	Validates the bearer token and returns the subject, email
//	@Description	and roles it carries. Rejections name the kind in the
//	@Description	error field but carry no further detail.
//	@Tags			Auth
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	authsdk.SessionInfo	"subject, email, roles, expires_at"
//	@Failure		401	{object}	map[string]string	"message, error"
//	@Router			/auth/is-logged-in [get].
func (h *SessionHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	raw, ok := httpx.BearerToken(r)
	if !ok {
		writeAuthError(w, http.StatusUnauthorized, "not authenticated", "missing_token")
		return
	}

	claims, err := h.AuthService.Validate(ctx, raw)
	if err != nil {
		kind := rejectionKind(err)
		log.Warn("token rejected", "kind", kind)
		writeAuthError(w, http.StatusUnauthorized, "not authenticated", kind)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, authsdk.SessionInfo{
		Subject:   claims.Subject,
		Email:     claims.Email,
		Roles:     claims.Roles,
		ExpiresAt: claims.ExpiresAt.Time,
	})
}

// rejectionKind names the validation failure for the error field and the
// server log. Anything unrecognised collapses to malformed.
func rejectionKind(err error) string {
	switch {
	case errors.Is(err, jwtx.ErrExpired):
		return "expired"
	case errors.Is(err, jwtx.ErrInvalidSig):
		return "bad_signature"
	case errors.Is(err, jwtx.ErrIssuer):
		return "bad_issuer"
	case errors.Is(err, jwtx.ErrAudience):
		return "bad_audience"
	case errors.Is(err, jwtx.ErrNotYetValid):
		return "not_yet_valid"
	case errors.Is(err, jwtx.ErrAlgMismatch):
		return "bad_signature"
	default:
		return "malformed"
	}
}
