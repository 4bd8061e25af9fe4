package service

import (
	"context"

	"github.com/custdesk/custdesk/pkg/authsdk"
	"github.com/custdesk/custdesk/pkg/slogx"
)

// Gate is the slice of the API client the session service needs.
type Gate interface {
	Login(ctx context.Context, email, password string) (string, error)
	Logout(ctx context.Context, email, subject string)
	CheckAuthorization(ctx context.Context, token string) authsdk.Decision
}

// SessionService mediates between the cookie carrier and the API's auth
// endpoints. Authorization decisions always flow through Check so every
// caller shares the gate's fail-closed behaviour and its cache.
type SessionService struct {
	Gate Gate
}

// Login exchanges credentials for a raw access token.
func (s *SessionService) Login(ctx context.Context, email, password string) (string, error) {
	return s.Gate.Login(ctx, email, password)
}

// Check asks the gate whether the token belongs to a live session. The
// zero Decision means no: not authenticated, no roles.
func (s *SessionService) Check(ctx context.Context, token string) authsdk.Decision {
	return s.Gate.CheckAuthorization(ctx, token)
}

// Logout evicts the cached token and gate decision for whoever the token
// identifies. A token the gate no longer accepts has nothing cached worth
// evicting, so that case only logs.
func (s *SessionService) Logout(ctx context.Context, token string) {
	d := s.Gate.CheckAuthorization(ctx, token)
	if !d.Authenticated {
		slogx.FromContext(ctx).Debug("logout with dead token, nothing to evict")
		return
	}
	s.Gate.Logout(ctx, d.Email, d.Subject)
}
