package http

import (
	"context"

	"github.com/custdesk/custdesk/pkg/authsdk"
)

type ctxKey int

const (
	ctxKeySession ctxKey = iota
)

type session struct {
	Decision authsdk.Decision
	Token    string
}

func withSession(ctx context.Context, d authsdk.Decision, token string) context.Context {
	return context.WithValue(ctx, ctxKeySession, session{Decision: d, Token: token})
}

// sessionFromContext returns the gate decision and raw token the filter
// attached. ok is false on routes the filter never ran on.
func sessionFromContext(ctx context.Context) (session, bool) {
	s, ok := ctx.Value(ctxKeySession).(session)
	return s, ok
}
