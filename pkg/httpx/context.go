package httpx

import "context"

type ctxKey string

const (
	CtxKeyUserID  ctxKey = "user_id"
	CtxKeyEmail   ctxKey = "email"
	CtxKeyRoles   ctxKey = "roles"
	CtxKeyClaims  ctxKey = "claims" // full jwtx.Claims when you need everything
	CtxKeyChannel ctxKey = "channel"
)

func rolesFromCtx(ctx context.Context) []string {
	if v, ok := ctx.Value(CtxKeyRoles).([]string); ok {
		return v
	}
	return nil
}

// UserIDFromContext returns the authenticated subject, if any.
func UserIDFromContext(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(CtxKeyUserID).(string)
	return v, ok
}

// EmailFromContext returns the authenticated email, if any.
func EmailFromContext(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(CtxKeyEmail).(string)
	return v, ok
}

// ChannelFromContext returns the caller channel tag set by
// ChannelMiddleware. Empty string means the channel was unknown.
func ChannelFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(CtxKeyChannel).(string); ok {
		return v
	}
	return ""
}
