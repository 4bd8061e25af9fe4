package authsdk

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"time"

	"github.com/custdesk/custdesk/pkg/cachex"
	"github.com/custdesk/custdesk/pkg/metricsx"
	"github.com/custdesk/custdesk/pkg/slogx"
)

// cachedDecision is the value stored under "roles:{subject}". The token
// hash binds the entry to the exact token it was verified for, so a
// different token naming the same subject never rides a cached allow.
type cachedDecision struct {
	TokenSHA string    `json:"token_sha"`
	Email    string    `json:"email"`
	Roles    []string  `json:"roles"`
	ExpireAt time.Time `json:"expires_at"`
}

// CheckAuthorization asks the API whether token belongs to a live
// session. It fails closed: any failure at all, from a refused connection
// to a malformed body, comes back as not authenticated. Callers never see
// an error and cannot tell "denied" apart from "unreachable".
func (c *Client) CheckAuthorization(ctx context.Context, token string) Decision {
	if token == "" {
		return Decision{}
	}

	tokenSHA := hashToken(token)

	if d, ok := c.cachedGateDecision(ctx, token, tokenSHA); ok {
		metricsx.GateDecisions.WithLabelValues("allow_cached").Inc()
		return d
	}

	resp, err := c.doRequest(ctx, http.MethodGet, "/auth/is-logged-in", token, nil)
	if err != nil {
		slogx.FromContext(ctx).Warn("gate check failed", "err", err)
		metricsx.GateDecisions.WithLabelValues("deny_unreachable").Inc()
		return Decision{}
	}

	var info SessionInfo
	if err := decodeJSON(resp, &info, http.StatusOK); err != nil {
		metricsx.GateDecisions.WithLabelValues("deny").Inc()
		return Decision{}
	}
	if info.Subject == "" {
		metricsx.GateDecisions.WithLabelValues("deny").Inc()
		return Decision{}
	}

	c.storeGateDecision(ctx, tokenSHA, info)

	metricsx.GateDecisions.WithLabelValues("allow").Inc()
	return Decision{
		Authenticated: true,
		Subject:       info.Subject,
		Email:         info.Email,
		Roles:         info.Roles,
	}
}

// cachedGateDecision looks for a prior verdict on this exact token. The
// subject is recovered from the unverified payload purely to build the
// cache key; the hash comparison is what gates reuse.
func (c *Client) cachedGateDecision(ctx context.Context, token, tokenSHA string) (Decision, bool) {
	if c.cache == nil {
		return Decision{}, false
	}

	subject, ok := unverifiedSubject(token)
	if !ok {
		return Decision{}, false
	}

	raw, ok, err := c.cache.Get(ctx, cachex.Key("roles", subject))
	if err != nil || !ok {
		return Decision{}, false
	}

	var cached cachedDecision
	if err := json.Unmarshal([]byte(raw), &cached); err != nil {
		return Decision{}, false
	}
	if cached.TokenSHA != tokenSHA {
		return Decision{}, false
	}
	if !cached.ExpireAt.IsZero() && time.Now().After(cached.ExpireAt) {
		return Decision{}, false
	}

	return Decision{
		Authenticated: true,
		Subject:       subject,
		Email:         cached.Email,
		Roles:         cached.Roles,
	}, true
}

// storeGateDecision caches an allow verdict, capping the TTL at the
// token's residual life so the cache can never outlive the token.
func (c *Client) storeGateDecision(ctx context.Context, tokenSHA string, info SessionInfo) {
	if c.cache == nil {
		return
	}

	ttl := c.cacheTTL
	if ttl <= 0 {
		ttl = cachex.DefaultTTL
	}
	if !info.ExpiresAt.IsZero() {
		if residual := time.Until(info.ExpiresAt); residual < ttl {
			ttl = residual
		}
	}
	if ttl <= 0 {
		return
	}

	buf, err := json.Marshal(cachedDecision{
		TokenSHA: tokenSHA,
		Email:    info.Email,
		Roles:    info.Roles,
		ExpireAt: info.ExpiresAt,
	})
	if err != nil {
		return
	}
	if err := c.cache.Update(ctx, cachex.Key("roles", info.Subject), string(buf), ttl); err != nil {
		slogx.FromContext(ctx).Warn("gate cache update failed", "err", err)
	}
}

func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// unverifiedSubject pulls the sub claim out of the payload segment
// without checking the signature. Only used for cache addressing.
func unverifiedSubject(token string) (string, bool) {
	payload, ok := splitPayload(token)
	if !ok {
		return "", false
	}
	var claims struct {
		Sub string `json:"sub"`
	}
	if err := json.Unmarshal(payload, &claims); err != nil || claims.Sub == "" {
		return "", false
	}
	return claims.Sub, true
}
