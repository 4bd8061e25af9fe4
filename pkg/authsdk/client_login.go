package authsdk

import (
	"context"
	"net/http"

	"github.com/custdesk/custdesk/pkg/cachex"
	"github.com/custdesk/custdesk/pkg/metricsx"
	"github.com/custdesk/custdesk/pkg/slogx"
)

// Login exchanges credentials for a signed token. Credentials are always
// sent to the API; the "token:{email}" cache is write-through only, so a
// warm entry can never stand in for a password check.
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	if email == "" || password == "" {
		return "", ErrInvalidCredentials
	}

	resp, err := c.doRequest(ctx, http.MethodPost, "/auth/login", "", LoginRequest{
		Email:    email,
		Password: password,
	})
	if err != nil {
		return "", err
	}

	var out LoginResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return "", err
	}

	if c.cache != nil {
		key := cachex.Key("token", email)
		if err := c.cache.Update(ctx, key, out.Token, c.cacheTTL); err != nil {
			slogx.FromContext(ctx).Warn("token cache update failed", "err", err)
			metricsx.CacheOps.WithLabelValues("token", "error").Inc()
		} else {
			metricsx.CacheOps.WithLabelValues("token", "write").Inc()
		}
	}
	return out.Token, nil
}

// Logout drops the cached token and gate decision for the session. The
// server keeps no session state, so this is purely cache eviction.
func (c *Client) Logout(ctx context.Context, email, subject string) {
	if c.cache == nil {
		return
	}
	if email != "" {
		_ = c.cache.Remove(ctx, cachex.Key("token", email))
	}
	if subject != "" {
		_ = c.cache.Remove(ctx, cachex.Key("roles", subject))
	}
}
