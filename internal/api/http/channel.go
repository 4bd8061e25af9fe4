package http

import (
	"context"
	"net/http"
	"net/url"

	"github.com/custdesk/custdesk/pkg/httpx"
)

// ChannelMiddleware tags the request context with the caller channel
// derived from the Referer header. The tag feeds logging and metrics
// only; authorization never reads it.
func ChannelMiddleware() httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if channel := channelFromReferer(r.Header.Get("Referer")); channel != "" {
				ctx := context.WithValue(r.Context(), httpx.CtxKeyChannel, channel)
				r = r.WithContext(ctx)
			}
			next.ServeHTTP(w, r)
		})
	}
}

func channelFromReferer(referer string) string {
	if referer == "" {
		return ""
	}
	u, err := url.Parse(referer)
	if err != nil || u.Host == "" {
		return ""
	}
	return u.Host
}
