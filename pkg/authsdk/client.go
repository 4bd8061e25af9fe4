package authsdk

import (
	"net/http"
	"strings"
	"time"

	"github.com/custdesk/custdesk/pkg/cachex"
)

// DefaultTimeout bounds every SDK request. The gate treats a timeout the
// same as a denial, so this also caps how long a protected page can hang
// on a dead auth service.
const DefaultTimeout = 10 * time.Second

// Client talks to the customer API service. It covers the auth endpoints
// and the customer resource, and can be shared across goroutines.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client

	// Channel is sent as the Referer header on every request so the API
	// can tag which caller channel traffic came from. It is a routing
	// hint, never an authorization input.
	Channel string

	cache    cachex.Cache
	cacheTTL time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.HTTPClient = hc }
}

// WithChannel sets the Referer channel hint sent on every request.
func WithChannel(channel string) Option {
	return func(c *Client) { c.Channel = channel }
}

// WithCache gives the client a cache for tokens and gate decisions.
// Without one the client always goes to the network.
func WithCache(cache cachex.Cache, ttl time.Duration) Option {
	return func(c *Client) {
		c.cache = cache
		c.cacheTTL = ttl
	}
}

// NewClient creates a client for the API service at baseURL.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: DefaultTimeout,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}
