package kojioka

import (
	"maps"
	"net/http"
	"time"

	"github.com/charmbracelet/log"

	"github.com/kojioka/kojioka-go/pkg/observability"
)

// DefaultBaseURL is the hosted Kojioka API.
const DefaultBaseURL = "https://kojioka-api.onrender.com"

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the service address, e.g. for a self-hosted
// instance or a test server. A trailing slash is ignored.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = u }
}

// WithHTTPClient sets the *http.Client used for requests.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.httpClient = h }
}

// WithTimeout bounds each request. Zero leaves the transport default.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

// WithLogger sets the log sink. Defaults to log.Default().
func WithLogger(l *log.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// WithHooks sets per-client HTTP hooks.
func WithHooks(h observability.HTTPHooks) Option {
	return func(c *Client) { c.hooks = h }
}

// WithRetry retries network errors up to attempts times in total, doubling
// delay after each failure. API errors are never retried.
func WithRetry(attempts int, delay time.Duration) Option {
	return func(c *Client) {
		c.attempts = max(attempts, 1)
		c.delay = delay
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) { c.userAgent = ua }
}

// WithHeaders adds headers to every request.
func WithHeaders(h map[string]string) Option {
	return func(c *Client) {
		if c.headers == nil {
			c.headers = make(map[string]string, len(h))
		}
		maps.Copy(c.headers, h)
	}
}
