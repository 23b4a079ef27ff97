package integrations

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"

	"github.com/kojioka/kojioka-go/pkg/cache"
	"github.com/kojioka/kojioka-go/pkg/errors"
	"github.com/kojioka/kojioka-go/pkg/httputil"
	"github.com/kojioka/kojioka-go/pkg/observability"
)

// RequestIDHeader carries the per-request correlation ID.
const RequestIDHeader = "X-Request-ID"

const (
	defaultRetryAttempts = 3
	defaultRetryDelay    = time.Second
)

// Client provides shared HTTP functionality for the API and registry clients.
// It handles default headers, request IDs, hooks, caching and retries.
//
// All methods are safe for concurrent use by multiple goroutines.
type Client struct {
	http     *http.Client
	cache    cache.Cache
	ttl      time.Duration
	headers  map[string]string
	hooks    observability.HTTPHooks
	attempts int
	delay    time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		if h != nil {
			c.http = h
		}
	}
}

// WithHooks sets per-client HTTP hooks. Without it the process-wide hooks
// from [observability.HTTP] are used.
func WithHooks(h observability.HTTPHooks) Option {
	return func(c *Client) { c.hooks = h }
}

// WithRetry sets how often [Client.Cached] retries transport failures.
func WithRetry(attempts int, delay time.Duration) Option {
	return func(c *Client) {
		c.attempts = max(attempts, 1)
		c.delay = delay
	}
}

// NewClient creates a Client with the given cache backend and default headers.
// Keys passed to [Client.Cached] are scoped under prefix. Headers are applied
// to all requests made through this client; pass nil if none are needed.
func NewClient(backend cache.Cache, prefix string, ttl time.Duration, headers map[string]string, opts ...Option) *Client {
	c := &Client{
		http:     NewHTTPClient(),
		cache:    cache.Scoped(backend, prefix),
		ttl:      ttl,
		headers:  headers,
		attempts: defaultRetryAttempts,
		delay:    defaultRetryDelay,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Result is a response obtained from the server, whatever its status.
type Result struct {
	StatusCode int
	Body       []byte
	RequestID  string
	Duration   time.Duration
}

// OK reports whether the status is 2xx.
func (r *Result) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

func (c *Client) hooksOrDefault() observability.HTTPHooks {
	if c.hooks != nil {
		return c.hooks
	}
	return observability.HTTP()
}

// Do performs a single GET request against rawURL.
//
// Request-specific headers override client defaults for the same key. A
// non-2xx status is not an error here; pass the result to [CheckStatus].
// When no response is obtained, the error is a retryable
// [errors.NetworkError]. The returned Result carries the request ID in both
// cases.
func (c *Client) Do(ctx context.Context, rawURL string, headers map[string]string) (*Result, error) {
	id := uuid.NewString()
	res := &Result{RequestID: id}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return res, errors.Wrap(errors.ErrCodeInvalidURL, err, "build request")
	}
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	req.Header.Set(RequestIDHeader, id)

	hooks := c.hooksOrDefault()
	host, path := req.URL.Host, req.URL.Path
	hooks.OnRequest(ctx, req.Method, host, path)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		res.Duration = time.Since(start)
		return res, httputil.Retryable(errors.NewNetworkError(err))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	res.Duration = time.Since(start)
	res.StatusCode = resp.StatusCode
	if err != nil {
		return res, httputil.Retryable(errors.NewNetworkError(err))
	}
	res.Body = body
	hooks.OnResponse(ctx, req.Method, host, path, resp.StatusCode, res.Duration)
	return res, nil
}

// CheckStatus returns nil for a 2xx result and an [errors.APIError]
// otherwise.
func CheckStatus(res *Result) error {
	if res.OK() {
		return nil
	}
	return &errors.APIError{StatusCode: res.StatusCode, Details: Details(res.Body)}
}

// Details serializes an error body for [errors.APIError]. A JSON object or
// array is compacted and a JSON string is unquoted; anything else is
// returned as text.
func Details(body []byte) string {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return string(body)
	}
	switch trimmed[0] {
	case '{', '[':
		var buf bytes.Buffer
		if err := json.Compact(&buf, trimmed); err == nil {
			return buf.String()
		}
	case '"':
		var text string
		if err := json.Unmarshal(trimmed, &text); err == nil {
			return text
		}
	}
	return string(body)
}

// Get performs an HTTP GET request and JSON-decodes a 2xx response into v.
func (c *Client) Get(ctx context.Context, rawURL string, v any) error {
	res, err := c.Do(ctx, rawURL, nil)
	if err != nil {
		return err
	}
	if err := CheckStatus(res); err != nil {
		return err
	}
	if err := json.Unmarshal(res.Body, v); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidResponse, err, "decode %s", res.RequestID)
	}
	return nil
}

// Cached retrieves a value from cache or executes fetch and caches the result.
// If refresh is true, the cache is bypassed and fetch is always called.
// The fetch function should populate v; on success, v is stored in the cache.
// Transport failures inside fetch are retried; the returned error has the
// retry marker removed.
func (c *Client) Cached(ctx context.Context, key string, refresh bool, v any, fetch func() error) error {
	if !refresh {
		if data, ok, err := c.cache.Get(ctx, key); err == nil && ok {
			if json.Unmarshal(data, v) == nil {
				return nil
			}
		}
	}
	if err := httputil.Retry(ctx, c.attempts, c.delay, fetch); err != nil {
		return httputil.Unwrap(err)
	}
	if data, err := json.Marshal(v); err == nil {
		_ = c.cache.Set(ctx, key, data, c.ttl)
	}
	return nil
}

// NewHTTPClient creates an HTTP client with a standard timeout for registry
// requests.
func NewHTTPClient() *http.Client {
	return &http.Client{Timeout: 10 * time.Second}
}

// URLEncode percent-encodes s as a single URL path segment, so a slash in
// a scoped package name does not split the path.
func URLEncode(s string) string { return url.PathEscape(s) }
