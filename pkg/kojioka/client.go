package kojioka

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/kojioka/kojioka-go/pkg/buildinfo"
	"github.com/kojioka/kojioka-go/pkg/cache"
	"github.com/kojioka/kojioka-go/pkg/errors"
	"github.com/kojioka/kojioka-go/pkg/httputil"
	"github.com/kojioka/kojioka-go/pkg/integrations"
	"github.com/kojioka/kojioka-go/pkg/observability"
)

// Endpoint paths.
const (
	PathGetStream = "/get-stream"
	PathSearch    = "/search"
	PathStatus    = "/status"
)

// Client calls the Kojioka API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	timeout    time.Duration
	logger     *log.Logger
	hooks      observability.HTTPHooks
	attempts   int
	delay      time.Duration
	userAgent  string
	headers    map[string]string

	http *integrations.Client
	host string
}

// NewClient creates a Client. Without options it targets [DefaultBaseURL]
// and sends each request once.
func NewClient(opts ...Option) (*Client, error) {
	c := &Client{
		baseURL:  DefaultBaseURL,
		attempts: 1,
	}
	for _, opt := range opts {
		opt(c)
	}

	c.baseURL = strings.TrimRight(strings.TrimSpace(c.baseURL), "/")
	if err := errors.ValidateURL(c.baseURL); err != nil {
		return nil, err
	}
	u, err := url.Parse(c.baseURL)
	if err != nil || u.Host == "" {
		return nil, errors.New(errors.ErrCodeInvalidURL, "invalid base URL %q", c.baseURL)
	}
	c.host = u.Host

	if c.logger == nil {
		c.logger = log.Default()
	}
	if c.userAgent == "" {
		c.userAgent = buildinfo.UserAgent()
	}

	headers := map[string]string{
		"Accept":     "application/json",
		"User-Agent": c.userAgent,
	}
	for k, v := range c.headers {
		headers[k] = v
	}

	c.http = integrations.NewClient(cache.NewNullCache(), "", 0, headers,
		integrations.WithHTTPClient(c.transport()),
		integrations.WithHooks(c.hooks),
	)
	return c, nil
}

// transport returns the *http.Client with the configured timeout applied,
// leaving a caller-supplied client untouched.
func (c *Client) transport() *http.Client {
	h := c.httpClient
	if h == nil {
		h = &http.Client{}
	}
	if c.timeout > 0 {
		cp := *h
		cp.Timeout = c.timeout
		h = &cp
	}
	return h
}

// BaseURL returns the service address requests are sent to.
func (c *Client) BaseURL() string { return c.baseURL }

// FetchStream retrieves stream information for a title or a YouTube,
// SoundCloud or Spotify URL. The service tries its primary source and falls
// back on its own.
func (c *Client) FetchStream(ctx context.Context, query string) (Response, error) {
	return c.query(ctx, "FetchStream", PathGetStream, query)
}

// SearchTrack retrieves metadata for the best match of query.
func (c *Client) SearchTrack(ctx context.Context, query string) (Response, error) {
	return c.query(ctx, "SearchTrack", PathSearch, query)
}

// Status retrieves the service health report.
func (c *Client) Status(ctx context.Context) (Response, error) {
	return c.get(ctx, "Status", PathStatus, nil)
}

func (c *Client) query(ctx context.Context, op, path, query string) (Response, error) {
	if err := errors.ValidateQuery("kojioka."+op, query); err != nil {
		c.fail(ctx, op, path, "", err)
		return nil, err
	}
	return c.get(ctx, op, path, url.Values{"q": {query}})
}

func (c *Client) get(ctx context.Context, op, path string, params url.Values) (Response, error) {
	target := c.baseURL + path
	if len(params) > 0 {
		target += "?" + params.Encode()
	}

	var res *integrations.Result
	err := httputil.RetryNotify(ctx, c.attempts, c.delay, func() error {
		var err error
		res, err = c.http.Do(ctx, target, nil)
		return err
	}, func(attempt int, err error) {
		c.logger.Warn("retrying request", "op", op, "attempt", attempt, "err", httputil.Unwrap(err))
	})

	var id string
	if res != nil {
		id = res.RequestID
	}
	if err != nil {
		err = normalize(err)
		c.fail(ctx, op, path, id, err)
		return nil, err
	}
	if err := integrations.CheckStatus(res); err != nil {
		c.fail(ctx, op, path, id, err)
		return nil, err
	}

	c.logger.Debug("request succeeded", "op", op, "status", res.StatusCode, "request_id", id, "duration", res.Duration)
	return Response(res.Body), nil
}

// normalize maps whatever the retry loop returned onto the error taxonomy.
// Cancellation while waiting between attempts surfaces as a network error.
func normalize(err error) error {
	err = httputil.Unwrap(err)
	switch errors.GetCode(err) {
	case errors.ErrCodeNetwork, errors.ErrCodeAPI, errors.ErrCodeInvalidArgument:
		return err
	}
	return errors.NewNetworkError(err)
}

func (c *Client) fail(ctx context.Context, op, path, requestID string, err error) {
	status := 0
	var apiErr *errors.APIError
	if errors.As(err, &apiErr) {
		status = apiErr.StatusCode
	}
	c.logger.Error("request failed", "op", op, "status", status, "request_id", requestID, "err", err)
	hooks := c.hooks
	if hooks == nil {
		hooks = observability.HTTP()
	}
	hooks.OnError(ctx, http.MethodGet, c.host, path, err)
}
