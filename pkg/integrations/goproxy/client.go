package goproxy

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/mod/module"

	"github.com/kojioka/kojioka-go/pkg/cache"
	"github.com/kojioka/kojioka-go/pkg/errors"
	"github.com/kojioka/kojioka-go/pkg/integrations"
)

// DefaultBaseURL is the public Go module proxy.
const DefaultBaseURL = "https://proxy.golang.org"

// Client provides access to the Go module proxy API.
//
// All methods are safe for concurrent use by multiple goroutines.
type Client struct {
	*integrations.Client
	baseURL string
}

// NewClient creates a Go module proxy client with the given cache backend.
// Pass cache.NewNullCache() (or nil) to disable caching.
func NewClient(backend cache.Cache, cacheTTL time.Duration, opts ...integrations.Option) *Client {
	return &Client{
		Client:  integrations.NewClient(backend, "goproxy:", cacheTTL, nil, opts...),
		baseURL: DefaultBaseURL,
	}
}

// SetBaseURL points the client at a mirror or a test server. Call it before
// the client is shared.
func (c *Client) SetBaseURL(u string) {
	if u = strings.TrimRight(strings.TrimSpace(u), "/"); u != "" {
		c.baseURL = u
	}
}

// Name identifies the registry in logs.
func (c *Client) Name() string { return "goproxy" }

// LatestVersion returns the version reported by the @latest endpoint.
//
// Returns an [errors.APIError] when the proxy answers with a failure status
// (wrapped with ErrCodeNotFound for unknown modules) and an
// [errors.NetworkError] when the proxy cannot be reached.
func (c *Client) LatestVersion(ctx context.Context, mod string) (string, error) {
	mod = strings.TrimSpace(mod)
	if err := errors.ValidateGoModulePath(mod); err != nil {
		return "", err
	}

	var info latestResponse
	err := c.Cached(ctx, mod, false, &info, func() error {
		return c.fetchLatest(ctx, mod, &info)
	})
	if err != nil {
		return "", err
	}
	return info.Version, nil
}

func (c *Client) fetchLatest(ctx context.Context, mod string, info *latestResponse) error {
	escaped, err := module.EscapePath(mod)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPackage, err, "go module %s", mod)
	}
	url := fmt.Sprintf("%s/%s/@latest", c.baseURL, escaped)

	if err := c.Get(ctx, url, info); err != nil {
		if isNotFound(err) {
			return errors.Wrap(errors.ErrCodeNotFound, err, "go module %s", mod)
		}
		return err
	}
	if info.Version == "" {
		return errors.New(errors.ErrCodeInvalidResponse, "go module %s: empty version", mod)
	}
	return nil
}

// The proxy answers 404 for unknown modules and 410 for retracted or
// otherwise gone ones.
func isNotFound(err error) bool {
	var apiErr *errors.APIError
	return errors.As(err, &apiErr) && (apiErr.StatusCode == 404 || apiErr.StatusCode == 410)
}

type latestResponse struct {
	Version string `json:"Version"`
	Time    string `json:"Time"`
}
