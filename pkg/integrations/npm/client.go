package npm

import (
	"context"
	"strings"
	"time"

	"github.com/kojioka/kojioka-go/pkg/cache"
	"github.com/kojioka/kojioka-go/pkg/errors"
	"github.com/kojioka/kojioka-go/pkg/integrations"
)

// DefaultBaseURL is the public npm registry.
const DefaultBaseURL = "https://registry.npmjs.org"

// Client provides access to the npm registry API.
//
// All methods are safe for concurrent use by multiple goroutines.
type Client struct {
	*integrations.Client
	baseURL string
}

// NewClient creates an npm registry client with the given cache backend.
func NewClient(backend cache.Cache, cacheTTL time.Duration, opts ...integrations.Option) *Client {
	return &Client{
		Client:  integrations.NewClient(backend, "npm:", cacheTTL, nil, opts...),
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
func (c *Client) Name() string { return "npm" }

// LatestVersion returns the dist-tags.latest version of pkg.
func (c *Client) LatestVersion(ctx context.Context, pkg string) (string, error) {
	pkg = strings.ToLower(strings.TrimSpace(pkg))
	if err := errors.ValidateNpmPackageName(pkg); err != nil {
		return "", err
	}

	var tags distTags
	err := c.Cached(ctx, pkg, false, &tags, func() error {
		return c.fetch(ctx, pkg, &tags)
	})
	if err != nil {
		return "", err
	}
	return tags.Latest, nil
}

func (c *Client) fetch(ctx context.Context, pkg string, tags *distTags) error {
	url := c.baseURL + "/" + integrations.URLEncode(pkg)

	var data registryResponse
	if err := c.Get(ctx, url, &data); err != nil {
		var apiErr *errors.APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode == 404 {
			return errors.Wrap(errors.ErrCodeNotFound, err, "npm package %s", pkg)
		}
		return err
	}
	if data.DistTags.Latest == "" {
		return errors.New(errors.ErrCodeInvalidResponse, "npm package %s: no latest dist-tag", pkg)
	}
	*tags = data.DistTags
	return nil
}

type registryResponse struct {
	Name     string   `json:"name"`
	DistTags distTags `json:"dist-tags"`
}

type distTags struct {
	Latest string `json:"latest"`
}
