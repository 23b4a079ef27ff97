// Package integrations provides the shared HTTP transport used by the
// Kojioka API client and the registry collaborators of the update notifier.
//
// # Overview
//
// The [Client] type performs GET requests with default headers, a fresh
// X-Request-ID per request, and hook callbacks. It normalizes the two ways a
// request can fail:
//
//   - No response was obtained: the error is an [errors.NetworkError] wrapped
//     in [httputil.RetryableError], so [httputil.Retry] may try again.
//   - The server answered with a non-2xx status: [CheckStatus] returns an
//     [errors.APIError] carrying the status code and the serialized body.
//     It is never retryable.
//
// Registry clients live in subpackages:
//
//   - [npm]: registry.npmjs.org, dist-tags.latest
//   - [goproxy]: proxy.golang.org, the @latest endpoint
//
// Both implement the update.Registry interface:
//
//	client := goproxy.NewClient(cache.NewNullCache(), time.Hour)
//	latest, err := client.LatestVersion(ctx, "github.com/kojioka/kojioka-go")
//
// # Caching
//
// Registry answers may be cached through [Client.Cached] with any
// [cache.Cache] backend. API client responses are never cached.
//
// [npm]: github.com/kojioka/kojioka-go/pkg/integrations/npm
// [goproxy]: github.com/kojioka/kojioka-go/pkg/integrations/goproxy
// [errors.NetworkError]: github.com/kojioka/kojioka-go/pkg/errors.NetworkError
// [errors.APIError]: github.com/kojioka/kojioka-go/pkg/errors.APIError
// [httputil.RetryableError]: github.com/kojioka/kojioka-go/pkg/httputil.RetryableError
// [httputil.Retry]: github.com/kojioka/kojioka-go/pkg/httputil.Retry
// [cache.Cache]: github.com/kojioka/kojioka-go/pkg/cache.Cache
package integrations
