// Package pkg provides the libraries behind kojioka-go, a client for the
// Kojioka music API.
//
// # Overview
//
// The Kojioka service resolves a track name or a YouTube, SoundCloud or
// Spotify URL to a playable stream. The pkg directory is organized into
// three areas:
//
//  1. [kojioka] - The API client (FetchStream, SearchTrack, Status)
//  2. [update] - The background update notifier
//  3. Supporting packages (errors, cache, integrations, config)
//
// # Architecture
//
// A request flows through:
//
//	kojioka.Client
//	     ↓
//	[integrations] (request IDs, hooks, status checks)
//	     ↓
//	[httputil] (retry of network errors)
//	     ↓
//	Kojioka API
//
// The update notifier runs beside it:
//
//	update.Notifier ── cron schedule ──→ [integrations/goproxy] or [integrations/npm]
//	     ↓                                        ↓
//	one advisory per check              [cache] (file or Redis)
//
// # Quick Start
//
//	client, err := kojioka.NewClient()
//	if err != nil {
//	    return err
//	}
//	resp, err := client.FetchStream(ctx, "never gonna give you up")
//	if err != nil {
//	    var apiErr *errors.APIError
//	    if errors.As(err, &apiErr) {
//	        fmt.Println(apiErr.StatusCode, apiErr.Details)
//	    }
//	    return err
//	}
//	fmt.Println(resp)
//
// # Main Packages
//
// [kojioka] - The three operations, their options and the [kojioka.Response]
// body type.
//
// [update] - Start/Stop lifecycle, semver comparison and failure
// classification for registry checks. Failures never reach the caller.
//
// [errors] - INVALID_ARGUMENT, API_ERROR and NETWORK_ERROR, plus the
// validation helpers.
//
// [integrations] - Shared HTTP plumbing and the Go module proxy and npm
// registry clients.
//
// [cache] - File, Redis and null backends with key scoping.
//
// [httputil] - Retry with exponential backoff for [httputil.RetryableError].
//
// [observability] - Hooks for request and update-check events.
//
// [config] - Layered configuration for the kojioka command.
//
// [mockapi] - A local stand-in for the Kojioka API.
//
// [buildinfo] - Installed version and User-Agent.
package pkg
