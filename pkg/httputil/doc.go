// Package httputil provides retry helpers shared by the Kojioka client and
// the registry collaborators used by the update notifier.
//
// # Retry
//
// [Retry] re-runs a request while it fails with a [RetryableError]:
//
//	err := httputil.Retry(ctx, 3, 500*time.Millisecond, func() error {
//	    return doRequest(ctx)
//	})
//
// Only failures where no response was obtained are marked retryable. A
// status code returned by the remote service is never retried, because it
// reflects a definite decision by the server.
//
// The delay doubles after each failed attempt. Cancelling ctx aborts the
// wait and returns ctx.Err().
//
// Callers pass their own attempt count and base delay. The Kojioka client
// defaults to a single attempt; retry is opt-in.
package httputil
