// Package update notifies users when a newer release of the library is
// published.
//
// A [Notifier] compares the locally installed version with the latest
// version reported by a [Registry] and emits one advisory per check when the
// registry is ahead. It runs on its own goroutine between [Notifier.Start]
// and [Notifier.Stop] and never lets a failure escape: every error is
// classified as a [FailureKind], logged, and reported to the update hooks.
//
//	n := update.NewNotifier(
//	    update.WithRegistry(goproxy.NewClient(nil, time.Hour)),
//	    update.WithLogger(logger),
//	)
//	if err := n.Start(ctx); err != nil {
//	    return err
//	}
//	defer n.Stop()
//
// Versions are ordered by semantic versioning; a missing "v" prefix is
// accepted on either side. Development builds ("dev") skip the check.
package update
