package update

import (
	"context"
	"errors"
	"net"
	"os"
	"syscall"

	kerrors "github.com/kojioka/kojioka-go/pkg/errors"
)

var (
	// ErrNoLocalVersion means the installed version could not be determined.
	ErrNoLocalVersion = errors.New("local version unavailable")

	// ErrInvalidVersion means a version string is not a semantic version.
	ErrInvalidVersion = errors.New("invalid version")

	// ErrAlreadyRunning is returned by Start on a running notifier.
	ErrAlreadyRunning = errors.New("update notifier already running")
)

// FailureKind classifies why a check did not complete.
type FailureKind int

const (
	FailureUnknown     FailureKind = iota
	FailureDNS                     // registry host could not be resolved
	FailureConnRefused             // registry refused the connection
	FailureTimeout                 // registry did not answer in time
	FailureRegistry                // registry answered with a non-2xx status
	FailureMetadata                // local version missing
	FailureParse                   // a version or the registry body was unparsable
)

// FailureKinds lists every kind.
var FailureKinds = []FailureKind{
	FailureUnknown,
	FailureDNS,
	FailureConnRefused,
	FailureTimeout,
	FailureRegistry,
	FailureMetadata,
	FailureParse,
}

// String returns the kind's log name.
func (k FailureKind) String() string {
	switch k {
	case FailureDNS:
		return "dns"
	case FailureConnRefused:
		return "conn_refused"
	case FailureTimeout:
		return "timeout"
	case FailureRegistry:
		return "registry"
	case FailureMetadata:
		return "metadata"
	case FailureParse:
		return "parse"
	default:
		return "unknown"
	}
}

// Transient reports whether the failure is expected on flaky networks or
// registry hiccups. Transient failures are logged at debug level only.
func (k FailureKind) Transient() bool {
	switch k {
	case FailureDNS, FailureConnRefused, FailureTimeout, FailureRegistry:
		return true
	}
	return false
}

// Classify maps a check error to its FailureKind.
func Classify(err error) FailureKind {
	if err == nil {
		return FailureUnknown
	}

	switch {
	case errors.Is(err, ErrNoLocalVersion):
		return FailureMetadata
	case errors.Is(err, ErrInvalidVersion), kerrors.Is(err, kerrors.ErrCodeInvalidResponse):
		return FailureParse
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return FailureDNS
	}
	if errors.Is(err, syscall.ECONNREFUSED) {
		return FailureConnRefused
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, os.ErrDeadlineExceeded) {
		return FailureTimeout
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return FailureTimeout
	}
	var apiErr *kerrors.APIError
	if errors.As(err, &apiErr) {
		return FailureRegistry
	}
	return FailureUnknown
}
