package update

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"syscall"
	"testing"

	kerrors "github.com/kojioka/kojioka-go/pkg/errors"
)

func TestClassify(t *testing.T) {
	refused := &net.OpError{
		Op:  "dial",
		Net: "tcp",
		Err: &os.SyscallError{Syscall: "connect", Err: syscall.ECONNREFUSED},
	}
	dns := &net.DNSError{Err: "no such host", Name: "proxy.golang.org", IsNotFound: true}

	tests := []struct {
		name string
		err  error
		want FailureKind
	}{
		{"nil", nil, FailureUnknown},
		{"dns", kerrors.NewNetworkError(dns), FailureDNS},
		{"dns timeout is dns", kerrors.NewNetworkError(&net.DNSError{Err: "i/o timeout", IsTimeout: true}), FailureDNS},
		{"refused", kerrors.NewNetworkError(refused), FailureConnRefused},
		{"deadline", kerrors.NewNetworkError(context.DeadlineExceeded), FailureTimeout},
		{"io deadline", fmt.Errorf("read: %w", os.ErrDeadlineExceeded), FailureTimeout},
		{"registry 503", &kerrors.APIError{StatusCode: 503}, FailureRegistry},
		{"registry 404 wrapped", kerrors.Wrap(kerrors.ErrCodeNotFound, &kerrors.APIError{StatusCode: 404}, "npm package x"), FailureRegistry},
		{"no local version", ErrNoLocalVersion, FailureMetadata},
		{"bad version", fmt.Errorf("%w: %q", ErrInvalidVersion, "x"), FailureParse},
		{"bad body", kerrors.New(kerrors.ErrCodeInvalidResponse, "empty version"), FailureParse},
		{"other", errors.New("boom"), FailureUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.err); got != tt.want {
				t.Errorf("Classify() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFailureKindTransient(t *testing.T) {
	transient := map[FailureKind]bool{
		FailureDNS:         true,
		FailureConnRefused: true,
		FailureTimeout:     true,
		FailureRegistry:    true,
	}

	seen := make(map[string]bool)
	for _, k := range FailureKinds {
		if got := k.Transient(); got != transient[k] {
			t.Errorf("%v.Transient() = %v, want %v", k, got, transient[k])
		}
		if seen[k.String()] {
			t.Errorf("duplicate kind name %q", k)
		}
		seen[k.String()] = true
	}
	if len(FailureKinds) != 7 {
		t.Errorf("len(FailureKinds) = %d, want 7", len(FailureKinds))
	}
}
