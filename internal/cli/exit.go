package cli

import (
	"context"
	"errors"

	kerrors "github.com/kojioka/kojioka-go/pkg/errors"
)

// Exit codes.
const (
	ExitOK       = 0
	ExitFailure  = 1
	ExitUsage    = 2
	ExitCanceled = 130 // shell convention for SIGINT
)

// ExitCode maps an error returned by a command to a process exit code.
// Rejected input exits with ExitUsage so scripts can tell it apart from
// remote failures.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	if errors.Is(err, context.Canceled) {
		return ExitCanceled
	}
	switch kerrors.GetCode(err) {
	case kerrors.ErrCodeInvalidArgument, kerrors.ErrCodeInvalidConfig, kerrors.ErrCodeInvalidURL:
		return ExitUsage
	}
	return ExitFailure
}
