package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/kojioka/kojioka-go/pkg/buildinfo"
	"github.com/kojioka/kojioka-go/pkg/observability"
	"github.com/kojioka/kojioka-go/pkg/update"
)

// checkOutcome records whether a synchronous check failed.
type checkOutcome struct {
	observability.NoopUpdateHooks
	failed string
}

func (o *checkOutcome) OnCheckFailed(_ context.Context, _, kind string, _ error) {
	o.failed = kind
}

// versionCommand prints build information and checks the registry once.
func (c *CLI) versionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information and check for updates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			printKeyValue(c.out, "version", buildinfo.Current())
			printKeyValue(c.out, "commit", buildinfo.Commit)
			printKeyValue(c.out, "built", buildinfo.Date)

			cfg := c.settings()
			if !cfg.Update.Enabled {
				return nil
			}
			if buildinfo.Current() == "dev" {
				printInfo(c.out, "Development build, update check skipped")
				return nil
			}

			outcome := &checkOutcome{}
			n, err := c.newNotifier(cmd.Context(), update.WithHooks(outcome))
			if err != nil {
				return err
			}

			var spinner *Spinner
			if isTerminal(c.errOut) {
				spinner = newSpinnerWithContext(cmd.Context(), c.errOut, "Checking for updates...")
				spinner.Start()
			}
			notice := n.Check(cmd.Context())
			if spinner != nil {
				spinner.Stop()
			}

			switch {
			case outcome.failed != "":
				printWarning(c.out, "Update check failed (%s)", outcome.failed)
			case notice == nil:
				printSuccess(c.out, "%s is up to date", update.ProductName)
			}
			return nil
		},
	}
}
