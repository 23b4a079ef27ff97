package cli

import (
	"github.com/spf13/cobra"
)

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for kojioka.

To load completions:

Bash:
  $ source <(kojioka completion bash)

  # To load completions for each session, execute once:
  # Linux:
  $ kojioka completion bash > /etc/bash_completion.d/kojioka
  # macOS:
  $ kojioka completion bash > $(brew --prefix)/etc/bash_completion.d/kojioka

Zsh:
  # If shell completion is not already enabled in your environment,
  # you will need to enable it. You can execute the following once:
  $ echo "autoload -U compinit; compinit" >> ~/.zshrc

  # To load completions for each session, execute once:
  $ kojioka completion zsh > "${fpath[1]}/_kojioka"

  # You will need to start a new shell for this setup to take effect.

Fish:
  $ kojioka completion fish | source

  # To load completions for each session, execute once:
  $ kojioka completion fish > ~/.config/fish/completions/kojioka.fish

PowerShell:
  PS> kojioka completion powershell | Out-String | Invoke-Expression

  # To load completions for every new session, run:
  PS> kojioka completion powershell > kojioka.ps1
  # and source this file from your PowerShell profile.
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		// Completion scripts never need config or the update check.
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(c.out)
			case "zsh":
				return cmd.Root().GenZshCompletion(c.out)
			case "fish":
				return cmd.Root().GenFishCompletion(c.out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(c.out)
			}
			return nil
		},
	}

	return cmd
}
