package cli

import (
	"github.com/spf13/cobra"

	"github.com/kojioka/kojioka-go/pkg/config"
)

// configCommand creates the config management command.
func (c *CLI) configCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or create the configuration file",
	}

	cmd.AddCommand(c.configShowCommand())
	cmd.AddCommand(c.configInitCommand())
	cmd.AddCommand(c.configPathCommand())

	return cmd
}

// configShowCommand prints the effective configuration after defaults,
// file, environment and flags have been merged.
func (c *CLI) configShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration as TOML",
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.settings().Encode(c.out)
		},
	}
}

// configInitCommand writes the default configuration.
func (c *CLI) configInitCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default configuration file",
		// The file may not exist yet, so it must not be loaded first.
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := c.configPath()
			if err != nil {
				return err
			}
			if err := config.Default().WriteFile(path, force); err != nil {
				return err
			}
			printSuccess(c.out, "Wrote %s", path)
			printNextStep(c.out, "Show the effective settings", "kojioka config show")
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing file")
	return cmd
}

// configPathCommand prints where the configuration file is read from.
func (c *CLI) configPathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the configuration file path",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := c.configPath()
			if err != nil {
				return err
			}
			printKeyValue(c.out, "path", path)
			if file := c.settings().File; file != "" {
				printDetail(c.out, "loaded")
			} else {
				printDetail(c.out, "not present, using defaults")
			}
			return nil
		},
	}
}

func (c *CLI) configPath() (string, error) {
	if c.flags.config != "" {
		return c.flags.config, nil
	}
	return config.DefaultPath()
}
