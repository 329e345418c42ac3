package cli

import "github.com/spf13/cobra"

// AddConfigCommand adds the config command group to the root command.
func AddConfigCommand(parent *cobra.Command, flags *GlobalFlags) {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect countdown configuration",
		Long: `Inspect the effective countdown configuration.

Configuration is layered, highest precedence first:
  1. Command flags
  2. COUNTDOWN_* environment variables
  3. Project config (.countdown/config.yaml)
  4. Global config (~/.countdown/config.yaml)
  5. Built-in defaults`,
	}

	AddConfigShowCommand(cmd, flags)
	parent.AddCommand(cmd)
}
