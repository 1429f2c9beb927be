package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/luizvbo/ohcrab/internal/config"
	"github.com/luizvbo/ohcrab/internal/ui"
)

// configCmd groups configuration helpers
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect configuration",
	Long: `Show where the configuration file lives and the settings in effect,
after defaults and OHCRAB_* environment variables are applied.`,
	Example: `  ohcrab config path
  ohcrab config show
  OHCRAB_PIPELINE_WORKERS=4 ohcrab config show --format json`,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the configuration file path",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := fmt.Fprintln(cmd.OutOrStdout(), config.Path())
		return err
	},
}

var configShowFormat string

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return ui.Encode(cmd.OutOrStdout(), configShowFormat, config.Get())
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configPathCmd, configShowCmd)
	configShowCmd.Flags().StringVar(&configShowFormat, "format", config.FormatYAML, "output format: yaml or json")
}
