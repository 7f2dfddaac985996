package cmd

import (
	"fmt"

	"i18n-sync/core/config"

	"github.com/spf13/cobra"
)

// initCmd writes a configuration file with default values.
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default .i18n-sync.yaml",
	Long: `Init writes .i18n-sync.yaml with every setting at its default value
into the config directory. An existing file is left untouched.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := config.WriteDefault(configDir)
		if err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s; set remote.host, remote.sub_system_name and remote.product_code before syncing.\n", path)
		return nil
	},
}

func init() {
	RootCmd.AddCommand(initCmd)
}
