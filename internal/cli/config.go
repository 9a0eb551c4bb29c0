package cli

import (
	"github.com/spf13/cobra"
)

func newConfigCmd(a *app) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration",
		Long:  `Inspect testify configuration settings.`,
	}

	configCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Display current configuration",
		Long: `Display the effective configuration: defaults, then the config file,
then environment variables. The plain format prints YAML.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.cfg == nil {
				return ConfigError("no configuration loaded")
			}
			return a.formatter.FormatConfig(cmd.OutOrStdout(), a.cfg)
		},
	})
	return configCmd
}
