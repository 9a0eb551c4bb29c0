package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/testify-automation/testify/internal/config"
	"github.com/testify-automation/testify/internal/report"
)

func newInitCmd(a *app) *cobra.Command {
	var force bool

	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Scaffold the report pages and a project config file",
		Long: `Scaffold a project in the current directory.

Created structure:
  features/                - Feature files directory
  reports/catalog.html     - Catalog page with the window.__CATALOG__ slot
  reports/dashboard.html   - Dashboard page with the window.__RUN_DATA__ slot
  testify.yaml             - Configuration file

Paths follow the effective configuration. Existing files are kept unless
--force is given.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(cmd, a, force)
		},
	}

	initCmd.Flags().BoolVar(&force, "force", false, "overwrite existing pages and config file")
	return initCmd
}

func runInit(cmd *cobra.Command, a *app, force bool) error {
	paths := a.cfg.Paths

	if err := os.MkdirAll(paths.FeaturesDir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", paths.FeaturesDir, err)
	}

	written, err := report.ScaffoldPages(map[string]string{
		report.CatalogPage:   paths.CatalogHTML,
		report.DashboardPage: paths.DashboardHTML,
	}, force)
	if err != nil {
		return err
	}

	cfgWritten, err := writeProjectConfig(a.cfg, force)
	if err != nil {
		return err
	}
	written = append(written, cfgWritten)

	return a.formatter.FormatScaffold(cmd.OutOrStdout(), written)
}

// writeProjectConfig stores the path settings as ./testify.yaml.
func writeProjectConfig(cfg *config.Config, force bool) (report.Written, error) {
	path := config.LocalConfigFile
	if _, err := os.Stat(path); err == nil && !force {
		return report.Written{Path: path, Kept: true}, nil
	}

	project := map[string]any{
		"paths": map[string]any{
			"features_dir": cfg.Paths.FeaturesDir,
			"reports_dir":  cfg.Paths.ReportsDir,
		},
		"target": map[string]any{
			"base_url": cfg.Target.BaseURL,
		},
		"browser": map[string]any{
			"name":     cfg.Browser.Name,
			"headless": cfg.Browser.Headless,
		},
	}

	output, err := yaml.Marshal(project)
	if err != nil {
		return report.Written{}, fmt.Errorf("failed to format configuration: %w", err)
	}
	if err := os.WriteFile(path, output, 0644); err != nil {
		return report.Written{}, fmt.Errorf("failed to create config file: %w", err)
	}
	return report.Written{Path: path}, nil
}
