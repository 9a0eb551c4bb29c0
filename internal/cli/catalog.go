package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/spf13/cobra"

	"github.com/testify-automation/testify/internal/catalog"
	"github.com/testify-automation/testify/internal/feature"
)

func newCatalogCmd(a *app) *cobra.Command {
	catalogCmd := &cobra.Command{
		Use:   "catalog",
		Short: "Generate the test catalog from the feature files",
		Long: `Parse every feature file in the features directory and write the test
catalog JSON. When the catalog page exists its data slot is refreshed.

The catalog groups scenarios into suites by tag:
  smoke          @smoke
  sanity         @sanity
  regression     @regression
  accessibility  @a11y or @accessibility
  performance    @perf or @performance`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCatalog(cmd, a)
		},
	}

	catalogCmd.AddCommand(newCatalogListCmd(a), newCatalogValidateCmd(a))
	return catalogCmd
}

func runCatalog(cmd *cobra.Command, a *app) error {
	result, err := catalog.Generate(catalog.Options{
		FeaturesDir: a.cfg.Paths.FeaturesDir,
		CatalogFile: a.cfg.Paths.CatalogFile,
		CatalogHTML: a.cfg.Paths.CatalogHTML,
		Logger:      a.logger,
	})
	if err != nil {
		return featuresError(err)
	}
	return a.formatter.FormatCatalog(cmd.OutOrStdout(), result.Catalog)
}

func newCatalogListCmd(a *app) *cobra.Command {
	var tags string

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List scenarios, optionally filtered by a tag expression",
		Long: `List the scenarios of the feature files without writing the catalog.

--tags accepts a Cucumber tag expression:
  testify catalog list --tags "@smoke"
  testify catalog list --tags "@regression and not @perf"
  testify catalog list --tags "(@a11y or @accessibility) and @home"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			features, err := feature.ParseDir(a.cfg.Paths.FeaturesDir)
			if err != nil {
				return featuresError(err)
			}

			scenarios, err := catalog.Build(features, time.Now()).Select(tags)
			if err != nil {
				return WrapExitCodeError(ExitError, "failed to select scenarios", err)
			}
			a.logger.Debug("selected scenarios", "subsystem", "cli", "tags", tags, "count", len(scenarios))
			return a.formatter.FormatScenarios(cmd.OutOrStdout(), scenarios)
		},
	}

	listCmd.Flags().StringVarP(&tags, "tags", "t", "", "tag expression to filter scenarios")
	return listCmd
}

func newCatalogValidateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check the feature files with the strict Gherkin parser",
		Long: `Parse every feature file with the official Gherkin parser and report
syntax errors. Exits with status 1 when any file is invalid. The catalog itself
is built by a lenient parser that never rejects a file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			results, err := feature.ValidateDir(a.cfg.Paths.FeaturesDir)
			if err != nil {
				return featuresError(err)
			}
			if err := a.formatter.FormatValidations(cmd.OutOrStdout(), results); err != nil {
				return err
			}

			invalid := 0
			for _, r := range results {
				if !r.Valid() {
					invalid++
				}
			}
			if invalid > 0 {
				return NewExitCodeError(ExitError, fmt.Sprintf("%d of %d feature files failed validation", invalid, len(results)))
			}
			return nil
		},
	}
}

// featuresError maps a missing features directory to exit code 3.
func featuresError(err error) error {
	if errors.Is(err, fs.ErrNotExist) {
		return NotFoundError("features directory not found", err)
	}
	return err
}
