package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/testify-automation/testify/internal/history"
	"github.com/testify-automation/testify/internal/results"
)

// noResultsMessage is printed when the results directory is absent.
const noResultsMessage = noticePrefix + "No allure-results directory found. Run tests first."

func newCollectCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "collect [tags-filter]",
		Short: "Record the latest test results in the run history",
		Long: `Summarise the result files in the results directory, append the run to
the history file and refresh the dashboard page.

The optional argument is stored verbatim as the run's tag filter, e.g.:
  testify collect "@smoke"`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tagsFilter := ""
			if len(args) > 0 {
				tagsFilter = args[0]
			}

			rec, err := history.Collect(history.Options{
				ResultsDir:    a.cfg.Paths.ResultsDir,
				HistoryFile:   a.cfg.Paths.HistoryFile,
				DashboardHTML: a.cfg.Paths.DashboardHTML,
				TagsFilter:    tagsFilter,
				Logger:        a.logger,
			})
			if errors.Is(err, results.ErrNoResultsDir) {
				return NewExitCodeError(ExitError, noResultsMessage)
			}
			if err != nil {
				return err
			}
			return a.formatter.FormatRecorded(cmd.OutOrStdout(), rec)
		},
	}
}
