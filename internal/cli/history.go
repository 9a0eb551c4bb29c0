package cli

import (
	"github.com/spf13/cobra"

	"github.com/testify-automation/testify/internal/history"
)

func newHistoryCmd(a *app) *cobra.Command {
	var last int

	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "Show recorded test runs",
		Long: `Show the runs recorded in the history file, oldest first. A missing or
corrupt history file shows as empty.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if last < 0 {
				return NewExitCodeError(ExitError, "--last must not be negative")
			}

			h := history.Load(a.cfg.Paths.HistoryFile, a.logger)
			runs := h.Tail(last)
			return a.formatter.FormatHistory(cmd.OutOrStdout(), runs, len(h)-len(runs)+1)
		},
	}

	historyCmd.Flags().IntVarP(&last, "last", "n", 0, "show only the last N runs (0 shows all)")
	return historyCmd
}
