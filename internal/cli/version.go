package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version information (set at build time via ldflags)
var (
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func newVersionCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  `Print the version, git commit, and build date of the testify CLI.`,
		Args:  cobra.NoArgs,
		// The version never depends on configuration.
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
		Run: func(cmd *cobra.Command, args []string) {
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "testify version %s\n", Version)
			if a.verbose {
				fmt.Fprintf(w, "  git commit: %s\n", GitCommit)
				fmt.Fprintf(w, "  build date: %s\n", BuildDate)
			}
		},
	}
}
