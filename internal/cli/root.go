// Package cli implements the testify command tree.
package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/testify-automation/testify/internal/config"
	"github.com/testify-automation/testify/internal/logging"
	"github.com/testify-automation/testify/internal/output"
)

// app carries the flag values and the state loaded before a command runs.
type app struct {
	cfgFile  string
	format   string
	verbose  bool
	logLevel string

	cfg       *config.Config
	logger    *slog.Logger
	formatter output.Formatter
}

// NewRootCmd builds a fresh command tree. Every invocation gets its own
// flags and configuration, so the tree can be executed repeatedly in one
// process.
func NewRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "testify",
		Short: "Catalog BDD scenarios and track test run history",
		Long: `testify builds a catalog of the scenarios in a directory of Gherkin
feature files and keeps a history of test runs collected from Allure result
files. Both are embedded into static HTML report pages.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	rootCmd.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (default ./testify.yaml or ~/.config/testify/config.yaml)")
	rootCmd.PersistentFlags().StringVarP(&a.format, "format", "f", "", "output format: plain, table, json, id-only")
	rootCmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level: DEBUG, INFO, WARN, ERROR")

	rootCmd.AddCommand(
		newCatalogCmd(a),
		newCollectCmd(a),
		newHistoryCmd(a),
		newInitCmd(a),
		newConfigCmd(a),
		newVersionCmd(a),
	)
	return rootCmd
}

// setup loads the configuration and resolves the formatter and logger.
func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.cfgFile)
	if err != nil {
		return WrapExitCodeError(ExitConfigError, "failed to load configuration", err)
	}
	a.cfg = cfg

	format := output.Format(cfg.Defaults.Format)
	if a.format != "" {
		format = output.Format(a.format)
	}
	if !format.IsValid() {
		valid := make([]string, 0, len(output.ValidFormats()))
		for _, f := range output.ValidFormats() {
			valid = append(valid, string(f))
		}
		return NewExitCodeError(ExitError, fmt.Sprintf("invalid format %q (valid: %s)", format, strings.Join(valid, ", ")))
	}
	a.formatter = output.New(format)

	levelName := cfg.Defaults.LogLevel
	if a.logLevel != "" {
		levelName = a.logLevel
	}
	level, err := logging.ParseLevel(levelName)
	if err != nil {
		return NewExitCodeError(ExitError, err.Error())
	}
	if a.verbose {
		level = logging.LevelDebug
	}
	a.logger = logging.New(level, cmd.ErrOrStderr())
	a.logger.Debug("configuration loaded", "subsystem", "cli", "file", cfg.File, "format", format)
	return nil
}

// Run executes the command tree with args and returns the process exit code.
// Errors are reported on stderr.
func Run(args []string, stdout, stderr io.Writer) int {
	rootCmd := NewRootCmd()
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintln(stderr, errorMessage(err))
	}
	return GetExitCode(err)
}

// Execute runs the CLI application against the process arguments.
func Execute() int {
	return Run(os.Args[1:], os.Stdout, os.Stderr)
}
