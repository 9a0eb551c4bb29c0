package history

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/testify-automation/testify/internal/inject"
	"github.com/testify-automation/testify/internal/logging"
	"github.com/testify-automation/testify/internal/results"
)

// DefaultVariable is the data slot of the dashboard page.
const DefaultVariable = "window.__RUN_DATA__"

// Options locates the inputs and outputs of a collection run.
type Options struct {
	ResultsDir    string
	HistoryFile   string
	DashboardHTML string
	// Variable is the page's data slot; DefaultVariable when empty.
	Variable string
	// TagsFilter is stored verbatim on the new run.
	TagsFilter string
	// Now stamps the run; time.Now when nil.
	Now    func() time.Time
	Logger *slog.Logger
}

// Recorded reports what Collect appended.
type Recorded struct {
	// Index is the 1-based position of Run in the saved history.
	Index int
	Run   Run
	Page  inject.Outcome
}

// Collect summarises the results directory, appends the run to the history
// file and splices the slim history into the dashboard page. A missing
// results directory fails with results.ErrNoResultsDir before anything is
// written.
func Collect(opts Options) (*Recorded, error) {
	log := logging.For(opts.Logger, "history")
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	variable := opts.Variable
	if variable == "" {
		variable = DefaultVariable
	}

	summary, err := results.ParseDir(opts.ResultsDir, opts.Logger)
	if err != nil {
		return nil, err
	}

	run, err := NewRun(summary, now(), opts.TagsFilter)
	if err != nil {
		return nil, err
	}

	h := Load(opts.HistoryFile, opts.Logger)
	index := h.Append(run)
	run = h[index-1]

	if err := h.Save(opts.HistoryFile); err != nil {
		return nil, err
	}
	log.Debug("run recorded", "run_id", run.RunID, "index", index, "path", opts.HistoryFile)

	outcome, err := inject.Splice(opts.DashboardHTML, variable, h.Slim())
	if err != nil {
		return nil, fmt.Errorf("failed to update dashboard page: %w", err)
	}
	switch outcome {
	case inject.PageMissing:
		log.Debug("dashboard page not found, skipping injection", "path", opts.DashboardHTML)
	case inject.SlotMissing:
		log.Warn("dashboard page has no data slot", "path", opts.DashboardHTML, "variable", variable)
	default:
		log.Debug("dashboard page updated", "path", opts.DashboardHTML, "runs", index)
	}

	return &Recorded{Index: index, Run: run, Page: outcome}, nil
}
