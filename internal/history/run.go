// Package history keeps the append-only log of recorded test runs and feeds
// the dashboard page.
package history

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/testify-automation/testify/internal/report"
	"github.com/testify-automation/testify/internal/results"
)

const (
	// RunIDLayout formats run identifiers.
	RunIDLayout = "20060102_150405"
	// TimestampLayout matches the local ISO timestamps already stored in
	// existing history files.
	TimestampLayout = report.TimestampLayout
)

// ErrNegativeCount is returned by NewRun for a negative counter.
var ErrNegativeCount = errors.New("run counters must not be negative")

// RunSummary is a run without its per-scenario detail. It is what the
// dashboard page embeds.
type RunSummary struct {
	Total      int     `json:"total"`
	Passed     int     `json:"passed"`
	Failed     int     `json:"failed"`
	Broken     int     `json:"broken"`
	Skipped    int     `json:"skipped"`
	PassRate   float64 `json:"pass_rate"`
	DurationS  float64 `json:"duration_s"`
	Timestamp  string  `json:"timestamp"`
	RunID      string  `json:"run_id"`
	TagsFilter string  `json:"tags_filter"`
}

// Run is one recorded test execution.
type Run struct {
	RunSummary
	Scenarios []results.ScenarioResult `json:"scenarios"`

	// raw is a stored record that did not fit Run. It is written back as read.
	raw json.RawMessage
}

// MarshalJSON encodes the run, or the stored record it was loaded from when
// that record did not fit Run.
func (r Run) MarshalJSON() ([]byte, error) {
	if r.raw != nil {
		return r.raw, nil
	}
	type plain Run
	return json.Marshal(plain(r))
}

// NewRun stamps summary as a run recorded at now. The run id is derived from
// now; callers appending to a history use History.Append, which also keeps
// run ids unique.
func NewRun(summary results.Summary, now time.Time, tagsFilter string) (Run, error) {
	for name, n := range map[string]int{
		"total":   summary.Total,
		"passed":  summary.Passed,
		"failed":  summary.Failed,
		"broken":  summary.Broken,
		"skipped": summary.Skipped,
	} {
		if n < 0 {
			return Run{}, fmt.Errorf("%w: %s=%d", ErrNegativeCount, name, n)
		}
	}

	scenarios := summary.Scenarios
	if scenarios == nil {
		scenarios = []results.ScenarioResult{}
	}

	return Run{
		RunSummary: RunSummary{
			Total:      summary.Total,
			Passed:     summary.Passed,
			Failed:     summary.Failed,
			Broken:     summary.Broken,
			Skipped:    summary.Skipped,
			PassRate:   summary.PassRate,
			DurationS:  summary.DurationS,
			Timestamp:  now.Format(TimestampLayout),
			RunID:      now.Format(RunIDLayout),
			TagsFilter: tagsFilter,
		},
		Scenarios: scenarios,
	}, nil
}

// uniqueRunID returns id, or id with a short random suffix when taken.
func uniqueRunID(id string, taken func(string) bool) string {
	candidate := id
	for taken(candidate) {
		candidate = id + "_" + uuid.NewString()[:8]
	}
	return candidate
}
