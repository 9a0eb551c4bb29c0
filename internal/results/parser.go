package results

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"math"
	"os"
	"path/filepath"

	"github.com/testify-automation/testify/internal/logging"
)

// FilePattern matches result artifacts inside a results directory.
const FilePattern = "*-result.json"

// ErrNoResultsDir is returned when the results directory does not exist.
var ErrNoResultsDir = errors.New("results directory not found")

// ScenarioResult is the per-test detail kept in a run record.
type ScenarioResult struct {
	Name       string `json:"name"`
	Status     Status `json:"status"`
	DurationMS int64  `json:"duration_ms"`
	// Tags is the artifact's "tag" label, or empty.
	Tags string `json:"tags"`
}

// Summary aggregates the artifacts of one run.
type Summary struct {
	Total           int              `json:"total"`
	Passed          int              `json:"passed"`
	Failed          int              `json:"failed"`
	Broken          int              `json:"broken"`
	Skipped         int              `json:"skipped"`
	PassRate        float64          `json:"pass_rate"`
	DurationS       float64          `json:"duration_s"`
	TotalDurationMS int64            `json:"-"`
	Scenarios       []ScenarioResult `json:"scenarios"`
}

// Summarize aggregates artifacts. Artifacts with a status outside the four
// known buckets keep their scenario record and duration but are not counted,
// not even in Total.
func Summarize(artifacts []Artifact) Summary {
	s := Summary{Scenarios: make([]ScenarioResult, 0, len(artifacts))}

	for _, a := range artifacts {
		switch a.Status {
		case StatusPassed:
			s.Passed++
		case StatusFailed:
			s.Failed++
		case StatusBroken:
			s.Broken++
		case StatusSkipped:
			s.Skipped++
		}

		duration := a.DurationMS()
		s.TotalDurationMS += duration
		s.Scenarios = append(s.Scenarios, ScenarioResult{
			Name:       a.Name,
			Status:     a.Status,
			DurationMS: duration,
			Tags:       a.LabelMap()["tag"],
		})
	}

	s.Total = s.Passed + s.Failed + s.Broken + s.Skipped
	s.PassRate = PassRate(s.Passed, s.Total)
	s.DurationS = round1(float64(s.TotalDurationMS) / 1000)
	return s
}

// PassRate is passed/total as a percentage with one decimal, 0 for no tests.
func PassRate(passed, total int) float64 {
	if total == 0 {
		return 0
	}
	return round1(float64(passed) / float64(total) * 100)
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// ParseDir reads every result artifact in dir and summarises them. Malformed
// artifacts are logged and skipped.
func ParseDir(dir string, logger *slog.Logger) (Summary, error) {
	log := logging.For(logger, "results")

	info, err := os.Stat(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return Summary{}, fmt.Errorf("%w: %s", ErrNoResultsDir, dir)
	}
	if err != nil {
		return Summary{}, fmt.Errorf("failed to stat results directory: %w", err)
	}
	if !info.IsDir() {
		return Summary{}, fmt.Errorf("%w: %s is not a directory", ErrNoResultsDir, dir)
	}

	files, err := filepath.Glob(filepath.Join(dir, FilePattern))
	if err != nil {
		return Summary{}, fmt.Errorf("failed to list result artifacts: %w", err)
	}

	artifacts := make([]Artifact, 0, len(files))
	for _, path := range files {
		data, err := os.ReadFile(path)
		if err != nil {
			log.Warn("skipping unreadable artifact", "file", filepath.Base(path), "error", err)
			continue
		}
		a, err := DecodeArtifact(data)
		if err != nil {
			log.Warn("skipping malformed artifact", "file", filepath.Base(path), "error", err)
			continue
		}
		if !a.Status.IsKnown() {
			log.Debug("artifact status not counted", "file", filepath.Base(path), "status", a.Status)
		}
		artifacts = append(artifacts, a)
	}
	log.Debug("parsed result artifacts", "dir", dir, "files", len(files), "counted", len(artifacts))

	return Summarize(artifacts), nil
}
