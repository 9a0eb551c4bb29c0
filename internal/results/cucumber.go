package results

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// Cucumber JSON structures, as written by godog's "cucumber" formatter.
type (
	CucumberReport []CucumberFeature

	CucumberFeature struct {
		URI      string             `json:"uri"`
		Name     string             `json:"name"`
		Tags     []CucumberTag      `json:"tags"`
		Elements []CucumberScenario `json:"elements"`
	}

	CucumberScenario struct {
		ID    string         `json:"id"`
		Name  string         `json:"name"`
		Type  string         `json:"type"`
		Tags  []CucumberTag  `json:"tags"`
		Steps []CucumberStep `json:"steps"`
	}

	CucumberStep struct {
		Keyword string         `json:"keyword"`
		Name    string         `json:"name"`
		Result  CucumberResult `json:"result"`
	}

	CucumberResult struct {
		Status string `json:"status"`
		// Duration is in nanoseconds.
		Duration int64  `json:"duration"`
		Error    string `json:"error_message,omitempty"`
	}

	CucumberTag struct {
		Name string `json:"name"`
	}
)

// ReadCucumber decodes a Cucumber JSON report.
func ReadCucumber(r io.Reader) (CucumberReport, error) {
	var report CucumberReport
	if err := json.NewDecoder(r).Decode(&report); err != nil {
		return nil, fmt.Errorf("failed to decode cucumber report: %w", err)
	}
	return report, nil
}

// FromCucumber converts every scenario of report into a result artifact.
// Scenarios are laid out back to back starting at startedAt, each lasting the
// sum of its step durations.
func FromCucumber(report CucumberReport, startedAt time.Time) []Artifact {
	var artifacts []Artifact
	clock := startedAt.UnixMilli()

	for _, f := range report {
		for _, sc := range f.Elements {
			if sc.Type == "background" {
				continue
			}

			var elapsed time.Duration
			for _, step := range sc.Steps {
				elapsed += time.Duration(step.Result.Duration)
			}

			labels := []Label{{Name: "feature", Value: f.Name}}
			for _, tag := range sc.Tags {
				labels = append(labels, Label{Name: "tag", Value: tag.Name})
			}

			artifacts = append(artifacts, Artifact{
				UUID:   uuid.NewString(),
				Name:   sc.Name,
				Status: cucumberStatus(sc.Steps),
				Start:  clock,
				Stop:   clock + elapsed.Milliseconds(),
				Labels: labels,
			})
			clock += elapsed.Milliseconds()
		}
	}
	return artifacts
}

// cucumberStatus folds step results into one artifact status: a failed step
// fails the scenario, an unimplemented step breaks it, and a scenario whose
// steps were all skipped is skipped.
func cucumberStatus(steps []CucumberStep) Status {
	status := StatusSkipped
	for _, step := range steps {
		switch step.Result.Status {
		case "failed":
			return StatusFailed
		case "undefined", "pending", "ambiguous":
			status = StatusBroken
		case "passed":
			if status == StatusSkipped {
				status = StatusPassed
			}
		}
	}
	return status
}

// WriteArtifacts stores each artifact as <uuid>-result.json inside dir.
func WriteArtifacts(dir string, artifacts []Artifact) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create results directory: %w", err)
	}
	for _, a := range artifacts {
		if a.UUID == "" {
			a.UUID = uuid.NewString()
		}
		data, err := json.MarshalIndent(a, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode artifact %s: %w", a.UUID, err)
		}
		path := filepath.Join(dir, a.UUID+"-result.json")
		if err := os.WriteFile(path, data, 0644); err != nil {
			return fmt.Errorf("failed to write artifact: %w", err)
		}
	}
	return nil
}
