package output

import (
	"encoding/json"
	"io"

	"github.com/testify-automation/testify/internal/catalog"
	"github.com/testify-automation/testify/internal/config"
	"github.com/testify-automation/testify/internal/feature"
	"github.com/testify-automation/testify/internal/history"
	"github.com/testify-automation/testify/internal/report"
)

// JSONFormatter outputs data in JSON format.
type JSONFormatter struct{}

// FormatCatalog outputs catalog totals and suites as JSON. The features are
// left out; they are in the catalog file.
func (f *JSONFormatter) FormatCatalog(w io.Writer, c *catalog.Catalog) error {
	return f.writeJSON(w, map[string]any{
		"generated_at":        c.GeneratedAt,
		"total_features":      c.TotalFeatures,
		"total_scenarios":     c.TotalScenarios,
		"total_with_examples": c.TotalWithExamples,
		"all_tags":            c.AllTags,
		"suites":              c.Suites,
	})
}

// FormatScenarios outputs a list of scenarios as JSON.
func (f *JSONFormatter) FormatScenarios(w io.Writer, scenarios []feature.Scenario) error {
	if scenarios == nil {
		scenarios = []feature.Scenario{}
	}
	return f.writeJSON(w, map[string]any{
		"scenarios": scenarios,
		"count":     len(scenarios),
	})
}

// FormatValidations outputs validation results as JSON.
func (f *JSONFormatter) FormatValidations(w io.Writer, results []feature.Validation) error {
	invalid := 0
	for _, r := range results {
		if !r.Valid() {
			invalid++
		}
	}
	if results == nil {
		results = []feature.Validation{}
	}
	return f.writeJSON(w, map[string]any{
		"files":   results,
		"invalid": invalid,
	})
}

// FormatRecorded outputs the recorded run as JSON.
func (f *JSONFormatter) FormatRecorded(w io.Writer, rec *history.Recorded) error {
	return f.writeJSON(w, map[string]any{
		"index": rec.Index,
		"run":   rec.Run,
	})
}

// FormatHistory outputs the slim runs as JSON.
func (f *JSONFormatter) FormatHistory(w io.Writer, runs history.History, first int) error {
	return f.writeJSON(w, map[string]any{
		"first": first,
		"runs":  runs.Slim(),
	})
}

// FormatScaffold outputs the scaffolded pages as JSON.
func (f *JSONFormatter) FormatScaffold(w io.Writer, written []report.Written) error {
	pages := make([]map[string]any, 0, len(written))
	for _, p := range written {
		pages = append(pages, map[string]any{
			"path": p.Path,
			"kept": p.Kept,
		})
	}
	return f.writeJSON(w, map[string]any{"pages": pages})
}

// FormatError outputs an error as JSON.
func (f *JSONFormatter) FormatError(w io.Writer, code string, message string, details map[string]any) error {
	errObj := map[string]any{
		"error": map[string]any{
			"code":    code,
			"message": message,
		},
	}
	if details != nil {
		errObj["error"].(map[string]any)["details"] = details
	} else {
		errObj["error"].(map[string]any)["details"] = map[string]any{}
	}
	return f.writeJSON(w, errObj)
}

// FormatConfig outputs configuration as JSON.
func (f *JSONFormatter) FormatConfig(w io.Writer, cfg *config.Config) error {
	return f.writeJSON(w, cfg)
}

// writeJSON encodes the value as indented JSON and writes it to w.
func (f *JSONFormatter) writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
