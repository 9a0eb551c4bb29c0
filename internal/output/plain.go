package output

import (
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/testify-automation/testify/internal/catalog"
	"github.com/testify-automation/testify/internal/config"
	"github.com/testify-automation/testify/internal/feature"
	"github.com/testify-automation/testify/internal/history"
	"github.com/testify-automation/testify/internal/report"
)

// PlainFormatter outputs the classic console lines and tab-separated lists,
// suitable for scripting.
type PlainFormatter struct{}

// FormatCatalog outputs the generation summary followed by every non-empty
// suite.
func (f *PlainFormatter) FormatCatalog(w io.Writer, c *catalog.Catalog) error {
	fmt.Fprintf(w, "📋 Test catalog generated: %d test cases across %d features\n", c.TotalScenarios, c.TotalFeatures)
	for _, name := range catalog.SuiteNames() {
		if suite := c.Suites[name]; suite.Count > 0 {
			fmt.Fprintf(w, "   %s: %d tests\n", name, suite.Count)
		}
	}
	return nil
}

// FormatScenarios outputs one scenario per line.
func (f *PlainFormatter) FormatScenarios(w io.Writer, scenarios []feature.Scenario) error {
	for _, s := range scenarios {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", s.ID, s.Description, strings.Join(s.Tags, ","), s.FeatureName)
	}
	return nil
}

// FormatValidations outputs one line per checked file.
func (f *PlainFormatter) FormatValidations(w io.Writer, results []feature.Validation) error {
	for _, r := range results {
		if r.Valid() {
			fmt.Fprintf(w, "ok\t%s\t%d pickles\n", r.File, r.Pickles)
		} else {
			fmt.Fprintf(w, "FAIL\t%s\t%s\n", r.File, r.Error)
		}
	}
	return nil
}

// FormatRecorded outputs the one-line run summary.
func (f *PlainFormatter) FormatRecorded(w io.Writer, rec *history.Recorded) error {
	fmt.Fprintf(w, "📝 Run #%d recorded: %d/%d passed (%s%%)\n",
		rec.Index, rec.Run.Passed, rec.Run.Total, passRate(rec.Run.RunSummary))
	return nil
}

// FormatHistory outputs one line per run.
func (f *PlainFormatter) FormatHistory(w io.Writer, runs history.History, first int) error {
	for i, r := range runs {
		fmt.Fprintf(w, "%d\t%s\t%d/%d\t%s%%\t%.1fs\t%s\n",
			first+i, r.RunID, r.Passed, r.Total, passRate(r.RunSummary), r.DurationS, r.TagsFilter)
	}
	return nil
}

// FormatScaffold outputs one line per page.
func (f *PlainFormatter) FormatScaffold(w io.Writer, written []report.Written) error {
	for _, p := range written {
		if p.Kept {
			fmt.Fprintf(w, "Kept %s (use --force to overwrite)\n", p.Path)
		} else {
			fmt.Fprintf(w, "Created %s\n", p.Path)
		}
	}
	return nil
}

// FormatError outputs an error in plain format.
func (f *PlainFormatter) FormatError(w io.Writer, code string, message string, details map[string]any) error {
	fmt.Fprintf(w, "error: %s\n", message)
	return nil
}

// FormatConfig outputs configuration as YAML.
func (f *PlainFormatter) FormatConfig(w io.Writer, cfg *config.Config) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return fmt.Errorf("failed to format configuration: %w", err)
	}
	return enc.Close()
}

// passRate renders a pass rate with one decimal, or "0" for an empty run.
func passRate(r history.RunSummary) string {
	if r.Total == 0 {
		return "0"
	}
	return fmt.Sprintf("%.1f", r.PassRate)
}
