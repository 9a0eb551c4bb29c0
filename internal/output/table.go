package output

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"golang.org/x/term"

	"github.com/testify-automation/testify/internal/catalog"
	"github.com/testify-automation/testify/internal/config"
	"github.com/testify-automation/testify/internal/feature"
	"github.com/testify-automation/testify/internal/history"
	"github.com/testify-automation/testify/internal/report"
)

// TableFormatter outputs data in a human-readable table format.
type TableFormatter struct{}

// createTable creates a new table with standard styling
func (f *TableFormatter) createTable() table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	return t
}

func (f *TableFormatter) render(w io.Writer, t table.Writer) error {
	if width := terminalWidth(w); width > 0 {
		t.SetAllowedRowLength(width)
	}
	_, err := fmt.Fprintln(w, t.Render())
	return err
}

// terminalWidth is the column count of w when it is a terminal, else 0.
func terminalWidth(w io.Writer) int {
	file, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(file.Fd())) {
		return 0
	}
	width, _, err := term.GetSize(int(file.Fd()))
	if err != nil {
		return 0
	}
	return width
}

// FormatCatalog outputs catalog totals followed by a suite table.
func (f *TableFormatter) FormatCatalog(w io.Writer, c *catalog.Catalog) error {
	fmt.Fprintf(w, "Catalog generated %s\n", c.GeneratedAt)
	fmt.Fprintf(w, "Features:   %d\n", c.TotalFeatures)
	fmt.Fprintf(w, "Scenarios:  %d (%d with examples)\n", c.TotalScenarios, c.TotalWithExamples)
	if len(c.AllTags) > 0 {
		fmt.Fprintf(w, "Tags:       %s\n", strings.Join(c.AllTags, ", "))
	}
	fmt.Fprintln(w)

	t := f.createTable()
	t.AppendHeader(table.Row{"Suite", "Count", "Tests"})
	for _, name := range catalog.SuiteNames() {
		suite := c.Suites[name]
		t.AppendRow(table.Row{name, suite.Count, strings.Join(suite.Tests, ", ")})
	}
	return f.render(w, t)
}

// FormatScenarios outputs scenarios in a table.
func (f *TableFormatter) FormatScenarios(w io.Writer, scenarios []feature.Scenario) error {
	if len(scenarios) == 0 {
		fmt.Fprintln(w, "No scenarios found.")
		return nil
	}

	t := f.createTable()
	t.AppendHeader(table.Row{"ID", "Scenario", "Feature", "Tags", "Cases"})
	for _, s := range scenarios {
		id := s.ID
		if id == "" {
			id = "—"
		}

		// Truncate description if too long
		desc := s.Description
		if len(desc) > 50 {
			desc = desc[:47] + "..."
		}

		t.AppendRow(table.Row{id, desc, s.FeatureName, strings.Join(s.Tags, " "), s.Cases()})
	}
	t.AppendFooter(table.Row{"", "", "", "Total", len(scenarios)})
	return f.render(w, t)
}

// FormatValidations outputs one row per checked file.
func (f *TableFormatter) FormatValidations(w io.Writer, results []feature.Validation) error {
	if len(results) == 0 {
		fmt.Fprintln(w, "No feature files found.")
		return nil
	}

	t := f.createTable()
	t.AppendHeader(table.Row{"File", "Status", "Pickles", "Error"})
	for _, r := range results {
		status := text.FgGreen.Sprint("ok")
		if !r.Valid() {
			status = text.FgRed.Sprint("FAIL")
		}
		t.AppendRow(table.Row{r.File, status, r.Pickles, r.Error})
	}
	return f.render(w, t)
}

// FormatRecorded outputs the recorded run in detailed format.
func (f *TableFormatter) FormatRecorded(w io.Writer, rec *history.Recorded) error {
	r := rec.Run
	fmt.Fprintf(w, "Run #%d: %s\n", rec.Index, r.RunID)
	fmt.Fprintln(w, strings.Repeat("━", 40))
	fmt.Fprintf(w, "Recorded:   %s\n", r.Timestamp)
	if r.TagsFilter != "" {
		fmt.Fprintf(w, "Filter:     %s\n", r.TagsFilter)
	}
	fmt.Fprintf(w, "Pass rate:  %s%%\n", passRate(r.RunSummary))
	fmt.Fprintf(w, "Duration:   %.1fs\n", r.DurationS)
	fmt.Fprintln(w)

	t := f.createTable()
	t.AppendHeader(table.Row{"Total", "Passed", "Failed", "Broken", "Skipped"})
	t.AppendRow(table.Row{r.Total, r.Passed, r.Failed, r.Broken, r.Skipped})
	return f.render(w, t)
}

// FormatHistory outputs runs in a table.
func (f *TableFormatter) FormatHistory(w io.Writer, runs history.History, first int) error {
	if len(runs) == 0 {
		fmt.Fprintln(w, "No runs recorded.")
		return nil
	}

	t := f.createTable()
	t.AppendHeader(table.Row{"#", "Run", "Passed", "Failed", "Broken", "Skipped", "Rate", "Duration", "Filter"})
	for i, r := range runs {
		filter := r.TagsFilter
		if filter == "" {
			filter = "—"
		}
		t.AppendRow(table.Row{
			first + i, r.RunID, r.Passed, r.Failed, r.Broken, r.Skipped,
			passRate(r.RunSummary) + "%", fmt.Sprintf("%.1fs", r.DurationS), filter,
		})
	}
	return f.render(w, t)
}

// FormatScaffold outputs the scaffolded pages in a table.
func (f *TableFormatter) FormatScaffold(w io.Writer, written []report.Written) error {
	t := f.createTable()
	t.AppendHeader(table.Row{"Page", "Action"})
	for _, p := range written {
		action := "created"
		if p.Kept {
			action = "kept"
		}
		t.AppendRow(table.Row{p.Path, action})
	}
	return f.render(w, t)
}

// FormatError outputs an error in table format.
func (f *TableFormatter) FormatError(w io.Writer, code string, message string, details map[string]any) error {
	fmt.Fprintf(w, "Error: %s\n", message)
	return nil
}

// FormatConfig outputs configuration as key/value rows.
func (f *TableFormatter) FormatConfig(w io.Writer, cfg *config.Config) error {
	if cfg.File != "" {
		fmt.Fprintf(w, "Config file: %s\n\n", cfg.File)
	}

	t := f.createTable()
	t.AppendHeader(table.Row{"Key", "Value"})
	rows := []table.Row{
		{"defaults.format", cfg.Defaults.Format},
		{"defaults.log_level", cfg.Defaults.LogLevel},
		{"paths.features_dir", cfg.Paths.FeaturesDir},
		{"paths.reports_dir", cfg.Paths.ReportsDir},
		{"paths.catalog_file", cfg.Paths.CatalogFile},
		{"paths.catalog_html", cfg.Paths.CatalogHTML},
		{"paths.history_file", cfg.Paths.HistoryFile},
		{"paths.dashboard_html", cfg.Paths.DashboardHTML},
		{"paths.results_dir", cfg.Paths.ResultsDir},
		{"target.base_url", cfg.Target.BaseURL},
		{"browser.name", cfg.Browser.Name},
		{"browser.headless", cfg.Browser.Headless},
		{"browser.viewport", fmt.Sprintf("%dx%d", cfg.Browser.ViewportWidth, cfg.Browser.ViewportHeight)},
		{"timeouts.default_ms", cfg.Timeouts.DefaultMS},
		{"timeouts.navigation_ms", cfg.Timeouts.NavigationMS},
		{"timeouts.retry_attempts", cfg.Timeouts.RetryAttempts},
		{"timeouts.retry_delay_s", cfg.Timeouts.RetryDelayS},
	}
	t.AppendRows(rows)
	return f.render(w, t)
}
