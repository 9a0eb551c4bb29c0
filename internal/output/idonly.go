package output

import (
	"fmt"
	"io"

	"github.com/testify-automation/testify/internal/catalog"
	"github.com/testify-automation/testify/internal/config"
	"github.com/testify-automation/testify/internal/feature"
	"github.com/testify-automation/testify/internal/history"
	"github.com/testify-automation/testify/internal/report"
)

// IDOnlyFormatter outputs only identifiers, one per line.
type IDOnlyFormatter struct{}

// FormatCatalog outputs every scenario ID of the catalog. Scenarios without
// an ID are skipped.
func (f *IDOnlyFormatter) FormatCatalog(w io.Writer, c *catalog.Catalog) error {
	return f.FormatScenarios(w, c.Scenarios())
}

// FormatScenarios outputs only scenario IDs, one per line.
func (f *IDOnlyFormatter) FormatScenarios(w io.Writer, scenarios []feature.Scenario) error {
	for _, s := range scenarios {
		if s.ID != "" {
			fmt.Fprintln(w, s.ID)
		}
	}
	return nil
}

// FormatValidations outputs the files that failed validation.
func (f *IDOnlyFormatter) FormatValidations(w io.Writer, results []feature.Validation) error {
	for _, r := range results {
		if !r.Valid() {
			fmt.Fprintln(w, r.File)
		}
	}
	return nil
}

// FormatRecorded outputs only the run ID.
func (f *IDOnlyFormatter) FormatRecorded(w io.Writer, rec *history.Recorded) error {
	fmt.Fprintln(w, rec.Run.RunID)
	return nil
}

// FormatHistory outputs only run IDs, one per line.
func (f *IDOnlyFormatter) FormatHistory(w io.Writer, runs history.History, first int) error {
	for _, r := range runs {
		fmt.Fprintln(w, r.RunID)
	}
	return nil
}

// FormatScaffold outputs the paths of newly written pages.
func (f *IDOnlyFormatter) FormatScaffold(w io.Writer, written []report.Written) error {
	for _, p := range written {
		if !p.Kept {
			fmt.Fprintln(w, p.Path)
		}
	}
	return nil
}

// FormatError outputs only the error code.
func (f *IDOnlyFormatter) FormatError(w io.Writer, code string, message string, details map[string]any) error {
	fmt.Fprintln(w, code)
	return nil
}

// FormatConfig outputs the config file in use, if any.
func (f *IDOnlyFormatter) FormatConfig(w io.Writer, cfg *config.Config) error {
	if cfg.File != "" {
		fmt.Fprintln(w, cfg.File)
	}
	return nil
}
