// Package output provides formatters for displaying catalog and run data.
package output

import (
	"io"

	"github.com/testify-automation/testify/internal/catalog"
	"github.com/testify-automation/testify/internal/config"
	"github.com/testify-automation/testify/internal/feature"
	"github.com/testify-automation/testify/internal/history"
	"github.com/testify-automation/testify/internal/report"
)

// Format represents an output format type.
type Format string

const (
	FormatTable  Format = "table"
	FormatJSON   Format = "json"
	FormatPlain  Format = "plain"
	FormatIDOnly Format = "id-only"
)

// ValidFormats returns all valid format values.
func ValidFormats() []Format {
	return []Format{FormatPlain, FormatTable, FormatJSON, FormatIDOnly}
}

// IsValid checks if the format is a valid output format.
func (f Format) IsValid() bool {
	switch f {
	case FormatTable, FormatJSON, FormatPlain, FormatIDOnly:
		return true
	default:
		return false
	}
}

// Formatter defines the interface for outputting command results in various formats.
type Formatter interface {
	// FormatCatalog outputs the summary of a generated catalog.
	FormatCatalog(w io.Writer, c *catalog.Catalog) error

	// FormatScenarios outputs a list of scenarios.
	FormatScenarios(w io.Writer, scenarios []feature.Scenario) error

	// FormatValidations outputs strict syntax check results per file.
	FormatValidations(w io.Writer, results []feature.Validation) error

	// FormatRecorded outputs the result of recording a run.
	FormatRecorded(w io.Writer, rec *history.Recorded) error

	// FormatHistory outputs recorded runs; first is the 1-based index of runs[0].
	FormatHistory(w io.Writer, runs history.History, first int) error

	// FormatScaffold outputs the pages written by init.
	FormatScaffold(w io.Writer, written []report.Written) error

	// FormatError outputs an error.
	FormatError(w io.Writer, code string, message string, details map[string]any) error

	// FormatConfig outputs configuration.
	FormatConfig(w io.Writer, cfg *config.Config) error
}

// New creates a formatter for the specified format.
func New(format Format) Formatter {
	switch format {
	case FormatJSON:
		return &JSONFormatter{}
	case FormatTable:
		return &TableFormatter{}
	case FormatIDOnly:
		return &IDOnlyFormatter{}
	case FormatPlain:
		fallthrough
	default:
		return &PlainFormatter{}
	}
}
