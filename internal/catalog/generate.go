package catalog

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/testify-automation/testify/internal/feature"
	"github.com/testify-automation/testify/internal/inject"
	"github.com/testify-automation/testify/internal/logging"
)

// DefaultVariable is the data slot of the catalog page.
const DefaultVariable = "window.__CATALOG__"

// Options locates the inputs and outputs of a catalog generation run.
type Options struct {
	FeaturesDir string
	CatalogFile string
	CatalogHTML string
	// Variable is the page's data slot; DefaultVariable when empty.
	Variable string
	// Now stamps the catalog; time.Now when nil.
	Now    func() time.Time
	Logger *slog.Logger
}

// Result reports what Generate produced.
type Result struct {
	Catalog *Catalog
	Page    inject.Outcome
}

// Generate parses the feature directory, writes the catalog JSON and splices
// it into the catalog page when that page exists.
func Generate(opts Options) (*Result, error) {
	log := logging.For(opts.Logger, "catalog")
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	variable := opts.Variable
	if variable == "" {
		variable = DefaultVariable
	}

	features, err := feature.ParseDir(opts.FeaturesDir)
	if err != nil {
		return nil, err
	}
	log.Debug("parsed feature files", "dir", opts.FeaturesDir, "files", len(features))

	c := Build(features, now())
	if err := c.Write(opts.CatalogFile); err != nil {
		return nil, err
	}
	log.Debug("catalog written", "path", opts.CatalogFile, "scenarios", c.TotalScenarios)

	outcome, err := inject.Splice(opts.CatalogHTML, variable, c)
	if err != nil {
		return nil, fmt.Errorf("failed to update catalog page: %w", err)
	}
	switch outcome {
	case inject.PageMissing:
		log.Debug("catalog page not found, skipping injection", "path", opts.CatalogHTML)
	case inject.SlotMissing:
		log.Warn("catalog page has no data slot", "path", opts.CatalogHTML, "variable", variable)
	default:
		log.Debug("catalog page updated", "path", opts.CatalogHTML)
	}

	return &Result{Catalog: c, Page: outcome}, nil
}
