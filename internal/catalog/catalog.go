// Package catalog aggregates parsed feature files into the test catalog: a
// snapshot of every scenario, its tags and the suites it belongs to.
package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/testify-automation/testify/internal/feature"
	"github.com/testify-automation/testify/internal/report"
)

// Suite lists the scenarios selected by one suite rule.
type Suite struct {
	Count int `json:"count"`
	// Tests holds scenario IDs in catalog order. IDs may be empty and may
	// repeat.
	Tests []string `json:"tests"`
}

// Catalog is the aggregate snapshot written to the catalog JSON file.
type Catalog struct {
	GeneratedAt       string            `json:"generated_at"`
	TotalFeatures     int               `json:"total_features"`
	TotalScenarios    int               `json:"total_scenarios"`
	TotalWithExamples int               `json:"total_with_examples"`
	AllTags           []string          `json:"all_tags"`
	Suites            map[string]Suite  `json:"suites"`
	Features          []feature.Feature `json:"features"`
}

// Build aggregates features into a Catalog. Features without scenarios are
// left out.
func Build(features []feature.Feature, generatedAt time.Time) *Catalog {
	c := &Catalog{
		GeneratedAt: generatedAt.Format(report.TimestampLayout),
		Features:    []feature.Feature{},
		Suites:      make(map[string]Suite, len(SuiteRules)),
	}

	var tagLists [][]string
	for _, f := range features {
		if len(f.Scenarios) == 0 {
			continue
		}
		c.Features = append(c.Features, f)
		for _, s := range f.Scenarios {
			c.TotalScenarios++
			c.TotalWithExamples += s.Cases()
			tagLists = append(tagLists, s.Tags)
		}
	}
	c.TotalFeatures = len(c.Features)
	c.AllTags = feature.UnionTags(tagLists...)

	for _, rule := range SuiteRules {
		c.Suites[rule.Name] = Suite{Tests: []string{}}
	}
	for _, s := range c.Scenarios() {
		for _, rule := range SuiteRules {
			if !rule.Matches(s) {
				continue
			}
			suite := c.Suites[rule.Name]
			suite.Tests = append(suite.Tests, s.ID)
			suite.Count = len(suite.Tests)
			c.Suites[rule.Name] = suite
		}
	}

	return c
}

// Scenarios returns every scenario of the catalog in feature order.
func (c *Catalog) Scenarios() []feature.Scenario {
	var out []feature.Scenario
	for _, f := range c.Features {
		out = append(out, f.Scenarios...)
	}
	return out
}

// Write stores the catalog as indented JSON at path, replacing any previous
// file.
func (c *Catalog) Write(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode catalog: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create reports directory: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("failed to write catalog: %w", err)
	}
	return nil
}

// Read loads a catalog previously stored with Write.
func Read(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}
	var c Catalog
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to decode catalog %s: %w", path, err)
	}
	return &c, nil
}
