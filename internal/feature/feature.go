// Package feature parses Gherkin feature files into scenario records for the
// test catalog.
package feature

import (
	"errors"
	"sort"
)

// Scenario is one test case extracted from a feature file.
type Scenario struct {
	// ID is the leading TC-<letter?><digits> token of the title, or empty.
	ID string `json:"tc_id"`
	// Description is the title without the ID prefix and separator.
	Description string `json:"name"`
	// Tags is the sorted, de-duplicated union of feature and scenario tags.
	Tags []string `json:"tags"`
	// Steps holds raw step lines (table rows included) in source order.
	Steps        []string `json:"steps"`
	IsOutline    bool     `json:"is_outline"`
	ExampleCount int      `json:"example_count"`
	FeatureName  string   `json:"feature"`
	SourceFile   string   `json:"file"`
}

// Feature is one parsed source file.
type Feature struct {
	Name      string     `json:"feature"`
	File      string     `json:"file"`
	Tags      []string   `json:"tags"`
	Scenarios []Scenario `json:"scenarios"`
}

// ErrNegativeExampleCount is returned by NewScenario for a count below zero.
var ErrNegativeExampleCount = errors.New("example count must not be negative")

// NewScenario builds a Scenario, normalising tags and rejecting invalid counts.
// Nil slices are replaced by empty ones so the record always serialises as
// arrays.
func NewScenario(id, description string, tags, steps []string, isOutline bool, exampleCount int, featureName, sourceFile string) (Scenario, error) {
	if exampleCount < 0 {
		return Scenario{}, ErrNegativeExampleCount
	}
	if steps == nil {
		steps = []string{}
	}
	return Scenario{
		ID:           id,
		Description:  description,
		Tags:         UnionTags(tags),
		Steps:        steps,
		IsOutline:    isOutline,
		ExampleCount: exampleCount,
		FeatureName:  featureName,
		SourceFile:   sourceFile,
	}, nil
}

// Cases returns how many concrete test cases the scenario stands for: its
// example rows, or 1 when it has none.
func (s Scenario) Cases() int {
	if s.ExampleCount > 0 {
		return s.ExampleCount
	}
	return 1
}

// HasTag reports whether the scenario carries tag.
func (s Scenario) HasTag(tag string) bool {
	i := sort.SearchStrings(s.Tags, tag)
	return i < len(s.Tags) && s.Tags[i] == tag
}

// UnionTags merges tag lists into a sorted list without duplicates.
func UnionTags(lists ...[]string) []string {
	seen := make(map[string]struct{})
	out := []string{}
	for _, list := range lists {
		for _, tag := range list {
			if _, ok := seen[tag]; ok {
				continue
			}
			seen[tag] = struct{}{}
			out = append(out, tag)
		}
	}
	sort.Strings(out)
	return out
}
