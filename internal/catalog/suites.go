package catalog

import "github.com/testify-automation/testify/internal/feature"

// SuiteRule selects scenarios carrying any of its tags. Rules are evaluated
// independently, so a scenario may land in several suites.
type SuiteRule struct {
	Name string
	Tags []string
}

// Matches reports whether s carries one of the rule's tags.
func (r SuiteRule) Matches(s feature.Scenario) bool {
	for _, tag := range r.Tags {
		if s.HasTag(tag) {
			return true
		}
	}
	return false
}

// SuiteRules is the fixed tag-to-suite classification, in report order.
var SuiteRules = []SuiteRule{
	{Name: "smoke", Tags: []string{"@smoke"}},
	{Name: "sanity", Tags: []string{"@sanity"}},
	{Name: "regression", Tags: []string{"@regression"}},
	{Name: "accessibility", Tags: []string{"@a11y", "@accessibility"}},
	{Name: "performance", Tags: []string{"@perf", "@performance"}},
}

// SuiteNames returns the suite names in report order.
func SuiteNames() []string {
	names := make([]string, len(SuiteRules))
	for i, rule := range SuiteRules {
		names[i] = rule.Name
	}
	return names
}
