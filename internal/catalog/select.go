package catalog

import (
	"fmt"
	"strings"

	tagexpressions "github.com/cucumber/tag-expressions/go/v6"

	"github.com/testify-automation/testify/internal/feature"
)

// Select returns the scenarios whose tags satisfy a Cucumber tag expression
// such as "@smoke and not @perf". An empty expression selects everything.
func (c *Catalog) Select(expression string) ([]feature.Scenario, error) {
	scenarios := c.Scenarios()
	if strings.TrimSpace(expression) == "" {
		return scenarios, nil
	}

	evaluator, err := parseTagExpression(expression)
	if err != nil {
		return nil, err
	}

	selected := []feature.Scenario{}
	for _, s := range scenarios {
		if evaluator.Evaluate(s.Tags) {
			selected = append(selected, s)
		}
	}
	return selected, nil
}

// parseTagExpression parses expression, turning the panics the parser raises
// on some malformed input (such as a dangling operator) into errors.
func parseTagExpression(expression string) (evaluator tagexpressions.Evaluatable, err error) {
	defer func() {
		if r := recover(); r != nil {
			evaluator = nil
			err = fmt.Errorf("invalid tag expression %q: %v", expression, r)
		}
	}()

	evaluator, err = tagexpressions.Parse(expression)
	if err != nil {
		return nil, fmt.Errorf("invalid tag expression %q: %w", expression, err)
	}
	return evaluator, nil
}
