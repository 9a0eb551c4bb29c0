package steps

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/cucumber/godog"

	"github.com/testify-automation/testify/internal/inject"
	"github.com/testify-automation/testify/spec/support"
)

// InitializePipelineSteps registers steps that lay out feature files, result
// artifacts and history, and that inspect the generated reports.
func InitializePipelineSteps(ctx *godog.ScenarioContext) {
	// Given steps
	ctx.Step(`^a feature file "([^"]*)" with:$`, aFeatureFileWith)
	ctx.Step(`^the following test results:$`, theFollowingTestResults)
	ctx.Step(`^an empty results directory$`, anEmptyResultsDirectory)
	ctx.Step(`^the project fixture:$`, theProjectFixture)
	ctx.Step(`^the "([^"]*)" project fixture$`, theNamedProjectFixture)
	ctx.Step(`^the run history file contains:$`, theRunHistoryFileContains)

	// Then steps
	ctx.Step(`^the JSON file "([^"]*)" should have "([^"]*)" equal to "([^"]*)"$`, theJSONFileShouldHaveEqualTo)
	ctx.Step(`^the JSON file "([^"]*)" should have (\d+) entries at "([^"]*)"$`, theJSONFileShouldHaveEntriesAt)
	ctx.Step(`^the JSON file "([^"]*)" should not have "([^"]*)"$`, theJSONFileShouldNotHave)
	ctx.Step(`^the page "([^"]*)" should have (\d+) entries in "([^"]*)"$`, thePageShouldHaveEntriesIn)
	ctx.Step(`^the page "([^"]*)" should have "([^"]*)" equal to "([^"]*)" in "([^"]*)"$`, thePageShouldHaveEqualToIn)
}

func fixtureLoader(ctx context.Context) (*support.TestEnv, *support.FixtureLoader, error) {
	env := getTestEnv(ctx)
	if env == nil {
		return nil, nil, fmt.Errorf("test environment not initialized")
	}
	return env, support.NewFixtureLoader(filepath.Join(env.OriginalDir, "fixtures")), nil
}

// aFeatureFileWith writes a feature file into the features directory.
func aFeatureFileWith(ctx context.Context, name string, content *godog.DocString) (context.Context, error) {
	env, loader, err := fixtureLoader(ctx)
	if err != nil {
		return ctx, err
	}
	if err := loader.LoadFeature(env, name, content.Content); err != nil {
		return ctx, fmt.Errorf("failed to create feature %q: %w", name, err)
	}
	return ctx, nil
}

// theFollowingTestResults writes one result artifact per table row.
// Columns: name, status and optionally duration_ms and tag.
func theFollowingTestResults(ctx context.Context, table *godog.Table) (context.Context, error) {
	env, loader, err := fixtureLoader(ctx)
	if err != nil {
		return ctx, err
	}
	if len(table.Rows) == 0 {
		return ctx, fmt.Errorf("results table is empty")
	}

	header := table.Rows[0].Cells
	rows := make([]map[string]string, 0, len(table.Rows)-1)
	for _, row := range table.Rows[1:] {
		values := make(map[string]string, len(header))
		for i, cell := range row.Cells {
			values[header[i].Value] = cell.Value
		}
		rows = append(rows, values)
	}

	fixtures, err := support.ResultsFromTable(rows)
	if err != nil {
		return ctx, err
	}
	if err := loader.LoadResults(env, fixtures); err != nil {
		return ctx, fmt.Errorf("failed to create results: %w", err)
	}
	return ctx, nil
}

// anEmptyResultsDirectory creates the results directory with no artifacts.
func anEmptyResultsDirectory(ctx context.Context) (context.Context, error) {
	env, loader, err := fixtureLoader(ctx)
	if err != nil {
		return ctx, err
	}
	if err := os.MkdirAll(env.Path(loader.ResultsDir), 0755); err != nil {
		return ctx, fmt.Errorf("failed to create results directory: %w", err)
	}
	return ctx, nil
}

// theProjectFixture lays out a project described in YAML.
func theProjectFixture(ctx context.Context, content *godog.DocString) (context.Context, error) {
	env, loader, err := fixtureLoader(ctx)
	if err != nil {
		return ctx, err
	}
	if err := loader.LoadFromYAML(env, content.Content); err != nil {
		return ctx, err
	}
	return ctx, nil
}

// theNamedProjectFixture lays out a project from spec/fixtures.
func theNamedProjectFixture(ctx context.Context, name string) (context.Context, error) {
	env, loader, err := fixtureLoader(ctx)
	if err != nil {
		return ctx, err
	}
	if err := loader.LoadFixture(env, name); err != nil {
		return ctx, err
	}
	return ctx, nil
}

// theRunHistoryFileContains writes the run history file verbatim.
func theRunHistoryFileContains(ctx context.Context, content *godog.DocString) (context.Context, error) {
	env, loader, err := fixtureLoader(ctx)
	if err != nil {
		return ctx, err
	}
	if err := env.CreateFile(loader.HistoryFile, content.Content); err != nil {
		return ctx, fmt.Errorf("failed to create history file: %w", err)
	}
	return ctx, nil
}

func jsonFile(ctx context.Context, path string) (*support.JSONResult, error) {
	env := getTestEnv(ctx)
	if env == nil {
		return nil, fmt.Errorf("test environment not initialized")
	}
	content, err := env.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %q: %w", path, err)
	}
	result := support.ParseJSON(content)
	if !result.Valid() {
		return nil, fmt.Errorf("%q is not valid JSON: %v", path, result.ParseErr)
	}
	return result, nil
}

// theJSONFileShouldHaveEqualTo verifies a value inside a JSON file.
func theJSONFileShouldHaveEqualTo(ctx context.Context, file, path, expected string) error {
	result, err := jsonFile(ctx, file)
	if err != nil {
		return err
	}
	return expectJSONText(result, path, expected)
}

// theJSONFileShouldHaveEntriesAt verifies the size of an array or object in
// a JSON file. An empty path addresses the document root.
func theJSONFileShouldHaveEntriesAt(ctx context.Context, file string, expected int, path string) error {
	result, err := jsonFile(ctx, file)
	if err != nil {
		return err
	}
	return expectJSONLen(result, path, expected)
}

// theJSONFileShouldNotHave verifies a path is absent from a JSON file.
func theJSONFileShouldNotHave(ctx context.Context, file, path string) error {
	result, err := jsonFile(ctx, file)
	if err != nil {
		return err
	}
	if result.Has(path) {
		return fmt.Errorf("expected %q to have no %q, got %s", file, path, result.Text(path))
	}
	return nil
}

// pageSlot extracts the JSON assigned in the data slot of a page.
func pageSlot(ctx context.Context, page, variable string) (*support.JSONResult, error) {
	env := getTestEnv(ctx)
	if env == nil {
		return nil, fmt.Errorf("test environment not initialized")
	}
	content, err := env.ReadFile(page)
	if err != nil {
		return nil, fmt.Errorf("failed to read %q: %w", page, err)
	}

	payload, ok := inject.Payload(content, variable)
	if !ok {
		return nil, fmt.Errorf("page %q has no %s slot", page, variable)
	}

	result := support.ParseJSON(payload)
	if !result.Valid() {
		return nil, fmt.Errorf("slot %s in %q is not valid JSON: %v", variable, page, result.ParseErr)
	}
	return result, nil
}

// thePageShouldHaveEntriesIn verifies the length of the data in a page slot.
func thePageShouldHaveEntriesIn(ctx context.Context, page string, expected int, variable string) error {
	result, err := pageSlot(ctx, page, variable)
	if err != nil {
		return err
	}
	return expectJSONLen(result, "", expected)
}

// thePageShouldHaveEqualToIn verifies a value inside a page slot.
func thePageShouldHaveEqualToIn(ctx context.Context, page, path, expected, variable string) error {
	result, err := pageSlot(ctx, page, variable)
	if err != nil {
		return err
	}
	return expectJSONText(result, path, expected)
}
