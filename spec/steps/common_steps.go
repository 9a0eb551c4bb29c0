// Package steps provides step definitions for the testify CLI Gherkin specs.
package steps

import (
	"context"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/cucumber/godog"

	"github.com/testify-automation/testify/internal/cli"
	"github.com/testify-automation/testify/spec/support"
)

// contextKey is a type for context keys to avoid collisions.
type contextKey string

const (
	testEnvKey    contextKey = "testEnv"
	cliRunnerKey  contextKey = "cliRunner"
	lastResultKey contextKey = "lastResult"
)

// getTestEnv retrieves the TestEnv from context.
func getTestEnv(ctx context.Context) *support.TestEnv {
	if env, ok := ctx.Value(testEnvKey).(*support.TestEnv); ok {
		return env
	}
	return nil
}

// getCLIRunner retrieves the CLIRunner from context.
func getCLIRunner(ctx context.Context) *support.CLIRunner {
	if runner, ok := ctx.Value(cliRunnerKey).(*support.CLIRunner); ok {
		return runner
	}
	return nil
}

// getLastResult retrieves the last command result from context.
func getLastResult(ctx context.Context) *support.CommandResult {
	if result, ok := ctx.Value(lastResultKey).(*support.CommandResult); ok {
		return result
	}
	return nil
}

// InitializeCommonSteps registers the environment hooks and the generic
// command, output and file steps.
func InitializeCommonSteps(ctx *godog.ScenarioContext) {
	// Before each scenario: an isolated project directory and an in-process CLI
	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		env, err := support.NewTestEnv()
		if err != nil {
			return ctx, fmt.Errorf("failed to create test environment: %w", err)
		}
		env.Isolate()

		runner := support.NewInProcessRunner(cli.Run)
		if bin := os.Getenv("TESTIFY_BINARY"); bin != "" {
			runner = support.NewCLIRunner(bin)
		}
		runner.WorkDir = env.TempDir

		ctx = context.WithValue(ctx, testEnvKey, env)
		ctx = context.WithValue(ctx, cliRunnerKey, runner)
		return ctx, nil
	})

	ctx.After(func(ctx context.Context, sc *godog.Scenario, err error) (context.Context, error) {
		if env := getTestEnv(ctx); env != nil {
			if cleanupErr := env.Cleanup(); cleanupErr != nil {
				// Log but don't fail on cleanup errors
				fmt.Printf("Warning: cleanup failed: %v\n", cleanupErr)
			}
		}
		return ctx, nil
	})

	// Given steps
	ctx.Step(`^a file "([^"]*)" with content "([^"]*)"$`, aFileWithContent)
	ctx.Step(`^a file "([^"]*)" with:$`, aFileWith)
	ctx.Step(`^the environment variable "([^"]*)" is "([^"]*)"$`, theEnvironmentVariableIs)
	ctx.Step(`^a config file with the following content:$`, aConfigFileWithTheFollowingContent)
	ctx.Step(`^a config file with the following settings:$`, aConfigFileWithTheFollowingSettings)

	// When steps
	ctx.Step(`^I run "([^"]*)"$`, iRun)

	// Then steps
	ctx.Step(`^the exit code should be (\d+)$`, theExitCodeShouldBe)
	ctx.Step(`^stdout should contain "([^"]*)"$`, stdoutShouldContain)
	ctx.Step(`^stdout should not contain "([^"]*)"$`, stdoutShouldNotContain)
	ctx.Step(`^stderr should contain "([^"]*)"$`, stderrShouldContain)
	ctx.Step(`^stdout should be empty$`, stdoutShouldBeEmpty)
	ctx.Step(`^stderr should be empty$`, stderrShouldBeEmpty)
	ctx.Step(`^the output should match:$`, theOutputShouldMatch)
	ctx.Step(`^stdout should match pattern "([^"]*)"$`, stdoutShouldMatchPattern)
	ctx.Step(`^the JSON output should be valid$`, theJSONOutputShouldBeValid)
	ctx.Step(`^the JSON output should have "([^"]*)" equal to "([^"]*)"$`, theJSONOutputShouldHaveEqualTo)
	ctx.Step(`^the JSON output should not have "([^"]*)"$`, theJSONOutputShouldNotHave)
	ctx.Step(`^the JSON output should have (\d+) entries at "([^"]*)"$`, theJSONOutputShouldHaveEntriesAt)
	ctx.Step(`^the directory "([^"]*)" should exist$`, theDirectoryShouldExist)
	ctx.Step(`^the file "([^"]*)" should exist$`, theFileShouldExist)
	ctx.Step(`^the file "([^"]*)" should not exist$`, theFileShouldNotExist)
	ctx.Step(`^the file "([^"]*)" should contain "([^"]*)"$`, theFileShouldContain)
}

// aFileWithContent creates a file with the specified content.
func aFileWithContent(ctx context.Context, path, content string) (context.Context, error) {
	env := getTestEnv(ctx)
	if env == nil {
		return ctx, fmt.Errorf("test environment not initialized")
	}

	if err := env.CreateFile(path, content); err != nil {
		return ctx, fmt.Errorf("failed to create file %q: %w", path, err)
	}
	return ctx, nil
}

// aFileWith creates a file from a docstring.
func aFileWith(ctx context.Context, path string, content *godog.DocString) (context.Context, error) {
	return aFileWithContent(ctx, path, content.Content)
}

// theEnvironmentVariableIs sets an environment variable for the test.
func theEnvironmentVariableIs(ctx context.Context, key, value string) (context.Context, error) {
	env := getTestEnv(ctx)
	if env == nil {
		return ctx, fmt.Errorf("test environment not initialized")
	}

	env.SetEnv(key, value)
	return ctx, nil
}

// aConfigFileWithTheFollowingContent writes testify.yaml verbatim.
func aConfigFileWithTheFollowingContent(ctx context.Context, content *godog.DocString) (context.Context, error) {
	env := getTestEnv(ctx)
	if env == nil {
		return ctx, fmt.Errorf("test environment not initialized")
	}

	if err := support.NewConfigGenerator().GenerateFromYAML(env, content.Content); err != nil {
		return ctx, fmt.Errorf("failed to create config file: %w", err)
	}
	return ctx, nil
}

// aConfigFileWithTheFollowingSettings writes testify.yaml from a
// | setting | value | table.
func aConfigFileWithTheFollowingSettings(ctx context.Context, table *godog.Table) (context.Context, error) {
	env := getTestEnv(ctx)
	if env == nil {
		return ctx, fmt.Errorf("test environment not initialized")
	}

	settings := make(map[string]string)
	for i, row := range table.Rows {
		if i == 0 {
			continue
		}
		if len(row.Cells) != 2 {
			return ctx, fmt.Errorf("settings row %d must have two cells", i)
		}
		settings[row.Cells[0].Value] = row.Cells[1].Value
	}

	if err := support.NewConfigGenerator().Generate(env, settings); err != nil {
		return ctx, fmt.Errorf("failed to create config file: %w", err)
	}
	return ctx, nil
}

// iRun executes a CLI command.
func iRun(ctx context.Context, command string) (context.Context, error) {
	runner := getCLIRunner(ctx)
	if runner == nil {
		return ctx, fmt.Errorf("CLI runner not initialized")
	}

	result := runner.Run(command)
	if result.Err != nil {
		return ctx, fmt.Errorf("failed to run %q: %w", command, result.Err)
	}
	return context.WithValue(ctx, lastResultKey, result), nil
}

func lastResult(ctx context.Context) (*support.CommandResult, error) {
	result := getLastResult(ctx)
	if result == nil {
		return nil, fmt.Errorf("no command has been run")
	}
	return result, nil
}

// theExitCodeShouldBe verifies the exit code of the last command.
func theExitCodeShouldBe(ctx context.Context, expected int) error {
	result, err := lastResult(ctx)
	if err != nil {
		return err
	}

	if result.ExitCode != expected {
		return fmt.Errorf("expected exit code %d, got %d\nstdout: %s\nstderr: %s",
			expected, result.ExitCode, result.Stdout, result.Stderr)
	}
	return nil
}

// stdoutShouldContain verifies stdout contains a substring.
func stdoutShouldContain(ctx context.Context, expected string) error {
	result, err := lastResult(ctx)
	if err != nil {
		return err
	}

	if !result.StdoutContains(expected) {
		return fmt.Errorf("expected stdout to contain %q, got:\n%s", expected, result.Stdout)
	}
	return nil
}

// stdoutShouldNotContain verifies stdout does not contain a substring.
func stdoutShouldNotContain(ctx context.Context, unexpected string) error {
	result, err := lastResult(ctx)
	if err != nil {
		return err
	}

	if result.StdoutContains(unexpected) {
		return fmt.Errorf("expected stdout to not contain %q, but it does:\n%s", unexpected, result.Stdout)
	}
	return nil
}

// stderrShouldContain verifies stderr contains a substring.
func stderrShouldContain(ctx context.Context, expected string) error {
	result, err := lastResult(ctx)
	if err != nil {
		return err
	}

	if !result.StderrContains(expected) {
		return fmt.Errorf("expected stderr to contain %q, got:\n%s", expected, result.Stderr)
	}
	return nil
}

// stdoutShouldBeEmpty verifies stdout is empty.
func stdoutShouldBeEmpty(ctx context.Context) error {
	result, err := lastResult(ctx)
	if err != nil {
		return err
	}

	if result.StdoutTrimmed() != "" {
		return fmt.Errorf("expected stdout to be empty, got:\n%s", result.Stdout)
	}
	return nil
}

// stderrShouldBeEmpty verifies stderr is empty.
func stderrShouldBeEmpty(ctx context.Context) error {
	result, err := lastResult(ctx)
	if err != nil {
		return err
	}

	if result.StderrTrimmed() != "" {
		return fmt.Errorf("expected stderr to be empty, got:\n%s", result.Stderr)
	}
	return nil
}

// theOutputShouldMatch verifies stdout matches a docstring exactly (ignoring leading/trailing whitespace).
func theOutputShouldMatch(ctx context.Context, expected *godog.DocString) error {
	result, err := lastResult(ctx)
	if err != nil {
		return err
	}

	actual := result.StdoutTrimmed()
	expectedTrimmed := strings.TrimSpace(expected.Content)
	if actual != expectedTrimmed {
		return fmt.Errorf("output did not match\nExpected:\n%s\n\nActual:\n%s", expectedTrimmed, actual)
	}
	return nil
}

// stdoutShouldMatchPattern verifies stdout matches a regular expression pattern.
func stdoutShouldMatchPattern(ctx context.Context, pattern string) error {
	result, err := lastResult(ctx)
	if err != nil {
		return err
	}

	re, err := regexp.Compile(pattern)
	if err != nil {
		return fmt.Errorf("invalid pattern %q: %w", pattern, err)
	}
	if !re.MatchString(result.Stdout) {
		return fmt.Errorf("expected stdout to match pattern %q, got:\n%s", pattern, result.Stdout)
	}
	return nil
}

func jsonOutput(ctx context.Context) (*support.JSONResult, error) {
	result, err := lastResult(ctx)
	if err != nil {
		return nil, err
	}

	jsonResult := support.ParseJSONFromResult(result)
	if !jsonResult.Valid() {
		return nil, fmt.Errorf("stdout is not valid JSON: %v\nstdout:\n%s", jsonResult.ParseErr, result.Stdout)
	}
	return jsonResult, nil
}

// theJSONOutputShouldBeValid verifies that stdout is valid JSON.
func theJSONOutputShouldBeValid(ctx context.Context) error {
	_, err := jsonOutput(ctx)
	return err
}

// theJSONOutputShouldHaveEqualTo verifies a JSON path has the expected value.
func theJSONOutputShouldHaveEqualTo(ctx context.Context, path, expected string) error {
	jsonResult, err := jsonOutput(ctx)
	if err != nil {
		return err
	}
	return expectJSONText(jsonResult, path, expected)
}

// theJSONOutputShouldNotHave verifies a JSON path is absent.
func theJSONOutputShouldNotHave(ctx context.Context, path string) error {
	jsonResult, err := jsonOutput(ctx)
	if err != nil {
		return err
	}
	if jsonResult.Has(path) {
		return fmt.Errorf("expected JSON path %q to be absent, got %s", path, jsonResult.Text(path))
	}
	return nil
}

// theJSONOutputShouldHaveEntriesAt verifies the size of an array or object.
func theJSONOutputShouldHaveEntriesAt(ctx context.Context, expected int, path string) error {
	jsonResult, err := jsonOutput(ctx)
	if err != nil {
		return err
	}
	return expectJSONLen(jsonResult, path, expected)
}

func expectJSONText(jsonResult *support.JSONResult, path, expected string) error {
	if !jsonResult.Has(path) {
		return fmt.Errorf("JSON path %q not found in:\n%s", path, jsonResult.Raw)
	}
	if actual := jsonResult.Text(path); actual != expected {
		return fmt.Errorf("expected JSON path %q to be %q, got %q", path, expected, actual)
	}
	return nil
}

func expectJSONLen(jsonResult *support.JSONResult, path string, expected int) error {
	actual := jsonResult.Len(path)
	if actual < 0 {
		return fmt.Errorf("JSON path %q is not an array or object", path)
	}
	if actual != expected {
		return fmt.Errorf("expected %d entries at %q, got %d", expected, path, actual)
	}
	return nil
}

// theDirectoryShouldExist verifies that a directory exists in the test environment.
func theDirectoryShouldExist(ctx context.Context, path string) error {
	env := getTestEnv(ctx)
	if env == nil {
		return fmt.Errorf("test environment not initialized")
	}

	info, err := os.Stat(env.Path(path))
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("directory %q does not exist", path)
		}
		return fmt.Errorf("error checking directory %q: %w", path, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("path %q exists but is not a directory", path)
	}
	return nil
}

// theFileShouldExist verifies that a file exists in the test environment.
func theFileShouldExist(ctx context.Context, path string) error {
	env := getTestEnv(ctx)
	if env == nil {
		return fmt.Errorf("test environment not initialized")
	}

	info, err := os.Stat(env.Path(path))
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("file %q does not exist", path)
		}
		return fmt.Errorf("error checking file %q: %w", path, err)
	}
	if info.IsDir() {
		return fmt.Errorf("path %q exists but is a directory, not a file", path)
	}
	return nil
}

// theFileShouldNotExist verifies that nothing exists at path.
func theFileShouldNotExist(ctx context.Context, path string) error {
	env := getTestEnv(ctx)
	if env == nil {
		return fmt.Errorf("test environment not initialized")
	}

	if env.FileExists(path) {
		return fmt.Errorf("expected %q not to exist", path)
	}
	return nil
}

// theFileShouldContain verifies a file contains a substring.
func theFileShouldContain(ctx context.Context, path, expected string) error {
	env := getTestEnv(ctx)
	if env == nil {
		return fmt.Errorf("test environment not initialized")
	}

	content, err := env.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %q: %w", path, err)
	}
	if !strings.Contains(content, expected) {
		return fmt.Errorf("expected %q to contain %q, got:\n%s", path, expected, content)
	}
	return nil
}

