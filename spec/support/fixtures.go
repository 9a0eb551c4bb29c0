package support

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/testify-automation/testify/internal/results"
)

// ResultFixture describes one result artifact.
type ResultFixture struct {
	Name       string `yaml:"name"`
	Status     string `yaml:"status"`
	DurationMS int64  `yaml:"duration_ms,omitempty"`
	Tag        string `yaml:"tag,omitempty"`
}

// ProjectFixture is a project laid out from YAML: feature files keyed by
// file name, result artifacts and an optional raw history document.
type ProjectFixture struct {
	Features map[string]string `yaml:"features,omitempty"`
	Results  []ResultFixture   `yaml:"results,omitempty"`
	History  string            `yaml:"history,omitempty"`
	Config   map[string]any    `yaml:"config,omitempty"`
}

// FixtureLoader lays out project fixtures inside a TestEnv.
type FixtureLoader struct {
	// FixturesDir is the directory containing fixture files
	FixturesDir string
	// ResultsDir is where result artifacts go, relative to the project.
	ResultsDir string
	// HistoryFile is where History goes, relative to the project.
	HistoryFile string
}

// NewFixtureLoader creates a loader using the default project layout.
// If fixturesDir is empty, it defaults to "fixtures" in the spec directory.
func NewFixtureLoader(fixturesDir string) *FixtureLoader {
	if fixturesDir == "" {
		fixturesDir = "fixtures"
	}
	return &FixtureLoader{
		FixturesDir: fixturesDir,
		ResultsDir:  filepath.Join("reports", "allure-results"),
		HistoryFile: filepath.Join("reports", "run_history.json"),
	}
}

// LoadFixture loads a fixture by name and applies it to the test environment.
// The fixture can be either a YAML file (name.yaml) or a directory (name/)
// copied over the project root.
func (l *FixtureLoader) LoadFixture(env *TestEnv, name string) error {
	yamlPath := filepath.Join(l.FixturesDir, name+".yaml")
	if content, err := os.ReadFile(yamlPath); err == nil {
		return l.LoadFromYAML(env, string(content))
	}

	dirPath := filepath.Join(l.FixturesDir, name)
	if info, err := os.Stat(dirPath); err == nil && info.IsDir() {
		return copyDir(dirPath, env.TempDir)
	}

	return fmt.Errorf("fixture not found: %s (tried %s.yaml and %s/)", name, name, name)
}

// LoadFromYAML loads a fixture from a YAML string.
func (l *FixtureLoader) LoadFromYAML(env *TestEnv, yamlContent string) error {
	var fixture ProjectFixture
	if err := yaml.Unmarshal([]byte(yamlContent), &fixture); err != nil {
		return fmt.Errorf("failed to parse fixture YAML: %w", err)
	}
	return l.applyFixture(env, &fixture)
}

// LoadFeature writes a feature file into the features directory.
func (l *FixtureLoader) LoadFeature(env *TestEnv, name, content string) error {
	return env.CreateFile(filepath.Join("features", name), content)
}

// LoadResults writes one artifact per fixture. Artifacts are numbered in
// order so the results directory lists them deterministically.
func (l *FixtureLoader) LoadResults(env *TestEnv, fixtures []ResultFixture) error {
	artifacts := make([]results.Artifact, 0, len(fixtures))
	for i, f := range fixtures {
		if f.Name == "" {
			return fmt.Errorf("result %d has no name", i+1)
		}
		a := results.Artifact{
			UUID:   fmt.Sprintf("fixture-%03d", i+1),
			Name:   f.Name,
			Status: results.Status(f.Status),
			Start:  1_700_000_000_000,
			Labels: []results.Label{},
		}
		a.Stop = a.Start + f.DurationMS
		if f.Tag != "" {
			a.Labels = append(a.Labels, results.Label{Name: "tag", Value: f.Tag})
		}
		artifacts = append(artifacts, a)
	}
	return results.WriteArtifacts(env.Path(l.ResultsDir), artifacts)
}

// ResultsFromTable converts table rows with name, status and optional
// duration_ms and tag columns.
func ResultsFromTable(rows []map[string]string) ([]ResultFixture, error) {
	fixtures := make([]ResultFixture, 0, len(rows))
	for i, row := range rows {
		f := ResultFixture{Name: row["name"], Status: row["status"], Tag: row["tag"]}
		if d := row["duration_ms"]; d != "" {
			ms, err := strconv.ParseInt(d, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("row %d: invalid duration_ms %q", i+1, d)
			}
			f.DurationMS = ms
		}
		fixtures = append(fixtures, f)
	}
	return fixtures, nil
}

// applyFixture applies a parsed fixture to the test environment.
func (l *FixtureLoader) applyFixture(env *TestEnv, fixture *ProjectFixture) error {
	if fixture.Config != nil {
		configContent, err := yaml.Marshal(fixture.Config)
		if err != nil {
			return fmt.Errorf("failed to marshal config: %w", err)
		}
		if err := env.CreateFile("testify.yaml", string(configContent)); err != nil {
			return fmt.Errorf("failed to create config file: %w", err)
		}
	}

	for name, content := range fixture.Features {
		if err := l.LoadFeature(env, name, content); err != nil {
			return fmt.Errorf("failed to create feature %s: %w", name, err)
		}
	}

	if len(fixture.Results) > 0 {
		if err := l.LoadResults(env, fixture.Results); err != nil {
			return fmt.Errorf("failed to create results: %w", err)
		}
	}

	if fixture.History != "" {
		if err := env.CreateFile(l.HistoryFile, fixture.History); err != nil {
			return fmt.Errorf("failed to create history: %w", err)
		}
	}
	return nil
}

// copyDir recursively copies a directory.
func copyDir(src, dst string) error {
	if err := os.MkdirAll(dst, 0755); err != nil {
		return err
	}

	entries, err := os.ReadDir(src)
	if err != nil {
		return err
	}

	for _, entry := range entries {
		srcPath := filepath.Join(src, entry.Name())
		dstPath := filepath.Join(dst, entry.Name())

		if entry.IsDir() {
			if err := copyDir(srcPath, dstPath); err != nil {
				return err
			}
			continue
		}
		content, err := os.ReadFile(srcPath)
		if err != nil {
			return err
		}
		if err := os.WriteFile(dstPath, content, 0644); err != nil {
			return err
		}
	}
	return nil
}
