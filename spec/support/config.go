package support

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/testify-automation/testify/internal/config"
)

// ConfigGenerator creates testify.yaml files for test projects.
type ConfigGenerator struct {
	// FileName is the file written relative to the project root.
	FileName string
}

// NewConfigGenerator creates a generator for the project-local config file.
func NewConfigGenerator() *ConfigGenerator {
	return &ConfigGenerator{FileName: config.LocalConfigFile}
}

// Generate writes settings given as dotted keys, e.g. "paths.reports_dir".
// Values are decoded as YAML scalars, so "false" and "1024" keep their types.
func (g *ConfigGenerator) Generate(env *TestEnv, settings map[string]string) error {
	if len(settings) == 0 {
		return fmt.Errorf("at least one setting is required")
	}

	doc := map[string]any{}
	for key, raw := range settings {
		parts := strings.Split(key, ".")
		if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
			return fmt.Errorf("setting %q must be <section>.<key>", key)
		}
		var value any
		if err := yaml.Unmarshal([]byte(raw), &value); err != nil {
			return fmt.Errorf("failed to parse value of %s: %w", key, err)
		}
		section, ok := doc[parts[0]].(map[string]any)
		if !ok {
			section = map[string]any{}
			doc[parts[0]] = section
		}
		section[parts[1]] = value
	}

	content, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	return env.CreateFile(g.FileName, string(content))
}

// GenerateFromConfig writes a complete configuration.
func (g *ConfigGenerator) GenerateFromConfig(env *TestEnv, cfg *config.Config) error {
	if cfg == nil {
		return fmt.Errorf("config cannot be nil")
	}
	content, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	return env.CreateFile(g.FileName, string(content))
}

// GenerateFromYAML writes yamlContent verbatim after checking it parses.
func (g *ConfigGenerator) GenerateFromYAML(env *TestEnv, yamlContent string) error {
	var cfg map[string]any
	if err := yaml.Unmarshal([]byte(yamlContent), &cfg); err != nil {
		return fmt.Errorf("failed to parse config YAML: %w", err)
	}
	return env.CreateFile(g.FileName, yamlContent)
}
