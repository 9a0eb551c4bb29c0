// Package config provides configuration loading and management using Viper.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/viper"

	"github.com/testify-automation/testify/internal/logging"
)

// ErrInvalid is wrapped by every validation failure returned from Load.
var ErrInvalid = errors.New("invalid configuration")

// Browsers lists the accepted values of browser.name.
var Browsers = []string{"chromium", "firefox", "webkit"}

// Formats lists the accepted values of defaults.format.
var Formats = []string{"plain", "table", "json", "id-only"}

// Config represents the top-level configuration structure.
type Config struct {
	Defaults Defaults `mapstructure:"defaults" yaml:"defaults" json:"defaults"`
	Paths    Paths    `mapstructure:"paths" yaml:"paths" json:"paths"`
	Target   Target   `mapstructure:"target" yaml:"target" json:"target"`
	Browser  Browser  `mapstructure:"browser" yaml:"browser" json:"browser"`
	Timeouts Timeouts `mapstructure:"timeouts" yaml:"timeouts" json:"timeouts"`

	// File is the configuration file that was read, empty when none was.
	File string `mapstructure:"-" yaml:"-" json:"-"`
}

// Defaults contains global default settings.
type Defaults struct {
	Format   string `mapstructure:"format" yaml:"format" json:"format"`
	LogLevel string `mapstructure:"log_level" yaml:"log_level" json:"log_level"`
}

// Paths locates the suite's inputs and generated reports. Report paths left
// empty are derived from ReportsDir.
type Paths struct {
	FeaturesDir   string `mapstructure:"features_dir" yaml:"features_dir" json:"features_dir"`
	ReportsDir    string `mapstructure:"reports_dir" yaml:"reports_dir" json:"reports_dir"`
	CatalogFile   string `mapstructure:"catalog_file" yaml:"catalog_file" json:"catalog_file"`
	CatalogHTML   string `mapstructure:"catalog_html" yaml:"catalog_html" json:"catalog_html"`
	HistoryFile   string `mapstructure:"history_file" yaml:"history_file" json:"history_file"`
	DashboardHTML string `mapstructure:"dashboard_html" yaml:"dashboard_html" json:"dashboard_html"`
	ResultsDir    string `mapstructure:"results_dir" yaml:"results_dir" json:"results_dir"`
}

// Target is the site under test.
type Target struct {
	BaseURL string `mapstructure:"base_url" yaml:"base_url" json:"base_url"`
}

// Browser configures the browser the step definitions drive.
type Browser struct {
	Name           string `mapstructure:"name" yaml:"name" json:"name"`
	Headless       bool   `mapstructure:"headless" yaml:"headless" json:"headless"`
	ViewportWidth  int    `mapstructure:"viewport_width" yaml:"viewport_width" json:"viewport_width"`
	ViewportHeight int    `mapstructure:"viewport_height" yaml:"viewport_height" json:"viewport_height"`
}

// Timeouts holds wait and retry settings.
type Timeouts struct {
	DefaultMS     int `mapstructure:"default_ms" yaml:"default_ms" json:"default_ms"`
	NavigationMS  int `mapstructure:"navigation_ms" yaml:"navigation_ms" json:"navigation_ms"`
	RetryAttempts int `mapstructure:"retry_attempts" yaml:"retry_attempts" json:"retry_attempts"`
	RetryDelayS   int `mapstructure:"retry_delay_s" yaml:"retry_delay_s" json:"retry_delay_s"`
}

// envBindings maps configuration keys to the environment variables that
// override them.
var envBindings = map[string]string{
	"defaults.log_level":      "LOG_LEVEL",
	"paths.features_dir":      "FEATURES_DIR",
	"paths.reports_dir":       "REPORTS_DIR",
	"paths.catalog_file":      "CATALOG_FILE",
	"paths.catalog_html":      "CATALOG_HTML",
	"paths.history_file":      "HISTORY_FILE",
	"paths.dashboard_html":    "DASHBOARD_HTML",
	"paths.results_dir":       "RESULTS_DIR",
	"target.base_url":         "BASE_URL",
	"browser.name":            "BROWSER",
	"browser.headless":        "HEADLESS",
	"browser.viewport_width":  "VIEWPORT_WIDTH",
	"browser.viewport_height": "VIEWPORT_HEIGHT",
	"timeouts.default_ms":     "DEFAULT_TIMEOUT",
	"timeouts.navigation_ms":  "NAVIGATION_TIMEOUT",
	"timeouts.retry_attempts": "RETRY_ATTEMPTS",
	"timeouts.retry_delay_s":  "RETRY_DELAY",
}

// LocalConfigFile is the project-local configuration file name.
const LocalConfigFile = "testify.yaml"

// configDir returns the user configuration directory path.
func configDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".config", "testify"), nil
}

// DefaultConfigPath returns the user-global config file path.
func DefaultConfigPath() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// findConfigFile returns the first existing config file, in order:
// 1. Project-local: ./testify.yaml
// 2. User global: ~/.config/testify/config.yaml
func findConfigFile() string {
	candidates := []string{LocalConfigFile}
	if global, err := DefaultConfigPath(); err == nil {
		candidates = append(candidates, global)
	}
	for _, path := range candidates {
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path
		}
	}
	return ""
}

// Load builds the configuration from defaults, an optional YAML file and the
// environment, in increasing precedence. An explicit cfgPath must exist; when
// it is empty the default locations are searched and may all be absent.
func Load(cfgPath string) (*Config, error) {
	v := viper.New()

	v.SetDefault("defaults.format", "plain")
	v.SetDefault("defaults.log_level", "INFO")
	v.SetDefault("paths.features_dir", "features")
	v.SetDefault("paths.reports_dir", "reports")
	v.SetDefault("target.base_url", "https://artasheskocharyan.com")
	v.SetDefault("browser.name", "chromium")
	v.SetDefault("browser.headless", true)
	v.SetDefault("browser.viewport_width", 1280)
	v.SetDefault("browser.viewport_height", 720)
	v.SetDefault("timeouts.default_ms", 30000)
	v.SetDefault("timeouts.navigation_ms", 60000)
	v.SetDefault("timeouts.retry_attempts", 3)
	v.SetDefault("timeouts.retry_delay_s", 2)

	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", env, err)
		}
	}

	file := cfgPath
	if file == "" {
		file = findConfigFile()
	}
	if file != "" {
		v.SetConfigFile(file)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("%w: config file %s not found", ErrInvalid, file)
			}
			return nil, fmt.Errorf("%w: failed to read config file: %v", ErrInvalid, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("%w: failed to unmarshal config: %v", ErrInvalid, err)
	}
	cfg.File = v.ConfigFileUsed()
	cfg.Paths.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (p *Paths) applyDefaults() {
	derive := func(field *string, name string) {
		if *field == "" {
			*field = filepath.Join(p.ReportsDir, name)
		}
	}
	derive(&p.CatalogFile, "test_catalog.json")
	derive(&p.CatalogHTML, "catalog.html")
	derive(&p.HistoryFile, "run_history.json")
	derive(&p.DashboardHTML, "dashboard.html")
	derive(&p.ResultsDir, "allure-results")
}

// Validate checks values that the rest of the program relies on.
func (c *Config) Validate() error {
	if !slices.Contains(Formats, c.Defaults.Format) {
		return fmt.Errorf("%w: format %q must be one of %s", ErrInvalid, c.Defaults.Format, strings.Join(Formats, ", "))
	}
	if _, err := logging.ParseLevel(c.Defaults.LogLevel); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	name := strings.ToLower(c.Browser.Name)
	if !slices.Contains(Browsers, name) {
		return fmt.Errorf("%w: browser %q must be one of %s", ErrInvalid, c.Browser.Name, strings.Join(Browsers, ", "))
	}
	c.Browser.Name = name
	if c.Browser.ViewportWidth <= 0 || c.Browser.ViewportHeight <= 0 {
		return fmt.Errorf("%w: viewport %dx%d must be positive", ErrInvalid, c.Browser.ViewportWidth, c.Browser.ViewportHeight)
	}
	if c.Timeouts.DefaultMS < 0 || c.Timeouts.NavigationMS < 0 || c.Timeouts.RetryAttempts < 0 || c.Timeouts.RetryDelayS < 0 {
		return fmt.Errorf("%w: timeouts and retries must not be negative", ErrInvalid)
	}
	if c.Paths.FeaturesDir == "" || c.Paths.ReportsDir == "" {
		return fmt.Errorf("%w: features_dir and reports_dir must be set", ErrInvalid)
	}
	return nil
}
