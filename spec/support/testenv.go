package support

import (
	"os"
	"path/filepath"
)

// ConfigEnvVars lists every environment variable testify reads.
var ConfigEnvVars = []string{
	"LOG_LEVEL", "FEATURES_DIR", "REPORTS_DIR", "CATALOG_FILE", "CATALOG_HTML",
	"HISTORY_FILE", "DASHBOARD_HTML", "RESULTS_DIR", "BASE_URL", "BROWSER",
	"HEADLESS", "VIEWPORT_WIDTH", "VIEWPORT_HEIGHT", "DEFAULT_TIMEOUT",
	"NAVIGATION_TIMEOUT", "RETRY_ATTEMPTS", "RETRY_DELAY",
}

// TestEnv holds the test environment state for a scenario.
type TestEnv struct {
	// TempDir is the temporary directory for this test run
	TempDir string
	// FeaturesDir is the default features directory within TempDir
	FeaturesDir string
	// ReportsDir is the default reports directory within TempDir
	ReportsDir string
	// OriginalDir is the directory we were in before the test
	OriginalDir string
	// OriginalEnv stores original environment variables to restore
	OriginalEnv map[string]string
}

// NewTestEnv creates a new isolated test environment.
// It creates a temporary directory and changes into it.
func NewTestEnv() (*TestEnv, error) {
	// Get current directory to restore later
	originalDir, err := os.Getwd()
	if err != nil {
		return nil, err
	}

	tempDir, err := os.MkdirTemp("", "testify-test-*")
	if err != nil {
		return nil, err
	}

	// Change to temp directory
	if err := os.Chdir(tempDir); err != nil {
		os.RemoveAll(tempDir)
		return nil, err
	}

	return &TestEnv{
		TempDir:     tempDir,
		FeaturesDir: filepath.Join(tempDir, "features"),
		ReportsDir:  filepath.Join(tempDir, "reports"),
		OriginalDir: originalDir,
		OriginalEnv: make(map[string]string),
	}, nil
}

// Isolate points HOME at the temp directory and clears every configuration
// variable, so neither a global config file nor the caller's shell leaks
// into the scenario.
func (e *TestEnv) Isolate() {
	e.SetEnv("HOME", e.TempDir)
	for _, key := range ConfigEnvVars {
		e.UnsetEnv(key)
	}
}

// Cleanup removes the temporary directory and restores the original state.
func (e *TestEnv) Cleanup() error {
	// Restore original directory
	if err := os.Chdir(e.OriginalDir); err != nil {
		return err
	}

	// Restore original environment variables
	for key, value := range e.OriginalEnv {
		if value == "" {
			os.Unsetenv(key)
		} else {
			os.Setenv(key, value)
		}
	}

	// Remove temp directory
	return os.RemoveAll(e.TempDir)
}

// SetEnv sets an environment variable and stores the original value for restoration.
func (e *TestEnv) SetEnv(key, value string) {
	if _, exists := e.OriginalEnv[key]; !exists {
		e.OriginalEnv[key] = os.Getenv(key)
	}
	os.Setenv(key, value)
}

// UnsetEnv unsets an environment variable and stores the original value for restoration.
func (e *TestEnv) UnsetEnv(key string) {
	if _, exists := e.OriginalEnv[key]; !exists {
		e.OriginalEnv[key] = os.Getenv(key)
	}
	os.Unsetenv(key)
}

// CreateProjectDirs creates the features and reports directories.
func (e *TestEnv) CreateProjectDirs() error {
	for _, dir := range []string{e.FeaturesDir, e.ReportsDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return nil
}

// CreateFile creates a file with the given content within the temp directory.
func (e *TestEnv) CreateFile(relativePath, content string) error {
	fullPath := filepath.Join(e.TempDir, relativePath)

	// Ensure parent directory exists
	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return err
	}

	return os.WriteFile(fullPath, []byte(content), 0644)
}

// ReadFile reads a file from the temp directory.
func (e *TestEnv) ReadFile(relativePath string) (string, error) {
	fullPath := filepath.Join(e.TempDir, relativePath)
	content, err := os.ReadFile(fullPath)
	if err != nil {
		return "", err
	}
	return string(content), nil
}

// FileExists checks if a file exists within the temp directory.
func (e *TestEnv) FileExists(relativePath string) bool {
	fullPath := filepath.Join(e.TempDir, relativePath)
	_, err := os.Stat(fullPath)
	return err == nil
}

// Path returns the full path for a relative path within the temp directory.
func (e *TestEnv) Path(relativePath string) string {
	return filepath.Join(e.TempDir, relativePath)
}
