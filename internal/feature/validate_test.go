package feature

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	t.Run("counts pickles per example row", func(t *testing.T) {
		content, err := os.ReadFile("testdata/contact.feature")
		require.NoError(t, err)

		v := Validate(string(content), "contact.feature")
		require.True(t, v.Valid(), v.Error)
		require.Equal(t, 5, v.Pickles)
	})

	t.Run("reports syntax errors", func(t *testing.T) {
		v := Validate("this is not gherkin\nFeature: Broken\n", "broken.feature")
		require.False(t, v.Valid())
		require.NotEmpty(t, v.Error)
		require.Equal(t, 0, v.Pickles)
	})
}

func TestValidateDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.feature"), []byte("Feature: A\n  Scenario: one\n    Given x\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.feature"), []byte("nonsense\n"), 0644))

	results, err := ValidateDir(dir)
	require.NoError(t, err)
	require.Len(t, results, 2)
	require.True(t, results[0].Valid())
	require.Equal(t, 1, results[0].Pickles)
	require.False(t, results[1].Valid())
}
