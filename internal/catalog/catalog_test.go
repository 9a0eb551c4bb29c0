package catalog

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/testify-automation/testify/internal/feature"
	"github.com/testify-automation/testify/internal/inject"
)

var generatedAt = time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)

func scenario(t *testing.T, id string, exampleCount int, tags ...string) feature.Scenario {
	t.Helper()
	s, err := feature.NewScenario(id, "desc "+id, tags, []string{"Given a step"}, exampleCount > 0, exampleCount, "F", "f.feature")
	require.NoError(t, err)
	return s
}

func TestBuild(t *testing.T) {
	t.Run("drops features without scenarios", func(t *testing.T) {
		features := []feature.Feature{
			{Name: "Empty", File: "a.feature", Tags: []string{"@wip"}, Scenarios: []feature.Scenario{}},
			{Name: "Full", File: "b.feature", Tags: []string{}, Scenarios: []feature.Scenario{scenario(t, "TC-1", 0, "@smoke")}},
		}

		c := Build(features, generatedAt)
		require.Equal(t, 1, c.TotalFeatures)
		require.Equal(t, 1, c.TotalScenarios)
		require.Len(t, c.Features, 1)
		require.Equal(t, "Full", c.Features[0].Name)
		require.NotContains(t, c.AllTags, "@wip")
	})

	t.Run("counts example rows", func(t *testing.T) {
		features := []feature.Feature{{Name: "F", Scenarios: []feature.Scenario{
			scenario(t, "TC-1", 0),
			scenario(t, "TC-2", 3),
			func() feature.Scenario {
				s := scenario(t, "TC-3", 0)
				s.IsOutline = true
				return s
			}(),
		}}}

		c := Build(features, generatedAt)
		require.Equal(t, 3, c.TotalScenarios)
		require.Equal(t, 1+3+1, c.TotalWithExamples)
	})

	t.Run("suites are non-exclusive", func(t *testing.T) {
		features := []feature.Feature{{Name: "F", Scenarios: []feature.Scenario{
			scenario(t, "TC-1", 0, "@smoke", "@regression"),
			scenario(t, "TC-2", 0, "@a11y"),
			scenario(t, "TC-3", 0, "@accessibility", "@performance"),
			scenario(t, "", 0, "@perf"),
			scenario(t, "", 0, "@perf", "@sanity"),
		}}}

		c := Build(features, generatedAt)
		require.Equal(t, Suite{Count: 1, Tests: []string{"TC-1"}}, c.Suites["smoke"])
		require.Equal(t, Suite{Count: 1, Tests: []string{"TC-1"}}, c.Suites["regression"])
		require.Equal(t, Suite{Count: 1, Tests: []string{""}}, c.Suites["sanity"])
		require.Equal(t, Suite{Count: 2, Tests: []string{"TC-2", "TC-3"}}, c.Suites["accessibility"])
		require.Equal(t, Suite{Count: 3, Tests: []string{"TC-3", "", ""}}, c.Suites["performance"])
		require.Equal(t, []string{"@a11y", "@accessibility", "@perf", "@performance", "@regression", "@sanity", "@smoke"}, c.AllTags)
	})

	t.Run("every suite is present even when empty", func(t *testing.T) {
		c := Build(nil, generatedAt)
		require.Len(t, c.Suites, len(SuiteRules))
		for _, name := range SuiteNames() {
			require.Equal(t, Suite{Count: 0, Tests: []string{}}, c.Suites[name])
		}
		require.Equal(t, []feature.Feature{}, c.Features)
		require.Equal(t, []string{}, c.AllTags)
	})
}

func TestWriteRead(t *testing.T) {
	features, err := feature.ParseDir("../feature/testdata")
	require.NoError(t, err)
	c := Build(features, generatedAt)

	path := filepath.Join(t.TempDir(), "reports", "test_catalog.json")
	require.NoError(t, c.Write(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), "\n  \"total_features\": 2,")
	require.Contains(t, string(data), `"tc_id": "TC-012"`)

	back, err := Read(path)
	require.NoError(t, err)
	require.Equal(t, c, back)
}

func TestSelect(t *testing.T) {
	features := []feature.Feature{{Name: "F", Scenarios: []feature.Scenario{
		scenario(t, "TC-1", 0, "@smoke", "@ui"),
		scenario(t, "TC-2", 0, "@smoke", "@perf"),
		scenario(t, "TC-3", 0, "@regression"),
	}}}
	c := Build(features, generatedAt)

	ids := func(ss []feature.Scenario) []string {
		out := []string{}
		for _, s := range ss {
			out = append(out, s.ID)
		}
		return out
	}

	all, err := c.Select("")
	require.NoError(t, err)
	require.Equal(t, []string{"TC-1", "TC-2", "TC-3"}, ids(all))

	smoke, err := c.Select("@smoke and not @perf")
	require.NoError(t, err)
	require.Equal(t, []string{"TC-1"}, ids(smoke))

	either, err := c.Select("@perf or @regression")
	require.NoError(t, err)
	require.Equal(t, []string{"TC-2", "TC-3"}, ids(either))

	none, err := c.Select("@nothing")
	require.NoError(t, err)
	require.Empty(t, none)

	for _, expr := range []string{"@smoke and", "@smoke or", "not", "(@smoke", "@smoke )"} {
		t.Run("rejects "+expr, func(t *testing.T) {
			selected, err := c.Select(expr)
			require.Error(t, err)
			require.Contains(t, err.Error(), "invalid tag expression")
			require.Nil(t, selected)
		})
	}
}

func TestGenerate(t *testing.T) {
	const page = "<script>\n        window.__CATALOG__ = {};\n</script>\n"

	t.Run("writes json and injects into the page", func(t *testing.T) {
		reports := t.TempDir()
		htmlPath := filepath.Join(reports, "catalog.html")
		require.NoError(t, os.WriteFile(htmlPath, []byte(page), 0644))

		res, err := Generate(Options{
			FeaturesDir: "../feature/testdata",
			CatalogFile: filepath.Join(reports, "test_catalog.json"),
			CatalogHTML: htmlPath,
			Now:         func() time.Time { return generatedAt },
		})
		require.NoError(t, err)
		require.Equal(t, inject.Injected, res.Page)
		require.Equal(t, 2, res.Catalog.TotalFeatures)
		require.Equal(t, 5, res.Catalog.TotalScenarios)
		require.Equal(t, 1+3+1+1+1, res.Catalog.TotalWithExamples)
		require.Equal(t, []string{"TC-012", "TC-A001", "TC-P002"}, res.Catalog.Suites["smoke"].Tests)

		html, err := os.ReadFile(htmlPath)
		require.NoError(t, err)
		require.Contains(t, string(html), `        window.__CATALOG__ = {"generated_at":"2026-03-14T09:26:53.000000"`)

		_, err = os.Stat(filepath.Join(reports, "test_catalog.json"))
		require.NoError(t, err)
	})

	t.Run("missing page still writes json", func(t *testing.T) {
		reports := t.TempDir()
		res, err := Generate(Options{
			FeaturesDir: "../feature/testdata",
			CatalogFile: filepath.Join(reports, "test_catalog.json"),
			CatalogHTML: filepath.Join(reports, "catalog.html"),
		})
		require.NoError(t, err)
		require.Equal(t, inject.PageMissing, res.Page)

		_, err = os.Stat(filepath.Join(reports, "test_catalog.json"))
		require.NoError(t, err)
	})

	t.Run("missing features directory fails", func(t *testing.T) {
		reports := t.TempDir()
		_, err := Generate(Options{
			FeaturesDir: filepath.Join(reports, "features"),
			CatalogFile: filepath.Join(reports, "test_catalog.json"),
		})
		require.Error(t, err)
	})
}
