package inject

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const page = `<!DOCTYPE html>
<html>
<body>
    <script>
        window.__RUN_DATA__ = [];
        render(window.__RUN_DATA__);
    </script>
</body>
</html>
`

func TestReplace(t *testing.T) {
	t.Run("rewrites only the slot line", func(t *testing.T) {
		out, ok, err := Replace(page, "window.__RUN_DATA__", []map[string]int{{"total": 4}})
		require.NoError(t, err)
		require.True(t, ok)
		require.Contains(t, out, `        window.__RUN_DATA__ = [{"total":4}];`)

		before := strings.Split(page, "\n")
		after := strings.Split(out, "\n")
		require.Equal(t, len(before), len(after))
		changed := 0
		for i := range before {
			if before[i] != after[i] {
				changed++
			}
		}
		require.Equal(t, 1, changed)
	})

	t.Run("semicolons inside previous data leave no residue", func(t *testing.T) {
		html := "        window.__CATALOG__ = {\"name\":\"a; b\"};\n"
		out, ok, err := Replace(html, "window.__CATALOG__", map[string]string{"name": "c"})
		require.NoError(t, err)
		require.True(t, ok)
		require.Equal(t, "        window.__CATALOG__ = {\"name\":\"c\"};\n", out)
	})

	t.Run("dollar signs are written literally", func(t *testing.T) {
		out, _, err := Replace(page, "window.__RUN_DATA__", []string{"$1 ${x}"})
		require.NoError(t, err)
		require.Contains(t, out, `["$1 ${x}"]`)
	})

	t.Run("keeps carriage returns", func(t *testing.T) {
		out, ok, err := Replace("<p>\r\n        window.__CATALOG__ = {};\r\n</p>\r\n", "window.__CATALOG__", []int{})
		require.NoError(t, err)
		require.True(t, ok)
		require.Equal(t, "<p>\r\n        window.__CATALOG__ = [];\r\n</p>\r\n", out)
	})

	t.Run("keeps a trailing comment", func(t *testing.T) {
		html := "<script>\n        window.__RUN_DATA__ = []; // filled by collect\n</script>\n"
		out, ok, err := Replace(html, "window.__RUN_DATA__", []int{1})
		require.NoError(t, err)
		require.True(t, ok)
		require.Equal(t, "<script>\n        window.__RUN_DATA__ = [1]; // filled by collect\n</script>\n", out)

		payload, ok := Payload(out, "window.__RUN_DATA__")
		require.True(t, ok)
		require.Equal(t, "[1]", payload)
	})

	t.Run("semicolons inside a trailing comment", func(t *testing.T) {
		html := "        window.__CATALOG__ = {\"a\":\"x;y\"}; // one; two\n"
		out, ok, err := Replace(html, "window.__CATALOG__", []int{})
		require.NoError(t, err)
		require.True(t, ok)
		require.Equal(t, "        window.__CATALOG__ = []; // one; two\n", out)
	})

	t.Run("script terminators are escaped", func(t *testing.T) {
		out, _, err := Replace(page, "window.__RUN_DATA__", []string{"</script>"})
		require.NoError(t, err)
		require.NotContains(t, out, `"</script>"`)
	})

	t.Run("other variables and indentation do not match", func(t *testing.T) {
		_, ok, err := Replace(page, "window.__CATALOG__", 1)
		require.NoError(t, err)
		require.False(t, ok)

		_, ok, err = Replace("    window.__RUN_DATA__ = [];\n", "window.__RUN_DATA__", 1)
		require.NoError(t, err)
		require.False(t, ok)
	})
}

func TestSplice(t *testing.T) {
	t.Run("missing page is a no-op", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "dashboard.html")
		outcome, err := Splice(path, "window.__RUN_DATA__", []int{1})
		require.NoError(t, err)
		require.Equal(t, PageMissing, outcome)

		_, err = os.Stat(path)
		require.True(t, os.IsNotExist(err))
	})

	t.Run("injects into an existing page", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "dashboard.html")
		require.NoError(t, os.WriteFile(path, []byte(page), 0644))

		outcome, err := Splice(path, "window.__RUN_DATA__", []int{1, 2})
		require.NoError(t, err)
		require.Equal(t, Injected, outcome)

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		require.Contains(t, string(data), "        window.__RUN_DATA__ = [1,2];")
	})

	t.Run("page without slot is left untouched", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "catalog.html")
		require.NoError(t, os.WriteFile(path, []byte("<html></html>\n"), 0644))

		outcome, err := Splice(path, "window.__CATALOG__", map[string]int{})
		require.NoError(t, err)
		require.Equal(t, SlotMissing, outcome)

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		require.Equal(t, "<html></html>\n", string(data))
	})
}
