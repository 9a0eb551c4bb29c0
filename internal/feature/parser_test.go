package feature

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseFile(t *testing.T) {
	t.Run("contact feature", func(t *testing.T) {
		f, err := ParseFile("testdata/contact.feature")
		require.NoError(t, err)

		require.Equal(t, "Contact form", f.Name)
		require.Equal(t, "contact.feature", f.File)
		require.Equal(t, []string{"@contact"}, f.Tags)
		require.Len(t, f.Scenarios, 3)

		first := f.Scenarios[0]
		require.Equal(t, "TC-012", first.ID)
		require.Equal(t, "User submits a valid contact form", first.Description)
		require.Equal(t, []string{"@contact", "@regression", "@smoke"}, first.Tags)
		require.Equal(t, []string{
			"Given I am on the contact page",
			"When I fill in the contact form with valid data",
			"And I submit the form",
			"Then I should see a confirmation message",
		}, first.Steps)
		require.False(t, first.IsOutline)
		require.Equal(t, 0, first.ExampleCount)
		require.Equal(t, "Contact form", first.FeatureName)
		require.Equal(t, "contact.feature", first.SourceFile)

		outline := f.Scenarios[1]
		require.Equal(t, "TC-013", outline.ID)
		require.Equal(t, "Required fields are validated", outline.Description)
		require.True(t, outline.IsOutline)
		require.Equal(t, 3, outline.ExampleCount)
		require.Len(t, outline.Steps, 3)
		require.Equal(t, []string{"@contact", "@regression"}, outline.Tags)

		untitled := f.Scenarios[2]
		require.Equal(t, "", untitled.ID)
		require.Equal(t, "Form renders without an id", untitled.Description)
		require.Equal(t, []string{"@contact"}, untitled.Tags)
	})

	t.Run("step tables and bare ids", func(t *testing.T) {
		f, err := ParseFile("testdata/home.feature")
		require.NoError(t, err)

		require.Equal(t, []string{"@home", "@smoke"}, f.Tags)
		require.Len(t, f.Scenarios, 2)

		landmarks := f.Scenarios[0]
		require.Equal(t, "TC-A001", landmarks.ID)
		require.Equal(t, []string{"@a11y", "@home", "@sanity", "@smoke"}, landmarks.Tags)
		require.Equal(t, []string{
			"Given I open the home page",
			"Then the page should have a main landmark",
			"And the following landmarks exist:",
			"| landmark |",
			"| header   |",
			"| footer   |",
		}, landmarks.Steps)

		perf := f.Scenarios[1]
		require.Equal(t, "TC-P002", perf.ID)
		require.Equal(t, "Page loads fast", perf.Description)
		require.Equal(t, []string{"@home", "@perf", "@smoke"}, perf.Tags)
	})

	t.Run("feature without scenarios", func(t *testing.T) {
		f, err := ParseFile("testdata/empty.feature")
		require.NoError(t, err)
		require.Equal(t, "Placeholder", f.Name)
		require.Equal(t, []string{"@wip"}, f.Tags)
		require.Empty(t, f.Scenarios)
		require.NotNil(t, f.Scenarios)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := ParseFile(filepath.Join(t.TempDir(), "nope.feature"))
		require.Error(t, err)
	})
}

func TestParse(t *testing.T) {
	t.Run("title example from the catalog", func(t *testing.T) {
		f := Parse(`@contact
Feature: Contact

  @smoke
  Scenario: TC-012 - User submits a valid contact form
    Given something
`, "c.feature")

		require.Len(t, f.Scenarios, 1)
		s := f.Scenarios[0]
		require.Equal(t, "TC-012", s.ID)
		require.Equal(t, "User submits a valid contact form", s.Description)
		require.Equal(t, []string{"@contact", "@smoke"}, s.Tags)
	})

	t.Run("duplicate tags across levels are merged", func(t *testing.T) {
		f := Parse(`@smoke @ui
Feature: Dupes

  @ui @smoke @smoke
  Scenario: TC-1 - one
    Given a step
`, "d.feature")

		require.Equal(t, []string{"@smoke", "@ui"}, f.Scenarios[0].Tags)
	})

	t.Run("consecutive tag lines accumulate", func(t *testing.T) {
		f := Parse(`Feature: Multi

  @smoke
  @regression

  Scenario: TC-2 - two
    Given a step
`, "m.feature")

		require.Equal(t, []string{"@regression", "@smoke"}, f.Scenarios[0].Tags)
	})

	t.Run("pending tags are cleared after a scenario", func(t *testing.T) {
		f := Parse(`Feature: Clear

  @smoke
  Scenario: TC-1 - tagged
    Given a step

  Scenario: TC-2 - untagged
    Given a step
`, "c.feature")

		require.Equal(t, []string{"@smoke"}, f.Scenarios[0].Tags)
		require.Equal(t, []string{}, f.Scenarios[1].Tags)
	})

	t.Run("scenario without steps", func(t *testing.T) {
		f := Parse("Feature: Bare\n  Scenario: TC-3 - nothing\n", "b.feature")
		require.Len(t, f.Scenarios, 1)
		require.NotNil(t, f.Scenarios[0].Steps)
		require.Empty(t, f.Scenarios[0].Steps)
	})

	t.Run("outline with unterminated examples", func(t *testing.T) {
		f := Parse(`Feature: Outline
  Scenario Outline: TC-4 - header only
    Given <a>
    Examples:
      | a |`, "o.feature")

		require.True(t, f.Scenarios[0].IsOutline)
		require.Equal(t, 0, f.Scenarios[0].ExampleCount)
	})

	t.Run("outline without examples", func(t *testing.T) {
		f := Parse("Feature: Outline\n  Scenario Outline: TC-5 - none\n    Given <a>\n", "o.feature")
		require.True(t, f.Scenarios[0].IsOutline)
		require.Equal(t, 0, f.Scenarios[0].ExampleCount)
	})

	t.Run("blank line ends an examples table", func(t *testing.T) {
		f := Parse(`Feature: Outline
  Scenario Outline: TC-6 - split
    Given <a>
    Examples:
      | a |
      | 1 |

      | 2 |
`, "o.feature")

		require.Equal(t, 1, f.Scenarios[0].ExampleCount)
	})

	t.Run("comments and unknown lines are skipped", func(t *testing.T) {
		f := Parse(`# leading comment
Feature: Comments
  Background:
    Given shared setup
  Scenario: TC-7 - commented
    # not a step
    Given a step
    * star steps are not captured
`, "c.feature")

		require.Len(t, f.Scenarios, 1)
		require.Equal(t, []string{"Given a step"}, f.Scenarios[0].Steps)
	})

	t.Run("windows line endings and byte order mark", func(t *testing.T) {
		f := Parse("\ufeff@x\r\nFeature: CRLF\r\n  Scenario: TC-8 - crlf\r\n    Given a step\r\n", "w.feature")
		require.Equal(t, "CRLF", f.Name)
		require.Equal(t, []string{"@x"}, f.Tags)
		require.Equal(t, []string{"Given a step"}, f.Scenarios[0].Steps)
	})

	t.Run("example counts are never negative", func(t *testing.T) {
		for _, content := range []string{
			"Feature: A\n  Scenario Outline: x\n    Examples:\n",
			"Feature: A\n  Scenario Outline: x\n    Examples:\n      | h |\n",
			"Feature: A\n  Scenario: x\n",
		} {
			for _, s := range Parse(content, "a.feature").Scenarios {
				require.GreaterOrEqual(t, s.ExampleCount, 0)
			}
		}
	})
}

func TestNewScenario(t *testing.T) {
	t.Run("rejects negative example count", func(t *testing.T) {
		_, err := NewScenario("TC-1", "x", nil, nil, true, -1, "F", "f.feature")
		require.ErrorIs(t, err, ErrNegativeExampleCount)
	})

	t.Run("normalises tags and steps", func(t *testing.T) {
		s, err := NewScenario("TC-1", "x", []string{"@b", "@a", "@b"}, nil, false, 0, "F", "f.feature")
		require.NoError(t, err)
		require.Equal(t, []string{"@a", "@b"}, s.Tags)
		require.Equal(t, []string{}, s.Steps)
		require.True(t, s.HasTag("@a"))
		require.False(t, s.HasTag("@c"))
	})

	t.Run("cases", func(t *testing.T) {
		plain, _ := NewScenario("", "", nil, nil, false, 0, "", "")
		outline, _ := NewScenario("", "", nil, nil, true, 4, "", "")
		empty, _ := NewScenario("", "", nil, nil, true, 0, "", "")
		require.Equal(t, 1, plain.Cases())
		require.Equal(t, 4, outline.Cases())
		require.Equal(t, 1, empty.Cases())
	})
}

func TestDiscover(t *testing.T) {
	files, err := Discover("testdata")
	require.NoError(t, err)
	require.Equal(t, []string{
		filepath.Join("testdata", "contact.feature"),
		filepath.Join("testdata", "empty.feature"),
		filepath.Join("testdata", "home.feature"),
	}, files)

	_, err = Discover(filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)
}

func TestParseDir(t *testing.T) {
	features, err := ParseDir("testdata")
	require.NoError(t, err)
	require.Len(t, features, 3)
	require.Equal(t, "contact.feature", features[0].File)
	require.Equal(t, "empty.feature", features[1].File)
	require.Equal(t, "home.feature", features[2].File)
}
