package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/testify-automation/testify/internal/catalog"
	"github.com/testify-automation/testify/internal/config"
	"github.com/testify-automation/testify/internal/feature"
	"github.com/testify-automation/testify/internal/history"
	"github.com/testify-automation/testify/internal/report"
	"github.com/testify-automation/testify/internal/results"
)

func testScenarios(t *testing.T) []feature.Scenario {
	t.Helper()
	smoke, err := feature.NewScenario("TC-012", "User submits a valid contact form",
		[]string{"@smoke", "@contact"}, []string{"Given I open the contact page"}, false, 0, "Contact form", "contact.feature")
	if err != nil {
		t.Fatal(err)
	}
	outline, err := feature.NewScenario("TC-013", "Required fields", []string{"@regression", "@contact"},
		nil, true, 3, "Contact form", "contact.feature")
	if err != nil {
		t.Fatal(err)
	}
	untracked, err := feature.NewScenario("", "Untracked", []string{"@contact"}, nil, false, 0, "Contact form", "contact.feature")
	if err != nil {
		t.Fatal(err)
	}
	return []feature.Scenario{smoke, outline, untracked}
}

func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	return catalog.Build([]feature.Feature{{
		Name:      "Contact form",
		File:      "contact.feature",
		Tags:      []string{"@contact"},
		Scenarios: testScenarios(t),
	}}, time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC))
}

func testRecorded(total, passed int) *history.Recorded {
	return &history.Recorded{
		Index: 4,
		Run: history.Run{
			RunSummary: history.RunSummary{
				Total:      total,
				Passed:     passed,
				Failed:     total - passed,
				PassRate:   results.PassRate(passed, total),
				DurationS:  12.3,
				Timestamp:  "2026-03-14T09:26:53.000000",
				RunID:      "20260314_092653",
				TagsFilter: "@smoke",
			},
			Scenarios: []results.ScenarioResult{},
		},
	}
}

func TestFormatIsValid(t *testing.T) {
	tests := []struct {
		format Format
		valid  bool
	}{
		{FormatTable, true},
		{FormatJSON, true},
		{FormatPlain, true},
		{FormatIDOnly, true},
		{Format("invalid"), false},
		{Format(""), false},
	}

	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			if got := tt.format.IsValid(); got != tt.valid {
				t.Errorf("Format(%q).IsValid() = %v, want %v", tt.format, got, tt.valid)
			}
		})
	}
}

func TestValidFormatsMatchConfig(t *testing.T) {
	formats := ValidFormats()
	if len(formats) != len(config.Formats) {
		t.Fatalf("expected %d formats, got %d", len(config.Formats), len(formats))
	}
	for i, f := range formats {
		if string(f) != config.Formats[i] {
			t.Errorf("format %d: %q != %q", i, f, config.Formats[i])
		}
	}
}

func TestNew(t *testing.T) {
	tests := []struct {
		format   Format
		expected string
	}{
		{FormatTable, "*output.TableFormatter"},
		{FormatJSON, "*output.JSONFormatter"},
		{FormatPlain, "*output.PlainFormatter"},
		{FormatIDOnly, "*output.IDOnlyFormatter"},
		{Format(""), "*output.PlainFormatter"},
	}

	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			var got string
			switch New(tt.format).(type) {
			case *TableFormatter:
				got = "*output.TableFormatter"
			case *JSONFormatter:
				got = "*output.JSONFormatter"
			case *PlainFormatter:
				got = "*output.PlainFormatter"
			case *IDOnlyFormatter:
				got = "*output.IDOnlyFormatter"
			}
			if got != tt.expected {
				t.Errorf("New(%q) = %s, want %s", tt.format, got, tt.expected)
			}
		})
	}
}

func TestPlainFormatter_FormatCatalog(t *testing.T) {
	var buf bytes.Buffer
	f := &PlainFormatter{}

	if err := f.FormatCatalog(&buf, testCatalog(t)); err != nil {
		t.Fatalf("FormatCatalog failed: %v", err)
	}

	want := "📋 Test catalog generated: 3 test cases across 1 features\n" +
		"   smoke: 1 tests\n" +
		"   regression: 1 tests\n"
	if buf.String() != want {
		t.Errorf("unexpected output:\n%s\nwant:\n%s", buf.String(), want)
	}
}

func TestPlainFormatter_FormatRecorded(t *testing.T) {
	tests := []struct {
		name          string
		total, passed int
		want          string
	}{
		{"half", 4, 2, "📝 Run #4 recorded: 2/4 passed (50.0%)\n"},
		{"thirds", 3, 2, "📝 Run #4 recorded: 2/3 passed (66.7%)\n"},
		{"empty", 0, 0, "📝 Run #4 recorded: 0/0 passed (0%)\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := (&PlainFormatter{}).FormatRecorded(&buf, testRecorded(tt.total, tt.passed)); err != nil {
				t.Fatalf("FormatRecorded failed: %v", err)
			}
			if buf.String() != tt.want {
				t.Errorf("got %q, want %q", buf.String(), tt.want)
			}
		})
	}
}

func TestPlainFormatter_FormatScenarios(t *testing.T) {
	var buf bytes.Buffer
	if err := (&PlainFormatter{}).FormatScenarios(&buf, testScenarios(t)); err != nil {
		t.Fatalf("FormatScenarios failed: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if lines[0] != "TC-012\tUser submits a valid contact form\t@contact,@smoke\tContact form" {
		t.Errorf("unexpected first line %q", lines[0])
	}
}

func TestPlainFormatter_FormatConfig(t *testing.T) {
	cfg := &config.Config{
		Defaults: config.Defaults{Format: "plain", LogLevel: "INFO"},
		Paths:    config.Paths{FeaturesDir: "features", ReportsDir: "reports"},
		Browser:  config.Browser{Name: "chromium", Headless: true},
	}

	var buf bytes.Buffer
	if err := (&PlainFormatter{}).FormatConfig(&buf, cfg); err != nil {
		t.Fatalf("FormatConfig failed: %v", err)
	}

	out := buf.String()
	for _, want := range []string{"defaults:\n  format: plain", "features_dir: features", "headless: true"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected output to contain %q, got:\n%s", want, out)
		}
	}
}

func TestPlainFormatter_FormatScaffold(t *testing.T) {
	var buf bytes.Buffer
	err := (&PlainFormatter{}).FormatScaffold(&buf, []report.Written{
		{Path: "reports/catalog.html"},
		{Path: "reports/dashboard.html", Kept: true},
	})
	if err != nil {
		t.Fatalf("FormatScaffold failed: %v", err)
	}

	want := "Created reports/catalog.html\nKept reports/dashboard.html (use --force to overwrite)\n"
	if buf.String() != want {
		t.Errorf("got %q, want %q", buf.String(), want)
	}
}

func TestJSONFormatter_FormatRecorded(t *testing.T) {
	var buf bytes.Buffer
	if err := (&JSONFormatter{}).FormatRecorded(&buf, testRecorded(4, 3)); err != nil {
		t.Fatalf("FormatRecorded failed: %v", err)
	}

	var result struct {
		Index int `json:"index"`
		Run   struct {
			RunID    string  `json:"run_id"`
			PassRate float64 `json:"pass_rate"`
		} `json:"run"`
	}
	if err := json.Unmarshal(buf.Bytes(), &result); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if result.Index != 4 || result.Run.RunID != "20260314_092653" || result.Run.PassRate != 75.0 {
		t.Errorf("unexpected result %+v", result)
	}
}

func TestJSONFormatter_FormatHistoryIsSlim(t *testing.T) {
	runs := history.History{testRecorded(2, 1).Run}

	var buf bytes.Buffer
	if err := (&JSONFormatter{}).FormatHistory(&buf, runs, 1); err != nil {
		t.Fatalf("FormatHistory failed: %v", err)
	}
	if strings.Contains(buf.String(), "scenarios") {
		t.Errorf("history output should not include scenarios:\n%s", buf.String())
	}
}

func TestJSONFormatter_FormatError(t *testing.T) {
	var buf bytes.Buffer
	if err := (&JSONFormatter{}).FormatError(&buf, "NOT_FOUND", "no results", nil); err != nil {
		t.Fatalf("FormatError failed: %v", err)
	}

	var result map[string]map[string]any
	if err := json.Unmarshal(buf.Bytes(), &result); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if result["error"]["code"] != "NOT_FOUND" {
		t.Errorf("unexpected error code %v", result["error"]["code"])
	}
}

func TestTableFormatter_FormatScenarios(t *testing.T) {
	var buf bytes.Buffer
	if err := (&TableFormatter{}).FormatScenarios(&buf, testScenarios(t)); err != nil {
		t.Fatalf("FormatScenarios failed: %v", err)
	}

	out := buf.String()
	for _, want := range []string{"TC-012", "TC-013", "Contact form", "@contact @smoke"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected table to contain %q, got:\n%s", want, out)
		}
	}

	buf.Reset()
	if err := (&TableFormatter{}).FormatScenarios(&buf, nil); err != nil {
		t.Fatal(err)
	}
	if buf.String() != "No scenarios found.\n" {
		t.Errorf("unexpected empty output %q", buf.String())
	}
}

func TestTableFormatter_FormatHistory(t *testing.T) {
	runs := history.History{testRecorded(4, 4).Run, testRecorded(4, 2).Run}

	var buf bytes.Buffer
	if err := (&TableFormatter{}).FormatHistory(&buf, runs, 7); err != nil {
		t.Fatalf("FormatHistory failed: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"20260314_092653", "100.0%", "50.0%", "12.3s", "@smoke"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected table to contain %q, got:\n%s", want, out)
		}
	}
}

func TestIDOnlyFormatter(t *testing.T) {
	var buf bytes.Buffer
	f := &IDOnlyFormatter{}

	if err := f.FormatCatalog(&buf, testCatalog(t)); err != nil {
		t.Fatal(err)
	}
	if buf.String() != "TC-012\nTC-013\n" {
		t.Errorf("unexpected catalog ids %q", buf.String())
	}

	buf.Reset()
	if err := f.FormatRecorded(&buf, testRecorded(1, 1)); err != nil {
		t.Fatal(err)
	}
	if buf.String() != "20260314_092653\n" {
		t.Errorf("unexpected run id %q", buf.String())
	}
}
