package support

import (
	"reflect"
	"testing"
)

const runOutput = `{
  "index": 2,
  "run": {
    "total": 4,
    "pass_rate": 50.0,
    "duration_s": 3.2,
    "tags_filter": "",
    "run_id": "20261018_101500",
    "scenarios": [
      {"name": "Submit form", "status": "passed", "tags": ["smoke"]},
      {"name": "Reject empty", "status": "failed", "tags": []}
    ],
    "error": null
  }
}`

func TestParseJSON(t *testing.T) {
	result := ParseJSON(runOutput)
	if !result.Valid() {
		t.Fatalf("ParseJSON() error = %v", result.ParseErr)
	}

	invalid := ParseJSON(`{"index": `)
	if invalid.Valid() {
		t.Error("Valid() = true for truncated JSON")
	}
	if invalid.Has("index") {
		t.Error("Has() = true on unparsed JSON")
	}
}

func TestJSONResult_Text(t *testing.T) {
	result := ParseJSON(runOutput)

	tests := []struct {
		path string
		want string
	}{
		{"index", "2"},
		{"run.total", "4"},
		{"run.pass_rate", "50.0"},
		{"run.duration_s", "3.2"},
		{"run.tags_filter", ""},
		{"run.run_id", "20261018_101500"},
		{"run.scenarios[1].status", "failed"},
		{"run.scenarios[0].tags", `["smoke"]`},
		{"run.error", "null"},
		{"run.missing", ""},
		{"run.scenarios[5].status", ""},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := result.Text(tt.path); got != tt.want {
				t.Errorf("Text(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}

func TestJSONResult_HasAndLen(t *testing.T) {
	result := ParseJSON(runOutput)

	if !result.Has("run.error") {
		t.Error("Has('run.error') = false for a null value")
	}
	if !result.Has("run.tags_filter") {
		t.Error("Has('run.tags_filter') = false for an empty string")
	}
	if result.Has("run.scenarios[0].duration_ms") {
		t.Error("Has() = true for a missing key")
	}

	if got := result.Len("run.scenarios"); got != 2 {
		t.Errorf("Len('run.scenarios') = %d, want 2", got)
	}
	if got := result.Len("run.scenarios[1].tags"); got != 0 {
		t.Errorf("Len('run.scenarios[1].tags') = %d, want 0", got)
	}
	if got := result.Len("run.scenarios[0]"); got != 3 {
		t.Errorf("Len('run.scenarios[0]') = %d, want 3", got)
	}
	if got := result.Len("run.total"); got != -1 {
		t.Errorf("Len('run.total') = %d, want -1", got)
	}
}

func TestParsePath(t *testing.T) {
	tests := []struct {
		path string
		want []string
	}{
		{"", nil},
		{"runs", []string{"runs"}},
		{"suites.smoke", []string{"suites", "smoke"}},
		{"runs[0]", []string{"runs", "[0]"}},
		{"runs[0].run_id", []string{"runs", "[0]", "run_id"}},
		{"[1].name", []string{"[1]", "name"}},
	}
	for _, tt := range tests {
		if got := parsePath(tt.path); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("parsePath(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestParseArrayIndex(t *testing.T) {
	tests := []struct {
		part    string
		wantIdx int
		wantOK  bool
	}{
		{"[0]", 0, true},
		{"[12]", 12, true},
		{"[]", 0, false},
		{"[x]", 0, false},
		{"runs", 0, false},
	}
	for _, tt := range tests {
		idx, ok := parseArrayIndex(tt.part)
		if idx != tt.wantIdx || ok != tt.wantOK {
			t.Errorf("parseArrayIndex(%q) = (%d, %v), want (%d, %v)", tt.part, idx, ok, tt.wantIdx, tt.wantOK)
		}
	}
}

func TestParseJSONFromResult(t *testing.T) {
	result := ParseJSONFromResult(&CommandResult{Stdout: `{"count": 0, "scenarios": []}`})
	if got := result.Text("count"); got != "0" {
		t.Errorf("Text('count') = %q, want 0", got)
	}
	if got := result.Len("scenarios"); got != 0 {
		t.Errorf("Len('scenarios') = %d, want 0", got)
	}
}
