package support

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// JSONResult wraps parsed JSON output for structured assertions.
type JSONResult struct {
	// Data holds the parsed JSON data
	Data any
	// Raw is the original JSON string
	Raw string
	// ParseErr is set if JSON parsing failed
	ParseErr error
}

// ParseJSON parses a JSON document. Numbers are kept as json.Number so
// integer counters and one-decimal rates compare exactly.
func ParseJSON(jsonStr string) *JSONResult {
	result := &JSONResult{Raw: jsonStr}

	dec := json.NewDecoder(strings.NewReader(jsonStr))
	dec.UseNumber()
	var data any
	if err := dec.Decode(&data); err != nil {
		result.ParseErr = err
		return result
	}
	result.Data = data
	return result
}

// ParseJSONFromResult parses the stdout of a CommandResult as JSON.
func ParseJSONFromResult(cmdResult *CommandResult) *JSONResult {
	return ParseJSON(cmdResult.Stdout)
}

// Valid returns true if the JSON was parsed successfully.
func (r *JSONResult) Valid() bool {
	return r.ParseErr == nil
}

// Lookup resolves a dot path such as "runs[0].run_id" or "suites.smoke".
// ok is false when any segment is missing.
func (r *JSONResult) Lookup(path string) (any, bool) {
	if r.ParseErr != nil {
		return nil, false
	}
	current := r.Data
	for _, part := range parsePath(path) {
		if idx, isIndex := parseArrayIndex(part); isIndex {
			arr, ok := current.([]any)
			if !ok || idx < 0 || idx >= len(arr) {
				return nil, false
			}
			current = arr[idx]
			continue
		}
		obj, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}
		if current, ok = obj[part]; !ok {
			return nil, false
		}
	}
	return current, true
}

// Has returns true if a value exists at the given path (even if null).
func (r *JSONResult) Has(path string) bool {
	_, ok := r.Lookup(path)
	return ok
}

// Text renders the value at path the way it would be written in a feature
// file: strings bare, numbers in their JSON spelling, null as "null" and
// composite values as compact JSON. Missing paths render as "".
func (r *JSONResult) Text(path string) string {
	val, ok := r.Lookup(path)
	if !ok {
		return ""
	}
	switch v := val.(type) {
	case nil:
		return "null"
	case string:
		return v
	case json.Number:
		return v.String()
	case bool:
		return strconv.FormatBool(v)
	default:
		data, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprint(v)
		}
		return string(data)
	}
}

// Len returns the length of the array or object at path, or -1.
func (r *JSONResult) Len(path string) int {
	val, _ := r.Lookup(path)
	switch v := val.(type) {
	case []any:
		return len(v)
	case map[string]any:
		return len(v)
	}
	return -1
}

// parsePath splits a path into parts, handling array notation.
// "runs[0].run_id" -> ["runs", "[0]", "run_id"]
func parsePath(path string) []string {
	var parts []string
	var current strings.Builder

	flush := func() {
		if current.Len() > 0 {
			parts = append(parts, current.String())
			current.Reset()
		}
	}
	for i := 0; i < len(path); i++ {
		switch ch := path[i]; ch {
		case '.':
			flush()
		case '[':
			flush()
			end := strings.IndexByte(path[i:], ']')
			if end == -1 {
				current.WriteByte(ch)
				continue
			}
			parts = append(parts, path[i:i+end+1])
			i += end
		default:
			current.WriteByte(ch)
		}
	}
	flush()
	return parts
}

// parseArrayIndex parses "[N]" and returns the index and true if valid.
func parseArrayIndex(part string) (int, bool) {
	if len(part) < 3 || part[0] != '[' || part[len(part)-1] != ']' {
		return 0, false
	}
	idx, err := strconv.Atoi(part[1 : len(part)-1])
	if err != nil {
		return 0, false
	}
	return idx, true
}
