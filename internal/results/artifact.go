// Package results reads per-test result artifacts (Allure result files) and
// aggregates them into run summaries.
package results

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// Status is the outcome recorded in a result artifact.
type Status string

const (
	StatusPassed  Status = "passed"
	StatusFailed  Status = "failed"
	StatusBroken  Status = "broken"
	StatusSkipped Status = "skipped"
	StatusUnknown Status = "unknown"
)

// IsKnown reports whether s is one of the four counted statuses.
func (s Status) IsKnown() bool {
	switch s {
	case StatusPassed, StatusFailed, StatusBroken, StatusSkipped:
		return true
	default:
		return false
	}
}

// Label is a name/value pair attached to an artifact.
type Label struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Artifact is one result file: a single executed test.
type Artifact struct {
	UUID   string  `json:"uuid,omitempty"`
	Name   string  `json:"name"`
	Status Status  `json:"status"`
	Start  int64   `json:"start"`
	Stop   int64   `json:"stop"`
	Labels []Label `json:"labels"`
}

// DurationMS is stop minus start, in the artifact's time unit (milliseconds).
func (a Artifact) DurationMS() int64 {
	return a.Stop - a.Start
}

// LabelMap flattens the label list; later labels win on duplicate names.
func (a Artifact) LabelMap() map[string]string {
	m := make(map[string]string, len(a.Labels))
	for _, l := range a.Labels {
		m[l.Name] = l.Value
	}
	return m
}

// ErrMalformedArtifact marks an artifact that cannot be counted.
var ErrMalformedArtifact = errors.New("malformed result artifact")

// rawLabel keeps missing keys distinguishable from empty values.
type rawLabel struct {
	Name  *string `json:"name"`
	Value *string `json:"value"`
}

type rawArtifact struct {
	UUID   string     `json:"uuid"`
	Name   *string    `json:"name"`
	Status *Status    `json:"status"`
	Start  int64      `json:"start"`
	Stop   int64      `json:"stop"`
	Labels []rawLabel `json:"labels"`
}

// DecodeArtifact parses one result file. Missing status and name fall back to
// "unknown" and "Unknown"; a label without name or value is malformed.
func DecodeArtifact(data []byte) (Artifact, error) {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return Artifact{}, fmt.Errorf("%w: null document", ErrMalformedArtifact)
	}
	var raw rawArtifact
	if err := json.Unmarshal(data, &raw); err != nil {
		return Artifact{}, fmt.Errorf("%w: %v", ErrMalformedArtifact, err)
	}

	a := Artifact{
		UUID:   raw.UUID,
		Name:   "Unknown",
		Status: StatusUnknown,
		Start:  raw.Start,
		Stop:   raw.Stop,
		Labels: make([]Label, 0, len(raw.Labels)),
	}
	if raw.Name != nil {
		a.Name = *raw.Name
	}
	if raw.Status != nil {
		a.Status = *raw.Status
	}
	for i, l := range raw.Labels {
		if l.Name == nil || l.Value == nil {
			return Artifact{}, fmt.Errorf("%w: label %d lacks name or value", ErrMalformedArtifact, i)
		}
		a.Labels = append(a.Labels, Label{Name: *l.Name, Value: *l.Value})
	}
	return a, nil
}
