package feature

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	gherkin "github.com/cucumber/gherkin/go/v26"
	messages "github.com/cucumber/messages/go/v21"
)

// Validation is the strict Gherkin check of one feature file.
type Validation struct {
	File string `json:"file"`
	// Pickles is the number of executable test cases the official compiler
	// produces (one per scenario, one per example row for outlines).
	Pickles int    `json:"pickles"`
	Error   string `json:"error,omitempty"`
}

// Valid reports whether the file parsed cleanly.
func (v Validation) Valid() bool {
	return v.Error == ""
}

// Validate runs the official Gherkin parser over content. Unlike Parse it is
// strict and reports syntax errors.
func Validate(content, fileName string) Validation {
	result := Validation{File: fileName}

	newID := (&messages.Incrementing{}).NewId
	doc, err := gherkin.ParseGherkinDocument(strings.NewReader(content), newID)
	if err != nil {
		result.Error = err.Error()
		return result
	}
	result.Pickles = len(gherkin.Pickles(*doc, fileName, newID))
	return result
}

// ValidateDir validates every feature file in dir.
func ValidateDir(dir string) ([]Validation, error) {
	files, err := Discover(dir)
	if err != nil {
		return nil, err
	}

	results := make([]Validation, 0, len(files))
	for _, path := range files {
		content, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read feature file: %w", err)
		}
		results = append(results, Validate(string(content), filepath.Base(path)))
	}
	return results, nil
}
