// Package inject embeds JSON data into static HTML report pages.
//
// A page carries exactly one data slot, a line of the form
//
//	        window.__CATALOG__ = {...};
//
// (eight spaces of indentation), optionally followed by a // comment. Splice
// rewrites the assignment with fresh data and leaves every other byte of the
// page, the comment included, untouched.
package inject

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"regexp"
)

// Indent is the fixed indentation of a data slot line.
const Indent = "        "

// Outcome describes what Splice did to a page.
type Outcome int

const (
	// Injected means the slot was rewritten.
	Injected Outcome = iota
	// PageMissing means the page does not exist; nothing was written.
	PageMissing
	// SlotMissing means the page has no slot for the variable; nothing was written.
	SlotMissing
)

// String returns a human-readable label for the outcome.
func (o Outcome) String() string {
	switch o {
	case Injected:
		return "injected"
	case PageMissing:
		return "page missing"
	case SlotMissing:
		return "slot missing"
	default:
		return "unknown"
	}
}

// SlotPattern returns the expression matching the slot line for variable.
// Submatches are the assigned payload, the trailing comment and the line's
// carriage return.
func SlotPattern(variable string) *regexp.Regexp {
	return regexp.MustCompile(`(?m)^` + Indent + regexp.QuoteMeta(variable) + ` = (.*);([ \t]*//[^\r\n]*)?[ \t]*(\r?)$`)
}

// Payload returns the text currently assigned in the slot for variable.
func Payload(html, variable string) (string, bool) {
	m := SlotPattern(variable).FindStringSubmatch(html)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// SlotLine renders the slot line assigning data to variable.
func SlotLine(variable string, data any) (string, error) {
	payload, err := json.Marshal(data)
	if err != nil {
		return "", fmt.Errorf("failed to encode %s: %w", variable, err)
	}
	return Indent + variable + " = " + string(payload) + ";", nil
}

// Replace returns html with the slot for variable set to data.
func Replace(html, variable string, data any) (string, bool, error) {
	line, err := SlotLine(variable, data)
	if err != nil {
		return "", false, err
	}
	pattern := SlotPattern(variable)
	if !pattern.MatchString(html) {
		return html, false, nil
	}
	return pattern.ReplaceAllStringFunc(html, func(match string) string {
		m := pattern.FindStringSubmatch(match)
		return line + m[2] + m[3]
	}), true, nil
}

// Splice rewrites the data slot of the page at path. A missing page is not an
// error.
func Splice(path, variable string, data any) (Outcome, error) {
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return PageMissing, nil
	}
	if err != nil {
		return PageMissing, fmt.Errorf("failed to stat page %s: %w", path, err)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return PageMissing, fmt.Errorf("failed to read page %s: %w", path, err)
	}

	updated, ok, err := Replace(string(content), variable, data)
	if err != nil {
		return SlotMissing, err
	}
	if !ok {
		return SlotMissing, nil
	}

	if err := os.WriteFile(path, []byte(updated), info.Mode().Perm()); err != nil {
		return Injected, fmt.Errorf("failed to write page %s: %w", path, err)
	}
	return Injected, nil
}
