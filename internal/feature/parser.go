package feature

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

const (
	// Extension is the file suffix of feature files.
	Extension = ".feature"

	featureKeyword  = "Feature:"
	scenarioKeyword = "Scenario"
	examplesKeyword = "Examples:"
)

var (
	tagPattern      = regexp.MustCompile(`@\w+`)
	titlePrefix     = regexp.MustCompile(`^Scenario( Outline)?:\s*`)
	idPattern       = regexp.MustCompile(`^TC-[A-Z]?\d+`)
	idPrefixPattern = regexp.MustCompile(`^TC-[A-Z]?\d+(\s*-\s*|\s+|$)`)

	stepKeywords = []string{"Given ", "When ", "Then ", "And ", "But "}
)

// ParseFile reads and parses the feature file at path.
func ParseFile(path string) (Feature, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return Feature{}, fmt.Errorf("failed to read feature file: %w", err)
	}
	return Parse(string(content), filepath.Base(path)), nil
}

// Parse turns feature file content into a Feature. It never fails: structural
// anomalies degrade to fewer or empty fields.
func Parse(content, fileName string) Feature {
	content = strings.TrimPrefix(content, "\ufeff")
	p := &parser{
		lines:   strings.Split(content, "\n"),
		feature: Feature{File: fileName, Tags: []string{}, Scenarios: []Scenario{}},
	}
	p.run()
	return p.feature
}

type parser struct {
	lines   []string
	feature Feature
	pending []string
}

// line returns the trimmed line at i.
func (p *parser) line(i int) string {
	return strings.TrimSpace(p.lines[i])
}

func (p *parser) run() {
	i := 0
	for i < len(p.lines) {
		line := p.line(i)

		switch {
		case strings.HasPrefix(line, "@"):
			// Tags spread over several lines all apply, as in Gherkin; a later
			// tag line adds to the pending set rather than replacing it.
			p.collectTags(i, line)
			i++
		case strings.HasPrefix(line, featureKeyword):
			p.feature.Name = strings.TrimSpace(strings.TrimPrefix(line, featureKeyword))
			i++
		case strings.HasPrefix(line, "Scenario:") || strings.HasPrefix(line, "Scenario Outline:"):
			i = p.scenario(i, line)
		default:
			i++
		}
	}
}

// collectTags decides whether the tags on line i belong to the feature or to
// the next scenario by looking at the next non-blank line.
func (p *parser) collectTags(i int, line string) {
	tags := tagPattern.FindAllString(line, -1)

	j := i + 1
	for j < len(p.lines) && p.line(j) == "" {
		j++
	}
	if j < len(p.lines) && strings.HasPrefix(p.line(j), featureKeyword) {
		p.feature.Tags = append(p.feature.Tags, p.pending...)
		p.feature.Tags = append(p.feature.Tags, tags...)
		p.pending = nil
		return
	}
	p.pending = append(p.pending, tags...)
}

// scenario extracts the scenario starting at line i and returns the index of
// the first line that was not consumed.
func (p *parser) scenario(i int, line string) int {
	isOutline := strings.HasPrefix(line, "Scenario Outline:")
	title := titlePrefix.ReplaceAllString(line, "")
	id := idPattern.FindString(title)
	description := strings.TrimSpace(title)
	if id != "" {
		description = strings.TrimSpace(idPrefixPattern.ReplaceAllString(title, ""))
	}

	var steps, examples []string
	inExamples := false

	j := i + 1
scan:
	for ; j < len(p.lines); j++ {
		current := p.line(j)
		switch {
		case current == "" && !inExamples:
			continue
		case strings.HasPrefix(current, "@") || strings.HasPrefix(current, scenarioKeyword):
			break scan
		case strings.HasPrefix(current, examplesKeyword):
			inExamples = true
		case inExamples && strings.HasPrefix(current, "|"):
			examples = append(examples, current)
		case inExamples:
			break scan
		case isStep(current) || strings.HasPrefix(current, "|"):
			steps = append(steps, current)
		}
	}

	exampleCount := 0
	if len(examples) > 1 {
		exampleCount = len(examples) - 1
	}

	// The count is never negative here, so the factory cannot fail.
	sc, _ := NewScenario(id, description, append(append([]string{}, p.feature.Tags...), p.pending...),
		steps, isOutline, exampleCount, p.feature.Name, p.feature.File)
	p.feature.Scenarios = append(p.feature.Scenarios, sc)
	p.pending = nil
	return j
}

func isStep(line string) bool {
	for _, keyword := range stepKeywords {
		if strings.HasPrefix(line, keyword) {
			return true
		}
	}
	return false
}
