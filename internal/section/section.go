// Package section implements the generic building-block codecs shared by the
// free-form planner documents: "## heading + body" section documents and
// single pipe-table documents.
//
// Parsing is permissive: lines that match no recognized pattern are body
// text, and text before the first heading is ignored. Serialization always
// emits a "- " placeholder for empty content so round-tripped files stay
// editable by hand.
package section

import (
	"regexp"
	"strings"

	"lifeplanner/internal/tags"
)

// Kind discriminates section definition variants.
type Kind uint8

// Kind values enumerate the supported section shapes.
const (
	// KindText is a plain free-text section.
	KindText Kind = iota

	// KindQuestions is a free-text section seeded with prompt questions.
	// Normalize strips any body line that matches a question verbatim
	// (a legacy storage format inlined the prompts into the body).
	KindQuestions
)

// Def describes one section of a multi-section document.
type Def struct {
	Title       string
	Kind        Kind
	DefaultBody string

	// Questions holds the prompts when Kind == KindQuestions.
	Questions []string
}

// TextDef creates a plain text section definition.
func TextDef(title, defaultBody string) Def {
	return Def{Title: title, Kind: KindText, DefaultBody: defaultBody}
}

// QuestionsDef creates a question-prompt section definition.
func QuestionsDef(title, defaultBody string, questions []string) Def {
	return Def{Title: title, Kind: KindQuestions, DefaultBody: defaultBody, Questions: questions}
}

var headingPattern = regexp.MustCompile(`^##\s+(.+)$`)

// Parse splits a document into "## heading" sections. The returned map
// holds each section's trimmed body keyed by heading title. Content before
// the first heading is ignored.
func Parse(content string) map[string]string {
	sections := make(map[string]string)

	currentTitle := ""

	var body []string

	flush := func() {
		if currentTitle == "" {
			return
		}

		sections[currentTitle] = strings.TrimSpace(strings.Join(body, "\n"))
	}

	for _, line := range strings.Split(content, "\n") {
		if match := headingPattern.FindStringSubmatch(line); match != nil {
			flush()

			currentTitle = strings.TrimSpace(match[1])
			body = nil

			continue
		}

		if currentTitle == "" {
			continue
		}

		body = append(body, line)
	}

	flush()

	return sections
}

// Serialize renders the document: "# <docTitle>" followed by one
// "## <section>" block per definition. A section's body comes from values,
// falling back to the definition's default; empty bodies render as a
// single "- " placeholder line.
func Serialize(docTitle string, defs []Def, values map[string]string, defaultTags []string) string {
	lines := []string{"# " + docTitle, ""}

	for _, def := range defs {
		body, ok := values[def.Title]
		if !ok {
			body = def.DefaultBody
		}

		lines = append(lines, "## "+def.Title, "")

		trimmed := strings.TrimSpace(body)
		if trimmed != "" {
			lines = append(lines, trimmed)
		} else {
			lines = append(lines, "- ")
		}

		lines = append(lines, "")
	}

	return strings.Join(tags.Prepend(lines, defaultTags), "\n")
}

// Normalize cleans parsed sections per their definitions. For question
// sections it removes body lines that exactly match one of the prompts.
func Normalize(defs []Def, parsed map[string]string) map[string]string {
	normalized := make(map[string]string, len(parsed))
	for title, body := range parsed {
		normalized[title] = body
	}

	for _, def := range defs {
		if def.Kind != KindQuestions || len(def.Questions) == 0 {
			continue
		}

		raw, ok := normalized[def.Title]
		if !ok || raw == "" {
			continue
		}

		questions := make(map[string]bool, len(def.Questions))
		for _, q := range def.Questions {
			questions[q] = true
		}

		var kept []string

		for _, line := range strings.Split(raw, "\n") {
			if questions[strings.TrimSpace(line)] {
				continue
			}

			kept = append(kept, strings.TrimSpace(line))
		}

		normalized[def.Title] = strings.TrimSpace(strings.Join(kept, "\n"))
	}

	return normalized
}

// FillDefaults returns one entry per definition, preferring the parsed body
// and falling back to the definition default.
func FillDefaults(defs []Def, parsed map[string]string) map[string]string {
	result := make(map[string]string, len(defs))

	for _, def := range defs {
		body, ok := parsed[def.Title]
		if !ok {
			body = def.DefaultBody
		}

		result[def.Title] = body
	}

	return result
}
