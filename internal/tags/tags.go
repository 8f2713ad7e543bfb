// Package tags prepends a YAML tag frontmatter block to planner documents.
//
// This is an output-only concern: the planner never reads the block back,
// it exists so the host vault's tag index picks the documents up.
package tags

import (
	"strings"

	"gopkg.in/yaml.v3"
)

const frontmatterDelimiter = "---"

// Normalize trims tags, strips a leading "#", drops empties, and
// de-duplicates case-insensitively keeping the first occurrence.
func Normalize(rawTags []string) []string {
	if len(rawTags) == 0 {
		return nil
	}

	seen := make(map[string]bool, len(rawTags))
	normalized := make([]string, 0, len(rawTags))

	for _, raw := range rawTags {
		cleaned := strings.TrimPrefix(strings.TrimSpace(raw), "#")
		if cleaned == "" {
			continue
		}

		key := strings.ToLower(cleaned)
		if seen[key] {
			continue
		}

		seen[key] = true

		normalized = append(normalized, cleaned)
	}

	return normalized
}

// Prepend returns lines with a tag frontmatter block prepended.
// If rawTags normalizes to nothing, lines are returned unchanged.
func Prepend(lines []string, rawTags []string) []string {
	normalized := Normalize(rawTags)
	if len(normalized) == 0 {
		return lines
	}

	block := struct {
		Tags []string `yaml:"tags"`
	}{Tags: normalized}

	var buf strings.Builder

	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)

	// Encoding a []string cannot fail.
	_ = enc.Encode(block)
	_ = enc.Close()

	frontmatter := []string{frontmatterDelimiter}
	frontmatter = append(frontmatter, strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")...)
	frontmatter = append(frontmatter, frontmatterDelimiter, "")

	return append(frontmatter, lines...)
}
