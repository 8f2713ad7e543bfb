package section

import (
	"strings"

	"lifeplanner/internal/tags"
)

// ParseTable extracts the rows of the first pipe table in content.
// The header and separator rows are dropped; each remaining table line
// becomes one row of trimmed cells (the empty fields produced by the
// leading and trailing pipes are discarded). Rows that end up with zero
// cells are skipped. Column order is preserved.
func ParseTable(content string) [][]string {
	var tableLines []string

	for _, line := range strings.Split(content, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "|") {
			tableLines = append(tableLines, line)
		}
	}

	if len(tableLines) < 2 {
		return nil
	}

	var rows [][]string

	for _, line := range tableLines[2:] {
		cells := SplitTableRow(line)
		if len(cells) == 0 {
			continue
		}

		rows = append(rows, cells)
	}

	return rows
}

// SplitTableRow splits a single pipe-table line into trimmed cells,
// dropping the empty leading and trailing fields.
func SplitTableRow(line string) []string {
	fields := strings.Split(line, "|")

	cells := make([]string, 0, len(fields))
	for idx, field := range fields {
		if idx == 0 || idx == len(fields)-1 {
			continue
		}

		cells = append(cells, strings.TrimSpace(field))
	}

	return cells
}

// SerializeTable renders a single-table document: "# <title>", a header
// row, a "---" separator row, then one row per data row. Missing cells
// render as empty strings. Zero rows still emit one blank-cell row so the
// table stays well-formed.
func SerializeTable(title string, columns []string, rows [][]string, defaultTags []string) string {
	lines := []string{"# " + title, ""}

	lines = append(lines, "| "+strings.Join(columns, " | ")+" |")

	separators := make([]string, len(columns))
	for idx := range separators {
		separators[idx] = "---"
	}

	lines = append(lines, "| "+strings.Join(separators, " | ")+" |")

	if len(rows) == 0 {
		blanks := make([]string, len(columns))
		lines = append(lines, "| "+strings.Join(blanks, " | ")+" |")
	} else {
		for _, row := range rows {
			cells := make([]string, len(columns))
			for idx := range columns {
				if idx < len(row) {
					cells[idx] = row[idx]
				}
			}

			lines = append(lines, "| "+strings.Join(cells, " | ")+" |")
		}
	}

	lines = append(lines, "")

	return strings.Join(tags.Prepend(lines, defaultTags), "\n")
}
