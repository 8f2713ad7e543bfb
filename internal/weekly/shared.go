package weekly

import (
	"regexp"
	"strings"

	"lifeplanner/internal/tags"
)

// Shared is the cross-week carry-over document: habit titles, role
// headings and the month-keyed theme map.
type Shared struct {
	Routines    []Routine
	Roles       []string
	MonthThemes map[string]string
}

// NewShared returns an empty shared document with the theme map present.
func NewShared() Shared {
	return Shared{MonthThemes: make(map[string]string)}
}

const (
	sharedTitle        = "# 週間共有"
	sectionMonthThemes = "月間テーマ"
)

var monthThemePattern = regexp.MustCompile(`^-\s*([0-9]{4}-[0-9]{2})\s*:\s*(.+)$`)

// ParseShared extracts the shared document. Theme lines that do not
// carry a "YYYY-MM:" key are skipped.
func ParseShared(content string) Shared {
	shared := NewShared()

	currentSection := ""

	for _, line := range strings.Split(content, "\n") {
		if strings.HasPrefix(line, "## ") {
			currentSection = strings.TrimSpace(strings.TrimPrefix(line, "## "))

			continue
		}

		switch currentSection {
		case sectionRoutines:
			if routine, ok := parseRoutineRow(line); ok {
				shared.Routines = append(shared.Routines, routine)
			}
		case sectionRoles:
			if match := headingPattern.FindStringSubmatch(line); match != nil {
				if role := strings.TrimSpace(match[1]); role != "" {
					shared.Roles = append(shared.Roles, role)
				}
			}
		case sectionMonthThemes:
			if match := monthThemePattern.FindStringSubmatch(line); match != nil {
				shared.MonthThemes[match[1]] = strings.TrimSpace(match[2])
			}
		}
	}

	return shared
}

// SerializeShared renders the shared document. Month themes emit in
// sorted key order so the file is deterministic.
func SerializeShared(shared Shared, defaultTags []string) string {
	lines := []string{
		sharedTitle,
		"",
		"## " + sectionRoutines,
		"",
	}

	lines = append(lines, routineTableLines(shared.Routines)...)

	lines = append(lines, "", "## "+sectionRoles, "")

	if len(shared.Roles) == 0 {
		lines = append(lines, "### 役割1", "")
	} else {
		for _, role := range shared.Roles {
			lines = append(lines, "### "+role, "")
		}
	}

	lines = append(lines, "## "+sectionMonthThemes, "")

	if len(shared.MonthThemes) == 0 {
		lines = append(lines, "- ")
	} else {
		for _, key := range sortedMonthKeys(shared.MonthThemes) {
			lines = append(lines, "- "+key+": "+shared.MonthThemes[key])
		}
	}

	lines = append(lines, "")

	return strings.Join(tags.Prepend(lines, defaultTags), "\n")
}
