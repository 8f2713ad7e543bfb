// Package weekly implements the per-week plan document and the shared
// carry-over document that seeds it.
//
// A weekly plan is one file per week holding the month theme, a routine
// habit table, role focus lists, an action checklist, the week's
// reflection and per-day memos. The shared document carries routines,
// roles and month themes across weeks: new plans are seeded from it and
// every plan save propagates back into it.
package weekly

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"lifeplanner/internal/section"
	"lifeplanner/internal/tags"
)

// Days is the fixed weekday vocabulary of the plan document, Monday
// first. RoutineDays is the habit-table subset (Sunday is excluded).
var (
	Days        = []string{"月", "火", "水", "木", "金", "土", "日"}
	RoutineDays = []string{"月", "火", "水", "木", "金", "土"}
)

// Routine is one habit row with a checkbox per routine day.
type Routine struct {
	Title  string
	Checks map[string]bool
}

// RoleGoals is one role heading with its focus entries.
type RoleGoals struct {
	Role  string
	Goals []string
}

// ActionItem is one action-plan checklist entry.
type ActionItem struct {
	Title string
	Done  bool
}

// Plan is one week's plan document.
type Plan struct {
	WeekLabel        string
	MonthTheme       string
	Routines         []Routine
	Roles            []RoleGoals
	ActionPlans      []ActionItem
	ReflectionGood   []string
	ReflectionIssues []string
	DailyMemos       map[string][]string
}

// NewPlan returns an empty plan with every day's memo list present.
func NewPlan() Plan {
	memos := make(map[string][]string, len(Days))
	for _, day := range Days {
		memos[day] = nil
	}

	return Plan{DailyMemos: memos}
}

const (
	planTitle          = "# 週間計画"
	weekLabelPrefix    = "週表示:"
	sectionTheme       = "今月のテーマ"
	sectionRoutines    = "ルーティン行動"
	sectionRoles       = "役割と重点タスク"
	sectionActionPlan  = "アクションプラン"
	sectionReflection  = "今週の振り返り"
	sectionDailyMemos  = "日付ごとの一言メモ欄"
	reflectionGoodHead = "### 良かったこと"
	reflectionIssue    = "### 課題"
	routineTableHeader = "行動"
)

var (
	bulletPattern     = regexp.MustCompile(`^-\s*(.+)$`)
	headingPattern    = regexp.MustCompile(`^###\s+(.+)$`)
	actionItemPattern = regexp.MustCompile(`^-\s*\[( |x)\]\s*(.+)$`)
	memoDayPattern    = regexp.MustCompile(`^###\s+([月火水木金土日])$`)
)

// ParsePlan extracts a weekly plan from document text. Unknown sections
// and malformed lines are skipped.
func ParsePlan(content string) Plan {
	plan := NewPlan()

	currentSection := ""
	reflectionTarget := ""
	memoDay := ""

	var currentRole *RoleGoals

	flushRole := func() {
		if currentRole != nil {
			plan.Roles = append(plan.Roles, *currentRole)
			currentRole = nil
		}
	}

	for _, line := range strings.Split(content, "\n") {
		if strings.HasPrefix(line, "## ") {
			flushRole()

			currentSection = strings.TrimSpace(strings.TrimPrefix(line, "## "))
			reflectionTarget = ""
			memoDay = ""

			continue
		}

		if strings.HasPrefix(line, weekLabelPrefix) {
			plan.WeekLabel = strings.TrimSpace(strings.TrimPrefix(line, weekLabelPrefix))

			continue
		}

		switch currentSection {
		case sectionTheme:
			if match := bulletPattern.FindStringSubmatch(line); match != nil {
				if theme := strings.TrimSpace(match[1]); theme != "" {
					plan.MonthTheme = theme
				}
			}
		case sectionRoutines:
			if routine, ok := parseRoutineRow(line); ok {
				plan.Routines = append(plan.Routines, routine)
			}
		case sectionRoles:
			if match := headingPattern.FindStringSubmatch(line); match != nil {
				flushRole()

				currentRole = &RoleGoals{Role: strings.TrimSpace(match[1])}

				continue
			}

			if match := bulletPattern.FindStringSubmatch(line); match != nil && currentRole != nil {
				if goal := strings.TrimSpace(match[1]); goal != "" {
					currentRole.Goals = append(currentRole.Goals, goal)
				}
			}
		case sectionActionPlan:
			if match := actionItemPattern.FindStringSubmatch(line); match != nil {
				if title := strings.TrimSpace(match[2]); title != "" {
					plan.ActionPlans = append(plan.ActionPlans, ActionItem{
						Title: title,
						Done:  match[1] == "x",
					})
				}
			}
		case sectionReflection:
			switch {
			case strings.HasPrefix(line, reflectionGoodHead):
				reflectionTarget = "good"
			case strings.HasPrefix(line, reflectionIssue):
				reflectionTarget = "issue"
			default:
				match := bulletPattern.FindStringSubmatch(line)
				if match == nil {
					continue
				}

				entry := strings.TrimSpace(match[1])
				if entry == "" {
					continue
				}

				if reflectionTarget == "good" {
					plan.ReflectionGood = append(plan.ReflectionGood, entry)
				} else if reflectionTarget == "issue" {
					plan.ReflectionIssues = append(plan.ReflectionIssues, entry)
				}
			}
		case sectionDailyMemos:
			if match := memoDayPattern.FindStringSubmatch(line); match != nil {
				memoDay = match[1]

				continue
			}

			if match := bulletPattern.FindStringSubmatch(line); match != nil && memoDay != "" {
				if memo := strings.TrimSpace(match[1]); memo != "" {
					plan.DailyMemos[memoDay] = append(plan.DailyMemos[memoDay], memo)
				}
			}
		}
	}

	flushRole()

	return plan
}

// parseRoutineRow reads one habit-table line. Header, separator and
// title-less rows report false.
func parseRoutineRow(line string) (Routine, bool) {
	if !strings.HasPrefix(strings.TrimSpace(line), "|") {
		return Routine{}, false
	}

	cells := section.SplitTableRow(line)
	if len(cells) < 2 {
		return Routine{}, false
	}

	title := cells[0]
	if title == "" || title == routineTableHeader || title == "---" {
		return Routine{}, false
	}

	checks := make(map[string]bool, len(RoutineDays))

	for idx, day := range RoutineDays {
		cell := ""
		if idx+1 < len(cells) {
			cell = cells[idx+1]
		}

		checks[day] = strings.Contains(cell, "[x]")
	}

	return Routine{Title: title, Checks: checks}, true
}

// SerializePlan renders a weekly plan in the fixed section order. Empty
// collections emit their editable placeholders.
func SerializePlan(plan Plan, defaultTags []string) string {
	lines := []string{
		planTitle,
		"",
		weekLabelPrefix + " " + plan.WeekLabel,
		"",
		"## " + sectionTheme,
		"",
	}

	if plan.MonthTheme != "" {
		lines = append(lines, "- "+plan.MonthTheme)
	} else {
		lines = append(lines, "- ")
	}

	lines = append(lines, "", "## "+sectionRoutines, "")
	lines = append(lines, routineTableLines(plan.Routines)...)

	lines = append(lines, "", "## "+sectionRoles, "")

	if len(plan.Roles) == 0 {
		lines = append(lines, "### 役割1", "- ", "")
	} else {
		for _, role := range plan.Roles {
			lines = append(lines, "### "+role.Role)

			if len(role.Goals) == 0 {
				lines = append(lines, "- ")
			} else {
				for _, goal := range role.Goals {
					lines = append(lines, "- "+goal)
				}
			}

			lines = append(lines, "")
		}
	}

	lines = append(lines, "## "+sectionActionPlan, "")

	if len(plan.ActionPlans) == 0 {
		lines = append(lines, "- [ ] ")
	} else {
		for _, item := range plan.ActionPlans {
			checked := "[ ]"
			if item.Done {
				checked = "[x]"
			}

			lines = append(lines, fmt.Sprintf("- %s %s", checked, item.Title))
		}
	}

	lines = append(lines, "## "+sectionReflection, "", reflectionGoodHead)
	lines = append(lines, bulletLines(plan.ReflectionGood)...)
	lines = append(lines, "", reflectionIssue)
	lines = append(lines, bulletLines(plan.ReflectionIssues)...)

	lines = append(lines, "", "## "+sectionDailyMemos, "")

	for _, day := range Days {
		lines = append(lines, "### "+day)
		lines = append(lines, bulletLines(plan.DailyMemos[day])...)
		lines = append(lines, "")
	}

	return strings.Join(tags.Prepend(lines, defaultTags), "\n")
}

func routineTableLines(routines []Routine) []string {
	separators := make([]string, len(RoutineDays))
	for idx := range separators {
		separators[idx] = "---"
	}

	lines := []string{
		"| " + routineTableHeader + " | " + strings.Join(RoutineDays, " | ") + " |",
		"| --- | " + strings.Join(separators, " | ") + " |",
	}

	if len(routines) == 0 {
		cells := make([]string, len(RoutineDays))
		for idx := range cells {
			cells[idx] = "[ ]"
		}

		lines = append(lines, "|  | "+strings.Join(cells, " | ")+" |")

		return lines
	}

	for _, routine := range routines {
		cells := make([]string, len(RoutineDays))

		for idx, day := range RoutineDays {
			if routine.Checks[day] {
				cells[idx] = "[x]"
			} else {
				cells[idx] = "[ ]"
			}
		}

		lines = append(lines, "| "+routine.Title+" | "+strings.Join(cells, " | ")+" |")
	}

	return lines
}

func bulletLines(entries []string) []string {
	if len(entries) == 0 {
		return []string{"- "}
	}

	lines := make([]string, 0, len(entries))
	for _, entry := range entries {
		lines = append(lines, "- "+entry)
	}

	return lines
}

func sortedMonthKeys(themes map[string]string) []string {
	keys := make([]string, 0, len(themes))
	for key := range themes {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	return keys
}
