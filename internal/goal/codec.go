package goal

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"lifeplanner/internal/tags"
)

// Document grammar. Level headings carry a "目標" suffix ("## 週間目標");
// goal records are "### <title>" followed by fixed-prefix field lines.
const (
	docTitle           = "# 目標ゴール"
	levelHeadingSuffix = "目標"

	fieldID       = "ID:"
	fieldParent   = "親:"
	fieldDue      = "期限:"
	fieldExpanded = "展開:"
	fieldOrder    = "順序:"
)

var (
	levelPattern  = regexp.MustCompile(`^##\s+(.+)$`)
	recordPattern = regexp.MustCompile(`^###\s+(.+)$`)
	legacyPattern = regexp.MustCompile(`^-\s*(.+)$`)
)

// Parse extracts goals from document text in two passes.
//
// Pass 1 scans line by line, building the flat goal list plus a pending
// parent-reference side table keyed by record index. The reference cannot
// be resolved inline: it may be an ID or a legacy title, and the referenced
// goal's own ID line may appear later in the document than the reference.
//
// Pass 2 resolves the side table against the finished by-ID and by-title
// indexes. Dangling references resolve to no parent (the goal is a root).
func Parse(content string) []Goal {
	var goals []Goal

	pendingParents := make(map[int]string)

	var currentLevel Level

	current := -1 // index into goals of the open record, -1 if none

	flushOpen := func() {
		current = -1
	}

	for _, line := range strings.Split(content, "\n") {
		if match := levelPattern.FindStringSubmatch(line); match != nil {
			raw := strings.TrimSpace(match[1])
			normalized := Level(strings.TrimSuffix(raw, levelHeadingSuffix))

			if IsValidLevel(normalized) {
				currentLevel = normalized
			} else {
				currentLevel = ""
			}

			flushOpen()

			continue
		}

		if match := recordPattern.FindStringSubmatch(line); match != nil {
			if currentLevel == "" {
				flushOpen()

				continue
			}

			goals = append(goals, Goal{
				ID:     NewID(),
				Title:  strings.TrimSpace(match[1]),
				Level:  currentLevel,
				Status: StatusActive,
			})
			current = len(goals) - 1

			continue
		}

		// Legacy flat list: "- <title>" directly under a level heading.
		if current == -1 && currentLevel != "" {
			if match := legacyPattern.FindStringSubmatch(line); match != nil {
				title := strings.TrimSpace(match[1])
				if title == "" {
					continue
				}

				goals = append(goals, Goal{
					ID:     fmt.Sprintf("%s-%s", currentLevel, title),
					Title:  title,
					Level:  currentLevel,
					Status: StatusActive,
				})
			}

			continue
		}

		if current == -1 {
			continue
		}

		goal := &goals[current]

		switch {
		case strings.HasPrefix(line, fieldID):
			if id := strings.TrimSpace(strings.TrimPrefix(line, fieldID)); id != "" {
				goal.ID = id
			}
		case strings.HasPrefix(line, fieldParent):
			if ref := strings.TrimSpace(strings.TrimPrefix(line, fieldParent)); ref != "" {
				pendingParents[current] = ref
			}
		case strings.HasPrefix(line, fieldDue):
			goal.DueDate = strings.TrimSpace(strings.TrimPrefix(line, fieldDue))
		case strings.HasPrefix(line, fieldExpanded):
			raw := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(line, fieldExpanded)))
			expanded := raw == "true"
			goal.Expanded = &expanded
		case strings.HasPrefix(line, fieldOrder):
			raw := strings.TrimSpace(strings.TrimPrefix(line, fieldOrder))
			if order, err := strconv.Atoi(raw); err == nil {
				goal.Order = order
			}
		default:
			appendDescription(goal, line)
		}
	}

	resolveParents(goals, pendingParents)

	return goals
}

// appendDescription accumulates a non-empty body line into the record's
// description. The "-" placeholder emitted for empty descriptions is
// skipped so an empty description round-trips.
func appendDescription(goal *Goal, line string) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || trimmed == "-" {
		return
	}

	if goal.Description == "" {
		goal.Description = trimmed
	} else {
		goal.Description += "\n" + trimmed
	}
}

func resolveParents(goals []Goal, pendingParents map[int]string) {
	if len(pendingParents) == 0 {
		return
	}

	byID := make(map[string]int, len(goals))
	byTitle := make(map[string]int, len(goals))

	for idx, goal := range goals {
		if _, ok := byID[goal.ID]; !ok {
			byID[goal.ID] = idx
		}

		if _, ok := byTitle[goal.Title]; !ok {
			byTitle[goal.Title] = idx
		}
	}

	for idx, ref := range pendingParents {
		if parentIdx, ok := byID[ref]; ok {
			goals[idx].ParentGoalID = goals[parentIdx].ID

			continue
		}

		if parentIdx, ok := byTitle[ref]; ok {
			goals[idx].ParentGoalID = goals[parentIdx].ID
		}
	}
}

// CountIDLines counts "ID:" field lines in document text. Fewer ID lines
// than parsed goals means some goals came from the legacy flat-list format
// and the document needs a canonical rewrite.
func CountIDLines(content string) int {
	count := 0

	for _, line := range strings.Split(content, "\n") {
		if strings.HasPrefix(line, fieldID) {
			count++
		}
	}

	return count
}

// Serialize renders the goals document. Levels are emitted in fixed rank
// order regardless of input order; within a level, goals sort by
// (parent, order, title) so sibling groups stay contiguous.
func Serialize(goals []Goal, defaultTags []string) string {
	lines := []string{docTitle, ""}

	for _, level := range Levels {
		lines = append(lines, "## "+string(level)+levelHeadingSuffix)

		var levelGoals []Goal

		for _, goal := range goals {
			if goal.Level == level {
				levelGoals = append(levelGoals, goal)
			}
		}

		if len(levelGoals) == 0 {
			lines = append(lines, "")
		} else {
			sort.SliceStable(levelGoals, func(i, j int) bool {
				a, b := levelGoals[i], levelGoals[j]
				if a.ParentGoalID != b.ParentGoalID {
					return a.ParentGoalID < b.ParentGoalID
				}

				if orderKey(a) != orderKey(b) {
					return orderKey(a) < orderKey(b)
				}

				return a.Title < b.Title
			})

			for _, goal := range levelGoals {
				lines = append(lines, serializeGoal(goal)...)
			}
		}

		lines = append(lines, "")
	}

	return strings.Join(tags.Prepend(lines, defaultTags), "\n")
}

func serializeGoal(goal Goal) []string {
	lines := []string{
		"### " + goal.Title,
		fieldID + " " + goal.ID,
	}

	if goal.ParentGoalID != "" {
		lines = append(lines, fieldParent+" "+goal.ParentGoalID)
	}

	if goal.DueDate != "" {
		lines = append(lines, fieldDue+" "+goal.DueDate)
	}

	if goal.Expanded != nil {
		lines = append(lines, fieldExpanded+" "+strconv.FormatBool(*goal.Expanded))
	}

	if goal.Order != 0 {
		lines = append(lines, fieldOrder+" "+strconv.Itoa(goal.Order))
	}

	if goal.Description != "" {
		lines = append(lines, goal.Description)
	} else {
		lines = append(lines, "- ")
	}

	lines = append(lines, "")

	return lines
}

// orderKey sorts unassigned orders last.
func orderKey(goal Goal) int {
	if goal.Order == 0 {
		return int(^uint(0) >> 1)
	}

	return goal.Order
}
