package vault

import (
	"fmt"
	"strings"
	"time"
)

// DocPrefix is the shared filename prefix for all planner documents.
const DocPrefix = "LifePlanner"

// DocType names a fixed-purpose planner document.
type DocType string

// Fixed-purpose document types. Week-scoped documents use [WeeklyPlanPath].
const (
	DocWeeklyShared DocType = "Weekly Shared"
	DocIssues       DocType = "Issues"
	DocMission      DocType = "Mission"
	DocValues       DocType = "Values"
	DocHaveDoBe     DocType = "Have Do Be"
	DocPromise      DocType = "Promise"
	DocQuotes       DocType = "Quotes"
	DocGoals        DocType = "Goals"
	DocTasks        DocType = "Tasks"
	DocInbox        DocType = "Inbox"
	DocExercises    DocType = "Exercises"
)

// WeekStart selects which weekday begins a week.
type WeekStart string

const (
	WeekStartMonday WeekStart = "monday"
	WeekStartSunday WeekStart = "sunday"
)

// DocPath resolves a fixed-purpose document to its vault-relative path:
// "<baseDir>/LifePlanner - <Type>.md".
func DocPath(docType DocType, baseDir string) string {
	dir := normalizeBaseDir(baseDir)
	filename := fmt.Sprintf("%s - %s.md", DocPrefix, docType)

	if dir == "" {
		return filename
	}

	return dir + "/" + filename
}

// WeeklyPlanPath resolves the canonical path for the week containing day.
// Canonical weekly filenames are always keyed by the week's Monday,
// regardless of the configured week start.
func WeeklyPlanPath(day time.Time, baseDir string) string {
	return weeklyPathFor(WeekStartDate(day, WeekStartMonday), baseDir)
}

// LegacyWeeklyPlanPath resolves the pre-normalization path that keyed the
// filename by the literal configured week start. Kept so old vaults still
// open: callers fall back to this path when the canonical file is missing.
func LegacyWeeklyPlanPath(day time.Time, start WeekStart, baseDir string) string {
	return weeklyPathFor(WeekStartDate(day, start), baseDir)
}

func weeklyPathFor(weekStart time.Time, baseDir string) string {
	dir := normalizeBaseDir(baseDir)
	filename := fmt.Sprintf("%s - Weekly - %s.md", DocPrefix, weekStart.Format("2006-01-02"))

	if dir == "" {
		return filename
	}

	return dir + "/" + filename
}

// WeekStartDate returns the most recent configured week-start day on or
// before day, at midnight in day's location.
func WeekStartDate(day time.Time, start WeekStart) time.Time {
	startIndex := 1 // Monday
	if start == WeekStartSunday {
		startIndex = 0
	}

	diff := (int(day.Weekday()) - startIndex + 7) % 7

	d := day.AddDate(0, 0, -diff)

	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, d.Location())
}

// MonthKey formats day as the "YYYY-MM" key used by the month-theme map.
func MonthKey(day time.Time) string {
	return day.Format("2006-01")
}

// WeekLabel renders the display label for a week, e.g. "2026年 1月 第3週".
// The week number counts from the first configured week start on or before
// the first of the month.
func WeekLabel(weekStart time.Time, start WeekStart) string {
	firstOfMonth := time.Date(weekStart.Year(), weekStart.Month(), 1, 0, 0, 0, 0, weekStart.Location())
	firstWeekStart := WeekStartDate(firstOfMonth, start)

	week := int(weekStart.Sub(firstWeekStart).Hours()/(7*24)) + 1

	return fmt.Sprintf("%d年 %d月 第%d週", weekStart.Year(), int(weekStart.Month()), week)
}

func normalizeBaseDir(value string) string {
	return strings.Trim(strings.TrimSpace(value), "/")
}
