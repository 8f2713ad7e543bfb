// Package template creates dated planner documents from the vault's
// template catalog. Template bodies live under "<baseDir>/Templates";
// each created copy lands in its category folder with a filename suffix
// keyed by date according to the template kind.
package template

import "slices"

// Category groups catalog entries for display and picks the folder the
// created document lands in.
type Category string

const (
	CategoryPlans     Category = "Plans"
	CategoryGoals     Category = "Goals"
	CategoryExercises Category = "Exercises"
	CategoryLogs      Category = "Logs"
)

// Kind selects the date suffix appended to a created document's name.
type Kind string

const (
	KindWeekly    Kind = "weekly"
	KindDaily     Kind = "daily"
	KindMonthly   Kind = "monthly"
	KindAnnual    Kind = "annual"
	KindQuarterly Kind = "quarterly"
	KindFiveYear  Kind = "five-year"
	KindDated     Kind = "dated"
)

// Entry is one catalog template. Filename names the source document
// under the Templates folder; Label becomes the created file's base name.
type Entry struct {
	Key      string
	Category Category
	Label    string
	Filename string
	Folder   string
	Kind     Kind
}

var catalog = []Entry{
	{"weekly-plan", CategoryPlans, "Weekly Plan (Vertical)", "LifePlanner - Weekly Plan (Vertical).md", "Plans", KindWeekly},
	{"daily-plan", CategoryPlans, "Daily Plan", "LifePlanner - Daily Plan.md", "Plans", KindDaily},
	{"monthly-plan", CategoryPlans, "Monthly Plan", "LifePlanner - Monthly Plan.md", "Plans", KindMonthly},
	{"goal-setup", CategoryGoals, "Goal Setup", "LifePlanner - Goal Setup.md", "Goals", KindDated},
	{"quarterly-goals", CategoryGoals, "Quarterly Goals", "LifePlanner - Quarterly Goals.md", "Goals", KindQuarterly},
	{"annual-goals", CategoryGoals, "Annual Goals", "LifePlanner - Annual Goals.md", "Goals", KindAnnual},
	{"five-year-plan", CategoryGoals, "Five-Year Plan", "LifePlanner - Five-Year Plan.md", "Goals", KindFiveYear},
	{"self-analysis", CategoryExercises, "Self Analysis", "LifePlanner - Self Analysis.md", "Exercises", KindDated},
	{"bucket-list", CategoryExercises, "Bucket List", "LifePlanner - Bucket List.md", "Exercises", KindDated},
	{"reading-log", CategoryExercises, "Reading Log", "LifePlanner - Reading Log.md", "Exercises", KindDated},
	{"motto", CategoryExercises, "Motto", "LifePlanner - Motto.md", "Exercises", KindDated},
	{"promise-list", CategoryExercises, "Promise List", "LifePlanner - Promise List.md", "Exercises", KindDated},
	{"inbox", CategoryLogs, "Inbox", "LifePlanner - Inbox.md", "Logs", KindDated},
}

// Catalog returns the built-in templates in display order, grouped by
// category.
func Catalog() []Entry {
	return slices.Clone(catalog)
}

// Lookup finds a catalog entry by key.
func Lookup(key string) (Entry, bool) {
	for _, entry := range catalog {
		if entry.Key == key {
			return entry, true
		}
	}

	return Entry{}, false
}
