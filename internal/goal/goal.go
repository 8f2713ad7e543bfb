// Package goal implements the goal hierarchy document: a 7-level forest
// stored as nested markdown headings with explicit parent and order fields,
// plus the tree-build and drag-move algorithms that keep the forest
// consistent.
package goal

import (
	"fmt"
	"math/rand"
	"slices"
	"time"
)

// Level is one of the seven fixed goal granularities, broadest to
// narrowest. The values are the literal heading vocabulary of the
// document format.
type Level string

// The fixed level vocabulary, broad to narrow.
const (
	LevelLife      Level = "人生"
	LevelLongTerm  Level = "長期"
	LevelMidTerm   Level = "中期"
	LevelAnnual    Level = "年間"
	LevelQuarterly Level = "四半期"
	LevelMonthly   Level = "月間"
	LevelWeekly    Level = "週間"
)

// Levels is the rank order used for heading emission and parent checks.
var Levels = []Level{
	LevelLife,
	LevelLongTerm,
	LevelMidTerm,
	LevelAnnual,
	LevelQuarterly,
	LevelMonthly,
	LevelWeekly,
}

// Rank returns the position of level in the fixed order, or -1 for an
// unknown level. Lower rank means broader.
func Rank(level Level) int {
	return slices.Index(Levels, level)
}

// IsValidLevel reports whether level is part of the fixed vocabulary.
func IsValidLevel(level Level) bool {
	return Rank(level) >= 0
}

// Status is the lifecycle state of a goal. It is an in-memory attribute;
// the document format does not persist it, so loaded goals are active.
type Status string

const (
	StatusActive    Status = "active"
	StatusPaused    Status = "paused"
	StatusCompleted Status = "completed"
)

// Goal is one node of the hierarchy.
//
// Order is 1-based and unique among siblings sharing (Level, ParentGoalID);
// zero means "not assigned yet" and sorts last. Expanded is tri-state
// because absent and false serialize differently.
type Goal struct {
	ID           string
	Title        string
	Level        Level
	Status       Status
	Description  string
	Order        int
	DueDate      string
	Expanded     *bool
	ParentGoalID string
}

// NewID generates a goal ID from the current time plus a random suffix.
func NewID() string {
	return newID(time.Now())
}

func newID(now time.Time) string {
	return fmt.Sprintf("goal-%d-%d", now.UnixMilli(), rand.Intn(1000))
}
