package inbox

import (
	"errors"
	"fmt"
	"time"

	"lifeplanner/internal/goal"
	"lifeplanner/internal/issue"
	"lifeplanner/internal/task"
	"lifeplanner/internal/weekly"
)

// ErrItemNotFound is returned when a triage targets an unknown inbox item.
var ErrItemNotFound = errors.New("inbox item not found")

// Triage fans captured inbox items out to the other planner documents.
// Every successful triage consumes the item: it is marked with its
// destination and garbage-collected on the next reconciling load.
type Triage struct {
	inbox  *Service
	goals  *goal.Service
	tasks  *task.Service
	issues *issue.Service
	weekly *weekly.Service
	now    func() time.Time
}

// NewTriage wires a triage over the given services.
func NewTriage(inbox *Service, goals *goal.Service, tasks *task.Service, issues *issue.Service, weeklySvc *weekly.Service) *Triage {
	return &Triage{
		inbox:  inbox,
		goals:  goals,
		tasks:  tasks,
		issues: issues,
		weekly: weeklySvc,
		now:    time.Now,
	}
}

// ToGoal turns an inbox item into a goal at the given level.
func (t *Triage) ToGoal(itemID string, level goal.Level) error {
	item, err := t.find(itemID)
	if err != nil {
		return err
	}

	_, err = t.goals.Add(level, item.Content)
	if err != nil {
		return err
	}

	return t.inbox.MarkTriaged(itemID, DestGoal)
}

// ToTask turns an inbox item into a task carved out of the named goal.
func (t *Triage) ToTask(itemID, goalTitle string) error {
	item, err := t.find(itemID)
	if err != nil {
		return err
	}

	_, err = t.tasks.Add(goalTitle, item.Content)
	if err != nil {
		return err
	}

	return t.inbox.MarkTriaged(itemID, DestTask)
}

// ToWeekly appends an inbox item to the current week's action plan.
func (t *Triage) ToWeekly(itemID string) error {
	item, err := t.find(itemID)
	if err != nil {
		return err
	}

	err = t.weekly.AppendAction(t.now(), item.Content)
	if err != nil {
		return err
	}

	return t.inbox.MarkTriaged(itemID, DestWeekly)
}

// ToIssue turns an inbox item into a fresh backlog issue.
func (t *Triage) ToIssue(itemID string) error {
	item, err := t.find(itemID)
	if err != nil {
		return err
	}

	_, err = t.issues.Add(issue.Issue{Title: item.Content})
	if err != nil {
		return err
	}

	return t.inbox.MarkTriaged(itemID, DestIssue)
}

func (t *Triage) find(itemID string) (Item, error) {
	items, err := t.inbox.LoadAndReconcile()
	if err != nil {
		return Item{}, err
	}

	idx := indexOf(items, itemID)
	if idx == -1 {
		return Item{}, fmt.Errorf("%w: %s", ErrItemNotFound, itemID)
	}

	return items[idx], nil
}
