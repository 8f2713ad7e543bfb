package goal

import (
	"fmt"
	"strings"
	"time"

	"lifeplanner/internal/vault"
)

// Repository is the storage contract the goal service needs.
type Repository interface {
	Read(path string) (string, error)
	Write(path, content string) error
}

// Service manages the goals document.
type Service struct {
	repo        Repository
	baseDir     string
	defaultTags []string
	now         func() time.Time
}

// NewService returns a goal service over the given repository.
func NewService(repo Repository, baseDir string, defaultTags []string) *Service {
	return &Service{repo: repo, baseDir: baseDir, defaultTags: defaultTags, now: time.Now}
}

func (s *Service) path() string {
	return vault.DocPath(vault.DocGoals, s.baseDir)
}

// List parses the goals document as stored, without touching the file.
func (s *Service) List() ([]Goal, error) {
	content, err := s.repo.Read(s.path())
	if err != nil {
		return nil, err
	}

	if content == "" {
		return nil, nil
	}

	return Parse(content), nil
}

// LoadAndReconcile loads the goals and heals the document on the way.
// A missing document is seeded with the empty skeleton. A document with
// fewer ID lines than goals contains legacy flat-list entries and is
// rewritten in the canonical record format.
func (s *Service) LoadAndReconcile() ([]Goal, error) {
	content, err := s.repo.Read(s.path())
	if err != nil {
		return nil, err
	}

	if content == "" {
		saveErr := s.Save(nil)
		if saveErr != nil {
			return nil, saveErr
		}

		return nil, nil
	}

	goals := Parse(content)

	if CountIDLines(content) < len(goals) {
		saveErr := s.Save(goals)
		if saveErr != nil {
			return nil, saveErr
		}
	}

	return goals, nil
}

// Tree loads the goals and arranges them into the display forest.
func (s *Service) Tree() ([]*Node, error) {
	goals, err := s.LoadAndReconcile()
	if err != nil {
		return nil, err
	}

	return BuildTree(goals), nil
}

// Add creates a goal at the given level and appends it to the end of the
// root sibling group of that level.
func (s *Service) Add(level Level, title string) (Goal, error) {
	if !IsValidLevel(level) {
		return Goal{}, fmt.Errorf("unknown goal level %q", level)
	}

	title = strings.TrimSpace(title)
	if title == "" {
		return Goal{}, fmt.Errorf("goal title must not be empty")
	}

	goals, err := s.LoadAndReconcile()
	if err != nil {
		return Goal{}, err
	}

	goal := Goal{
		ID:     s.uniqueID(goals),
		Title:  title,
		Level:  level,
		Status: StatusActive,
		Order:  nextRootOrder(goals, level),
	}

	goals = append(goals, goal)

	saveErr := s.Save(goals)
	if saveErr != nil {
		return Goal{}, saveErr
	}

	return goal, nil
}

// Update describes a partial goal edit. Nil fields keep their value.
type Update struct {
	Title        *string
	Description  *string
	DueDate      *string
	Expanded     *bool
	ParentGoalID *string
}

// Update applies a partial edit to the goal with the given ID.
func (s *Service) Update(goalID string, update Update) (Goal, error) {
	goals, err := s.LoadAndReconcile()
	if err != nil {
		return Goal{}, err
	}

	idx := indexOf(goals, goalID)
	if idx == -1 {
		return Goal{}, fmt.Errorf("%w: %s", ErrGoalNotFound, goalID)
	}

	goal := &goals[idx]

	if update.Title != nil {
		goal.Title = strings.TrimSpace(*update.Title)
	}

	if update.Description != nil {
		goal.Description = *update.Description
	}

	if update.DueDate != nil {
		goal.DueDate = *update.DueDate
	}

	if update.Expanded != nil {
		expanded := *update.Expanded
		goal.Expanded = &expanded
	}

	if update.ParentGoalID != nil {
		goal.ParentGoalID = *update.ParentGoalID
	}

	saveErr := s.Save(goals)
	if saveErr != nil {
		return Goal{}, saveErr
	}

	return *goal, nil
}

// Delete removes a goal. Its children become roots of their own levels;
// their parent references are cleared rather than re-pointed.
func (s *Service) Delete(goalID string) error {
	goals, err := s.LoadAndReconcile()
	if err != nil {
		return err
	}

	remaining := make([]Goal, 0, len(goals))

	for _, goal := range goals {
		if goal.ID == goalID {
			continue
		}

		if goal.ParentGoalID == goalID {
			goal.ParentGoalID = ""
		}

		remaining = append(remaining, goal)
	}

	return s.Save(remaining)
}

// Move relocates a goal relative to a target and persists the result.
func (s *Service) Move(sourceID, targetID string, position MovePosition) error {
	goals, err := s.LoadAndReconcile()
	if err != nil {
		return err
	}

	moved, err := Move(goals, sourceID, targetID, position)
	if err != nil {
		return err
	}

	return s.Save(moved)
}

// MoveToRoot detaches a goal from its parent and persists the result.
func (s *Service) MoveToRoot(sourceID string) error {
	goals, err := s.LoadAndReconcile()
	if err != nil {
		return err
	}

	moved, err := MoveToRoot(goals, sourceID)
	if err != nil {
		return err
	}

	return s.Save(moved)
}

// Save rewrites the whole goals document.
func (s *Service) Save(goals []Goal) error {
	return s.repo.Write(s.path(), Serialize(goals, s.defaultTags))
}

// uniqueID generates an ID not already present in goals. Collisions only
// happen when the random suffix repeats within one millisecond, but the
// document is the source of truth, so check anyway.
func (s *Service) uniqueID(goals []Goal) string {
	for {
		id := newID(s.now())
		if indexOf(goals, id) == -1 {
			return id
		}
	}
}

func nextRootOrder(goals []Goal, level Level) int {
	max := 0

	for _, goal := range goals {
		if goal.Level == level && goal.ParentGoalID == "" && goal.Order > max {
			max = goal.Order
		}
	}

	return max + 1
}

func indexOf(goals []Goal, id string) int {
	for idx, goal := range goals {
		if goal.ID == id {
			return idx
		}
	}

	return -1
}
