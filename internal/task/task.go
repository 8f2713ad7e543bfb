// Package task implements the goal-derived task checklist document.
//
// Tasks live in the "## タスク" section as checklist lines tagged with the
// goal they were carved out of:
//
//	- [ ] [Ship v1] write the changelog
package task

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"lifeplanner/internal/tags"
	"lifeplanner/internal/vault"
)

// Status is the completion state of a task.
type Status string

const (
	StatusTodo Status = "todo"
	StatusDone Status = "done"
)

// Task is one checklist entry linked to a goal by title.
type Task struct {
	ID        string
	Title     string
	GoalTitle string
	Status    Status
}

const (
	docTitle       = "# 目標からタスク切り出し"
	sectionHeading = "## タスク"
)

var taskPattern = regexp.MustCompile(`^- \[(.| )\] \[(.+)\]\s*(.+)$`)

// Parse extracts tasks from the "## タスク" section. Checklist lines
// outside the section and lines without a goal tag are ignored. Task IDs
// are positional ("<goal>-N").
func Parse(content string) []Task {
	var tasks []Task

	inSection := false

	for _, line := range strings.Split(content, "\n") {
		if strings.HasPrefix(line, sectionHeading) {
			inSection = true

			continue
		}

		if strings.HasPrefix(line, "## ") {
			inSection = false
		}

		if !inSection {
			continue
		}

		match := taskPattern.FindStringSubmatch(line)
		if match == nil {
			continue
		}

		status := StatusTodo
		if strings.EqualFold(match[1], "x") {
			status = StatusDone
		}

		tasks = append(tasks, Task{
			ID:        fmt.Sprintf("%s-%d", match[2], len(tasks)),
			Title:     strings.TrimSpace(match[3]),
			GoalTitle: match[2],
			Status:    status,
		})
	}

	return tasks
}

// Serialize renders the tasks document. Zero tasks emit a single empty
// checklist placeholder so the file stays editable.
func Serialize(tasks []Task, defaultTags []string) string {
	lines := []string{
		docTitle,
		"",
		"## 目標",
		"- ",
		"",
		sectionHeading,
	}

	if len(tasks) == 0 {
		lines = append(lines, "- [ ] ")
	} else {
		for _, t := range tasks {
			checked := "[ ]"
			if t.Status == StatusDone {
				checked = "[x]"
			}

			lines = append(lines, fmt.Sprintf("- %s [%s] %s", checked, t.GoalTitle, t.Title))
		}
	}

	lines = append(lines, "")

	return strings.Join(tags.Prepend(lines, defaultTags), "\n")
}

// Repository is the storage contract the task service needs.
type Repository interface {
	Read(path string) (string, error)
	Write(path, content string) error
}

// Service manages the tasks document.
type Service struct {
	repo        Repository
	baseDir     string
	defaultTags []string
	now         func() time.Time
}

// NewService returns a task service over the given repository.
func NewService(repo Repository, baseDir string, defaultTags []string) *Service {
	return &Service{repo: repo, baseDir: baseDir, defaultTags: defaultTags, now: time.Now}
}

func (s *Service) path() string {
	return vault.DocPath(vault.DocTasks, s.baseDir)
}

// List parses the tasks document.
func (s *Service) List() ([]Task, error) {
	content, err := s.repo.Read(s.path())
	if err != nil {
		return nil, err
	}

	if content == "" {
		return nil, nil
	}

	return Parse(content), nil
}

// Add appends a task carved out of the named goal.
func (s *Service) Add(goalTitle, title string) (Task, error) {
	tasks, err := s.List()
	if err != nil {
		return Task{}, err
	}

	t := Task{
		ID:        fmt.Sprintf("%s-%d", goalTitle, s.now().UnixMilli()),
		Title:     title,
		GoalTitle: goalTitle,
		Status:    StatusTodo,
	}

	tasks = append(tasks, t)

	saveErr := s.Save(tasks)
	if saveErr != nil {
		return Task{}, saveErr
	}

	return t, nil
}

// Toggle flips a task's completion state. Unknown IDs are a no-op.
func (s *Service) Toggle(taskID string) error {
	tasks, err := s.List()
	if err != nil {
		return err
	}

	for idx := range tasks {
		if tasks[idx].ID != taskID {
			continue
		}

		if tasks[idx].Status == StatusDone {
			tasks[idx].Status = StatusTodo
		} else {
			tasks[idx].Status = StatusDone
		}

		return s.Save(tasks)
	}

	return nil
}

// Save rewrites the whole tasks document.
func (s *Service) Save(tasks []Task) error {
	return s.repo.Write(s.path(), Serialize(tasks, s.defaultTags))
}
