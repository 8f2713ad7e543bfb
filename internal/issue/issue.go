// Package issue implements the kanban issues document.
//
// Issues are grouped under "## <status>" headings; each record is a
// "### <title>" heading followed by fixed-prefix metadata lines and a
// free-text body:
//
//	## Todo
//
//	### Fix the roof
//	ID: issue-1700000000000-1
//	Goal: goal-1700000000000-2
//	Tags: home, urgent
//	Due: 2026-09-30
//	Priority: High
//
//	Leaking near the chimney.
package issue

import (
	"fmt"
	"math/rand"
	"regexp"
	"strings"
	"time"

	"lifeplanner/internal/tags"
	"lifeplanner/internal/vault"
)

// Priority is the urgency of an issue.
type Priority string

const (
	PriorityLow    Priority = "Low"
	PriorityMedium Priority = "Medium"
	PriorityHigh   Priority = "High"
)

// DefaultStatus is the column assigned to records parsed outside any
// status heading, and to freshly captured issues.
const DefaultStatus = "Backlog"

// Issue is one kanban record. Status is a free-form column name.
type Issue struct {
	ID           string
	Title        string
	Status       string
	Body         string
	LinkedGoalID string
	Tags         []string
	DueDate      string
	Priority     Priority
}

var (
	statusPattern = regexp.MustCompile(`^##\s+(.+)$`)
	recordPattern = regexp.MustCompile(`^###\s+(.+)$`)
)

// NewID generates an issue ID from the current time.
func NewID() string {
	return fmt.Sprintf("issue-%d-%d", time.Now().UnixMilli(), rand.Intn(1000))
}

// Parse extracts issues from document text. Metadata lines are matched by
// their literal prefix; everything else accumulates into the body.
func Parse(content string) []Issue {
	var issues []Issue

	currentStatus := ""

	var current *Issue

	var bodyLines []string

	flush := func() {
		if current == nil {
			return
		}

		current.Body = normalizeBody(strings.Join(bodyLines, "\n"))
		issues = append(issues, *current)
		current = nil
		bodyLines = nil
	}

	for _, line := range strings.Split(content, "\n") {
		if match := statusPattern.FindStringSubmatch(line); match != nil {
			flush()

			currentStatus = strings.TrimSpace(match[1])

			continue
		}

		if match := recordPattern.FindStringSubmatch(line); match != nil {
			flush()

			status := currentStatus
			if status == "" {
				status = DefaultStatus
			}

			current = &Issue{ID: NewID(), Title: strings.TrimSpace(match[1]), Status: status}

			continue
		}

		if current == nil {
			continue
		}

		switch {
		case strings.HasPrefix(line, "ID:"):
			if id := strings.TrimSpace(strings.TrimPrefix(line, "ID:")); id != "" {
				current.ID = id
			}
		case strings.HasPrefix(line, "Goal:"):
			current.LinkedGoalID = strings.TrimSpace(strings.TrimPrefix(line, "Goal:"))
		case strings.HasPrefix(line, "Tags:"):
			current.Tags = splitTags(strings.TrimPrefix(line, "Tags:"))
		case strings.HasPrefix(line, "Due:"):
			current.DueDate = strings.TrimSpace(strings.TrimPrefix(line, "Due:"))
		case strings.HasPrefix(line, "Priority:"):
			current.Priority = Priority(strings.TrimSpace(strings.TrimPrefix(line, "Priority:")))
		default:
			bodyLines = append(bodyLines, line)
		}
	}

	flush()

	return issues
}

// Serialize renders the issues document. Records are grouped by status in
// first-seen order; each record's optional metadata lines are emitted only
// when present, and an empty body renders as a "- " placeholder.
func Serialize(issues []Issue, defaultTags []string) string {
	lines := []string{"# Issues", ""}

	var statusOrder []string

	grouped := make(map[string][]Issue)

	for _, is := range issues {
		if _, ok := grouped[is.Status]; !ok {
			statusOrder = append(statusOrder, is.Status)
		}

		grouped[is.Status] = append(grouped[is.Status], is)
	}

	for _, status := range statusOrder {
		lines = append(lines, "## "+status, "")

		for _, is := range grouped[status] {
			lines = append(lines, "### "+is.Title)
			lines = append(lines, "ID: "+is.ID)

			if is.LinkedGoalID != "" {
				lines = append(lines, "Goal: "+is.LinkedGoalID)
			}

			if len(is.Tags) > 0 {
				lines = append(lines, "Tags: "+strings.Join(is.Tags, ", "))
			}

			if is.DueDate != "" {
				lines = append(lines, "Due: "+is.DueDate)
			}

			if is.Priority != "" {
				lines = append(lines, "Priority: "+string(is.Priority))
			}

			lines = append(lines, "")

			if is.Body != "" {
				lines = append(lines, is.Body)
			} else {
				lines = append(lines, "- ")
			}

			lines = append(lines, "")
		}
	}

	return strings.Join(tags.Prepend(lines, defaultTags), "\n")
}

// splitTags parses a comma-separated tag list, dropping empties.
func splitTags(raw string) []string {
	var out []string

	for _, part := range strings.Split(raw, ",") {
		if tag := strings.TrimSpace(part); tag != "" {
			out = append(out, tag)
		}
	}

	return out
}

// normalizeBody trims the body and collapses the "- " empty placeholder
// back to an empty string so serialization round-trips.
func normalizeBody(body string) string {
	trimmed := strings.TrimSpace(body)
	if trimmed == "-" {
		return ""
	}

	return trimmed
}

// Repository is the storage contract the issue service needs.
type Repository interface {
	Read(path string) (string, error)
	Write(path, content string) error
}

// Service manages the issues document.
type Service struct {
	repo        Repository
	baseDir     string
	defaultTags []string
}

// NewService returns an issue service over the given repository.
func NewService(repo Repository, baseDir string, defaultTags []string) *Service {
	return &Service{repo: repo, baseDir: baseDir, defaultTags: defaultTags}
}

func (s *Service) path() string {
	return vault.DocPath(vault.DocIssues, s.baseDir)
}

// List parses the issues document, seeding an empty one on first touch.
func (s *Service) List() ([]Issue, error) {
	content, err := s.repo.Read(s.path())
	if err != nil {
		return nil, err
	}

	if content == "" {
		writeErr := s.repo.Write(s.path(), Serialize(nil, s.defaultTags))
		if writeErr != nil {
			return nil, writeErr
		}

		return nil, nil
	}

	return Parse(content), nil
}

// Add appends a new issue and saves.
func (s *Service) Add(is Issue) (Issue, error) {
	issues, err := s.List()
	if err != nil {
		return Issue{}, err
	}

	if is.ID == "" {
		is.ID = NewID()
	}

	if is.Status == "" {
		is.Status = DefaultStatus
	}

	issues = append(issues, is)

	saveErr := s.Save(issues)
	if saveErr != nil {
		return Issue{}, saveErr
	}

	return is, nil
}

// Move re-columns an issue. Unknown IDs are a no-op.
func (s *Service) Move(issueID, status string) error {
	issues, err := s.List()
	if err != nil {
		return err
	}

	changed := false

	for idx := range issues {
		if issues[idx].ID == issueID {
			issues[idx].Status = status
			changed = true
		}
	}

	if !changed {
		return nil
	}

	return s.Save(issues)
}

// Delete removes an issue.
func (s *Service) Delete(issueID string) error {
	issues, err := s.List()
	if err != nil {
		return err
	}

	remaining := make([]Issue, 0, len(issues))

	for _, is := range issues {
		if is.ID != issueID {
			remaining = append(remaining, is)
		}
	}

	return s.Save(remaining)
}

// Save rewrites the whole issues document.
func (s *Service) Save(issues []Issue) error {
	return s.repo.Write(s.path(), Serialize(issues, s.defaultTags))
}
