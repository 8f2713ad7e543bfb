package template

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"lifeplanner/internal/vault"
)

// ErrTemplateNotFound is returned when the source document for a catalog
// entry is missing from the Templates folder.
var ErrTemplateNotFound = errors.New("template not found")

// Repository is the storage contract the template service needs.
type Repository interface {
	Read(path string) (string, error)
	Write(path, content string) error
	Exists(path string) (bool, error)
}

// Service copies template bodies into dated documents.
type Service struct {
	repo      Repository
	baseDir   string
	weekStart vault.WeekStart
}

// NewService returns a template service over the given repository. The
// week start feeds the weekly filename suffix.
func NewService(repo Repository, baseDir string, weekStart vault.WeekStart) *Service {
	return &Service{repo: repo, baseDir: baseDir, weekStart: weekStart}
}

// Create copies the entry's template body into a new document named
// "<Label> - <suffix>.md" under the entry's folder and returns the
// created path, keyed by day. An existing file at the target path gets a
// " (N)" counter appended instead of being overwritten.
func (s *Service) Create(entry Entry, day time.Time) (string, error) {
	source := s.join("Templates", entry.Filename)

	exists, err := s.repo.Exists(source)
	if err != nil {
		return "", err
	}

	if !exists {
		return "", fmt.Errorf("%w: %s", ErrTemplateNotFound, source)
	}

	content, err := s.repo.Read(source)
	if err != nil {
		return "", err
	}

	name := fmt.Sprintf("%s - %s.md", entry.Label, s.suffix(entry.Kind, day))

	target, err := s.uniquePath(s.join(entry.Folder, name))
	if err != nil {
		return "", err
	}

	writeErr := s.repo.Write(target, content)
	if writeErr != nil {
		return "", writeErr
	}

	return target, nil
}

// suffix keys the created filename by day. Quarters are calendar
// quarters; the weekly suffix is the date of the configured week start.
func (s *Service) suffix(kind Kind, day time.Time) string {
	switch kind {
	case KindMonthly:
		return vault.MonthKey(day)
	case KindAnnual:
		return fmt.Sprintf("%d", day.Year())
	case KindQuarterly:
		quarter := (int(day.Month())-1)/3 + 1

		return fmt.Sprintf("%d-Q%d", day.Year(), quarter)
	case KindFiveYear:
		return fmt.Sprintf("%d-%d", day.Year(), day.Year()+4)
	case KindWeekly:
		return vault.WeekStartDate(day, s.weekStart).Format("2006-01-02")
	default:
		return day.Format("2006-01-02")
	}
}

func (s *Service) join(parts ...string) string {
	dir := strings.Trim(strings.TrimSpace(s.baseDir), "/")
	if dir != "" {
		parts = append([]string{dir}, parts...)
	}

	return strings.Join(parts, "/")
}

func (s *Service) uniquePath(path string) (string, error) {
	exists, err := s.repo.Exists(path)
	if err != nil {
		return "", err
	}

	if !exists {
		return path, nil
	}

	stem := strings.TrimSuffix(path, ".md")

	for index := 2; ; index++ {
		candidate := fmt.Sprintf("%s (%d).md", stem, index)

		exists, err := s.repo.Exists(candidate)
		if err != nil {
			return "", err
		}

		if !exists {
			return candidate, nil
		}
	}
}
