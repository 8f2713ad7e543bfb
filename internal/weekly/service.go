package weekly

import (
	"strings"
	"time"

	"lifeplanner/internal/vault"
)

// Repository is the storage contract the weekly service needs.
type Repository interface {
	Read(path string) (string, error)
	Write(path, content string) error
}

// Service manages weekly plan documents and the shared carry-over
// document.
type Service struct {
	repo        Repository
	baseDir     string
	defaultTags []string
	weekStart   vault.WeekStart
}

// NewService returns a weekly service over the given repository.
func NewService(repo Repository, baseDir string, defaultTags []string, weekStart vault.WeekStart) *Service {
	return &Service{repo: repo, baseDir: baseDir, defaultTags: defaultTags, weekStart: weekStart}
}

// WeekStartDate returns the configured start of the week containing day.
func (s *Service) WeekStartDate(day time.Time) time.Time {
	return vault.WeekStartDate(day, s.weekStart)
}

// WeekLabel returns the display label for the week containing day.
func (s *Service) WeekLabel(day time.Time) string {
	return vault.WeekLabel(s.WeekStartDate(day), s.weekStart)
}

// PlanForWeek loads the plan for the week containing day.
//
// Plans are stored under the Monday-keyed canonical path. When the
// canonical file is missing, the legacy path keyed by the configured
// week start is consulted and, if found, its content is migrated to the
// canonical path. A week with no plan at all is seeded from the shared
// document (month theme, routines with empty checks, roles with empty
// goals) and written out.
func (s *Service) PlanForWeek(day time.Time) (Plan, error) {
	path := vault.WeeklyPlanPath(day, s.baseDir)

	content, err := s.repo.Read(path)
	if err != nil {
		return Plan{}, err
	}

	if content == "" {
		legacyPath := vault.LegacyWeeklyPlanPath(day, s.weekStart, s.baseDir)
		if legacyPath != path {
			legacyContent, legacyErr := s.repo.Read(legacyPath)
			if legacyErr != nil {
				return Plan{}, legacyErr
			}

			if legacyContent != "" {
				writeErr := s.repo.Write(path, legacyContent)
				if writeErr != nil {
					return Plan{}, writeErr
				}

				content = legacyContent
			}
		}
	}

	if content == "" {
		plan, seedErr := s.seedPlan(day)
		if seedErr != nil {
			return Plan{}, seedErr
		}

		writeErr := s.repo.Write(path, SerializePlan(plan, s.defaultTags))
		if writeErr != nil {
			return Plan{}, writeErr
		}

		return plan, nil
	}

	return ParsePlan(content), nil
}

func (s *Service) seedPlan(day time.Time) (Plan, error) {
	shared, err := s.LoadShared()
	if err != nil {
		return Plan{}, err
	}

	weekStart := s.WeekStartDate(day)

	plan := NewPlan()
	plan.WeekLabel = vault.WeekLabel(weekStart, s.weekStart)
	plan.MonthTheme = shared.MonthThemes[vault.MonthKey(weekStart)]

	for _, routine := range shared.Routines {
		plan.Routines = append(plan.Routines, Routine{Title: routine.Title})
	}

	for _, role := range shared.Roles {
		plan.Roles = append(plan.Roles, RoleGoals{Role: role})
	}

	return plan, nil
}

// SavePlan writes the plan for the week containing day and propagates
// its routines, roles and month theme into the shared document.
func (s *Service) SavePlan(day time.Time, plan Plan) error {
	path := vault.WeeklyPlanPath(day, s.baseDir)

	err := s.repo.Write(path, SerializePlan(plan, s.defaultTags))
	if err != nil {
		return err
	}

	return s.saveShared(day, plan)
}

// AppendAction adds one unchecked entry to the action plan of the week
// containing day. Only the plan document is written; the shared document
// is left alone.
func (s *Service) AppendAction(day time.Time, title string) error {
	plan, err := s.PlanForWeek(day)
	if err != nil {
		return err
	}

	plan.ActionPlans = append(plan.ActionPlans, ActionItem{Title: title})

	path := vault.WeeklyPlanPath(day, s.baseDir)

	return s.repo.Write(path, SerializePlan(plan, s.defaultTags))
}

// LoadShared loads the shared document, seeding an empty one when the
// file is missing.
func (s *Service) LoadShared() (Shared, error) {
	path := vault.DocPath(vault.DocWeeklyShared, s.baseDir)

	content, err := s.repo.Read(path)
	if err != nil {
		return Shared{}, err
	}

	if content == "" {
		shared := NewShared()

		writeErr := s.repo.Write(path, SerializeShared(shared, s.defaultTags))
		if writeErr != nil {
			return Shared{}, writeErr
		}

		return shared, nil
	}

	return ParseShared(content), nil
}

// saveShared is the one-way propagation from a saved plan: routine
// titles and role names replace the shared lists wholesale, the theme
// only updates this week's month key.
func (s *Service) saveShared(day time.Time, plan Plan) error {
	shared, err := s.LoadShared()
	if err != nil {
		return err
	}

	shared.Routines = nil

	for _, routine := range plan.Routines {
		title := strings.TrimSpace(routine.Title)
		if title != "" {
			shared.Routines = append(shared.Routines, Routine{Title: title})
		}
	}

	shared.Roles = nil

	for _, role := range plan.Roles {
		name := strings.TrimSpace(role.Role)
		if name != "" {
			shared.Roles = append(shared.Roles, name)
		}
	}

	shared.MonthThemes[vault.MonthKey(s.WeekStartDate(day))] = plan.MonthTheme

	path := vault.DocPath(vault.DocWeeklyShared, s.baseDir)

	return s.repo.Write(path, SerializeShared(shared, s.defaultTags))
}
