package inbox_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"lifeplanner/internal/fs"
	"lifeplanner/internal/goal"
	"lifeplanner/internal/inbox"
	"lifeplanner/internal/issue"
	"lifeplanner/internal/task"
	"lifeplanner/internal/vault"
	"lifeplanner/internal/weekly"
)

type triageFixture struct {
	triage *inbox.Triage
	inbox  *inbox.Service
	goals  *goal.Service
	tasks  *task.Service
	issues *issue.Service
	weekly *weekly.Service
}

func newTriageFixture(t *testing.T) triageFixture {
	t.Helper()

	storage := vault.NewStorage(fs.NewMem(), t.TempDir())

	tags := []string{"lifeplanner"}

	fx := triageFixture{
		inbox:  inbox.NewService(storage, "LifePlanner", tags),
		goals:  goal.NewService(storage, "LifePlanner", tags),
		tasks:  task.NewService(storage, "LifePlanner", tags),
		issues: issue.NewService(storage, "LifePlanner", tags),
		weekly: weekly.NewService(storage, "LifePlanner", tags, vault.WeekStartMonday),
	}
	fx.triage = inbox.NewTriage(fx.inbox, fx.goals, fx.tasks, fx.issues, fx.weekly)

	return fx
}

func capture(t *testing.T, fx triageFixture, content string) inbox.Item {
	t.Helper()

	item, err := fx.inbox.Add(content)
	require.NoError(t, err)

	return item
}

func Test_Triage_ToGoal_CreatesGoalAndConsumesItem(t *testing.T) {
	t.Parallel()

	fx := newTriageFixture(t)
	item := capture(t, fx, "run a marathon")

	require.NoError(t, fx.triage.ToGoal(item.ID, goal.LevelAnnual))

	goals, err := fx.goals.List()
	require.NoError(t, err)
	require.Len(t, goals, 1)
	require.Equal(t, "run a marathon", goals[0].Title)
	require.Equal(t, goal.LevelAnnual, goals[0].Level)

	items, err := fx.inbox.LoadAndReconcile()
	require.NoError(t, err)
	require.Empty(t, items)
}

func Test_Triage_ToTask_LinksTaskToGoal(t *testing.T) {
	t.Parallel()

	fx := newTriageFixture(t)
	item := capture(t, fx, "write the changelog")

	require.NoError(t, fx.triage.ToTask(item.ID, "Ship v1"))

	tasks, err := fx.tasks.List()
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	require.Equal(t, "Ship v1", tasks[0].GoalTitle)
	require.Equal(t, "write the changelog", tasks[0].Title)
}

func Test_Triage_ToWeekly_AppendsToActionPlan(t *testing.T) {
	t.Parallel()

	fx := newTriageFixture(t)
	item := capture(t, fx, "book dentist")

	require.NoError(t, fx.triage.ToWeekly(item.ID))

	plan, err := fx.weekly.PlanForWeek(time.Now())
	require.NoError(t, err)
	require.Len(t, plan.ActionPlans, 1)
	require.Equal(t, "book dentist", plan.ActionPlans[0].Title)
	require.False(t, plan.ActionPlans[0].Done)
}

func Test_Triage_ToIssue_CreatesBacklogIssue(t *testing.T) {
	t.Parallel()

	fx := newTriageFixture(t)
	item := capture(t, fx, "leaky faucet")

	require.NoError(t, fx.triage.ToIssue(item.ID))

	issues, err := fx.issues.List()
	require.NoError(t, err)
	require.Len(t, issues, 1)
	require.Equal(t, "leaky faucet", issues[0].Title)
	require.Equal(t, issue.DefaultStatus, issues[0].Status)
}

func Test_Triage_Fails_When_ItemUnknown(t *testing.T) {
	t.Parallel()

	fx := newTriageFixture(t)

	err := fx.triage.ToIssue("inbox-nope")
	require.ErrorIs(t, err, inbox.ErrItemNotFound)
}
