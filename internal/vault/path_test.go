package vault_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"lifeplanner/internal/vault"
)

func Test_DocPath_Joins_Base_Dir_And_Document_Name(t *testing.T) {
	t.Parallel()

	got := vault.DocPath(vault.DocGoals, "LifePlanner")

	require.Equal(t, "LifePlanner/LifePlanner - Goals.md", got)
}

func Test_DocPath_Trims_Slashes_And_Whitespace_From_Base_Dir(t *testing.T) {
	t.Parallel()

	require.Equal(t, "Planner/LifePlanner - Inbox.md", vault.DocPath(vault.DocInbox, " /Planner/ "))
	require.Equal(t, "LifePlanner - Inbox.md", vault.DocPath(vault.DocInbox, ""))
}

func Test_WeeklyPlanPath_Keys_Filename_By_Monday(t *testing.T) {
	t.Parallel()

	// 2026-09-02 is a Wednesday; the week's Monday is 2026-08-31.
	day := time.Date(2026, 9, 2, 15, 30, 0, 0, time.UTC)

	got := vault.WeeklyPlanPath(day, "LifePlanner")

	require.Equal(t, "LifePlanner/LifePlanner - Weekly - 2026-08-31.md", got)
}

func Test_LegacyWeeklyPlanPath_Keys_Filename_By_Configured_Start(t *testing.T) {
	t.Parallel()

	day := time.Date(2026, 9, 2, 15, 30, 0, 0, time.UTC)

	got := vault.LegacyWeeklyPlanPath(day, vault.WeekStartSunday, "LifePlanner")

	require.Equal(t, "LifePlanner/LifePlanner - Weekly - 2026-08-30.md", got)
}

func Test_WeekStartDate_Returns_Most_Recent_Start_Day(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		day   time.Time
		start vault.WeekStart
		want  time.Time
	}{
		{
			name:  "wednesday with monday start",
			day:   time.Date(2026, 9, 2, 23, 59, 0, 0, time.UTC),
			start: vault.WeekStartMonday,
			want:  time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC),
		},
		{
			name:  "wednesday with sunday start",
			day:   time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC),
			start: vault.WeekStartSunday,
			want:  time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC),
		},
		{
			name:  "monday is its own week start",
			day:   time.Date(2026, 8, 31, 8, 0, 0, 0, time.UTC),
			start: vault.WeekStartMonday,
			want:  time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC),
		},
		{
			name:  "sunday rolls back six days under monday start",
			day:   time.Date(2026, 9, 6, 8, 0, 0, 0, time.UTC),
			start: vault.WeekStartMonday,
			want:  time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			require.Equal(t, tt.want, vault.WeekStartDate(tt.day, tt.start))
		})
	}
}

func Test_MonthKey_Formats_Year_And_Month(t *testing.T) {
	t.Parallel()

	require.Equal(t, "2026-09", vault.MonthKey(time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC)))
}

func Test_WeekLabel_Counts_Weeks_From_First_Start_Of_Month(t *testing.T) {
	t.Parallel()

	// The first Monday-start week of August 2026 begins on July 27, so
	// the week of August 31 is the sixth.
	weekStart := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)
	require.Equal(t, "2026年 8月 第6週", vault.WeekLabel(weekStart, vault.WeekStartMonday))

	// August 3 is the first Monday inside the month but the second start.
	require.Equal(
		t, "2026年 8月 第2週",
		vault.WeekLabel(time.Date(2026, 8, 3, 0, 0, 0, 0, time.UTC), vault.WeekStartMonday),
	)
}
