package goal_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"lifeplanner/internal/goal"
)

func Test_Parse_RoundTripsRecords(t *testing.T) {
	t.Parallel()

	expanded := true

	goals := []goal.Goal{
		{
			ID:     "goal-100-1",
			Title:  "Live deliberately",
			Level:  goal.LevelLife,
			Status: goal.StatusActive,
			Order:  1,
		},
		{
			ID:           "goal-100-2",
			Title:        "Ship v1",
			Level:        goal.LevelWeekly,
			Status:       goal.StatusActive,
			Description:  "Cut the release branch.\nWrite the changelog.",
			Order:        1,
			DueDate:      "2026-09-07",
			Expanded:     &expanded,
			ParentGoalID: "goal-100-1",
		},
	}

	text := goal.Serialize(goals, nil)
	reparsed := goal.Parse(text)

	if diff := cmp.Diff(goals, reparsed); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}

	require.Equal(t, text, goal.Serialize(reparsed, nil))
}

func Test_Serialize_EmitsAllSevenLevelHeadings(t *testing.T) {
	t.Parallel()

	text := goal.Serialize(nil, nil)

	require.True(t, strings.HasPrefix(text, "# 目標ゴール\n"))

	for _, level := range goal.Levels {
		require.Contains(t, text, "## "+string(level)+"目標")
	}
}

func Test_Parse_ResolvesParentByTitle_When_ReferenceIsNotAnID(t *testing.T) {
	t.Parallel()

	content := strings.Join([]string{
		"# 目標ゴール",
		"",
		"## 年間目標",
		"### Get fit",
		"ID: goal-1",
		"- ",
		"",
		"## 月間目標",
		"### Run a 10k",
		"ID: goal-2",
		"親: Get fit",
		"- ",
	}, "\n")

	goals := goal.Parse(content)
	require.Len(t, goals, 2)
	require.Equal(t, "goal-1", goals[1].ParentGoalID)
}

func Test_Parse_ResolvesForwardParentReference(t *testing.T) {
	t.Parallel()

	content := strings.Join([]string{
		"## 月間目標",
		"### Child first",
		"ID: goal-child",
		"親: goal-parent",
		"",
		"## 年間目標",
		"### Parent later",
		"ID: goal-parent",
	}, "\n")

	goals := goal.Parse(content)
	require.Len(t, goals, 2)
	require.Equal(t, "goal-parent", goals[0].ParentGoalID)
}

func Test_Parse_DropsParent_When_ReferenceIsDangling(t *testing.T) {
	t.Parallel()

	content := strings.Join([]string{
		"## 週間目標",
		"### Orphaned",
		"ID: goal-1",
		"親: goal-gone",
	}, "\n")

	goals := goal.Parse(content)
	require.Len(t, goals, 1)
	require.Empty(t, goals[0].ParentGoalID)
}

func Test_Parse_ReadsLegacyFlatList(t *testing.T) {
	t.Parallel()

	content := strings.Join([]string{
		"# 目標ゴール",
		"",
		"## 週間目標",
		"- Buy milk",
		"- Call dentist",
	}, "\n")

	goals := goal.Parse(content)
	require.Len(t, goals, 2)
	require.Equal(t, "週間-Buy milk", goals[0].ID)
	require.Equal(t, "Buy milk", goals[0].Title)
	require.Equal(t, goal.LevelWeekly, goals[0].Level)
	require.Equal(t, goal.StatusActive, goals[0].Status)
	require.Equal(t, "週間-Call dentist", goals[1].ID)
}

func Test_Parse_GeneratesID_When_IDLineMissing(t *testing.T) {
	t.Parallel()

	content := strings.Join([]string{
		"## 年間目標",
		"### Hand-written goal",
		"",
		"some description",
	}, "\n")

	goals := goal.Parse(content)
	require.Len(t, goals, 1)
	require.Regexp(t, `^goal-\d+-\d+$`, goals[0].ID)
	require.Equal(t, "some description", goals[0].Description)
}

func Test_Parse_SkipsRecordsOutsideLevelHeadings(t *testing.T) {
	t.Parallel()

	content := strings.Join([]string{
		"# 目標ゴール",
		"",
		"### Floating record",
		"ID: goal-9",
		"",
		"## 週間目標",
		"### Real goal",
		"ID: goal-1",
	}, "\n")

	goals := goal.Parse(content)
	require.Len(t, goals, 1)
	require.Equal(t, "goal-1", goals[0].ID)
}

func Test_Parse_TreatsDashPlaceholderAsEmptyDescription(t *testing.T) {
	t.Parallel()

	content := strings.Join([]string{
		"## 週間目標",
		"### Placeholder body",
		"ID: goal-1",
		"- ",
	}, "\n")

	goals := goal.Parse(content)
	require.Len(t, goals, 1)
	require.Empty(t, goals[0].Description)
}

func Test_Serialize_SortsSiblingsByOrderThenTitle(t *testing.T) {
	t.Parallel()

	goals := []goal.Goal{
		{ID: "g-c", Title: "charlie", Level: goal.LevelWeekly, Order: 2},
		{ID: "g-a", Title: "alpha", Level: goal.LevelWeekly},
		{ID: "g-b", Title: "bravo", Level: goal.LevelWeekly, Order: 1},
	}

	text := goal.Serialize(goals, nil)

	bravoIdx := strings.Index(text, "### bravo")
	charlieIdx := strings.Index(text, "### charlie")
	alphaIdx := strings.Index(text, "### alpha")

	require.Less(t, bravoIdx, charlieIdx, "order 1 before order 2")
	require.Less(t, charlieIdx, alphaIdx, "unordered goals sort last")
}

func Test_CountIDLines(t *testing.T) {
	t.Parallel()

	content := strings.Join([]string{
		"## 週間目標",
		"### With id",
		"ID: goal-1",
		"- Legacy entry",
	}, "\n")

	require.Equal(t, 1, goal.CountIDLines(content))
}
