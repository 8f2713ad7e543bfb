package template_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"lifeplanner/internal/fs"
	"lifeplanner/internal/template"
	"lifeplanner/internal/vault"
)

const testBaseDir = "LifePlanner"

func newTestStorage(t *testing.T) *vault.Storage {
	t.Helper()

	return vault.NewStorage(fs.NewMem(), t.TempDir())
}

func seedTemplate(t *testing.T, storage *vault.Storage, filename, body string) {
	t.Helper()

	require.NoError(t, storage.Write(testBaseDir+"/Templates/"+filename, body))
}

func mustLookup(t *testing.T, key string) template.Entry {
	t.Helper()

	entry, ok := template.Lookup(key)
	require.True(t, ok, "catalog entry %s", key)

	return entry
}

func Test_Lookup_Fails_When_KeyUnknown(t *testing.T) {
	t.Parallel()

	_, ok := template.Lookup("grocery-list")
	require.False(t, ok)
}

func Test_Catalog_GroupsEntriesByCategory(t *testing.T) {
	t.Parallel()

	seen := map[template.Category]bool{}

	var current template.Category

	for _, entry := range template.Catalog() {
		if entry.Category == current {
			continue
		}

		require.False(t, seen[entry.Category], "category %s listed twice", entry.Category)

		seen[entry.Category] = true
		current = entry.Category
	}
}

func Test_Create_CopiesTemplateBodyIntoDatedDocument(t *testing.T) {
	t.Parallel()

	storage := newTestStorage(t)
	seedTemplate(t, storage, "LifePlanner - Goal Setup.md", "# 目標設定\n\n- \n")

	svc := template.NewService(storage, testBaseDir, vault.WeekStartMonday)

	day := time.Date(2026, time.August, 31, 12, 0, 0, 0, time.UTC)

	path, err := svc.Create(mustLookup(t, "goal-setup"), day)
	require.NoError(t, err)
	require.Equal(t, "LifePlanner/Goals/Goal Setup - 2026-08-31.md", path)

	content, err := storage.Read(path)
	require.NoError(t, err)
	require.Equal(t, "# 目標設定\n\n- \n", content)
}

func Test_Create_KeysFilenameByKind(t *testing.T) {
	t.Parallel()

	day := time.Date(2026, time.August, 31, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		key  string
		want string
	}{
		{"daily-plan", "LifePlanner/Plans/Daily Plan - 2026-08-31.md"},
		{"monthly-plan", "LifePlanner/Plans/Monthly Plan - 2026-08.md"},
		{"annual-goals", "LifePlanner/Goals/Annual Goals - 2026.md"},
		{"quarterly-goals", "LifePlanner/Goals/Quarterly Goals - 2026-Q3.md"},
		{"five-year-plan", "LifePlanner/Goals/Five-Year Plan - 2026-2030.md"},
		{"weekly-plan", "LifePlanner/Plans/Weekly Plan (Vertical) - 2026-08-31.md"},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.key, func(t *testing.T) {
			t.Parallel()

			storage := newTestStorage(t)

			entry := mustLookup(t, tc.key)
			seedTemplate(t, storage, entry.Filename, "body\n")

			svc := template.NewService(storage, testBaseDir, vault.WeekStartMonday)

			path, err := svc.Create(entry, day)
			require.NoError(t, err)
			require.Equal(t, tc.want, path)
		})
	}
}

func Test_Create_UsesConfiguredWeekStart_For_WeeklySuffix(t *testing.T) {
	t.Parallel()

	storage := newTestStorage(t)

	entry := mustLookup(t, "weekly-plan")
	seedTemplate(t, storage, entry.Filename, "body\n")

	svc := template.NewService(storage, testBaseDir, vault.WeekStartSunday)

	// 2026-09-02 is a Wednesday; the Sunday-start week begins 2026-08-30.
	day := time.Date(2026, time.September, 2, 0, 0, 0, 0, time.UTC)

	path, err := svc.Create(entry, day)
	require.NoError(t, err)
	require.Equal(t, "LifePlanner/Plans/Weekly Plan (Vertical) - 2026-08-30.md", path)
}

func Test_Create_AppendsCounter_When_TargetExists(t *testing.T) {
	t.Parallel()

	storage := newTestStorage(t)

	entry := mustLookup(t, "self-analysis")
	seedTemplate(t, storage, entry.Filename, "# 自己分析\n")

	svc := template.NewService(storage, testBaseDir, vault.WeekStartMonday)

	day := time.Date(2026, time.August, 31, 0, 0, 0, 0, time.UTC)

	first, err := svc.Create(entry, day)
	require.NoError(t, err)
	require.Equal(t, "LifePlanner/Exercises/Self Analysis - 2026-08-31.md", first)

	second, err := svc.Create(entry, day)
	require.NoError(t, err)
	require.Equal(t, "LifePlanner/Exercises/Self Analysis - 2026-08-31 (2).md", second)

	third, err := svc.Create(entry, day)
	require.NoError(t, err)
	require.Equal(t, "LifePlanner/Exercises/Self Analysis - 2026-08-31 (3).md", third)
}

func Test_Create_Fails_When_TemplateFileMissing(t *testing.T) {
	t.Parallel()

	svc := template.NewService(newTestStorage(t), testBaseDir, vault.WeekStartMonday)

	_, err := svc.Create(mustLookup(t, "inbox"), time.Now())
	require.ErrorIs(t, err, template.ErrTemplateNotFound)
}
