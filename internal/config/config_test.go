package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"lifeplanner/internal/config"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()

	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func Test_Load_UsesDefaults_When_NoConfigFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	cfg, sources, err := config.Load(dir, "", config.Config{}, false, noGlobalEnv(t))
	require.NoError(t, err)
	require.Equal(t, config.Default(), cfg)
	require.Empty(t, sources.Project)
}

func Test_Load_ReadsProjectFileWithCommentsAndTrailingCommas(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, config.FileName), `{
		// planner vault folder
		"base_dir": "Planner",
		"week_start": "sunday",
		"default_tags": ["planner", "life"],
	}`)

	cfg, sources, err := config.Load(dir, "", config.Config{}, false, noGlobalEnv(t))
	require.NoError(t, err)
	require.Equal(t, "Planner", cfg.BaseDir)
	require.Equal(t, "sunday", cfg.WeekStart)
	require.Equal(t, []string{"planner", "life"}, cfg.DefaultTags)
	require.Equal(t, config.Default().KanbanColumns, cfg.KanbanColumns)
	require.Equal(t, filepath.Join(dir, config.FileName), sources.Project)
}

func Test_Load_Fails_When_ExplicitConfigMissing(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	_, _, err := config.Load(dir, "nope.json", config.Config{}, false, noGlobalEnv(t))
	require.ErrorIs(t, err, config.ErrFileNotFound)
}

func Test_Load_Fails_When_BaseDirExplicitlyEmpty(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, config.FileName), `{"base_dir": ""}`)

	_, _, err := config.Load(dir, "", config.Config{}, false, noGlobalEnv(t))
	require.ErrorIs(t, err, config.ErrBaseDirEmpty)
}

func Test_Load_Fails_When_WeekStartInvalid(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, config.FileName), `{"week_start": "tuesday"}`)

	_, _, err := config.Load(dir, "", config.Config{}, false, noGlobalEnv(t))
	require.ErrorIs(t, err, config.ErrBadWeekStart)
}

func Test_Load_Fails_When_ActionPlanMinLevelUnknown(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, config.FileName), `{"action_plan_min_level": "daily"}`)

	_, _, err := config.Load(dir, "", config.Config{}, false, noGlobalEnv(t))
	require.ErrorIs(t, err, config.ErrBadMinLevel)
}

func Test_Load_CLIOverridesBeatProjectFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, config.FileName), `{"base_dir": "Planner"}`)

	overrides := config.Config{BaseDir: "Elsewhere"}

	cfg, _, err := config.Load(dir, "", overrides, true, noGlobalEnv(t))
	require.NoError(t, err)
	require.Equal(t, "Elsewhere", cfg.BaseDir)
}

func Test_Load_GlobalConfigAppliesBelowProject(t *testing.T) {
	t.Parallel()

	globalDir := t.TempDir()
	writeFile(t, filepath.Join(globalDir, "lp", "config.json"), `{"base_dir": "FromGlobal", "week_start": "sunday"}`)

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, config.FileName), `{"base_dir": "FromProject"}`)

	env := []string{"XDG_CONFIG_HOME=" + globalDir}

	cfg, sources, err := config.Load(dir, "", config.Config{}, false, env)
	require.NoError(t, err)
	require.Equal(t, "FromProject", cfg.BaseDir)
	require.Equal(t, "sunday", cfg.WeekStart)
	require.Equal(t, filepath.Join(globalDir, "lp", "config.json"), sources.Global)
}

func Test_Load_SkipsGlobalConfig_When_EnvHasNoConfigHome(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	cfg, sources, err := config.Load(dir, "", config.Config{}, false, []string{"PATH=/usr/bin"})
	require.NoError(t, err)
	require.Equal(t, config.Default(), cfg)
	require.Empty(t, sources.Global)
}

func Test_Load_ResolvesGlobalConfigFromHome_When_ConfigHomeUnset(t *testing.T) {
	t.Parallel()

	home := t.TempDir()
	writeFile(t, filepath.Join(home, ".config", "lp", "config.json"), `{"base_dir": "FromHome"}`)

	dir := t.TempDir()

	env := []string{"HOME=" + home}

	cfg, sources, err := config.Load(dir, "", config.Config{}, false, env)
	require.NoError(t, err)
	require.Equal(t, "FromHome", cfg.BaseDir)
	require.Equal(t, filepath.Join(home, ".config", "lp", "config.json"), sources.Global)
}

// noGlobalEnv points XDG_CONFIG_HOME at an empty directory so a real
// user config on the test machine cannot leak into the run.
func noGlobalEnv(t *testing.T) []string {
	t.Helper()

	return []string{"XDG_CONFIG_HOME=" + t.TempDir()}
}
