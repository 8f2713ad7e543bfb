// Package config loads the layered planner configuration. Precedence,
// lowest to highest: built-in defaults, the global user config, the
// project config file (or an explicit --config path), CLI overrides.
// Config files are JSONC: comments and trailing commas are allowed.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tailscale/hujson"

	"lifeplanner/internal/goal"
	"lifeplanner/internal/vault"
)

// Config holds all configuration options.
type Config struct {
	BaseDir            string   `json:"base_dir"`
	WeekStart          string   `json:"week_start,omitempty"`
	KanbanColumns      []string `json:"kanban_columns,omitempty"`
	DefaultTags        []string `json:"default_tags,omitempty"`
	ActionPlanMinLevel string   `json:"action_plan_min_level,omitempty"`
}

// Sources tracks which config files were loaded.
type Sources struct {
	Global  string // Path to global config if loaded, empty otherwise
	Project string // Path to project config if loaded, empty otherwise
}

// Default returns the default configuration.
func Default() Config {
	return Config{
		BaseDir:            "LifePlanner",
		WeekStart:          string(vault.WeekStartMonday),
		KanbanColumns:      []string{"Backlog", "Todo", "Doing", "Done"},
		DefaultTags:        []string{"lifeplanner"},
		ActionPlanMinLevel: string(goal.LevelMonthly),
	}
}

// FileName is the default project config file name.
const FileName = ".lifeplanner.json"

var (
	ErrFileNotFound    = errors.New("config file not found")
	ErrFileRead        = errors.New("cannot read config file")
	ErrInvalid         = errors.New("invalid config file")
	ErrBaseDirEmpty    = errors.New("base_dir cannot be empty")
	ErrBadWeekStart    = errors.New("week_start must be \"monday\" or \"sunday\"")
	ErrBadMinLevel     = errors.New("action_plan_min_level is not a goal level")
	ErrNoKanbanColumns = errors.New("kanban_columns cannot be empty")
)

// globalPath returns the path to the global config file, resolved from
// the given environment only: $XDG_CONFIG_HOME/lp/config.json if set,
// otherwise $HOME/.config/lp/config.json. Returns empty when neither
// variable is present, so a scrubbed env loads no global config.
func globalPath(env []string) string {
	var home string

	for _, e := range env {
		if after, ok := strings.CutPrefix(e, "XDG_CONFIG_HOME="); ok && after != "" {
			return filepath.Join(after, "lp", "config.json")
		}

		if after, ok := strings.CutPrefix(e, "HOME="); ok {
			home = after
		}
	}

	if home != "" {
		return filepath.Join(home, ".config", "lp", "config.json")
	}

	return ""
}

// Load resolves the effective configuration for workDir. configPath, if
// non-empty, names an explicit config file that must exist. overrides
// carries CLI flag values; hasBaseDirOverride marks --dir as given.
func Load(workDir, configPath string, overrides Config, hasBaseDirOverride bool, env []string) (Config, Sources, error) {
	cfg := Default()

	var sources Sources

	globalCfg, globalCfgPath, err := loadGlobal(env)
	if err != nil {
		return Config{}, Sources{}, err
	}

	sources.Global = globalCfgPath
	cfg = merge(cfg, globalCfg)

	projectCfg, projectPath, err := loadProject(workDir, configPath)
	if err != nil {
		return Config{}, Sources{}, err
	}

	sources.Project = projectPath
	cfg = merge(cfg, projectCfg)

	if hasBaseDirOverride {
		cfg.BaseDir = overrides.BaseDir
	}

	if overrides.WeekStart != "" {
		cfg.WeekStart = overrides.WeekStart
	}

	validateErr := validate(cfg)
	if validateErr != nil {
		return Config{}, Sources{}, validateErr
	}

	return cfg, sources, nil
}

func loadGlobal(env []string) (Config, string, error) {
	path := globalPath(env)
	if path == "" {
		return Config{}, "", nil
	}

	cfg, explicitEmpty, loaded, err := loadFile(path, false)
	if err != nil {
		return Config{}, "", err
	}

	if !loaded {
		return Config{}, "", nil
	}

	if explicitEmpty["base_dir"] {
		return Config{}, "", fmt.Errorf("%w %s: %w", ErrInvalid, path, ErrBaseDirEmpty)
	}

	return cfg, path, nil
}

func loadProject(workDir, configPath string) (Config, string, error) {
	var cfgFile string

	var mustExist bool

	if configPath != "" {
		cfgFile = configPath
		if !filepath.IsAbs(cfgFile) {
			cfgFile = filepath.Join(workDir, cfgFile)
		}

		mustExist = true

		_, statErr := os.Stat(cfgFile)
		if statErr != nil {
			return Config{}, "", fmt.Errorf("%w: %s", ErrFileNotFound, configPath)
		}
	} else {
		cfgFile = filepath.Join(workDir, FileName)
		mustExist = false
	}

	fileCfg, explicitEmpty, loaded, err := loadFile(cfgFile, mustExist)
	if err != nil {
		return Config{}, "", err
	}

	if !loaded {
		return Config{}, "", nil
	}

	if explicitEmpty["base_dir"] {
		return Config{}, "", fmt.Errorf("%w %s: %w", ErrInvalid, cfgFile, ErrBaseDirEmpty)
	}

	return fileCfg, cfgFile, nil
}

// loadFile loads a config file. If mustExist is false, missing files
// return zero config. Returns the config, a map of explicitly empty
// fields, whether the file was loaded, and any error.
func loadFile(path string, mustExist bool) (Config, map[string]bool, bool, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is intentionally user-controlled
	if err != nil {
		if mustExist {
			return Config{}, nil, false, fmt.Errorf("%w: %s", ErrFileRead, path)
		}

		return Config{}, nil, false, nil
	}

	cfg, explicitEmpty, parseErr := parse(data)
	if parseErr != nil {
		return Config{}, nil, false, fmt.Errorf("%w %s: %w", ErrInvalid, path, parseErr)
	}

	return cfg, explicitEmpty, true, nil
}

func parse(data []byte) (Config, map[string]bool, error) {
	standardized, err := hujson.Standardize(data)
	if err != nil {
		return Config{}, nil, fmt.Errorf("invalid JSONC: %w", err)
	}

	var cfg Config

	unmarshalErr := json.Unmarshal(standardized, &cfg)
	if unmarshalErr != nil {
		return Config{}, nil, fmt.Errorf("invalid JSON: %w", unmarshalErr)
	}

	var raw map[string]any

	_ = json.Unmarshal(standardized, &raw)

	explicitEmpty := make(map[string]bool)

	if val, exists := raw["base_dir"]; exists {
		if str, ok := val.(string); ok && str == "" {
			explicitEmpty["base_dir"] = true
		}
	}

	return cfg, explicitEmpty, nil
}

func merge(base, overlay Config) Config {
	if overlay.BaseDir != "" {
		base.BaseDir = overlay.BaseDir
	}

	if overlay.WeekStart != "" {
		base.WeekStart = overlay.WeekStart
	}

	if len(overlay.KanbanColumns) > 0 {
		base.KanbanColumns = overlay.KanbanColumns
	}

	if overlay.DefaultTags != nil {
		base.DefaultTags = overlay.DefaultTags
	}

	if overlay.ActionPlanMinLevel != "" {
		base.ActionPlanMinLevel = overlay.ActionPlanMinLevel
	}

	return base
}

func validate(cfg Config) error {
	if cfg.BaseDir == "" {
		return ErrBaseDirEmpty
	}

	start := vault.WeekStart(cfg.WeekStart)
	if start != vault.WeekStartMonday && start != vault.WeekStartSunday {
		return fmt.Errorf("%w: %q", ErrBadWeekStart, cfg.WeekStart)
	}

	if len(cfg.KanbanColumns) == 0 {
		return ErrNoKanbanColumns
	}

	if !goal.IsValidLevel(goal.Level(cfg.ActionPlanMinLevel)) {
		return fmt.Errorf("%w: %q", ErrBadMinLevel, cfg.ActionPlanMinLevel)
	}

	return nil
}

// Format returns the config as formatted JSON.
func Format(cfg Config) (string, error) {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to format config: %w", err)
	}

	return string(data), nil
}
