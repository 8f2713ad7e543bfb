package cli

import (
	"lifeplanner/internal/config"
	"lifeplanner/internal/fs"
	"lifeplanner/internal/goal"
	"lifeplanner/internal/inbox"
	"lifeplanner/internal/issue"
	"lifeplanner/internal/task"
	"lifeplanner/internal/template"
	"lifeplanner/internal/vault"
	"lifeplanner/internal/weekly"
)

// app bundles the resolved configuration with the services every command
// draws from. All services share one storage rooted at the vault directory.
type app struct {
	cfg       config.Config
	storage   *vault.Storage
	goals     *goal.Service
	inbox     *inbox.Service
	issues    *issue.Service
	tasks     *task.Service
	weekly    *weekly.Service
	triage    *inbox.Triage
	templates *template.Service
}

func newApp(cfg config.Config, vaultDir string) *app {
	storage := vault.NewStorage(fs.NewReal(), vaultDir)

	goals := goal.NewService(storage, cfg.BaseDir, cfg.DefaultTags)
	inboxSvc := inbox.NewService(storage, cfg.BaseDir, cfg.DefaultTags)
	issues := issue.NewService(storage, cfg.BaseDir, cfg.DefaultTags)
	tasks := task.NewService(storage, cfg.BaseDir, cfg.DefaultTags)
	weeklySvc := weekly.NewService(storage, cfg.BaseDir, cfg.DefaultTags, vault.WeekStart(cfg.WeekStart))

	return &app{
		cfg:       cfg,
		storage:   storage,
		goals:     goals,
		inbox:     inboxSvc,
		issues:    issues,
		tasks:     tasks,
		weekly:    weeklySvc,
		triage:    inbox.NewTriage(inboxSvc, goals, tasks, issues, weeklySvc),
		templates: template.NewService(storage, cfg.BaseDir, vault.WeekStart(cfg.WeekStart)),
	}
}
