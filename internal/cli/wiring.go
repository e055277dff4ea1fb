package cli

import (
	"fmt"
	"time"

	"github.com/offkai-bot/offkai/internal/alerts"
	"github.com/offkai-bot/offkai/internal/audit"
	"github.com/offkai-bot/offkai/internal/channels"
	"github.com/offkai-bot/offkai/internal/clock"
	"github.com/offkai-bot/offkai/internal/config"
	"github.com/offkai-bot/offkai/internal/orchestrator"
	"github.com/offkai-bot/offkai/internal/store"
)

// app bundles everything a subcommand needs, built fresh per
// invocation from config.json + environment overrides (spec §6.3).
type app struct {
	cfg   *config.Config
	st    *store.Coordinator
	sched *alerts.Scheduler
	orch  *orchestrator.Orchestrator
	log   *audit.Log // nil if cfg.AuditDB is empty
}

func newApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	st := store.New(cfg.EventsFile, cfg.ResponsesFile, cfg.WaitlistFile)
	if err := st.Load(); err != nil {
		return nil, fmt.Errorf("load store: %w", err)
	}

	sched := alerts.New(clock.Real{}, time.Duration(cfg.Scheduler.TickIntervalSeconds)*time.Second)

	var collab orchestrator.Collaborator
	if cfg.Slack.Enabled {
		collab = channels.NewSlackCollaborator(cfg.Slack)
	} else {
		collab = noopCollaborator{}
	}

	orch := orchestrator.New(st, sched, collab, clock.Real{})

	a := &app{cfg: cfg, st: st, sched: sched, orch: orch}

	if cfg.AuditDB != "" {
		log, err := audit.Open(cfg.AuditDB)
		if err != nil {
			return nil, fmt.Errorf("open audit db: %w", err)
		}
		log.Subscribe(orch.Notifications())
		a.log = log
	}

	return a, nil
}

func (a *app) close() {
	if a.log != nil {
		a.log.Close()
	}
}
