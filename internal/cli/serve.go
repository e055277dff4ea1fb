package cli

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the alert scheduler and notification bus until interrupted",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer cancel()

		go func() {
			if err := a.orch.Notifications().Run(ctx); err != nil && ctx.Err() == nil {
				slog.Error("notification bus stopped", "err", err)
			}
		}()

		slog.Info("offkaibot serving", "events_file", a.cfg.EventsFile, "audit_enabled", a.log != nil)
		if err := a.sched.Run(ctx); err != nil && err != context.Canceled {
			return err
		}
		slog.Info("offkaibot shutting down")
		return nil
	},
}
