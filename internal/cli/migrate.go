package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Load the JSON stores, merging legacy waitlist.json, and rewrite them in canonical form",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		if err := a.st.SaveNow(); err != nil {
			return fmt.Errorf("rewrite stores: %w", err)
		}
		fmt.Println(color.GreenString("migration complete: %s, %s", a.cfg.EventsFile, a.cfg.ResponsesFile))
		return nil
	},
}
