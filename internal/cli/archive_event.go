package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var archiveEventCmd = &cobra.Command{
	Use:   "archive-event <name>",
	Short: "Archive an event permanently",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		e, err := a.orch.Archive(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		fmt.Println(color.GreenString("archived %q", e.Name))
		return nil
	},
}
