package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var reopenEventMessage string

var reopenEventCmd = &cobra.Command{
	Use:   "reopen-event <name>",
	Short: "Reopen a closed event and run waitlist promotion",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		e, err := a.orch.Reopen(cmd.Context(), args[0], reopenEventMessage)
		if err != nil {
			return err
		}
		fmt.Println(color.GreenString("reopened %q", e.Name))
		return nil
	},
}

func init() {
	reopenEventCmd.Flags().StringVar(&reopenEventMessage, "message", "", "optional message posted to the event thread")
}
