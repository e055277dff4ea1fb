package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var closeEventMessage string

var closeEventCmd = &cobra.Command{
	Use:   "close-event <name>",
	Short: "Close registration for an event",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		e, err := a.orch.Close(cmd.Context(), args[0], closeEventMessage)
		if err != nil {
			return err
		}
		fmt.Println(color.GreenString("closed %q", e.Name))
		return nil
	},
}

func init() {
	closeEventCmd.Flags().StringVar(&closeEventMessage, "message", "", "optional message posted to the event thread")
}
