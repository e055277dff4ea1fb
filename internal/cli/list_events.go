package cli

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/offkai-bot/offkai/internal/offkai"
)

var listIncludeArchived bool

var listEventsCmd = &cobra.Command{
	Use:   "list-events",
	Short: "List events and their current headcount",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		a.st.View(func(events *offkai.EventStore, regs *offkai.RegistrationStore) {
			for _, e := range events.All() {
				if e.Archived && !listIncludeArchived {
					continue
				}
				status := "open"
				if e.Archived {
					status = "archived"
				} else if !e.Open {
					status = "closed"
				}
				head := regs.HeadCount(e.Name)
				wait := regs.WaitlistLen(e.Name)
				capStr := "unlimited"
				if e.MaxCapacity != nil {
					capStr = fmt.Sprintf("%d", *e.MaxCapacity)
				}
				fmt.Printf("%s  %-24s  start=%s  capacity=%s  confirmed=%d  waitlist=%d\n",
					color.YellowString(status), e.Name, e.StartTime.In(offkai.JST).Format(time.RFC3339),
					capStr, head, wait)
			}
		})
		return nil
	},
}

func init() {
	listEventsCmd.Flags().BoolVar(&listIncludeArchived, "include-archived", false, "include archived events")
}
