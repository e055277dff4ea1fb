package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/offkai-bot/offkai/internal/orchestrator"
)

var (
	createName      string
	createVenue     string
	createAddress   string
	createMapsLink  string
	createStart     string
	createDeadline  string
	createCapacity  int
	createChannelID int64
	createCreatorID int64
	createRoleID    int64
	createDrinks    string
)

var createEventCmd = &cobra.Command{
	Use:   "create-event",
	Short: "Create a new offkai event",
	RunE: func(cmd *cobra.Command, args []string) error {
		start, err := time.Parse(time.RFC3339, createStart)
		if err != nil {
			return fmt.Errorf("parse --start (want RFC3339): %w", err)
		}

		req := orchestrator.CreateRequest{
			Name:      createName,
			Venue:     createVenue,
			Address:   createAddress,
			MapsLink:  createMapsLink,
			StartTime: start,
		}
		if createDeadline != "" {
			d, err := time.Parse(time.RFC3339, createDeadline)
			if err != nil {
				return fmt.Errorf("parse --deadline (want RFC3339): %w", err)
			}
			req.Deadline = &d
		}
		if createCapacity > 0 {
			req.MaxCapacity = &createCapacity
		}
		if createChannelID != 0 {
			req.ChannelID = &createChannelID
		}
		if createCreatorID != 0 {
			req.CreatorID = &createCreatorID
		}
		if createRoleID != 0 {
			req.PingRoleID = &createRoleID
		}
		if createDrinks != "" {
			req.Drinks = strings.Split(createDrinks, ",")
		}

		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		e, err := a.orch.Create(cmd.Context(), req)
		if err != nil {
			return err
		}
		fmt.Println(color.GreenString("created event %q (start %s)", e.Name, e.StartTime.Format(time.RFC3339)))
		return nil
	},
}

func init() {
	createEventCmd.Flags().StringVar(&createName, "name", "", "event name (required)")
	createEventCmd.Flags().StringVar(&createVenue, "venue", "", "venue name")
	createEventCmd.Flags().StringVar(&createAddress, "address", "", "venue address")
	createEventCmd.Flags().StringVar(&createMapsLink, "maps-link", "", "map link")
	createEventCmd.Flags().StringVar(&createStart, "start", "", "start time, RFC3339 (required)")
	createEventCmd.Flags().StringVar(&createDeadline, "deadline", "", "registration deadline, RFC3339")
	createEventCmd.Flags().IntVar(&createCapacity, "capacity", 0, "max capacity (0 = unlimited)")
	createEventCmd.Flags().Int64Var(&createChannelID, "channel-id", 0, "announcement channel id")
	createEventCmd.Flags().Int64Var(&createCreatorID, "creator-id", 0, "creator user id")
	createEventCmd.Flags().Int64Var(&createRoleID, "ping-role-id", 0, "role id to ping on announce")
	createEventCmd.Flags().StringVar(&createDrinks, "drinks", "", "comma-separated drink options")
	_ = createEventCmd.MarkFlagRequired("name")
	_ = createEventCmd.MarkFlagRequired("start")
}
