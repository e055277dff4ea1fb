// Package cli is the operator-facing command surface: spf13/cobra
// subcommands that wire config, the store, the alert scheduler, the
// Slack collaborator, and the orchestrator together (spec §7.5). The
// chat-platform command surface itself (slash commands, buttons) stays
// out of scope per spec.md §1 — this is the operational side-door an
// administrator uses directly.
package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	version = "0.1.0"
	logo    = "\n" +
		" _____  __  __ _  __    _    ___\n" +
		"|_   _|/ _|/ _| |/ /   / \\  |_ _|\n" +
		"  | | | |_| |_| ' /   / _ \\  | |\n" +
		"  | | |  _|  _| . \\  / ___ \\ | |\n" +
		"  |_| |_| |_| |_|\\_\\/_/   \\_\\___|\n"
)

var rootCmd = &cobra.Command{
	Use:   "offkaibot",
	Short: "offkaibot - offkai event and registration engine",
	Long:  color.CyanString(logo) + "\nMinute-granular event registration, waitlist promotion, and alerts.",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(createEventCmd)
	rootCmd.AddCommand(closeEventCmd)
	rootCmd.AddCommand(reopenEventCmd)
	rootCmd.AddCommand(archiveEventCmd)
	rootCmd.AddCommand(listEventsCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the offkaibot version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(color.GreenString("offkaibot %s", version))
	},
}
