package cli

import (
	"github.com/spf13/cobra"

	"github.com/example/tesseract/internal/ports/primary"
	"github.com/example/tesseract/internal/wire"
)

// HistoryCmd returns the history command
func HistoryCmd() *cobra.Command {
	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "Show the mission lifecycle log",
		Long:  "Show recorded mission transitions, newest first (default 50)",
		RunE: func(cmd *cobra.Command, args []string) error {
			missionID, _ := cmd.Flags().GetInt64("mission")
			event, _ := cmd.Flags().GetString("event")
			limit, _ := cmd.Flags().GetInt("limit")

			if limit <= 0 {
				limit = 50
			}

			return wire.LogAdapter().History(NewContext(), primary.LogFilters{
				MissionID: missionID,
				Event:     event,
				Limit:     limit,
			})
		},
	}
	historyCmd.Flags().Int64P("mission", "m", 0, "Filter by mission ID")
	historyCmd.Flags().StringP("event", "e", "", "Filter by event (create, complete, expire, launch, archive, reschedule, delete, pull_archive)")
	historyCmd.Flags().IntP("limit", "n", 50, "Maximum entries to show")

	pruneCmd := &cobra.Command{
		Use:   "prune",
		Short: "Delete old log entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			days, _ := cmd.Flags().GetInt("days")
			return wire.LogAdapter().Prune(NewContext(), days)
		},
	}
	pruneCmd.Flags().Int("days", 30, "Delete entries older than this many days")

	historyCmd.AddCommand(pruneCmd)
	return historyCmd
}
