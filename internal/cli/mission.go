package cli

import (
	"github.com/spf13/cobra"

	"github.com/example/tesseract/internal/wire"
)

// MissionCmd returns the mission command
func MissionCmd() *cobra.Command {
	missionCmd := &cobra.Command{
		Use:   "mission",
		Short: "Manage missions",
		Long:  "Create, list, and manage missions on the missions backend",
	}

	createCmd := &cobra.Command{
		Use:   "create [name]",
		Short: "Create a new mission",
		Long: `Create a mission scheduled for --date. Dates may be absolute
(2026-07-20T20:17:00Z), compact offsets (+90m, 2d) or natural language
("tomorrow at 9am").`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			date, _ := cmd.Flags().GetString("date")
			description, _ := cmd.Flags().GetString("description")
			image, _ := cmd.Flags().GetString("image")
			return wire.MissionAdapter().Create(NewContext(), args[0], date, description, image)
		},
	}
	createCmd.Flags().StringP("date", "t", "", "Launch date (required)")
	createCmd.Flags().StringP("description", "d", "", "Mission description")
	createCmd.Flags().String("image", "", "Image path or URL")
	_ = createCmd.MarkFlagRequired("date")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List missions",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := NewContext()
			partition, _ := cmd.Flags().GetString("partition")
			local, _ := cmd.Flags().GetBool("local")

			if !local {
				if err := wire.MissionService().Refresh(ctx); err != nil {
					return err
				}
			}
			return wire.MissionAdapter().List(ctx, partition)
		},
	}
	listCmd.Flags().StringP("partition", "p", "", "Filter by partition (upcoming, archived)")
	listCmd.Flags().Bool("local", false, "Skip fetching from the backend")

	showCmd := &cobra.Command{
		Use:   "show [mission-id]",
		Short: "Show mission details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseMissionID(args[0])
			if err != nil {
				return err
			}
			ctx := NewContext()
			if err := wire.MissionService().Refresh(ctx); err != nil {
				return err
			}
			_, err = wire.MissionAdapter().Show(ctx, id)
			return err
		},
	}

	deleteCmd := &cobra.Command{
		Use:   "delete [mission-id]",
		Short: "Delete a mission",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseMissionID(args[0])
			if err != nil {
				return err
			}
			ctx := NewContext()
			// Tracking the mission locally lets the delete clear any archived copy.
			if err := wire.MissionService().Refresh(ctx); err != nil {
				return err
			}
			return wire.MissionAdapter().Delete(ctx, id)
		},
	}

	rescheduleCmd := &cobra.Command{
		Use:   "reschedule [mission-id] [date]",
		Short: "Give an archived mission a new date",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseMissionID(args[0])
			if err != nil {
				return err
			}
			return wire.MissionAdapter().Reschedule(NewContext(), id, args[1])
		},
	}

	missionCmd.AddCommand(createCmd)
	missionCmd.AddCommand(listCmd)
	missionCmd.AddCommand(showCmd)
	missionCmd.AddCommand(deleteCmd)
	missionCmd.AddCommand(rescheduleCmd)

	return missionCmd
}

// ArchiveCmd returns the archive command
func ArchiveCmd() *cobra.Command {
	archiveCmd := &cobra.Command{
		Use:   "archive",
		Short: "Inspect and sync the local archive",
	}

	archiveCmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List archived missions",
		RunE: func(cmd *cobra.Command, args []string) error {
			return wire.MissionAdapter().List(NewContext(), "archived")
		},
	})

	archiveCmd.AddCommand(&cobra.Command{
		Use:   "pull",
		Short: "Merge the backend's archived missions into the local archive",
		RunE: func(cmd *cobra.Command, args []string) error {
			return wire.MissionAdapter().PullArchive(NewContext())
		},
	})

	return archiveCmd
}
