package cli

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/example/tesseract/internal/tui"
	"github.com/example/tesseract/internal/wire"
)

// WatchCmd returns the watch command
func WatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Open the live mission board",
		Long: `Open the interactive board. Upcoming missions count down once per
second; when a countdown ends the board asks whether to launch or archive
the mission. Keys: tab switches lists, c completes, d deletes, r refreshes,
? shows all bindings.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := NewContext()

			watcher := wire.ExpiryWatcher()
			defer watcher.Stop()

			board := tui.New(ctx, wire.MissionService(), watcher)
			_, err := tea.NewProgram(board, tea.WithAltScreen(), tea.WithContext(cmd.Context())).Run()
			return err
		},
	}
}
