package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/example/tesseract/internal/ports/primary"
)

// LogAdapter prints the mission lifecycle log.
type LogAdapter struct {
	service primary.LogService
	out     io.Writer
}

// NewLogAdapter creates a new LogAdapter.
func NewLogAdapter(service primary.LogService, out io.Writer) *LogAdapter {
	return &LogAdapter{service: service, out: out}
}

// History lists lifecycle log entries, newest first.
func (a *LogAdapter) History(ctx context.Context, filters primary.LogFilters) error {
	entries, err := a.service.ListLogs(ctx, filters)
	if err != nil {
		return err
	}

	if len(entries) == 0 {
		fmt.Fprintln(a.out, "No history")
		return nil
	}

	fmt.Fprintf(a.out, "\n%-20s %-8s %-12s %-6s %s\n", "WHEN", "ACTOR", "EVENT", "ID", "MOVE")
	fmt.Fprintln(a.out, "────────────────────────────────────────────────────────────────")
	for _, e := range entries {
		actor := e.ActorID
		if actor == "" {
			actor = "-"
		}
		fmt.Fprintf(a.out, "%-20s %-8s %-12s %-6d %s → %s\n",
			e.CreatedAt, actor, e.Event, e.MissionID, orDash(e.From), orDash(e.To))
	}
	fmt.Fprintln(a.out)
	return nil
}

// Prune deletes entries older than days.
func (a *LogAdapter) Prune(ctx context.Context, days int) error {
	count, err := a.service.PruneLogs(ctx, days)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%s Pruned %d log entries older than %d days\n", okMark(), count, days)
	return nil
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
