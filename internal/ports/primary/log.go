package primary

import "context"

// LogService defines the primary port for the mission lifecycle log.
type LogService interface {
	// ListLogs retrieves log entries matching the given filters.
	ListLogs(ctx context.Context, filters LogFilters) ([]*LogEntry, error)

	// PruneLogs deletes log entries older than the specified number of days.
	PruneLogs(ctx context.Context, olderThanDays int) (int, error)
}

// LogEntry represents a lifecycle log entry at the port boundary.
type LogEntry struct {
	ID        int64
	MissionID int64
	ActorID   string
	Event     string
	From      string
	To        string
	CreatedAt string
}

// LogFilters contains filter options for querying logs.
type LogFilters struct {
	MissionID int64
	Event     string
	Limit     int
}
