package secondary

import "context"

// LogWriter defines the interface for writing mission lifecycle log entries.
// Implementations extract the actor from context.
type LogWriter interface {
	// LogTransition records a mission moving between partitions.
	// from or to is empty when the mission entered or left tracking.
	LogTransition(ctx context.Context, missionID int64, event, from, to string) error
}

// MissionLogRepository defines the secondary port for lifecycle log persistence.
type MissionLogRepository interface {
	// Create persists a new log entry. The ID is assigned by the store.
	Create(ctx context.Context, entry *MissionLogRecord) error

	// List retrieves log entries matching the given filters, newest first.
	List(ctx context.Context, filters MissionLogFilters) ([]*MissionLogRecord, error)

	// PruneOlderThan deletes entries older than the given number of days.
	PruneOlderThan(ctx context.Context, days int) (int, error)
}

// MissionLogRecord represents a lifecycle log entry as stored in persistence.
type MissionLogRecord struct {
	ID        int64
	MissionID int64
	ActorID   string // Empty string means null
	Event     string
	FromState string // Empty string means untracked
	ToState   string // Empty string means removed
	CreatedAt string
}

// MissionLogFilters contains filter options for querying log entries.
type MissionLogFilters struct {
	MissionID int64
	Event     string
	Limit     int
}
