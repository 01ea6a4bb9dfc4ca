package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/tesseract/internal/ports/secondary"
)

// MissionLogRepository implements secondary.MissionLogRepository with SQLite.
type MissionLogRepository struct {
	db *sql.DB
}

// NewMissionLogRepository creates a new SQLite mission log repository.
func NewMissionLogRepository(db *sql.DB) *MissionLogRepository {
	return &MissionLogRepository{db: db}
}

// Create persists a new log entry and sets its ID.
func (r *MissionLogRepository) Create(ctx context.Context, entry *secondary.MissionLogRecord) error {
	var actorID, fromState, toState sql.NullString
	if entry.ActorID != "" {
		actorID = sql.NullString{String: entry.ActorID, Valid: true}
	}
	if entry.FromState != "" {
		fromState = sql.NullString{String: entry.FromState, Valid: true}
	}
	if entry.ToState != "" {
		toState = sql.NullString{String: entry.ToState, Valid: true}
	}

	result, err := r.db.ExecContext(ctx,
		`INSERT INTO mission_logs (mission_id, actor_id, event, from_state, to_state) VALUES (?, ?, ?, ?, ?)`,
		entry.MissionID,
		actorID,
		entry.Event,
		fromState,
		toState,
	)
	if err != nil {
		return fmt.Errorf("failed to create mission log: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read mission log id: %w", err)
	}
	entry.ID = id
	return nil
}

// List retrieves log entries matching the given filters, newest first.
func (r *MissionLogRepository) List(ctx context.Context, filters secondary.MissionLogFilters) ([]*secondary.MissionLogRecord, error) {
	query := `SELECT id, mission_id, actor_id, event, from_state, to_state, created_at FROM mission_logs WHERE 1=1`
	args := []any{}

	if filters.MissionID != 0 {
		query += " AND mission_id = ?"
		args = append(args, filters.MissionID)
	}

	if filters.Event != "" {
		query += " AND event = ?"
		args = append(args, filters.Event)
	}

	query += " ORDER BY created_at DESC, id DESC"

	if filters.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filters.Limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list mission logs: %w", err)
	}
	defer rows.Close()

	var logs []*secondary.MissionLogRecord
	for rows.Next() {
		var (
			actorID   sql.NullString
			fromState sql.NullString
			toState   sql.NullString
			createdAt time.Time
		)

		record := &secondary.MissionLogRecord{}
		err := rows.Scan(&record.ID,
			&record.MissionID,
			&actorID,
			&record.Event,
			&fromState,
			&toState,
			&createdAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan mission log: %w", err)
		}
		record.ActorID = actorID.String
		record.FromState = fromState.String
		record.ToState = toState.String
		record.CreatedAt = createdAt.Format(time.RFC3339)

		logs = append(logs, record)
	}

	return logs, rows.Err()
}

// PruneOlderThan deletes log entries older than the given number of days.
func (r *MissionLogRepository) PruneOlderThan(ctx context.Context, days int) (int, error) {
	result, err := r.db.ExecContext(ctx,
		"DELETE FROM mission_logs WHERE created_at < datetime('now', ?)",
		fmt.Sprintf("-%d days", days),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to prune mission logs: %w", err)
	}

	count, _ := result.RowsAffected()
	return int(count), nil
}

// Ensure MissionLogRepository implements the interface
var _ secondary.MissionLogRepository = (*MissionLogRepository)(nil)
