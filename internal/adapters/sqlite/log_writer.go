package sqlite

import (
	"context"

	"github.com/example/tesseract/internal/ctxutil"
	"github.com/example/tesseract/internal/ports/secondary"
)

// LogWriterAdapter implements secondary.LogWriter using MissionLogRepository.
type LogWriterAdapter struct {
	logRepo secondary.MissionLogRepository
}

// NewLogWriterAdapter creates a new LogWriterAdapter.
func NewLogWriterAdapter(logRepo secondary.MissionLogRepository) *LogWriterAdapter {
	return &LogWriterAdapter{logRepo: logRepo}
}

// LogTransition records a mission moving between partitions.
func (w *LogWriterAdapter) LogTransition(ctx context.Context, missionID int64, event, from, to string) error {
	// Get actor from context
	actorID := ctxutil.ActorFromContext(ctx)

	record := &secondary.MissionLogRecord{
		MissionID: missionID,
		ActorID:   actorID,
		Event:     event,
		FromState: from,
		ToState:   to,
	}

	return w.logRepo.Create(ctx, record)
}

// Ensure LogWriterAdapter implements the interface
var _ secondary.LogWriter = (*LogWriterAdapter)(nil)
