package app

import (
	"context"
	"errors"
	"testing"

	"github.com/example/tesseract/internal/ports/primary"
	"github.com/example/tesseract/internal/ports/secondary"
)

// mockMissionLogRepository implements secondary.MissionLogRepository for testing.
type mockMissionLogRepository struct {
	logs    []*secondary.MissionLogRecord
	listErr error
	pruned  int
	nextID  int64
}

func (m *mockMissionLogRepository) Create(ctx context.Context, entry *secondary.MissionLogRecord) error {
	m.nextID++
	entry.ID = m.nextID
	m.logs = append(m.logs, entry)
	return nil
}

func (m *mockMissionLogRepository) List(ctx context.Context, filters secondary.MissionLogFilters) ([]*secondary.MissionLogRecord, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	var result []*secondary.MissionLogRecord
	for _, l := range m.logs {
		if filters.MissionID != 0 && l.MissionID != filters.MissionID {
			continue
		}
		if filters.Event != "" && l.Event != filters.Event {
			continue
		}
		result = append(result, l)
	}

	// Apply limit
	if filters.Limit > 0 && len(result) > filters.Limit {
		result = result[:filters.Limit]
	}
	return result, nil
}

func (m *mockMissionLogRepository) PruneOlderThan(ctx context.Context, days int) (int, error) {
	return m.pruned, nil
}

func newTestLogService() (*LogServiceImpl, *mockMissionLogRepository) {
	repo := &mockMissionLogRepository{}
	return NewLogService(repo), repo
}

func TestLogService_ListLogs(t *testing.T) {
	service, repo := newTestLogService()
	ctx := context.Background()

	_ = repo.Create(ctx, &secondary.MissionLogRecord{MissionID: 1, Event: "create", ToState: "upcoming", ActorID: "cli"})
	_ = repo.Create(ctx, &secondary.MissionLogRecord{MissionID: 1, Event: "expire", FromState: "upcoming", ToState: "pending", ActorID: "timer"})
	_ = repo.Create(ctx, &secondary.MissionLogRecord{MissionID: 2, Event: "create", ToState: "upcoming"})

	logs, err := service.ListLogs(ctx, primary.LogFilters{MissionID: 1})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(logs) != 2 {
		t.Fatalf("expected 2 logs, got %d", len(logs))
	}
	if logs[1].From != "upcoming" || logs[1].To != "pending" || logs[1].ActorID != "timer" {
		t.Errorf("unexpected entry %+v", logs[1])
	}
}

func TestLogService_ListLogs_FilterAndLimit(t *testing.T) {
	service, repo := newTestLogService()
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_ = repo.Create(ctx, &secondary.MissionLogRecord{MissionID: int64(i), Event: "create"})
	}
	_ = repo.Create(ctx, &secondary.MissionLogRecord{MissionID: 9, Event: "delete"})

	logs, err := service.ListLogs(ctx, primary.LogFilters{Event: "create", Limit: 3})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(logs) != 3 {
		t.Errorf("expected 3 logs, got %d", len(logs))
	}
}

func TestLogService_ListLogs_Error(t *testing.T) {
	service, repo := newTestLogService()
	repo.listErr = errors.New("database is locked")

	if _, err := service.ListLogs(context.Background(), primary.LogFilters{}); err == nil {
		t.Fatal("expected error, got nil")
	}
}

func TestLogService_PruneLogs(t *testing.T) {
	service, repo := newTestLogService()
	repo.pruned = 4

	count, err := service.PruneLogs(context.Background(), 30)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if count != 4 {
		t.Errorf("expected 4 pruned, got %d", count)
	}

	if _, err := service.PruneLogs(context.Background(), -1); !errors.Is(err, ErrValidation) {
		t.Errorf("expected ErrValidation for negative days, got %v", err)
	}
}
