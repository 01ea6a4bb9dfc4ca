package app

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/example/tesseract/internal/core/effects"
	"github.com/example/tesseract/internal/ports/secondary"
)

func newTestExecutor() (*DefaultEffectExecutor, *mockMissionAPI, *mockArchiveStore, *bytes.Buffer) {
	api := newMockMissionAPI()
	archive := &mockArchiveStore{}
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return NewEffectExecutor(api, archive, logger), api, archive, &buf
}

func TestExecute_LogEffect(t *testing.T) {
	executor, _, _, buf := newTestExecutor()

	err := executor.Execute(context.Background(), []effects.Effect{
		effects.LogEffect{
			Level:   "info",
			Message: "mission archived",
			Fields:  map[string]any{"mission_id": int64(3), "actor": "user"},
		},
	})

	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "level=INFO") || !strings.Contains(out, `msg="mission archived"`) {
		t.Errorf("unexpected log line: %s", out)
	}
	if !strings.Contains(out, "actor=user mission_id=3") {
		t.Errorf("expected fields in key order, got: %s", out)
	}
}

func TestExecute_BestEffortRemoteFailureIsLogged(t *testing.T) {
	executor, api, archive, buf := newTestExecutor()
	api.setArchiveErr = errors.New("502")

	err := executor.Execute(context.Background(), []effects.Effect{
		effects.RemoteEffect{Operation: effects.RemoteSetArchive, MissionID: 1, BestEffort: true},
		effects.PersistEffect{Entity: "archive", Data: []*secondary.MissionRecord{{ID: 1}}},
	})

	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !strings.Contains(buf.String(), "remote sync failed") {
		t.Errorf("expected a warning, got: %s", buf.String())
	}
	if archive.saves != 1 {
		t.Errorf("expected later effects to run, got %d saves", archive.saves)
	}
}

func TestExecute_StopsAtFirstFailure(t *testing.T) {
	executor, api, archive, _ := newTestExecutor()
	api.updateErr = errors.New("500")

	err := executor.Execute(context.Background(), []effects.Effect{
		effects.RemoteEffect{Operation: effects.RemoteUpdateDate, MissionID: 1, Date: "2030-01-01"},
		effects.PersistEffect{Entity: "archive", Data: []*secondary.MissionRecord{}},
	})

	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if archive.saves != 0 {
		t.Errorf("expected no save after a failed remote call, got %d", archive.saves)
	}
}

func TestExecute_PersistRejectsUnknownData(t *testing.T) {
	tests := []struct {
		name string
		eff  effects.PersistEffect
	}{
		{"wrong data", effects.PersistEffect{Entity: "archive", Data: "oops"}},
		{"unknown entity", effects.PersistEffect{Entity: "completed", Data: []*secondary.MissionRecord{}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			executor, _, _, _ := newTestExecutor()

			if err := executor.Execute(context.Background(), []effects.Effect{tt.eff}); err == nil {
				t.Fatal("expected error, got nil")
			}
		})
	}
}
