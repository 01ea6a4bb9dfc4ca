// Package app contains the application layer - service implementations and effect execution.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"maps"
	"slices"

	"github.com/example/tesseract/internal/core/effects"
	"github.com/example/tesseract/internal/logging"
	"github.com/example/tesseract/internal/ports/secondary"
)

// EffectExecutor interprets and executes effects.
// This is the "Imperative Shell" - the only place transition I/O happens.
type EffectExecutor interface {
	Execute(ctx context.Context, effs []effects.Effect) error
}

// DefaultEffectExecutor implements EffectExecutor against the mission API
// and archive store.
type DefaultEffectExecutor struct {
	api     secondary.MissionAPI
	archive secondary.ArchiveStore
	logger  *slog.Logger
}

// NewEffectExecutor creates a new DefaultEffectExecutor.
func NewEffectExecutor(api secondary.MissionAPI, archive secondary.ArchiveStore, logger *slog.Logger) *DefaultEffectExecutor {
	return &DefaultEffectExecutor{
		api:     api,
		archive: archive,
		logger:  logger,
	}
}

// Execute processes a slice of effects, executing each in sequence and
// stopping at the first failure. Best-effort remote failures are logged and
// skipped.
func (e *DefaultEffectExecutor) Execute(ctx context.Context, effs []effects.Effect) error {
	for _, eff := range effs {
		if err := e.executeOne(ctx, eff); err != nil {
			return fmt.Errorf("failed to execute %s effect: %w", eff.EffectType(), err)
		}
	}
	return nil
}

func (e *DefaultEffectExecutor) executeOne(ctx context.Context, eff effects.Effect) error {
	switch typed := eff.(type) {
	case effects.RemoteEffect:
		err := e.executeRemote(ctx, typed)
		if err != nil && typed.BestEffort {
			e.logger.Warn("remote sync failed",
				"operation", typed.Operation,
				"mission_id", typed.MissionID,
				"err", err)
			return nil
		}
		return err
	case effects.PersistEffect:
		return e.executePersist(ctx, typed)
	case effects.LogEffect:
		e.logger.Log(ctx, logging.ParseLevel(typed.Level), typed.Message, flatten(typed.Fields)...)
		return nil
	default:
		return fmt.Errorf("unknown effect type: %T", eff)
	}
}

func (e *DefaultEffectExecutor) executeRemote(ctx context.Context, eff effects.RemoteEffect) error {
	switch eff.Operation {
	case effects.RemoteDelete:
		return e.api.DeleteMission(ctx, eff.MissionID)
	case effects.RemoteUpdateDate:
		return e.api.UpdateMissionDate(ctx, eff.MissionID, eff.Date)
	case effects.RemoteSetArchive:
		return e.api.SetArchiveFlag(ctx, eff.MissionID)
	case effects.RemoteClearArchive:
		return e.api.ClearArchiveFlag(ctx, eff.MissionID)
	default:
		return fmt.Errorf("unknown remote operation: %s", eff.Operation)
	}
}

func (e *DefaultEffectExecutor) executePersist(ctx context.Context, eff effects.PersistEffect) error {
	switch eff.Entity {
	case "archive":
		records, ok := eff.Data.([]*secondary.MissionRecord)
		if !ok {
			return fmt.Errorf("archive persist effect carries %T, want []*secondary.MissionRecord", eff.Data)
		}
		return e.archive.Save(ctx, records)
	default:
		return fmt.Errorf("unknown persist entity: %s", eff.Entity)
	}
}

// flatten turns fields into slog key/value pairs in key order.
func flatten(fields map[string]any) []any {
	args := make([]any, 0, len(fields)*2)
	for _, k := range slices.Sorted(maps.Keys(fields)) {
		args = append(args, k, fields[k])
	}
	return args
}
