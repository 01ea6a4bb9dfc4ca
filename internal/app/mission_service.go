package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/example/tesseract/internal/core/effects"
	coremission "github.com/example/tesseract/internal/core/mission"
	"github.com/example/tesseract/internal/ports/primary"
	"github.com/example/tesseract/internal/ports/secondary"
	"github.com/example/tesseract/internal/timeparsing"
)

// MissionServiceImpl implements the MissionService interface.
//
// It owns the in-memory mission store. The store is guarded by mu, which is
// never held across a remote call: remote-backed transitions validate under
// the lock, call the backend unlocked, then re-check and apply under the lock.
type MissionServiceImpl struct {
	api       secondary.MissionAPI
	archive   secondary.ArchiveStore
	logWriter secondary.LogWriter
	executor  EffectExecutor
	logger    *slog.Logger
	now       func() time.Time

	mu    sync.Mutex
	store *coremission.Store
}

// NewMissionService creates a new MissionService and loads the persisted archive.
// A corrupt archive snapshot is logged and treated as empty.
func NewMissionService(
	ctx context.Context,
	api secondary.MissionAPI,
	archive secondary.ArchiveStore,
	logWriter secondary.LogWriter,
	executor EffectExecutor,
	logger *slog.Logger,
) (*MissionServiceImpl, error) {
	s := &MissionServiceImpl{
		api:       api,
		archive:   archive,
		logWriter: logWriter,
		executor:  executor,
		logger:    logger,
		now:       time.Now,
		store:     coremission.NewStore(),
	}

	records, err := archive.Load(ctx)
	if errors.Is(err, secondary.ErrCorruptSnapshot) {
		logger.Warn("ignoring unreadable archive snapshot", "err", err)
		records = nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to load archive: %w", err)
	}
	for _, r := range records {
		s.store.Add(coremission.PartitionArchived, recordToMission(r))
	}

	return s, nil
}

// Refresh fetches all missions and replaces the upcoming partition with those
// scheduled at or after now that are not held locally in another partition.
func (s *MissionServiceImpl) Refresh(ctx context.Context) error {
	records, err := s.api.ListMissions(ctx)
	if err != nil {
		s.logger.Error("failed to fetch missions", "err", err)
		return fmt.Errorf("failed to fetch missions: %w", err)
	}

	fetched := make([]coremission.Mission, len(records))
	for i, r := range records {
		fetched[i] = recordToMission(r)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	held := func(id int64) bool {
		return s.store.Held(id,
			coremission.PartitionArchived,
			coremission.PartitionCompleted,
			coremission.PartitionPending)
	}
	upcoming := coremission.ComputeUpcoming(fetched, held, s.now())
	s.store.Replace(coremission.PartitionUpcoming, upcoming)

	s.logger.Debug("missions refreshed", "fetched", len(records), "upcoming", len(upcoming))
	return nil
}

// CreateMission creates a new mission.
func (s *MissionServiceImpl) CreateMission(ctx context.Context, req primary.CreateMissionRequest) (*primary.CreateMissionResponse, error) {
	// 1. Guard check - no network call on invalid input
	guardCtx := coremission.CreateContext{
		Name:      req.Name,
		Date:      req.Date,
		DateValid: timeparsing.IsValidInstant(req.Date),
	}
	if result := coremission.CanCreateMission(guardCtx); !result.Allowed {
		return nil, fmt.Errorf("%w: %s", ErrValidation, result.Reason)
	}

	// 2. Remote create assigns the ID
	record, err := s.api.CreateMission(ctx, &secondary.NewMissionRecord{
		Name:        req.Name,
		Date:        req.Date,
		Description: req.Description,
		Image:       req.Image,
	})
	if err != nil {
		s.logger.Error("failed to create mission", "name", req.Name, "err", err)
		return nil, fmt.Errorf("failed to create mission: %w", err)
	}

	// 3. The new mission enters upcoming through a full refresh
	if err := s.Refresh(ctx); err != nil {
		s.logger.Warn("refresh after create failed", "mission_id", record.ID, "err", err)
	}

	// An empty create response carries no id; the mission shows up on a later refresh.
	if record.ID == 0 {
		s.logger.Warn("backend did not return the created mission", "name", req.Name)
		return &primary.CreateMissionResponse{Mission: missionToPrimary(recordToMission(record))}, nil
	}

	mission := recordToMission(record)
	s.mu.Lock()
	if tracked, ok := s.store.Find(record.ID); ok {
		mission = tracked
	}
	s.mu.Unlock()

	s.logTransition(ctx, record.ID, "create", "", string(mission.State))

	return &primary.CreateMissionResponse{
		MissionID: record.ID,
		Mission:   missionToPrimary(mission),
	}, nil
}

// GetMission retrieves a tracked mission by ID.
func (s *MissionServiceImpl) GetMission(ctx context.Context, missionID int64) (*primary.Mission, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, ok := s.store.Find(missionID)
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrMissionNotFound, missionID)
	}
	return missionToPrimary(m), nil
}

// ListMissions lists missions in one partition, or in all partitions when
// no partition is given.
func (s *MissionServiceImpl) ListMissions(ctx context.Context, filters primary.MissionFilters) ([]*primary.Mission, error) {
	partitions := coremission.Partitions
	if filters.Partition != "" {
		p, err := coremission.ParsePartition(filters.Partition)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrValidation, err)
		}
		partitions = []coremission.Partition{p}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var missions []*primary.Mission
	for _, p := range partitions {
		for _, m := range s.store.Partition(p) {
			missions = append(missions, missionToPrimary(m))
		}
	}
	return missions, nil
}

// CompleteMission marks an upcoming mission as complete.
func (s *MissionServiceImpl) CompleteMission(ctx context.Context, missionID int64) error {
	return s.apply(ctx, coremission.TransitionInput{
		MissionID: missionID,
		Event:     coremission.EventComplete,
	}, nil)
}

// ExpireMission moves an upcoming mission into the pending-decision queue.
func (s *MissionServiceImpl) ExpireMission(ctx context.Context, missionID int64) error {
	return s.apply(ctx, coremission.TransitionInput{
		MissionID: missionID,
		Event:     coremission.EventExpire,
	}, nil)
}

// PendingDecisions lists expired missions awaiting a decision, oldest first.
func (s *MissionServiceImpl) PendingDecisions(ctx context.Context) ([]*primary.Mission, error) {
	return s.ListMissions(ctx, primary.MissionFilters{Partition: primary.PartitionPending})
}

// ResolveDecision launches or archives a pending mission.
func (s *MissionServiceImpl) ResolveDecision(ctx context.Context, req primary.ResolveDecisionRequest) error {
	decision := coremission.Decision(req.Decision)
	event, err := decision.Event()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}

	s.mu.Lock()
	current := s.store.Locate(req.MissionID)
	s.mu.Unlock()

	guardCtx := coremission.DecisionContext{
		MissionID: req.MissionID,
		Decision:  decision,
		Current:   current,
	}
	if result := coremission.CanResolveDecision(guardCtx); !result.Allowed {
		return fmt.Errorf("%w: %s", ErrInvalidTransition, result.Reason)
	}

	return s.apply(ctx, coremission.TransitionInput{
		MissionID: req.MissionID,
		Event:     event,
	}, nil)
}

// RescheduleMission gives an archived mission a new date and returns it to upcoming.
func (s *MissionServiceImpl) RescheduleMission(ctx context.Context, req primary.RescheduleMissionRequest) error {
	s.mu.Lock()
	current := s.store.Locate(req.MissionID)
	s.mu.Unlock()

	at, parseErr := timeparsing.ParseInstant(req.Date)
	guardCtx := coremission.RescheduleContext{
		MissionID: req.MissionID,
		Date:      req.Date,
		DateValid: parseErr == nil,
		InFuture:  parseErr == nil && !at.Before(s.now()),
		Current:   current,
	}
	if result := coremission.CanRescheduleMission(guardCtx); !result.Allowed {
		return fmt.Errorf("%w: %s", ErrValidation, result.Reason)
	}

	return s.apply(ctx, coremission.TransitionInput{
		MissionID: req.MissionID,
		Event:     coremission.EventReschedule,
		NewDate:   req.Date,
	}, func(m *coremission.Mission) {
		m.Date = req.Date
	})
}

// DeleteMission deletes a mission on the backend and from whichever
// partition holds it. A mission the backend no longer knows counts as
// deleted, so repeating a delete is a no-op.
func (s *MissionServiceImpl) DeleteMission(ctx context.Context, missionID int64) error {
	return s.apply(ctx, coremission.TransitionInput{
		MissionID: missionID,
		Event:     coremission.EventDelete,
	}, nil)
}

// PullArchive merges the backend's archived missions into the local archive.
func (s *MissionServiceImpl) PullArchive(ctx context.Context) (*primary.PullArchiveResponse, error) {
	records, err := s.api.ListArchived(ctx)
	if err != nil {
		s.logger.Error("failed to fetch archived missions", "err", err)
		return nil, fmt.Errorf("failed to fetch archived missions: %w", err)
	}

	s.mu.Lock()
	// Missions tracked locally elsewhere keep their local state.
	var remote []coremission.Mission
	for _, r := range records {
		if s.store.Held(r.ID, coremission.PartitionUpcoming, coremission.PartitionCompleted, coremission.PartitionPending) {
			continue
		}
		remote = append(remote, recordToMission(r))
	}
	local := s.store.Partition(coremission.PartitionArchived)
	merged := coremission.MergeArchived(local, remote)
	added := merged[len(local):]
	s.store.Replace(coremission.PartitionArchived, merged)
	persistErr := s.persistArchiveLocked(ctx)
	s.mu.Unlock()

	for _, m := range added {
		s.logTransition(ctx, m.ID, "pull_archive", "", string(coremission.PartitionArchived))
	}
	if persistErr != nil {
		return nil, persistErr
	}

	return &primary.PullArchiveResponse{
		Added:    len(added),
		Archived: len(merged),
	}, nil
}

// apply runs a lifecycle transition end to end: guard, remote confirmation,
// local move, persistence, best-effort remote sync, log entry.
func (s *MissionServiceImpl) apply(ctx context.Context, in coremission.TransitionInput, mutate func(*coremission.Mission)) error {
	// 1. Evaluate the transition against the current partition
	s.mu.Lock()
	in.From = s.store.Locate(in.MissionID)
	plan, result := coremission.Transition(in)
	if result.Allowed && len(plan.Before) == 0 {
		// Local-only transitions complete without releasing the lock.
		persistErr := s.commitLocked(ctx, in, plan, mutate)
		s.mu.Unlock()
		return s.finish(ctx, in, plan, persistErr)
	}
	s.mu.Unlock()

	if !result.Allowed {
		return fmt.Errorf("%w: %s", ErrInvalidTransition, result.Reason)
	}

	// 2. Remote confirmation; local state is untouched on failure
	if err := s.executor.Execute(ctx, plan.Before); err != nil {
		if in.Event == coremission.EventDelete && errors.Is(err, secondary.ErrNotFound) {
			s.logger.Debug("mission already deleted on backend", "mission_id", in.MissionID)
		} else {
			s.logger.Error("remote call failed",
				"event", in.Event,
				"mission_id", in.MissionID,
				"err", err)
			return fmt.Errorf("failed to %s mission %d: %w", in.Event, in.MissionID, err)
		}
	}

	// 3. Re-check and apply locally
	s.mu.Lock()
	if current := s.store.Locate(in.MissionID); current != plan.From && !plan.Removed {
		s.mu.Unlock()
		return fmt.Errorf("%w: mission %d changed from %s to %s while %s was in flight",
			ErrInvalidTransition, in.MissionID, plan.From, current, in.Event)
	}
	persistErr := s.commitLocked(ctx, in, plan, mutate)
	s.mu.Unlock()

	return s.finish(ctx, in, plan, persistErr)
}

// commitLocked applies the local move and executes persist effects. mu must be held.
func (s *MissionServiceImpl) commitLocked(ctx context.Context, in coremission.TransitionInput, plan coremission.TransitionPlan, mutate func(*coremission.Mission)) error {
	// The mission may have entered or left archived while a remote call was in flight.
	wasArchived := s.store.Locate(in.MissionID) == coremission.PartitionArchived

	if plan.Removed {
		s.store.Remove(in.MissionID)
	} else {
		if mutate != nil {
			if m, ok := s.store.Find(in.MissionID); ok {
				mutate(&m)
				s.store.Update(m)
			}
		}
		s.store.Move(in.MissionID, plan.To)
	}

	persist := false
	for _, eff := range plan.After {
		if p, ok := eff.(effects.PersistEffect); ok && p.Entity == "archive" {
			persist = true
		}
	}
	// plan.After reflects the partition seen before the remote call; a
	// delete rewrites the snapshot based on where the mission was at commit.
	if plan.Removed {
		persist = wasArchived
	}
	if !persist {
		return nil
	}
	return s.persistArchiveLocked(ctx)
}

// finish runs the non-persist after-effects and records the transition.
func (s *MissionServiceImpl) finish(ctx context.Context, in coremission.TransitionInput, plan coremission.TransitionPlan, persistErr error) error {
	var rest []effects.Effect
	for _, eff := range plan.After {
		if _, ok := eff.(effects.PersistEffect); !ok {
			rest = append(rest, eff)
		}
	}
	if err := s.executor.Execute(ctx, rest); err != nil {
		s.logger.Warn("post-transition effects failed", "mission_id", in.MissionID, "err", err)
	}

	s.logTransition(ctx, in.MissionID, string(in.Event), string(plan.From), string(plan.To))

	return persistErr
}

// persistArchiveLocked writes the archived partition to the archive store. mu must be held.
func (s *MissionServiceImpl) persistArchiveLocked(ctx context.Context) error {
	archived := s.store.Partition(coremission.PartitionArchived)
	records := make([]*secondary.MissionRecord, len(archived))
	for i, m := range archived {
		records[i] = missionToRecord(m)
	}

	eff := effects.PersistEffect{Entity: "archive", Data: records}
	if err := s.executor.Execute(ctx, []effects.Effect{eff}); err != nil {
		s.logger.Error("failed to persist archive", "count", len(records), "err", err)
		return fmt.Errorf("failed to persist archive: %w", err)
	}
	return nil
}

func (s *MissionServiceImpl) logTransition(ctx context.Context, missionID int64, event, from, to string) {
	if s.logWriter == nil {
		return
	}
	if err := s.logWriter.LogTransition(ctx, missionID, event, from, to); err != nil {
		s.logger.Warn("failed to record lifecycle log entry", "mission_id", missionID, "event", event, "err", err)
	}
}

// Helper methods

func recordToMission(r *secondary.MissionRecord) coremission.Mission {
	return coremission.Mission{
		ID:          r.ID,
		Name:        r.Name,
		Date:        r.Date,
		Description: r.Description,
		Image:       r.Image,
	}
}

func missionToRecord(m coremission.Mission) *secondary.MissionRecord {
	return &secondary.MissionRecord{
		ID:          m.ID,
		Name:        m.Name,
		Date:        m.Date,
		Description: m.Description,
		Image:       m.Image,
	}
}

func missionToPrimary(m coremission.Mission) *primary.Mission {
	return &primary.Mission{
		ID:          m.ID,
		Name:        m.Name,
		Date:        m.Date,
		Description: m.Description,
		Image:       m.ImageOrDefault(),
		State:       string(m.State),
	}
}

// Ensure MissionServiceImpl implements the interface
var _ primary.MissionService = (*MissionServiceImpl)(nil)
