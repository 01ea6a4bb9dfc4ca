package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/example/tesseract/internal/countdown"
	"github.com/example/tesseract/internal/ctxutil"
	"github.com/example/tesseract/internal/ports/primary"
)

// ExpiryWatcher keeps one countdown timer per upcoming mission and moves a
// mission into the pending-decision queue when its timer fires.
//
// Sync must be called after anything that changes the upcoming partition.
// The watcher never holds its own lock while calling into the mission
// service.
type ExpiryWatcher struct {
	missions primary.MissionService
	logger   *slog.Logger
	opts     []countdown.Option
	onExpire func(missionID int64)

	mu     sync.Mutex
	timers map[int64]*watchedTimer
	closed bool
}

type watchedTimer struct {
	date  string
	timer *countdown.Timer
}

// WatcherOption configures an ExpiryWatcher.
type WatcherOption func(*ExpiryWatcher)

// WithTimerOptions passes options to every countdown timer the watcher creates.
func WithTimerOptions(opts ...countdown.Option) WatcherOption {
	return func(w *ExpiryWatcher) { w.opts = append(w.opts, opts...) }
}

// WithExpiryHook registers fn to run after a mission was moved to pending.
func WithExpiryHook(fn func(missionID int64)) WatcherOption {
	return func(w *ExpiryWatcher) { w.onExpire = fn }
}

// NewExpiryWatcher creates a watcher over the given mission service.
func NewExpiryWatcher(missions primary.MissionService, logger *slog.Logger, opts ...WatcherOption) *ExpiryWatcher {
	w := &ExpiryWatcher{
		missions: missions,
		logger:   logger,
		timers:   make(map[int64]*watchedTimer),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Sync starts timers for upcoming missions that lack one and stops timers
// for missions that left upcoming or whose date changed.
func (w *ExpiryWatcher) Sync(ctx context.Context) error {
	upcoming, err := w.missions.ListMissions(ctx, primary.MissionFilters{Partition: primary.PartitionUpcoming})
	if err != nil {
		return fmt.Errorf("failed to list upcoming missions: %w", err)
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return nil
	}

	seen := make(map[int64]bool, len(upcoming))
	for _, m := range upcoming {
		seen[m.ID] = true
		if wt, ok := w.timers[m.ID]; ok {
			if wt.date == m.Date {
				continue
			}
			wt.timer.Stop()
		}
		w.timers[m.ID] = w.startLocked(ctx, m.ID, m.Date)
	}

	for id, wt := range w.timers {
		if !seen[id] {
			wt.timer.Stop()
			delete(w.timers, id)
		}
	}
	return nil
}

func (w *ExpiryWatcher) startLocked(ctx context.Context, missionID int64, date string) *watchedTimer {
	timerCtx := ctxutil.WithActorID(context.WithoutCancel(ctx), ctxutil.ActorTimer)
	wt := &watchedTimer{date: date}
	wt.timer = countdown.New(date, func() { w.expire(timerCtx, missionID, wt) }, w.opts...)
	if _, ok := wt.timer.Target(); !ok {
		w.logger.Warn("mission date is not a valid date/time, countdown disabled",
			"mission_id", missionID, "date", date)
	}
	wt.timer.Start()
	return wt
}

func (w *ExpiryWatcher) expire(ctx context.Context, missionID int64, wt *watchedTimer) {
	w.mu.Lock()
	replaced := w.timers[missionID] != wt
	w.mu.Unlock()
	if replaced {
		// Date changed or watcher stopped after this timer fired.
		return
	}

	err := w.missions.ExpireMission(ctx, missionID)
	if errors.Is(err, ErrInvalidTransition) {
		// Completed or deleted before the timer fired.
		w.logger.Debug("ignoring stale expiry", "mission_id", missionID)
		return
	}
	if err != nil {
		w.logger.Error("failed to expire mission", "mission_id", missionID, "err", err)
		return
	}

	w.mu.Lock()
	if w.timers[missionID] == wt {
		delete(w.timers, missionID)
	}
	w.mu.Unlock()

	if w.onExpire != nil {
		w.onExpire(missionID)
	}
}

// Display returns the countdown text for an upcoming mission.
func (w *ExpiryWatcher) Display(missionID int64) string {
	w.mu.Lock()
	defer w.mu.Unlock()
	if wt, ok := w.timers[missionID]; ok {
		return wt.timer.Display()
	}
	return countdown.Unknown
}

// Active returns the number of running timers.
func (w *ExpiryWatcher) Active() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.timers)
}

// Stop cancels every timer. Later calls to Sync do nothing.
func (w *ExpiryWatcher) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()
	for id, wt := range w.timers {
		wt.timer.Stop()
		delete(w.timers, id)
	}
	w.closed = true
}
