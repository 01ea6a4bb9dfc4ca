// Package countdown renders the time remaining until a mission and signals
// expiry exactly once.
package countdown

import (
	"fmt"
	"sync"
	"time"

	"github.com/example/tesseract/internal/timeparsing"
)

// Zero is displayed once the target has been reached.
const Zero = "00:00:00"

// Unknown is displayed for targets that cannot be parsed. Such timers never expire.
const Unknown = "--:--:--"

// DefaultInterval is how often a running timer recomputes its display.
const DefaultInterval = time.Second

// Format renders d as HH:MM:SS. Hours are not wrapped at 24, so a mission
// 30 hours away reads "30:00:00". Non-positive durations clamp to Zero.
func Format(d time.Duration) string {
	if d <= 0 {
		return Zero
	}
	total := int64(d / time.Second)
	hours := total / 3600
	minutes := (total % 3600) / 60
	seconds := total % 60
	return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
}

// Option configures a Timer.
type Option func(*Timer)

// WithInterval overrides DefaultInterval.
func WithInterval(d time.Duration) Option {
	return func(t *Timer) { t.interval = d }
}

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(t *Timer) { t.now = now }
}

// WithOnTick registers a callback receiving every recomputed display value.
func WithOnTick(fn func(display string)) Option {
	return func(t *Timer) { t.onTick = fn }
}

// Timer counts down to a target instant on its own goroutine.
type Timer struct {
	target   time.Time
	valid    bool
	interval time.Duration
	now      func() time.Time
	onExpire func()
	onTick   func(string)

	mu      sync.Mutex
	display string
	expired bool
	started bool
	stopped bool
	stop    chan struct{}
	done    chan struct{}
	fire    sync.Once
}

// New creates a timer for target. onExpire may be nil.
func New(target string, onExpire func(), opts ...Option) *Timer {
	t := &Timer{
		interval: DefaultInterval,
		now:      time.Now,
		onExpire: onExpire,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(t)
	}
	if at, err := timeparsing.ParseInstant(target); err == nil {
		t.target = at
		t.valid = true
		t.display = Format(at.Sub(t.now()))
	} else {
		t.display = Unknown
	}
	return t
}

// Target returns the parsed target and whether it was valid.
func (t *Timer) Target() (time.Time, bool) {
	return t.target, t.valid
}

// Start begins the periodic computation. Calling Start more than once, or
// after Stop, has no effect.
func (t *Timer) Start() {
	t.mu.Lock()
	if t.started || t.stopped {
		t.mu.Unlock()
		return
	}
	t.started = true
	t.mu.Unlock()

	go t.run()
}

// Stop cancels the periodic computation. It is idempotent and safe to call
// from inside the timer's own callbacks. Once Stop returns no new tick
// begins; a callback already running when Stop is called may still finish,
// so expiry handlers must tolerate a mission that has moved on.
func (t *Timer) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.stopped {
		return
	}
	t.stopped = true
	close(t.stop)
}

// Done is closed when the timer goroutine exits, either after expiry or
// after Stop. It is never closed for a timer that was not started.
func (t *Timer) Done() <-chan struct{} {
	return t.done
}

// Display returns the most recent remaining-time string.
func (t *Timer) Display() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.display
}

// Expired reports whether the target was reached.
func (t *Timer) Expired() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.expired
}

func (t *Timer) run() {
	defer close(t.done)

	if !t.valid {
		<-t.stop
		return
	}

	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	for {
		select {
		case <-t.stop:
			return
		case <-ticker.C:
			if t.tick() {
				return
			}
		}
	}
}

// tick recomputes the display and reports whether the timer finished.
func (t *Timer) tick() bool {
	remaining := t.target.Sub(t.now())

	t.mu.Lock()
	if t.stopped {
		t.mu.Unlock()
		return true
	}
	finished := remaining <= 0
	t.display = Format(remaining)
	if finished {
		t.expired = true
	}
	display := t.display
	t.mu.Unlock()

	if t.onTick != nil {
		t.onTick(display)
	}
	if finished && t.onExpire != nil {
		t.fire.Do(t.onExpire)
	}
	return finished
}
