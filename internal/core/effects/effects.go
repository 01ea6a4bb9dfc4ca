// Package effects defines effect types as data structures representing I/O operations.
// This is the foundation of the Functional Core / Imperative Shell pattern.
// Effects are pure data - they describe what should happen, not how.
package effects

// Effect is the base interface for all effects.
// Effects represent I/O operations as data that can be interpreted by the shell.
type Effect interface {
	// EffectType returns a string identifier for the effect type.
	EffectType() string
}

// Remote operations understood by the shell.
const (
	RemoteDelete       = "delete"
	RemoteUpdateDate   = "update_date"
	RemoteSetArchive   = "set_archive"
	RemoteClearArchive = "clear_archive"
)

// RemoteEffect represents a call against the missions REST API.
type RemoteEffect struct {
	Operation string // one of the Remote* constants
	MissionID int64
	Date      string // new date for update_date

	// BestEffort failures are logged and do not fail the transition.
	BestEffort bool
}

func (e RemoteEffect) EffectType() string { return "remote" }

// PersistEffect represents a write to durable local storage.
type PersistEffect struct {
	Entity string // "archive" is the only persisted partition
	Data   any    // snapshot to write, filled in by the shell
}

func (e PersistEffect) EffectType() string { return "persist" }

// LogEffect represents a logging operation.
type LogEffect struct {
	Level   string
	Message string
	Fields  map[string]any
}

func (e LogEffect) EffectType() string { return "log" }
