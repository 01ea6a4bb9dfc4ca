package mission

import (
	"fmt"

	"github.com/example/tesseract/internal/core/effects"
)

// Event is a lifecycle trigger.
type Event string

const (
	EventComplete   Event = "complete"   // user marks an upcoming mission complete
	EventExpire     Event = "expire"     // countdown reached zero
	EventLaunch     Event = "launch"     // decision: expired mission launched
	EventArchive    Event = "archive"    // decision: expired mission archived
	EventReschedule Event = "reschedule" // archived mission gets a new date
	EventDelete     Event = "delete"
)

// Decision is the user's answer to an expiry prompt.
type Decision string

const (
	DecisionLaunch  Decision = "launch"
	DecisionArchive Decision = "archive"
)

// Event maps a decision to its lifecycle event.
func (d Decision) Event() (Event, error) {
	switch d {
	case DecisionLaunch:
		return EventLaunch, nil
	case DecisionArchive:
		return EventArchive, nil
	}
	return "", fmt.Errorf("unknown decision %q (want launch or archive)", d)
}

// TransitionInput describes a requested transition.
// From is empty when the mission is not held in any partition.
type TransitionInput struct {
	MissionID int64
	From      Partition
	Event     Event
	NewDate   string // reschedule only
}

// TransitionPlan is the outcome of a permitted transition.
//
// Before effects must all succeed before the local move is applied; After
// effects run once the move is applied.
type TransitionPlan struct {
	From    Partition
	To      Partition // empty when Removed
	Removed bool
	Before  []effects.Effect
	After   []effects.Effect
}

type edge struct {
	from  Partition
	event Event
}

// transitionTable is the only place lifecycle moves are defined.
var transitionTable = map[edge]Partition{
	{PartitionUpcoming, EventComplete}:   PartitionCompleted,
	{PartitionUpcoming, EventExpire}:     PartitionPending,
	{PartitionPending, EventLaunch}:      PartitionCompleted,
	{PartitionPending, EventArchive}:     PartitionArchived,
	{PartitionArchived, EventReschedule}: PartitionUpcoming,
}

// Transition evaluates a lifecycle event against the transition table and
// returns the plan to execute. Delete is accepted from any partition,
// including none.
func Transition(in TransitionInput) (TransitionPlan, GuardResult) {
	if in.Event == EventDelete {
		return TransitionPlan{
			From:    in.From,
			Removed: true,
			Before: []effects.Effect{
				effects.RemoteEffect{Operation: effects.RemoteDelete, MissionID: in.MissionID},
			},
			After: persistIfArchived(in.From),
		}, GuardResult{Allowed: true}
	}

	if in.From == "" {
		return TransitionPlan{}, GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("mission %d is not tracked in any partition", in.MissionID),
		}
	}

	to, ok := transitionTable[edge{in.From, in.Event}]
	if !ok {
		return TransitionPlan{}, GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("cannot %s mission %d while it is %s", in.Event, in.MissionID, in.From),
		}
	}

	plan := TransitionPlan{From: in.From, To: to}

	switch in.Event {
	case EventExpire:
		plan.After = []effects.Effect{
			logEffect("mission expired, awaiting decision", in.MissionID),
		}
	case EventArchive:
		plan.After = []effects.Effect{
			effects.PersistEffect{Entity: "archive"},
			effects.RemoteEffect{Operation: effects.RemoteSetArchive, MissionID: in.MissionID, BestEffort: true},
			logEffect("mission archived", in.MissionID),
		}
	case EventReschedule:
		plan.Before = []effects.Effect{
			effects.RemoteEffect{Operation: effects.RemoteUpdateDate, MissionID: in.MissionID, Date: in.NewDate},
		}
		plan.After = []effects.Effect{
			effects.PersistEffect{Entity: "archive"},
			effects.RemoteEffect{Operation: effects.RemoteClearArchive, MissionID: in.MissionID, BestEffort: true},
		}
	}

	return plan, GuardResult{Allowed: true}
}

func logEffect(message string, missionID int64) effects.LogEffect {
	return effects.LogEffect{
		Level:   "info",
		Message: message,
		Fields:  map[string]any{"mission_id": missionID},
	}
}

func persistIfArchived(p Partition) []effects.Effect {
	if p == PartitionArchived {
		return []effects.Effect{effects.PersistEffect{Entity: "archive"}}
	}
	return nil
}
