package mission

import (
	"fmt"
	"strings"
)

// GuardResult represents the outcome of a guard evaluation.
type GuardResult struct {
	Allowed bool
	Reason  string // Human-readable reason (populated when not allowed)
}

// Error returns the guard result as an error if not allowed, nil otherwise.
func (r GuardResult) Error() error {
	if r.Allowed {
		return nil
	}
	return fmt.Errorf("%s", r.Reason)
}

// CreateContext provides context for mission creation guards.
type CreateContext struct {
	Name      string
	Date      string
	DateValid bool // Date parses as an absolute instant
}

// RescheduleContext provides context for reschedule guards.
type RescheduleContext struct {
	MissionID int64
	Date      string
	DateValid bool
	InFuture  bool      // Date is at or after now
	Current   Partition // empty when the mission is not tracked
}

// DecisionContext provides context for expiry decision guards.
type DecisionContext struct {
	MissionID int64
	Decision  Decision
	Current   Partition
}

// CanCreateMission evaluates whether a mission can be created.
// Rules:
// - Name must be non-empty
// - Date must be non-empty and parseable
func CanCreateMission(ctx CreateContext) GuardResult {
	if strings.TrimSpace(ctx.Name) == "" {
		return GuardResult{Allowed: false, Reason: "mission name is required"}
	}
	if strings.TrimSpace(ctx.Date) == "" {
		return GuardResult{Allowed: false, Reason: "mission date is required"}
	}
	if !ctx.DateValid {
		return GuardResult{Allowed: false, Reason: fmt.Sprintf("mission date %q is not a valid date/time", ctx.Date)}
	}

	return GuardResult{Allowed: true}
}

// CanRescheduleMission evaluates whether an archived mission can be given a new date.
// Rules:
// - A mission must be selected and a new date supplied
// - The new date must be valid and not in the past
// - The mission must currently be archived
func CanRescheduleMission(ctx RescheduleContext) GuardResult {
	if ctx.MissionID == 0 {
		return GuardResult{Allowed: false, Reason: "no mission selected for reschedule"}
	}
	if strings.TrimSpace(ctx.Date) == "" {
		return GuardResult{Allowed: false, Reason: "new date is required"}
	}
	if !ctx.DateValid {
		return GuardResult{Allowed: false, Reason: fmt.Sprintf("new date %q is not a valid date/time", ctx.Date)}
	}
	if !ctx.InFuture {
		return GuardResult{Allowed: false, Reason: fmt.Sprintf("new date %s is in the past", ctx.Date)}
	}
	if ctx.Current != PartitionArchived {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("only archived missions can be rescheduled (mission %d is %s)", ctx.MissionID, describe(ctx.Current)),
		}
	}

	return GuardResult{Allowed: true}
}

// CanResolveDecision evaluates whether an expiry decision can be applied.
// Rules:
// - Decision must be launch or archive
// - Mission must be awaiting a decision
func CanResolveDecision(ctx DecisionContext) GuardResult {
	if _, err := ctx.Decision.Event(); err != nil {
		return GuardResult{Allowed: false, Reason: err.Error()}
	}
	if ctx.Current != PartitionPending {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("mission %d is not awaiting a decision (it is %s)", ctx.MissionID, describe(ctx.Current)),
		}
	}

	return GuardResult{Allowed: true}
}

func describe(p Partition) string {
	if p == "" {
		return "untracked"
	}
	return string(p)
}
