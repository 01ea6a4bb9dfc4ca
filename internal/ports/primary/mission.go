// Package primary defines the primary ports (driving adapters) for the application.
// These are the interfaces through which the outside world drives the application.
package primary

import "context"

// MissionService defines the primary port for the mission lifecycle.
// Implementations live in the application layer; the CLI and the
// interactive view are its adapters.
type MissionService interface {
	// Refresh fetches all missions and recomputes the upcoming partition.
	Refresh(ctx context.Context) error

	// CreateMission validates and creates a mission on the backend, then refreshes.
	CreateMission(ctx context.Context, req CreateMissionRequest) (*CreateMissionResponse, error)

	// GetMission returns a tracked mission by ID.
	GetMission(ctx context.Context, missionID int64) (*Mission, error)

	// ListMissions lists the missions in a partition, in partition order.
	ListMissions(ctx context.Context, filters MissionFilters) ([]*Mission, error)

	// CompleteMission moves an upcoming mission to completed.
	CompleteMission(ctx context.Context, missionID int64) error

	// ExpireMission moves an upcoming mission whose countdown ended to the
	// pending-decision queue.
	ExpireMission(ctx context.Context, missionID int64) error

	// PendingDecisions lists expired missions awaiting a decision, oldest first.
	PendingDecisions(ctx context.Context) ([]*Mission, error)

	// ResolveDecision launches or archives a pending mission.
	ResolveDecision(ctx context.Context, req ResolveDecisionRequest) error

	// RescheduleMission gives an archived mission a new date and returns it to upcoming.
	RescheduleMission(ctx context.Context, req RescheduleMissionRequest) error

	// DeleteMission deletes a mission on the backend and locally.
	DeleteMission(ctx context.Context, missionID int64) error

	// PullArchive merges the backend's archived missions into the local archive.
	PullArchive(ctx context.Context) (*PullArchiveResponse, error)
}

// Partition names accepted in MissionFilters.
const (
	PartitionUpcoming  = "upcoming"
	PartitionPending   = "pending"
	PartitionCompleted = "completed"
	PartitionArchived  = "archived"
)

// Decisions accepted in ResolveDecisionRequest.
const (
	DecisionLaunch  = "launch"
	DecisionArchive = "archive"
)

// CreateMissionRequest contains parameters for creating a mission.
type CreateMissionRequest struct {
	Name        string
	Date        string
	Description string
	Image       string
}

// CreateMissionResponse contains the result of creating a mission.
type CreateMissionResponse struct {
	MissionID int64
	Mission   *Mission
}

// Mission represents a mission entity at the port boundary.
type Mission struct {
	ID          int64
	Name        string
	Date        string
	Description string
	Image       string
	State       string
}

// MissionFilters contains filter options for listing missions.
type MissionFilters struct {
	Partition string
}

// ResolveDecisionRequest contains parameters for answering an expiry prompt.
type ResolveDecisionRequest struct {
	MissionID int64
	Decision  string
}

// RescheduleMissionRequest contains parameters for rescheduling a mission.
type RescheduleMissionRequest struct {
	MissionID int64
	Date      string
}

// PullArchiveResponse contains the result of merging the remote archive.
type PullArchiveResponse struct {
	Added    int
	Archived int
}
