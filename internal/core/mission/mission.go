// Package mission contains the pure business logic for the mission lifecycle.
// This is part of the Functional Core - no I/O, only pure functions and
// in-memory state.
package mission

import (
	"fmt"
	"time"

	"github.com/example/tesseract/internal/timeparsing"
)

// Partition is the lifecycle bucket a mission currently occupies.
type Partition string

const (
	PartitionUpcoming  Partition = "upcoming"
	PartitionCompleted Partition = "completed"
	PartitionArchived  Partition = "archived"
	PartitionPending   Partition = "pending"
)

// Partitions lists every partition in display order.
var Partitions = []Partition{
	PartitionUpcoming,
	PartitionPending,
	PartitionCompleted,
	PartitionArchived,
}

// ParsePartition maps a user-supplied name to a Partition.
func ParsePartition(s string) (Partition, error) {
	switch Partition(s) {
	case PartitionUpcoming, PartitionCompleted, PartitionArchived, PartitionPending:
		return Partition(s), nil
	case "current":
		return PartitionUpcoming, nil
	case "expired":
		return PartitionPending, nil
	}
	return "", fmt.Errorf("unknown partition %q (want upcoming, pending, completed or archived)", s)
}

// DefaultImage is shown for missions without an image reference.
const DefaultImage = "/images/default-mission.png"

// Mission is a schedulable event tagged with its current lifecycle state.
type Mission struct {
	ID          int64
	Name        string
	Date        string // kept verbatim; see ScheduledAt
	Description string
	Image       string
	State       Partition
}

// ScheduledAt parses the mission's date. ok is false for unparseable dates.
func (m Mission) ScheduledAt() (time.Time, bool) {
	t, err := timeparsing.ParseInstant(m.Date)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// IsUpcomingAt reports whether the mission is scheduled at or after now.
// Missions with unparseable dates never qualify.
func (m Mission) IsUpcomingAt(now time.Time) bool {
	t, ok := m.ScheduledAt()
	if !ok {
		return false
	}
	return !t.Before(now)
}

// ImageOrDefault returns the image reference, falling back to DefaultImage.
func (m Mission) ImageOrDefault() string {
	if m.Image == "" {
		return DefaultImage
	}
	return m.Image
}
