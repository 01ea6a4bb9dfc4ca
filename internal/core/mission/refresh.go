package mission

import "time"

// ComputeUpcoming derives the Upcoming partition from a remote snapshot.
//
// A fetched mission qualifies when it is scheduled at or after now and
// excluded(id) is false. Callers exclude ids held locally in Archived,
// Completed or Pending so local-only state survives a refresh. The result is
// a full replacement, not a merge; duplicate ids in the snapshot keep their
// first occurrence.
func ComputeUpcoming(fetched []Mission, excluded func(id int64) bool, now time.Time) []Mission {
	seen := make(map[int64]bool, len(fetched))
	upcoming := make([]Mission, 0, len(fetched))
	for _, m := range fetched {
		if seen[m.ID] {
			continue
		}
		seen[m.ID] = true
		if !m.IsUpcomingAt(now) {
			continue
		}
		if excluded != nil && excluded(m.ID) {
			continue
		}
		m.State = PartitionUpcoming
		upcoming = append(upcoming, m)
	}
	return upcoming
}

// MergeArchived folds remote archived missions into the local archive.
// Local copies win for ids present in both; remote-only missions are
// appended in snapshot order.
func MergeArchived(local, remote []Mission) []Mission {
	merged := make([]Mission, 0, len(local)+len(remote))
	seen := make(map[int64]bool, len(local)+len(remote))
	for _, m := range local {
		if seen[m.ID] {
			continue
		}
		seen[m.ID] = true
		m.State = PartitionArchived
		merged = append(merged, m)
	}
	for _, m := range remote {
		if seen[m.ID] {
			continue
		}
		seen[m.ID] = true
		m.State = PartitionArchived
		merged = append(merged, m)
	}
	return merged
}
