package mission

// Store holds missions partitioned by lifecycle state.
//
// Each mission id lives in at most one partition: Add and Move always remove
// the id from every partition before inserting. Partitions keep insertion
// order, which makes the pending partition a FIFO queue of expiry prompts.
// Store is not safe for concurrent use.
type Store struct {
	parts map[Partition][]Mission
}

// NewStore creates an empty store.
func NewStore() *Store {
	s := &Store{parts: make(map[Partition][]Mission, len(Partitions))}
	for _, p := range Partitions {
		s.parts[p] = nil
	}
	return s
}

// Add inserts m into partition p, evicting any copy held elsewhere.
func (s *Store) Add(p Partition, m Mission) {
	s.Remove(m.ID)
	m.State = p
	s.parts[p] = append(s.parts[p], m)
}

// Remove drops id from every partition. Removing an absent id is a no-op.
func (s *Store) Remove(id int64) {
	for p := range s.parts {
		s.RemoveFrom(p, id)
	}
}

// RemoveFrom drops id from partition p only. Removing an absent id is a no-op.
func (s *Store) RemoveFrom(p Partition, id int64) {
	list := s.parts[p]
	for i, m := range list {
		if m.ID == id {
			s.parts[p] = append(list[:i:i], list[i+1:]...)
			return
		}
	}
}

// Move relocates id to partition to. It returns false when id is not held.
func (s *Store) Move(id int64, to Partition) bool {
	m, ok := s.Find(id)
	if !ok {
		return false
	}
	s.Add(to, m)
	return true
}

// Update replaces the stored copy of m in place, keeping its partition and
// position. It returns false when m.ID is not held.
func (s *Store) Update(m Mission) bool {
	for p, list := range s.parts {
		for i := range list {
			if list[i].ID == m.ID {
				m.State = p
				list[i] = m
				return true
			}
		}
	}
	return false
}

// Find returns the mission with id and the partition it occupies.
func (s *Store) Find(id int64) (Mission, bool) {
	for _, list := range s.parts {
		for _, m := range list {
			if m.ID == id {
				return m, true
			}
		}
	}
	return Mission{}, false
}

// Locate returns the partition holding id, or "" when absent.
func (s *Store) Locate(id int64) Partition {
	if m, ok := s.Find(id); ok {
		return m.State
	}
	return ""
}

// Partition returns a copy of partition p in insertion order.
func (s *Store) Partition(p Partition) []Mission {
	list := s.parts[p]
	out := make([]Mission, len(list))
	copy(out, list)
	return out
}

// Replace sets partition p to missions. Ids present in other partitions are
// evicted from them first.
func (s *Store) Replace(p Partition, missions []Mission) {
	s.parts[p] = nil
	for _, m := range missions {
		s.Add(p, m)
	}
}

// Held reports whether id occupies any of the given partitions.
func (s *Store) Held(id int64, in ...Partition) bool {
	loc := s.Locate(id)
	if loc == "" {
		return false
	}
	for _, p := range in {
		if p == loc {
			return true
		}
	}
	return false
}

// Len returns the total number of missions across all partitions.
func (s *Store) Len() int {
	n := 0
	for _, list := range s.parts {
		n += len(list)
	}
	return n
}
