package memory

import "github.com/prodib01/BAYLOR-CDC/internal/domain"

// Snapshot is a point-in-time copy of the whole store, keyed by id.
type Snapshot struct {
	Facilitators   map[string]domain.Facilitator   `json:"facilitators"`
	Events         map[string]domain.Event         `json:"events"`
	AgeGroups      map[string]domain.AgeGroup      `json:"age_groups"`
	Participants   map[string]domain.Participant   `json:"participants"`
	Materials      map[string]domain.Material      `json:"materials"`
	MaterialEvents map[string]domain.MaterialEvent `json:"material_events"`
	Attendances    map[string]domain.Attendance    `json:"attendances"`
	Users          map[int64]domain.User           `json:"users"`
	Tokens         map[string]domain.AuthToken     `json:"tokens"`
	NextUserID     int64                           `json:"next_user_id"`
}

func snapshotFromState(st state) Snapshot {
	c := st.clone()
	return Snapshot{
		Facilitators:   c.facilitators,
		Events:         c.events,
		AgeGroups:      c.ageGroups,
		Participants:   c.participants,
		Materials:      c.materials,
		MaterialEvents: c.materialEvents,
		Attendances:    c.attendances,
		Users:          c.users,
		Tokens:         c.tokens,
		NextUserID:     c.nextUserID,
	}
}

func stateFromSnapshot(s Snapshot) state {
	st := state{
		facilitators:   s.Facilitators,
		events:         s.Events,
		ageGroups:      s.AgeGroups,
		participants:   s.Participants,
		materials:      s.Materials,
		materialEvents: s.MaterialEvents,
		attendances:    s.Attendances,
		users:          s.Users,
		tokens:         s.Tokens,
		nextUserID:     s.NextUserID,
	}
	empty := newState()
	if st.facilitators == nil {
		st.facilitators = empty.facilitators
	}
	if st.events == nil {
		st.events = empty.events
	}
	if st.ageGroups == nil {
		st.ageGroups = empty.ageGroups
	}
	if st.participants == nil {
		st.participants = empty.participants
	}
	if st.materials == nil {
		st.materials = empty.materials
	}
	if st.materialEvents == nil {
		st.materialEvents = empty.materialEvents
	}
	if st.attendances == nil {
		st.attendances = empty.attendances
	}
	if st.users == nil {
		st.users = empty.users
	}
	if st.tokens == nil {
		st.tokens = empty.tokens
	}
	for id := range st.users {
		if id > st.nextUserID {
			st.nextUserID = id
		}
	}
	return st.clone()
}

// ExportState returns a deep copy of the current state.
func (s *Store) ExportState() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return snapshotFromState(s.state)
}

// ImportState replaces the store state with the snapshot.
func (s *Store) ImportState(snapshot Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = stateFromSnapshot(snapshot)
}
