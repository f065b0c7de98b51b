package memory

import (
	"context"
	"time"

	"github.com/prodib01/BAYLOR-CDC/internal/domain"
)

func (s *Store) CreateParticipant(ctx context.Context, p domain.Participant) error {
	return s.write(ctx, func(st *state) error {
		if _, ok := st.ageGroups[p.AgeGroupID]; !ok {
			return missingRef("age_group", p.AgeGroupID)
		}
		st.participants[p.ID] = p
		return nil
	})
}

func (s *Store) GetParticipant(ctx context.Context, id string) (domain.Participant, error) {
	var out domain.Participant
	err := s.read(ctx, func(st *state) error {
		p, ok := st.participants[id]
		if !ok {
			return domain.ErrParticipantNotFound
		}
		out = p
		return nil
	})
	return out, err
}

func (s *Store) ListParticipants(ctx context.Context) ([]domain.Participant, error) {
	var out []domain.Participant
	err := s.read(ctx, func(st *state) error {
		out = make([]domain.Participant, 0, len(st.participants))
		for _, p := range st.participants {
			out = append(out, p)
		}
		return nil
	})
	sortByCreation(out, func(p domain.Participant) (time.Time, string) { return p.CreatedAt, p.ID })
	return out, err
}

func (s *Store) ParticipantsByIDs(ctx context.Context, ids []string) ([]domain.Participant, error) {
	var out []domain.Participant
	err := s.read(ctx, func(st *state) error {
		out = make([]domain.Participant, 0, len(ids))
		for _, id := range ids {
			if p, ok := st.participants[id]; ok {
				out = append(out, p)
			}
		}
		return nil
	})
	return out, err
}

func (s *Store) UpdateParticipant(ctx context.Context, p domain.Participant) error {
	return s.write(ctx, func(st *state) error {
		existing, ok := st.participants[p.ID]
		if !ok {
			return domain.ErrParticipantNotFound
		}
		if _, ok := st.ageGroups[p.AgeGroupID]; !ok {
			return missingRef("age_group", p.AgeGroupID)
		}
		p.CreatedAt = existing.CreatedAt
		st.participants[p.ID] = p
		return nil
	})
}

func (s *Store) DeleteParticipant(ctx context.Context, id string) error {
	return s.write(ctx, func(st *state) error {
		if _, ok := st.participants[id]; !ok {
			return domain.ErrParticipantNotFound
		}
		deleteParticipant(st, id)
		return nil
	})
}

func deleteParticipant(st *state, id string) {
	delete(st.participants, id)
	for aID, a := range st.attendances {
		if a.ParticipantID == id {
			delete(st.attendances, aID)
		}
	}
}
