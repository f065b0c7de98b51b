package memory

import (
	"context"
	"time"

	"github.com/prodib01/BAYLOR-CDC/internal/domain"
)

func (s *Store) CreateAgeGroup(ctx context.Context, g domain.AgeGroup) error {
	return s.write(ctx, func(st *state) error {
		st.ageGroups[g.ID] = g
		return nil
	})
}

func (s *Store) GetAgeGroup(ctx context.Context, id string) (domain.AgeGroup, error) {
	var out domain.AgeGroup
	err := s.read(ctx, func(st *state) error {
		g, ok := st.ageGroups[id]
		if !ok {
			return domain.ErrAgeGroupNotFound
		}
		out = g
		return nil
	})
	return out, err
}

func (s *Store) ListAgeGroups(ctx context.Context) ([]domain.AgeGroup, error) {
	var out []domain.AgeGroup
	err := s.read(ctx, func(st *state) error {
		out = make([]domain.AgeGroup, 0, len(st.ageGroups))
		for _, g := range st.ageGroups {
			out = append(out, g)
		}
		return nil
	})
	sortByCreation(out, func(g domain.AgeGroup) (time.Time, string) { return g.CreatedAt, g.ID })
	return out, err
}

func (s *Store) AgeGroupsByIDs(ctx context.Context, ids []string) ([]domain.AgeGroup, error) {
	var out []domain.AgeGroup
	err := s.read(ctx, func(st *state) error {
		out = make([]domain.AgeGroup, 0, len(ids))
		for _, id := range ids {
			if g, ok := st.ageGroups[id]; ok {
				out = append(out, g)
			}
		}
		return nil
	})
	return out, err
}

func (s *Store) UpdateAgeGroup(ctx context.Context, g domain.AgeGroup) error {
	return s.write(ctx, func(st *state) error {
		existing, ok := st.ageGroups[g.ID]
		if !ok {
			return domain.ErrAgeGroupNotFound
		}
		g.CreatedAt = existing.CreatedAt
		st.ageGroups[g.ID] = g
		return nil
	})
}

// DeleteAgeGroup cascades to the participants and materials in the group.
func (s *Store) DeleteAgeGroup(ctx context.Context, id string) error {
	return s.write(ctx, func(st *state) error {
		if _, ok := st.ageGroups[id]; !ok {
			return domain.ErrAgeGroupNotFound
		}
		delete(st.ageGroups, id)
		for pID, p := range st.participants {
			if p.AgeGroupID == id {
				deleteParticipant(st, pID)
			}
		}
		for mID, m := range st.materials {
			if m.TargetGroupID == id {
				deleteMaterial(st, mID)
			}
		}
		return nil
	})
}
