package memory

import (
	"context"
	"time"

	"github.com/prodib01/BAYLOR-CDC/internal/domain"
)

func (s *Store) CreateFacilitator(ctx context.Context, f domain.Facilitator) error {
	return s.write(ctx, func(st *state) error {
		st.facilitators[f.ID] = cloneFacilitator(f)
		return nil
	})
}

func (s *Store) GetFacilitator(ctx context.Context, id string) (domain.Facilitator, error) {
	var out domain.Facilitator
	err := s.read(ctx, func(st *state) error {
		f, ok := st.facilitators[id]
		if !ok {
			return domain.ErrFacilitatorNotFound
		}
		out = cloneFacilitator(f)
		return nil
	})
	return out, err
}

func (s *Store) ListFacilitators(ctx context.Context) ([]domain.Facilitator, error) {
	var out []domain.Facilitator
	err := s.read(ctx, func(st *state) error {
		out = make([]domain.Facilitator, 0, len(st.facilitators))
		for _, f := range st.facilitators {
			out = append(out, cloneFacilitator(f))
		}
		return nil
	})
	sortByCreation(out, func(f domain.Facilitator) (time.Time, string) { return f.CreatedAt, f.ID })
	return out, err
}

func (s *Store) FacilitatorsByIDs(ctx context.Context, ids []string) ([]domain.Facilitator, error) {
	var out []domain.Facilitator
	err := s.read(ctx, func(st *state) error {
		out = make([]domain.Facilitator, 0, len(ids))
		for _, id := range ids {
			if f, ok := st.facilitators[id]; ok {
				out = append(out, cloneFacilitator(f))
			}
		}
		return nil
	})
	return out, err
}

func (s *Store) UpdateFacilitator(ctx context.Context, f domain.Facilitator) error {
	return s.write(ctx, func(st *state) error {
		existing, ok := st.facilitators[f.ID]
		if !ok {
			return domain.ErrFacilitatorNotFound
		}
		f.CreatedAt = existing.CreatedAt
		st.facilitators[f.ID] = cloneFacilitator(f)
		return nil
	})
}

func (s *Store) DeleteFacilitator(ctx context.Context, id string) error {
	return s.write(ctx, func(st *state) error {
		if _, ok := st.facilitators[id]; !ok {
			return domain.ErrFacilitatorNotFound
		}
		delete(st.facilitators, id)
		for eventID, e := range st.events {
			kept := e.FacilitatorIDs[:0:0]
			for _, fid := range e.FacilitatorIDs {
				if fid != id {
					kept = append(kept, fid)
				}
			}
			e.FacilitatorIDs = kept
			st.events[eventID] = e
		}
		return nil
	})
}
