package memory

import (
	"context"
	"time"

	"github.com/prodib01/BAYLOR-CDC/internal/domain"
)

func (s *Store) CreateMaterialEvent(ctx context.Context, me domain.MaterialEvent) error {
	return s.write(ctx, func(st *state) error {
		if _, ok := st.materials[me.MaterialID]; !ok {
			return missingRef("material", me.MaterialID)
		}
		if _, ok := st.events[me.EventID]; !ok {
			return missingRef("event", me.EventID)
		}
		st.materialEvents[me.ID] = me
		return nil
	})
}

func (s *Store) GetMaterialEvent(ctx context.Context, id string) (domain.MaterialEvent, error) {
	var out domain.MaterialEvent
	err := s.read(ctx, func(st *state) error {
		me, ok := st.materialEvents[id]
		if !ok {
			return domain.ErrMaterialEventNotFound
		}
		out = me
		return nil
	})
	return out, err
}

func (s *Store) ListMaterialEvents(ctx context.Context) ([]domain.MaterialEvent, error) {
	var out []domain.MaterialEvent
	err := s.read(ctx, func(st *state) error {
		out = make([]domain.MaterialEvent, 0, len(st.materialEvents))
		for _, me := range st.materialEvents {
			out = append(out, me)
		}
		return nil
	})
	sortByCreation(out, func(me domain.MaterialEvent) (time.Time, string) { return me.CreatedAt, me.ID })
	return out, err
}

func (s *Store) UpdateMaterialEvent(ctx context.Context, me domain.MaterialEvent) error {
	return s.write(ctx, func(st *state) error {
		existing, ok := st.materialEvents[me.ID]
		if !ok {
			return domain.ErrMaterialEventNotFound
		}
		if _, ok := st.materials[me.MaterialID]; !ok {
			return missingRef("material", me.MaterialID)
		}
		if _, ok := st.events[me.EventID]; !ok {
			return missingRef("event", me.EventID)
		}
		me.CreatedAt = existing.CreatedAt
		st.materialEvents[me.ID] = me
		return nil
	})
}

func (s *Store) DeleteMaterialEvent(ctx context.Context, id string) error {
	return s.write(ctx, func(st *state) error {
		if _, ok := st.materialEvents[id]; !ok {
			return domain.ErrMaterialEventNotFound
		}
		delete(st.materialEvents, id)
		return nil
	})
}
