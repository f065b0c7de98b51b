package memory

import (
	"context"
	"time"

	"github.com/prodib01/BAYLOR-CDC/internal/domain"
)

func checkFacilitators(st *state, ids []string) error {
	for _, id := range ids {
		if _, ok := st.facilitators[id]; !ok {
			return missingRef("facilitators", id)
		}
	}
	return nil
}

func (s *Store) CreateEvent(ctx context.Context, e domain.Event) error {
	return s.write(ctx, func(st *state) error {
		if err := checkFacilitators(st, e.FacilitatorIDs); err != nil {
			return err
		}
		st.events[e.ID] = cloneEvent(e)
		return nil
	})
}

func (s *Store) GetEvent(ctx context.Context, id string) (domain.Event, error) {
	var out domain.Event
	err := s.read(ctx, func(st *state) error {
		e, ok := st.events[id]
		if !ok {
			return domain.ErrEventNotFound
		}
		out = cloneEvent(e)
		return nil
	})
	return out, err
}

// GetEventForUpdate must run inside WithTx, like GetMaterialForUpdate.
func (s *Store) GetEventForUpdate(ctx context.Context, id string) (domain.Event, error) {
	if tx := txFromContext(ctx); tx == nil || !tx.write {
		return domain.Event{}, errReadOnly
	}
	return s.GetEvent(ctx, id)
}

func (s *Store) EventExists(ctx context.Context, id string) (bool, error) {
	var ok bool
	err := s.read(ctx, func(st *state) error {
		_, ok = st.events[id]
		return nil
	})
	return ok, err
}

func (s *Store) ListEvents(ctx context.Context) ([]domain.Event, error) {
	var out []domain.Event
	err := s.read(ctx, func(st *state) error {
		out = make([]domain.Event, 0, len(st.events))
		for _, e := range st.events {
			out = append(out, cloneEvent(e))
		}
		return nil
	})
	sortByCreation(out, func(e domain.Event) (time.Time, string) { return e.CreatedAt, e.ID })
	return out, err
}

func (s *Store) EventsByIDs(ctx context.Context, ids []string) ([]domain.Event, error) {
	var out []domain.Event
	err := s.read(ctx, func(st *state) error {
		out = make([]domain.Event, 0, len(ids))
		for _, id := range ids {
			if e, ok := st.events[id]; ok {
				out = append(out, cloneEvent(e))
			}
		}
		return nil
	})
	return out, err
}

func (s *Store) UpdateEvent(ctx context.Context, e domain.Event) error {
	return s.write(ctx, func(st *state) error {
		existing, ok := st.events[e.ID]
		if !ok {
			return domain.ErrEventNotFound
		}
		if err := checkFacilitators(st, e.FacilitatorIDs); err != nil {
			return err
		}
		e.CreatedAt = existing.CreatedAt
		st.events[e.ID] = cloneEvent(e)
		return nil
	})
}

func (s *Store) DeleteEvent(ctx context.Context, id string) error {
	return s.write(ctx, func(st *state) error {
		if _, ok := st.events[id]; !ok {
			return domain.ErrEventNotFound
		}
		deleteEvent(st, id)
		return nil
	})
}

func deleteEvent(st *state, id string) {
	delete(st.events, id)
	for meID, me := range st.materialEvents {
		if me.EventID == id {
			delete(st.materialEvents, meID)
		}
	}
	for aID, a := range st.attendances {
		if a.EventID == id {
			delete(st.attendances, aID)
		}
	}
}
