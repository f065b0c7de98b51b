package memory

import (
	"context"
	"time"

	"github.com/prodib01/BAYLOR-CDC/internal/domain"
)

func checkAttendanceRefs(st *state, a domain.Attendance) error {
	p := domain.Problems{}
	if _, ok := st.participants[a.ParticipantID]; !ok {
		p.Add("participant", `invalid pk "`+a.ParticipantID+`" - object does not exist`)
	}
	if _, ok := st.events[a.EventID]; !ok {
		p.Add("event", `invalid pk "`+a.EventID+`" - object does not exist`)
	}
	return p.Err()
}

func (s *Store) CreateAttendance(ctx context.Context, a domain.Attendance) error {
	return s.write(ctx, func(st *state) error {
		if err := checkAttendanceRefs(st, a); err != nil {
			return err
		}
		st.attendances[a.ID] = a
		return nil
	})
}

func (s *Store) GetAttendance(ctx context.Context, id string) (domain.Attendance, error) {
	var out domain.Attendance
	err := s.read(ctx, func(st *state) error {
		a, ok := st.attendances[id]
		if !ok {
			return domain.ErrAttendanceNotFound
		}
		out = a
		return nil
	})
	return out, err
}

func (s *Store) ListAttendances(ctx context.Context) ([]domain.Attendance, error) {
	var out []domain.Attendance
	err := s.read(ctx, func(st *state) error {
		out = make([]domain.Attendance, 0, len(st.attendances))
		for _, a := range st.attendances {
			out = append(out, a)
		}
		return nil
	})
	sortByCreation(out, func(a domain.Attendance) (time.Time, string) { return a.CreatedAt, a.ID })
	return out, err
}

func (s *Store) AttendancesByEvents(ctx context.Context, eventIDs []string) ([]domain.Attendance, error) {
	wanted := make(map[string]struct{}, len(eventIDs))
	for _, id := range eventIDs {
		wanted[id] = struct{}{}
	}
	var out []domain.Attendance
	err := s.read(ctx, func(st *state) error {
		for _, a := range st.attendances {
			if _, ok := wanted[a.EventID]; ok {
				out = append(out, a)
			}
		}
		return nil
	})
	sortByCreation(out, func(a domain.Attendance) (time.Time, string) { return a.CreatedAt, a.ID })
	return out, err
}

func (s *Store) UpdateAttendance(ctx context.Context, a domain.Attendance) error {
	return s.write(ctx, func(st *state) error {
		existing, ok := st.attendances[a.ID]
		if !ok {
			return domain.ErrAttendanceNotFound
		}
		if err := checkAttendanceRefs(st, a); err != nil {
			return err
		}
		a.CreatedAt = existing.CreatedAt
		st.attendances[a.ID] = a
		return nil
	})
}

func (s *Store) DeleteAttendance(ctx context.Context, id string) error {
	return s.write(ctx, func(st *state) error {
		if _, ok := st.attendances[id]; !ok {
			return domain.ErrAttendanceNotFound
		}
		delete(st.attendances, id)
		return nil
	})
}
