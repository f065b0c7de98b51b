package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/prodib01/BAYLOR-CDC/internal/domain"
)

// Facilitator ids come back in the order they were linked.
const eventSelect = `
SELECT e.id, e.name, e.event_type, e.start_date, e.end_date, e.location, e.lessons, e.learning_outcomes, e.created_at,
	COALESCE(
		(SELECT array_agg(ef.facilitator_id::text ORDER BY ef.position)
		 FROM event_facilitators ef WHERE ef.event_id = e.id),
		'{}'
	)
FROM events e`

func scanEvent(row pgx.Row) (domain.Event, error) {
	var e domain.Event
	err := row.Scan(
		&e.ID, &e.Name, &e.EventType, &e.StartDate, &e.EndDate, &e.Location,
		&e.Lessons, &e.LearningOutcomes, &e.CreatedAt, &e.FacilitatorIDs,
	)
	return e, err
}

func (s *Store) CreateEvent(ctx context.Context, e domain.Event) error {
	if err := checkIDs("facilitators", e.FacilitatorIDs); err != nil {
		return err
	}
	return s.WithTx(ctx, func(txCtx context.Context) error {
		const stmt = `
INSERT INTO events (id, name, event_type, start_date, end_date, location, lessons, learning_outcomes, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
		_, err := s.exec(txCtx, stmt,
			e.ID, e.Name, e.EventType, e.StartDate, e.EndDate, e.Location, e.Lessons, e.LearningOutcomes, e.CreatedAt,
		)
		if err != nil {
			return mapWriteError("create event", err)
		}
		return s.linkFacilitators(txCtx, e.ID, e.FacilitatorIDs)
	})
}

func (s *Store) linkFacilitators(ctx context.Context, eventID string, facilitatorIDs []string) error {
	if len(facilitatorIDs) == 0 {
		return nil
	}
	const stmt = `
INSERT INTO event_facilitators (event_id, facilitator_id, position)
SELECT $1, f.id::uuid, f.ord::int
FROM unnest($2::text[]) WITH ORDINALITY AS f(id, ord)
ON CONFLICT (event_id, facilitator_id) DO NOTHING`
	if _, err := s.exec(ctx, stmt, eventID, facilitatorIDs); err != nil {
		return mapWriteError("link facilitators", err)
	}
	return nil
}

func (s *Store) GetEvent(ctx context.Context, id string) (domain.Event, error) {
	if !validID(id) {
		return domain.Event{}, domain.ErrEventNotFound
	}
	e, err := scanEvent(s.queryRow(ctx, eventSelect+` WHERE e.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Event{}, domain.ErrEventNotFound
		}
		return domain.Event{}, fmt.Errorf("get event: %w", err)
	}
	return e, nil
}

// GetEventForUpdate locks the event row until the surrounding transaction
// ends, then reads the event with its facilitator links. It must be called
// inside WithTx.
func (s *Store) GetEventForUpdate(ctx context.Context, id string) (domain.Event, error) {
	if txFromContext(ctx) == nil {
		return domain.Event{}, errors.New("get event for update: no transaction in context")
	}
	if !validID(id) {
		return domain.Event{}, domain.ErrEventNotFound
	}
	var locked string
	if err := s.queryRow(ctx, `SELECT id::text FROM events WHERE id = $1 FOR UPDATE`, id).Scan(&locked); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Event{}, domain.ErrEventNotFound
		}
		return domain.Event{}, fmt.Errorf("lock event: %w", err)
	}
	return s.GetEvent(ctx, id)
}

func (s *Store) EventExists(ctx context.Context, id string) (bool, error) {
	if !validID(id) {
		return false, nil
	}
	var ok bool
	if err := s.queryRow(ctx, `SELECT EXISTS (SELECT 1 FROM events WHERE id = $1)`, id).Scan(&ok); err != nil {
		return false, fmt.Errorf("event exists: %w", err)
	}
	return ok, nil
}

func (s *Store) ListEvents(ctx context.Context) ([]domain.Event, error) {
	return s.listEvents(ctx, eventSelect+` ORDER BY e.created_at, e.id`)
}

func (s *Store) EventsByIDs(ctx context.Context, ids []string) ([]domain.Event, error) {
	ids = validIDs(ids)
	if len(ids) == 0 {
		return []domain.Event{}, nil
	}
	return s.listEvents(ctx, eventSelect+` WHERE e.id = ANY($1::text[]::uuid[]) ORDER BY e.created_at, e.id`, ids)
}

func (s *Store) listEvents(ctx context.Context, query string, args ...any) ([]domain.Event, error) {
	rows, err := s.query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()

	out := []domain.Event{}
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		out = append(out, e)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate events: %w", rows.Err())
	}
	return out, nil
}

// UpdateEvent replaces the event fields and its facilitator set.
func (s *Store) UpdateEvent(ctx context.Context, e domain.Event) error {
	if !validID(e.ID) {
		return domain.ErrEventNotFound
	}
	if err := checkIDs("facilitators", e.FacilitatorIDs); err != nil {
		return err
	}
	return s.WithTx(ctx, func(txCtx context.Context) error {
		const stmt = `
UPDATE events
SET name = $2, event_type = $3, start_date = $4, end_date = $5, location = $6, lessons = $7, learning_outcomes = $8
WHERE id = $1`
		tag, err := s.exec(txCtx, stmt,
			e.ID, e.Name, e.EventType, e.StartDate, e.EndDate, e.Location, e.Lessons, e.LearningOutcomes,
		)
		if err != nil {
			return mapWriteError("update event", err)
		}
		if tag.RowsAffected() == 0 {
			return domain.ErrEventNotFound
		}
		if _, err := s.exec(txCtx, `DELETE FROM event_facilitators WHERE event_id = $1`, e.ID); err != nil {
			return fmt.Errorf("unlink facilitators: %w", err)
		}
		return s.linkFacilitators(txCtx, e.ID, e.FacilitatorIDs)
	})
}

// DeleteEvent removes the event; the schema cascades its facilitator links,
// allocations and attendances.
func (s *Store) DeleteEvent(ctx context.Context, id string) error {
	if !validID(id) {
		return domain.ErrEventNotFound
	}
	tag, err := s.exec(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrEventNotFound
	}
	return nil
}

func checkIDs(field string, ids []string) error {
	for _, id := range ids {
		if !validID(id) {
			return missingRef(field, id)
		}
	}
	return nil
}
