package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/prodib01/BAYLOR-CDC/internal/domain"
)

const materialEventColumns = `id, material_id, event_id, quantity, created_at`

func scanMaterialEvent(row pgx.Row) (domain.MaterialEvent, error) {
	var me domain.MaterialEvent
	err := row.Scan(&me.ID, &me.MaterialID, &me.EventID, &me.Quantity, &me.CreatedAt)
	return me, err
}

func (s *Store) CreateMaterialEvent(ctx context.Context, me domain.MaterialEvent) error {
	if err := checkMaterialEventRefs(me); err != nil {
		return err
	}
	const stmt = `
INSERT INTO material_events (id, material_id, event_id, quantity, created_at)
VALUES ($1, $2, $3, $4, $5)`
	if _, err := s.exec(ctx, stmt, me.ID, me.MaterialID, me.EventID, me.Quantity, me.CreatedAt); err != nil {
		return mapWriteError("create material event", err)
	}
	return nil
}

func (s *Store) GetMaterialEvent(ctx context.Context, id string) (domain.MaterialEvent, error) {
	if !validID(id) {
		return domain.MaterialEvent{}, domain.ErrMaterialEventNotFound
	}
	me, err := scanMaterialEvent(s.queryRow(ctx, `SELECT `+materialEventColumns+` FROM material_events WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.MaterialEvent{}, domain.ErrMaterialEventNotFound
		}
		return domain.MaterialEvent{}, fmt.Errorf("get material event: %w", err)
	}
	return me, nil
}

func (s *Store) ListMaterialEvents(ctx context.Context) ([]domain.MaterialEvent, error) {
	rows, err := s.query(ctx, `SELECT `+materialEventColumns+` FROM material_events ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("list material events: %w", err)
	}
	defer rows.Close()

	out := []domain.MaterialEvent{}
	for rows.Next() {
		me, err := scanMaterialEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("scan material event: %w", err)
		}
		out = append(out, me)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate material events: %w", rows.Err())
	}
	return out, nil
}

func (s *Store) UpdateMaterialEvent(ctx context.Context, me domain.MaterialEvent) error {
	if !validID(me.ID) {
		return domain.ErrMaterialEventNotFound
	}
	if err := checkMaterialEventRefs(me); err != nil {
		return err
	}
	const stmt = `UPDATE material_events SET material_id = $2, event_id = $3, quantity = $4 WHERE id = $1`
	tag, err := s.exec(ctx, stmt, me.ID, me.MaterialID, me.EventID, me.Quantity)
	if err != nil {
		return mapWriteError("update material event", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrMaterialEventNotFound
	}
	return nil
}

func (s *Store) DeleteMaterialEvent(ctx context.Context, id string) error {
	if !validID(id) {
		return domain.ErrMaterialEventNotFound
	}
	tag, err := s.exec(ctx, `DELETE FROM material_events WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete material event: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrMaterialEventNotFound
	}
	return nil
}

func checkMaterialEventRefs(me domain.MaterialEvent) error {
	if !validID(me.MaterialID) {
		return missingRef("material", me.MaterialID)
	}
	if !validID(me.EventID) {
		return missingRef("event", me.EventID)
	}
	return nil
}
