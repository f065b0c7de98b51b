package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/prodib01/BAYLOR-CDC/internal/domain"
)

const materialColumns = `id, name, stock, target_group_id, created_at`

func scanMaterial(row pgx.Row) (domain.Material, error) {
	var m domain.Material
	err := row.Scan(&m.ID, &m.Name, &m.Stock, &m.TargetGroupID, &m.CreatedAt)
	return m, err
}

func (s *Store) CreateMaterial(ctx context.Context, m domain.Material) error {
	if !validID(m.TargetGroupID) {
		return missingRef("target_group", m.TargetGroupID)
	}
	const stmt = `
INSERT INTO materials (id, name, stock, target_group_id, created_at)
VALUES ($1, $2, $3, $4, $5)`
	if _, err := s.exec(ctx, stmt, m.ID, m.Name, m.Stock, m.TargetGroupID, m.CreatedAt); err != nil {
		return mapWriteError("create material", err)
	}
	return nil
}

func (s *Store) GetMaterial(ctx context.Context, id string) (domain.Material, error) {
	return s.getMaterial(ctx, `SELECT `+materialColumns+` FROM materials WHERE id = $1`, id)
}

// GetMaterialForUpdate locks the material row until the surrounding
// transaction ends. It must be called inside WithTx.
func (s *Store) GetMaterialForUpdate(ctx context.Context, id string) (domain.Material, error) {
	if txFromContext(ctx) == nil {
		return domain.Material{}, errors.New("get material for update: no transaction in context")
	}
	return s.getMaterial(ctx, `SELECT `+materialColumns+` FROM materials WHERE id = $1 FOR UPDATE`, id)
}

func (s *Store) getMaterial(ctx context.Context, query, id string) (domain.Material, error) {
	if !validID(id) {
		return domain.Material{}, domain.ErrMaterialNotFound
	}
	m, err := scanMaterial(s.queryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Material{}, domain.ErrMaterialNotFound
		}
		return domain.Material{}, fmt.Errorf("get material: %w", err)
	}
	return m, nil
}

func (s *Store) ListMaterials(ctx context.Context) ([]domain.Material, error) {
	return s.listMaterials(ctx, `SELECT `+materialColumns+` FROM materials ORDER BY created_at, id`)
}

func (s *Store) MaterialsByIDs(ctx context.Context, ids []string) ([]domain.Material, error) {
	ids = validIDs(ids)
	if len(ids) == 0 {
		return []domain.Material{}, nil
	}
	return s.listMaterials(ctx,
		`SELECT `+materialColumns+` FROM materials WHERE id = ANY($1::text[]::uuid[]) ORDER BY created_at, id`,
		ids,
	)
}

func (s *Store) listMaterials(ctx context.Context, query string, args ...any) ([]domain.Material, error) {
	rows, err := s.query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list materials: %w", err)
	}
	defer rows.Close()

	out := []domain.Material{}
	for rows.Next() {
		m, err := scanMaterial(rows)
		if err != nil {
			return nil, fmt.Errorf("scan material: %w", err)
		}
		out = append(out, m)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate materials: %w", rows.Err())
	}
	return out, nil
}

func (s *Store) UpdateMaterial(ctx context.Context, m domain.Material) error {
	if !validID(m.ID) {
		return domain.ErrMaterialNotFound
	}
	if !validID(m.TargetGroupID) {
		return missingRef("target_group", m.TargetGroupID)
	}
	const stmt = `UPDATE materials SET name = $2, stock = $3, target_group_id = $4 WHERE id = $1`
	tag, err := s.exec(ctx, stmt, m.ID, m.Name, m.Stock, m.TargetGroupID)
	if err != nil {
		return mapWriteError("update material", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrMaterialNotFound
	}
	return nil
}

// UpdateMaterialStock sets the stock level. The CHECK constraint rejects a
// negative value.
func (s *Store) UpdateMaterialStock(ctx context.Context, id string, stock int) error {
	if !validID(id) {
		return domain.ErrMaterialNotFound
	}
	tag, err := s.exec(ctx, `UPDATE materials SET stock = $2 WHERE id = $1`, id, stock)
	if err != nil {
		return mapWriteError("update material stock", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrMaterialNotFound
	}
	return nil
}

func (s *Store) DeleteMaterial(ctx context.Context, id string) error {
	if !validID(id) {
		return domain.ErrMaterialNotFound
	}
	tag, err := s.exec(ctx, `DELETE FROM materials WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete material: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrMaterialNotFound
	}
	return nil
}
