package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/prodib01/BAYLOR-CDC/internal/domain"
)

const ageGroupColumns = `id, group_label, created_at`

func scanAgeGroup(row pgx.Row) (domain.AgeGroup, error) {
	var g domain.AgeGroup
	err := row.Scan(&g.ID, &g.Group, &g.CreatedAt)
	return g, err
}

func (s *Store) CreateAgeGroup(ctx context.Context, g domain.AgeGroup) error {
	const stmt = `INSERT INTO age_groups (id, group_label, created_at) VALUES ($1, $2, $3)`
	if _, err := s.exec(ctx, stmt, g.ID, g.Group, g.CreatedAt); err != nil {
		return mapWriteError("create age group", err)
	}
	return nil
}

func (s *Store) GetAgeGroup(ctx context.Context, id string) (domain.AgeGroup, error) {
	if !validID(id) {
		return domain.AgeGroup{}, domain.ErrAgeGroupNotFound
	}
	g, err := scanAgeGroup(s.queryRow(ctx, `SELECT `+ageGroupColumns+` FROM age_groups WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.AgeGroup{}, domain.ErrAgeGroupNotFound
		}
		return domain.AgeGroup{}, fmt.Errorf("get age group: %w", err)
	}
	return g, nil
}

func (s *Store) ListAgeGroups(ctx context.Context) ([]domain.AgeGroup, error) {
	return s.listAgeGroups(ctx, `SELECT `+ageGroupColumns+` FROM age_groups ORDER BY created_at, id`)
}

func (s *Store) AgeGroupsByIDs(ctx context.Context, ids []string) ([]domain.AgeGroup, error) {
	ids = validIDs(ids)
	if len(ids) == 0 {
		return []domain.AgeGroup{}, nil
	}
	return s.listAgeGroups(ctx,
		`SELECT `+ageGroupColumns+` FROM age_groups WHERE id = ANY($1::text[]::uuid[]) ORDER BY created_at, id`,
		ids,
	)
}

func (s *Store) listAgeGroups(ctx context.Context, query string, args ...any) ([]domain.AgeGroup, error) {
	rows, err := s.query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list age groups: %w", err)
	}
	defer rows.Close()

	out := []domain.AgeGroup{}
	for rows.Next() {
		g, err := scanAgeGroup(rows)
		if err != nil {
			return nil, fmt.Errorf("scan age group: %w", err)
		}
		out = append(out, g)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate age groups: %w", rows.Err())
	}
	return out, nil
}

func (s *Store) UpdateAgeGroup(ctx context.Context, g domain.AgeGroup) error {
	if !validID(g.ID) {
		return domain.ErrAgeGroupNotFound
	}
	tag, err := s.exec(ctx, `UPDATE age_groups SET group_label = $2 WHERE id = $1`, g.ID, g.Group)
	if err != nil {
		return mapWriteError("update age group", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrAgeGroupNotFound
	}
	return nil
}

// DeleteAgeGroup removes the group together with its participants and
// materials and everything that references those.
func (s *Store) DeleteAgeGroup(ctx context.Context, id string) error {
	if !validID(id) {
		return domain.ErrAgeGroupNotFound
	}
	tag, err := s.exec(ctx, `DELETE FROM age_groups WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete age group: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrAgeGroupNotFound
	}
	return nil
}
