package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/prodib01/BAYLOR-CDC/internal/domain"
)

const facilitatorColumns = `id, name, dob, gender, facilitates, contact, created_at`

func scanFacilitator(row pgx.Row) (domain.Facilitator, error) {
	var f domain.Facilitator
	err := row.Scan(&f.ID, &f.Name, &f.DOB, &f.Gender, &f.Facilitates, &f.Contact, &f.CreatedAt)
	return f, err
}

func (s *Store) CreateFacilitator(ctx context.Context, f domain.Facilitator) error {
	const stmt = `
INSERT INTO facilitators (id, name, dob, gender, facilitates, contact, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)`
	if _, err := s.exec(ctx, stmt, f.ID, f.Name, f.DOB, f.Gender, f.Facilitates, f.Contact, f.CreatedAt); err != nil {
		return mapWriteError("create facilitator", err)
	}
	return nil
}

func (s *Store) GetFacilitator(ctx context.Context, id string) (domain.Facilitator, error) {
	if !validID(id) {
		return domain.Facilitator{}, domain.ErrFacilitatorNotFound
	}
	f, err := scanFacilitator(s.queryRow(ctx, `SELECT `+facilitatorColumns+` FROM facilitators WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Facilitator{}, domain.ErrFacilitatorNotFound
		}
		return domain.Facilitator{}, fmt.Errorf("get facilitator: %w", err)
	}
	return f, nil
}

func (s *Store) ListFacilitators(ctx context.Context) ([]domain.Facilitator, error) {
	return s.listFacilitators(ctx, `SELECT `+facilitatorColumns+` FROM facilitators ORDER BY created_at, id`)
}

func (s *Store) FacilitatorsByIDs(ctx context.Context, ids []string) ([]domain.Facilitator, error) {
	ids = validIDs(ids)
	if len(ids) == 0 {
		return []domain.Facilitator{}, nil
	}
	return s.listFacilitators(ctx,
		`SELECT `+facilitatorColumns+` FROM facilitators WHERE id = ANY($1::text[]::uuid[]) ORDER BY created_at, id`,
		ids,
	)
}

func (s *Store) listFacilitators(ctx context.Context, query string, args ...any) ([]domain.Facilitator, error) {
	rows, err := s.query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list facilitators: %w", err)
	}
	defer rows.Close()

	out := []domain.Facilitator{}
	for rows.Next() {
		f, err := scanFacilitator(rows)
		if err != nil {
			return nil, fmt.Errorf("scan facilitator: %w", err)
		}
		out = append(out, f)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate facilitators: %w", rows.Err())
	}
	return out, nil
}

func (s *Store) UpdateFacilitator(ctx context.Context, f domain.Facilitator) error {
	if !validID(f.ID) {
		return domain.ErrFacilitatorNotFound
	}
	const stmt = `
UPDATE facilitators
SET name = $2, dob = $3, gender = $4, facilitates = $5, contact = $6
WHERE id = $1`
	tag, err := s.exec(ctx, stmt, f.ID, f.Name, f.DOB, f.Gender, f.Facilitates, f.Contact)
	if err != nil {
		return mapWriteError("update facilitator", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrFacilitatorNotFound
	}
	return nil
}

// DeleteFacilitator removes the facilitator; the schema cascades its event
// links.
func (s *Store) DeleteFacilitator(ctx context.Context, id string) error {
	if !validID(id) {
		return domain.ErrFacilitatorNotFound
	}
	tag, err := s.exec(ctx, `DELETE FROM facilitators WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete facilitator: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrFacilitatorNotFound
	}
	return nil
}
