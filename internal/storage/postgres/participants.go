package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/prodib01/BAYLOR-CDC/internal/domain"
)

const participantColumns = `id, name, age_group_id, village, has_hiv, is_in_school, dob, enrollment_date, created_at`

func scanParticipant(row pgx.Row) (domain.Participant, error) {
	var p domain.Participant
	err := row.Scan(&p.ID, &p.Name, &p.AgeGroupID, &p.Village, &p.HasHIV, &p.IsInSchool, &p.DOB, &p.EnrollmentDate, &p.CreatedAt)
	return p, err
}

func (s *Store) CreateParticipant(ctx context.Context, p domain.Participant) error {
	if !validID(p.AgeGroupID) {
		return missingRef("age_group", p.AgeGroupID)
	}
	const stmt = `
INSERT INTO participants (id, name, age_group_id, village, has_hiv, is_in_school, dob, enrollment_date, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := s.exec(ctx, stmt,
		p.ID, p.Name, p.AgeGroupID, p.Village, p.HasHIV, p.IsInSchool, p.DOB, p.EnrollmentDate, p.CreatedAt,
	)
	if err != nil {
		return mapWriteError("create participant", err)
	}
	return nil
}

func (s *Store) GetParticipant(ctx context.Context, id string) (domain.Participant, error) {
	if !validID(id) {
		return domain.Participant{}, domain.ErrParticipantNotFound
	}
	p, err := scanParticipant(s.queryRow(ctx, `SELECT `+participantColumns+` FROM participants WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Participant{}, domain.ErrParticipantNotFound
		}
		return domain.Participant{}, fmt.Errorf("get participant: %w", err)
	}
	return p, nil
}

func (s *Store) ListParticipants(ctx context.Context) ([]domain.Participant, error) {
	return s.listParticipants(ctx, `SELECT `+participantColumns+` FROM participants ORDER BY created_at, id`)
}

func (s *Store) ParticipantsByIDs(ctx context.Context, ids []string) ([]domain.Participant, error) {
	ids = validIDs(ids)
	if len(ids) == 0 {
		return []domain.Participant{}, nil
	}
	return s.listParticipants(ctx,
		`SELECT `+participantColumns+` FROM participants WHERE id = ANY($1::text[]::uuid[]) ORDER BY created_at, id`,
		ids,
	)
}

func (s *Store) listParticipants(ctx context.Context, query string, args ...any) ([]domain.Participant, error) {
	rows, err := s.query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list participants: %w", err)
	}
	defer rows.Close()

	out := []domain.Participant{}
	for rows.Next() {
		p, err := scanParticipant(rows)
		if err != nil {
			return nil, fmt.Errorf("scan participant: %w", err)
		}
		out = append(out, p)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate participants: %w", rows.Err())
	}
	return out, nil
}

func (s *Store) UpdateParticipant(ctx context.Context, p domain.Participant) error {
	if !validID(p.ID) {
		return domain.ErrParticipantNotFound
	}
	if !validID(p.AgeGroupID) {
		return missingRef("age_group", p.AgeGroupID)
	}
	const stmt = `
UPDATE participants
SET name = $2, age_group_id = $3, village = $4, has_hiv = $5, is_in_school = $6, dob = $7, enrollment_date = $8
WHERE id = $1`
	tag, err := s.exec(ctx, stmt,
		p.ID, p.Name, p.AgeGroupID, p.Village, p.HasHIV, p.IsInSchool, p.DOB, p.EnrollmentDate,
	)
	if err != nil {
		return mapWriteError("update participant", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrParticipantNotFound
	}
	return nil
}

func (s *Store) DeleteParticipant(ctx context.Context, id string) error {
	if !validID(id) {
		return domain.ErrParticipantNotFound
	}
	tag, err := s.exec(ctx, `DELETE FROM participants WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete participant: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrParticipantNotFound
	}
	return nil
}
