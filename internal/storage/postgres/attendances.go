package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/prodib01/BAYLOR-CDC/internal/domain"
)

const attendanceColumns = `id, participant_id, event_id, skills, lessons_attended, finished_program, self_sufficient, created_at`

func scanAttendance(row pgx.Row) (domain.Attendance, error) {
	var a domain.Attendance
	err := row.Scan(&a.ID, &a.ParticipantID, &a.EventID, &a.Skills, &a.LessonsAttended, &a.FinishedProgram, &a.SelfSufficient, &a.CreatedAt)
	return a, err
}

func checkAttendanceRefs(a domain.Attendance) error {
	if !validID(a.ParticipantID) {
		return missingRef("participant", a.ParticipantID)
	}
	if !validID(a.EventID) {
		return missingRef("event", a.EventID)
	}
	return nil
}

func (s *Store) CreateAttendance(ctx context.Context, a domain.Attendance) error {
	if err := checkAttendanceRefs(a); err != nil {
		return err
	}
	const stmt = `
INSERT INTO participant_attendances (id, participant_id, event_id, skills, lessons_attended, finished_program, self_sufficient, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := s.exec(ctx, stmt,
		a.ID, a.ParticipantID, a.EventID, a.Skills, a.LessonsAttended, a.FinishedProgram, a.SelfSufficient, a.CreatedAt,
	)
	if err != nil {
		return mapWriteError("create attendance", err)
	}
	return nil
}

func (s *Store) GetAttendance(ctx context.Context, id string) (domain.Attendance, error) {
	if !validID(id) {
		return domain.Attendance{}, domain.ErrAttendanceNotFound
	}
	a, err := scanAttendance(s.queryRow(ctx, `SELECT `+attendanceColumns+` FROM participant_attendances WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Attendance{}, domain.ErrAttendanceNotFound
		}
		return domain.Attendance{}, fmt.Errorf("get attendance: %w", err)
	}
	return a, nil
}

func (s *Store) ListAttendances(ctx context.Context) ([]domain.Attendance, error) {
	return s.listAttendances(ctx, `SELECT `+attendanceColumns+` FROM participant_attendances ORDER BY created_at, id`)
}

func (s *Store) AttendancesByEvents(ctx context.Context, eventIDs []string) ([]domain.Attendance, error) {
	eventIDs = validIDs(eventIDs)
	if len(eventIDs) == 0 {
		return []domain.Attendance{}, nil
	}
	return s.listAttendances(ctx,
		`SELECT `+attendanceColumns+` FROM participant_attendances WHERE event_id = ANY($1::text[]::uuid[]) ORDER BY created_at, id`,
		eventIDs,
	)
}

func (s *Store) listAttendances(ctx context.Context, query string, args ...any) ([]domain.Attendance, error) {
	rows, err := s.query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list attendances: %w", err)
	}
	defer rows.Close()

	out := []domain.Attendance{}
	for rows.Next() {
		a, err := scanAttendance(rows)
		if err != nil {
			return nil, fmt.Errorf("scan attendance: %w", err)
		}
		out = append(out, a)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate attendances: %w", rows.Err())
	}
	return out, nil
}

func (s *Store) UpdateAttendance(ctx context.Context, a domain.Attendance) error {
	if !validID(a.ID) {
		return domain.ErrAttendanceNotFound
	}
	if err := checkAttendanceRefs(a); err != nil {
		return err
	}
	const stmt = `
UPDATE participant_attendances
SET participant_id = $2, event_id = $3, skills = $4, lessons_attended = $5, finished_program = $6, self_sufficient = $7
WHERE id = $1`
	tag, err := s.exec(ctx, stmt,
		a.ID, a.ParticipantID, a.EventID, a.Skills, a.LessonsAttended, a.FinishedProgram, a.SelfSufficient,
	)
	if err != nil {
		return mapWriteError("update attendance", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrAttendanceNotFound
	}
	return nil
}

func (s *Store) DeleteAttendance(ctx context.Context, id string) error {
	if !validID(id) {
		return domain.ErrAttendanceNotFound
	}
	tag, err := s.exec(ctx, `DELETE FROM participant_attendances WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete attendance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrAttendanceNotFound
	}
	return nil
}
