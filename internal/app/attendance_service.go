package app

import (
	"context"

	"github.com/prodib01/BAYLOR-CDC/internal/clock"
	"github.com/prodib01/BAYLOR-CDC/internal/domain"
)

// AttendanceRepository persists attendance records. Unknown participant or
// event ids are reported as validation errors on those fields.
type AttendanceRepository interface {
	CreateAttendance(ctx context.Context, a domain.Attendance) error
	GetAttendance(ctx context.Context, id string) (domain.Attendance, error)
	ListAttendances(ctx context.Context) ([]domain.Attendance, error)
	UpdateAttendance(ctx context.Context, a domain.Attendance) error
	DeleteAttendance(ctx context.Context, id string) error
}

type AttendanceService struct {
	repo  AttendanceRepository
	clock clock.Clock
}

func NewAttendanceService(repo AttendanceRepository, clk clock.Clock) *AttendanceService {
	return &AttendanceService{
		repo:  repo,
		clock: clk,
	}
}

func (s *AttendanceService) Create(ctx context.Context, a domain.Attendance) (domain.Attendance, error) {
	if err := a.Validate(); err != nil {
		return domain.Attendance{}, err
	}
	a.ID = newUUID()
	a.CreatedAt = s.clock.Now()
	if err := s.repo.CreateAttendance(ctx, a); err != nil {
		return domain.Attendance{}, err
	}
	return a, nil
}

func (s *AttendanceService) Get(ctx context.Context, id string) (domain.Attendance, error) {
	if id == "" {
		return domain.Attendance{}, domain.ErrAttendanceNotFound
	}
	return s.repo.GetAttendance(ctx, id)
}

func (s *AttendanceService) List(ctx context.Context) ([]domain.Attendance, error) {
	return s.repo.ListAttendances(ctx)
}

func (s *AttendanceService) Update(ctx context.Context, a domain.Attendance) (domain.Attendance, error) {
	if a.ID == "" {
		return domain.Attendance{}, domain.ErrAttendanceNotFound
	}
	if err := a.Validate(); err != nil {
		return domain.Attendance{}, err
	}
	if err := s.repo.UpdateAttendance(ctx, a); err != nil {
		return domain.Attendance{}, err
	}
	return s.repo.GetAttendance(ctx, a.ID)
}

func (s *AttendanceService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return domain.ErrAttendanceNotFound
	}
	return s.repo.DeleteAttendance(ctx, id)
}
