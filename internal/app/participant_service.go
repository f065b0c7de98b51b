package app

import (
	"context"

	"github.com/prodib01/BAYLOR-CDC/internal/clock"
	"github.com/prodib01/BAYLOR-CDC/internal/domain"
)

type ParticipantRepository interface {
	CreateParticipant(ctx context.Context, p domain.Participant) error
	GetParticipant(ctx context.Context, id string) (domain.Participant, error)
	ListParticipants(ctx context.Context) ([]domain.Participant, error)
	UpdateParticipant(ctx context.Context, p domain.Participant) error
	DeleteParticipant(ctx context.Context, id string) error
}

type ParticipantService struct {
	repo  ParticipantRepository
	clock clock.Clock
}

func NewParticipantService(repo ParticipantRepository, clk clock.Clock) *ParticipantService {
	return &ParticipantService{
		repo:  repo,
		clock: clk,
	}
}

func (s *ParticipantService) Create(ctx context.Context, p domain.Participant) (domain.Participant, error) {
	if err := p.Validate(); err != nil {
		return domain.Participant{}, err
	}
	p.ID = newUUID()
	p.CreatedAt = s.clock.Now()
	if err := s.repo.CreateParticipant(ctx, p); err != nil {
		return domain.Participant{}, err
	}
	return p, nil
}

func (s *ParticipantService) Get(ctx context.Context, id string) (domain.Participant, error) {
	if id == "" {
		return domain.Participant{}, domain.ErrParticipantNotFound
	}
	return s.repo.GetParticipant(ctx, id)
}

func (s *ParticipantService) List(ctx context.Context) ([]domain.Participant, error) {
	return s.repo.ListParticipants(ctx)
}

func (s *ParticipantService) Update(ctx context.Context, p domain.Participant) (domain.Participant, error) {
	if p.ID == "" {
		return domain.Participant{}, domain.ErrParticipantNotFound
	}
	if err := p.Validate(); err != nil {
		return domain.Participant{}, err
	}
	if err := s.repo.UpdateParticipant(ctx, p); err != nil {
		return domain.Participant{}, err
	}
	return s.repo.GetParticipant(ctx, p.ID)
}

func (s *ParticipantService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return domain.ErrParticipantNotFound
	}
	return s.repo.DeleteParticipant(ctx, id)
}
