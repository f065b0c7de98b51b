package app

import (
	"context"

	"github.com/prodib01/BAYLOR-CDC/internal/clock"
	"github.com/prodib01/BAYLOR-CDC/internal/domain"
)

type FacilitatorRepository interface {
	CreateFacilitator(ctx context.Context, f domain.Facilitator) error
	GetFacilitator(ctx context.Context, id string) (domain.Facilitator, error)
	ListFacilitators(ctx context.Context) ([]domain.Facilitator, error)
	UpdateFacilitator(ctx context.Context, f domain.Facilitator) error
	DeleteFacilitator(ctx context.Context, id string) error
}

type FacilitatorService struct {
	repo  FacilitatorRepository
	clock clock.Clock
}

func NewFacilitatorService(repo FacilitatorRepository, clk clock.Clock) *FacilitatorService {
	return &FacilitatorService{
		repo:  repo,
		clock: clk,
	}
}

func (s *FacilitatorService) Create(ctx context.Context, f domain.Facilitator) (domain.Facilitator, error) {
	if err := f.Validate(); err != nil {
		return domain.Facilitator{}, err
	}
	f.ID = newUUID()
	f.CreatedAt = s.clock.Now()
	if err := s.repo.CreateFacilitator(ctx, f); err != nil {
		return domain.Facilitator{}, err
	}
	return f, nil
}

func (s *FacilitatorService) Get(ctx context.Context, id string) (domain.Facilitator, error) {
	if id == "" {
		return domain.Facilitator{}, domain.ErrFacilitatorNotFound
	}
	return s.repo.GetFacilitator(ctx, id)
}

func (s *FacilitatorService) List(ctx context.Context) ([]domain.Facilitator, error) {
	return s.repo.ListFacilitators(ctx)
}

// Update replaces every field of the facilitator identified by f.ID.
func (s *FacilitatorService) Update(ctx context.Context, f domain.Facilitator) (domain.Facilitator, error) {
	if f.ID == "" {
		return domain.Facilitator{}, domain.ErrFacilitatorNotFound
	}
	if err := f.Validate(); err != nil {
		return domain.Facilitator{}, err
	}
	if err := s.repo.UpdateFacilitator(ctx, f); err != nil {
		return domain.Facilitator{}, err
	}
	return s.repo.GetFacilitator(ctx, f.ID)
}

// Delete removes the facilitator and its event links.
func (s *FacilitatorService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return domain.ErrFacilitatorNotFound
	}
	return s.repo.DeleteFacilitator(ctx, id)
}
