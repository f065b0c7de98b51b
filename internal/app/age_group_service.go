package app

import (
	"context"

	"github.com/prodib01/BAYLOR-CDC/internal/clock"
	"github.com/prodib01/BAYLOR-CDC/internal/domain"
)

type AgeGroupRepository interface {
	CreateAgeGroup(ctx context.Context, g domain.AgeGroup) error
	GetAgeGroup(ctx context.Context, id string) (domain.AgeGroup, error)
	ListAgeGroups(ctx context.Context) ([]domain.AgeGroup, error)
	UpdateAgeGroup(ctx context.Context, g domain.AgeGroup) error
	DeleteAgeGroup(ctx context.Context, id string) error
}

type AgeGroupService struct {
	repo  AgeGroupRepository
	clock clock.Clock
}

func NewAgeGroupService(repo AgeGroupRepository, clk clock.Clock) *AgeGroupService {
	return &AgeGroupService{
		repo:  repo,
		clock: clk,
	}
}

func (s *AgeGroupService) Create(ctx context.Context, g domain.AgeGroup) (domain.AgeGroup, error) {
	if err := g.Validate(); err != nil {
		return domain.AgeGroup{}, err
	}
	g.ID = newUUID()
	g.CreatedAt = s.clock.Now()
	if err := s.repo.CreateAgeGroup(ctx, g); err != nil {
		return domain.AgeGroup{}, err
	}
	return g, nil
}

func (s *AgeGroupService) Get(ctx context.Context, id string) (domain.AgeGroup, error) {
	if id == "" {
		return domain.AgeGroup{}, domain.ErrAgeGroupNotFound
	}
	return s.repo.GetAgeGroup(ctx, id)
}

func (s *AgeGroupService) List(ctx context.Context) ([]domain.AgeGroup, error) {
	return s.repo.ListAgeGroups(ctx)
}

func (s *AgeGroupService) Update(ctx context.Context, g domain.AgeGroup) (domain.AgeGroup, error) {
	if g.ID == "" {
		return domain.AgeGroup{}, domain.ErrAgeGroupNotFound
	}
	if err := g.Validate(); err != nil {
		return domain.AgeGroup{}, err
	}
	if err := s.repo.UpdateAgeGroup(ctx, g); err != nil {
		return domain.AgeGroup{}, err
	}
	return s.repo.GetAgeGroup(ctx, g.ID)
}

// Delete removes the age group together with the participants and
// materials that reference it.
func (s *AgeGroupService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return domain.ErrAgeGroupNotFound
	}
	return s.repo.DeleteAgeGroup(ctx, id)
}
