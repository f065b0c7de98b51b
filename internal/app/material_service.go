package app

import (
	"context"

	"github.com/prodib01/BAYLOR-CDC/internal/clock"
	"github.com/prodib01/BAYLOR-CDC/internal/domain"
)

// MaterialRepository persists materials. GetMaterialForUpdate must hold the
// material exclusively until the surrounding WithTx returns.
type MaterialRepository interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
	GetMaterialForUpdate(ctx context.Context, id string) (domain.Material, error)
	CreateMaterial(ctx context.Context, m domain.Material) error
	GetMaterial(ctx context.Context, id string) (domain.Material, error)
	ListMaterials(ctx context.Context) ([]domain.Material, error)
	UpdateMaterial(ctx context.Context, m domain.Material) error
	DeleteMaterial(ctx context.Context, id string) error
}

// MaterialService manages the material catalogue. Stock set here is a plain
// field update (restocking); allocation goes through AllocationService.
type MaterialService struct {
	repo  MaterialRepository
	clock clock.Clock
}

func NewMaterialService(repo MaterialRepository, clk clock.Clock) *MaterialService {
	return &MaterialService{
		repo:  repo,
		clock: clk,
	}
}

func (s *MaterialService) Create(ctx context.Context, m domain.Material) (domain.Material, error) {
	if err := m.Validate(); err != nil {
		return domain.Material{}, err
	}
	m.ID = newUUID()
	m.CreatedAt = s.clock.Now()
	if err := s.repo.CreateMaterial(ctx, m); err != nil {
		return domain.Material{}, err
	}
	return m, nil
}

func (s *MaterialService) Get(ctx context.Context, id string) (domain.Material, error) {
	if id == "" {
		return domain.Material{}, domain.ErrMaterialNotFound
	}
	return s.repo.GetMaterial(ctx, id)
}

func (s *MaterialService) List(ctx context.Context) ([]domain.Material, error) {
	return s.repo.ListMaterials(ctx)
}

// Update applies change to the current material and saves it. The row is
// locked from the read to the write, the same lock allocations take, so
// stock consumed by a concurrent allocation is never written back.
func (s *MaterialService) Update(ctx context.Context, id string, change func(*domain.Material) error) (domain.Material, error) {
	if id == "" {
		return domain.Material{}, domain.ErrMaterialNotFound
	}
	var out domain.Material
	err := s.repo.WithTx(ctx, func(txCtx context.Context) error {
		m, err := s.repo.GetMaterialForUpdate(txCtx, id)
		if err != nil {
			return err
		}
		if err := change(&m); err != nil {
			return err
		}
		m.ID = id
		if err := m.Validate(); err != nil {
			return err
		}
		if err := s.repo.UpdateMaterial(txCtx, m); err != nil {
			return err
		}
		out = m
		return nil
	})
	if err != nil {
		return domain.Material{}, err
	}
	return out, nil
}

// Delete removes the material and every allocation of it. Stock consumed by
// those allocations is not returned anywhere.
func (s *MaterialService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return domain.ErrMaterialNotFound
	}
	return s.repo.DeleteMaterial(ctx, id)
}
