package app

import (
	"context"
	"errors"

	"github.com/prodib01/BAYLOR-CDC/internal/clock"
	"github.com/prodib01/BAYLOR-CDC/internal/domain"
)

// AllocationRepository is the store surface needed to allocate materials.
// GetMaterialForUpdate must hold the material exclusively until the
// surrounding WithTx returns.
type AllocationRepository interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
	GetMaterialForUpdate(ctx context.Context, id string) (domain.Material, error)
	EventExists(ctx context.Context, id string) (bool, error)
	UpdateMaterialStock(ctx context.Context, id string, stock int) error
	CreateMaterialEvent(ctx context.Context, me domain.MaterialEvent) error
	GetMaterialEvent(ctx context.Context, id string) (domain.MaterialEvent, error)
	ListMaterialEvents(ctx context.Context) ([]domain.MaterialEvent, error)
	UpdateMaterialEvent(ctx context.Context, me domain.MaterialEvent) error
	DeleteMaterialEvent(ctx context.Context, id string) error
}

// Allocation outcomes reported to an AllocationRecorder.
const (
	AllocationAllocated         = "allocated"
	AllocationInsufficientStock = "insufficient_stock"
	AllocationRejected          = "rejected"
)

// AllocationRecorder observes allocation outcomes.
type AllocationRecorder interface {
	RecordAllocation(result string)
}

type AllocationService struct {
	repo     AllocationRepository
	clock    clock.Clock
	recorder AllocationRecorder
}

type AllocationServiceOption func(*AllocationService)

// WithAllocationRecorder reports every allocation outcome to r.
func WithAllocationRecorder(r AllocationRecorder) AllocationServiceOption {
	return func(s *AllocationService) {
		if r != nil {
			s.recorder = r
		}
	}
}

func NewAllocationService(repo AllocationRepository, clk clock.Clock, opts ...AllocationServiceOption) *AllocationService {
	svc := &AllocationService{
		repo:  repo,
		clock: clk,
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

type AllocateInput struct {
	MaterialID string
	EventID    string
	Quantity   int
}

// Allocate assigns quantity units of a material to an event. The stock
// check, the stock decrement and the MaterialEvent insert commit together
// or not at all.
func (s *AllocationService) Allocate(ctx context.Context, in AllocateInput) (domain.MaterialEvent, error) {
	me := domain.MaterialEvent{
		ID:         newUUID(),
		MaterialID: in.MaterialID,
		EventID:    in.EventID,
		Quantity:   in.Quantity,
		CreatedAt:  s.clock.Now(),
	}
	if err := me.Validate(); err != nil {
		s.record(err)
		return domain.MaterialEvent{}, err
	}

	err := s.repo.WithTx(ctx, func(txCtx context.Context) error {
		material, err := s.lockMaterial(txCtx, in.MaterialID)
		if err != nil {
			return err
		}
		if err := s.requireEvent(txCtx, in.EventID); err != nil {
			return err
		}
		if in.Quantity > material.Stock {
			return &domain.InsufficientStockError{
				MaterialID: material.ID,
				Requested:  in.Quantity,
				Available:  material.Stock,
			}
		}
		if err := s.repo.UpdateMaterialStock(txCtx, material.ID, material.Stock-in.Quantity); err != nil {
			return err
		}
		return s.repo.CreateMaterialEvent(txCtx, me)
	})
	s.record(err)
	if err != nil {
		return domain.MaterialEvent{}, err
	}
	return me, nil
}

// Update applies change to the current event and quantity of an allocation.
// A larger quantity consumes the difference from stock under the same
// sufficiency check as Allocate; a smaller one returns the difference to
// stock. change sees the record as it stands under the material lock.
func (s *AllocationService) Update(ctx context.Context, id string, change func(*AllocateInput) error) (domain.MaterialEvent, error) {
	if id == "" {
		return domain.MaterialEvent{}, domain.ErrMaterialEventNotFound
	}

	var result domain.MaterialEvent
	err := s.repo.WithTx(ctx, func(txCtx context.Context) error {
		existing, err := s.repo.GetMaterialEvent(txCtx, id)
		if err != nil {
			return err
		}

		// Every quantity change of this allocation happens under this lock,
		// so the re-read below is current.
		material, err := s.lockMaterial(txCtx, existing.MaterialID)
		if err != nil {
			return err
		}
		existing, err = s.repo.GetMaterialEvent(txCtx, id)
		if err != nil {
			return err
		}

		in := AllocateInput{
			MaterialID: existing.MaterialID,
			EventID:    existing.EventID,
			Quantity:   existing.Quantity,
		}
		if err := change(&in); err != nil {
			return err
		}
		candidate := domain.MaterialEvent{
			ID:         id,
			MaterialID: in.MaterialID,
			EventID:    in.EventID,
			Quantity:   in.Quantity,
		}
		if err := candidate.Validate(); err != nil {
			return err
		}
		if in.MaterialID != existing.MaterialID {
			return domain.NewValidationError("material", "cannot be changed on an existing allocation")
		}
		if in.EventID != existing.EventID {
			if err := s.requireEvent(txCtx, in.EventID); err != nil {
				return err
			}
		}

		delta := in.Quantity - existing.Quantity
		if delta > material.Stock {
			return &domain.InsufficientStockError{
				MaterialID: material.ID,
				Requested:  delta,
				Available:  material.Stock,
			}
		}
		if delta != 0 {
			if err := s.repo.UpdateMaterialStock(txCtx, material.ID, material.Stock-delta); err != nil {
				return err
			}
		}

		existing.EventID = in.EventID
		existing.Quantity = in.Quantity
		if err := s.repo.UpdateMaterialEvent(txCtx, existing); err != nil {
			return err
		}
		result = existing
		return nil
	})
	s.record(err)
	if err != nil {
		return domain.MaterialEvent{}, err
	}
	return result, nil
}

func (s *AllocationService) Get(ctx context.Context, id string) (domain.MaterialEvent, error) {
	if id == "" {
		return domain.MaterialEvent{}, domain.ErrMaterialEventNotFound
	}
	return s.repo.GetMaterialEvent(ctx, id)
}

func (s *AllocationService) List(ctx context.Context) ([]domain.MaterialEvent, error) {
	return s.repo.ListMaterialEvents(ctx)
}

// Delete removes the allocation record. Allocated stock is consumed and is
// not returned to the material.
func (s *AllocationService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return domain.ErrMaterialEventNotFound
	}
	return s.repo.DeleteMaterialEvent(ctx, id)
}

func (s *AllocationService) lockMaterial(ctx context.Context, id string) (domain.Material, error) {
	material, err := s.repo.GetMaterialForUpdate(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Material{}, domain.NewValidationError("material", "object does not exist")
		}
		return domain.Material{}, err
	}
	return material, nil
}

func (s *AllocationService) requireEvent(ctx context.Context, id string) error {
	ok, err := s.repo.EventExists(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return domain.NewValidationError("event", "object does not exist")
	}
	return nil
}

func (s *AllocationService) record(err error) {
	if s.recorder == nil {
		return
	}
	switch {
	case err == nil:
		s.recorder.RecordAllocation(AllocationAllocated)
	case errors.Is(err, domain.ErrInsufficientStock):
		s.recorder.RecordAllocation(AllocationInsufficientStock)
	default:
		s.recorder.RecordAllocation(AllocationRejected)
	}
}
