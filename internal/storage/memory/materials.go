package memory

import (
	"context"
	"time"

	"github.com/prodib01/BAYLOR-CDC/internal/domain"
)

func (s *Store) CreateMaterial(ctx context.Context, m domain.Material) error {
	return s.write(ctx, func(st *state) error {
		if _, ok := st.ageGroups[m.TargetGroupID]; !ok {
			return missingRef("target_group", m.TargetGroupID)
		}
		st.materials[m.ID] = m
		return nil
	})
}

func (s *Store) GetMaterial(ctx context.Context, id string) (domain.Material, error) {
	var out domain.Material
	err := s.read(ctx, func(st *state) error {
		m, ok := st.materials[id]
		if !ok {
			return domain.ErrMaterialNotFound
		}
		out = m
		return nil
	})
	return out, err
}

// GetMaterialForUpdate must run inside WithTx; the transaction's write
// lock is what makes the read exclusive.
func (s *Store) GetMaterialForUpdate(ctx context.Context, id string) (domain.Material, error) {
	if tx := txFromContext(ctx); tx == nil || !tx.write {
		return domain.Material{}, errReadOnly
	}
	return s.GetMaterial(ctx, id)
}

func (s *Store) ListMaterials(ctx context.Context) ([]domain.Material, error) {
	var out []domain.Material
	err := s.read(ctx, func(st *state) error {
		out = make([]domain.Material, 0, len(st.materials))
		for _, m := range st.materials {
			out = append(out, m)
		}
		return nil
	})
	sortByCreation(out, func(m domain.Material) (time.Time, string) { return m.CreatedAt, m.ID })
	return out, err
}

func (s *Store) MaterialsByIDs(ctx context.Context, ids []string) ([]domain.Material, error) {
	var out []domain.Material
	err := s.read(ctx, func(st *state) error {
		out = make([]domain.Material, 0, len(ids))
		for _, id := range ids {
			if m, ok := st.materials[id]; ok {
				out = append(out, m)
			}
		}
		return nil
	})
	return out, err
}

func (s *Store) UpdateMaterial(ctx context.Context, m domain.Material) error {
	return s.write(ctx, func(st *state) error {
		existing, ok := st.materials[m.ID]
		if !ok {
			return domain.ErrMaterialNotFound
		}
		if _, ok := st.ageGroups[m.TargetGroupID]; !ok {
			return missingRef("target_group", m.TargetGroupID)
		}
		m.CreatedAt = existing.CreatedAt
		st.materials[m.ID] = m
		return nil
	})
}

func (s *Store) UpdateMaterialStock(ctx context.Context, id string, stock int) error {
	return s.write(ctx, func(st *state) error {
		m, ok := st.materials[id]
		if !ok {
			return domain.ErrMaterialNotFound
		}
		if stock < 0 {
			return domain.NewValidationError("stock", "must be greater than or equal to 0")
		}
		m.Stock = stock
		st.materials[id] = m
		return nil
	})
}

func (s *Store) DeleteMaterial(ctx context.Context, id string) error {
	return s.write(ctx, func(st *state) error {
		if _, ok := st.materials[id]; !ok {
			return domain.ErrMaterialNotFound
		}
		deleteMaterial(st, id)
		return nil
	})
}

func deleteMaterial(st *state, id string) {
	delete(st.materials, id)
	for meID, me := range st.materialEvents {
		if me.MaterialID == id {
			delete(st.materialEvents, meID)
		}
	}
}
