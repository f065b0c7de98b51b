package app

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/prodib01/BAYLOR-CDC/internal/domain"
)

func TestAllocationService_Allocate(t *testing.T) {
	t.Parallel()

	t.Run("decrements stock and rejects overdraw", func(t *testing.T) {
		f := newFixture(t)
		ctx := context.Background()
		g := f.ageGroup(t, "10-14")
		pens := f.material(t, "Pens", 10, g.ID)
		e := f.event(t, "Camp")

		me, err := f.allocations.Allocate(ctx, AllocateInput{MaterialID: pens.ID, EventID: e.ID, Quantity: 7})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if me.ID == "" || me.Quantity != 7 || !me.CreatedAt.Equal(testNow) {
			t.Fatalf("unexpected allocation %+v", me)
		}
		if got := f.stock(t, pens.ID); got != 3 {
			t.Fatalf("expected stock 3, got %d", got)
		}

		_, err = f.allocations.Allocate(ctx, AllocateInput{MaterialID: pens.ID, EventID: e.ID, Quantity: 5})
		var stockErr *domain.InsufficientStockError
		if !errors.As(err, &stockErr) {
			t.Fatalf("expected insufficient stock, got %v", err)
		}
		if stockErr.Requested != 5 || stockErr.Available != 3 {
			t.Fatalf("unexpected stock error %+v", stockErr)
		}
		if got := f.stock(t, pens.ID); got != 3 {
			t.Fatalf("expected stock to stay 3, got %d", got)
		}
		list, err := f.allocations.List(ctx)
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(list) != 1 {
			t.Fatalf("expected 1 allocation, got %d", len(list))
		}
		if f.recorder.count(AllocationAllocated) != 1 || f.recorder.count(AllocationInsufficientStock) != 1 {
			t.Fatalf("unexpected recorded outcomes %v", f.recorder.results)
		}
	})

	t.Run("allows allocating the whole stock", func(t *testing.T) {
		f := newFixture(t)
		g := f.ageGroup(t, "15-19")
		m := f.material(t, "Pads", 4, g.ID)
		e := f.event(t, "Clinic")

		if _, err := f.allocations.Allocate(context.Background(), AllocateInput{MaterialID: m.ID, EventID: e.ID, Quantity: 4}); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if got := f.stock(t, m.ID); got != 0 {
			t.Fatalf("expected stock 0, got %d", got)
		}
	})

	tests := []struct {
		name  string
		in    func(materialID, eventID string) AllocateInput
		field string
	}{
		{"zero quantity", func(m, e string) AllocateInput { return AllocateInput{MaterialID: m, EventID: e, Quantity: 0} }, "quantity"},
		{"negative quantity", func(m, e string) AllocateInput { return AllocateInput{MaterialID: m, EventID: e, Quantity: -2} }, "quantity"},
		{"missing material id", func(_, e string) AllocateInput { return AllocateInput{EventID: e, Quantity: 1} }, "material"},
		{"unknown material", func(_, e string) AllocateInput { return AllocateInput{MaterialID: "nope", EventID: e, Quantity: 1} }, "material"},
		{"unknown event", func(m, _ string) AllocateInput { return AllocateInput{MaterialID: m, EventID: "nope", Quantity: 1} }, "event"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t)
			g := f.ageGroup(t, "10-14")
			m := f.material(t, "Pens", 10, g.ID)
			e := f.event(t, "Camp")

			_, err := f.allocations.Allocate(context.Background(), tc.in(m.ID, e.ID))
			var vErr *domain.ValidationError
			if !errors.As(err, &vErr) {
				t.Fatalf("expected validation error, got %v", err)
			}
			if _, ok := vErr.Fields[tc.field]; !ok {
				t.Fatalf("expected field %q in %v", tc.field, vErr.Fields)
			}
			if got := f.stock(t, m.ID); got != 10 {
				t.Fatalf("expected stock unchanged, got %d", got)
			}
			if f.recorder.count(AllocationRejected) != 1 {
				t.Fatalf("expected one rejected outcome, got %v", f.recorder.results)
			}
		})
	}
}

func TestAllocationService_ConcurrentAllocations(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	g := f.ageGroup(t, "10-14")
	m := f.material(t, "Books", 5, g.ID)
	e := f.event(t, "Reading day")

	const workers = 8
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
		shortages int
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.allocations.Allocate(context.Background(), AllocateInput{MaterialID: m.ID, EventID: e.ID, Quantity: 5})
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				successes++
			case errors.Is(err, domain.ErrInsufficientStock):
				shortages++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	if successes != 1 || shortages != workers-1 {
		t.Fatalf("expected 1 success and %d shortages, got %d and %d", workers-1, successes, shortages)
	}
	if got := f.stock(t, m.ID); got != 0 {
		t.Fatalf("expected stock 0, got %d", got)
	}
}

func TestAllocationService_Update(t *testing.T) {
	t.Parallel()

	setup := func(t *testing.T) (*fixture, domain.MaterialEvent, domain.Event) {
		f := newFixture(t)
		g := f.ageGroup(t, "10-14")
		m := f.material(t, "Pens", 10, g.ID)
		e := f.event(t, "Camp")
		me, err := f.allocations.Allocate(context.Background(), AllocateInput{MaterialID: m.ID, EventID: e.ID, Quantity: 4})
		if err != nil {
			t.Fatalf("allocate: %v", err)
		}
		return f, me, e
	}

	t.Run("increase consumes the difference", func(t *testing.T) {
		f, me, e := setup(t)
		got, err := f.allocations.Update(context.Background(), me.ID, replaceInput(AllocateInput{MaterialID: me.MaterialID, EventID: e.ID, Quantity: 9}))
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if got.Quantity != 9 || !got.CreatedAt.Equal(me.CreatedAt) {
			t.Fatalf("unexpected allocation %+v", got)
		}
		if s := f.stock(t, me.MaterialID); s != 1 {
			t.Fatalf("expected stock 1, got %d", s)
		}
	})

	t.Run("increase beyond stock is rejected", func(t *testing.T) {
		f, me, e := setup(t)
		_, err := f.allocations.Update(context.Background(), me.ID, replaceInput(AllocateInput{MaterialID: me.MaterialID, EventID: e.ID, Quantity: 11}))
		if !errors.Is(err, domain.ErrInsufficientStock) {
			t.Fatalf("expected insufficient stock, got %v", err)
		}
		if s := f.stock(t, me.MaterialID); s != 6 {
			t.Fatalf("expected stock 6, got %d", s)
		}
		stored, err := f.allocations.Get(context.Background(), me.ID)
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		if stored.Quantity != 4 {
			t.Fatalf("expected quantity 4, got %d", stored.Quantity)
		}
	})

	t.Run("decrease returns stock", func(t *testing.T) {
		f, me, e := setup(t)
		if _, err := f.allocations.Update(context.Background(), me.ID, replaceInput(AllocateInput{MaterialID: me.MaterialID, EventID: e.ID, Quantity: 1})); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if s := f.stock(t, me.MaterialID); s != 9 {
			t.Fatalf("expected stock 9, got %d", s)
		}
	})

	t.Run("moves to another event", func(t *testing.T) {
		f, me, _ := setup(t)
		other := f.event(t, "Fair")
		got, err := f.allocations.Update(context.Background(), me.ID, replaceInput(AllocateInput{MaterialID: me.MaterialID, EventID: other.ID, Quantity: 4}))
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if got.EventID != other.ID {
			t.Fatalf("expected event %s, got %s", other.ID, got.EventID)
		}
		if s := f.stock(t, me.MaterialID); s != 6 {
			t.Fatalf("expected stock 6, got %d", s)
		}
	})

	t.Run("material cannot change", func(t *testing.T) {
		f, me, e := setup(t)
		g := f.ageGroup(t, "15-19")
		other := f.material(t, "Books", 10, g.ID)
		_, err := f.allocations.Update(context.Background(), me.ID, replaceInput(AllocateInput{MaterialID: other.ID, EventID: e.ID, Quantity: 4}))
		var vErr *domain.ValidationError
		if !errors.As(err, &vErr) || vErr.Fields["material"] == "" {
			t.Fatalf("expected material validation error, got %v", err)
		}
	})

	t.Run("change sees the latest quantity", func(t *testing.T) {
		f, me, _ := setup(t)
		ctx := context.Background()
		if _, err := f.allocations.Update(ctx, me.ID, func(in *AllocateInput) error { in.Quantity = 6; return nil }); err != nil {
			t.Fatalf("resize: %v", err)
		}
		other := f.event(t, "Fair")
		got, err := f.allocations.Update(ctx, me.ID, func(in *AllocateInput) error {
			if in.Quantity != 6 {
				t.Errorf("expected quantity 6 under the lock, got %d", in.Quantity)
			}
			in.EventID = other.ID
			return nil
		})
		if err != nil {
			t.Fatalf("move: %v", err)
		}
		if got.Quantity != 6 || got.EventID != other.ID {
			t.Fatalf("unexpected allocation %+v", got)
		}
		if s := f.stock(t, me.MaterialID); s != 4 {
			t.Fatalf("expected stock 4, got %d", s)
		}
	})

	t.Run("change error aborts", func(t *testing.T) {
		f, me, _ := setup(t)
		errStop := errors.New("stop")
		_, err := f.allocations.Update(context.Background(), me.ID, func(in *AllocateInput) error {
			in.Quantity = 10
			return errStop
		})
		if !errors.Is(err, errStop) {
			t.Fatalf("expected change error, got %v", err)
		}
		if s := f.stock(t, me.MaterialID); s != 6 {
			t.Fatalf("expected stock 6, got %d", s)
		}
	})

	t.Run("unknown allocation", func(t *testing.T) {
		f, me, e := setup(t)
		_, err := f.allocations.Update(context.Background(), "missing", replaceInput(AllocateInput{MaterialID: me.MaterialID, EventID: e.ID, Quantity: 1}))
		if !errors.Is(err, domain.ErrNotFound) {
			t.Fatalf("expected not found, got %v", err)
		}
	})
}

func replaceInput(next AllocateInput) func(*AllocateInput) error {
	return func(in *AllocateInput) error {
		*in = next
		return nil
	}
}

func TestAllocationService_DeleteKeepsStockConsumed(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	g := f.ageGroup(t, "10-14")
	m := f.material(t, "Pens", 10, g.ID)
	e := f.event(t, "Camp")
	me, err := f.allocations.Allocate(context.Background(), AllocateInput{MaterialID: m.ID, EventID: e.ID, Quantity: 3})
	if err != nil {
		t.Fatalf("allocate: %v", err)
	}

	if err := f.allocations.Delete(context.Background(), me.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if s := f.stock(t, m.ID); s != 7 {
		t.Fatalf("expected stock 7, got %d", s)
	}
	if err := f.allocations.Delete(context.Background(), me.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found on second delete, got %v", err)
	}
}
