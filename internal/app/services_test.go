package app

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/prodib01/BAYLOR-CDC/internal/clock"
	"github.com/prodib01/BAYLOR-CDC/internal/domain"
	"github.com/prodib01/BAYLOR-CDC/internal/storage/memory"
)

func TestEventService_CreateDedupesFacilitators(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ann := f.facilitator(t, "Ann")
	e := f.event(t, "Camp", ann.ID, ann.ID)

	got, err := f.events.Get(context.Background(), e.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(got.FacilitatorIDs) != 1 || got.FacilitatorIDs[0] != ann.ID {
		t.Fatalf("expected single facilitator, got %v", got.FacilitatorIDs)
	}
	if !got.CreatedAt.Equal(testNow) {
		t.Fatalf("expected created_at %v, got %v", testNow, got.CreatedAt)
	}
}

func TestEventService_RejectsUnknownFacilitator(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	_, err := f.events.Create(context.Background(), domain.Event{
		Name:             "Camp",
		EventType:        "Workshop",
		StartDate:        testDate(2025, 3, 10),
		EndDate:          testDate(2025, 3, 10),
		Location:         "Hall",
		FacilitatorIDs:   []string{"ghost"},
		Lessons:          "l",
		LearningOutcomes: "o",
	})
	var vErr *domain.ValidationError
	if !errors.As(err, &vErr) || vErr.Fields["facilitators"] == "" {
		t.Fatalf("expected facilitators validation error, got %v", err)
	}
	events, err := f.events.List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(events) != 0 {
		t.Fatalf("expected no events, got %d", len(events))
	}
}

func TestServices_NotFound(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()

	tests := []struct {
		name string
		call func() error
	}{
		{"facilitator get", func() error { _, err := f.facilitators.Get(ctx, "x"); return err }},
		{"facilitator empty id", func() error { _, err := f.facilitators.Get(ctx, ""); return err }},
		{"event delete", func() error { return f.events.Delete(ctx, "x") }},
		{"age group update", func() error {
			_, err := f.groups.Update(ctx, domain.AgeGroup{ID: "x", Group: "10-14"})
			return err
		}},
		{"participant delete", func() error { return f.participants.Delete(ctx, "x") }},
		{"material get", func() error { _, err := f.materials.Get(ctx, "x"); return err }},
		{"attendance get", func() error { _, err := f.attendances.Get(ctx, "x"); return err }},
		{"allocation get", func() error { _, err := f.allocations.Get(ctx, "x"); return err }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if err := tc.call(); !errors.Is(err, domain.ErrNotFound) {
				t.Fatalf("expected not found, got %v", err)
			}
		})
	}
}

func TestMaterialService_UpdateKeepsCreatedAt(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	g := f.ageGroup(t, "10-14")
	m := f.material(t, "Pens", 10, g.ID)

	got, err := f.materials.Update(context.Background(), m.ID, func(cur *domain.Material) error {
		cur.Stock = 25
		cur.CreatedAt = testDate(2000, 1, 1)
		return nil
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if got.Stock != 25 {
		t.Fatalf("expected stock 25, got %d", got.Stock)
	}
	if !got.CreatedAt.Equal(testNow) {
		t.Fatalf("expected created_at %v, got %v", testNow, got.CreatedAt)
	}

	_, err = f.materials.Update(context.Background(), m.ID, func(cur *domain.Material) error {
		cur.Stock = -1
		return nil
	})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if s := f.stock(t, m.ID); s != 25 {
		t.Fatalf("expected stock 25 after rejected update, got %d", s)
	}

	if _, err := f.materials.Update(context.Background(), "missing", func(*domain.Material) error { return nil }); !errors.Is(err, domain.ErrMaterialNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestMaterialService_UpdateKeepsAllocatedStock(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()
	g := f.ageGroup(t, "10-14")
	m := f.material(t, "Pens", 10, g.ID)
	e := f.event(t, "Camp")

	if _, err := f.allocations.Allocate(ctx, AllocateInput{MaterialID: m.ID, EventID: e.ID, Quantity: 7}); err != nil {
		t.Fatalf("allocate: %v", err)
	}
	got, err := f.materials.Update(ctx, m.ID, func(cur *domain.Material) error {
		cur.Name = "Blue pens"
		return nil
	})
	if err != nil {
		t.Fatalf("rename: %v", err)
	}
	if got.Name != "Blue pens" || got.Stock != 3 {
		t.Fatalf("expected Blue pens with stock 3, got %+v", got)
	}
}

func TestMaterialService_RenamesDuringAllocations(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()
	g := f.ageGroup(t, "10-14")
	m := f.material(t, "Pens", 20, g.ID)
	e := f.event(t, "Camp")

	const allocations = 12
	var wg sync.WaitGroup
	errs := make(chan error, 2*allocations)
	for i := range allocations {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, err := f.allocations.Allocate(ctx, AllocateInput{MaterialID: m.ID, EventID: e.ID, Quantity: 1})
			errs <- err
		}()
		go func() {
			defer wg.Done()
			_, err := f.materials.Update(ctx, m.ID, func(cur *domain.Material) error {
				cur.Name = "Pens " + strconv.Itoa(i)
				return nil
			})
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if s := f.stock(t, m.ID); s != 20-allocations {
		t.Fatalf("expected stock %d, got %d", 20-allocations, s)
	}
}

func TestEventService_UpdateAfterFacilitatorDeleted(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()
	ann := f.facilitator(t, "Ann")
	bob := f.facilitator(t, "Bob")
	e := f.event(t, "Camp", ann.ID, bob.ID)

	if err := f.facilitators.Delete(ctx, bob.ID); err != nil {
		t.Fatalf("delete facilitator: %v", err)
	}
	got, err := f.events.Update(ctx, e.ID, func(cur *domain.Event) error {
		cur.Name = "Holiday camp"
		return nil
	})
	if err != nil {
		t.Fatalf("rename: %v", err)
	}
	if got.Name != "Holiday camp" {
		t.Fatalf("expected Holiday camp, got %q", got.Name)
	}
	if len(got.FacilitatorIDs) != 1 || got.FacilitatorIDs[0] != ann.ID {
		t.Fatalf("expected only %s, got %v", ann.ID, got.FacilitatorIDs)
	}

	got, err = f.events.Update(ctx, e.ID, func(cur *domain.Event) error {
		cur.FacilitatorIDs = []string{ann.ID, ann.ID}
		return nil
	})
	if err != nil {
		t.Fatalf("relink: %v", err)
	}
	if len(got.FacilitatorIDs) != 1 {
		t.Fatalf("expected deduped facilitators, got %v", got.FacilitatorIDs)
	}
}

func TestAgeGroupService_DeleteCascades(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()
	g := f.ageGroup(t, "10-14")
	p := f.participant(t, "Joy", g.ID)
	m := f.material(t, "Pens", 10, g.ID)
	e := f.event(t, "Camp")
	if _, err := f.attendances.Create(ctx, domain.Attendance{ParticipantID: p.ID, EventID: e.ID, Skills: "sewing"}); err != nil {
		t.Fatalf("create attendance: %v", err)
	}
	if _, err := f.allocations.Allocate(ctx, AllocateInput{MaterialID: m.ID, EventID: e.ID, Quantity: 1}); err != nil {
		t.Fatalf("allocate: %v", err)
	}

	if err := f.groups.Delete(ctx, g.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := f.participants.Get(ctx, p.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected participant gone, got %v", err)
	}
	if _, err := f.materials.Get(ctx, m.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected material gone, got %v", err)
	}
	attendances, _ := f.attendances.List(ctx)
	allocations, _ := f.allocations.List(ctx)
	if len(attendances) != 0 || len(allocations) != 0 {
		t.Fatalf("expected dependants gone, got %d attendances and %d allocations", len(attendances), len(allocations))
	}
	if _, err := f.events.Get(ctx, e.ID); err != nil {
		t.Fatalf("event must survive: %v", err)
	}
}

func TestListings_OrderedByCreation(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := memory.NewStore()
	svc := NewAgeGroupService(store, clock.NewStepper(testNow, time.Minute))

	labels := []string{"15-19", "10-14", "20-24"}
	for _, label := range labels {
		if _, err := svc.Create(ctx, domain.AgeGroup{Group: label}); err != nil {
			t.Fatalf("create %s: %v", label, err)
		}
	}

	for i := 0; i < 3; i++ {
		groups, err := svc.List(ctx)
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(groups) != len(labels) {
			t.Fatalf("expected %d groups, got %d", len(labels), len(groups))
		}
		for j, g := range groups {
			if g.Group != labels[j] {
				t.Fatalf("expected creation order %v, got %q at %d", labels, g.Group, j)
			}
		}
	}
}
