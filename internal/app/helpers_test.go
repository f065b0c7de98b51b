package app

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/prodib01/BAYLOR-CDC/internal/clock"
	"github.com/prodib01/BAYLOR-CDC/internal/domain"
	"github.com/prodib01/BAYLOR-CDC/internal/storage/memory"
)

var testNow = time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

func testDate(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

type fixture struct {
	store        *memory.Store
	clock        clock.Clock
	facilitators *FacilitatorService
	events       *EventService
	groups       *AgeGroupService
	participants *ParticipantService
	materials    *MaterialService
	attendances  *AttendanceService
	allocations  *AllocationService
	recorder     *fakeRecorder
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore()
	clk := clock.NewFixed(testNow)
	rec := &fakeRecorder{}
	return &fixture{
		store:        store,
		clock:        clk,
		facilitators: NewFacilitatorService(store, clk),
		events:       NewEventService(store, clk),
		groups:       NewAgeGroupService(store, clk),
		participants: NewParticipantService(store, clk),
		materials:    NewMaterialService(store, clk),
		attendances:  NewAttendanceService(store, clk),
		allocations:  NewAllocationService(store, clk, WithAllocationRecorder(rec)),
		recorder:     rec,
	}
}

func (f *fixture) ageGroup(t *testing.T, label string) domain.AgeGroup {
	t.Helper()
	g, err := f.groups.Create(context.Background(), domain.AgeGroup{Group: label})
	if err != nil {
		t.Fatalf("create age group: %v", err)
	}
	return g
}

func (f *fixture) facilitator(t *testing.T, name string) domain.Facilitator {
	t.Helper()
	fac, err := f.facilitators.Create(context.Background(), domain.Facilitator{
		Name:        name,
		DOB:         testDate(1990, 1, 1),
		Gender:      "F",
		Facilitates: "Life skills",
	})
	if err != nil {
		t.Fatalf("create facilitator: %v", err)
	}
	return fac
}

func (f *fixture) event(t *testing.T, name string, facilitatorIDs ...string) domain.Event {
	t.Helper()
	e, err := f.events.Create(context.Background(), domain.Event{
		Name:             name,
		EventType:        "Workshop",
		StartDate:        testDate(2025, 3, 10),
		EndDate:          testDate(2025, 3, 11),
		Location:         "Community hall",
		FacilitatorIDs:   facilitatorIDs,
		Lessons:          "Budgeting",
		LearningOutcomes: "Keeps a ledger",
	})
	if err != nil {
		t.Fatalf("create event: %v", err)
	}
	return e
}

func (f *fixture) participant(t *testing.T, name, groupID string) domain.Participant {
	t.Helper()
	p, err := f.participants.Create(context.Background(), domain.Participant{
		Name:           name,
		AgeGroupID:     groupID,
		Village:        "Kanyama",
		DOB:            testDate(2010, 6, 1),
		EnrollmentDate: testDate(2024, 1, 15),
	})
	if err != nil {
		t.Fatalf("create participant: %v", err)
	}
	return p
}

func (f *fixture) material(t *testing.T, name string, stock int, groupID string) domain.Material {
	t.Helper()
	m, err := f.materials.Create(context.Background(), domain.Material{
		Name:          name,
		Stock:         stock,
		TargetGroupID: groupID,
	})
	if err != nil {
		t.Fatalf("create material: %v", err)
	}
	return m
}

func (f *fixture) stock(t *testing.T, materialID string) int {
	t.Helper()
	m, err := f.materials.Get(context.Background(), materialID)
	if err != nil {
		t.Fatalf("get material: %v", err)
	}
	return m.Stock
}

type fakeRecorder struct {
	mu      sync.Mutex
	results []string
}

func (r *fakeRecorder) RecordAllocation(result string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.results = append(r.results, result)
}

func (r *fakeRecorder) count(result string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, got := range r.results {
		if got == result {
			n++
		}
	}
	return n
}
