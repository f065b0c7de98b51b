package app

import (
	"context"

	"github.com/prodib01/BAYLOR-CDC/internal/clock"
	"github.com/prodib01/BAYLOR-CDC/internal/domain"
)

// EventRepository persists events and their facilitator links. Unknown
// facilitator ids are reported as a validation error on "facilitators".
type EventRepository interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
	// GetEventForUpdate must hold the event exclusively until the
	// surrounding WithTx returns.
	GetEventForUpdate(ctx context.Context, id string) (domain.Event, error)
	CreateEvent(ctx context.Context, e domain.Event) error
	GetEvent(ctx context.Context, id string) (domain.Event, error)
	ListEvents(ctx context.Context) ([]domain.Event, error)
	UpdateEvent(ctx context.Context, e domain.Event) error
	DeleteEvent(ctx context.Context, id string) error
}

type EventService struct {
	repo  EventRepository
	clock clock.Clock
}

func NewEventService(repo EventRepository, clk clock.Clock) *EventService {
	return &EventService{
		repo:  repo,
		clock: clk,
	}
}

func (s *EventService) Create(ctx context.Context, e domain.Event) (domain.Event, error) {
	if err := e.Validate(); err != nil {
		return domain.Event{}, err
	}
	e.ID = newUUID()
	e.CreatedAt = s.clock.Now()
	e.FacilitatorIDs = dedupe(e.FacilitatorIDs)
	if err := s.repo.CreateEvent(ctx, e); err != nil {
		return domain.Event{}, err
	}
	return e, nil
}

func (s *EventService) Get(ctx context.Context, id string) (domain.Event, error) {
	if id == "" {
		return domain.Event{}, domain.ErrEventNotFound
	}
	return s.repo.GetEvent(ctx, id)
}

func (s *EventService) List(ctx context.Context) ([]domain.Event, error) {
	return s.repo.ListEvents(ctx)
}

// Update applies change to the current event and saves it, replacing the
// full facilitator set. The read and the write share one transaction with
// the event row locked.
func (s *EventService) Update(ctx context.Context, id string, change func(*domain.Event) error) (domain.Event, error) {
	if id == "" {
		return domain.Event{}, domain.ErrEventNotFound
	}
	var out domain.Event
	err := s.repo.WithTx(ctx, func(txCtx context.Context) error {
		e, err := s.repo.GetEventForUpdate(txCtx, id)
		if err != nil {
			return err
		}
		if err := change(&e); err != nil {
			return err
		}
		e.ID = id
		if err := e.Validate(); err != nil {
			return err
		}
		e.FacilitatorIDs = dedupe(e.FacilitatorIDs)
		if err := s.repo.UpdateEvent(txCtx, e); err != nil {
			return err
		}
		out, err = s.repo.GetEvent(txCtx, id)
		return err
	})
	if err != nil {
		return domain.Event{}, err
	}
	return out, nil
}

// Delete removes the event with its facilitator links, allocations and
// attendance records.
func (s *EventService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return domain.ErrEventNotFound
	}
	return s.repo.DeleteEvent(ctx, id)
}

func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
