package app

import (
	"context"

	"github.com/prodib01/BAYLOR-CDC/internal/domain"
)

// ProjectionReader is the read surface used to assemble nested views.
// WithSnapshot runs fn against one consistent read of the store.
type ProjectionReader interface {
	WithSnapshot(ctx context.Context, fn func(ctx context.Context) error) error

	GetEvent(ctx context.Context, id string) (domain.Event, error)
	ListEvents(ctx context.Context) ([]domain.Event, error)
	EventsByIDs(ctx context.Context, ids []string) ([]domain.Event, error)

	GetParticipant(ctx context.Context, id string) (domain.Participant, error)
	ListParticipants(ctx context.Context) ([]domain.Participant, error)
	ParticipantsByIDs(ctx context.Context, ids []string) ([]domain.Participant, error)

	GetAttendance(ctx context.Context, id string) (domain.Attendance, error)
	ListAttendances(ctx context.Context) ([]domain.Attendance, error)
	AttendancesByEvents(ctx context.Context, eventIDs []string) ([]domain.Attendance, error)

	GetMaterialEvent(ctx context.Context, id string) (domain.MaterialEvent, error)
	ListMaterialEvents(ctx context.Context) ([]domain.MaterialEvent, error)

	MaterialsByIDs(ctx context.Context, ids []string) ([]domain.Material, error)
	FacilitatorsByIDs(ctx context.Context, ids []string) ([]domain.Facilitator, error)
	AgeGroupsByIDs(ctx context.Context, ids []string) ([]domain.AgeGroup, error)
}

// Projector builds the nested read views. It never writes and never caches;
// every call reflects the store at call time.
type Projector struct {
	repo ProjectionReader
}

func NewProjector(repo ProjectionReader) *Projector {
	return &Projector{repo: repo}
}

func (p *Projector) Participant(ctx context.Context, id string) (domain.ParticipantView, error) {
	var out domain.ParticipantView
	err := p.repo.WithSnapshot(ctx, func(ctx context.Context) error {
		participant, err := p.repo.GetParticipant(ctx, id)
		if err != nil {
			return err
		}
		views, err := p.participantViews(ctx, []domain.Participant{participant})
		if err != nil {
			return err
		}
		out = views[0]
		return nil
	})
	return out, err
}

func (p *Projector) Participants(ctx context.Context) ([]domain.ParticipantView, error) {
	var out []domain.ParticipantView
	err := p.repo.WithSnapshot(ctx, func(ctx context.Context) error {
		participants, err := p.repo.ListParticipants(ctx)
		if err != nil {
			return err
		}
		out, err = p.participantViews(ctx, participants)
		return err
	})
	return out, err
}

func (p *Projector) Attendance(ctx context.Context, id string) (domain.AttendanceView, error) {
	var out domain.AttendanceView
	err := p.repo.WithSnapshot(ctx, func(ctx context.Context) error {
		attendance, err := p.repo.GetAttendance(ctx, id)
		if err != nil {
			return err
		}
		views, err := p.attendanceViews(ctx, []domain.Attendance{attendance})
		if err != nil {
			return err
		}
		out = views[0]
		return nil
	})
	return out, err
}

func (p *Projector) Attendances(ctx context.Context) ([]domain.AttendanceView, error) {
	var out []domain.AttendanceView
	err := p.repo.WithSnapshot(ctx, func(ctx context.Context) error {
		attendances, err := p.repo.ListAttendances(ctx)
		if err != nil {
			return err
		}
		out, err = p.attendanceViews(ctx, attendances)
		return err
	})
	return out, err
}

func (p *Projector) Event(ctx context.Context, id string) (domain.EventView, error) {
	var out domain.EventView
	err := p.repo.WithSnapshot(ctx, func(ctx context.Context) error {
		event, err := p.repo.GetEvent(ctx, id)
		if err != nil {
			return err
		}
		views, err := p.eventViews(ctx, []domain.Event{event})
		if err != nil {
			return err
		}
		out = views[0]
		return nil
	})
	return out, err
}

func (p *Projector) Events(ctx context.Context) ([]domain.EventView, error) {
	var out []domain.EventView
	err := p.repo.WithSnapshot(ctx, func(ctx context.Context) error {
		events, err := p.repo.ListEvents(ctx)
		if err != nil {
			return err
		}
		out, err = p.eventViews(ctx, events)
		return err
	})
	return out, err
}

func (p *Projector) MaterialEvent(ctx context.Context, id string) (domain.MaterialEventView, error) {
	var out domain.MaterialEventView
	err := p.repo.WithSnapshot(ctx, func(ctx context.Context) error {
		me, err := p.repo.GetMaterialEvent(ctx, id)
		if err != nil {
			return err
		}
		views, err := p.materialEventViews(ctx, []domain.MaterialEvent{me})
		if err != nil {
			return err
		}
		out = views[0]
		return nil
	})
	return out, err
}

func (p *Projector) MaterialEvents(ctx context.Context) ([]domain.MaterialEventView, error) {
	var out []domain.MaterialEventView
	err := p.repo.WithSnapshot(ctx, func(ctx context.Context) error {
		mes, err := p.repo.ListMaterialEvents(ctx)
		if err != nil {
			return err
		}
		out, err = p.materialEventViews(ctx, mes)
		return err
	})
	return out, err
}

func (p *Projector) participantViews(ctx context.Context, participants []domain.Participant) ([]domain.ParticipantView, error) {
	groupIDs := make([]string, 0, len(participants))
	for _, participant := range participants {
		groupIDs = append(groupIDs, participant.AgeGroupID)
	}
	groups, err := p.repo.AgeGroupsByIDs(ctx, dedupe(groupIDs))
	if err != nil {
		return nil, err
	}
	byID := make(map[string]domain.AgeGroup, len(groups))
	for _, g := range groups {
		byID[g.ID] = g
	}

	out := make([]domain.ParticipantView, 0, len(participants))
	for _, participant := range participants {
		view := domain.ParticipantView{Participant: participant}
		if g, ok := byID[participant.AgeGroupID]; ok {
			g := g
			view.AgeGroupDetails = &g
		}
		out = append(out, view)
	}
	return out, nil
}

func (p *Projector) attendanceViews(ctx context.Context, attendances []domain.Attendance) ([]domain.AttendanceView, error) {
	participantIDs := make([]string, 0, len(attendances))
	for _, a := range attendances {
		participantIDs = append(participantIDs, a.ParticipantID)
	}
	participants, err := p.repo.ParticipantsByIDs(ctx, dedupe(participantIDs))
	if err != nil {
		return nil, err
	}
	views, err := p.participantViews(ctx, participants)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]domain.ParticipantView, len(views))
	for _, v := range views {
		byID[v.ID] = v
	}

	out := make([]domain.AttendanceView, 0, len(attendances))
	for _, a := range attendances {
		out = append(out, domain.AttendanceView{
			Attendance:         a,
			ParticipantDetails: byID[a.ParticipantID],
		})
	}
	return out, nil
}

func (p *Projector) eventViews(ctx context.Context, events []domain.Event) ([]domain.EventView, error) {
	eventIDs := make([]string, 0, len(events))
	var facilitatorIDs []string
	for _, e := range events {
		eventIDs = append(eventIDs, e.ID)
		facilitatorIDs = append(facilitatorIDs, e.FacilitatorIDs...)
	}

	facilitators, err := p.repo.FacilitatorsByIDs(ctx, dedupe(facilitatorIDs))
	if err != nil {
		return nil, err
	}
	facilitatorByID := make(map[string]domain.Facilitator, len(facilitators))
	for _, f := range facilitators {
		facilitatorByID[f.ID] = f
	}

	attendances, err := p.repo.AttendancesByEvents(ctx, eventIDs)
	if err != nil {
		return nil, err
	}
	attendanceViews, err := p.attendanceViews(ctx, attendances)
	if err != nil {
		return nil, err
	}
	attendancesByEvent := make(map[string][]domain.AttendanceView, len(events))
	for _, v := range attendanceViews {
		attendancesByEvent[v.EventID] = append(attendancesByEvent[v.EventID], v)
	}

	out := make([]domain.EventView, 0, len(events))
	for _, e := range events {
		view := domain.EventView{
			Event:               e,
			FacilitatorsDetails: make([]domain.Facilitator, 0, len(e.FacilitatorIDs)),
			EventAttendances:    attendancesByEvent[e.ID],
		}
		for _, id := range e.FacilitatorIDs {
			if f, ok := facilitatorByID[id]; ok {
				view.FacilitatorsDetails = append(view.FacilitatorsDetails, f)
			}
		}
		if view.EventAttendances == nil {
			view.EventAttendances = []domain.AttendanceView{}
		}
		out = append(out, view)
	}
	return out, nil
}

func (p *Projector) materialEventViews(ctx context.Context, mes []domain.MaterialEvent) ([]domain.MaterialEventView, error) {
	materialIDs := make([]string, 0, len(mes))
	eventIDs := make([]string, 0, len(mes))
	for _, me := range mes {
		materialIDs = append(materialIDs, me.MaterialID)
		eventIDs = append(eventIDs, me.EventID)
	}

	materials, err := p.repo.MaterialsByIDs(ctx, dedupe(materialIDs))
	if err != nil {
		return nil, err
	}
	materialByID := make(map[string]domain.Material, len(materials))
	for _, m := range materials {
		materialByID[m.ID] = m
	}

	events, err := p.repo.EventsByIDs(ctx, dedupe(eventIDs))
	if err != nil {
		return nil, err
	}
	eventViews, err := p.eventViews(ctx, events)
	if err != nil {
		return nil, err
	}
	eventByID := make(map[string]domain.EventView, len(eventViews))
	for _, v := range eventViews {
		eventByID[v.ID] = v
	}

	out := make([]domain.MaterialEventView, 0, len(mes))
	for _, me := range mes {
		out = append(out, domain.MaterialEventView{
			MaterialEvent:   me,
			MaterialDetails: materialByID[me.MaterialID],
			EventDetails:    eventByID[me.EventID],
		})
	}
	return out, nil
}
