package domain

import "time"

// Event is a programme session run by one or more facilitators.
type Event struct {
	ID               string
	Name             string
	EventType        string
	StartDate        time.Time
	EndDate          time.Time
	Location         string
	FacilitatorIDs   []string
	Lessons          string
	LearningOutcomes string
	CreatedAt        time.Time
}

// Validate checks required fields and lengths. Facilitator existence is
// checked by the store.
func (e Event) Validate() error {
	p := Problems{}
	requireText(p, "name", e.Name, 100)
	requireText(p, "event_type", e.EventType, 100)
	requireDate(p, "start_date", e.StartDate)
	requireDate(p, "end_date", e.EndDate)
	if !e.StartDate.IsZero() && !e.EndDate.IsZero() && e.EndDate.Before(e.StartDate) {
		p.Add("end_date", "must not be before start_date")
	}
	requireText(p, "location", e.Location, 255)
	requireText(p, "lessons", e.Lessons, 0)
	requireText(p, "learning_outcomes", e.LearningOutcomes, 0)
	for _, id := range e.FacilitatorIDs {
		if id == "" {
			p.Add("facilitators", "must not contain empty ids")
		}
	}
	return p.Err()
}
