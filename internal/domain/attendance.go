package domain

import "time"

// Attendance is one participant's engagement with one event.
type Attendance struct {
	ID              string
	ParticipantID   string
	EventID         string
	Skills          string
	LessonsAttended int
	FinishedProgram bool
	SelfSufficient  bool
	CreatedAt       time.Time
}

func (a Attendance) Validate() error {
	p := Problems{}
	requireRef(p, "participant", a.ParticipantID)
	requireRef(p, "event", a.EventID)
	requireText(p, "skills", a.Skills, 0)
	if a.LessonsAttended < 0 {
		p.Add("lessons_attended", "must be greater than or equal to 0")
	}
	return p.Err()
}
