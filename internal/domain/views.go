package domain

// Read-only nested views assembled by the projection layer.

type ParticipantView struct {
	Participant
	AgeGroupDetails *AgeGroup
}

type AttendanceView struct {
	Attendance
	ParticipantDetails ParticipantView
}

type EventView struct {
	Event
	FacilitatorsDetails []Facilitator
	EventAttendances    []AttendanceView
}

type MaterialEventView struct {
	MaterialEvent
	MaterialDetails Material
	EventDetails    EventView
}
