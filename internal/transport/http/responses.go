package http

import "github.com/prodib01/BAYLOR-CDC/internal/domain"

type facilitatorResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	DOB         string  `json:"dob"`
	Gender      string  `json:"gender"`
	Facilitates string  `json:"facilitates"`
	Contact     *string `json:"contact"`
}

type ageGroupResponse struct {
	ID    string `json:"id"`
	Group string `json:"group"`
}

type participantResponse struct {
	ID              string            `json:"id"`
	Name            string            `json:"name"`
	AgeGroup        string            `json:"age_group"`
	Village         string            `json:"village"`
	HasHIV          bool              `json:"has_hiv"`
	IsInSchool      bool              `json:"is_in_school"`
	DOB             string            `json:"dob"`
	EnrollmentDate  string            `json:"enrollment_date"`
	AgeGroupDetails *ageGroupResponse `json:"age_group_details"`
}

type materialResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Stock       int    `json:"stock"`
	TargetGroup string `json:"target_group"`
}

type attendanceResponse struct {
	ID                 string              `json:"id"`
	Participant        string              `json:"participant"`
	Event              string              `json:"event"`
	ParticipantDetails participantResponse `json:"participant_details"`
	Skills             string              `json:"skills"`
	LessonsAttended    int                 `json:"lessons_attended"`
	FinishedProgram    bool                `json:"finished_program"`
	SelfSufficient     bool                `json:"self_sufficient"`
}

type eventResponse struct {
	ID                  string                `json:"id"`
	Name                string                `json:"name"`
	EventType           string                `json:"event_type"`
	StartDate           string                `json:"start_date"`
	EndDate             string                `json:"end_date"`
	Location            string                `json:"location"`
	Facilitators        []string              `json:"facilitators"`
	Lessons             string                `json:"lessons"`
	LearningOutcomes    string                `json:"learning_outcomes"`
	FacilitatorsDetails []facilitatorResponse `json:"facilitators_details"`
	EventAttendances    []attendanceResponse  `json:"event_attendances"`
}

type materialEventResponse struct {
	ID              string           `json:"id"`
	Material        string           `json:"material"`
	Event           string           `json:"event"`
	Quantity        int              `json:"quantity"`
	MaterialDetails materialResponse `json:"material_details"`
	EventDetails    eventResponse    `json:"event_details"`
}

func newFacilitatorResponse(f domain.Facilitator) facilitatorResponse {
	return facilitatorResponse{
		ID:          f.ID,
		Name:        f.Name,
		DOB:         formatDate(f.DOB),
		Gender:      f.Gender,
		Facilitates: f.Facilitates,
		Contact:     f.Contact,
	}
}

func newAgeGroupResponse(g domain.AgeGroup) ageGroupResponse {
	return ageGroupResponse{ID: g.ID, Group: g.Group}
}

func newParticipantResponse(v domain.ParticipantView) participantResponse {
	resp := participantResponse{
		ID:             v.ID,
		Name:           v.Name,
		AgeGroup:       v.AgeGroupID,
		Village:        v.Village,
		HasHIV:         v.HasHIV,
		IsInSchool:     v.IsInSchool,
		DOB:            formatDate(v.DOB),
		EnrollmentDate: formatDate(v.EnrollmentDate),
	}
	if v.AgeGroupDetails != nil {
		details := newAgeGroupResponse(*v.AgeGroupDetails)
		resp.AgeGroupDetails = &details
	}
	return resp
}

func newMaterialResponse(m domain.Material) materialResponse {
	return materialResponse{
		ID:          m.ID,
		Name:        m.Name,
		Stock:       m.Stock,
		TargetGroup: m.TargetGroupID,
	}
}

func newAttendanceResponse(v domain.AttendanceView) attendanceResponse {
	return attendanceResponse{
		ID:                 v.ID,
		Participant:        v.ParticipantID,
		Event:              v.EventID,
		ParticipantDetails: newParticipantResponse(v.ParticipantDetails),
		Skills:             v.Skills,
		LessonsAttended:    v.LessonsAttended,
		FinishedProgram:    v.FinishedProgram,
		SelfSufficient:     v.SelfSufficient,
	}
}

func newEventResponse(v domain.EventView) eventResponse {
	resp := eventResponse{
		ID:                  v.ID,
		Name:                v.Name,
		EventType:           v.EventType,
		StartDate:           formatDate(v.StartDate),
		EndDate:             formatDate(v.EndDate),
		Location:            v.Location,
		Facilitators:        make([]string, 0, len(v.FacilitatorIDs)),
		Lessons:             v.Lessons,
		LearningOutcomes:    v.LearningOutcomes,
		FacilitatorsDetails: mapSlice(v.FacilitatorsDetails, newFacilitatorResponse),
		EventAttendances:    mapSlice(v.EventAttendances, newAttendanceResponse),
	}
	resp.Facilitators = append(resp.Facilitators, v.FacilitatorIDs...)
	return resp
}

func newMaterialEventResponse(v domain.MaterialEventView) materialEventResponse {
	return materialEventResponse{
		ID:              v.ID,
		Material:        v.MaterialID,
		Event:           v.EventID,
		Quantity:        v.Quantity,
		MaterialDetails: newMaterialResponse(v.MaterialDetails),
		EventDetails:    newEventResponse(v.EventDetails),
	}
}

// mapSlice converts every item and never returns nil, so empty lists
// encode as [].
func mapSlice[T, R any](items []T, fn func(T) R) []R {
	out := make([]R, 0, len(items))
	for _, item := range items {
		out = append(out, fn(item))
	}
	return out
}
