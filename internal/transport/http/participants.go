package http

import (
	"net/http"

	"github.com/prodib01/BAYLOR-CDC/internal/domain"
)

type participantRequest struct {
	Name           *string `json:"name"`
	AgeGroup       *string `json:"age_group"`
	Village        *string `json:"village"`
	HasHIV         *bool   `json:"has_hiv"`
	IsInSchool     *bool   `json:"is_in_school"`
	DOB            *string `json:"dob"`
	EnrollmentDate *string `json:"enrollment_date"`
}

// apply copies the provided fields onto pt. has_hiv has no default and must
// be sent on create and replace.
func (req participantRequest) apply(pt *domain.Participant, full bool) domain.Problems {
	p := domain.Problems{}
	if full {
		requirePresent(p, "name", req.Name != nil)
		requirePresent(p, "age_group", req.AgeGroup != nil)
		requirePresent(p, "village", req.Village != nil)
		requirePresent(p, "has_hiv", req.HasHIV != nil)
		requirePresent(p, "dob", req.DOB != nil)
		requirePresent(p, "enrollment_date", req.EnrollmentDate != nil)
	}
	set(&pt.Name, req.Name)
	set(&pt.AgeGroupID, req.AgeGroup)
	set(&pt.Village, req.Village)
	set(&pt.HasHIV, req.HasHIV)
	set(&pt.IsInSchool, req.IsInSchool)
	parseDate(p, "dob", req.DOB, &pt.DOB)
	parseDate(p, "enrollment_date", req.EnrollmentDate, &pt.EnrollmentDate)
	return p
}

func (h *handler) listParticipants(w http.ResponseWriter, r *http.Request) {
	views, err := h.svc.Projector.Participants(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, mapSlice(views, newParticipantResponse))
}

func (h *handler) getParticipant(w http.ResponseWriter, r *http.Request) {
	h.writeParticipant(w, r, http.StatusOK, pathID(r))
}

func (h *handler) createParticipant(w http.ResponseWriter, r *http.Request) {
	var req participantRequest
	if err := decodeBody(r, w, &req); err != nil {
		h.writeDecodeError(w, err)
		return
	}

	var pt domain.Participant
	p := req.apply(&pt, true)
	if err := checked(p, pt.Validate()); err != nil {
		h.writeError(w, err)
		return
	}
	created, err := h.svc.Participants.Create(r.Context(), pt)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeParticipant(w, r, http.StatusCreated, created.ID)
}

func (h *handler) putParticipant(w http.ResponseWriter, r *http.Request) {
	h.updateParticipant(w, r, true)
}

func (h *handler) patchParticipant(w http.ResponseWriter, r *http.Request) {
	h.updateParticipant(w, r, false)
}

func (h *handler) updateParticipant(w http.ResponseWriter, r *http.Request, full bool) {
	pt, err := h.svc.Participants.Get(r.Context(), pathID(r))
	if err != nil {
		h.writeError(w, err)
		return
	}
	var req participantRequest
	if err := decodeBody(r, w, &req); err != nil {
		h.writeDecodeError(w, err)
		return
	}

	p := req.apply(&pt, full)
	if err := checked(p, pt.Validate()); err != nil {
		h.writeError(w, err)
		return
	}
	updated, err := h.svc.Participants.Update(r.Context(), pt)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeParticipant(w, r, http.StatusOK, updated.ID)
}

func (h *handler) deleteParticipant(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Participants.Delete(r.Context(), pathID(r)); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *handler) writeParticipant(w http.ResponseWriter, r *http.Request, status int, id string) {
	view, err := h.svc.Projector.Participant(r.Context(), id)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, status, newParticipantResponse(view))
}
