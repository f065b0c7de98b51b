package http

import (
	"net/http"

	"github.com/prodib01/BAYLOR-CDC/internal/domain"
)

type attendanceRequest struct {
	Participant     *string `json:"participant"`
	Event           *string `json:"event"`
	Skills          *string `json:"skills"`
	LessonsAttended *int    `json:"lessons_attended"`
	FinishedProgram *bool   `json:"finished_program"`
	SelfSufficient  *bool   `json:"self_sufficient"`
}

func (req attendanceRequest) apply(a *domain.Attendance, full bool) domain.Problems {
	p := domain.Problems{}
	if full {
		requirePresent(p, "participant", req.Participant != nil)
		requirePresent(p, "event", req.Event != nil)
		requirePresent(p, "skills", req.Skills != nil)
	}
	set(&a.ParticipantID, req.Participant)
	set(&a.EventID, req.Event)
	set(&a.Skills, req.Skills)
	set(&a.LessonsAttended, req.LessonsAttended)
	set(&a.FinishedProgram, req.FinishedProgram)
	set(&a.SelfSufficient, req.SelfSufficient)
	return p
}

func (h *handler) listAttendances(w http.ResponseWriter, r *http.Request) {
	views, err := h.svc.Projector.Attendances(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, mapSlice(views, newAttendanceResponse))
}

func (h *handler) getAttendance(w http.ResponseWriter, r *http.Request) {
	h.writeAttendance(w, r, http.StatusOK, pathID(r))
}

func (h *handler) createAttendance(w http.ResponseWriter, r *http.Request) {
	var req attendanceRequest
	if err := decodeBody(r, w, &req); err != nil {
		h.writeDecodeError(w, err)
		return
	}

	var a domain.Attendance
	p := req.apply(&a, true)
	if err := checked(p, a.Validate()); err != nil {
		h.writeError(w, err)
		return
	}
	created, err := h.svc.Attendances.Create(r.Context(), a)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeAttendance(w, r, http.StatusCreated, created.ID)
}

func (h *handler) putAttendance(w http.ResponseWriter, r *http.Request) {
	h.updateAttendance(w, r, true)
}

func (h *handler) patchAttendance(w http.ResponseWriter, r *http.Request) {
	h.updateAttendance(w, r, false)
}

func (h *handler) updateAttendance(w http.ResponseWriter, r *http.Request, full bool) {
	a, err := h.svc.Attendances.Get(r.Context(), pathID(r))
	if err != nil {
		h.writeError(w, err)
		return
	}
	var req attendanceRequest
	if err := decodeBody(r, w, &req); err != nil {
		h.writeDecodeError(w, err)
		return
	}

	p := req.apply(&a, full)
	if err := checked(p, a.Validate()); err != nil {
		h.writeError(w, err)
		return
	}
	updated, err := h.svc.Attendances.Update(r.Context(), a)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeAttendance(w, r, http.StatusOK, updated.ID)
}

func (h *handler) deleteAttendance(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Attendances.Delete(r.Context(), pathID(r)); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *handler) writeAttendance(w http.ResponseWriter, r *http.Request, status int, id string) {
	view, err := h.svc.Projector.Attendance(r.Context(), id)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, status, newAttendanceResponse(view))
}
