package http

import (
	"net/http"

	"github.com/prodib01/BAYLOR-CDC/internal/domain"
)

type eventRequest struct {
	Name             *string   `json:"name"`
	EventType        *string   `json:"event_type"`
	StartDate        *string   `json:"start_date"`
	EndDate          *string   `json:"end_date"`
	Location         *string   `json:"location"`
	Facilitators     *[]string `json:"facilitators"`
	Lessons          *string   `json:"lessons"`
	LearningOutcomes *string   `json:"learning_outcomes"`
}

// apply copies the provided fields onto e. The facilitator list is optional
// even when full is set; when given it replaces the whole set.
func (req eventRequest) apply(e *domain.Event, full bool) domain.Problems {
	p := domain.Problems{}
	if full {
		requirePresent(p, "name", req.Name != nil)
		requirePresent(p, "event_type", req.EventType != nil)
		requirePresent(p, "start_date", req.StartDate != nil)
		requirePresent(p, "end_date", req.EndDate != nil)
		requirePresent(p, "location", req.Location != nil)
		requirePresent(p, "lessons", req.Lessons != nil)
		requirePresent(p, "learning_outcomes", req.LearningOutcomes != nil)
	}
	set(&e.Name, req.Name)
	set(&e.EventType, req.EventType)
	parseDate(p, "start_date", req.StartDate, &e.StartDate)
	parseDate(p, "end_date", req.EndDate, &e.EndDate)
	set(&e.Location, req.Location)
	set(&e.FacilitatorIDs, req.Facilitators)
	set(&e.Lessons, req.Lessons)
	set(&e.LearningOutcomes, req.LearningOutcomes)
	return p
}

func (h *handler) listEvents(w http.ResponseWriter, r *http.Request) {
	views, err := h.svc.Projector.Events(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, mapSlice(views, newEventResponse))
}

func (h *handler) getEvent(w http.ResponseWriter, r *http.Request) {
	h.writeEvent(w, r, http.StatusOK, pathID(r))
}

func (h *handler) createEvent(w http.ResponseWriter, r *http.Request) {
	var req eventRequest
	if err := decodeBody(r, w, &req); err != nil {
		h.writeDecodeError(w, err)
		return
	}

	var e domain.Event
	p := req.apply(&e, true)
	if err := checked(p, e.Validate()); err != nil {
		h.writeError(w, err)
		return
	}
	created, err := h.svc.Events.Create(r.Context(), e)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeEvent(w, r, http.StatusCreated, created.ID)
}

func (h *handler) putEvent(w http.ResponseWriter, r *http.Request) {
	h.updateEvent(w, r, true)
}

func (h *handler) patchEvent(w http.ResponseWriter, r *http.Request) {
	h.updateEvent(w, r, false)
}

func (h *handler) updateEvent(w http.ResponseWriter, r *http.Request, full bool) {
	var req eventRequest
	if err := decodeBody(r, w, &req); err != nil {
		h.writeDecodeError(w, err)
		return
	}

	updated, err := h.svc.Events.Update(r.Context(), pathID(r), func(e *domain.Event) error {
		p := req.apply(e, full)
		return checked(p, e.Validate())
	})
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeEvent(w, r, http.StatusOK, updated.ID)
}

func (h *handler) deleteEvent(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Events.Delete(r.Context(), pathID(r)); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *handler) writeEvent(w http.ResponseWriter, r *http.Request, status int, id string) {
	view, err := h.svc.Projector.Event(r.Context(), id)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, status, newEventResponse(view))
}
