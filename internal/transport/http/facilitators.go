package http

import (
	"net/http"

	"github.com/prodib01/BAYLOR-CDC/internal/domain"
)

type facilitatorRequest struct {
	Name        *string        `json:"name"`
	DOB         *string        `json:"dob"`
	Gender      *string        `json:"gender"`
	Facilitates *string        `json:"facilitates"`
	Contact     nullableString `json:"contact"`
}

// apply copies the provided fields onto f. When full is set every required
// field must be present.
func (req facilitatorRequest) apply(f *domain.Facilitator, full bool) domain.Problems {
	p := domain.Problems{}
	if full {
		requirePresent(p, "name", req.Name != nil)
		requirePresent(p, "dob", req.DOB != nil)
		requirePresent(p, "gender", req.Gender != nil)
		requirePresent(p, "facilitates", req.Facilitates != nil)
	}
	set(&f.Name, req.Name)
	parseDate(p, "dob", req.DOB, &f.DOB)
	set(&f.Gender, req.Gender)
	set(&f.Facilitates, req.Facilitates)
	if req.Contact.Set {
		f.Contact = req.Contact.Value
	}
	return p
}

func (h *handler) listFacilitators(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.Facilitators.List(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, mapSlice(items, newFacilitatorResponse))
}

func (h *handler) getFacilitator(w http.ResponseWriter, r *http.Request) {
	f, err := h.svc.Facilitators.Get(r.Context(), pathID(r))
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newFacilitatorResponse(f))
}

func (h *handler) createFacilitator(w http.ResponseWriter, r *http.Request) {
	var req facilitatorRequest
	if err := decodeBody(r, w, &req); err != nil {
		h.writeDecodeError(w, err)
		return
	}

	var f domain.Facilitator
	p := req.apply(&f, true)
	if err := checked(p, f.Validate()); err != nil {
		h.writeError(w, err)
		return
	}
	created, err := h.svc.Facilitators.Create(r.Context(), f)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, newFacilitatorResponse(created))
}

func (h *handler) putFacilitator(w http.ResponseWriter, r *http.Request) {
	h.updateFacilitator(w, r, true)
}

func (h *handler) patchFacilitator(w http.ResponseWriter, r *http.Request) {
	h.updateFacilitator(w, r, false)
}

func (h *handler) updateFacilitator(w http.ResponseWriter, r *http.Request, full bool) {
	f, err := h.svc.Facilitators.Get(r.Context(), pathID(r))
	if err != nil {
		h.writeError(w, err)
		return
	}
	var req facilitatorRequest
	if err := decodeBody(r, w, &req); err != nil {
		h.writeDecodeError(w, err)
		return
	}

	p := req.apply(&f, full)
	if err := checked(p, f.Validate()); err != nil {
		h.writeError(w, err)
		return
	}
	updated, err := h.svc.Facilitators.Update(r.Context(), f)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newFacilitatorResponse(updated))
}

func (h *handler) deleteFacilitator(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Facilitators.Delete(r.Context(), pathID(r)); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
