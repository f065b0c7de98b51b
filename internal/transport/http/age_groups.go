package http

import (
	"net/http"

	"github.com/prodib01/BAYLOR-CDC/internal/domain"
)

type ageGroupRequest struct {
	Group *string `json:"group"`
}

func (req ageGroupRequest) apply(g *domain.AgeGroup, full bool) domain.Problems {
	p := domain.Problems{}
	if full {
		requirePresent(p, "group", req.Group != nil)
	}
	set(&g.Group, req.Group)
	return p
}

func (h *handler) listAgeGroups(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.AgeGroups.List(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, mapSlice(items, newAgeGroupResponse))
}

func (h *handler) getAgeGroup(w http.ResponseWriter, r *http.Request) {
	g, err := h.svc.AgeGroups.Get(r.Context(), pathID(r))
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newAgeGroupResponse(g))
}

func (h *handler) createAgeGroup(w http.ResponseWriter, r *http.Request) {
	var req ageGroupRequest
	if err := decodeBody(r, w, &req); err != nil {
		h.writeDecodeError(w, err)
		return
	}

	var g domain.AgeGroup
	p := req.apply(&g, true)
	if err := checked(p, g.Validate()); err != nil {
		h.writeError(w, err)
		return
	}
	created, err := h.svc.AgeGroups.Create(r.Context(), g)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, newAgeGroupResponse(created))
}

func (h *handler) putAgeGroup(w http.ResponseWriter, r *http.Request) {
	h.updateAgeGroup(w, r, true)
}

func (h *handler) patchAgeGroup(w http.ResponseWriter, r *http.Request) {
	h.updateAgeGroup(w, r, false)
}

func (h *handler) updateAgeGroup(w http.ResponseWriter, r *http.Request, full bool) {
	g, err := h.svc.AgeGroups.Get(r.Context(), pathID(r))
	if err != nil {
		h.writeError(w, err)
		return
	}
	var req ageGroupRequest
	if err := decodeBody(r, w, &req); err != nil {
		h.writeDecodeError(w, err)
		return
	}

	p := req.apply(&g, full)
	if err := checked(p, g.Validate()); err != nil {
		h.writeError(w, err)
		return
	}
	updated, err := h.svc.AgeGroups.Update(r.Context(), g)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newAgeGroupResponse(updated))
}

// deleteAgeGroup also removes the participants and materials of the group.
func (h *handler) deleteAgeGroup(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.AgeGroups.Delete(r.Context(), pathID(r)); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
