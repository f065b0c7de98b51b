package http

import (
	"net/http"

	"github.com/prodib01/BAYLOR-CDC/internal/app"
	"github.com/prodib01/BAYLOR-CDC/internal/domain"
)

type materialEventRequest struct {
	Material *string `json:"material"`
	Event    *string `json:"event"`
	Quantity *int    `json:"quantity"`
}

func (req materialEventRequest) apply(in *app.AllocateInput, full bool) domain.Problems {
	p := domain.Problems{}
	if full {
		requirePresent(p, "material", req.Material != nil)
		requirePresent(p, "event", req.Event != nil)
		requirePresent(p, "quantity", req.Quantity != nil)
	}
	set(&in.MaterialID, req.Material)
	set(&in.EventID, req.Event)
	set(&in.Quantity, req.Quantity)
	return p
}

func allocationCandidate(in app.AllocateInput) domain.MaterialEvent {
	return domain.MaterialEvent{
		MaterialID: in.MaterialID,
		EventID:    in.EventID,
		Quantity:   in.Quantity,
	}
}

func (h *handler) listMaterialEvents(w http.ResponseWriter, r *http.Request) {
	views, err := h.svc.Projector.MaterialEvents(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, mapSlice(views, newMaterialEventResponse))
}

func (h *handler) getMaterialEvent(w http.ResponseWriter, r *http.Request) {
	h.writeMaterialEvent(w, r, http.StatusOK, pathID(r))
}

// createMaterialEvent allocates stock to an event. It answers 409 when the
// material does not have enough stock left.
func (h *handler) createMaterialEvent(w http.ResponseWriter, r *http.Request) {
	var req materialEventRequest
	if err := decodeBody(r, w, &req); err != nil {
		h.writeDecodeError(w, err)
		return
	}

	var in app.AllocateInput
	p := req.apply(&in, true)
	if err := checked(p, allocationCandidate(in).Validate()); err != nil {
		h.writeError(w, err)
		return
	}
	created, err := h.svc.Allocations.Allocate(r.Context(), in)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeMaterialEvent(w, r, http.StatusCreated, created.ID)
}

func (h *handler) putMaterialEvent(w http.ResponseWriter, r *http.Request) {
	h.updateMaterialEvent(w, r, true)
}

func (h *handler) patchMaterialEvent(w http.ResponseWriter, r *http.Request) {
	h.updateMaterialEvent(w, r, false)
}

func (h *handler) updateMaterialEvent(w http.ResponseWriter, r *http.Request, full bool) {
	var req materialEventRequest
	if err := decodeBody(r, w, &req); err != nil {
		h.writeDecodeError(w, err)
		return
	}

	updated, err := h.svc.Allocations.Update(r.Context(), pathID(r), func(in *app.AllocateInput) error {
		p := req.apply(in, full)
		return checked(p, allocationCandidate(*in).Validate())
	})
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeMaterialEvent(w, r, http.StatusOK, updated.ID)
}

// deleteMaterialEvent removes the allocation record. The allocated stock is
// not returned to the material.
func (h *handler) deleteMaterialEvent(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Allocations.Delete(r.Context(), pathID(r)); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *handler) writeMaterialEvent(w http.ResponseWriter, r *http.Request, status int, id string) {
	view, err := h.svc.Projector.MaterialEvent(r.Context(), id)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, status, newMaterialEventResponse(view))
}
