package http

import (
	"net/http"

	"github.com/prodib01/BAYLOR-CDC/internal/domain"
)

type materialRequest struct {
	Name        *string `json:"name"`
	Stock       *int    `json:"stock"`
	TargetGroup *string `json:"target_group"`
}

func (req materialRequest) apply(m *domain.Material, full bool) domain.Problems {
	p := domain.Problems{}
	if full {
		requirePresent(p, "name", req.Name != nil)
		requirePresent(p, "stock", req.Stock != nil)
		requirePresent(p, "target_group", req.TargetGroup != nil)
	}
	set(&m.Name, req.Name)
	set(&m.Stock, req.Stock)
	set(&m.TargetGroupID, req.TargetGroup)
	return p
}

func (h *handler) listMaterials(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.Materials.List(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, mapSlice(items, newMaterialResponse))
}

func (h *handler) getMaterial(w http.ResponseWriter, r *http.Request) {
	m, err := h.svc.Materials.Get(r.Context(), pathID(r))
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newMaterialResponse(m))
}

func (h *handler) createMaterial(w http.ResponseWriter, r *http.Request) {
	var req materialRequest
	if err := decodeBody(r, w, &req); err != nil {
		h.writeDecodeError(w, err)
		return
	}

	var m domain.Material
	p := req.apply(&m, true)
	if err := checked(p, m.Validate()); err != nil {
		h.writeError(w, err)
		return
	}
	created, err := h.svc.Materials.Create(r.Context(), m)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, newMaterialResponse(created))
}

func (h *handler) putMaterial(w http.ResponseWriter, r *http.Request) {
	h.updateMaterial(w, r, true)
}

func (h *handler) patchMaterial(w http.ResponseWriter, r *http.Request) {
	h.updateMaterial(w, r, false)
}

// updateMaterial sets stock directly; it is the restocking path and does
// not touch existing allocations. The body is decoded before the row is
// locked, and fields it leaves out keep their locked values.
func (h *handler) updateMaterial(w http.ResponseWriter, r *http.Request, full bool) {
	var req materialRequest
	if err := decodeBody(r, w, &req); err != nil {
		h.writeDecodeError(w, err)
		return
	}

	updated, err := h.svc.Materials.Update(r.Context(), pathID(r), func(m *domain.Material) error {
		p := req.apply(m, full)
		return checked(p, m.Validate())
	})
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newMaterialResponse(updated))
}

func (h *handler) deleteMaterial(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Materials.Delete(r.Context(), pathID(r)); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
