package api

import (
	"net/http"

	"parkingportal/internal/entities"
	"parkingportal/internal/service"
	"parkingportal/internal/session"
)

type CatalogHandler struct {
	Service *service.CatalogService
}

func NewCatalogHandler(svc *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{Service: svc}
}

func (h *CatalogHandler) Locations(w http.ResponseWriter, r *http.Request) {
	locations, err := h.Service.Locations(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, locations)
}

func (h *CatalogHandler) Options(w http.ResponseWriter, r *http.Request) {
	opts, err := h.Service.Options(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, opts)
}

func (h *CatalogHandler) CreateLocation(w http.ResponseWriter, r *http.Request) {
	var req entities.LocationInput
	if !decode(w, r, &req) {
		return
	}
	if err := h.Service.CreateLocation(r.Context(), session.From(r.Context()), req); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, message("Location created"))
}

func (h *CatalogHandler) UpdateLocation(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req entities.LocationInput
	if !decode(w, r, &req) {
		return
	}
	if err := h.Service.UpdateLocation(r.Context(), session.From(r.Context()), id, req); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, message("Location updated"))
}

func (h *CatalogHandler) DeleteLocation(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.Service.DeleteLocation(r.Context(), session.From(r.Context()), id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, message("Location deleted"))
}
