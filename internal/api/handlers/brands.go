package handlers

import (
	"net/http"

	"scamshield/internal/domain/services"
)

// BrandsHandler exposes the brand registry
type BrandsHandler struct {
	registry *services.Registry
}

// NewBrandsHandler creates a new brands handler
func NewBrandsHandler(reg *services.Registry) *BrandsHandler {
	return &BrandsHandler{registry: reg}
}

// List handles GET /api/v1/brands
func (h *BrandsHandler) List(w http.ResponseWriter, r *http.Request) {
	brands := h.registry.Brands()
	respondJSON(w, http.StatusOK, map[string]any{
		"brands": brands,
		"count":  len(brands),
	})
}
