package handler

import (
	"net/http"

	"github.com/osse101/LoadoutBot_Go/internal/loadout"
)

// AdminCacheHandler exposes loadout cache statistics for operations
type AdminCacheHandler struct {
	service loadout.Service
}

// NewAdminCacheHandler creates a new admin cache handler
func NewAdminCacheHandler(service loadout.Service) *AdminCacheHandler {
	return &AdminCacheHandler{service: service}
}

// HandleGetCacheStats returns current loadout summary cache statistics
func (h *AdminCacheHandler) HandleGetCacheStats(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.service.CacheStats())
}
