package handler

import (
	"net/http"

	"github.com/osse101/LoadoutBot_Go/internal/catalog"
	"github.com/osse101/LoadoutBot_Go/internal/domain"
	"github.com/osse101/LoadoutBot_Go/internal/logger"
)

// CatalogHandler serves read-only catalog lookups
type CatalogHandler struct {
	cat *catalog.Catalog
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(cat *catalog.Catalog) *CatalogHandler {
	return &CatalogHandler{cat: cat}
}

// KindCatalogResponse lists the attachment definitions registered for a kind
type KindCatalogResponse struct {
	Kind        domain.Kind         `json:"kind"`
	Props       domain.KindProps    `json:"props"`
	BaseCode    domain.Code         `json:"base_code"`
	Attachments []domain.Definition `json:"attachments"`
}

// HandleGetKinds returns all registered weapon kinds
func (h *CatalogHandler) HandleGetKinds(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string][]domain.Kind{"kinds": h.cat.Kinds()})
}

// HandleGetKind returns the registered attachment set for one kind
func (h *CatalogHandler) HandleGetKind(w http.ResponseWriter, r *http.Request) {
	kindName, ok := GetQueryParam(r, w, "kind")
	if !ok {
		return
	}

	kind := domain.Kind(kindName)
	props, err := h.cat.Props(kind)
	if err != nil {
		logger.FromContext(r.Context()).Warn("Catalog lookup for unknown kind", "kind", kindName)
		statusCode, userMsg := mapServiceErrorToUserMessage(err)
		respondError(w, statusCode, userMsg)
		return
	}

	respondJSON(w, http.StatusOK, KindCatalogResponse{
		Kind:        kind,
		Props:       props,
		BaseCode:    h.cat.BaseCode(kind),
		Attachments: h.cat.AllDefinitions(kind),
	})
}
