package handler

import (
	"net/http"

	"github.com/osse101/LoadoutBot_Go/internal/domain"
	"github.com/osse101/LoadoutBot_Go/internal/loadout"
	"github.com/osse101/LoadoutBot_Go/internal/logger"
)

// PreferenceHandler serves the stored-preference endpoints
type PreferenceHandler struct {
	service loadout.Service
}

// NewPreferenceHandler creates a new preference handler
func NewPreferenceHandler(service loadout.Service) *PreferenceHandler {
	return &PreferenceHandler{service: service}
}

type SavePreferenceRequest struct {
	OwnerID string `json:"owner_id" validate:"required,max=64"`
	Kind    string `json:"kind" validate:"required,kind"`
}

func (h *PreferenceHandler) HandleSave(w http.ResponseWriter, r *http.Request) {
	var req SavePreferenceRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Save preference"); err != nil {
		return
	}

	code, err := h.service.SavePreference(r.Context(), req.OwnerID, domain.Kind(req.Kind))
	if err != nil {
		logger.FromContext(r.Context()).Error("Failed to save preference", "error", err)
		statusCode, userMsg := mapServiceErrorToUserMessage(err)
		respondError(w, statusCode, userMsg)
		return
	}

	respondJSON(w, http.StatusOK, CodeResponse{
		Message: MsgPreferenceSavedSuccess,
		Kind:    domain.Kind(req.Kind),
		Code:    code,
	})
}

// PreferencesResponse lists one owner's stored preferences per kind
type PreferencesResponse struct {
	OwnerID     string                      `json:"owner_id"`
	Preferences map[domain.Kind]domain.Code `json:"preferences"`
}

func (h *PreferenceHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := GetQueryParam(r, w, "owner_id")
	if !ok {
		return
	}

	prefs := h.service.GetPreferences(r.Context(), ownerID)
	respondJSON(w, http.StatusOK, PreferencesResponse{
		OwnerID:     ownerID,
		Preferences: prefs,
	})
}

type ClearPreferenceRequest struct {
	OwnerID string `json:"owner_id" validate:"required,max=64"`
	Kind    string `json:"kind" validate:"required,kind"`
}

func (h *PreferenceHandler) HandleClear(w http.ResponseWriter, r *http.Request) {
	var req ClearPreferenceRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Clear preference"); err != nil {
		return
	}

	h.service.ClearPreference(r.Context(), req.OwnerID, domain.Kind(req.Kind))
	respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgPreferenceClearedSuccess})
}

type ClearAllPreferencesRequest struct {
	OwnerID string `json:"owner_id" validate:"required,max=64"`
}

func (h *PreferenceHandler) HandleClearAll(w http.ResponseWriter, r *http.Request) {
	var req ClearAllPreferencesRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Clear all preferences"); err != nil {
		return
	}

	h.service.ClearAllPreferences(r.Context(), req.OwnerID)
	respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgPreferenceClearedSuccess})
}

type BulkSetPreferenceRequest struct {
	OwnerIDs []string    `json:"owner_ids" validate:"required,min=1,dive,required,max=64"`
	Kinds    []string    `json:"kinds" validate:"required,min=1,dive,required,kind"`
	Code     domain.Code `json:"code"`
}

func (h *PreferenceHandler) HandleBulkSet(w http.ResponseWriter, r *http.Request) {
	var req BulkSetPreferenceRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Bulk set preference"); err != nil {
		return
	}

	h.service.SetPreferenceBulk(r.Context(), req.OwnerIDs, toKinds(req.Kinds), req.Code)
	respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgBulkPreferenceSuccess})
}

type BulkClearPreferenceRequest struct {
	OwnerIDs []string `json:"owner_ids" validate:"required,min=1,dive,required,max=64"`
	Kinds    []string `json:"kinds" validate:"required,min=1,dive,required,kind"`
}

func (h *PreferenceHandler) HandleBulkClear(w http.ResponseWriter, r *http.Request) {
	var req BulkClearPreferenceRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Bulk clear preference"); err != nil {
		return
	}

	h.service.ClearPreferenceBulk(r.Context(), req.OwnerIDs, toKinds(req.Kinds))
	respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgBulkPreferenceSuccess})
}

func toKinds(names []string) []domain.Kind {
	kinds := make([]domain.Kind, len(names))
	for i, name := range names {
		kinds[i] = domain.Kind(name)
	}
	return kinds
}
