package handler

import (
	"net/http"

	"github.com/osse101/LoadoutBot_Go/internal/domain"
	"github.com/osse101/LoadoutBot_Go/internal/loadout"
	"github.com/osse101/LoadoutBot_Go/internal/logger"
)

// LoadoutHandler serves the attachment management endpoints
type LoadoutHandler struct {
	service loadout.Service
}

// NewLoadoutHandler creates a new loadout handler
func NewLoadoutHandler(service loadout.Service) *LoadoutHandler {
	return &LoadoutHandler{service: service}
}

type AttachRequest struct {
	OwnerID    string `json:"owner_id" validate:"required,max=64"`
	Kind       string `json:"kind" validate:"required,kind"`
	Attachment string `json:"attachment" validate:"required,max=64"`
}

func (h *LoadoutHandler) HandleAttach(w http.ResponseWriter, r *http.Request) {
	var req AttachRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Attach"); err != nil {
		return
	}

	code, err := h.service.Attach(r.Context(), req.OwnerID, domain.Kind(req.Kind), req.Attachment)
	if err != nil {
		logger.FromContext(r.Context()).Error("Failed to attach", "error", err)
		statusCode, userMsg := mapServiceErrorToUserMessage(err)
		respondError(w, statusCode, userMsg)
		return
	}

	respondJSON(w, http.StatusOK, CodeResponse{
		Message: MsgAttachedSuccess,
		Kind:    domain.Kind(req.Kind),
		Code:    code,
	})
}

type DetachRequest struct {
	OwnerID    string `json:"owner_id" validate:"required,max=64"`
	Kind       string `json:"kind" validate:"required,kind"`
	Attachment string `json:"attachment" validate:"required,max=64"`
}

func (h *LoadoutHandler) HandleDetach(w http.ResponseWriter, r *http.Request) {
	var req DetachRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Detach"); err != nil {
		return
	}

	code, err := h.service.DetachNamed(r.Context(), req.OwnerID, domain.Kind(req.Kind), req.Attachment)
	if err != nil {
		logger.FromContext(r.Context()).Error("Failed to detach", "error", err)
		statusCode, userMsg := mapServiceErrorToUserMessage(err)
		respondError(w, statusCode, userMsg)
		return
	}

	respondJSON(w, http.StatusOK, CodeResponse{
		Message: MsgDetachedSuccess,
		Kind:    domain.Kind(req.Kind),
		Code:    code,
	})
}

type DetachSlotRequest struct {
	OwnerID string `json:"owner_id" validate:"required,max=64"`
	Kind    string `json:"kind" validate:"required,kind"`
	Slot    string `json:"slot" validate:"required,slot"`
}

func (h *LoadoutHandler) HandleDetachSlot(w http.ResponseWriter, r *http.Request) {
	var req DetachSlotRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Detach slot"); err != nil {
		return
	}

	code, err := h.service.DetachSlot(r.Context(), req.OwnerID, domain.Kind(req.Kind), domain.Slot(req.Slot))
	if err != nil {
		logger.FromContext(r.Context()).Error("Failed to detach slot", "error", err)
		statusCode, userMsg := mapServiceErrorToUserMessage(err)
		respondError(w, statusCode, userMsg)
		return
	}

	respondJSON(w, http.StatusOK, CodeResponse{
		Message: MsgDetachedSuccess,
		Kind:    domain.Kind(req.Kind),
		Code:    code,
	})
}

type ClearLoadoutRequest struct {
	OwnerID string `json:"owner_id" validate:"required,max=64"`
	Kind    string `json:"kind" validate:"required,kind"`
}

func (h *LoadoutHandler) HandleClear(w http.ResponseWriter, r *http.Request) {
	var req ClearLoadoutRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Clear loadout"); err != nil {
		return
	}

	code, err := h.service.ClearAttachments(r.Context(), req.OwnerID, domain.Kind(req.Kind))
	if err != nil {
		logger.FromContext(r.Context()).Error("Failed to clear loadout", "error", err)
		statusCode, userMsg := mapServiceErrorToUserMessage(err)
		respondError(w, statusCode, userMsg)
		return
	}

	respondJSON(w, http.StatusOK, CodeResponse{
		Message: MsgLoadoutClearedSuccess,
		Kind:    domain.Kind(req.Kind),
		Code:    code,
	})
}

// LoadoutResponse lists one owner's weapons with their attachments
type LoadoutResponse struct {
	OwnerID  string                  `json:"owner_id"`
	Loadouts []loadout.WeaponLoadout `json:"loadouts"`
}

func (h *LoadoutHandler) HandleGetLoadout(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := GetQueryParam(r, w, "owner_id")
	if !ok {
		return
	}

	loadouts, err := h.service.Loadout(r.Context(), ownerID)
	if err != nil {
		logger.FromContext(r.Context()).Error("Failed to get loadout", "error", err)
		statusCode, userMsg := mapServiceErrorToUserMessage(err)
		respondError(w, statusCode, userMsg)
		return
	}

	respondJSON(w, http.StatusOK, LoadoutResponse{
		OwnerID:  ownerID,
		Loadouts: loadouts,
	})
}
