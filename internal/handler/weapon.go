package handler

import (
	"net/http"

	"github.com/osse101/LoadoutBot_Go/internal/domain"
	"github.com/osse101/LoadoutBot_Go/internal/loadout"
	"github.com/osse101/LoadoutBot_Go/internal/logger"
)

// WeaponHandler serves the weapon lifecycle endpoints
type WeaponHandler struct {
	service loadout.Service
}

// NewWeaponHandler creates a new weapon handler
func NewWeaponHandler(service loadout.Service) *WeaponHandler {
	return &WeaponHandler{service: service}
}

type IssueWeaponRequest struct {
	OwnerID string `json:"owner_id" validate:"required,max=64"`
	Kind    string `json:"kind" validate:"required,kind"`
	Ammo    int    `json:"ammo" validate:"gte=0"`
}

// IssueWeaponResponse carries the snapshot of the newly issued weapon
type IssueWeaponResponse struct {
	Message  string          `json:"message"`
	Snapshot domain.Snapshot `json:"snapshot"`
}

func (h *WeaponHandler) HandleIssue(w http.ResponseWriter, r *http.Request) {
	var req IssueWeaponRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Issue weapon"); err != nil {
		return
	}

	snap, err := h.service.Issue(r.Context(), req.OwnerID, domain.Kind(req.Kind), req.Ammo)
	if err != nil {
		logger.FromContext(r.Context()).Error("Failed to issue weapon", "error", err)
		statusCode, userMsg := mapServiceErrorToUserMessage(err)
		respondError(w, statusCode, userMsg)
		return
	}

	respondJSON(w, http.StatusCreated, IssueWeaponResponse{
		Message:  MsgWeaponIssuedSuccess,
		Snapshot: snap,
	})
}

type DropWeaponRequest struct {
	OwnerID string `json:"owner_id" validate:"required,max=64"`
	Kind    string `json:"kind" validate:"required,kind"`
}

// DropWeaponResponse carries the snapshot of the dropped weapon so the host
// can spawn a pickup from it.
type DropWeaponResponse struct {
	Message  string          `json:"message"`
	Snapshot domain.Snapshot `json:"snapshot"`
}

func (h *WeaponHandler) HandleDrop(w http.ResponseWriter, r *http.Request) {
	var req DropWeaponRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Drop weapon"); err != nil {
		return
	}

	snap, err := h.service.Drop(r.Context(), req.OwnerID, domain.Kind(req.Kind))
	if err != nil {
		logger.FromContext(r.Context()).Error("Failed to drop weapon", "error", err)
		statusCode, userMsg := mapServiceErrorToUserMessage(err)
		respondError(w, statusCode, userMsg)
		return
	}

	respondJSON(w, http.StatusOK, DropWeaponResponse{
		Message:  MsgWeaponDroppedSuccess,
		Snapshot: snap,
	})
}

type HandoverRequest struct {
	FromOwnerID string `json:"from_owner_id" validate:"required,max=64"`
	ToOwnerID   string `json:"to_owner_id" validate:"required,max=64"`
	Kind        string `json:"kind" validate:"required,kind"`
}

func (h *WeaponHandler) HandleHandover(w http.ResponseWriter, r *http.Request) {
	var req HandoverRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Handover weapon"); err != nil {
		return
	}

	if err := h.service.Handover(r.Context(), req.FromOwnerID, req.ToOwnerID, domain.Kind(req.Kind)); err != nil {
		logger.FromContext(r.Context()).Error("Failed to hand over weapon", "error", err)
		statusCode, userMsg := mapServiceErrorToUserMessage(err)
		respondError(w, statusCode, userMsg)
		return
	}

	respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgWeaponHandoverSuccess})
}

type EndSessionRequest struct {
	OwnerID string `json:"owner_id" validate:"required,max=64"`
}

func (h *WeaponHandler) HandleEndSession(w http.ResponseWriter, r *http.Request) {
	var req EndSessionRequest
	if err := DecodeAndValidateRequest(r, w, &req, "End session"); err != nil {
		return
	}

	h.service.EndSession(r.Context(), req.OwnerID)
	respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgSessionEndedSuccess})
}
