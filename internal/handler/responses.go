package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/osse101/LoadoutBot_Go/internal/domain"
)

// Standard response types for consistent API responses

// SuccessResponse represents a simple successful operation message
type SuccessResponse struct {
	Message string `json:"message"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// CodeResponse carries the attachment code after a loadout mutation
type CodeResponse struct {
	Message string      `json:"message,omitempty"`
	Kind    domain.Kind `json:"kind"`
	Code    domain.Code `json:"code"`
}

// respondJSON sends a JSON response with the given status code and payload
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	// Encode through a pooled buffer; headers are already sent, so encode
	// errors can only be logged.
	buf := getBuffer()
	defer putBuffer(buf)

	if err := json.NewEncoder(buf).Encode(payload); err != nil {
		slog.Error("Failed to encode JSON response", "error", err)
		return
	}

	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("Failed to write response buffer", "error", err)
	}
}

// respondError sends a JSON error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}

// User-facing error messages for service errors
const (
	ErrMsgGenericServerError  = "Something went wrong"
	ErrMsgUnknownError        = "Unknown error"
	ErrMsgKindNotFoundError   = "Unknown weapon kind"
	ErrMsgAttachmentNotFound  = "Unknown attachment"
	ErrMsgKindMismatchError   = "Attachment does not fit this weapon kind"
	ErrMsgWeaponNotFoundError = "No such weapon is held"
	ErrMsgOwnerNotFoundError  = "Owner has no weapons"
	ErrMsgUnsupportedKindErr  = "Operation not supported for this weapon kind"
	ErrMsgInvalidInputError   = "Invalid request. Please check your inputs."
)

// mapServiceErrorToUserMessage maps domain errors to user-friendly HTTP responses
func mapServiceErrorToUserMessage(err error) (int, string) {
	if err == nil {
		return http.StatusInternalServerError, ErrMsgUnknownError
	}

	switch {
	case errors.Is(err, domain.ErrKindNotFound):
		return http.StatusBadRequest, ErrMsgKindNotFoundError
	case errors.Is(err, domain.ErrAttachmentNotFound):
		return http.StatusBadRequest, ErrMsgAttachmentNotFound
	case errors.Is(err, domain.ErrKindMismatch):
		return http.StatusBadRequest, ErrMsgKindMismatchError
	case errors.Is(err, domain.ErrWeaponNotFound):
		return http.StatusNotFound, ErrMsgWeaponNotFoundError
	case errors.Is(err, domain.ErrOwnerNotFound):
		return http.StatusNotFound, ErrMsgOwnerNotFoundError
	case errors.Is(err, domain.ErrUnsupportedKind):
		return http.StatusBadRequest, ErrMsgUnsupportedKindErr
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, ErrMsgInvalidInputError
	}

	return http.StatusInternalServerError, ErrMsgGenericServerError
}
