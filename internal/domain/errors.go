package domain

import "errors"

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// Catalog errors
	ErrMsgInvalidCatalog     = "invalid catalog configuration"
	ErrMsgKindNotFound       = "weapon kind not found"
	ErrMsgAttachmentNotFound = "attachment not found"

	// Engine errors
	ErrMsgKindMismatch = "attachment kind does not match weapon kind"

	// Weapon errors
	ErrMsgWeaponNotFound  = "weapon not found"
	ErrMsgUnsupportedKind = "operation not supported for weapon kind"

	// Owner errors
	ErrMsgOwnerNotFound = "owner not found"

	// Input errors
	ErrMsgInvalidInput = "invalid input"
)

// Common domain errors
// These errors should be used consistently across all layers of the application.
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	// ErrInvalidCatalog is a configuration error: bad catalog registration,
	// fatal at startup.
	ErrInvalidCatalog = errors.New(ErrMsgInvalidCatalog)

	// Hard-lookup failures; caller decides the fallback.
	ErrKindNotFound       = errors.New(ErrMsgKindNotFound)
	ErrAttachmentNotFound = errors.New(ErrMsgAttachmentNotFound)

	// ErrKindMismatch is a programmer error: a definition from one kind was
	// used against an instance of another. Not meant to be caught-and-continued.
	ErrKindMismatch = errors.New(ErrMsgKindMismatch)

	// Weapon errors
	ErrWeaponNotFound  = errors.New(ErrMsgWeaponNotFound)
	ErrUnsupportedKind = errors.New(ErrMsgUnsupportedKind)

	// Owner errors
	ErrOwnerNotFound = errors.New(ErrMsgOwnerNotFound)

	// Validation errors
	ErrInvalidInput = errors.New(ErrMsgInvalidInput)
)
