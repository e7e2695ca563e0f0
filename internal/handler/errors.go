package handler

// Generic HTTP error messages for client responses.
// These messages intentionally do not expose internal error details for security reasons.
// Both handlers and tests should reference these constants to maintain consistency.
const (
	// HTTP status messages
	ErrMsgMethodNotAllowed      = "Method not allowed"
	ErrMsgInvalidRequest        = "Invalid request body"
	ErrMsgInvalidRequestSummary = "Invalid request"

	// Query parameter error messages
	ErrMsgMissingQueryParam = "Missing %s query parameter"

	// Weapon operation error messages
	ErrMsgIssueWeaponFailed  = "Failed to issue weapon"
	ErrMsgDropWeaponFailed   = "Failed to drop weapon"
	ErrMsgHandoverFailed     = "Failed to hand over weapon"
	ErrMsgGetLoadoutFailed   = "Failed to get loadout"

	// Attachment operation error messages
	ErrMsgAttachFailed = "Failed to attach"
	ErrMsgDetachFailed = "Failed to detach"
	ErrMsgClearFailed  = "Failed to clear loadout"

	// Preference operation error messages
	ErrMsgSavePreferenceFailed = "Failed to save preference"
	ErrMsgGetPreferencesFailed = "Failed to get preferences"
)

// Success messages for API responses
// These are user-facing success messages returned in JSON responses
const (
	MsgWeaponIssuedSuccess      = "Weapon issued successfully"
	MsgWeaponDroppedSuccess     = "Weapon dropped successfully"
	MsgWeaponHandoverSuccess    = "Weapon handed over successfully"
	MsgSessionEndedSuccess      = "Session ended"
	MsgAttachedSuccess          = "Attachment added successfully"
	MsgDetachedSuccess          = "Attachment removed successfully"
	MsgLoadoutClearedSuccess    = "Loadout cleared successfully"
	MsgPreferenceSavedSuccess   = "Preference saved successfully"
	MsgPreferenceClearedSuccess = "Preference cleared successfully"
	MsgBulkPreferenceSuccess    = "Bulk preference update applied"
)
