package catalog

// Configuration file names
const (
	// ConfigFileName is the name of the weapons configuration file
	ConfigFileName = "weapons.json"

	// ConfigFileNamePath is the shipped config path relative to the repo root
	ConfigFileNamePath = "configs/weapons.json"
)

// File operation error messages
const (
	ErrMsgReadConfigFileFailed = "failed to read weapons config file: %w"
	ErrMsgParseConfigFailed    = "failed to parse weapons config: %w"
)

// Validation error message fragments (used with error wrapping)
const (
	ErrMsgConfigNil       = "config is nil"
	ErrMsgNoKindsDefined  = "no weapon kinds defined"
	ErrMsgNoSlotForDef    = "has empty slot"
	ErrMsgEmptyKindName   = "has empty kind name"
	ErrMsgNoDefsDefined   = "has no attachment definitions"
	ErrMsgNonPositiveCap  = "has non-positive base_capacity"
	ErrMsgEmptyAttachName = "has a definition with empty name"
)

// Load log messages
const (
	LogMsgCatalogLoaded = "Weapon catalog loaded"
)
