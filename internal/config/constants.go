package config

const (
	// Configuration file paths
	ConfigPathWeapons       = "configs/weapons.json"
	ConfigPathWeaponsSchema = "configs/schemas/weapons.schema.json"
)

// Loadout summary cache defaults
const (
	DefaultLoadoutCacheSize = 1000
	DefaultLoadoutCacheTTL  = "5m"
)
