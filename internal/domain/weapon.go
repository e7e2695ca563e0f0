package domain

// StatusFlags is the bitmask of transient weapon status bits.
type StatusFlags uint8

const (
	// StatusLightOn is set while a light-emitting accessory is enabled.
	StatusLightOn StatusFlags = 1 << iota
	// StatusJammed marks a weapon that cannot fire until cleared.
	StatusJammed
	// StatusSafety marks a weapon with the safety engaged.
	StatusSafety
)

// Snapshot is the position-independent state of one weapon instance,
// consumed by the pickup/spawn collaborator when materializing a dropped
// or spawned representation.
type Snapshot struct {
	Kind   Kind        `json:"kind"`
	Code   Code        `json:"code"`
	Ammo   int         `json:"ammo"`
	Status StatusFlags `json:"status"`
}
