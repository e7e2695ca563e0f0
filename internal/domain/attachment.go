package domain

// Kind identifies a weapon kind whose attachment set is registered in the catalog.
type Kind string

const (
	KindRifle    Kind = "rifle"
	KindCarbine  Kind = "carbine"
	KindShotgun  Kind = "shotgun"
	KindHandgun  Kind = "handgun"
	KindLauncher Kind = "launcher"
)

// Slot groups mutually exclusive attachments. At most one attachment per
// slot is enabled on a weapon at any time.
type Slot string

const (
	SlotSight       Slot = "sight"
	SlotBarrel      Slot = "barrel"
	SlotMuzzle      Slot = "muzzle"
	SlotUnderbarrel Slot = "underbarrel"
	SlotMagazine    Slot = "magazine"
	SlotAccessory   Slot = "accessory"
)

// Code is the attachment bitmask of one weapon. Each set bit corresponds to
// exactly one Definition.Bit within the weapon's kind.
type Code uint32

// Has reports whether every bit in mask is set.
func (c Code) Has(mask Code) bool {
	return c&mask == mask
}

// Definition describes one attachment available for a weapon kind.
// Definitions are created once at catalog registration and never mutated.
type Definition struct {
	Kind          Kind   `json:"kind"`
	Name          string `json:"name"`
	Slot          Slot   `json:"slot"`
	Bit           Code   `json:"bit"`
	Baseline      bool   `json:"baseline,omitempty"`
	CapacityDelta int    `json:"capacity_delta,omitempty"` // magazine capacity change while enabled
	Light         bool   `json:"light,omitempty"`          // light-emitting accessory, drives StatusLightOn
}

// KindProps holds the per-kind properties the catalog tracks alongside the
// attachment definitions.
type KindProps struct {
	BaseCapacity int  `json:"base_capacity"`
	Automatic    bool `json:"automatic"` // supports fire-rate/recoil tuning
}
