// Package attachment implements the bitmask algebra over attachment codes.
// Everything here is a pure function over (code, definition) pairs resolved
// through the catalog; no live weapon handle is involved. The weapon facade
// owns the handle and delegates to these functions.
package attachment

import (
	"fmt"
	"iter"

	"github.com/osse101/LoadoutBot_Go/internal/catalog"
	"github.com/osse101/LoadoutBot_Go/internal/domain"
)

// Apply enables def on the given code, displacing whichever attachment
// currently occupies def's slot. It returns the new code and the bit that
// was displaced (zero when the slot was free).
//
// The scan stops at the first enabled definition sharing the slot. Under the
// slot-exclusivity invariant at most one can match; the first-match rule keeps
// the operation O(slots) and deterministic even if the invariant were broken.
func Apply(cat *catalog.Catalog, kind domain.Kind, code domain.Code, def domain.Definition) (domain.Code, domain.Code, error) {
	if def.Kind != kind {
		return code, 0, fmt.Errorf("%w: definition %q is for kind %q, weapon is %q",
			domain.ErrKindMismatch, def.Name, def.Kind, kind)
	}

	var toRemove domain.Code
	for enabled := range Enabled(cat, kind, code) {
		if enabled.Slot == def.Slot && enabled.Bit != def.Bit {
			toRemove = enabled.Bit
			break
		}
	}

	newCode := (code &^ toRemove) | def.Bit
	return newCode, toRemove, nil
}

// Strip clears a single attachment bit. Stripping a bit that is not set is
// a no-op, not an error.
func Strip(code, bit domain.Code) domain.Code {
	return code &^ bit
}

// Clear resets the code to the kind's base code in one state transition,
// deliberately bypassing per-attachment side effects.
func Clear(cat *catalog.Catalog, kind domain.Kind) domain.Code {
	return cat.BaseCode(kind)
}

// Enabled yields the definitions whose bit is set in code, in catalog
// registration order. The sequence is lazy, finite, and restartable, so it
// is stable for display purposes.
func Enabled(cat *catalog.Catalog, kind domain.Kind, code domain.Code) iter.Seq[domain.Definition] {
	return func(yield func(domain.Definition) bool) {
		for _, def := range cat.AllDefinitions(kind) {
			if code.Has(def.Bit) {
				if !yield(def) {
					return
				}
			}
		}
	}
}

// EnabledInSlot returns the first enabled definition occupying the slot.
// This is the remove-by-slot matching rule: first enabled attachment in the
// slot, which can differ from exact-bit matching when several catalog entries
// share a slot.
func EnabledInSlot(cat *catalog.Catalog, kind domain.Kind, code domain.Code, slot domain.Slot) (domain.Definition, bool) {
	for def := range Enabled(cat, kind, code) {
		if def.Slot == slot {
			return def, true
		}
	}
	return domain.Definition{}, false
}

// ClampAmmo limits ammo to the effective magazine capacity under code.
func ClampAmmo(cat *catalog.Catalog, kind domain.Kind, code domain.Code, ammo int) int {
	if maxAmmo := cat.MaxCapacity(kind, code); ammo > maxAmmo {
		return maxAmmo
	}
	return ammo
}

// SyncLightFlag reconciles the light status flag with the enabled set:
// set while any light-emitting attachment is enabled, clear otherwise.
func SyncLightFlag(cat *catalog.Catalog, kind domain.Kind, code domain.Code, status domain.StatusFlags) domain.StatusFlags {
	for def := range Enabled(cat, kind, code) {
		if def.Light {
			return status | domain.StatusLightOn
		}
	}
	return status &^ domain.StatusLightOn
}
