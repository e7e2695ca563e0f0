package weapon

import (
	"fmt"
	"iter"

	"github.com/osse101/LoadoutBot_Go/internal/attachment"
	"github.com/osse101/LoadoutBot_Go/internal/catalog"
	"github.com/osse101/LoadoutBot_Go/internal/domain"
)

// Instance is one live weapon. Its attachment code is mutated only through
// the engine operations below, which preserves slot exclusivity by
// construction. Callers serialize access to a given instance; the instance
// itself holds no locks.
type Instance struct {
	kind   domain.Kind
	code   domain.Code
	ammo   int
	status domain.StatusFlags

	// Tuning scalars, meaningful only for automatic kinds.
	fireRate float64
	recoil   float64

	cat         *catalog.Catalog
	derivations *DerivationRegistry
}

// New creates a weapon instance at the kind's base code.
func New(cat *catalog.Catalog, derivations *DerivationRegistry, kind domain.Kind, ammo int, status domain.StatusFlags) (*Instance, error) {
	if !cat.Registered(kind) {
		return nil, fmt.Errorf("%w: %q", domain.ErrKindNotFound, kind)
	}

	inst := &Instance{
		kind:        kind,
		code:        cat.BaseCode(kind),
		status:      status,
		cat:         cat,
		derivations: derivations,
	}
	inst.ammo = attachment.ClampAmmo(cat, kind, inst.code, ammo)
	return inst, nil
}

// Kind returns the weapon kind.
func (w *Instance) Kind() domain.Kind { return w.kind }

// Code returns the current attachment code.
func (w *Instance) Code() domain.Code { return w.code }

// Ammo returns the current ammo count.
func (w *Instance) Ammo() int { return w.ammo }

// Status returns the current status flags.
func (w *Instance) Status() domain.StatusFlags { return w.status }

// Add enables def, displacing any attachment in the same slot. Ammo is
// clamped to the new effective capacity and the light flag is synced.
func (w *Instance) Add(def domain.Definition) error {
	newCode, _, err := attachment.Apply(w.cat, w.kind, w.code, def)
	if err != nil {
		return err
	}
	w.transition(newCode)
	return nil
}

// AddNamed resolves name through the catalog, then adds it.
func (w *Instance) AddNamed(name string) error {
	def, err := w.cat.Lookup(w.kind, name)
	if err != nil {
		return err
	}
	return w.Add(def)
}

// RemoveDefinition disables def by exact bit match. Removing an attachment
// that is not enabled is a no-op.
func (w *Instance) RemoveDefinition(def domain.Definition) error {
	if def.Kind != w.kind {
		return fmt.Errorf("%w: definition %q is for kind %q, weapon is %q",
			domain.ErrKindMismatch, def.Name, def.Kind, w.kind)
	}
	w.transition(attachment.Strip(w.code, def.Bit))
	return nil
}

// RemoveNamed resolves name through the catalog and disables its exact bit.
// Unknown names are a no-op; the enabled-set check happens via the bit mask.
func (w *Instance) RemoveNamed(name string) {
	def, err := w.cat.Lookup(w.kind, name)
	if err != nil {
		return
	}
	w.transition(attachment.Strip(w.code, def.Bit))
}

// RemoveSlot disables the first enabled attachment occupying slot.
// This matching rule is intentionally different from RemoveNamed: when
// several catalog entries share a slot, the slot path removes whichever
// one is enabled, not a specific named entry.
func (w *Instance) RemoveSlot(slot domain.Slot) {
	def, ok := attachment.EnabledInSlot(w.cat, w.kind, w.code, slot)
	if !ok {
		return
	}
	w.transition(attachment.Strip(w.code, def.Bit))
}

// ClearAttachments resets the code to the kind's base code in a single
// transition, without per-attachment side effects.
func (w *Instance) ClearAttachments() {
	w.transition(attachment.Clear(w.cat, w.kind))
}

// transition applies a code change plus its state side effects: the ammo
// clamp against the new effective capacity and the light flag sync.
func (w *Instance) transition(newCode domain.Code) {
	w.code = newCode
	w.ammo = attachment.ClampAmmo(w.cat, w.kind, newCode, w.ammo)
	w.status = attachment.SyncLightFlag(w.cat, w.kind, newCode, w.status)
}

// Enabled yields the enabled definitions in catalog registration order.
func (w *Instance) Enabled() iter.Seq[domain.Definition] {
	return attachment.Enabled(w.cat, w.kind, w.code)
}

// Attachment returns the enabled attachment with the given name.
// Fails with ErrAttachmentNotFound when the name is not part of the
// enabled set; use TryAttachment for the soft variant.
func (w *Instance) Attachment(name string) (domain.Definition, error) {
	if def, ok := w.TryAttachment(name); ok {
		return def, nil
	}
	return domain.Definition{}, fmt.Errorf("%w: %q not enabled on kind %q",
		domain.ErrAttachmentNotFound, name, w.kind)
}

// TryAttachment reports whether an attachment with the given name is
// enabled. It never fails; absence is reported via the boolean.
func (w *Instance) TryAttachment(name string) (domain.Definition, bool) {
	for def := range w.Enabled() {
		if def.Name == name {
			return def, true
		}
	}
	return domain.Definition{}, false
}

// SetAmmo sets the ammo count, clamped to the effective capacity.
func (w *Instance) SetAmmo(ammo int) {
	if ammo < 0 {
		ammo = 0
	}
	w.ammo = attachment.ClampAmmo(w.cat, w.kind, w.code, ammo)
}

// SetStatus replaces the status flags, then re-syncs the light flag so it
// keeps tracking the enabled set.
func (w *Instance) SetStatus(status domain.StatusFlags) {
	w.status = attachment.SyncLightFlag(w.cat, w.kind, w.code, status)
}

// FireRate returns the fire-rate tuning scalar.
// Fails for kinds that do not support tuning.
func (w *Instance) FireRate() (float64, error) {
	if !w.cat.Automatic(w.kind) {
		return 0, fmt.Errorf("%w: fire-rate tuning on kind %q", domain.ErrUnsupportedKind, w.kind)
	}
	return w.fireRate, nil
}

// SetFireRate sets the fire-rate tuning scalar.
// Fails for kinds that do not support tuning.
func (w *Instance) SetFireRate(rate float64) error {
	if !w.cat.Automatic(w.kind) {
		return fmt.Errorf("%w: fire-rate tuning on kind %q", domain.ErrUnsupportedKind, w.kind)
	}
	w.fireRate = rate
	return nil
}

// Recoil returns the recoil tuning scalar.
// Fails for kinds that do not support tuning.
func (w *Instance) Recoil() (float64, error) {
	if !w.cat.Automatic(w.kind) {
		return 0, fmt.Errorf("%w: recoil tuning on kind %q", domain.ErrUnsupportedKind, w.kind)
	}
	return w.recoil, nil
}

// SetRecoil sets the recoil tuning scalar.
// Fails for kinds that do not support tuning.
func (w *Instance) SetRecoil(recoil float64) error {
	if !w.cat.Automatic(w.kind) {
		return fmt.Errorf("%w: recoil tuning on kind %q", domain.ErrUnsupportedKind, w.kind)
	}
	w.recoil = recoil
	return nil
}

// Snapshot returns the position-independent state for the pickup/spawn
// collaborator.
func (w *Instance) Snapshot() domain.Snapshot {
	return domain.Snapshot{
		Kind:   w.kind,
		Code:   w.code,
		Ammo:   w.ammo,
		Status: w.status,
	}
}

// Clone builds a new instance of the same kind and replays the source's
// enabled attachments through Add on the target. The code is never copied
// directly; reconstructing it attachment by attachment re-validates slot
// exclusivity on the clone.
func (w *Instance) Clone() (*Instance, error) {
	clone, err := New(w.cat, w.derivations, w.kind, w.ammo, w.status)
	if err != nil {
		return nil, err
	}

	if w.cat.Automatic(w.kind) {
		clone.fireRate = w.fireRate
		clone.recoil = w.recoil
	}

	for def := range w.Enabled() {
		if err := clone.Add(def); err != nil {
			return nil, err
		}
	}

	// Replaying attachments can only shrink ammo; restore the source count
	// under the final capacity.
	clone.SetAmmo(w.ammo)
	return clone, nil
}

// ChangeOwner reassigns live ownership by invoking the per-kind derivation
// rule registered by the ownership collaborator. What the derived subsystem
// does is opaque to the weapon.
func (w *Instance) ChangeOwner(oldOwner, newOwner string) error {
	derive, ok := w.derivations.Lookup(w.kind)
	if !ok {
		return fmt.Errorf("%w: no derivation rule for kind %q", domain.ErrUnsupportedKind, w.kind)
	}
	return derive(oldOwner, newOwner, w.Snapshot())
}
