package loadout

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/osse101/LoadoutBot_Go/internal/attachment"
	"github.com/osse101/LoadoutBot_Go/internal/catalog"
	"github.com/osse101/LoadoutBot_Go/internal/domain"
	"github.com/osse101/LoadoutBot_Go/internal/event"
	"github.com/osse101/LoadoutBot_Go/internal/logger"
	"github.com/osse101/LoadoutBot_Go/internal/preference"
	"github.com/osse101/LoadoutBot_Go/internal/weapon"
)

// Service defines the interface for loadout operations
type Service interface {
	// Weapon lifecycle
	Issue(ctx context.Context, ownerID string, kind domain.Kind, ammo int) (domain.Snapshot, error)
	Drop(ctx context.Context, ownerID string, kind domain.Kind) (domain.Snapshot, error)
	Handover(ctx context.Context, fromOwnerID, toOwnerID string, kind domain.Kind) error
	EndSession(ctx context.Context, ownerID string)

	// Attachment management
	Attach(ctx context.Context, ownerID string, kind domain.Kind, name string) (domain.Code, error)
	DetachNamed(ctx context.Context, ownerID string, kind domain.Kind, name string) (domain.Code, error)
	DetachSlot(ctx context.Context, ownerID string, kind domain.Kind, slot domain.Slot) (domain.Code, error)
	ClearAttachments(ctx context.Context, ownerID string, kind domain.Kind) (domain.Code, error)
	Loadout(ctx context.Context, ownerID string) ([]WeaponLoadout, error)

	// Preference management
	SavePreference(ctx context.Context, ownerID string, kind domain.Kind) (domain.Code, error)
	GetPreferences(ctx context.Context, ownerID string) map[domain.Kind]domain.Code
	ClearPreference(ctx context.Context, ownerID string, kind domain.Kind)
	ClearAllPreferences(ctx context.Context, ownerID string)
	SetPreferenceBulk(ctx context.Context, ownerIDs []string, kinds []domain.Kind, code domain.Code)
	ClearPreferenceBulk(ctx context.Context, ownerIDs []string, kinds []domain.Kind)

	CacheStats() CacheStats
}

// WeaponLoadout is one weapon's summary in an owner's loadout listing
type WeaponLoadout struct {
	Kind        domain.Kind      `json:"kind"`
	Code        domain.Code      `json:"code"`
	Ammo        int              `json:"ammo"`
	MaxAmmo     int              `json:"max_ammo"`
	Attachments []AttachmentInfo `json:"attachments"`
}

// AttachmentInfo is one enabled attachment in a loadout summary
type AttachmentInfo struct {
	Name string      `json:"name"`
	Slot domain.Slot `json:"slot"`
}

// CacheStats reports summary-cache occupancy for the admin surface
type CacheStats struct {
	Entries int    `json:"entries"`
	Size    int    `json:"size"`
	TTL     string `json:"ttl"`
}

// CacheConfig configures the loadout summary cache
type CacheConfig struct {
	Size int
	TTL  time.Duration
}

// DefaultCacheConfig returns sensible cache defaults
func DefaultCacheConfig() CacheConfig {
	return CacheConfig{Size: 1000, TTL: 5 * time.Minute}
}

// service implements the Service interface
type service struct {
	cat         *catalog.Catalog
	prefs       *preference.Store
	derivations *weapon.DerivationRegistry
	eventBus    event.Bus

	// Armory: live weapon instances per owner per kind.
	// The RWMutex guards the maps; mutation of a single instance is
	// serialized per owner by the host's execution model.
	armoryMu sync.RWMutex
	armory   map[string]map[domain.Kind]*weapon.Instance

	cache       *summaryCache
	cacheConfig CacheConfig
}

// NewService creates a new loadout service
func NewService(cat *catalog.Catalog, prefs *preference.Store, derivations *weapon.DerivationRegistry, eventBus event.Bus, cacheConfig CacheConfig) Service {
	if cacheConfig.Size <= 0 || cacheConfig.TTL <= 0 {
		cacheConfig = DefaultCacheConfig()
	}
	return &service{
		cat:         cat,
		prefs:       prefs,
		derivations: derivations,
		eventBus:    eventBus,
		armory:      make(map[string]map[domain.Kind]*weapon.Instance),
		cache:       newSummaryCache(cacheConfig.Size, cacheConfig.TTL),
		cacheConfig: cacheConfig,
	}
}

// Issue creates a weapon for the owner and replays their stored preference
// onto it. This is the respawn/re-acquisition path: the preference is a
// snapshot, never a live reference, so the new instance aliases nothing.
func (s *service) Issue(ctx context.Context, ownerID string, kind domain.Kind, ammo int) (domain.Snapshot, error) {
	log := logger.FromContext(ctx)

	inst, err := weapon.New(s.cat, s.derivations, kind, ammo, 0)
	if err != nil {
		log.Error("Failed to create weapon", "error", err, "ownerID", ownerID, "kind", kind)
		return domain.Snapshot{}, err
	}

	prefCode := s.prefs.Preference(ownerID, kind)
	for def := range attachment.Enabled(s.cat, kind, prefCode) {
		if err := inst.Add(def); err != nil {
			log.Error("Failed to apply preferred attachment", "error", err, "ownerID", ownerID, "attachment", def.Name)
			return domain.Snapshot{}, err
		}
	}

	s.armoryMu.Lock()
	if _, ok := s.armory[ownerID]; !ok {
		s.armory[ownerID] = make(map[domain.Kind]*weapon.Instance)
	}
	s.armory[ownerID][kind] = inst
	s.armoryMu.Unlock()

	s.cache.Invalidate(ownerID)

	snap := inst.Snapshot()
	s.publish(ctx, event.NewWeaponIssuedEvent(ownerID, snap))
	log.Info("Weapon issued", "ownerID", ownerID, "kind", kind, "code", snap.Code)

	return snap, nil
}

// Drop removes the owner's weapon and returns its snapshot for the
// pickup/spawn collaborator.
func (s *service) Drop(ctx context.Context, ownerID string, kind domain.Kind) (domain.Snapshot, error) {
	log := logger.FromContext(ctx)

	s.armoryMu.Lock()
	inst, err := s.lookupLocked(ownerID, kind)
	if err == nil {
		delete(s.armory[ownerID], kind)
	}
	s.armoryMu.Unlock()

	if err != nil {
		log.Warn("Drop on missing weapon", "ownerID", ownerID, "kind", kind)
		return domain.Snapshot{}, err
	}

	s.cache.Invalidate(ownerID)

	snap := inst.Snapshot()
	s.publish(ctx, event.NewWeaponDroppedEvent(ownerID, snap))
	log.Info("Weapon dropped", "ownerID", ownerID, "kind", kind)

	return snap, nil
}

// Handover transfers a weapon between owners, running the per-kind
// ownership derivation rule.
func (s *service) Handover(ctx context.Context, fromOwnerID, toOwnerID string, kind domain.Kind) error {
	log := logger.FromContext(ctx)

	s.armoryMu.Lock()
	inst, err := s.lookupLocked(fromOwnerID, kind)
	s.armoryMu.Unlock()
	if err != nil {
		log.Warn("Handover on missing weapon", "fromOwnerID", fromOwnerID, "kind", kind)
		return err
	}

	if err := inst.ChangeOwner(fromOwnerID, toOwnerID); err != nil {
		log.Error("Failed to change owner", "error", err, "fromOwnerID", fromOwnerID, "toOwnerID", toOwnerID, "kind", kind)
		return err
	}

	s.armoryMu.Lock()
	delete(s.armory[fromOwnerID], kind)
	if _, ok := s.armory[toOwnerID]; !ok {
		s.armory[toOwnerID] = make(map[domain.Kind]*weapon.Instance)
	}
	s.armory[toOwnerID][kind] = inst
	s.armoryMu.Unlock()

	s.cache.Invalidate(fromOwnerID)
	s.cache.Invalidate(toOwnerID)

	s.publish(ctx, event.NewWeaponHandoverEvent(fromOwnerID, toOwnerID, kind, inst.Code()))
	log.Info("Weapon handed over", "fromOwnerID", fromOwnerID, "toOwnerID", toOwnerID, "kind", kind)

	return nil
}

// EndSession releases the owner's live weapons and cached summary.
// Stored preferences are deliberately untouched; clearing them is a
// separate, explicit operation.
func (s *service) EndSession(ctx context.Context, ownerID string) {
	log := logger.FromContext(ctx)

	s.armoryMu.Lock()
	delete(s.armory, ownerID)
	s.armoryMu.Unlock()

	s.cache.Invalidate(ownerID)
	log.Info("Session ended", "ownerID", ownerID)
}

// Attach enables a catalog attachment on the owner's weapon, displacing any
// attachment in the same slot.
func (s *service) Attach(ctx context.Context, ownerID string, kind domain.Kind, name string) (domain.Code, error) {
	log := logger.FromContext(ctx)

	inst, err := s.lookup(ownerID, kind)
	if err != nil {
		return 0, err
	}

	def, err := s.cat.Lookup(kind, name)
	if err != nil {
		log.Warn("Unknown attachment", "name", name, "kind", kind)
		return 0, err
	}

	if err := inst.Add(def); err != nil {
		log.Error("Failed to add attachment", "error", err, "ownerID", ownerID, "attachment", name)
		return 0, err
	}

	s.cache.Invalidate(ownerID)
	s.publish(ctx, event.NewAttachmentAddedEvent(ownerID, kind, def.Name, def.Slot, inst.Code()))
	log.Info("Attachment added", "ownerID", ownerID, "kind", kind, "attachment", name, "code", inst.Code())

	return inst.Code(), nil
}

// DetachNamed disables an attachment by exact catalog name. Unknown or
// already-disabled attachments are a no-op, not an error.
func (s *service) DetachNamed(ctx context.Context, ownerID string, kind domain.Kind, name string) (domain.Code, error) {
	log := logger.FromContext(ctx)

	inst, err := s.lookup(ownerID, kind)
	if err != nil {
		return 0, err
	}

	def, found := inst.TryAttachment(name)
	inst.RemoveNamed(name)

	s.cache.Invalidate(ownerID)
	if found {
		s.publish(ctx, event.NewAttachmentRemovedEvent(ownerID, kind, def.Name, def.Slot, inst.Code()))
	}
	log.Info("Attachment removed", "ownerID", ownerID, "kind", kind, "attachment", name, "code", inst.Code())

	return inst.Code(), nil
}

// DetachSlot disables whichever attachment currently occupies the slot.
func (s *service) DetachSlot(ctx context.Context, ownerID string, kind domain.Kind, slot domain.Slot) (domain.Code, error) {
	log := logger.FromContext(ctx)

	inst, err := s.lookup(ownerID, kind)
	if err != nil {
		return 0, err
	}

	def, found := attachment.EnabledInSlot(s.cat, kind, inst.Code(), slot)
	inst.RemoveSlot(slot)

	s.cache.Invalidate(ownerID)
	if found {
		s.publish(ctx, event.NewAttachmentRemovedEvent(ownerID, kind, def.Name, def.Slot, inst.Code()))
	}
	log.Info("Slot cleared", "ownerID", ownerID, "kind", kind, "slot", slot, "code", inst.Code())

	return inst.Code(), nil
}

// ClearAttachments resets the owner's weapon to its base code.
func (s *service) ClearAttachments(ctx context.Context, ownerID string, kind domain.Kind) (domain.Code, error) {
	log := logger.FromContext(ctx)

	inst, err := s.lookup(ownerID, kind)
	if err != nil {
		return 0, err
	}

	inst.ClearAttachments()

	s.cache.Invalidate(ownerID)
	s.publish(ctx, event.NewLoadoutClearedEvent(ownerID, kind, inst.Code()))
	log.Info("Loadout cleared", "ownerID", ownerID, "kind", kind, "code", inst.Code())

	return inst.Code(), nil
}

// Loadout returns the owner's per-weapon summary, cached per owner.
func (s *service) Loadout(ctx context.Context, ownerID string) ([]WeaponLoadout, error) {
	log := logger.FromContext(ctx)

	if cached, ok := s.cache.Get(ownerID); ok {
		log.Debug("Loadout served from cache", "ownerID", ownerID)
		return cached, nil
	}

	s.armoryMu.RLock()
	weapons, ok := s.armory[ownerID]
	if !ok {
		s.armoryMu.RUnlock()
		return nil, fmt.Errorf("%w: %q", domain.ErrOwnerNotFound, ownerID)
	}

	loadouts := make([]WeaponLoadout, 0, len(weapons))
	for kind, inst := range weapons {
		summary := WeaponLoadout{
			Kind:    kind,
			Code:    inst.Code(),
			Ammo:    inst.Ammo(),
			MaxAmmo: s.cat.MaxCapacity(kind, inst.Code()),
		}
		for def := range inst.Enabled() {
			summary.Attachments = append(summary.Attachments, AttachmentInfo{
				Name: def.Name,
				Slot: def.Slot,
			})
		}
		loadouts = append(loadouts, summary)
	}
	s.armoryMu.RUnlock()

	// Map iteration order is random; keep the listing stable for display.
	sort.Slice(loadouts, func(i, j int) bool { return loadouts[i].Kind < loadouts[j].Kind })

	s.cache.Set(ownerID, loadouts)
	log.Debug("Loadout computed", "ownerID", ownerID, "weapons", len(loadouts))

	return loadouts, nil
}

// SavePreference snapshots the current attachment code of the owner's
// weapon into the preference store.
func (s *service) SavePreference(ctx context.Context, ownerID string, kind domain.Kind) (domain.Code, error) {
	log := logger.FromContext(ctx)

	inst, err := s.lookup(ownerID, kind)
	if err != nil {
		return 0, err
	}

	code := inst.Code()
	s.prefs.Set(ownerID, kind, code)

	s.publish(ctx, event.NewPreferenceSavedEvent(ownerID, kind, code))
	log.Info("Preference saved", "ownerID", ownerID, "kind", kind, "code", code)

	return code, nil
}

// GetPreferences returns a defensive copy of the owner's stored preferences.
func (s *service) GetPreferences(ctx context.Context, ownerID string) map[domain.Kind]domain.Code {
	return s.prefs.Preferences(ownerID)
}

// ClearPreference resets the owner's preference for a kind to baseline.
func (s *service) ClearPreference(ctx context.Context, ownerID string, kind domain.Kind) {
	log := logger.FromContext(ctx)

	s.prefs.Clear(ownerID, kind)
	s.publish(ctx, event.NewPreferenceClearedEvent(ownerID, kind, s.cat.BaseCode(kind)))
	log.Info("Preference cleared", "ownerID", ownerID, "kind", kind)
}

// ClearAllPreferences resets every stored preference for the owner.
func (s *service) ClearAllPreferences(ctx context.Context, ownerID string) {
	log := logger.FromContext(ctx)

	s.prefs.ClearAll(ownerID)
	s.publish(ctx, event.NewPreferenceClearedEvent(ownerID, "", 0))
	log.Info("All preferences cleared", "ownerID", ownerID)
}

// SetPreferenceBulk upserts the code for every (owner, kind) pair.
func (s *service) SetPreferenceBulk(ctx context.Context, ownerIDs []string, kinds []domain.Kind, code domain.Code) {
	log := logger.FromContext(ctx)

	s.prefs.SetBulk(ownerIDs, kinds, code)
	log.Info("Bulk preference set", "owners", len(ownerIDs), "kinds", len(kinds), "code", code)
}

// ClearPreferenceBulk resets the preference for every (owner, kind) pair.
func (s *service) ClearPreferenceBulk(ctx context.Context, ownerIDs []string, kinds []domain.Kind) {
	log := logger.FromContext(ctx)

	s.prefs.ClearBulk(ownerIDs, kinds)
	log.Info("Bulk preference clear", "owners", len(ownerIDs), "kinds", len(kinds))
}

// CacheStats reports summary-cache occupancy.
func (s *service) CacheStats() CacheStats {
	return CacheStats{
		Entries: s.cache.Len(),
		Size:    s.cacheConfig.Size,
		TTL:     s.cacheConfig.TTL.String(),
	}
}

// lookup finds the owner's live weapon of a kind.
func (s *service) lookup(ownerID string, kind domain.Kind) (*weapon.Instance, error) {
	s.armoryMu.RLock()
	defer s.armoryMu.RUnlock()
	return s.lookupLocked(ownerID, kind)
}

// lookupLocked requires armoryMu to be held.
func (s *service) lookupLocked(ownerID string, kind domain.Kind) (*weapon.Instance, error) {
	weapons, ok := s.armory[ownerID]
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrOwnerNotFound, ownerID)
	}
	inst, ok := weapons[kind]
	if !ok {
		return nil, fmt.Errorf("%w: kind %q for owner %q", domain.ErrWeaponNotFound, kind, ownerID)
	}
	return inst, nil
}

// publish sends an event, logging failures rather than propagating them;
// event delivery never blocks a loadout operation.
func (s *service) publish(ctx context.Context, evt event.Event) {
	if s.eventBus == nil {
		return
	}
	if err := s.eventBus.Publish(ctx, evt); err != nil {
		logger.FromContext(ctx).Error("Failed to publish event", "error", err, "event_type", evt.Type)
	}
}
