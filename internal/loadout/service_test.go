package loadout

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/LoadoutBot_Go/internal/catalog"
	"github.com/osse101/LoadoutBot_Go/internal/domain"
	"github.com/osse101/LoadoutBot_Go/internal/event"
	"github.com/osse101/LoadoutBot_Go/internal/preference"
	"github.com/osse101/LoadoutBot_Go/internal/weapon"
)

func newTestCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	cat := catalog.New()
	err := cat.Register(domain.KindRifle, domain.KindProps{BaseCapacity: 30, Automatic: true}, []domain.Definition{
		{Kind: domain.KindRifle, Name: "reflex_sight", Slot: domain.SlotSight, Bit: 0x1},
		{Kind: domain.KindRifle, Name: "holo_sight", Slot: domain.SlotSight, Bit: 0x2},
		{Kind: domain.KindRifle, Name: "long_barrel", Slot: domain.SlotBarrel, Bit: 0x4},
		{Kind: domain.KindRifle, Name: "standard_stock", Slot: domain.SlotAccessory, Bit: 0x8, Baseline: true},
		{Kind: domain.KindRifle, Name: "extended_mag", Slot: domain.SlotMagazine, Bit: 0x10, CapacityDelta: 10},
	})
	require.NoError(t, err)
	err = cat.Register(domain.KindHandgun, domain.KindProps{BaseCapacity: 12}, []domain.Definition{
		{Kind: domain.KindHandgun, Name: "suppressor", Slot: domain.SlotMuzzle, Bit: 0x1},
	})
	require.NoError(t, err)
	return cat
}

// eventRecorder captures published events for assertions.
type eventRecorder struct {
	mu     sync.Mutex
	events []event.Event
}

func (r *eventRecorder) record(_ context.Context, evt event.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, evt)
	return nil
}

func (r *eventRecorder) ofType(eventType event.Type) []event.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []event.Event
	for _, evt := range r.events {
		if evt.Type == eventType {
			out = append(out, evt)
		}
	}
	return out
}

type testEnv struct {
	svc      Service
	cat      *catalog.Catalog
	prefs    *preference.Store
	recorder *eventRecorder
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	cat := newTestCatalog(t)
	prefs := preference.NewStore(cat)

	derivations := weapon.NewDerivationRegistry()
	for _, kind := range cat.Kinds() {
		derivations.Register(kind, func(oldOwner, newOwner string, snap domain.Snapshot) error {
			return nil
		})
	}

	bus := event.NewMemoryBus()
	recorder := &eventRecorder{}
	for _, eventType := range []event.Type{
		event.AttachmentAdded, event.AttachmentRemoved, event.LoadoutCleared,
		event.PreferenceSaved, event.PreferenceCleared,
		event.WeaponIssued, event.WeaponHandover, event.WeaponDropped,
	} {
		bus.Subscribe(eventType, recorder.record)
	}

	svc := NewService(cat, prefs, derivations, bus, CacheConfig{Size: 16, TTL: time.Minute})
	return &testEnv{svc: svc, cat: cat, prefs: prefs, recorder: recorder}
}

func TestIssueStartsAtBaseCode(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	snap, err := env.svc.Issue(ctx, "alice", domain.KindRifle, 30)
	require.NoError(t, err)

	assert.Equal(t, env.cat.BaseCode(domain.KindRifle), snap.Code)
	assert.Equal(t, 30, snap.Ammo)
	assert.Len(t, env.recorder.ofType(event.WeaponIssued), 1)
}

func TestIssueReplaysStoredPreference(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.prefs.Set("alice", domain.KindRifle, 0x8|0x2|0x4)

	snap, err := env.svc.Issue(ctx, "alice", domain.KindRifle, 30)
	require.NoError(t, err)
	assert.Equal(t, domain.Code(0xe), snap.Code)
}

func TestIssueRejectsUnknownKind(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.svc.Issue(context.Background(), "alice", domain.KindLauncher, 1)
	assert.ErrorIs(t, err, domain.ErrKindNotFound)
}

func TestAttachAndDetach(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.svc.Issue(ctx, "alice", domain.KindRifle, 30)
	require.NoError(t, err)

	code, err := env.svc.Attach(ctx, "alice", domain.KindRifle, "reflex_sight")
	require.NoError(t, err)
	assert.Equal(t, domain.Code(0x9), code)

	// Same slot swap.
	code, err = env.svc.Attach(ctx, "alice", domain.KindRifle, "holo_sight")
	require.NoError(t, err)
	assert.Equal(t, domain.Code(0xa), code)

	code, err = env.svc.DetachNamed(ctx, "alice", domain.KindRifle, "holo_sight")
	require.NoError(t, err)
	assert.Equal(t, domain.Code(0x8), code)

	assert.Len(t, env.recorder.ofType(event.AttachmentAdded), 2)
	assert.Len(t, env.recorder.ofType(event.AttachmentRemoved), 1)
}

func TestAttachUnknownName(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.svc.Issue(ctx, "alice", domain.KindRifle, 30)
	require.NoError(t, err)

	_, err = env.svc.Attach(ctx, "alice", domain.KindRifle, "nonexistent")
	assert.ErrorIs(t, err, domain.ErrAttachmentNotFound)
}

func TestAttachWithoutWeapon(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.svc.Attach(context.Background(), "nobody", domain.KindRifle, "reflex_sight")
	assert.ErrorIs(t, err, domain.ErrOwnerNotFound)
}

func TestDetachAbsentIsNoOpWithoutEvent(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.svc.Issue(ctx, "alice", domain.KindRifle, 30)
	require.NoError(t, err)

	code, err := env.svc.DetachNamed(ctx, "alice", domain.KindRifle, "reflex_sight")
	require.NoError(t, err)
	assert.Equal(t, domain.Code(0x8), code)
	assert.Empty(t, env.recorder.ofType(event.AttachmentRemoved))
}

func TestDetachSlot(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.svc.Issue(ctx, "alice", domain.KindRifle, 30)
	require.NoError(t, err)
	_, err = env.svc.Attach(ctx, "alice", domain.KindRifle, "holo_sight")
	require.NoError(t, err)

	code, err := env.svc.DetachSlot(ctx, "alice", domain.KindRifle, domain.SlotSight)
	require.NoError(t, err)
	assert.Equal(t, domain.Code(0x8), code)

	// Empty slot: still succeeds, nothing removed.
	code, err = env.svc.DetachSlot(ctx, "alice", domain.KindRifle, domain.SlotSight)
	require.NoError(t, err)
	assert.Equal(t, domain.Code(0x8), code)
	assert.Len(t, env.recorder.ofType(event.AttachmentRemoved), 1)
}

func TestClearAttachments(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.svc.Issue(ctx, "alice", domain.KindRifle, 30)
	require.NoError(t, err)
	_, err = env.svc.Attach(ctx, "alice", domain.KindRifle, "holo_sight")
	require.NoError(t, err)
	_, err = env.svc.Attach(ctx, "alice", domain.KindRifle, "long_barrel")
	require.NoError(t, err)

	code, err := env.svc.ClearAttachments(ctx, "alice", domain.KindRifle)
	require.NoError(t, err)
	assert.Equal(t, env.cat.BaseCode(domain.KindRifle), code)
	assert.Len(t, env.recorder.ofType(event.LoadoutCleared), 1)
}

func TestLoadoutSummary(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.svc.Issue(ctx, "alice", domain.KindRifle, 25)
	require.NoError(t, err)
	_, err = env.svc.Issue(ctx, "alice", domain.KindHandgun, 12)
	require.NoError(t, err)
	_, err = env.svc.Attach(ctx, "alice", domain.KindRifle, "extended_mag")
	require.NoError(t, err)

	loadouts, err := env.svc.Loadout(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, loadouts, 2)

	// Sorted by kind: handgun before rifle.
	assert.Equal(t, domain.KindHandgun, loadouts[0].Kind)
	assert.Equal(t, domain.KindRifle, loadouts[1].Kind)

	rifle := loadouts[1]
	assert.Equal(t, 25, rifle.Ammo)
	assert.Equal(t, 40, rifle.MaxAmmo)
	var names []string
	for _, att := range rifle.Attachments {
		names = append(names, att.Name)
	}
	assert.Equal(t, []string{"standard_stock", "extended_mag"}, names)
}

func TestLoadoutUnknownOwner(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.svc.Loadout(context.Background(), "nobody")
	assert.ErrorIs(t, err, domain.ErrOwnerNotFound)
}

func TestLoadoutCacheInvalidatedByMutation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.svc.Issue(ctx, "alice", domain.KindRifle, 30)
	require.NoError(t, err)

	first, err := env.svc.Loadout(ctx, "alice")
	require.NoError(t, err)
	require.Equal(t, domain.Code(0x8), first[0].Code)

	_, err = env.svc.Attach(ctx, "alice", domain.KindRifle, "long_barrel")
	require.NoError(t, err)

	second, err := env.svc.Loadout(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, domain.Code(0xc), second[0].Code)
}

func TestSaveAndReplayPreference(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.svc.Issue(ctx, "alice", domain.KindRifle, 30)
	require.NoError(t, err)
	_, err = env.svc.Attach(ctx, "alice", domain.KindRifle, "holo_sight")
	require.NoError(t, err)

	saved, err := env.svc.SavePreference(ctx, "alice", domain.KindRifle)
	require.NoError(t, err)
	assert.Equal(t, domain.Code(0xa), saved)

	// A fresh weapon picks the preference up.
	snap, err := env.svc.Issue(ctx, "alice", domain.KindRifle, 30)
	require.NoError(t, err)
	assert.Equal(t, domain.Code(0xa), snap.Code)
	assert.Len(t, env.recorder.ofType(event.PreferenceSaved), 1)
}

func TestSavedPreferenceIsASnapshot(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.svc.Issue(ctx, "alice", domain.KindRifle, 30)
	require.NoError(t, err)
	_, err = env.svc.Attach(ctx, "alice", domain.KindRifle, "holo_sight")
	require.NoError(t, err)
	_, err = env.svc.SavePreference(ctx, "alice", domain.KindRifle)
	require.NoError(t, err)

	// Mutating the live weapon after saving does not touch the stored code.
	_, err = env.svc.ClearAttachments(ctx, "alice", domain.KindRifle)
	require.NoError(t, err)

	prefs := env.svc.GetPreferences(ctx, "alice")
	assert.Equal(t, domain.Code(0xa), prefs[domain.KindRifle])
}

func TestClearPreference(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.prefs.Set("alice", domain.KindRifle, 0xa)
	env.svc.ClearPreference(ctx, "alice", domain.KindRifle)

	assert.Equal(t, env.cat.BaseCode(domain.KindRifle), env.prefs.Preference("alice", domain.KindRifle))
	assert.Len(t, env.recorder.ofType(event.PreferenceCleared), 1)
}

func TestBulkPreferenceOperations(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	owners := []string{"alice", "bob"}
	kinds := []domain.Kind{domain.KindRifle, domain.KindHandgun}

	env.svc.SetPreferenceBulk(ctx, owners, kinds, 0x1)
	for _, owner := range owners {
		for _, kind := range kinds {
			assert.Equal(t, domain.Code(0x1), env.prefs.Preference(owner, kind))
		}
	}

	env.svc.ClearPreferenceBulk(ctx, owners, kinds)
	for _, owner := range owners {
		for _, kind := range kinds {
			assert.Equal(t, env.cat.BaseCode(kind), env.prefs.Preference(owner, kind))
		}
	}
}

func TestHandover(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.svc.Issue(ctx, "alice", domain.KindRifle, 30)
	require.NoError(t, err)
	_, err = env.svc.Attach(ctx, "alice", domain.KindRifle, "holo_sight")
	require.NoError(t, err)

	require.NoError(t, env.svc.Handover(ctx, "alice", "bob", domain.KindRifle))

	// The weapon moved with its attachments intact.
	loadouts, err := env.svc.Loadout(ctx, "bob")
	require.NoError(t, err)
	require.Len(t, loadouts, 1)
	assert.Equal(t, domain.Code(0xa), loadouts[0].Code)

	_, err = env.svc.Attach(ctx, "alice", domain.KindRifle, "long_barrel")
	assert.ErrorIs(t, err, domain.ErrWeaponNotFound)
	assert.Len(t, env.recorder.ofType(event.WeaponHandover), 1)
}

func TestHandoverMissingWeapon(t *testing.T) {
	env := newTestEnv(t)

	err := env.svc.Handover(context.Background(), "nobody", "bob", domain.KindRifle)
	assert.ErrorIs(t, err, domain.ErrOwnerNotFound)
}

func TestDrop(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.svc.Issue(ctx, "alice", domain.KindRifle, 25)
	require.NoError(t, err)
	_, err = env.svc.Attach(ctx, "alice", domain.KindRifle, "long_barrel")
	require.NoError(t, err)

	snap, err := env.svc.Drop(ctx, "alice", domain.KindRifle)
	require.NoError(t, err)
	assert.Equal(t, domain.Code(0xc), snap.Code)
	assert.Equal(t, 25, snap.Ammo)

	_, err = env.svc.Drop(ctx, "alice", domain.KindRifle)
	assert.ErrorIs(t, err, domain.ErrWeaponNotFound)
	assert.Len(t, env.recorder.ofType(event.WeaponDropped), 1)
}

func TestEndSessionKeepsPreferences(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.svc.Issue(ctx, "alice", domain.KindRifle, 30)
	require.NoError(t, err)
	_, err = env.svc.Attach(ctx, "alice", domain.KindRifle, "holo_sight")
	require.NoError(t, err)
	_, err = env.svc.SavePreference(ctx, "alice", domain.KindRifle)
	require.NoError(t, err)

	env.svc.EndSession(ctx, "alice")

	// Live weapons are gone.
	_, err = env.svc.Loadout(ctx, "alice")
	assert.ErrorIs(t, err, domain.ErrOwnerNotFound)

	// Preferences survive the session.
	assert.Equal(t, domain.Code(0xa), env.prefs.Preference("alice", domain.KindRifle))
}

func TestCacheStats(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	stats := env.svc.CacheStats()
	assert.Equal(t, 0, stats.Entries)
	assert.Equal(t, 16, stats.Size)

	_, err := env.svc.Issue(ctx, "alice", domain.KindRifle, 30)
	require.NoError(t, err)
	_, err = env.svc.Loadout(ctx, "alice")
	require.NoError(t, err)

	stats = env.svc.CacheStats()
	assert.Equal(t, 1, stats.Entries)
}
