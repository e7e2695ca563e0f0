package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/LoadoutBot_Go/internal/domain"
)

func rifleDefs() []domain.Definition {
	return []domain.Definition{
		{Kind: domain.KindRifle, Name: "reflex_sight", Slot: domain.SlotSight, Bit: 0x1},
		{Kind: domain.KindRifle, Name: "holo_sight", Slot: domain.SlotSight, Bit: 0x2},
		{Kind: domain.KindRifle, Name: "long_barrel", Slot: domain.SlotBarrel, Bit: 0x4},
		{Kind: domain.KindRifle, Name: "standard_stock", Slot: domain.SlotAccessory, Bit: 0x8, Baseline: true},
		{Kind: domain.KindRifle, Name: "extended_mag", Slot: domain.SlotMagazine, Bit: 0x10, CapacityDelta: 10},
		{Kind: domain.KindRifle, Name: "flashlight", Slot: domain.SlotUnderbarrel, Bit: 0x20, Light: true},
	}
}

func newTestCatalog(t *testing.T) *Catalog {
	t.Helper()
	cat := New()
	err := cat.Register(domain.KindRifle, domain.KindProps{BaseCapacity: 30, Automatic: true}, rifleDefs())
	require.NoError(t, err)
	err = cat.Register(domain.KindHandgun, domain.KindProps{BaseCapacity: 12}, []domain.Definition{
		{Kind: domain.KindHandgun, Name: "suppressor", Slot: domain.SlotMuzzle, Bit: 0x1},
	})
	require.NoError(t, err)
	return cat
}

func TestRegisterValidation(t *testing.T) {
	tests := []struct {
		name string
		defs []domain.Definition
	}{
		{
			name: "bit not power of two",
			defs: []domain.Definition{
				{Kind: domain.KindRifle, Name: "bad", Slot: domain.SlotSight, Bit: 0x3},
			},
		},
		{
			name: "zero bit",
			defs: []domain.Definition{
				{Kind: domain.KindRifle, Name: "bad", Slot: domain.SlotSight, Bit: 0},
			},
		},
		{
			name: "duplicate bit",
			defs: []domain.Definition{
				{Kind: domain.KindRifle, Name: "a", Slot: domain.SlotSight, Bit: 0x1},
				{Kind: domain.KindRifle, Name: "b", Slot: domain.SlotBarrel, Bit: 0x1},
			},
		},
		{
			name: "duplicate name",
			defs: []domain.Definition{
				{Kind: domain.KindRifle, Name: "a", Slot: domain.SlotSight, Bit: 0x1},
				{Kind: domain.KindRifle, Name: "a", Slot: domain.SlotBarrel, Bit: 0x2},
			},
		},
		{
			name: "empty name",
			defs: []domain.Definition{
				{Kind: domain.KindRifle, Name: "", Slot: domain.SlotSight, Bit: 0x1},
			},
		},
		{
			name: "kind mismatch",
			defs: []domain.Definition{
				{Kind: domain.KindShotgun, Name: "a", Slot: domain.SlotSight, Bit: 0x1},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cat := New()
			err := cat.Register(domain.KindRifle, domain.KindProps{BaseCapacity: 30}, tt.defs)
			assert.ErrorIs(t, err, domain.ErrInvalidCatalog)
		})
	}
}

func TestRegisterRejectsDuplicateKind(t *testing.T) {
	cat := newTestCatalog(t)
	err := cat.Register(domain.KindRifle, domain.KindProps{BaseCapacity: 30}, rifleDefs())
	assert.ErrorIs(t, err, domain.ErrInvalidCatalog)
}

func TestLookup(t *testing.T) {
	cat := newTestCatalog(t)

	def, err := cat.Lookup(domain.KindRifle, "holo_sight")
	require.NoError(t, err)
	assert.Equal(t, domain.Code(0x2), def.Bit)
	assert.Equal(t, domain.SlotSight, def.Slot)

	_, err = cat.Lookup(domain.KindRifle, "nonexistent")
	assert.ErrorIs(t, err, domain.ErrAttachmentNotFound)

	_, err = cat.Lookup(domain.KindLauncher, "holo_sight")
	assert.ErrorIs(t, err, domain.ErrKindNotFound)
}

func TestBaseCode(t *testing.T) {
	cat := newTestCatalog(t)

	// Only standard_stock is baseline on the rifle.
	assert.Equal(t, domain.Code(0x8), cat.BaseCode(domain.KindRifle))
	// The handgun has no baseline attachments.
	assert.Equal(t, domain.Code(0), cat.BaseCode(domain.KindHandgun))
	// Unregistered kinds report an empty base code.
	assert.Equal(t, domain.Code(0), cat.BaseCode(domain.KindLauncher))
}

func TestAllDefinitionsIsACopy(t *testing.T) {
	cat := newTestCatalog(t)

	defs := cat.AllDefinitions(domain.KindRifle)
	require.Len(t, defs, 6)
	defs[0].Name = "mutated"

	again := cat.AllDefinitions(domain.KindRifle)
	assert.Equal(t, "reflex_sight", again[0].Name)
}

func TestMaxCapacity(t *testing.T) {
	cat := newTestCatalog(t)

	// Base capacity with no magazine attachment.
	assert.Equal(t, 30, cat.MaxCapacity(domain.KindRifle, 0x8))
	// Extended mag adds its delta.
	assert.Equal(t, 40, cat.MaxCapacity(domain.KindRifle, 0x8|0x10))
	// Unregistered kind has no capacity.
	assert.Equal(t, 0, cat.MaxCapacity(domain.KindLauncher, 0))
}

func TestMaxCapacityFloorsAtZero(t *testing.T) {
	cat := New()
	err := cat.Register(domain.KindShotgun, domain.KindProps{BaseCapacity: 4}, []domain.Definition{
		{Kind: domain.KindShotgun, Name: "short_tube", Slot: domain.SlotMagazine, Bit: 0x1, CapacityDelta: -8},
	})
	require.NoError(t, err)

	assert.Equal(t, 0, cat.MaxCapacity(domain.KindShotgun, 0x1))
}

func TestAutomatic(t *testing.T) {
	cat := newTestCatalog(t)

	assert.True(t, cat.Automatic(domain.KindRifle))
	assert.False(t, cat.Automatic(domain.KindHandgun))
	assert.False(t, cat.Automatic(domain.KindLauncher))
}

func TestKinds(t *testing.T) {
	cat := newTestCatalog(t)

	kinds := cat.Kinds()
	assert.ElementsMatch(t, []domain.Kind{domain.KindRifle, domain.KindHandgun}, kinds)
	assert.True(t, cat.Registered(domain.KindRifle))
	assert.False(t, cat.Registered(domain.KindCarbine))
}
