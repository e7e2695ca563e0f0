package catalog

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/LoadoutBot_Go/internal/domain"
)

func writeTempConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "weapons.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

const validConfigJSON = `{
  "version": "1.0",
  "kinds": [
    {
      "kind": "rifle",
      "base_capacity": 30,
      "automatic": true,
      "attachments": [
        { "name": "reflex_sight", "slot": "sight", "bit": 1 },
        { "name": "standard_stock", "slot": "accessory", "bit": 2, "baseline": true },
        { "name": "extended_mag", "slot": "magazine", "bit": 4, "capacity_delta": 10 }
      ]
    }
  ]
}`

func TestLoadValidConfig(t *testing.T) {
	loader := NewLoader()

	config, err := loader.Load(writeTempConfig(t, validConfigJSON))
	require.NoError(t, err)

	assert.Equal(t, "1.0", config.Version)
	require.Len(t, config.Kinds, 1)
	assert.Equal(t, "rifle", config.Kinds[0].Kind)
	assert.Len(t, config.Kinds[0].Attachments, 3)
}

func TestLoadRejectsSchemaViolations(t *testing.T) {
	loader := NewLoader()

	tests := []struct {
		name    string
		content string
	}{
		{
			name:    "missing kinds",
			content: `{"version": "1.0"}`,
		},
		{
			name: "unknown kind enum value",
			content: `{"version": "1.0", "kinds": [
				{"kind": "crossbow", "base_capacity": 10, "attachments": [{"name": "a", "slot": "sight", "bit": 1}]}
			]}`,
		},
		{
			name: "unknown slot enum value",
			content: `{"version": "1.0", "kinds": [
				{"kind": "rifle", "base_capacity": 10, "attachments": [{"name": "a", "slot": "bayonet", "bit": 1}]}
			]}`,
		},
		{
			name: "zero bit",
			content: `{"version": "1.0", "kinds": [
				{"kind": "rifle", "base_capacity": 10, "attachments": [{"name": "a", "slot": "sight", "bit": 0}]}
			]}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := loader.Load(writeTempConfig(t, tt.content))
			assert.Error(t, err)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	loader := NewLoader()
	_, err := loader.Load(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}

func TestValidateRejectsDuplicateKinds(t *testing.T) {
	loader := NewLoader()
	config := &Config{
		Version: "1.0",
		Kinds: []KindDef{
			{Kind: "rifle", BaseCapacity: 30, Attachments: []AttachmentDef{{Name: "a", Slot: "sight", Bit: 1}}},
			{Kind: "rifle", BaseCapacity: 30, Attachments: []AttachmentDef{{Name: "b", Slot: "sight", Bit: 1}}},
		},
	}

	assert.ErrorIs(t, loader.Validate(config), domain.ErrInvalidCatalog)
}

func TestBuildRegistersAllKinds(t *testing.T) {
	loader := NewLoader()

	config, err := loader.Load(writeTempConfig(t, validConfigJSON))
	require.NoError(t, err)

	cat, err := loader.Build(context.Background(), config)
	require.NoError(t, err)

	assert.True(t, cat.Registered(domain.KindRifle))
	assert.Equal(t, domain.Code(0x2), cat.BaseCode(domain.KindRifle))
	assert.Equal(t, 40, cat.MaxCapacity(domain.KindRifle, 0x2|0x4))
	assert.True(t, cat.Automatic(domain.KindRifle))
}

func TestBuildRejectsInvalidBits(t *testing.T) {
	loader := NewLoader()
	config := &Config{
		Version: "1.0",
		Kinds: []KindDef{
			{Kind: "rifle", BaseCapacity: 30, Attachments: []AttachmentDef{
				{Name: "a", Slot: "sight", Bit: 3},
			}},
		},
	}

	_, err := loader.Build(context.Background(), config)
	assert.ErrorIs(t, err, domain.ErrInvalidCatalog)
}

func TestShippedCatalogLoads(t *testing.T) {
	loader := NewLoader()

	config, err := loader.Load(filepath.Join("..", "..", ConfigFileNamePath))
	require.NoError(t, err)

	cat, err := loader.Build(context.Background(), config)
	require.NoError(t, err)

	for _, kind := range []domain.Kind{
		domain.KindRifle, domain.KindCarbine, domain.KindShotgun,
		domain.KindHandgun, domain.KindLauncher,
	} {
		assert.True(t, cat.Registered(kind), "kind %q missing from shipped catalog", kind)
	}
}
