package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/osse101/LoadoutBot_Go/internal/domain"
	"github.com/osse101/LoadoutBot_Go/internal/logger"
	"github.com/osse101/LoadoutBot_Go/internal/validation"
)

// Schema paths
const (
	WeaponsSchemaPath = "configs/schemas/weapons.schema.json"
)

// Config represents the JSON configuration for the weapon catalog
type Config struct {
	Version     string `json:"version"`
	Description string `json:"description"`

	Kinds []KindDef `json:"kinds"`
}

// KindDef represents one weapon kind entry in the JSON
type KindDef struct {
	Kind         string          `json:"kind"`
	BaseCapacity int             `json:"base_capacity"`
	Automatic    bool            `json:"automatic"`
	Attachments  []AttachmentDef `json:"attachments"`
}

// AttachmentDef represents a single attachment definition in the JSON
type AttachmentDef struct {
	Name          string `json:"name"`
	Slot          string `json:"slot"`
	Bit           uint32 `json:"bit"`
	Baseline      bool   `json:"baseline,omitempty"`
	CapacityDelta int    `json:"capacity_delta,omitempty"`
	Light         bool   `json:"light,omitempty"`
}

// Loader handles loading and validating the weapon catalog configuration
type Loader interface {
	Load(path string) (*Config, error)
	Validate(config *Config) error
	Build(ctx context.Context, config *Config) (*Catalog, error)
}

type catalogLoader struct {
	schemaValidator validation.SchemaValidator
}

// NewLoader creates a new Loader instance
func NewLoader() Loader {
	return &catalogLoader{
		schemaValidator: validation.NewSchemaValidator(),
	}
}

// Load reads and parses a weapons JSON file
func (l *catalogLoader) Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgReadConfigFileFailed, err)
	}

	// Validate against schema first
	if err := l.schemaValidator.ValidateBytes(data, WeaponsSchemaPath); err != nil {
		return nil, fmt.Errorf("schema validation failed for %s: %w", path, err)
	}

	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf(ErrMsgParseConfigFailed, err)
	}

	return &config, nil
}

// Validate checks the catalog configuration for errors.
// Bit uniqueness and power-of-two checks are left to Catalog.Register,
// which owns those invariants.
func (l *catalogLoader) Validate(config *Config) error {
	if config == nil {
		return fmt.Errorf("%w: %s", domain.ErrInvalidCatalog, ErrMsgConfigNil)
	}

	if len(config.Kinds) == 0 {
		return fmt.Errorf("%w: %s", domain.ErrInvalidCatalog, ErrMsgNoKindsDefined)
	}

	seenKinds := make(map[string]bool, len(config.Kinds))
	for i := range config.Kinds {
		kind := &config.Kinds[i]
		if err := l.validateKindDef(i, kind, seenKinds); err != nil {
			return err
		}
	}

	return nil
}

func (l *catalogLoader) validateKindDef(index int, kind *KindDef, seenKinds map[string]bool) error {
	if kind.Kind == "" {
		return fmt.Errorf("%w: kind at index %d %s", domain.ErrInvalidCatalog, index, ErrMsgEmptyKindName)
	}
	if seenKinds[kind.Kind] {
		return fmt.Errorf("%w: duplicate kind %q", domain.ErrInvalidCatalog, kind.Kind)
	}
	seenKinds[kind.Kind] = true

	if kind.BaseCapacity <= 0 {
		return fmt.Errorf("%w: kind %q %s", domain.ErrInvalidCatalog, kind.Kind, ErrMsgNonPositiveCap)
	}
	if len(kind.Attachments) == 0 {
		return fmt.Errorf("%w: kind %q %s", domain.ErrInvalidCatalog, kind.Kind, ErrMsgNoDefsDefined)
	}

	for _, att := range kind.Attachments {
		if att.Name == "" {
			return fmt.Errorf("%w: kind %q %s", domain.ErrInvalidCatalog, kind.Kind, ErrMsgEmptyAttachName)
		}
		if att.Slot == "" {
			return fmt.Errorf("%w: attachment %q %s", domain.ErrInvalidCatalog, att.Name, ErrMsgNoSlotForDef)
		}
	}

	return nil
}

// Build registers every kind from the config into a fresh catalog
func (l *catalogLoader) Build(ctx context.Context, config *Config) (*Catalog, error) {
	log := logger.FromContext(ctx)

	if err := l.Validate(config); err != nil {
		return nil, err
	}

	cat := New()
	for _, kindDef := range config.Kinds {
		kind := domain.Kind(kindDef.Kind)

		defs := make([]domain.Definition, 0, len(kindDef.Attachments))
		for _, att := range kindDef.Attachments {
			defs = append(defs, domain.Definition{
				Kind:          kind,
				Name:          att.Name,
				Slot:          domain.Slot(att.Slot),
				Bit:           domain.Code(att.Bit),
				Baseline:      att.Baseline,
				CapacityDelta: att.CapacityDelta,
				Light:         att.Light,
			})
		}

		props := domain.KindProps{
			BaseCapacity: kindDef.BaseCapacity,
			Automatic:    kindDef.Automatic,
		}
		if err := cat.Register(kind, props, defs); err != nil {
			return nil, err
		}
	}

	log.Info(LogMsgCatalogLoaded, "kinds", len(config.Kinds), "version", config.Version)
	return cat, nil
}
