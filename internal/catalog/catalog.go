package catalog

import (
	"fmt"

	"github.com/osse101/LoadoutBot_Go/internal/domain"
)

// Catalog is the static per-kind registry of attachment definitions.
// Register is called once per kind at startup; after that the catalog is
// read-only and safe for concurrent use.
type Catalog struct {
	kinds map[domain.Kind]*kindEntry
}

type kindEntry struct {
	props  domain.KindProps
	defs   []domain.Definition // registration order
	byName map[string]int      // name -> index into defs
	base   domain.Code
}

// New creates an empty catalog.
func New() *Catalog {
	return &Catalog{kinds: make(map[domain.Kind]*kindEntry)}
}

// Register installs the fixed set of attachment definitions for a kind.
// Each definition's bit must be a power of two and unique within the kind.
func (c *Catalog) Register(kind domain.Kind, props domain.KindProps, defs []domain.Definition) error {
	if _, ok := c.kinds[kind]; ok {
		return fmt.Errorf("%w: kind %q already registered", domain.ErrInvalidCatalog, kind)
	}
	if props.BaseCapacity < 0 {
		return fmt.Errorf("%w: kind %q has negative base capacity", domain.ErrInvalidCatalog, kind)
	}

	entry := &kindEntry{
		props:  props,
		defs:   make([]domain.Definition, 0, len(defs)),
		byName: make(map[string]int, len(defs)),
	}

	var seen domain.Code
	for _, def := range defs {
		if def.Kind != kind {
			return fmt.Errorf("%w: definition %q declares kind %q, registered under %q",
				domain.ErrInvalidCatalog, def.Name, def.Kind, kind)
		}
		if def.Name == "" {
			return fmt.Errorf("%w: kind %q has a definition with an empty name", domain.ErrInvalidCatalog, kind)
		}
		if def.Bit == 0 || def.Bit&(def.Bit-1) != 0 {
			return fmt.Errorf("%w: attachment %q bit %#x is not a power of two",
				domain.ErrInvalidCatalog, def.Name, def.Bit)
		}
		if seen&def.Bit != 0 {
			return fmt.Errorf("%w: attachment %q reuses bit %#x",
				domain.ErrInvalidCatalog, def.Name, def.Bit)
		}
		if _, dup := entry.byName[def.Name]; dup {
			return fmt.Errorf("%w: duplicate attachment name %q", domain.ErrInvalidCatalog, def.Name)
		}

		seen |= def.Bit
		if def.Baseline {
			entry.base |= def.Bit
		}
		entry.byName[def.Name] = len(entry.defs)
		entry.defs = append(entry.defs, def)
	}

	c.kinds[kind] = entry
	return nil
}

// Kinds returns all registered kinds, in no particular order.
func (c *Catalog) Kinds() []domain.Kind {
	kinds := make([]domain.Kind, 0, len(c.kinds))
	for kind := range c.kinds {
		kinds = append(kinds, kind)
	}
	return kinds
}

// Registered reports whether the kind has a definition set installed.
func (c *Catalog) Registered(kind domain.Kind) bool {
	_, ok := c.kinds[kind]
	return ok
}

// Lookup resolves an attachment by name within a kind.
func (c *Catalog) Lookup(kind domain.Kind, name string) (domain.Definition, error) {
	entry, ok := c.kinds[kind]
	if !ok {
		return domain.Definition{}, fmt.Errorf("%w: %q", domain.ErrKindNotFound, kind)
	}
	i, ok := entry.byName[name]
	if !ok {
		return domain.Definition{}, fmt.Errorf("%w: %q on kind %q", domain.ErrAttachmentNotFound, name, kind)
	}
	return entry.defs[i], nil
}

// BaseCode returns the bitwise OR of all baseline definitions for the kind.
// Unregistered kinds have an empty base code.
func (c *Catalog) BaseCode(kind domain.Kind) domain.Code {
	entry, ok := c.kinds[kind]
	if !ok {
		return 0
	}
	return entry.base
}

// AllDefinitions returns the kind's definitions in registration order.
// The returned slice is a copy; callers may not mutate catalog state.
func (c *Catalog) AllDefinitions(kind domain.Kind) []domain.Definition {
	entry, ok := c.kinds[kind]
	if !ok {
		return nil
	}
	defs := make([]domain.Definition, len(entry.defs))
	copy(defs, entry.defs)
	return defs
}

// Props returns the per-kind properties.
func (c *Catalog) Props(kind domain.Kind) (domain.KindProps, error) {
	entry, ok := c.kinds[kind]
	if !ok {
		return domain.KindProps{}, fmt.Errorf("%w: %q", domain.ErrKindNotFound, kind)
	}
	return entry.props, nil
}

// Automatic reports whether the kind supports fire-rate/recoil tuning.
func (c *Catalog) Automatic(kind domain.Kind) bool {
	entry, ok := c.kinds[kind]
	return ok && entry.props.Automatic
}

// MaxCapacity returns the effective magazine capacity for a kind under the
// given attachment code: base capacity plus the capacity deltas of every
// enabled definition, floored at zero.
func (c *Catalog) MaxCapacity(kind domain.Kind, code domain.Code) int {
	entry, ok := c.kinds[kind]
	if !ok {
		return 0
	}
	capacity := entry.props.BaseCapacity
	for _, def := range entry.defs {
		if code.Has(def.Bit) {
			capacity += def.CapacityDelta
		}
	}
	if capacity < 0 {
		return 0
	}
	return capacity
}
