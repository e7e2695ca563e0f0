package weapon

import "github.com/osse101/LoadoutBot_Go/internal/domain"

// DerivationFunc rebuilds the owner-dependent subsystem for one weapon kind
// when ownership changes. The ownership collaborator registers one per kind
// at startup; the core never inspects what it does.
type DerivationFunc func(oldOwner, newOwner string, snap domain.Snapshot) error

// DerivationRegistry maps weapon kinds to their ownership derivation rules.
// Populated once at startup, read-only afterwards.
type DerivationRegistry struct {
	rules map[domain.Kind]DerivationFunc
}

// NewDerivationRegistry creates an empty registry.
func NewDerivationRegistry() *DerivationRegistry {
	return &DerivationRegistry{rules: make(map[domain.Kind]DerivationFunc)}
}

// Register installs the derivation rule for a kind, replacing any prior rule.
func (r *DerivationRegistry) Register(kind domain.Kind, fn DerivationFunc) {
	r.rules[kind] = fn
}

// Lookup returns the rule for a kind.
func (r *DerivationRegistry) Lookup(kind domain.Kind) (DerivationFunc, bool) {
	if r == nil {
		return nil, false
	}
	fn, ok := r.rules[kind]
	return fn, ok
}
