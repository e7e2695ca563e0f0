// Package preference holds each owner's remembered attachment code per
// weapon kind so it can be reapplied on respawn or re-acquisition. The store
// is a runtime cache keyed by live owner identity; nothing here survives a
// process restart.
package preference

import (
	"sync"

	"github.com/osse101/LoadoutBot_Go/internal/catalog"
	"github.com/osse101/LoadoutBot_Go/internal/domain"
)

// Store maps ownerID -> (kind -> code). Inner maps are created lazily on
// first write and are independent per owner. Absent entries read as the
// kind's base code, so callers never need existence checks.
//
// Reads may run concurrently across owners; writes to a single owner's
// entries are expected to be serialized by the host. The RWMutex covers the
// outer map so concurrent owner processing stays safe without per-owner
// locking.
type Store struct {
	mu     sync.RWMutex
	owners map[string]map[domain.Kind]domain.Code
	cat    *catalog.Catalog
}

// NewStore creates an empty preference store backed by the catalog's base
// codes.
func NewStore(cat *catalog.Catalog) *Store {
	return &Store{
		owners: make(map[string]map[domain.Kind]domain.Code),
		cat:    cat,
	}
}

// Set upserts the owner's preferred code for a kind. Last write wins;
// there is no versioning.
func (s *Store) Set(ownerID string, kind domain.Kind, code domain.Code) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, ok := s.owners[ownerID]
	if !ok {
		entries = make(map[domain.Kind]domain.Code)
		s.owners[ownerID] = entries
	}
	entries[kind] = code
}

// Preference returns the owner's remembered code for a kind, or the kind's
// base code when no preference is stored.
func (s *Store) Preference(ownerID string, kind domain.Kind) domain.Code {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if entries, ok := s.owners[ownerID]; ok {
		if code, ok := entries[kind]; ok {
			return code
		}
	}
	return s.cat.BaseCode(kind)
}

// Preferences returns a defensive copy of the owner's stored entries.
// Mutating the result never affects store state.
func (s *Store) Preferences(ownerID string) map[domain.Kind]domain.Code {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries := s.owners[ownerID]
	out := make(map[domain.Kind]domain.Code, len(entries))
	for kind, code := range entries {
		out[kind] = code
	}
	return out
}

// Clear resets the owner's entry for a kind to the base code. The key is
// kept rather than deleted so subsequent reads stay well-defined.
func (s *Store) Clear(ownerID string, kind domain.Kind) {
	s.Set(ownerID, kind, s.cat.BaseCode(kind))
}

// ClearAll resets every stored entry for the owner to its kind's base code.
func (s *Store) ClearAll(ownerID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for kind := range s.owners[ownerID] {
		s.owners[ownerID][kind] = s.cat.BaseCode(kind)
	}
}

// SetBulk applies Set over the Cartesian product of owners and kinds.
// Each application is independent; iteration order is unspecified.
func (s *Store) SetBulk(ownerIDs []string, kinds []domain.Kind, code domain.Code) {
	for _, ownerID := range ownerIDs {
		for _, kind := range kinds {
			s.Set(ownerID, kind, code)
		}
	}
}

// ClearBulk applies Clear over the Cartesian product of owners and kinds.
func (s *Store) ClearBulk(ownerIDs []string, kinds []domain.Kind) {
	for _, ownerID := range ownerIDs {
		for _, kind := range kinds {
			s.Clear(ownerID, kind)
		}
	}
}

// DropOwner removes an owner's mapping entirely. Called by the host when
// the owner's session ends.
func (s *Store) DropOwner(ownerID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.owners, ownerID)
}

// OwnerCount returns the number of owners with stored mappings.
func (s *Store) OwnerCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.owners)
}
