package event

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/osse101/LoadoutBot_Go/internal/domain"
)

// Type represents the type of an event
type Type string

// Event represents a generic event in the system
type Event struct {
	Version string      `json:"version"` // Event schema version (e.g., "1.0")
	Type    Type        `json:"type"`
	Payload interface{} `json:"payload"`
}

// Common event types
const (
	AttachmentAdded   Type = "attachment.added"
	AttachmentRemoved Type = "attachment.removed"
	LoadoutCleared    Type = "loadout.cleared"
	PreferenceSaved   Type = "preference.saved"
	PreferenceCleared Type = "preference.cleared"
	WeaponIssued      Type = "weapon.issued"
	WeaponHandover    Type = "weapon.handover"
	WeaponDropped     Type = "weapon.dropped"
)

// Typed event payloads for type safety

// AttachmentPayloadV1 is the typed payload for attachment add/remove events
type AttachmentPayloadV1 struct {
	OwnerID    string      `json:"owner_id"`
	Kind       domain.Kind `json:"kind"`
	Attachment string      `json:"attachment,omitempty"`
	Slot       domain.Slot `json:"slot,omitempty"`
	Code       domain.Code `json:"code"`
	Timestamp  int64       `json:"timestamp"`
}

// PreferencePayloadV1 is the typed payload for preference events
type PreferencePayloadV1 struct {
	OwnerID   string      `json:"owner_id"`
	Kind      domain.Kind `json:"kind,omitempty"`
	Code      domain.Code `json:"code"`
	Timestamp int64       `json:"timestamp"`
}

// HandoverPayloadV1 is the typed payload for ownership transfer events
type HandoverPayloadV1 struct {
	FromOwnerID string      `json:"from_owner_id"`
	ToOwnerID   string      `json:"to_owner_id"`
	Kind        domain.Kind `json:"kind"`
	Code        domain.Code `json:"code"`
	Timestamp   int64       `json:"timestamp"`
}

// WeaponPayloadV1 is the typed payload for issue/drop events
type WeaponPayloadV1 struct {
	OwnerID   string          `json:"owner_id"`
	Kind      domain.Kind     `json:"kind"`
	Code      domain.Code     `json:"code"`
	Ammo      int             `json:"ammo"`
	Snapshot  domain.Snapshot `json:"snapshot"`
	Timestamp int64           `json:"timestamp"`
}

// Type-safe event constructors

// NewAttachmentAddedEvent creates a new attachment added event
func NewAttachmentAddedEvent(ownerID string, kind domain.Kind, name string, slot domain.Slot, code domain.Code) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    AttachmentAdded,
		Payload: AttachmentPayloadV1{
			OwnerID:    ownerID,
			Kind:       kind,
			Attachment: name,
			Slot:       slot,
			Code:       code,
			Timestamp:  time.Now().Unix(),
		},
	}
}

// NewAttachmentRemovedEvent creates a new attachment removed event
func NewAttachmentRemovedEvent(ownerID string, kind domain.Kind, name string, slot domain.Slot, code domain.Code) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    AttachmentRemoved,
		Payload: AttachmentPayloadV1{
			OwnerID:    ownerID,
			Kind:       kind,
			Attachment: name,
			Slot:       slot,
			Code:       code,
			Timestamp:  time.Now().Unix(),
		},
	}
}

// NewLoadoutClearedEvent creates a new loadout cleared event
func NewLoadoutClearedEvent(ownerID string, kind domain.Kind, code domain.Code) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    LoadoutCleared,
		Payload: AttachmentPayloadV1{
			OwnerID:   ownerID,
			Kind:      kind,
			Code:      code,
			Timestamp: time.Now().Unix(),
		},
	}
}

// NewPreferenceSavedEvent creates a new preference saved event
func NewPreferenceSavedEvent(ownerID string, kind domain.Kind, code domain.Code) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    PreferenceSaved,
		Payload: PreferencePayloadV1{
			OwnerID:   ownerID,
			Kind:      kind,
			Code:      code,
			Timestamp: time.Now().Unix(),
		},
	}
}

// NewPreferenceClearedEvent creates a new preference cleared event
func NewPreferenceClearedEvent(ownerID string, kind domain.Kind, code domain.Code) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    PreferenceCleared,
		Payload: PreferencePayloadV1{
			OwnerID:   ownerID,
			Kind:      kind,
			Code:      code,
			Timestamp: time.Now().Unix(),
		},
	}
}

// NewWeaponIssuedEvent creates a new weapon issued event
func NewWeaponIssuedEvent(ownerID string, snap domain.Snapshot) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    WeaponIssued,
		Payload: WeaponPayloadV1{
			OwnerID:   ownerID,
			Kind:      snap.Kind,
			Code:      snap.Code,
			Ammo:      snap.Ammo,
			Snapshot:  snap,
			Timestamp: time.Now().Unix(),
		},
	}
}

// NewWeaponDroppedEvent creates a new weapon dropped event
func NewWeaponDroppedEvent(ownerID string, snap domain.Snapshot) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    WeaponDropped,
		Payload: WeaponPayloadV1{
			OwnerID:   ownerID,
			Kind:      snap.Kind,
			Code:      snap.Code,
			Ammo:      snap.Ammo,
			Snapshot:  snap,
			Timestamp: time.Now().Unix(),
		},
	}
}

// NewWeaponHandoverEvent creates a new ownership transfer event
func NewWeaponHandoverEvent(fromOwnerID, toOwnerID string, kind domain.Kind, code domain.Code) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    WeaponHandover,
		Payload: HandoverPayloadV1{
			FromOwnerID: fromOwnerID,
			ToOwnerID:   toOwnerID,
			Kind:        kind,
			Code:        code,
			Timestamp:   time.Now().Unix(),
		},
	}
}

// Handler is a function that handles an event
type Handler func(ctx context.Context, event Event) error

// Bus defines the interface for an event bus
type Bus interface {
	Publish(ctx context.Context, event Event) error
	Subscribe(eventType Type, handler Handler)
}

// MemoryBus is an in-memory implementation of the Event Bus
type MemoryBus struct {
	handlers map[Type][]Handler
	mu       sync.RWMutex
}

// NewMemoryBus creates a new MemoryBus
func NewMemoryBus() *MemoryBus {
	return &MemoryBus{
		handlers: make(map[Type][]Handler),
	}
}

// Publish publishes an event to all subscribers synchronously.
func (b *MemoryBus) Publish(ctx context.Context, event Event) error {
	b.mu.RLock()
	handlers, ok := b.handlers[event.Type]
	b.mu.RUnlock()

	if !ok {
		return nil
	}

	var errs []error
	for _, handler := range handlers {
		if err := handler(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf(LogMsgHandlerErrorFormat, len(errs), event.Type, errs)
	}

	return nil
}

// Subscribe subscribes a handler to an event type
func (b *MemoryBus) Subscribe(eventType Type, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)
}
