package metrics

import (
	"context"

	"github.com/osse101/LoadoutBot_Go/internal/event"
)

// EventMetricsCollector subscribes to events and records metrics
type EventMetricsCollector struct{}

// NewEventMetricsCollector creates a new event metrics collector
func NewEventMetricsCollector() *EventMetricsCollector {
	return &EventMetricsCollector{}
}

// Register subscribes to all event types the collector tracks
func (e *EventMetricsCollector) Register(bus event.Bus) {
	eventTypes := []event.Type{
		event.AttachmentAdded,
		event.AttachmentRemoved,
		event.LoadoutCleared,
		event.PreferenceSaved,
		event.PreferenceCleared,
		event.WeaponIssued,
		event.WeaponHandover,
		event.WeaponDropped,
	}

	for _, eventType := range eventTypes {
		bus.Subscribe(eventType, e.HandleEvent)
	}
}

// HandleEvent processes events and updates metrics
func (e *EventMetricsCollector) HandleEvent(ctx context.Context, evt event.Event) error {
	EventsPublished.WithLabelValues(string(evt.Type)).Inc()

	switch evt.Type {
	case event.AttachmentAdded:
		if p, ok := evt.Payload.(event.AttachmentPayloadV1); ok {
			AttachmentsAdded.WithLabelValues(string(p.Kind), p.Attachment).Inc()
		}
	case event.AttachmentRemoved:
		if p, ok := evt.Payload.(event.AttachmentPayloadV1); ok {
			AttachmentsRemoved.WithLabelValues(string(p.Kind), p.Attachment).Inc()
		}
	case event.LoadoutCleared:
		if p, ok := evt.Payload.(event.AttachmentPayloadV1); ok {
			LoadoutsCleared.WithLabelValues(string(p.Kind)).Inc()
		}
	case event.PreferenceSaved:
		if p, ok := evt.Payload.(event.PreferencePayloadV1); ok {
			PreferencesSaved.WithLabelValues(string(p.Kind)).Inc()
		}
	case event.PreferenceCleared:
		PreferencesCleared.Inc()
	case event.WeaponIssued:
		if p, ok := evt.Payload.(event.WeaponPayloadV1); ok {
			WeaponsIssued.WithLabelValues(string(p.Kind)).Inc()
		}
	case event.WeaponHandover:
		if p, ok := evt.Payload.(event.HandoverPayloadV1); ok {
			WeaponHandovers.WithLabelValues(string(p.Kind)).Inc()
		}
	}

	return nil
}
