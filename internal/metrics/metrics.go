package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameHTTPRequestsTotal,
			Help: HelpTextHTTPRequestsTotal,
		},
		[]string{LabelMethod, LabelPath, LabelStatus},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameHTTPRequestDuration,
			Help:    HelpTextHTTPRequestDuration,
			Buckets: HTTPLatencyBuckets,
		},
		[]string{LabelMethod, LabelPath},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameHTTPRequestsInFlight,
			Help: HelpTextHTTPRequestsInFlight,
		},
	)
)

// Event Metrics
var (
	EventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEventsPublished,
			Help: HelpTextEventsPublished,
		},
		[]string{LabelType},
	)

	EventHandlerErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEventHandlerErrors,
			Help: HelpTextEventHandlerErrors,
		},
		[]string{LabelType},
	)
)

// Business Metrics
var (
	AttachmentsAdded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameAttachmentsAdded,
			Help: HelpTextAttachmentsAdded,
		},
		[]string{LabelKind, LabelAttachment},
	)

	AttachmentsRemoved = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameAttachmentsRemoved,
			Help: HelpTextAttachmentsRemoved,
		},
		[]string{LabelKind, LabelAttachment},
	)

	LoadoutsCleared = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameLoadoutsCleared,
			Help: HelpTextLoadoutsCleared,
		},
		[]string{LabelKind},
	)

	PreferencesSaved = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNamePreferencesSaved,
			Help: HelpTextPreferencesSaved,
		},
		[]string{LabelKind},
	)

	PreferencesCleared = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNamePreferencesCleared,
			Help: HelpTextPreferencesCleared,
		},
	)

	WeaponsIssued = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameWeaponsIssued,
			Help: HelpTextWeaponsIssued,
		},
		[]string{LabelKind},
	)

	WeaponHandovers = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameWeaponHandovers,
			Help: HelpTextWeaponHandovers,
		},
		[]string{LabelKind},
	)
)
