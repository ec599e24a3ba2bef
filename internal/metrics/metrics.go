package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ChatTurnsProcessed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "qualifier_chat_turns_total",
			Help: "Total number of chat turns processed",
		},
	)

	QualificationsCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "qualifier_qualifications_completed_total",
			Help: "Total number of terminal qualification records by outcome",
		},
		[]string{"outcome"},
	)

	CapabilityFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "qualifier_capability_failures_total",
			Help: "Total number of degraded LLM capability calls",
		},
		[]string{"capability"},
	)

	CapabilityDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "qualifier_capability_duration_seconds",
			Help: "Duration of LLM capability calls in seconds",
		},
		[]string{"capability"},
	)

	ActiveConversations = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "qualifier_active_conversations",
			Help: "Number of conversations currently held in the store",
		},
	)
)
