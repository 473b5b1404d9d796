package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// UpdatesRouted counts inbound updates by the route they took.
	UpdatesRouted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tzbot_updates_total",
			Help: "The total number of inbound updates, by route.",
		},
		[]string{"route"},
	)

	// TimezoneSaves counts upsert outcomes on the location path.
	TimezoneSaves = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tzbot_timezone_saves_total",
			Help: "The total number of timezone saves, by result.",
		},
		[]string{"result"},
	)

	DeliveryFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "tzbot_delivery_failures_total",
			Help: "The total number of outbound messages the transport failed to send.",
		},
	)
)
