package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Backend API Metrics
var (
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameAPIRequestsTotal,
			Help: HelpTextAPIRequestsTotal,
		},
		[]string{LabelMethod, LabelRoute, LabelStatus},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameAPIRequestDuration,
			Help:    HelpTextAPIRequestDuration,
			Buckets: APILatencyBuckets,
		},
		[]string{LabelMethod, LabelRoute},
	)

	APIRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameAPIRequestsInFlight,
			Help: HelpTextAPIRequestsInFlight,
		},
	)
)

// Front end Metrics
var (
	CommandsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameCommandsTotal,
			Help: HelpTextCommandsTotal,
		},
		[]string{LabelFrontend, LabelCommand},
	)

	ConfirmationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameConfirmationsTotal,
			Help: HelpTextConfirmationsTotal,
		},
		[]string{LabelOutcome},
	)

	ActiveSessions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameActiveSessions,
			Help: HelpTextActiveSessions,
		},
	)
)

// RecordConfirmation counts a confirmation prompt answer.
func RecordConfirmation(confirmed bool) {
	outcome := OutcomeDeclined
	if confirmed {
		outcome = OutcomeConfirmed
	}
	ConfirmationsTotal.WithLabelValues(outcome).Inc()
}
