package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	AccessEvents = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "acs",
		Name:      "access_events_total",
		Help:      "Total access events appended to the audit log",
	}, []string{"method", "result"})

	UnknownIdentityEvents = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "acs",
		Name:      "unknown_identity_events_total",
		Help:      "Access events whose identity could not be resolved",
	}, []string{"method"})

	ProtocolQueries = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "acs",
		Name:      "protocol_queries_total",
		Help:      "Legacy record-finder queries served",
	}, []string{"encoding"})

	EnrollmentTemplates = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "acs",
		Name:      "enrollment_templates_total",
		Help:      "Face templates persisted by the enrollment gateway",
	})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "acs",
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request duration",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	WSConnections = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "acs",
		Name:      "ws_connections",
		Help:      "Number of active WebSocket connections",
	})
)
