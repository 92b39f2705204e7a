// Package metrics provides optional Prometheus instrumentation for the
// helpdesk client transport.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Collector records backend exchanges as Prometheus metrics. Wire it in via
// the client configuration's Metrics field.
type Collector struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewCollector creates a collector and registers its metrics with reg. Pass
// prometheus.DefaultRegisterer for the process-wide registry.
func NewCollector(reg prometheus.Registerer) (*Collector, error) {
	c := &Collector{
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "helpdesk_client_requests_total",
				Help: "Total number of requests sent to the helpdesk backend",
			},
			[]string{"action", "status"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "helpdesk_client_request_duration_seconds",
				Help:    "Duration of helpdesk backend requests",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"action"},
		),
	}

	for _, collector := range []prometheus.Collector{c.requests, c.duration} {
		if err := reg.Register(collector); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// ObserveRequest records one completed exchange. Transport failures arrive
// with status code 0 and count under the error status.
func (c *Collector) ObserveRequest(action string, statusCode int, duration time.Duration) {
	status := "error"
	if statusCode > 0 {
		status = strconv.Itoa(statusCode)
	}
	c.requests.WithLabelValues(action, status).Inc()
	if statusCode > 0 {
		c.duration.WithLabelValues(action).Observe(duration.Seconds())
	}
}
