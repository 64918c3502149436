// Package metrics holds the prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "greenhouse"

// Simulation outcomes.
const (
	OutcomeOK      = "ok"
	OutcomeInvalid = "invalid"
	OutcomeError   = "error"
)

var (
	// Simulations counts annual simulations by outcome.
	Simulations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "simulations_total",
			Help:      "Annual simulations served, by outcome",
		},
		[]string{"outcome"},
	)

	// CacheLookups counts simulation cache lookups, result is hit or miss.
	CacheLookups = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "simulation_cache_lookups_total",
			Help:      "Simulation cache lookups, by result",
		},
		[]string{"result"},
	)

	// Diagnostics counts warnings attached to simulation results.
	Diagnostics = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "simulation_diagnostics_total",
			Help:      "Diagnostics attached to simulation results, by code",
		},
		[]string{"code"},
	)

	// SweepPoints counts evaluated sweep points.
	SweepPoints = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sweep_points_total",
			Help:      "Sweep points evaluated, by variable and status",
		},
		[]string{"variable", "status"},
	)

	// SweepDuration observes wall time of whole sweeps.
	SweepDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "sweep_duration_seconds",
			Help:      "Wall time of design sweeps",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 14),
		},
		[]string{"variable"},
	)
)

func init() {
	prometheus.MustRegister(Simulations)
	prometheus.MustRegister(CacheLookups)
	prometheus.MustRegister(Diagnostics)
	prometheus.MustRegister(SweepPoints)
	prometheus.MustRegister(SweepDuration)
}

// ObserveCache records a cache lookup.
func ObserveCache(hit bool) {
	if hit {
		CacheLookups.WithLabelValues("hit").Inc()
		return
	}
	CacheLookups.WithLabelValues("miss").Inc()
}

// ObservePoint records one evaluated sweep point.
func ObservePoint(variable string, ok bool) {
	status := "ok"
	if !ok {
		status = "failed"
	}
	SweepPoints.WithLabelValues(variable, status).Inc()
}
