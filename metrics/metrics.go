// Package metrics exposes the seed queues' telemetry through
// github.com/funkygao/go-metrics, the same registry the teacher's
// cmd/kguard watchers report through (see cmd/kguard/watchers/kateway/sub.go,
// which registers gauges via metrics.NewRegisteredGauge). Telemetry here
// is observational only - nothing in the queue packages branches on a
// metric's value.
package metrics

import (
	metrics "github.com/funkygao/go-metrics"
)

// Tiers is the set of gauges and counters a two-tier queue (concolic or
// rand-fuzz) reports: current tier sizes, cumulative dequeue counts per
// tier, and the cumulative count of seeds removed by minimization.
type Tiers struct {
	FavoredSize metrics.Gauge
	NormalSize  metrics.Gauge

	FavoredDequeues metrics.Counter
	NormalDequeues  metrics.Counter

	Removed metrics.Counter
}

// NewTiers registers a Tiers set under the default registry, prefixing
// every metric name with name (e.g. "concolic", "randfuzz") so the two
// loops' telemetry does not collide.
func NewTiers(name string) *Tiers {
	return &Tiers{
		FavoredSize:     metrics.NewRegisteredGauge(name+".favored.size", nil),
		NormalSize:      metrics.NewRegisteredGauge(name+".normal.size", nil),
		FavoredDequeues: metrics.NewRegisteredCounter(name+".favored.dequeues", nil),
		NormalDequeues:  metrics.NewRegisteredCounter(name+".normal.dequeues", nil),
		Removed:         metrics.NewRegisteredCounter(name+".removed", nil),
	}
}
