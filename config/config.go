// Package config loads the seed queues' tunables (§6) from a jsconf
// file, the way the teacher's ctx package loads gafka's operator config
// via github.com/funkygao/jsconf (see ctx/load.go). This is deliberately
// outside the queue core: spec.md places "CLI/configuration loading"
// among the core's external collaborators, so the core packages
// (concolic, randfuzz) only ever see a populated Tunables value.
package config

import (
	jsconf "github.com/funkygao/jsconf"
)

// Tunables are the fixed-at-initialization knobs spec.md §6 names.
type Tunables struct {
	// DurableQueueMaxSize is the rand-fuzz favored tier's CAP.
	DurableQueueMaxSize int
	// FileQueueMaxSize bounds both queues' normal-tier overflow.
	FileQueueMaxSize int
	// FavoredSeedProb is the rand-fuzz favored-tier draw probability.
	FavoredSeedProb float64
	// SeedCullingThreshold gates randfuzz.Queue.TimeToMinimize.
	SeedCullingThreshold float64

	// ConcolicQueueDir and RandQueueDir root the two loops' normal-tier
	// overflow directories; they must be distinct, since each loop owns
	// its directory exclusively (spec.md §5).
	ConcolicQueueDir string
	RandQueueDir     string

	// ConcolicFavoredSnapshot and RandFavoredSnapshot are the paths the
	// two loops' favored tiers are saved to and loaded from.
	ConcolicFavoredSnapshot string
	RandFavoredSnapshot     string
}

// Defaults mirror the values spec.md's design notes use as examples:
// CAP=100, FavoredSeedProb=0.8, SeedCullingThreshold=2.0.
func Defaults() Tunables {
	return Tunables{
		DurableQueueMaxSize:  100,
		FileQueueMaxSize:     10000,
		FavoredSeedProb:      0.8,
		SeedCullingThreshold: 2.0,
	}
}

// Load reads fn as jsconf (JSON with comments) and overlays it onto
// Defaults. A missing key keeps its default.
func Load(fn string) (Tunables, error) {
	t := Defaults()

	cf, err := jsconf.Load(fn)
	if err != nil {
		return Tunables{}, err
	}

	t.DurableQueueMaxSize = cf.Int("durable_queue_max_size", t.DurableQueueMaxSize)
	t.FileQueueMaxSize = cf.Int("file_queue_max_size", t.FileQueueMaxSize)
	t.FavoredSeedProb = cf.Float64("favored_seed_prob", t.FavoredSeedProb)
	t.SeedCullingThreshold = cf.Float64("seed_culling_threshold", t.SeedCullingThreshold)
	t.ConcolicQueueDir = cf.String("concolic_queue_dir", t.ConcolicQueueDir)
	t.RandQueueDir = cf.String("rand_queue_dir", t.RandQueueDir)
	t.ConcolicFavoredSnapshot = cf.String("concolic_favored_snapshot", t.ConcolicFavoredSnapshot)
	t.RandFavoredSnapshot = cf.String("rand_favored_snapshot", t.RandFavoredSnapshot)

	return t, nil
}
