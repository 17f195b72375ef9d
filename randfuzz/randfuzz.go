// Package randfuzz implements the probabilistic two-tier queue that
// drives the random fuzzing loop: a favored github.com/funkygao/fuzzqueue/durableq
// queue, re-sampled with replacement, and a normal
// github.com/funkygao/fuzzqueue/filequeue overflow. It also owns the
// periodic greedy minimization of the favored tier (package cover).
package randfuzz

import (
	"math/rand"

	"github.com/funkygao/golib/sync2"

	"github.com/funkygao/fuzzqueue/cover"
	"github.com/funkygao/fuzzqueue/durableq"
	"github.com/funkygao/fuzzqueue/filequeue"
	"github.com/funkygao/fuzzqueue/metrics"
	"github.com/funkygao/fuzzqueue/seedq"
	"github.com/funkygao/fuzzqueue/seedqlog"
)

const normalQueueName = "rand-seed"

// Queue is the random loop's seed source.
type Queue[Seed any, Node comparable] struct {
	favored durableq.Queue[Seed]
	normal  filequeue.Queue

	codec                seedq.Codec[Seed]
	nodeSet              seedq.NodeSetFunc[Seed, Node]
	eq                   func(a, b Seed) bool
	favoredSeedProb      float64
	seedCullingThreshold float64

	lastMinimizedCount int
	removeCount        sync2.AtomicInt64

	metrics *metrics.Tiers

	// rng returns a uniform draw in [0,1); overridable for deterministic
	// tests (testable property §8.7 requires a controlled random draw).
	rng func() float64
}

// Config bundles a Queue's fixed-at-initialization tunables (§6).
type Config[Seed any, Node comparable] struct {
	DurableQueueMaxSize  int
	FileQueueMaxSize     int
	FavoredSeedProb      float64
	SeedCullingThreshold float64

	Codec   seedq.Codec[Seed]
	NodeSet seedq.NodeSetFunc[Seed, Node]
	// Equal compares two seeds for equality, used to guard DurableQueue
	// removal against state corruption.
	Equal func(a, b Seed) bool
	// DummySeed seeds the durable array's sentinel when no snapshot
	// exists yet; it is never observable through Fetch.
	DummySeed Seed
}

// New loads the favored durable queue from favoredSnapshotPath if it
// exists, else allocates it with cfg.DummySeed as the array sentinel,
// and opens or creates the normal tier's directory under queueDir.
func New[Seed any, Node comparable](queueDir, favoredSnapshotPath string, cfg Config[Seed, Node]) (Queue[Seed, Node], error) {
	favored, err := durableq.Load(favoredSnapshotPath, cfg.DurableQueueMaxSize, cfg.DummySeed, durableq.NewSnapshotCodec(cfg.Codec))
	if err != nil {
		return Queue[Seed, Node]{}, err
	}

	normal, err := filequeue.Initialize(normalQueueName, queueDir, cfg.FileQueueMaxSize)
	if err != nil {
		return Queue[Seed, Node]{}, err
	}

	seedqlog.Logger.Info("randfuzz: opened queue dir=%s favored=%d normal=%d", queueDir, favored.Size(), normal.Size())

	return Queue[Seed, Node]{
		favored:              favored,
		normal:               normal,
		codec:                cfg.Codec,
		nodeSet:              cfg.NodeSet,
		eq:                   cfg.Equal,
		favoredSeedProb:      cfg.FavoredSeedProb,
		seedCullingThreshold: cfg.SeedCullingThreshold,
		metrics:              metrics.NewTiers("randfuzz"),
		rng:                  rand.Float64,
	}, nil
}

// WithRNG overrides the uniform random source, e.g. with a fixed
// sequence in tests.
func (q Queue[Seed, Node]) WithRNG(rng func() float64) Queue[Seed, Node] {
	q.rng = rng
	return q
}

// Save snapshots the favored tier to path.
func (q Queue[Seed, Node]) Save(path string) error {
	return q.favored.Save(path, durableq.NewSnapshotCodec(q.codec))
}

// FavoredSize returns the favored tier's current live-element count.
func (q Queue[Seed, Node]) FavoredSize() int {
	return q.favored.Size()
}

// RemoveCount returns the cumulative number of seeds removed across all
// minimizations - telemetry only, not load-bearing for any decision.
func (q Queue[Seed, Node]) RemoveCount() int64 {
	return q.removeCount.Get()
}

// Enqueue dispatches identically to concolic.Queue: Favored appends to
// the durable array (silently dropped on overflow), Normal spills a
// serialized seed to disk.
func (q Queue[Seed, Node]) Enqueue(priority seedq.Priority, seed Seed) (Queue[Seed, Node], error) {
	if priority == seedq.Favored {
		q.favored = q.favored.Enqueue(seed)
		q.metrics.FavoredSize.Update(int64(q.favored.Size()))
		return q, nil
	}

	b, err := q.codec.Pickle(seed)
	if err != nil {
		return q, err
	}
	normal, err := q.normal.Enqueue(b)
	if err != nil {
		return q, err
	}
	q.normal = normal
	q.metrics.NormalSize.Update(int64(q.normal.Size()))
	return q, nil
}

// Dequeue picks Favored whenever Normal is empty; otherwise it draws a
// uniform random u and picks Favored when u < FavoredSeedProb, else
// Normal. The Favored path uses Fetch (non-consuming, round-robin); the
// Normal path uses Dequeue (consuming) and deserializes.
func (q Queue[Seed, Node]) Dequeue() (seedq.Priority, Seed, Queue[Seed, Node], error) {
	var zero Seed

	tier := seedq.Favored
	if !q.normal.IsEmpty() {
		if q.rng() >= q.favoredSeedProb {
			tier = seedq.Normal
		}
	}

	if tier == seedq.Favored {
		seed, favored, err := q.favored.Fetch()
		if err != nil {
			return tier, zero, q, err
		}
		q.favored = favored
		q.metrics.FavoredDequeues.Inc(1)
		return tier, seed, q, nil
	}

	b, normal, err := q.normal.Dequeue()
	if err != nil {
		return tier, zero, q, err
	}
	q.normal = normal
	q.metrics.NormalSize.Update(int64(q.normal.Size()))
	seed, err := q.codec.UnPickle(b)
	if err != nil {
		return tier, zero, q, err
	}
	q.metrics.NormalDequeues.Inc(1)
	return tier, seed, q, nil
}

// TimeToMinimize reports whether the favored tier has grown enough
// since the last minimization to warrant another pass. A never-minimized
// queue (lastMinimizedCount == 0) triggers as soon as any seed exists.
func (q Queue[Seed, Node]) TimeToMinimize() bool {
	return float64(q.favored.Size()) > float64(q.lastMinimizedCount)*q.seedCullingThreshold
}

// Minimize consults the coverage oracle once per live favored seed,
// runs the greedy set-cover reduction (package cover), and removes every
// redundant seed from the favored durable queue in descending index
// order so earlier removals never invalidate later indices. It updates
// lastMinimizedCount to the post-removal size and accumulates
// removeCount.
func (q Queue[Seed, Node]) Minimize() (Queue[Seed, Node], error) {
	live := q.favored.Elements()
	entries := make([]cover.Entry[Seed, Node], 0, len(live))
	for _, e := range live {
		nodes, err := q.nodeSet(e.Elem)
		if err != nil {
			return q, err
		}
		entries = append(entries, cover.Entry[Seed, Node]{Index: e.Index, Seed: e.Elem, Nodes: nodes})
	}

	redundant := cover.Minimize(entries)

	sortDescendingByIndex(redundant)

	for _, r := range redundant {
		favored, err := q.favored.Remove(durableq.Removal[Seed]{Index: r.Index, Elem: r.Seed}, q.eq)
		if err != nil {
			return q, err
		}
		q.favored = favored
	}

	q.lastMinimizedCount = q.favored.Size()
	q.removeCount.Add(int64(len(redundant)))
	q.metrics.Removed.Inc(int64(len(redundant)))
	q.metrics.FavoredSize.Update(int64(q.favored.Size()))

	seedqlog.Logger.Info("randfuzz: minimized favored tier, removed=%d remaining=%d", len(redundant), q.favored.Size())

	return q, nil
}

func sortDescendingByIndex[Seed any, Node comparable](entries []cover.Entry[Seed, Node]) {
	for i := 1; i < len(entries); i++ {
		for j := i; j > 0 && entries[j-1].Index < entries[j].Index; j-- {
			entries[j-1], entries[j] = entries[j], entries[j-1]
		}
	}
}
