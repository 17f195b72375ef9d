// Package concolic implements the strict-priority two-tier queue that
// drives the concolic fuzzing loop: a favored github.com/funkygao/fuzzqueue/pureue
// queue in memory, and a normal github.com/funkygao/fuzzqueue/filequeue
// overflow on disk. Each seed is consumed at most once, favored-first.
package concolic

import (
	"github.com/funkygao/fuzzqueue/filequeue"
	"github.com/funkygao/fuzzqueue/metrics"
	"github.com/funkygao/fuzzqueue/pureue"
	"github.com/funkygao/fuzzqueue/seedq"
	"github.com/funkygao/fuzzqueue/seedqlog"
)

const normalQueueName = "concolic-seed"

// Queue is the concolic loop's seed source.
type Queue[Seed any] struct {
	favored pureue.Queue[Seed]
	normal  filequeue.Queue

	codec   seedq.Codec[Seed]
	metrics *metrics.Tiers
}

// New loads the favored tier from favoredSnapshotPath (empty favored
// queue if the path does not exist) and opens or creates the normal
// tier's directory under queueDir.
func New[Seed any](queueDir, favoredSnapshotPath string, codec seedq.Codec[Seed], fileQueueMaxSize int) (Queue[Seed], error) {
	favored, err := pureue.Load[Seed](favoredSnapshotPath, pureue.NewSnapshotCodec(codec))
	if err != nil {
		return Queue[Seed]{}, err
	}

	normal, err := filequeue.Initialize(normalQueueName, queueDir, fileQueueMaxSize)
	if err != nil {
		return Queue[Seed]{}, err
	}

	seedqlog.Logger.Info("concolic: opened queue dir=%s favored=%d normal=%d", queueDir, favored.Size(), normal.Size())

	return Queue[Seed]{favored: favored, normal: normal, codec: codec, metrics: metrics.NewTiers("concolic")}, nil
}

// Save snapshots the favored tier to path; the normal tier is already on
// disk, one file per live entry.
func (q Queue[Seed]) Save(path string) error {
	return q.favored.Save(path, pureue.NewSnapshotCodec(q.codec))
}

// IsEmpty reports whether both tiers are empty.
func (q Queue[Seed]) IsEmpty() bool {
	return q.favored.IsEmpty() && q.normal.IsEmpty()
}

// Enqueue dispatches by priority: Favored pushes onto the in-memory
// queue, Normal serializes the seed and spills it to disk.
func (q Queue[Seed]) Enqueue(priority seedq.Priority, seed Seed) (Queue[Seed], error) {
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

// Dequeue selects a tier by strict priority: Favored whenever it is
// nonempty, Normal only as overflow once Favored is dry.
func (q Queue[Seed]) Dequeue() (seedq.Priority, Seed, Queue[Seed], error) {
	var zero Seed

	tier := seedq.Favored
	if q.normal.IsEmpty() {
		tier = seedq.Favored
	} else if q.favored.IsEmpty() {
		tier = seedq.Normal
	}

	if tier == seedq.Favored {
		seed, favored, err := q.favored.Dequeue()
		if err != nil {
			return tier, zero, q, err
		}
		q.favored = favored
		q.metrics.FavoredSize.Update(int64(q.favored.Size()))
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
