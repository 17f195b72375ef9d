// Package durableq implements a fixed-capacity round-robin array whose
// Fetch never removes elements - only an explicit, verified Remove does.
// It backs the favored tier of the rand-fuzz queue, where seeds are
// sampled with replacement, and supports targeted mid-array removal
// during minimization.
package durableq

import (
	"github.com/funkygao/fuzzqueue/seedq"
)

// Queue is a CAP-sized array of live elements in slots[0:count), a
// round-robin cursor (finger), and reserved-but-unobservable trailing
// slots. The zero value is not valid; use New.
type Queue[T any] struct {
	slots  []T
	count  int
	finger int
}

// New allocates a cap-sized array filled with sentinel. sentinel is
// never observable through Fetch - it only exists because the backing
// array must be constructed with a value of T.
func New[T any](cap int, sentinel T) Queue[T] {
	slots := make([]T, cap)
	for i := range slots {
		slots[i] = sentinel
	}
	return Queue[T]{slots: slots}
}

// Cap returns the fixed capacity of the queue.
func (q Queue[T]) Cap() int {
	return len(q.slots)
}

// Size returns the number of live elements.
func (q Queue[T]) Size() int {
	return q.count
}

// IsEmpty reports whether the queue holds no live elements.
func (q Queue[T]) IsEmpty() bool {
	return q.count == 0
}

// Finger returns the current round-robin cursor.
func (q Queue[T]) Finger() int {
	return q.finger
}

// Enqueue appends x. A full queue silently drops x - this is not an
// error; seed queues are best-effort accumulators.
func (q Queue[T]) Enqueue(x T) Queue[T] {
	if q.count == len(q.slots) {
		return q
	}
	slots := append([]T(nil), q.slots...)
	slots[q.count] = x
	return Queue[T]{slots: slots, count: q.count + 1, finger: q.finger}
}

// Fetch returns the element at the current finger and advances the
// finger modulo count, without removing the element.
func (q Queue[T]) Fetch() (T, Queue[T], error) {
	var zero T
	if q.count == 0 {
		return zero, q, seedq.ErrEmpty
	}
	if q.finger >= q.count {
		return zero, q, seedq.ErrInvalidFinger
	}
	x := q.slots[q.finger]
	next := Queue[T]{slots: q.slots, count: q.count, finger: (q.finger + 1) % q.count}
	return x, next, nil
}

// Removal names an element to remove along with the index it is
// expected to occupy, guarding against state corruption.
type Removal[T any] struct {
	Index int
	Elem  T
}

// Remove deletes slots[r.Index], left-shifting everything after it down
// by one. It requires slots[r.Index] == r.Elem (via eq) - a mismatch
// indicates the backing array was mutated out of band and is fatal, not
// recoverable. If idx < finger, finger is decremented to keep pointing
// at the same logical successor; if idx == finger, finger is left in
// place (so the next Fetch returns what was slots[idx+1]); if the
// resulting finger equals the new count, it resets to 0.
func (q Queue[T]) Remove(r Removal[T], eq func(a, b T) bool) (Queue[T], error) {
	if r.Index < 0 || r.Index >= q.count {
		return q, seedq.ErrElementMismatch
	}
	if !eq(q.slots[r.Index], r.Elem) {
		return q, seedq.ErrElementMismatch
	}

	slots := append([]T(nil), q.slots...)
	copy(slots[r.Index:q.count-1], slots[r.Index+1:q.count])

	finger := q.finger
	if r.Index < finger {
		finger--
	}
	count := q.count - 1
	if finger >= max(count, 1) {
		finger = 0
	}

	return Queue[T]{slots: slots, count: count, finger: finger}, nil
}

// Elements returns the live elements paired with their indices, in
// slot order - the shape the greedy minimizer (package cover) consumes.
func (q Queue[T]) Elements() []Indexed[T] {
	out := make([]Indexed[T], q.count)
	for i := 0; i < q.count; i++ {
		out[i] = Indexed[T]{Index: i, Elem: q.slots[i]}
	}
	return out
}

// Indexed pairs a live element with its current slot index.
type Indexed[T any] struct {
	Index int
	Elem  T
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// snapshot is the serialized form: array contents, count and finger.
type snapshot[T any] struct {
	Slots  []T
	Count  int
	Finger int
}

// Save serializes the full state, including reserved slots, via codec.
func (q Queue[T]) Save(path string, codec seedq.Codec[snapshot[T]]) error {
	return saveSnapshot(path, snapshot[T]{Slots: q.slots, Count: q.count, Finger: q.finger}, codec)
}

// Load deserializes a queue previously written by Save. A nonexistent
// path returns a queue of the given capacity allocated with sentinel,
// mirroring New.
func Load[T any](path string, cap int, sentinel T, codec seedq.Codec[snapshot[T]]) (Queue[T], error) {
	snap, ok, err := loadSnapshot(path, codec)
	if err != nil {
		return Queue[T]{}, err
	}
	if !ok {
		return New(cap, sentinel), nil
	}
	return Queue[T]{slots: snap.Slots, count: snap.Count, finger: snap.Finger}, nil
}

// NewSnapshotCodec adapts a per-element codec into the Codec Save/Load
// need, the same length-prefixed-records framing pureue uses, preceded
// by a slot-count/count/finger header.
func NewSnapshotCodec[T any](elem seedq.Codec[T]) seedq.Codec[snapshot[T]] {
	return seedq.Codec[snapshot[T]]{
		Pickle: func(s snapshot[T]) ([]byte, error) {
			return pickleSnapshot(s, elem.Pickle)
		},
		UnPickle: func(b []byte) (snapshot[T], error) {
			return unpickleSnapshot[T](b, elem.UnPickle)
		},
	}
}
