// Package pureue implements a purely functional FIFO: two ordered lists,
// one for incoming pushes and one for pending dequeues, amortizing to
// O(1) per operation. It backs the favored tier of the concolic queue.
package pureue

import (
	"github.com/funkygao/fuzzqueue/seedq"
)

// Queue is the favored-tier FIFO. The zero value is an empty queue, the
// same value Empty returns.
// Logical order is pending followed by reverse(pushed).
type Queue[T any] struct {
	pushed  []T
	pending []T
}

// Empty returns a queue with both sides empty.
func Empty[T any]() Queue[T] {
	return Queue[T]{}
}

// IsEmpty reports whether both sides are empty.
func (q Queue[T]) IsEmpty() bool {
	return len(q.pushed) == 0 && len(q.pending) == 0
}

// Size returns the total number of logical elements.
func (q Queue[T]) Size() int {
	return len(q.pushed) + len(q.pending)
}

// Enqueue pushes x onto the front of the pushed side, which holds the
// newest element first. Never fails.
func (q Queue[T]) Enqueue(x T) Queue[T] {
	pushed := make([]T, len(q.pushed)+1)
	pushed[0] = x
	copy(pushed[1:], q.pushed)
	return Queue[T]{pushed: pushed, pending: q.pending}
}

// Dequeue removes and returns the head of the logical queue. If pending
// is empty, pushed is reversed into pending first.
func (q Queue[T]) Dequeue() (T, Queue[T], error) {
	var zero T
	if len(q.pending) == 0 {
		if len(q.pushed) == 0 {
			return zero, q, seedq.ErrEmpty
		}
		q = Queue[T]{pending: reversed(q.pushed)}
	}
	head := q.pending[0]
	return head, Queue[T]{pushed: q.pushed, pending: q.pending[1:]}, nil
}

// Peek returns the head without consuming it.
func (q Queue[T]) Peek() (T, error) {
	var zero T
	if len(q.pending) > 0 {
		return q.pending[0], nil
	}
	if len(q.pushed) > 0 {
		return q.pushed[len(q.pushed)-1], nil
	}
	return zero, seedq.ErrEmpty
}

// Drop removes the head without returning it.
func (q Queue[T]) Drop() (Queue[T], error) {
	_, q2, err := q.Dequeue()
	return q2, err
}

// Elements returns the logical element list in dequeue order.
func (q Queue[T]) Elements() []T {
	out := make([]T, 0, q.Size())
	out = append(out, q.pending...)
	out = append(out, reversed(q.pushed)...)
	return out
}

func reversed[T any](xs []T) []T {
	out := make([]T, len(xs))
	for i, x := range xs {
		out[len(xs)-1-i] = x
	}
	return out
}

// snapshot is the serialized form of a Queue: the logical element list,
// already in dequeue order, so Load never has to guess which side an
// element belonged to.
type snapshot[T any] struct {
	Elements []T
}

// Save serializes the full queue state via codec.Pickle to path.
func (q Queue[T]) Save(path string, codec seedq.Codec[snapshot[T]]) error {
	return saveSnapshot(path, snapshot[T]{Elements: q.Elements()}, codec)
}

// Load deserializes a queue previously written by Save. A nonexistent
// path returns Empty().
func Load[T any](path string, codec seedq.Codec[snapshot[T]]) (Queue[T], error) {
	snap, ok, err := loadSnapshot(path, codec)
	if err != nil {
		return Queue[T]{}, err
	}
	if !ok {
		return Empty[T](), nil
	}
	return Queue[T]{pending: snap.Elements}, nil
}

// NewSnapshotCodec adapts a per-element codec into the Codec this
// package's Save/Load need, serializing the whole element list as a
// single blob via elem.Pickle/UnPickle applied per element plus a
// length-prefixed framing. The snapshot type is unexported, so this
// helper is how callers outside the package obtain such a codec from a
// per-seed Pickle/UnPickle pair, matching the §6 serialization contract.
func NewSnapshotCodec[T any](elem seedq.Codec[T]) seedq.Codec[snapshot[T]] {
	return seedq.Codec[snapshot[T]]{
		Pickle: func(s snapshot[T]) ([]byte, error) {
			return pickleElements(s.Elements, elem.Pickle)
		},
		UnPickle: func(b []byte) (snapshot[T], error) {
			elems, err := unpickleElements(b, elem.UnPickle)
			return snapshot[T]{Elements: elems}, err
		},
	}
}
