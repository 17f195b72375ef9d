package pureue

import (
	"encoding/binary"
	"errors"
	"path/filepath"
	"testing"

	"github.com/funkygao/assert"
	"github.com/funkygao/fuzzqueue/seedq"
)

func TestFIFOOrderingUnderInterleaving(t *testing.T) {
	q := Empty[int]()

	q = q.Enqueue(1)
	q = q.Enqueue(2)

	x, q, err := q.Dequeue()
	assert.Equal(t, nil, err)
	assert.Equal(t, 1, x)

	q = q.Enqueue(3)

	x, q, err = q.Dequeue()
	assert.Equal(t, nil, err)
	assert.Equal(t, 2, x)

	x, q, err = q.Dequeue()
	assert.Equal(t, nil, err)
	assert.Equal(t, 3, x)

	assert.Equal(t, true, q.IsEmpty())
}

func TestDequeueEmptyFails(t *testing.T) {
	q := Empty[int]()
	_, _, err := q.Dequeue()
	assert.Equal(t, true, errors.Is(err, seedq.ErrEmpty))
}

func TestEnqueueThenDequeueOnEmptyQueue(t *testing.T) {
	q := Empty[string]()
	q = q.Enqueue("x")
	x, _, err := q.Dequeue()
	assert.Equal(t, nil, err)
	assert.Equal(t, "x", x)
}

func TestElementsMatchesDequeueOrder(t *testing.T) {
	q := Empty[int]()
	q = q.Enqueue(1).Enqueue(2)
	_, q, _ = q.Dequeue()
	q = q.Enqueue(3)

	assert.Equal(t, []int{2, 3}, q.Elements())
}

func intCodec() seedq.Codec[int] {
	return seedq.Codec[int]{
		Pickle: func(x int) ([]byte, error) {
			var b [8]byte
			binary.BigEndian.PutUint64(b[:], uint64(x))
			return b[:], nil
		},
		UnPickle: func(b []byte) (int, error) {
			return int(binary.BigEndian.Uint64(b)), nil
		},
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "favored.snap")

	q := Empty[int]()
	q = q.Enqueue(1).Enqueue(2)
	_, q, _ = q.Dequeue()
	q = q.Enqueue(3)

	codec := NewSnapshotCodec(intCodec())

	assert.Equal(t, nil, q.Save(path, codec))

	loaded, err := Load[int](path, codec)
	assert.Equal(t, nil, err)
	assert.Equal(t, q.Elements(), loaded.Elements())
	assert.Equal(t, q.Size(), loaded.Size())
}

func TestLoadMissingPathIsEmpty(t *testing.T) {
	dir := t.TempDir()
	codec := NewSnapshotCodec(intCodec())

	q, err := Load[int](filepath.Join(dir, "does-not-exist"), codec)
	assert.Equal(t, nil, err)
	assert.Equal(t, true, q.IsEmpty())
}
