package concolic

import (
	"encoding/binary"
	"path/filepath"
	"testing"

	"github.com/funkygao/assert"
	"github.com/funkygao/fuzzqueue/seedq"
)

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

func TestStrictPriorityDispatch(t *testing.T) {
	dir := t.TempDir()
	q, err := New[int](dir, filepath.Join(dir, "favored.snap"), intCodec(), 0)
	assert.Equal(t, nil, err)

	q, err = q.Enqueue(seedq.Normal, 1)
	assert.Equal(t, nil, err)
	q, err = q.Enqueue(seedq.Favored, 2)
	assert.Equal(t, nil, err)
	q, err = q.Enqueue(seedq.Normal, 3)
	assert.Equal(t, nil, err)
	q, err = q.Enqueue(seedq.Favored, 4)
	assert.Equal(t, nil, err)

	type result struct {
		tier seedq.Priority
		seed int
	}
	var got []result
	for i := 0; i < 4; i++ {
		tier, seed, q2, derr := q.Dequeue()
		assert.Equal(t, nil, derr)
		got = append(got, result{tier, seed})
		q = q2
	}

	want := []result{
		{seedq.Favored, 2},
		{seedq.Favored, 4},
		{seedq.Normal, 1},
		{seedq.Normal, 3},
	}
	assert.Equal(t, want, got)
	assert.Equal(t, true, q.IsEmpty())
}

func TestSaveLoadFavoredTierOnly(t *testing.T) {
	dir := t.TempDir()
	snapPath := filepath.Join(dir, "favored.snap")

	q, err := New[int](dir, snapPath, intCodec(), 0)
	assert.Equal(t, nil, err)

	q, err = q.Enqueue(seedq.Favored, 7)
	assert.Equal(t, nil, err)
	q, err = q.Enqueue(seedq.Normal, 8)
	assert.Equal(t, nil, err)

	assert.Equal(t, nil, q.Save(snapPath))

	reopened, err := New[int](dir, snapPath, intCodec(), 0)
	assert.Equal(t, nil, err)

	tier, seed, reopened, err := reopened.Dequeue()
	assert.Equal(t, nil, err)
	assert.Equal(t, seedq.Favored, tier)
	assert.Equal(t, 7, seed)

	tier, seed, _, err = reopened.Dequeue()
	assert.Equal(t, nil, err)
	assert.Equal(t, seedq.Normal, tier)
	assert.Equal(t, 8, seed)
}
