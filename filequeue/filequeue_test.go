package filequeue

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/funkygao/assert"
	"github.com/funkygao/fuzzqueue/seedq"
)

func TestEnqueueThenDequeueOnEmptyQueue(t *testing.T) {
	dir := t.TempDir()
	q, err := Create("seed", dir, 0)
	assert.Equal(t, nil, err)

	q, err = q.Enqueue([]byte{0xAB})
	assert.Equal(t, nil, err)

	b, q, err := q.Dequeue()
	assert.Equal(t, nil, err)
	assert.Equal(t, []byte{0xAB}, b)
	assert.Equal(t, true, q.IsEmpty())
}

func TestRestartRecoversIndicesAndFinger(t *testing.T) {
	dir := t.TempDir()
	q, err := Create("name", dir, 0)
	assert.Equal(t, nil, err)

	for _, b := range [][]byte{{0x01}, {0x02}, {0x03}} {
		q, err = q.Enqueue(b)
		assert.Equal(t, nil, err)
	}

	got, q, err := q.Dequeue()
	assert.Equal(t, nil, err)
	assert.Equal(t, []byte{0x01}, got)

	if _, statErr := os.Stat(filepath.Join(dir, "name-0")); !os.IsNotExist(statErr) {
		t.Fatalf("expected name-0 to be deleted")
	}

	reopened, err := Load("name", dir, 0)
	assert.Equal(t, nil, err)
	assert.Equal(t, 1, reopened.lowerIdx)
	assert.Equal(t, 3, reopened.upperIdx)
	assert.Equal(t, 1, reopened.finger)

	got, reopened, err = reopened.Dequeue()
	assert.Equal(t, nil, err)
	assert.Equal(t, []byte{0x02}, got)
}

func TestDirectoryContentsMatchLowerUpperRange(t *testing.T) {
	dir := t.TempDir()
	q, err := Create("name", dir, 0)
	assert.Equal(t, nil, err)

	for _, b := range [][]byte{{1}, {2}, {3}} {
		q, err = q.Enqueue(b)
		assert.Equal(t, nil, err)
	}
	_, q, err = q.Dequeue()
	assert.Equal(t, nil, err)

	entries, err := os.ReadDir(dir)
	assert.Equal(t, nil, err)
	assert.Equal(t, 2, len(entries))

	names := map[string]bool{}
	for _, e := range entries {
		names[e.Name()] = true
	}
	assert.Equal(t, true, names["name-1"])
	assert.Equal(t, true, names["name-2"])
}

func TestLoadMissingDirFails(t *testing.T) {
	_, err := Load("name", filepath.Join(t.TempDir(), "nope"), 0)
	assert.Equal(t, true, err == seedq.ErrDirectoryNotFound)
}

func TestEnqueueSilentlyDropsWhenFull(t *testing.T) {
	dir := t.TempDir()
	q, err := Create("name", dir, 1)
	assert.Equal(t, nil, err)

	q, err = q.Enqueue([]byte{1})
	assert.Equal(t, nil, err)
	before := q.Size()

	q, err = q.Enqueue([]byte{2})
	assert.Equal(t, nil, err)
	assert.Equal(t, before, q.Size())
}

func TestInitializeCreatesWhenMissing(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "fresh")
	q, err := Initialize("name", dir, 0)
	assert.Equal(t, nil, err)
	assert.Equal(t, true, q.IsEmpty())

	if _, statErr := os.Stat(dir); statErr != nil {
		t.Fatalf("expected dir to be created: %s", statErr)
	}
}
