// Package filequeue implements a disk-spilled byte-array FIFO: each live
// entry is one file, named "{name}-{k}" for k in [lowerIdx, upperIdx),
// under a directory the queue owns exclusively. It is the normal-tier
// overflow for both the concolic and rand-fuzz queues.
//
// The index-scanning approach (parse the trailing integer of every
// directory entry, take min/max to recover the live range) is adapted
// from the teacher's segment loader, cmd/kateway/hh/disk/queue.go
// (loadSegments / nextSegmentID) - there, segments hold many records
// each and are trimmed wholesale; here every record is its own file and
// trimming is just "delete on dequeue", which is simpler because the
// seed queue core never needs segment compaction.
package filequeue

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/funkygao/fuzzqueue/seedq"
	"github.com/funkygao/fuzzqueue/seedqlog"
)

// Queue is a disk-backed FIFO of byte slices.
type Queue struct {
	name string
	dir  string

	lowerIdx int
	upperIdx int
	finger   int

	maxCount int
}

// Create makes dir (and any missing parents) and initializes an empty
// queue rooted there.
func Create(name, dir string, maxCount int) (Queue, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return Queue{}, err
	}
	return Queue{name: name, dir: dir, maxCount: maxCount}, nil
}

// Load enumerates files matching "{name}-<decimal>" in dir, and recovers
// lowerIdx/upperIdx from the observed min/max index. A write that failed
// mid-way leaves an extra, possibly-truncated file; the min/max policy
// tolerates this lazily rather than validating contents. Missing dir
// fails with ErrDirectoryNotFound. finger is reset to lowerIdx - a
// caller-saved finger is not preserved across restart (see design notes).
func Load(name, dir string, maxCount int) (Queue, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return Queue{}, seedq.ErrDirectoryNotFound
		}
		return Queue{}, err
	}

	prefix := name + "-"
	var (
		haveAny          bool
		lower, upperExcl int
	)
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		rest, ok := strings.CutPrefix(e.Name(), prefix)
		if !ok {
			continue
		}
		idx, err := strconv.Atoi(rest)
		if err != nil {
			seedqlog.Logger.Warn("filequeue[%s]: ignoring unparseable entry %s: %s", name, e.Name(), err)
			continue
		}
		if !haveAny || idx < lower {
			lower = idx
		}
		if !haveAny || idx+1 > upperExcl {
			upperExcl = idx + 1
		}
		haveAny = true
	}

	return Queue{name: name, dir: dir, lowerIdx: lower, upperIdx: upperExcl, finger: lower, maxCount: maxCount}, nil
}

// Initialize loads dir if it exists, else creates it.
func Initialize(name, dir string, maxCount int) (Queue, error) {
	if _, err := os.Stat(dir); err != nil {
		if os.IsNotExist(err) {
			return Create(name, dir, maxCount)
		}
		return Queue{}, err
	}
	return Load(name, dir, maxCount)
}

// Size returns the number of live entries.
func (q Queue) Size() int {
	return q.upperIdx - q.lowerIdx
}

// IsEmpty reports whether the queue holds no live entries.
func (q Queue) IsEmpty() bool {
	return q.Size() == 0
}

// Enqueue writes b to "{dir}/{name}-{upperIdx}" and advances upperIdx.
// When maxCount is positive, a queue at maxCount silently drops b - not
// an error; see package seedq's error table. A maxCount of zero or less
// never drops.
func (q Queue) Enqueue(b []byte) (Queue, error) {
	if q.maxCount > 0 && q.Size() >= q.maxCount {
		return q, nil
	}
	path := q.entryPath(q.upperIdx)
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return q, err
	}
	q.upperIdx++
	return q, nil
}

// Dequeue reads and deletes "{dir}/{name}-{lowerIdx}", advancing
// lowerIdx and finger (finger never falls behind lowerIdx).
func (q Queue) Dequeue() ([]byte, Queue, error) {
	if q.IsEmpty() {
		return nil, q, seedq.ErrEmpty
	}
	if q.finger < q.lowerIdx || q.finger >= q.upperIdx {
		return nil, q, seedq.ErrInvalidFinger
	}

	path := q.entryPath(q.lowerIdx)
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, q, err
	}
	if err := os.Remove(path); err != nil {
		return nil, q, err
	}

	q.lowerIdx++
	if q.finger < q.lowerIdx {
		q.finger = q.lowerIdx
	}
	return b, q, nil
}

func (q Queue) entryPath(idx int) string {
	return filepath.Join(q.dir, fmt.Sprintf("%s-%d", q.name, idx))
}
