package cover

import (
	"sort"
	"testing"

	"github.com/funkygao/assert"
)

func nodes(ns ...int) map[int]struct{} {
	s := make(map[int]struct{}, len(ns))
	for _, n := range ns {
		s[n] = struct{}{}
	}
	return s
}

func TestMinimizationCoverScenario(t *testing.T) {
	entries := []Entry[string, int]{
		{Index: 0, Seed: "s0", Nodes: nodes(1, 2)},
		{Index: 1, Seed: "s1", Nodes: nodes(2, 3)},
		{Index: 2, Seed: "s2", Nodes: nodes(3)},
		{Index: 3, Seed: "s3", Nodes: nodes(1)},
	}

	redundant := Minimize(entries)

	gotIndices := make([]int, len(redundant))
	for i, e := range redundant {
		gotIndices[i] = e.Index
	}

	assert.Equal(t, 2, len(gotIndices))
	sorted := append([]int(nil), gotIndices...)
	sort.Ints(sorted)
	assert.Equal(t, []int{2, 3}, sorted)
}

func TestNoRedundancyWhenSetsAreDisjoint(t *testing.T) {
	entries := []Entry[string, int]{
		{Index: 0, Seed: "a", Nodes: nodes(1)},
		{Index: 1, Seed: "b", Nodes: nodes(2)},
	}

	redundant := Minimize(entries)
	assert.Equal(t, 0, len(redundant))
}

func TestSurvivorsFormACoverWithNoRedundancy(t *testing.T) {
	entries := []Entry[string, int]{
		{Index: 0, Seed: "s0", Nodes: nodes(1, 2)},
		{Index: 1, Seed: "s1", Nodes: nodes(2, 3)},
		{Index: 2, Seed: "s2", Nodes: nodes(3)},
		{Index: 3, Seed: "s3", Nodes: nodes(1)},
	}

	redundant := Minimize(entries)
	removed := map[int]bool{}
	for _, e := range redundant {
		removed[e.Index] = true
	}

	survivors := map[int]map[int]struct{}{}
	for _, e := range entries {
		if !removed[e.Index] {
			survivors[e.Index] = e.Nodes
		}
	}

	union := map[int]struct{}{}
	for _, ns := range survivors {
		for n := range ns {
			union[n] = struct{}{}
		}
	}
	assert.Equal(t, 3, len(union))

	for idx, ns := range survivors {
		others := map[int]struct{}{}
		for otherIdx, otherNs := range survivors {
			if otherIdx == idx {
				continue
			}
			for n := range otherNs {
				others[n] = struct{}{}
			}
		}
		subsumed := true
		for n := range ns {
			if _, ok := others[n]; !ok {
				subsumed = false
				break
			}
		}
		assert.Equal(t, false, subsumed)
	}
}

func TestEmptyInputProducesNoRedundancy(t *testing.T) {
	redundant := Minimize([]Entry[string, int]{})
	assert.Equal(t, 0, len(redundant))
}
