// Package cover implements the greedy set-cover redundancy pruner that
// periodically culls the favored durable queue: given each live seed's
// coverage node set, it repeatedly picks the largest remaining set,
// subtracts it from every other set, and marks any set that becomes
// empty as redundant.
package cover

// Entry pairs a durable-queue index with its seed and the node set the
// external coverage oracle computed for it.
type Entry[Seed any, Node comparable] struct {
	Index int
	Seed  Seed
	Nodes map[Node]struct{}
}

// Minimize runs the greedy algorithm over entries and returns the subset
// that is redundant - every node in their coverage set is also reached
// by some entry that was kept. entries is not mutated.
//
// Algorithm: repeat until the working list is empty - pick the entry
// with the largest current node-set size (ties broken by earliest
// original position: the working list keeps the input order and the
// first maximum is taken), remove it from the
// working list, subtract its node set from every remaining entry's node
// set, and move any entry whose node set became empty into the
// redundant output.
func Minimize[Seed any, Node comparable](entries []Entry[Seed, Node]) []Entry[Seed, Node] {
	working := make([]Entry[Seed, Node], len(entries))
	for i, e := range entries {
		working[i] = Entry[Seed, Node]{Index: e.Index, Seed: e.Seed, Nodes: cloneSet(e.Nodes)}
	}

	var redundant []Entry[Seed, Node]

	for len(working) > 0 {
		best := 0
		for i := 1; i < len(working); i++ {
			if len(working[i].Nodes) > len(working[best].Nodes) {
				best = i
			}
		}

		chosen := working[best]
		working = append(working[:best], working[best+1:]...)

		for chosenNode := range chosen.Nodes {
			for i := range working {
				delete(working[i].Nodes, chosenNode)
			}
		}

		kept := working[:0]
		for _, e := range working {
			if len(e.Nodes) == 0 {
				redundant = append(redundant, e)
			} else {
				kept = append(kept, e)
			}
		}
		working = kept
	}

	return redundant
}

func cloneSet[Node comparable](s map[Node]struct{}) map[Node]struct{} {
	out := make(map[Node]struct{}, len(s))
	for k := range s {
		out[k] = struct{}{}
	}
	return out
}
