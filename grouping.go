package streetdf

import (
	"github.com/paulmach/osm"
)

// disjointSet is a union-find structure over segment indices with path
// halving and union by rank.
type disjointSet struct {
	parent []int
	rank   []int
}

func newDisjointSet(n int) *disjointSet {
	set := &disjointSet{
		parent: make([]int, n),
		rank:   make([]int, n),
	}
	for i := 0; i < n; i++ {
		set.parent[i] = i
	}
	return set
}

func (set *disjointSet) find(x int) int {
	for set.parent[x] != x {
		set.parent[x] = set.parent[set.parent[x]]
		x = set.parent[x]
	}
	return x
}

func (set *disjointSet) union(a, b int) {
	ra, rb := set.find(a), set.find(b)
	if ra == rb {
		return
	}
	if set.rank[ra] < set.rank[rb] {
		ra, rb = rb, ra
	}
	set.parent[rb] = ra
	if set.rank[ra] == set.rank[rb] {
		set.rank[ra]++
	}
}

// connectedComponents partitions segments of one (name, region) group
// into components transitively linked by shared node ids. Segments in a
// node bucket are unioned directly off the node→segments inverted
// index, so no pairwise edge list is materialized even at hub nodes
// shared by many segments. Components are returned in order of their
// first member, members in ascending index order.
func connectedComponents(segments []*Segment) [][]int {
	n := len(segments)
	if n == 0 {
		return nil
	}

	nodeToSegments := make(map[osm.NodeID][]int)
	for i, segment := range segments {
		for _, nodeID := range segment.NodeIDs {
			nodeToSegments[nodeID] = append(nodeToSegments[nodeID], i)
		}
	}

	set := newDisjointSet(n)
	for _, indices := range nodeToSegments {
		for k := 1; k < len(indices); k++ {
			set.union(indices[0], indices[k])
		}
	}

	componentOf := make(map[int]int)
	components := [][]int{}
	for i := 0; i < n; i++ {
		root := set.find(i)
		pos, ok := componentOf[root]
		if !ok {
			pos = len(components)
			componentOf[root] = pos
			components = append(components, []int{})
		}
		components[pos] = append(components[pos], i)
	}
	return components
}
