package ccl

import (
	"github.com/banshee-data/sparseccl/internal/cells"
)

// Labeling is the output of the SparseCCL engine for one module.
type Labeling struct {
	// Labels maps each input cell to its cluster label in [0, Count).
	Labels []int
	// Count is the number of clusters found.
	Count int
	// Sizes holds the number of cells carrying each label.
	Sizes []int
}

// IsAdjacent reports 8-connectivity: a and b differ by at most one channel
// along each axis.
func IsAdjacent(a, b cells.Cell) bool {
	return within1(a.Channel0, b.Channel0) && within1(a.Channel1, b.Channel1)
}

// within1 compares without subtracting so channels near the int64 limits
// cannot overflow.
func within1(x, y cells.ChannelID) bool {
	if x < y {
		x, y = y, x
	}
	return x == y || x-1 == y
}

// IsFarEnough reports that a, a later cell in column-major order, is more
// than one column past b. No cell after a can then touch b either.
func IsFarEnough(a, b cells.Cell) bool {
	return a.Channel1 > b.Channel1 && a.Channel1-1 > b.Channel1
}

// findRoot climbs the equivalence table from e to its root.
func findRoot(parent []int, e int) int {
	r := e
	for parent[r] != r {
		r = parent[r]
	}
	return r
}

// union merges the trees rooted at e1 and e2. The smaller index always
// survives as root, so every parent index is below its child's index and
// label numbering is deterministic.
func union(parent []int, e1, e2 int) int {
	if e1 < e2 {
		parent[e2] = e1
		return e1
	}
	parent[e1] = e2
	return e2
}

// Label runs SparseCCL over one module's cells.
//
// cs must be sorted in column-major order (see cells.SortColumnMajor).
// Unsorted input is not detected here and yields labels that do not match
// the true connectivity; use LabelChecked to enforce a policy.
//
// Labels are numbered in order of their root's position in cs, so the
// cluster containing cs[0] is always label 0.
func Label(cs []cells.Cell) Labeling {
	n := len(cs)
	parent := make([]int, n)

	// First scan: pixel association over a sliding window of candidates.
	startJ := 0
	for i := range n {
		parent[i] = i
		ai := i
		for j := startJ; j < i; j++ {
			if IsAdjacent(cs[i], cs[j]) {
				ai = union(parent, ai, findRoot(parent, j))
			} else if IsFarEnough(cs[i], cs[j]) {
				startJ++
			}
		}
	}

	// Second scan: compact every tree to a dense label. Parents precede
	// children, so parent[parent[i]] already holds the root's label.
	sizes := make([]int, n)
	count := 0
	for i := range n {
		var l int
		if parent[i] == i {
			l = count
			count++
		} else {
			l = parent[parent[i]]
		}
		parent[i] = l
		sizes[l]++
	}

	return Labeling{
		Labels: parent,
		Count:  count,
		Sizes:  sizes[:count:count],
	}
}
