// Package analysis computes shape statistics for a syntax tree: node and
// kind counts, depth, and branching-factor distribution. The TUI footer and
// the CLI's --stats flag render these.
package analysis

import (
	"fmt"
	"sort"
	"strings"

	"gonum.org/v1/gonum/stat"

	"github.com/prabhatexit0/treehouse/pkg/model"
)

// TreeStats summarizes the shape of one parsed tree.
type TreeStats struct {
	Nodes     int // total node count
	Named     int // nodes the grammar names
	Leaves    int
	MaxDepth  int // root is depth 0
	KindCount map[string]int

	// Branching factor over internal nodes.
	MeanBranching   float64
	StdDevBranching float64
	MaxBranching    int
}

// Compute walks the tree once and fills in every statistic. A nil root
// yields the zero value.
func Compute(root *model.SourceNode) TreeStats {
	s := TreeStats{KindCount: make(map[string]int)}
	if root == nil {
		return s
	}

	var fanouts []float64
	var walk func(n *model.SourceNode, depth int)
	walk = func(n *model.SourceNode, depth int) {
		s.Nodes++
		s.KindCount[n.Kind]++
		if n.IsNamed {
			s.Named++
		}
		if depth > s.MaxDepth {
			s.MaxDepth = depth
		}
		if len(n.Children) == 0 {
			s.Leaves++
			return
		}
		fanouts = append(fanouts, float64(len(n.Children)))
		if len(n.Children) > s.MaxBranching {
			s.MaxBranching = len(n.Children)
		}
		for _, c := range n.Children {
			walk(c, depth+1)
		}
	}
	walk(root, 0)

	if len(fanouts) > 0 {
		s.MeanBranching, s.StdDevBranching = stat.MeanStdDev(fanouts, nil)
		// A single internal node has no spread, not NaN.
		if len(fanouts) == 1 {
			s.StdDevBranching = 0
		}
	}
	return s
}

// TopKinds returns the n most frequent node kinds, most frequent first;
// ties break alphabetically so output is stable.
func (s TreeStats) TopKinds(n int) []string {
	kinds := make([]string, 0, len(s.KindCount))
	for k := range s.KindCount {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool {
		if s.KindCount[kinds[i]] != s.KindCount[kinds[j]] {
			return s.KindCount[kinds[i]] > s.KindCount[kinds[j]]
		}
		return kinds[i] < kinds[j]
	})
	if n < len(kinds) {
		kinds = kinds[:n]
	}
	return kinds
}

// Summary renders a one-line description for status bars:
// "201 nodes (140 named), depth 9, branching 2.4±1.1".
func (s TreeStats) Summary() string {
	if s.Nodes == 0 {
		return "empty tree"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%d nodes (%d named), depth %d", s.Nodes, s.Named, s.MaxDepth)
	if s.MeanBranching > 0 {
		fmt.Fprintf(&b, ", branching %.1f±%.1f", s.MeanBranching, s.StdDevBranching)
	}
	return b.String()
}
