// Package layout turns an immutable source tree plus an expansion set into a
// positioned diagram. Every pass rebuilds the node arena from scratch; there
// is no incremental re-layout, which keeps the algorithm a pure function of
// (tree, expanded set, metrics).
package layout

import (
	"github.com/prabhatexit0/treehouse/pkg/measure"
	"github.com/prabhatexit0/treehouse/pkg/model"
)

// Options holds the spacing constants for a layout pass.
type Options struct {
	HGap float64 // minimum horizontal gap between sibling subtrees
	VGap float64 // vertical gap between depth levels
}

// DefaultOptions returns the standard diagram spacing.
func DefaultOptions() Options {
	return Options{HGap: 20, VGap: 28}
}

// Node is one positioned box in the diagram. Nodes live in a per-pass arena
// owned by their Tree and are discarded wholesale when the next pass runs;
// nothing outside the pass may retain one across rebuilds.
//
// X/Y are the final top-left world coordinates. The lower-case fields are
// scratch state for the contour-following walk and are meaningless after
// layout completes.
type Node struct {
	Source *model.SourceNode
	Path   model.Path

	X, Y          float64
	Width, Height float64
	Depth         int
	Number        int // 1-based index among visible siblings
	Parent        *Node
	Children      []*Node

	// HiddenChildren counts source children elided by a collapse. Non-zero
	// exactly when the node renders a "+N" badge.
	HiddenChildren int

	// Walker scratch: preliminary x (center-relative), subtree modifier,
	// aggregated shift/change from apportionment, and the contour thread and
	// ancestor cross-links. Plain pointers are fine here; they never outlive
	// the pass (see Tree).
	prelim, mod, shift, change float64
	thread, ancestor           *Node
}

// Rect returns the node's world-space rectangle.
func (n *Node) Rect() model.Rect {
	return model.Rect{X: n.X, Y: n.Y, W: n.Width, H: n.Height}
}

// HasVisibleChildren reports whether the node has laid-out children.
func (n *Node) HasVisibleChildren() bool { return len(n.Children) > 0 }

// Togglable reports whether a tap on the node should emit a toggle-expand:
// true when it has children, visible or collapsed.
func (n *Node) Togglable() bool {
	return len(n.Children) > 0 || n.HiddenChildren > 0
}

// Tree is the result of one layout pass: the arena of nodes, a stable draw
// order, and the world-space bounding box. A Tree with no nodes (nil source
// root) is valid and renders as an empty canvas.
type Tree struct {
	Root   *Node
	arena  []Node
	order  []*Node // depth-first pre-order; also the draw order
	byPath map[model.Path]*Node
	bounds model.Rect
}

// Build constructs the visible tree for the given expansion state and runs
// the layout walk. A node's children are included iff its own path is in
// exp; otherwise the subtree is elided and HiddenChildren records the count.
func Build(root *model.SourceNode, exp *model.ExpandedSet, ms *measure.Measurer, opts Options) *Tree {
	t := &Tree{byPath: make(map[model.Path]*Node)}
	if root == nil {
		return t
	}

	// All nodes of a pass share one allocation; the walker's cross-links then
	// point within the arena and die with it.
	t.arena = make([]Node, countVisible(root, model.RootPath, exp))
	next := 0

	var build func(src *model.SourceNode, path model.Path, depth, number int, parent *Node) *Node
	build = func(src *model.SourceNode, path model.Path, depth, number int, parent *Node) *Node {
		n := &t.arena[next]
		next++
		*n = Node{
			Source: src,
			Path:   path,
			Depth:  depth,
			Number: number,
			Parent: parent,
		}
		n.ancestor = n

		if len(src.Children) > 0 && !exp.Has(path) {
			n.HiddenChildren = len(src.Children)
		} else {
			for i, c := range src.Children {
				n.Children = append(n.Children, build(c, path.Child(i), depth+1, i+1, n))
			}
		}

		n.Width, n.Height = ms.NodeSize(src, n.HiddenChildren)
		t.order = append(t.order, n)
		t.byPath[path] = n
		return n
	}

	t.Root = build(root, model.RootPath, 0, 1, nil)
	layout(t, opts)
	return t
}

// countVisible sizes the arena before building.
func countVisible(src *model.SourceNode, path model.Path, exp *model.ExpandedSet) int {
	total := 1
	if len(src.Children) > 0 && exp.Has(path) {
		for i, c := range src.Children {
			total += countVisible(c, path.Child(i), exp)
		}
	}
	return total
}

// Nodes returns every visible node in draw order (parents before children).
func (t *Tree) Nodes() []*Node { return t.order }

// Len returns the number of visible nodes.
func (t *Tree) Len() int { return len(t.order) }

// Bounds returns the world-space bounding box of the laid-out tree. Zero for
// an empty tree.
func (t *Tree) Bounds() model.Rect { return t.bounds }

// NodeByPath resolves a path against this pass's visible nodes.
func (t *Tree) NodeByPath(p model.Path) (*Node, bool) {
	n, ok := t.byPath[p]
	return n, ok
}

// HitTest returns the topmost node containing the world point: nodes are
// checked in reverse draw order so the last-drawn node wins. Out-of-bounds
// points simply report no match.
func (t *Tree) HitTest(p model.Point) (*Node, bool) {
	for i := len(t.order) - 1; i >= 0; i-- {
		if t.order[i].Rect().Contains(p) {
			return t.order[i], true
		}
	}
	return nil, false
}
