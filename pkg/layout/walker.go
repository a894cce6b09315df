package layout

import "github.com/prabhatexit0/treehouse/pkg/model"

// The layout walk is Buchheim, Jünger and Leipert's linear-time refinement of
// the Reingold–Tilford algorithm ("Improving Walker's Algorithm to Run in
// Linear Time", GD 2002), adapted to variable node widths: horizontal
// positions are computed for node centers, and the separation between two
// adjacent contours accounts for both boxes' half-widths plus the gap.
//
// firstWalk assigns each node a preliminary center x relative to its subtree
// and accumulates a modifier for descendants; apportion slides a subtree
// right by the minimal amount that removes overlap with its left siblings,
// following the threaded left/right contours so each contour node is visited
// a constant number of times. secondWalk sums ancestor modifiers into
// absolute coordinates, and a final translation pins min(x) to zero.

// layout positions every node in the tree and computes its bounds.
func layout(t *Tree, opts Options) {
	if t.Root == nil {
		return
	}

	w := walker{hgap: opts.HGap, vgap: opts.VGap}
	w.firstWalk(t.Root)
	w.secondWalk(t.Root, -t.Root.prelim)

	// Translate so the leftmost node sits at x == 0.
	minX := t.order[0].X
	for _, n := range t.order[1:] {
		if n.X < minX {
			minX = n.X
		}
	}
	var bounds rectAcc
	for _, n := range t.order {
		n.X -= minX
		bounds.add(n)
	}
	t.bounds = bounds.rect()
}

type walker struct {
	hgap, vgap float64
}

// distance is the minimum spacing between the centers of two horizontally
// adjacent nodes: both half-widths plus the sibling gap.
func (w *walker) distance(a, b *Node) float64 {
	return (a.Width+b.Width)/2 + w.hgap
}

// firstWalk computes preliminary x positions bottom-up.
func (w *walker) firstWalk(v *Node) {
	if len(v.Children) == 0 {
		if lb := leftSibling(v); lb != nil {
			v.prelim = lb.prelim + w.distance(lb, v)
		}
		return
	}

	defaultAncestor := v.Children[0]
	for _, c := range v.Children {
		w.firstWalk(c)
		defaultAncestor = w.apportion(c, defaultAncestor)
	}
	executeShifts(v)

	// Center the parent over the midpoint of its first and last child. A
	// single child degenerates to the child's own column.
	first, last := v.Children[0], v.Children[len(v.Children)-1]
	midpoint := (first.prelim + last.prelim) / 2

	if lb := leftSibling(v); lb != nil {
		// Pushed right by the left sibling; mod keeps descendants aligned.
		v.prelim = lb.prelim + w.distance(lb, v)
		v.mod = v.prelim - midpoint
	} else {
		v.prelim = midpoint
	}
}

// apportion resolves overlap between v's subtree and everything to its left,
// tracing the right contour of the left forest against the left contour of
// v's subtree. Shifts are minimal: exactly the overlap amount, never more.
func (w *walker) apportion(v, defaultAncestor *Node) *Node {
	lb := leftSibling(v)
	if lb == nil {
		return defaultAncestor
	}

	// Inner/outer contour cursors: vi* walk the facing contours, vo* the
	// outside ones; s* carry the accumulated modifier sums along each.
	vip, vop := v, v
	vim := lb
	vom := vip.Parent.Children[0]
	sip, sop := vip.mod, vop.mod
	sim, som := vim.mod, vom.mod

	for nextRight(vim) != nil && nextLeft(vip) != nil {
		vim = nextRight(vim)
		vip = nextLeft(vip)
		vom = nextLeft(vom)
		vop = nextRight(vop)
		vop.ancestor = v

		shift := (vim.prelim + sim) - (vip.prelim + sip) + w.distance(vim, vip)
		if shift > 0 {
			moveSubtree(ancestor(vim, v, defaultAncestor), v, shift)
			sip += shift
			sop += shift
		}
		sim += vim.mod
		sip += vip.mod
		som += vom.mod
		sop += vop.mod
	}

	// Thread the deeper contour onto the shallower one so later apportion
	// calls can keep following it past this subtree's own depth.
	if nextRight(vim) != nil && nextRight(vop) == nil {
		vop.thread = nextRight(vim)
		vop.mod += sim - sop
	}
	if nextLeft(vip) != nil && nextLeft(vom) == nil {
		vom.thread = nextLeft(vip)
		vom.mod += sip - som
		defaultAncestor = v
	}
	return defaultAncestor
}

// moveSubtree shifts wp (and everything under it) right by shift, spreading
// the change across the sibling subtrees between wm and wp so intermediate
// siblings end up evenly distributed after executeShifts.
func moveSubtree(wm, wp *Node, shift float64) {
	subtrees := float64(wp.Number - wm.Number)
	wp.change -= shift / subtrees
	wp.shift += shift
	wm.change += shift / subtrees
	wp.prelim += shift
	wp.mod += shift
}

// executeShifts applies the aggregated shift/change amounts to v's children
// in one right-to-left sweep.
func executeShifts(v *Node) {
	var shift, change float64
	for i := len(v.Children) - 1; i >= 0; i-- {
		c := v.Children[i]
		c.prelim += shift
		c.mod += shift
		change += c.change
		shift += c.shift + change
	}
}

// ancestor picks the node whose subtree must move when the contours of vim
// and v's subtree collide: vim's recorded ancestor when it is a sibling of
// v, otherwise the default ancestor maintained by firstWalk.
func ancestor(vim, v, defaultAncestor *Node) *Node {
	if vim.ancestor != nil && vim.ancestor.Parent == v.Parent {
		return vim.ancestor
	}
	return defaultAncestor
}

// nextLeft follows the left contour: the first child when present, else the
// thread left by an earlier apportion.
func nextLeft(v *Node) *Node {
	if len(v.Children) > 0 {
		return v.Children[0]
	}
	return v.thread
}

// nextRight follows the right contour symmetrically.
func nextRight(v *Node) *Node {
	if len(v.Children) > 0 {
		return v.Children[len(v.Children)-1]
	}
	return v.thread
}

// leftSibling returns the sibling immediately left of v, or nil.
func leftSibling(v *Node) *Node {
	if v.Parent == nil || v.Number <= 1 {
		return nil
	}
	return v.Parent.Children[v.Number-2]
}

// secondWalk converts preliminary positions into final coordinates: x is the
// center minus half the width (top-left convention), y follows directly from
// depth.
func (w *walker) secondWalk(v *Node, m float64) {
	v.X = v.prelim + m - v.Width/2
	v.Y = float64(v.Depth) * (v.Height + w.vgap)
	for _, c := range v.Children {
		w.secondWalk(c, m+v.mod)
	}
}

// rectAcc accumulates the bounding box over all placed nodes.
type rectAcc struct {
	set                    bool
	minX, minY, maxX, maxY float64
}

func (r *rectAcc) add(n *Node) {
	if !r.set {
		r.set = true
		r.minX, r.minY = n.X, n.Y
		r.maxX, r.maxY = n.X+n.Width, n.Y+n.Height
		return
	}
	r.minX = min(r.minX, n.X)
	r.minY = min(r.minY, n.Y)
	r.maxX = max(r.maxX, n.X+n.Width)
	r.maxY = max(r.maxY, n.Y+n.Height)
}

func (r *rectAcc) rect() (out model.Rect) {
	if !r.set {
		return out
	}
	out.X, out.Y = r.minX, r.minY
	out.W, out.H = r.maxX-r.minX, r.maxY-r.minY
	return out
}
