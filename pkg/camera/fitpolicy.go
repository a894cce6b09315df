package camera

import (
	"math"

	"github.com/prabhatexit0/treehouse/pkg/model"
)

// DefaultFitThreshold is the viewport size change, in pixels on either axis,
// beyond which a resize triggers a refit. Tunable via config; the default is
// deliberately coarse so minor chrome shifts don't move the camera.
const DefaultFitThreshold = 50.0

// FitPolicy decides when the view should re-run auto-fit. Refitting on every
// expand/collapse would yank the camera around, so a refit happens only on:
//
//   - the first render,
//   - a different tree arriving (root identity or child count changed — an
//     expand/collapse never alters either), or
//   - a viewport resize beyond SizeThreshold in either dimension.
type FitPolicy struct {
	SizeThreshold float64

	fitted       bool
	lastRoot     *model.SourceNode
	lastRootKids int
	lastW, lastH float64
}

// NewFitPolicy returns a policy with the given resize threshold; zero or
// negative falls back to the default.
func NewFitPolicy(threshold float64) *FitPolicy {
	if threshold <= 0 {
		threshold = DefaultFitThreshold
	}
	return &FitPolicy{SizeThreshold: threshold}
}

// ShouldFit reports whether this (tree, viewport) combination warrants a
// refit, and records it as the new reference state when it does. Calling it
// again with identical inputs then reports false, which keeps resize
// observation idempotent.
func (p *FitPolicy) ShouldFit(root *model.SourceNode, viewportW, viewportH float64) bool {
	newTree := root != p.lastRoot || rootKids(root) != p.lastRootKids
	resized := math.Abs(viewportW-p.lastW) > p.SizeThreshold ||
		math.Abs(viewportH-p.lastH) > p.SizeThreshold

	if p.fitted && !newTree && !resized {
		return false
	}

	p.fitted = true
	p.lastRoot = root
	p.lastRootKids = rootKids(root)
	p.lastW, p.lastH = viewportW, viewportH
	return true
}

// Reset forgets the reference state so the next ShouldFit fires.
func (p *FitPolicy) Reset() {
	p.fitted = false
	p.lastRoot = nil
}

func rootKids(root *model.SourceNode) int {
	if root == nil {
		return 0
	}
	return len(root.Children)
}
