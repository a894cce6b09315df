// Package ui holds the view state and the terminal front-end. A Session ties
// one parsed tree to its layout, camera, and input controller; the bubbletea
// Model projects the session onto a cell grid. Raster front-ends reuse the
// same Session and draw through pkg/render instead.
package ui

import (
	"github.com/prabhatexit0/treehouse/pkg/analysis"
	"github.com/prabhatexit0/treehouse/pkg/camera"
	"github.com/prabhatexit0/treehouse/pkg/config"
	"github.com/prabhatexit0/treehouse/pkg/interact"
	"github.com/prabhatexit0/treehouse/pkg/layout"
	"github.com/prabhatexit0/treehouse/pkg/measure"
	"github.com/prabhatexit0/treehouse/pkg/model"
	"github.com/prabhatexit0/treehouse/pkg/render"
)

// Session is the per-view state: the source tree, which nodes are expanded,
// the current layout, and the camera. All mutation goes through its methods
// so layout and hit-testing never go stale.
type Session struct {
	root     *model.SourceNode
	language string
	expanded *model.ExpandedSet

	ms   *measure.Measurer
	opts layout.Options
	cfg  config.Options

	tree *layout.Tree
	cam  *camera.Camera
	fit  *camera.FitPolicy
	ctrl *interact.Controller

	width  float64 // viewport, logical px
	height float64

	selected model.Path
	cursor   model.Path
	hover    model.Path
}

// NewSession builds a session for a parsed tree, expanded to the configured
// initial depth.
func NewSession(root *model.SourceNode, language string, cfg config.Options) (*Session, error) {
	m := measure.DefaultMetrics()
	m.FontSize = cfg.FontSize
	m.NodeHeight = cfg.NodeHeight
	m.MinWidth = cfg.MinWidth
	m.TruncateLen = cfg.TruncateLen
	ms, err := measure.NewMeasurer(m)
	if err != nil {
		return nil, err
	}

	s := &Session{
		root:     root,
		language: language,
		expanded: model.ExpandToDepth(root, cfg.ExpandDepth),
		ms:       ms,
		opts:     layout.Options{HGap: cfg.HGap, VGap: cfg.VGap},
		cfg:      cfg,
		cam:      camera.New(),
		fit:      camera.NewFitPolicy(cfg.FitThreshold),
	}
	s.ctrl = interact.New(s.cam, nil, interact.Callbacks{
		ToggleExpand: s.Toggle,
		NodeSelected: func(p model.Path) { s.selected = p },
		HoverChanged: func(p model.Path) { s.hover = p },
		HoverCleared: func() { s.hover = "" },
	})
	s.rebuild()
	return s, nil
}

// Accessors for the embedding front-end.
func (s *Session) Tree() *layout.Tree               { return s.tree }
func (s *Session) Camera() *camera.Camera           { return s.cam }
func (s *Session) Controller() *interact.Controller { return s.ctrl }
func (s *Session) Measurer() *measure.Measurer      { return s.ms }
func (s *Session) Language() string                 { return s.language }
func (s *Session) Root() *model.SourceNode          { return s.root }
func (s *Session) Selected() model.Path             { return s.selected }
func (s *Session) Cursor() model.Path               { return s.cursor }
func (s *Session) Hover() model.Path                { return s.hover }

// Resize updates the viewport and refits if the fit policy asks for it.
func (s *Session) Resize(w, h float64) {
	s.width, s.height = w, h
	s.maybeFit()
}

// SetSource replaces the tree, e.g. after a watched file changed or the
// editor switched buffers. Expansion resets to the initial depth and the fit
// policy sees the new root.
func (s *Session) SetSource(root *model.SourceNode, language string) {
	s.root = root
	s.language = language
	s.expanded = model.ExpandToDepth(root, s.cfg.ExpandDepth)
	s.selected, s.cursor, s.hover = "", "", ""
	s.rebuild()
}

// Toggle flips one node's expansion and relays out. The camera is left alone:
// collapse and expand never move the viewport.
func (s *Session) Toggle(p model.Path) {
	if n, ok := s.tree.NodeByPath(p); !ok || !n.Togglable() {
		return
	}
	s.expanded.Toggle(p)
	s.rebuild()
}

// ExpandAll opens every internal node.
func (s *Session) ExpandAll() {
	s.expanded = model.ExpandAll(s.root)
	s.rebuild()
}

// CollapseAll closes everything back to a lone root.
func (s *Session) CollapseAll() {
	s.expanded = model.NewExpandedSet()
	s.rebuild()
}

// Select marks a node as selected without toggling it.
func (s *Session) Select(p model.Path) {
	if _, ok := s.tree.NodeByPath(p); ok {
		s.selected = p
	}
}

// Refit forces an auto-fit regardless of policy state, for an explicit
// fit-to-view key.
func (s *Session) Refit() {
	s.cam.Fit(s.tree.Bounds(), s.width, s.height, s.cfg.FitPadding)
}

// SetCursorOffset syncs the view to an editor cursor at a byte offset: the
// deepest visible node containing the offset becomes the cursor highlight and
// is scrolled into view. An offset outside the tree clears the cursor.
func (s *Session) SetCursorOffset(off uint32) {
	p, ok := s.visiblePathAt(off)
	if !ok {
		s.cursor = ""
		return
	}
	s.cursor = p
	if n, ok := s.tree.NodeByPath(p); ok {
		s.cam.ScrollIntoView(n.Rect(), s.width, s.height, s.cfg.ScrollMargin)
	}
}

// visiblePathAt descends from the root toward the offset, stopping at the
// first collapsed node. Later children win when spans touch, matching
// hit-test order.
func (s *Session) visiblePathAt(off uint32) (model.Path, bool) {
	if s.root == nil || !s.root.ContainsOffset(off) {
		return "", false
	}
	p := model.RootPath
	n := s.root
	for s.expanded.Has(p) {
		advanced := false
		for i := len(n.Children) - 1; i >= 0; i-- {
			if n.Children[i].ContainsOffset(off) {
				n = n.Children[i]
				p = p.Child(i)
				advanced = true
				break
			}
		}
		if !advanced {
			break
		}
	}
	return p, true
}

// Highlights packages the current highlight state for a renderer frame.
func (s *Session) Highlights() render.Highlights {
	return render.Highlights{Cursor: s.cursor, Hover: s.hover}
}

// Render draws one frame of the session through a raster renderer.
func (s *Session) Render(r *render.Renderer) {
	r.Frame(s.tree, s.cam, s.Highlights())
}

// Stats computes shape statistics for the full source tree (not just the
// visible part).
func (s *Session) Stats() analysis.TreeStats {
	return analysis.Compute(s.root)
}

func (s *Session) rebuild() {
	s.tree = layout.Build(s.root, s.expanded, s.ms, s.opts)
	s.ctrl.SetHitTester(s.tree.HitTest)
	// Selection can go stale when its subtree collapses away.
	if _, ok := s.tree.NodeByPath(s.selected); !ok {
		s.selected = ""
	}
	if _, ok := s.tree.NodeByPath(s.cursor); !ok {
		s.cursor = ""
	}
	s.maybeFit()
}

func (s *Session) maybeFit() {
	if s.width <= 0 || s.height <= 0 {
		return
	}
	if s.fit.ShouldFit(s.root, s.width, s.height) {
		s.cam.Fit(s.tree.Bounds(), s.width, s.height, s.cfg.FitPadding)
	}
}
