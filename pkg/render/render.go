// Package render draws a laid-out tree onto a raster canvas under the camera
// transform. Every frame is a full redraw: clear, apply the transform once,
// draw all connectors, then all node boxes on top. There is no partial
// repaint, which keeps the renderer stateless between frames.
package render

import (
	"image"
	"math"

	"git.sr.ht/~sbinet/gg"

	"github.com/prabhatexit0/treehouse/pkg/camera"
	"github.com/prabhatexit0/treehouse/pkg/layout"
	"github.com/prabhatexit0/treehouse/pkg/measure"
	"github.com/prabhatexit0/treehouse/pkg/model"
)

const (
	cornerRadius = 6.0
	badgeRadius  = 8.0
	edgeWidth    = 1.5
	borderWidth  = 1.5
	shadowOffset = 3.0
	badgeHeight  = 17.0
)

// Highlights carries the externally owned highlight state into a frame.
// Empty paths mean "none".
type Highlights struct {
	Cursor model.Path // node at the editor cursor
	Hover  model.Path // node under the pointer
}

// Renderer rasterizes frames at a fixed logical size. The pixel buffer is
// sized for the device pixel ratio so output stays crisp on high-density
// displays; callers work in logical pixels throughout.
type Renderer struct {
	dc     *gg.Context
	width  float64 // logical px
	height float64
	dpr    float64

	ms     *measure.Measurer
	scheme Scheme
}

// New builds a renderer with a w×h logical viewport at the given device
// pixel ratio (values < 1 are treated as 1).
func New(w, h int, dpr float64, ms *measure.Measurer, scheme Scheme) *Renderer {
	r := &Renderer{ms: ms, scheme: scheme}
	r.SetSize(w, h, dpr)
	return r
}

// SetSize reallocates the pixel buffer for a new viewport size or density.
func (r *Renderer) SetSize(w, h int, dpr float64) {
	if dpr < 1 {
		dpr = 1
	}
	r.width, r.height, r.dpr = float64(w), float64(h), dpr
	r.dc = gg.NewContext(int(float64(w)*dpr), int(float64(h)*dpr))
	r.dc.SetFontFace(r.ms.Face())
}

// Size returns the logical viewport size.
func (r *Renderer) Size() (w, h float64) { return r.width, r.height }

// Image exposes the current frame's pixels.
func (r *Renderer) Image() image.Image { return r.dc.Image() }

// SavePNG writes the current frame to disk.
func (r *Renderer) SavePNG(path string) error { return r.dc.SavePNG(path) }

// Frame renders one complete frame of the tree through cam. An empty tree
// clears to the background and returns.
func (r *Renderer) Frame(tree *layout.Tree, cam *camera.Camera, hl Highlights) {
	dc := r.dc
	dc.Identity()
	dc.SetHexColor(r.scheme.Background)
	dc.Clear()

	if tree == nil || tree.Len() == 0 {
		return
	}

	// One camera-derived affine transform per frame: device scale, then the
	// world→screen translate and zoom. Everything below draws in world space.
	dc.Scale(r.dpr, r.dpr)
	dc.Translate(cam.X, cam.Y)
	dc.Scale(cam.Zoom, cam.Zoom)

	// Connectors first so boxes cover the joints.
	dc.SetLineWidth(edgeWidth)
	dc.SetHexColor(r.scheme.Edge)
	for _, n := range tree.Nodes() {
		for _, c := range n.Children {
			r.drawEdge(n, c)
		}
	}

	for _, n := range tree.Nodes() {
		r.drawNode(n, hl)
	}
}

// drawEdge connects a parent's bottom center to a child's top center with an
// S-curve through the vertical midpoint, degenerating to a straight line
// when the two share a column.
func (r *Renderer) drawEdge(parent, child *layout.Node) {
	dc := r.dc
	x1 := parent.X + parent.Width/2
	y1 := parent.Y + parent.Height
	x2 := child.X + child.Width/2
	y2 := child.Y

	dc.MoveTo(x1, y1)
	if math.Abs(x1-x2) < 0.5 {
		dc.LineTo(x2, y2)
	} else {
		midY := (y1 + y2) / 2
		dc.CubicTo(x1, midY, x2, midY, x2, y2)
	}
	dc.Stroke()
}

func (r *Renderer) drawNode(n *layout.Node, hl Highlights) {
	dc := r.dc
	fill, border := r.boxColors(n, hl)

	// Drop shadow under the box.
	dc.SetRGBA(0, 0, 0, 0.35)
	dc.DrawRoundedRectangle(n.X+shadowOffset, n.Y+shadowOffset, n.Width, n.Height, cornerRadius)
	dc.Fill()

	dc.SetHexColor(fill)
	dc.DrawRoundedRectangle(n.X, n.Y, n.Width, n.Height, cornerRadius)
	dc.FillPreserve()
	dc.SetHexColor(border)
	dc.SetLineWidth(borderWidth)
	dc.Stroke()

	kind, snippet := r.ms.Label(n.Source)
	m := r.ms.Metrics()
	textX := n.X + m.PadX
	textY := n.Y + n.Height/2

	if n.Source.IsNamed {
		dc.SetHexColor(r.scheme.KindNamed)
	} else {
		dc.SetHexColor(r.scheme.KindAnon)
	}
	dc.DrawStringAnchored(kind, textX, textY, 0, 0.35)

	if snippet != "" {
		dc.SetHexColor(r.scheme.Snippet)
		dc.DrawStringAnchored(snippet, textX+r.ms.Width(kind+" "), textY, 0, 0.35)
	}

	if badge := measure.BadgeLabel(n.HiddenChildren); badge != "" {
		badgeW := r.ms.Width(badge) + 2*m.BadgePad
		bx := n.X + n.Width - m.PadX - badgeW
		by := n.Y + (n.Height-badgeHeight)/2

		dc.SetHexColor(r.scheme.BadgeFill)
		dc.DrawRoundedRectangle(bx, by, badgeW, badgeHeight, badgeRadius)
		dc.Fill()
		dc.SetHexColor(r.scheme.BadgeText)
		dc.DrawStringAnchored(badge, bx+m.BadgePad, textY, 0, 0.35)
	}
}

// boxColors resolves the fill/border pair by state precedence:
// cursor > hover > named > anonymous.
func (r *Renderer) boxColors(n *layout.Node, hl Highlights) (fill, border string) {
	switch {
	case hl.Cursor != "" && n.Path == hl.Cursor:
		return r.scheme.CursorFill, r.scheme.CursorBorder
	case hl.Hover != "" && n.Path == hl.Hover:
		return r.scheme.HoverFill, r.scheme.HoverBorder
	case n.Source.IsNamed:
		return r.scheme.NamedFill, r.scheme.NamedBorder
	default:
		return r.scheme.AnonFill, r.scheme.AnonBorder
	}
}
