// Package export writes snapshots of a laid-out tree: PNG through the raster
// renderer, SVG as a standalone vector document. Both share the renderer's
// color scheme so a snapshot looks like a frozen frame of the viewer.
package export

import (
	"fmt"
	"io"
	"math"

	svg "github.com/ajstarks/svgo"

	"github.com/prabhatexit0/treehouse/pkg/camera"
	"github.com/prabhatexit0/treehouse/pkg/layout"
	"github.com/prabhatexit0/treehouse/pkg/measure"
	"github.com/prabhatexit0/treehouse/pkg/render"
)

// Options controls snapshot geometry. The zero value gets sensible defaults
// from normalize.
type Options struct {
	Padding float64 // margin around the tree bounds, logical px
	DPR     float64 // device pixel ratio for PNG output
	Scheme  render.Scheme
}

func (o Options) normalize() Options {
	if o.Padding <= 0 {
		o.Padding = 40
	}
	if o.DPR < 1 {
		o.DPR = 1
	}
	if o.Scheme == (render.Scheme{}) {
		o.Scheme = render.DefaultScheme()
	}
	return o
}

// frameFor sizes a canvas to the tree bounds plus padding and positions an
// identity-zoom camera so the tree sits inside the margin.
func frameFor(tree *layout.Tree, opts Options) (w, h int, cam *camera.Camera) {
	b := tree.Bounds()
	w = int(math.Ceil(b.W + 2*opts.Padding))
	h = int(math.Ceil(b.H + 2*opts.Padding))
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return w, h, &camera.Camera{X: opts.Padding - b.X, Y: opts.Padding - b.Y, Zoom: 1}
}

// PNG renders the whole tree at zoom 1 and writes it to path.
func PNG(tree *layout.Tree, ms *measure.Measurer, opts Options, path string) error {
	opts = opts.normalize()
	w, h, cam := frameFor(tree, opts)

	r := render.New(w, h, opts.DPR, ms, opts.Scheme)
	r.Frame(tree, cam, render.Highlights{})
	if err := r.SavePNG(path); err != nil {
		return fmt.Errorf("write png: %w", err)
	}
	return nil
}

// SVG writes the whole tree as a standalone SVG document. Edges, boxes, and
// labels mirror the raster renderer; the drop shadow is omitted since vector
// viewers supply their own backgrounds.
func SVG(tree *layout.Tree, ms *measure.Measurer, opts Options, w io.Writer) error {
	opts = opts.normalize()
	width, height, cam := frameFor(tree, opts)
	m := ms.Metrics()
	sc := opts.Scheme

	canvas := svg.New(w)
	canvas.Start(width, height)
	canvas.Rect(0, 0, width, height, "fill:"+sc.Background)
	canvas.Gtransform(fmt.Sprintf("translate(%.1f,%.1f)", cam.X, cam.Y))

	edgeStyle := fmt.Sprintf("fill:none;stroke:%s;stroke-width:1.5", sc.Edge)
	for _, n := range tree.Nodes() {
		for _, c := range n.Children {
			canvas.Path(edgePath(n, c), edgeStyle)
		}
	}

	textStyle := fmt.Sprintf("font-family:monospace;font-size:%.0fpx", m.FontSize)
	for _, n := range tree.Nodes() {
		fill, border := sc.NamedFill, sc.NamedBorder
		if !n.Source.IsNamed {
			fill, border = sc.AnonFill, sc.AnonBorder
		}
		canvas.Roundrect(round(n.X), round(n.Y), round(n.Width), round(n.Height), 6, 6,
			fmt.Sprintf("fill:%s;stroke:%s;stroke-width:1.5", fill, border))

		kind, snippet := ms.Label(n.Source)
		textX := n.X + m.PadX
		textY := n.Y + n.Height/2 + m.FontSize*0.35
		kindColor := sc.KindNamed
		if !n.Source.IsNamed {
			kindColor = sc.KindAnon
		}
		canvas.Text(round(textX), round(textY), kind, textStyle+";fill:"+kindColor)
		if snippet != "" {
			canvas.Text(round(textX+ms.Width(kind+" ")), round(textY), snippet,
				textStyle+";fill:"+sc.Snippet)
		}

		if badge := measure.BadgeLabel(n.HiddenChildren); badge != "" {
			badgeW := ms.Width(badge) + 2*m.BadgePad
			bx := n.X + n.Width - m.PadX - badgeW
			by := n.Y + (n.Height-17)/2
			canvas.Roundrect(round(bx), round(by), round(badgeW), 17, 8, 8, "fill:"+sc.BadgeFill)
			canvas.Text(round(bx+m.BadgePad), round(textY), badge, textStyle+";fill:"+sc.BadgeText)
		}
	}

	canvas.Gend()
	canvas.End()
	return nil
}

// edgePath mirrors the renderer's connector: an S-curve through the vertical
// midpoint, or a straight segment when parent and child share a column.
func edgePath(parent, child *layout.Node) string {
	x1 := parent.X + parent.Width/2
	y1 := parent.Y + parent.Height
	x2 := child.X + child.Width/2
	y2 := child.Y

	if math.Abs(x1-x2) < 0.5 {
		return fmt.Sprintf("M%.1f,%.1f L%.1f,%.1f", x1, y1, x2, y2)
	}
	midY := (y1 + y2) / 2
	return fmt.Sprintf("M%.1f,%.1f C%.1f,%.1f %.1f,%.1f %.1f,%.1f",
		x1, y1, x1, midY, x2, midY, x2, y2)
}

func round(v float64) int { return int(math.Round(v)) }
