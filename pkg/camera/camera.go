// Package camera owns the pan/zoom transform between world coordinates (the
// layout's space) and screen pixels, along with the auto-fit and
// scroll-into-view policies. One Camera is exclusively owned by one view;
// there are no concurrent writers.
package camera

import (
	"github.com/prabhatexit0/treehouse/pkg/model"
)

// Zoom clamp range. Defensive clamps stand in for error signaling: a wheel
// or pinch can never push the view into a degenerate transform.
const (
	MinZoom = 0.1
	MaxZoom = 3.0
)

// Camera is the affine world→screen transform:
//
//	screen = world*Zoom + (X, Y)
type Camera struct {
	X, Y float64
	Zoom float64
}

// New returns an identity camera.
func New() *Camera {
	return &Camera{Zoom: 1}
}

// WorldToScreen maps a world point to screen pixels.
func (c *Camera) WorldToScreen(p model.Point) model.Point {
	return model.Point{X: p.X*c.Zoom + c.X, Y: p.Y*c.Zoom + c.Y}
}

// ScreenToWorld maps a screen pixel to world coordinates.
func (c *Camera) ScreenToWorld(p model.Point) model.Point {
	return model.Point{X: (p.X - c.X) / c.Zoom, Y: (p.Y - c.Y) / c.Zoom}
}

// Pan adds a screen-space delta to the offset. Unclamped: content may be
// panned arbitrarily far off-screen.
func (c *Camera) Pan(dx, dy float64) {
	c.X += dx
	c.Y += dy
}

// ZoomAt multiplies the zoom by factor while keeping the world point under
// the screen anchor visually fixed. Zoom is clamped to [MinZoom, MaxZoom];
// the anchor invariant holds for the clamped value too.
func (c *Camera) ZoomAt(anchor model.Point, factor float64) {
	c.SetZoomAt(anchor, c.Zoom*factor)
}

// SetZoomAt sets an absolute zoom level anchored at a screen point.
func (c *Camera) SetZoomAt(anchor model.Point, zoom float64) {
	zoom = clampZoom(zoom)
	world := c.ScreenToWorld(anchor)
	c.Zoom = zoom
	// Re-solve the offset so the anchor's world point maps back onto it.
	c.X = anchor.X - world.X*c.Zoom
	c.Y = anchor.Y - world.Y*c.Zoom
}

// Fit positions the camera so bounds fits inside a viewport of the given
// pixel size with padding on every side, capped at 100% so fitting never
// zooms in, and centered horizontally. Empty bounds reset to identity.
// Fit is idempotent: the same inputs always produce the same camera.
func (c *Camera) Fit(bounds model.Rect, viewportW, viewportH, padding float64) {
	if bounds.W <= 0 || bounds.H <= 0 || viewportW <= 0 || viewportH <= 0 {
		c.X, c.Y, c.Zoom = 0, 0, 1
		return
	}

	zx := (viewportW - 2*padding) / bounds.W
	zy := (viewportH - 2*padding) / bounds.H
	zoom := min(zx, zy)
	if zoom > 1 {
		zoom = 1
	}
	c.Zoom = clampZoom(zoom)

	// Center horizontally; pin the top edge at the padding.
	c.X = (viewportW-bounds.W*c.Zoom)/2 - bounds.X*c.Zoom
	c.Y = padding - bounds.Y*c.Zoom
}

// ScrollIntoView translates the camera by the minimal amount that brings the
// target world rectangle within margin of every viewport edge. Zoom is
// untouched. A target already within margins is a no-op.
func (c *Camera) ScrollIntoView(target model.Rect, viewportW, viewportH, margin float64) {
	left := target.X*c.Zoom + c.X
	top := target.Y*c.Zoom + c.Y
	right := left + target.W*c.Zoom
	bottom := top + target.H*c.Zoom

	switch {
	case left < margin:
		c.X += margin - left
	case right > viewportW-margin:
		c.X -= right - (viewportW - margin)
	}
	switch {
	case top < margin:
		c.Y += margin - top
	case bottom > viewportH-margin:
		c.Y -= bottom - (viewportH - margin)
	}
}

func clampZoom(z float64) float64 {
	if z < MinZoom {
		return MinZoom
	}
	if z > MaxZoom {
		return MaxZoom
	}
	return z
}
