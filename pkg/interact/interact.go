// Package interact translates raw pointer, touch and wheel input into camera
// updates and semantic callbacks. The controller is a small state machine —
// idle → pressed → dragging → idle, with a separate pinching state for
// two-finger gestures — rather than a pile of ad hoc flags; every front-end
// (raster canvas, TUI) feeds events through the same code path.
package interact

import (
	"math"

	"github.com/prabhatexit0/treehouse/pkg/camera"
	"github.com/prabhatexit0/treehouse/pkg/layout"
	"github.com/prabhatexit0/treehouse/pkg/model"
)

// Input tuning constants. The drag threshold separates taps from drags; the
// wheel steps are multiplicative so repeated ticks feel uniform at any zoom.
const (
	DragThreshold = 3.0 // px in either axis before a press becomes a drag
	WheelZoomIn   = 1.1
	WheelZoomOut  = 0.9
)

// Callbacks are the semantic outputs of the controller. Nil members are
// skipped. Paths refer to the currently visible tree; the embedding state
// owns what happens next (e.g. mutating the ExpandedSet on ToggleExpand).
type Callbacks struct {
	ToggleExpand func(model.Path)
	NodeSelected func(model.Path)
	HoverChanged func(model.Path)
	HoverCleared func()
}

type state int

const (
	stateIdle state = iota
	statePressed
	stateDragging
	statePinching
)

// Controller routes input for one view. Not safe for concurrent use; all
// events arrive on the UI goroutine.
type Controller struct {
	cam *camera.Camera
	hit func(model.Point) (*layout.Node, bool)
	cb  Callbacks

	state state

	// Press origin: screen position and the camera offset at press time.
	// Dragging repositions the camera absolutely from these, so a drag never
	// accumulates rounding drift across move events.
	pressScreen model.Point
	pressCamX   float64
	pressCamY   float64
	moved       bool

	// Pinch state, valid while state == statePinching.
	pinchStartDist float64
	pinchStartZoom float64
	pinchMid       model.Point

	// Hover state.
	hovering  bool
	hoverPath model.Path
}

// New builds a controller driving cam, hit-testing through hit (screen
// points are converted to world space before the lookup).
func New(cam *camera.Camera, hit func(model.Point) (*layout.Node, bool), cb Callbacks) *Controller {
	return &Controller{cam: cam, hit: hit, cb: cb}
}

// SetHitTester swaps the hit-test function, used when a new layout pass
// replaces the visible tree.
func (c *Controller) SetHitTester(hit func(model.Point) (*layout.Node, bool)) {
	c.hit = hit
}

// PointerDown starts a potential tap or drag at a screen position.
func (c *Controller) PointerDown(at model.Point) {
	if c.state == statePinching {
		return
	}
	c.state = statePressed
	c.pressScreen = at
	c.pressCamX, c.pressCamY = c.cam.X, c.cam.Y
	c.moved = false
}

// PointerMove handles motion. With a press active it pans once the drag
// threshold is crossed; otherwise it drives hover tracking. Hover and
// hit-testing are suspended for the whole press, so a drag never flickers
// hover states along its path.
func (c *Controller) PointerMove(at model.Point) {
	switch c.state {
	case statePressed, stateDragging:
		dx := at.X - c.pressScreen.X
		dy := at.Y - c.pressScreen.Y
		if !c.moved && math.Abs(dx) <= DragThreshold && math.Abs(dy) <= DragThreshold {
			return
		}
		c.moved = true
		c.state = stateDragging
		c.cam.X = c.pressCamX + dx
		c.cam.Y = c.pressCamY + dy
	case stateIdle:
		c.updateHover(at)
	}
}

// PointerUp ends a press. A release without movement is a tap: hit-test at
// the release point, emit node-selected, and toggle expansion when the node
// has (visible or collapsed) children.
func (c *Controller) PointerUp(at model.Point) {
	if c.state == statePinching {
		return
	}
	wasTap := c.state == statePressed && !c.moved
	c.state = stateIdle

	if !wasTap {
		return
	}
	n, ok := c.hitAtScreen(at)
	if !ok {
		return
	}
	if c.cb.NodeSelected != nil {
		c.cb.NodeSelected(n.Path)
	}
	if n.Togglable() && c.cb.ToggleExpand != nil {
		c.cb.ToggleExpand(n.Path)
	}
}

// PointerLeave clears hover when the pointer exits the canvas.
func (c *Controller) PointerLeave() {
	if c.state == stateIdle {
		c.clearHover()
	}
}

// TouchStart begins a touch gesture. One finger behaves like a pointer
// press; two fingers enter pinch mode, which excludes single-finger panning
// until every finger lifts.
func (c *Controller) TouchStart(points []model.Point) {
	switch len(points) {
	case 0:
		return
	case 1:
		if c.state != statePinching {
			c.PointerDown(points[0])
		}
	default:
		c.state = statePinching
		c.pinchStartDist = dist(points[0], points[1])
		c.pinchStartZoom = c.cam.Zoom
		c.pinchMid = model.Point{
			X: (points[0].X + points[1].X) / 2,
			Y: (points[0].Y + points[1].Y) / 2,
		}
	}
}

// TouchMove updates an active gesture. In pinch mode the zoom scales with
// the finger-distance ratio, anchored at the initial midpoint — the same
// zoom-at-point math as the wheel path.
func (c *Controller) TouchMove(points []model.Point) {
	if c.state == statePinching {
		if len(points) < 2 || c.pinchStartDist <= 0 {
			return
		}
		ratio := dist(points[0], points[1]) / c.pinchStartDist
		c.cam.SetZoomAt(c.pinchMid, c.pinchStartZoom*ratio)
		return
	}
	if len(points) > 0 {
		c.PointerMove(points[0])
	}
}

// TouchEnd finishes a gesture once no fingers remain. Lifting down to one
// finger from a pinch stays in pinch mode so the gesture never degenerates
// into an accidental pan.
func (c *Controller) TouchEnd(remaining []model.Point) {
	if len(remaining) > 0 {
		return
	}
	if c.state == statePinching {
		c.state = stateIdle
		return
	}
	// Single-finger gesture: same tap/drag resolution as a pointer release.
	c.PointerUp(c.pressScreen)
}

// Wheel zooms at the pointer position: scroll up (negative delta) zooms in,
// scroll down zooms out, by fixed multiplicative steps.
func (c *Controller) Wheel(at model.Point, deltaY float64) {
	switch {
	case deltaY < 0:
		c.cam.ZoomAt(at, WheelZoomIn)
	case deltaY > 0:
		c.cam.ZoomAt(at, WheelZoomOut)
	}
}

// Hovered returns the currently hovered path, if any.
func (c *Controller) Hovered() (model.Path, bool) {
	return c.hoverPath, c.hovering
}

// Dragging reports whether a drag is in progress.
func (c *Controller) Dragging() bool { return c.state == stateDragging }

func (c *Controller) hitAtScreen(at model.Point) (*layout.Node, bool) {
	if c.hit == nil {
		return nil, false
	}
	return c.hit(c.cam.ScreenToWorld(at))
}

func (c *Controller) updateHover(at model.Point) {
	n, ok := c.hitAtScreen(at)
	if !ok {
		c.clearHover()
		return
	}
	if c.hovering && c.hoverPath == n.Path {
		return
	}
	c.hovering = true
	c.hoverPath = n.Path
	if c.cb.HoverChanged != nil {
		c.cb.HoverChanged(n.Path)
	}
}

func (c *Controller) clearHover() {
	if !c.hovering {
		return
	}
	c.hovering = false
	c.hoverPath = ""
	if c.cb.HoverCleared != nil {
		c.cb.HoverCleared()
	}
}

func dist(a, b model.Point) float64 {
	return math.Hypot(b.X-a.X, b.Y-a.Y)
}
