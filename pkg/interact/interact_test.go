package interact

import (
	"testing"

	"gonum.org/v1/gonum/floats/scalar"

	"github.com/prabhatexit0/treehouse/pkg/camera"
	"github.com/prabhatexit0/treehouse/pkg/layout"
	"github.com/prabhatexit0/treehouse/pkg/measure"
	"github.com/prabhatexit0/treehouse/pkg/model"
)

// recorder captures emitted callbacks in order.
type recorder struct {
	selected []model.Path
	toggled  []model.Path
	hovers   []model.Path
	cleared  int
}

func (r *recorder) callbacks() Callbacks {
	return Callbacks{
		NodeSelected: func(p model.Path) { r.selected = append(r.selected, p) },
		ToggleExpand: func(p model.Path) { r.toggled = append(r.toggled, p) },
		HoverChanged: func(p model.Path) { r.hovers = append(r.hovers, p) },
		HoverCleared: func() { r.cleared++ },
	}
}

// newTestController lays out a root with two leaf children under an identity
// camera, so world coordinates equal screen coordinates.
func newTestController(t *testing.T) (*Controller, *recorder, *layout.Tree, *camera.Camera) {
	t.Helper()
	ms, err := measure.NewMeasurer(measure.DefaultMetrics())
	if err != nil {
		t.Fatalf("NewMeasurer: %v", err)
	}
	src := &model.SourceNode{Kind: "program", IsNamed: true, Children: []*model.SourceNode{
		{Kind: "a", IsNamed: true, Children: []*model.SourceNode{{Kind: "x"}}},
		{Kind: "b", IsNamed: true},
	}}
	exp := model.NewExpandedSet()
	exp.Add(model.RootPath)
	tr := layout.Build(src, exp, ms, layout.DefaultOptions())

	cam := camera.New()
	rec := &recorder{}
	ctrl := New(cam, tr.HitTest, rec.callbacks())
	return ctrl, rec, tr, cam
}

func centerOf(n *layout.Node) model.Point {
	return model.Point{X: n.X + n.Width/2, Y: n.Y + n.Height/2}
}

func TestTapSelectsAndToggles(t *testing.T) {
	ctrl, rec, tr, _ := newTestController(t)
	root := tr.Root
	at := centerOf(root)

	ctrl.PointerDown(at)
	ctrl.PointerUp(at)

	if len(rec.selected) != 1 || rec.selected[0] != model.RootPath {
		t.Errorf("expected root selected, got %v", rec.selected)
	}
	// Root has visible children, so the tap also requests a toggle.
	if len(rec.toggled) != 1 || rec.toggled[0] != model.RootPath {
		t.Errorf("expected root toggle, got %v", rec.toggled)
	}
}

func TestTapOnLeafSelectsWithoutToggle(t *testing.T) {
	ctrl, rec, tr, _ := newTestController(t)
	b, ok := tr.NodeByPath("root-1")
	if !ok {
		t.Fatal("leaf b not found")
	}

	ctrl.PointerDown(centerOf(b))
	ctrl.PointerUp(centerOf(b))

	if len(rec.selected) != 1 || rec.selected[0] != "root-1" {
		t.Errorf("expected leaf selected, got %v", rec.selected)
	}
	if len(rec.toggled) != 0 {
		t.Errorf("childless leaf must not toggle, got %v", rec.toggled)
	}
}

func TestTapOnCollapsedNodeToggles(t *testing.T) {
	// Child "a" has a hidden child, so a tap should still toggle it.
	ctrl, rec, tr, _ := newTestController(t)
	a, _ := tr.NodeByPath("root-0")
	if a.HiddenChildren != 1 {
		t.Fatalf("expected a collapsed child, got %d", a.HiddenChildren)
	}

	ctrl.PointerDown(centerOf(a))
	ctrl.PointerUp(centerOf(a))

	if len(rec.toggled) != 1 || rec.toggled[0] != "root-0" {
		t.Errorf("collapsed node should toggle, got %v", rec.toggled)
	}
}

func TestTapOnEmptySpace(t *testing.T) {
	ctrl, rec, _, _ := newTestController(t)
	miss := model.Point{X: -500, Y: -500}

	ctrl.PointerDown(miss)
	ctrl.PointerUp(miss)

	if len(rec.selected) != 0 || len(rec.toggled) != 0 {
		t.Errorf("miss should emit nothing, got %v / %v", rec.selected, rec.toggled)
	}
}

func TestDragPansWithoutCallbacks(t *testing.T) {
	ctrl, rec, _, cam := newTestController(t)

	ctrl.PointerDown(model.Point{X: 100, Y: 100})
	ctrl.PointerMove(model.Point{X: 130, Y: 90})
	if !ctrl.Dragging() {
		t.Error("move past the threshold should enter dragging")
	}
	ctrl.PointerUp(model.Point{X: 130, Y: 90})

	if cam.X != 30 || cam.Y != -10 {
		t.Errorf("camera should pan by the screen delta, got (%v,%v)", cam.X, cam.Y)
	}
	if len(rec.selected) != 0 || len(rec.toggled) != 0 {
		t.Error("a drag release must not select or toggle")
	}
}

func TestSubThresholdMoveIsStillATap(t *testing.T) {
	ctrl, rec, tr, cam := newTestController(t)
	at := centerOf(tr.Root)

	ctrl.PointerDown(at)
	ctrl.PointerMove(model.Point{X: at.X + 2, Y: at.Y - 2})
	ctrl.PointerUp(model.Point{X: at.X + 2, Y: at.Y - 2})

	if cam.X != 0 || cam.Y != 0 {
		t.Errorf("sub-threshold move must not pan, got (%v,%v)", cam.X, cam.Y)
	}
	if len(rec.selected) != 1 {
		t.Errorf("expected a tap, got %v", rec.selected)
	}
}

func TestHoverTransitions(t *testing.T) {
	ctrl, rec, tr, _ := newTestController(t)
	a, _ := tr.NodeByPath("root-0")
	b, _ := tr.NodeByPath("root-1")

	// Enter a.
	ctrl.PointerMove(centerOf(a))
	if len(rec.hovers) != 1 || rec.hovers[0] != "root-0" {
		t.Fatalf("expected hover a, got %v", rec.hovers)
	}

	// Jitter inside a: no duplicate event.
	ctrl.PointerMove(model.Point{X: a.X + a.Width/2 + 1, Y: a.Y + a.Height/2})
	if len(rec.hovers) != 1 {
		t.Errorf("hover within the same node re-fired: %v", rec.hovers)
	}

	// Move to b.
	ctrl.PointerMove(centerOf(b))
	if len(rec.hovers) != 2 || rec.hovers[1] != "root-1" {
		t.Errorf("expected hover b, got %v", rec.hovers)
	}

	// Leave all nodes.
	ctrl.PointerMove(model.Point{X: -500, Y: -500})
	if rec.cleared != 1 {
		t.Errorf("expected one hover-cleared, got %d", rec.cleared)
	}
	if _, ok := ctrl.Hovered(); ok {
		t.Error("controller should report no hover after clearing")
	}

	// Clearing twice does not re-fire.
	ctrl.PointerLeave()
	if rec.cleared != 1 {
		t.Errorf("redundant clear fired, got %d", rec.cleared)
	}
}

func TestHoverSuspendedWhileDragging(t *testing.T) {
	ctrl, rec, tr, _ := newTestController(t)
	a, _ := tr.NodeByPath("root-0")

	ctrl.PointerDown(model.Point{X: 5, Y: 5})
	ctrl.PointerMove(centerOf(a)) // crosses the threshold: a drag, not a hover
	if len(rec.hovers) != 0 {
		t.Errorf("hover fired during drag: %v", rec.hovers)
	}
	ctrl.PointerUp(centerOf(a))
	if len(rec.selected) != 0 {
		t.Error("drag release selected a node")
	}
}

func TestWheelZoomSteps(t *testing.T) {
	ctrl, _, _, cam := newTestController(t)
	at := model.Point{X: 200, Y: 150}

	ctrl.Wheel(at, -1) // scroll up: zoom in
	if !scalar.EqualWithinAbs(cam.Zoom, WheelZoomIn, 1e-9) {
		t.Errorf("zoom in step = %v, want %v", cam.Zoom, WheelZoomIn)
	}

	ctrl.Wheel(at, 1) // scroll down: zoom out
	if !scalar.EqualWithinAbs(cam.Zoom, WheelZoomIn*WheelZoomOut, 1e-9) {
		t.Errorf("zoom after in+out = %v", cam.Zoom)
	}

	ctrl.Wheel(at, 0) // no delta: no change
	if !scalar.EqualWithinAbs(cam.Zoom, WheelZoomIn*WheelZoomOut, 1e-9) {
		t.Error("zero delta should not zoom")
	}
}

func TestPinchDoublesZoomAtMidpoint(t *testing.T) {
	ctrl, _, _, cam := newTestController(t)

	p1 := model.Point{X: 300, Y: 300}
	p2 := model.Point{X: 500, Y: 300}
	mid := model.Point{X: 400, Y: 300}
	worldAtMid := cam.ScreenToWorld(mid)

	ctrl.TouchStart([]model.Point{p1, p2})
	// Spread fingers to twice the distance.
	ctrl.TouchMove([]model.Point{{X: 200, Y: 300}, {X: 600, Y: 300}})

	if !scalar.EqualWithinAbs(cam.Zoom, 2, 1e-9) {
		t.Errorf("2x pinch from zoom=1 should double zoom, got %v", cam.Zoom)
	}
	after := cam.WorldToScreen(worldAtMid)
	if !scalar.EqualWithinAbs(after.X, mid.X, 1e-9) || !scalar.EqualWithinAbs(after.Y, mid.Y, 1e-9) {
		t.Errorf("pinch midpoint drifted to %+v", after)
	}
}

func TestPinchExcludesPanning(t *testing.T) {
	ctrl, rec, _, cam := newTestController(t)

	ctrl.TouchStart([]model.Point{{X: 100, Y: 100}, {X: 200, Y: 100}})
	x, y := cam.X, cam.Y

	// One finger lifts; the survivor slides. Still pinch mode: no pan.
	ctrl.TouchEnd([]model.Point{{X: 100, Y: 100}})
	ctrl.TouchMove([]model.Point{{X: 150, Y: 180}})
	if cam.X != x || cam.Y != y {
		t.Errorf("pan leaked out of pinch mode: (%v,%v)", cam.X, cam.Y)
	}

	// All fingers up: gesture over, no tap emitted.
	ctrl.TouchEnd(nil)
	if len(rec.selected) != 0 {
		t.Errorf("pinch end selected a node: %v", rec.selected)
	}

	// Next single-finger gesture pans normally again.
	ctrl.TouchStart([]model.Point{{X: 100, Y: 100}})
	ctrl.TouchMove([]model.Point{{X: 150, Y: 120}})
	ctrl.TouchEnd(nil)
	if cam.X != x+50 || cam.Y != y+20 {
		t.Errorf("pan after pinch broken: (%v,%v)", cam.X, cam.Y)
	}
}

func TestSingleFingerTap(t *testing.T) {
	ctrl, rec, tr, _ := newTestController(t)
	b, _ := tr.NodeByPath("root-1")

	ctrl.TouchStart([]model.Point{centerOf(b)})
	ctrl.TouchEnd(nil)

	if len(rec.selected) != 1 || rec.selected[0] != "root-1" {
		t.Errorf("touch tap should select, got %v", rec.selected)
	}
}
