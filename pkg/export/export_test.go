package export

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prabhatexit0/treehouse/pkg/layout"
	"github.com/prabhatexit0/treehouse/pkg/measure"
	"github.com/prabhatexit0/treehouse/pkg/model"
)

func exportTree(t *testing.T) (*layout.Tree, *measure.Measurer) {
	t.Helper()
	root := &model.SourceNode{Kind: "source_file", IsNamed: true, Children: []*model.SourceNode{
		{Kind: "package_clause", IsNamed: true, Children: []*model.SourceNode{
			{Kind: "package", Text: "package"},
			{Kind: "identifier", IsNamed: true, Text: "main"},
		}},
		{Kind: "function_declaration", IsNamed: true, Children: []*model.SourceNode{
			{Kind: "identifier", IsNamed: true, Text: "main"},
		}},
	}}
	ms, err := measure.NewMeasurer(measure.DefaultMetrics())
	if err != nil {
		t.Fatal(err)
	}
	return layout.Build(root, model.ExpandAll(root), ms, layout.DefaultOptions()), ms
}

func TestPNGWritesDecodableImage(t *testing.T) {
	tree, ms := exportTree(t)
	path := filepath.Join(t.TempDir(), "tree.png")

	if err := PNG(tree, ms, Options{}, path); err != nil {
		t.Fatalf("PNG: %v", err)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	b := tree.Bounds()
	wantW := int(b.W) + 80 // default padding both sides
	if img.Bounds().Dx() < wantW {
		t.Errorf("image width %d, want at least %d", img.Bounds().Dx(), wantW)
	}
}

func TestPNGHonorsDPR(t *testing.T) {
	tree, ms := exportTree(t)
	dir := t.TempDir()
	one := filepath.Join(dir, "1x.png")
	two := filepath.Join(dir, "2x.png")

	if err := PNG(tree, ms, Options{DPR: 1}, one); err != nil {
		t.Fatal(err)
	}
	if err := PNG(tree, ms, Options{DPR: 2}, two); err != nil {
		t.Fatal(err)
	}

	w1 := decodeWidth(t, one)
	w2 := decodeWidth(t, two)
	if w2 != 2*w1 {
		t.Errorf("2x image width %d, want %d", w2, 2*w1)
	}
}

func decodeWidth(t *testing.T, path string) int {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	cfg, err := png.DecodeConfig(f)
	if err != nil {
		t.Fatal(err)
	}
	return cfg.Width
}

func TestSVGContainsNodes(t *testing.T) {
	tree, ms := exportTree(t)

	var buf bytes.Buffer
	if err := SVG(tree, ms, Options{}, &buf); err != nil {
		t.Fatalf("SVG: %v", err)
	}
	out := buf.String()

	for _, want := range []string{"<svg", "</svg>", "source_file", "function_declaration"} {
		if !strings.Contains(out, want) {
			t.Errorf("svg missing %q", want)
		}
	}
	// One rounded rect per node plus any badges.
	if got := strings.Count(out, "<rect"); got < tree.Len() {
		t.Errorf("%d rects for %d nodes", got, tree.Len())
	}
	// Every parent-child pair draws one connector path.
	edges := 0
	for _, n := range tree.Nodes() {
		edges += len(n.Children)
	}
	if got := strings.Count(out, "<path"); got != edges {
		t.Errorf("%d paths, want %d edges", got, edges)
	}
}

func TestSVGCollapsedBadge(t *testing.T) {
	root := &model.SourceNode{Kind: "block", IsNamed: true, Children: []*model.SourceNode{
		{Kind: "a", IsNamed: true}, {Kind: "b", IsNamed: true},
	}}
	ms, err := measure.NewMeasurer(measure.DefaultMetrics())
	if err != nil {
		t.Fatal(err)
	}
	tree := layout.Build(root, model.NewExpandedSet(), ms, layout.DefaultOptions())

	var buf bytes.Buffer
	if err := SVG(tree, ms, Options{}, &buf); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "+2") {
		t.Error("collapsed root should render a +2 badge")
	}
}

func TestWatcherFiresOnWrite(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "main.go")
	if err := os.WriteFile(target, []byte("package main\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	var fired atomic.Int32
	w, err := Watch(target, 10*time.Millisecond, func() { fired.Add(1) })
	if err != nil {
		t.Fatalf("Watch: %v", err)
	}
	defer w.Stop()

	time.Sleep(50 * time.Millisecond)
	if err := os.WriteFile(target, []byte("package main // changed\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	deadline := time.Now().Add(2 * time.Second)
	for fired.Load() == 0 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	if fired.Load() == 0 {
		t.Error("watcher never fired after a write")
	}
}

func TestWatcherIgnoresSiblings(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "main.go")
	other := filepath.Join(dir, "other.go")
	for _, p := range []string{target, other} {
		if err := os.WriteFile(p, []byte("package main\n"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	var fired atomic.Int32
	w, err := Watch(target, 0, func() { fired.Add(1) })
	if err != nil {
		t.Fatal(err)
	}
	defer w.Stop()

	time.Sleep(50 * time.Millisecond)
	if err := os.WriteFile(other, []byte("package main // changed\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	time.Sleep(200 * time.Millisecond)

	if fired.Load() != 0 {
		t.Errorf("watcher fired %d times for a sibling file", fired.Load())
	}
}
