package model

import "testing"

// testTree builds a small fixed tree:
//
//	root (program)
//	├── 0 (decl)
//	│   ├── 0 (ident "x")
//	│   └── 1 (number "1")
//	└── 1 (comment "// hi")
func testTree() *SourceNode {
	return &SourceNode{
		Kind: "program", IsNamed: true, StartByte: 0, EndByte: 11,
		Children: []*SourceNode{
			{
				Kind: "decl", IsNamed: true, StartByte: 0, EndByte: 5,
				Children: []*SourceNode{
					{Kind: "ident", IsNamed: true, Text: "x", StartByte: 0, EndByte: 1},
					{Kind: "number", IsNamed: true, Text: "1", StartByte: 4, EndByte: 5},
				},
			},
			{Kind: "comment", IsNamed: false, Text: "// hi", StartByte: 6, EndByte: 11},
		},
	}
}

func TestPathChildAndParent(t *testing.T) {
	p := RootPath.Child(0).Child(2)
	if p != "root-0-2" {
		t.Errorf("expected root-0-2, got %s", p)
	}

	parent, ok := p.Parent()
	if !ok || parent != "root-0" {
		t.Errorf("expected parent root-0, got %s (ok=%v)", parent, ok)
	}

	if _, ok := RootPath.Parent(); ok {
		t.Error("root should have no parent")
	}
}

func TestPathIndices(t *testing.T) {
	idxs, ok := Path("root-1-0-3").Indices()
	if !ok {
		t.Fatal("expected valid path")
	}
	want := []int{1, 0, 3}
	if len(idxs) != len(want) {
		t.Fatalf("expected %d indices, got %d", len(want), len(idxs))
	}
	for i := range want {
		if idxs[i] != want[i] {
			t.Errorf("index %d: expected %d, got %d", i, want[i], idxs[i])
		}
	}

	if _, ok := Path("bogus-1").Indices(); ok {
		t.Error("path without root token should not decode")
	}
	if _, ok := Path("root-x").Indices(); ok {
		t.Error("non-numeric segment should not decode")
	}
}

func TestFindByPath(t *testing.T) {
	root := testTree()

	n, ok := FindByPath(root, "root-0-1")
	if !ok || n.Kind != "number" {
		t.Errorf("expected number node, got %v (ok=%v)", n, ok)
	}

	n, ok = FindByPath(root, RootPath)
	if !ok || n != root {
		t.Error("root path should resolve to the root itself")
	}

	// Stale path past the end of a children slice resolves to not found.
	if _, ok := FindByPath(root, "root-0-7"); ok {
		t.Error("out-of-range child index should not resolve")
	}
	if _, ok := FindByPath(nil, RootPath); ok {
		t.Error("nil root should not resolve")
	}
}

func TestExpandedSetToggle(t *testing.T) {
	s := NewExpandedSet()
	if s.Has(RootPath) {
		t.Error("new set should be empty")
	}

	if !s.Toggle(RootPath) {
		t.Error("first toggle should expand")
	}
	if !s.Has(RootPath) || s.Len() != 1 {
		t.Errorf("expected expanded root, len=1, got len=%d", s.Len())
	}

	if s.Toggle(RootPath) {
		t.Error("second toggle should collapse")
	}
	if s.Len() != 0 {
		t.Errorf("expected empty set, got len=%d", s.Len())
	}
}

func TestExpandedSetNilSafe(t *testing.T) {
	var s *ExpandedSet
	if s.Has(RootPath) {
		t.Error("nil set should report no membership")
	}
	if s.Len() != 0 {
		t.Error("nil set should have zero length")
	}
}

func TestExpandToDepth(t *testing.T) {
	root := testTree()

	s := ExpandToDepth(root, 1)
	if !s.Has(RootPath) {
		t.Error("depth 1 should expand the root")
	}
	if s.Has("root-0") {
		t.Error("depth 1 should not expand root's children")
	}

	s = ExpandToDepth(root, 2)
	if !s.Has("root-0") {
		t.Error("depth 2 should expand root-0")
	}
	// Leaves never enter the set.
	if s.Has("root-1") {
		t.Error("leaf comment node should not be in the set")
	}

	if ExpandToDepth(nil, 3).Len() != 0 {
		t.Error("nil root should produce an empty set")
	}
}

func TestExpandAll(t *testing.T) {
	s := ExpandAll(testTree())
	if !s.Has(RootPath) || !s.Has("root-0") {
		t.Error("expected all internal nodes expanded")
	}
	if s.Len() != 2 {
		t.Errorf("expected 2 internal nodes, got %d", s.Len())
	}
}

func TestNodeAtOffset(t *testing.T) {
	root := testTree()

	p, ok := NodeAtOffset(root, 0)
	if !ok || p != "root-0-0" {
		t.Errorf("offset 0 should hit the ident leaf, got %s (ok=%v)", p, ok)
	}

	p, ok = NodeAtOffset(root, 4)
	if !ok || p != "root-0-1" {
		t.Errorf("offset 4 should hit the number leaf, got %s", p)
	}

	// Offset inside the parent but between children resolves to the parent.
	p, ok = NodeAtOffset(root, 5)
	if !ok || p != RootPath {
		t.Errorf("offset 5 is between decl and comment, expected root, got %s", p)
	}

	if _, ok := NodeAtOffset(root, 99); ok {
		t.Error("offset past the root span should not resolve")
	}
	if _, ok := NodeAtOffset(nil, 0); ok {
		t.Error("nil root should not resolve")
	}
}

func TestSourceNodeCount(t *testing.T) {
	if n := testTree().Count(); n != 5 {
		t.Errorf("expected 5 nodes, got %d", n)
	}
	var nilNode *SourceNode
	if n := nilNode.Count(); n != 0 {
		t.Errorf("nil node should count 0, got %d", n)
	}
}
