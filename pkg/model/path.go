package model

import (
	"strconv"
	"strings"
)

// Path identifies a node position within the currently visible tree. It is
// the root token followed by the zero-based child index at each level, joined
// with "-": "root", "root-0", "root-0-2", ... A path therefore encodes both
// the ancestor chain and each ancestor's child index.
type Path string

// RootPath is the path of the tree root.
const RootPath Path = "root"

// Child returns the path of the i-th child of p.
func (p Path) Child(i int) Path {
	return p + Path("-"+strconv.Itoa(i))
}

// Parent returns the parent path and true, or "" and false for the root.
func (p Path) Parent() (Path, bool) {
	idx := strings.LastIndexByte(string(p), '-')
	if idx < 0 {
		return "", false
	}
	return p[:idx], true
}

// Indices decodes the child-index chain of the path. The root yields an
// empty slice. Malformed segments report false.
func (p Path) Indices() ([]int, bool) {
	parts := strings.Split(string(p), "-")
	if len(parts) == 0 || parts[0] != string(RootPath) {
		return nil, false
	}
	out := make([]int, 0, len(parts)-1)
	for _, part := range parts[1:] {
		n, err := strconv.Atoi(part)
		if err != nil || n < 0 {
			return nil, false
		}
		out = append(out, n)
	}
	return out, true
}

// FindByPath resolves a path against a source tree. Paths that walk past the
// end of a children slice (stale paths after a tree swap) resolve to not
// found rather than failing.
func FindByPath(root *SourceNode, p Path) (*SourceNode, bool) {
	if root == nil {
		return nil, false
	}
	idxs, ok := p.Indices()
	if !ok {
		return nil, false
	}
	node := root
	for _, i := range idxs {
		if i >= len(node.Children) {
			return nil, false
		}
		node = node.Children[i]
	}
	return node, true
}

// ExpandedSet is the set of paths whose children are visible. It is owned by
// the embedding UI state; the layout pipeline only reads it, and emits
// toggle-expand callbacks asking the owner to mutate it.
type ExpandedSet struct {
	paths map[Path]struct{}
}

// NewExpandedSet returns an empty set.
func NewExpandedSet() *ExpandedSet {
	return &ExpandedSet{paths: make(map[Path]struct{})}
}

// Has reports membership. A nil set behaves as empty.
func (s *ExpandedSet) Has(p Path) bool {
	if s == nil {
		return false
	}
	_, ok := s.paths[p]
	return ok
}

// Add marks a path expanded.
func (s *ExpandedSet) Add(p Path) {
	s.paths[p] = struct{}{}
}

// Remove marks a path collapsed.
func (s *ExpandedSet) Remove(p Path) {
	delete(s.paths, p)
}

// Toggle flips a path's expansion and reports the new state.
func (s *ExpandedSet) Toggle(p Path) bool {
	if s.Has(p) {
		s.Remove(p)
		return false
	}
	s.Add(p)
	return true
}

// Len returns the number of expanded paths.
func (s *ExpandedSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.paths)
}

// ExpandToDepth returns a set with every node at depth < d expanded, the
// usual initial state for a freshly parsed tree (depth 0 = root only).
func ExpandToDepth(root *SourceNode, d int) *ExpandedSet {
	s := NewExpandedSet()
	if root == nil {
		return s
	}
	var walk func(n *SourceNode, p Path, depth int)
	walk = func(n *SourceNode, p Path, depth int) {
		if depth >= d || len(n.Children) == 0 {
			return
		}
		s.Add(p)
		for i, c := range n.Children {
			walk(c, p.Child(i), depth+1)
		}
	}
	walk(root, RootPath, 0)
	return s
}

// ExpandAll returns a set with every internal node expanded.
func ExpandAll(root *SourceNode) *ExpandedSet {
	s := NewExpandedSet()
	if root == nil {
		return s
	}
	var walk func(n *SourceNode, p Path)
	walk = func(n *SourceNode, p Path) {
		if len(n.Children) == 0 {
			return
		}
		s.Add(p)
		for i, c := range n.Children {
			walk(c, p.Child(i))
		}
	}
	walk(root, RootPath)
	return s
}
