// Package model defines the immutable syntax-tree input consumed by the
// layout and rendering pipeline, plus the path/expansion bookkeeping shared
// across packages.
package model

// Position is a zero-based (row, column) location in the source document.
type Position struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// SourceNode is one node of the parsed syntax tree. Trees are built by the
// parser collaborator (pkg/lang) and treated as read-only everywhere else:
// the layout pass copies what it needs into its own node arena and never
// mutates a SourceNode.
//
// Invariants:
//   - Children are in document order (insertion order from the parser).
//   - A child's [StartByte, EndByte) lies within its parent's range.
//   - Text is populated only for leaf nodes (no children).
type SourceNode struct {
	Kind      string        `json:"kind"`
	IsNamed   bool          `json:"is_named"`
	Text      string        `json:"text,omitempty"`
	StartByte uint32        `json:"start"`
	EndByte   uint32        `json:"end"`
	StartPos  Position      `json:"start_position"`
	EndPos    Position      `json:"end_position"`
	Children  []*SourceNode `json:"children"`
}

// IsLeaf reports whether the node has no children.
func (n *SourceNode) IsLeaf() bool {
	return len(n.Children) == 0
}

// Count returns the total number of nodes in the subtree rooted at n,
// including n itself. A nil node counts as zero.
func (n *SourceNode) Count() int {
	if n == nil {
		return 0
	}
	total := 1
	for _, c := range n.Children {
		total += c.Count()
	}
	return total
}

// ContainsOffset reports whether the byte offset falls inside the node's
// half-open [StartByte, EndByte) span.
func (n *SourceNode) ContainsOffset(off uint32) bool {
	return off >= n.StartByte && off < n.EndByte
}

// NodeAtOffset returns the path of the deepest node whose byte span contains
// the offset. When siblings abut at the offset the later-starting child wins,
// which matches how a text cursor sitting on a token boundary should resolve.
// Returns false if the offset is outside the root's span entirely.
func NodeAtOffset(root *SourceNode, off uint32) (Path, bool) {
	if root == nil || !root.ContainsOffset(off) {
		return "", false
	}
	path := RootPath
	node := root
	for {
		descended := false
		// Walk children in reverse so the last-starting match is preferred.
		for i := len(node.Children) - 1; i >= 0; i-- {
			if node.Children[i].ContainsOffset(off) {
				path = path.Child(i)
				node = node.Children[i]
				descended = true
				break
			}
		}
		if !descended {
			return path, true
		}
	}
}
