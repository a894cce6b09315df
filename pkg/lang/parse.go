package lang

import (
	"context"
	"fmt"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/prabhatexit0/treehouse/pkg/model"
)

// Parse parses source code in the named language into a SourceNode tree.
// Unsupported languages return an error naming the supported set.
func Parse(ctx context.Context, code []byte, language string) (*model.SourceNode, error) {
	grammar, ok := GrammarFor(language)
	if !ok {
		return nil, fmt.Errorf("unsupported language %q (supported: %s)",
			language, strings.Join(Supported(), ", "))
	}

	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(grammar)

	tree, err := parser.ParseCtx(ctx, nil, code)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", language, err)
	}
	defer tree.Close()

	return convert(tree.RootNode(), code), nil
}

// convert maps a tree-sitter node (and its subtree) onto the immutable model
// type. Text is captured only for leaf nodes; internal nodes reconstruct
// their text from the source when needed, so duplicating it would only
// bloat the tree.
func convert(n *sitter.Node, src []byte) *model.SourceNode {
	out := &model.SourceNode{
		Kind:      n.Type(),
		IsNamed:   n.IsNamed(),
		StartByte: n.StartByte(),
		EndByte:   n.EndByte(),
		StartPos:  model.Position{Row: int(n.StartPoint().Row), Col: int(n.StartPoint().Column)},
		EndPos:    model.Position{Row: int(n.EndPoint().Row), Col: int(n.EndPoint().Column)},
	}

	count := int(n.ChildCount())
	if count == 0 {
		out.Text = n.Content(src)
		return out
	}
	out.Children = make([]*model.SourceNode, 0, count)
	for i := 0; i < count; i++ {
		out.Children = append(out.Children, convert(n.Child(i), src))
	}
	return out
}
