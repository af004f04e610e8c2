package parser

import (
	"fmt"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/astrolabe-dev/astrolabe/internal/errors"
	"github.com/astrolabe-dev/astrolabe/internal/lang"
	"github.com/astrolabe-dev/astrolabe/internal/types"
)

// TreeSitterParser turns source bytes into the borrowed RawNode view the
// analyzer consumes. A fresh tree-sitter parser is created per call, so one
// TreeSitterParser value is safe for concurrent use across files.
type TreeSitterParser struct{}

// NewTreeSitterParser creates a parser front-end for all supported grammars
func NewTreeSitterParser() *TreeSitterParser {
	return &TreeSitterParser{}
}

// Parse produces the RawNode tree for a source file. The returned tree is
// fully materialized; the underlying tree-sitter tree is released before
// returning.
func (p *TreeSitterParser) Parse(l lang.Language, path string, source []byte) (*types.RawNode, error) {
	tree, err := p.parseTree(l, path, source)
	if err != nil {
		return nil, err
	}
	defer tree.Close()

	return convert(tree.RootNode(), source), nil
}

// parseTree runs tree-sitter and returns the owned tree. Callers must Close it.
func (p *TreeSitterParser) parseTree(l lang.Language, path string, source []byte) (*tree_sitter.Tree, error) {
	grammar := grammarFor(l)
	if grammar == nil {
		return nil, errors.NewParseError(path, fmt.Errorf("no grammar for language %q", l))
	}

	parser := tree_sitter.NewParser()
	defer parser.Close()
	if err := parser.SetLanguage(grammar); err != nil {
		return nil, errors.NewParseError(path, fmt.Errorf("grammar rejected for %q: %w", l, err))
	}

	tree := parser.Parse(source, nil)
	if tree == nil {
		return nil, errors.NewParseError(path, fmt.Errorf("tree-sitter returned no tree"))
	}
	return tree, nil
}

// convert materializes the named-node view of a tree-sitter node. Anonymous
// tokens (punctuation, keywords) are dropped; the operator token of
// expression nodes is lifted into the Operator field so the classifier can
// disambiguate overloaded kinds without seeing the raw tree.
func convert(node *tree_sitter.Node, source []byte) *types.RawNode {
	raw := &types.RawNode{
		Kind:      node.Kind(),
		StartByte: uint32(node.StartByte()),
		EndByte:   uint32(node.EndByte()),
		StartLine: int(node.StartPosition().Row) + 1,
		EndLine:   int(node.EndPosition().Row) + 1,
	}

	if op := node.ChildByFieldName("operator"); op != nil {
		raw.Operator = nodeText(op, source)
	}
	if name := node.ChildByFieldName("name"); name != nil {
		raw.Name = nodeText(name, source)
	}

	count := node.NamedChildCount()
	if count > 0 {
		raw.Children = make([]*types.RawNode, 0, count)
		for i := uint(0); i < count; i++ {
			child := node.NamedChild(i)
			if child == nil {
				continue
			}
			raw.Children = append(raw.Children, convert(child, source))
		}
	}

	return raw
}

// nodeText extracts the source text for a node
func nodeText(node *tree_sitter.Node, source []byte) string {
	start, end := node.StartByte(), node.EndByte()
	if int(end) > len(source) || start > end {
		return ""
	}
	return string(source[start:end])
}
