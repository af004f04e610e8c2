package parser

import (
	"fmt"
	"strings"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/astrolabe-dev/astrolabe/internal/lang"
)

// PrintAST parses a file and renders its full concrete syntax tree as an
// indented s-expression, one node per line. Leaf nodes include their source
// text. This is a display surface only; the metrics pipeline never consumes
// this output.
func (p *TreeSitterParser) PrintAST(l lang.Language, path string, source []byte) (string, error) {
	tree, err := p.parseTree(l, path, source)
	if err != nil {
		return "", err
	}
	defer tree.Close()

	var sb strings.Builder
	formatNode(&sb, tree.RootNode(), source, 0)
	return sb.String(), nil
}

func formatNode(sb *strings.Builder, node *tree_sitter.Node, source []byte, depth int) {
	sb.WriteString(strings.Repeat("  ", depth))
	sb.WriteByte('(')
	sb.WriteString(node.Kind())

	if node.ChildCount() == 0 {
		text := strings.TrimSpace(nodeText(node, source))
		if text != "" {
			fmt.Fprintf(sb, " %q", strings.ReplaceAll(text, "\n", "\\n"))
		}
	}
	sb.WriteByte(')')

	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		if child == nil {
			continue
		}
		sb.WriteByte('\n')
		formatNode(sb, child, source, depth+1)
	}
}
