package analyzer

import (
	"sort"

	"github.com/astrolabe-dev/astrolabe/internal/debug"
	"github.com/astrolabe-dev/astrolabe/internal/lang"
	"github.com/astrolabe-dev/astrolabe/internal/types"
)

// normalized is the intermediate result of one tree traversal: the function
// unit forest plus the raw material the later stages need (comment spans for
// line classification, ERROR node lines for the syntax rule).
type normalized struct {
	Units      []*types.FunctionUnit
	Comments   []*types.RawNode
	ErrorLines []int
}

// unitBuilder accumulates one function unit while it is the traversal's
// current unit. Depth counters are per-builder so a nested function always
// starts at depth 0 and its decision points never leak into the outer unit.
type unitBuilder struct {
	name      string
	startLine int
	endLine   int
	fileScope bool

	decisionPoints int
	curDepth       int
	maxDepth       int
	commentLines   int
	statements     int
}

func (b *unitBuilder) build() *types.FunctionUnit {
	return &types.FunctionUnit{
		Name:           b.name,
		StartLine:      b.startLine,
		EndLine:        b.endLine,
		FileScope:      b.fileScope,
		DecisionPoints: b.decisionPoints,
		MaxNesting:     b.maxDepth,
		CommentLines:   b.commentLines,
		Statements:     b.statements,
	}
}

type normalizer struct {
	table *lang.Table

	stack      []*unitBuilder
	units      []*unitBuilder
	comments   []*types.RawNode
	errorLines []int
}

// normalize walks the raw tree once, depth-first in document order, and
// builds the language-independent unit forest. The implicit file-level unit
// is named after the file and covers the whole source; code outside any
// function boundary accumulates into it.
func normalize(table *lang.Table, fileName string, root *types.RawNode, totalLines int) *normalized {
	fileUnit := &unitBuilder{
		name:      fileName,
		startLine: 1,
		endLine:   totalLines,
		fileScope: true,
	}
	if totalLines == 0 {
		fileUnit.startLine = 0
	}

	n := &normalizer{
		table: table,
		stack: []*unitBuilder{fileUnit},
	}

	if root != nil {
		for _, child := range root.Children {
			n.walk(child, root)
		}
	}
	n.units = append(n.units, fileUnit)

	units := make([]*types.FunctionUnit, 0, len(n.units))
	for _, b := range n.units {
		units = append(units, b.build())
	}
	// Document order: by start line, outer units before the functions they
	// contain.
	sort.SliceStable(units, func(i, j int) bool {
		if units[i].StartLine != units[j].StartLine {
			return units[i].StartLine < units[j].StartLine
		}
		return units[i].EndLine > units[j].EndLine
	})

	return &normalized{
		Units:      units,
		Comments:   n.comments,
		ErrorLines: n.errorLines,
	}
}

func (n *normalizer) current() *unitBuilder {
	return n.stack[len(n.stack)-1]
}

func (n *normalizer) walk(node *types.RawNode, parent *types.RawNode) {
	// Containment invariant from the parser contract; a violating subtree is
	// skipped rather than aborting the file.
	if parent != nil && (node.StartByte < parent.StartByte || node.EndByte > parent.EndByte) {
		debug.Logf("skipping malformed subtree %s at line %d: span escapes parent", node.Kind, node.StartLine)
		return
	}

	if node.Kind == "ERROR" {
		n.errorLines = append(n.errorLines, node.StartLine)
		return
	}

	switch n.table.Classify(node.Kind, node.Operator) {
	case types.CategoryFunctionBoundary:
		b := &unitBuilder{
			name:      node.Name,
			startLine: node.StartLine,
			endLine:   node.EndLine,
		}
		n.stack = append(n.stack, b)
		n.walkChildren(node)
		n.stack = n.stack[:len(n.stack)-1]
		n.units = append(n.units, b)

	case types.CategoryBranch, types.CategoryLoop, types.CategoryExceptionHandler:
		cur := n.current()
		cur.decisionPoints++
		cur.curDepth++
		if cur.curDepth > cur.maxDepth {
			cur.maxDepth = cur.curDepth
		}
		n.walkChildren(node)
		cur.curDepth--

	case types.CategoryBooleanCombinator:
		// Short-circuit operators are decision points wherever they appear,
		// condition position or not.
		n.current().decisionPoints++
		n.walkChildren(node)

	case types.CategoryComment:
		n.current().commentLines += node.LineSpan()
		n.comments = append(n.comments, node)

	case types.CategoryStatement:
		n.current().statements++
		n.walkChildren(node)

	default:
		n.walkChildren(node)
	}
}

func (n *normalizer) walkChildren(node *types.RawNode) {
	for _, child := range node.Children {
		n.walk(child, node)
	}
}
