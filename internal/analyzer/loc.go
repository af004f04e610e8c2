package analyzer

import (
	"bytes"

	"github.com/astrolabe-dev/astrolabe/internal/types"
)

// countLines reports how many lines a source buffer spans. A trailing newline
// does not open a new line.
func countLines(source []byte) int {
	if len(source) == 0 {
		return 0
	}
	n := bytes.Count(source, []byte{'\n'})
	if source[len(source)-1] != '\n' {
		n++
	}
	return n
}

// countLOC classifies every source line as code, comment-only, or blank.
// A line counts as code when, after masking out the byte ranges covered by
// comment nodes, something non-blank remains. commentLines is the number of
// distinct lines touched by a comment.
func countLOC(source []byte, comments []*types.RawNode) (loc, commentLines int) {
	if len(source) == 0 {
		return 0, 0
	}

	masked := make([]byte, len(source))
	copy(masked, source)
	for _, c := range comments {
		start, end := int(c.StartByte), int(c.EndByte)
		if start < 0 || end > len(masked) || start > end {
			continue
		}
		for i := start; i < end; i++ {
			if masked[i] != '\n' {
				masked[i] = ' '
			}
		}
	}

	commented := make([]bool, 0, 64)
	lineStart := 0
	flush := func(end int) {
		line := masked[lineStart:end]
		hasComment := !bytes.Equal(line, source[lineStart:end])
		commented = append(commented, hasComment)
		if len(bytes.TrimSpace(line)) > 0 {
			loc++
		}
		lineStart = end + 1
	}

	for i, b := range masked {
		if b == '\n' {
			flush(i)
		}
	}
	if lineStart < len(masked) {
		flush(len(masked))
	}

	for _, c := range commented {
		if c {
			commentLines++
		}
	}
	return loc, commentLines
}
