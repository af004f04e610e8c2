package analyzer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/astrolabe-dev/astrolabe/internal/types"
)

func TestCountLines(t *testing.T) {
	assert.Equal(t, 0, countLines(nil))
	assert.Equal(t, 1, countLines([]byte("one")))
	assert.Equal(t, 1, countLines([]byte("one\n")))
	assert.Equal(t, 2, countLines([]byte("one\ntwo")))
	assert.Equal(t, 3, countLines([]byte("one\n\nthree\n")))
}

func TestCountLOC_NoComments(t *testing.T) {
	source := []byte("a := 1\n\nb := 2\n")
	loc, comments := countLOC(source, nil)
	assert.Equal(t, 2, loc, "blank lines are not code")
	assert.Equal(t, 0, comments)
}

func TestCountLOC_CommentOnlyLines(t *testing.T) {
	source := []byte("// first\n// second\nx := 1\n")
	comments := []*types.RawNode{
		{StartByte: 0, EndByte: 8},
		{StartByte: 9, EndByte: 18},
	}
	loc, commentLines := countLOC(source, comments)
	assert.Equal(t, 1, loc)
	assert.Equal(t, 2, commentLines)
}

func TestCountLOC_TrailingCommentCountsBothWays(t *testing.T) {
	source := []byte("x := 1 // trailing\n")
	comments := []*types.RawNode{
		{StartByte: 7, EndByte: 18},
	}
	loc, commentLines := countLOC(source, comments)
	assert.Equal(t, 1, loc, "the code before the comment still counts")
	assert.Equal(t, 1, commentLines)
}

func TestCountLOC_BlockCommentSpansLines(t *testing.T) {
	source := []byte("/*\nlong\ncomment\n*/\ny := 2\n")
	comments := []*types.RawNode{
		{StartByte: 0, EndByte: 18},
	}
	loc, commentLines := countLOC(source, comments)
	assert.Equal(t, 1, loc)
	assert.Equal(t, 4, commentLines)
}

func TestCountLOC_EmptySource(t *testing.T) {
	loc, commentLines := countLOC(nil, nil)
	assert.Equal(t, 0, loc)
	assert.Equal(t, 0, commentLines)
}
