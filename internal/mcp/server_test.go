package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/astrolabe-dev/astrolabe/internal/config"
)

func callRequest(t *testing.T, args map[string]interface{}) *mcp.CallToolRequest {
	t.Helper()
	raw, err := json.Marshal(args)
	require.NoError(t, err)
	return &mcp.CallToolRequest{Params: &mcp.CallToolParamsRaw{Arguments: json.RawMessage(raw)}}
}

func textContent(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, result.Content)
	text, ok := result.Content[0].(*mcp.TextContent)
	require.True(t, ok)
	return text.Text
}

func writeGoFile(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sample.go")
	source := `package sample

func pick(n int) int {
	if n > 0 {
		return n
	}
	return -n
}
`
	require.NoError(t, os.WriteFile(path, []byte(source), 0o644))
	return path
}

func TestHandleAnalyze(t *testing.T) {
	server := NewServer(config.Default())
	path := writeGoFile(t)

	result, err := server.handleAnalyze(context.Background(), callRequest(t, map[string]interface{}{
		"path": path,
	}))
	require.NoError(t, err)
	require.False(t, result.IsError)

	var payload struct {
		Metrics struct {
			Language             string `json:"language"`
			CyclomaticComplexity int    `json:"cyclomatic_complexity"`
		} `json:"metrics"`
		Rating      string `json:"rating"`
		Summary     string `json:"summary"`
		ContentHash uint64 `json:"content_hash"`
	}
	require.NoError(t, json.Unmarshal([]byte(textContent(t, result)), &payload))

	assert.Equal(t, "go", payload.Metrics.Language)
	assert.Equal(t, 2, payload.Metrics.CyclomaticComplexity)
	assert.NotEmpty(t, payload.Rating)
	assert.NotEmpty(t, payload.Summary)
	assert.NotZero(t, payload.ContentHash)
}

func TestHandleAnalyze_MissingPath(t *testing.T) {
	server := NewServer(config.Default())

	result, err := server.handleAnalyze(context.Background(), callRequest(t, map[string]interface{}{}))
	require.NoError(t, err, "tool failures travel in the result, not the protocol error")
	assert.True(t, result.IsError)
}

func TestHandleAnalyze_UnsupportedFile(t *testing.T) {
	server := NewServer(config.Default())
	path := filepath.Join(t.TempDir(), "script.py")
	require.NoError(t, os.WriteFile(path, []byte("print(1)\n"), 0o644))

	result, err := server.handleAnalyze(context.Background(), callRequest(t, map[string]interface{}{
		"path": path,
	}))
	require.NoError(t, err)
	assert.True(t, result.IsError)
	assert.Contains(t, textContent(t, result), "not supported")
}

func TestHandleAnalyze_LanguageOverride(t *testing.T) {
	server := NewServer(config.Default())
	// JavaScript stashed behind an extension the registry does not know
	path := filepath.Join(t.TempDir(), "script.javascript.txt")
	source := `function pick(n) {
  if (n > 0) {
    return n;
  }
  return -n;
}
`
	require.NoError(t, os.WriteFile(path, []byte(source), 0o644))

	result, err := server.handleAnalyze(context.Background(), callRequest(t, map[string]interface{}{
		"path": path,
	}))
	require.NoError(t, err)
	assert.True(t, result.IsError, "without the override the extension decides")

	result, err = server.handleAnalyze(context.Background(), callRequest(t, map[string]interface{}{
		"path":     path,
		"language": "javascript",
	}))
	require.NoError(t, err)
	require.False(t, result.IsError)

	var payload struct {
		Metrics struct {
			Language             string `json:"language"`
			CyclomaticComplexity int    `json:"cyclomatic_complexity"`
		} `json:"metrics"`
	}
	require.NoError(t, json.Unmarshal([]byte(textContent(t, result)), &payload))
	assert.Equal(t, "javascript", payload.Metrics.Language)
	assert.Equal(t, 2, payload.Metrics.CyclomaticComplexity)
}

func TestHandleAnalyze_BadLanguageOverride(t *testing.T) {
	server := NewServer(config.Default())
	path := writeGoFile(t)

	result, err := server.handleAnalyze(context.Background(), callRequest(t, map[string]interface{}{
		"path":     path,
		"language": "cobol",
	}))
	require.NoError(t, err)
	assert.True(t, result.IsError)
	assert.Contains(t, textContent(t, result), "not supported")
}

func TestHandleParse(t *testing.T) {
	server := NewServer(config.Default())
	path := writeGoFile(t)

	result, err := server.handleParse(context.Background(), callRequest(t, map[string]interface{}{
		"path": path,
	}))
	require.NoError(t, err)
	require.False(t, result.IsError)

	out := textContent(t, result)
	assert.Contains(t, out, "(source_file")
	assert.Contains(t, out, "function_declaration")
}

func TestHandleParse_LanguageOverride(t *testing.T) {
	server := NewServer(config.Default())
	// A Rust snippet in an extensionless file only parses with the override
	path := filepath.Join(t.TempDir(), "snippet")
	require.NoError(t, os.WriteFile(path, []byte("fn main() {}\n"), 0o644))

	result, err := server.handleParse(context.Background(), callRequest(t, map[string]interface{}{
		"path": path,
	}))
	require.NoError(t, err)
	assert.True(t, result.IsError, "no extension and no override must fail")

	result, err = server.handleParse(context.Background(), callRequest(t, map[string]interface{}{
		"path":     path,
		"language": "rust",
	}))
	require.NoError(t, err)
	require.False(t, result.IsError)
	assert.Contains(t, textContent(t, result), "function_item")
}

func TestHandleParse_InvalidArguments(t *testing.T) {
	server := NewServer(config.Default())

	result, err := server.handleParse(context.Background(), &mcp.CallToolRequest{
		Params: &mcp.CallToolParamsRaw{Arguments: json.RawMessage(`{"path": 42}`)},
	})
	require.NoError(t, err)
	assert.True(t, result.IsError)
	assert.Contains(t, textContent(t, result), "invalid parameters")
}

func TestCreateErrorResponse(t *testing.T) {
	result, err := createErrorResponse(fmt.Errorf("boom"))
	require.NoError(t, err)
	assert.True(t, result.IsError)
	assert.Equal(t, "boom", textContent(t, result))
}
