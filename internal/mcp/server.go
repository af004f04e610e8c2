// Package mcp exposes the analysis pipeline to host applications over the
// Model Context Protocol on stdio.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/astrolabe-dev/astrolabe/internal/batch"
	"github.com/astrolabe-dev/astrolabe/internal/config"
	"github.com/astrolabe-dev/astrolabe/internal/lang"
	"github.com/astrolabe-dev/astrolabe/internal/parser"
	"github.com/astrolabe-dev/astrolabe/internal/report"
	"github.com/astrolabe-dev/astrolabe/internal/types"
	"github.com/astrolabe-dev/astrolabe/internal/version"
)

// Server wires the analyzer into an MCP stdio server
type Server struct {
	server *mcp.Server
	cfg    *config.Config
	runner *batch.Runner
	parser *parser.TreeSitterParser
}

// AnalyzeParams are the arguments of the analyze tool
type AnalyzeParams struct {
	Path     string `json:"path"`
	Language string `json:"language,omitempty"`
}

// ParseParams are the arguments of the parse tool
type ParseParams struct {
	Path     string `json:"path"`
	Language string `json:"language,omitempty"`
}

// NewServer creates the MCP server and registers its tools
func NewServer(cfg *config.Config) *Server {
	s := &Server{
		cfg:    cfg,
		runner: batch.NewRunner(cfg),
		parser: parser.NewTreeSitterParser(),
	}

	s.server = mcp.NewServer(&mcp.Implementation{
		Name:    "astrolabe-mcp-server",
		Version: version.Version,
	}, nil)
	s.registerTools()

	return s
}

// Start runs the server on stdio until the context is cancelled
func (s *Server) Start(ctx context.Context) error {
	return s.server.Run(ctx, &mcp.StdioTransport{})
}

func (s *Server) registerTools() {
	s.server.AddTool(&mcp.Tool{
		Name:        "analyze",
		Description: "Analyze a source file and return code-quality metrics (complexity, maintainability, issues). Supported languages: go, javascript, rust.",
		InputSchema: &jsonschema.Schema{
			Type: "object",
			Properties: map[string]*jsonschema.Schema{
				"path": {
					Type:        "string",
					Description: "Path to the source file",
				},
				"language": {
					Type:        "string",
					Description: "Override language detection (e.g. 'go', 'javascript', 'rust')",
				},
			},
			Required: []string{"path"},
		},
	}, s.handleAnalyze)

	s.server.AddTool(&mcp.Tool{
		Name:        "parse",
		Description: "Parse a source file and return its full syntax tree as an indented s-expression. Works for every supported grammar.",
		InputSchema: &jsonschema.Schema{
			Type: "object",
			Properties: map[string]*jsonschema.Schema{
				"path": {
					Type:        "string",
					Description: "Path to the source file",
				},
				"language": {
					Type:        "string",
					Description: "Override language detection",
				},
			},
			Required: []string{"path"},
		},
	}, s.handleParse)
}

func (s *Server) handleAnalyze(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params AnalyzeParams
	if err := json.Unmarshal(req.Params.Arguments, &params); err != nil {
		return createErrorResponse(fmt.Errorf("invalid parameters: %w", err))
	}
	if params.Path == "" {
		return createErrorResponse(fmt.Errorf("path is required"))
	}

	var rep *batch.FileReport
	var err error
	if params.Language != "" {
		l, parseErr := lang.Parse(params.Language)
		if parseErr != nil {
			return createErrorResponse(parseErr)
		}
		rep, err = s.runner.AnalyzeFileAs(l, params.Path)
	} else {
		rep, err = s.runner.AnalyzeFile(params.Path)
	}
	if err != nil {
		return createErrorResponse(err)
	}

	breakdown := report.Breakdown{}
	for _, issue := range rep.Report.Issues {
		switch issue.Severity {
		case types.SeverityError:
			breakdown.Errors++
		case types.SeverityWarning:
			breakdown.Warnings++
		default:
			breakdown.Info++
		}
	}

	return createJSONResponse(map[string]interface{}{
		"metrics":      rep.Report.Metrics,
		"issues":       rep.Report.Issues,
		"rating":       report.Rating(rep.Report.Metrics.QualityScore),
		"summary":      report.Summary(rep.Report.Metrics.QualityScore, breakdown),
		"content_hash": rep.ContentHash,
	})
}

func (s *Server) handleParse(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params ParseParams
	if err := json.Unmarshal(req.Params.Arguments, &params); err != nil {
		return createErrorResponse(fmt.Errorf("invalid parameters: %w", err))
	}
	if params.Path == "" {
		return createErrorResponse(fmt.Errorf("path is required"))
	}

	var l lang.Language
	if params.Language != "" {
		parsed, err := lang.Parse(params.Language)
		if err != nil {
			return createErrorResponse(err)
		}
		l = parsed
	} else {
		inferred, ok := lang.FromPath(params.Path)
		if !ok {
			return createErrorResponse(fmt.Errorf("cannot infer language for %s", params.Path))
		}
		l = inferred
	}

	source, err := os.ReadFile(params.Path)
	if err != nil {
		return createErrorResponse(err)
	}

	ast, err := s.parser.PrintAST(l, params.Path, source)
	if err != nil {
		return createErrorResponse(err)
	}
	return createTextResponse(ast)
}
