// Package mcp exposes commit suggestions as a Model Context Protocol tool.
package mcp

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"

	"github.com/fwojciec/commitsuggest"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// ToolName is the name of the suggestion tool.
const ToolName = "get_commit_suggestion"

// SuggestFunc produces a suggestion for a repository path.
type SuggestFunc func(ctx context.Context, path string) (*commitsuggest.Suggestion, error)

// Server implements the MCP server using mark3labs/mcp-go.
type Server struct {
	server  *server.MCPServer
	suggest SuggestFunc
	logger  *slog.Logger
}

// NewServer creates a new MCP server instance.
func NewServer(suggest SuggestFunc, version string, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	s := &Server{
		suggest: suggest,
		logger:  logger,
	}

	s.server = server.NewMCPServer(
		"commitsuggest",
		version,
		server.WithLogging(),
	)

	s.server.AddTool(
		mcp.NewTool(
			ToolName,
			mcp.WithDescription("Suggest commit messages for the uncommitted changes of a git repository"),
			mcp.WithString(
				"path",
				mcp.Required(),
				mcp.Description("Path to the repository working tree"),
			),
		),
		s.HandleGetCommitSuggestion,
	)

	return s
}

// Serve answers MCP requests read from in until ctx is done or in is closed.
func (s *Server) Serve(ctx context.Context, in io.Reader, out io.Writer) error {
	stdio := server.NewStdioServer(s.server)
	stdio.SetErrorLogger(slog.NewLogLogger(s.logger.Handler(), slog.LevelError))
	err := stdio.Listen(ctx, in, out)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// HandleGetCommitSuggestion handles the get_commit_suggestion tool.
// A path outside version control is a normal result, not a tool error.
func (s *Server) HandleGetCommitSuggestion(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError("path is required: " + err.Error()), nil
	}
	path = strings.TrimSpace(path)
	if path == "" {
		return mcp.NewToolResultError("path must not be empty"), nil
	}

	sg, err := s.suggest(ctx, path)
	if err != nil {
		s.logger.Error("tool call failed", "tool", ToolName, "path", path, "error", err)
		return mcp.NewToolResultError("suggestion failed: " + err.Error()), nil
	}
	return mcp.NewToolResultText(sg.Text), nil
}
