// Package mcp exposes the linter over the Model Context Protocol so
// agent tooling can lint sources and projects in-process over stdio.
package mcp

import (
	"log/slog"

	"github.com/mark3labs/mcp-go/server"

	"github.com/jsxray/jsxray/pkg/linter"
)

const serverVersion = "0.1.0-dev"

// Server implements the MCP server, exposing lint and rule-listing
// tools backed by a shared linter instance.
type Server struct {
	mcpServer *server.MCPServer
	linter    *linter.Linter
	logger    *slog.Logger
}

// NewServer creates an MCP server backed by the given linter.
func NewServer(l *linter.Linter, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{linter: l, logger: logger}

	s.mcpServer = server.NewMCPServer(
		"jsxray",
		serverVersion,
		server.WithToolCapabilities(false),
		server.WithRecovery(),
	)

	s.mcpServer.AddTools(
		server.ServerTool{Tool: lintSourceTool(), Handler: s.handleLintSource},
		server.ServerTool{Tool: lintProjectTool(), Handler: s.handleLintProject},
		server.ServerTool{Tool: listRulesTool(), Handler: s.handleListRules},
	)

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}
