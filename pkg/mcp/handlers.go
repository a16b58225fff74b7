package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/jsxray/jsxray/pkg/report"
)

func textResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to encode response: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

type lintResponse struct {
	Issues []report.Issue `json:"issues"`
	Count  int            `json:"count"`
}

func (s *Server) handleLintSource(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	source, err := req.RequireString("source")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	path := req.GetString("path", "file.jsx")

	collector := report.NewCollector()
	if err := s.linter.LintSource(path, []byte(source), collector); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("lint failed: %v", err)), nil
	}
	issues := collector.Issues()
	return textResult(lintResponse{Issues: issues, Count: len(issues)})
}

type projectResponse struct {
	Issues []report.Issue `json:"issues"`
	Count  int            `json:"count"`
	Stats  any            `json:"stats"`
}

func (s *Server) handleLintProject(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	root, err := req.RequireString("root")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	collector, stats, err := s.linter.Run(root)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("lint failed: %v", err)), nil
	}
	issues := collector.Issues()
	return textResult(projectResponse{Issues: issues, Count: len(issues), Stats: stats})
}

type ruleInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Severity    string `json:"severity"`
}

func (s *Server) handleListRules(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	infos := make([]ruleInfo, 0, len(s.linter.Rules()))
	for _, r := range s.linter.Rules() {
		meta := r.Meta()
		infos = append(infos, ruleInfo{
			Name:        r.Name(),
			Description: meta.Description,
			Severity:    string(meta.Severity),
		})
	}
	return textResult(infos)
}
