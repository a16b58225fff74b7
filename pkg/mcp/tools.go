package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
)

func lintSourceTool() mcp.Tool {
	return mcp.NewTool("lint_source",
		mcp.WithDescription("Lint a source snippet and return diagnostics as JSON"),
		mcp.WithString("source",
			mcp.Required(),
			mcp.Description("JavaScript/TypeScript source code to lint"),
		),
		mcp.WithString("path",
			mcp.Description("Virtual file name; its extension selects the grammar (default file.jsx)"),
		),
	)
}

func lintProjectTool() mcp.Tool {
	return mcp.NewTool("lint_project",
		mcp.WithDescription("Lint every matching file under a directory and return diagnostics and run statistics as JSON"),
		mcp.WithString("root",
			mcp.Required(),
			mcp.Description("Directory to lint"),
		),
	)
}

func listRulesTool() mcp.Tool {
	return mcp.NewTool("list_rules",
		mcp.WithDescription("List the configured lint rules with descriptions and severities"),
	)
}
