package tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/bobmcallan/fmp-mcp/internal/common"
	"github.com/bobmcallan/fmp-mcp/internal/fmp"
)

// VersionTool returns the get_version tool definition.
func VersionTool() mcp.Tool {
	return mcp.NewTool("get_version",
		mcp.WithDescription("Get the FMP MCP server version and status. Use this to verify connectivity and that an API key is configured."),
	)
}

// VersionToolHandler reports server version/build info and whether an
// upstream API key is configured. No upstream request is made.
func VersionToolHandler(c *fmp.Client) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		keyStatus := "configured"
		if !c.HasAPIKey() {
			keyStatus = "missing (set FMP_API_KEY)"
		}
		result := fmt.Sprintf("FMP MCP Server\nVersion: %s\nBuild: %s\nCommit: %s\nUpstream: %s\nAPI key: %s",
			common.GetVersion(), common.GetBuild(), common.GetGitCommit(), c.BaseURL(), keyStatus)
		return textResult(result), nil
	}
}
