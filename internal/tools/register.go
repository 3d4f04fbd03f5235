package tools

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/bobmcallan/fmp-mcp/internal/common"
	"github.com/bobmcallan/fmp-mcp/internal/fmp"
)

// ServerInstructions is the guidance text advertised to MCP clients.
const ServerInstructions = "Financial data tools powered by Financial Modeling Prep. " +
	"Use these tools to screen stocks, get financial statements, key metrics, " +
	"ratios, scores, dividends, and quotes for any publicly traded company globally.\n\n" +
	"For Japanese stocks use exchange 'JPX' or country 'JP'.\n" +
	"For Swiss/Liechtenstein stocks use exchange 'SIX' or country 'CH'.\n" +
	"For Singapore stocks use exchange 'SGX' or country 'SG'.\n" +
	"For UK stocks use exchange 'LSE' or country 'GB'.\n" +
	"For Australian stocks use exchange 'ASX' or country 'AU'.\n" +
	"For German stocks use exchange 'XETRA' or country 'DE'.\n" +
	"For French stocks use exchange 'EURONEXT' or country 'FR'.\n"

// Register registers all tools from the registry on the MCP server, wiring
// each to a generic handler that calls FMP via the client. Returns the
// number of tools registered (excluding get_version).
func Register(s *server.MCPServer, c *fmp.Client, logger *common.Logger) int {
	defs := ValidateRegistry(Registry(), logger)
	for _, td := range defs {
		s.AddTool(BuildTool(td), NewToolHandler(c, td))
	}
	s.AddTool(VersionTool(), VersionToolHandler(c))
	return len(defs)
}
