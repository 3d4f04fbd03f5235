package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/bobmcallan/fmp-mcp/internal/fmp"
)

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.NewTextContent(text),
		},
	}
}

func errorResult(message string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.NewTextContent(message),
		},
		IsError: true,
	}
}

// NewToolHandler creates a handler that routes an MCP tool call to the FMP
// endpoint described by the ToolDef: required-parameter check, path
// substitution, query encoding, one upstream GET, raw JSON pass-through.
func NewToolHandler(c *fmp.Client, td ToolDef) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		path := td.Path
		query := url.Values{}

		for _, param := range td.Params {
			val := paramValue(request, param)
			if val == "" {
				if param.Required {
					return errorResult(fmt.Sprintf("invalid arguments: %s parameter is required", param.Name)), nil
				}
				continue
			}
			switch param.In {
			case "path":
				path = strings.ReplaceAll(path, "{"+param.Name+"}", url.PathEscape(val))
			case "query":
				query.Set(param.Name, val)
			}
		}

		body, err := c.Get(ctx, path, query)
		if err != nil {
			return errorResult(fmt.Sprintf("Error: %v", err)), nil
		}

		if td.UnwrapSingle {
			body = unwrapSingleElement(body)
		}

		return textResult(string(body)), nil
	}
}

// paramValue extracts a parameter value from the MCP request as its query
// string representation, falling back to the table default when absent.
// Empty strings count as absent so a required "" fails validation.
func paramValue(request mcp.CallToolRequest, param ParamDef) string {
	switch param.Type {
	case "number":
		if args := request.GetArguments(); args != nil {
			if v, ok := args[param.Name]; ok && v != nil {
				return formatNumber(v)
			}
		}
	default:
		if v := request.GetString(param.Name, ""); v != "" {
			return v
		}
	}
	return param.Default
}

// formatNumber renders a JSON-decoded numeric argument without scientific
// notation so large thresholds (e.g. marketCapMoreThan=5000000000) encode
// the way the upstream API expects.
func formatNumber(v interface{}) string {
	switch n := v.(type) {
	case float64:
		return strconv.FormatFloat(n, 'f', -1, 64)
	case int:
		return strconv.Itoa(n)
	case int64:
		return strconv.FormatInt(n, 10)
	case json.Number:
		return n.String()
	default:
		return fmt.Sprint(v)
	}
}

// unwrapSingleElement unwraps a one-element JSON array to its sole element.
// Any other shape is returned unchanged.
func unwrapSingleElement(body []byte) []byte {
	var arr []json.RawMessage
	if err := json.Unmarshal(body, &arr); err != nil {
		return body
	}
	if len(arr) == 1 {
		return arr[0]
	}
	return body
}
