// Package tools defines the MCP tool table for the FMP API and the generic
// handler that routes tool calls to upstream endpoints. Adding a tool is a
// table entry, not new code.
package tools

import (
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/bobmcallan/fmp-mcp/internal/common"
)

// ParamDef describes one parameter of a tool.
type ParamDef struct {
	Name        string
	Type        string // "string" or "number"
	Description string
	Required    bool
	In          string // "path" or "query"
	Default     string // applied when the argument is absent
}

// ToolDef maps a tool name to an FMP endpoint path template and its
// parameter schema. Path params appear as {name} segments in Path.
type ToolDef struct {
	Name        string
	Description string
	Path        string
	Params      []ParamDef

	// UnwrapSingle unwraps a single-element JSON array response to the
	// bare object (FMP returns profile data as a one-element array).
	UnwrapSingle bool
}

// periodParams is the common symbol/period/limit parameter set shared by the
// financial statement and metrics endpoints.
func periodParams(limitDefault string) []ParamDef {
	return []ParamDef{
		{Name: "symbol", Type: "string", Description: "Stock ticker (e.g. 'AAPL', '8766.T')", Required: true, In: "path"},
		{Name: "period", Type: "string", Description: "'annual' or 'quarter'", In: "query", Default: "annual"},
		{Name: "limit", Type: "number", Description: "Number of periods (default " + limitDefault + ")", In: "query", Default: limitDefault},
	}
}

// Registry returns the full tool table. Endpoints and parameters mirror the
// FMP v3 REST API.
func Registry() []ToolDef {
	return []ToolDef{
		{
			Name:        "search_company",
			Description: "Search for a company by name to find its ticker symbol. Useful for finding the correct ticker for international companies, e.g. search 'Tokio Marine' to find '8766.T'.",
			Path:        "search",
			Params: []ParamDef{
				{Name: "query", Type: "string", Description: "Company name or partial name to search for", Required: true, In: "query"},
				{Name: "limit", Type: "number", Description: "Maximum results to return (default 10)", In: "query", Default: "10"},
			},
		},
		{
			Name: "screen_stocks",
			Description: "Screen stocks by fundamental criteria. " +
				"Sectors: Technology, Healthcare, Financial Services, Consumer Cyclical, Consumer Defensive, Industrials, Energy, Basic Materials, Real Estate, Utilities, Communication Services. " +
				"Exchanges: NYSE, NASDAQ, AMEX, EURONEXT, TSX, LSE, XETRA, NSE, SGX, HKEX, JPX, SIX, ASX. " +
				"Countries: ISO 2-letter codes (US, GB, JP, CH, SG, HK, AU, DE, FR, CA, IN).",
			Path: "stock-screener",
			Params: []ParamDef{
				{Name: "country", Type: "string", Description: "ISO 2-letter country code", In: "query"},
				{Name: "sector", Type: "string", Description: "Sector name", In: "query"},
				{Name: "industry", Type: "string", Description: "Industry name", In: "query"},
				{Name: "exchange", Type: "string", Description: "Exchange code", In: "query"},
				{Name: "marketCapMoreThan", Type: "number", Description: "Minimum market cap", In: "query"},
				{Name: "marketCapLessThan", Type: "number", Description: "Maximum market cap", In: "query"},
				{Name: "dividendMoreThan", Type: "number", Description: "Minimum dividend yield", In: "query"},
				{Name: "dividendLessThan", Type: "number", Description: "Maximum dividend yield", In: "query"},
				{Name: "betaMoreThan", Type: "number", Description: "Minimum beta", In: "query"},
				{Name: "betaLessThan", Type: "number", Description: "Maximum beta", In: "query"},
				{Name: "volumeMoreThan", Type: "number", Description: "Minimum trading volume", In: "query"},
				{Name: "priceMoreThan", Type: "number", Description: "Minimum share price", In: "query"},
				{Name: "priceLessThan", Type: "number", Description: "Maximum share price", In: "query"},
				{Name: "limit", Type: "number", Description: "Maximum results to return (default 50)", In: "query", Default: "50"},
			},
		},
		{
			Name:         "get_company_profile",
			Description:  "Get company profile: description, sector, industry, market cap, CEO, employees, website, country, currency, exchange, and key statistics.",
			Path:         "profile/{symbol}",
			UnwrapSingle: true,
			Params: []ParamDef{
				{Name: "symbol", Type: "string", Description: "Stock ticker (e.g. 'AAPL', '8766.T', 'LLBN.SW', 'D05.SI')", Required: true, In: "path"},
			},
		},
		{
			Name:        "get_income_statement",
			Description: "Get income statement data: revenue, cost of revenue, gross profit, operating expenses, operating income, net income, EPS, diluted EPS, EBITDA, and more.",
			Path:        "income-statement/{symbol}",
			Params:      periodParams("5"),
		},
		{
			Name:        "get_balance_sheet",
			Description: "Get balance sheet data: total assets, current assets, cash, total liabilities, current liabilities, total debt, total equity, goodwill, intangible assets, shares outstanding, and more.",
			Path:        "balance-sheet-statement/{symbol}",
			Params:      periodParams("5"),
		},
		{
			Name:        "get_cash_flow",
			Description: "Get cash flow statement: operating cash flow, capital expenditure, free cash flow, dividends paid, share repurchases, acquisitions, debt repayment, and more.",
			Path:        "cash-flow-statement/{symbol}",
			Params:      periodParams("5"),
		},
		{
			Name:        "get_key_metrics",
			Description: "Get key financial metrics: ROIC, ROE, ROA, per-share figures, debt ratios, interest coverage, PE, PB, dividend yield, payout ratio, enterprise value multiples, earnings and FCF yield, and more.",
			Path:        "key-metrics/{symbol}",
			Params:      periodParams("5"),
		},
		{
			Name:        "get_financial_ratios",
			Description: "Get financial ratios: profitability (margins, ROE, ROA, ROIC), liquidity (current, quick, cash), leverage (debt/equity, interest coverage), efficiency (turnovers), valuation (PE, PB, P/S, EV/EBITDA, PEG), and dividends.",
			Path:        "ratios/{symbol}",
			Params:      periodParams("5"),
		},
		{
			Name:        "get_financial_scores",
			Description: "Get financial health scores: Altman Z-Score (>2.99 safe, 1.8-2.99 grey zone, <1.8 distress) and Piotroski F-Score (7-9 strong, 4-6 moderate, 0-3 weak).",
			Path:        "score",
			Params: []ParamDef{
				{Name: "symbol", Type: "string", Description: "Stock ticker", Required: true, In: "query"},
			},
		},
		{
			Name:        "get_financial_growth",
			Description: "Get financial growth rates: revenue, net income, EPS, dividend, operating cash flow, free cash flow, gross profit, debt, and shares outstanding growth. Useful for checking if dividend growth is outpacing FCF growth.",
			Path:        "financial-growth/{symbol}",
			Params:      periodParams("5"),
		},
		{
			Name:        "get_dividend_history",
			Description: "Get historical dividend payments with declaration, record, and payment dates. Useful for assessing dividend consistency and identifying cuts or freezes.",
			Path:        "historical-price-full/stock_dividend/{symbol}",
			Params: []ParamDef{
				{Name: "symbol", Type: "string", Description: "Stock ticker", Required: true, In: "path"},
			},
		},
		{
			Name:        "get_stock_quote",
			Description: "Get current stock quote and key stats: price, change, volume, market cap, PE, EPS, 52-week high/low, and more. Accepts multiple comma-separated symbols: 'AAPL,MSFT,GOOGL'.",
			Path:        "quote/{symbol}",
			Params: []ParamDef{
				{Name: "symbol", Type: "string", Description: "Stock ticker, or comma-separated tickers", Required: true, In: "path"},
			},
		},
		{
			Name:        "get_stock_peers",
			Description: "Get peer/comparable companies in the same sector and industry. Useful for finding comparables for valuation analysis.",
			Path:        "stock_peers",
			Params: []ParamDef{
				{Name: "symbol", Type: "string", Description: "Stock ticker", Required: true, In: "query"},
			},
		},
		{
			Name:        "get_analyst_estimates",
			Description: "Get analyst consensus estimates: estimated revenue, EPS, EBITDA, net income, and SGA expense with high/low/average and analyst counts.",
			Path:        "analyst-estimates/{symbol}",
			Params:      periodParams("5"),
		},
		{
			Name:        "get_enterprise_value",
			Description: "Get enterprise value breakdown: market cap, total debt, cash and equivalents, minority interest, preferred stock, enterprise value, and shares outstanding.",
			Path:        "enterprise-values/{symbol}",
			Params:      periodParams("5"),
		},
		{
			Name:        "get_shares_float",
			Description: "Get shares float and outstanding data: free float, float shares, outstanding shares. Useful for checking share dilution trends.",
			Path:        "shares_float",
			Params: []ParamDef{
				{Name: "symbol", Type: "string", Description: "Stock ticker", Required: true, In: "query"},
			},
		},
		{
			Name:        "get_company_rating",
			Description: "Get company rating based on financial indicators: overall rating plus DCF, ROE, ROA, debt/equity, PE, and PB scores (S/A/B/C/D).",
			Path:        "rating/{symbol}",
			Params: []ParamDef{
				{Name: "symbol", Type: "string", Description: "Stock ticker", Required: true, In: "path"},
			},
		},
	}
}

// BuildTool converts a ToolDef into an mcp.Tool with the appropriate schema.
func BuildTool(td ToolDef) mcp.Tool {
	opts := []mcp.ToolOption{mcp.WithDescription(td.Description)}
	for _, p := range td.Params {
		opts = append(opts, buildParamOption(p))
	}
	return mcp.NewTool(td.Name, opts...)
}

// buildParamOption maps a ParamDef to the appropriate mcp-go tool option.
func buildParamOption(p ParamDef) mcp.ToolOption {
	var opts []mcp.PropertyOption
	if p.Description != "" {
		opts = append(opts, mcp.Description(p.Description))
	}
	if p.Required {
		opts = append(opts, mcp.Required())
	}

	switch p.Type {
	case "number":
		return mcp.WithNumber(p.Name, opts...)
	default:
		return mcp.WithString(p.Name, opts...)
	}
}

// ValidateTool validates a single tool definition.
func ValidateTool(td ToolDef) error {
	if td.Name == "" {
		return fmt.Errorf("tool has empty name")
	}
	if td.Path == "" {
		return fmt.Errorf("tool %q has empty path", td.Name)
	}
	if strings.HasPrefix(td.Path, "/") || strings.Contains(td.Path, "..") {
		return fmt.Errorf("tool %q has invalid path %q", td.Name, td.Path)
	}
	for _, p := range td.Params {
		if p.Name == "" {
			return fmt.Errorf("tool %q has a param with empty name", td.Name)
		}
		if p.In != "path" && p.In != "query" {
			return fmt.Errorf("tool %q param %q has invalid location %q", td.Name, p.Name, p.In)
		}
		if p.In == "path" && !strings.Contains(td.Path, "{"+p.Name+"}") {
			return fmt.Errorf("tool %q param %q missing from path template %q", td.Name, p.Name, td.Path)
		}
	}
	return nil
}

// ValidateRegistry filters and validates tool definitions, logging warnings
// for invalid or duplicate entries.
func ValidateRegistry(defs []ToolDef, logger *common.Logger) []ToolDef {
	seen := make(map[string]bool, len(defs))
	valid := make([]ToolDef, 0, len(defs))
	for _, td := range defs {
		if err := ValidateTool(td); err != nil {
			logger.Warn().Str("error", err.Error()).Msg("skipping invalid tool definition")
			continue
		}
		if seen[td.Name] {
			logger.Warn().Str("name", td.Name).Msg("skipping duplicate tool definition")
			continue
		}
		seen[td.Name] = true
		valid = append(valid, td)
	}
	return valid
}
