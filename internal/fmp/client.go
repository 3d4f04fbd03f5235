// Package fmp provides the HTTP client for the Financial Modeling Prep API.
package fmp

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/bobmcallan/fmp-mcp/internal/common"
)

// maxResponseSize caps the upstream response body to prevent OOM from
// unexpectedly large responses.
const maxResponseSize = 50 << 20 // 50MB

// Client issues GET requests against the FMP REST API with the configured
// API key appended as a query parameter.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *common.Logger
}

// NewClient creates a new FMP client. The base URL should not have a
// trailing slash; endpoint paths are joined with "/".
func NewClient(baseURL, apiKey string, timeout time.Duration, logger *common.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// BaseURL returns the configured upstream base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// HasAPIKey reports whether an API key is configured.
func (c *Client) HasAPIKey() bool {
	return c.apiKey != ""
}

// Get performs a GET request against the given endpoint path (e.g.
// "quote/AAPL") with the given query parameters plus the API key, and
// returns the raw JSON body. The API key is never logged.
func (c *Client) Get(ctx context.Context, endpoint string, params url.Values) ([]byte, error) {
	if c.apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	query := url.Values{}
	for key, vals := range params {
		for _, v := range vals {
			query.Add(key, v)
		}
	}
	query.Set("apikey", c.apiKey)

	requestURL := c.baseURL + "/" + endpoint + "?" + query.Encode()

	c.logger.Debug().Str("method", "GET").Str("endpoint", endpoint).Msg("fmp request")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	duration := time.Since(start)
	if err != nil {
		c.logger.Error().Str("endpoint", endpoint).Int64("duration_ms", duration.Milliseconds()).Str("error", err.Error()).Msg("fmp request failed")
		return nil, &UpstreamError{Message: err.Error()}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	c.logger.Debug().Str("endpoint", endpoint).Int("status", resp.StatusCode).Int64("duration_ms", duration.Milliseconds()).Msg("fmp response")

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, upstreamError(resp.StatusCode, body)
	}

	if !json.Valid(body) {
		return nil, &FormatError{Message: fmt.Sprintf("upstream returned non-JSON response for %s", endpoint)}
	}

	return body, nil
}
