package fmp

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrMissingAPIKey is returned when no FMP API key is configured.
// Matches the original server behavior: startup succeeds, calls fail.
var ErrMissingAPIKey = errors.New("FMP_API_KEY environment variable not set")

// UpstreamError describes a failed upstream call: a non-2xx HTTP response
// or a transport failure (StatusCode 0).
type UpstreamError struct {
	StatusCode int
	Message    string
}

func (e *UpstreamError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("upstream request failed: %s", e.Message)
	}
	return e.Message
}

// FormatError indicates the upstream responded 2xx but the body was not JSON.
type FormatError struct {
	Message string
}

func (e *FormatError) Error() string {
	return e.Message
}

// upstreamError builds an UpstreamError from an HTTP error response.
// Known FMP status codes get the friendly messages the API documents;
// otherwise the error field from the body (or the raw body) is passed through.
func upstreamError(statusCode int, body []byte) *UpstreamError {
	switch statusCode {
	case 401:
		return &UpstreamError{StatusCode: statusCode, Message: "Invalid FMP API key"}
	case 403:
		return &UpstreamError{StatusCode: statusCode, Message: "FMP API access denied - may need upgraded plan"}
	case 429:
		return &UpstreamError{StatusCode: statusCode, Message: "FMP API rate limit reached - try again later"}
	}

	var errResp struct {
		Error string `json:"error"`
	}
	if json.Unmarshal(body, &errResp) == nil && errResp.Error != "" {
		return &UpstreamError{StatusCode: statusCode, Message: errResp.Error}
	}
	return &UpstreamError{StatusCode: statusCode, Message: fmt.Sprintf("upstream returned %d: %s", statusCode, string(body))}
}
