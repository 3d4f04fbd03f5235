package fmp

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/bobmcallan/fmp-mcp/internal/common"
)

func testClient(baseURL string) *Client {
	return NewClient(baseURL, "test-key", 5*time.Second, common.NewSilentLogger())
}

func TestGet_Success(t *testing.T) {
	var gotPath string
	var gotQuery url.Values
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("Expected GET, got %s", r.Method)
		}
		gotPath = r.URL.Path
		gotQuery = r.URL.Query()
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode([]map[string]string{{"symbol": "AAPL"}})
	}))
	defer mockServer.Close()

	c := testClient(mockServer.URL)
	body, err := c.Get(context.Background(), "quote/AAPL", nil)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if gotPath != "/quote/AAPL" {
		t.Errorf("Expected path /quote/AAPL, got %s", gotPath)
	}
	if gotQuery.Get("apikey") != "test-key" {
		t.Errorf("Expected apikey query param, got %q", gotQuery.Get("apikey"))
	}
	if !strings.Contains(string(body), "AAPL") {
		t.Errorf("Expected body to contain AAPL, got %s", body)
	}
}

func TestGet_EncodesParams(t *testing.T) {
	var gotQuery url.Values
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Write([]byte("[]"))
	}))
	defer mockServer.Close()

	params := url.Values{}
	params.Set("query", "Tokio Marine")
	params.Set("limit", "10")

	c := testClient(mockServer.URL)
	if _, err := c.Get(context.Background(), "search", params); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if gotQuery.Get("query") != "Tokio Marine" {
		t.Errorf("Expected query='Tokio Marine', got %q", gotQuery.Get("query"))
	}
	if gotQuery.Get("limit") != "10" {
		t.Errorf("Expected limit=10, got %q", gotQuery.Get("limit"))
	}
	if gotQuery.Get("apikey") != "test-key" {
		t.Errorf("Expected apikey appended, got %q", gotQuery.Get("apikey"))
	}
}

func TestGet_MissingAPIKey(t *testing.T) {
	requests := 0
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		w.Write([]byte("[]"))
	}))
	defer mockServer.Close()

	c := NewClient(mockServer.URL, "", 5*time.Second, common.NewSilentLogger())
	_, err := c.Get(context.Background(), "quote/AAPL", nil)
	if !errors.Is(err, ErrMissingAPIKey) {
		t.Fatalf("Expected ErrMissingAPIKey, got %v", err)
	}
	if requests != 0 {
		t.Errorf("Expected zero upstream requests, got %d", requests)
	}
}

func TestGet_FriendlyStatusMessages(t *testing.T) {
	cases := []struct {
		status  int
		message string
	}{
		{http.StatusUnauthorized, "Invalid FMP API key"},
		{http.StatusForbidden, "FMP API access denied - may need upgraded plan"},
		{http.StatusTooManyRequests, "FMP API rate limit reached - try again later"},
	}

	for _, tc := range cases {
		mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(tc.status)
		}))

		c := testClient(mockServer.URL)
		_, err := c.Get(context.Background(), "quote/AAPL", nil)
		mockServer.Close()

		var ue *UpstreamError
		if !errors.As(err, &ue) {
			t.Fatalf("status %d: expected UpstreamError, got %v", tc.status, err)
		}
		if ue.StatusCode != tc.status {
			t.Errorf("Expected status %d, got %d", tc.status, ue.StatusCode)
		}
		if ue.Message != tc.message {
			t.Errorf("status %d: expected %q, got %q", tc.status, tc.message, ue.Message)
		}
	}
}

func TestGet_ErrorBodyPassedThrough(t *testing.T) {
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"error": "symbol not found"})
	}))
	defer mockServer.Close()

	c := testClient(mockServer.URL)
	_, err := c.Get(context.Background(), "profile/NOPE", nil)

	var ue *UpstreamError
	if !errors.As(err, &ue) {
		t.Fatalf("Expected UpstreamError, got %v", err)
	}
	if ue.StatusCode != http.StatusNotFound {
		t.Errorf("Expected 404, got %d", ue.StatusCode)
	}
	if ue.Message != "symbol not found" {
		t.Errorf("Expected error body passed through, got %q", ue.Message)
	}
}

func TestGet_ServerErrorRawBody(t *testing.T) {
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("something broke"))
	}))
	defer mockServer.Close()

	c := testClient(mockServer.URL)
	_, err := c.Get(context.Background(), "quote/AAPL", nil)

	var ue *UpstreamError
	if !errors.As(err, &ue) {
		t.Fatalf("Expected UpstreamError, got %v", err)
	}
	if !strings.Contains(ue.Message, "500") || !strings.Contains(ue.Message, "something broke") {
		t.Errorf("Expected status and raw body in message, got %q", ue.Message)
	}
}

func TestGet_NonJSONResponse(t *testing.T) {
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte("<html>maintenance page</html>"))
	}))
	defer mockServer.Close()

	c := testClient(mockServer.URL)
	_, err := c.Get(context.Background(), "quote/AAPL", nil)

	var fe *FormatError
	if !errors.As(err, &fe) {
		t.Fatalf("Expected FormatError for non-JSON body, got %v", err)
	}
}

func TestGet_ServerUnavailable(t *testing.T) {
	c := testClient("http://localhost:1")
	_, err := c.Get(context.Background(), "quote/AAPL", nil)

	var ue *UpstreamError
	if !errors.As(err, &ue) {
		t.Fatalf("Expected UpstreamError for network failure, got %v", err)
	}
	if ue.StatusCode != 0 {
		t.Errorf("Expected status 0 for transport failure, got %d", ue.StatusCode)
	}
}

func TestGet_ContextCancelled(t *testing.T) {
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer mockServer.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := testClient(mockServer.URL)
	if _, err := c.Get(ctx, "quote/AAPL", nil); err == nil {
		t.Fatal("Expected error for cancelled context")
	}
}
