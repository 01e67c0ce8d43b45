package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Client is a thin wrapper around the PowerPay Reports API that adds JSON
// encoding, the bearer auth header, and uniform error handling. It performs
// no retries, no caching, and no request coalescing.
type Client struct {
	baseURL        string
	token          string
	httpClient     *http.Client
	onUnauthorized func()
}

// Options configures a Client.
type Options struct {
	BaseURL        string       // required; trailing slashes are stripped
	Token          string       // optional bearer token (without "Bearer ")
	HTTPClient     *http.Client // optional; defaults to a 60s-timeout client
	OnUnauthorized func()       // optional hook invoked when a 401 occurs
}

// NewClient creates a new report API client.
func NewClient(opts Options) *Client {
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 60 * time.Second}
	}
	return &Client{
		baseURL:        strings.TrimRight(opts.BaseURL, "/"),
		token:          opts.Token,
		httpClient:     httpClient,
		onUnauthorized: opts.OnUnauthorized,
	}
}

// request performs an HTTP call and returns the raw response body. A non-2xx
// status becomes an *HTTPError carrying the status, status text, and
// best-effort body details. Transport failures are returned unchanged so
// callers can distinguish them from API errors. An empty or 204 response
// yields a nil body.
func (c *Client) request(ctx context.Context, method, path string, body interface{}) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusUnauthorized && c.onUnauthorized != nil {
		c.onUnauthorized()
	}

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &HTTPError{
			Status:     resp.StatusCode,
			StatusText: http.StatusText(resp.StatusCode),
			Details:    errorDetails(respBody),
		}
	}

	if resp.StatusCode == http.StatusNoContent || len(respBody) == 0 {
		return nil, nil
	}
	return respBody, nil
}

// errorDetails surfaces JSON error payloads when possible, else plain text.
func errorDetails(body []byte) interface{} {
	if len(body) == 0 {
		return nil
	}
	var parsed interface{}
	if err := json.Unmarshal(body, &parsed); err == nil {
		return parsed
	}
	return string(body)
}

// decode unmarshals a response body into out, treating a nil body as "no
// value" and leaving out at its zero value.
func decode(body []byte, out interface{}) error {
	if body == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// GetReports fetches all saved reports. GET /reports
func (c *Client) GetReports(ctx context.Context) ([]ReportResponse, error) {
	body, err := c.request(ctx, http.MethodGet, "/reports", nil)
	if err != nil {
		return nil, err
	}
	var reports []ReportResponse
	if err := decode(body, &reports); err != nil {
		return nil, err
	}
	return reports, nil
}

// SaveReport creates or renames a report. POST /reports
func (c *Client) SaveReport(ctx context.Context, req SaveReportRequest) (*ReportResponse, error) {
	body, err := c.request(ctx, http.MethodPost, "/reports", req)
	if err != nil {
		return nil, err
	}
	var report ReportResponse
	if err := decode(body, &report); err != nil {
		return nil, err
	}
	return &report, nil
}

// StartConversation begins a new conversation. POST /conversations/start
func (c *Client) StartConversation(ctx context.Context, req ConversationRequest) (*ConversationResponse, error) {
	body, err := c.request(ctx, http.MethodPost, "/conversations/start", req)
	if err != nil {
		return nil, err
	}
	var conv ConversationResponse
	if err := decode(body, &conv); err != nil {
		return nil, err
	}
	return &conv, nil
}

// ContinueConversation continues an existing conversation.
// POST /conversations/{reportId}/continue
func (c *Client) ContinueConversation(ctx context.Context, reportID string, req ConversationRequest) (*ConversationResponse, error) {
	body, err := c.request(ctx, http.MethodPost, "/conversations/"+reportID+"/continue", req)
	if err != nil {
		return nil, err
	}
	var conv ConversationResponse
	if err := decode(body, &conv); err != nil {
		return nil, err
	}
	return &conv, nil
}

// GetConversationMessages fetches the full message history.
// GET /conversations/{reportId}/messages
func (c *Client) GetConversationMessages(ctx context.Context, reportID string) (*ConversationResponse, error) {
	body, err := c.request(ctx, http.MethodGet, "/conversations/"+reportID+"/messages", nil)
	if err != nil {
		return nil, err
	}
	var conv ConversationResponse
	if err := decode(body, &conv); err != nil {
		return nil, err
	}
	return &conv, nil
}

// GetReportData fetches the tabular data for one message.
// GET /conversations/{reportId}/messages/{messageId}/data
func (c *Client) GetReportData(ctx context.Context, reportID, messageID string) (*ReportDataResponse, error) {
	body, err := c.request(ctx, http.MethodGet, "/conversations/"+reportID+"/messages/"+messageID+"/data", nil)
	if err != nil {
		return nil, err
	}
	var data ReportDataResponse
	if err := decode(body, &data); err != nil {
		return nil, err
	}
	return &data, nil
}

// GetReportTemplates fetches the predefined report templates.
// GET /reports/templates
func (c *Client) GetReportTemplates(ctx context.Context) (*ReportTemplatesResponse, error) {
	body, err := c.request(ctx, http.MethodGet, "/reports/templates", nil)
	if err != nil {
		return nil, err
	}
	var templates ReportTemplatesResponse
	if err := decode(body, &templates); err != nil {
		return nil, err
	}
	return &templates, nil
}

// GetJWKS fetches the key discovery document, used only as a reachability
// probe by healthcheck. GET /.well-known/jwks.json
func (c *Client) GetJWKS(ctx context.Context) (map[string]interface{}, error) {
	body, err := c.request(ctx, http.MethodGet, "/.well-known/jwks.json", nil)
	if err != nil {
		return nil, err
	}
	var jwks map[string]interface{}
	if err := decode(body, &jwks); err != nil {
		return nil, err
	}
	return jwks, nil
}
