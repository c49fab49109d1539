// Package llm provides a provider-agnostic completion client for the remote
// model endpoints the assistant depends on. One request maps to one outbound
// HTTP call: retry policy, if any, belongs to the caller, and this system
// performs none.
package llm

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

// maxResponseSize limits the response body to prevent memory exhaustion.
const maxResponseSize = 10 * 1024 * 1024 // 10MB

// DefaultTimeout bounds a single completion call. The upstream model is the
// dominant latency source, so an unbounded call could stall a request task
// indefinitely.
const DefaultTimeout = 120 * time.Second

// Endpoint holds the reachable address and credential for one provider.
type Endpoint struct {
	// URL is the provider base URL. Empty uses the provider default.
	URL string

	// APIKey is the credential. An empty key makes every call fail with a
	// ConfigurationError before any network attempt.
	APIKey string
}

// Request defines one completion call.
type Request struct {
	// Provider selects the wire format ("openrouter", "gemini").
	Provider string

	// Model is the provider-side model identifier.
	Model string

	// System is an optional system instruction.
	System string

	// Prompt is the user prompt.
	Prompt string

	// WantJSON asks the provider for structured JSON output. Hint only.
	WantJSON bool
}

// Client sends completion requests to configured provider endpoints.
type Client struct {
	endpoints  map[string]Endpoint
	httpClient *http.Client
	logger     *slog.Logger
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(c *http.Client) ClientOption {
	return func(client *Client) {
		client.httpClient = c
	}
}

// WithTimeout sets the per-call timeout on the underlying HTTP client.
func WithTimeout(d time.Duration) ClientOption {
	return func(client *Client) {
		client.httpClient.Timeout = d
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) ClientOption {
	return func(client *Client) {
		client.logger = logger
	}
}

// NewClient creates a completion client over the given provider endpoints.
// The endpoint map is injected from configuration at startup; the client
// never consults the environment itself.
func NewClient(endpoints map[string]Endpoint, opts ...ClientOption) *Client {
	c := &Client{
		endpoints: endpoints,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		logger: slog.Default(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Complete sends one completion request and returns the raw completion text.
// Failure modes: ConfigurationError when no credential is configured (the
// call is never attempted), TransportError when the network call fails or
// the provider returns a non-success status, EmptyResponseError when the
// provider succeeds but returns no usable text.
func (c *Client) Complete(ctx context.Context, req Request) (string, error) {
	if req.Prompt == "" {
		return "", NewConfigurationError("prompt is required")
	}

	provider := GetProvider(req.Provider)
	if provider == nil {
		return "", NewConfigurationError("unknown provider %q", req.Provider)
	}

	ep, ok := c.endpoints[req.Provider]
	if !ok || ep.APIKey == "" {
		return "", NewConfigurationError("no credential configured for provider %q", req.Provider)
	}

	url := provider.BuildURL(ep.URL, req.Model, ep.APIKey)

	body, err := provider.BuildRequestBody(req.Model, req.System, req.Prompt, req.WantJSON)
	if err != nil {
		return "", NewConfigurationError("build request body: %v", err)
	}

	c.logger.Debug("Sending completion request",
		"provider", req.Provider,
		"model", req.Model,
		"want_json", req.WantJSON,
		"prompt_len", len(req.Prompt))

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", NewConfigurationError("create HTTP request: %v", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	provider.SetHeaders(httpReq, ep.APIKey)

	started := time.Now()
	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", NewTransportError(0, fmt.Errorf("HTTP request failed: %w", err))
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(httpResp.Body, maxResponseSize))
	if err != nil {
		return "", NewTransportError(0, fmt.Errorf("read response body: %w", err))
	}

	if httpResp.StatusCode < 200 || httpResp.StatusCode >= 300 {
		return "", NewTransportError(httpResp.StatusCode,
			fmt.Errorf("provider error: %s", truncate(string(respBody), 200)))
	}

	text, err := provider.ParseResponse(respBody)
	if err != nil {
		return "", NewTransportError(httpResp.StatusCode,
			fmt.Errorf("parse provider response: %w", err))
	}
	if text == "" {
		return "", &EmptyResponseError{}
	}

	c.logger.Debug("Completion received",
		"provider", req.Provider,
		"model", req.Model,
		"duration_ms", time.Since(started).Milliseconds(),
		"completion_len", len(text))

	return text, nil
}

// truncate caps a diagnostic string so provider error bodies stay log-sized.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
