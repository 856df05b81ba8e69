package classifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/nao1215/sentiment/internal/model"
)

// ClassifyRequest is the body sent to the inference service.
type ClassifyRequest struct {
	Text      string `json:"text"`
	Model     string `json:"model"`
	RequestID string `json:"request_id,omitempty"`
}

// ClassifyResponse is the body returned by the inference service.
type ClassifyResponse struct {
	Success      bool   `json:"success"`
	Label        string `json:"label"`
	Model        string `json:"model"`
	ModelVersion string `json:"model_version,omitempty"`
	RequestID    string `json:"request_id,omitempty"`
}

// HealthResponse is the body of the inference service health check.
type HealthResponse struct {
	Status       string   `json:"status"`
	ModelsLoaded []string `json:"models_loaded"`
}

// RemoteClient is an HTTP client for an external inference service.
// The service receives the raw text and does its own vectorization.
type RemoteClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// RemoteOption configures a RemoteClient.
type RemoteOption func(*RemoteClient)

// WithAPIKey sends key as a bearer token on every request.
func WithAPIKey(key string) RemoteOption {
	return func(c *RemoteClient) {
		c.apiKey = key
	}
}

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(client *http.Client) RemoteOption {
	return func(c *RemoteClient) {
		c.httpClient = client
	}
}

// NewRemoteClient creates a client for the service at baseURL.
func NewRemoteClient(baseURL string, timeout time.Duration, opts ...RemoteOption) *RemoteClient {
	c := &RemoteClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Predict sends text to the service and returns its prediction.
func (c *RemoteClient) Predict(ctx context.Context, kind model.ModelKind, text string) (*model.Prediction, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("%w: %d", model.ErrUnknownModel, int(kind))
	}

	body, err := json.Marshal(ClassifyRequest{
		Text:      text,
		Model:     kind.Slug(),
		RequestID: RequestIDFromContext(ctx),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/classify", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, err := io.ReadAll(io.LimitReader(resp.Body, 4096))
		if err != nil {
			return nil, fmt.Errorf("inference service returned status %d", resp.StatusCode)
		}
		return nil, fmt.Errorf("inference service returned status %d: %s", resp.StatusCode, string(respBody))
	}

	var result ClassifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if !result.Success || result.Label == "" {
		return nil, fmt.Errorf("inference service returned no label for %s", kind)
	}

	return model.NewPrediction(kind, result.Label), nil
}

// Health checks the inference service health.
func (c *RemoteClient) Health(ctx context.Context) (*HealthResponse, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/health", http.NoBody)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("inference service returned status %d", resp.StatusCode)
	}

	var result HealthResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return &result, nil
}

// Ready checks if the inference service is ready.
func (c *RemoteClient) Ready(ctx context.Context) error {
	req, err := c.newRequest(ctx, http.MethodGet, "/ready", http.NoBody)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("inference service not ready: status %d", resp.StatusCode)
	}

	return nil
}

// newRequest builds a request against baseURL with auth applied.
func (c *RemoteClient) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
	return req, nil
}

type requestIDKey struct{}

// ContextWithRequestID returns a context carrying id, which RemoteClient
// forwards to the inference service.
func ContextWithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestIDFromContext returns the request id stored in ctx, if any.
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}
