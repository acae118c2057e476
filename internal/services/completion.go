package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"planpilot-backend/internal/models"
)

const defaultCompletionBaseURL = "https://api.openai.com/v1"

// completionRequest is the minimal request shape for the Chat Completions
// endpoint.
type completionRequest struct {
	Model       string               `json:"model"`
	Messages    []models.ChatMessage `json:"messages"`
	Temperature float64              `json:"temperature"`
}

// completionResponse is the minimal response shape returned by the Chat
// Completions endpoint.
type completionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// CompletionClient is a focused OpenAI-compatible client for chat completions.
type CompletionClient struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

type CompletionOption func(*CompletionClient)

func WithCompletionBaseURL(baseURL string) CompletionOption {
	return func(c *CompletionClient) {
		c.baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	}
}

func WithCompletionHTTPClient(httpClient *http.Client) CompletionOption {
	return func(c *CompletionClient) {
		c.httpClient = httpClient
	}
}

func NewCompletionClient(apiKey string, opts ...CompletionOption) *CompletionClient {
	c := &CompletionClient{
		apiKey:     apiKey,
		baseURL:    defaultCompletionBaseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Configured reports whether a completion credential is present.
func (c *CompletionClient) Configured() bool {
	return c.apiKey != ""
}

// Complete submits the messages and returns the first choice's text content.
// An empty string with a nil error means the upstream produced no usable text.
func (c *CompletionClient) Complete(ctx context.Context, model string, temperature float64, messages []models.ChatMessage) (string, error) {
	if !c.Configured() {
		return "", &ConfigError{Message: "completion service is not configured"}
	}

	body, err := json.Marshal(completionRequest{
		Model:       model,
		Messages:    messages,
		Temperature: temperature,
	})
	if err != nil {
		return "", fmt.Errorf("completion: marshal request: %w", err)
	}

	url := c.baseURL + "/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("completion: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	res, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("completion: request failed: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(res.Body, 4096))
		return "", &UpstreamError{Service: "completion", StatusCode: res.StatusCode, Body: string(raw)}
	}

	raw, err := io.ReadAll(io.LimitReader(res.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("completion: read response body: %w", err)
	}

	var payload completionResponse
	if err := json.Unmarshal(raw, &payload); err != nil {
		return "", fmt.Errorf("completion: decode response: %w", err)
	}
	if len(payload.Choices) == 0 {
		return "", nil
	}
	return payload.Choices[0].Message.Content, nil
}
