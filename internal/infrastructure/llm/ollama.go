package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"golang.org/x/time/rate"
)

// OllamaClient calls a local Ollama server's generate endpoint
type OllamaClient struct {
	httpClient  *http.Client
	baseURL     string
	model       string
	temperature float64
	rateLimiter *rate.Limiter
}

type generateRequest struct {
	Model   string         `json:"model"`
	Prompt  string         `json:"prompt"`
	Stream  bool           `json:"stream"`
	Options map[string]any `json:"options,omitempty"`
}

type generateResponse struct {
	Response string `json:"response"`
	Error    string `json:"error,omitempty"`
}

// NewOllamaClient creates an Ollama client
func NewOllamaClient(cfg Config) *OllamaClient {
	return &OllamaClient{
		httpClient:  &http.Client{Timeout: cfg.Timeout},
		baseURL:     cfg.BaseURL,
		model:       cfg.Model,
		temperature: cfg.Temperature,
		rateLimiter: newLimiter(cfg.RequestsPerSecond),
	}
}

// Name returns the provider name
func (c *OllamaClient) Name() string { return ProviderOllama }

// Complete runs one non-streaming generation
func (c *OllamaClient) Complete(ctx context.Context, prompt string) (string, error) {
	if err := waitLimiter(ctx, c.rateLimiter); err != nil {
		return "", err
	}

	body, err := json.Marshal(generateRequest{
		Model:   c.model,
		Prompt:  prompt,
		Options: map[string]any{"temperature": c.temperature},
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/generate", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(respBody)))
	}

	var gen generateResponse
	if err := json.Unmarshal(respBody, &gen); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}
	if gen.Error != "" {
		return "", fmt.Errorf("ollama error: %s", gen.Error)
	}

	return strings.TrimSpace(gen.Response), nil
}
