package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// OllamaProvider adapts a local Ollama server to the Provider contract. It is
// the zero-cost first tier, typically restricted to extraction and scoring.
type OllamaProvider struct {
	httpClient *http.Client
	baseURL    string
	model      string
	timeout    time.Duration
	tasks      map[TaskKind]bool
}

// NewOllamaProvider creates an Ollama adapter against baseURL.
func NewOllamaProvider(baseURL, model string, timeout time.Duration, tasks []TaskKind) *OllamaProvider {
	return &OllamaProvider{
		httpClient: &http.Client{},
		baseURL:    baseURL,
		model:      model,
		timeout:    timeout,
		tasks:      taskSet(tasks),
	}
}

// Name implements Provider.
func (p *OllamaProvider) Name() string { return "ollama" }

// Supports implements Provider.
func (p *OllamaProvider) Supports(task TaskKind) bool {
	return p.tasks == nil || p.tasks[task]
}

// Timeout implements Provider.
func (p *OllamaProvider) Timeout() time.Duration { return p.timeout }

type ollamaRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
}

type ollamaResponse struct {
	Response string `json:"response"`
}

// Generate implements Provider via Ollama's /api/generate endpoint.
func (p *OllamaProvider) Generate(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(ollamaRequest{Model: p.model, Prompt: prompt})
	if err != nil {
		return "", fmt.Errorf("failed to encode ollama request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/api/generate", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build ollama request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("ollama request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("ollama returned status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read ollama response: %w", err)
	}

	var parsed ollamaResponse
	if err := json.Unmarshal(data, &parsed); err != nil {
		return "", fmt.Errorf("failed to decode ollama response: %w", err)
	}
	return parsed.Response, nil
}
