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

// GroqProvider adapts Groq's OpenAI-compatible chat completion API to the
// Provider contract.
type GroqProvider struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	model      string
	timeout    time.Duration
	tasks      map[TaskKind]bool
}

// NewGroqProvider creates a Groq adapter.
func NewGroqProvider(baseURL, apiKey, model string, timeout time.Duration, tasks []TaskKind) (*GroqProvider, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("groq API key is required")
	}
	return &GroqProvider{
		httpClient: &http.Client{},
		baseURL:    baseURL,
		apiKey:     apiKey,
		model:      model,
		timeout:    timeout,
		tasks:      taskSet(tasks),
	}, nil
}

// Name implements Provider.
func (p *GroqProvider) Name() string { return "groq" }

// Supports implements Provider.
func (p *GroqProvider) Supports(task TaskKind) bool {
	return p.tasks == nil || p.tasks[task]
}

// Timeout implements Provider.
func (p *GroqProvider) Timeout() time.Duration { return p.timeout }

type groqRequest struct {
	Model       string        `json:"model"`
	Messages    []groqMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

type groqMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type groqResponse struct {
	Choices []struct {
		Message groqMessage `json:"message"`
	} `json:"choices"`
}

// Generate implements Provider via the chat completions endpoint.
func (p *GroqProvider) Generate(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(groqRequest{
		Model:       p.model,
		Messages:    []groqMessage{{Role: "user", Content: prompt}},
		Temperature: 0.1,
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode groq request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build groq request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+p.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("groq request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("groq returned status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read groq response: %w", err)
	}

	var parsed groqResponse
	if err := json.Unmarshal(data, &parsed); err != nil {
		return "", fmt.Errorf("failed to decode groq response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("no choices in groq response")
	}
	return parsed.Choices[0].Message.Content, nil
}
