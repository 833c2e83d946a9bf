package gateway

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// GeminiProvider adapts the Google Gemini API to the Provider contract.
// Eligible for every task kind unless restricted.
type GeminiProvider struct {
	client  *genai.Client
	model   string
	timeout time.Duration
	tasks   map[TaskKind]bool
}

// NewGeminiProvider creates a Gemini adapter. An empty tasks slice means the
// provider is eligible for all task kinds.
func NewGeminiProvider(ctx context.Context, apiKey, model string, timeout time.Duration, tasks []TaskKind) (*GeminiProvider, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &GeminiProvider{
		client:  client,
		model:   model,
		timeout: timeout,
		tasks:   taskSet(tasks),
	}, nil
}

// Name implements Provider.
func (p *GeminiProvider) Name() string { return "gemini" }

// Supports implements Provider.
func (p *GeminiProvider) Supports(task TaskKind) bool {
	return p.tasks == nil || p.tasks[task]
}

// Timeout implements Provider.
func (p *GeminiProvider) Timeout() time.Duration { return p.timeout }

// Generate implements Provider.
func (p *GeminiProvider) Generate(ctx context.Context, prompt string) (string, error) {
	model := p.client.GenerativeModel(p.model)
	model.SetTemperature(0.1) // low temperature for consistent output

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("gemini generation failed: %w", err)
	}
	return extractGeminiText(resp)
}

// Close releases the underlying client.
func (p *GeminiProvider) Close() error {
	if p.client != nil {
		return p.client.Close()
	}
	return nil
}

// extractGeminiText pulls the text parts out of a Gemini response.
func extractGeminiText(resp *genai.GenerateContentResponse) (string, error) {
	if len(resp.Candidates) == 0 {
		return "", fmt.Errorf("no candidates in response")
	}
	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", fmt.Errorf("no content in response")
	}

	var parts []string
	for _, part := range candidate.Content.Parts {
		if text, ok := part.(genai.Text); ok {
			parts = append(parts, string(text))
		}
	}
	if len(parts) == 0 {
		return "", fmt.Errorf("no text parts in response")
	}
	return strings.Join(parts, ""), nil
}

// taskSet converts a task list into a lookup set, nil when unrestricted.
func taskSet(tasks []TaskKind) map[TaskKind]bool {
	if len(tasks) == 0 {
		return nil
	}
	set := make(map[TaskKind]bool, len(tasks))
	for _, t := range tasks {
		set[t] = true
	}
	return set
}

// CleanJSONBlock removes markdown code block wrappers that models sometimes
// emit around JSON payloads.
func CleanJSONBlock(text string) string {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	return strings.TrimSpace(text)
}
