package gateway

import (
	"context"

	"go.uber.org/zap"

	"github.com/tferreiram-cloud/Antigravity-CV/internal/config"
)

// Credentials holds the API keys the provider adapters need. Ollama is local
// and keyless.
type Credentials struct {
	GeminiAPIKey string
	GroqAPIKey   string
}

// BuildProviders constructs the provider chain from configuration, preserving
// the declared priority order. Providers whose credentials are missing are
// skipped with a log line rather than failing the whole chain, mirroring
// availability-based tiering: the chain degrades, the run continues.
func BuildProviders(ctx context.Context, cfgs []config.ProviderConfig, creds Credentials, log *zap.Logger) ([]Provider, error) {
	if log == nil {
		log = zap.NewNop()
	}
	providers := make([]Provider, 0, len(cfgs))

	for _, cfg := range cfgs {
		tasks := make([]TaskKind, 0, len(cfg.Tasks))
		for _, t := range cfg.Tasks {
			tasks = append(tasks, TaskKind(t))
		}

		switch cfg.Name {
		case "ollama":
			providers = append(providers, NewOllamaProvider(cfg.BaseURL, cfg.Model, cfg.Timeout(), tasks))
		case "gemini":
			if creds.GeminiAPIKey == "" {
				log.Warn("gemini provider skipped: no API key configured")
				continue
			}
			p, err := NewGeminiProvider(ctx, creds.GeminiAPIKey, cfg.Model, cfg.Timeout(), tasks)
			if err != nil {
				return nil, err
			}
			providers = append(providers, p)
		case "groq":
			if creds.GroqAPIKey == "" {
				log.Warn("groq provider skipped: no API key configured")
				continue
			}
			p, err := NewGroqProvider(cfg.BaseURL, creds.GroqAPIKey, cfg.Model, cfg.Timeout(), tasks)
			if err != nil {
				return nil, err
			}
			providers = append(providers, p)
		}
	}

	return providers, nil
}
