package main

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/tferreiram-cloud/Antigravity-CV/internal/config"
	"github.com/tferreiram-cloud/Antigravity-CV/internal/gateway"
	"github.com/tferreiram-cloud/Antigravity-CV/internal/ingestion"
	"github.com/tferreiram-cloud/Antigravity-CV/internal/keywords"
	"github.com/tferreiram-cloud/Antigravity-CV/internal/logger"
	"github.com/tferreiram-cloud/Antigravity-CV/internal/matching"
	"github.com/tferreiram-cloud/Antigravity-CV/internal/pipeline"
	"github.com/tferreiram-cloud/Antigravity-CV/internal/store"
	"github.com/tferreiram-cloud/Antigravity-CV/internal/synthesis"
	"github.com/tferreiram-cloud/Antigravity-CV/internal/types"
)

// app bundles everything a command needs after setup.
type app struct {
	cfg      *config.Config
	log      *zap.Logger
	gw       *gateway.Gateway
	pipe     *pipeline.Pipeline
	engine   *matching.Engine
	extract  *keywords.Extractor
	synth    *synthesis.Synthesizer
	store    *store.Store // nil without a database URL
	shutdown func()
}

// newApp loads configuration and wires the full stack. The returned shutdown
// function releases provider clients and the store pool.
func newApp(ctx context.Context, configPath string, verbose bool) (*app, error) {
	cfg := config.Default()
	if configPath != "" {
		loaded, err := config.Load(configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if verbose {
		cfg.Verbose = true
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}

	log, err := logger.New(false, cfg.Verbose)
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}

	creds := gateway.Credentials{
		GeminiAPIKey: os.Getenv("GEMINI_API_KEY"),
		GroqAPIKey:   os.Getenv("GROQ_API_KEY"),
	}
	providers, err := gateway.BuildProviders(ctx, cfg.Providers, creds, log)
	if err != nil {
		return nil, err
	}
	if len(providers) == 0 {
		log.Warn("no inference providers available, extraction will use rules only")
	}

	gw := gateway.New(providers, gateway.Options{
		FailureThreshold: cfg.FailureThreshold,
		Cooldown:         cfg.Cooldown(),
		Logger:           log,
	})

	extractor := keywords.NewExtractor(gw, log)
	engine := matching.NewEngine(cfg, log)
	synth := synthesis.New(gw, cfg, log)

	var st *store.Store
	if cfg.DatabaseURL != "" {
		st, err = store.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		if err := st.EnsureSchema(ctx); err != nil {
			st.Close()
			return nil, err
		}
	}

	return &app{
		cfg:     cfg,
		log:     log,
		gw:      gw,
		pipe:    pipeline.New(cfg, extractor, engine, synth, st, log),
		engine:  engine,
		extract: extractor,
		synth:   synth,
		store:   st,
		shutdown: func() {
			for _, p := range providers {
				if closer, ok := p.(interface{ Close() error }); ok {
					_ = closer.Close()
				}
			}
			if st != nil {
				st.Close()
			}
			_ = log.Sync()
		},
	}, nil
}

// loadPosting ingests a posting from a text or HTML file.
func loadPosting(path, title, company, url string, isHTML bool) (*types.JobPosting, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read job file: %w", err)
	}
	in := ingestion.Input{Title: title, Company: company, URL: url, Source: "file"}
	if isHTML {
		return ingestion.FromHTML(in, string(data))
	}
	return ingestion.FromText(in, string(data))
}
