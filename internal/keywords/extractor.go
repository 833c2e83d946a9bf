// Package keywords extracts the ATS-relevant keyword set from a job posting.
// The primary path asks the inference gateway for categorized terms; when the
// whole provider chain is exhausted a deterministic dictionary extractor takes
// over so a run always has a keyword set to score against.
package keywords

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/tferreiram-cloud/Antigravity-CV/internal/gateway"
	"github.com/tferreiram-cloud/Antigravity-CV/internal/prompts"
	"github.com/tferreiram-cloud/Antigravity-CV/internal/types"
)

// Extractor produces the normalized keyword set for a posting.
type Extractor struct {
	gw  *gateway.Gateway
	log *zap.Logger
}

// NewExtractor creates an Extractor over the given gateway.
func NewExtractor(gw *gateway.Gateway, log *zap.Logger) *Extractor {
	if log == nil {
		log = zap.NewNop()
	}
	return &Extractor{gw: gw, log: log.Named("keywords")}
}

// Extract returns the keyword set for the posting text. Model output is
// schema-checked inside the gateway, so a malformed payload burns that
// provider and the chain continues; only full exhaustion falls back to the
// rule-based extractor. The returned set records which path produced it.
func (e *Extractor) Extract(ctx context.Context, postingText string, language types.Language) (*types.ExtractedKeywords, error) {
	template, err := prompts.Get("extraction.json", "extract_keywords")
	if err != nil {
		return nil, fmt.Errorf("failed to load extraction prompt: %w", err)
	}
	prompt := prompts.Format(template, map[string]string{
		"Language":    string(language),
		"Description": postingText,
	})

	output, err := e.gw.Invoke(ctx, gateway.TaskKeywordExtraction, prompt, validateExtraction)
	if err != nil {
		if gateway.IsExhausted(err) {
			e.log.Warn("inference chain exhausted, using rule-based extraction", zap.Error(err))
			return ExtractWithRules(postingText, language), nil
		}
		return nil, err
	}

	extracted, err := parseModelKeywords(output, language)
	if err != nil {
		// The schema hook accepted the payload, so this indicates a bug in
		// the schema rather than a provider problem.
		return nil, fmt.Errorf("failed to parse validated keyword payload: %w", err)
	}
	e.log.Debug("keywords extracted",
		zap.Int("count", len(extracted.Keywords)),
		zap.String("source", string(extracted.Source)))
	return extracted, nil
}

// parseModelKeywords decodes a schema-valid payload and normalizes it: terms
// lower-cased, synonyms canonicalized, duplicates dropped keeping first
// occurrence.
func parseModelKeywords(raw string, language types.Language) (*types.ExtractedKeywords, error) {
	var parsed []types.Keyword
	if err := json.Unmarshal([]byte(gateway.CleanJSONBlock(raw)), &parsed); err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(parsed))
	keywords := make([]types.Keyword, 0, len(parsed))
	for _, kw := range parsed {
		term := Canonicalize(kw.Term)
		if len(term) < 2 || seen[term] {
			continue
		}
		category := kw.Category
		if !types.ValidCategory(category) {
			return nil, fmt.Errorf("unknown keyword category %q", category)
		}
		seen[term] = true
		keywords = append(keywords, types.Keyword{Term: term, Category: CategoryOf(term, category)})
	}
	if len(keywords) == 0 {
		return nil, fmt.Errorf("payload contained no usable terms")
	}

	return &types.ExtractedKeywords{Keywords: keywords, Source: types.SourceModel, Language: language}, nil
}
