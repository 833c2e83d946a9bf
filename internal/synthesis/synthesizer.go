// Package synthesis turns a match result into a tailored narrative document.
// The model rewrites phrasing; the candidate's quantitative facts must come
// through verbatim, and a post-hoc check enforces it.
package synthesis

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/tferreiram-cloud/Antigravity-CV/internal/config"
	"github.com/tferreiram-cloud/Antigravity-CV/internal/gateway"
	"github.com/tferreiram-cloud/Antigravity-CV/internal/prompts"
	"github.com/tferreiram-cloud/Antigravity-CV/internal/types"
)

// Mode selects the vocabulary constraints for a synthesis run.
type Mode string

// Synthesis modes. Junior mode applies the anti-overqualification verb policy.
const (
	ModeSenior Mode = "senior"
	ModeJunior Mode = "junior"
)

// Synthesizer generates tailored documents through the inference gateway.
type Synthesizer struct {
	gw         *gateway.Gateway
	topK       int
	vocabulary map[string]config.VocabularyRules
	log        *zap.Logger
}

// New creates a Synthesizer from configuration.
func New(gw *gateway.Gateway, cfg *config.Config, log *zap.Logger) *Synthesizer {
	if log == nil {
		log = zap.NewNop()
	}
	return &Synthesizer{
		gw:         gw,
		topK:       cfg.TopExperiences,
		vocabulary: cfg.Vocabulary,
		log:        log.Named("synthesis"),
	}
}

type documentPayload struct {
	Headline string `json:"headline"`
	Summary  string `json:"summary"`
	Bullets  []struct {
		ExperienceID string `json:"experience_id"`
		Text         string `json:"text"`
	} `json:"bullets"`
}

// Synthesize produces a tailored document for the posting. The top-K
// experiences by per-experience score supply the facts. Numeric facts from
// the source STAR text must appear unchanged in the output; a drift gets one
// retry with the strict prompt, and a second failure returns the document
// flagged facts_unverified rather than failing the run.
func (s *Synthesizer) Synthesize(ctx context.Context, posting *types.JobPosting, jobKeywords *types.ExtractedKeywords, match *types.MatchResult, p *types.MasterProfile, mode Mode) (*types.GeneratedDocument, error) {
	selected := selectTopExperiences(match.Experiences, p.Experiences, s.topK)
	if len(selected) == 0 {
		return nil, fmt.Errorf("no experiences available for synthesis")
	}

	data := map[string]string{
		"JobTitle":         posting.Title,
		"Company":          posting.Company,
		"Keywords":         strings.Join(jobKeywords.Terms(), ", "),
		"Facts":            factsBlock(selected),
		"ExtraConstraints": s.modeConstraints(mode),
	}
	// Verification runs against the raw STAR text, not the rendered fact
	// sheet, so period dates in the block headers are not treated as facts.
	sourceFacts := starText(selected)

	doc, err := s.generateDocument(ctx, "tailor_document", data, p)
	if err != nil {
		return nil, err
	}

	if missing := missingFacts(sourceFacts, doc.Text()); len(missing) > 0 {
		s.log.Warn("numeric facts drifted, retrying with strict prompt",
			zap.Strings("missing", missing))
		retried, err := s.generateDocument(ctx, "tailor_document_strict", data, p)
		if err != nil {
			return nil, err
		}
		doc = retried
		if missing := missingFacts(sourceFacts, doc.Text()); len(missing) > 0 {
			s.log.Warn("numeric facts still unverified after retry",
				zap.Strings("missing", missing))
			doc.AddFlag(types.FlagFactsUnverified)
		}
	}

	if mode == ModeJunior {
		s.applyVerbPolicy(doc)
	}
	return doc, nil
}

// generateDocument runs one synthesis round with the named prompt.
func (s *Synthesizer) generateDocument(ctx context.Context, promptKey string, data map[string]string, p *types.MasterProfile) (*types.GeneratedDocument, error) {
	template, err := prompts.Get("synthesis.json", promptKey)
	if err != nil {
		return nil, fmt.Errorf("failed to load synthesis prompt: %w", err)
	}

	output, err := s.gw.Invoke(ctx, gateway.TaskNarrativeSynthesis, prompts.Format(template, data), validateAgainst(documentSchema))
	if err != nil {
		return nil, fmt.Errorf("narrative synthesis failed: %w", err)
	}

	var payload documentPayload
	if err := json.Unmarshal([]byte(gateway.CleanJSONBlock(output)), &payload); err != nil {
		return nil, fmt.Errorf("failed to parse validated synthesis payload: %w", err)
	}

	doc := &types.GeneratedDocument{
		HeadlineID: pickHeadlineID(payload.Headline, p.Headlines),
		Headline:   payload.Headline,
		Summary:    payload.Summary,
		Bullets:    make([]types.DocumentBullet, 0, len(payload.Bullets)),
	}
	for _, b := range payload.Bullets {
		doc.Bullets = append(doc.Bullets, types.DocumentBullet{ExperienceID: b.ExperienceID, Text: b.Text})
	}
	return doc, nil
}

// RewriteBullet asks the model to weave one missing keyword into an existing
// bullet without disturbing its facts. Used by the healing loop.
func (s *Synthesizer) RewriteBullet(ctx context.Context, bullet types.DocumentBullet, exp *types.Experience, term string, covered []string) (string, error) {
	template, err := prompts.Get("synthesis.json", "heal_bullet")
	if err != nil {
		return "", fmt.Errorf("failed to load healing prompt: %w", err)
	}
	facts := ""
	if exp != nil {
		facts = exp.FactText()
	}
	prompt := prompts.Format(template, map[string]string{
		"Term":    term,
		"Bullet":  bullet.Text,
		"Facts":   facts,
		"Covered": strings.Join(covered, ", "),
	})

	output, err := s.gw.Invoke(ctx, gateway.TaskNarrativeSynthesis, prompt, nil)
	if err != nil {
		return "", err
	}
	rewritten := strings.TrimSpace(gateway.CleanJSONBlock(output))
	if rewritten == "" {
		return "", fmt.Errorf("empty bullet rewrite")
	}
	return rewritten, nil
}

// modeConstraints renders the extra prompt constraints for a mode.
func (s *Synthesizer) modeConstraints(mode Mode) string {
	rules, ok := s.vocabulary[string(mode)]
	if !ok || len(rules.ForbiddenVerbs) == 0 {
		return ""
	}
	template, err := prompts.Get("synthesis.json", "junior_constraint")
	if err != nil {
		return ""
	}
	return prompts.Format(template, map[string]string{
		"Forbidden": strings.Join(rules.ForbiddenVerbs, ", "),
		"Preferred": strings.Join(rules.SubstituteVerbs, ", "),
	})
}

// applyVerbPolicy runs the deterministic verb substitution over every text
// surface of the document.
func (s *Synthesizer) applyVerbPolicy(doc *types.GeneratedDocument) {
	rules, ok := s.vocabulary[string(ModeJunior)]
	if !ok {
		return
	}
	doc.Headline = substituteVerbs(doc.Headline, rules)
	doc.Summary = substituteVerbs(doc.Summary, rules)
	for i := range doc.Bullets {
		doc.Bullets[i].Text = substituteVerbs(doc.Bullets[i].Text, rules)
	}
}

// factsBlock renders the selected experiences as the fact sheet handed to the
// model, one block per experience keyed by its ID.
func factsBlock(selected []types.Experience) string {
	var sb strings.Builder
	for _, exp := range selected {
		fmt.Fprintf(&sb, "[%s] %s at %s (%s)\n", exp.ID, exp.Role, exp.Company, periodLabel(exp.Period))
		for _, b := range exp.Bullets {
			sb.WriteString("- " + b.Text() + "\n")
		}
		sb.WriteString("\n")
	}
	return strings.TrimSpace(sb.String())
}

// starText joins the STAR bullet text of the selected experiences.
func starText(selected []types.Experience) string {
	parts := make([]string, 0, len(selected))
	for i := range selected {
		parts = append(parts, selected[i].FactText())
	}
	return strings.Join(parts, "\n")
}

func periodLabel(p types.Period) string {
	if p.Current() {
		return p.Start + " to present"
	}
	return p.Start + " to " + p.End
}

// pickHeadlineID maps the generated headline back onto the closest headline
// in the profile's bank by word overlap, so downstream consumers can tell
// which base headline the document descends from.
func pickHeadlineID(headline string, bank map[string]string) string {
	bestID := "custom"
	bestOverlap := 0
	generated := wordSet(headline)
	for id, text := range bank {
		overlap := 0
		for word := range wordSet(text) {
			if generated[word] {
				overlap++
			}
		}
		if overlap > bestOverlap || (overlap == bestOverlap && overlap > 0 && id < bestID) {
			bestID = id
			bestOverlap = overlap
		}
	}
	return bestID
}

func wordSet(text string) map[string]bool {
	set := make(map[string]bool)
	for _, w := range strings.Fields(strings.ToLower(text)) {
		set[w] = true
	}
	return set
}
