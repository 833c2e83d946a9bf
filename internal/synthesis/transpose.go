package synthesis

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/tferreiram-cloud/Antigravity-CV/internal/gateway"
	"github.com/tferreiram-cloud/Antigravity-CV/internal/keywords"
	"github.com/tferreiram-cloud/Antigravity-CV/internal/prompts"
	"github.com/tferreiram-cloud/Antigravity-CV/internal/types"
)

// TransposeSkills asks the model which missing job keywords this experience
// truthfully demonstrates under another name. Only terms from the missing
// list come back; anything else the model volunteers is dropped. Satisfies
// the matching engine's transposer contract for force-match.
func (s *Synthesizer) TransposeSkills(ctx context.Context, exp types.Experience, missing []string) ([]string, error) {
	if len(missing) == 0 {
		return nil, nil
	}
	template, err := prompts.Get("synthesis.json", "transpose_skills")
	if err != nil {
		return nil, fmt.Errorf("failed to load transposition prompt: %w", err)
	}
	prompt := prompts.Format(template, map[string]string{
		"Missing": strings.Join(missing, ", "),
		"Role":    exp.Role,
		"Skills":  strings.Join(exp.Skills, ", "),
		"Facts":   exp.FactText(),
	})

	output, err := s.gw.Invoke(ctx, gateway.TaskScoring, prompt, validateAgainst(transposeSchema))
	if err != nil {
		return nil, err
	}

	var payload []struct {
		Term     string `json:"term"`
		Evidence string `json:"evidence"`
	}
	if err := json.Unmarshal([]byte(gateway.CleanJSONBlock(output)), &payload); err != nil {
		return nil, fmt.Errorf("failed to parse transposition payload: %w", err)
	}

	allowed := make(map[string]bool, len(missing))
	for _, term := range missing {
		allowed[keywords.Canonicalize(term)] = true
	}

	var transposed []string
	for _, entry := range payload {
		term := keywords.Canonicalize(entry.Term)
		if !allowed[term] {
			continue
		}
		transposed = append(transposed, term)
		s.log.Debug("skill transposed",
			zap.String("experience_id", exp.ID),
			zap.String("term", term),
			zap.String("evidence", entry.Evidence))
	}
	return transposed, nil
}
