package profile

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/google/uuid"

	"github.com/tferreiram-cloud/Antigravity-CV/internal/types"
)

// Load reads a master profile from a JSON file. Experiences without an ID get
// one assigned, so hand-edited profiles stay valid.
func Load(path string) (*types.MasterProfile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read profile file: %w", err)
	}

	var p types.MasterProfile
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to parse profile file %s: %w", path, err)
	}

	for i := range p.Experiences {
		if p.Experiences[i].ID == "" {
			p.Experiences[i].ID = uuid.New().String()
		}
		if p.Experiences[i].Tier == "" {
			p.Experiences[i].Tier = types.ExperienceContextual
		}
	}

	if err := validate(&p); err != nil {
		return nil, fmt.Errorf("profile %s is invalid: %w", path, err)
	}
	return &p, nil
}

func validate(p *types.MasterProfile) error {
	if p.Candidate.Name == "" {
		return fmt.Errorf("candidate name is required")
	}
	if len(p.Experiences) == 0 {
		return fmt.Errorf("at least one experience is required")
	}
	seen := make(map[string]bool, len(p.Experiences))
	for _, exp := range p.Experiences {
		if seen[exp.ID] {
			return fmt.Errorf("duplicate experience id %q", exp.ID)
		}
		seen[exp.ID] = true
		if exp.Tier != types.ExperienceCore && exp.Tier != types.ExperienceContextual {
			return fmt.Errorf("experience %q has unknown tier %q", exp.ID, exp.Tier)
		}
		if len(exp.Bullets) == 0 {
			return fmt.Errorf("experience %q has no bullets", exp.ID)
		}
	}
	if len(p.Headlines) == 0 {
		return fmt.Errorf("at least one headline is required")
	}
	return nil
}
