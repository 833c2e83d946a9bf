package types

import "strings"

// ExperienceTier distinguishes core career experiences from contextual ones.
// Core experiences outrank contextual at equal match score.
type ExperienceTier string

// Experience tiers.
const (
	ExperienceCore       ExperienceTier = "core"
	ExperienceContextual ExperienceTier = "contextual"
)

// STARBullet is the structured fact unit behind one experience bullet:
// Situation, Task, Action, Result. Quantitative facts in Result must survive
// synthesis verbatim.
type STARBullet struct {
	Situation string `json:"situation,omitempty"`
	Task      string `json:"task,omitempty"`
	Action    string `json:"action"`
	Result    string `json:"result"`
}

// Text joins the non-empty STAR fields into a single fact string.
func (b STARBullet) Text() string {
	parts := make([]string, 0, 4)
	for _, p := range []string{b.Situation, b.Task, b.Action, b.Result} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " ")
}

// Period is an experience's time span. End empty means current.
type Period struct {
	Start string `json:"start"` // YYYY-MM
	End   string `json:"end,omitempty"`
}

// Current reports whether the period is ongoing.
func (p Period) Current() bool { return p.End == "" }

// Experience is one entry in the candidate's master experience bank.
type Experience struct {
	ID      string         `json:"id"`
	Company string         `json:"company"`
	Role    string         `json:"role"`
	Tier    ExperienceTier `json:"tier"`
	Period  Period         `json:"period"`
	Skills  []string       `json:"skills"`
	Bullets []STARBullet   `json:"bullets"`
}

// FactText returns all STAR text for the experience, the source against which
// numeric facts are verified.
func (e *Experience) FactText() string {
	parts := make([]string, 0, len(e.Bullets))
	for _, b := range e.Bullets {
		parts = append(parts, b.Text())
	}
	return strings.Join(parts, "\n")
}

// Candidate holds the profile owner's identity.
type Candidate struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone,omitempty"`
	Location string `json:"location,omitempty"`
	LinkedIn string `json:"linkedin,omitempty"`
}

// MasterProfile is the candidate's master record: the single source of truth.
// The core never mutates it; the force-match path works on an in-memory copy.
type MasterProfile struct {
	Candidate   Candidate           `json:"candidate"`
	Headlines   map[string]string   `json:"headlines"`
	Summaries   map[string]string   `json:"summaries"`
	Experiences []Experience        `json:"experiences"`
	Skills      map[string][]string `json:"skills"` // category name -> skill terms
	Version     string              `json:"version,omitempty"`
}

// CloneExperiences returns a deep copy of the experience bank for the
// force-match rewrite path.
func (p *MasterProfile) CloneExperiences() []Experience {
	experiences := make([]Experience, len(p.Experiences))
	copy(experiences, p.Experiences)
	for i := range experiences {
		experiences[i].Skills = append([]string(nil), p.Experiences[i].Skills...)
		experiences[i].Bullets = append([]STARBullet(nil), p.Experiences[i].Bullets...)
	}
	return experiences
}
