package types

// MatchTier buckets a numeric match score. Thresholds are configuration, not
// constants; see config.Thresholds.
type MatchTier string

// Match tiers.
const (
	TierHigh   MatchTier = "high"
	TierMedium MatchTier = "medium"
	TierLow    MatchTier = "low"
)

// ExperienceScore is the match score of a single experience against a posting.
type ExperienceScore struct {
	ExperienceID    string    `json:"experience_id"`
	Score           float64   `json:"score"`
	Tier            MatchTier `json:"tier"`
	MatchedKeywords []string  `json:"matched_keywords,omitempty"`
}

// MatchResult is the outcome of scoring a posting's keywords against the
// candidate profile. Produced fresh per (posting, profile-version) pair and
// replaced wholesale, never mutated.
//
// KeywordsCovered and KeywordsMissing partition the job keyword set exactly:
// their union equals the extracted terms and they never overlap.
type MatchResult struct {
	Score           float64           `json:"score"`
	Tier            MatchTier         `json:"tier"`
	Experiences     []ExperienceScore `json:"experiences"`
	KeywordsCovered []string          `json:"keywords_covered"`
	KeywordsMissing []string          `json:"keywords_missing"`
	Warnings        []string          `json:"warnings,omitempty"`
	Forced          bool              `json:"forced,omitempty"`
}

// Percentage returns the aggregate score as an integer percentage.
func (m *MatchResult) Percentage() int {
	return int(m.Score * 100)
}
