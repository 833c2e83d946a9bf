// Package types defines the shared domain records passed between pipeline stages.
package types

import "time"

// Language is the detected language of a job posting.
type Language string

// Supported posting languages.
const (
	LanguageEN Language = "en"
	LanguagePT Language = "pt"
)

// Seniority is the seniority level detected in a posting.
type Seniority string

// Seniority levels, ordered from junior to lead.
const (
	SeniorityJunior  Seniority = "junior"
	SeniorityMid     Seniority = "mid"
	SenioritySenior  Seniority = "senior"
	SeniorityManager Seniority = "manager"
	SeniorityLead    Seniority = "lead"
)

// JobPosting is a single job listing moving through the tailoring workflow.
// Status and the match fields are mutated by the matching engine and the
// state tracker; everything else is fixed at ingestion.
type JobPosting struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Company     string    `json:"company"`
	Description string    `json:"description"`
	Language    Language  `json:"language"`
	Status      string    `json:"status"`
	URL         string    `json:"url,omitempty"`
	Location    string    `json:"location,omitempty"`
	Source      string    `json:"source,omitempty"`
	Seniority   Seniority `json:"seniority,omitempty"`
	JobType     string    `json:"job_type,omitempty"`

	MatchScore      *float64       `json:"match_score,omitempty"`
	MatchedKeywords []string       `json:"matched_keywords,omitempty"`
	StrategicPlan   *StrategicPlan `json:"strategic_plan,omitempty"`

	ScrapedAt  time.Time        `json:"scraped_at"`
	Validation *ScrapeChecklist `json:"validation,omitempty"`
}

// ScrapeChecklist records which ingestion checks passed for a posting.
type ScrapeChecklist struct {
	TitleFound          bool   `json:"title_found"`
	CompanyFound        bool   `json:"company_found"`
	DescriptionReadable bool   `json:"description_readable"`
	RequirementsFound   bool   `json:"requirements_found"`
	LanguageDetected    string `json:"language_detected"`
	RawLength           int    `json:"raw_length"`
}

// Valid reports whether the posting carries enough content to be processed.
// RequirementsFound is advisory only: some postings bury requirements in prose.
func (c *ScrapeChecklist) Valid() bool {
	return c.TitleFound && c.CompanyFound && c.DescriptionReadable && c.RawLength > 100
}

// Failures lists the human-readable names of the checks that failed.
func (c *ScrapeChecklist) Failures() []string {
	var failures []string
	if !c.TitleFound {
		failures = append(failures, "title not identified")
	}
	if !c.CompanyFound {
		failures = append(failures, "company not identified")
	}
	if !c.DescriptionReadable {
		failures = append(failures, "description not readable")
	}
	if !c.RequirementsFound {
		failures = append(failures, "no explicit requirements section")
	}
	if c.RawLength <= 100 {
		failures = append(failures, "description too short")
	}
	return failures
}
