// Package strategy derives the strategic plan for a posting before any
// tailoring happens: implicit needs the posting never states, risks in how
// the candidate will read to this company, and whether the narrative should
// be toned down to avoid looking overqualified. The plan gates the strategy
// workflow state; tailoring does not start until it is approved.
package strategy

import (
	"fmt"
	"strings"

	"github.com/tferreiram-cloud/Antigravity-CV/internal/types"
)

// enterpriseCompanies marks employers large enough that senior titles read as
// normal rather than expensive.
var enterpriseCompanies = []string{
	"meta", "facebook", "google", "amazon", "microsoft", "apple",
	"nubank", "ifood", "ambev", "abinbev", "mercado livre", "stone",
}

// Analyze produces the strategic plan for a posting. Deterministic: the same
// posting and keyword set always yield the same plan. Plans start unapproved.
func Analyze(posting *types.JobPosting, jobKeywords *types.ExtractedKeywords) *types.StrategicPlan {
	antiOverqual, shift := narrativeProtocol(posting)
	return &types.StrategicPlan{
		GhostNotes:            ghostNotes(posting, jobKeywords),
		VulnerabilityReport:   vulnerabilities(posting),
		AntiOverqualification: antiOverqual,
		NarrativeShift:        shift,
		Approved:              false,
	}
}

// ghostNotes lists needs the posting implies but never states.
func ghostNotes(posting *types.JobPosting, jobKeywords *types.ExtractedKeywords) []string {
	var notes []string

	switch posting.JobType {
	case "marketing":
		notes = append(notes,
			"Implicitly needs stakeholder management and sales alignment.",
			"Expect aggressive ROI justification demands from leadership.")
	case "growth":
		notes = append(notes,
			"Extreme focus on CAC/LTV and rapid experimentation, likely without ready infrastructure.",
			"Will need hands-on data work before anything can be automated.")
	case "ai":
		notes = append(notes,
			"Magical expectations about AI: sell operational efficiency, not technology.")
	}

	title := strings.ToLower(posting.Title)
	if strings.Contains(title, "lead") || strings.Contains(title, "gerente") || strings.Contains(title, "manager") {
		notes = append(notes, "Needs someone who resolves team conflicts without escalating.")
	}

	if jobKeywords != nil && len(jobKeywords.ByCategory(types.CategorySoftSkill)) > len(jobKeywords.ByCategory(types.CategoryHardSkill)) {
		notes = append(notes, "Posting leans on soft skills: culture fit will weigh more than the stack.")
	}

	return notes
}

// vulnerabilities lists where the candidate risks reading as too expensive or
// too senior for this posting.
func vulnerabilities(posting *types.JobPosting) []string {
	var report []string

	if !isEnterprise(posting.Company) && (posting.Seniority == types.SeniorityLead || posting.Seniority == types.SeniorityManager) {
		report = append(report,
			fmt.Sprintf("RISK: enterprise background may read as too corporate for %s.", posting.Company),
			"TIP: emphasize hands-on agility and shipped results over process.")
	}

	if posting.Seniority == types.SeniorityJunior {
		report = append(report, "CRITICAL: profile is overqualified for this level. Requires full title downgrade.")
	}

	return report
}

// narrativeProtocol decides whether to suppress senior titles and which
// narrative frame to use.
func narrativeProtocol(posting *types.JobPosting) (bool, string) {
	if !isEnterprise(posting.Company) {
		return true, "Narrative: hands-on lead. Hide head and senior-manager titles so the budget conversation survives."
	}
	return false, "Narrative: strategic leader. Keep original titles and lead with large-scale impact."
}

func isEnterprise(company string) bool {
	lower := strings.ToLower(company)
	for _, name := range enterpriseCompanies {
		if strings.Contains(lower, name) {
			return true
		}
	}
	return false
}
