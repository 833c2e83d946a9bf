package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScrapeChecklist(t *testing.T) {
	checklist := &ScrapeChecklist{
		TitleFound:          true,
		CompanyFound:        true,
		DescriptionReadable: true,
		RawLength:           250,
	}
	assert.True(t, checklist.Valid())
	assert.Equal(t, []string{"no explicit requirements section"}, checklist.Failures(),
		"a missing requirements section is advisory, not fatal")

	checklist.RawLength = 80
	assert.False(t, checklist.Valid())
	assert.Contains(t, checklist.Failures(), "description too short")
}

func TestGeneratedDocumentFlags(t *testing.T) {
	doc := &GeneratedDocument{}

	assert.False(t, doc.HasFlag(FlagFactsUnverified))
	doc.AddFlag(FlagFactsUnverified)
	doc.AddFlag(FlagFactsUnverified)
	assert.Equal(t, []string{FlagFactsUnverified}, doc.Flags)
}

func TestGeneratedDocumentCloneIsIndependent(t *testing.T) {
	doc := &GeneratedDocument{
		Headline: "Engineer",
		Bullets:  []DocumentBullet{{ExperienceID: "e1", Text: "original"}},
		Flags:    []string{FlagCoverageUnmet},
	}

	clone := doc.Clone()
	clone.Bullets[0].Text = "rewritten"
	clone.AddFlag(FlagFactsUnverified)

	assert.Equal(t, "original", doc.Bullets[0].Text)
	assert.Equal(t, []string{FlagCoverageUnmet}, doc.Flags)
}

func TestGeneratedDocumentText(t *testing.T) {
	doc := &GeneratedDocument{
		Headline: "Engineer",
		Summary:  "Builds systems.",
		Bullets:  []DocumentBullet{{Text: "Did a thing."}, {Text: "Did another."}},
	}

	assert.Equal(t, "Engineer\nBuilds systems.\nDid a thing.\nDid another.", doc.Text())
}

func TestMatchResultPercentage(t *testing.T) {
	assert.Equal(t, 50, (&MatchResult{Score: 0.5}).Percentage())
	assert.Equal(t, 0, (&MatchResult{}).Percentage())
	assert.Equal(t, 100, (&MatchResult{Score: 1.0}).Percentage())
}

func TestSTARBulletText(t *testing.T) {
	full := STARBullet{Situation: "Legacy system", Task: "replace it", Action: "rebuilt the service", Result: "cut costs by 40%"}
	assert.Equal(t, "Legacy system replace it rebuilt the service cut costs by 40%", full.Text())

	partial := STARBullet{Action: "rebuilt the service", Result: "cut costs by 40%"}
	assert.Equal(t, "rebuilt the service cut costs by 40%", partial.Text())
}

func TestCloneExperiencesIsDeep(t *testing.T) {
	p := &MasterProfile{Experiences: []Experience{
		{ID: "e1", Skills: []string{"python"}, Bullets: []STARBullet{{Action: "a", Result: "r"}}},
	}}

	clone := p.CloneExperiences()
	clone[0].Skills[0] = "rust"
	clone[0].Bullets[0].Action = "changed"

	assert.Equal(t, "python", p.Experiences[0].Skills[0])
	assert.Equal(t, "a", p.Experiences[0].Bullets[0].Action)
}

func TestExtractedKeywordsAccessors(t *testing.T) {
	kws := &ExtractedKeywords{Keywords: []Keyword{
		{Term: "python", Category: CategoryHardSkill},
		{Term: "docker", Category: CategoryTool},
		{Term: "communication", Category: CategorySoftSkill},
	}}

	assert.Equal(t, []string{"python", "docker", "communication"}, kws.Terms())
	assert.True(t, kws.HasTerm("Python"))
	assert.False(t, kws.HasTerm("rust"))
	assert.Equal(t, []string{"python"}, kws.ByCategory(CategoryHardSkill))
}

func TestValidCategory(t *testing.T) {
	for _, c := range []KeywordCategory{CategoryHardSkill, CategoryTool, CategorySoftSkill, CategoryDomainTerm} {
		assert.True(t, ValidCategory(c))
	}
	assert.False(t, ValidCategory("vibe"))
}
