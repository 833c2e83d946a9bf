// Package ingestion turns pasted text or pre-fetched HTML into a JobPosting
// ready for the workflow. No network I/O happens here; fetching is the
// scraper's job.
package ingestion

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/google/uuid"

	"github.com/tferreiram-cloud/Antigravity-CV/internal/types"
	"github.com/tferreiram-cloud/Antigravity-CV/internal/workflow"
)

// InvalidPostingError reports a posting that failed the scrape checklist.
type InvalidPostingError struct {
	Failures []string
}

func (e *InvalidPostingError) Error() string {
	return fmt.Sprintf("posting failed ingestion checks: %s", strings.Join(e.Failures, "; "))
}

// Input is the raw material for one posting.
type Input struct {
	Title   string
	Company string
	URL     string
	Source  string
}

// FromText builds a JobPosting from plain description text. The posting
// starts in todo with the checklist attached; a failed checklist returns
// *InvalidPostingError instead of a posting.
func FromText(in Input, description string) (*types.JobPosting, error) {
	cleaned := collapseWhitespace(description)
	language := DetectLanguage(in.Title + " " + cleaned)

	checklist := &types.ScrapeChecklist{
		TitleFound:          strings.TrimSpace(in.Title) != "",
		CompanyFound:        strings.TrimSpace(in.Company) != "",
		DescriptionReadable: cleaned != "",
		RequirementsFound:   hasRequirementsSection(cleaned),
		LanguageDetected:    string(language),
		RawLength:           len(cleaned),
	}
	if !checklist.Valid() {
		return nil, &InvalidPostingError{Failures: checklist.Failures()}
	}

	return &types.JobPosting{
		ID:          uuid.New().String(),
		Title:       strings.TrimSpace(in.Title),
		Company:     strings.TrimSpace(in.Company),
		Description: cleaned,
		Language:    language,
		Status:      string(workflow.StatusTodo),
		URL:         in.URL,
		Source:      in.Source,
		Seniority:   DetectSeniority(in.Title),
		JobType:     DetectJobType(in.Title, cleaned),
		ScrapedAt:   time.Now().UTC(),
		Validation:  checklist,
	}, nil
}

// FromHTML strips markup from a pre-fetched posting page and ingests the
// remaining text.
func FromHTML(in Input, html string) (*types.JobPosting, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse posting HTML: %w", err)
	}
	doc.Find("script, style, noscript, nav, footer").Remove()

	text := doc.Find("body").Text()
	if strings.TrimSpace(text) == "" {
		text = doc.Text()
	}
	return FromText(in, text)
}

var spaceRuns = regexp.MustCompile(`[ \t]+`)
var blankLines = regexp.MustCompile(`\n{3,}`)

// collapseWhitespace normalizes runs of spaces and stacked blank lines while
// keeping paragraph structure.
func collapseWhitespace(text string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(spaceRuns.ReplaceAllString(line, " "))
	}
	joined := strings.Join(lines, "\n")
	return strings.TrimSpace(blankLines.ReplaceAllString(joined, "\n\n"))
}

var requirementMarkers = []string{
	"requirements", "qualifications", "what you bring", "what we're looking for",
	"must have", "requisitos", "qualificações", "o que esperamos", "diferenciais",
}

func hasRequirementsSection(text string) bool {
	lower := strings.ToLower(text)
	for _, marker := range requirementMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}
