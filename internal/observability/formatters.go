// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/tferreiram-cloud/Antigravity-CV/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 8
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintKeywords outputs the extracted keyword set grouped by category.
func (p *Printer) PrintKeywords(extracted *types.ExtractedKeywords) {
	if extracted == nil || len(extracted.Keywords) == 0 {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Source: %s  Language: %s  Terms: %d\n\n",
		extracted.Source, extracted.Language, len(extracted.Keywords)))

	for _, category := range []types.KeywordCategory{
		types.CategoryHardSkill, types.CategoryTool, types.CategoryDomainTerm, types.CategorySoftSkill,
	} {
		terms := extracted.ByCategory(category)
		if len(terms) == 0 {
			continue
		}
		joined := strings.Join(terms, ", ")
		if len(joined) > 44 {
			joined = joined[:41] + "..."
		}
		sb.WriteString(fmt.Sprintf("%-12s %s\n", category+":", joined))
	}

	p.printBox("EXTRACTED KEYWORDS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintMatchResult outputs the aggregate score, top experiences and gaps.
func (p *Printer) PrintMatchResult(result *types.MatchResult) {
	if result == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Score: %d%%  Tier: %s", result.Percentage(), result.Tier))
	if result.Forced {
		sb.WriteString("  [FORCED REWRITE]")
	}
	sb.WriteString("\n\n")

	count := min(len(result.Experiences), maxItemsToShow)
	for i := 0; i < count; i++ {
		es := result.Experiences[i]
		sb.WriteString(fmt.Sprintf("#%d  %s\n", i+1, es.ExperienceID))
		sb.WriteString(fmt.Sprintf("    Score: %.2f (%s)\n", es.Score, es.Tier))
	}
	if len(result.Experiences) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("... and %d more experiences\n", len(result.Experiences)-maxItemsToShow))
	}

	if len(result.KeywordsMissing) > 0 {
		missing := strings.Join(result.KeywordsMissing, ", ")
		if len(missing) > 44 {
			missing = missing[:41] + "..."
		}
		sb.WriteString(fmt.Sprintf("\nMissing: %s\n", missing))
	}
	for _, warning := range result.Warnings {
		sb.WriteString(fmt.Sprintf("⚠ %s\n", warning))
	}

	p.printBox("MATCH RESULT", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintStrategicPlan outputs the plan awaiting approval.
func (p *Printer) PrintStrategicPlan(plan *types.StrategicPlan) {
	if plan == nil {
		return
	}

	var sb strings.Builder
	for _, note := range plan.GhostNotes {
		sb.WriteString(fmt.Sprintf("• %s\n", note))
	}
	for _, risk := range plan.VulnerabilityReport {
		sb.WriteString(fmt.Sprintf("! %s\n", risk))
	}
	sb.WriteString(fmt.Sprintf("\n%s\n", plan.NarrativeShift))
	if plan.AntiOverqualification {
		sb.WriteString("Anti-overqualification protocol: ON\n")
	}
	if plan.Approved {
		sb.WriteString("Status: approved\n")
	} else {
		sb.WriteString("Status: awaiting approval\n")
	}

	p.printBox("STRATEGIC PLAN", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintDocument outputs the generated document with its coverage and flags.
func (p *Printer) PrintDocument(doc *types.GeneratedDocument) {
	if doc == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(doc.Headline + "\n\n")

	summary := doc.Summary
	if len(summary) > 100 {
		summary = summary[:97] + "..."
	}
	sb.WriteString(summary + "\n\n")

	count := min(len(doc.Bullets), maxItemsToShow)
	for i := 0; i < count; i++ {
		text := doc.Bullets[i].Text
		if len(text) > 50 {
			text = text[:47] + "..."
		}
		sb.WriteString(fmt.Sprintf("• %s\n", text))
	}
	if len(doc.Bullets) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("... and %d more bullets\n", len(doc.Bullets)-maxItemsToShow))
	}

	sb.WriteString(fmt.Sprintf("\nATS coverage: %.0f%%  Healing iterations: %d\n",
		doc.ATSCoverage*100, doc.HealingIterations))
	for _, flag := range doc.Flags {
		sb.WriteString(fmt.Sprintf("⚠ %s\n", flag))
	}

	p.printBox("TAILORED DOCUMENT", strings.TrimSuffix(sb.String(), "\n"))
}
