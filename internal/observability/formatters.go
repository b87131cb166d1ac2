// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/ats-scorer/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
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
//nolint:errcheck // writing to stderr; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// truncate shortens s to at most n runes, ending in "..." when cut.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

// writeList writes up to maxItemsToShow items with a "more" line for the rest.
func writeList(sb *strings.Builder, heading string, items []string) {
	if len(items) == 0 {
		return
	}
	sb.WriteString(heading + ":\n")
	count := min(len(items), maxItemsToShow)
	for i := 0; i < count; i++ {
		sb.WriteString(fmt.Sprintf("  • %s\n", items[i]))
	}
	if len(items) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(items)-maxItemsToShow))
	}
}

// PrintScoreResult outputs the overall score, category scores and benchmark placement.
func (p *Printer) PrintScoreResult(result *types.ScoreResult) {
	if result == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Overall:     %.2f  [%.2f, %.2f]\n",
		result.OverallScore, result.ConfidenceInterval.Lower, result.ConfidenceInterval.Upper))
	bc := result.BenchmarkComparison
	sb.WriteString(fmt.Sprintf("Benchmark:   %s (%s, ~%dth pct)\n", bc.PerformanceLevel, bc.Industry, bc.PercentileEstimate))
	if len(result.ConsistencyHash) >= 12 {
		sb.WriteString(fmt.Sprintf("Fingerprint: %s\n", result.ConsistencyHash[:12]))
	}
	sb.WriteString("\n")

	for _, c := range types.Categories {
		analysis := result.DetailedBreakdown.CategoryAnalysis[c]
		sb.WriteString(fmt.Sprintf("%-22s %6.2f  %s\n", types.CategoryLabel(c), result.Score(c), analysis.Level))
	}

	if len(result.DetailedBreakdown.MissingElements) > 0 {
		sb.WriteString("\n")
		writeList(&sb, "Missing", result.DetailedBreakdown.MissingElements)
	}
	if len(result.Recommendations) > 0 {
		sb.WriteString("\n")
		writeList(&sb, "Recommendations", result.Recommendations)
	}

	p.printBox("ATS SCORE", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintRecommendations outputs priority actions and quick wins.
func (p *Printer) PrintRecommendations(set *types.RecommendationSet) {
	if set == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Total recommendations: %d\n", set.Metadata.RecommendationCount))
	if areas := set.Metadata.ImprovementContext.WeakestAreas; len(areas) > 0 {
		sb.WriteString(fmt.Sprintf("Weakest areas: %s\n", strings.Join(areas, ", ")))
	}
	sb.WriteString("\n")

	actions := make([]string, 0, len(set.PriorityActions))
	for _, a := range set.PriorityActions {
		actions = append(actions, fmt.Sprintf("P%d %s (%s)", a.Priority, a.Action, a.Timeline))
	}
	writeList(&sb, "Priority actions", actions)

	wins := make([]string, 0, len(set.QuickWins))
	for _, w := range set.QuickWins {
		wins = append(wins, fmt.Sprintf("%s (%s)", w.Action, w.TimeRequired))
	}
	writeList(&sb, "Quick wins", wins)

	writeList(&sb, "Missing keywords", set.KeywordOptimization.MissingKeywords)

	p.printBox("RECOMMENDATIONS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintSkillGaps outputs missing skills and substitution suggestions.
func (p *Printer) PrintSkillGaps(gaps *types.SkillGapAnalysis) {
	if gaps == nil {
		return
	}

	var sb strings.Builder
	if len(gaps.MissingSkills) == 0 && len(gaps.Unclassified) == 0 {
		sb.WriteString("No skill gaps found\n")
	}
	writeList(&sb, "Missing skills", gaps.MissingSkills)
	writeList(&sb, "Not in taxonomy", gaps.Unclassified)

	suggestions := make([]string, 0, len(gaps.SkillSuggestions))
	for _, s := range gaps.SkillSuggestions {
		suggestions = append(suggestions, fmt.Sprintf("%s → %s", s.RelatedSkill, s.MissingSkill))
	}
	writeList(&sb, "Related skills you have", suggestions)

	p.printBox("SKILL GAPS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintIndustryAnalysis outputs industry alignment and missing skills.
func (p *Printer) PrintIndustryAnalysis(analysis *types.IndustryAnalysis) {
	if analysis == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Industry:  %s\n", analysis.Industry))
	if !analysis.Known {
		sb.WriteString("No industry pattern available")
		p.printBox("INDUSTRY ANALYSIS", sb.String())
		return
	}
	sb.WriteString(fmt.Sprintf("Alignment: %.2f (common %.2f, trending %.2f)\n\n",
		analysis.IndustryAlignment, analysis.CommonSkillsMatch, analysis.TrendingSkillsMatch))
	writeList(&sb, "Missing common skills", analysis.MissingCommonSkills)
	writeList(&sb, "Missing trending skills", analysis.MissingTrendingSkills)

	p.printBox("INDUSTRY ANALYSIS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintExtraction notes when a resume came from the fallback extractor.
func (p *Printer) PrintExtraction(extraction *types.Extraction) {
	if extraction == nil || !extraction.IsFallback() {
		return
	}
	p.printBox("FALLBACK EXTRACTION", "Reason: "+extraction.Reason)
}
