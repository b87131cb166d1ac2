package scoring

import (
	"strings"

	"github.com/jonathan/ats-scorer/internal/types"
)

// GeneralKeywords is the target list used when no job keywords or required skills are given.
var GeneralKeywords = []string{
	"management", "leadership", "communication", "project", "team",
	"problem solving", "analysis", "strategy", "development",
}

// noTargetsScore is returned when there is nothing to match against.
const noTargetsScore = 50.0

// ScoreKeywords is the share of target keywords found as substrings of the resume text.
func ScoreKeywords(resume *types.StructuredResume, job *types.JobRequirements) float64 {
	text := strings.ToLower(resume.Text())
	if strings.TrimSpace(text) == "" {
		return 0
	}

	targets := keywordTargets(job)
	if len(targets) == 0 {
		return noTargetsScore
	}

	matched := 0
	for _, kw := range targets {
		if strings.Contains(text, kw) {
			matched++
		}
	}
	return capScore(100 * float64(matched) / float64(len(targets)))
}

// keywordTargets returns job keywords followed by required skills, lowercased,
// or GeneralKeywords when both are empty.
func keywordTargets(job *types.JobRequirements) []string {
	var targets []string
	if job != nil {
		targets = append(types.Lower(job.Keywords), types.Lower(job.RequiredSkills)...)
	}
	if len(targets) == 0 {
		return GeneralKeywords
	}
	return targets
}
