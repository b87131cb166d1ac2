package scoring

import (
	"fmt"
	"time"

	"github.com/jonathan/ats-scorer/internal/types"
)

const (
	excellentThreshold = 90
	goodThreshold      = 75
	fairThreshold      = 60
)

// Level classifies a category score.
func Level(score float64) string {
	switch {
	case score >= excellentThreshold:
		return types.LevelExcellent
	case score >= goodThreshold:
		return types.LevelGood
	case score >= fairThreshold:
		return types.LevelFair
	default:
		return types.LevelNeedsImprovement
	}
}

// Breakdown explains rounded category scores. Strengths are Excellent categories;
// weaknesses are Fair and Needs Improvement ones. Good categories appear in neither list.
func Breakdown(resume *types.StructuredResume, scores map[string]float64, weights types.ScoringWeights, scoredAt time.Time) types.DetailedBreakdown {
	b := types.DetailedBreakdown{
		CategoryAnalysis: make(map[string]types.CategoryAnalysis, len(types.Categories)),
		Strengths:        []string{},
		Weaknesses:       []string{},
		MissingElements:  MissingElements(resume),
		WeightsUsed:      weights,
		ScoredAt:         scoredAt,
	}

	for _, c := range types.Categories {
		score := scores[c]
		level := Level(score)
		b.CategoryAnalysis[c] = types.CategoryAnalysis{Score: score, Level: level}

		entry := fmt.Sprintf("%s: %.1f", types.CategoryLabel(c), score)
		switch level {
		case types.LevelExcellent:
			b.Strengths = append(b.Strengths, entry)
		case types.LevelFair, types.LevelNeedsImprovement:
			b.Weaknesses = append(b.Weaknesses, entry)
		}
	}
	return b
}

// MissingElements lists absent resume elements in a fixed order.
func MissingElements(resume *types.StructuredResume) []string {
	missing := []string{}
	if resume.LinkedIn() == "" {
		missing = append(missing, types.MissingLinkedIn)
	}
	if len(types.NonBlank(resume.SkillsIn("certifications"))) == 0 {
		missing = append(missing, types.MissingCertifications)
	}
	if resume != nil && len(resume.Experience) > 0 && !hasQuantifiedAchievement(resume.Experience) {
		missing = append(missing, types.MissingQuantified)
	}
	return missing
}

func hasQuantifiedAchievement(experience []types.Experience) bool {
	for _, exp := range experience {
		if anyHasDigit(exp.Achievements) {
			return true
		}
	}
	return false
}
