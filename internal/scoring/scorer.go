// Package scoring implements the deterministic ATS scoring engine: five category scorers,
// weighted aggregation, the consistency cache and the scoring history.
package scoring

import (
	"strings"
	"time"

	"github.com/jonathan/ats-scorer/internal/types"
)

// maxScore caps every category score.
const maxScore = 100.0

// Input is everything a category scorer may look at.
type Input struct {
	Resume *types.StructuredResume
	// Job is nil when no job requirements were given.
	Job *types.JobRequirements
	// Now resolves "Present" end dates.
	Now time.Time
}

// Scorer computes a single category score in [0,100]. Implementations must be pure.
type Scorer interface {
	Score(in Input) float64
}

// ScorerFunc adapts a function to the Scorer interface.
type ScorerFunc func(in Input) float64

// Score calls f.
func (f ScorerFunc) Score(in Input) float64 {
	return f(in)
}

// DefaultScorers returns the built-in scorer for every category.
func DefaultScorers() map[string]Scorer {
	return map[string]Scorer{
		types.CategorySkills: ScorerFunc(func(in Input) float64 {
			return ScoreSkills(in.Resume, in.Job)
		}),
		types.CategoryExperience: ScorerFunc(func(in Input) float64 {
			return ScoreExperience(in.Resume, in.Job, in.Now)
		}),
		types.CategoryEducation: ScorerFunc(func(in Input) float64 {
			return ScoreEducation(in.Resume, in.Job)
		}),
		types.CategoryFormat: ScorerFunc(func(in Input) float64 {
			return ScoreFormat(in.Resume)
		}),
		types.CategoryKeywords: ScorerFunc(func(in Input) float64 {
			return ScoreKeywords(in.Resume, in.Job)
		}),
	}
}

func capScore(v float64) float64 {
	if v > maxScore {
		return maxScore
	}
	if v < 0 {
		return 0
	}
	return v
}

func containsAny(text string, words []string) bool {
	for _, w := range words {
		if w != "" && strings.Contains(text, w) {
			return true
		}
	}
	return false
}
