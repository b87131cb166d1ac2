package types

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-playground/validator/v10"
)

// WeightTolerance is the allowed deviation of the weight sum from 1.0.
const WeightTolerance = 0.001

// ErrInvalidWeights is returned when a weight set is negative or does not sum to 1.0.
var ErrInvalidWeights = errors.New("invalid scoring weights")

// Category keys, in evaluation order.
const (
	CategorySkills     = "skills_match"
	CategoryExperience = "experience_relevance"
	CategoryEducation  = "education_alignment"
	CategoryFormat     = "format_structure"
	CategoryKeywords   = "keyword_optimization"
)

// Categories lists the category keys in their fixed evaluation order.
var Categories = []string{
	CategorySkills,
	CategoryExperience,
	CategoryEducation,
	CategoryFormat,
	CategoryKeywords,
}

// CategoryLabel returns the display label for a category key, e.g. "Skills Match".
func CategoryLabel(category string) string {
	switch category {
	case CategorySkills:
		return "Skills Match"
	case CategoryExperience:
		return "Experience Relevance"
	case CategoryEducation:
		return "Education Alignment"
	case CategoryFormat:
		return "Format Structure"
	case CategoryKeywords:
		return "Keyword Optimization"
	default:
		return category
	}
}

// ScoringWeights holds one weight per category.
type ScoringWeights struct {
	SkillsMatch         float64 `json:"skills_match" mapstructure:"skills" validate:"gte=0,lte=1"`
	ExperienceRelevance float64 `json:"experience_relevance" mapstructure:"experience" validate:"gte=0,lte=1"`
	EducationAlignment  float64 `json:"education_alignment" mapstructure:"education" validate:"gte=0,lte=1"`
	FormatStructure     float64 `json:"format_structure" mapstructure:"format" validate:"gte=0,lte=1"`
	KeywordOptimization float64 `json:"keyword_optimization" mapstructure:"keywords" validate:"gte=0,lte=1"`
}

// DefaultWeights returns the standard weight vector.
func DefaultWeights() ScoringWeights {
	return ScoringWeights{
		SkillsMatch:         0.30,
		ExperienceRelevance: 0.25,
		EducationAlignment:  0.15,
		FormatStructure:     0.15,
		KeywordOptimization: 0.15,
	}
}

// Sum returns the total of all weights.
func (w ScoringWeights) Sum() float64 {
	return w.SkillsMatch + w.ExperienceRelevance + w.EducationAlignment + w.FormatStructure + w.KeywordOptimization
}

// Weight returns the weight for a category key, or 0 for unknown keys.
func (w ScoringWeights) Weight(category string) float64 {
	switch category {
	case CategorySkills:
		return w.SkillsMatch
	case CategoryExperience:
		return w.ExperienceRelevance
	case CategoryEducation:
		return w.EducationAlignment
	case CategoryFormat:
		return w.FormatStructure
	case CategoryKeywords:
		return w.KeywordOptimization
	default:
		return 0
	}
}

// Map returns the weights keyed by category.
func (w ScoringWeights) Map() map[string]float64 {
	out := make(map[string]float64, len(Categories))
	for _, c := range Categories {
		out[c] = w.Weight(c)
	}
	return out
}

// Validate checks that every weight is within [0,1] and that the sum is 1.0 ± WeightTolerance.
// Errors wrap ErrInvalidWeights.
func (w ScoringWeights) Validate() error {
	validate := validator.New()
	if err := validate.Struct(w); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidWeights, err)
	}
	sum := w.Sum()
	if math.Abs(sum-1.0) > WeightTolerance {
		return fmt.Errorf("%w: weights sum to %.3f, must be 1.0", ErrInvalidWeights, sum)
	}
	return nil
}
