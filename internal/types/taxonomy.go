package types

import (
	"sort"
	"time"

	"github.com/go-playground/validator/v10"
)

// SkillTaxonomyEntry is one canonical skill in the taxonomy.
type SkillTaxonomyEntry struct {
	SkillName         string             `json:"skill_name" validate:"required,max=200"`
	Category          string             `json:"category" validate:"required,max=100"`
	Subcategory       string             `json:"subcategory,omitempty" validate:"max=100"`
	Aliases           []string           `json:"aliases,omitempty"`
	RelatedSkills     []string           `json:"related_skills,omitempty"`
	IndustryRelevance map[string]float64 `json:"industry_relevance,omitempty"`
	DifficultyLevel   string             `json:"difficulty_level,omitempty" validate:"omitempty,oneof=beginner intermediate advanced expert"`
}

// Difficulty levels for taxonomy entries.
const (
	DifficultyBeginner     = "beginner"
	DifficultyIntermediate = "intermediate"
	DifficultyAdvanced     = "advanced"
	DifficultyExpert       = "expert"
)

// Validate validates the SkillTaxonomyEntry using the validator.
func (e *SkillTaxonomyEntry) Validate() error {
	validate := validator.New()
	return validate.Struct(e)
}

// SkillGapAnalysis is the result of comparing resume skills against job skills.
type SkillGapAnalysis struct {
	MissingSkills         []string            `json:"missing_skills"`
	CategoryGaps          map[string][]string `json:"category_gaps"`
	SkillSuggestions      []SkillSuggestion   `json:"skill_suggestions"`
	ResumeSkillCategories map[string][]string `json:"resume_skill_categories"`
	JobSkillCategories    map[string][]string `json:"job_skill_categories"`
	Unclassified          []string            `json:"unclassified"`
}

// SkillSuggestion proposes a present resume skill as a substitute for a missing one.
type SkillSuggestion struct {
	MissingSkill string `json:"missing_skill"`
	RelatedSkill string `json:"related_skill"`
	Suggestion   string `json:"suggestion"`
}

// IndustryPattern describes what an industry looks for.
type IndustryPattern struct {
	Industry              string             `json:"industry"`
	CommonSkills          []string           `json:"common_skills"`
	TrendingSkills        []string           `json:"trending_skills"`
	SkillWeights          map[string]float64 `json:"skill_weights,omitempty"`
	ExperiencePatterns    map[string]string  `json:"experience_patterns,omitempty"`
	EducationRequirements map[string]float64 `json:"education_requirements,omitempty"`
}

// IndustryAnalysis scores a resume against an industry pattern.
type IndustryAnalysis struct {
	Industry              string   `json:"industry"`
	Known                 bool     `json:"known"`
	IndustryAlignment     float64  `json:"industry_alignment"`
	CommonSkillsMatch     float64  `json:"common_skills_match"`
	TrendingSkillsMatch   float64  `json:"trending_skills_match"`
	MatchedCommonSkills   []string `json:"matched_common_skills"`
	MatchedTrendingSkills []string `json:"matched_trending_skills"`
	MissingCommonSkills   []string `json:"missing_common_skills"`
	MissingTrendingSkills []string `json:"missing_trending_skills"`
	Recommendations       []string `json:"recommendations"`
}

// KnowledgeEntry is a free-text best-practice or guidance note.
type KnowledgeEntry struct {
	ID        string         `json:"id"`
	Category  string         `json:"category" validate:"required,max=100"`
	Title     string         `json:"title" validate:"required,max=300"`
	Content   string         `json:"content" validate:"required"`
	Tags      []string       `json:"tags,omitempty"`
	Source    string         `json:"source,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	Metadata  map[string]any `json:"metadata,omitempty"`
}

// ScoringPattern aggregates historical score distributions for an industry and job level.
type ScoringPattern struct {
	ID                  string              `json:"id"`
	Industry            string              `json:"industry"`
	JobLevel            string              `json:"job_level"`
	ScoreDistribution   map[string]int      `json:"score_distribution"`
	CommonIssues        []string            `json:"common_issues"`
	ImprovementPatterns map[string][]string `json:"improvement_patterns"`
	CreatedAt           time.Time           `json:"created_at"`
}

// ScoringBenchmarks is the aggregate of stored scoring patterns.
type ScoringBenchmarks struct {
	SampleSize            int                 `json:"sample_size"`
	CommonIssues          []string            `json:"common_issues"`
	ImprovementStrategies map[string][]string `json:"improvement_strategies"`
	ScoreDistributions    []map[string]int    `json:"score_distributions"`
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
