package types

import "time"

// RecommendationSet is the rich, grouped improvement plan for a scored resume.
type RecommendationSet struct {
	PriorityActions     []PriorityAction       `json:"priority_actions"`
	ContentImprovements ContentImprovements    `json:"content_improvements"`
	FormatEnhancements  []FormatEnhancement    `json:"format_enhancements"`
	KeywordOptimization KeywordOptimization    `json:"keyword_optimization"`
	SkillDevelopment    SkillDevelopment       `json:"skill_development"`
	SectionSpecific     SectionSpecific        `json:"section_specific"`
	BeforeAfterExamples []BeforeAfterExample   `json:"before_after_examples"`
	QuickWins           []QuickWin             `json:"quick_wins"`
	LongTermStrategy    LongTermStrategy       `json:"long_term_strategy"`
	Metadata            RecommendationMetadata `json:"metadata"`
}

// PriorityAction is a ranked, high-impact change.
type PriorityAction struct {
	Priority    int    `json:"priority"`
	Category    string `json:"category"`
	Action      string `json:"action"`
	Description string `json:"description"`
	Impact      string `json:"impact"`
	Effort      string `json:"effort"`
	Timeline    string `json:"timeline"`
}

// ContentImprovements groups content suggestions by resume section.
type ContentImprovements struct {
	ProfessionalSummary []string `json:"professional_summary"`
	ExperienceSection   []string `json:"experience_section"`
	SkillsSection       []string `json:"skills_section"`
	EducationSection    []string `json:"education_section"`
	Achievements        []string `json:"achievements"`
}

// FormatEnhancement is a single formatting issue and its fix.
type FormatEnhancement struct {
	Type           string `json:"type"`
	Recommendation string `json:"recommendation"`
	Importance     string `json:"importance"`
}

// KeywordOptimization lists keyword gaps and placement advice.
type KeywordOptimization struct {
	MissingKeywords     []string `json:"missing_keywords"`
	KeywordPlacement    []string `json:"keyword_placement"`
	DensityOptimization []string `json:"density_optimization"`
	IndustryKeywords    []string `json:"industry_keywords"`
}

// SkillDevelopment is a learning plan built from skill gaps.
type SkillDevelopment struct {
	ImmediateSkills     []string          `json:"immediate_skills"`
	Certifications      []string          `json:"certifications"`
	LongTermDevelopment []string          `json:"long_term_development"`
	LearningResources   []string          `json:"learning_resources"`
	Substitutions       []SkillSuggestion `json:"substitutions"`
}

// SectionSpecific groups suggestions by resume section.
type SectionSpecific struct {
	ContactSection     []string `json:"contact_section"`
	SummarySection     []string `json:"summary_section"`
	ExperienceSection  []string `json:"experience_section"`
	EducationSection   []string `json:"education_section"`
	SkillsSection      []string `json:"skills_section"`
	AdditionalSections []string `json:"additional_sections"`
}

// BeforeAfterExample shows a suggested rewrite.
type BeforeAfterExample struct {
	Section     string `json:"section"`
	Before      string `json:"before"`
	After       string `json:"after"`
	Improvement string `json:"improvement"`
}

// QuickWin is a low-effort fix.
type QuickWin struct {
	Action       string `json:"action"`
	Description  string `json:"description"`
	TimeRequired string `json:"time_required"`
	Impact       string `json:"impact"`
}

// LongTermStrategy groups career-level advice.
type LongTermStrategy struct {
	SkillDevelopmentPath      []string `json:"skill_development_path"`
	ExperienceBuilding        []string `json:"experience_building"`
	NetworkingRecommendations []string `json:"networking_recommendations"`
	CertificationRoadmap      []string `json:"certification_roadmap"`
	IndustryPositioning       []string `json:"industry_positioning"`
}

// RecommendationMetadata describes how a set was generated.
type RecommendationMetadata struct {
	GeneratedAt               time.Time          `json:"generated_at"`
	RecommendationCount       int                `json:"recommendation_count"`
	ImprovementContext        ImprovementContext `json:"improvement_context"`
	ScoreImprovementPotential map[string]float64 `json:"score_improvement_potential"`
}

// ImprovementContext captures the score situation recommendations were built from.
type ImprovementContext struct {
	OverallScore    float64            `json:"overall_score"`
	CategoryScores  map[string]float64 `json:"category_scores"`
	WeakestAreas    []string           `json:"weakest_areas"`
	MissingElements []string           `json:"missing_elements"`
	JobTargeted     bool               `json:"job_targeted"`
}

// Count returns the number of individual items across all groups.
func (s *RecommendationSet) Count() int {
	if s == nil {
		return 0
	}
	n := len(s.PriorityActions) + len(s.FormatEnhancements) + len(s.BeforeAfterExamples) + len(s.QuickWins)
	c := s.ContentImprovements
	n += len(c.ProfessionalSummary) + len(c.ExperienceSection) + len(c.SkillsSection) + len(c.EducationSection) + len(c.Achievements)
	k := s.KeywordOptimization
	n += len(k.MissingKeywords) + len(k.KeywordPlacement) + len(k.DensityOptimization) + len(k.IndustryKeywords)
	d := s.SkillDevelopment
	n += len(d.ImmediateSkills) + len(d.Certifications) + len(d.LongTermDevelopment) + len(d.LearningResources) + len(d.Substitutions)
	sec := s.SectionSpecific
	n += len(sec.ContactSection) + len(sec.SummarySection) + len(sec.ExperienceSection) +
		len(sec.EducationSection) + len(sec.SkillsSection) + len(sec.AdditionalSections)
	l := s.LongTermStrategy
	n += len(l.SkillDevelopmentPath) + len(l.ExperienceBuilding) + len(l.NetworkingRecommendations) +
		len(l.CertificationRoadmap) + len(l.IndustryPositioning)
	return n
}

// RecommendationStatistics summarizes a generator's history.
type RecommendationStatistics struct {
	TotalGenerated         int        `json:"total_recommendations_generated"`
	AverageInitialScore    float64    `json:"average_initial_score"`
	AverageRecommendations float64    `json:"average_recommendations_per_resume"`
	JobTargetedPercentage  float64    `json:"job_targeted_percentage"`
	CommonWeakAreas        []WeakArea `json:"common_weak_areas"`
}

// WeakArea is a category and how often it was the weakest one.
type WeakArea struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}
