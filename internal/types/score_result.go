package types

import "time"

// ScoreResult is the immutable output of a scoring run.
type ScoreResult struct {
	OverallScore        float64             `json:"overall_score"`
	CategoryScores      map[string]float64  `json:"category_scores"`
	DetailedBreakdown   DetailedBreakdown   `json:"detailed_breakdown"`
	ConfidenceInterval  ConfidenceInterval  `json:"confidence_interval"`
	ConsistencyHash     string              `json:"consistency_hash"`
	BenchmarkComparison BenchmarkComparison `json:"benchmark_comparison"`
	Recommendations     []string            `json:"recommendations"`
}

// ConfidenceInterval is a dispersion band around the overall score.
// It is derived from the spread of the five category scores, not from repeated sampling.
type ConfidenceInterval struct {
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
}

// CategoryAnalysis is the per-category entry in the breakdown.
type CategoryAnalysis struct {
	Score float64 `json:"score"`
	Level string  `json:"level"`
}

// DetailedBreakdown explains a score.
type DetailedBreakdown struct {
	CategoryAnalysis map[string]CategoryAnalysis `json:"category_analysis"`
	Strengths        []string                    `json:"strengths"`
	Weaknesses       []string                    `json:"weaknesses"`
	MissingElements  []string                    `json:"missing_elements"`
	WeightsUsed      ScoringWeights              `json:"weights_used"`
	ScoredAt         time.Time                   `json:"scored_at"`
}

// Performance levels used by the breakdown.
const (
	LevelExcellent        = "Excellent"
	LevelGood             = "Good"
	LevelFair             = "Fair"
	LevelNeedsImprovement = "Needs Improvement"
)

// BenchmarkComparison places a score relative to an industry benchmark.
type BenchmarkComparison struct {
	Industry               string  `json:"industry"`
	BenchmarkIndustry      string  `json:"benchmark_industry"`
	Score                  float64 `json:"score"`
	IndustryAverage        float64 `json:"industry_average"`
	TopPercentileThreshold float64 `json:"top_percentile_threshold"`
	PerformanceLevel       string  `json:"performance_level"`
	PercentileEstimate     int     `json:"percentile_estimate"`
}

// Score returns the category score, or 0 for an unknown key.
func (r *ScoreResult) Score(category string) float64 {
	if r == nil {
		return 0
	}
	return r.CategoryScores[category]
}

// ScoringStatistics summarizes the scoring history of an engine.
type ScoringStatistics struct {
	TotalScored     int            `json:"total_scored"`
	AverageScore    float64        `json:"average_score"`
	Distribution    map[string]int `json:"score_distribution"`
	ConsistencyRate float64        `json:"consistency_rate"`
	RecentAverage   float64        `json:"recent_average"`
}

// Distribution bucket keys.
const (
	BucketExcellent        = "excellent_90_plus"
	BucketGood             = "good_75_89"
	BucketFair             = "fair_60_74"
	BucketNeedsImprovement = "needs_improvement_below_60"
)

// Missing element labels reported in the breakdown.
const (
	MissingLinkedIn       = "LinkedIn profile URL"
	MissingCertifications = "Professional certifications"
	MissingQuantified     = "Quantified achievements with numbers/percentages"
)
