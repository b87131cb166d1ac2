// Package benchmark classifies scores against static per-industry benchmarks.
package benchmark

import (
	"sort"
	"strings"

	"github.com/jonathan/ats-scorer/internal/types"
)

// DefaultIndustry is used for empty or unknown industries.
const DefaultIndustry = "general"

// Performance levels.
const (
	LevelTop          = "Top 10%"
	LevelAboveAverage = "Above Average"
	LevelAverage      = "Average"
	LevelBelowAverage = "Below Average"
	LevelNeedsWork    = "Needs Significant Improvement"
)

// aboveAverageMargin is the distance from the average that separates the middle bands.
const aboveAverageMargin = 10

// Benchmark is an industry's average score and top-percentile threshold.
type Benchmark struct {
	AverageScore  float64 `json:"average_score"`
	TopPercentile float64 `json:"top_percentile"`
}

var benchmarks = map[string]Benchmark{
	"technology": {AverageScore: 75, TopPercentile: 90},
	"healthcare": {AverageScore: 70, TopPercentile: 85},
	"finance":    {AverageScore: 78, TopPercentile: 92},
	"marketing":  {AverageScore: 72, TopPercentile: 87},
	"general":    {AverageScore: 70, TopPercentile: 85},
}

// Normalize lowercases and trims industry. A blank industry becomes DefaultIndustry.
func Normalize(industry string) string {
	key := strings.ToLower(strings.TrimSpace(industry))
	if key == "" {
		return DefaultIndustry
	}
	return key
}

// Lookup returns the benchmark for an industry and the industry name actually used.
func Lookup(industry string) (Benchmark, string) {
	key := Normalize(industry)
	if b, ok := benchmarks[key]; ok {
		return b, key
	}
	return benchmarks[DefaultIndustry], DefaultIndustry
}

// Industries returns the industries with a benchmark, alphabetically.
func Industries() []string {
	names := make([]string, 0, len(benchmarks))
	for name := range benchmarks {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// All returns a copy of the benchmark table.
func All() map[string]Benchmark {
	out := make(map[string]Benchmark, len(benchmarks))
	for k, v := range benchmarks {
		out[k] = v
	}
	return out
}

// Compare classifies score against the industry benchmark. Industry echoes the requested
// industry; BenchmarkIndustry names the benchmark row that was applied.
func Compare(score float64, industry string) types.BenchmarkComparison {
	b, resolved := Lookup(industry)

	level, percentile := classify(score, b)
	return types.BenchmarkComparison{
		Industry:               Normalize(industry),
		BenchmarkIndustry:      resolved,
		Score:                  score,
		IndustryAverage:        b.AverageScore,
		TopPercentileThreshold: b.TopPercentile,
		PerformanceLevel:       level,
		PercentileEstimate:     percentile,
	}
}

func classify(score float64, b Benchmark) (string, int) {
	switch {
	case score >= b.TopPercentile:
		return LevelTop, 95
	case score >= b.AverageScore+aboveAverageMargin:
		return LevelAboveAverage, 75
	case score >= b.AverageScore:
		return LevelAverage, 50
	case score >= b.AverageScore-aboveAverageMargin:
		return LevelBelowAverage, 25
	default:
		return LevelNeedsWork, 10
	}
}
