package benchmark

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompare_Levels(t *testing.T) {
	tests := []struct {
		name       string
		score      float64
		industry   string
		level      string
		percentile int
	}{
		{"technology top", 90, "technology", LevelTop, 95},
		{"technology just below top", 89.99, "technology", LevelAboveAverage, 75},
		{"technology above average", 85, "technology", LevelAboveAverage, 75},
		{"technology average", 80, "technology", LevelAverage, 50},
		{"healthcare above average", 80, "healthcare", LevelAboveAverage, 75},
		{"technology below average", 65, "technology", LevelBelowAverage, 25},
		{"technology needs work", 64.99, "technology", LevelNeedsWork, 10},
		{"finance average", 78, "finance", LevelAverage, 50},
		{"marketing top", 87, "marketing", LevelTop, 95},
		{"zero score", 0, "general", LevelNeedsWork, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Compare(tt.score, tt.industry)
			assert.Equal(t, tt.level, got.PerformanceLevel)
			assert.Equal(t, tt.percentile, got.PercentileEstimate)
			assert.Equal(t, tt.score, got.Score)
		})
	}
}

func TestCompare_SameScoreDifferentIndustries(t *testing.T) {
	tech := Compare(80, "technology")
	health := Compare(80, "healthcare")

	assert.Equal(t, "Average", tech.PerformanceLevel)
	assert.Equal(t, "Above Average", health.PerformanceLevel)
	assert.Equal(t, 75.0, tech.IndustryAverage)
	assert.Equal(t, 70.0, health.IndustryAverage)
}

func TestCompare_UnknownIndustryFallsBack(t *testing.T) {
	got := Compare(72, "aerospace")
	assert.Equal(t, "aerospace", got.Industry)
	assert.Equal(t, "general", got.BenchmarkIndustry)
	assert.Equal(t, 70.0, got.IndustryAverage)
	assert.Equal(t, 85.0, got.TopPercentileThreshold)

	got = Compare(72, "")
	assert.Equal(t, "general", got.Industry)
	assert.Equal(t, "general", got.BenchmarkIndustry)

	got = Compare(72, "  Technology ")
	assert.Equal(t, "technology", got.Industry)
	assert.Equal(t, "technology", got.BenchmarkIndustry)
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "general", Normalize("   "))
	assert.Equal(t, "basket weaving", Normalize(" Basket Weaving "))
}

func TestIndustries(t *testing.T) {
	assert.Equal(t, []string{"finance", "general", "healthcare", "marketing", "technology"}, Industries())
	all := All()
	all["technology"] = Benchmark{}
	assert.Equal(t, 75.0, All()["technology"].AverageScore, "All must return a copy")
}
