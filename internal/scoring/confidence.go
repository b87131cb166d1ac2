package scoring

import (
	"math"

	"github.com/jonathan/ats-scorer/internal/types"
)

// confidenceZ is the two-sided 95% normal quantile.
const confidenceZ = 1.96

// ConfidenceInterval treats the category scores as a sample and returns
// overall ± 1.96·σ/√n, clamped to [0,100] and rounded. σ is the population standard
// deviation. The band measures how uneven the categories are; it is not a sampling interval.
func ConfidenceInterval(overall float64, categoryScores []float64) types.ConfidenceInterval {
	n := float64(len(categoryScores))
	if n == 0 {
		return types.ConfidenceInterval{}
	}

	mean := 0.0
	for _, s := range categoryScores {
		mean += s
	}
	mean /= n

	variance := 0.0
	for _, s := range categoryScores {
		variance += (s - mean) * (s - mean)
	}
	std := math.Sqrt(variance / n)
	margin := confidenceZ * std / math.Sqrt(n)

	return types.ConfidenceInterval{
		Lower: Round2(math.Max(0, overall-margin)),
		Upper: Round2(math.Min(maxScore, overall+margin)),
	}
}

// Round2 rounds to two decimals, half away from zero.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
