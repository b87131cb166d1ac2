package scoring

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/ats-scorer/internal/benchmark"
	"github.com/jonathan/ats-scorer/internal/recommend"
	"github.com/jonathan/ats-scorer/internal/types"
)

func fixedClock() time.Time { return testNow }

// countingScorers returns constant scorers that count their invocations.
func countingScorers(value float64, calls *atomic.Int64) []Option {
	opts := make([]Option, 0, len(types.Categories))
	for _, c := range types.Categories {
		opts = append(opts, WithScorer(c, ScorerFunc(func(Input) float64 {
			calls.Add(1)
			return value
		})))
	}
	return opts
}

func newEngine(t *testing.T, opts ...Option) *Engine {
	t.Helper()
	e, err := NewEngine(types.DefaultWeights(), append([]Option{WithClock(fixedClock)}, opts...)...)
	require.NoError(t, err)
	return e
}

func sampleResume() *types.StructuredResume {
	return &types.StructuredResume{
		PersonalInfo: &types.PersonalInfo{Name: "Ada", Email: "ada@example.com", Phone: "555-0100"},
		Experience: []types.Experience{{
			Title:            "Senior Engineer",
			Company:          "Acme",
			StartDate:        "01/2018",
			EndDate:          "Present",
			Responsibilities: []string{"Led platform team", "Built APIs", "Owned on-call", "Hired", "Planned"},
			Achievements:     []string{"Reduced cost by 40%", "Launched search"},
		}},
		Education: []types.Education{{Degree: "BS Computer Science", Institution: "State University"}},
		Skills: map[string][]string{
			"technical_skills": {"Python", "Go", "SQL"},
			"soft_skills":      {"Leadership"},
		},
		Metadata: map[string]any{"source": "upload"},
	}
}

func TestNewEngine_RejectsInvalidWeights(t *testing.T) {
	_, err := NewEngine(types.ScoringWeights{SkillsMatch: 0.3, ExperienceRelevance: 0.2, EducationAlignment: 0.1, FormatStructure: 0.1, KeywordOptimization: 0.1})
	require.Error(t, err)
	assert.True(t, errors.Is(err, types.ErrInvalidWeights))

	_, err = NewEngine(types.ScoringWeights{SkillsMatch: 1.2, ExperienceRelevance: -0.2})
	assert.ErrorIs(t, err, types.ErrInvalidWeights)
}

func TestNewEngine_RejectsMissingScorer(t *testing.T) {
	_, err := NewEngine(types.DefaultWeights(), WithScorer(types.CategorySkills, nil))
	assert.Error(t, err)

	_, err = NewEngine(types.DefaultWeights(), WithScorer("charisma", ScorerFunc(func(Input) float64 { return 0 })))
	assert.Error(t, err)
}

func TestScore_NilResume(t *testing.T) {
	_, err := newEngine(t).Score(nil, nil, "")
	assert.ErrorIs(t, err, ErrNilResume)
}

func TestScore_Scenarios(t *testing.T) {
	t.Run("sixteen skills without job", func(t *testing.T) {
		resume := &types.StructuredResume{Skills: map[string][]string{"technical_skills": skillList(16)}}
		result, err := newEngine(t).Score(resume, nil, "")
		require.NoError(t, err)
		assert.Equal(t, 95.0, result.Score(types.CategorySkills))
	})

	t.Run("senior engineer caps experience", func(t *testing.T) {
		resume := &types.StructuredResume{Experience: []types.Experience{{
			Title:            "Senior Engineer",
			StartDate:        "01/2018",
			EndDate:          "Present",
			Responsibilities: []string{"a", "b", "c", "d", "e"},
			Achievements:     []string{"Improved throughput 40%", "Mentored team"},
		}}}
		result, err := newEngine(t).Score(resume, nil, "")
		require.NoError(t, err)
		assert.Equal(t, 100.0, result.Score(types.CategoryExperience))
	})

	t.Run("empty resume", func(t *testing.T) {
		result, err := newEngine(t).Score(&types.StructuredResume{}, nil, "")
		require.NoError(t, err)
		assert.Equal(t, map[string]float64{
			types.CategorySkills:     0,
			types.CategoryExperience: 0,
			types.CategoryEducation:  40,
			types.CategoryFormat:     0,
			types.CategoryKeywords:   0,
		}, result.CategoryScores)
		assert.Equal(t, 6.0, result.OverallScore)
		assert.Equal(t, types.ConfidenceInterval{Lower: 0, Upper: 20.02}, result.ConfidenceInterval)
		assert.Equal(t, []string{types.MissingLinkedIn, types.MissingCertifications}, result.DetailedBreakdown.MissingElements)
	})

	t.Run("one of three required skills", func(t *testing.T) {
		resume := &types.StructuredResume{Skills: map[string][]string{"technical_skills": {"Python"}}}
		job := &types.JobRequirements{RequiredSkills: []string{"Python", "SQL", "AWS"}}
		result, err := newEngine(t).Score(resume, job, "")
		require.NoError(t, err)
		assert.Equal(t, 33.33, result.Score(types.CategorySkills))
	})

	t.Run("same score benchmarks differently per industry", func(t *testing.T) {
		var calls atomic.Int64
		e := newEngine(t, countingScorers(80, &calls)...)

		tech, err := e.Score(sampleResume(), nil, "technology")
		require.NoError(t, err)
		health, err := e.Score(sampleResume(), nil, "healthcare")
		require.NoError(t, err)

		assert.Equal(t, 80.0, tech.OverallScore)
		assert.Equal(t, benchmark.LevelAverage, tech.BenchmarkComparison.PerformanceLevel)
		assert.Equal(t, benchmark.LevelAboveAverage, health.BenchmarkComparison.PerformanceLevel)
		assert.Equal(t, tech.ConsistencyHash, health.ConsistencyHash)
		assert.Equal(t, 2, e.CacheStats().Entries)
	})
}

func TestScore_CacheComputesOnce(t *testing.T) {
	var calls atomic.Int64
	e := newEngine(t, countingScorers(70, &calls)...)

	first, err := e.Score(sampleResume(), nil, "technology")
	require.NoError(t, err)
	second, err := e.Score(sampleResume(), nil, "Technology ")
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, int64(len(types.Categories)), calls.Load())
	assert.Equal(t, CacheStats{Entries: 1, Hits: 1, Misses: 1, Computations: 1}, e.CacheStats())

	history := e.History()
	require.Len(t, history, 2)
	assert.False(t, history[0].CacheHit)
	assert.True(t, history[1].CacheHit)
	assert.Equal(t, first.ConsistencyHash, history[1].Fingerprint)
}

func TestScore_ConcurrentMissesComputeOnce(t *testing.T) {
	var calls atomic.Int64
	e := newEngine(t, countingScorers(70, &calls)...)

	const workers = 32
	results := make([]*types.ScoreResult, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			r, err := e.Score(sampleResume(), nil, "")
			assert.NoError(t, err)
			results[i] = r
		}(i)
	}
	wg.Wait()

	for _, r := range results {
		assert.Same(t, results[0], r)
	}
	assert.Equal(t, int64(len(types.Categories)), calls.Load())
	assert.Equal(t, 1, e.CacheStats().Computations)
	assert.Equal(t, workers, len(e.History()))
}

func TestScore_Deterministic(t *testing.T) {
	job := &types.JobRequirements{RequiredSkills: []string{"Python", "Kafka"}, Keywords: []string{"platform"}}

	a, err := newEngine(t).Score(sampleResume(), job, "finance")
	require.NoError(t, err)
	b, err := newEngine(t).Score(sampleResume(), job, "finance")
	require.NoError(t, err)

	assert.Equal(t, a, b)
}

func TestScore_BoundsAndRounding(t *testing.T) {
	inputs := []*types.StructuredResume{
		{},
		sampleResume(),
		{Education: []types.Education{{Degree: "PhD", Institution: "University", GPA: "4.0"}}},
		{Skills: map[string][]string{"x": skillList(40)}},
	}
	e := newEngine(t)
	for _, in := range inputs {
		result, err := e.Score(in, nil, "")
		require.NoError(t, err)
		for c, s := range result.CategoryScores {
			assert.GreaterOrEqual(t, s, 0.0, c)
			assert.LessOrEqual(t, s, 100.0, c)
			assert.Equal(t, s, Round2(s), c)
		}
		assert.GreaterOrEqual(t, result.OverallScore, 0.0)
		assert.LessOrEqual(t, result.OverallScore, 100.0)
		assert.LessOrEqual(t, result.ConfidenceInterval.Lower, result.OverallScore)
		assert.GreaterOrEqual(t, result.ConfidenceInterval.Upper, result.OverallScore)
	}
}

func TestScore_ScorerOutputIsClamped(t *testing.T) {
	var calls atomic.Int64
	e := newEngine(t, countingScorers(250, &calls)...)

	result, err := e.Score(sampleResume(), nil, "")
	require.NoError(t, err)
	assert.Equal(t, 100.0, result.OverallScore)
	assert.Equal(t, 100.0, result.Score(types.CategoryKeywords))
}

func TestScore_BreakdownAndRecommendations(t *testing.T) {
	result, err := newEngine(t).Score(sampleResume(), nil, "")
	require.NoError(t, err)

	b := result.DetailedBreakdown
	assert.Equal(t, types.DefaultWeights(), b.WeightsUsed)
	assert.Equal(t, testNow, b.ScoredAt)
	assert.Len(t, b.CategoryAnalysis, len(types.Categories))
	assert.Contains(t, b.Strengths, "Experience Relevance: 100.0")
	assert.Equal(t, []string{types.MissingLinkedIn, types.MissingCertifications}, b.MissingElements)
	assert.Equal(t, recommend.Basic(result.CategoryScores), result.Recommendations)
}

func TestScore_IndustryFallsBackToGeneral(t *testing.T) {
	result, err := newEngine(t).Score(sampleResume(), nil, "aerospace")
	require.NoError(t, err)
	assert.Equal(t, "aerospace", result.BenchmarkComparison.Industry)
	assert.Equal(t, benchmark.DefaultIndustry, result.BenchmarkComparison.BenchmarkIndustry)
}

func TestFingerprint(t *testing.T) {
	w := types.DefaultWeights()

	a, err := Fingerprint(sampleResume(), nil, w)
	require.NoError(t, err)
	b, err := Fingerprint(sampleResume(), &types.JobRequirements{}, w)
	require.NoError(t, err)
	c, err := Fingerprint(sampleResume(), nil, types.ScoringWeights{SkillsMatch: 0.2, ExperienceRelevance: 0.35, EducationAlignment: 0.15, FormatStructure: 0.15, KeywordOptimization: 0.15})
	require.NoError(t, err)

	assert.Len(t, a, 64)
	assert.Equal(t, a, b, "an empty job marshals to the same {} as no job")
	assert.NotEqual(t, a, c)

	// Map insertion order does not matter.
	r1 := sampleResume()
	r1.Skills = map[string][]string{}
	r1.Skills["b"] = []string{"x"}
	r1.Skills["a"] = []string{"y"}
	r2 := sampleResume()
	r2.Skills = map[string][]string{"a": {"y"}, "b": {"x"}}
	f1, err := Fingerprint(r1, nil, w)
	require.NoError(t, err)
	f2, err := Fingerprint(r2, nil, w)
	require.NoError(t, err)
	assert.Equal(t, f1, f2)

	_, err = Fingerprint(nil, nil, w)
	assert.ErrorIs(t, err, ErrNilResume)
}

func TestConfidenceInterval(t *testing.T) {
	assert.Equal(t, types.ConfidenceInterval{Lower: 50, Upper: 50}, ConfidenceInterval(50, []float64{50, 50, 50, 50, 50}))
	assert.Equal(t, types.ConfidenceInterval{}, ConfidenceInterval(10, nil))

	ci := ConfidenceInterval(98, []float64{100, 100, 100, 100, 90})
	assert.Equal(t, 100.0, ci.Upper)
	assert.Less(t, ci.Lower, 98.0)
}

func TestLevel(t *testing.T) {
	assert.Equal(t, types.LevelExcellent, Level(90))
	assert.Equal(t, types.LevelGood, Level(89.99))
	assert.Equal(t, types.LevelFair, Level(60))
	assert.Equal(t, types.LevelNeedsImprovement, Level(59.99))
}

func TestBreakdown_StrengthsAndWeaknesses(t *testing.T) {
	scores := map[string]float64{
		types.CategorySkills:     95,
		types.CategoryExperience: 80,
		types.CategoryEducation:  65,
		types.CategoryFormat:     40,
		types.CategoryKeywords:   90,
	}
	b := Breakdown(&types.StructuredResume{}, scores, types.DefaultWeights(), testNow)

	assert.Equal(t, []string{"Skills Match: 95.0", "Keyword Optimization: 90.0"}, b.Strengths)
	assert.Equal(t, []string{"Education Alignment: 65.0", "Format Structure: 40.0"}, b.Weaknesses)
	assert.Equal(t, types.LevelGood, b.CategoryAnalysis[types.CategoryExperience].Level)
}

func TestMissingElements(t *testing.T) {
	resume := &types.StructuredResume{
		PersonalInfo: &types.PersonalInfo{LinkedIn: "https://linkedin.com/in/ada"},
		Skills:       map[string][]string{"certifications": {"CKA"}},
		Experience:   []types.Experience{{Achievements: []string{"Launched search"}}},
	}
	assert.Equal(t, []string{types.MissingQuantified}, MissingElements(resume))

	resume.PersonalInfo.LinkedIn = types.NotSpecified
	resume.Experience[0].Achievements = []string{"Grew revenue 3x"}
	assert.Equal(t, []string{types.MissingLinkedIn}, MissingElements(resume))
}

func TestStatistics(t *testing.T) {
	var calls atomic.Int64
	e := newEngine(t, countingScorers(80, &calls)...)

	for i := 0; i < 3; i++ {
		_, err := e.Score(sampleResume(), nil, "")
		require.NoError(t, err)
	}
	other := sampleResume()
	other.ProfessionalSummary = "Different"
	_, err := e.Score(other, nil, "")
	require.NoError(t, err)

	stats := e.Statistics()
	assert.Equal(t, 4, stats.TotalScored)
	assert.InDelta(t, 80, stats.AverageScore, 1e-9)
	assert.InDelta(t, 50, stats.ConsistencyRate, 1e-9)
	assert.InDelta(t, 80, stats.RecentAverage, 1e-9)
	assert.Equal(t, 4, stats.Distribution[types.BucketGood])
	assert.Equal(t, 0, stats.Distribution[types.BucketExcellent])
}

func TestHistory_RecentAverageUsesLastTen(t *testing.T) {
	h := NewHistory()
	for i := 0; i < 15; i++ {
		score := 50.0
		if i >= 5 {
			score = 90
		}
		h.Record(HistoryEntry{Fingerprint: "same", OverallScore: score})
	}

	stats := h.Statistics()
	assert.InDelta(t, 90, stats.RecentAverage, 1e-9)
	assert.InDelta(t, (5*50.0+10*90)/15, stats.AverageScore, 1e-9)
	assert.InDelta(t, 100.0/15, stats.ConsistencyRate, 1e-9)
	assert.Equal(t, 10, stats.Distribution[types.BucketExcellent])
	assert.Equal(t, 5, stats.Distribution[types.BucketNeedsImprovement])
}

func TestGenerateRecommendations(t *testing.T) {
	e := newEngine(t)
	result, err := e.Score(sampleResume(), nil, "")
	require.NoError(t, err)

	set := e.GenerateRecommendations(sampleResume(), result, nil)
	require.NotNil(t, set)
	assert.Equal(t, testNow, set.Metadata.GeneratedAt)
	assert.Equal(t, 1, e.RecommendationStatistics().TotalGenerated)
}

func TestSkillGapsAndIndustry(t *testing.T) {
	e := newEngine(t)
	job := &types.JobRequirements{RequiredSkills: []string{"Python", "React"}}

	gaps := e.SkillGaps(sampleResume(), job)
	assert.Contains(t, gaps.MissingSkills, "React")

	analysis := e.IndustryAnalysis(sampleResume(), "technology")
	assert.True(t, analysis.Known)
}
