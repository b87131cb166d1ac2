package scoring

import (
	"fmt"
	"slices"
	"time"

	"go.uber.org/zap"

	"github.com/jonathan/ats-scorer/internal/benchmark"
	"github.com/jonathan/ats-scorer/internal/logger"
	"github.com/jonathan/ats-scorer/internal/recommend"
	"github.com/jonathan/ats-scorer/internal/skills"
	"github.com/jonathan/ats-scorer/internal/types"
)

// cacheKeySeparator joins fingerprint and industry in cache keys.
const cacheKeySeparator = "|"

// Engine owns a validated weight set, its consistency cache, the skill taxonomy and the
// scoring history. Engines are independent of each other and safe for concurrent use.
type Engine struct {
	weights  types.ScoringWeights
	scorers  map[string]Scorer
	taxonomy *skills.Taxonomy
	patterns *skills.IndustryPatterns
	logger   *zap.Logger
	now      func() time.Time

	cache       *consistencyCache
	history     *History
	recommender *recommend.Generator
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock sets the time source for "Present" dates and timestamps.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithLogger sets the logger. A nil logger discards output.
func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// WithTaxonomy sets the skill taxonomy used for gap analysis and recommendations.
func WithTaxonomy(t *skills.Taxonomy) Option {
	return func(e *Engine) { e.taxonomy = t }
}

// WithIndustryPatterns sets the industry knowledge used by IndustryAnalysis.
func WithIndustryPatterns(p *skills.IndustryPatterns) Option {
	return func(e *Engine) { e.patterns = p }
}

// WithScorer replaces the scorer for one category.
func WithScorer(category string, s Scorer) Option {
	return func(e *Engine) { e.scorers[category] = s }
}

// NewEngine validates weights and builds an Engine with the default scorers and taxonomy.
func NewEngine(weights types.ScoringWeights, opts ...Option) (*Engine, error) {
	if err := weights.Validate(); err != nil {
		return nil, fmt.Errorf("failed to create scoring engine: %w", err)
	}

	e := &Engine{
		weights:  weights,
		scorers:  DefaultScorers(),
		taxonomy: skills.DefaultTaxonomy(),
		patterns: skills.DefaultPatterns(),
		now:      time.Now,
		cache:    newConsistencyCache(),
		history:  NewHistory(),
	}
	for _, opt := range opts {
		opt(e)
	}
	for _, c := range types.Categories {
		if e.scorers[c] == nil {
			return nil, fmt.Errorf("failed to create scoring engine: no scorer for %s", c)
		}
	}
	for c := range e.scorers {
		if !slices.Contains(types.Categories, c) {
			return nil, fmt.Errorf("failed to create scoring engine: unknown category %q", c)
		}
	}
	e.logger = logger.OrNop(e.logger)
	e.recommender = recommend.NewGenerator(
		recommend.WithTaxonomy(e.taxonomy),
		recommend.WithLogger(e.logger),
		recommend.WithClock(e.now),
	)
	return e, nil
}

// Weights returns the engine's weight set.
func (e *Engine) Weights() types.ScoringWeights {
	return e.weights
}

// Taxonomy returns the engine's skill taxonomy.
func (e *Engine) Taxonomy() *skills.Taxonomy {
	return e.taxonomy
}

// Score scores a resume, optionally against job requirements, and benchmarks the result
// against industry ("" or unknown means general).
//
// Identical inputs return the identical cached *ScoreResult without rescoring. Callers must
// treat the result as read-only.
func (e *Engine) Score(resume *types.StructuredResume, job *types.JobRequirements, industry string) (*types.ScoreResult, error) {
	if resume == nil {
		return nil, ErrNilResume
	}

	fingerprint, err := Fingerprint(resume, job, e.weights)
	if err != nil {
		return nil, fmt.Errorf("failed to fingerprint input: %w", err)
	}
	requested := benchmark.Normalize(industry)
	_, resolved := benchmark.Lookup(requested)

	result, hit := e.cache.getOrCompute(fingerprint+cacheKeySeparator+requested, func() *types.ScoreResult {
		return e.compute(resume, job, requested, fingerprint)
	})

	e.history.Record(HistoryEntry{
		Timestamp:          e.now(),
		Fingerprint:        fingerprint,
		OverallScore:       result.OverallScore,
		CategoryScores:     result.CategoryScores,
		Industry:           resolved,
		HadJobRequirements: job.HasRequirements(),
		ConfidenceInterval: result.ConfidenceInterval,
		CacheHit:           hit,
	})

	e.logger.Debug("resume scored", logger.ScoreFields(fingerprint, resolved, result.OverallScore, hit)...)
	return result, nil
}

func (e *Engine) compute(resume *types.StructuredResume, job *types.JobRequirements, industry, fingerprint string) *types.ScoreResult {
	now := e.now()
	in := Input{Resume: resume, Job: job, Now: now}

	raw := make([]float64, 0, len(types.Categories))
	rounded := make(map[string]float64, len(types.Categories))
	overall := 0.0
	for _, c := range types.Categories {
		s := capScore(e.scorers[c].Score(in))
		raw = append(raw, s)
		rounded[c] = Round2(s)
		overall += s * e.weights.Weight(c)
	}

	overallRounded := Round2(overall)
	return &types.ScoreResult{
		OverallScore:        overallRounded,
		CategoryScores:      rounded,
		DetailedBreakdown:   Breakdown(resume, rounded, e.weights, now),
		ConfidenceInterval:  ConfidenceInterval(overall, raw),
		ConsistencyHash:     fingerprint,
		BenchmarkComparison: benchmark.Compare(overallRounded, industry),
		Recommendations:     recommend.Basic(rounded),
	}
}

// GenerateRecommendations builds the full recommendation set for a scored resume.
func (e *Engine) GenerateRecommendations(resume *types.StructuredResume, result *types.ScoreResult, job *types.JobRequirements) *types.RecommendationSet {
	return e.recommender.Generate(resume, result, job)
}

// SkillGaps compares resume skills with the job's required and preferred skills.
func (e *Engine) SkillGaps(resume *types.StructuredResume, job *types.JobRequirements) types.SkillGapAnalysis {
	return e.taxonomy.AnalyzeGaps(resume.AllSkills(), skills.JobSkills(job))
}

// IndustryAnalysis measures how well resume skills fit an industry's common and trending skills.
func (e *Engine) IndustryAnalysis(resume *types.StructuredResume, industry string) types.IndustryAnalysis {
	return e.patterns.AnalyzeResume(resume, industry)
}

// CacheStats reports consistency cache activity.
func (e *Engine) CacheStats() CacheStats {
	return e.cache.stats()
}

// History returns a copy of the scoring log.
func (e *Engine) History() []HistoryEntry {
	return e.history.Entries()
}

// Statistics summarizes the scoring log.
func (e *Engine) Statistics() types.ScoringStatistics {
	return e.history.Statistics()
}

// RecommendationStatistics summarizes GenerateRecommendations calls.
func (e *Engine) RecommendationStatistics() types.RecommendationStatistics {
	return e.recommender.Statistics()
}
