package recommend

import (
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/jonathan/ats-scorer/internal/logger"
	"github.com/jonathan/ats-scorer/internal/skills"
	"github.com/jonathan/ats-scorer/internal/types"
)

// weakAreaThreshold marks a category as a weak area.
const weakAreaThreshold = 70

// Generator builds RecommendationSets. Every section is a pure function of its inputs;
// the only state is the append-only history. It is safe for concurrent use.
type Generator struct {
	taxonomy *skills.Taxonomy
	logger   *zap.Logger
	now      func() time.Time
	history  *History
}

// Option configures a Generator.
type Option func(*Generator)

// WithTaxonomy sets the taxonomy used for skill substitutions.
func WithTaxonomy(t *skills.Taxonomy) Option {
	return func(g *Generator) { g.taxonomy = t }
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(g *Generator) { g.logger = l }
}

// WithClock sets the time source for timestamps and "Present" dates.
func WithClock(now func() time.Time) Option {
	return func(g *Generator) { g.now = now }
}

// NewGenerator creates a Generator with the default taxonomy.
func NewGenerator(opts ...Option) *Generator {
	g := &Generator{
		taxonomy: skills.DefaultTaxonomy(),
		now:      time.Now,
		history:  NewHistory(),
	}
	for _, opt := range opts {
		opt(g)
	}
	g.logger = logger.OrNop(g.logger)
	return g
}

// Generate builds the full recommendation set for a scored resume. job may be nil.
func (g *Generator) Generate(resume *types.StructuredResume, result *types.ScoreResult, job *types.JobRequirements) *types.RecommendationSet {
	if resume == nil {
		resume = &types.StructuredResume{}
	}
	if result == nil {
		result = &types.ScoreResult{}
	}
	now := g.now()

	weakest := WeakestAreas(result.CategoryScores)
	set := &types.RecommendationSet{
		PriorityActions:     priorityActions(resume, result, job),
		ContentImprovements: contentImprovements(resume),
		FormatEnhancements:  formatEnhancements(resume),
		KeywordOptimization: keywordOptimization(resume, job),
		SkillDevelopment:    g.skillDevelopment(resume, job),
		SectionSpecific:     sectionSpecific(resume),
		BeforeAfterExamples: beforeAfterExamples(resume),
		QuickWins:           quickWins(resume),
		LongTermStrategy:    longTermStrategy(resume, job, now),
	}
	set.Metadata = types.RecommendationMetadata{
		GeneratedAt:         now,
		RecommendationCount: set.Count(),
		ImprovementContext: types.ImprovementContext{
			OverallScore:    result.OverallScore,
			CategoryScores:  result.CategoryScores,
			WeakestAreas:    weakest,
			MissingElements: nonNil(result.DetailedBreakdown.MissingElements),
			JobTargeted:     job != nil,
		},
		ScoreImprovementPotential: ImprovementPotential(result.CategoryScores),
	}

	g.history.Record(HistoryEntry{
		Timestamp:           now,
		InitialScore:        result.OverallScore,
		RecommendationCount: set.Metadata.RecommendationCount,
		WeakestAreas:        weakest,
		HasJobRequirements:  job != nil,
	})

	g.logger.Debug("recommendations generated",
		logger.Fingerprint(result.ConsistencyHash),
		zap.Int("recommendation_count", set.Metadata.RecommendationCount),
		zap.Strings("weakest_areas", weakest),
	)
	return set
}

// History returns a copy of the generation log.
func (g *Generator) History() []HistoryEntry {
	return g.history.Entries()
}

// Statistics summarizes the generation log.
func (g *Generator) Statistics() types.RecommendationStatistics {
	return g.history.Statistics()
}

// WeakestAreas returns the categories scoring below 70, lowest first. Ties keep the fixed
// category order.
func WeakestAreas(scores map[string]float64) []string {
	areas := []string{}
	for _, c := range types.Categories {
		if score, ok := scores[c]; ok && score < weakAreaThreshold {
			areas = append(areas, c)
		}
	}
	sort.SliceStable(areas, func(i, j int) bool {
		return scores[areas[i]] < scores[areas[j]]
	})
	return areas
}

// ImprovementPotential estimates how many points each category could gain.
func ImprovementPotential(scores map[string]float64) map[string]float64 {
	potential := make(map[string]float64, len(scores))
	for category, score := range scores {
		switch {
		case score < 50:
			potential[category] = 30
		case score < 70:
			potential[category] = 20
		case score < 85:
			potential[category] = 10
		default:
			potential[category] = 5
		}
	}
	return potential
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
