package skills

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
	"sync"

	"github.com/jonathan/ats-scorer/internal/types"
)

const (
	commonSkillShare   = 0.7
	trendingSkillShare = 0.3

	maxMissingCommon   = 10
	maxMissingTrending = 5
	maxTrendingSkills  = 20
)

// IndustryPatterns holds what each industry looks for. It is safe for concurrent use.
type IndustryPatterns struct {
	mu       sync.RWMutex
	patterns map[string]types.IndustryPattern
}

// NewIndustryPatterns builds a registry from patterns.
func NewIndustryPatterns(patterns ...types.IndustryPattern) *IndustryPatterns {
	p := &IndustryPatterns{patterns: make(map[string]types.IndustryPattern, len(patterns))}
	for _, pattern := range patterns {
		p.patterns[normalizeKey(pattern.Industry)] = pattern
	}
	return p
}

// DefaultPatterns returns the built-in industry registry.
func DefaultPatterns() *IndustryPatterns {
	return NewIndustryPatterns(DefaultIndustryPatterns()...)
}

// Add inserts or replaces a pattern.
func (p *IndustryPatterns) Add(pattern types.IndustryPattern) error {
	key := normalizeKey(pattern.Industry)
	if key == "" {
		return errors.New("industry name is required")
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.patterns[key] = pattern
	return nil
}

// Get returns the pattern for an industry.
func (p *IndustryPatterns) Get(industry string) (types.IndustryPattern, bool) {
	if p == nil {
		return types.IndustryPattern{}, false
	}
	p.mu.RLock()
	defer p.mu.RUnlock()
	pattern, ok := p.patterns[normalizeKey(industry)]
	return pattern, ok
}

// Names returns the known industries in alphabetical order.
func (p *IndustryPatterns) Names() []string {
	if p == nil {
		return nil
	}
	p.mu.RLock()
	defer p.mu.RUnlock()
	names := make([]string, 0, len(p.patterns))
	for k := range p.patterns {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// TrendingSkills returns the trending skills of an industry. For an empty or unknown
// industry it aggregates across all industries, most frequent first, ties in order of
// first appearance with industries visited alphabetically.
func (p *IndustryPatterns) TrendingSkills(industry string) []string {
	if pattern, ok := p.Get(industry); ok {
		return pattern.TrendingSkills
	}

	counts := make(map[string]int)
	var order []string
	for _, name := range p.Names() {
		pattern, _ := p.Get(name)
		for _, skill := range pattern.TrendingSkills {
			if counts[skill] == 0 {
				order = append(order, skill)
			}
			counts[skill]++
		}
	}
	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})
	if len(order) > maxTrendingSkills {
		order = order[:maxTrendingSkills]
	}
	return order
}

// AnalyzeResume measures how well the resume's skills line up with an industry.
// An unknown industry yields Known=false and zero scores.
func (p *IndustryPatterns) AnalyzeResume(resume *types.StructuredResume, industry string) types.IndustryAnalysis {
	analysis := types.IndustryAnalysis{
		Industry:              industry,
		MatchedCommonSkills:   []string{},
		MatchedTrendingSkills: []string{},
		MissingCommonSkills:   []string{},
		MissingTrendingSkills: []string{},
		Recommendations:       []string{},
	}

	pattern, ok := p.Get(industry)
	if !ok {
		return analysis
	}
	analysis.Known = true

	have := make(map[string]bool)
	for _, skill := range resume.AllSkills() {
		have[normalizeKey(skill)] = true
	}

	var missingCommon, missingTrending []string
	analysis.CommonSkillsMatch, analysis.MatchedCommonSkills, missingCommon = matchSkills(pattern.CommonSkills, have)
	analysis.TrendingSkillsMatch, analysis.MatchedTrendingSkills, missingTrending = matchSkills(pattern.TrendingSkills, have)
	analysis.IndustryAlignment = round2(analysis.CommonSkillsMatch*commonSkillShare + analysis.TrendingSkillsMatch*trendingSkillShare)

	analysis.MissingCommonSkills = head(missingCommon, maxMissingCommon)
	analysis.MissingTrendingSkills = head(missingTrending, maxMissingTrending)

	if len(missingCommon) > 0 {
		analysis.Recommendations = append(analysis.Recommendations,
			fmt.Sprintf("Focus on acquiring these essential skills: %s", strings.Join(head(missingCommon, 5), ", ")))
	}
	if len(missingTrending) > 0 {
		analysis.Recommendations = append(analysis.Recommendations,
			fmt.Sprintf("Stay current with trending skills: %s", strings.Join(head(missingTrending, 3), ", ")))
	}
	if len(pattern.EducationRequirements) > 0 {
		fields := make([]string, 0, len(pattern.EducationRequirements))
		for field := range pattern.EducationRequirements {
			fields = append(fields, field)
		}
		sort.Strings(fields)
		analysis.Recommendations = append(analysis.Recommendations,
			fmt.Sprintf("Consider pursuing relevant certifications or education in: %s", strings.Join(fields, ", ")))
	}

	return analysis
}

// matchSkills returns the percentage of targets present in have, plus the matched and
// missing targets in lowercase, target order.
func matchSkills(targets []string, have map[string]bool) (score float64, matched, missing []string) {
	matched, missing = []string{}, []string{}
	for _, target := range dedupe(targets) {
		key := normalizeKey(target)
		if have[key] {
			matched = append(matched, key)
		} else {
			missing = append(missing, key)
		}
	}
	total := len(matched) + len(missing)
	if total == 0 {
		return 0, matched, missing
	}
	return round2(float64(len(matched)) / float64(total) * 100), matched, missing
}

func head(values []string, n int) []string {
	if len(values) > n {
		return values[:n]
	}
	return values
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
