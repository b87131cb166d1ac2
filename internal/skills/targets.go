package skills

import (
	"sort"

	"github.com/jonathan/ats-scorer/internal/parsing"
	"github.com/jonathan/ats-scorer/internal/types"
)

const (
	// Weight constants for skill sources (requirement level)
	weightRequired  = 1.0
	weightPreferred = 0.5
	weightKeyword   = 0.3

	// Source constants
	SourceRequired  = "required"
	SourcePreferred = "preferred"
	SourceKeyword   = "keyword"
)

// Target is a job skill with the weight of its strongest source.
type Target struct {
	Name   string  `json:"name"`
	Weight float64 `json:"weight"`
	Source string  `json:"source"`
}

// BuildTargets builds a weighted list of target skills from job requirements.
// Skills are normalized, deduplicated (taking max weight when duplicates exist),
// and sorted by weight (descending) then name.
func BuildTargets(job *types.JobRequirements) []Target {
	if job == nil {
		return nil
	}

	// Map: normalized skill name -> skill info (weight, source)
	skillMap := make(map[string]*skillInfo)
	add := func(values []string, weight float64, source string) {
		for _, normalized := range parsing.NormalizeSkills(values) {
			addOrUpdateSkill(skillMap, normalized, weight, source)
		}
	}
	add(job.RequiredSkills, weightRequired, SourceRequired)
	add(job.PreferredSkills, weightPreferred, SourcePreferred)
	add(job.Keywords, weightKeyword, SourceKeyword)

	targets := make([]Target, 0, len(skillMap))
	for name, info := range skillMap {
		targets = append(targets, Target{Name: name, Weight: info.weight, Source: info.source})
	}
	sort.Slice(targets, func(i, j int) bool {
		if targets[i].Weight != targets[j].Weight {
			return targets[i].Weight > targets[j].Weight
		}
		return targets[i].Name < targets[j].Name
	})
	return targets
}

// JobSkills returns the required and preferred target names, strongest first.
// Keywords are excluded because they are not necessarily skills.
func JobSkills(job *types.JobRequirements) []string {
	var names []string
	for _, t := range BuildTargets(job) {
		if t.Source == SourceKeyword {
			continue
		}
		names = append(names, t.Name)
	}
	return names
}

// skillInfo holds temporary information about a skill during building
type skillInfo struct {
	weight float64
	source string
}

// addOrUpdateSkill adds a skill to the map or updates it if it exists,
// taking the maximum weight when duplicates are found.
func addOrUpdateSkill(skillMap map[string]*skillInfo, skillName string, weight float64, source string) {
	existing, exists := skillMap[skillName]
	if !exists {
		skillMap[skillName] = &skillInfo{weight: weight, source: source}
		return
	}
	if weight > existing.weight {
		existing.weight = weight
		existing.source = source
	}
}
