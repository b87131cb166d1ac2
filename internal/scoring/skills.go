package scoring

import (
	"strings"

	"github.com/jonathan/ats-scorer/internal/types"
)

// skillLadder maps a minimum skill count to a score. Checked top to bottom.
var skillLadder = []struct {
	min   int
	score float64
}{
	{15, 95},
	{10, 85},
	{7, 75},
	{5, 65},
	{3, 50},
}

// ladderFloor is the score for one or two skills.
const ladderFloor = 30.0

// ScoreSkills scores the skills section. With required skills it is the share of required
// skills found in the resume (case-insensitive). Otherwise it follows a quantity ladder
// that counts every listed skill, duplicates included.
func ScoreSkills(resume *types.StructuredResume, job *types.JobRequirements) float64 {
	all := resume.AllSkills()
	if len(all) == 0 {
		return 0
	}

	if required := job.Required(); len(required) > 0 {
		have := make(map[string]bool, len(all))
		for _, s := range all {
			have[strings.ToLower(strings.TrimSpace(s))] = true
		}
		matched := make(map[string]bool)
		for _, r := range types.Lower(required) {
			if have[r] {
				matched[r] = true
			}
		}
		return capScore(100 * float64(len(matched)) / float64(len(required)))
	}

	for _, step := range skillLadder {
		if len(all) >= step.min {
			return step.score
		}
	}
	return ladderFloor
}
