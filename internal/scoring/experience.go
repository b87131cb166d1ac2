package scoring

import (
	"strings"
	"time"
	"unicode"

	"github.com/jonathan/ats-scorer/internal/types"
)

var (
	seniorTitles = []string{"senior", "lead", "manager", "director", "vp"}
	juniorTitles = []string{"junior", "intern", "assistant"}
)

const (
	seniorBonus  = 20.0
	seniorWeight = 1.5
	juniorWeight = 0.8

	achievementBonus = 25.0
	quantifiedBonus  = 15.0
	relevanceBonus   = 10.0
)

// ScoreExperience is the seniority-weighted average of per-entry scores, capped at 100.
func ScoreExperience(resume *types.StructuredResume, job *types.JobRequirements, now time.Time) float64 {
	if resume == nil || len(resume.Experience) == 0 {
		return 0
	}

	var preferred []string
	if job != nil {
		preferred = types.Lower(job.PreferredExperience)
	}

	total, weights := 0.0, 0.0
	for _, exp := range resume.Experience {
		score, weight := scoreExperienceEntry(exp, preferred, now)
		total += score * weight
		weights += weight
	}
	if weights == 0 {
		return 0
	}
	return capScore(total / weights)
}

func scoreExperienceEntry(exp types.Experience, preferred []string, now time.Time) (score, weight float64) {
	weight = 1.0

	switch years := exp.DurationYears(now); {
	case years >= 3:
		score += 30
	case years >= 1:
		score += 20
	default:
		score += 10
	}

	switch n := len(exp.Responsibilities); {
	case n >= 5:
		score += 25
	case n >= 3:
		score += 20
	default:
		score += 10
	}

	if len(exp.Achievements) > 0 {
		score += achievementBonus
		if anyHasDigit(exp.Achievements) {
			score += quantifiedBonus
		}
	}

	title := strings.ToLower(exp.Title)
	switch {
	case containsAny(title, seniorTitles):
		score += seniorBonus
		weight = seniorWeight
	case containsAny(title, juniorTitles):
		weight = juniorWeight
	}

	if len(preferred) > 0 {
		text := strings.ToLower(exp.Title + " " + strings.Join(exp.Responsibilities, " "))
		for _, phrase := range preferred {
			if phrase != "" && strings.Contains(text, phrase) {
				score += relevanceBonus
			}
		}
	}

	return score, weight
}

func anyHasDigit(values []string) bool {
	for _, v := range values {
		if strings.IndexFunc(v, unicode.IsDigit) >= 0 {
			return true
		}
	}
	return false
}
