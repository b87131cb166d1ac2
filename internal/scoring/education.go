package scoring

import (
	"strings"

	"github.com/jonathan/ats-scorer/internal/types"
)

// noEducationScore credits resumes without an education section.
const noEducationScore = 40.0

// degreeLevels is checked in order; the first matching group sets the base score.
var degreeLevels = []struct {
	words []string
	score float64
}{
	{[]string{"phd", "doctorate"}, 100},
	{[]string{"master", "mba"}, 85},
	{[]string{"bachelor"}, 75},
	{[]string{"associate"}, 60},
	{[]string{"certificate", "diploma"}, 50},
}

const (
	otherDegreeScore = 40.0
	institutionBonus = 10.0
	fieldBonus       = 20.0
)

var institutionWords = []string{"university", "college", "institute"}

// ScoreEducation returns the best per-entry education score, capped at 100.
func ScoreEducation(resume *types.StructuredResume, job *types.JobRequirements) float64 {
	if resume == nil || len(resume.Education) == 0 {
		return noEducationScore
	}

	var fields []string
	if job != nil {
		fields = types.Lower(job.PreferredEducation)
	}

	best := 0.0
	for _, edu := range resume.Education {
		if s := scoreEducationEntry(edu, fields); s > best {
			best = s
		}
	}
	return capScore(best)
}

func scoreEducationEntry(edu types.Education, fields []string) float64 {
	degree := strings.ToLower(edu.Degree)

	score := otherDegreeScore
	for _, level := range degreeLevels {
		if containsAny(degree, level.words) {
			score = level.score
			break
		}
	}

	if containsAny(strings.ToLower(edu.Institution), institutionWords) {
		score += institutionBonus
	}

	score += gpaBonus(edu.GPA)

	if containsAny(degree, fields) {
		score += fieldBonus
	}
	return score
}

func gpaBonus(gpa types.GPA) float64 {
	v, ok := gpa.Float()
	if !ok {
		return 0
	}
	switch {
	case v >= 3.7:
		return 15
	case v >= 3.3:
		return 10
	case v >= 3.0:
		return 5
	default:
		return 0
	}
}
