package scoring

import (
	"strings"

	"github.com/jonathan/ats-scorer/internal/types"
)

const (
	sectionPoints      = 40.0
	contactPoints      = 20.0
	completenessPoints = 20.0
)

// ScoreFormat scores section presence, contact completeness, experience entry completeness
// and how many skill categories are populated.
func ScoreFormat(resume *types.StructuredResume) float64 {
	if resume == nil {
		return 0
	}

	sections := []bool{
		!resume.PersonalInfo.IsEmpty(),
		len(resume.Experience) > 0,
		len(resume.Education) > 0,
		len(resume.Skills) > 0,
	}
	score := sectionPoints * fraction(sections)

	contact := resume.Contact()
	score += contactPoints * fraction([]bool{
		types.IsSpecified(contact.Name),
		types.IsSpecified(contact.Email),
		types.IsSpecified(contact.Phone),
	})

	if len(resume.Experience) > 0 {
		complete := make([]bool, len(resume.Experience))
		for i, exp := range resume.Experience {
			complete[i] = present(exp.Title) && present(exp.Company) && present(exp.StartDate)
		}
		score += completenessPoints * fraction(complete)
	}

	populated := 0
	for _, list := range resume.Skills {
		if len(list) > 0 {
			populated++
		}
	}
	switch {
	case populated >= 3:
		score += 20
	case populated >= 2:
		score += 15
	case populated >= 1:
		score += 10
	}

	return capScore(score)
}

func fraction(flags []bool) float64 {
	if len(flags) == 0 {
		return 0
	}
	n := 0
	for _, f := range flags {
		if f {
			n++
		}
	}
	return float64(n) / float64(len(flags))
}

func present(s string) bool {
	return strings.TrimSpace(s) != ""
}
