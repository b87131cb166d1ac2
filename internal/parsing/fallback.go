package parsing

import (
	"regexp"
	"strings"

	"github.com/jonathan/ats-scorer/internal/types"
)

const (
	notExtracted        = "Not extracted"
	fallbackSummary     = "Not extracted - fallback parsing used"
	fallbackParsingNote = "Fallback parsing used due to primary extraction failure"
)

var (
	emailPattern = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)
	phonePattern = regexp.MustCompile(`\(?\d{3}\)?[-.\s]?\d{3}[-.\s]?\d{4}`)

	techSkillPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\b(Python|Java|JavaScript|React|Angular|Node\.js|SQL|MongoDB|AWS|Docker)\b`),
		regexp.MustCompile(`(?i)\b(Machine Learning|Data Science|AI|Deep Learning|NLP)\b`),
		regexp.MustCompile(`(?i)\b(Git|GitHub|Linux|Windows|MacOS)\b`),
	}
)

// FallbackExtract builds a minimal resume from raw text using regular expressions.
// Only the first email and phone number and a fixed set of technical skills are found;
// everything else is left as a placeholder.
func FallbackExtract(raw string) *types.StructuredResume {
	email := emailPattern.FindString(raw)
	if email == "" {
		email = types.NotSpecified
	}
	phone := phonePattern.FindString(raw)
	if phone == "" {
		phone = types.NotSpecified
	}

	return &types.StructuredResume{
		PersonalInfo: &types.PersonalInfo{
			Name:     notExtracted,
			Email:    email,
			Phone:    phone,
			Location: types.NotSpecified,
			LinkedIn: types.NotSpecified,
			Website:  types.NotSpecified,
		},
		ProfessionalSummary: fallbackSummary,
		Skills: map[string][]string{
			"technical_skills": findTechSkills(raw),
		},
		Metadata: map[string]any{
			"parsing_note": fallbackParsingNote,
		},
	}
}

// findTechSkills returns the matched skills as written, first spelling wins, pattern order.
func findTechSkills(raw string) []string {
	seen := make(map[string]bool)
	var found []string
	for _, pattern := range techSkillPatterns {
		for _, match := range pattern.FindAllString(raw, -1) {
			key := strings.ToLower(match)
			if seen[key] {
				continue
			}
			seen[key] = true
			found = append(found, match)
		}
	}
	return found
}
