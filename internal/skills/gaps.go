package skills

import (
	"fmt"
	"strings"

	"github.com/jonathan/ats-scorer/internal/types"
)

// AnalyzeGaps compares resume skills with job skills through the taxonomy.
//
// A job skill is covered when a resume skill resolves to the same taxonomy entry, or when
// the two names are equal ignoring case. Covered skills never appear in the gap lists.
// Job skills that have neither a taxonomy entry nor a literal resume match are reported as
// unclassified. Missing skills keep the order of jobSkills.
func (t *Taxonomy) AnalyzeGaps(resumeSkills, jobSkills []string) types.SkillGapAnalysis {
	analysis := types.SkillGapAnalysis{
		MissingSkills:         []string{},
		CategoryGaps:          map[string][]string{},
		SkillSuggestions:      []types.SkillSuggestion{},
		ResumeSkillCategories: map[string][]string{},
		JobSkillCategories:    map[string][]string{},
		Unclassified:          []string{},
	}

	resumeLiteral := make(map[string]string) // lowercase -> resume spelling
	resumeEntries := make(map[string]bool)   // matched taxonomy keys
	resumeList := dedupe(resumeSkills)
	matched := t.MatchAll(resumeList)
	for _, skill := range resumeList {
		resumeLiteral[normalizeKey(skill)] = skill
		if e, ok := matched[skill]; ok {
			resumeEntries[normalizeKey(e.SkillName)] = true
			analysis.ResumeSkillCategories[e.Category] = append(analysis.ResumeSkillCategories[e.Category], skill)
		}
	}

	for _, skill := range dedupe(jobSkills) {
		_, literal := resumeLiteral[normalizeKey(skill)]
		e, ok := t.Match(skill)
		if !ok {
			if !literal {
				analysis.Unclassified = append(analysis.Unclassified, skill)
			}
			continue
		}

		analysis.JobSkillCategories[e.Category] = append(analysis.JobSkillCategories[e.Category], skill)
		if literal || resumeEntries[normalizeKey(e.SkillName)] {
			continue
		}

		analysis.MissingSkills = append(analysis.MissingSkills, skill)
		analysis.CategoryGaps[e.Category] = append(analysis.CategoryGaps[e.Category], skill)

		for _, related := range e.RelatedSkills {
			present, found := resumeLiteral[normalizeKey(related)]
			if !found {
				continue
			}
			analysis.SkillSuggestions = append(analysis.SkillSuggestions, types.SkillSuggestion{
				MissingSkill: skill,
				RelatedSkill: present,
				Suggestion:   fmt.Sprintf("Highlight your %s experience as related to %s", present, skill),
			})
		}
	}

	return analysis
}

// dedupe drops blanks and case-insensitive duplicates, keeping the first spelling.
func dedupe(values []string) []string {
	seen := make(map[string]bool, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		key := normalizeKey(v)
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, strings.TrimSpace(v))
	}
	return out
}
