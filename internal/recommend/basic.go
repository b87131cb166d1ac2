// Package recommend turns scores into improvement recommendations.
//
// Basic produces the short ordered list embedded in every score result. Generator produces
// the grouped RecommendationSet with priority actions, examples and a longer-term plan.
package recommend

import "github.com/jonathan/ats-scorer/internal/types"

// Thresholds for the basic rule list.
const (
	skillsThreshold     = 70
	experienceThreshold = 70
	educationThreshold  = 60
	formatThreshold     = 70
	keywordsThreshold   = 70
	rewriteThreshold    = 60
)

// Basic recommendation texts, in the order they can appear.
const (
	RecSkills             = "Add more relevant technical skills matching job requirements"
	RecQuantify           = "Include more quantified achievements in work experience"
	RecActionVerbs        = "Add action verbs and specific accomplishments"
	RecCertifications     = "Consider adding relevant certifications or training"
	RecFormatting         = "Improve resume formatting and organization"
	RecSectionsComplete   = "Ensure all sections are complete and well-structured"
	RecKeywords           = "Include more industry-relevant keywords"
	RecATSScanning        = "Optimize for ATS keyword scanning"
	RecProfessionalReview = "Consider professional resume review and rewriting"
)

// Basic evaluates the fixed rule list against category scores. The order of the returned
// slice is part of the contract.
func Basic(scores map[string]float64) []string {
	recs := []string{}

	if scores[types.CategorySkills] < skillsThreshold {
		recs = append(recs, RecSkills)
	}
	if scores[types.CategoryExperience] < experienceThreshold {
		recs = append(recs, RecQuantify, RecActionVerbs)
	}
	if scores[types.CategoryEducation] < educationThreshold {
		recs = append(recs, RecCertifications)
	}
	if scores[types.CategoryFormat] < formatThreshold {
		recs = append(recs, RecFormatting, RecSectionsComplete)
	}
	if scores[types.CategoryKeywords] < keywordsThreshold {
		recs = append(recs, RecKeywords, RecATSScanning)
	}
	if mean(scores) < rewriteThreshold {
		recs = append(recs, RecProfessionalReview)
	}

	return recs
}

// mean averages the five category scores; missing categories count as 0.
func mean(scores map[string]float64) float64 {
	total := 0.0
	for _, c := range types.Categories {
		total += scores[c]
	}
	return total / float64(len(types.Categories))
}
