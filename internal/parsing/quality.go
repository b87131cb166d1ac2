package parsing

import "github.com/jonathan/ats-scorer/internal/types"

const completenessChecks = 4

// ValidateExtraction reports which key sections an extracted resume is missing.
func ValidateExtraction(resume *types.StructuredResume) types.ExtractionReport {
	report := types.ExtractionReport{Issues: []string{}, Recommendations: []string{}}
	if resume == nil {
		resume = &types.StructuredResume{}
	}

	passed := 0
	contact := resume.Contact()
	switch {
	case !types.IsSpecified(contact.Name):
		report.Issues = append(report.Issues, "Missing or invalid name")
	case !types.IsSpecified(contact.Email):
		report.Issues = append(report.Issues, "Missing or invalid email address")
	default:
		passed++
	}

	if len(resume.Experience) > 0 {
		passed++
	} else {
		report.Issues = append(report.Issues, "No work experience found")
	}

	if len(resume.Education) > 0 {
		passed++
	} else {
		report.Issues = append(report.Issues, "No education information found")
	}

	if len(resume.AllSkills()) > 0 {
		passed++
	} else {
		report.Issues = append(report.Issues, "No skills information found")
	}

	report.CompletenessScore = float64(passed) / completenessChecks * 100

	if report.CompletenessScore < 75 {
		report.Recommendations = append(report.Recommendations, "Consider manual review and enhancement of extracted data")
	}
	if len(report.Issues) > 2 {
		report.Recommendations = append(report.Recommendations, "Resume may need better formatting for optimal extraction")
	}
	return report
}
