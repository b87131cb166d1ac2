package recommend

import (
	"fmt"
	"regexp"
	"slices"
	"strings"
	"time"
	"unicode"

	"github.com/jonathan/ats-scorer/internal/skills"
	"github.com/jonathan/ats-scorer/internal/types"
)

const (
	priorityThreshold = 60

	minResponsibilities   = 3
	minSummaryWords       = 20
	minExampleSummaryWord = 15
	minTechnicalSkills    = 5

	maxMissingKeywords  = 10
	maxImmediateSkills  = 3
	maxPreferredSkills  = 5
	maxCertifications   = 3
	maxJobSkillsInTitle = 3

	defaultIndustry = "technology"
)

var (
	// Start dates must begin MM/YYYY for the format check and M/YYYY or MM/YYYY for quick wins.
	strictDatePattern  = regexp.MustCompile(`^\d{2}/\d{4}`)
	relaxedDatePattern = regexp.MustCompile(`^\d{1,2}/\d{4}`)
	emailPattern       = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

	weakPhrases        = []string{"responsible for", "helped", "worked on", "assisted"}
	weakExamplePhrases = []string{"responsible for", "helped", "worked on"}
)

func priorityActions(resume *types.StructuredResume, result *types.ScoreResult, job *types.JobRequirements) []types.PriorityAction {
	actions := []types.PriorityAction{}

	lowest, lowestScore := "", 0.0
	for _, c := range types.Categories {
		score, ok := result.CategoryScores[c]
		if !ok {
			continue
		}
		if lowest == "" || score < lowestScore {
			lowest, lowestScore = c, score
		}
	}

	if lowest != "" && lowestScore < priorityThreshold {
		switch lowest {
		case types.CategorySkills:
			actions = append(actions, types.PriorityAction{
				Priority:    1,
				Category:    "Skills Enhancement",
				Action:      "Add missing technical skills",
				Description: "Your skills section needs immediate attention. Add 3-5 relevant technical skills that match job requirements.",
				Impact:      "High",
				Effort:      "Low",
				Timeline:    "1-2 hours",
			})
		case types.CategoryExperience:
			actions = append(actions, types.PriorityAction{
				Priority:    1,
				Category:    "Experience Enhancement",
				Action:      "Quantify achievements",
				Description: "Add numbers, percentages, or metrics to your accomplishments. Use action verbs and specific results.",
				Impact:      "High",
				Effort:      "Medium",
				Timeline:    "3-4 hours",
			})
		case types.CategoryFormat:
			actions = append(actions, types.PriorityAction{
				Priority:    1,
				Category:    "Format Improvement",
				Action:      "Restructure resume sections",
				Description: "Improve resume organization with clear headers, consistent formatting, and proper section order.",
				Impact:      "Medium",
				Effort:      "Medium",
				Timeline:    "2-3 hours",
			})
		}
	}

	if slices.Contains(result.DetailedBreakdown.MissingElements, types.MissingLinkedIn) {
		actions = append(actions, types.PriorityAction{
			Priority:    2,
			Category:    "Contact Information",
			Action:      "Add LinkedIn profile",
			Description: "Include your LinkedIn profile URL in the contact section.",
			Impact:      "Medium",
			Effort:      "Low",
			Timeline:    "15 minutes",
		})
	}

	if job != nil {
		if missing := missingRequiredSkills(resume, job); len(missing) > 0 {
			actions = append(actions, types.PriorityAction{
				Priority:    3,
				Category:    "Job Targeting",
				Action:      fmt.Sprintf("Add job-specific skills: %s", strings.Join(head(missing, maxJobSkillsInTitle), ", ")),
				Description: "Include skills specifically mentioned in the job description to improve match rate.",
				Impact:      "High",
				Effort:      "Low",
				Timeline:    "30 minutes",
			})
		}
	}

	return actions
}

// missingRequiredSkills returns the lowercased required skills absent from the resume.
func missingRequiredSkills(resume *types.StructuredResume, job *types.JobRequirements) []string {
	have := skillSet(resume)
	var missing []string
	for _, skill := range types.Lower(job.RequiredSkills) {
		if !have[skill] {
			missing = append(missing, skill)
		}
	}
	return missing
}

func contentImprovements(resume *types.StructuredResume) types.ContentImprovements {
	improvements := types.ContentImprovements{
		ProfessionalSummary: []string{},
		ExperienceSection:   []string{},
		SkillsSection:       []string{},
		EducationSection:    []string{},
		Achievements:        []string{},
	}

	summary := strings.TrimSpace(resume.ProfessionalSummary)
	switch {
	case summary == "" || summary == "Not extracted" || summary == types.NotSpecified:
		improvements.ProfessionalSummary = append(improvements.ProfessionalSummary,
			"Add a compelling professional summary (2-3 sentences) highlighting your key qualifications")
	case wordCount(summary) < minSummaryWords:
		improvements.ProfessionalSummary = append(improvements.ProfessionalSummary,
			"Expand your professional summary to 20-30 words with specific value propositions")
	}

	for _, exp := range resume.Experience {
		title := exp.Title
		if strings.TrimSpace(title) == "" {
			title = "position"
		}
		if len(exp.Responsibilities) < minResponsibilities {
			improvements.ExperienceSection = append(improvements.ExperienceSection,
				fmt.Sprintf("Add more responsibilities for %s role (aim for 3-5 bullet points)", title))
		}
		if len(exp.Achievements) == 0 {
			improvements.ExperienceSection = append(improvements.ExperienceSection,
				fmt.Sprintf("Add quantified achievements for %s with specific metrics", title))
		}
		if firstWeak(exp.Responsibilities, weakPhrases) != "" {
			improvements.ExperienceSection = append(improvements.ExperienceSection,
				"Replace weak phrases like 'responsible for' with strong action verbs like 'led', 'developed', 'implemented'")
		}
	}

	if len(resume.AllSkills()) == 0 {
		improvements.SkillsSection = append(improvements.SkillsSection,
			"Add a comprehensive skills section with technical and soft skills")
	} else {
		if len(resume.SkillsIn("technical_skills")) < minTechnicalSkills {
			improvements.SkillsSection = append(improvements.SkillsSection,
				"Expand technical skills section (aim for 8-12 relevant skills)")
		}
		if len(resume.SkillsIn("certifications")) == 0 {
			improvements.SkillsSection = append(improvements.SkillsSection,
				"Add relevant certifications or professional qualifications")
		}
	}

	return improvements
}

func formatEnhancements(resume *types.StructuredResume) []types.FormatEnhancement {
	enhancements := []types.FormatEnhancement{}

	var missingSections []string
	if resume.PersonalInfo.IsEmpty() {
		missingSections = append(missingSections, "personal_info")
	}
	if len(resume.Experience) == 0 {
		missingSections = append(missingSections, "experience")
	}
	if len(resume.Education) == 0 {
		missingSections = append(missingSections, "education")
	}
	if len(resume.Skills) == 0 {
		missingSections = append(missingSections, "skills")
	}
	if len(missingSections) > 0 {
		enhancements = append(enhancements, types.FormatEnhancement{
			Type:           "Section Structure",
			Recommendation: fmt.Sprintf("Add missing sections: %s", strings.Join(missingSections, ", ")),
			Importance:     "High",
		})
	}

	contact := resume.Contact()
	var missingContact []string
	if !types.IsSpecified(contact.Email) {
		missingContact = append(missingContact, "email address")
	}
	if !types.IsSpecified(contact.Phone) {
		missingContact = append(missingContact, "phone number")
	}
	if len(missingContact) > 0 {
		enhancements = append(enhancements, types.FormatEnhancement{
			Type:           "Contact Information",
			Recommendation: fmt.Sprintf("Complete contact information: add %s", strings.Join(missingContact, ", ")),
			Importance:     "High",
		})
	}

	if hasInconsistentDates(resume, strictDatePattern) {
		enhancements = append(enhancements, types.FormatEnhancement{
			Type:           "Date Formatting",
			Recommendation: "Use consistent date format (MM/YYYY) throughout the resume",
			Importance:     "Medium",
		})
	}

	return append(enhancements,
		types.FormatEnhancement{
			Type:           "ATS Optimization",
			Recommendation: "Use standard section headers: 'Experience', 'Education', 'Skills', 'Contact Information'",
			Importance:     "Medium",
		},
		types.FormatEnhancement{
			Type:           "File Format",
			Recommendation: "Save resume as both PDF and Word formats for different ATS systems",
			Importance:     "Medium",
		},
	)
}

func keywordOptimization(resume *types.StructuredResume, job *types.JobRequirements) types.KeywordOptimization {
	opt := types.KeywordOptimization{
		MissingKeywords:  []string{},
		KeywordPlacement: []string{},
		DensityOptimization: []string{
			"Aim for 2-3% keyword density (not too high to avoid keyword stuffing)",
			"Use keyword variations and synonyms",
			"Include both acronyms and full forms (e.g., 'AI' and 'Artificial Intelligence')",
		},
		IndustryKeywords: []string{
			"Research industry-specific terminology and include relevant terms",
			"Add emerging technology keywords relevant to your field",
			"Include soft skills keywords like 'leadership', 'collaboration', 'problem-solving'",
		},
	}
	if job == nil {
		return opt
	}

	text := strings.ToLower(resume.Text())
	var missing []string
	seen := make(map[string]bool)
	for _, keyword := range types.NonBlank(append(append([]string{}, job.Keywords...), job.RequiredSkills...)) {
		lower := strings.ToLower(strings.TrimSpace(keyword))
		if seen[lower] {
			continue
		}
		seen[lower] = true
		if !strings.Contains(text, lower) {
			missing = append(missing, keyword)
		}
	}

	if len(missing) > 0 {
		opt.MissingKeywords = head(missing, maxMissingKeywords)
		opt.KeywordPlacement = append(opt.KeywordPlacement,
			"Integrate missing keywords naturally into your experience descriptions",
			"Add relevant keywords to your skills section",
			"Include keywords in your professional summary",
		)
	}
	return opt
}

func (g *Generator) skillDevelopment(resume *types.StructuredResume, job *types.JobRequirements) types.SkillDevelopment {
	dev := types.SkillDevelopment{
		ImmediateSkills:     []string{},
		Certifications:      []string{},
		LongTermDevelopment: []string{},
		LearningResources:   []string{},
		Substitutions:       []types.SkillSuggestion{},
	}
	have := skillSet(resume)

	if job != nil {
		var missingRequired, missingPreferred []string
		for _, skill := range job.Required() {
			if !have[strings.ToLower(strings.TrimSpace(skill))] {
				missingRequired = append(missingRequired, skill)
			}
		}
		for _, skill := range job.Preferred() {
			if !have[strings.ToLower(strings.TrimSpace(skill))] {
				missingPreferred = append(missingPreferred, skill)
			}
		}

		for _, skill := range head(missingRequired, maxImmediateSkills) {
			dev.ImmediateSkills = append(dev.ImmediateSkills, fmt.Sprintf("Priority skill to develop: %s", skill))
		}
		for _, skill := range head(missingPreferred, maxPreferredSkills) {
			dev.LongTermDevelopment = append(dev.LongTermDevelopment,
				fmt.Sprintf("Consider learning: %s for competitive advantage", skill))
		}
		for _, cert := range head(types.NonBlank(job.Certifications), maxCertifications) {
			dev.Certifications = append(dev.Certifications, fmt.Sprintf("Consider pursuing: %s", cert))
		}

		gaps := g.taxonomy.AnalyzeGaps(resume.AllSkills(), skills.JobSkills(job))
		dev.Substitutions = append(dev.Substitutions, gaps.SkillSuggestions...)
	}

	if have["python"] {
		dev.LearningResources = append(dev.LearningResources,
			"Advance Python skills with frameworks like Django, Flask, or FastAPI")
	}
	if have["javascript"] {
		dev.LearningResources = append(dev.LearningResources,
			"Expand JavaScript knowledge with modern frameworks like React, Vue, or Angular")
	}

	dev.LongTermDevelopment = append(dev.LongTermDevelopment,
		"Consider cloud computing skills (AWS, Azure, GCP)",
		"Explore AI/ML fundamentals if relevant to your field",
		"Develop data analysis skills (SQL, Excel, Python)",
	)
	return dev
}

func sectionSpecific(resume *types.StructuredResume) types.SectionSpecific {
	sec := types.SectionSpecific{
		ContactSection:     []string{},
		SummarySection:     []string{},
		ExperienceSection:  []string{},
		EducationSection:   []string{},
		SkillsSection:      []string{},
		AdditionalSections: []string{},
	}

	contact := resume.Contact()
	if !types.IsSpecified(contact.LinkedIn) {
		sec.ContactSection = append(sec.ContactSection, "Add LinkedIn profile URL")
	}
	if !types.IsSpecified(contact.Location) {
		sec.ContactSection = append(sec.ContactSection, "Include city and state/country")
	}

	if len(resume.Experience) < 2 {
		sec.ExperienceSection = append(sec.ExperienceSection,
			"Include more work experience entries (even internships or projects)")
	}
	for _, exp := range resume.Experience {
		if len(exp.Achievements) == 0 {
			sec.ExperienceSection = append(sec.ExperienceSection, "Add quantified achievements for each role")
			break
		}
	}

	if len(resume.Education) == 0 {
		sec.EducationSection = append(sec.EducationSection,
			"Add education information (degree, institution, graduation year)")
	}

	if len(resume.SkillsIn("technical_skills")) == 0 {
		sec.SkillsSection = append(sec.SkillsSection, "Add technical skills category")
	}
	if len(resume.SkillsIn("soft_skills")) == 0 {
		sec.SkillsSection = append(sec.SkillsSection, "Add soft skills category")
	}

	if len(resume.Projects) == 0 {
		sec.AdditionalSections = append(sec.AdditionalSections,
			"Consider adding a Projects section to showcase relevant work")
	}
	if len(resume.AdditionalSections["certifications"]) == 0 && len(resume.SkillsIn("certifications")) == 0 {
		sec.AdditionalSections = append(sec.AdditionalSections,
			"Add relevant certifications or professional qualifications")
	}

	return sec
}

func beforeAfterExamples(resume *types.StructuredResume) []types.BeforeAfterExample {
	examples := []types.BeforeAfterExample{}

	for _, exp := range resume.Experience {
		if weak := firstWeak(exp.Responsibilities, weakExamplePhrases); weak != "" {
			examples = append(examples, types.BeforeAfterExample{
				Section:     "Experience",
				Before:      weak,
				After:       "Led development of web application features, resulting in 25% increase in user engagement",
				Improvement: "Use strong action verbs and quantify results",
			})
			break
		}
	}

	if len(resume.SkillsIn("technical_skills")) < minTechnicalSkills {
		examples = append(examples, types.BeforeAfterExample{
			Section:     "Skills",
			Before:      "Programming: Python, JavaScript",
			After:       "Programming Languages: Python, JavaScript, SQL, HTML/CSS\nFrameworks: React, Django, Flask\nTools: Git, Docker, AWS",
			Improvement: "Organize skills by category and include more specific technologies",
		})
	}

	if summary := strings.TrimSpace(resume.ProfessionalSummary); summary == "" || wordCount(summary) < minExampleSummaryWord {
		examples = append(examples, types.BeforeAfterExample{
			Section:     "Professional Summary",
			Before:      "Software engineer with experience in web development.",
			After:       "Results-driven Software Engineer with 5+ years developing scalable web applications. Proven track record of improving system performance by 40% and leading cross-functional teams of 5+ developers.",
			Improvement: "Include specific years of experience, quantified achievements, and key strengths",
		})
	}

	return examples
}

func quickWins(resume *types.StructuredResume) []types.QuickWin {
	wins := []types.QuickWin{}
	contact := resume.Contact()

	if !types.IsSpecified(contact.LinkedIn) {
		wins = append(wins, types.QuickWin{
			Action:       "Add LinkedIn Profile",
			Description:  "Include your LinkedIn URL in the contact section",
			TimeRequired: "2 minutes",
			Impact:       "Medium",
		})
	}

	if slices.ContainsFunc(resume.SkillsIn("technical_skills"), isAllLower) {
		wins = append(wins, types.QuickWin{
			Action:       "Capitalize Skill Names",
			Description:  "Ensure all skill names are properly capitalized (e.g., 'Python' not 'python')",
			TimeRequired: "5 minutes",
			Impact:       "Low",
		})
	}

	if hasInconsistentDates(resume, relaxedDatePattern) {
		wins = append(wins, types.QuickWin{
			Action:       "Standardize Date Format",
			Description:  "Use MM/YYYY format consistently for all dates",
			TimeRequired: "5 minutes",
			Impact:       "Medium",
		})
	}

	if email := strings.TrimSpace(contact.Email); types.IsSpecified(email) && !emailPattern.MatchString(email) {
		wins = append(wins, types.QuickWin{
			Action:       "Fix Email Format",
			Description:  "Ensure email address is properly formatted",
			TimeRequired: "1 minute",
			Impact:       "High",
		})
	}

	return wins
}

func longTermStrategy(resume *types.StructuredResume, job *types.JobRequirements, now time.Time) types.LongTermStrategy {
	strategy := types.LongTermStrategy{
		SkillDevelopmentPath: []string{},
		CertificationRoadmap: []string{},
		IndustryPositioning:  []string{},
		NetworkingRecommendations: []string{
			"Join professional associations in your field",
			"Attend industry conferences and meetups",
			"Engage actively on LinkedIn with industry content",
			"Build relationships with colleagues and industry peers",
			"Consider speaking at conferences or writing technical blogs",
		},
	}

	switch years := resume.TotalExperienceYears(now); {
	case years < 2:
		strategy.ExperienceBuilding = []string{
			"Focus on building foundational experience in core technologies",
			"Seek mentorship opportunities with senior developers",
			"Contribute to open-source projects to build portfolio",
			"Consider internships or entry-level positions for experience",
		}
	case years < 5:
		strategy.ExperienceBuilding = []string{
			"Take on leadership roles in projects",
			"Develop expertise in specific technology domains",
			"Start mentoring junior team members",
			"Pursue complex technical challenges and solutions",
		}
	default:
		strategy.ExperienceBuilding = []string{
			"Focus on strategic technical leadership",
			"Drive architectural decisions and technology adoption",
			"Build cross-functional collaboration skills",
			"Consider management or technical lead opportunities",
		}
	}

	if job != nil {
		industry := strings.ToLower(strings.TrimSpace(job.Industry))
		if industry == "" {
			industry = defaultIndustry
		}
		switch industry {
		case "technology":
			strategy.IndustryPositioning = []string{
				"Stay current with emerging technology trends",
				"Build expertise in cloud technologies and DevOps",
				"Develop understanding of AI/ML applications",
				"Focus on scalable system design and architecture",
			}
		case "finance":
			strategy.IndustryPositioning = []string{
				"Understand financial domain and regulatory requirements",
				"Develop expertise in security and compliance",
				"Learn about fintech trends and blockchain technology",
				"Focus on high-performance, reliable system development",
			}
		}
	}

	return strategy
}

// skillSet returns the lowercased resume skills.
func skillSet(resume *types.StructuredResume) map[string]bool {
	set := make(map[string]bool)
	for _, skill := range resume.AllSkills() {
		set[strings.ToLower(strings.TrimSpace(skill))] = true
	}
	return set
}

// firstWeak returns the first line containing any of the phrases, ignoring case.
func firstWeak(lines []string, phrases []string) string {
	for _, line := range lines {
		lower := strings.ToLower(line)
		for _, phrase := range phrases {
			if strings.Contains(lower, phrase) {
				return line
			}
		}
	}
	return ""
}

func hasInconsistentDates(resume *types.StructuredResume, pattern *regexp.Regexp) bool {
	for _, exp := range resume.Experience {
		start := strings.TrimSpace(exp.StartDate)
		if start != "" && !pattern.MatchString(start) {
			return true
		}
	}
	return false
}

// isAllLower reports whether s has at least one letter and no uppercase letters.
func isAllLower(s string) bool {
	hasLetter := false
	for _, r := range s {
		if unicode.IsUpper(r) || unicode.IsTitle(r) {
			return false
		}
		if unicode.IsLower(r) {
			hasLetter = true
		}
	}
	return hasLetter
}

func wordCount(s string) int {
	return len(strings.Fields(s))
}

func head(values []string, n int) []string {
	if len(values) > n {
		return values[:n]
	}
	return values
}
