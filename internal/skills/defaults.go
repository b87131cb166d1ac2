package skills

import "github.com/jonathan/ats-scorer/internal/types"

// DefaultEntries returns the built-in taxonomy entries.
func DefaultEntries() []types.SkillTaxonomyEntry {
	return []types.SkillTaxonomyEntry{
		{
			SkillName:         "Python",
			Category:          "Programming Languages",
			Subcategory:       "Backend",
			Aliases:           []string{"python3", "py"},
			RelatedSkills:     []string{"Django", "Flask", "FastAPI", "NumPy", "Pandas"},
			IndustryRelevance: map[string]float64{"technology": 0.9, "finance": 0.8, "healthcare": 0.7},
			DifficultyLevel:   types.DifficultyIntermediate,
		},
		{
			SkillName:         "JavaScript",
			Category:          "Programming Languages",
			Subcategory:       "Frontend",
			Aliases:           []string{"js", "javascript", "es6"},
			RelatedSkills:     []string{"React", "Node.js", "TypeScript", "Vue.js"},
			IndustryRelevance: map[string]float64{"technology": 0.95, "media": 0.8, "retail": 0.7},
			DifficultyLevel:   types.DifficultyIntermediate,
		},
		{
			SkillName:         "React",
			Category:          "Web Frameworks",
			Subcategory:       "Frontend",
			Aliases:           []string{"reactjs", "react.js"},
			RelatedSkills:     []string{"JavaScript", "Redux", "Next.js", "TypeScript"},
			IndustryRelevance: map[string]float64{"technology": 0.9, "startup": 0.9},
			DifficultyLevel:   types.DifficultyIntermediate,
		},
		{
			SkillName:         "Machine Learning",
			Category:          "Data Science",
			Subcategory:       "AI/ML",
			Aliases:           []string{"ml", "artificial intelligence", "ai"},
			RelatedSkills:     []string{"Python", "TensorFlow", "PyTorch", "Scikit-learn"},
			IndustryRelevance: map[string]float64{"technology": 0.9, "finance": 0.8, "healthcare": 0.9},
			DifficultyLevel:   types.DifficultyAdvanced,
		},
		{
			SkillName:         "SQL",
			Category:          "Databases",
			Subcategory:       "Query Languages",
			Aliases:           []string{"mysql", "postgresql", "sqlite"},
			RelatedSkills:     []string{"Python", "Data Analysis", "Database Design"},
			IndustryRelevance: map[string]float64{"technology": 0.85, "finance": 0.9, "healthcare": 0.8},
			DifficultyLevel:   types.DifficultyBeginner,
		},
	}
}

// DefaultIndustryPatterns returns the built-in industry patterns.
func DefaultIndustryPatterns() []types.IndustryPattern {
	return []types.IndustryPattern{
		{
			Industry: "technology",
			CommonSkills: []string{
				"Python", "JavaScript", "SQL", "Git", "Linux",
				"AWS", "Docker", "React", "Node.js", "API Development",
			},
			TrendingSkills: []string{
				"Kubernetes", "GraphQL", "TypeScript", "Rust", "Go",
				"Machine Learning", "DevOps", "Microservices",
			},
			SkillWeights: map[string]float64{
				"Programming Languages": 0.3,
				"Web Frameworks":        0.25,
				"Cloud Platforms":       0.2,
				"Databases":             0.15,
				"Tools":                 0.1,
			},
			ExperiencePatterns: map[string]string{
				"junior": "0-2 years",
				"mid":    "3-5 years",
				"senior": "6+ years",
			},
			EducationRequirements: map[string]float64{
				"Computer Science": 0.4,
				"Engineering":      0.3,
				"Mathematics":      0.15,
				"Self-taught":      0.15,
			},
		},
		{
			Industry: "finance",
			CommonSkills: []string{
				"Python", "R", "SQL", "Excel", "Financial Modeling",
				"Risk Management", "Bloomberg Terminal", "VBA",
			},
			TrendingSkills: []string{
				"Machine Learning", "Blockchain", "Cryptocurrency",
				"RegTech", "Algorithmic Trading",
			},
			SkillWeights: map[string]float64{
				"Programming":         0.25,
				"Financial Knowledge": 0.35,
				"Analytics":           0.25,
				"Risk Management":     0.15,
			},
		},
		{
			Industry: "healthcare",
			CommonSkills: []string{
				"Python", "R", "SQL", "Healthcare Analytics",
				"HIPAA Compliance", "Electronic Health Records",
			},
			TrendingSkills: []string{
				"AI in Healthcare", "Telemedicine", "Genomics",
				"Digital Health", "Medical Imaging",
			},
			SkillWeights: map[string]float64{
				"Healthcare Knowledge": 0.4,
				"Technology Skills":    0.3,
				"Analytics":            0.2,
				"Compliance":           0.1,
			},
		},
	}
}
