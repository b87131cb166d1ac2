package parsing

import (
	"strings"
)

// skillNormalizations maps common skill name variants to canonical names
var skillNormalizations = map[string]string{
	"golang":     "Go",
	"go lang":    "Go",
	"javascript": "JavaScript",
	"js":         "JavaScript",
	"es6":        "JavaScript",
	"typescript": "TypeScript",
	"ts":         "TypeScript",
	"k8s":        "Kubernetes",
	"kubernetes": "Kubernetes",
	"react.js":   "React",
	"reactjs":    "React",
	"vue.js":     "Vue",
	"vuejs":      "Vue",
	"node.js":    "Node.js",
	"nodejs":     "Node.js",
	"py":         "Python",
	"python3":    "Python",
	"postgres":   "PostgreSQL",
	"postgresql": "PostgreSQL",
	"mysql":      "MySQL",
	"mongodb":    "MongoDB",
	"graphql":    "GraphQL",
	"sql":        "SQL",
	"aws":        "AWS",
	"gcp":        "GCP",
	"html":       "HTML",
	"css":        "CSS",
	"nlp":        "NLP",
	"ml":         "Machine Learning",
	"ai":         "AI",
}

// NormalizeSkillName normalizes a skill name to its canonical form
func NormalizeSkillName(skillName string) string {
	if skillName == "" {
		return ""
	}

	// Trim whitespace
	normalized := strings.TrimSpace(skillName)

	// Check for exact match in normalization map (case-insensitive)
	lower := strings.ToLower(normalized)
	if canonical, ok := skillNormalizations[lower]; ok {
		return canonical
	}

	// For all-caps single words that aren't known acronyms, capitalize first letter only
	if normalized == strings.ToUpper(normalized) && len(normalized) > 1 && normalized != lower {
		if !strings.Contains(lower, " ") {
			return strings.ToUpper(normalized[:1]) + lower[1:]
		}
		return normalized
	}

	// Mixed case is returned as-is
	if normalized != lower {
		return normalized
	}

	// If all lowercase and single word, capitalize first letter
	if !strings.Contains(normalized, " ") && len(normalized) > 0 {
		return strings.ToUpper(normalized[:1]) + normalized[1:]
	}

	return normalized
}

// NormalizeSkills normalizes skill names and drops blanks and duplicates, keeping first occurrence order.
func NormalizeSkills(skills []string) []string {
	if len(skills) == 0 {
		return skills
	}

	normalized := make([]string, 0, len(skills))
	seen := make(map[string]bool)
	for _, skill := range skills {
		name := NormalizeSkillName(skill)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		normalized = append(normalized, name)
	}
	return normalized
}
