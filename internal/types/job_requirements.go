package types

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

// JobRequirements describes what a target position asks for. A nil *JobRequirements switches
// the scorers to their quantity-based fallback heuristics.
type JobRequirements struct {
	RequiredSkills      []string `json:"required_skills,omitempty" validate:"omitempty,dive,max=200"`
	PreferredSkills     []string `json:"preferred_skills,omitempty" validate:"omitempty,dive,max=200"`
	PreferredExperience []string `json:"preferred_experience,omitempty" validate:"omitempty,dive,max=500"`
	PreferredEducation  []string `json:"preferred_education,omitempty" validate:"omitempty,dive,max=200"`
	Keywords            []string `json:"keywords,omitempty" validate:"omitempty,dive,max=200"`
	Certifications      []string `json:"certifications,omitempty" validate:"omitempty,dive,max=200"`
	Industry            string   `json:"industry,omitempty" validate:"omitempty,max=100"`
}

// Validate validates the JobRequirements using the validator.
func (j *JobRequirements) Validate() error {
	validate := validator.New()
	return validate.Struct(j)
}

// HasRequirements reports whether j is non-nil. A present but empty value still counts as
// "job requirements given", matching how callers pass an explicit empty object.
func (j *JobRequirements) HasRequirements() bool {
	return j != nil
}

// Required returns the non-blank required skills.
func (j *JobRequirements) Required() []string {
	if j == nil {
		return nil
	}
	return NonBlank(j.RequiredSkills)
}

// Preferred returns the non-blank preferred skills.
func (j *JobRequirements) Preferred() []string {
	if j == nil {
		return nil
	}
	return NonBlank(j.PreferredSkills)
}

// AllSkills returns required followed by preferred skills, blanks removed.
func (j *JobRequirements) AllSkills() []string {
	if j == nil {
		return nil
	}
	return append(j.Required(), j.Preferred()...)
}

// NonBlank drops empty and whitespace-only strings, preserving order.
func NonBlank(values []string) []string {
	var out []string
	for _, v := range values {
		if strings.TrimSpace(v) == "" {
			continue
		}
		out = append(out, v)
	}
	return out
}

// Lower lowercases and trims every non-blank value.
func Lower(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range NonBlank(values) {
		out = append(out, strings.ToLower(strings.TrimSpace(v)))
	}
	return out
}
