// Package types provides type definitions for structured data used throughout the ATS scoring system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// NotSpecified is the placeholder extractors write for fields they could not find.
const NotSpecified = "Not specified"

// StructuredResume is the normalized resume record produced by an extractor.
// It is treated as immutable input to scoring.
type StructuredResume struct {
	PersonalInfo        *PersonalInfo       `json:"personal_info,omitempty"`
	ProfessionalSummary string              `json:"professional_summary,omitempty"`
	Experience          []Experience        `json:"experience,omitempty"`
	Education           []Education         `json:"education,omitempty"`
	Skills              map[string][]string `json:"skills,omitempty"`
	Projects            []Project           `json:"projects,omitempty"`
	AdditionalSections  map[string][]string `json:"additional_sections,omitempty"`
	Metadata            map[string]any      `json:"metadata,omitempty"`
}

// PersonalInfo holds contact details
type PersonalInfo struct {
	Name     string `json:"name,omitempty"`
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Location string `json:"location,omitempty"`
	LinkedIn string `json:"linkedin,omitempty"`
	Website  string `json:"website,omitempty"`
}

// Experience represents a single work history entry. Dates use MM/YYYY; EndDate may be "Present".
type Experience struct {
	Title            string   `json:"title,omitempty"`
	Company          string   `json:"company,omitempty"`
	Location         string   `json:"location,omitempty"`
	StartDate        string   `json:"start_date,omitempty"`
	EndDate          string   `json:"end_date,omitempty"`
	Duration         string   `json:"duration,omitempty"`
	Responsibilities []string `json:"responsibilities,omitempty"`
	Achievements     []string `json:"achievements,omitempty"`
}

// Education represents a degree, certificate or diploma
type Education struct {
	Degree         string `json:"degree,omitempty"`
	Institution    string `json:"institution,omitempty"`
	Location       string `json:"location,omitempty"`
	GraduationDate string `json:"graduation_date,omitempty"`
	GPA            GPA    `json:"gpa,omitempty"`
	Honors         string `json:"honors,omitempty"`
}

// Project represents a portfolio project
type Project struct {
	Name         string   `json:"name,omitempty"`
	Description  string   `json:"description,omitempty"`
	Technologies []string `json:"technologies,omitempty"`
	Duration     string   `json:"duration,omitempty"`
	Link         string   `json:"link,omitempty"`
}

// GPA is grade point average text. Extractors emit it either as a JSON string or a number,
// so both are accepted and kept verbatim.
type GPA string

// UnmarshalJSON accepts strings, numbers and null.
func (g *GPA) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*g = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("invalid gpa: %w", err)
		}
		*g = GPA(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("invalid gpa: %w", err)
	}
	*g = GPA(n.String())
	return nil
}

// Float parses the GPA. ok is false when the value is missing or not numeric.
func (g GPA) Float() (value float64, ok bool) {
	s := strings.TrimSpace(string(g))
	if s == "" {
		return 0, false
	}
	value, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return value, true
}

// IsSpecified reports whether a string field carries a real value rather than
// being empty or the extractor placeholder.
func IsSpecified(value string) bool {
	v := strings.TrimSpace(value)
	return v != "" && v != NotSpecified
}

// IsEmpty reports whether no contact field is set.
func (p *PersonalInfo) IsEmpty() bool {
	if p == nil {
		return true
	}
	return *p == PersonalInfo{}
}

// AllSkills returns every listed skill across all skill categories, in category-name order.
// Duplicates are kept.
func (r *StructuredResume) AllSkills() []string {
	if r == nil {
		return nil
	}
	var all []string
	for _, category := range sortedKeys(r.Skills) {
		for _, skill := range r.Skills[category] {
			if strings.TrimSpace(skill) == "" {
				continue
			}
			all = append(all, skill)
		}
	}
	return all
}

// SkillsIn returns the skills listed under a single category key.
func (r *StructuredResume) SkillsIn(category string) []string {
	if r == nil || r.Skills == nil {
		return nil
	}
	return r.Skills[category]
}

// LinkedIn returns the LinkedIn URL or "" when absent.
func (r *StructuredResume) LinkedIn() string {
	if r == nil || r.PersonalInfo == nil || !IsSpecified(r.PersonalInfo.LinkedIn) {
		return ""
	}
	return r.PersonalInfo.LinkedIn
}

// Contact returns the personal info section, never nil.
func (r *StructuredResume) Contact() PersonalInfo {
	if r == nil || r.PersonalInfo == nil {
		return PersonalInfo{}
	}
	return *r.PersonalInfo
}

// Text concatenates every string value in the resume (except the metadata section) into
// a single space-separated blob. Map keys are visited in sorted order so the blob is stable.
func (r *StructuredResume) Text() string {
	if r == nil {
		return ""
	}
	generic, err := toGeneric(r)
	if err != nil {
		return ""
	}
	root, ok := generic.(map[string]any)
	if !ok {
		return ""
	}
	delete(root, "metadata")

	var parts []string
	collectStrings(root, &parts)
	return strings.Join(parts, " ")
}

func collectStrings(node any, parts *[]string) {
	switch v := node.(type) {
	case string:
		if v != "" {
			*parts = append(*parts, v)
		}
	case map[string]any:
		for _, key := range sortedKeys(v) {
			collectStrings(v[key], parts)
		}
	case []any:
		for _, item := range v {
			collectStrings(item, parts)
		}
	case json.Number:
		*parts = append(*parts, v.String())
	}
}

// toGeneric round-trips a value through JSON into maps, slices and scalars.
func toGeneric(value any) (any, error) {
	raw, err := json.Marshal(value)
	if err != nil {
		return nil, err
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var generic any
	if err := dec.Decode(&generic); err != nil {
		return nil, err
	}
	return generic, nil
}
