package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestExperience_DurationYears(t *testing.T) {
	now := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		start string
		end   string
		want  float64
	}{
		{name: "closed range", start: "01/2018", end: "07/2020", want: 2.5},
		{name: "present", start: "06/2018", end: "Present", want: 8},
		{name: "present lowercase", start: "06/2018", end: "present", want: 8},
		{name: "no end date", start: "06/2024", end: "", want: 2},
		{name: "no start date", start: "", end: "01/2020", want: 0},
		{name: "year only start", start: "2018", end: "01/2020", want: 0},
		{name: "non numeric", start: "Jan/2018", end: "01/2020", want: 0},
		{name: "end before start", start: "01/2020", end: "01/2018", want: 0},
		{name: "future start", start: "01/2030", end: "Present", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := Experience{StartDate: tt.start, EndDate: tt.end}
			assert.InDelta(t, tt.want, e.DurationYears(now), 1e-9)
		})
	}
}

func TestStructuredResume_TotalExperienceYears(t *testing.T) {
	now := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
	resume := &StructuredResume{
		Experience: []Experience{
			{StartDate: "03/2022", EndDate: "Present"},
			{StartDate: "01/2019", EndDate: "12/2021"},
			{StartDate: "bad"},
			{StartDate: "01/2018", EndDate: "garbage"},
		},
	}

	assert.Equal(t, 6.0, resume.TotalExperienceYears(now))

	var nilResume *StructuredResume
	assert.Equal(t, 0.0, nilResume.TotalExperienceYears(now))
}
