package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScoringWeights_Validate(t *testing.T) {
	tests := []struct {
		name    string
		weights ScoringWeights
		wantErr bool
	}{
		{name: "defaults", weights: DefaultWeights()},
		{name: "within tolerance", weights: ScoringWeights{0.3, 0.25, 0.15, 0.15, 0.1505}},
		{name: "sums to 0.8", weights: ScoringWeights{0.2, 0.2, 0.2, 0.1, 0.1}, wantErr: true},
		{name: "sums above 1", weights: ScoringWeights{0.5, 0.5, 0.1, 0.0, 0.0}, wantErr: true},
		{name: "negative weight", weights: ScoringWeights{1.2, -0.2, 0, 0, 0}, wantErr: true},
		{name: "all on one category", weights: ScoringWeights{0, 0, 0, 0, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.weights.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidWeights)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestScoringWeights_Weight(t *testing.T) {
	w := DefaultWeights()
	assert.InDelta(t, 1.0, w.Sum(), 1e-9)
	assert.Equal(t, 0.30, w.Weight(CategorySkills))
	assert.Equal(t, 0.25, w.Weight(CategoryExperience))
	assert.Equal(t, 0.0, w.Weight("unknown"))
	assert.Len(t, w.Map(), 5)
}

func TestCategoryLabel(t *testing.T) {
	assert.Equal(t, "Skills Match", CategoryLabel(CategorySkills))
	assert.Equal(t, "Keyword Optimization", CategoryLabel(CategoryKeywords))
	assert.Equal(t, "other", CategoryLabel("other"))
}

func TestJobRequirements_Helpers(t *testing.T) {
	var none *JobRequirements
	assert.False(t, none.HasRequirements())
	assert.Nil(t, none.Required())

	job := &JobRequirements{
		RequiredSkills:  []string{"Go", " ", "SQL"},
		PreferredSkills: []string{"", "Docker"},
	}
	assert.True(t, job.HasRequirements())
	assert.Equal(t, []string{"Go", "SQL"}, job.Required())
	assert.Equal(t, []string{"Go", "SQL", "Docker"}, job.AllSkills())
	assert.Equal(t, []string{"go", "sql"}, Lower(job.RequiredSkills))
	assert.NoError(t, job.Validate())
}
