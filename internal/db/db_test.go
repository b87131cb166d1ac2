package db

import (
	"testing"

	"github.com/jonathan/ats-scorer/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewScoringRecord(t *testing.T) {
	result := &types.ScoreResult{
		OverallScore:       72.5,
		CategoryScores:     map[string]float64{types.CategorySkills: 80, types.CategoryFormat: 60},
		ConfidenceInterval: types.ConfidenceInterval{Lower: 60.1, Upper: 84.9},
		ConsistencyHash:    "abc123",
		BenchmarkComparison: types.BenchmarkComparison{
			Industry:         "technology",
			PerformanceLevel: "Average",
		},
		DetailedBreakdown: types.DetailedBreakdown{MissingElements: []string{types.MissingLinkedIn}},
	}

	rec := NewScoringRecord(result, "acme", true)
	require.NotNil(t, rec)
	assert.Equal(t, "abc123", rec.Fingerprint)
	assert.Equal(t, "acme", rec.Tenant)
	assert.Equal(t, "technology", rec.Industry)
	assert.Equal(t, 72.5, rec.OverallScore)
	assert.Equal(t, 60.1, rec.ConfidenceLower)
	assert.Equal(t, 84.9, rec.ConfidenceUpper)
	assert.Equal(t, "Average", rec.PerformanceLevel)
	assert.True(t, rec.HadJobRequirements)
	assert.Equal(t, 1, rec.Metadata["missing_elements"])

	// category scores are copied, not aliased
	rec.CategoryScores[types.CategorySkills] = 0
	assert.Equal(t, 80.0, result.CategoryScores[types.CategorySkills])
}

func TestNewScoringRecord_Nil(t *testing.T) {
	assert.Nil(t, NewScoringRecord(nil, "", false))
}

func TestKnowledgeSearchQuery(t *testing.T) {
	tests := []struct {
		name      string
		query     string
		category  string
		limit     int
		wantArgs  []any
		wantParts []string
	}{
		{
			name:      "query and category",
			query:     "keywords",
			category:  "best_practices",
			limit:     5,
			wantArgs:  []any{"%keywords%", "best_practices", 5},
			wantParts: []string{"title ILIKE $1", "category = $2", "LIMIT $3"},
		},
		{
			name:      "query only uses default limit",
			query:     "format",
			wantArgs:  []any{"%format%", DefaultKnowledgeLimit},
			wantParts: []string{"tags::text ILIKE $1", "LIMIT $2"},
		},
		{
			name:      "blank query lists category",
			query:     "   ",
			category:  "industry",
			limit:     3,
			wantArgs:  []any{"industry", 3},
			wantParts: []string{"category = $1", "LIMIT $2"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sql, args := knowledgeSearchQuery(tt.query, tt.category, tt.limit)
			assert.Equal(t, tt.wantArgs, args)
			for _, part := range tt.wantParts {
				assert.Contains(t, sql, part)
			}
			assert.Contains(t, sql, "ORDER BY created_at DESC")
		})
	}
}

func TestLikePattern_EscapesWildcards(t *testing.T) {
	assert.Equal(t, `%100\%%`, likePattern("100%"))
	assert.Equal(t, `%snake\_case%`, likePattern("snake_case"))
	assert.Equal(t, `%a\\b%`, likePattern(`a\b`))
}

func TestSchemaStatementsAreIdempotent(t *testing.T) {
	require.NotEmpty(t, schema)
	for _, stmt := range schema {
		assert.Contains(t, stmt, "IF NOT EXISTS")
	}
}

func TestDecodeJSON_Empty(t *testing.T) {
	var tags []string
	require.NoError(t, decodeJSON(nil, &tags))
	assert.Nil(t, tags)
	require.NoError(t, decodeJSON([]byte(`["a","b"]`), &tags))
	assert.Equal(t, []string{"a", "b"}, tags)
}
