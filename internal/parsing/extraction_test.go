package parsing

import (
	"context"
	"errors"
	"testing"

	"github.com/jonathan/ats-scorer/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleText = `Jane Doe
jane.doe@example.com | (555) 123-4567
Skills: Python, javascript, Docker, python, Machine Learning, Git`

func TestExtract_PrimarySucceeds(t *testing.T) {
	primary := ExtractorFunc(func(_ context.Context, _ string) (*types.StructuredResume, error) {
		return &types.StructuredResume{ProfessionalSummary: "from primary"}, nil
	})

	got, err := Extract(context.Background(), primary, sampleText)
	require.NoError(t, err)
	assert.Equal(t, types.ProvenanceExtracted, got.Provenance)
	assert.Empty(t, got.Reason)
	assert.Equal(t, "from primary", got.Resume.ProfessionalSummary)
}

func TestExtract_FallsBackOnError(t *testing.T) {
	primary := ExtractorFunc(func(_ context.Context, _ string) (*types.StructuredResume, error) {
		return nil, &ExtractionError{Message: "model unavailable"}
	})

	got, err := Extract(context.Background(), primary, sampleText)
	require.NoError(t, err)
	assert.True(t, got.IsFallback())
	assert.Contains(t, got.Reason, "model unavailable")
	assert.Equal(t, "jane.doe@example.com", got.Resume.PersonalInfo.Email)
}

func TestExtract_NilPrimary(t *testing.T) {
	got, err := Extract(context.Background(), nil, sampleText)
	require.NoError(t, err)
	assert.True(t, got.IsFallback())
}

func TestExtract_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	primary := ExtractorFunc(func(ctx context.Context, _ string) (*types.StructuredResume, error) {
		return nil, ctx.Err()
	})

	_, err := Extract(ctx, primary, sampleText)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestJSONExtractor(t *testing.T) {
	t.Run("wrapped in prose", func(t *testing.T) {
		raw := "Here is the resume:\n{\"professional_summary\": \"Engineer\", \"education\": [{\"gpa\": 3.9}]}\nDone."
		resume, err := JSONExtractor{}.Extract(context.Background(), raw)
		require.NoError(t, err)
		assert.Equal(t, "Engineer", resume.ProfessionalSummary)
		assert.Equal(t, types.GPA("3.9"), resume.Education[0].GPA)
	})

	t.Run("no object", func(t *testing.T) {
		_, err := JSONExtractor{}.Extract(context.Background(), "plain text resume")
		var extractionErr *ExtractionError
		assert.ErrorAs(t, err, &extractionErr)
	})

	t.Run("invalid json", func(t *testing.T) {
		_, err := JSONExtractor{}.Extract(context.Background(), "{not json}")
		var parseErr *ParseError
		assert.ErrorAs(t, err, &parseErr)
	})
}

func TestFallbackExtract(t *testing.T) {
	resume := FallbackExtract(sampleText)

	require.NotNil(t, resume.PersonalInfo)
	assert.Equal(t, "Not extracted", resume.PersonalInfo.Name)
	assert.Equal(t, "jane.doe@example.com", resume.PersonalInfo.Email)
	assert.Equal(t, "(555) 123-4567", resume.PersonalInfo.Phone)
	assert.Equal(t, types.NotSpecified, resume.PersonalInfo.LinkedIn)
	assert.Equal(t, "Not extracted - fallback parsing used", resume.ProfessionalSummary)
	assert.Equal(t,
		[]string{"Python", "javascript", "Docker", "Machine Learning", "Git"},
		resume.Skills["technical_skills"])
	assert.Contains(t, resume.Metadata, "parsing_note")
}

func TestFallbackExtract_NothingFound(t *testing.T) {
	resume := FallbackExtract("")
	assert.Equal(t, types.NotSpecified, resume.PersonalInfo.Email)
	assert.Equal(t, types.NotSpecified, resume.PersonalInfo.Phone)
	assert.Empty(t, resume.Skills["technical_skills"])
}

func TestValidateExtraction(t *testing.T) {
	t.Run("fallback resume", func(t *testing.T) {
		report := ValidateExtraction(FallbackExtract(sampleText))
		// "Not extracted" counts as a name, so only experience and education are missing
		assert.Equal(t, 50.0, report.CompletenessScore)
		assert.Equal(t, []string{"No work experience found", "No education information found"}, report.Issues)
		assert.Equal(t, []string{"Consider manual review and enhancement of extracted data"}, report.Recommendations)
	})

	t.Run("nil resume", func(t *testing.T) {
		report := ValidateExtraction(nil)
		assert.Equal(t, 0.0, report.CompletenessScore)
		assert.Len(t, report.Issues, 4)
		assert.Len(t, report.Recommendations, 2)
	})
}
