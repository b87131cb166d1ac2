package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/ats-scorer/internal/db"
	"github.com/jonathan/ats-scorer/internal/parsing"
	"github.com/jonathan/ats-scorer/internal/schemas"
	"github.com/jonathan/ats-scorer/internal/scoring"
	"github.com/jonathan/ats-scorer/internal/types"
)

const sampleResume = `{
  "personal_info": {"name": "Jordan Lee", "email": "jordan@example.com", "phone": "555-0100"},
  "experience": [{
    "title": "Senior Software Engineer",
    "company": "Acme",
    "start_date": "01/2018",
    "end_date": "Present",
    "achievements": ["Cut latency by 40%"]
  }],
  "education": [{"degree": "BS Computer Science", "institution": "State University", "gpa": 3.7}],
  "skills": {"programming_languages": ["Python", "Go"], "tools": ["Docker"]}
}`

const sampleJob = `{"required_skills": ["Python", "Kubernetes"], "keywords": ["python"], "industry": "finance"}`

type fakeStore struct {
	mu      sync.Mutex
	records []*db.ScoringRecord
	err     error
}

func (s *fakeStore) SaveScoringRecord(_ context.Context, rec *db.ScoringRecord) (uuid.UUID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return uuid.Nil, s.err
	}
	s.records = append(s.records, rec)
	return rec.ID, nil
}

func newEngine(t *testing.T) *scoring.Engine {
	t.Helper()
	fixed := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	engine, err := scoring.NewEngine(types.DefaultWeights(), scoring.WithClock(func() time.Time { return fixed }))
	require.NoError(t, err)
	return engine
}

func TestNewRunner_RequiresEngine(t *testing.T) {
	_, err := NewRunner(nil)
	assert.Error(t, err)
}

func TestRun_ScoresAndPersists(t *testing.T) {
	store := &fakeStore{}
	var events []ProgressEvent
	runner, err := NewRunner(newEngine(t),
		WithStore(store),
		WithProgress(func(e ProgressEvent) { events = append(events, e) }),
	)
	require.NoError(t, err)

	resp, err := runner.Run(context.Background(), Request{
		Resume: json.RawMessage(sampleResume),
		Job:    json.RawMessage(sampleJob),
		Tenant: "acme",
	})
	require.NoError(t, err)
	require.NotNil(t, resp.Result)
	require.NotNil(t, resp.Recommendations)
	assert.True(t, resp.Persisted)
	assert.NotEqual(t, uuid.Nil, resp.ID)
	assert.Nil(t, resp.Extraction)

	// job industry is used when the request names none
	assert.Equal(t, "finance", resp.Result.BenchmarkComparison.Industry)
	assert.Equal(t, 50.0, resp.Result.CategoryScores[types.CategorySkills])

	require.Len(t, store.records, 1)
	rec := store.records[0]
	assert.Equal(t, resp.ID, rec.ID)
	assert.Equal(t, "acme", rec.Tenant)
	assert.True(t, rec.HadJobRequirements)
	assert.Equal(t, resp.Result.ConsistencyHash, rec.Fingerprint)

	steps := make([]string, 0, len(events))
	for _, e := range events {
		steps = append(steps, e.Step)
	}
	assert.Equal(t, []string{StepDecode, StepScore, StepRecommend, StepPersist}, steps)
}

func TestRun_IndustryPrecedence(t *testing.T) {
	runner, err := NewRunner(newEngine(t), WithDefaultIndustry("healthcare"))
	require.NoError(t, err)
	ctx := context.Background()

	resp, err := runner.Run(ctx, Request{Resume: json.RawMessage(sampleResume), Job: json.RawMessage(sampleJob), Industry: "technology"})
	require.NoError(t, err)
	assert.Equal(t, "technology", resp.Result.BenchmarkComparison.Industry)

	resp, err = runner.Run(ctx, Request{Resume: json.RawMessage(sampleResume)})
	require.NoError(t, err)
	assert.Equal(t, "healthcare", resp.Result.BenchmarkComparison.Industry)
}

func TestRun_EmptyJobCountsAsJobRequirements(t *testing.T) {
	store := &fakeStore{}
	runner, err := NewRunner(newEngine(t), WithStore(store))
	require.NoError(t, err)
	ctx := context.Background()

	_, err = runner.Run(ctx, Request{Resume: json.RawMessage(sampleResume), Job: json.RawMessage(`{}`), SkipRecommendations: true})
	require.NoError(t, err)
	_, err = runner.Run(ctx, Request{Resume: json.RawMessage(sampleResume), Job: json.RawMessage(`null`), SkipRecommendations: true})
	require.NoError(t, err)

	require.Len(t, store.records, 2)
	assert.True(t, store.records[0].HadJobRequirements)
	assert.False(t, store.records[1].HadJobRequirements)
}

func TestRun_UnknownIndustryIsEchoed(t *testing.T) {
	runner, err := NewRunner(newEngine(t))
	require.NoError(t, err)

	resp, err := runner.Run(context.Background(), Request{Resume: json.RawMessage(sampleResume), Industry: "Aerospace", SkipRecommendations: true})
	require.NoError(t, err)
	assert.Equal(t, "aerospace", resp.Result.BenchmarkComparison.Industry)
	assert.Equal(t, "general", resp.Result.BenchmarkComparison.BenchmarkIndustry)
}

func TestRun_StoreFailureIsNotFatal(t *testing.T) {
	store := &fakeStore{err: errors.New("connection refused")}
	runner, err := NewRunner(newEngine(t), WithStore(store))
	require.NoError(t, err)

	resp, err := runner.Run(context.Background(), Request{Resume: json.RawMessage(sampleResume)})
	require.NoError(t, err)
	assert.False(t, resp.Persisted)
	assert.NotNil(t, resp.Result)
}

func TestRun_SkipRecommendations(t *testing.T) {
	runner, err := NewRunner(newEngine(t))
	require.NoError(t, err)

	resp, err := runner.Run(context.Background(), Request{Resume: json.RawMessage(sampleResume), SkipRecommendations: true})
	require.NoError(t, err)
	assert.Nil(t, resp.Recommendations)
	assert.False(t, resp.Persisted)
}

func TestRun_InvalidInput(t *testing.T) {
	runner, err := NewRunner(newEngine(t))
	require.NoError(t, err)

	tests := []struct {
		name  string
		req   Request
		field string
	}{
		{"missing resume", Request{}, "resume"},
		{"null resume", Request{Resume: json.RawMessage("null")}, "resume"},
		{"schema violation", Request{Resume: json.RawMessage(`{"experience": "not a list"}`)}, "resume"},
		{"malformed resume", Request{Resume: json.RawMessage(`{"skills": `)}, "resume"},
		{"bad job", Request{Resume: json.RawMessage(sampleResume), Job: json.RawMessage(`{"required_skills": "python"}`)}, "job_requirements"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := runner.Run(context.Background(), tt.req)
			require.Error(t, err)
			var inputErr *InputError
			require.True(t, errors.As(err, &inputErr))
			assert.Equal(t, tt.field, inputErr.Field)
		})
	}
}

func TestRun_SchemaErrorsAreExposed(t *testing.T) {
	_, err := DecodeResume(json.RawMessage(`{"experience": "not a list"}`))
	var validationErr *schemas.ValidationError
	require.True(t, errors.As(err, &validationErr))
	assert.NotEmpty(t, validationErr.Errors)
}

func TestRun_ResumeTextUsesExtraction(t *testing.T) {
	failing := parsing.ExtractorFunc(func(context.Context, string) (*types.StructuredResume, error) {
		return nil, errors.New("model unavailable")
	})
	runner, err := NewRunner(newEngine(t), WithExtractor(failing))
	require.NoError(t, err)

	resp, err := runner.Run(context.Background(), Request{
		ResumeText: "Jordan Lee\njordan@example.com\n555-123-4567\nPython, Docker and AWS",
	})
	require.NoError(t, err)
	require.NotNil(t, resp.Extraction)
	assert.Equal(t, types.ProvenanceFallback, resp.Extraction.Provenance)
	assert.Equal(t, "model unavailable", resp.Extraction.Reason)
	assert.NotNil(t, resp.Result)
}

func TestRun_ResumeTextWithJSONExtractor(t *testing.T) {
	runner, err := NewRunner(newEngine(t))
	require.NoError(t, err)

	resp, err := runner.Run(context.Background(), Request{ResumeText: "Here is the resume:\n" + sampleResume})
	require.NoError(t, err)
	require.NotNil(t, resp.Extraction)
	assert.Equal(t, types.ProvenanceExtracted, resp.Extraction.Provenance)
}

func TestRun_CancelledContext(t *testing.T) {
	runner, err := NewRunner(newEngine(t))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = runner.Run(ctx, Request{Resume: json.RawMessage(sampleResume)})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestScoreBatch_KeepsOrder(t *testing.T) {
	store := &fakeStore{}
	engine := newEngine(t)
	runner, err := NewRunner(engine, WithStore(store))
	require.NoError(t, err)

	industries := []string{"technology", "finance", "healthcare", "general"}
	reqs := make([]Request, 0, 12)
	for i := 0; i < 12; i++ {
		reqs = append(reqs, Request{
			Resume:   json.RawMessage(sampleResume),
			Industry: industries[i%len(industries)],
		})
	}

	responses, err := runner.ScoreBatch(context.Background(), reqs, 4)
	require.NoError(t, err)
	require.Len(t, responses, len(reqs))
	for i, resp := range responses {
		require.NotNil(t, resp, "response %d", i)
		assert.Equal(t, industries[i%len(industries)], resp.Result.BenchmarkComparison.Industry)
	}
	assert.Len(t, store.records, len(reqs))

	stats := engine.CacheStats()
	assert.Equal(t, 4, stats.Entries)
	assert.Equal(t, 4, stats.Computations)
}

func TestScoreBatch_FailsOnBadItem(t *testing.T) {
	runner, err := NewRunner(newEngine(t))
	require.NoError(t, err)

	reqs := []Request{
		{Resume: json.RawMessage(sampleResume)},
		{},
	}
	_, err = runner.ScoreBatch(context.Background(), reqs, 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), fmt.Sprintf("batch item %d", 1))
}

func TestDecodeJob_Absent(t *testing.T) {
	job, err := DecodeJob(nil)
	require.NoError(t, err)
	assert.Nil(t, job)

	job, err = DecodeJob(json.RawMessage(" null "))
	require.NoError(t, err)
	assert.Nil(t, job)

	job, err = DecodeJob(json.RawMessage(`{}`))
	require.NoError(t, err)
	require.NotNil(t, job)
}
