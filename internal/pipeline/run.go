// Package pipeline runs the end-to-end scoring flow: decode and validate the request,
// score, build recommendations and persist the outcome.
package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/ats-scorer/internal/db"
	"github.com/jonathan/ats-scorer/internal/logger"
	"github.com/jonathan/ats-scorer/internal/parsing"
	"github.com/jonathan/ats-scorer/internal/schemas"
	"github.com/jonathan/ats-scorer/internal/scoring"
	"github.com/jonathan/ats-scorer/internal/types"
)

// Step names reported through ProgressEvent.
const (
	StepDecode    = "decode"
	StepScore     = "score"
	StepRecommend = "recommend"
	StepPersist   = "persist"
)

// ProgressEvent represents a progress update during a run
type ProgressEvent struct {
	Step    string `json:"step"`
	Message string `json:"message"`
	Index   int    `json:"index"`
}

// ProgressCallback is called when pipeline progress occurs
type ProgressCallback func(event ProgressEvent)

// Store persists scoring outcomes. *db.DB satisfies it.
type Store interface {
	SaveScoringRecord(ctx context.Context, rec *db.ScoringRecord) (uuid.UUID, error)
}

// Request is one scoring request. Exactly one of Resume (structured JSON) or ResumeText
// (raw text, run through extraction) should be set.
type Request struct {
	Resume              json.RawMessage `json:"resume,omitempty"`
	ResumeText          string          `json:"resume_text,omitempty"`
	Job                 json.RawMessage `json:"job_requirements,omitempty"`
	Industry            string          `json:"industry,omitempty"`
	SkipRecommendations bool            `json:"skip_recommendations,omitempty"`
	Tenant              string          `json:"-"`
}

// ExtractionSummary reports how a raw-text resume was structured.
type ExtractionSummary struct {
	Provenance types.Provenance       `json:"provenance"`
	Reason     string                 `json:"reason,omitempty"`
	Report     types.ExtractionReport `json:"report"`
}

// Response is the outcome of a run.
type Response struct {
	ID              uuid.UUID                `json:"id"`
	Result          *types.ScoreResult       `json:"result"`
	Recommendations *types.RecommendationSet `json:"recommendations,omitempty"`
	Extraction      *ExtractionSummary       `json:"extraction,omitempty"`
	Persisted       bool                     `json:"persisted"`
}

// Runner wires the engine to optional persistence and extraction.
type Runner struct {
	engine          *scoring.Engine
	store           Store
	extractor       parsing.Extractor
	logger          *zap.Logger
	onProgress      ProgressCallback
	defaultIndustry string
}

// Option configures a Runner.
type Option func(*Runner)

// WithStore enables persistence.
func WithStore(s Store) Option {
	return func(r *Runner) { r.store = s }
}

// WithExtractor sets the primary extractor for raw-text resumes.
func WithExtractor(x parsing.Extractor) Option {
	return func(r *Runner) { r.extractor = x }
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(r *Runner) { r.logger = l }
}

// WithProgress registers a progress callback. It may be called from several goroutines
// during ScoreBatch.
func WithProgress(cb ProgressCallback) Option {
	return func(r *Runner) { r.onProgress = cb }
}

// WithDefaultIndustry sets the industry used when neither the request nor the job names one.
func WithDefaultIndustry(industry string) Option {
	return func(r *Runner) { r.defaultIndustry = industry }
}

// NewRunner creates a Runner around engine.
func NewRunner(engine *scoring.Engine, opts ...Option) (*Runner, error) {
	if engine == nil {
		return nil, errors.New("failed to create pipeline runner: engine is required")
	}
	r := &Runner{engine: engine, extractor: parsing.JSONExtractor{}}
	for _, opt := range opts {
		opt(r)
	}
	r.logger = logger.OrNop(r.logger)
	return r, nil
}

// Engine returns the runner's scoring engine.
func (r *Runner) Engine() *scoring.Engine {
	return r.engine
}

// emitProgress calls the progress callback if configured
func (r *Runner) emitProgress(index int, step, message string) {
	if r.onProgress != nil {
		r.onProgress(ProgressEvent{Step: step, Message: message, Index: index})
	}
}

// Run scores a single request.
func (r *Runner) Run(ctx context.Context, req Request) (*Response, error) {
	return r.run(ctx, 0, req)
}

func (r *Runner) run(ctx context.Context, index int, req Request) (*Response, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	resume, extraction, err := r.decodeResume(ctx, req)
	if err != nil {
		return nil, err
	}
	job, err := DecodeJob(req.Job)
	if err != nil {
		return nil, err
	}
	r.emitProgress(index, StepDecode, "request decoded and validated")

	industry := req.Industry
	if industry == "" && job != nil {
		industry = job.Industry
	}
	if industry == "" {
		industry = r.defaultIndustry
	}

	result, err := r.engine.Score(resume, job, industry)
	if err != nil {
		return nil, fmt.Errorf("failed to score resume: %w", err)
	}
	r.emitProgress(index, StepScore, fmt.Sprintf("scored %.2f", result.OverallScore))

	resp := &Response{Result: result, Extraction: extraction}
	if !req.SkipRecommendations {
		resp.Recommendations = r.engine.GenerateRecommendations(resume, result, job)
		r.emitProgress(index, StepRecommend,
			fmt.Sprintf("generated %d recommendations", resp.Recommendations.Metadata.RecommendationCount))
	}

	resp.ID = uuid.New()
	if r.store != nil {
		rec := db.NewScoringRecord(result, req.Tenant, job.HasRequirements())
		rec.ID = resp.ID
		if _, err := r.store.SaveScoringRecord(ctx, rec); err != nil {
			// Persistence is best effort; the score is still returned.
			r.logger.Warn("failed to persist scoring record",
				logger.Fingerprint(result.ConsistencyHash), zap.Error(err))
		} else {
			resp.Persisted = true
			r.emitProgress(index, StepPersist, "scoring record saved")
		}
	}
	return resp, nil
}

// ScoreBatch scores requests concurrently with at most parallelism in flight. Responses are
// returned in input order. The first failure cancels the remaining work.
func (r *Runner) ScoreBatch(ctx context.Context, reqs []Request, parallelism int) ([]*Response, error) {
	if parallelism < 1 {
		parallelism = 1
	}
	responses := make([]*Response, len(reqs))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(parallelism)
	for i := range reqs {
		g.Go(func() error {
			resp, err := r.run(gCtx, i, reqs[i])
			if err != nil {
				return fmt.Errorf("batch item %d: %w", i, err)
			}
			responses[i] = resp
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	r.logger.Info("batch scored", zap.Int("count", len(reqs)), zap.Int("parallelism", parallelism))
	return responses, nil
}

func (r *Runner) decodeResume(ctx context.Context, req Request) (*types.StructuredResume, *ExtractionSummary, error) {
	if !isAbsent(req.Resume) {
		resume, err := DecodeResume(req.Resume)
		return resume, nil, err
	}
	if req.ResumeText == "" {
		return nil, nil, &InputError{Field: "resume", Err: errors.New("resume or resume_text is required")}
	}

	extraction, err := parsing.Extract(ctx, r.extractor, req.ResumeText)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to extract resume: %w", err)
	}
	if extraction.IsFallback() {
		r.logger.Info("resume extracted with fallback parser", zap.String("reason", extraction.Reason))
	}
	return extraction.Resume, &ExtractionSummary{
		Provenance: extraction.Provenance,
		Reason:     extraction.Reason,
		Report:     parsing.ValidateExtraction(extraction.Resume),
	}, nil
}

// DecodeResume validates raw against the resume schema and decodes it.
func DecodeResume(raw json.RawMessage) (*types.StructuredResume, error) {
	if isAbsent(raw) {
		return nil, &InputError{Field: "resume", Err: errors.New("resume is required")}
	}
	if err := schemas.ValidateResume(raw); err != nil {
		return nil, &InputError{Field: "resume", Err: err}
	}
	var resume types.StructuredResume
	if err := json.Unmarshal(raw, &resume); err != nil {
		return nil, &InputError{Field: "resume", Err: err}
	}
	return &resume, nil
}

// DecodeJob validates and decodes optional job requirements. Absent or null input yields nil.
func DecodeJob(raw json.RawMessage) (*types.JobRequirements, error) {
	if isAbsent(raw) {
		return nil, nil
	}
	if err := schemas.ValidateJobRequirements(raw); err != nil {
		return nil, &InputError{Field: "job_requirements", Err: err}
	}
	var job types.JobRequirements
	if err := json.Unmarshal(raw, &job); err != nil {
		return nil, &InputError{Field: "job_requirements", Err: err}
	}
	if err := job.Validate(); err != nil {
		return nil, &InputError{Field: "job_requirements", Err: err}
	}
	return &job, nil
}

func isAbsent(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}
