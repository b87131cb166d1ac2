package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/jonathan/ats-scorer/internal/benchmark"
	"github.com/jonathan/ats-scorer/internal/pipeline"
	"github.com/jonathan/ats-scorer/internal/scoring"
	"github.com/jonathan/ats-scorer/internal/server/middleware"
	"github.com/jonathan/ats-scorer/internal/types"
)

// maxBatchSize caps POST /score/batch.
const maxBatchSize = 100

// BatchRequest is the body of POST /score/batch.
type BatchRequest struct {
	Requests []pipeline.Request `json:"requests"`
}

// BatchResponse is returned by POST /score/batch in request order.
type BatchResponse struct {
	Results []*pipeline.Response `json:"results"`
}

// AnalysisRequest is the body of the recommendation, skill gap and industry endpoints.
type AnalysisRequest struct {
	Resume   json.RawMessage `json:"resume"`
	Job      json.RawMessage `json:"job_requirements,omitempty"`
	Industry string          `json:"industry,omitempty"`
}

// StatsResponse is returned by GET /stats.
type StatsResponse struct {
	Tenant          string                         `json:"tenant"`
	Scoring         types.ScoringStatistics        `json:"scoring"`
	Recommendations types.RecommendationStatistics `json:"recommendations"`
	Cache           scoring.CacheStats             `json:"cache"`
}

// BenchmarksResponse is returned by GET /benchmarks.
type BenchmarksResponse struct {
	Default    string                         `json:"default"`
	Benchmarks map[string]benchmark.Benchmark `json:"benchmarks"`
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// tenantOf returns the caller's lowercased tenant, "" for the default tenant.
func tenantOf(r *http.Request) string {
	return strings.ToLower(middleware.GetTenant(r))
}

// runnerFor resolves the caller's tenant runner.
func (s *Server) runnerFor(r *http.Request) (*pipeline.Runner, error) {
	tenant := tenantOf(r)
	runner, ok := s.tenants.Lookup(tenant)
	if !ok {
		return nil, &ErrUnknownTenant{Tenant: tenant}
	}
	return runner, nil
}

// decodeBody reads a JSON request body into v.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return &ErrValidation{Field: "body", Message: err.Error()}
	}
	return nil
}

func (s *Server) handleScore(w http.ResponseWriter, r *http.Request) {
	runner, err := s.runnerFor(r)
	if err != nil {
		s.handleError(w, err)
		return
	}
	var req pipeline.Request
	if err := decodeBody(w, r, &req); err != nil {
		s.handleError(w, err)
		return
	}
	req.Tenant = tenantOf(r)

	resp, err := runner.Run(r.Context(), req)
	if err != nil {
		s.handleError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, resp)
}

func (s *Server) handleScoreBatch(w http.ResponseWriter, r *http.Request) {
	runner, err := s.runnerFor(r)
	if err != nil {
		s.handleError(w, err)
		return
	}
	var batch BatchRequest
	if err := decodeBody(w, r, &batch); err != nil {
		s.handleError(w, err)
		return
	}
	switch {
	case len(batch.Requests) == 0:
		s.handleError(w, &ErrValidation{Field: "requests", Message: "at least one request is required"})
		return
	case len(batch.Requests) > maxBatchSize:
		s.handleError(w, &ErrValidation{Field: "requests", Message: fmt.Sprintf("at most %d requests are allowed", maxBatchSize)})
		return
	}
	tenant := tenantOf(r)
	for i := range batch.Requests {
		batch.Requests[i].Tenant = tenant
	}

	results, err := runner.ScoreBatch(r.Context(), batch.Requests, s.parallelism)
	if err != nil {
		s.handleError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, BatchResponse{Results: results})
}

func (s *Server) handleRecommendations(w http.ResponseWriter, r *http.Request) {
	runner, req, err := s.analysisInput(w, r)
	if err != nil {
		s.handleError(w, err)
		return
	}
	resp, err := runner.Run(r.Context(), pipeline.Request{
		Resume:   req.Resume,
		Job:      req.Job,
		Industry: req.Industry,
		Tenant:   tenantOf(r),
	})
	if err != nil {
		s.handleError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, resp.Recommendations)
}

func (s *Server) handleSkillGaps(w http.ResponseWriter, r *http.Request) {
	runner, req, err := s.analysisInput(w, r)
	if err != nil {
		s.handleError(w, err)
		return
	}
	resume, err := pipeline.DecodeResume(req.Resume)
	if err != nil {
		s.handleError(w, err)
		return
	}
	job, err := pipeline.DecodeJob(req.Job)
	if err != nil {
		s.handleError(w, err)
		return
	}
	if job == nil {
		s.handleError(w, &ErrValidation{Field: "job_requirements", Message: "job requirements are required"})
		return
	}
	s.jsonResponse(w, http.StatusOK, runner.Engine().SkillGaps(resume, job))
}

func (s *Server) handleIndustryAnalysis(w http.ResponseWriter, r *http.Request) {
	runner, req, err := s.analysisInput(w, r)
	if err != nil {
		s.handleError(w, err)
		return
	}
	if strings.TrimSpace(req.Industry) == "" {
		s.handleError(w, &ErrValidation{Field: "industry", Message: "industry is required"})
		return
	}
	resume, err := pipeline.DecodeResume(req.Resume)
	if err != nil {
		s.handleError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, runner.Engine().IndustryAnalysis(resume, req.Industry))
}

// analysisInput resolves the tenant and decodes an AnalysisRequest.
func (s *Server) analysisInput(w http.ResponseWriter, r *http.Request) (*pipeline.Runner, AnalysisRequest, error) {
	runner, err := s.runnerFor(r)
	if err != nil {
		return nil, AnalysisRequest{}, err
	}
	var req AnalysisRequest
	if err := decodeBody(w, r, &req); err != nil {
		return nil, AnalysisRequest{}, err
	}
	return runner, req, nil
}

func (s *Server) handleBenchmarks(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, BenchmarksResponse{
		Default:    benchmark.DefaultIndustry,
		Benchmarks: benchmark.All(),
	})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	runner, err := s.runnerFor(r)
	if err != nil {
		s.handleError(w, err)
		return
	}
	engine := runner.Engine()
	s.jsonResponse(w, http.StatusOK, StatsResponse{
		Tenant:          tenantOf(r),
		Scoring:         engine.Statistics(),
		Recommendations: engine.RecommendationStatistics(),
		Cache:           engine.CacheStats(),
	})
}
