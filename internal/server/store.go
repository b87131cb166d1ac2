package server

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jonathan/ats-scorer/internal/db"
	"github.com/jonathan/ats-scorer/internal/schemas"
	"github.com/jonathan/ats-scorer/internal/types"
)

// maxKnowledgeLimit caps the limit query parameter of GET /knowledge.
const maxKnowledgeLimit = 100

// Store is the persistence behind the history, taxonomy and knowledge endpoints.
// *db.DB satisfies it.
type Store interface {
	GetScoringHistory(ctx context.Context, tenant, fingerprint string) ([]db.ScoringRecord, error)
	GetLatestScore(ctx context.Context, tenant, fingerprint string) (*db.ScoringRecord, error)
	UpsertTaxonomyEntry(ctx context.Context, entry types.SkillTaxonomyEntry) error
	AddKnowledgeEntry(ctx context.Context, entry types.KnowledgeEntry) (uuid.UUID, error)
	SearchKnowledge(ctx context.Context, query, category string, limit int) ([]types.KnowledgeEntry, error)
}

var _ Store = (*db.DB)(nil)

// HistoryResponse is returned by GET /history/{fingerprint}.
type HistoryResponse struct {
	Fingerprint string             `json:"fingerprint"`
	Records     []db.ScoringRecord `json:"records"`
}

// TaxonomyResponse is returned by POST /taxonomy.
type TaxonomyResponse struct {
	Added  int      `json:"added"`
	Skills []string `json:"skills"`
}

// KnowledgeResponse is returned by GET /knowledge.
type KnowledgeResponse struct {
	Entries []types.KnowledgeEntry `json:"entries"`
}

// requireStore returns ErrStoreUnavailable when no database is configured.
func (s *Server) requireStore() error {
	if s.store == nil {
		return ErrStoreUnavailable
	}
	return nil
}

// requireDefaultTenant guards writes to data shared by every tenant.
func requireDefaultTenant(r *http.Request) error {
	if tenant := tenantOf(r); tenant != "" {
		return &ErrForbidden{Message: fmt.Sprintf("tenant %s may not modify shared data", tenant)}
	}
	return nil
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	if err := s.requireStore(); err != nil {
		s.handleError(w, err)
		return
	}
	fingerprint := r.PathValue("fingerprint")
	records, err := s.store.GetScoringHistory(r.Context(), tenantOf(r), fingerprint)
	if err != nil {
		s.handleError(w, err)
		return
	}
	if records == nil {
		records = []db.ScoringRecord{}
	}
	s.jsonResponse(w, http.StatusOK, HistoryResponse{Fingerprint: fingerprint, Records: records})
}

func (s *Server) handleLatestScore(w http.ResponseWriter, r *http.Request) {
	if err := s.requireStore(); err != nil {
		s.handleError(w, err)
		return
	}
	fingerprint := r.PathValue("fingerprint")
	rec, err := s.store.GetLatestScore(r.Context(), tenantOf(r), fingerprint)
	if err != nil {
		s.handleError(w, err)
		return
	}
	if rec == nil {
		s.handleError(w, &ErrNotFound{Resource: "scoring record", ID: fingerprint})
		return
	}
	s.jsonResponse(w, http.StatusOK, rec)
}

// handleAddTaxonomy validates a JSON array of entries, persists them and makes them
// visible to the running engines.
func (s *Server) handleAddTaxonomy(w http.ResponseWriter, r *http.Request) {
	if err := s.requireStore(); err != nil {
		s.handleError(w, err)
		return
	}
	if err := requireDefaultTenant(r); err != nil {
		s.handleError(w, err)
		return
	}

	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		s.handleError(w, &ErrValidation{Field: "body", Message: err.Error()})
		return
	}
	if err := schemas.ValidateTaxonomy(data); err != nil {
		s.handleError(w, err)
		return
	}
	var entries []types.SkillTaxonomyEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		s.handleError(w, &ErrValidation{Field: "body", Message: err.Error()})
		return
	}
	if len(entries) == 0 {
		s.handleError(w, &ErrValidation{Field: "body", Message: "at least one taxonomy entry is required"})
		return
	}
	for i := range entries {
		if err := entries[i].Validate(); err != nil {
			s.handleError(w, &ErrValidation{Field: fmt.Sprintf("[%d]", i), Message: err.Error()})
			return
		}
	}

	resp := TaxonomyResponse{Skills: make([]string, 0, len(entries))}
	for _, entry := range entries {
		if err := s.store.UpsertTaxonomyEntry(r.Context(), entry); err != nil {
			s.handleError(w, err)
			return
		}
		if s.taxonomy != nil {
			if err := s.taxonomy.Add(entry); err != nil {
				s.handleError(w, err)
				return
			}
		}
		resp.Added++
		resp.Skills = append(resp.Skills, entry.SkillName)
	}
	s.logger.Info("taxonomy entries added", zap.Int("count", resp.Added))
	s.jsonResponse(w, http.StatusOK, resp)
}

func (s *Server) handleAddKnowledge(w http.ResponseWriter, r *http.Request) {
	if err := s.requireStore(); err != nil {
		s.handleError(w, err)
		return
	}
	if err := requireDefaultTenant(r); err != nil {
		s.handleError(w, err)
		return
	}

	var entry types.KnowledgeEntry
	if err := decodeBody(w, r, &entry); err != nil {
		s.handleError(w, err)
		return
	}
	if err := validator.New().Struct(entry); err != nil {
		s.handleError(w, &ErrValidation{Field: "knowledge", Message: err.Error()})
		return
	}

	id, err := s.store.AddKnowledgeEntry(r.Context(), entry)
	if err != nil {
		s.handleError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusCreated, map[string]string{"id": id.String()})
}

func (s *Server) handleSearchKnowledge(w http.ResponseWriter, r *http.Request) {
	if err := s.requireStore(); err != nil {
		s.handleError(w, err)
		return
	}

	q := r.URL.Query()
	limit := 0
	if raw := strings.TrimSpace(q.Get("limit")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > maxKnowledgeLimit {
			s.handleError(w, &ErrValidation{Field: "limit", Message: fmt.Sprintf("must be between 1 and %d", maxKnowledgeLimit)})
			return
		}
		limit = n
	}

	entries, err := s.store.SearchKnowledge(r.Context(), q.Get("q"), q.Get("category"), limit)
	if err != nil {
		s.handleError(w, err)
		return
	}
	if entries == nil {
		entries = []types.KnowledgeEntry{}
	}
	s.jsonResponse(w, http.StatusOK, KnowledgeResponse{Entries: entries})
}
