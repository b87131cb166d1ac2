package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jonathan/ats-scorer/internal/types"
)

// ScoringRecord is a persisted scoring result. Resume content is never stored; the
// fingerprint identifies the input.
type ScoringRecord struct {
	ID                 uuid.UUID          `json:"id"`
	Fingerprint        string             `json:"fingerprint"`
	Tenant             string             `json:"tenant,omitempty"`
	Industry           string             `json:"industry"`
	OverallScore       float64            `json:"overall_score"`
	CategoryScores     map[string]float64 `json:"category_scores"`
	ConfidenceLower    float64            `json:"confidence_lower"`
	ConfidenceUpper    float64            `json:"confidence_upper"`
	PerformanceLevel   string             `json:"performance_level"`
	HadJobRequirements bool               `json:"had_job_requirements"`
	Metadata           map[string]any     `json:"scoring_metadata,omitempty"`
	CreatedAt          time.Time          `json:"created_at"`
}

// NewScoringRecord builds a record from a score result.
func NewScoringRecord(result *types.ScoreResult, tenant string, hadJob bool) *ScoringRecord {
	if result == nil {
		return nil
	}
	rec := &ScoringRecord{
		Fingerprint:        result.ConsistencyHash,
		Tenant:             tenant,
		Industry:           result.BenchmarkComparison.Industry,
		OverallScore:       result.OverallScore,
		CategoryScores:     make(map[string]float64, len(result.CategoryScores)),
		ConfidenceLower:    result.ConfidenceInterval.Lower,
		ConfidenceUpper:    result.ConfidenceInterval.Upper,
		PerformanceLevel:   result.BenchmarkComparison.PerformanceLevel,
		HadJobRequirements: hadJob,
	}
	for k, v := range result.CategoryScores {
		rec.CategoryScores[k] = v
	}
	if n := len(result.DetailedBreakdown.MissingElements); n > 0 {
		rec.Metadata = map[string]any{"missing_elements": n}
	}
	return rec
}

// SaveScoringRecord inserts a scoring record and returns its ID. A zero ID is replaced
// with a fresh UUID.
func (db *DB) SaveScoringRecord(ctx context.Context, rec *ScoringRecord) (uuid.UUID, error) {
	if rec == nil {
		return uuid.Nil, fmt.Errorf("failed to save scoring record: record is nil")
	}
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}

	scores, err := json.Marshal(rec.CategoryScores)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to marshal category scores: %w", err)
	}
	var metadata []byte
	if rec.Metadata != nil {
		metadata, err = json.Marshal(rec.Metadata)
		if err != nil {
			return uuid.Nil, fmt.Errorf("failed to marshal scoring metadata: %w", err)
		}
	}

	err = db.pool.QueryRow(ctx,
		`INSERT INTO scoring_history
		 (id, fingerprint, tenant, industry, overall_score, category_scores,
		  confidence_lower, confidence_upper, performance_level, had_job_requirements, scoring_metadata)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		 RETURNING created_at`,
		rec.ID, rec.Fingerprint, rec.Tenant, rec.Industry, rec.OverallScore, scores,
		rec.ConfidenceLower, rec.ConfidenceUpper, rec.PerformanceLevel, rec.HadJobRequirements, metadata,
	).Scan(&rec.CreatedAt)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to save scoring record: %w", err)
	}
	return rec.ID, nil
}

const scoringColumns = `id, fingerprint, tenant, industry, overall_score, category_scores,
	confidence_lower, confidence_upper, performance_level, had_job_requirements, scoring_metadata, created_at`

// GetScoringHistory returns every record a tenant holds for a fingerprint, newest first.
// The default tenant is "".
func (db *DB) GetScoringHistory(ctx context.Context, tenant, fingerprint string) ([]ScoringRecord, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT `+scoringColumns+` FROM scoring_history
		 WHERE fingerprint = $1 AND tenant = $2 ORDER BY created_at DESC`,
		fingerprint, tenant,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get scoring history: %w", err)
	}
	defer rows.Close()

	var records []ScoringRecord
	for rows.Next() {
		rec, err := scanScoringRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read scoring history: %w", err)
	}
	return records, nil
}

// GetLatestScore returns the tenant's newest record for a fingerprint, or nil when none exists.
func (db *DB) GetLatestScore(ctx context.Context, tenant, fingerprint string) (*ScoringRecord, error) {
	row := db.pool.QueryRow(ctx,
		`SELECT `+scoringColumns+` FROM scoring_history
		 WHERE fingerprint = $1 AND tenant = $2 ORDER BY created_at DESC LIMIT 1`,
		fingerprint, tenant,
	)
	rec, err := scanScoringRecord(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return rec, nil
}

func scanScoringRecord(row pgx.Row) (*ScoringRecord, error) {
	var rec ScoringRecord
	var scores, metadata []byte
	err := row.Scan(&rec.ID, &rec.Fingerprint, &rec.Tenant, &rec.Industry, &rec.OverallScore, &scores,
		&rec.ConfidenceLower, &rec.ConfidenceUpper, &rec.PerformanceLevel, &rec.HadJobRequirements,
		&metadata, &rec.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan scoring record: %w", err)
	}
	if err := json.Unmarshal(scores, &rec.CategoryScores); err != nil {
		return nil, fmt.Errorf("failed to decode category scores: %w", err)
	}
	if len(metadata) > 0 {
		if err := json.Unmarshal(metadata, &rec.Metadata); err != nil {
			return nil, fmt.Errorf("failed to decode scoring metadata: %w", err)
		}
	}
	return &rec, nil
}
