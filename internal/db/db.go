// Package db provides PostgreSQL persistence for scoring history, taxonomy additions
// and knowledge entries.
package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// DB wraps a PostgreSQL connection pool
type DB struct {
	pool *pgxpool.Pool
}

// Connect establishes a connection pool to the database
func Connect(ctx context.Context, databaseURL string) (*DB, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{pool: pool}, nil
}

// Close closes the connection pool
func (db *DB) Close() {
	if db.pool != nil {
		db.pool.Close()
	}
}

// schema is applied by Migrate. Every statement is idempotent.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS scoring_history (
		id UUID PRIMARY KEY,
		fingerprint TEXT NOT NULL,
		tenant TEXT NOT NULL DEFAULT '',
		industry TEXT NOT NULL,
		overall_score DOUBLE PRECISION NOT NULL,
		category_scores JSONB NOT NULL,
		confidence_lower DOUBLE PRECISION NOT NULL,
		confidence_upper DOUBLE PRECISION NOT NULL,
		performance_level TEXT NOT NULL DEFAULT '',
		had_job_requirements BOOLEAN NOT NULL DEFAULT FALSE,
		scoring_metadata JSONB,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_scoring_history_fingerprint
		ON scoring_history (fingerprint, created_at DESC)`,
	`CREATE TABLE IF NOT EXISTS skill_taxonomy (
		skill_name TEXT PRIMARY KEY,
		category TEXT NOT NULL,
		subcategory TEXT NOT NULL DEFAULT '',
		aliases JSONB NOT NULL DEFAULT '[]',
		related_skills JSONB NOT NULL DEFAULT '[]',
		industry_relevance JSONB NOT NULL DEFAULT '{}',
		difficulty_level TEXT NOT NULL DEFAULT '',
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS knowledge_entries (
		id UUID PRIMARY KEY,
		category TEXT NOT NULL,
		title TEXT NOT NULL,
		content TEXT NOT NULL,
		tags JSONB NOT NULL DEFAULT '[]',
		source TEXT NOT NULL DEFAULT 'manual',
		metadata JSONB,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_knowledge_entries_category
		ON knowledge_entries (category, created_at DESC)`,
}

// Migrate creates the tables and indexes if they do not already exist.
func (db *DB) Migrate(ctx context.Context) error {
	for _, stmt := range schema {
		if _, err := db.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to migrate schema: %w", err)
		}
	}
	return nil
}
