package db

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/jonathan/ats-scorer/internal/types"
)

// DefaultKnowledgeLimit caps SearchKnowledge when no positive limit is given.
const DefaultKnowledgeLimit = 10

// AddKnowledgeEntry stores a knowledge entry and returns its ID.
func (db *DB) AddKnowledgeEntry(ctx context.Context, entry types.KnowledgeEntry) (uuid.UUID, error) {
	if err := validator.New().Struct(entry); err != nil {
		return uuid.Nil, fmt.Errorf("invalid knowledge entry: %w", err)
	}
	if entry.Source == "" {
		entry.Source = "manual"
	}

	tags, err := json.Marshal(nonNilStrings(entry.Tags))
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to marshal tags: %w", err)
	}
	var metadata []byte
	if entry.Metadata != nil {
		metadata, err = json.Marshal(entry.Metadata)
		if err != nil {
			return uuid.Nil, fmt.Errorf("failed to marshal metadata: %w", err)
		}
	}

	id := uuid.New()
	_, err = db.pool.Exec(ctx,
		`INSERT INTO knowledge_entries (id, category, title, content, tags, source, metadata)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		id, entry.Category, entry.Title, entry.Content, tags, entry.Source, metadata,
	)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to add knowledge entry: %w", err)
	}
	return id, nil
}

// SearchKnowledge does a case-insensitive text search over title, content and tags,
// optionally restricted to one category. Results are newest first.
func (db *DB) SearchKnowledge(ctx context.Context, query, category string, limit int) ([]types.KnowledgeEntry, error) {
	sql, args := knowledgeSearchQuery(query, category, limit)

	rows, err := db.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to search knowledge: %w", err)
	}
	defer rows.Close()

	var entries []types.KnowledgeEntry
	for rows.Next() {
		var e types.KnowledgeEntry
		var id uuid.UUID
		var tags, metadata []byte
		if err := rows.Scan(&id, &e.Category, &e.Title, &e.Content, &tags, &e.Source, &metadata, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan knowledge entry: %w", err)
		}
		e.ID = id.String()
		if err := decodeJSON(tags, &e.Tags); err != nil {
			return nil, fmt.Errorf("failed to decode tags: %w", err)
		}
		if err := decodeJSON(metadata, &e.Metadata); err != nil {
			return nil, fmt.Errorf("failed to decode metadata: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read knowledge entries: %w", err)
	}
	return entries, nil
}

// knowledgeSearchQuery builds the search statement and its arguments.
func knowledgeSearchQuery(query, category string, limit int) (string, []any) {
	if limit <= 0 {
		limit = DefaultKnowledgeLimit
	}

	sql := `SELECT id, category, title, content, tags, source, metadata, created_at
		FROM knowledge_entries WHERE 1=1`
	args := []any{}
	argNum := 1

	if q := strings.TrimSpace(query); q != "" {
		sql += fmt.Sprintf(" AND (title ILIKE $%d OR content ILIKE $%d OR tags::text ILIKE $%d)", argNum, argNum, argNum)
		args = append(args, likePattern(q))
		argNum++
	}
	if category != "" {
		sql += fmt.Sprintf(" AND category = $%d", argNum)
		args = append(args, category)
		argNum++
	}

	sql += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d", argNum)
	args = append(args, limit)
	return sql, args
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// likePattern wraps a literal search term for ILIKE.
func likePattern(term string) string {
	return "%" + likeEscaper.Replace(term) + "%"
}
