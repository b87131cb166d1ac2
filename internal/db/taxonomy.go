package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jonathan/ats-scorer/internal/types"
)

// UpsertTaxonomyEntry stores a taxonomy addition, replacing any entry with the same skill name.
func (db *DB) UpsertTaxonomyEntry(ctx context.Context, entry types.SkillTaxonomyEntry) error {
	if err := entry.Validate(); err != nil {
		return fmt.Errorf("invalid taxonomy entry: %w", err)
	}

	aliases, err := json.Marshal(nonNilStrings(entry.Aliases))
	if err != nil {
		return fmt.Errorf("failed to marshal aliases: %w", err)
	}
	related, err := json.Marshal(nonNilStrings(entry.RelatedSkills))
	if err != nil {
		return fmt.Errorf("failed to marshal related skills: %w", err)
	}
	relevance := entry.IndustryRelevance
	if relevance == nil {
		relevance = map[string]float64{}
	}
	relevanceJSON, err := json.Marshal(relevance)
	if err != nil {
		return fmt.Errorf("failed to marshal industry relevance: %w", err)
	}

	_, err = db.pool.Exec(ctx,
		`INSERT INTO skill_taxonomy
		 (skill_name, category, subcategory, aliases, related_skills, industry_relevance, difficulty_level)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 ON CONFLICT (skill_name) DO UPDATE SET
		   category = $2, subcategory = $3, aliases = $4, related_skills = $5,
		   industry_relevance = $6, difficulty_level = $7, updated_at = NOW()`,
		entry.SkillName, entry.Category, entry.Subcategory, aliases, related, relevanceJSON, entry.DifficultyLevel,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert taxonomy entry %s: %w", entry.SkillName, err)
	}
	return nil
}

// LoadTaxonomy returns all persisted taxonomy entries ordered by skill name.
func (db *DB) LoadTaxonomy(ctx context.Context) ([]types.SkillTaxonomyEntry, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT skill_name, category, subcategory, aliases, related_skills, industry_relevance, difficulty_level
		 FROM skill_taxonomy ORDER BY skill_name`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load taxonomy: %w", err)
	}
	defer rows.Close()

	var entries []types.SkillTaxonomyEntry
	for rows.Next() {
		var e types.SkillTaxonomyEntry
		var aliases, related, relevance []byte
		if err := rows.Scan(&e.SkillName, &e.Category, &e.Subcategory, &aliases, &related, &relevance, &e.DifficultyLevel); err != nil {
			return nil, fmt.Errorf("failed to scan taxonomy entry: %w", err)
		}
		if err := decodeJSON(aliases, &e.Aliases); err != nil {
			return nil, fmt.Errorf("failed to decode aliases for %s: %w", e.SkillName, err)
		}
		if err := decodeJSON(related, &e.RelatedSkills); err != nil {
			return nil, fmt.Errorf("failed to decode related skills for %s: %w", e.SkillName, err)
		}
		if err := decodeJSON(relevance, &e.IndustryRelevance); err != nil {
			return nil, fmt.Errorf("failed to decode industry relevance for %s: %w", e.SkillName, err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read taxonomy: %w", err)
	}
	return entries, nil
}

func nonNilStrings(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func decodeJSON(data []byte, v any) error {
	if len(data) == 0 {
		return nil
	}
	return json.Unmarshal(data, v)
}
