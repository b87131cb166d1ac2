// Package skills provides the skill taxonomy, skill-gap analysis and industry skill patterns.
package skills

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/jonathan/ats-scorer/internal/types"
)

// minSubstringLen is the shortest common substring accepted by the substring step,
// so that one-letter names like "R" or "C" do not resolve to unrelated entries.
const minSubstringLen = 2

// Taxonomy is a case-insensitive index of canonical skills. It is safe for concurrent use.
// A nil *Taxonomy behaves as an empty taxonomy.
type Taxonomy struct {
	mu      sync.RWMutex
	entries map[string]types.SkillTaxonomyEntry
	keys    []string // sorted lowercase skill names
}

// NewTaxonomy builds a taxonomy from entries. Later entries replace earlier ones with the same name.
func NewTaxonomy(entries ...types.SkillTaxonomyEntry) *Taxonomy {
	t := &Taxonomy{entries: make(map[string]types.SkillTaxonomyEntry, len(entries))}
	for _, e := range entries {
		t.put(e)
	}
	return t
}

// DefaultTaxonomy returns a taxonomy seeded with the built-in entries.
func DefaultTaxonomy() *Taxonomy {
	return NewTaxonomy(DefaultEntries()...)
}

// LoadTaxonomyFile reads a JSON array of taxonomy entries.
func LoadTaxonomyFile(path string) ([]types.SkillTaxonomyEntry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read taxonomy file: %w", err)
	}
	var entries []types.SkillTaxonomyEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse taxonomy file: %w", err)
	}
	for i := range entries {
		if err := entries[i].Validate(); err != nil {
			return nil, fmt.Errorf("invalid taxonomy entry %d: %w", i, err)
		}
	}
	return entries, nil
}

// Add validates and inserts an entry, replacing any entry with the same name.
func (t *Taxonomy) Add(entry types.SkillTaxonomyEntry) error {
	if err := entry.Validate(); err != nil {
		return fmt.Errorf("invalid taxonomy entry: %w", err)
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.put(entry)
	return nil
}

func (t *Taxonomy) put(entry types.SkillTaxonomyEntry) {
	key := normalizeKey(entry.SkillName)
	if key == "" {
		return
	}
	if entry.DifficultyLevel == "" {
		entry.DifficultyLevel = types.DifficultyIntermediate
	}
	if _, exists := t.entries[key]; !exists {
		idx := sort.SearchStrings(t.keys, key)
		t.keys = append(t.keys, "")
		copy(t.keys[idx+1:], t.keys[idx:])
		t.keys[idx] = key
	}
	t.entries[key] = entry
}

// Len returns the number of entries.
func (t *Taxonomy) Len() int {
	if t == nil {
		return 0
	}
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.entries)
}

// Get returns the entry whose canonical name equals name, ignoring case.
func (t *Taxonomy) Get(name string) (types.SkillTaxonomyEntry, bool) {
	if t == nil {
		return types.SkillTaxonomyEntry{}, false
	}
	t.mu.RLock()
	defer t.mu.RUnlock()
	e, ok := t.entries[normalizeKey(name)]
	return e, ok
}

// Related returns the related skills of the named entry.
func (t *Taxonomy) Related(name string) []string {
	e, ok := t.Get(name)
	if !ok {
		return nil
	}
	return e.RelatedSkills
}

// Entries returns all entries in alphabetical key order.
func (t *Taxonomy) Entries() []types.SkillTaxonomyEntry {
	if t == nil {
		return nil
	}
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]types.SkillTaxonomyEntry, 0, len(t.keys))
	for _, k := range t.keys {
		out = append(out, t.entries[k])
	}
	return out
}

// Match resolves a skill name to a taxonomy entry. Resolution order:
//  1. exact case-insensitive key
//  2. alias, scanning entries in alphabetical key order
//  3. substring in either direction, preferring the longest common substring,
//     then the alphabetically first key
func (t *Taxonomy) Match(skill string) (types.SkillTaxonomyEntry, bool) {
	if t == nil {
		return types.SkillTaxonomyEntry{}, false
	}
	input := normalizeKey(skill)
	if input == "" {
		return types.SkillTaxonomyEntry{}, false
	}

	t.mu.RLock()
	defer t.mu.RUnlock()

	if e, ok := t.entries[input]; ok {
		return e, true
	}

	for _, k := range t.keys {
		for _, alias := range t.entries[k].Aliases {
			if normalizeKey(alias) == input {
				return t.entries[k], true
			}
		}
	}

	best, bestLen := "", 0
	for _, k := range t.keys {
		var common int
		switch {
		case strings.Contains(k, input):
			common = len(input)
		case strings.Contains(input, k):
			common = len(k)
		default:
			continue
		}
		if common >= minSubstringLen && common > bestLen {
			best, bestLen = k, common
		}
	}
	if best == "" {
		return types.SkillTaxonomyEntry{}, false
	}
	return t.entries[best], true
}

// MatchAll resolves each skill, keyed by the input spelling. Unmatched skills are omitted.
func (t *Taxonomy) MatchAll(skills []string) map[string]types.SkillTaxonomyEntry {
	out := make(map[string]types.SkillTaxonomyEntry)
	for _, s := range skills {
		if e, ok := t.Match(s); ok {
			out[s] = e
		}
	}
	return out
}

func normalizeKey(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
