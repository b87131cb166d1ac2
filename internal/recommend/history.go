package recommend

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/ats-scorer/internal/types"
)

// HistoryEntry records a single Generate call.
type HistoryEntry struct {
	ID                  uuid.UUID `json:"id"`
	Timestamp           time.Time `json:"timestamp"`
	InitialScore        float64   `json:"initial_score"`
	RecommendationCount int       `json:"recommendation_count"`
	WeakestAreas        []string  `json:"weakest_areas"`
	HasJobRequirements  bool      `json:"has_job_requirements"`
}

// History is an append-only, concurrency safe log of generations.
type History struct {
	mu      sync.RWMutex
	entries []HistoryEntry
}

// NewHistory creates an empty History.
func NewHistory() *History {
	return &History{}
}

// Record appends an entry, assigning an ID when it has none.
func (h *History) Record(entry HistoryEntry) {
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	h.mu.Lock()
	h.entries = append(h.entries, entry)
	h.mu.Unlock()
}

// Entries returns a copy of the log in insertion order.
func (h *History) Entries() []HistoryEntry {
	h.mu.RLock()
	defer h.mu.RUnlock()
	out := make([]HistoryEntry, len(h.entries))
	copy(out, h.entries)
	return out
}

// Statistics summarizes the log. An empty log yields zeros.
func (h *History) Statistics() types.RecommendationStatistics {
	h.mu.RLock()
	defer h.mu.RUnlock()

	stats := types.RecommendationStatistics{CommonWeakAreas: []types.WeakArea{}}
	total := len(h.entries)
	if total == 0 {
		return stats
	}

	var scoreSum float64
	var recSum, targeted int
	counts := make(map[string]int)
	for _, e := range h.entries {
		scoreSum += e.InitialScore
		recSum += e.RecommendationCount
		if e.HasJobRequirements {
			targeted++
		}
		for _, area := range e.WeakestAreas {
			counts[area]++
		}
	}

	stats.TotalGenerated = total
	stats.AverageInitialScore = scoreSum / float64(total)
	stats.AverageRecommendations = float64(recSum) / float64(total)
	stats.JobTargetedPercentage = float64(targeted) / float64(total) * 100

	for category, count := range counts {
		stats.CommonWeakAreas = append(stats.CommonWeakAreas, types.WeakArea{Category: category, Count: count})
	}
	sort.Slice(stats.CommonWeakAreas, func(i, j int) bool {
		a, b := stats.CommonWeakAreas[i], stats.CommonWeakAreas[j]
		if a.Count != b.Count {
			return a.Count > b.Count
		}
		return a.Category < b.Category
	})
	return stats
}
