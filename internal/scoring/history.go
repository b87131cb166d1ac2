package scoring

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/ats-scorer/internal/types"
)

// recentWindow is how many of the latest scores feed RecentAverage.
const recentWindow = 10

// HistoryEntry records one Score call. It holds no resume content.
type HistoryEntry struct {
	ID                 uuid.UUID                `json:"id"`
	Timestamp          time.Time                `json:"timestamp"`
	Fingerprint        string                   `json:"fingerprint"`
	OverallScore       float64                  `json:"overall_score"`
	CategoryScores     map[string]float64       `json:"category_scores"`
	Industry           string                   `json:"industry"`
	HadJobRequirements bool                     `json:"had_job_requirements"`
	ConfidenceInterval types.ConfidenceInterval `json:"confidence_interval"`
	CacheHit           bool                     `json:"cache_hit"`
}

// History is the append-only scoring log. It is separate from the consistency cache.
type History struct {
	mu      sync.RWMutex
	entries []HistoryEntry
}

// NewHistory returns an empty History.
func NewHistory() *History {
	return &History{}
}

// Record appends entry, assigning an ID when missing.
func (h *History) Record(entry HistoryEntry) {
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.entries = append(h.entries, entry)
}

// Entries returns a copy of the log, oldest first.
func (h *History) Entries() []HistoryEntry {
	h.mu.RLock()
	defer h.mu.RUnlock()
	out := make([]HistoryEntry, len(h.entries))
	copy(out, h.entries)
	return out
}

// Len returns the number of recorded calls.
func (h *History) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.entries)
}

// Statistics summarizes the log. ConsistencyRate is unique fingerprints per call as a
// percentage, so repeated scoring of the same input lowers it.
func (h *History) Statistics() types.ScoringStatistics {
	h.mu.RLock()
	defer h.mu.RUnlock()

	stats := types.ScoringStatistics{
		Distribution: map[string]int{
			types.BucketExcellent:        0,
			types.BucketGood:             0,
			types.BucketFair:             0,
			types.BucketNeedsImprovement: 0,
		},
	}
	total := len(h.entries)
	if total == 0 {
		return stats
	}

	sum := 0.0
	unique := make(map[string]bool)
	for _, e := range h.entries {
		sum += e.OverallScore
		unique[e.Fingerprint] = true
		stats.Distribution[bucket(e.OverallScore)]++
	}

	recent := h.entries
	if len(recent) > recentWindow {
		recent = recent[len(recent)-recentWindow:]
	}
	recentSum := 0.0
	for _, e := range recent {
		recentSum += e.OverallScore
	}

	stats.TotalScored = total
	stats.AverageScore = sum / float64(total)
	stats.ConsistencyRate = float64(len(unique)) / float64(total) * 100
	stats.RecentAverage = recentSum / float64(len(recent))
	return stats
}

func bucket(score float64) string {
	switch {
	case score >= 90:
		return types.BucketExcellent
	case score >= 75:
		return types.BucketGood
	case score >= 60:
		return types.BucketFair
	default:
		return types.BucketNeedsImprovement
	}
}
