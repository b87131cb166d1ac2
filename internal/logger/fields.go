package logger

import (
	"strings"

	"go.uber.org/zap"
)

const (
	// FieldFingerprint is the key for a shortened scoring fingerprint.
	FieldFingerprint = "fingerprint"
	// FieldIndustry is the key for the benchmark industry.
	FieldIndustry = "industry"
	// FieldTenant is the key for the tenant an engine belongs to.
	FieldTenant = "tenant"
	// FieldOverallScore is the key for the overall score.
	FieldOverallScore = "overall_score"
	// FieldCacheHit is the key that marks consistency cache hits.
	FieldCacheHit = "cache_hit"
)

// fingerprintPrefix is how much of a fingerprint is logged.
const fingerprintPrefix = 12

// StringField describes a string-valued structured logging field.
type StringField struct {
	Key   string
	Value string
}

// StringFields converts the provided key/value pairs into zap fields, trimming
// whitespace and omitting entries with empty keys or values.
func StringFields(fields ...StringField) []zap.Field {
	result := make([]zap.Field, 0, len(fields))
	for _, field := range fields {
		key := strings.TrimSpace(field.Key)
		if key == "" {
			continue
		}

		value := strings.TrimSpace(field.Value)
		if value == "" {
			continue
		}

		result = append(result, zap.String(key, value))
	}

	return result
}

// WithFields safely attaches the provided fields to the logger.
// A nil logger becomes a no-op logger.
func WithFields(logger *zap.Logger, fields ...zap.Field) *zap.Logger {
	logger = OrNop(logger)
	if len(fields) == 0 {
		return logger
	}
	return logger.With(fields...)
}

// Fingerprint returns a field holding the first characters of a fingerprint.
// Fingerprints identify inputs without exposing resume content.
func Fingerprint(hash string) zap.Field {
	if len(hash) > fingerprintPrefix {
		hash = hash[:fingerprintPrefix]
	}
	return zap.String(FieldFingerprint, hash)
}

// ScoreFields describes a scoring outcome with numeric values and identifiers only.
func ScoreFields(hash, industry string, overall float64, cacheHit bool) []zap.Field {
	fields := []zap.Field{Fingerprint(hash)}
	fields = append(fields, StringFields(StringField{Key: FieldIndustry, Value: industry})...)
	return append(fields,
		zap.Float64(FieldOverallScore, overall),
		zap.Bool(FieldCacheHit, cacheHit),
	)
}
