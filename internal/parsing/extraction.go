// Package parsing turns raw resume text into a structured resume, with a regex fallback
// when the primary extractor cannot produce one.
package parsing

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/jonathan/ats-scorer/internal/types"
)

// Extractor produces a structured resume from raw resume text.
type Extractor interface {
	Extract(ctx context.Context, raw string) (*types.StructuredResume, error)
}

// ExtractorFunc adapts a function to the Extractor interface.
type ExtractorFunc func(ctx context.Context, raw string) (*types.StructuredResume, error)

// Extract calls f.
func (f ExtractorFunc) Extract(ctx context.Context, raw string) (*types.StructuredResume, error) {
	return f(ctx, raw)
}

// Extract runs primary and falls back to the regex extractor on any failure.
// A nil primary goes straight to the fallback. Context cancellation is returned as an error
// rather than masked by the fallback.
func Extract(ctx context.Context, primary Extractor, raw string) (types.Extraction, error) {
	if primary == nil {
		return types.Extraction{
			Resume:     FallbackExtract(raw),
			Provenance: types.ProvenanceFallback,
			Reason:     "no primary extractor configured",
		}, nil
	}

	resume, err := primary.Extract(ctx, raw)
	if err == nil && resume != nil {
		return types.Extraction{Resume: resume, Provenance: types.ProvenanceExtracted}, nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return types.Extraction{}, ctxErr
	}

	reason := "primary extractor returned no resume"
	if err != nil {
		reason = err.Error()
	}
	return types.Extraction{
		Resume:     FallbackExtract(raw),
		Provenance: types.ProvenanceFallback,
		Reason:     reason,
	}, nil
}

// JSONExtractor treats the raw text as a JSON document. Leading and trailing prose around
// the outermost object is ignored, which matches how model responses wrap their output.
type JSONExtractor struct{}

// Extract implements Extractor.
func (JSONExtractor) Extract(_ context.Context, raw string) (*types.StructuredResume, error) {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start == -1 || end < start {
		return nil, &ExtractionError{Message: "no JSON object found"}
	}

	var resume types.StructuredResume
	if err := json.Unmarshal([]byte(raw[start:end+1]), &resume); err != nil {
		var syntaxErr *json.SyntaxError
		if errors.As(err, &syntaxErr) {
			return nil, &ParseError{Message: "invalid JSON", Cause: err}
		}
		return nil, &ParseError{Message: "JSON does not match resume schema", Cause: err}
	}
	return &resume, nil
}
