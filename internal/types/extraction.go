package types

// Provenance records which extractor produced a resume.
type Provenance string

const (
	// ProvenanceExtracted means the primary extractor succeeded.
	ProvenanceExtracted Provenance = "extracted"
	// ProvenanceFallback means the regex fallback extractor was used.
	ProvenanceFallback Provenance = "fallback"
)

// Extraction is a structured resume plus where it came from. Scoring ignores provenance.
type Extraction struct {
	Resume     *StructuredResume `json:"resume"`
	Provenance Provenance        `json:"provenance"`
	Reason     string            `json:"reason,omitempty"`
}

// IsFallback reports whether the fallback extractor produced the resume.
func (e Extraction) IsFallback() bool {
	return e.Provenance == ProvenanceFallback
}

// ExtractionReport grades how complete an extracted resume is.
type ExtractionReport struct {
	CompletenessScore float64  `json:"completeness_score"`
	Issues            []string `json:"issues"`
	Recommendations   []string `json:"recommendations"`
}
