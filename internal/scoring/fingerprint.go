package scoring

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"golang.org/x/crypto/blake2b"

	"github.com/jonathan/ats-scorer/internal/types"
)

var fingerprintSeparator = []byte("|")

// Fingerprint hashes the canonical JSON of the resume, the job requirements ({} when nil)
// and the weights. encoding/json writes struct fields in declaration order and map keys
// sorted, so semantically equal inputs hash identically.
func Fingerprint(resume *types.StructuredResume, job *types.JobRequirements, weights types.ScoringWeights) (string, error) {
	if resume == nil {
		return "", ErrNilResume
	}

	resumeJSON, err := canonicalJSON(resume)
	if err != nil {
		return "", fmt.Errorf("failed to canonicalize resume: %w", err)
	}

	jobJSON := []byte("{}")
	if job != nil {
		jobJSON, err = canonicalJSON(job)
		if err != nil {
			return "", fmt.Errorf("failed to canonicalize job requirements: %w", err)
		}
	}

	weightsJSON, err := canonicalJSON(weights)
	if err != nil {
		return "", fmt.Errorf("failed to canonicalize weights: %w", err)
	}

	payload := bytes.Join([][]byte{resumeJSON, jobJSON, weightsJSON}, fingerprintSeparator)
	sum := blake2b.Sum256(payload)
	return hex.EncodeToString(sum[:]), nil
}

// canonicalJSON marshals without HTML escaping so the bytes depend only on the values.
func canonicalJSON(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
