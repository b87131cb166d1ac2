// Package schemas holds the JSON Schemas for scorer inputs.
package schemas

import "embed"

// Schema file names.
const (
	Resume          = "resume.schema.json"
	JobRequirements = "job_requirements.schema.json"
	Taxonomy        = "taxonomy.schema.json"
	Common          = "common.schema.json"
)

// FS contains every *.schema.json file in this directory.
//
//go:embed *.schema.json
var FS embed.FS
