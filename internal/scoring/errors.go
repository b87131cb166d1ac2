package scoring

import "errors"

// ErrNilResume is returned when Score is called without a resume.
var ErrNilResume = errors.New("resume is required")
