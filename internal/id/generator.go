package id

import (
	"time"

	fid "github.com/amterp/flexid"
)

// Prefixes make ids self-describing in logs and URLs.
const (
	JobPrefix       = "job_"
	CandidatePrefix = "cand_"
)

var generator *fid.Generator

func init() {
	epoch := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	config := fid.NewConfig().
		WithEpoch(epoch).
		WithTickSize(10 * time.Millisecond).
		WithNumRandomChars(4)

	generator = fid.MustNewGenerator(config)
}

// Generate returns a new unique ID.
func Generate() string {
	return generator.MustGenerate()
}

// NewJobID returns a fresh job id.
func NewJobID() string {
	return JobPrefix + Generate()
}

// NewCandidateID returns a fresh candidate id.
func NewCandidateID() string {
	return CandidatePrefix + Generate()
}
