package model

import "slices"

// JobBoard holds the authoritative ordering of job postings.
// Stored as board.toml in the data directory.
type JobBoard struct {
	Schema string   `toml:"talentflow_schema" json:"talentflow_schema"`
	ID     string   `toml:"id" json:"id"`
	Name   string   `toml:"name" json:"name"`
	JobIDs []string `toml:"job_ids,omitempty" json:"job_ids,omitempty"`
}

// IndexOf returns the position of the job ID, or -1 if not found.
func (b *JobBoard) IndexOf(jobID string) int {
	return slices.Index(b.JobIDs, jobID)
}

// AppendJob adds a job ID at the end of the ordering.
func (b *JobBoard) AppendJob(jobID string) {
	b.InsertJob(jobID, -1)
}

// InsertJob adds a job ID at a specific position.
// If position is -1 or >= len(jobs), appends to end.
func (b *JobBoard) InsertJob(jobID string, position int) {
	if position < 0 || position >= len(b.JobIDs) {
		b.JobIDs = append(b.JobIDs, jobID)
		return
	}
	b.JobIDs = slices.Insert(b.JobIDs, position, jobID)
}

// RemoveJob removes a job ID from the ordering.
// Returns false if the job wasn't present.
func (b *JobBoard) RemoveJob(jobID string) bool {
	idx := b.IndexOf(jobID)
	if idx < 0 {
		return false
	}
	b.JobIDs = slices.Delete(b.JobIDs, idx, idx+1)
	return true
}
