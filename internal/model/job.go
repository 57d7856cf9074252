package model

import (
	"math"
	"slices"
)

// JobStatus is the publication state of a job posting.
type JobStatus string

const (
	JobStatusActive   JobStatus = "active"
	JobStatusArchived JobStatus = "archived"
)

// Valid reports whether s is a known status.
func (s JobStatus) Valid() bool {
	return s == JobStatusActive || s == JobStatusArchived
}

// Toggled returns the status an archive/unarchive action switches to.
func (s JobStatus) Toggled() JobStatus {
	if s == JobStatusActive {
		return JobStatusArchived
	}
	return JobStatusActive
}

// Job represents a job posting stored as a JSON file.
// Schema changes require a version bump (internal/version/version.go).
type Job struct {
	Version         int       `json:"_v,omitempty"`
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	Slug            string    `json:"slug"`
	Status          JobStatus `json:"status"`
	Location        string    `json:"location,omitempty"`
	Description     string    `json:"description,omitempty"`
	Tags            []string  `json:"tags,omitempty"`
	CreatedAtMillis int64     `json:"createdAt"`
	UpdatedAtMillis int64     `json:"updatedAt"`

	// Order is the job's position in the board ordering. It is computed
	// from the board file when jobs are loaded and never written to job files.
	Order int `json:"order,omitempty"`
}

// ItemID returns the job's identity for ordered collections.
func (j Job) ItemID() string {
	return j.ID
}

// HasTag returns true if the job carries the given tag.
func (j *Job) HasTag(tag string) bool {
	return slices.Contains(j.Tags, tag)
}

// JobPage is one page of a filtered job listing.
type JobPage struct {
	Data     []Job `json:"data"`
	Total    int   `json:"total"`
	Page     int   `json:"page"`
	PageSize int   `json:"pageSize"`
}

// TotalPages returns the number of pages needed to show Total jobs.
func (p *JobPage) TotalPages() int {
	if p.PageSize <= 0 {
		return 0
	}
	return (p.Total + p.PageSize - 1) / p.PageSize
}

// MaxPageSize caps how many jobs a single page may hold.
const MaxPageSize = 100

// JobQuery filters and paginates a job listing.
type JobQuery struct {
	Search   string    // case-insensitive match on title or tags
	Status   JobStatus // empty means any status
	Page     int       // 1-based
	PageSize int
}

// Normalized returns q with out-of-range paging clamped to usable values.
func (q JobQuery) Normalized() JobQuery {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PageSize <= 0 {
		q.PageSize = DefaultPageSize
	}
	if q.PageSize > MaxPageSize {
		q.PageSize = MaxPageSize
	}
	// Keep Offset and Offset+PageSize within int.
	if maxPage := math.MaxInt/q.PageSize - 1; q.Page > maxPage {
		q.Page = maxPage
	}
	return q
}

// Offset returns the index of the first job on the page. q must be normalized.
func (q JobQuery) Offset() int {
	return (q.Page - 1) * q.PageSize
}
