package model

// Request and response bodies shared by the HTTP API and its client.

// CreateJobRequest is the body of POST /jobs.
type CreateJobRequest struct {
	Title       string    `json:"title"`
	Location    string    `json:"location,omitempty"`
	Description string    `json:"description,omitempty"`
	Tags        []string  `json:"tags,omitempty"`
	Status      JobStatus `json:"status,omitempty"`
}

// UpdateJobRequest is the body of PATCH /jobs/{id}. Nil fields are left alone.
type UpdateJobRequest struct {
	Title       *string    `json:"title,omitempty"`
	Location    *string    `json:"location,omitempty"`
	Description *string    `json:"description,omitempty"`
	Tags        *[]string  `json:"tags,omitempty"`
	Status      *JobStatus `json:"status,omitempty"`
}

// ReorderRequest is the body of PATCH /jobs/{id}/reorder. Both positions are
// indices into the full job ordering.
type ReorderRequest struct {
	FromOrder int `json:"fromOrder"`
	ToOrder   int `json:"toOrder"`
}

// CreateCandidateRequest is the body of POST /candidates.
type CreateCandidateRequest struct {
	Name       string           `json:"name"`
	Email      string           `json:"email"`
	JobID      string           `json:"jobId"`
	Stage      CandidateStage   `json:"stage,omitempty"`
	Assessment AssessmentStatus `json:"assessment,omitempty"`
}

// UpdateCandidateRequest is the body of PATCH /candidates/{id}.
type UpdateCandidateRequest struct {
	Stage      *CandidateStage   `json:"stage,omitempty"`
	Assessment *AssessmentStatus `json:"assessment,omitempty"`
}

// CandidateList is the response of GET /candidates.
type CandidateList struct {
	Data  []Candidate `json:"data"`
	Total int         `json:"total"`
}
