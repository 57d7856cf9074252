package cli

import (
	"encoding/json"
	"fmt"

	"github.com/talentflow/talentflow/internal/model"
)

// jobJson represents a job with all fields for JSON output.
// This exists because model.Job drops order 0 via omitempty and scripts need
// the position of the first job too.
//
// SYNC WARNING: This struct must stay in sync with model.Job fields.
// If you add fields to model.Job, add them here too. See TestJobJsonFieldSync.
type jobJson struct {
	// Note: Version (_v) is intentionally omitted - it's an internal schema version
	ID              string          `json:"id"`
	Title           string          `json:"title"`
	Slug            string          `json:"slug"`
	Status          model.JobStatus `json:"status"`
	Location        string          `json:"location,omitempty"`
	Description     string          `json:"description,omitempty"`
	Tags            []string        `json:"tags"`
	CreatedAtMillis int64           `json:"created_at_millis"`
	UpdatedAtMillis int64           `json:"updated_at_millis"`
	Order           int             `json:"order"`
}

func jobToJson(j *model.Job) jobJson {
	tags := j.Tags
	if tags == nil {
		tags = []string{}
	}
	return jobJson{
		ID:              j.ID,
		Title:           j.Title,
		Slug:            j.Slug,
		Status:          j.Status,
		Location:        j.Location,
		Description:     j.Description,
		Tags:            tags,
		CreatedAtMillis: j.CreatedAtMillis,
		UpdatedAtMillis: j.UpdatedAtMillis,
		Order:           j.Order,
	}
}

func jobsToJson(jobs []model.Job) []jobJson {
	result := make([]jobJson, 0, len(jobs))
	for i := range jobs {
		result = append(result, jobToJson(&jobs[i]))
	}
	return result
}

// JobOutput wraps a single job for JSON output.
type JobOutput struct {
	Job jobJson `json:"job"`
}

// NewJobOutput creates a JobOutput from a model.Job.
func NewJobOutput(job *model.Job) JobOutput {
	return JobOutput{Job: jobToJson(job)}
}

// JobDetailOutput wraps a job and its applicants for JSON output.
type JobDetailOutput struct {
	Job        jobJson           `json:"job"`
	Candidates []model.Candidate `json:"candidates"`
}

// NewJobDetailOutput creates a JobDetailOutput.
// Always returns an empty array (not null) when there are no candidates.
func NewJobDetailOutput(job *model.Job, candidates []model.Candidate) JobDetailOutput {
	if candidates == nil {
		candidates = []model.Candidate{}
	}
	return JobDetailOutput{Job: jobToJson(job), Candidates: candidates}
}

// JobListOutput wraps one page of jobs for JSON output.
type JobListOutput struct {
	Jobs       []jobJson      `json:"jobs"`
	Applicants map[string]int `json:"applicants"`
	Total      int            `json:"total"`
	Page       int            `json:"page"`
	PageSize   int            `json:"page_size"`
	TotalPages int            `json:"total_pages"`
}

// NewJobListOutput creates a JobListOutput from a page and applicant counts.
// Always returns an empty array (not null) when there are no jobs.
func NewJobListOutput(page *model.JobPage, applicants map[string]int) JobListOutput {
	if applicants == nil {
		applicants = map[string]int{}
	}
	return JobListOutput{
		Jobs:       jobsToJson(page.Data),
		Applicants: applicants,
		Total:      page.Total,
		Page:       page.Page,
		PageSize:   page.PageSize,
		TotalPages: page.TotalPages(),
	}
}

// MoveOutput reports the outcome of a reorder.
type MoveOutput struct {
	JobID     string    `json:"job_id"`
	From      int       `json:"from"`
	To        int       `json:"to"`
	Position  int       `json:"position,omitempty"` // 1-based, 0 when off the page
	Committed bool      `json:"committed"`
	Error     string    `json:"error,omitempty"`
	Jobs      []jobJson `json:"jobs"`
}

// NewMoveOutput creates a MoveOutput from a move result. Positions are the
// 1-based view positions the user typed.
func NewMoveOutput(result *moveResult) MoveOutput {
	output := MoveOutput{
		JobID:     result.JobID,
		From:      result.From + 1,
		To:        result.To + 1,
		Position:  result.Position + 1,
		Committed: result.Err == nil,
		Jobs:      jobsToJson(result.Jobs),
	}
	if result.Err != nil {
		output.Error = result.Err.Error()
	}
	return output
}

// CandidatesOutput wraps a list of candidates for JSON output.
type CandidatesOutput struct {
	Candidates []model.Candidate `json:"candidates"`
}

// NewCandidatesOutput creates a CandidatesOutput.
// Always returns an empty array (not null) when there are no candidates.
func NewCandidatesOutput(candidates []model.Candidate) CandidatesOutput {
	if candidates == nil {
		candidates = []model.Candidate{}
	}
	return CandidatesOutput{Candidates: candidates}
}

// CandidateOutput wraps a single candidate for JSON output.
type CandidateOutput struct {
	Candidate *model.Candidate `json:"candidate"`
}

// InitOutput reports what init did.
type InitOutput struct {
	DataDir string `json:"data_dir"`
	Created bool   `json:"created"`
	Seeded  int    `json:"seeded_jobs"`
}

// printJson marshals the value as indented JSON and prints it to stdout.
func printJson(v any) error {
	output, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(output))
	return nil
}

// warnJsonNotSupported prints a warning to stderr when --json is used on an unsupported command.
func warnJsonNotSupported(command string) {
	PrintWarning("--json is not supported for '%s' (flag ignored)", command)
}
