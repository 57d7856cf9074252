package store

import "github.com/talentflow/talentflow/internal/model"

// JobStore handles job posting persistence.
type JobStore interface {
	Create(job *model.Job) error
	Get(jobID string) (*model.Job, error)
	Update(job *model.Job) error
	Delete(jobID string) error
	List() ([]*model.Job, error)
}

// BoardStore handles the authoritative job ordering.
type BoardStore interface {
	Create(board *model.JobBoard) error
	Get() (*model.JobBoard, error)
	Update(board *model.JobBoard) error
	Exists() bool
}

// CandidateStore handles candidate persistence.
type CandidateStore interface {
	Create(candidate *model.Candidate) error
	Get(candidateID string) (*model.Candidate, error)
	Update(candidate *model.Candidate) error
	List() ([]*model.Candidate, error)
}

// GlobalStore handles global config persistence.
type GlobalStore interface {
	Load() (*model.GlobalConfig, error)
	Save(config *model.GlobalConfig) error
	EnsureExists() error
}
