package store

import (
	"fmt"
	"os"

	"github.com/talentflow/talentflow/internal/config"
	tferr "github.com/talentflow/talentflow/internal/errors"
	"github.com/talentflow/talentflow/internal/model"
	"github.com/talentflow/talentflow/internal/version"
)

// FileJobStore implements JobStore using one JSON file per job.
type FileJobStore struct {
	paths *config.Paths
}

// NewJobStore creates a new job store.
func NewJobStore(paths *config.Paths) *FileJobStore {
	return &FileJobStore{paths: paths}
}

// Create writes a new job to disk.
func (s *FileJobStore) Create(job *model.Job) error {
	path := s.paths.JobPath(job.ID)
	if _, err := os.Stat(path); err == nil {
		return &tferr.AlreadyExistsError{Resource: "job", ID: job.ID}
	}
	return s.write(job)
}

// Get reads a job from disk by ID.
func (s *FileJobStore) Get(jobID string) (*model.Job, error) {
	path := s.paths.JobPath(jobID)
	job, err := readJSON[model.Job](path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, tferr.JobNotFound(jobID)
		}
		return nil, fmt.Errorf("failed to read job %s: %w", jobID, err)
	}
	if job.Version != version.CurrentJobVersion {
		return nil, version.InvalidJobVersion(path, job.Version)
	}
	return job, nil
}

// Update writes an existing job to disk.
func (s *FileJobStore) Update(job *model.Job) error {
	if _, err := os.Stat(s.paths.JobPath(job.ID)); os.IsNotExist(err) {
		return tferr.JobNotFound(job.ID)
	}
	if err := s.write(job); err != nil {
		return fmt.Errorf("failed to update job %s: %w", job.ID, err)
	}
	return nil
}

// Delete removes a job from disk.
func (s *FileJobStore) Delete(jobID string) error {
	if err := os.Remove(s.paths.JobPath(jobID)); err != nil {
		if os.IsNotExist(err) {
			return tferr.JobNotFound(jobID)
		}
		return fmt.Errorf("failed to delete job %s: %w", jobID, err)
	}
	return nil
}

// List returns all jobs in no particular order.
func (s *FileJobStore) List() ([]*model.Job, error) {
	return listJSON[model.Job](s.paths.JobsDir())
}

func (s *FileJobStore) write(job *model.Job) error {
	// Order belongs to the board, not the job file.
	stored := *job
	stored.Version = version.CurrentJobVersion
	stored.Order = 0
	return writeJSON(s.paths.JobPath(job.ID), &stored)
}
