package store

import (
	"fmt"
	"os"

	"github.com/talentflow/talentflow/internal/config"
	tferr "github.com/talentflow/talentflow/internal/errors"
	"github.com/talentflow/talentflow/internal/model"
)

// FileCandidateStore implements CandidateStore using one JSON file per candidate.
type FileCandidateStore struct {
	paths *config.Paths
}

// NewCandidateStore creates a new candidate store.
func NewCandidateStore(paths *config.Paths) *FileCandidateStore {
	return &FileCandidateStore{paths: paths}
}

// Create writes a new candidate to disk.
func (s *FileCandidateStore) Create(candidate *model.Candidate) error {
	return writeJSON(s.paths.CandidatePath(candidate.ID), candidate)
}

// Get reads a candidate by ID.
func (s *FileCandidateStore) Get(candidateID string) (*model.Candidate, error) {
	c, err := readJSON[model.Candidate](s.paths.CandidatePath(candidateID))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, tferr.CandidateNotFound(candidateID)
		}
		return nil, fmt.Errorf("failed to read candidate %s: %w", candidateID, err)
	}
	return c, nil
}

// Update writes an existing candidate to disk.
func (s *FileCandidateStore) Update(candidate *model.Candidate) error {
	if _, err := os.Stat(s.paths.CandidatePath(candidate.ID)); os.IsNotExist(err) {
		return tferr.CandidateNotFound(candidate.ID)
	}
	return writeJSON(s.paths.CandidatePath(candidate.ID), candidate)
}

// List returns all candidates.
func (s *FileCandidateStore) List() ([]*model.Candidate, error) {
	return listJSON[model.Candidate](s.paths.CandidatesDir())
}
