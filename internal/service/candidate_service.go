package service

import (
	"cmp"
	"fmt"
	"net/mail"
	"slices"
	"strings"

	tferr "github.com/talentflow/talentflow/internal/errors"
	"github.com/talentflow/talentflow/internal/id"
	"github.com/talentflow/talentflow/internal/model"
	"github.com/talentflow/talentflow/internal/store"
	"github.com/talentflow/talentflow/internal/util"
)

// CandidateService handles candidate applications.
type CandidateService struct {
	candidateStore store.CandidateStore
	jobStore       store.JobStore
}

// NewCandidateService creates a new candidate service.
func NewCandidateService(candidateStore store.CandidateStore, jobStore store.JobStore) *CandidateService {
	return &CandidateService{
		candidateStore: candidateStore,
		jobStore:       jobStore,
	}
}

// CreateCandidateInput contains the input for adding a candidate.
type CreateCandidateInput struct {
	Name       string
	Email      string
	JobID      string
	Stage      model.CandidateStage // empty defaults to applied
	Assessment model.AssessmentStatus
}

// Create validates and stores a new application.
func (s *CandidateService) Create(input CreateCandidateInput) (*model.Candidate, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, tferr.InvalidField("name", "cannot be empty")
	}
	email := strings.TrimSpace(input.Email)
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, tferr.InvalidField("email", fmt.Sprintf("%q is not an email address", email))
	}

	stage := input.Stage
	if stage == "" {
		stage = model.StageApplied
	}
	if !stage.Valid() {
		return nil, tferr.InvalidField("stage", fmt.Sprintf("unknown stage %q", stage))
	}
	if err := validateAssessment(input.Assessment); err != nil {
		return nil, err
	}

	if input.JobID == "" {
		return nil, tferr.InvalidField("jobId", "cannot be empty")
	}
	if _, err := s.jobStore.Get(input.JobID); err != nil {
		return nil, err
	}

	candidate := &model.Candidate{
		ID:              id.NewCandidateID(),
		Name:            name,
		Email:           email,
		JobID:           input.JobID,
		Stage:           stage,
		Assessment:      input.Assessment,
		AppliedAtMillis: util.NowMillis(),
	}
	if err := s.candidateStore.Create(candidate); err != nil {
		return nil, err
	}
	return candidate, nil
}

// Get retrieves a candidate by ID.
func (s *CandidateService) Get(candidateID string) (*model.Candidate, error) {
	return s.candidateStore.Get(candidateID)
}

// List returns candidates, newest application first. An empty jobID lists all.
func (s *CandidateService) List(jobID string) ([]*model.Candidate, error) {
	all, err := s.candidateStore.List()
	if err != nil {
		return nil, err
	}

	candidates := make([]*model.Candidate, 0, len(all))
	for _, c := range all {
		if jobID == "" || c.JobID == jobID {
			candidates = append(candidates, c)
		}
	}
	slices.SortFunc(candidates, func(a, b *model.Candidate) int {
		return cmp.Or(cmp.Compare(b.AppliedAtMillis, a.AppliedAtMillis), strings.Compare(a.ID, b.ID))
	})
	return candidates, nil
}

// SetStage moves a candidate to another pipeline stage.
func (s *CandidateService) SetStage(candidateID string, stage model.CandidateStage) (*model.Candidate, error) {
	if !stage.Valid() {
		return nil, tferr.InvalidField("stage", fmt.Sprintf("unknown stage %q", stage))
	}
	candidate, err := s.candidateStore.Get(candidateID)
	if err != nil {
		return nil, err
	}
	candidate.Stage = stage
	if err := s.candidateStore.Update(candidate); err != nil {
		return nil, err
	}
	return candidate, nil
}

// SetAssessment records assessment progress for a candidate.
func (s *CandidateService) SetAssessment(candidateID string, status model.AssessmentStatus) (*model.Candidate, error) {
	if err := validateAssessment(status); err != nil {
		return nil, err
	}
	candidate, err := s.candidateStore.Get(candidateID)
	if err != nil {
		return nil, err
	}
	candidate.Assessment = status
	if err := s.candidateStore.Update(candidate); err != nil {
		return nil, err
	}
	return candidate, nil
}

// CountByJob returns the number of applications per job ID.
func (s *CandidateService) CountByJob() (map[string]int, error) {
	all, err := s.candidateStore.List()
	if err != nil {
		return nil, err
	}
	counts := make(map[string]int)
	for _, c := range all {
		counts[c.JobID]++
	}
	return counts, nil
}

func validateAssessment(status model.AssessmentStatus) error {
	switch status {
	case model.AssessmentNone, model.AssessmentAssigned, model.AssessmentCompleted:
		return nil
	}
	return tferr.InvalidField("assessment", fmt.Sprintf("unknown status %q", status))
}
