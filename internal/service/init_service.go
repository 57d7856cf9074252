package service

import (
	"fmt"

	"github.com/talentflow/talentflow/internal/id"
	"github.com/talentflow/talentflow/internal/model"
	"github.com/talentflow/talentflow/internal/store"
)

const DefaultBoardName = "jobs"

// InitService handles data directory initialization.
type InitService struct {
	boardStore  store.BoardStore
	globalStore store.GlobalStore
}

// NewInitService creates a new init service.
func NewInitService(boardStore store.BoardStore, globalStore store.GlobalStore) *InitService {
	return &InitService{
		boardStore:  boardStore,
		globalStore: globalStore,
	}
}

// Initialize creates an empty job ordering and makes sure the global config
// exists. Returns false if the data directory was already initialized.
func (s *InitService) Initialize(name string) (bool, error) {
	if name == "" {
		name = DefaultBoardName
	}

	if err := s.globalStore.EnsureExists(); err != nil {
		return false, fmt.Errorf("failed to create global config: %w", err)
	}

	if s.boardStore.Exists() {
		return false, nil
	}

	board := &model.JobBoard{
		ID:   id.Generate(),
		Name: name,
	}
	if err := s.boardStore.Create(board); err != nil {
		return false, fmt.Errorf("failed to create job ordering: %w", err)
	}
	return true, nil
}

// sampleJob is one seeded posting with the applicants it starts with.
type sampleJob struct {
	input      CreateJobInput
	candidates []CreateCandidateInput
}

var sampleJobs = []sampleJob{
	{
		input: CreateJobInput{
			Title:       "Senior Frontend Engineer",
			Location:    "Remote",
			Description: "Build and own the **hiring dashboard** UI.\n\n- React\n- TypeScript",
			Tags:        []string{"frontend", "react", "remote"},
		},
		candidates: []CreateCandidateInput{
			{Name: "Ava Patel", Email: "ava.patel@example.com", Stage: model.StageInterview, Assessment: model.AssessmentCompleted},
			{Name: "Noah Kim", Email: "noah.kim@example.com", Stage: model.StageScreen, Assessment: model.AssessmentAssigned},
		},
	},
	{
		input: CreateJobInput{
			Title:       "Backend Engineer",
			Location:    "Berlin",
			Description: "Design APIs for job postings and candidate pipelines.",
			Tags:        []string{"backend", "go"},
		},
		candidates: []CreateCandidateInput{
			{Name: "Liam Chen", Email: "liam.chen@example.com", Stage: model.StageOffer, Assessment: model.AssessmentCompleted},
		},
	},
	{
		input: CreateJobInput{
			Title:       "Product Designer",
			Location:    "New York",
			Description: "Shape the candidate and recruiter experience end to end.",
			Tags:        []string{"design", "ux"},
		},
		candidates: []CreateCandidateInput{
			{Name: "Mia Rossi", Email: "mia.rossi@example.com", Stage: model.StageHired, Assessment: model.AssessmentCompleted},
			{Name: "Ethan Brooks", Email: "ethan.brooks@example.com"},
		},
	},
	{
		input: CreateJobInput{
			Title:    "Data Analyst",
			Location: "London",
			Tags:     []string{"data", "sql"},
			Status:   model.JobStatusArchived,
		},
	},
}

// Seed fills an initialized, empty data directory with sample jobs and
// candidates. Returns the number of jobs created.
func Seed(jobs *JobService, candidates *CandidateService) (int, error) {
	existing, err := jobs.Ordered()
	if err != nil {
		return 0, err
	}
	if len(existing) > 0 {
		return 0, nil
	}

	for i, sample := range sampleJobs {
		job, err := jobs.Create(sample.input)
		if err != nil {
			return i, fmt.Errorf("failed to seed job %q: %w", sample.input.Title, err)
		}
		for _, input := range sample.candidates {
			input.JobID = job.ID
			if _, err := candidates.Create(input); err != nil {
				return i + 1, fmt.Errorf("failed to seed candidate %q: %w", input.Name, err)
			}
		}
	}
	return len(sampleJobs), nil
}
