package service

import (
	"time"

	"github.com/talentflow/talentflow/internal/model"
	"github.com/talentflow/talentflow/internal/store"
	"github.com/talentflow/talentflow/internal/util"
)

// StatisticsService computes the dashboard summary.
type StatisticsService struct {
	jobStore       store.JobStore
	candidateStore store.CandidateStore
}

// NewStatisticsService creates a new statistics service.
func NewStatisticsService(jobStore store.JobStore, candidateStore store.CandidateStore) *StatisticsService {
	return &StatisticsService{
		jobStore:       jobStore,
		candidateStore: candidateStore,
	}
}

// Compute tallies jobs and candidates as of now.
func (s *StatisticsService) Compute(now time.Time) (*model.DashboardStatistics, error) {
	jobs, err := s.jobStore.List()
	if err != nil {
		return nil, err
	}
	candidates, err := s.candidateStore.List()
	if err != nil {
		return nil, err
	}

	stats := &model.DashboardStatistics{
		TotalJobs:       len(jobs),
		TotalCandidates: len(candidates),
	}
	for _, job := range jobs {
		if job.Status == model.JobStatusActive {
			stats.ActiveJobs++
		}
	}
	for _, c := range candidates {
		if util.WithinWindow(c.AppliedAtMillis, now, util.NewCandidateWindow) {
			stats.NewCandidates++
		}
		switch c.Assessment {
		case model.AssessmentAssigned:
			stats.TotalAssessments++
		case model.AssessmentCompleted:
			stats.TotalAssessments++
			stats.CompletedAssessments++
		}
		switch c.Stage {
		case model.StageInterview:
			stats.InterviewsScheduled++
		case model.StageOffer:
			stats.OffersPending++
		case model.StageHired:
			stats.HiredCandidates++
		}
	}
	return stats, nil
}
