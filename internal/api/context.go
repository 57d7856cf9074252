package api

import (
	"fmt"
	"os"

	"github.com/talentflow/talentflow/internal/config"
	"github.com/talentflow/talentflow/internal/service"
	"github.com/talentflow/talentflow/internal/store"
)

// DataContext bundles the stores and services the HTTP handlers need for one
// data directory.
type DataContext struct {
	Paths             *config.Paths
	BoardStore        store.BoardStore
	JobStore          store.JobStore
	CandidateStore    store.CandidateStore
	JobService        *service.JobService
	CandidateService  *service.CandidateService
	StatisticsService *service.StatisticsService
}

// BuildDataContext wires stores and services for the data directory under
// root. dataDir overrides the default .talentflow location.
//
// No disk writes happen here; callers initialize the directory first.
func BuildDataContext(root, dataDir string) (*DataContext, error) {
	if root == "" {
		return nil, fmt.Errorf("root directory is required")
	}
	if _, err := os.Stat(root); err != nil {
		return nil, fmt.Errorf("root directory does not exist: %s", root)
	}

	paths := config.NewPaths(root, dataDir)
	return NewDataContext(paths,
		store.NewBoardStore(paths),
		store.NewJobStore(paths),
		store.NewCandidateStore(paths),
	), nil
}

// NewDataContext wires services around the given stores.
func NewDataContext(paths *config.Paths, boards store.BoardStore, jobs store.JobStore, candidates store.CandidateStore) *DataContext {
	return &DataContext{
		Paths:             paths,
		BoardStore:        boards,
		JobStore:          jobs,
		CandidateStore:    candidates,
		JobService:        service.NewJobService(jobs, boards),
		CandidateService:  service.NewCandidateService(candidates, jobs),
		StatisticsService: service.NewStatisticsService(jobs, candidates),
	}
}
