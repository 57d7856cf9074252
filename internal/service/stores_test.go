package service

import (
	"slices"

	tferr "github.com/talentflow/talentflow/internal/errors"
	"github.com/talentflow/talentflow/internal/model"
	"github.com/talentflow/talentflow/internal/store"
)

// testJobStore implements store.JobStore in memory.
type testJobStore struct {
	jobs map[string]*model.Job
}

func newTestJobStore() *testJobStore {
	return &testJobStore{jobs: make(map[string]*model.Job)}
}

func (m *testJobStore) Create(job *model.Job) error {
	if _, ok := m.jobs[job.ID]; ok {
		return &tferr.AlreadyExistsError{Resource: "job", ID: job.ID}
	}
	stored := *job
	m.jobs[job.ID] = &stored
	return nil
}

func (m *testJobStore) Get(jobID string) (*model.Job, error) {
	job, ok := m.jobs[jobID]
	if !ok {
		return nil, tferr.JobNotFound(jobID)
	}
	copied := *job
	return &copied, nil
}

func (m *testJobStore) Update(job *model.Job) error {
	if _, ok := m.jobs[job.ID]; !ok {
		return tferr.JobNotFound(job.ID)
	}
	stored := *job
	m.jobs[job.ID] = &stored
	return nil
}

func (m *testJobStore) Delete(jobID string) error {
	if _, ok := m.jobs[jobID]; !ok {
		return tferr.JobNotFound(jobID)
	}
	delete(m.jobs, jobID)
	return nil
}

func (m *testJobStore) List() ([]*model.Job, error) {
	jobs := make([]*model.Job, 0, len(m.jobs))
	for _, job := range m.jobs {
		copied := *job
		jobs = append(jobs, &copied)
	}
	return jobs, nil
}

var _ store.JobStore = (*testJobStore)(nil)

// testBoardStore implements store.BoardStore in memory.
type testBoardStore struct {
	board   *model.JobBoard
	updates int
}

func newTestBoardStore(jobIDs ...string) *testBoardStore {
	return &testBoardStore{board: &model.JobBoard{ID: "b1", Name: "jobs", JobIDs: jobIDs}}
}

func (m *testBoardStore) Create(board *model.JobBoard) error {
	if m.board != nil {
		return &tferr.AlreadyExistsError{Resource: "board", ID: board.Name}
	}
	m.board = board
	return nil
}

func (m *testBoardStore) Get() (*model.JobBoard, error) {
	if m.board == nil {
		return nil, &tferr.NotInitializedError{}
	}
	copied := *m.board
	copied.JobIDs = slices.Clone(m.board.JobIDs)
	return &copied, nil
}

func (m *testBoardStore) Update(board *model.JobBoard) error {
	if m.board == nil {
		return &tferr.NotInitializedError{}
	}
	copied := *board
	copied.JobIDs = slices.Clone(board.JobIDs)
	m.board = &copied
	m.updates++
	return nil
}

func (m *testBoardStore) Exists() bool {
	return m.board != nil
}

var _ store.BoardStore = (*testBoardStore)(nil)

// testCandidateStore implements store.CandidateStore in memory.
type testCandidateStore struct {
	candidates map[string]*model.Candidate
}

func newTestCandidateStore() *testCandidateStore {
	return &testCandidateStore{candidates: make(map[string]*model.Candidate)}
}

func (m *testCandidateStore) Create(c *model.Candidate) error {
	stored := *c
	m.candidates[c.ID] = &stored
	return nil
}

func (m *testCandidateStore) Get(candidateID string) (*model.Candidate, error) {
	c, ok := m.candidates[candidateID]
	if !ok {
		return nil, tferr.CandidateNotFound(candidateID)
	}
	copied := *c
	return &copied, nil
}

func (m *testCandidateStore) Update(c *model.Candidate) error {
	if _, ok := m.candidates[c.ID]; !ok {
		return tferr.CandidateNotFound(c.ID)
	}
	stored := *c
	m.candidates[c.ID] = &stored
	return nil
}

func (m *testCandidateStore) List() ([]*model.Candidate, error) {
	out := make([]*model.Candidate, 0, len(m.candidates))
	for _, c := range m.candidates {
		copied := *c
		out = append(out, &copied)
	}
	return out, nil
}

var _ store.CandidateStore = (*testCandidateStore)(nil)

// testGlobalStore implements store.GlobalStore in memory.
type testGlobalStore struct {
	config  *model.GlobalConfig
	ensured bool
}

func (m *testGlobalStore) Load() (*model.GlobalConfig, error) {
	if m.config == nil {
		return &model.GlobalConfig{}, nil
	}
	return m.config, nil
}

func (m *testGlobalStore) Save(cfg *model.GlobalConfig) error {
	m.config = cfg
	return nil
}

func (m *testGlobalStore) EnsureExists() error {
	m.ensured = true
	return nil
}

var _ store.GlobalStore = (*testGlobalStore)(nil)

// addJob stores a job directly, bypassing the service.
func (m *testJobStore) addJob(id, title string, status model.JobStatus, created int64, tags ...string) {
	m.jobs[id] = &model.Job{
		ID:              id,
		Title:           title,
		Slug:            id,
		Status:          status,
		Tags:            tags,
		CreatedAtMillis: created,
		UpdatedAtMillis: created,
	}
}

// setupJobService returns a service with jobs j1..jN ordered on the board.
func setupJobService(n int) (*JobService, *testJobStore, *testBoardStore) {
	jobStore := newTestJobStore()
	var ids []string
	for i := 1; i <= n; i++ {
		id := "j" + string(rune('0'+i))
		jobStore.addJob(id, "Job "+id, model.JobStatusActive, int64(i))
		ids = append(ids, id)
	}
	boardStore := newTestBoardStore(ids...)
	return NewJobService(jobStore, boardStore), jobStore, boardStore
}

func jobIDs(jobs []*model.Job) []string {
	ids := make([]string, len(jobs))
	for i, job := range jobs {
		ids[i] = job.ID
	}
	return ids
}
