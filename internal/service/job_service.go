package service

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
	"sync"

	tferr "github.com/talentflow/talentflow/internal/errors"
	"github.com/talentflow/talentflow/internal/id"
	"github.com/talentflow/talentflow/internal/model"
	"github.com/talentflow/talentflow/internal/reorder"
	"github.com/talentflow/talentflow/internal/store"
	"github.com/talentflow/talentflow/internal/util"
)

// JobService handles job posting operations. Writes that touch the board
// ordering are serialized so concurrent reorders see a consistent board.
type JobService struct {
	mu         sync.Mutex
	jobStore   store.JobStore
	boardStore store.BoardStore
}

// NewJobService creates a new job service.
func NewJobService(jobStore store.JobStore, boardStore store.BoardStore) *JobService {
	return &JobService{
		jobStore:   jobStore,
		boardStore: boardStore,
	}
}

// CreateJobInput contains the input for creating a job.
type CreateJobInput struct {
	Title       string
	Location    string
	Description string
	Tags        []string
	Status      model.JobStatus // empty defaults to active
}

// UpdateJobInput contains the input for editing a job.
// Pointer fields indicate "set this field"; nil means "don't change".
type UpdateJobInput struct {
	Title       *string
	Location    *string
	Description *string
	Tags        *[]string
	Status      *model.JobStatus
}

// Create validates the input, writes the job and appends it to the ordering.
func (s *JobService) Create(input CreateJobInput) (*model.Job, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, tferr.InvalidField("title", "cannot be empty")
	}
	slug := util.Slugify(title)
	if slug == "" {
		return nil, tferr.InvalidField("title", "must contain at least one letter or digit")
	}

	status := input.Status
	if status == "" {
		status = model.JobStatusActive
	}
	if !status.Valid() {
		return nil, tferr.InvalidField("status", fmt.Sprintf("unknown status %q", status))
	}

	if err := s.checkSlugFree(slug, ""); err != nil {
		return nil, err
	}

	board, err := s.boardStore.Get()
	if err != nil {
		return nil, err
	}

	now := util.NowMillis()
	job := &model.Job{
		ID:              id.NewJobID(),
		Title:           title,
		Slug:            slug,
		Status:          status,
		Location:        strings.TrimSpace(input.Location),
		Description:     input.Description,
		Tags:            util.NormalizeTags(input.Tags),
		CreatedAtMillis: now,
		UpdatedAtMillis: now,
	}

	if err := s.jobStore.Create(job); err != nil {
		return nil, err
	}

	board.AppendJob(job.ID)
	if err := s.boardStore.Update(board); err != nil {
		return nil, fmt.Errorf("job %s created but ordering not saved: %w", job.ID, err)
	}

	job.Order = len(board.JobIDs) - 1
	return job, nil
}

// Get retrieves a job by ID with its Order populated.
func (s *JobService) Get(jobID string) (*model.Job, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	job, err := s.jobStore.Get(jobID)
	if err != nil {
		return nil, err
	}
	board, err := s.boardStore.Get()
	if err != nil {
		return nil, err
	}
	if idx := board.IndexOf(job.ID); idx >= 0 {
		job.Order = idx
	}
	return job, nil
}

// Update applies the non-nil fields of input.
func (s *JobService) Update(jobID string, input UpdateJobInput) (*model.Job, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	job, err := s.jobStore.Get(jobID)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return nil, tferr.InvalidField("title", "cannot be empty")
		}
		slug := util.Slugify(title)
		if slug == "" {
			return nil, tferr.InvalidField("title", "must contain at least one letter or digit")
		}
		if slug != job.Slug {
			if err := s.checkSlugFree(slug, job.ID); err != nil {
				return nil, err
			}
		}
		job.Title = title
		job.Slug = slug
	}
	if input.Location != nil {
		job.Location = strings.TrimSpace(*input.Location)
	}
	if input.Description != nil {
		job.Description = *input.Description
	}
	if input.Tags != nil {
		job.Tags = util.NormalizeTags(*input.Tags)
	}
	if input.Status != nil {
		if !input.Status.Valid() {
			return nil, tferr.InvalidField("status", fmt.Sprintf("unknown status %q", *input.Status))
		}
		job.Status = *input.Status
	}

	job.UpdatedAtMillis = util.NowMillis()
	if err := s.jobStore.Update(job); err != nil {
		return nil, err
	}

	board, err := s.boardStore.Get()
	if err != nil {
		return nil, err
	}
	if idx := board.IndexOf(job.ID); idx >= 0 {
		job.Order = idx
	}
	return job, nil
}

// SetStatus archives or unarchives a job.
func (s *JobService) SetStatus(jobID string, status model.JobStatus) (*model.Job, error) {
	return s.Update(jobID, UpdateJobInput{Status: &status})
}

// Delete removes a job and its place in the ordering.
func (s *JobService) Delete(jobID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	board, err := s.boardStore.Get()
	if err != nil {
		return err
	}
	if err := s.jobStore.Delete(jobID); err != nil {
		return err
	}
	if board.RemoveJob(jobID) {
		if err := s.boardStore.Update(board); err != nil {
			return fmt.Errorf("job %s deleted but ordering not saved: %w", jobID, err)
		}
	}
	return nil
}

// Ordered returns every job in board order with Order populated.
func (s *JobService) Ordered() ([]*model.Job, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	jobs, _, err := s.ordered()
	return jobs, err
}

// List filters the ordered jobs and returns one page. Order on each job is
// its position in the full ordering, not in the page.
func (s *JobService) List(query model.JobQuery) (*model.JobPage, error) {
	q := query.Normalized()
	if q.Status != "" && !q.Status.Valid() {
		return nil, tferr.InvalidField("status", fmt.Sprintf("unknown status %q", q.Status))
	}

	s.mu.Lock()
	jobs, _, err := s.ordered()
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}

	search := strings.ToLower(strings.TrimSpace(q.Search))
	var matched []model.Job
	for _, job := range jobs {
		if q.Status != "" && job.Status != q.Status {
			continue
		}
		if search != "" && !matchesSearch(job, search) {
			continue
		}
		matched = append(matched, *job)
	}

	page := &model.JobPage{
		Data:     []model.Job{},
		Total:    len(matched),
		Page:     q.Page,
		PageSize: q.PageSize,
	}
	start := q.Offset()
	if start < len(matched) {
		end := min(start+q.PageSize, len(matched))
		page.Data = matched[start:end]
	}
	return page, nil
}

// Reorder moves a job from fromOrder to toOrder in the authoritative ordering.
// fromOrder must still hold the job: if another client moved it in the
// meantime the request is rejected with a ConflictError and nothing changes.
func (s *JobService) Reorder(jobID string, fromOrder, toOrder int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, board, err := s.ordered()
	if err != nil {
		return err
	}

	current := board.IndexOf(jobID)
	if current < 0 {
		return tferr.JobNotFound(jobID)
	}
	if fromOrder < 0 || fromOrder >= len(board.JobIDs) {
		return tferr.InvalidField("fromOrder", fmt.Sprintf("%d out of range [0,%d)", fromOrder, len(board.JobIDs)))
	}
	if toOrder < 0 || toOrder >= len(board.JobIDs) {
		return tferr.InvalidField("toOrder", fmt.Sprintf("%d out of range [0,%d)", toOrder, len(board.JobIDs)))
	}
	if current != fromOrder {
		return tferr.OrderConflict(jobID, fromOrder)
	}
	if fromOrder == toOrder {
		return nil
	}

	moved, err := reorder.Move(board.JobIDs, fromOrder, toOrder)
	if err != nil {
		return err
	}
	board.JobIDs = moved
	return s.boardStore.Update(board)
}

// ordered loads jobs in board order. Board entries without a job file are
// dropped and job files missing from the board are appended oldest first;
// the repaired board is saved so Order always matches a board index.
// Caller must hold s.mu.
func (s *JobService) ordered() ([]*model.Job, *model.JobBoard, error) {
	board, err := s.boardStore.Get()
	if err != nil {
		return nil, nil, err
	}
	all, err := s.jobStore.List()
	if err != nil {
		return nil, nil, err
	}

	byID := make(map[string]*model.Job, len(all))
	for _, job := range all {
		byID[job.ID] = job
	}

	jobs := make([]*model.Job, 0, len(all))
	placed := make(map[string]bool, len(all))
	for _, jobID := range board.JobIDs {
		job, ok := byID[jobID]
		if !ok || placed[jobID] {
			continue
		}
		placed[jobID] = true
		jobs = append(jobs, job)
	}

	var orphans []*model.Job
	for _, job := range all {
		if !placed[job.ID] {
			orphans = append(orphans, job)
		}
	}
	slices.SortFunc(orphans, func(a, b *model.Job) int {
		return cmp.Or(cmp.Compare(a.CreatedAtMillis, b.CreatedAtMillis), strings.Compare(a.ID, b.ID))
	})
	jobs = append(jobs, orphans...)

	ids := make([]string, len(jobs))
	for i, job := range jobs {
		job.Order = i
		ids[i] = job.ID
	}
	if !slices.Equal(ids, board.JobIDs) {
		board.JobIDs = ids
		if err := s.boardStore.Update(board); err != nil {
			return nil, nil, fmt.Errorf("failed to repair job ordering: %w", err)
		}
	}
	return jobs, board, nil
}

// checkSlugFree returns AlreadyExists if another job (not exceptID) uses slug.
func (s *JobService) checkSlugFree(slug, exceptID string) error {
	jobs, err := s.jobStore.List()
	if err != nil {
		return err
	}
	for _, job := range jobs {
		if job.Slug == slug && job.ID != exceptID {
			return tferr.JobAlreadyExists(slug)
		}
	}
	return nil
}

func matchesSearch(job *model.Job, lowered string) bool {
	if strings.Contains(strings.ToLower(job.Title), lowered) {
		return true
	}
	for _, tag := range job.Tags {
		if strings.Contains(strings.ToLower(tag), lowered) {
			return true
		}
	}
	return false
}
