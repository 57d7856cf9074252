package resolver

import (
	"context"

	tferr "github.com/talentflow/talentflow/internal/errors"
	"github.com/talentflow/talentflow/internal/model"
)

// JobLookup is the subset of the API client the resolver needs.
type JobLookup interface {
	GetJob(ctx context.Context, jobID string) (*model.Job, error)
	AllJobs(ctx context.Context, query model.JobQuery) ([]model.Job, error)
}

// JobResolver handles job ID and slug resolution.
type JobResolver struct {
	jobs JobLookup
}

// NewJobResolver creates a new job resolver.
func NewJobResolver(jobs JobLookup) *JobResolver {
	return &JobResolver{jobs: jobs}
}

// Resolve finds a job by ID or slug.
// Tries exact ID match first (one request), then scans the board for a slug.
func (r *JobResolver) Resolve(ctx context.Context, idOrSlug string) (*model.Job, error) {
	if idOrSlug == "" {
		return nil, tferr.InvalidField("job", "job ID or slug is required")
	}

	job, err := r.jobs.GetJob(ctx, idOrSlug)
	if err == nil {
		return job, nil
	}
	if !tferr.IsNotFound(err) {
		return nil, err
	}

	all, err := r.jobs.AllJobs(ctx, model.JobQuery{})
	if err != nil {
		return nil, err
	}
	for i := range all {
		if all[i].Slug == idOrSlug {
			return &all[i], nil
		}
	}
	return nil, tferr.JobNotFound(idOrSlug)
}

// ResolveID is Resolve for callers that only need the ID.
func (r *JobResolver) ResolveID(ctx context.Context, idOrSlug string) (string, error) {
	job, err := r.Resolve(ctx, idOrSlug)
	if err != nil {
		return "", err
	}
	return job.ID, nil
}
