package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/talentflow/talentflow/internal/config"
	"github.com/talentflow/talentflow/internal/model"
	"github.com/talentflow/talentflow/internal/util"
)

// FixedMillis is the creation time used by fixtures (2024-01-03T18:40:00Z).
const FixedMillis int64 = 1704307200000

// TestJob returns an active job with sensible test defaults.
func TestJob(id, title string) *model.Job {
	return &model.Job{
		ID:              id,
		Title:           title,
		Slug:            util.Slugify(title),
		Status:          model.JobStatusActive,
		Tags:            []string{"go"},
		CreatedAtMillis: FixedMillis,
		UpdatedAtMillis: FixedMillis,
	}
}

// TestCandidate returns a candidate in the applied stage for jobID.
func TestCandidate(id, jobID string) *model.Candidate {
	return &model.Candidate{
		ID:              id,
		Name:            "Candidate " + id,
		Email:           id + "@example.com",
		JobID:           jobID,
		Stage:           model.StageApplied,
		AppliedAtMillis: FixedMillis,
	}
}

// TempDataDir creates a temporary project with an empty .talentflow
// directory and returns Paths rooted at it. Removed when the test ends.
func TempDataDir(t *testing.T) *config.Paths {
	t.Helper()

	dir := t.TempDir()
	paths := config.NewPaths(dir, "")
	for _, sub := range []string{paths.JobsDir(), paths.CandidatesDir()} {
		if err := os.MkdirAll(sub, 0755); err != nil {
			t.Fatalf("failed to create %s: %v", filepath.Base(sub), err)
		}
	}
	return paths
}

// NewTestPaths creates a Paths for testing with the given temp directory.
func NewTestPaths(baseDir string) *config.Paths {
	return config.NewPaths(baseDir, "")
}
