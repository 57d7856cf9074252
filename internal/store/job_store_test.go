package store

import (
	"encoding/json"
	"os"
	"testing"

	"github.com/talentflow/talentflow/internal/config"
	tferr "github.com/talentflow/talentflow/internal/errors"
	"github.com/talentflow/talentflow/testutil"
)

func setupTestJobStore(t *testing.T) (*FileJobStore, *config.Paths) {
	t.Helper()
	paths := testutil.TempDataDir(t)
	return NewJobStore(paths), paths
}

var testJob = testutil.TestJob

func TestFileJobStore_CreateAndGet(t *testing.T) {
	store, _ := setupTestJobStore(t)

	if err := store.Create(testJob("j1", "Backend Engineer")); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	job, err := store.Get("j1")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if job.Title != "Backend Engineer" {
		t.Errorf("Title = %q", job.Title)
	}
	if job.Version != 1 {
		t.Errorf("Version = %d, want 1", job.Version)
	}
}

func TestFileJobStore_OrderNotPersisted(t *testing.T) {
	store, paths := setupTestJobStore(t)

	job := testJob("j1", "Designer")
	job.Order = 7
	if err := store.Create(job); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if job.Order != 7 {
		t.Error("Create must not modify the caller's job")
	}

	data, err := os.ReadFile(paths.JobPath("j1"))
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if _, ok := raw["order"]; ok {
		t.Error("order should not be written to job files")
	}
}

func TestFileJobStore_CreateDuplicate(t *testing.T) {
	store, _ := setupTestJobStore(t)

	store.Create(testJob("j1", "A"))
	if err := store.Create(testJob("j1", "B")); !tferr.IsAlreadyExists(err) {
		t.Errorf("expected AlreadyExists, got %v", err)
	}
}

func TestFileJobStore_GetNotFound(t *testing.T) {
	store, _ := setupTestJobStore(t)

	if _, err := store.Get("missing"); !tferr.IsNotFound(err) {
		t.Errorf("expected NotFound, got %v", err)
	}
}

func TestFileJobStore_Update(t *testing.T) {
	store, _ := setupTestJobStore(t)

	job := testJob("j1", "Old")
	store.Create(job)

	job.Title = "New"
	if err := store.Update(job); err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	got, _ := store.Get("j1")
	if got.Title != "New" {
		t.Errorf("Title = %q, want New", got.Title)
	}

	if err := store.Update(testJob("nope", "x")); !tferr.IsNotFound(err) {
		t.Errorf("expected NotFound updating missing job, got %v", err)
	}
}

func TestFileJobStore_Delete(t *testing.T) {
	store, _ := setupTestJobStore(t)

	store.Create(testJob("j1", "A"))
	if err := store.Delete("j1"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if err := store.Delete("j1"); !tferr.IsNotFound(err) {
		t.Errorf("expected NotFound on second delete, got %v", err)
	}
}

func TestFileJobStore_ListSkipsMalformed(t *testing.T) {
	store, paths := setupTestJobStore(t)

	store.Create(testJob("j1", "A"))
	store.Create(testJob("j2", "B"))
	os.WriteFile(paths.JobPath("broken"), []byte("{not json"), 0644)
	os.WriteFile(paths.JobsDir()+"/notes.txt", []byte("ignored"), 0644)

	jobs, err := store.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(jobs) != 2 {
		t.Errorf("expected 2 jobs, got %d", len(jobs))
	}
}

func TestFileJobStore_ListEmpty(t *testing.T) {
	store, _ := setupTestJobStore(t)

	jobs, err := store.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if jobs == nil || len(jobs) != 0 {
		t.Errorf("expected empty non-nil slice, got %v", jobs)
	}
}
