package discovery

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/talentflow/talentflow/internal/config"
)

// makeProject creates <root>/<dataDir>/board.toml.
func makeProject(t *testing.T, root, dataDir string) {
	t.Helper()
	paths := config.NewPaths(root, dataDir)
	if err := os.MkdirAll(paths.DataRoot(), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(paths.BoardPath(), []byte("order = []\n"), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestDiscoverProjectFrom_DefaultLocation(t *testing.T) {
	projectDir := filepath.Join(t.TempDir(), "hiring")
	makeProject(t, projectDir, "")

	result, err := DiscoverProjectFrom(projectDir, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result == nil {
		t.Fatal("expected result, got nil")
	}
	if result.ProjectRoot != projectDir {
		t.Errorf("expected ProjectRoot %q, got %q", projectDir, result.ProjectRoot)
	}
	if got, want := result.Paths().DataRoot(), filepath.Join(projectDir, config.DefaultDataDir); got != want {
		t.Errorf("expected data root %q, got %q", want, got)
	}
}

func TestDiscoverProjectFrom_CustomLocation(t *testing.T) {
	projectDir := filepath.Join(t.TempDir(), "hiring")
	makeProject(t, projectDir, "data/tf")

	result, err := DiscoverProjectFrom(projectDir, "data/tf")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result == nil {
		t.Fatal("expected result, got nil")
	}
	if result.DataLocation != "data/tf" {
		t.Errorf("expected DataLocation %q, got %q", "data/tf", result.DataLocation)
	}
}

func TestDiscoverProjectFrom_WalksUpDirectory(t *testing.T) {
	projectDir := filepath.Join(t.TempDir(), "hiring")
	makeProject(t, projectDir, "")
	deepDir := filepath.Join(projectDir, "src", "deep", "nested")
	if err := os.MkdirAll(deepDir, 0755); err != nil {
		t.Fatal(err)
	}

	result, err := DiscoverProjectFrom(deepDir, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result == nil {
		t.Fatal("expected result, got nil")
	}
	if result.ProjectRoot != projectDir {
		t.Errorf("expected ProjectRoot %q, got %q", projectDir, result.ProjectRoot)
	}
}

func TestDiscoverProjectFrom_DataDirWithoutBoard(t *testing.T) {
	// A bare data dir that was never initialized doesn't count.
	projectDir := filepath.Join(t.TempDir(), "hiring")
	if err := os.MkdirAll(filepath.Join(projectDir, config.DefaultDataDir, config.JobsDir), 0755); err != nil {
		t.Fatal(err)
	}

	result, err := DiscoverProjectFrom(projectDir, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result != nil {
		t.Errorf("expected nil result, got %+v", result)
	}
}

func TestDiscoverProjectFrom_AbsoluteLocation(t *testing.T) {
	dataDir := filepath.Join(t.TempDir(), "shared")
	makeProject(t, "/", dataDir)
	elsewhere := t.TempDir()

	result, err := DiscoverProjectFrom(elsewhere, dataDir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result == nil {
		t.Fatal("expected result, got nil")
	}
	if got := result.Paths().DataRoot(); got != dataDir {
		t.Errorf("expected data root %q, got %q", dataDir, got)
	}

	missing, err := DiscoverProjectFrom(elsewhere, filepath.Join(dataDir, "nope"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if missing != nil {
		t.Errorf("expected nil result for missing absolute location, got %+v", missing)
	}
}

func TestDiscoverProjectFrom_NotFound(t *testing.T) {
	emptyDir := filepath.Join(t.TempDir(), "empty")
	if err := os.MkdirAll(emptyDir, 0755); err != nil {
		t.Fatal(err)
	}

	result, err := DiscoverProjectFrom(emptyDir, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result != nil {
		t.Errorf("expected nil result for uninitialized directory, got %+v", result)
	}
}

func TestDiscoverProjectFrom_NestedProjects(t *testing.T) {
	outerProject := filepath.Join(t.TempDir(), "outer")
	innerProject := filepath.Join(outerProject, "inner")
	makeProject(t, outerProject, "")
	makeProject(t, innerProject, "")

	result, err := DiscoverProjectFrom(innerProject, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result == nil {
		t.Fatal("expected result, got nil")
	}
	if result.ProjectRoot != innerProject {
		t.Errorf("expected inner project %q, got %q", innerProject, result.ProjectRoot)
	}
}
