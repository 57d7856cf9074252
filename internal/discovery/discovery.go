package discovery

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/talentflow/talentflow/internal/config"
)

// Result contains the discovered project root and data location.
type Result struct {
	ProjectRoot  string // Absolute path to the directory holding the data dir
	DataLocation string // Data dir as given (empty = default .talentflow/)
}

// Paths returns the path resolver for the discovered data directory.
func (r *Result) Paths() *config.Paths {
	return config.NewPaths(r.ProjectRoot, r.DataLocation)
}

// DiscoverProject finds the project root by walking up from cwd.
func DiscoverProject(dataLocation string) (*Result, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get working directory: %w", err)
	}
	return DiscoverProjectFrom(cwd, dataLocation)
}

// DiscoverProjectFrom finds the nearest directory at or above startDir whose
// data directory holds a job ordering file. dataLocation names the data
// directory relative to each candidate root; an absolute dataLocation is
// checked as-is without walking.
//
// Returns nil if no project found (not initialized).
func DiscoverProjectFrom(startDir, dataLocation string) (*Result, error) {
	absStart, err := filepath.Abs(startDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve absolute path: %w", err)
	}

	if filepath.IsAbs(dataLocation) {
		if hasBoard(config.NewPaths(absStart, dataLocation)) {
			return &Result{ProjectRoot: absStart, DataLocation: dataLocation}, nil
		}
		return nil, nil
	}

	dir := absStart
	for {
		if hasBoard(config.NewPaths(dir, dataLocation)) {
			return &Result{ProjectRoot: dir, DataLocation: dataLocation}, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return nil, nil
		}
		dir = parent
	}
}

func hasBoard(paths *config.Paths) bool {
	info, err := os.Stat(paths.BoardPath())
	return err == nil && !info.IsDir()
}
