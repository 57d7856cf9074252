package store

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/talentflow/talentflow/internal/config"
	tferr "github.com/talentflow/talentflow/internal/errors"
	"github.com/talentflow/talentflow/internal/model"
	"github.com/talentflow/talentflow/internal/version"
)

// FileBoardStore implements BoardStore using a TOML file.
type FileBoardStore struct {
	paths *config.Paths
}

// NewBoardStore creates a new board store.
func NewBoardStore(paths *config.Paths) *FileBoardStore {
	return &FileBoardStore{paths: paths}
}

// Create writes a new board and the data directories it needs.
func (s *FileBoardStore) Create(board *model.JobBoard) error {
	if s.Exists() {
		return &tferr.AlreadyExistsError{Resource: "board", ID: s.paths.BoardPath()}
	}

	for _, dir := range []string{s.paths.JobsDir(), s.paths.CandidatesDir()} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create data directory: %w", err)
		}
	}

	if err := s.write(board); err != nil {
		return fmt.Errorf("failed to write board: %w", err)
	}
	return nil
}

// Get reads the board from disk.
func (s *FileBoardStore) Get() (*model.JobBoard, error) {
	path := s.paths.BoardPath()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &tferr.NotInitializedError{Path: s.paths.DataRoot()}
		}
		return nil, fmt.Errorf("failed to read board: %w", err)
	}

	var board model.JobBoard
	if err := toml.Unmarshal(data, &board); err != nil {
		return nil, fmt.Errorf("invalid board file: %w", err)
	}

	// Strict version validation
	if board.Schema == "" {
		return nil, version.MissingBoardSchema(path)
	}
	if board.Schema != version.CurrentBoardSchema() {
		return nil, version.InvalidBoardSchema(path, board.Schema)
	}

	return &board, nil
}

// Update writes the board to disk.
func (s *FileBoardStore) Update(board *model.JobBoard) error {
	if err := s.write(board); err != nil {
		return fmt.Errorf("failed to update board: %w", err)
	}
	return nil
}

// Exists returns true if the board file exists.
func (s *FileBoardStore) Exists() bool {
	_, err := os.Stat(s.paths.BoardPath())
	return err == nil
}

func (s *FileBoardStore) write(board *model.JobBoard) error {
	// Stamp current schema version
	board.Schema = version.CurrentBoardSchema()

	// Write-then-rename so the watcher never sees a truncated file.
	path := s.paths.BoardPath()
	tmp := path + ".tmp"

	f, err := os.Create(tmp)
	if err != nil {
		return err
	}
	if err := toml.NewEncoder(f).Encode(board); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, path)
}
