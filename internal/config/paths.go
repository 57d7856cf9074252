package config

import (
	"os"
	"path/filepath"
)

const (
	DefaultDataDir  = ".talentflow"
	JobsDir         = "jobs"
	CandidatesDir   = "candidates"
	BoardFileName   = "board.toml"
	ConfigFileName  = "config.toml"
	GlobalConfigDir = ".config/talentflow"
	LogDir          = ".talentflow/logs"

	// ServerEnvVar overrides the configured backend URL.
	ServerEnvVar     = "TALENTFLOW_SERVER"
	DefaultServerURL = "http://localhost:3000"
)

// Paths provides path resolution for TalentFlow data files.
type Paths struct {
	root    string
	dataDir string // Custom location, empty for default
}

// NewPaths creates a new Paths resolver rooted at the given directory.
func NewPaths(root string, dataDir string) *Paths {
	return &Paths{
		root:    root,
		dataDir: dataDir,
	}
}

// DataRoot returns the root directory for TalentFlow data.
func (p *Paths) DataRoot() string {
	if p.dataDir != "" {
		if filepath.IsAbs(p.dataDir) {
			return p.dataDir
		}
		return filepath.Join(p.root, p.dataDir)
	}
	return filepath.Join(p.root, DefaultDataDir)
}

// BoardPath returns the path of the job ordering file.
func (p *Paths) BoardPath() string {
	return filepath.Join(p.DataRoot(), BoardFileName)
}

// JobsDir returns the directory holding job files.
func (p *Paths) JobsDir() string {
	return filepath.Join(p.DataRoot(), JobsDir)
}

// JobPath returns the file path for a specific job.
func (p *Paths) JobPath(jobID string) string {
	return filepath.Join(p.JobsDir(), jobID+".json")
}

// CandidatesDir returns the directory holding candidate files.
func (p *Paths) CandidatesDir() string {
	return filepath.Join(p.DataRoot(), CandidatesDir)
}

// CandidatePath returns the file path for a specific candidate.
func (p *Paths) CandidatePath(candidateID string) string {
	return filepath.Join(p.CandidatesDir(), candidateID+".json")
}

// GlobalConfigPath returns the path to the global config file.
func GlobalConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, GlobalConfigDir, ConfigFileName)
}

// LogDirPath returns the directory CLI logs are written to.
func LogDirPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, LogDir)
}
