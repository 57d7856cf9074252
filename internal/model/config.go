package model

// DefaultPageSize is the number of jobs per page when nothing else is configured.
const DefaultPageSize = 10

// GlobalConfig represents the user's global TalentFlow configuration.
// Stored at ~/.config/talentflow/config.toml
// Schema changes require a version bump (internal/version/version.go).
type GlobalConfig struct {
	Schema    string `toml:"talentflow_schema"`
	ServerURL string `toml:"server_url,omitempty"`
	PageSize  int    `toml:"page_size,omitempty"`
	Editor    string `toml:"editor,omitempty"`
}

// GetPageSize returns the configured page size, falling back to the default.
func (g *GlobalConfig) GetPageSize() int {
	if g == nil || g.PageSize <= 0 {
		return DefaultPageSize
	}
	return g.PageSize
}
