package editor

import (
	"testing"

	"github.com/talentflow/talentflow/internal/model"
)

func newTestEditor(cfg *model.GlobalConfig, env map[string]string) *Editor {
	e := NewEditor(cfg)
	e.getenv = func(key string) string { return env[key] }
	return e
}

func TestEditor_Resolve(t *testing.T) {
	tests := []struct {
		name string
		cfg  *model.GlobalConfig
		env  map[string]string
		want string
	}{
		{"config wins", &model.GlobalConfig{Editor: "nano"}, map[string]string{"EDITOR": "emacs"}, "nano"},
		{"visual before editor", nil, map[string]string{"VISUAL": "code --wait", "EDITOR": "emacs"}, "code --wait"},
		{"editor env", &model.GlobalConfig{}, map[string]string{"EDITOR": "emacs"}, "emacs"},
		{"fallback", nil, nil, defaultEditor},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := newTestEditor(tt.cfg, tt.env).Resolve(); got != tt.want {
				t.Errorf("Resolve() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestEditor_EditRoundTrip(t *testing.T) {
	// "true" exits without touching the file, so the content comes back as-is.
	e := newTestEditor(&model.GlobalConfig{Editor: "true"}, nil)

	got, err := e.Edit("## Role\nBuild things")
	if err != nil {
		t.Fatalf("Edit failed: %v", err)
	}
	if got != "## Role\nBuild things" {
		t.Errorf("unexpected content %q", got)
	}
}
