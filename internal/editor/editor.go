// Package editor opens job descriptions in the user's text editor.
package editor

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/talentflow/talentflow/internal/model"
)

const defaultEditor = "vi"

// Editor handles editor resolution and invocation.
type Editor struct {
	globalConfig *model.GlobalConfig
	getenv       func(string) string
}

// NewEditor creates a new Editor.
func NewEditor(globalConfig *model.GlobalConfig) *Editor {
	return &Editor{globalConfig: globalConfig, getenv: os.Getenv}
}

// Resolve returns the editor command to use.
// Order: global config > $VISUAL > $EDITOR > vi
func (e *Editor) Resolve() string {
	if e.globalConfig != nil && e.globalConfig.Editor != "" {
		return e.globalConfig.Editor
	}
	for _, key := range []string{"VISUAL", "EDITOR"} {
		if editor := e.getenv(key); editor != "" {
			return editor
		}
	}
	return defaultEditor
}

// Edit opens the editor on a markdown temp file holding content and returns
// what the user saved.
func (e *Editor) Edit(content string) (string, error) {
	tmpFile, err := os.CreateTemp("", "talentflow-job-*.md")
	if err != nil {
		return "", err
	}
	tmpPath := tmpFile.Name()
	defer os.Remove(tmpPath)

	if _, err := tmpFile.WriteString(content); err != nil {
		tmpFile.Close()
		return "", err
	}
	tmpFile.Close()

	// Editors like "code --wait" carry their own arguments.
	fields := strings.Fields(e.Resolve())
	cmd := exec.Command(fields[0], append(fields[1:], tmpPath)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("editor %q failed: %w", fields[0], err)
	}

	edited, err := os.ReadFile(tmpPath)
	if err != nil {
		return "", err
	}
	return string(edited), nil
}
