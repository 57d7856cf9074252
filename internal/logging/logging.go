package logging

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/talentflow/talentflow/internal/config"
)

// Logger is the global slog instance for CLI runs.
// Defaults to discarding until Init is called.
var Logger = slog.New(slog.NewTextHandler(io.Discard, nil))

// Init sets Logger to write to ~/.talentflow/logs/talentflow.log.
// Uses text format for human readability. Terminal output stays clean; the
// log file is where failed reorders and reloads are recorded.
func Init() error {
	logDir := config.LogDirPath()
	if logDir == "" {
		return nil
	}
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return err
	}

	logPath := filepath.Join(logDir, "talentflow.log")
	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return err
	}

	handler := slog.NewTextHandler(file, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	})

	Logger = slog.New(handler)
	slog.SetDefault(Logger)
	return nil
}
