package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

func readJSON[T any](path string) (*T, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	return &v, nil
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	return nil
}

// listJSON reads every *.json file in dir. Malformed files are logged and skipped.
func listJSON[T any](dir string) ([]*T, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return []*T{}, nil // Return empty slice, not nil
		}
		return nil, fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	out := []*T{}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}

		v, err := readJSON[T](filepath.Join(dir, entry.Name()))
		if err != nil {
			// Log warning but don't fail - allows partial reads
			fmt.Fprintf(os.Stderr, "Warning: skipping malformed file %s: %v\n", entry.Name(), err)
			continue
		}
		out = append(out, v)
	}
	return out, nil
}
