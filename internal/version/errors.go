package version

import (
	"fmt"
)

// SchemaVersionError indicates a schema version problem during file read/write.
type SchemaVersionError struct {
	FileType    string // "job", "board", "global"
	FilePath    string // Path to the problematic file
	Found       string // What was found (e.g., "missing", "2", "board/2")
	Expected    string // What was expected (e.g., "1", "board/1")
	MinRequired string // Minimum talentflow version required (if upgrade needed)
}

func (e *SchemaVersionError) Error() string {
	if e.MinRequired != "" {
		return fmt.Sprintf(
			"%s schema version %s requires talentflow >= %s (file: %s, supports up to: %s)",
			e.FileType, e.Found, e.MinRequired, e.FilePath, e.Expected,
		)
	}
	if e.Found == "missing" {
		return fmt.Sprintf("%s has no schema version (file: %s)", e.FileType, e.FilePath)
	}
	return fmt.Sprintf(
		"%s has invalid schema version: found %s, expected %s (file: %s)",
		e.FileType, e.Found, e.Expected, e.FilePath,
	)
}

// InvalidJobVersion creates an error for a job file with an unsupported version.
func InvalidJobVersion(path string, found int) error {
	e := &SchemaVersionError{
		FileType: "job",
		FilePath: path,
		Found:    fmt.Sprintf("%d", found),
		Expected: fmt.Sprintf("%d", CurrentJobVersion),
	}
	if found > CurrentJobVersion {
		e.MinRequired = minRequired(fmt.Sprintf("job/%d", found))
	}
	return e
}

// MissingBoardSchema creates an error for a board file missing talentflow_schema.
func MissingBoardSchema(path string) error {
	return &SchemaVersionError{
		FileType: "board",
		FilePath: path,
		Found:    "missing",
		Expected: CurrentBoardSchema(),
	}
}

// InvalidBoardSchema creates an error for a board with an unsupported schema.
func InvalidBoardSchema(path, found string) error {
	return schemaError("board", path, found, CurrentBoardSchema(), ParseBoardVersion, CurrentBoardVersion)
}

// MissingGlobalSchema creates an error for a global config missing talentflow_schema.
func MissingGlobalSchema(path string) error {
	return &SchemaVersionError{
		FileType: "global config",
		FilePath: path,
		Found:    "missing",
		Expected: CurrentGlobalSchema(),
	}
}

// InvalidGlobalSchema creates an error for a global config with an unsupported schema.
func InvalidGlobalSchema(path, found string) error {
	return schemaError("global config", path, found, CurrentGlobalSchema(), ParseGlobalVersion, CurrentGlobalVersion)
}

func schemaError(fileType, path, found, expected string, parse func(string) (int, error), current int) error {
	e := &SchemaVersionError{
		FileType: fileType,
		FilePath: path,
		Found:    found,
		Expected: expected,
	}
	if v, err := parse(found); err == nil && v > current {
		e.MinRequired = minRequired(found)
	}
	return e
}

func minRequired(key string) string {
	if v, ok := MinToolVersion[key]; ok {
		return v
	}
	return "a newer version"
}
