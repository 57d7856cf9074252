package version

import (
	"fmt"
	"strconv"
	"strings"
)

// Current schema versions - bump these when making breaking changes.
//
// CHECKLIST when bumping a version:
//  1. Update the constant below
//  2. Add entry to MinToolVersion map (tested by TestMinToolVersionCompleteness)
//  3. Teach the stores to read the previous version or fail with a clear error
const (
	CurrentJobVersion    = 1
	CurrentBoardVersion  = 1
	CurrentGlobalVersion = 1
)

// Schema type prefixes for config files.
const (
	BoardSchemaPrefix  = "board/"
	GlobalSchemaPrefix = "global/"
)

// MinToolVersion maps schema identifiers to the minimum talentflow version required.
// Used to provide helpful upgrade messages when encountering newer schemas.
var MinToolVersion = map[string]string{
	"job/1":    "0.1.0",
	"board/1":  "0.1.0",
	"global/1": "0.1.0",
}

// FormatBoardSchema creates a board schema string from a version number.
// Example: FormatBoardSchema(1) returns "board/1"
func FormatBoardSchema(v int) string {
	return fmt.Sprintf("%s%d", BoardSchemaPrefix, v)
}

// FormatGlobalSchema creates a global schema string from a version number.
func FormatGlobalSchema(v int) string {
	return fmt.Sprintf("%s%d", GlobalSchemaPrefix, v)
}

// ParseBoardVersion extracts the version number from a board schema string.
// Returns an error if the format is invalid.
func ParseBoardVersion(schema string) (int, error) {
	return parseSchemaVersion(schema, BoardSchemaPrefix, "board")
}

// ParseGlobalVersion extracts the version number from a global schema string.
func ParseGlobalVersion(schema string) (int, error) {
	return parseSchemaVersion(schema, GlobalSchemaPrefix, "global")
}

func parseSchemaVersion(schema, prefix, schemaType string) (int, error) {
	if !strings.HasPrefix(schema, prefix) {
		return 0, fmt.Errorf("invalid %s schema format: %q (expected %sN)", schemaType, schema, prefix)
	}
	versionStr := strings.TrimPrefix(schema, prefix)
	v, err := strconv.Atoi(versionStr)
	if err != nil {
		return 0, fmt.Errorf("invalid %s schema version: %q", schemaType, versionStr)
	}
	if v < 1 {
		return 0, fmt.Errorf("invalid %s schema version: %d (must be >= 1)", schemaType, v)
	}
	return v, nil
}

// CurrentBoardSchema returns the current board schema string.
func CurrentBoardSchema() string {
	return FormatBoardSchema(CurrentBoardVersion)
}

// CurrentGlobalSchema returns the current global schema string.
func CurrentGlobalSchema() string {
	return FormatGlobalSchema(CurrentGlobalVersion)
}
