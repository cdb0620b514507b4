package dump

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Format selects the on-disk descriptor encoding.
type Format string

const (
	FormatAuto    Format = "auto"
	FormatJSON    Format = "json"
	FormatYAML    Format = "yaml"
	FormatMsgpack Format = "msgpack"
)

// ParseFormat converts a flag value into a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return FormatAuto, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "msgpack", "mp":
		return FormatMsgpack, nil
	}
	return FormatAuto, fmt.Errorf("invalid descriptor format: %q (expected: auto|json|yaml|msgpack)", s)
}

// Resolve returns f unless it is FormatAuto, in which case the format is
// picked from the extension of path. Unknown extensions default to JSON.
func (f Format) Resolve(path string) Format {
	if f != FormatAuto && f != "" {
		return f
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	case ".msgpack", ".mp":
		return FormatMsgpack
	}
	return FormatJSON
}
