package diag

import (
	"fmt"
)

// Code is a stable numeric identifier for a failure class.
type Code uint16

const (
	UnknownCode Code = 0

	// Inputs
	InputParseError Code = 1001
	// Visibility policy
	ResolutionError Code = 1002
	LinkError       Code = 1003
	// Output
	SerializationError Code = 1004
	ConfigurationError Code = 1005
)

var codeDescription = map[Code]string{
	UnknownCode:        "Unknown error",
	InputParseError:    "Malformed input descriptor, version script, or shared object",
	ResolutionError:    "Visibility policy cannot be resolved",
	LinkError:          "Linked descriptor cannot be extended",
	SerializationError: "Linked descriptor cannot be written",
	ConfigurationError: "Missing or inconsistent options",
}

// ID returns the stable textual form, e.g. ABI1003.
func (c Code) ID() string {
	return fmt.Sprintf("ABI%04d", int(c))
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
