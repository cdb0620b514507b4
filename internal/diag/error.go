package diag

import (
	"errors"
	"strings"
)

// Error is a failure attributed to one pipeline stage. Every Error aborts the
// run; there is no partial output.
type Error struct {
	Code  Code
	Stage string
	Path  string
	Err   error
}

// New wraps err for stage. Path may be empty when no single file is involved.
func New(code Code, stage, path string, err error) *Error {
	return &Error{Code: code, Stage: stage, Path: path, Err: err}
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.Stage)
	if e.Path != "" && (e.Err == nil || !strings.Contains(e.Err.Error(), e.Path)) {
		b.WriteString(": ")
		b.WriteString(e.Path)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() error { return e.Err }

// CodeOf returns the code of the first *Error in err's chain.
func CodeOf(err error) (Code, bool) {
	var de *Error
	if errors.As(err, &de) {
		return de.Code, true
	}
	return UnknownCode, false
}

// Configuration builds a ConfigurationError not tied to any file.
func Configuration(msg string) *Error {
	return New(ConfigurationError, "config", "", errors.New(msg))
}
