// Package diag defines the failure taxonomy shared by all link stages.
//
// Every failure aborts the run. A stage reports it as an *Error carrying a
// Code (stable ID such as ABI1002), the stage name and, when one file is to
// blame, its path. The CLI maps the Code to an exit status.
//
// Codes:
//
//   - InputParseError: a descriptor, version script or shared object is malformed.
//   - ResolutionError: the visibility policy cannot be built, e.g. the shared
//     object is missing or is not an object file.
//   - LinkError: the linked descriptor cannot grow (entity limit reached).
//   - SerializationError: the output cannot be written.
//   - ConfigurationError: a required option is missing or options conflict.
package diag
