package config

import "errors"

// Configuration validation errors.
// These errors are returned by Config.Validate() and can be matched with
// errors.Is().
var (
	// ErrConflictingReportFormats is returned when both --json and --markdown
	// are specified. Only one output format can be used at a time.
	ErrConflictingReportFormats = errors.New("conflicting report formats: --json and --markdown cannot be used together")

	// ErrEmptyModelDir is returned when no model directory is configured.
	ErrEmptyModelDir = errors.New("model directory must not be empty")

	// ErrInvalidReportName is returned when the report name is empty or
	// contains a path separator.
	ErrInvalidReportName = errors.New("invalid report name: must be a plain file name")

	// ErrInvalidTimeout is returned when the inference timeout is not positive.
	ErrInvalidTimeout = errors.New("invalid inference timeout: must be positive")

	// ErrInvalidMaxTextBytes is returned when the text size limit is not positive.
	ErrInvalidMaxTextBytes = errors.New("invalid max text size: must be positive")

	// ErrEmptyListenAddress is returned when the server address is empty.
	ErrEmptyListenAddress = errors.New("listen address must not be empty")

	// ErrInputConflict is returned when text is given both as an argument
	// and through --file.
	ErrInputConflict = errors.New("conflicting input: pass text as an argument or with --file, not both")
)
