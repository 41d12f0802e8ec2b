package setup

import (
	"errors"
)

// Sentinel errors for common failure scenarios.
// These enable callers to distinguish error types using errors.Is().
//
// Example usage:
//
//	_, err := packager.Package(ctx, args)
//	if errors.Is(err, setup.ErrMissingVersion) {
//	    // Handle the missing version argument
//	}
var (
	// ErrMissingVersion indicates no version argument was supplied.
	ErrMissingVersion = errors.New("missing version")

	// ErrMalformedVersion indicates the version argument does not contain
	// a three-component dotted numeric sequence.
	ErrMalformedVersion = errors.New("malformed version")

	// ErrExecutableNotFound indicates no file in the resolved file set
	// matches the configured target executable.
	ErrExecutableNotFound = errors.New("executable not found")

	// ErrAmbiguousExecutable indicates more than one file in the resolved
	// file set matches the configured target executable.
	ErrAmbiguousExecutable = errors.New("ambiguous executable")

	// ErrInvalidConfig indicates the provided configuration is invalid.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrInvalidDescriptor indicates a descriptor is missing required fields.
	ErrInvalidDescriptor = errors.New("invalid descriptor")

	// ErrCompilationFailed indicates the installer compilation engine failed.
	ErrCompilationFailed = errors.New("compilation failed")
)

// ExitCodeForError returns the appropriate exit code for an error.
// Returns ExitSuccess (0) for nil errors, semantic codes for known errors,
// and ExitGeneralError (1) for unclassified errors.
func ExitCodeForError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	switch {
	case errors.Is(err, ErrMissingVersion), errors.Is(err, ErrMalformedVersion):
		return ExitValidationError
	case errors.Is(err, ErrInvalidConfig), errors.Is(err, ErrInvalidDescriptor):
		return ExitConfigError
	case errors.Is(err, ErrExecutableNotFound), errors.Is(err, ErrAmbiguousExecutable):
		return ExitExecutableError
	case errors.Is(err, ErrCompilationFailed):
		return ExitCompilationFailed
	}

	return ExitGeneralError
}
