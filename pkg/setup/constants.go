package setup

import "time"

// Exit codes for semantic error classification.
// These follow Unix/GNU conventions:
//   - 0: Success
//   - 1: General error
//   - 2: CLI usage error (misuse of command line)
//   - 3+: Application-specific errors
const (
	ExitSuccess           = 0  // Package built successfully
	ExitGeneralError      = 1  // Unknown or unclassified error
	ExitUsageError        = 2  // CLI usage error (invalid flags)
	ExitPanic             = 3  // Internal panic (unexpected crash)
	ExitValidationError   = 10 // Missing or malformed version argument
	ExitConfigError       = 11 // Invalid setup.yaml or descriptor configuration
	ExitExecutableError   = 12 // Target executable missing or duplicated in the file set
	ExitCompilationFailed = 13 // Installer compilation engine failed
)

const (
	// ReleaseEnvVar names the release identifier handed to downstream tooling.
	ReleaseEnvVar = "LATEST_RELEASE"

	// DefaultFilePattern includes every release file under the source root.
	DefaultFilePattern = "*.*"

	// DefaultOutputDir is the installer output directory, relative to the working directory.
	DefaultOutputDir = "Installer"

	// DefaultCloseTimeout bounds how long the installer waits for the
	// running application to exit before install or upgrade.
	DefaultCloseTimeout = 15 * time.Second
)
